package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plexjellyfin",
		Short: "Reconcile metadata between Plex and Jellyfin servers",
		Long: `plexjellyfin compares and synchronizes media metadata between a Plex
server and a Jellyfin server.

Titles are matched across catalogs with fuzzy, year-aware comparison,
so "Inception" on one server pairs with "Inception (2010)" on the
other.

Features:
  - List movies and TV shows from either server, with file paths
  - Sync watched status in either direction (dry-run supported)
  - Report titles present on one server but missing from the other
  - Detect entries backed by multiple combined media versions`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/plexjellyfin/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newDuplicatesCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
