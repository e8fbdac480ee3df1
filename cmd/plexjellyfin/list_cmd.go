package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
)

func newListCmd() *cobra.Command {
	var (
		withPath  bool
		exportCSV string
	)

	cmd := &cobra.Command{
		Use:   "list LIBRARY SERVER",
		Short: "List movies or TV shows from one server",
		Long: `List every item of a library from one server, sorted by title.

LIBRARY is "movie" or "show"; SERVER is "plex" or "jellyfin".

By default only titles are printed. With --with-path each item is shown
with its year, file path, watched status and number of media versions.

Examples:
  plexjellyfin list movie plex
  plexjellyfin list show jellyfin --with-path
  plexjellyfin list movie plex --export movies.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args[0], args[1], withPath, exportCSV)
		},
	}

	cmd.Flags().BoolVar(&withPath, "with-path", false, "Show paths, watched status and version counts")
	cmd.Flags().StringVar(&exportCSV, "export", "", "Write results to a CSV file")
	return cmd
}

func runList(library, server string, withPath bool, exportCSV string) error {
	kind, err := catalog.ParseKind(library)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Close()

	cat, err := openCatalog(cfg, server)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	items, err := cat.ListItems(ctx, kind)
	if err != nil {
		return err
	}
	sortByTitle(items)

	logger.Debug("list", "listed items",
		logging.F("server", server),
		logging.F("library", string(kind)),
		logging.F("count", len(items)))

	if exportCSV != "" {
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, it.Row())
		}
		if err := writeCSV(exportCSV, catalog.RowHeader(), rows); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(items), exportCSV)
		return nil
	}

	if withPath {
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, it.Row())
		}
		fmt.Println(renderTable(catalog.RowHeader(), rows, 2, 5))
	} else {
		for _, it := range items {
			fmt.Println(it.Title)
		}
	}

	fmt.Printf("\n%s on %s: %d\n", displayKind(kind), server, len(items))
	return nil
}
