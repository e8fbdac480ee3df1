package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/reconcile"
)

func newDuplicatesCmd() *cobra.Command {
	var exportCSV string

	cmd := &cobra.Command{
		Use:   "duplicates LIBRARY SERVER",
		Short: "List titles backed by multiple media versions",
		Long: `Report every item of a library that the server holds as more than
one combined media version, e.g. a 1080p and a 4K copy of the same
movie grouped under one entry.

Examples:
  plexjellyfin duplicates movie plex
  plexjellyfin duplicates show jellyfin --export dupes.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuplicates(args[0], args[1], exportCSV)
		},
	}

	cmd.Flags().StringVar(&exportCSV, "export", "", "Write results to a CSV file")
	return cmd
}

func runDuplicates(library, server, exportCSV string) error {
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

	dupes := reconcile.FindDuplicates(items)
	sortByTitle(dupes)

	if exportCSV != "" {
		rows := make([][]string, 0, len(dupes))
		for _, it := range dupes {
			rows = append(rows, it.Row())
		}
		if err := writeCSV(exportCSV, catalog.RowHeader(), rows); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(dupes), exportCSV)
		return nil
	}

	if len(dupes) == 0 {
		fmt.Printf("No multi-version %s found on %s.\n", strings.ToLower(displayKind(kind)), server)
		return nil
	}

	rows := make([][]string, 0, len(dupes))
	for _, it := range dupes {
		rows = append(rows, it.Row())
	}
	fmt.Println(renderTable(catalog.RowHeader(), rows, 2, 5))
	fmt.Printf("\n%d of %d %s on %s have multiple versions\n",
		len(dupes), len(items), strings.ToLower(displayKind(kind)), server)
	return nil
}
