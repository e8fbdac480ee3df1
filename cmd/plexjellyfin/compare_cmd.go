package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
	"github.com/logictoad/plex-jellyfin-cli/internal/match"
	"github.com/logictoad/plex-jellyfin-cli/internal/reconcile"
)

func newCompareCmd() *cobra.Command {
	var (
		threshold int
		exportCSV string
	)

	cmd := &cobra.Command{
		Use:   "compare LIBRARY SOURCE TARGET",
		Short: "Report titles on SOURCE that are missing from TARGET",
		Long: `Compare one library across two servers and report every title
present on SOURCE with no fuzzy match on TARGET.

Titles are matched with year-aware fuzzy comparison, so small naming
differences between servers do not produce false positives. A title on
SOURCE whose best TARGET candidate scores below the threshold, or
carries a different release year, is reported as missing.

Examples:
  plexjellyfin compare movie plex jellyfin
  plexjellyfin compare show jellyfin plex --threshold 90
  plexjellyfin compare movie plex jellyfin --export missing.csv`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], args[2], threshold, exportCSV)
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", match.DefaultThreshold, "Fuzzy match threshold 0-100 (overrides config)")
	cmd.Flags().StringVar(&exportCSV, "export", "", "Write missing titles to a CSV file")
	return cmd
}

func runCompare(cmd *cobra.Command, library, source, target string, flagThreshold int, exportCSV string) error {
	kind, err := catalog.ParseKind(library)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	threshold, err := resolveThreshold(cmd, cfg, flagThreshold)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Close()

	sourceCat, err := openCatalog(cfg, source)
	if err != nil {
		return err
	}
	targetCat, err := openCatalog(cfg, target)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	sourceItems, err := sourceCat.ListItems(ctx, kind)
	if err != nil {
		return err
	}
	targetItems, err := targetCat.ListItems(ctx, kind)
	if err != nil {
		return err
	}

	missing, err := reconcile.Compare(sourceItems, targetItems, threshold)
	if err != nil {
		return err
	}
	sortByTitle(missing)

	for _, it := range missing {
		logger.Debug("compare", "no match on target",
			logging.F("title", it.Title),
			logging.F("year", it.Year))
	}

	if exportCSV != "" {
		rows := make([][]string, 0, len(missing))
		for _, it := range missing {
			rows = append(rows, it.Row())
		}
		if err := writeCSV(exportCSV, catalog.RowHeader(), rows); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(missing), exportCSV)
		return nil
	}

	if len(missing) > 0 {
		rows := make([][]string, 0, len(missing))
		for _, it := range missing {
			rows = append(rows, it.Row())
		}
		fmt.Println(renderTable(catalog.RowHeader(), rows, 2, 5))
		fmt.Println()
	}

	fmt.Printf("%s on %s missing from %s: %d of %d\n",
		displayKind(kind), source, target, len(missing), len(sourceItems))
	return nil
}
