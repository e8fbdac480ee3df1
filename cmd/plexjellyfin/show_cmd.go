package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/match"
)

func newShowCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "show TITLE LIBRARY SERVER",
		Short: "Show details for a single title",
		Long: `Look up one title on a server and print its details.

The lookup is exact (case-insensitive) first. When nothing matches
exactly, the closest fuzzy match at or above the threshold is shown
instead.

Examples:
  plexjellyfin show "Inception" movie plex
  plexjellyfin show "the office" show jellyfin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1], args[2], threshold)
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", match.DefaultThreshold, "Fuzzy match threshold 0-100 (overrides config)")
	return cmd
}

func runShow(cmd *cobra.Command, title, library, server string, flagThreshold int) error {
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

	cat, err := openCatalog(cfg, server)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	item, err := cat.GetItem(ctx, title, kind)
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrItemNotFound):
		items, listErr := cat.ListItems(ctx, kind)
		if listErr != nil {
			return listErr
		}
		result, matchErr := match.FindMatch(title, 0, items, threshold)
		if matchErr != nil {
			return matchErr
		}
		if !result.Matched {
			return fmt.Errorf("%w: %q on %s", catalog.ErrItemNotFound, title, server)
		}
		fmt.Printf("No exact match for %q; closest is %q (score %d).\n\n", title, result.Best.Title, result.Score)
		item = result.Best
	default:
		return err
	}

	printItem(item)
	return nil
}

func printItem(item *catalog.MediaItem) {
	fmt.Printf("Title:   %s\n", item.Title)
	if item.Year > 0 {
		fmt.Printf("Year:    %d\n", item.Year)
	}
	fmt.Printf("Kind:    %s\n", item.Kind)
	fmt.Printf("Watched: %t\n", item.Watched)
	fmt.Printf("Parts:   %d\n", item.PartCount)
	for _, p := range item.Paths {
		fmt.Printf("Path:    %s\n", p)
	}
}
