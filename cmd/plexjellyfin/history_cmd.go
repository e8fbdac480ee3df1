package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "Show recorded sync runs",
		Long: `Show recent sync runs from the history database, newest first.

With a RUN_ID argument, show the individual watched-status writes of
that run instead.

Examples:
  plexjellyfin history
  plexjellyfin history --limit 25
  plexjellyfin history 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				runID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid run id %q: %w", args[0], err)
				}
				return runHistoryActions(runID)
			}
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	return cmd
}

func runHistory(limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No sync runs recorded.")
		return nil
	}

	headers := []string{"ID", "When", "Direction", "Library", "Planned", "Applied", "Failed"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Direction,
			run.Kind,
			strconv.Itoa(run.Planned),
			strconv.Itoa(run.Applied),
			strconv.Itoa(run.Failed),
		})
	}
	fmt.Println(renderTable(headers, rows, 1, 5, 6, 7))
	return nil
}

func runHistoryActions(runID int64) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	actions, err := store.RunActions(runID)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		fmt.Printf("No actions recorded for run %d.\n", runID)
		return nil
	}

	headers := []string{"Title", "Year", "Watched", "Error"}
	rows := make([][]string, 0, len(actions))
	for _, action := range actions {
		year := ""
		if action.Year > 0 {
			year = strconv.Itoa(action.Year)
		}
		rows = append(rows, []string{
			action.Title,
			year,
			strconv.FormatBool(action.Watched),
			action.Error,
		})
	}
	fmt.Println(renderTable(headers, rows, 2))
	return nil
}
