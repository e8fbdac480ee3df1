package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/config"
	"github.com/logictoad/plex-jellyfin-cli/internal/history"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
	"github.com/logictoad/plex-jellyfin-cli/internal/match"
	"github.com/logictoad/plex-jellyfin-cli/internal/reconcile"
)

func newSyncCmd() *cobra.Command {
	var (
		threshold int
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "sync DIRECTION LIBRARY",
		Short: "Sync watched status from one server to the other",
		Long: `Copy watched status for one library from a source server to a
target server.

DIRECTION is "source,target": "plex,jellyfin" pushes Plex watched
status to Jellyfin, "jellyfin,plex" the other way. The source is
authoritative; matched titles whose watched flags already agree are
left alone.

Each title is written independently. A failed write is reported and
skipped, and the run continues with the remaining titles.

Examples:
  plexjellyfin sync plex,jellyfin movie
  plexjellyfin sync jellyfin,plex show --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args[0], args[1], threshold, dryRun)
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", match.DefaultThreshold, "Fuzzy match threshold 0-100 (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned changes without applying them (--dry-run=false overrides config)")
	return cmd
}

// parseDirection splits "source,target" into its two server names.
func parseDirection(s string) (string, string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("direction must be \"source,target\", e.g. \"plex,jellyfin\": got %q", s)
	}
	source := strings.ToLower(strings.TrimSpace(parts[0]))
	target := strings.ToLower(strings.TrimSpace(parts[1]))
	if source == target {
		return "", "", fmt.Errorf("source and target must differ: %q", s)
	}
	return source, target, nil
}

func runSync(cmd *cobra.Command, direction, library string, flagThreshold int, dryRun bool) error {
	source, target, err := parseDirection(direction)
	if err != nil {
		return err
	}
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
	dryRun = resolveDryRun(cmd, cfg, dryRun)
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

	startedAt := time.Now()
	sourceItems, err := sourceCat.ListItems(ctx, kind)
	if err != nil {
		return err
	}
	targetItems, err := targetCat.ListItems(ctx, kind)
	if err != nil {
		return err
	}

	plan, err := reconcile.PlanSync(sourceItems, targetItems, threshold)
	if err != nil {
		return err
	}

	if len(plan) == 0 {
		fmt.Printf("%s watched status already in sync (%s -> %s).\n", displayKind(kind), source, target)
		return nil
	}

	for _, action := range plan {
		status := "watched"
		if !action.Watched {
			status = "unwatched"
		}
		if dryRun {
			fmt.Printf("[DRYRUN] would mark %q %s on %s\n", action.Target.Title, status, target)
		} else {
			fmt.Printf("Marking %q %s on %s\n", action.Target.Title, status, target)
		}
		logger.Info("sync", "watched status change",
			logging.F("title", action.Target.Title),
			logging.F("watched", action.Watched),
			logging.F("target", target),
			logging.F("dry_run", dryRun))
	}

	if dryRun {
		fmt.Printf("\n[DRYRUN] %d change(s) planned, none applied.\n", len(plan))
		return nil
	}

	result := reconcile.Apply(ctx, plan, targetCat)

	for _, failure := range result.Failed {
		fmt.Fprintf(os.Stderr, "failed to update %q: %v\n", failure.Action.Target.Title, failure.Err)
		logger.Error("sync", "watched status write failed", failure.Err,
			logging.F("title", failure.Action.Target.Title))
	}

	if cfg.History.Enabled {
		recordSyncRun(cfg, logger, direction, kind, plan, result, startedAt)
	}

	// Per-item failures are reported, not raised. Only adapter and
	// config errors fail the command.
	fmt.Printf("\n%d applied, %d failed\n", result.Applied, len(result.Failed))
	return nil
}

// recordSyncRun persists the run to the history database. History is
// best-effort; a storage problem must not fail a sync that already
// applied.
func recordSyncRun(cfg *config.Config, logger *logging.Logger, direction string, kind catalog.Kind, plan reconcile.SyncPlan, result reconcile.ApplyResult, startedAt time.Time) {
	store, err := openHistory(cfg)
	if err != nil {
		logger.Warn("history", "sync history not recorded", logging.F("error", err.Error()))
		return
	}
	defer store.Close()

	failedErr := make(map[string]string, len(result.Failed))
	for _, failure := range result.Failed {
		failedErr[failure.Action.Target.ID] = failure.Err.Error()
	}

	actions := make([]history.Action, 0, len(plan))
	for _, action := range plan {
		actions = append(actions, history.Action{
			Title:   action.Target.Title,
			Year:    action.Target.Year,
			Watched: action.Watched,
			Error:   failedErr[action.Target.ID],
		})
	}

	run := history.Run{
		Direction: direction,
		Kind:      string(kind),
		Planned:   len(plan),
		Applied:   result.Applied,
		Failed:    len(result.Failed),
		StartedAt: startedAt,
	}
	if _, err := store.RecordRun(run, actions); err != nil {
		logger.Warn("history", "sync history not recorded", logging.F("error", err.Error()))
	}
}
