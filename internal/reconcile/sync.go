package reconcile

import (
	"context"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/match"
)

// SyncAction sets one target item's watched flag to the source value.
type SyncAction struct {
	Source  catalog.MediaItem
	Target  catalog.MediaItem
	Watched bool
}

// SyncPlan is the ordered set of writes a sync run would perform.
// Under dry-run the plan is computed and reported but never applied.
type SyncPlan []SyncAction

// WatchedWriter is the write capability Apply needs from the target
// catalog. catalog.Catalog satisfies it.
type WatchedWriter interface {
	SetWatched(ctx context.Context, id string, watched bool) error
}

// ApplyFailure records one action that could not be written.
type ApplyFailure struct {
	Action SyncAction
	Err    error
}

// ApplyResult summarizes an Apply run: N applied, M failed.
type ApplyResult struct {
	Applied int
	Failed  []ApplyFailure
}

// PlanSync computes the actions needed to make target watched flags
// agree with source (source is authoritative for the chosen direction).
// Unmatched and already-agreeing items produce no action, so applying a
// plan and re-planning over refreshed inputs yields an empty plan.
func PlanSync(from, to []catalog.MediaItem, threshold int) (SyncPlan, error) {
	if err := match.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	var plan SyncPlan
	for _, src := range from {
		result, err := match.FindMatch(src.Title, src.Year, to, threshold)
		if err != nil {
			return nil, err
		}
		if !result.Matched {
			continue
		}
		if result.Best.Watched == src.Watched {
			continue
		}
		plan = append(plan, SyncAction{
			Source:  src,
			Target:  *result.Best,
			Watched: src.Watched,
		})
	}
	return plan, nil
}

// Apply writes a plan through the target catalog. A failed write never
// aborts the remaining actions; failures are collected per item.
func Apply(ctx context.Context, plan SyncPlan, writer WatchedWriter) ApplyResult {
	var result ApplyResult
	for _, action := range plan {
		if err := writer.SetWatched(ctx, action.Target.ID, action.Watched); err != nil {
			result.Failed = append(result.Failed, ApplyFailure{Action: action, Err: err})
			continue
		}
		result.Applied++
	}
	return result
}
