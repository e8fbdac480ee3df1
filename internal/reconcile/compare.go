// Package reconcile implements the cross-catalog algorithms: the
// missing-title comparator, the watched-status sync engine, and the
// combined-version duplicate detector. All of it is read-only over its
// inputs except SyncPlan application, which writes through the
// caller-supplied catalog writer.
package reconcile

import (
	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/match"
)

// Compare reports source items with no matching counterpart in target,
// preserving source iteration order.
func Compare(source, target []catalog.MediaItem, threshold int) ([]catalog.MediaItem, error) {
	if err := match.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	var missing []catalog.MediaItem
	for _, item := range source {
		result, err := match.FindMatch(item.Title, item.Year, target, threshold)
		if err != nil {
			return nil, err
		}
		if !result.Matched {
			missing = append(missing, item)
		}
	}
	return missing, nil
}

// FindDuplicates filters items backed by more than one media source,
// preserving input order.
func FindDuplicates(items []catalog.MediaItem) []catalog.MediaItem {
	var dupes []catalog.MediaItem
	for _, item := range items {
		if item.PartCount > 1 {
			dupes = append(dupes, item)
		}
	}
	return dupes
}
