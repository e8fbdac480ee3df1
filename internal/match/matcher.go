package match

import (
	"fmt"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

// DefaultThreshold is the minimum similarity score treated as a match
// when the caller does not override it.
const DefaultThreshold = 85

// MatchResult is the outcome of one matcher call. An ambiguous or
// missing match is not an error; it is Matched=false.
type MatchResult struct {
	Query string
	// Best is the highest-scoring candidate, nil when candidates was
	// empty.
	Best    *catalog.MediaItem
	Score   int
	Matched bool
}

// ValidateThreshold rejects thresholds outside [0,100]. Called by every
// entry point before any catalog I/O.
func ValidateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("%w: %d", catalog.ErrInvalidThreshold, threshold)
	}
	return nil
}

// FindMatch returns the best candidate for a query title above the
// similarity threshold. Year acts as a hard gate: when both the query
// and the top-scoring candidate carry a year and they differ, the match
// is rejected regardless of score. Candidates without a year are never
// rejected on year grounds. Ties keep the first candidate encountered,
// so callers must supply deterministic ordering.
func FindMatch(queryTitle string, queryYear int, candidates []catalog.MediaItem, threshold int) (MatchResult, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return MatchResult{}, err
	}

	result := MatchResult{Query: queryTitle}

	query := Normalize(queryTitle)
	if queryYear == 0 {
		queryYear = query.Year
	}

	bestScore := -1
	bestIdx := -1
	bestYearOK := false
	for i := range candidates {
		candidate := Normalize(candidates[i].Title)

		candidateYear := candidates[i].Year
		if candidateYear == 0 {
			candidateYear = candidate.Year
		}
		yearOK := queryYear == 0 || candidateYear == 0 || queryYear == candidateYear

		score := TokenSortRatio(query.Base, candidate.Base)
		// First encountered wins a plain tie; a year-compatible
		// candidate displaces an equal-scoring incompatible one.
		if score > bestScore || (score == bestScore && yearOK && !bestYearOK) {
			bestScore = score
			bestIdx = i
			bestYearOK = yearOK
		}
	}

	if bestIdx < 0 {
		return result, nil
	}

	best := candidates[bestIdx]
	result.Best = &best
	result.Score = bestScore

	if !bestYearOK {
		// Same-titled releases from different years are distinct titles.
		return result, nil
	}

	result.Matched = bestScore >= threshold
	return result, nil
}
