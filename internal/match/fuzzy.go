package match

import (
	"sort"
	"strings"
)

// TokenSortRatio scores the similarity of two strings from 0 to 100.
// Tokens are sorted before comparison so word order does not matter:
// "the thing" and "thing the" score 100.
func TokenSortRatio(s1, s2 string) int {
	return ratio(sortTokens(s1), sortTokens(s2))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio converts indel edit distance (insertions and deletions only)
// into a 0-100 similarity score: 2*LCS / (len1+len2) * 100. Lengths
// are counted in runes so accented titles are not penalized for their
// UTF-8 encoding width.
func ratio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}

	total := len(r1) + len(r2)
	return 2 * lcsLength(r1, r2) * 100 / total
}

// lcsLength calculates the longest common subsequence length between
// two rune sequences using a single-row rolling fill.
func lcsLength(s1, s2 []rune) int {
	len1 := len(s1)
	len2 := len(s2)

	prev := make([]int, len2+1)
	curr := make([]int, len2+1)

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			if s1[i-1] == s2[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}

	return prev[len2]
}
