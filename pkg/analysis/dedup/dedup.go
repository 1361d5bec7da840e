// Package dedup merges findings from overlapping chunks by clause-text
// similarity and provides the canonical finding ordering.
package dedup

import (
	"sort"
	"strings"

	"github.com/Tigierre/contractguardian/internal/entity"
)

// SimilarityThreshold is the Jaccard score above which two clause texts are
// considered the same finding.
const SimilarityThreshold = 0.8

// DeduplicateFindings keeps a finding only if no previously-kept finding has
// clause-text similarity above the threshold. First occurrence always wins;
// later near-duplicates (typically from a clause straddling a chunk-overlap
// boundary) are dropped even when they carry richer metadata.
func DeduplicateFindings(findings []*entity.Finding) []*entity.Finding {
	kept := make([]*entity.Finding, 0, len(findings))
	for _, f := range findings {
		duplicate := false
		for _, k := range kept {
			if JaccardSimilarity(f.ClauseText, k.ClauseText) > SimilarityThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, f)
		}
	}
	return kept
}

// SortFindings returns a new slice in canonical order: improvements before
// strengths, improvements by priority rank, ties preserving input order.
// The input slice is untouched.
func SortFindings(findings []*entity.Finding) []*entity.Finding {
	sorted := make([]*entity.Finding, len(findings))
	copy(sorted, findings)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Type != b.Type {
			return a.Type == entity.FindingTypeImprovement
		}
		if a.Type == entity.FindingTypeImprovement {
			return entity.PriorityRank(a.Priority) < entity.PriorityRank(b.Priority)
		}
		return false
	})

	return sorted
}

// JaccardSimilarity computes |intersection| / |union| over the sets of
// lowercase whitespace-split tokens of the two texts. Two empty token sets
// score zero.
func JaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = struct{}{}
	}
	return set
}
