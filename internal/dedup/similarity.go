// Package dedup suppresses near-duplicate records via token-set
// similarity. Exact duplicates never reach this stage; the builder's
// identity-hash map removes them first.
package dedup

import (
	"sort"

	"github.com/hsolkim/seaboard/internal/model"
)

// Deduplicator keeps the highest-ranked representative of each
// near-duplicate cluster.
type Deduplicator struct {
	threshold float64
}

// NewDeduplicator creates a deduplicator with the given Jaccard threshold.
func NewDeduplicator(threshold float64) *Deduplicator {
	return &Deduplicator{threshold: threshold}
}

// Deduplicate sorts candidates by (recency desc, importance desc) and
// keeps a candidate only when its signature stays below the similarity
// threshold against every already-kept record. Quadratic in the kept-set
// size, which is fine at a few hundred records per cycle.
func (d *Deduplicator) Deduplicate(records []model.ArticleRecord) []model.ArticleRecord {
	sorted := make([]model.ArticleRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MoreRecentThan(&sorted[j])
	})

	kept := make([]model.ArticleRecord, 0, len(sorted))
	for _, candidate := range sorted {
		duplicate := false
		for i := range kept {
			if Jaccard(candidate.Signature, kept[i].Signature) >= d.threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// Jaccard returns |A∩B| / |A∪B|. Two empty sets are defined as identical
// (1.0): when both titles reduce to nothing after company and digit
// stripping, treating them as duplicates is the conservative choice. One
// empty set against a non-empty one is 0.0.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
