// Package rank orders deduplicated records and carves out the board's two
// sections: one representative per priority company, and the best of the
// rest.
package rank

import (
	"sort"

	"github.com/hsolkim/seaboard/internal/model"
)

// Ranker applies the global sort order and the board selections.
type Ranker struct {
	cfg *model.Config
}

// NewRanker creates a ranker bound to the given configuration.
func NewRanker(cfg *model.Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Sort returns records in the global order: published_at descending, then
// importance descending. A missing date is the zero time, so undated
// records sink to the bottom without any null handling. Stable, so ties
// keep a consistent order.
func (r *Ranker) Sort(records []model.ArticleRecord) []model.ArticleRecord {
	out := make([]model.ArticleRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MoreRecentThan(&out[j])
	})
	return out
}

// TopPerCompany keeps the single highest-ranked record for each priority
// company, orders the result by priority-list position (not by score), and
// caps it. Companies with no coverage this cycle simply do not appear.
func (r *Ranker) TopPerCompany(records []model.ArticleRecord) []model.ArticleRecord {
	best := make(map[string]model.ArticleRecord)
	for _, rec := range r.Sort(records) {
		if r.cfg.PriorityIndex(rec.Company) < 0 {
			continue
		}
		if _, seen := best[rec.Company]; !seen {
			best[rec.Company] = rec
		}
	}

	out := make([]model.ArticleRecord, 0, len(best))
	for _, company := range r.cfg.Companies {
		if rec, ok := best[company.Name]; ok {
			out = append(out, rec)
		}
		if r.cfg.Limits.TopPriority > 0 && len(out) >= r.cfg.Limits.TopPriority {
			break
		}
	}
	return out
}

// OtherUpdates returns the top records whose company is not on the
// priority list, in global order, capped.
func (r *Ranker) OtherUpdates(records []model.ArticleRecord) []model.ArticleRecord {
	out := make([]model.ArticleRecord, 0, r.cfg.Limits.OtherUpdates)
	for _, rec := range r.Sort(records) {
		if r.cfg.PriorityIndex(rec.Company) >= 0 {
			continue
		}
		out = append(out, rec)
		if r.cfg.Limits.OtherUpdates > 0 && len(out) >= r.cfg.Limits.OtherUpdates {
			break
		}
	}
	return out
}
