package model

import "time"

// Provider identifies the ingestion channel a record came from.
type Provider string

const (
	ProviderKoreanRSS Provider = "KOREAN" // Google News RSS, Korean queries
	ProviderUSSource  Provider = "US"     // state-government / agency HTML pages
)

// Tag is the closed classification set for a record.
type Tag string

const (
	TagPolicy     Tag = "[정책/지원]"
	TagInvestment Tag = "[신규 투자]"
	TagDeal       Tag = "[수주/계약]"
	TagCapital    Tag = "[자본/공시]"
	TagSales      Tag = "[실적/매출]"
	TagGeneral    Tag = "[일반]"
)

// StateGlobal is returned when no Southeast state could be inferred.
const StateGlobal = "Global"

// ArticleRecord is the canonical unit flowing through the pipeline.
// Records are immutable once built; ranking and dedup re-order and filter,
// they never mutate fields.
type ArticleRecord struct {
	Provider    Provider  `json:"provider"`
	SourceName  string    `json:"source"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"` // zero when no reliable date parsed
	State       string    `json:"state"`
	Company     string    `json:"company"`
	Tag         Tag       `json:"tag"`
	CoreSummary string    `json:"core"`
	Importance  int       `json:"importance"`

	IdentityHash string              `json:"identity_hash"`
	Signature    map[string]struct{} `json:"-"`
}

// HasDate reports whether a publication date was resolved.
// A zero PublishedAt sorts as oldest under descending recency, so callers
// never need a separate null branch in ordering logic.
func (r *ArticleRecord) HasDate() bool {
	return !r.PublishedAt.IsZero()
}

// MoreRecentThan implements the global sort key:
// published_at descending, then importance descending.
func (r *ArticleRecord) MoreRecentThan(other *ArticleRecord) bool {
	if !r.PublishedAt.Equal(other.PublishedAt) {
		return r.PublishedAt.After(other.PublishedAt)
	}
	return r.Importance > other.Importance
}

// SourceOutcome is the typed per-source result aggregated by the collector.
// A failing source contributes zero records and must never abort the others.
type SourceOutcome struct {
	Name     string `json:"name"`
	Adapter  string `json:"adapter"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
	Skipped  bool   `json:"skipped,omitempty"` // robots.txt disallowed
	Duration string `json:"duration,omitempty"`
}

// Board is the complete output of one collection cycle.
type Board struct {
	CollectedAt  time.Time       `json:"collected_at"`
	Records      []ArticleRecord `json:"records"`
	TopPriority  []ArticleRecord `json:"top_priority"`
	OtherUpdates []ArticleRecord `json:"other_updates"`
	Sources      []SourceOutcome `json:"sources"`
	Briefing     *Briefing       `json:"briefing,omitempty"`
}

// Briefing is an optional LLM-written digest of the top selection.
// It is generated after ranking and never feeds back into the pipeline.
type Briefing struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}
