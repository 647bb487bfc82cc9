package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hsolkim/seaboard/internal/classify"
	"github.com/hsolkim/seaboard/internal/dates"
	"github.com/hsolkim/seaboard/internal/detect"
	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/sources"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// coreSummaryLimit is the display length of the one-line synopsis, in
// runes, before the ellipsis marker.
const coreSummaryLimit = 180

var signatureTokenRe = regexp.MustCompile(`[0-9a-z가-힣]+`)

// signatureStopwords drop function words and board-ubiquitous terms from
// similarity signatures; they carry no discriminating power between two
// headlines about the same event.
var signatureStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"for": {}, "with": {}, "by": {}, "and": {}, "or": {}, "as": {}, "at": {}, "from": {},
	"is": {}, "are": {}, "its": {}, "new": {},
	"억달러": {}, "달러": {}, "억원": {}, "조원": {},
}

// Builder assembles an adapter's raw triples plus detector and classifier
// outputs into immutable ArticleRecords.
type Builder struct {
	states    *detect.StateDetector
	companies *detect.CompanyDetector
	tagger    *classify.Tagger
	scorer    *classify.Scorer
}

// NewBuilder creates a builder wired to the configured detectors.
func NewBuilder(cfg *model.Config) *Builder {
	return &Builder{
		states:    detect.NewStateDetector(cfg.States),
		companies: detect.NewCompanyDetector(cfg.Companies),
		tagger:    classify.NewTagger(),
		scorer:    classify.NewScorer(cfg),
	}
}

// Build turns one raw item into a record. ok is false when the item lacks
// a title or URL; such items never become records.
func (b *Builder) Build(provider model.Provider, sourceName, sourceURL string, item sources.RawItem) (model.ArticleRecord, bool) {
	title := textnorm.Normalize(item.Title)
	link := textnorm.Normalize(item.URL)
	if title == "" || link == "" {
		return model.ArticleRecord{}, false
	}

	company := b.companies.Detect(title)
	tag := b.tagger.Classify(title)

	rec := model.ArticleRecord{
		Provider:     provider,
		SourceName:   sourceName,
		Title:        title,
		URL:          link,
		PublishedAt:  dates.Parse(item.DateText),
		State:        b.states.Detect(title, sourceURL),
		Company:      company,
		Tag:          tag,
		CoreSummary:  makeCore(item.Summary, title),
		Importance:   b.scorer.Score(company, tag, provider),
		IdentityHash: IdentityHash(provider, title, link),
		Signature:    Signature(title, company),
	}
	return rec, true
}

// IdentityHash is the exact-dedup key: a sha256 over the normalized
// (provider, title, url) triple with an unambiguous separator.
func IdentityHash(provider model.Provider, title, url string) string {
	raw := string(provider) + "||" + textnorm.Normalize(title) + "||" + textnorm.Normalize(url)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Signature builds the near-dedup token set for a title: lowercase, strip
// the detected company and all digits and punctuation, drop stop words and
// single-rune leftovers. Two syndicated copies of one press release reduce
// to the same set even when share counters or dollar figures differ.
func Signature(title, company string) map[string]struct{} {
	lower := strings.ToLower(textnorm.Normalize(title))
	if company != "" && company != detect.UnidentifiedCompany {
		lower = strings.ReplaceAll(lower, strings.ToLower(company), " ")
	}

	sig := make(map[string]struct{})
	for _, tok := range signatureTokenRe.FindAllString(lower, -1) {
		tok = strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return -1
			}
			return r
		}, tok)
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if _, stop := signatureStopwords[tok]; stop {
			continue
		}
		sig[tok] = struct{}{}
	}
	return sig
}

// makeCore picks the one-line synopsis: feed summary when present,
// headline otherwise, truncated to the display length.
func makeCore(summary, title string) string {
	core := textnorm.Normalize(summary)
	if core == "" {
		core = textnorm.Normalize(title)
	}

	runes := []rune(core)
	if len(runes) > coreSummaryLimit {
		return string(runes[:coreSummaryLimit]) + "…"
	}
	return core
}
