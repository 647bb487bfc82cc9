package sources

import (
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

var (
	// Georgia press-release permalinks carry a dated path segment, e.g.
	// /press-releases/2026-02-04/hyundai-expansion.
	georgiaPressPathRe = regexp.MustCompile(`/press-releases?/\d{4}`)

	// monthNameDateRe matches the long-form dates the listings print, e.g.
	// "February 04, 2026" or "Feb 4, 2026".
	monthNameDateRe = regexp.MustCompile(
		`(January|February|March|April|May|June|July|August|September|October|November|December|` +
			`Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}`)
)

// GeorgiaPressAdapter extracts the press-release listings published by the
// Georgia governor's office and the Department of Economic Development.
// Both render the same listing markup.
type GeorgiaPressAdapter struct{}

// NewGeorgiaPressAdapter creates the adapter.
func NewGeorgiaPressAdapter() *GeorgiaPressAdapter {
	return &GeorgiaPressAdapter{}
}

func (a *GeorgiaPressAdapter) Name() string { return "georgia-press" }

func (a *GeorgiaPressAdapter) CanHandle(host string) bool {
	return hostMatches(host, "georgia.gov") || hostMatches(host, "georgia.org")
}

// Extract keeps only links whose path matches the dated press-release
// pattern. The listing prints the release date either inside the link text
// or in the surrounding teaser block, so both are searched, link text
// first.
func (a *GeorgiaPressAdapter) Extract(doc *goquery.Document, base *url.URL, src model.SourceConfig, maxItems int) []RawItem {
	var items []RawItem

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link := resolveLink(base, href)
		if link == "" || !acceptLink(link, base, src) {
			return
		}

		parsed, err := url.Parse(link)
		if err != nil || !georgiaPressPathRe.MatchString(parsed.Path) {
			return
		}

		title := anchorText(sel)
		if title == "" {
			return
		}

		dateText := monthNameDateRe.FindString(title)
		if dateText == "" {
			if parent := sel.Parent(); parent.Length() > 0 {
				dateText = monthNameDateRe.FindString(textnorm.Normalize(parent.Text()))
			}
		}

		items = append(items, RawItem{Title: title, URL: link, DateText: dateText})
	})

	return dedupeAndCap(items, maxItems)
}
