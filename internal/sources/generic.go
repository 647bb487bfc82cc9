package sources

import (
	"net/url"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// minAnchorTextLen suppresses menu and footer noise in the link-scan
// fallback; navigation snippets are rarely this long.
const minAnchorTextLen = 12

// GenericAdapter is the fallback heuristic for listing pages no specific
// adapter knows. It prefers links inside article-like containers with an
// explicit time element, and only then scans the page for links with long
// enough anchor text.
type GenericAdapter struct{}

// NewGenericAdapter creates the fallback adapter.
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

func (a *GenericAdapter) Name() string { return "generic" }

// CanHandle always returns true; the registry uses this adapter as its
// default entry.
func (a *GenericAdapter) CanHandle(string) bool { return true }

// Extract first tries <article> containers, taking each container's first
// link and any <time> element (datetime attribute over visible text). When
// the page has no article markup at all, it falls back to scanning every
// link with sufficiently long anchor text.
func (a *GenericAdapter) Extract(doc *goquery.Document, base *url.URL, src model.SourceConfig, maxItems int) []RawItem {
	var items []RawItem

	doc.Find("article").Each(func(_ int, art *goquery.Selection) {
		sel := art.Find("a[href]").First()
		if sel.Length() == 0 {
			return
		}
		href, _ := sel.Attr("href")
		link := resolveLink(base, href)
		title := anchorText(sel)
		if link == "" || title == "" || !acceptLink(link, base, src) {
			return
		}

		dateText := ""
		if timeTag := art.Find("time").First(); timeTag.Length() > 0 {
			if dt, ok := timeTag.Attr("datetime"); ok && textnorm.Normalize(dt) != "" {
				dateText = textnorm.Normalize(dt)
			} else {
				dateText = anchorText(timeTag)
			}
		}

		items = append(items, RawItem{Title: title, URL: link, DateText: dateText})
	})

	if len(items) == 0 {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			link := resolveLink(base, href)
			title := anchorText(sel)
			if link == "" || title == "" || !acceptLink(link, base, src) {
				return
			}
			if utf8.RuneCountInString(title) < minAnchorTextLen {
				return
			}
			items = append(items, RawItem{Title: title, URL: link})
		})
	}

	return dedupeAndCap(items, maxItems)
}
