// Package sources holds one extraction strategy per known site family plus
// a generic fallback. Each adapter turns a fetched listing page into raw
// (title, absolute url, date text) triples; everything downstream of that
// is the builder's job.
package sources

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// RawItem is the raw triple produced by an adapter. DateText is the
// unparsed date string as found on the page, empty when the page exposes
// none.
type RawItem struct {
	Title    string
	URL      string
	DateText string
	Summary  string // feed-provided synopsis; empty for listing pages
}

// Adapter is one extraction strategy for a family of listing pages.
type Adapter interface {
	// Name identifies the adapter in logs and source outcomes.
	Name() string

	// CanHandle reports whether this adapter knows the given host.
	CanHandle(host string) bool

	// Extract pulls raw items out of a parsed listing page. base is the
	// page URL used to resolve relative hrefs; src carries the per-source
	// policy knobs.
	Extract(doc *goquery.Document, base *url.URL, src model.SourceConfig, maxItems int) []RawItem
}

// Registry dispatches a listing page to the adapter that knows its host,
// falling back to the generic heuristic for unknown shapes. This replaces
// an if/else chain over domain strings with an open strategy table.
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry builds the registry with the built-in site adapters
// registered and the generic adapter as the default entry.
func NewRegistry() *Registry {
	r := &Registry{generic: NewGenericAdapter()}
	r.Register(NewGeorgiaPressAdapter())
	r.Register(NewTennesseeECDAdapter())
	return r
}

// Register appends an adapter. Specific adapters are tried in
// registration order.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// ForURL returns the adapter responsible for the given source URL.
func (r *Registry) ForURL(rawURL string) Adapter {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return r.generic
	}
	host := strings.ToLower(parsed.Hostname())
	for _, a := range r.adapters {
		if a.CanHandle(host) {
			return a
		}
	}
	return r.generic
}

// hostMatches reports whether host equals domain or is a subdomain of it.
func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// resolveLink resolves an href against the page base, dropping anchors,
// javascript:/mailto: pseudo-links and non-http(s) schemes.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// binarySuffixes are link targets that are documents, not articles.
var binarySuffixes = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".zip"}

// acceptLink applies the shared link policy: no binary documents, and no
// external domains unless the source explicitly allows them.
func acceptLink(link string, base *url.URL, src model.SourceConfig) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}

	lowerPath := strings.ToLower(parsed.Path)
	for _, suffix := range binarySuffixes {
		if strings.HasSuffix(lowerPath, suffix) {
			return false
		}
	}

	if !src.AllowExternalLinks && !hostMatches(strings.ToLower(parsed.Hostname()), strings.ToLower(base.Hostname())) {
		return false
	}
	return true
}

// dedupeAndCap removes duplicate (title, url) pairs within one page's
// extraction and truncates to maxItems.
func dedupeAndCap(items []RawItem, maxItems int) []RawItem {
	type key struct{ title, url string }
	seen := make(map[key]struct{}, len(items))
	out := make([]RawItem, 0, len(items))

	for _, it := range items {
		k := key{it.Title, it.URL}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
		if maxItems > 0 && len(out) >= maxItems {
			break
		}
	}
	return out
}

// anchorText returns the normalized visible text of a selection.
func anchorText(sel *goquery.Selection) string {
	return textnorm.Normalize(sel.Text())
}
