package sources

import (
	"fmt"
	"io"

	"github.com/mmcdole/gofeed"

	"github.com/hsolkim/seaboard/internal/textnorm"
)

// googleNewsRSSFormat is the Google News search feed, pinned to the Korean
// edition so feed summaries come back in Korean.
const googleNewsRSSFormat = "https://news.google.com/rss/search?q=%s&hl=ko&gl=KR&ceid=KR:ko"

// RSSAdapter extracts entries from Google News search feeds. It is not
// part of the HTML registry: feeds are addressed by query, not by host.
// One adapter serves all query jobs concurrently; it holds no state.
type RSSAdapter struct{}

// NewRSSAdapter creates the adapter.
func NewRSSAdapter() *RSSAdapter {
	return &RSSAdapter{}
}

func (a *RSSAdapter) Name() string { return "google-news-rss" }

// QueryURL builds the feed URL for one configured search query.
func (a *RSSAdapter) QueryURL(query string) string {
	return fmt.Sprintf(googleNewsRSSFormat, textnorm.EncodeQuery(query))
}

// Extract parses a fetched feed body and returns up to limit entries.
// Entries missing a title or link are skipped; a malformed entry never
// aborts the rest of the feed. The gofeed parser initializes its format
// translators lazily on first parse and is not safe for concurrent use,
// so each call gets its own.
func (a *RSSAdapter) Extract(body io.Reader, limit int) ([]RawItem, error) {
	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]RawItem, 0, limit)
	for _, entry := range feed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}

		title := textnorm.Normalize(entry.Title)
		link := textnorm.Normalize(entry.Link)
		if title == "" || link == "" {
			continue
		}

		dateText := entry.Published
		if dateText == "" {
			dateText = entry.Updated
		}

		summary := entry.Description
		if summary == "" && entry.Content != "" {
			summary = entry.Content
		}

		items = append(items, RawItem{
			Title:    title,
			URL:      link,
			DateText: dateText,
			Summary:  textnorm.StripMarkup(summary),
		})
	}

	return dedupeAndCap(items, limit), nil
}
