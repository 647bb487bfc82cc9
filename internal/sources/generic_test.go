package sources

import (
	"reflect"
	"testing"

	"github.com/hsolkim/seaboard/internal/model"
)

const articleListing = `
<html><body>
<article>
  <h2><a href="/news/samsung-sdi-battery-plant">Samsung SDI Selects Site for Battery Plant</a></h2>
  <time datetime="2026-02-04">Feb 4, 2026</time>
  <p>Teaser text.</p>
</article>
<article>
  <h2><a href="/news/sk-on-expansion">SK On Doubles Commerce Output</a></h2>
  <time>January 30, 2026</time>
</article>
<article>
  <p>Container with no link at all.</p>
</article>
</body></html>`

const plainListing = `
<html><body>
<a href="/">Home</a>
<a href="/contact">Contact</a>
<a href="/news/posco-alabama-wire-plant">POSCO opens Alabama wire rod plant</a>
<a href="/news/short">Too short</a>
<a href="mailto:press@example.com">Press contact mailbox address</a>
</body></html>`

func TestGenericAdapter_ArticleContainers(t *testing.T) {
	adapter := NewGenericAdapter()
	base := mustParseURL(t, "https://www.sccommerce.com/news")
	doc := parseDoc(t, articleListing)

	items := adapter.Extract(doc, base, model.SourceConfig{URL: base.String()}, 30)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d: %+v", len(items), items)
	}

	// datetime attribute preferred over visible text.
	if items[0].DateText != "2026-02-04" {
		t.Errorf("Expected datetime attribute, got %q", items[0].DateText)
	}
	if items[0].URL != "https://www.sccommerce.com/news/samsung-sdi-battery-plant" {
		t.Errorf("Expected resolved URL, got %q", items[0].URL)
	}

	// Visible time text when the attribute is absent.
	if items[1].DateText != "January 30, 2026" {
		t.Errorf("Expected visible time text, got %q", items[1].DateText)
	}
}

func TestGenericAdapter_AnchorScanFallback(t *testing.T) {
	adapter := NewGenericAdapter()
	base := mustParseURL(t, "https://www.example.com/news")
	doc := parseDoc(t, plainListing)

	items := adapter.Extract(doc, base, model.SourceConfig{URL: base.String()}, 30)

	// Only the long-enough, non-mailto anchor survives the fallback scan.
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d: %+v", len(items), items)
	}
	if items[0].Title != "POSCO opens Alabama wire rod plant" {
		t.Errorf("Unexpected title: %q", items[0].Title)
	}
	if items[0].DateText != "" {
		t.Errorf("Fallback scan has no date source, got %q", items[0].DateText)
	}
}

func TestGenericAdapter_ExternalLinkPolicy(t *testing.T) {
	adapter := NewGenericAdapter()
	base := mustParseURL(t, "https://www.selectflorida.org/news/")
	html := `<html><body>
		<a href="https://www.bizjournals.com/article/korean-supplier-expands-florida">Korean supplier expands Florida operations</a>
	</body></html>`
	doc := parseDoc(t, html)

	// Default policy drops external domains.
	items := adapter.Extract(doc, base, model.SourceConfig{URL: base.String()}, 30)
	if len(items) != 0 {
		t.Errorf("Expected external link dropped by default, got %d items", len(items))
	}

	// Aggregator-style sources opt in.
	items = adapter.Extract(doc, base, model.SourceConfig{URL: base.String(), AllowExternalLinks: true}, 30)
	if len(items) != 1 {
		t.Errorf("Expected external link kept when allowed, got %d items", len(items))
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		url  string
		want string
	}{
		{"https://gov.georgia.gov/press-releases", "georgia-press"},
		{"https://www.georgia.org/press-releases", "georgia-press"},
		{"https://tnecd.com/news/", "tnecd-news"},
		{"https://www.madeinalabama.com/news/", "generic"},
		{"https://www.sccommerce.com/news", "generic"},
		{"not a url at all ://", "generic"},
	}

	for _, tc := range cases {
		if got := registry.ForURL(tc.url).Name(); got != tc.want {
			t.Errorf("ForURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestAdapters_ExtractIdempotent(t *testing.T) {
	// Feeding the same page to an adapter twice yields the same item set.
	cases := []struct {
		adapter Adapter
		base    string
		html    string
	}{
		{NewGeorgiaPressAdapter(), "https://gov.georgia.gov/press-releases", georgiaListing},
		{NewTennesseeECDAdapter(), "https://tnecd.com/news/", tnecdListing},
		{NewGenericAdapter(), "https://www.sccommerce.com/news", articleListing},
		{NewGenericAdapter(), "https://www.example.com/news", plainListing},
	}

	for _, tc := range cases {
		base := mustParseURL(t, tc.base)
		doc := parseDoc(t, tc.html)
		src := model.SourceConfig{URL: tc.base}

		first := tc.adapter.Extract(doc, base, src, 30)
		second := tc.adapter.Extract(doc, base, src, 30)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: expected identical item sets, got %+v vs %+v",
				tc.adapter.Name(), first, second)
		}
		if len(first) == 0 {
			t.Errorf("%s: fixture produced no items", tc.adapter.Name())
		}
	}
}

func TestDedupeAndCap(t *testing.T) {
	items := []RawItem{
		{Title: "A", URL: "https://x/1"},
		{Title: "A", URL: "https://x/1"}, // duplicate pair
		{Title: "A", URL: "https://x/2"}, // same title, different URL
		{Title: "B", URL: "https://x/3"},
	}

	out := dedupeAndCap(items, 0)
	if len(out) != 3 {
		t.Errorf("Expected 3 unique items, got %d", len(out))
	}

	out = dedupeAndCap(items, 2)
	if len(out) != 2 {
		t.Errorf("Expected cap of 2, got %d", len(out))
	}
}
