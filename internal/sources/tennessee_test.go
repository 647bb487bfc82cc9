package sources

import (
	"testing"

	"github.com/hsolkim/seaboard/internal/model"
)

const tnecdListing = `
<html><body>
<a href="/news/">All News</a>
<div class="news-item">
  <a href="/news/lg-chem-clarksville">02.04.2026 LG Chem Expands Clarksville Cathode Plant</a>
</div>
<div class="news-item">
  <a href="/news/hankook-supplier-park">Hankook Supplier Park Announced</a>
  <span class="meta">Posted 01.22.2026 by TNECD staff</span>
</div>
<div class="news-item">
  <a href="/news/undated-entry">Workforce Program Launches Statewide</a>
</div>
</body></html>`

func TestTennesseeECDAdapter_Extract(t *testing.T) {
	adapter := NewTennesseeECDAdapter()
	base := mustParseURL(t, "https://tnecd.com/news/")
	doc := parseDoc(t, tnecdListing)

	items := adapter.Extract(doc, base, model.SourceConfig{URL: base.String()}, 30)

	// The bare listing link is dropped, the three entries survive.
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d: %+v", len(items), items)
	}

	// Date token inside the link text is extracted and stripped from the
	// title.
	first := items[0]
	if first.DateText != "02.04.2026" {
		t.Errorf("Expected date from link text, got %q", first.DateText)
	}
	if first.Title != "LG Chem Expands Clarksville Cathode Plant" {
		t.Errorf("Expected date token stripped from title, got %q", first.Title)
	}

	// Date token in the surrounding block.
	if items[1].DateText != "01.22.2026" {
		t.Errorf("Expected date from entry block, got %q", items[1].DateText)
	}
	if items[1].Title != "Hankook Supplier Park Announced" {
		t.Errorf("Unexpected title: %q", items[1].Title)
	}

	// No date anywhere: empty date text, entry still kept.
	if items[2].DateText != "" {
		t.Errorf("Expected empty date text, got %q", items[2].DateText)
	}
}

func TestTennesseeECDAdapter_CanHandle(t *testing.T) {
	adapter := NewTennesseeECDAdapter()

	for _, host := range []string{"tnecd.com", "www.tnecd.com", "tn.gov"} {
		if !adapter.CanHandle(host) {
			t.Errorf("Expected CanHandle(%q) = true", host)
		}
	}
	if adapter.CanHandle("georgia.gov") {
		t.Error("Expected CanHandle(georgia.gov) = false")
	}
}
