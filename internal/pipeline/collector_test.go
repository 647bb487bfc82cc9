package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hsolkim/seaboard/internal/model"
)

const listingPage = `<html><body>
<article>
  <h2><a href="/news/hyundai-georgia-expansion">Hyundai Announces Georgia Plant Expansion</a></h2>
  <time datetime="2026-02-04">Feb 4, 2026</time>
</article>
<article>
  <h2><a href="/news/supplier-park">New Supplier Park Breaks Ground in Georgia</a></h2>
  <time datetime="2026-02-03">Feb 3, 2026</time>
</article>
</body></html>`

func collectorConfig(sources ...model.SourceConfig) *model.Config {
	cfg := model.DefaultConfig()
	cfg.KoreanQueries = nil
	cfg.USSources = sources
	cfg.HTTP.RespectRobots = false
	cfg.HTTP.RequestsPerSecond = 100
	cfg.HTTP.Burst = 100
	return cfg
}

func TestCollector_CollectFromHTMLSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, listingPage)
	}))
	defer server.Close()

	cfg := collectorConfig(model.SourceConfig{Name: "Test Source", URL: server.URL + "/news"})
	collector := NewCollector(cfg, zerolog.Nop())

	board, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(board.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(board.Records))
	}

	first := board.Records[0]
	if first.Title != "Hyundai Announces Georgia Plant Expansion" {
		t.Errorf("Expected newest record first, got %q", first.Title)
	}
	if first.Provider != model.ProviderUSSource {
		t.Errorf("Expected US provider, got %q", first.Provider)
	}
	if first.State != "GA" {
		t.Errorf("Expected GA from headline, got %q", first.State)
	}
	if first.Company != "현대" {
		t.Errorf("Expected Hyundai alias canonicalized, got %q", first.Company)
	}
	if !first.HasDate() {
		t.Error("Expected datetime attribute parsed")
	}

	if len(board.Sources) != 1 {
		t.Fatalf("Expected 1 source outcome, got %d", len(board.Sources))
	}
	outcome := board.Sources[0]
	if outcome.Error != "" || outcome.Skipped {
		t.Errorf("Expected clean outcome, got %+v", outcome)
	}
	if outcome.Count != 2 || outcome.Adapter != "generic" {
		t.Errorf("Unexpected outcome: %+v", outcome)
	}

	// The Hyundai record is priority coverage, the supplier park is not.
	if len(board.TopPriority) != 1 || board.TopPriority[0].Company != "현대" {
		t.Errorf("Unexpected top-priority selection: %+v", board.TopPriority)
	}
	if len(board.OtherUpdates) != 1 {
		t.Errorf("Unexpected other-updates selection: %+v", board.OtherUpdates)
	}
}

func TestCollector_SourceFailureIsolated(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, listingPage)
	}))
	defer healthy.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	cfg := collectorConfig(
		model.SourceConfig{Name: "Healthy", URL: healthy.URL + "/news"},
		model.SourceConfig{Name: "Broken", URL: broken.URL + "/news"},
	)
	collector := NewCollector(cfg, zerolog.Nop())

	board, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected cycle to survive a failing source, got %v", err)
	}

	if len(board.Records) != 2 {
		t.Errorf("Expected healthy source's records, got %d", len(board.Records))
	}

	byName := make(map[string]model.SourceOutcome, len(board.Sources))
	for _, o := range board.Sources {
		byName[o.Name] = o
	}
	if byName["Healthy"].Error != "" {
		t.Errorf("Healthy source polluted: %+v", byName["Healthy"])
	}
	if byName["Broken"].Error == "" {
		t.Error("Expected failure recorded on the broken source")
	}
}

func TestCollector_ExactDuplicatesCollapse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, listingPage)
	}))
	defer server.Close()

	// Two configured sources pointing at the same listing produce records
	// with identical identity hashes; only one copy of each survives.
	cfg := collectorConfig(
		model.SourceConfig{Name: "A", URL: server.URL + "/news"},
		model.SourceConfig{Name: "B", URL: server.URL + "/news"},
	)
	collector := NewCollector(cfg, zerolog.Nop())

	board, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(board.Records) != 2 {
		t.Errorf("Expected exact duplicates collapsed to 2 records, got %d", len(board.Records))
	}
}

func TestCollector_CancelledContext(t *testing.T) {
	cfg := collectorConfig(model.SourceConfig{Name: "Unreachable", URL: "http://127.0.0.1:1/news"})
	collector := NewCollector(cfg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := collector.Collect(ctx); err == nil {
		t.Error("Expected error for dead context")
	}
}
