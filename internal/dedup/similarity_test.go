package dedup

import (
	"testing"
	"time"

	"github.com/hsolkim/seaboard/internal/model"
)

func sig(tokens ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		s[tok] = struct{}{}
	}
	return s
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{"identical", sig("x", "y"), sig("x", "y"), 1.0},
		{"disjoint", sig("x", "y"), sig("p", "q"), 0.0},
		{"half", sig("x", "y", "z"), sig("x", "y", "w"), 0.5},
		{"both empty", sig(), sig(), 1.0},
		{"one empty", sig(), sig("x"), 0.0},
		{"other empty", sig("x"), sig(), 0.0},
	}

	for _, tc := range cases {
		if got := Jaccard(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: Jaccard = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	a := sig("테네시", "부품", "공급", "계약")
	b := sig("테네시", "부품", "공급")
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Expected Jaccard to be symmetric")
	}
}

func TestDeduplicate_KeepsHighestRanked(t *testing.T) {
	d := NewDeduplicator(0.86)

	shared := []string{"테네시", "부품", "공급", "계약", "체결"}
	newer := model.ArticleRecord{
		Title:       "기아 테네시 부품 공급 계약 체결",
		PublishedAt: time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC),
		Signature:   sig(shared...),
	}
	older := model.ArticleRecord{
		Title:       "기아 테네시 부품 공급 계약 체결 (2)",
		PublishedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Signature:   sig(shared...),
	}
	unrelated := model.ArticleRecord{
		Title:       "한화큐셀 조지아 태양광 증설",
		PublishedAt: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		Signature:   sig("조지아", "태양광", "증설"),
	}

	kept := d.Deduplicate([]model.ArticleRecord{older, unrelated, newer})
	if len(kept) != 2 {
		t.Fatalf("Expected 2 records after dedup, got %d", len(kept))
	}
	if kept[0].Title != newer.Title {
		t.Errorf("Expected the newer duplicate kept, got %q", kept[0].Title)
	}
	for _, rec := range kept {
		if rec.Title == older.Title {
			t.Error("Expected the older duplicate suppressed")
		}
	}
}

func TestDeduplicate_BelowThresholdKept(t *testing.T) {
	d := NewDeduplicator(0.86)

	a := model.ArticleRecord{
		Title:       "현대차 조지아 공장 증설",
		PublishedAt: time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC),
		Signature:   sig("조지아", "공장", "증설"),
	}
	b := model.ArticleRecord{
		Title:       "현대차 조지아 채용 확대",
		PublishedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Signature:   sig("조지아", "채용", "확대"),
	}

	kept := d.Deduplicate([]model.ArticleRecord{a, b})
	if len(kept) != 2 {
		t.Errorf("Expected distinct stories kept, got %d", len(kept))
	}
}

func TestDeduplicate_EmptySignaturesCollapse(t *testing.T) {
	d := NewDeduplicator(0.86)

	// Two records whose titles reduced to nothing are treated as the same
	// story.
	a := model.ArticleRecord{Title: "1234", Signature: sig()}
	b := model.ArticleRecord{Title: "5678", Signature: sig()}

	kept := d.Deduplicate([]model.ArticleRecord{a, b})
	if len(kept) != 1 {
		t.Errorf("Expected empty signatures to collapse, got %d records", len(kept))
	}
}

func TestDeduplicate_EmptyInput(t *testing.T) {
	d := NewDeduplicator(0.86)
	if kept := d.Deduplicate(nil); len(kept) != 0 {
		t.Errorf("Expected empty output for empty input, got %d", len(kept))
	}
}
