// Package render writes board snapshots for the display layer: a JSON
// snapshot for programmatic consumers and a Markdown board for humans.
// Filtering (year, state, free text) is the display layer's job; the
// renderer only exposes the formatted fields filters operate on.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hsolkim/seaboard/internal/dates"
	"github.com/hsolkim/seaboard/internal/model"
)

// Renderer writes board outputs.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full board snapshot.
func (r *Renderer) RenderJSON(board *model.Board, path string) error {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the two-section board: one representative record
// per priority company, then the other updates.
func (r *Renderer) RenderMarkdown(board *model.Board, path string) error {
	var b strings.Builder

	b.WriteString("# 미국 동남부 진출 한국기업 뉴스 상황판\n\n")
	fmt.Fprintf(&b, "수집 시각: %s (UTC)\n\n", board.CollectedAt.Format("2006.01.02 15:04"))

	b.WriteString("## 주요 기업 동향\n\n")
	writeTable(&b, board.TopPriority)

	b.WriteString("\n## 기타 업데이트\n\n")
	writeTable(&b, board.OtherUpdates)

	if board.Briefing != nil {
		b.WriteString("\n## 브리핑\n\n")
		b.WriteString(board.Briefing.Text)
		b.WriteString("\n")
	}

	b.WriteString("\n## 수집 소스\n\n")
	for _, src := range board.Sources {
		switch {
		case src.Skipped:
			fmt.Fprintf(&b, "- %s — robots.txt로 수집 제외\n", src.Name)
		case src.Error != "":
			fmt.Fprintf(&b, "- %s — 실패: %s\n", src.Name, src.Error)
		default:
			fmt.Fprintf(&b, "- %s — %d건 (%s)\n", src.Name, src.Count, src.Duration)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen digest of the cycle.
func (r *Renderer) RenderSummary(board *model.Board, w io.Writer) {
	ok, failed, skipped := 0, 0, 0
	for _, src := range board.Sources {
		switch {
		case src.Skipped:
			skipped++
		case src.Error != "":
			failed++
		default:
			ok++
		}
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Records:   %d kept\n", len(board.Records))
	fmt.Fprintf(w, "  Priority:  %d companies covered\n", len(board.TopPriority))
	fmt.Fprintf(w, "  Sources:   %d ok, %d failed, %d skipped\n", ok, failed, skipped)
	fmt.Fprintf(w, "\n")

	for _, rec := range board.TopPriority {
		date := dates.Display(rec.PublishedAt)
		if date == "" {
			date = "----.--.--"
		}
		fmt.Fprintf(w, "  %-3s %-6s %s %s %s\n", rec.State, rec.Company, date, string(rec.Tag), truncate(rec.Title, 60))
	}
	fmt.Fprintf(w, "\n")
}

func writeTable(b *strings.Builder, records []model.ArticleRecord) {
	if len(records) == 0 {
		b.WriteString("_수집된 기사가 없습니다._\n")
		return
	}

	b.WriteString("| 주(State) | 기업명 | 뉴스 발행일 | 핵심 내용 | 원문 확인 |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, rec := range records {
		fmt.Fprintf(b, "| %s | %s | %s | %s %s | [%s](%s) |\n",
			rec.State,
			escapePipes(rec.Company),
			dates.Display(rec.PublishedAt),
			string(rec.Tag),
			escapePipes(rec.CoreSummary),
			escapePipes(rec.SourceName),
			rec.URL,
		)
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
