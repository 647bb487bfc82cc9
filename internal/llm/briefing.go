package llm

import (
	"fmt"
	"strings"

	"github.com/hsolkim/seaboard/internal/dates"
	"github.com/hsolkim/seaboard/internal/model"
)

const briefingSystemPrompt = "당신은 미국 동남부에 진출한 한국 기업 동향을 요약하는 애널리스트입니다. " +
	"제공된 기사 목록에 있는 내용만 사용하고, 목록에 없는 사실을 추측하지 마세요."

// maxBriefingItems caps the prompt size; the top selection is already
// bounded, the tail is not.
const maxBriefingItems = 15

// BuildPrompt renders the ranked selections into the briefing prompt. Only
// titles, tags, dates and states go in; the model is not asked to follow
// links.
func BuildPrompt(board *model.Board) string {
	var b strings.Builder

	b.WriteString("다음은 오늘 수집된 주요 기사입니다.\n\n주요 기업 동향:\n")
	writeItems(&b, board.TopPriority)

	if len(board.OtherUpdates) > 0 {
		b.WriteString("\n기타 동향:\n")
		writeItems(&b, board.OtherUpdates)
	}

	b.WriteString("\n위 기사들을 바탕으로 4~6문장의 한국어 브리핑을 작성하세요. " +
		"주(State)별 흐름과 기업별 핵심 사건을 중심으로 요약하고, 기사에 없는 내용은 언급하지 마세요.")
	return b.String()
}

func writeItems(b *strings.Builder, records []model.ArticleRecord) {
	count := 0
	for _, rec := range records {
		if count >= maxBriefingItems {
			fmt.Fprintf(b, "- (외 %d건)\n", len(records)-count)
			return
		}
		date := dates.Display(rec.PublishedAt)
		if date == "" {
			date = "날짜 미상"
		}
		fmt.Fprintf(b, "- [%s] %s %s | %s (%s)\n", rec.State, rec.Company, string(rec.Tag), rec.Title, date)
		count++
	}
}
