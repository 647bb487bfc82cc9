// Package classify assigns topic tags and importance scores to headlines.
package classify

import (
	"strings"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// tagRule is one ordered keyword set. First matching rule wins, so the
// order encodes precedence: policy/government evidence beats investment,
// which beats deal/contract, and so on.
type tagRule struct {
	tag      model.Tag
	keywords []string
}

var tagRules = []tagRule{
	{model.TagPolicy, []string{
		"정책", "지원금", "보조금", "인센티브", "세제혜택", "규제",
		"policy", "incentive", "grant", "subsidy", "tax credit", "governor",
	}},
	{model.TagInvestment, []string{
		"투자", "공장", "신설", "증설", "착공", "건설", "진출",
		"investment", "invest", "expansion", "plant", "facility", "factory", "groundbreaking",
	}},
	{model.TagDeal, []string{
		"수주", "계약", "공급", "납품", "협약", "mou",
		"contract", "deal", "supply", "order", "agreement",
	}},
	{model.TagCapital, []string{
		"공시", "유상증자", "지분", "상장", "ipo", "인수", "합병",
		"disclosure", "stake", "shares", "acquisition", "merger",
	}},
	{model.TagSales, []string{
		"실적", "매출", "영업이익", "판매량",
		"earnings", "revenue", "sales", "profit",
	}},
}

// Tagger classifies a headline into the closed tag set.
type Tagger struct{}

// NewTagger creates a tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Classify returns the first matching tag, or TagGeneral when no keyword
// set matches.
func (t *Tagger) Classify(text string) model.Tag {
	lower := strings.ToLower(textnorm.Normalize(text))
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.tag
			}
		}
	}
	return model.TagGeneral
}
