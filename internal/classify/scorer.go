package classify

import "github.com/hsolkim/seaboard/internal/model"

// Scorer computes the additive importance score used for ranking.
// Component weights come from configuration; Config.Validate guarantees
// the ordering contract priority company > tag > provenance bonus, so a
// priority company always outranks a hot topic from an unknown firm.
type Scorer struct {
	cfg *model.Config
}

// NewScorer creates a scorer bound to the given configuration.
func NewScorer(cfg *model.Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns the importance of a record-to-be. The value has no meaning
// outside relative ordering within one collection cycle.
func (s *Scorer) Score(company string, tag model.Tag, provider model.Provider) int {
	score := 0

	if s.cfg.PriorityIndex(company) >= 0 {
		score += s.cfg.Scoring.PriorityCompany
	}

	score += s.cfg.Scoring.TagWeights[tag]

	// Korean-language feed summaries are consistently richer than what the
	// state listing pages expose, so native-language provenance earns a
	// small bonus.
	if provider == model.ProviderKoreanRSS {
		score += s.cfg.Scoring.KoreanRSSBonus
	}

	return score
}
