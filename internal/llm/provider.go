// Package llm generates an optional written briefing of the ranked board.
// The briefing runs after ranking and never feeds back into extraction,
// classification, scoring or dedup.
package llm

import (
	"context"

	"github.com/hsolkim/seaboard/internal/model"
)

// Provider is the seam between the briefing builder and a concrete
// OpenAI-compatible backend.
type Provider interface {
	// Name identifies the provider in the board output.
	Name() string

	// Complete runs one chat completion and returns the text.
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Generate builds the briefing prompt from the board's top selection and
// asks the provider for a digest. Errors are the caller's to downgrade to
// warnings; a failed briefing must never fail the collection.
func Generate(ctx context.Context, p Provider, cfg model.LLMConfig, board *model.Board) (*model.Briefing, error) {
	text, err := p.Complete(ctx, briefingSystemPrompt, BuildPrompt(board))
	if err != nil {
		return nil, err
	}
	return &model.Briefing{
		Provider: p.Name(),
		Model:    cfg.Model,
		Text:     text,
	}, nil
}
