package llm

import (
	"context"
	"fmt"

	"github.com/pkarpov/verbscope/internal/model"
)

// Summarizer wraps a provider and produces the report attachment
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer; returns nil (and no error) when
// no provider is configured.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{provider: provider, config: cfg}, nil
}

// Summarize generates the LLMSummary attachment for a report. Failures
// are returned to the caller to surface as warnings; they never abort
// the run.
func (s *Summarizer) Summarize(ctx context.Context, r *model.Report) (*model.LLMSummary, error) {
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    *r,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s summary: %w", s.provider.Name(), err)
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}
