// Package llm adds an optional natural-language commentary to a verb
// report. The summary never feeds back into the statistics.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkarpov/verbscope/internal/model"
)

// Provider is the contract for summary backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a short commentary on the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest is the input for summary generation
type SummarizeRequest struct {
	Report    model.Report
	Prompt    string // optional custom prompt
	Model     string // provider-specific model name
	MaxTokens int
}

// SummarizeResponse is the generated output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider  string // "openai", "ollama", "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// NewProvider builds a provider from configuration. An empty provider
// name disables summaries (nil, nil).
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// BuildPrompt constructs the default summarization prompt from the
// verb statistics.
func BuildPrompt(r model.Report) string {
	s := r.Statistics

	var top []string
	for _, row := range s.TopN(5) {
		top = append(top, fmt.Sprintf("%s (%d)", row.Lemma, row.Count))
	}

	return fmt.Sprintf(`You are summarizing the verb usage profile of a text extracted from an image by OCR.

Statistics:
- Sentences: %d
- Words: %d
- Verb instances: %d
- Unique verb lemmas: %d
- Top verbs: %s
- Categories: %s

Write a 2-3 sentence plain-language summary of how verbs are used in this text. Describe only what the numbers show; do not speculate about the document's content beyond the verbs listed.`,
		s.TotalSentences, s.TotalWords, s.TotalVerbs, s.UniqueVerbs,
		strings.Join(top, ", "), formatCategories(s.Categories))
}

func formatCategories(categories map[string]int) string {
	if len(categories) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(categories))
	for _, name := range []string{"action", "linking", "helping", "regular", "irregular"} {
		if n, ok := categories[name]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", name, n))
		}
	}
	return strings.Join(parts, ", ")
}
