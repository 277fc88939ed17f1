package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkarpov/verbscope/internal/model"
)

func testReport() model.Report {
	return model.Report{
		Source: "page.png",
		Statistics: &model.VerbStatistics{
			TotalWords:     20,
			TotalSentences: 3,
			TotalVerbs:     5,
			UniqueVerbs:    3,
			Frequencies: []model.LemmaCount{
				{Lemma: "run", Count: 3},
				{Lemma: "jump", Count: 1},
				{Lemma: "be", Count: 1},
			},
			Categories: map[string]int{"irregular": 3, "linking": 1, "action": 1},
		},
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bard"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if p != nil {
		t.Error("expected nil provider when disabled")
	}
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestBuildPromptIncludesStatistics(t *testing.T) {
	prompt := BuildPrompt(testReport())

	for _, want := range []string{"run (3)", "jump (1)", "Verb instances: 5", "irregular 3"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestOllamaSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("expected non-streaming request")
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:     req.Model,
			Response:  "The text leans on the verb run.",
			Done:      true,
			EvalCount: 12,
		})
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(Config{Provider: "ollama", BaseURL: srv.URL, Model: "testmodel"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.Summarize(context.Background(), SummarizeRequest{Report: testReport()})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if resp.Summary != "The text leans on the verb run." {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
	if resp.Model != "testmodel" {
		t.Errorf("unexpected model %q", resp.Model)
	}
	if resp.TokensUsed != 12 {
		t.Errorf("unexpected token count %d", resp.TokensUsed)
	}
}

func TestOllamaSummarizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(Config{Provider: "ollama", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := p.Summarize(context.Background(), SummarizeRequest{Report: testReport()}); err == nil {
		t.Error("expected error from server failure")
	}
}

func TestSummarizerDisabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Error("expected nil summarizer when disabled")
	}
}
