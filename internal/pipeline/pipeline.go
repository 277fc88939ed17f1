// Package pipeline wires the stages together: load, preprocess,
// recognize, clean, analyze, write. Control flow is strictly
// sequential; each stage consumes the full output of the previous one.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/pkarpov/verbscope/internal/analyze"
	"github.com/pkarpov/verbscope/internal/cache"
	"github.com/pkarpov/verbscope/internal/imageio"
	"github.com/pkarpov/verbscope/internal/llm"
	"github.com/pkarpov/verbscope/internal/model"
	"github.com/pkarpov/verbscope/internal/ocr"
	"github.com/pkarpov/verbscope/internal/preprocess"
	"github.com/pkarpov/verbscope/internal/report"
	"github.com/pkarpov/verbscope/internal/textclean"
)

// autoChains are the candidate preprocess chains tried in auto mode,
// in order. The chain producing the most text wins.
var autoChains = []string{
	"gray,threshold:150",
	"gray,otsu",
	"gray,sauvola",
	"gray,blur,otsu",
}

// Pipeline orchestrates the complete scan process
type Pipeline struct {
	engine     ocr.Engine
	cleaner    *textclean.Cleaner
	analyzer   *analyze.Analyzer
	writer     *report.Writer
	summarizer *llm.Summarizer // nil when disabled
	store      cache.Cache     // nil when disabled
	chain      preprocess.Chain
	config     *model.Config
	logw       io.Writer // progress and warnings, stderr by default
}

// NewPipeline creates a pipeline with the Tesseract engine
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	return NewPipelineWithEngine(cfg, ocr.NewTesseractEngine())
}

// NewPipelineWithEngine creates a pipeline with an explicit OCR engine.
// Configuration problems (bad chain, bad formats) and missing tagger
// resources surface here, before any image is read.
func NewPipelineWithEngine(cfg *model.Config, engine ocr.Engine) (*Pipeline, error) {
	if err := model.ValidateFormats(cfg.Output.Formats); err != nil {
		return nil, err
	}
	chain, err := preprocess.ParseChain(cfg.Preprocess.Chain)
	if err != nil {
		return nil, err
	}

	analyzer, err := analyze.NewAnalyzer()
	if err != nil {
		return nil, err
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		summarizer, err = llm.NewSummarizer(llm.Config{
			Provider:  cfg.LLM.Provider,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summaries disabled: %v\n", err)
			summarizer = nil
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		engine:     engine,
		cleaner:    textclean.NewCleaner(cfg.Clean.Lowercase),
		analyzer:   analyzer,
		writer:     report.NewWriter(cfg.Output.Dir, cfg.Analyze.TopN),
		summarizer: summarizer,
		store:      store,
		chain:      chain,
		config:     cfg,
		logw:       os.Stderr,
	}, nil
}

// ScanImage runs the full pipeline on one image file
func (p *Pipeline) ScanImage(ctx context.Context, path string) (*model.Report, error) {
	data, img, err := imageio.LoadBytes(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	raw, meta, err := p.recognize(ctx, data, img)
	if err != nil {
		// ErrNoText passes through undecorated so batch callers can
		// treat it as a warning rather than a failure.
		if errors.Is(err, ocr.ErrNoText) {
			return nil, err
		}
		return nil, fmt.Errorf("recognize: %w", err)
	}

	cleaned, err := p.cleaner.Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	stats, err := p.analyzer.Analyze(cleaned)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	r := &model.Report{
		Source:      path,
		ProcessedAt: time.Now().UTC(),
		OCR:         meta,
		CleanedText: cleaned,
		Statistics:  stats,
	}

	p.attachSummary(ctx, r)
	return r, nil
}

// AnalyzeText runs cleaning and verb analysis on a plain-text file,
// skipping the image stages.
func (p *Pipeline) AnalyzeText(ctx context.Context, path string) (*model.Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	cleaned, err := p.cleaner.Clean(string(data))
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	stats, err := p.analyzer.Analyze(cleaned)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	r := &model.Report{
		Source:      path,
		ProcessedAt: time.Now().UTC(),
		CleanedText: cleaned,
		Statistics:  stats,
	}

	p.attachSummary(ctx, r)
	return r, nil
}

// attachSummary adds the optional LLM commentary. Failures are
// warnings; the report stands without them.
func (p *Pipeline) attachSummary(ctx context.Context, r *model.Report) {
	if p.summarizer == nil {
		return
	}
	summary, err := p.summarizer.Summarize(ctx, r)
	if err != nil {
		fmt.Fprintf(p.logw, "Warning: %v\n", err)
		return
	}
	r.LLM = summary
}

// recognize preprocesses and OCRs the image. In auto mode every
// candidate chain is tried and the one yielding the most text wins;
// with a fixed chain only that chain runs. All-empty results surface
// as ocr.ErrNoText.
func (p *Pipeline) recognize(ctx context.Context, data []byte, img image.Image) (string, *model.OCRMeta, error) {
	chains := p.chains()

	meta := &model.OCRMeta{
		Engine:     p.engine.Name(),
		Languages:  p.config.OCR.Languages,
		Candidates: make(map[string]int, len(chains)),
		Durations:  make(map[string]float64, len(chains)),
	}

	var best ocr.Result
	bestLen := -1
	bestChain := ""

	for _, c := range chains {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		default:
		}

		start := time.Now()
		res, err := p.recognizeChain(ctx, data, img, c)
		meta.Durations[c.String()] = float64(time.Since(start).Microseconds()) / 1000
		if err != nil {
			if errors.Is(err, ocr.ErrNoText) {
				meta.Candidates[c.String()] = 0
				if p.config.Output.Verbose {
					fmt.Fprintf(p.logw, "  chain %q: no text\n", c.String())
				}
				continue
			}
			return "", nil, err
		}

		n := textLength(res.Text)
		meta.Candidates[c.String()] = n
		if p.config.Output.Verbose {
			fmt.Fprintf(p.logw, "  chain %q: %d characters\n", c.String(), n)
		}
		if n > bestLen {
			best = res
			bestLen = n
			bestChain = c.String()
		}
	}

	if bestLen <= 0 {
		return "", nil, ocr.ErrNoText
	}

	meta.Chain = bestChain
	meta.Confidence = best.Confidence
	return best.Text, meta, nil
}

// recognizeChain applies one preprocess chain and runs the engine,
// consulting the cache first.
func (p *Pipeline) recognizeChain(ctx context.Context, data []byte, img image.Image, c preprocess.Chain) (ocr.Result, error) {
	key := cache.Key(data, c.String(), fmt.Sprint(p.config.OCR.Languages), fmt.Sprint(p.config.OCR.PSM))
	if p.store != nil {
		if cached, found := p.store.Get(key); found {
			var res ocr.Result
			if err := json.Unmarshal(cached, &res); err == nil {
				if res.Text == "" {
					return ocr.Result{}, ocr.ErrNoText
				}
				return res, nil
			}
		}
	}

	processed := c.Apply(img)
	encoded, err := imageio.EncodePNG(processed)
	if err != nil {
		return ocr.Result{}, err
	}

	res, err := p.engine.Recognize(ctx, ocr.Input{
		Image:     encoded,
		Languages: p.config.OCR.Languages,
		PSM:       p.config.OCR.PSM,
		DPI:       p.config.OCR.DPI,
	})
	if err != nil {
		if errors.Is(err, ocr.ErrNoText) {
			p.cacheResult(key, ocr.Result{}) // negative result is worth remembering
		}
		return ocr.Result{}, err
	}

	p.cacheResult(key, res)
	return res, nil
}

func (p *Pipeline) cacheResult(key string, res ocr.Result) {
	if p.store == nil {
		return
	}
	if data, err := json.Marshal(res); err == nil {
		_ = p.store.Set(key, data, 0)
	}
}

// chains returns the preprocess chains to try for this run
func (p *Pipeline) chains() []preprocess.Chain {
	if p.chain.Len() > 0 {
		return []preprocess.Chain{p.chain}
	}
	if !p.config.Preprocess.Auto {
		return []preprocess.Chain{{}} // raw image, no preprocessing
	}
	out := make([]preprocess.Chain, 0, len(autoChains))
	for _, spec := range autoChains {
		out = append(out, preprocess.MustChain(spec))
	}
	return out
}

// textLength counts non-whitespace runes, the measure used to compare
// candidate chains.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
			n++
		}
	}
	return n
}

// RenderReport writes the requested outputs and returns the per-format
// results. The error is non-nil if any format failed; successful
// formats are still on disk.
func (p *Pipeline) RenderReport(r *model.Report, stem string) ([]report.Written, error) {
	results := p.writer.WriteAll(r, stem, p.config.Output.Formats, p.config.Output.Chart)

	var failed []string
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Format)
		}
	}
	if len(failed) > 0 {
		return results, fmt.Errorf("failed formats: %v", failed)
	}
	return results, nil
}

// PrintSummary writes the human-readable run summary to w
func (p *Pipeline) PrintSummary(w io.Writer, r *model.Report) {
	s := r.Statistics
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Analysis summary for %s\n", r.Source)
	fmt.Fprintf(w, "  Sentences:      %d\n", s.TotalSentences)
	fmt.Fprintf(w, "  Words:          %d\n", s.TotalWords)
	fmt.Fprintf(w, "  Unique verbs:   %d\n", s.UniqueVerbs)
	fmt.Fprintf(w, "  Verb instances: %d\n", s.TotalVerbs)
	if r.OCR != nil && r.OCR.Chain != "" {
		fmt.Fprintf(w, "  Preprocess:     %s\n", r.OCR.Chain)
	}
	top := s.TopN(5)
	if len(top) > 0 {
		fmt.Fprintf(w, "  Top verbs:      ")
		for i, row := range top {
			if i > 0 {
				fmt.Fprintf(w, ", ")
			}
			fmt.Fprintf(w, "%s (%d)", row.Lemma, row.Count)
		}
		fmt.Fprintf(w, "\n")
	}
	if r.LLM != nil && r.LLM.SummaryMD != "" {
		fmt.Fprintf(w, "\n%s\n", r.LLM.SummaryMD)
	}
	fmt.Fprintf(w, "\n")
}
