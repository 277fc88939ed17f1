package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pkarpov/verbscope/internal/model"
	"github.com/pkarpov/verbscope/internal/ocr"
	"github.com/pkarpov/verbscope/internal/pipeline"
	"github.com/pkarpov/verbscope/internal/report"
	"github.com/spf13/cobra"
)

var (
	outputDir   string
	formats     []string
	chartOut    bool
	chain       string
	languages   []string
	psm         int
	dpi         int
	topN        int
	lowercase   bool
	noCache     bool
	timeout     time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "OCR a single image and generate a verb analysis report",
	Long: `Scan runs the full pipeline on one image:
- Load and preprocess the image (auto mode tries several chains)
- Recognize text with Tesseract
- Clean OCR artifacts from the text
- Tag parts of speech, lemmatize and categorize every verb
- Write JSON, CSV and text reports, optionally with a bar chart

Example:
  verbscope scan page.png
  verbscope scan page.png --chain gray,otsu --lang eng,deu
  verbscope scan page.png --formats json --chart --top 20
  verbscope scan page.png --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "output", "directory for report files")
	scanCmd.Flags().StringSliceVar(&formats, "formats", []string{"json", "csv", "txt"}, "report formats to write (json, csv, txt)")
	scanCmd.Flags().BoolVar(&chartOut, "chart", false, "also write a verb frequency bar chart (PNG)")

	// OCR flags
	scanCmd.Flags().StringVar(&chain, "chain", "", "fixed preprocessing chain, e.g. gray,threshold:150 (default: auto)")
	scanCmd.Flags().StringSliceVar(&languages, "lang", []string{"eng"}, "Tesseract language codes")
	scanCmd.Flags().IntVar(&psm, "psm", 3, "Tesseract page segmentation mode")
	scanCmd.Flags().IntVar(&dpi, "dpi", 0, "assumed image DPI (0 leaves Tesseract's default)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the OCR result cache")
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")

	// Analysis flags
	scanCmd.Flags().IntVar(&topN, "top", 10, "number of top verbs in summaries and charts")
	scanCmd.Flags().BoolVar(&lowercase, "lowercase", false, "lowercase the cleaned text before analysis")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM commentary generation")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

// buildConfig assembles the pipeline configuration from flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Preprocess.Chain = chain
	cfg.Preprocess.Auto = chain == ""
	cfg.OCR.Languages = languages
	cfg.OCR.PSM = psm
	cfg.OCR.DPI = dpi
	cfg.Clean.Lowercase = lowercase
	cfg.Analyze.TopN = topN
	cfg.Output.Dir = outputDir
	cfg.Output.Formats = formats
	cfg.Output.Chart = chartOut
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// configureLLM fills in provider credentials from the environment
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return fmt.Errorf("unknown LLM provider: %s", llmProvider)
	}

	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", path)
		fmt.Fprintf(os.Stderr, "Languages: %v\n", cfg.OCR.Languages)
		if cfg.Preprocess.Auto {
			fmt.Fprintf(os.Stderr, "Preprocessing: auto\n")
		} else {
			fmt.Fprintf(os.Stderr, "Preprocessing: %s\n", cfg.Preprocess.Chain)
		}
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	r, err := p.ScanImage(ctx, path)
	if err != nil {
		if errors.Is(err, ocr.ErrNoText) {
			return fmt.Errorf("no recognizable text in %s (try --chain or a higher resolution scan)", path)
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose && r.OCR != nil {
		fmt.Fprintf(os.Stderr, "✓ Recognized text with chain %q (confidence %.2f)\n", r.OCR.Chain, r.OCR.Confidence)
		fmt.Fprintf(os.Stderr, "✓ Found %d verbs (%d distinct lemmas)\n", r.Statistics.TotalVerbs, r.Statistics.UniqueVerbs)
		if r.LLM != nil && r.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM commentary using %s/%s\n", r.LLM.Provider, r.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	written, werr := p.RenderReport(r, report.Stem(path))
	printWritten(os.Stderr, written)
	if werr != nil {
		return werr
	}

	p.PrintSummary(os.Stdout, r)
	return nil
}
