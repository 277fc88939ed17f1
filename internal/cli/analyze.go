package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkarpov/verbscope/internal/pipeline"
	"github.com/pkarpov/verbscope/internal/report"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text-file>",
	Short: "Run verb analysis on a plain-text file",
	Long: `Analyze skips OCR and runs cleaning plus verb analysis directly on
a text file. Useful for text extracted elsewhere or for checking the
tagger on known input.

Example:
  verbscope analyze transcript.txt
  verbscope analyze transcript.txt --formats json --top 20`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "output", "directory for report files")
	analyzeCmd.Flags().StringSliceVar(&formats, "formats", []string{"json", "csv", "txt"}, "report formats to write (json, csv, txt)")
	analyzeCmd.Flags().BoolVar(&chartOut, "chart", false, "also write a verb frequency bar chart (PNG)")
	analyzeCmd.Flags().IntVar(&topN, "top", 10, "number of top verbs in summaries and charts")
	analyzeCmd.Flags().BoolVar(&lowercase, "lowercase", false, "lowercase the text before analysis")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM commentary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	// OCR never runs on this path, so the cache stays cold.
	cfg.Cache.Enabled = false

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	r, err := p.AnalyzeText(ctx, path)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	written, werr := p.RenderReport(r, report.Stem(path))
	printWritten(os.Stderr, written)
	if werr != nil {
		return werr
	}

	p.PrintSummary(os.Stdout, r)
	return nil
}
