package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkarpov/verbscope/internal/ocr"
	"github.com/pkarpov/verbscope/internal/pipeline"
	"github.com/pkarpov/verbscope/internal/report"
	"github.com/pkarpov/verbscope/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Scan multiple images in parallel",
	Long: `Batch processes many images concurrently:
- Accepts a directory of images or a list file (one path per line)
- Scans images in parallel with a configurable worker count
- Writes an individual report set for every image
- Images with no recognizable text are reported as warnings

Example:
  verbscope batch ./scans
  verbscope batch pages.txt --concurrency 8 --output-dir ./reports
  verbscope batch ./scans --chain gray,otsu --formats json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with scan
	batchCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "output", "directory for report files")
	batchCmd.Flags().StringSliceVar(&formats, "formats", []string{"json", "csv", "txt"}, "report formats to write (json, csv, txt)")
	batchCmd.Flags().BoolVar(&chartOut, "chart", false, "also write verb frequency bar charts (PNG)")
	batchCmd.Flags().StringVar(&chain, "chain", "", "fixed preprocessing chain (default: auto)")
	batchCmd.Flags().StringSliceVar(&languages, "lang", []string{"eng"}, "Tesseract language codes")
	batchCmd.Flags().IntVar(&psm, "psm", 3, "Tesseract page segmentation mode")
	batchCmd.Flags().IntVar(&dpi, "dpi", 0, "assumed image DPI (0 leaves Tesseract's default)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the OCR result cache")
	batchCmd.Flags().IntVar(&topN, "top", 10, "number of top verbs in summaries and charts")
	batchCmd.Flags().BoolVar(&lowercase, "lowercase", false, "lowercase the cleaned text before analysis")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM commentary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Verbscope Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	var results []*worker.ScanResult
	info, err := os.Stat(input)
	switch {
	case err != nil:
		return fmt.Errorf("stat input: %w", err)
	case info.IsDir():
		results, err = processor.ProcessDir(ctx, input)
	default:
		results, err = processor.ProcessFile(ctx, input)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d images with %d workers...\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	emptyCount := 0
	failureCount := 0
	totalVerbs := 0

	for _, result := range results {
		if result.Error != nil {
			if errors.Is(result.Error, ocr.ErrNoText) {
				emptyCount++
				fmt.Fprintf(os.Stderr, "! %s: no recognizable text\n", result.Path)
			} else {
				failureCount++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			}
			continue
		}

		written, werr := p.RenderReport(result.Report, report.Stem(result.Path))
		printWritten(os.Stderr, written)
		if werr != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, werr)
			continue
		}

		successCount++
		totalVerbs += result.Report.Statistics.TotalVerbs
		fmt.Fprintf(os.Stderr, "✓ %s (%d verbs, %d files)\n", result.Path, result.Report.Statistics.TotalVerbs, len(written))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d images\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  No text:   %d\n", emptyCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Verbs:     %d\n", totalVerbs)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d images failed", failureCount, len(results))
	}
	return nil
}
