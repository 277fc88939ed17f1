package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkarpov/verbscope/internal/model"
)

// Scanner defines the interface for processing a single image
type Scanner interface {
	ScanImage(ctx context.Context, path string) (*model.Report, error)
}

// ScanJob processes one image file
type ScanJob struct {
	Path    string
	Scanner Scanner
}

// Execute runs the scan job
func (j *ScanJob) Execute(ctx context.Context) Result {
	report, err := j.Scanner.ScanImage(ctx, j.Path)
	return &ScanResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// ScanResult is the outcome of scanning one image
type ScanResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the scan result
func (r *ScanResult) GetError() error {
	return r.Error
}

// BatchProcessor runs image scans concurrently
type BatchProcessor struct {
	scanner     Scanner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(scanner Scanner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
	}
}

// ProcessImages scans the given image files concurrently
func (b *BatchProcessor) ProcessImages(ctx context.Context, paths []string) []*ScanResult {
	if len(paths) == 0 {
		return []*ScanResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ScanJob{Path: path, Scanner: b.scanner})
	}

	results := pool.Wait()

	scanResults := make([]*ScanResult, len(results))
	for i, result := range results {
		scanResults[i] = result.(*ScanResult)
	}

	return scanResults
}

// ProcessDir scans every supported image in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ScanResult, error) {
	paths, err := ListImages(dir)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported images in %s", dir)
	}

	return b.ProcessImages(ctx, paths), nil
}

// ProcessFile reads image paths from a list file and scans them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ScanResult, error) {
	paths, err := ReadPathsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessImages(ctx, paths), nil
}

// imageExtensions are the file types the decoder understands
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImagePath reports whether the path has a supported image extension
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListImages returns the supported image files directly inside dir,
// sorted by name
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImagePath(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadPathsFromFile reads image paths from a file (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
