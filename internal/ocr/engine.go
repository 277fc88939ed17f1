// Package ocr defines a small engine contract for plugging OCR
// providers into the pipeline, so engines can be backed by native
// libraries or remote services without leaking provider concerns into
// callers. The default provider is Tesseract.
package ocr

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoText reports that the engine ran successfully but detected no
// text. Recoverable: callers may retry with different preprocessing.
var ErrNoText = errors.New("no text detected in image")

// EngineError wraps a failure of the external OCR engine. Fatal for the
// image being processed.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("ocr engine %s: %v", e.Engine, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Input is a single image submitted for recognition
type Input struct {
	// Image is the encoded payload (PNG is what the pipeline hands over).
	Image []byte
	// Languages hints which trained data to use (e.g. "eng", "deu").
	Languages []string
	// PSM is the Tesseract page segmentation mode; 0 keeps the engine
	// default.
	PSM int
	// DPI is the effective dots-per-inch; zero means unknown.
	DPI int
	// Variables passes engine-specific knobs without widening the API.
	Variables map[string]string
}

// Result is the recognition output for one input
type Result struct {
	// Text is the raw recognized text, trimmed.
	Text string
	// Confidence is the mean word confidence in 0..1, when the engine
	// reports one.
	Confidence float64
}

// Engine is the provider contract: one image in, one result out
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
