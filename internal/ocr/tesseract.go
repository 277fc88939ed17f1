package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine over the gosseract client
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize performs OCR on a single input. A fresh client is used per
// call; gosseract clients are not safe for concurrent use.
func (e *TesseractEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return Result{}, &EngineError{Engine: e.Name(), Err: fmt.Errorf("set image: %w", err)}
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return Result{}, &EngineError{Engine: e.Name(), Err: fmt.Errorf("set languages: %w", err)}
		}
	}
	if in.PSM > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("tessedit_pageseg_mode"), strconv.Itoa(in.PSM)); err != nil {
			return Result{}, &EngineError{Engine: e.Name(), Err: fmt.Errorf("set psm: %w", err)}
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(in.DPI)); err != nil {
			return Result{}, &EngineError{Engine: e.Name(), Err: fmt.Errorf("set dpi: %w", err)}
		}
	}
	for k, v := range in.Variables {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return Result{}, &EngineError{Engine: e.Name(), Err: fmt.Errorf("set variable %s: %w", k, err)}
		}
	}

	text, err := c.Text()
	if err != nil {
		return Result{}, &EngineError{Engine: e.Name(), Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrNoText
	}

	return Result{
		Text:       text,
		Confidence: meanConfidence(c),
	}, nil
}

// meanConfidence averages word-level confidences; 0 when the engine
// reports none.
func meanConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
