package preprocess

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// checker builds a half dark, half light grayscale test image
func checker() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				img.SetGray(x, y, color.Gray{Y: 40})
			} else {
				img.SetGray(x, y, color.Gray{Y: 220})
			}
		}
	}
	return img
}

func TestParseChainUnknownTransform(t *testing.T) {
	_, err := ParseChain("gray,sharpen")
	if err == nil {
		t.Fatal("expected error for unknown transform")
	}
	var ute *UnknownTransformError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnknownTransformError, got %T", err)
	}
	if ute.Name != "sharpen" {
		t.Errorf("expected offending name 'sharpen', got %q", ute.Name)
	}
}

func TestParseChainBadThresholdArg(t *testing.T) {
	for _, spec := range []string{"threshold:abc", "threshold:300", "threshold:-1"} {
		if _, err := ParseChain(spec); err == nil {
			t.Errorf("expected error for %q", spec)
		}
	}
}

func TestParseChainEmpty(t *testing.T) {
	c, err := ParseChain("")
	if err != nil {
		t.Fatalf("empty chain: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty chain, got %d steps", c.Len())
	}
	img := checker()
	if got := c.Apply(img); got != image.Image(img) {
		t.Error("empty chain should return the input unchanged")
	}
}

func TestChainDoesNotMutateInput(t *testing.T) {
	img := checker()
	before := img.GrayAt(3, 3).Y

	c, err := ParseChain("gray,invert,otsu")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_ = c.Apply(img)

	if img.GrayAt(3, 3).Y != before {
		t.Error("input image was mutated by the chain")
	}
}

func TestThresholdSplitsLevels(t *testing.T) {
	out := Threshold(checker(), 150).(*image.Gray)
	if got := out.GrayAt(2, 2).Y; got != 0 {
		t.Errorf("dark pixel: expected 0, got %d", got)
	}
	if got := out.GrayAt(15, 2).Y; got != 255 {
		t.Errorf("light pixel: expected 255, got %d", got)
	}
}

func TestOtsuBimodal(t *testing.T) {
	out := Otsu(checker()).(*image.Gray)
	if out.GrayAt(2, 2).Y != 0 || out.GrayAt(15, 2).Y != 255 {
		t.Error("otsu should separate the two modes")
	}
}

func TestOtsuKeepsEntireDarkMode(t *testing.T) {
	// Pixels sitting exactly on the computed level are foreground and
	// must come out black, not white.
	out := Otsu(checker()).(*image.Gray)
	for y := 0; y < 20; y++ {
		for x := 0; x < 10; x++ {
			if out.GrayAt(x, y).Y != 0 {
				t.Fatalf("dark pixel (%d,%d) binarized white", x, y)
			}
		}
	}
}

func TestSauvolaUniformRegionIsWhite(t *testing.T) {
	// On a flat background the local deviation is 0, so the threshold
	// drops below the pixel value and everything stays white.
	img := image.NewGray(image.Rect(0, 0, 30, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	out := Sauvola(img).(*image.Gray)
	if out.GrayAt(15, 15).Y != 255 {
		t.Errorf("expected white, got %d", out.GrayAt(15, 15).Y)
	}
}

func TestInvert(t *testing.T) {
	out := Invert(checker()).(*image.Gray)
	if got := out.GrayAt(2, 2).Y; got != 215 {
		t.Errorf("expected 215, got %d", got)
	}
}

func TestMedianRemovesSpeck(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	img.SetGray(4, 4, color.Gray{Y: 0}) // lone black speck

	out := Median(img).(*image.Gray)
	if out.GrayAt(4, 4).Y != 255 {
		t.Errorf("speck survived median filter: %d", out.GrayAt(4, 4).Y)
	}
}

func TestDeskewStraightImageUnchangedSize(t *testing.T) {
	img := checker()
	out := Deskew(img)
	if !out.Bounds().Eq(img.Bounds()) {
		t.Errorf("deskew changed bounds: %v != %v", out.Bounds(), img.Bounds())
	}
}

func TestChainString(t *testing.T) {
	c, err := ParseChain(" gray , threshold:150 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := c.String(); got != "gray,threshold:150" {
		t.Errorf("expected canonical form, got %q", got)
	}
}
