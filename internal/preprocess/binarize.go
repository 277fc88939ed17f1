package preprocess

import (
	"image"
	"image/color"
)

const (
	sauvolaK      = 0.5
	sauvolaWindow = 19
)

// Otsu binarizes with Otsu's global threshold, which maximizes the
// between-class variance of the foreground/background split.
func Otsu(img image.Image) image.Image {
	gray := toGray(img)
	level := otsuLevel(gray)
	// otsuLevel returns the last bin of the background class, while
	// Threshold compares with strict <. Binarize one above the level so
	// pixels exactly at it stay black.
	if level < 255 {
		level++
	}
	return Threshold(gray, level)
}

func otsuLevel(img *image.Gray) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 128
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var best float64
	level := uint8(128)
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = uint8(t)
		}
	}
	return level
}

// Sauvola binarizes with Sauvola's adaptive algorithm ("Adaptive
// document image binarization", 2000), thresholding each pixel against
// the local window mean and deviation. Integral images keep it linear
// in the pixel count.
func Sauvola(img image.Image) image.Image {
	gray := toGray(img)
	b := gray.Bounds()
	out := image.NewGray(b)

	integrals := newIntegralImg(gray)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m, dev := integrals.meanStdDev(x, y, sauvolaWindow)
			threshold := m * (1 + sauvolaK*((dev/128)-1))
			if float64(gray.GrayAt(x, y).Y) < threshold {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
