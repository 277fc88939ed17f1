package preprocess

import (
	"image"
	"image/color"
	"math"
)

const (
	deskewMaxAngle = 5.0 // degrees either way
	deskewStep     = 0.5
)

// Deskew estimates the text skew by projection profiling and rotates
// to correct it. Angles are searched in deskewStep increments within
// ±deskewMaxAngle; the angle maximizing the variance of row ink sums
// wins. Images that are already straight come back unrotated.
func Deskew(img image.Image) image.Image {
	gray := toGray(img)
	bin, ok := Otsu(gray).(*image.Gray)
	if !ok {
		return gray
	}

	bestAngle, bestScore := 0.0, profileScore(bin, 0)
	for a := -deskewMaxAngle; a <= deskewMaxAngle; a += deskewStep {
		if a == 0 {
			continue
		}
		if score := profileScore(bin, a); score > bestScore {
			bestScore = score
			bestAngle = a
		}
	}

	if bestAngle == 0 {
		return gray
	}
	return rotate(gray, -bestAngle)
}

// profileScore measures how well horizontal text lines align at the
// given trial angle: straight lines produce sharply varying row sums.
func profileScore(bin *image.Gray, degrees float64) float64 {
	b := bin.Bounds()
	w, h := b.Dx(), b.Dy()
	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	rows := make([]int, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bin.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				continue // ink is black after binarization
			}
			ry := int(float64(y)*cos - float64(x)*sin)
			if ry >= 0 && ry < h {
				rows[ry]++
			}
		}
	}

	var sum float64
	for _, n := range rows {
		sum += float64(n)
	}
	mean := sum / float64(h)
	var variance float64
	for _, n := range rows {
		d := float64(n) - mean
		variance += d * d
	}
	return variance / float64(h)
}

// rotate performs nearest-neighbour rotation about the image centre,
// filling uncovered corners with white.
func rotate(gray *image.Gray, degrees float64) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	cx, cy := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Inverse mapping: sample the source for each output pixel.
			dx, dy := float64(x)-cx, float64(y)-cy
			sx := int(math.Round(dx*cos + dy*sin + cx))
			sy := int(math.Round(-dx*sin + dy*cos + cy))
			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				out.SetGray(x, y, gray.GrayAt(b.Min.X+sx, b.Min.Y+sy))
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
