package preprocess

import (
	"image"
	"image/color"
	"sort"
)

// BoxBlur smooths with a 5x5 box filter. A cheap stand-in for Gaussian
// blur ahead of global thresholding; the integral image makes it one
// pass.
func BoxBlur(img image.Image) image.Image {
	gray := toGray(img)
	b := gray.Bounds()
	out := image.NewGray(b)

	integrals := newIntegralImg(gray)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m, _ := integrals.meanStdDev(x, y, 5)
			out.SetGray(x, y, color.Gray{Y: uint8(m + 0.5)})
		}
	}
	return out
}

// Median applies a 3x3 median filter, removing salt-and-pepper noise
// while keeping glyph edges.
func Median(img image.Image) image.Image {
	gray := toGray(img)
	b := gray.Bounds()
	out := image.NewGray(b)

	var window [9]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xi, yi := x+dx, y+dy
					if xi < b.Min.X || xi >= b.Max.X || yi < b.Min.Y || yi >= b.Max.Y {
						continue
					}
					window[n] = int(gray.GrayAt(xi, yi).Y)
					n++
				}
			}
			vals := window[:n]
			sort.Ints(vals)
			out.SetGray(x, y, color.Gray{Y: uint8(vals[n/2])})
		}
	}
	return out
}
