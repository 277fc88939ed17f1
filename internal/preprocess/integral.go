package preprocess

import (
	"image"
	"math"
)

// integralImg holds summed-area tables of pixel values and their
// squares, giving O(1) window mean and standard deviation. Used by the
// adaptive binarizer.
type integralImg struct {
	sum   [][]uint64
	sqSum [][]uint64
	w, h  int
}

func newIntegralImg(img *image.Gray) *integralImg {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ii := &integralImg{
		sum:   make([][]uint64, h),
		sqSum: make([][]uint64, h),
		w:     w,
		h:     h,
	}
	for y := 0; y < h; y++ {
		ii.sum[y] = make([]uint64, w)
		ii.sqSum[y] = make([]uint64, w)
		for x := 0; x < w; x++ {
			p := uint64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			s, sq := p, p*p
			if x > 0 {
				s += ii.sum[y][x-1]
				sq += ii.sqSum[y][x-1]
			}
			if y > 0 {
				s += ii.sum[y-1][x]
				sq += ii.sqSum[y-1][x]
			}
			if x > 0 && y > 0 {
				s -= ii.sum[y-1][x-1]
				sq -= ii.sqSum[y-1][x-1]
			}
			ii.sum[y][x] = s
			ii.sqSum[y][x] = sq
		}
	}
	return ii
}

// window sums the table over the clamped size x size window centred on
// (x, y), returning the pixel count as well
func windowSum(t [][]uint64, w, h, x, y, size int) (uint64, int) {
	step := size / 2
	minx, miny := x-step, y-step
	maxx, maxy := x+step, y+step
	if minx < 0 {
		minx = 0
	}
	if miny < 0 {
		miny = 0
	}
	if maxx > w-1 {
		maxx = w - 1
	}
	if maxy > h-1 {
		maxy = h - 1
	}

	sum := t[maxy][maxx]
	if minx > 0 {
		sum -= t[maxy][minx-1]
	}
	if miny > 0 {
		sum -= t[miny-1][maxx]
	}
	if minx > 0 && miny > 0 {
		sum += t[miny-1][minx-1]
	}
	return sum, (maxx - minx + 1) * (maxy - miny + 1)
}

// meanStdDev returns the mean and standard deviation of the window
// centred on (x, y)
func (ii *integralImg) meanStdDev(x, y, size int) (float64, float64) {
	sum, n := windowSum(ii.sum, ii.w, ii.h, x, y, size)
	sqSum, _ := windowSum(ii.sqSum, ii.w, ii.h, x, y, size)

	mean := float64(sum) / float64(n)
	variance := float64(sqSum)/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}
