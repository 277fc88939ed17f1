// Package preprocess applies image transforms that improve OCR accuracy.
// Each transform is a pure function: the input image is never mutated.
package preprocess

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Transform converts an image into a derived image
type Transform func(image.Image) image.Image

// UnknownTransformError reports a transform name with no registered
// implementation. It is a configuration error: raised before any image
// is processed.
type UnknownTransformError struct {
	Name string
}

func (e *UnknownTransformError) Error() string {
	return fmt.Sprintf("unknown transform %q (supported: %s)", e.Name, strings.Join(Names(), ", "))
}

type step struct {
	name string
	fn   Transform
}

// Chain is an ordered list of transforms
type Chain struct {
	steps []step
}

// Names lists the supported transform names
func Names() []string {
	return []string{"gray", "invert", "threshold:<n>", "otsu", "sauvola", "blur", "median", "deskew"}
}

// ParseChain builds a Chain from a comma-separated transform list such
// as "gray,otsu" or "gray,threshold:150". An empty string yields an
// empty chain.
func ParseChain(spec string) (Chain, error) {
	var c Chain
	if strings.TrimSpace(spec) == "" {
		return c, nil
	}
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fn, err := lookup(name)
		if err != nil {
			return Chain{}, err
		}
		c.steps = append(c.steps, step{name: name, fn: fn})
	}
	return c, nil
}

// MustChain is ParseChain for the built-in candidate chains
func MustChain(spec string) Chain {
	c, err := ParseChain(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Apply runs the chain, returning a new image. The input is returned
// unchanged for an empty chain.
func (c Chain) Apply(img image.Image) image.Image {
	out := img
	for _, s := range c.steps {
		out = s.fn(out)
	}
	return out
}

// String returns the canonical comma-separated form
func (c Chain) String() string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.name
	}
	return strings.Join(names, ",")
}

// Len reports the number of transforms in the chain
func (c Chain) Len() int { return len(c.steps) }

func lookup(name string) (Transform, error) {
	base, arg, _ := strings.Cut(name, ":")
	switch base {
	case "gray", "grayscale":
		return Grayscale, nil
	case "invert":
		return Invert, nil
	case "threshold":
		level := 150
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 || n > 255 {
				return nil, &UnknownTransformError{Name: name}
			}
			level = n
		}
		return func(img image.Image) image.Image {
			return Threshold(img, uint8(level))
		}, nil
	case "otsu":
		return Otsu, nil
	case "sauvola":
		return Sauvola, nil
	case "blur":
		return BoxBlur, nil
	case "median":
		return Median, nil
	case "deskew":
		return Deskew, nil
	default:
		return nil, &UnknownTransformError{Name: name}
	}
}

// toGray converts any image to 8-bit grayscale without touching the
// original. Already-gray inputs are copied so later transforms can
// write freely.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// Grayscale converts the image to 8-bit luminance grayscale
func Grayscale(img image.Image) image.Image {
	return toGray(img)
}

// Invert flips pixel values, for white-on-black scans
func Invert(img image.Image) image.Image {
	gray := toGray(img)
	b := gray.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.SetGray(x, y, color.Gray{Y: 255 - gray.GrayAt(x, y).Y})
		}
	}
	return gray
}

// Threshold binarizes at a fixed level: pixels below become black,
// the rest white
func Threshold(img image.Image, level uint8) image.Image {
	gray := toGray(img)
	b := gray.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y < level {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
