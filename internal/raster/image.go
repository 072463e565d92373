package raster

import (
	"image"
	"image/color"
	"math"
)

// FromGray copies an 8-bit grayscale image into a grid. The image origin is
// shifted so that the grid always starts at (0,0).
func FromGray(img *image.Gray) *Grid[uint8] {
	b := img.Bounds()
	g := New[uint8](b.Dx(), b.Dy())
	for y := 0; y < g.height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(g.Row(y), img.Pix[off:off+g.width])
	}
	return g
}

// ToGray renders an 8-bit grid, typically an edge mask, as an *image.Gray.
func (g *Grid[T]) ToGray() *image.Gray {
	img := image.NewGray(g.Bounds())
	for y := 0; y < g.height; y++ {
		row := g.Row(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+g.width]
		for x, v := range row {
			dst[x] = clampUint8(float64(v))
		}
	}
	return img
}

// ToGrayScaled maps [0, max] linearly onto [0, 255]. It is used to visualise
// float channels such as the gradient magnitude. A non-positive max yields a
// black image.
func ToGrayScaled[T Number](g *Grid[T], max float64) *image.Gray {
	img := image.NewGray(g.Bounds())
	if max <= 0 {
		return img
	}
	scale := 255.0 / max
	for y := 0; y < g.height; y++ {
		row := g.Row(y)
		for x, v := range row {
			img.SetGray(x, y, color.Gray{Y: clampUint8(math.Round(float64(v) * scale))})
		}
	}
	return img
}

func clampUint8(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
