package gradient

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// planes reduces img to the luminance planes selected by mode, each scaled
// to roughly [0, 1]. Contrast mode yields three planes (R, G, B); the other
// modes yield one.
func planes(img image.Image, mode Luminance) ([]*raster.Grid[float64], error) {
	switch mode {
	case LuminanceGray:
		return []*raster.Grid[float64]{grayPlane(img)}, nil

	case LuminanceLab:
		return []*raster.Grid[float64]{labLightness(img)}, nil

	case LuminanceContrast:
		return rgbPlanes(clone.AsRGBA(img)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLuminance, mode)
}

// grayPlane returns the luma of img on [0, 1]. effect.Grayscale writes the
// same value into R, G and B, so the R channel is the plane.
func grayPlane(img image.Image) *raster.Grid[float64] {
	rgba := effect.Grayscale(img)
	b := rgba.Bounds()
	out := raster.New[float64](b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r := rgba.Pix[rgba.PixOffset(b.Min.X+x, b.Min.Y+y)]
			out.Set(x, y, float64(r)/255)
		}
	}
	return out
}

// labLightness returns CIE L* for every pixel. Fully transparent pixels have
// no defined color and are treated as black.
func labLightness(img image.Image) *raster.Grid[float64] {
	b := img.Bounds()
	out := raster.New[float64](b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := out.Row(y)
		for x := range row {
			c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			row[x] = l
		}
	}
	return out
}

// rgbPlanes splits an RGBA image into three [0, 1] planes.
func rgbPlanes(img *image.RGBA) []*raster.Grid[float64] {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := []*raster.Grid[float64]{
		raster.New[float64](w, h),
		raster.New[float64](w, h),
		raster.New[float64](w, h),
	}
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			p := img.Pix[off+4*x : off+4*x+3]
			for c := range out {
				out[c].Set(x, y, float64(p[c])/255)
			}
		}
	}
	return out
}

// gaussianKernel returns a normalised 1D Gaussian of radius ceil(4*sigma).
func gaussianKernel(sigma float64) convolution.Matrix {
	sfactor := -0.5 / (sigma * sigma)
	radius := math.Ceil(4 * sigma)
	length := 2*int(radius) + 1

	k := convolution.NewKernel(length, 1)
	for i, x := 0, -radius; i < length; i, x = i+1, x+1 {
		k.Matrix[i] = math.Exp(sfactor * (x * x))
	}
	return k.Normalized()
}

// smooth blurs img with a separable Gaussian of standard deviation sigma.
// A non-positive sigma returns an unmodified RGBA copy.
func smooth(img image.Image, sigma float64) *image.RGBA {
	if sigma <= 0 {
		return clone.AsRGBA(img)
	}
	k := gaussianKernel(sigma)
	opts := convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true}
	out := convolution.Convolve(img, k, &opts)
	return convolution.Convolve(out, k.Transposed(), &opts)
}
