package gradient

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// Channels is the output of a gradient computation.
type Channels struct {
	// Magnitude is the non-negative gradient strength.
	Magnitude *raster.Grid[float64]

	// Orientation is the gradient direction in radians. It lies in [0, 2π)
	// for every kernel except Roberts, whose values span [π/4, 2π+π/4).
	Orientation *raster.Grid[float64]

	// Max is the largest magnitude, usable as canny.WithMaxMagnitude.
	Max float64
}

// Compute smooths img, reduces it to luminance and differentiates it.
func Compute(img image.Image, opts Options) (*Channels, error) {
	if img == nil {
		return nil, errors.New("gradient: nil image")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var src image.Image = img
	if opts.Sigma > 0 {
		src = smooth(img, opts.Sigma)
	}
	ps, err := planes(src, opts.Luminance)
	if err != nil {
		return nil, err
	}

	op, err := operatorFor(opts.Kernel)
	if err != nil {
		return nil, err
	}

	var best *Channels
	for _, p := range ps {
		ch := op.channels(p, opts.Table)
		if best == nil {
			best = ch
			continue
		}
		best.mergeStrongest(ch)
	}
	return best, nil
}

// FromPlane differentiates a single luminance plane. Options.Luminance and
// Options.Sigma are ignored.
func FromPlane(plane *raster.Grid[float64], opts Options) (*Channels, error) {
	if plane == nil {
		return nil, errors.New("gradient: nil plane")
	}
	op, err := operatorFor(opts.Kernel)
	if err != nil {
		return nil, fmt.Errorf("differentiate plane: %w", err)
	}
	return op.channels(plane, opts.Table), nil
}

func (op operator) channels(plane *raster.Grid[float64], table *AtanTable) *Channels {
	gx, gy := op.apply(plane)
	mag, orient := op.polar(gx, gy, table)
	return &Channels{
		Magnitude:   mag,
		Orientation: orient,
		Max:         mag.Max(),
	}
}

// mergeStrongest keeps, per pixel, whichever of c and other has the larger
// magnitude, along with its orientation.
func (c *Channels) mergeStrongest(other *Channels) {
	mag, orient := c.Magnitude.Pix(), c.Orientation.Pix()
	for i, m := range other.Magnitude.Pix() {
		if m > mag[i] {
			mag[i] = m
			orient[i] = other.Orientation.Pix()[i]
		}
	}
	if other.Max > c.Max {
		c.Max = other.Max
	}
}
