package canny

import (
	"fmt"
	"math"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

const (
	twoPi  = 2 * math.Pi
	octant = math.Pi / 4
)

var posInf = math.Inf(1)

// compass holds the unit grid steps at multiples of 45°, starting at the
// positive X axis and turning toward positive Y. The ninth entry repeats the
// first so that octant k is always bounded by compass[k] and compass[k+1].
var compass = [9]step{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0},
}

type step struct{ dx, dy int }

// Suppress performs directional non-maxima suppression.
//
// A pixel survives with its original magnitude when it is strictly positive,
// reaches tLow (scaled by relevance, if given) and is greater than or equal to
// both magnitudes interpolated along its gradient direction, one step forward
// and one step backward. All other pixels are zero. Pixels on the outermost
// ring never survive, so no neighbour lookup leaves the grid.
//
// The orientation channel holds angles in radians; the gradient direction of
// angle θ is (cos θ, sin θ) in image coordinates. The angle selects one of
// eight 45° octants with a hard switch at octant boundaries; within the
// octant the two bounding neighbours are blended linearly by the fractional
// position of θ.
func Suppress[T raster.Number](mag *raster.Grid[T], orient *raster.Grid[float64], tLow float64, cfg Config, opts ...Option) (*raster.Grid[T], error) {
	if mag == nil {
		return nil, fmt.Errorf("%w: magnitude", ErrNilGrid)
	}
	if orient == nil {
		return nil, fmt.Errorf("%w: orientation", ErrNilGrid)
	}
	if !raster.SameSize(mag, orient) {
		return nil, fmt.Errorf("%w: orientation is %dx%d, magnitude is %dx%d", ErrSizeMismatch,
			orient.Width(), orient.Height(), mag.Width(), mag.Height())
	}
	o := collectOptions(opts)
	if err := o.checkRelevance(mag.Width(), mag.Height()); err != nil {
		return nil, err
	}
	return suppress(mag, orient, tLow, cfg, o), nil
}

func suppress[T raster.Number](mag *raster.Grid[T], orient *raster.Grid[float64], tLow float64, cfg Config, o *options) *raster.Grid[T] {
	w, h := mag.Width(), mag.Height()
	out := raster.New[T](w, h)
	if w < 3 || h < 3 {
		return out
	}

	forEachBand(h-2, bandCount(h-2, cfg.Workers), func(_, r0, r1 int) {
		for y := r0 + 1; y < r1+1; y++ {
			dst := out.Row(y)
			for x := 1; x < w-1; x++ {
				m := float64(mag.At(x, y))
				if !(m > 0) || m < o.scaled(tLow, x, y) {
					continue
				}
				theta := orient.At(x, y)
				if cfg.CheckAngles {
					if math.IsNaN(theta) || math.IsInf(theta, 0) {
						continue
					}
					theta = foldAngle(theta)
				}
				if isDirectionalMax(mag, x, y, m, theta) {
					dst[x] = mag.At(x, y)
				}
			}
		}
	})
	return out
}

// isDirectionalMax compares m with the interpolated magnitudes one step
// forward and one step backward along direction theta.
func isDirectionalMax[T raster.Number](mag *raster.Grid[T], x, y int, m, theta float64) bool {
	k, frac := octantOf(theta)
	a, b := compass[k], compass[k+1]

	forward := interpolate(
		float64(mag.At(x+a.dx, y+a.dy)),
		float64(mag.At(x+b.dx, y+b.dy)),
		frac)
	backward := interpolate(
		float64(mag.At(x-a.dx, y-a.dy)),
		float64(mag.At(x-b.dx, y-b.dy)),
		frac)

	return m >= forward && m >= backward
}

// octantOf returns the octant index in [0,7] and the fractional offset of
// theta inside it, in [0,1). The index is always wrapped into range so a
// stray angle can never address a neighbour outside the 3x3 window.
func octantOf(theta float64) (int, float64) {
	s := theta / octant
	fl := math.Floor(s)
	frac := s - fl
	k := int(fl) % 8
	if k < 0 {
		k += 8
	}
	return k, frac
}

func interpolate(y1, y2, f float64) float64 {
	return y1 + f*(y2-y1)
}

// foldAngle brings theta into [0, 2π) by repeated ±2π correction. Inputs are
// expected to be at most a turn or two out of range; anything wildly out of
// range falls back to math.Mod.
func foldAngle(theta float64) float64 {
	if theta >= 0 && theta < twoPi {
		return theta
	}
	if math.Abs(theta) > 8*twoPi {
		theta = math.Mod(theta, twoPi)
	}
	for theta < 0 {
		theta += twoPi
	}
	for theta >= twoPi {
		theta -= twoPi
	}
	if theta < 0 {
		// -ε + 2π rounds to 2π; the correction above then lands just below zero.
		theta = 0
	}
	return theta
}
