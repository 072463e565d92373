package canny

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// neighbors8 lists the 8-connected offsets in scan order.
var neighbors8 = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grow runs hysteresis thresholding over a suppressed magnitude channel.
//
// Every pixel with a positive suppressed magnitude >= tHigh seeds a region.
// Regions grow through 8-connected pixels whose positive suppressed
// magnitude is >= tLow. Region pixels become cfg.EdgeValue, everything else
// cfg.Background. Candidates that no seed reaches stay background.
//
// With relevance supplied, both thresholds are divided by the relevance of
// the pixel under test. When cfg.Workers allows it, seeds are processed in
// parallel bands; pixels are claimed atomically so each is absorbed once and
// the resulting mask does not depend on scheduling.
func Grow[T raster.Number](sup *raster.Grid[T], tLow, tHigh float64, cfg Config, opts ...Option) (*raster.Grid[uint8], error) {
	if sup == nil {
		return nil, fmt.Errorf("%w: suppressed magnitude", ErrNilGrid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := collectOptions(opts)
	if err := o.checkRelevance(sup.Width(), sup.Height()); err != nil {
		return nil, err
	}
	if tLow > tHigh {
		tLow = tHigh
	}
	return grow(sup, tLow, tHigh, cfg, o), nil
}

func grow[T raster.Number](sup *raster.Grid[T], tLow, tHigh float64, cfg Config, o *options) *raster.Grid[uint8] {
	w, h := sup.Width(), sup.Height()
	mask := raster.New[uint8](w, h)
	mask.Fill(cfg.Background)
	if mask.Len() == 0 {
		return mask
	}

	pix := sup.Pix()
	claimed := make([]uint32, len(pix))
	out := mask.Pix()

	candidate := func(x, y int) bool {
		s := float64(pix[y*w+x])
		return s > 0 && s >= o.scaled(tLow, x, y)
	}
	seed := func(x, y int) bool {
		s := float64(pix[y*w+x])
		return s > 0 && s >= o.scaled(tHigh, x, y)
	}
	claim := func(i int) bool {
		return atomic.CompareAndSwapUint32(&claimed[i], 0, 1)
	}

	forEachBand(h, bandCount(h, cfg.Workers), func(_, y0, y1 int) {
		var stack []int
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				if !seed(x, y) || !claim(i) {
					continue
				}
				out[i] = cfg.EdgeValue
				stack = append(stack[:0], i)

				for len(stack) > 0 {
					cur := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					cx, cy := cur%w, cur/w

					for _, d := range neighbors8 {
						nx, ny := cx+d.X, cy+d.Y
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						ni := ny*w + nx
						if !candidate(nx, ny) || !claim(ni) {
							continue
						}
						out[ni] = cfg.EdgeValue
						stack = append(stack, ni)
					}
				}
			}
		}
	})
	return mask
}
