package canny

import (
	"fmt"
	"image"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// matchRadius is how close an extrapolated pixel must come to another
// endpoint for the two to be considered the same contour: the pixel itself
// or any of its 8 neighbours.
const matchRadius = 1.5

// GapReport summarises one gap filling pass.
type GapReport struct {
	// Endpoints is the number of contour endpoints found in the input mask.
	Endpoints int `json:"endpoints"`

	// Bridges is the number of gaps closed. Each bridge consumes two endpoints.
	Bridges int `json:"bridges"`

	// GapPixels is the number of pixels added to the edge set.
	GapPixels int `json:"gap_pixels"`

	// Unmatched lists the endpoints for which no partner was found.
	Unmatched []image.Point `json:"unmatched,omitempty"`
}

// FillGaps bridges short breaks between contour endpoints.
//
// # Algorithm
//
//  1. Endpoints are edge pixels with exactly one 8-connected edge neighbour.
//  2. For each endpoint, the contour is walked back up to NumGapHints pixels,
//     stopping at a branch or at the end of the contour. The average step
//     from the last walked pixel to the endpoint is the outward direction.
//  3. From each endpoint, pixels along that direction are visited one at a
//     time, up to MaxGapLength steps. When a visited pixel lies on or next to
//     a different, not yet bridged endpoint, the straight line between both
//     endpoints is drawn if every pixel on it is background and has a
//     magnitude of at least GapThresholdRatio*tLow.
//  4. Endpoints left without a partner are reported and, with KeepMarkers,
//     marked EndPointValue. Bridged pixels are GapValue with KeepMarkers and
//     EdgeValue otherwise.
//
// Directions are estimated in parallel; bridges are committed sequentially in
// row-major endpoint order, so the output is deterministic. The input mask is
// not modified and every edge pixel of it remains an edge pixel.
func FillGaps[T raster.Number](mask *raster.Grid[uint8], mag *raster.Grid[T], tLow float64, cfg Config, opts ...Option) (*raster.Grid[uint8], GapReport, error) {
	if mask == nil {
		return nil, GapReport{}, fmt.Errorf("%w: edge mask", ErrNilGrid)
	}
	if mag == nil {
		return nil, GapReport{}, fmt.Errorf("%w: magnitude", ErrNilGrid)
	}
	if !raster.SameSize(mask, mag) {
		return nil, GapReport{}, fmt.Errorf("%w: mask is %dx%d, magnitude is %dx%d", ErrSizeMismatch,
			mask.Width(), mask.Height(), mag.Width(), mag.Height())
	}
	if err := cfg.Validate(); err != nil {
		return nil, GapReport{}, err
	}
	o := collectOptions(opts)
	if err := o.checkRelevance(mask.Width(), mask.Height()); err != nil {
		return nil, GapReport{}, err
	}
	out, report := fillGaps(mask, mag, tLow, cfg, o)
	return out, report, nil
}

func fillGaps[T raster.Number](mask *raster.Grid[uint8], mag *raster.Grid[T], tLow float64, cfg Config, o *options) (*raster.Grid[uint8], GapReport) {
	out := mask.Clone()
	ends := Endpoints(mask, cfg.EdgeValue)
	report := GapReport{Endpoints: len(ends)}
	if len(ends) == 0 {
		return out, report
	}

	dirs := make([]direction, len(ends))
	forEachBand(len(ends), bandCount(len(ends), cfg.Workers), func(_, i0, i1 int) {
		for i := i0; i < i1; i++ {
			dirs[i] = contourDirection(mask, ends[i], cfg.EdgeValue, cfg.NumGapHints)
		}
	})

	gapMark, endMark := cfg.EdgeValue, cfg.EdgeValue
	if cfg.KeepMarkers {
		gapMark, endMark = cfg.GapValue, cfg.EndPointValue
	}
	minGap := tLow * cfg.GapThresholdRatio

	index := newEndpointIndex(ends, cfg.MaxGapLength+1)
	bridged := make([]bool, len(ends))

	for i, e := range ends {
		if bridged[i] || !dirs[i].ok {
			continue
		}
		for k := 1; k <= cfg.MaxGapLength; k++ {
			p := dirs[i].at(e, k)
			if !out.InBounds(p.X, p.Y) {
				break
			}
			j := index.nearest(p, matchRadius, func(j int) bool {
				return j != i && !bridged[j] && !touches(e, ends[j])
			})
			if j >= 0 {
				path := interior(e, ends[j])
				if bridgeable(out, mag, path, minGap, cfg.Background, o) {
					for _, q := range path {
						out.Set(q.X, q.Y, gapMark)
					}
					bridged[i], bridged[j] = true, true
					report.Bridges++
					report.GapPixels += len(path)
					break
				}
			}
			if out.At(p.X, p.Y) != cfg.Background {
				// Ran into an existing contour that is not a partner.
				break
			}
		}
	}

	for i, e := range ends {
		if bridged[i] {
			continue
		}
		report.Unmatched = append(report.Unmatched, e)
		out.Set(e.X, e.Y, endMark)
	}
	o.log.WithFields(logrus.Fields{
		"endpoints": report.Endpoints,
		"bridges":   report.Bridges,
		"gap_px":    report.GapPixels,
	}).Debug("gap filling done")
	return out, report
}

// direction is an extrapolation step normalised so that its larger
// component is exactly one pixel.
type direction struct {
	dx, dy float64
	ok     bool
}

func (d direction) at(origin image.Point, k int) image.Point {
	return image.Pt(
		origin.X+int(math.Round(d.dx*float64(k))),
		origin.Y+int(math.Round(d.dy*float64(k))),
	)
}

// contourDirection walks back from endpoint e along its own contour for up to
// hints pixels and returns the average outward step.
func contourDirection(mask *raster.Grid[uint8], e image.Point, edge uint8, hints int) direction {
	path := []image.Point{e}
	cur := e
	for len(path)-1 < hints {
		next, n := image.Point{}, 0
		for _, d := range neighbors8 {
			q := cur.Add(d)
			if !mask.InBounds(q.X, q.Y) || mask.At(q.X, q.Y) != edge || onPath(path, q) {
				continue
			}
			next = q
			n++
		}
		if n != 1 {
			// End of contour or a branch.
			break
		}
		path = append(path, next)
		cur = next
	}

	steps := len(path) - 1
	if steps == 0 {
		return direction{}
	}
	last := path[steps]
	dx := float64(e.X-last.X) / float64(steps)
	dy := float64(e.Y-last.Y) / float64(steps)
	norm := math.Max(math.Abs(dx), math.Abs(dy))
	if norm == 0 {
		return direction{}
	}
	return direction{dx: dx / norm, dy: dy / norm, ok: true}
}

func onPath(path []image.Point, q image.Point) bool {
	for _, p := range path {
		if p == q {
			return true
		}
	}
	return false
}

// touches reports whether a and b are the same pixel or 8-neighbours.
func touches(a, b image.Point) bool {
	return abs(a.X-b.X) <= 1 && abs(a.Y-b.Y) <= 1
}

// bridgeable checks that every pixel of path is free and carries enough
// gradient magnitude to be a plausible contour continuation.
func bridgeable[T raster.Number](out *raster.Grid[uint8], mag *raster.Grid[T], path []image.Point, minGap float64, background uint8, o *options) bool {
	if len(path) == 0 {
		return false
	}
	for _, q := range path {
		if !out.InBounds(q.X, q.Y) || out.At(q.X, q.Y) != background {
			return false
		}
		if float64(mag.At(q.X, q.Y)) < o.scaled(minGap, q.X, q.Y) {
			return false
		}
	}
	return true
}

// interior returns the pixels of the Bresenham line from a to b, excluding
// both ends.
func interior(a, b image.Point) []image.Point {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	var pts []image.Point
	err := dx + dy
	x, y := a.X, a.Y
	for {
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		if x == b.X && y == b.Y {
			break
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
