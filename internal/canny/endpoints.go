package canny

import (
	"image"
	"math"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// Endpoints returns every pixel of mask equal to edge that has exactly one
// 8-connected neighbour equal to edge, in row-major order.
func Endpoints(mask *raster.Grid[uint8], edge uint8) []image.Point {
	var pts []image.Point
	w, h := mask.Width(), mask.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.At(x, y) == edge && edgeDegree(mask, x, y, edge) == 1 {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

// edgeDegree counts the 8-connected neighbours of (x, y) equal to edge.
func edgeDegree(mask *raster.Grid[uint8], x, y int, edge uint8) int {
	n := 0
	for _, d := range neighbors8 {
		nx, ny := x+d.X, y+d.Y
		if mask.InBounds(nx, ny) && mask.At(nx, ny) == edge {
			n++
		}
	}
	return n
}

// endpointIndex buckets endpoints into square cells so that bounded-radius
// queries only visit the cells overlapping the query disc.
type endpointIndex struct {
	cell    int
	pts     []image.Point
	buckets map[image.Point][]int
}

func newEndpointIndex(pts []image.Point, cell int) *endpointIndex {
	if cell < 1 {
		cell = 1
	}
	idx := &endpointIndex{
		cell:    cell,
		pts:     pts,
		buckets: make(map[image.Point][]int, len(pts)),
	}
	for i, p := range pts {
		k := idx.key(p)
		idx.buckets[k] = append(idx.buckets[k], i)
	}
	return idx
}

func (idx *endpointIndex) key(p image.Point) image.Point {
	return image.Pt(floorDiv(p.X, idx.cell), floorDiv(p.Y, idx.cell))
}

// nearest returns the index of the closest endpoint within radius of p for
// which accept returns true, or -1. Ties go to the lower index so results
// are deterministic.
func (idx *endpointIndex) nearest(p image.Point, radius float64, accept func(i int) bool) int {
	r := int(math.Ceil(radius))
	lo := idx.key(p.Sub(image.Pt(r, r)))
	hi := idx.key(p.Add(image.Pt(r, r)))

	best, bestDist := -1, radius*radius
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			for _, i := range idx.buckets[image.Pt(cx, cy)] {
				q := idx.pts[i]
				dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
				d := dx*dx + dy*dy
				if d > bestDist || (d == bestDist && best >= 0 && i > best) {
					continue
				}
				if !accept(i) {
					continue
				}
				best, bestDist = i, d
			}
		}
	}
	return best
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
