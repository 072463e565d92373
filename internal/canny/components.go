package canny

import (
	"image"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// Contour is one 8-connected set of mask pixels.
type Contour []image.Point

// Contours groups the pixels of mask that satisfy isEdge into 8-connected
// components, scanning in row-major order. Contours with fewer than minSize
// pixels are dropped.
//
// Uses an explicit stack rather than recursion so long contours cannot
// overflow the goroutine stack.
func Contours(mask *raster.Grid[uint8], isEdge func(v uint8) bool, minSize int) []Contour {
	w, h := mask.Width(), mask.Height()
	visited := make([]bool, mask.Len())
	var contours []Contour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := mask.Index(x, y)
			if visited[start] || !isEdge(mask.At(x, y)) {
				continue
			}

			var contour Contour
			stack := []image.Point{{X: x, Y: y}}
			visited[start] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				contour = append(contour, p)

				for _, d := range neighbors8 {
					q := p.Add(d)
					if !mask.InBounds(q.X, q.Y) {
						continue
					}
					qi := mask.Index(q.X, q.Y)
					if visited[qi] || !isEdge(mask.At(q.X, q.Y)) {
						continue
					}
					visited[qi] = true
					stack = append(stack, q)
				}
			}

			if len(contour) >= minSize {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// CountComponents returns the number of 8-connected components of pixels
// that are not background.
func CountComponents(mask *raster.Grid[uint8], background uint8) int {
	return len(Contours(mask, func(v uint8) bool { return v != background }, 1))
}
