package canny

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// gridFromRows builds a float grid and fails the test on ragged input.
func gridFromRows(t *testing.T, rows [][]float64) *raster.Grid[float64] {
	t.Helper()
	g, err := raster.FromRows(rows)
	require.NoError(t, err)
	return g
}

// uniform returns a grid with every pixel set to v.
func uniform(w, h int, v float64) *raster.Grid[float64] {
	g := raster.New[float64](w, h)
	g.Fill(v)
	return g
}

// randomField returns a reproducible random magnitude field in [0, scale).
func randomField(w, h int, seed int64, scale float64) *raster.Grid[float64] {
	rng := rand.New(rand.NewSource(seed))
	g := raster.New[float64](w, h)
	for i := range g.Pix() {
		g.Pix()[i] = rng.Float64() * scale
	}
	return g
}

// randomAngles returns reproducible orientations in [0, 2π).
func randomAngles(w, h int, seed int64) *raster.Grid[float64] {
	rng := rand.New(rand.NewSource(seed))
	g := raster.New[float64](w, h)
	for i := range g.Pix() {
		g.Pix()[i] = rng.Float64() * twoPi
	}
	return g
}

// maskWith returns a w x h mask with pts set to cfg.EdgeValue.
func maskWith(w, h int, cfg Config, pts ...image.Point) *raster.Grid[uint8] {
	m := raster.New[uint8](w, h)
	m.Fill(cfg.Background)
	for _, p := range pts {
		m.Set(p.X, p.Y, cfg.EdgeValue)
	}
	return m
}

// hline returns the points (x0..x1, y) inclusive.
func hline(x0, x1, y int) []image.Point {
	var pts []image.Point
	for x := x0; x <= x1; x++ {
		pts = append(pts, image.Pt(x, y))
	}
	return pts
}

// vline returns the points (x, y0..y1) inclusive.
func vline(x, y0, y1 int) []image.Point {
	var pts []image.Point
	for y := y0; y <= y1; y++ {
		pts = append(pts, image.Pt(x, y))
	}
	return pts
}

func concat(parts ...[]image.Point) []image.Point {
	var all []image.Point
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

// edgeSet returns the set of indices equal to value.
func edgeSet(m *raster.Grid[uint8], value uint8) map[int]bool {
	set := make(map[int]bool)
	for i, v := range m.Pix() {
		if v == value {
			set[i] = true
		}
	}
	return set
}

func isSubset(a, b map[int]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
