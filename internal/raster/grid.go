package raster

import (
	"fmt"
	"image"
)

// Number is the set of pixel types a Grid can hold.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~int | ~int16 | ~int32 | ~float32 | ~float64
}

// Grid is a row-major 2D array of pixels.
//
// The zero value is an empty 0x0 grid. Grids with a zero width or height are
// valid and simply contain no pixels.
type Grid[T Number] struct {
	width  int
	height int
	pix    []T
}

// New allocates a zero-filled grid. Negative dimensions are treated as zero.
func New[T Number](width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		return &Grid[T]{}
	}
	return &Grid[T]{
		width:  width,
		height: height,
		pix:    make([]T, width*height),
	}
}

// FromSlice wraps pix (row-major, len == width*height) without copying.
func FromSlice[T Number](width, height int, pix []T) (*Grid[T], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("pixel slice has %d elements, want %d for %dx%d",
			len(pix), width*height, width, height)
	}
	if width == 0 || height == 0 {
		return &Grid[T]{}, nil
	}
	return &Grid[T]{width: width, height: height, pix: pix}, nil
}

// FromRows builds a grid from a slice of equally sized rows.
func FromRows[T Number](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 {
		return &Grid[T]{}, nil
	}
	width := len(rows[0])
	g := New[T](width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d columns, want %d", y, len(row), width)
		}
		copy(g.Row(y), row)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Bounds returns the grid extent as an image.Rectangle anchored at the origin.
func (g *Grid[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// Len returns the total number of pixels.
func (g *Grid[T]) Len() int { return len(g.pix) }

// Pix exposes the backing slice in row-major order.
func (g *Grid[T]) Pix() []T { return g.pix }

// InBounds reports whether (x, y) addresses a pixel of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the pixel at (x, y). It panics when out of bounds, like a slice index.
func (g *Grid[T]) At(x, y int) T {
	return g.pix[y*g.width+x]
}

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) {
	g.pix[y*g.width+x] = v
}

// AtOr returns the pixel at (x, y), or fallback when (x, y) is outside the grid.
func (g *Grid[T]) AtOr(x, y int, fallback T) T {
	if !g.InBounds(x, y) {
		return fallback
	}
	return g.pix[y*g.width+x]
}

// Index converts (x, y) to an offset into Pix.
func (g *Grid[T]) Index(x, y int) int { return y*g.width + x }

// Coordinate converts an offset into Pix back to (x, y).
func (g *Grid[T]) Coordinate(i int) (x, y int) {
	return i % g.width, i / g.width
}

// Row returns the mutable slice holding row y, or nil when y is out of range.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.pix[y*g.width : (y+1)*g.width]
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{width: g.width, height: g.height}
	if g.pix != nil {
		c.pix = make([]T, len(g.pix))
		copy(c.pix, g.pix)
	}
	return c
}

// Fill sets every pixel to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.pix {
		g.pix[i] = v
	}
}

// SameSize reports whether both grids have identical dimensions.
func SameSize[T, U Number](a *Grid[T], b *Grid[U]) bool {
	return a.width == b.width && a.height == b.height
}

// Max returns the largest pixel value, or zero for an empty grid.
func (g *Grid[T]) Max() T {
	var m T
	for i, v := range g.pix {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Count returns how many pixels equal v.
func (g *Grid[T]) Count(v T) int {
	n := 0
	for _, p := range g.pix {
		if p == v {
			n++
		}
	}
	return n
}

// Convert copies src into a new grid of another pixel type using a plain
// numeric conversion. Values that do not fit the destination type wrap or
// truncate exactly as the Go conversion does.
func Convert[U, T Number](src *Grid[T]) *Grid[U] {
	dst := New[U](src.width, src.height)
	for i, v := range src.pix {
		dst.pix[i] = U(v)
	}
	return dst
}
