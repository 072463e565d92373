package imaging

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/edge-tools-mcp/internal/canny"
)

// Bounds is the bounding box of a contour. Both corners are inclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ContourInfo describes one 8-connected edge contour.
type ContourInfo struct {
	Bounds Bounds `json:"bounds"`

	// Pixels is the number of mask pixels in the contour.
	Pixels int `json:"pixels"`

	// Endpoints is the number of contour pixels with a single edge neighbour.
	Endpoints int `json:"endpoints"`

	// Closed is true when the contour has no endpoints.
	Closed bool `json:"closed"`

	// Rectangularity compares the pixel count with the outline of the
	// bounding box: 1.0 for a one-pixel-wide axis-aligned rectangle, lower
	// for other shapes.
	Rectangularity float64 `json:"rectangularity"`
}

// ContoursResult lists the contours of an edge mask.
type ContoursResult struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Contours []ContourInfo `json:"contours"`
	Count    int           `json:"count"`
}

// EdgeContours groups the edge pixels of det into contours.
//
// Every non-background value counts as edge, so gap and endpoint markers
// belong to the contour they touch. Contours smaller than minPixels are
// dropped. The result is sorted by pixel count, largest first; ties keep
// row-major order of the first pixel.
func EdgeContours(det *Detection, cfg canny.Config, minPixels int) (*ContoursResult, error) {
	if det == nil || det.Result == nil || det.Result.Mask == nil {
		return nil, fmt.Errorf("no edge mask to trace")
	}
	if minPixels < 1 {
		minPixels = 1
	}

	mask := det.Result.Mask
	binary := mask.Clone()
	for i, v := range binary.Pix() {
		if v != cfg.Background {
			binary.Pix()[i] = cfg.EdgeValue
		}
	}

	isEdge := func(v uint8) bool { return v != cfg.Background }
	contours := canny.Contours(binary, isEdge, minPixels)

	owner := make(map[int]int)
	for ci, c := range contours {
		for _, p := range c {
			owner[binary.Index(p.X, p.Y)] = ci
		}
	}
	endpoints := make([]int, len(contours))
	for _, p := range canny.Endpoints(binary, cfg.EdgeValue) {
		if ci, ok := owner[binary.Index(p.X, p.Y)]; ok {
			endpoints[ci]++
		}
	}

	infos := make([]ContourInfo, len(contours))
	for ci, c := range contours {
		b := Bounds{X1: c[0].X, Y1: c[0].Y, X2: c[0].X, Y2: c[0].Y}
		for _, p := range c[1:] {
			b.X1 = min(b.X1, p.X)
			b.Y1 = min(b.Y1, p.Y)
			b.X2 = max(b.X2, p.X)
			b.Y2 = max(b.Y2, p.Y)
		}
		infos[ci] = ContourInfo{
			Bounds:         b,
			Pixels:         len(c),
			Endpoints:      endpoints[ci],
			Closed:         endpoints[ci] == 0,
			Rectangularity: rectangularity(b, len(c)),
		}
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Pixels > infos[j].Pixels
	})

	return &ContoursResult{
		Width:    mask.Width(),
		Height:   mask.Height(),
		Contours: infos,
		Count:    len(infos),
	}, nil
}

// rectangularity scores how close pixels is to the outline length of b.
func rectangularity(b Bounds, pixels int) float64 {
	w := b.X2 - b.X1 + 1
	h := b.Y2 - b.Y1 + 1
	if w < 2 || h < 2 {
		return 0
	}
	outline := float64(2*(w+h) - 4)
	score := 1 - math.Abs(float64(pixels)-outline)/outline
	if score < 0 {
		return 0
	}
	return score
}
