package gradient

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// operator is a pair of derivative kernels applied by correlation.
//
// Kernel cell (r, c) multiplies the pixel at (x+c-anchor, y+r-anchor).
// phase is added to every orientation produced by the pair.
type operator struct {
	x, y   *mat.Dense
	anchor int
	phase  float64
}

// andoOuter and andoInner are the 3x3 consistent gradient weights.
const (
	andoOuter = 0.112737
	andoInner = 0.274526
)

func operatorFor(k Kernel) (operator, error) {
	switch k {
	case KernelDifference:
		x := mat.NewDense(3, 3, []float64{
			0, 0, 0,
			-0.5, 0, 0.5,
			0, 0, 0,
		})
		return operator{x: x, y: transpose(x), anchor: 1}, nil

	case KernelSobel:
		x := mat.NewDense(3, 3, []float64{
			-1, 0, 1,
			-2, 0, 2,
			-1, 0, 1,
		})
		x.Scale(1.0/8, x)
		return operator{x: x, y: transpose(x), anchor: 1}, nil

	case KernelAndo:
		x := mat.NewDense(3, 3, []float64{
			-andoOuter, 0, andoOuter,
			-andoInner, 0, andoInner,
			-andoOuter, 0, andoOuter,
		})
		return operator{x: x, y: transpose(x), anchor: 1}, nil

	case KernelRoberts:
		// The two diagonal differences span a frame rotated by 45°.
		x := mat.NewDense(2, 2, []float64{
			-1, 0,
			0, 1,
		})
		y := mat.NewDense(2, 2, []float64{
			0, -1,
			1, 0,
		})
		x.Scale(1/math.Sqrt2, x)
		y.Scale(1/math.Sqrt2, y)
		return operator{x: x, y: y, anchor: 0, phase: math.Pi / 4}, nil
	}
	return operator{}, fmt.Errorf("%w: %q", ErrUnknownKernel, k)
}

func transpose(m *mat.Dense) *mat.Dense {
	var t mat.Dense
	t.CloneFrom(m.T())
	return &t
}

// apply correlates plane with both kernels, clamping reads at the border.
//
// Each image row is unrolled into a patch matrix with one window per column
// and multiplied with the two kernels stacked as columns, so a row costs a
// single mat.Mul.
func (op operator) apply(plane *raster.Grid[float64]) (gx, gy *raster.Grid[float64]) {
	w, h := plane.Width(), plane.Height()
	gx = raster.New[float64](w, h)
	gy = raster.New[float64](w, h)
	if w == 0 || h == 0 {
		return gx, gy
	}

	rows, cols := op.x.Dims()
	weights := mat.NewDense(rows*cols, 2, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			weights.Set(r*cols+c, 0, op.x.At(r, c))
			weights.Set(r*cols+c, 1, op.y.At(r, c))
		}
	}

	patches := mat.NewDense(w, rows*cols, nil)
	out := mat.NewDense(w, 2, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window := patches.RawRowView(x)
			for r := 0; r < rows; r++ {
				py := clamp(y+r-op.anchor, 0, h-1)
				for c := 0; c < cols; c++ {
					window[r*cols+c] = plane.At(clamp(x+c-op.anchor, 0, w-1), py)
				}
			}
		}
		out.Mul(patches, weights)
		for x := 0; x < w; x++ {
			gx.Set(x, y, out.At(x, 0))
			gy.Set(x, y, out.At(x, 1))
		}
	}
	return gx, gy
}

// polar converts a derivative pair to magnitude and orientation.
func (op operator) polar(gx, gy *raster.Grid[float64], table *AtanTable) (mag, orient *raster.Grid[float64]) {
	w, h := gx.Width(), gx.Height()
	mag = raster.New[float64](w, h)
	orient = raster.New[float64](w, h)
	for i := range gx.Pix() {
		dx, dy := gx.Pix()[i], gy.Pix()[i]
		mag.Pix()[i] = math.Hypot(dx, dy)
		orient.Pix()[i] = angle(dy, dx, table) + op.phase
	}
	return mag, orient
}

// angle returns atan2(y, x) in [0, 2π).
func angle(y, x float64, table *AtanTable) float64 {
	if table != nil {
		return table.Atan2(y, x)
	}
	a := math.Atan2(y, x)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
