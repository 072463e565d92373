package gradient

import (
	"fmt"
	"math"
)

// AtanTable approximates the arctangent by linear interpolation in a table of
// atan(r) for r in [0, 1]. Build one with NewAtanTable and pass it through
// Options.Table; it is never modified after construction.
type AtanTable struct {
	steps  int
	values []float64
}

// NewAtanTable builds a table with steps+1 samples over [0, 1].
func NewAtanTable(steps int) (*AtanTable, error) {
	if steps < 1 {
		return nil, fmt.Errorf("atan table needs at least 1 step, got %d", steps)
	}
	t := &AtanTable{
		steps:  steps,
		values: make([]float64, steps+1),
	}
	for i := range t.values {
		t.values[i] = math.Atan(float64(i) / float64(steps))
	}
	return t, nil
}

// Steps returns the table resolution.
func (t *AtanTable) Steps() int { return t.steps }

// Atan2 returns the angle of (x, y) in [0, 2π). The origin maps to 0.
func (t *AtanTable) Atan2(y, x float64) float64 {
	ax, ay := math.Abs(x), math.Abs(y)
	if ax == 0 && ay == 0 {
		return 0
	}

	var a float64
	if ay <= ax {
		a = t.lookup(ay / ax)
	} else {
		a = math.Pi/2 - t.lookup(ax/ay)
	}

	if x < 0 {
		a = math.Pi - a
	}
	if y < 0 {
		a = 2*math.Pi - a
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// lookup interpolates atan(r) for r in [0, 1].
func (t *AtanTable) lookup(r float64) float64 {
	f := r * float64(t.steps)
	i := int(f)
	if i >= t.steps {
		return t.values[t.steps]
	}
	frac := f - float64(i)
	return t.values[i] + frac*(t.values[i+1]-t.values[i])
}
