package canny

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// ridge returns a 9x7 magnitude field peaking along row 3 and falling off by
// three per row above and below it.
func ridge(t *testing.T) *raster.Grid[float64] {
	t.Helper()
	rows := make([][]float64, 7)
	for y := range rows {
		rows[y] = make([]float64, 9)
		for x := range rows[y] {
			rows[y][x] = 10 - 3*math.Abs(float64(y-3))
		}
	}
	return gridFromRows(t, rows)
}

func TestSuppress_RidgeKeepsCentreRow(t *testing.T) {
	mag := ridge(t)
	orient := uniform(9, 7, math.Pi/2)

	sup, err := Suppress(mag, orient, 0.2, DefaultConfig())
	require.NoError(t, err)

	for y := 0; y < 7; y++ {
		for x := 0; x < 9; x++ {
			onRidge := y == 3 && x >= 1 && x <= 7
			if onRidge {
				assert.Equal(t, 10.0, sup.At(x, y), "pixel (%d,%d)", x, y)
			} else {
				assert.Zero(t, sup.At(x, y), "pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestSuppress_OppositeDirectionIsEquivalent(t *testing.T) {
	mag := ridge(t)
	down, err := Suppress(mag, uniform(9, 7, math.Pi/2), 0.2, DefaultConfig())
	require.NoError(t, err)
	up, err := Suppress(mag, uniform(9, 7, 3*math.Pi/2), 0.2, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, down.Pix(), up.Pix())
}

func TestSuppress_SinglePeak(t *testing.T) {
	mag := gridFromRows(t, [][]float64{
		{0, 0, 0},
		{0, 10, 0},
		{0, 0, 0},
	})
	for _, theta := range []float64{0, math.Pi / 4, 1.0, math.Pi, 5.5} {
		sup, err := Suppress(mag, uniform(3, 3, theta), 0.2, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 10.0, sup.At(1, 1), "theta=%v", theta)
		assert.Equal(t, 8, sup.Count(0))
	}
}

func TestSuppress_RejectsBelowLowThreshold(t *testing.T) {
	mag := gridFromRows(t, [][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	sup, err := Suppress(mag, uniform(3, 3, 0), 2, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, sup.At(1, 1))
}

func TestSuppress_Idempotent(t *testing.T) {
	mag := randomField(48, 40, 11, 100)
	orient := randomAngles(48, 40, 12)
	cfg := DefaultConfig()

	once, err := Suppress(mag, orient, 5, cfg)
	require.NoError(t, err)
	twice, err := Suppress(once, orient, 5, cfg)
	require.NoError(t, err)

	assert.Equal(t, once.Pix(), twice.Pix())
}

func TestSuppress_SurvivorsAreSubsetOfInput(t *testing.T) {
	mag := randomField(30, 30, 5, 10)
	orient := randomAngles(30, 30, 6)

	sup, err := Suppress(mag, orient, 1, DefaultConfig())
	require.NoError(t, err)
	for i, v := range sup.Pix() {
		if v != 0 {
			assert.Equal(t, mag.Pix()[i], v)
			assert.GreaterOrEqual(t, v, 1.0)
		}
	}
}

func TestSuppress_BorderAndDegenerateSizes(t *testing.T) {
	sizes := []struct{ w, h int }{{0, 0}, {1, 1}, {1, 7}, {7, 1}, {2, 2}, {2, 9}, {3, 3}, {5, 4}}
	for _, s := range sizes {
		mag := uniform(s.w, s.h, 10)
		orient := randomAngles(s.w, s.h, 1)
		sup, err := Suppress(mag, orient, 0, DefaultConfig())
		require.NoError(t, err)

		for y := 0; y < s.h; y++ {
			for x := 0; x < s.w; x++ {
				if x == 0 || y == 0 || x == s.w-1 || y == s.h-1 {
					assert.Zero(t, sup.At(x, y), "%dx%d border (%d,%d)", s.w, s.h, x, y)
				}
			}
		}
	}
}

func TestSuppress_ParallelMatchesSequential(t *testing.T) {
	mag := randomField(64, 200, 21, 50)
	orient := randomAngles(64, 200, 22)

	seqCfg := DefaultConfig()
	seqCfg.Workers = 1
	parCfg := DefaultConfig()
	parCfg.Workers = 6

	seq, err := Suppress(mag, orient, 2, seqCfg)
	require.NoError(t, err)
	par, err := Suppress(mag, orient, 2, parCfg)
	require.NoError(t, err)
	assert.Equal(t, seq.Pix(), par.Pix())
}

func TestSuppress_FoldsAngles(t *testing.T) {
	mag := ridge(t)
	want, err := Suppress(mag, uniform(9, 7, math.Pi/2), 0.2, DefaultConfig())
	require.NoError(t, err)

	for _, theta := range []float64{math.Pi/2 + twoPi, math.Pi/2 - twoPi, math.Pi/2 + 3*twoPi, -3 * math.Pi / 2} {
		got, err := Suppress(mag, uniform(9, 7, theta), 0.2, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, want.Pix(), got.Pix(), "theta=%v", theta)
	}
}

func TestSuppress_NonFiniteAnglesAreBackground(t *testing.T) {
	mag := gridFromRows(t, [][]float64{
		{0, 0, 0},
		{0, 10, 0},
		{0, 0, 0},
	})
	for _, theta := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		sup, err := Suppress(mag, uniform(3, 3, theta), 0, DefaultConfig())
		require.NoError(t, err)
		assert.Zero(t, sup.At(1, 1))
	}
}

func TestSuppress_Relevance(t *testing.T) {
	mag := ridge(t)
	orient := uniform(9, 7, math.Pi/2)

	relevance := uniform(9, 7, 1)
	for y := 0; y < 7; y++ {
		for x := 0; x < 4; x++ {
			relevance.Set(x, y, 0)
		}
	}

	sup, err := Suppress(mag, orient, 0.2, DefaultConfig(), WithRelevance(relevance))
	require.NoError(t, err)
	for x := 1; x <= 7; x++ {
		if x < 4 {
			assert.Zero(t, sup.At(x, 3), "disabled x=%d", x)
		} else {
			assert.Equal(t, 10.0, sup.At(x, 3), "enabled x=%d", x)
		}
	}
}

func TestSuppress_Errors(t *testing.T) {
	_, err := Suppress(uniform(3, 3, 1), uniform(4, 3, 0), 0, DefaultConfig())
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Suppress[float64](nil, uniform(3, 3, 0), 0, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilGrid)

	_, err = Suppress(uniform(3, 3, 1), uniform(3, 3, 0), 0, DefaultConfig(), WithRelevance(uniform(2, 2, 1)))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestOctantOf(t *testing.T) {
	tests := []struct {
		theta    float64
		wantK    int
		wantFrac float64
	}{
		{0, 0, 0},
		{math.Pi / 8, 0, 0.5},
		{math.Pi / 4, 1, 0},
		{math.Pi / 2, 2, 0},
		{math.Pi, 4, 0},
		{twoPi - 1e-12, 7, 1},
	}
	for _, tt := range tests {
		k, frac := octantOf(tt.theta)
		assert.Equal(t, tt.wantK, k, "theta=%v", tt.theta)
		assert.InDelta(t, tt.wantFrac, frac, 1e-6, "theta=%v", tt.theta)
	}
}

func TestOctantBoundaryIsContinuous(t *testing.T) {
	// Just below a boundary the blend is almost entirely the next compass
	// neighbour, which is the neighbour used exactly at the boundary.
	mag := gridFromRows(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	for k := 1; k < 8; k++ {
		boundary := float64(k) * octant
		kb, fb := octantOf(boundary - 1e-9)
		ka, fa := octantOf(boundary)

		a, b := compass[kb], compass[kb+1]
		below := interpolate(mag.At(1+a.dx, 1+a.dy), mag.At(1+b.dx, 1+b.dy), fb)
		c, d := compass[ka], compass[ka+1]
		at := interpolate(mag.At(1+c.dx, 1+c.dy), mag.At(1+d.dx, 1+d.dy), fa)

		assert.InDelta(t, at, below, 1e-6, "boundary %d", k)
	}
}

func TestFoldAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{-0.5, twoPi - 0.5},
		{twoPi + 0.25, 0.25},
		{-twoPi - 0.25, twoPi - 0.25},
		{100*twoPi + 1, 1},
	}
	for _, tt := range tests {
		got := foldAngle(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "in=%v", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, twoPi)
	}
}
