package canny

import (
	"fmt"
	"math"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// Thresholds is the pair produced by the estimator. TLow <= THigh always holds.
type Thresholds struct {
	TLow  float64 `json:"t_low"`
	THigh float64 `json:"t_high"`
	// MaxMagnitude is the channel maximum the thresholds were derived from.
	MaxMagnitude float64 `json:"max_magnitude"`
}

// EstimateThresholds derives tLow and tHigh from a magnitude channel.
//
// maxHint, when non-nil, is used as the channel maximum instead of scanning
// the grid. It must be finite and non-negative.
//
// # Direct mode
//
//	tHigh = ThresholdMax * max
//	tLow  = tHigh * ThresholdMin
//
// # Indirect mode
//
// A histogram with GradientHistogramSize bins over [0, max] is walked from the
// top bin down, accumulating counts until the configured fraction of all pixels
// is reached. The lower boundary of that bin is the threshold. Either threshold
// may be indirect independently of the other. A fraction of 0 selects no
// pixels and yields the maximum itself, whereas a direct ratio of 0 yields 0.
//
// A zero maximum (blank image) yields zero thresholds. tLow is clamped to tHigh.
// A channel whose maximum is NaN or infinite is rejected with
// ErrInvalidMagnitude.
func EstimateThresholds[T raster.Number](mag *raster.Grid[T], cfg Config, maxHint *float64) (Thresholds, error) {
	if mag == nil {
		return Thresholds{}, fmt.Errorf("%w: magnitude", ErrNilGrid)
	}
	if err := cfg.Validate(); err != nil {
		return Thresholds{}, err
	}

	var maxMag float64
	if maxHint != nil {
		if math.IsNaN(*maxHint) || math.IsInf(*maxHint, 0) || *maxHint < 0 {
			return Thresholds{}, fmt.Errorf("%w: %v", ErrInvalidHint, *maxHint)
		}
		maxMag = *maxHint
	} else {
		maxMag = float64(mag.Max())
		if math.IsNaN(maxMag) || math.IsInf(maxMag, 0) {
			return Thresholds{}, fmt.Errorf("%w: maximum is %v", ErrInvalidMagnitude, maxMag)
		}
	}

	th := Thresholds{MaxMagnitude: maxMag}
	if maxMag <= 0 || mag.Len() == 0 {
		return th, nil
	}

	var hist *histogram
	if cfg.IndirectThresholdMin || cfg.IndirectThresholdMax {
		hist = buildHistogram(mag, cfg.GradientHistogramSize, maxMag, cfg.Workers)
	}

	if cfg.IndirectThresholdMax {
		th.THigh = hist.upperPercentile(cfg.ThresholdMax)
	} else {
		th.THigh = cfg.ThresholdMax * maxMag
	}

	if cfg.IndirectThresholdMin {
		th.TLow = hist.upperPercentile(cfg.ThresholdMin)
	} else {
		th.TLow = th.THigh * cfg.ThresholdMin
	}

	if th.TLow > th.THigh {
		th.TLow = th.THigh
	}
	return th, nil
}

// histogram counts magnitudes in equally wide bins spanning [0, max].
type histogram struct {
	bins     []int
	binWidth float64
	max      float64
	total    int
}

func buildHistogram[T raster.Number](mag *raster.Grid[T], size int, maxMag float64, workers int) *histogram {
	h := &histogram{
		binWidth: maxMag / float64(size),
		max:      maxMag,
		total:    mag.Len(),
	}

	// Each band fills a private histogram; the bands are summed afterwards.
	height := mag.Height()
	partial := make([][]int, bandCount(height, workers))
	forEachBand(height, len(partial), func(band, y0, y1 int) {
		local := make([]int, size)
		for y := y0; y < y1; y++ {
			for _, v := range mag.Row(y) {
				local[binIndex(float64(v), h.binWidth, size)]++
			}
		}
		partial[band] = local
	})

	h.bins = make([]int, size)
	for _, local := range partial {
		for i, c := range local {
			h.bins[i] += c
		}
	}
	return h
}

func binIndex(v, binWidth float64, size int) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	f := v / binWidth
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= float64(size) {
		return size - 1
	}
	return int(f)
}

// upperPercentile returns the lower boundary of the bin at which the pixels
// counted from the top reach fraction*total. A zero fraction returns the
// maximum.
func (h *histogram) upperPercentile(fraction float64) float64 {
	if fraction <= 0 {
		return h.max
	}
	target := fraction * float64(h.total)
	acc := 0
	for k := len(h.bins) - 1; k >= 0; k-- {
		acc += h.bins[k]
		if float64(acc) >= target {
			return float64(k) * h.binWidth
		}
	}
	return 0
}
