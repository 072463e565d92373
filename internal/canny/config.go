package canny

import (
	"fmt"
	"math"
)

// Config holds every tunable of the edge extraction pipeline.
//
// The zero value is not useful; start from DefaultConfig and override fields.
type Config struct {
	// ThresholdMin controls the low (candidate) threshold.
	// Direct mode: tLow = tHigh * ThresholdMin.
	// Indirect mode: fraction of all pixels that should reach tLow.
	ThresholdMin float64 `json:"threshold_min" toml:"threshold_min"`

	// ThresholdMax controls the high (definite edge) threshold.
	// Direct mode: tHigh = ThresholdMax * maximum magnitude.
	// Indirect mode: fraction of all pixels that should reach tHigh.
	ThresholdMax float64 `json:"threshold_max" toml:"threshold_max"`

	// IndirectThresholdMin switches ThresholdMin to histogram-percentile mode.
	IndirectThresholdMin bool `json:"indirect_threshold_min" toml:"indirect_threshold_min"`

	// IndirectThresholdMax switches ThresholdMax to histogram-percentile mode.
	IndirectThresholdMax bool `json:"indirect_threshold_max" toml:"indirect_threshold_max"`

	// GradientHistogramSize is the bin count used in indirect mode.
	GradientHistogramSize int `json:"gradient_histogram_size" toml:"gradient_histogram_size"`

	// Background and EdgeValue are the two values of the final edge mask.
	Background uint8 `json:"background" toml:"background"`
	EdgeValue  uint8 `json:"edge_value" toml:"edge_value"`

	// CheckAngles folds orientation values outside [0, 2π) back into range
	// by repeated ±2π correction. Required for kernels with a phase shift
	// such as Roberts. Non-finite angles are treated as background.
	CheckAngles bool `json:"check_angles" toml:"check_angles"`

	// FillGaps enables the endpoint extrapolation pass.
	FillGaps bool `json:"fill_gaps" toml:"fill_gaps"`

	// EndPointValue marks unmatched endpoints and GapValue marks bridged
	// gap pixels. Both are folded into EdgeValue unless KeepMarkers is set.
	EndPointValue uint8 `json:"end_point_value" toml:"end_point_value"`
	GapValue      uint8 `json:"gap_value" toml:"gap_value"`

	// KeepMarkers exposes EndPointValue/GapValue in the returned mask.
	KeepMarkers bool `json:"keep_markers" toml:"keep_markers"`

	// NumGapHints is how many pixels are walked back along an endpoint's
	// contour to estimate its direction.
	NumGapHints int `json:"num_gap_hints" toml:"num_gap_hints"`

	// MaxGapLength is the longest gap, in pixels, that may be bridged.
	MaxGapLength int `json:"max_gap_length" toml:"max_gap_length"`

	// GapThresholdRatio scales tLow to obtain the minimum gradient magnitude
	// every bridged pixel must have.
	GapThresholdRatio float64 `json:"gap_threshold_ratio" toml:"gap_threshold_ratio"`

	// Workers bounds the goroutines used by the parallel stages.
	// Zero means GOMAXPROCS, one forces sequential execution.
	Workers int `json:"workers" toml:"workers"`
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	return Config{
		ThresholdMin:          0.5,
		ThresholdMax:          0.04,
		GradientHistogramSize: 256,
		Background:            0,
		EdgeValue:             255,
		CheckAngles:           true,
		EndPointValue:         254,
		GapValue:              253,
		NumGapHints:           3,
		MaxGapLength:          5,
		GapThresholdRatio:     0.5,
	}
}

// Validate checks the configuration. It returns an error wrapping one of the
// package sentinel errors.
func (c Config) Validate() error {
	if !isRatio(c.ThresholdMin) {
		return fmt.Errorf("%w: threshold_min=%v", ErrInvalidRatio, c.ThresholdMin)
	}
	if !isRatio(c.ThresholdMax) {
		return fmt.Errorf("%w: threshold_max=%v", ErrInvalidRatio, c.ThresholdMax)
	}
	if !isRatio(c.GapThresholdRatio) {
		return fmt.Errorf("%w: gap_threshold_ratio=%v", ErrInvalidRatio, c.GapThresholdRatio)
	}
	if (c.IndirectThresholdMin || c.IndirectThresholdMax) && c.GradientHistogramSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidHistogramSize, c.GradientHistogramSize)
	}
	if c.MaxGapLength < 0 {
		return fmt.Errorf("%w: max_gap_length=%d", ErrInvalidGapLength, c.MaxGapLength)
	}
	if c.NumGapHints < 0 {
		return fmt.Errorf("%w: num_gap_hints=%d", ErrInvalidGapLength, c.NumGapHints)
	}
	if c.Workers < 0 {
		return fmt.Errorf("canny: workers must not be negative, got %d", c.Workers)
	}
	if c.Background == c.EdgeValue {
		return fmt.Errorf("%w: background and edge value are both %d", ErrInvalidMarkers, c.EdgeValue)
	}
	if c.FillGaps && c.KeepMarkers {
		markers := map[uint8]string{c.Background: "background"}
		for _, m := range []struct {
			name string
			v    uint8
		}{{"edge value", c.EdgeValue}, {"end point value", c.EndPointValue}, {"gap value", c.GapValue}} {
			if other, dup := markers[m.v]; dup {
				return fmt.Errorf("%w: %s and %s are both %d", ErrInvalidMarkers, m.name, other, m.v)
			}
			markers[m.v] = m.name
		}
	}
	return nil
}

func isRatio(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
