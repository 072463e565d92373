package canny

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{"threshold min above one", func(c *Config) { c.ThresholdMin = 1.5 }, ErrInvalidRatio},
		{"threshold max negative", func(c *Config) { c.ThresholdMax = -0.1 }, ErrInvalidRatio},
		{"threshold max NaN", func(c *Config) { c.ThresholdMax = math.NaN() }, ErrInvalidRatio},
		{"gap ratio above one", func(c *Config) { c.GapThresholdRatio = 2 }, ErrInvalidRatio},
		{"negative gap length", func(c *Config) { c.MaxGapLength = -1 }, ErrInvalidGapLength},
		{"negative gap hints", func(c *Config) { c.NumGapHints = -3 }, ErrInvalidGapLength},
		{"empty histogram in indirect mode", func(c *Config) {
			c.IndirectThresholdMax = true
			c.GradientHistogramSize = 0
		}, ErrInvalidHistogramSize},
		{"edge equals background", func(c *Config) { c.EdgeValue = c.Background }, ErrInvalidMarkers},
		{"gap marker equals edge with markers kept", func(c *Config) {
			c.FillGaps = true
			c.KeepMarkers = true
			c.GapValue = c.EdgeValue
		}, ErrInvalidMarkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_MarkersIgnoredWhenFolded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FillGaps = true
	cfg.GapValue = cfg.EdgeValue
	cfg.EndPointValue = cfg.Background
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_HistogramSizeOnlyMattersWhenIndirect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GradientHistogramSize = 0
	assert.NoError(t, cfg.Validate())
}
