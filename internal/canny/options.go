package canny

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// Option customises a pipeline or stage call.
type Option func(*options)

type options struct {
	maxHint   *float64
	relevance *raster.Grid[float64]
	log       *logrus.Entry
}

// WithMaxMagnitude supplies the channel maximum when it is already known,
// typically from gradient computation, so the estimator can skip a full scan.
func WithMaxMagnitude(max float64) Option {
	return func(o *options) {
		o.maxHint = &max
	}
}

// WithRelevance supplies a per-pixel multiplier. Both thresholds are divided
// by the relevance of the pixel they are applied to, so values above one make
// a region more sensitive and values at or below zero disable it.
func WithRelevance(relevance *raster.Grid[float64]) Option {
	return func(o *options) {
		o.relevance = relevance
	}
}

// WithLogger routes per-stage debug statistics to log.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func collectOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.log = logrus.NewEntry(discard)
	}
	return o
}

// checkRelevance verifies the optional relevance channel matches the magnitude.
func (o *options) checkRelevance(width, height int) error {
	if o.relevance == nil {
		return nil
	}
	if o.relevance.Width() != width || o.relevance.Height() != height {
		return fmt.Errorf("%w: relevance is %dx%d, magnitude is %dx%d", ErrSizeMismatch,
			o.relevance.Width(), o.relevance.Height(), width, height)
	}
	return nil
}

// scaled returns threshold t adjusted by the relevance at (x, y).
func (o *options) scaled(t float64, x, y int) float64 {
	if o.relevance == nil {
		return t
	}
	r := o.relevance.At(x, y)
	if r <= 0 {
		return posInf
	}
	return t / r
}
