package canny

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// Result is the outcome of a full Detect run.
type Result struct {
	// Mask is the edge map: Background and EdgeValue only, plus GapValue and
	// EndPointValue when gap filling ran with KeepMarkers.
	Mask *raster.Grid[uint8]

	// Thresholds used by suppression and hysteresis.
	Thresholds Thresholds

	// Candidates is the number of pixels that survived suppression.
	Candidates int

	// EdgePixels is the number of non-background pixels in Mask.
	EdgePixels int

	// Gaps is populated when FillGaps is enabled.
	Gaps *GapReport
}

// Detect runs the whole pipeline on a magnitude/orientation pair:
//
//  1. EstimateThresholds
//  2. Suppress
//  3. Grow
//  4. FillGaps, when cfg.FillGaps is set
//
// Configuration and geometry errors are reported before any stage runs.
// ctx is checked between stages; a cancelled context aborts with ctx.Err()
// and no result. Blank or tiny inputs produce an all-background mask.
func Detect[T raster.Number](ctx context.Context, cfg Config, mag *raster.Grid[T], orient *raster.Grid[float64], opts ...Option) (*Result, error) {
	if mag == nil {
		return nil, fmt.Errorf("%w: magnitude", ErrNilGrid)
	}
	if orient == nil {
		return nil, fmt.Errorf("%w: orientation", ErrNilGrid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !raster.SameSize(mag, orient) {
		return nil, fmt.Errorf("%w: orientation is %dx%d, magnitude is %dx%d", ErrSizeMismatch,
			orient.Width(), orient.Height(), mag.Width(), mag.Height())
	}
	o := collectOptions(opts)
	if err := o.checkRelevance(mag.Width(), mag.Height()); err != nil {
		return nil, err
	}
	log := o.log.WithFields(logrus.Fields{
		"width":  mag.Width(),
		"height": mag.Height(),
	})

	started := time.Now()
	th, err := EstimateThresholds(mag, cfg, o.maxHint)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"t_low":  th.TLow,
		"t_high": th.THigh,
		"max":    th.MaxMagnitude,
	}).Debug("thresholds estimated")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sup := suppress(mag, orient, th.TLow, cfg, o)
	var zero T
	candidates := sup.Len() - sup.Count(zero)
	log.WithField("candidates", candidates).Debug("non-maxima suppressed")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask := grow(sup, th.TLow, th.THigh, cfg, o)
	res := &Result{
		Thresholds: th,
		Candidates: candidates,
	}
	if cfg.FillGaps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var report GapReport
		mask, report = fillGaps(mask, mag, th.TLow, cfg, o)
		res.Gaps = &report
	}

	res.Mask = mask
	res.EdgePixels = mask.Len() - mask.Count(cfg.Background)
	log.WithFields(logrus.Fields{
		"edge_px": res.EdgePixels,
		"elapsed": time.Since(started).String(),
	}).Debug("edge detection done")
	return res, nil
}

// DetectInto runs Detect and copies the mask into dst, which must have the
// magnitude's dimensions. It is the in-place counterpart of Detect for
// callers that reuse an output buffer.
func DetectInto[T raster.Number](ctx context.Context, dst *raster.Grid[uint8], cfg Config, mag *raster.Grid[T], orient *raster.Grid[float64], opts ...Option) (*Result, error) {
	if dst == nil {
		return nil, fmt.Errorf("%w: destination", ErrNilGrid)
	}
	if mag != nil && !raster.SameSize(dst, mag) {
		return nil, fmt.Errorf("%w: destination is %dx%d, magnitude is %dx%d", ErrSizeMismatch,
			dst.Width(), dst.Height(), mag.Width(), mag.Height())
	}
	res, err := Detect(ctx, cfg, mag, orient, opts...)
	if err != nil {
		return nil, err
	}
	copy(dst.Pix(), res.Mask.Pix())
	res.Mask = dst
	return res, nil
}

// EdgePoints lists the coordinates of every mask pixel equal to value.
func EdgePoints(mask *raster.Grid[uint8], value uint8) []image.Point {
	var pts []image.Point
	for y := 0; y < mask.Height(); y++ {
		for x, v := range mask.Row(y) {
			if v == value {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}
