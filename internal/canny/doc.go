// Package canny turns a gradient magnitude/orientation pair into a thin,
// connected binary edge map.
//
// It is the decision-making half of a Canny-style detector: gradient
// computation happens elsewhere (see package gradient) and feeds this package,
// which alone decides which responses become edges.
//
// # Pipeline
//
//  1. EstimateThresholds: tLow/tHigh from ratios of the maximum magnitude
//     (direct mode) or from histogram percentiles (indirect mode).
//  2. Suppress: sub-pixel non-maxima suppression along the gradient direction.
//  3. Grow: hysteresis. Pixels above tHigh seed 8-connected regions that
//     absorb pixels above tLow.
//  4. FillGaps (optional): bridges short breaks by extrapolating from contour
//     endpoints.
//
// Detect chains all four. Each stage is also exported for callers that want
// to inspect intermediate channels.
//
// # Pixel Types
//
// Every stage is generic over raster.Number, so an 8-bit magnitude channel
// and a float channel share one implementation. Orientation is always a
// float64 grid of radians in [0, 2π); Config.CheckAngles folds values that
// are slightly out of range.
//
// # Errors
//
// Invalid configuration and mismatched channel sizes are rejected before any
// work is done, with errors wrapping the sentinels in errors.go. Blank images,
// images smaller than 3x3 and gap searches that find no partner are not
// errors; they simply produce background.
//
// # Concurrency
//
// Functions are pure and hold no global state. Histogram construction,
// suppression and gap direction estimation are split into row bands and run
// concurrently, hysteresis seeds are grown in parallel bands with atomic
// pixel claims, and bridges are committed sequentially. Config.Workers bounds
// the parallelism; 1 forces sequential execution.
package canny
