package canny

import "errors"

// Sentinel errors returned by configuration validation and input checks.
// They are wrapped with details, so compare with errors.Is.
var (
	// ErrInvalidRatio is returned when a threshold ratio or percentage is
	// outside [0,1] or is not a finite number.
	ErrInvalidRatio = errors.New("canny: threshold ratio outside [0,1]")

	// ErrInvalidGapLength is returned for a negative MaxGapLength or NumGapHints.
	ErrInvalidGapLength = errors.New("canny: invalid gap filling length")

	// ErrInvalidHistogramSize is returned when GradientHistogramSize < 1.
	ErrInvalidHistogramSize = errors.New("canny: gradient histogram size must be positive")

	// ErrInvalidMarkers is returned when two mask sentinel values collide.
	ErrInvalidMarkers = errors.New("canny: mask marker values must be distinct")

	// ErrSizeMismatch is returned when magnitude, orientation or relevance
	// channels have different dimensions.
	ErrSizeMismatch = errors.New("canny: channel dimensions differ")

	// ErrNilGrid is returned when a required channel is missing.
	ErrNilGrid = errors.New("canny: nil channel")

	// ErrInvalidMagnitude is returned when a scanned magnitude channel has a
	// NaN or infinite maximum.
	ErrInvalidMagnitude = errors.New("canny: magnitude channel is not finite")

	// ErrInvalidHint is returned for a negative or non-finite maximum magnitude hint.
	ErrInvalidHint = errors.New("canny: invalid maximum magnitude hint")
)
