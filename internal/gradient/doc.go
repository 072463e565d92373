// Package gradient computes the magnitude and orientation channels consumed by
// package canny.
//
// An image is reduced to one or more luminance planes, optionally smoothed
// with a Gaussian, and correlated with a pair of derivative kernels. The
// result is a magnitude channel, an orientation channel in radians and the
// channel maximum, which the threshold estimator can use instead of scanning.
//
// # Kernels
//
//   - difference: central differences, [-1/2 0 1/2]
//   - roberts: 2x2 diagonal differences. Orientation carries a 45° phase
//     shift and may exceed 2π; enable canny.Config.CheckAngles to fold it.
//   - sobel: 3x3 Sobel, normalised so a unit ramp has magnitude 1
//   - ando: 3x3 consistent gradient operator with the same normalisation
//
// # Luminance
//
//   - gray: weighted luma (0.3R + 0.6G + 0.1B) via bild/effect
//   - lab: CIE L* via go-colorful
//   - contrast: each RGB channel is differentiated separately and the
//     strongest response wins, together with its orientation
//
// # Lookup Tables
//
// Orientation uses math.Atan2 unless Options.Table carries an AtanTable.
// Tables are plain read-only values built by the caller and may be shared
// between goroutines.
package gradient
