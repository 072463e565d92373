// Package raster provides the two-dimensional grids that flow through the edge
// extraction pipeline.
//
// A Grid is a dense, row-major array of numeric pixels. The same generic type
// carries every channel the pipeline touches:
//   - Grid[float64] for gradient magnitude, orientation and relevance channels
//   - Grid[uint8] for 8-bit magnitude channels and binary edge masks
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left corner, X increasing to
// the right and Y increasing downward, matching image.Image conventions.
//
// # Thread Safety
//
// Grids are plain values with no internal locking. Concurrent reads are safe;
// concurrent writes to distinct cells are safe; anything else must be
// synchronized by the caller.
package raster
