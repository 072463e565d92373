// Package imaging connects decoded images to the edge extraction pipeline.
//
// It owns image loading and caching, region cropping and rescaling, and the
// facade that runs package gradient followed by package canny. Results are
// returned as JSON-friendly structs with PNG images encoded as base64, ready
// to be sent by the MCP server. All coordinates use a system where (0,0) is
// the top-left corner, X increases rightward and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Masks, overlays and reported points are relative to the cropped and scaled
// region, not to the original image.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual operations are
// stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or with x1 >= x2 or y1 >= y2
//   - Invalid gradient options or canny.Config values (wrapping their
//     sentinel errors, so errors.Is works)
//   - File I/O errors during image loading
//   - Encoding errors during image output
//
// # Performance Considerations
//
// For repeated detection on the same image, use ImageCache to avoid redundant
// disk reads. Give the cache a limit in long-running processes; the oldest
// entry is dropped first.
package imaging
