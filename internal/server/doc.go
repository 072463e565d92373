// Package server implements the MCP (Model Context Protocol) server for edge extraction tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the Canny edge
// detector through the MCP protocol, so MCP-compatible clients can trace
// the outlines in diagrams, scans and screenshots.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Gradient:
//   - image_gradient: Gradient magnitude as a grayscale image
//
// Edge Extraction:
//   - image_edge_thresholds: Estimate hysteresis thresholds only
//   - image_edge_detect: Edge mask with thresholds and gap statistics
//   - image_edge_overlay: Edges drawn over the source image
//   - image_edge_contours: Connected contours with bounding boxes
//
// Every edge tool accepts the gradient options (kernel, luminance, sigma)
// and the detector configuration (threshold_min, fill_gaps, ...) as flat
// arguments, plus an optional region, region_name or scale. Arguments not
// given fall back to the [config.Config] the server was created with.
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls. The cache
// holds at most server.cache_limit images and evicts the oldest first; a
// limit of 0 keeps every image for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Failures are also logged at warn level with the tool name.
//
// # Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg, logrus.NewEntry(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
