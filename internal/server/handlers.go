package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/edge-tools-mcp/internal/canny"
	"github.com/ironsheep/edge-tools-mcp/internal/gradient"
	"github.com/ironsheep/edge-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_edge_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithField("tool", params.Name)
	started := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("tool call failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.WithField("elapsed", time.Since(started).String()).Debug("tool call done")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Starts from the configured defaults
//  2. Unmarshals arguments from JSON over them
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Gradient
	case "image_gradient":
		return s.handleImageGradient(args)

	// Edge Extraction
	case "image_edge_thresholds":
		return s.handleImageEdgeThresholds(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(ctx, args)
	case "image_edge_overlay":
		return s.handleImageEdgeOverlay(ctx, args)
	case "image_edge_contours":
		return s.handleImageEdgeContours(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals args over dst, which already holds the defaults.
// Missing arguments are accepted.
func decodeArgs(args json.RawMessage, dst interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, dst)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Edge Handlers ===

// regionArgs selects the part of the image a tool works on.
type regionArgs struct {
	Path       string          `json:"path"`
	Region     *imaging.Region `json:"region,omitempty"`
	RegionName string          `json:"region_name,omitempty"`
	Scale      float64         `json:"scale,omitempty"`
}

// edgeArgs flattens the gradient options and the canny configuration into
// one argument object, so clients send {"kernel": "ando", "fill_gaps": true}.
type edgeArgs struct {
	regionArgs
	gradient.Options
	canny.Config
}

func (s *Server) defaultEdgeArgs() edgeArgs {
	return edgeArgs{
		regionArgs: regionArgs{Scale: 1.0},
		Options:    s.cfg.Gradient,
		Config:     s.cfg.Edge,
	}
}

type preparedCall struct {
	img  image.Image
	opts imaging.EdgeOptions
}

// prepare loads the image and turns the arguments into imaging options.
func (s *Server) prepare(a edgeArgs) (*preparedCall, error) {
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if a.Region != nil && a.RegionName != "" {
		return nil, errors.New("region and region_name are mutually exclusive")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := imaging.EdgeOptions{
		Gradient: a.Options,
		Canny:    a.Config,
		Region:   a.Region,
		Scale:    a.Scale,
	}
	opts.Gradient.Table = s.table
	if a.RegionName != "" {
		region, err := imaging.NamedRegion(img.Bounds(), a.RegionName)
		if err != nil {
			return nil, err
		}
		opts.Region = region
	}
	return &preparedCall{img: img, opts: opts}, nil
}

func (s *Server) handleImageGradient(args json.RawMessage) (interface{}, error) {
	a := s.defaultEdgeArgs()
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a)
	if err != nil {
		return nil, err
	}
	return imaging.GradientImage(p.img, p.opts.Gradient, p.opts.Region, p.opts.Scale)
}

func (s *Server) handleImageEdgeThresholds(args json.RawMessage) (interface{}, error) {
	a := s.defaultEdgeArgs()
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeThresholds(p.img, p.opts)
}

type imageEdgeDetectArgs struct {
	edgeArgs
	IncludeImage bool `json:"include_image"`
}

func (s *Server) handleImageEdgeDetect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	a := imageEdgeDetectArgs{edgeArgs: s.defaultEdgeArgs(), IncludeImage: true}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a.edgeArgs)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(ctx, p.img, p.opts, a.IncludeImage, s.detectLog(a.Path))
}

type imageEdgeOverlayArgs struct {
	edgeArgs
	imaging.OverlayOptions
}

func (s *Server) handleImageEdgeOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	a := imageEdgeOverlayArgs{edgeArgs: s.defaultEdgeArgs(), OverlayOptions: s.cfg.Server.Overlay}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a.edgeArgs)
	if err != nil {
		return nil, err
	}
	det, err := imaging.DetectEdges(ctx, p.img, p.opts, s.detectLog(a.Path))
	if err != nil {
		return nil, err
	}
	return imaging.EdgeOverlay(det, p.opts.Canny, a.OverlayOptions)
}

type imageEdgeContoursArgs struct {
	edgeArgs
	MinPixels int `json:"min_pixels"`
}

func (s *Server) handleImageEdgeContours(ctx context.Context, args json.RawMessage) (interface{}, error) {
	a := imageEdgeContoursArgs{edgeArgs: s.defaultEdgeArgs(), MinPixels: 10}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.prepare(a.edgeArgs)
	if err != nil {
		return nil, err
	}
	det, err := imaging.DetectEdges(ctx, p.img, p.opts, s.detectLog(a.Path))
	if err != nil {
		return nil, err
	}
	return imaging.EdgeContours(det, p.opts.Canny, a.MinPixels)
}

func (s *Server) detectLog(path string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"component": "canny",
		"path":      path,
	})
}
