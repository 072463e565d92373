package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Gradient
		{
			Name:        "image_gradient",
			Description: "Return the gradient magnitude of an image (or region) as a grayscale PNG, scaled so the strongest gradient is white. Use it to see what the edge detector sees before choosing thresholds.",
			InputSchema: objectSchema(regionProperties(), gradientProperties()),
		},

		// Edge Extraction
		{
			Name:        "image_edge_thresholds",
			Description: "Estimate the low and high hysteresis thresholds for an image without running edge detection. Direct mode scales the maximum magnitude; indirect mode picks the magnitude reached by the given fraction of pixels.",
			InputSchema: objectSchema(regionProperties(), gradientProperties(), thresholdProperties()),
		},
		{
			Name:        "image_edge_detect",
			Description: "Extract thin, connected edges with a Canny detector: non-maxima suppression along the gradient, hysteresis linking and optional gap filling. Returns the edge mask as PNG with thresholds and contour statistics.",
			InputSchema: objectSchema(regionProperties(), gradientProperties(), thresholdProperties(), maskProperties(), gapProperties(), map[string]interface{}{
				"include_image": map[string]interface{}{
					"type":        "boolean",
					"description": "Return the edge mask as base64 PNG. Set false to get statistics only. Default true",
					"default":     true,
				},
			}),
		},
		{
			Name:        "image_edge_overlay",
			Description: "Draw detected edges over the source image (or region): edges, bridged gaps and unmatched endpoints each in their own color.",
			InputSchema: objectSchema(regionProperties(), gradientProperties(), thresholdProperties(), maskProperties(), gapProperties(), map[string]interface{}{
				"edge_color": map[string]interface{}{
					"type":        "string",
					"description": "Hex color for edge pixels. Default from server config (#FF0000)",
				},
				"gap_color": map[string]interface{}{
					"type":        "string",
					"description": "Hex color for bridged gap pixels, shown when keep_markers is true. Default #00FF00",
				},
				"end_point_color": map[string]interface{}{
					"type":        "string",
					"description": "Hex color for unmatched contour endpoints. Default #FFFF00",
				},
				"opacity": map[string]interface{}{
					"type":        "number",
					"description": "Blend factor between source and marker color, in (0, 1]. Default 1.0",
				},
			}),
		},
		{
			Name:        "image_edge_contours",
			Description: "Detect edges and list the connected contours with bounding boxes, pixel counts, endpoint counts and a rectangularity score, largest first.",
			InputSchema: objectSchema(regionProperties(), gradientProperties(), thresholdProperties(), maskProperties(), gapProperties(), map[string]interface{}{
				"min_pixels": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum contour size in pixels (default 10)",
					"default":     10,
				},
			}),
		},
	}
}

// objectSchema merges property groups into an object schema requiring path.
func objectSchema(groups ...map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{}
	for _, g := range groups {
		for k, v := range g {
			props[k] = v
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"path"},
	}
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional rectangle to work on; (x1,y1) inclusive, (x2,y2) exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"region_name": map[string]interface{}{
			"type":        "string",
			"description": "Optional named region instead of region",
			"enum": []string{
				"top-left", "top-right", "bottom-left", "bottom-right",
				"top-half", "bottom-half", "left-half", "right-half", "center",
			},
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor applied before detection (e.g., 2.0 to upsample small drawings). Default 1.0",
			"default":     1.0,
		},
	}
}

func gradientProperties() map[string]interface{} {
	return map[string]interface{}{
		"kernel": map[string]interface{}{
			"type":        "string",
			"description": "Derivative kernel (default sobel)",
			"enum":        []string{"difference", "roberts", "sobel", "ando"},
		},
		"luminance": map[string]interface{}{
			"type":        "string",
			"description": "Image reduction: gray luma, CIE L* (lab) or per-channel contrast (default gray)",
			"enum":        []string{"gray", "lab", "contrast"},
		},
		"sigma": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian pre-smoothing standard deviation in pixels, 0 disables (default 1.0)",
		},
	}
}

func thresholdProperties() map[string]interface{} {
	return map[string]interface{}{
		"threshold_min": map[string]interface{}{
			"type":        "number",
			"description": "Low threshold ratio in [0,1]. Direct: fraction of the high threshold. Indirect: fraction of pixels above it (default 0.5)",
		},
		"threshold_max": map[string]interface{}{
			"type":        "number",
			"description": "High threshold ratio in [0,1]. Direct: fraction of the maximum magnitude. Indirect: fraction of pixels above it (default 0.04)",
		},
		"indirect_threshold_min": map[string]interface{}{
			"type":        "boolean",
			"description": "Interpret threshold_min as a pixel fraction (histogram percentile)",
		},
		"indirect_threshold_max": map[string]interface{}{
			"type":        "boolean",
			"description": "Interpret threshold_max as a pixel fraction (histogram percentile)",
		},
		"gradient_histogram_size": map[string]interface{}{
			"type":        "integer",
			"description": "Histogram bins used in indirect mode (default 256)",
		},
		"check_angles": map[string]interface{}{
			"type":        "boolean",
			"description": "Fold orientations outside [0, 2π); required for the roberts kernel (default true)",
		},
		"workers": map[string]interface{}{
			"type":        "integer",
			"description": "Goroutines for the parallel stages; 0 uses all CPUs, 1 runs sequentially",
		},
	}
}

func maskProperties() map[string]interface{} {
	return map[string]interface{}{
		"background": map[string]interface{}{
			"type":        "integer",
			"description": "Mask value of non-edge pixels (default 0)",
		},
		"edge_value": map[string]interface{}{
			"type":        "integer",
			"description": "Mask value of edge pixels (default 255)",
		},
	}
}

func gapProperties() map[string]interface{} {
	return map[string]interface{}{
		"fill_gaps": map[string]interface{}{
			"type":        "boolean",
			"description": "Bridge short breaks between contour endpoints (default false)",
		},
		"max_gap_length": map[string]interface{}{
			"type":        "integer",
			"description": "Longest gap in pixels that may be bridged (default 5)",
		},
		"num_gap_hints": map[string]interface{}{
			"type":        "integer",
			"description": "Contour pixels walked back to estimate an endpoint's direction (default 3)",
		},
		"gap_threshold_ratio": map[string]interface{}{
			"type":        "number",
			"description": "Bridged pixels need a magnitude of at least this fraction of the low threshold (default 0.5)",
		},
		"keep_markers": map[string]interface{}{
			"type":        "boolean",
			"description": "Keep gap_value and end_point_value in the mask instead of folding them into edge_value",
		},
		"gap_value": map[string]interface{}{
			"type":        "integer",
			"description": "Mask value of bridged gap pixels with keep_markers (default 253)",
		},
		"end_point_value": map[string]interface{}{
			"type":        "integer",
			"description": "Mask value of unmatched endpoints with keep_markers (default 254)",
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
