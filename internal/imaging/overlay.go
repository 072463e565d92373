package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/edge-tools-mcp/internal/canny"
)

// OverlayOptions controls how an edge mask is drawn over its source image.
type OverlayOptions struct {
	// EdgeColor, GapColor and EndPointColor are hex colors ("#RRGGBB").
	// GapColor only shows when markers were kept.
	EdgeColor     string `json:"edge_color" toml:"edge_color"`
	GapColor      string `json:"gap_color" toml:"gap_color"`
	EndPointColor string `json:"end_point_color" toml:"end_point_color"`

	// Opacity blends the marker colors with the source, in (0, 1].
	Opacity float64 `json:"opacity" toml:"opacity"`
}

// DefaultOverlayOptions draws edges red, bridged gaps green and unmatched
// endpoints yellow at full opacity.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		EdgeColor:     "#FF0000",
		GapColor:      "#00FF00",
		EndPointColor: "#FFFF00",
		Opacity:       1.0,
	}
}

// OverlayResult contains the source image with edges drawn over it.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EdgePixels  int    `json:"edge_pixels"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EdgeOverlay draws the mask of det over det.Source and returns it as PNG.
//
// Pixels equal to cfg.EdgeValue get EdgeColor, cfg.GapValue gets GapColor and
// cfg.EndPointValue gets EndPointColor. Unmatched endpoints reported by gap
// filling are drawn in EndPointColor even when markers were folded.
func EdgeOverlay(det *Detection, cfg canny.Config, opts OverlayOptions) (*OverlayResult, error) {
	if det == nil || det.Result == nil || det.Result.Mask == nil {
		return nil, fmt.Errorf("no edge mask to draw")
	}
	if opts.Opacity <= 0 || opts.Opacity > 1 {
		return nil, fmt.Errorf("invalid opacity %v: must be in (0, 1]", opts.Opacity)
	}
	edge, err := parseHexColor(opts.EdgeColor)
	if err != nil {
		return nil, fmt.Errorf("edge color: %w", err)
	}
	gap, err := parseHexColor(opts.GapColor)
	if err != nil {
		return nil, fmt.Errorf("gap color: %w", err)
	}
	end, err := parseHexColor(opts.EndPointColor)
	if err != nil {
		return nil, fmt.Errorf("end point color: %w", err)
	}

	mask := det.Result.Mask
	rect := image.Rect(0, 0, mask.Width(), mask.Height())
	result := image.NewRGBA(rect)
	draw.Draw(result, rect, det.Source, det.Source.Bounds().Min, draw.Src)

	paint := func(x, y int, c colorful.Color) {
		base, ok := colorful.MakeColor(result.RGBAAt(x, y))
		if !ok {
			base = colorful.Color{}
		}
		r, g, b := base.BlendRgb(c, opts.Opacity).Clamped().RGB255()
		result.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
	}

	drawn := 0
	for y := 0; y < mask.Height(); y++ {
		for x, v := range mask.Row(y) {
			if v == cfg.Background {
				continue
			}
			drawn++
			switch {
			case cfg.KeepMarkers && v == cfg.GapValue:
				paint(x, y, gap)
			case cfg.KeepMarkers && v == cfg.EndPointValue:
				paint(x, y, end)
			default:
				paint(x, y, edge)
			}
		}
	}
	if g := det.Result.Gaps; g != nil {
		for _, p := range g.Unmatched {
			paint(p.X, p.Y, end)
		}
	}

	encoded, err := encodePNG(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}
	return &OverlayResult{
		Width:       mask.Width(),
		Height:      mask.Height(),
		EdgePixels:  drawn,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// parseHexColor parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func parseHexColor(hex string) (colorful.Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return colorful.Color{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return c, nil
}
