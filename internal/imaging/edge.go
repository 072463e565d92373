package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/edge-tools-mcp/internal/canny"
	"github.com/ironsheep/edge-tools-mcp/internal/gradient"
	"github.com/ironsheep/edge-tools-mcp/internal/raster"
)

// EdgeOptions configures one edge extraction run.
type EdgeOptions struct {
	// Gradient selects kernel, luminance reduction and pre-smoothing.
	Gradient gradient.Options `json:"gradient"`

	// Canny holds threshold, marker and gap filling parameters.
	Canny canny.Config `json:"canny"`

	// Region restricts detection to part of the image. Nil means the whole
	// image.
	Region *Region `json:"region,omitempty"`

	// Scale resizes the region before detection. 0 and 1 keep the size.
	Scale float64 `json:"scale,omitempty"`
}

// DefaultEdgeOptions returns the package defaults for both stages.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{
		Gradient: gradient.DefaultOptions(),
		Canny:    canny.DefaultConfig(),
		Scale:    1.0,
	}
}

// Detection bundles everything produced by DetectEdges.
type Detection struct {
	// Source is the cropped and scaled image the gradient was computed on.
	// Its bounds start at (0,0) and match the mask.
	Source image.Image

	Channels *gradient.Channels
	Result   *canny.Result
}

// DetectEdges crops img, computes its gradient and runs the edge pipeline.
//
// log may be nil. The gradient maximum is passed to the threshold estimator
// so the magnitude channel is not scanned twice.
func DetectEdges(ctx context.Context, img image.Image, opts EdgeOptions, log *logrus.Entry) (*Detection, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	if err := opts.Canny.Validate(); err != nil {
		return nil, err
	}

	src, err := CropRegion(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}

	ch, err := gradient.Compute(src, opts.Gradient)
	if err != nil {
		return nil, err
	}

	copts := []canny.Option{canny.WithMaxMagnitude(ch.Max)}
	if log != nil {
		copts = append(copts, canny.WithLogger(log.WithFields(logrus.Fields{
			"kernel":    opts.Gradient.Kernel,
			"luminance": opts.Gradient.Luminance,
		})))
	}
	res, err := canny.Detect(ctx, opts.Canny, ch.Magnitude, ch.Orientation, copts...)
	if err != nil {
		return nil, err
	}

	return &Detection{
		Source:   src,
		Channels: ch,
		Result:   res,
	}, nil
}

// Point is a pixel coordinate in the detected region.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toPoints(pts []image.Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

// EdgeDetectResult contains an edge mask encoded as base64 PNG together with
// the statistics of the run.
//
// The image is grayscale: Background and EdgeValue pixels, plus GapValue and
// EndPointValue when gap filling ran with markers kept.
type EdgeDetectResult struct {
	// Width of the output image in pixels (region size times scale).
	Width int `json:"width"`

	// Height of the output image in pixels (region size times scale).
	Height int `json:"height"`

	// TLow and THigh are the hysteresis thresholds actually used.
	TLow  float64 `json:"t_low"`
	THigh float64 `json:"t_high"`

	// MaxMagnitude is the largest gradient magnitude in the region.
	MaxMagnitude float64 `json:"max_magnitude"`

	// Candidates is the number of local maxima at or above TLow.
	Candidates int `json:"candidates"`

	// EdgePixels is the number of non-background pixels in the mask.
	EdgePixels int `json:"edge_pixels"`

	// Components is the number of 8-connected edge contours.
	Components int `json:"components"`

	// Gap filling statistics, present only when gap filling ran.
	Endpoints          *int    `json:"endpoints,omitempty"`
	Bridges            *int    `json:"bridges,omitempty"`
	GapPixels          *int    `json:"gap_pixels,omitempty"`
	UnmatchedEndpoints []Point `json:"unmatched_endpoints,omitempty"`

	// ImageBase64 is the edge mask encoded as base64 PNG. Empty when the
	// caller asked for statistics only.
	ImageBase64 string `json:"image_base64,omitempty"`

	// MimeType is "image/png" when ImageBase64 is set.
	MimeType string `json:"mime_type,omitempty"`
}

// EdgeDetect runs DetectEdges and summarises the outcome.
//
// When includeImage is false only the statistics are returned, which keeps
// responses small while tuning thresholds.
func EdgeDetect(ctx context.Context, img image.Image, opts EdgeOptions, includeImage bool, log *logrus.Entry) (*EdgeDetectResult, error) {
	det, err := DetectEdges(ctx, img, opts, log)
	if err != nil {
		return nil, err
	}
	return summarize(det, opts.Canny, includeImage)
}

func summarize(det *Detection, cfg canny.Config, includeImage bool) (*EdgeDetectResult, error) {
	res := det.Result
	out := &EdgeDetectResult{
		Width:        res.Mask.Width(),
		Height:       res.Mask.Height(),
		TLow:         res.Thresholds.TLow,
		THigh:        res.Thresholds.THigh,
		MaxMagnitude: res.Thresholds.MaxMagnitude,
		Candidates:   res.Candidates,
		EdgePixels:   res.EdgePixels,
		Components:   canny.CountComponents(res.Mask, cfg.Background),
	}
	if g := res.Gaps; g != nil {
		endpoints, bridges, gapPixels := g.Endpoints, g.Bridges, g.GapPixels
		out.Endpoints = &endpoints
		out.Bridges = &bridges
		out.GapPixels = &gapPixels
		out.UnmatchedEndpoints = toPoints(g.Unmatched)
	}

	if includeImage {
		encoded, err := encodePNG(res.Mask.ToGray())
		if err != nil {
			return nil, fmt.Errorf("failed to encode edge image: %w", err)
		}
		out.ImageBase64 = encoded
		out.MimeType = "image/png"
	}
	return out, nil
}

// ThresholdsResult reports the thresholds the estimator would pick for an
// image without running suppression or hysteresis.
type ThresholdsResult struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	TLow         float64 `json:"t_low"`
	THigh        float64 `json:"t_high"`
	MaxMagnitude float64 `json:"max_magnitude"`
}

// EdgeThresholds computes the gradient of img and estimates tLow and tHigh
// under opts.Canny.
func EdgeThresholds(img image.Image, opts EdgeOptions) (*ThresholdsResult, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	src, err := CropRegion(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}
	ch, err := gradient.Compute(src, opts.Gradient)
	if err != nil {
		return nil, err
	}
	th, err := canny.EstimateThresholds(ch.Magnitude, opts.Canny, &ch.Max)
	if err != nil {
		return nil, err
	}
	return &ThresholdsResult{
		Width:        ch.Magnitude.Width(),
		Height:       ch.Magnitude.Height(),
		TLow:         th.TLow,
		THigh:        th.THigh,
		MaxMagnitude: th.MaxMagnitude,
	}, nil
}

// GradientResult contains a gradient magnitude visualisation.
type GradientResult struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	MaxMagnitude float64 `json:"max_magnitude"`

	// ImageBase64 is the magnitude scaled so MaxMagnitude maps to 255,
	// encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// GradientImage renders the gradient magnitude of img as a grayscale PNG.
func GradientImage(img image.Image, opts gradient.Options, region *Region, scale float64) (*GradientResult, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	src, err := CropRegion(img, region, scale)
	if err != nil {
		return nil, err
	}
	ch, err := gradient.Compute(src, opts)
	if err != nil {
		return nil, err
	}

	encoded, err := encodePNG(raster.ToGrayScaled(ch.Magnitude, ch.Max))
	if err != nil {
		return nil, fmt.Errorf("failed to encode gradient image: %w", err)
	}
	return &GradientResult{
		Width:        ch.Magnitude.Width(),
		Height:       ch.Magnitude.Height(),
		MaxMagnitude: ch.Max,
		ImageBase64:  encoded,
		MimeType:     "image/png",
	}, nil
}

// encodePNG encodes img as PNG and returns it base64 encoded.
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
