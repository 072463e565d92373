package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle in image coordinates. (X1,Y1) is inclusive and
// (X2,Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// CropRegion restricts img to region and rescales it by scale.
//
// A nil region keeps the whole image. A scale of 0 or 1 keeps the size;
// other positive values resize with a Lanczos filter, which is useful to
// upsample small drawings before edge detection. The returned image always
// has its origin at (0,0).
func CropRegion(img image.Image, region *Region, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %v: must not be negative", scale)
	}

	var out image.Image = img
	if region != nil {
		r := region.Rect()
		if r.Min.X < bounds.Min.X || r.Min.Y < bounds.Min.Y || r.Max.X > bounds.Max.X || r.Max.Y > bounds.Max.Y {
			return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
			return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
		}
		out = imaging.Crop(img, r)
	}

	if scale != 1.0 && scale > 0 {
		w := int(float64(out.Bounds().Dx()) * scale)
		h := int(float64(out.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %v shrinks the region below one pixel", scale)
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}
	return out, nil
}

// NamedRegion returns the rectangle for a named part of bounds.
//
// Supported names: top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half and center (the middle 50%).
func NamedRegion(bounds image.Rectangle, name string) (*Region, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int
	switch name {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("unknown region: %s", name)
	}

	return &Region{
		X1: bounds.Min.X + x1,
		Y1: bounds.Min.Y + y1,
		X2: bounds.Min.X + x2,
		Y2: bounds.Min.Y + y2,
	}, nil
}
