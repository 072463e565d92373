package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCropRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := CropRegion(img, &Region{X1: 0, Y1: 0, X2: 50, Y2: 50}, 1.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	b := result.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if b.Min != (image.Point{}) {
		t.Errorf("origin: got %v, want (0,0)", b.Min)
	}
}

func TestCropRegion_NilRegion(t *testing.T) {
	img := createInMemoryImage(40, 30, color.RGBA{255, 0, 0, 255})

	for _, scale := range []float64{0, 1} {
		result, err := CropRegion(img, nil, scale)
		if err != nil {
			t.Fatalf("CropRegion(nil, %v) failed: %v", scale, err)
		}
		if result != img {
			t.Errorf("scale %v: whole image without resize should be returned as is", scale)
		}
	}
}

func TestCropRegion_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name         string
		region       *Region
		scale        float64
		wantW, wantH int
	}{
		{"scale up", &Region{0, 0, 50, 50}, 2.0, 100, 100},
		{"scale down", &Region{0, 0, 100, 100}, 0.5, 50, 50},
		{"whole image scaled", nil, 0.25, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CropRegion(img, tt.region, tt.scale)
			if err != nil {
				t.Fatalf("CropRegion failed: %v", err)
			}
			b := result.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("scaled dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCropRegion_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 negative", Region{-1, 0, 50, 50}},
		{"y1 negative", Region{0, -1, 50, 50}},
		{"x2 too large", Region{0, 0, 101, 50}},
		{"y2 too large", Region{0, 0, 50, 101}},
		{"all out of bounds", Region{-1, -1, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := tt.region
			_, err := CropRegion(img, &region, 1.0)
			if err == nil {
				t.Error("CropRegion should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCropRegion_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 >= x2", Region{50, 0, 50, 50}},
		{"x1 > x2", Region{60, 0, 50, 50}},
		{"y1 >= y2", Region{0, 50, 50, 50}},
		{"y1 > y2", Region{0, 60, 50, 50}},
		{"zero area", Region{50, 50, 50, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := tt.region
			_, err := CropRegion(img, &region, 1.0)
			if err == nil {
				t.Error("CropRegion should fail for invalid region")
			}
		})
	}
}

func TestCropRegion_InvalidScale(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	if _, err := CropRegion(img, nil, -1); err == nil {
		t.Error("CropRegion should fail for a negative scale")
	}
	if _, err := CropRegion(img, nil, 0.01); err == nil {
		t.Error("CropRegion should fail when the scale collapses the image")
	}
}

func TestCropRegion_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := CropRegion(img, &Region{50, 50, 100, 100}, 1.0)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	// Bottom-right quadrant is white; the result starts at (0,0).
	r, g, b, _ := result.At(25, 25).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	if r8 != 255 || g8 != 255 || b8 != 255 {
		t.Errorf("cropped image color: got (%d,%d,%d), want (255,255,255)", r8, g8, b8)
	}
}

func TestNamedRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)

	tests := []struct {
		region string
		want   Region
	}{
		{"top-left", Region{0, 0, 50, 50}},
		{"top-right", Region{50, 0, 100, 50}},
		{"bottom-left", Region{0, 50, 50, 100}},
		{"bottom-right", Region{50, 50, 100, 100}},
		{"top-half", Region{0, 0, 100, 50}},
		{"bottom-half", Region{0, 50, 100, 100}},
		{"left-half", Region{0, 0, 50, 100}},
		{"right-half", Region{50, 0, 100, 100}},
		{"center", Region{25, 25, 75, 75}},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := NamedRegion(bounds, tt.region)
			if err != nil {
				t.Fatalf("NamedRegion(%s) failed: %v", tt.region, err)
			}
			if *got != tt.want {
				t.Errorf("NamedRegion(%s): got %+v, want %+v", tt.region, *got, tt.want)
			}
		})
	}
}

func TestNamedRegion_InvalidName(t *testing.T) {
	invalidRegions := []string{"invalid", "TOP-LEFT", "middle", "", "center-left"}

	for _, region := range invalidRegions {
		t.Run(region, func(t *testing.T) {
			_, err := NamedRegion(image.Rect(0, 0, 100, 100), region)
			if err == nil {
				t.Errorf("NamedRegion should fail for invalid region %q", region)
			}
		})
	}
}

func TestNamedRegion_OffsetAndOddBounds(t *testing.T) {
	// 101/2 = 50 (integer division); offsets carry through.
	got, err := NamedRegion(image.Rect(10, 20, 111, 121), "top-left")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}
	want := Region{10, 20, 60, 70}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}
