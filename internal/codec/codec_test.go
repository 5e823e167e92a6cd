package codec

import (
	"image"
	"image/color"
	"testing"
)

// testFrame builds a small gradient image so the JPEG encoder has real
// content to work with.
func testFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 100, 255})
		}
	}
	return img
}

func TestEncodeDecodePreservesDimensions(t *testing.T) {
	for _, size := range []struct{ w, h int }{{1, 1}, {64, 48}, {320, 200}} {
		data, err := Encode(testFrame(size.w, size.h))
		if err != nil {
			t.Fatalf("Encode %dx%d: %v", size.w, size.h, err)
		}
		if len(data) == 0 {
			t.Fatalf("Encode %dx%d: empty payload", size.w, size.h)
		}

		img, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode %dx%d: %v", size.w, size.h, err)
		}
		b := img.Bounds()
		if b.Dx() != size.w || b.Dy() != size.h {
			t.Fatalf("decoded %dx%d, want %dx%d", b.Dx(), b.Dy(), size.w, size.h)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not a jpeg")); err == nil {
		t.Fatal("expected error for non-JPEG payload")
	}
}
