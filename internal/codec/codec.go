// Package codec converts between captured frames and the compressed
// byte payloads carried on the wire. Frames travel as baseline JPEG.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// Quality is the JPEG compression level for streamed frames.
const Quality = 70

// Encode compresses one captured frame for transmission.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	bounds := img.Bounds()
	buf.Grow(bounds.Dx() * bounds.Dy() / 4) // rough JPEG output size

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode turns a received payload back into a displayable image.
func Decode(data []byte) (image.Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}
