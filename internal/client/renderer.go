package client

import (
	"image"
	"log"

	"golang.org/x/image/draw"

	"github.com/avaropoint/screenlink/internal/codec"
)

// Fallback display box used when the surface has not been laid out yet
// and still reports a degenerate size.
const (
	defaultSurfaceWidth  = 800
	defaultSurfaceHeight = 600
)

// renderFrames is the receive->decode->scale->display loop. Losing the
// stream, or a payload that does not decode, ends the whole session; that
// is the only way the client learns the host is gone.
func (c *Session) renderFrames() {
	ch := c.sess.Channel()

	for c.sess.Sharing() {
		data, err := ch.Receive()
		if err != nil {
			if c.sess.Sharing() {
				log.Printf("receive frame: %v", err)
				c.status("Host disconnected.")
			}
			c.sess.Teardown()
			return
		}

		img, err := codec.Decode(data)
		if err != nil {
			log.Printf("decode frame: %v", err)
			c.status("Host disconnected.")
			c.sess.Teardown()
			return
		}

		sw, sh := c.surface.Size()
		dw, dh := displaySize(img.Bounds().Dx(), img.Bounds().Dy(), sw, sh)

		c.mu.Lock()
		c.lastImgW, c.lastImgH = dw, dh
		c.mu.Unlock()

		c.surface.Display(scaleFrame(img, dw, dh))
	}
}

// displaySize computes the box a frame is displayed in. The frame keeps
// its native size unless it exceeds the surface in either dimension, in
// which case it is shrunk to fit while preserving aspect ratio.
func displaySize(imgW, imgH, surfaceW, surfaceH int) (int, int) {
	if surfaceW <= 1 || surfaceH <= 1 {
		surfaceW, surfaceH = defaultSurfaceWidth, defaultSurfaceHeight
	}
	if imgW <= surfaceW && imgH <= surfaceH {
		return imgW, imgH
	}

	aspect := float64(imgW) / float64(imgH)
	if float64(surfaceW)/aspect <= float64(surfaceH) {
		return surfaceW, int(float64(surfaceW) / aspect)
	}
	return int(float64(surfaceH) * aspect), surfaceH
}

// scaleFrame resamples img to w x h. Frames already at the target size
// pass through untouched.
func scaleFrame(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
