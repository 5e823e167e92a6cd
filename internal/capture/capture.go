// Package capture grabs raw frames from the host's primary display.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Func produces one frame of the host display. The streamer takes a Func
// so tests can substitute a synthetic source.
type Func func() (image.Image, error)

// Primary captures the primary display. The primary is the display whose
// bounds start at (0, 0); display 0 is the fallback when no display sits
// at the origin.
func Primary() (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays")
	}

	bounds := screenshot.GetDisplayBounds(0)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if b.Min.X == 0 && b.Min.Y == 0 {
			bounds = b
			break
		}
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}
	return img, nil
}
