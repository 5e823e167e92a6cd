package client

import (
	"log"
	"math"

	"github.com/avaropoint/screenlink/internal/protocol"
)

// wheelNotch is the platform delta for one wheel notch on systems that
// report pixel-style deltas (Windows and macOS report multiples of 120;
// X11 button events arrive as whole notches already).
const wheelNotch = 120

// keyNames maps platform key symbols to the canonical names the host
// resolves against its special-key table. Symbols without an entry are
// forwarded as their literal character.
var keyNames = map[string]string{
	"Return":    "enter",
	"Escape":    "esc",
	"Prior":     "page_up",
	"Next":      "page_down",
	"Up":        "up",
	"Down":      "down",
	"Left":      "left",
	"Right":     "right",
	"Control_L": "ctrl_l",
	"Control_R": "ctrl_r",
	"Alt_L":     "alt_l",
	"Alt_R":     "alt_r",
	"Shift_L":   "shift_l",
	"Shift_R":   "shift_r",
	"BackSpace": "backspace",
	"Delete":    "delete",
	"Tab":       "tab",
	"space":     "space",
	"Caps_Lock": "caps_lock",
}

// NormalizeKey maps a platform key symbol to its canonical wire name.
func NormalizeKey(symbol string) string {
	if name, ok := keyNames[symbol]; ok {
		return name
	}
	return symbol
}

// normalizeWheel converts a platform wheel delta to whole scroll units.
func normalizeWheel(delta float64) float64 {
	if math.Abs(delta) >= wheelNotch {
		return delta / wheelNotch
	}
	return delta
}

// mapCoords translates surface-relative event coordinates into the
// displayed frame's coordinate space, compensating for the centering of
// the frame within the surface. Before the first frame has rendered,
// coordinates pass through unscaled.
func (c *Session) mapCoords(x, y int) (int, int) {
	c.mu.Lock()
	imgW, imgH := c.lastImgW, c.lastImgH
	c.mu.Unlock()

	if imgW == 0 || imgH == 0 {
		return x, y
	}

	sw, sh := c.surface.Size()
	offsetX := float64(sw-imgW) / 2
	offsetY := float64(sh-imgH) / 2
	return int(float64(x) - offsetX), int(float64(y) - offsetY)
}

// PointerMoved forwards a pointer motion event at surface coordinates.
func (c *Session) PointerMoved(x, y int) {
	mx, my := c.mapCoords(x, y)
	c.sendCommand(protocol.MouseMove(mx, my))
}

// PointerButton forwards a press or release of the named button.
func (c *Session) PointerButton(x, y int, button string, pressed bool) {
	mx, my := c.mapCoords(x, y)
	c.sendCommand(protocol.MouseClick(mx, my, button, pressed))
}

// Wheel forwards a vertical wheel delta in platform units.
func (c *Session) Wheel(delta float64) {
	c.sendCommand(protocol.Scroll(0, normalizeWheel(delta)))
}

// KeyChange forwards a key press or release. symbol is the platform key
// symbol; it is normalized to the canonical wire name before sending.
func (c *Session) KeyChange(symbol string, pressed bool) {
	c.sendCommand(protocol.KeyEvent(NormalizeKey(symbol), pressed))
}

// sendCommand ships one input command synchronously with the UI event
// that produced it. Transport failure tears the session down.
func (c *Session) sendCommand(cmd protocol.Command) {
	if !c.sess.Input() {
		return
	}

	data, err := cmd.Encode()
	if err != nil {
		log.Printf("encode %s command: %v", cmd.Type, err)
		return
	}

	if err := c.sess.Channel().Send(data); err != nil {
		if c.sess.Input() {
			log.Printf("send input: %v", err)
			c.status("Host disconnected.")
		}
		c.sess.Teardown()
	}
}
