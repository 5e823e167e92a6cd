// Package viewer is the client's render surface: an ebiten window that
// displays the incoming frame stream and feeds local pointer and
// keyboard events back into the session.
//
// Worker goroutines hand frames over under a mutex; only ebiten's own
// game loop reads them for drawing. That loop is the single-threaded
// rendering context mandated by the toolkit.
package viewer

import (
	"image"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/avaropoint/screenlink/internal/client"
	"github.com/avaropoint/screenlink/internal/protocol"
)

const (
	defaultWindowWidth  = 800
	defaultWindowHeight = 600
)

// Viewer implements client.RenderSurface and ebiten.Game.
type Viewer struct {
	mu      sync.Mutex
	frame   image.Image
	sess    *client.Session
	width   int
	height  int
	cursorX int
	cursorY int

	keyBuf []ebiten.Key
}

// New creates a viewer with no session attached yet.
func New() *Viewer { return &Viewer{} }

// SetSession attaches the session input events are forwarded to.
func (v *Viewer) SetSession(s *client.Session) {
	v.mu.Lock()
	v.sess = s
	v.mu.Unlock()
}

// Size reports the window's laid-out size. Before the first Layout call
// it reports zero and the renderer substitutes its default box.
func (v *Viewer) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Display stores the next frame for the draw loop. Called from the
// renderer goroutine.
func (v *Viewer) Display(img image.Image) {
	v.mu.Lock()
	v.frame = img
	v.mu.Unlock()
}

// Run opens the window and blocks until the session ends or the window
// is closed. Must be called from the main goroutine.
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowSize(defaultWindowWidth, defaultWindowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

// Update forwards this tick's input events to the session.
func (v *Viewer) Update() error {
	v.mu.Lock()
	sess := v.sess
	v.mu.Unlock()
	if sess == nil {
		return nil
	}
	if !sess.Active() {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	if x != v.cursorX || y != v.cursorY {
		v.cursorX, v.cursorY = x, y
		sess.PointerMoved(x, y)
	}

	buttons := []struct {
		eb   ebiten.MouseButton
		name string
	}{
		{ebiten.MouseButtonLeft, protocol.ButtonLeft},
		{ebiten.MouseButtonRight, protocol.ButtonRight},
	}
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			sess.PointerButton(x, y, b.name, true)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			sess.PointerButton(x, y, b.name, false)
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		sess.Wheel(dy)
	}

	v.keyBuf = inpututil.AppendJustPressedKeys(v.keyBuf[:0])
	for _, k := range v.keyBuf {
		if sym, ok := keySymbol(k); ok {
			sess.KeyChange(sym, true)
		}
	}
	v.keyBuf = inpututil.AppendJustReleasedKeys(v.keyBuf[:0])
	for _, k := range v.keyBuf {
		if sym, ok := keySymbol(k); ok {
			sess.KeyChange(sym, false)
		}
	}

	return nil
}

// Draw paints the latest frame centered in the window.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	img := v.frame
	v.mu.Unlock()
	if img == nil {
		return
	}

	eimg := ebiten.NewImageFromImage(img)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := eimg.Bounds().Dx(), eimg.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sw-iw)/2, float64(sh-ih)/2)
	screen.DrawImage(eimg, op)
}

// Layout records the window size for Size and keeps a 1:1 pixel mapping.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.mu.Lock()
	v.width, v.height = outsideWidth, outsideHeight
	v.mu.Unlock()
	return outsideWidth, outsideHeight
}

// keySpecials maps ebiten keys to the platform key symbols the client's
// normalization table understands.
var keySpecials = map[ebiten.Key]string{
	ebiten.KeyEnter:        "Return",
	ebiten.KeyEscape:       "Escape",
	ebiten.KeyPageUp:       "Prior",
	ebiten.KeyPageDown:     "Next",
	ebiten.KeyArrowUp:      "Up",
	ebiten.KeyArrowDown:    "Down",
	ebiten.KeyArrowLeft:    "Left",
	ebiten.KeyArrowRight:   "Right",
	ebiten.KeyControlLeft:  "Control_L",
	ebiten.KeyControlRight: "Control_R",
	ebiten.KeyAltLeft:      "Alt_L",
	ebiten.KeyAltRight:     "Alt_R",
	ebiten.KeyShiftLeft:    "Shift_L",
	ebiten.KeyShiftRight:   "Shift_R",
	ebiten.KeyBackspace:    "BackSpace",
	ebiten.KeyDelete:       "Delete",
	ebiten.KeyTab:          "Tab",
	ebiten.KeySpace:        "space",
	ebiten.KeyCapsLock:     "Caps_Lock",
}

// keySymbol translates an ebiten key to the symbol forwarded on the
// wire. Letters and digits become their literal lowercase character;
// keys with no sensible wire representation are skipped.
func keySymbol(k ebiten.Key) (string, bool) {
	if sym, ok := keySpecials[k]; ok {
		return sym, true
	}
	s := k.String()
	if len(s) == 1 {
		return strings.ToLower(s), true
	}
	if d, ok := strings.CutPrefix(s, "Digit"); ok && len(d) == 1 {
		return d, true
	}
	return "", false
}
