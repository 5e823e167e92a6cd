// Package inject simulates pointer and keyboard input on the host at the
// OS level. The Injector interface decouples the receive loop from the
// actual OS bindings so tests can record injected events instead.
package inject

// Injector replays remote input events on the local machine.
type Injector interface {
	// MouseMove sets the absolute pointer position.
	MouseMove(x, y int) error

	// MouseButton moves the pointer to (x, y) and presses or releases
	// the named button ("left" or "right").
	MouseButton(x, y int, button string, pressed bool) error

	// Scroll applies a wheel delta: dx horizontal, dy vertical, in
	// scroll units.
	Scroll(dx, dy float64) error

	// Key presses or releases a key. name is either a canonical
	// special-key name from the wire protocol or a literal character.
	Key(name string, pressed bool) error
}

// specialKeys maps canonical wire key names to the names the OS binding
// understands. Names not present here are injected as literal characters.
var specialKeys = map[string]string{
	"enter":     "enter",
	"esc":       "esc",
	"page_up":   "pageup",
	"page_down": "pagedown",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"ctrl_l":    "ctrl",
	"ctrl_r":    "rctrl",
	"alt_l":     "alt",
	"alt_r":     "ralt",
	"shift_l":   "shift",
	"shift_r":   "rshift",
	"backspace": "backspace",
	"delete":    "delete",
	"tab":       "tab",
	"space":     "space",
	"caps_lock": "capslock",
}

// resolveKey translates a wire key name for the OS binding. The second
// return reports whether the name matched the special-key table.
func resolveKey(name string) (string, bool) {
	if k, ok := specialKeys[name]; ok {
		return k, true
	}
	return name, false
}
