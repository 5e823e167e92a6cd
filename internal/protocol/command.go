package protocol

import (
	"encoding/json"
	"fmt"
)

// Command type discriminators. These values are the wire contract between
// the client's input capture and the host's injector.
const (
	TypeMouseMove  = "mouse_move"
	TypeMouseClick = "mouse_click"
	TypeScroll     = "scroll"
	TypeKeyEvent   = "key_event"
)

// Mouse button names carried by mouse_click commands.
const (
	ButtonLeft  = "left"
	ButtonRight = "right"
)

// Command is one input event forwarded from the client to the host.
// Type selects the variant; the other fields are variant-specific.
// Unknown fields in a received record are ignored.
type Command struct {
	Type    string  `json:"type"`
	X       int     `json:"x,omitempty"`
	Y       int     `json:"y,omitempty"`
	Button  string  `json:"button,omitempty"`
	Pressed bool    `json:"pressed"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Key     string  `json:"key,omitempty"`
}

// MouseMove builds a pointer-position command.
func MouseMove(x, y int) Command {
	return Command{Type: TypeMouseMove, X: x, Y: y}
}

// MouseClick builds a button press or release at (x, y).
func MouseClick(x, y int, button string, pressed bool) Command {
	return Command{Type: TypeMouseClick, X: x, Y: y, Button: button, Pressed: pressed}
}

// Scroll builds a wheel command. dx is horizontal, dy vertical, both in
// normalized scroll units.
func Scroll(dx, dy float64) Command {
	return Command{Type: TypeScroll, DX: dx, DY: dy}
}

// KeyEvent builds a key press or release. Key is either a canonical
// special-key name or a literal single character.
func KeyEvent(key string, pressed bool) Command {
	return Command{Type: TypeKeyEvent, Key: key, Pressed: pressed}
}

// Encode serialises the command as a UTF-8 JSON record.
func (c Command) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// ParseCommand decodes one received record. Records that are not valid
// JSON or carry an unknown type are rejected with an error; the caller is
// expected to log and keep its receive loop running.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("malformed command: %w", err)
	}
	switch cmd.Type {
	case TypeMouseMove, TypeMouseClick, TypeScroll, TypeKeyEvent:
		return cmd, nil
	default:
		return Command{}, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}
