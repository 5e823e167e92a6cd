package inject

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robot injects input through robotgo.
type Robot struct{}

// NewRobot returns the OS-level injector.
func NewRobot() *Robot { return &Robot{} }

func (r *Robot) MouseMove(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (r *Robot) MouseButton(x, y int, button string, pressed bool) error {
	robotgo.Move(x, y)
	dir := "up"
	if pressed {
		dir = "down"
	}
	if err := robotgo.Toggle(button, dir); err != nil {
		return fmt.Errorf("toggle %s button %s: %w", button, dir, err)
	}
	return nil
}

func (r *Robot) Scroll(dx, dy float64) error {
	robotgo.Scroll(int(dx), int(dy))
	return nil
}

func (r *Robot) Key(name string, pressed bool) error {
	key, _ := resolveKey(name)
	dir := "up"
	if pressed {
		dir = "down"
	}
	if err := robotgo.KeyToggle(key, dir); err != nil {
		return fmt.Errorf("toggle key %q %s: %w", key, dir, err)
	}
	return nil
}
