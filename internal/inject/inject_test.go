package inject

import "testing"

func TestResolveKeySpecials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"enter", "enter"},
		{"esc", "esc"},
		{"page_up", "pageup"},
		{"page_down", "pagedown"},
		{"ctrl_l", "ctrl"},
		{"ctrl_r", "rctrl"},
		{"alt_l", "alt"},
		{"shift_r", "rshift"},
		{"caps_lock", "capslock"},
		{"space", "space"},
	}

	for _, c := range cases {
		got, special := resolveKey(c.name)
		if !special {
			t.Errorf("resolveKey(%q): expected special-key match", c.name)
		}
		if got != c.want {
			t.Errorf("resolveKey(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestResolveKeyLiteralPassThrough(t *testing.T) {
	for _, name := range []string{"a", "Z", "7", "%"} {
		got, special := resolveKey(name)
		if special {
			t.Errorf("resolveKey(%q): unexpected special-key match", name)
		}
		if got != name {
			t.Errorf("resolveKey(%q) = %q, want unchanged", name, got)
		}
	}
}
