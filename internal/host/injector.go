package host

import (
	"fmt"
	"log"

	"github.com/avaropoint/screenlink/internal/protocol"
	"github.com/avaropoint/screenlink/internal/session"
)

// replayInput is the receive->parse->inject loop. A record that fails to
// parse is logged and skipped; transport and injection failures end the
// whole session.
func (s *Supervisor) replayInput(sess *session.Session) {
	ch := sess.Channel()

	for sess.Input() {
		data, err := ch.Receive()
		if err != nil {
			if sess.Input() {
				log.Printf("receive input: %v", err)
			}
			sess.Teardown()
			return
		}

		cmd, err := protocol.ParseCommand(data)
		if err != nil {
			log.Printf("ignoring input record: %v", err)
			continue
		}

		if err := s.dispatch(cmd); err != nil {
			log.Printf("input injection failed: %v", err)
			sess.Teardown()
			return
		}
	}
}

// dispatch replays one parsed command through the injector.
func (s *Supervisor) dispatch(cmd protocol.Command) error {
	switch cmd.Type {
	case protocol.TypeMouseMove:
		return s.injector.MouseMove(cmd.X, cmd.Y)
	case protocol.TypeMouseClick:
		return s.injector.MouseButton(cmd.X, cmd.Y, cmd.Button, cmd.Pressed)
	case protocol.TypeScroll:
		return s.injector.Scroll(cmd.DX, cmd.DY)
	case protocol.TypeKeyEvent:
		return s.injector.Key(cmd.Key, cmd.Pressed)
	default:
		// ParseCommand only admits the types above.
		return fmt.Errorf("unhandled command type %q", cmd.Type)
	}
}
