package host

import (
	"log"
	"time"

	"github.com/avaropoint/screenlink/internal/codec"
	"github.com/avaropoint/screenlink/internal/session"
)

// streamScreen is the capture->encode->send loop. Each iteration grabs one
// frame of the primary display, compresses it, and ships it as a single
// message. Any capture or transport failure ends the whole session.
func (s *Supervisor) streamScreen(sess *session.Session) {
	ch := sess.Channel()

	for sess.Sharing() {
		img, err := s.capture()
		if err != nil {
			log.Printf("screen capture failed: %v", err)
			sess.Teardown()
			return
		}

		data, err := codec.Encode(img)
		if err != nil {
			log.Printf("frame encode failed: %v", err)
			sess.Teardown()
			return
		}

		if err := ch.Send(data); err != nil {
			if sess.Sharing() {
				log.Printf("send frame: %v", err)
			}
			sess.Teardown()
			return
		}

		time.Sleep(s.interval)
	}
}
