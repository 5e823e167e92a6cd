// Package session tracks the live pairing of one connection with its
// streaming and injection loops.
package session

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/avaropoint/screenlink/internal/protocol"
)

// Session owns one accepted (host) or established (client) connection and
// the two activity flags its worker loops poll. Flags only ever move from
// true to false: a disconnect never reactivates an old session, a new
// connection gets a new Session.
type Session struct {
	channel *protocol.Channel

	sharing atomic.Bool
	input   atomic.Bool

	teardown sync.Once
}

// New wraps a connection with both activity flags set.
func New(conn net.Conn) *Session {
	s := &Session{channel: protocol.NewChannel(conn)}
	s.sharing.Store(true)
	s.input.Store(true)
	return s
}

// Channel returns the framed message channel for this connection.
func (s *Session) Channel() *protocol.Channel { return s.channel }

// Sharing reports whether the screen-streaming direction is active.
func (s *Session) Sharing() bool { return s.sharing.Load() }

// Input reports whether the input-forwarding direction is active.
func (s *Session) Input() bool { return s.input.Load() }

// Active reports whether either direction is still running.
func (s *Session) Active() bool { return s.Sharing() || s.Input() }

// Teardown clears both flags and closes the connection so blocked reads
// return. It is the single exit path for every failure: a broken stream
// in one direction ends the whole session, since a one-way session is not
// a supported state. Safe to call from any goroutine, any number of times.
func (s *Session) Teardown() {
	s.teardown.Do(func() {
		s.sharing.Store(false)
		s.input.Store(false)
		s.channel.Close()
	})
}
