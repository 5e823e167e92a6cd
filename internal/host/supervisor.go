// Package host runs the sharing side of a session: it serves one client
// at a time, streaming the display out and replaying received input.
package host

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/avaropoint/screenlink/internal/capture"
	"github.com/avaropoint/screenlink/internal/inject"
	"github.com/avaropoint/screenlink/internal/session"
)

// FrameInterval is the pause between captured frames (~20 fps).
const FrameInterval = 50 * time.Millisecond

// StatusFunc receives human-readable connection status updates. The
// supervisor reports through it instead of owning any presentation.
type StatusFunc func(string)

// Supervisor accepts one inbound connection at a time and runs a session
// against it. Sessions are strictly serialized: the accept loop does not
// take the next connection until both worker loops of the current session
// have exited.
type Supervisor struct {
	addr     string
	capture  capture.Func
	injector inject.Injector
	status   StatusFunc
	interval time.Duration

	mu      sync.Mutex
	ln      net.Listener
	current *session.Session
	stopped bool
}

// NewSupervisor configures a host supervisor. status may be nil.
func NewSupervisor(addr string, cap capture.Func, inj inject.Injector, status StatusFunc) *Supervisor {
	if status == nil {
		status = func(string) {}
	}
	return &Supervisor{
		addr:     addr,
		capture:  cap,
		injector: inj,
		status:   status,
		interval: FrameInterval,
	}
}

// Run binds the listen address and serves connections until Stop is
// called or the listener fails. It blocks for the supervisor's lifetime.
func (s *Supervisor) Run() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.ln = ln
	s.mu.Unlock()

	s.status(fmt.Sprintf("Listening on %s...", ln.Addr()))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				// Explicit shutdown closed the listener.
				return nil
			}
			s.status(fmt.Sprintf("Host error: %v", err))
			return fmt.Errorf("accept: %w", err)
		}

		s.status(fmt.Sprintf("Client connected from %s. Starting screen share...", remoteHost(conn)))
		s.serve(session.New(conn))
		s.status("Client disconnected. Waiting for new connection...")
	}
}

// serve runs one session to completion: both worker loops are spawned
// against the connection and joined before serve returns.
func (s *Supervisor) serve(sess *session.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.streamScreen(sess)
	}()
	go func() {
		defer wg.Done()
		s.replayInput(sess)
	}()
	wg.Wait()

	sess.Teardown()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Addr returns the bound listen address, or nil before Run has bound it.
// Useful when the supervisor was started on port 0.
func (s *Supervisor) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop closes the listener and tears down the active session, if any.
// The accept loop observes the closed listener and exits without error.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	s.stopped = true
	ln := s.ln
	cur := s.current
	s.mu.Unlock()

	if ln != nil {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("close listener: %v", err)
		}
	}
	if cur != nil {
		cur.Teardown()
	}
}

func remoteHost(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}
