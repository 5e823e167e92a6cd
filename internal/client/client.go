// Package client connects to a host, renders the incoming frame stream,
// and forwards locally captured input. Presentation is delegated to a
// RenderSurface so the core stays independent of any UI toolkit.
package client

import (
	"errors"
	"fmt"
	"image"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/avaropoint/screenlink/internal/session"
)

// dialTimeout bounds the initial connection attempt.
const dialTimeout = 10 * time.Second

// keepaliveInterval is how often the keepalive task polls the input flag.
// The task sends nothing; it only keeps the session's send side alive.
const keepaliveInterval = 100 * time.Millisecond

// RenderSurface is where decoded frames are displayed. Size reports the
// current surface dimensions; a surface that has not been laid out yet
// may report 1x1 and the renderer substitutes a default. Display hands
// over an already-scaled image and must be safe to call from a worker
// goroutine: implementations marshal onto their own rendering thread.
type RenderSurface interface {
	Size() (width, height int)
	Display(img image.Image)
}

// StatusFunc receives human-readable connection status updates.
type StatusFunc func(string)

// Session is the client side of one connection: the frame renderer, the
// keepalive task, and the input forwarding state.
type Session struct {
	sess    *session.Session
	surface RenderSurface
	status  StatusFunc

	mu       sync.Mutex
	lastImgW int // displayed size of the most recent frame
	lastImgH int

	wg sync.WaitGroup
}

// Connect dials the host and starts the renderer and keepalive tasks.
// Dial failures are reported through status with the failure class
// (timeout vs refused) and returned.
func Connect(addr string, surface RenderSurface, status StatusFunc) (*Session, error) {
	if status == nil {
		status = func(string) {}
	}

	status(fmt.Sprintf("Attempting to connect to %s...", addr))

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		status(describeDialError(addr, err))
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	status(fmt.Sprintf("Connected to %s. Receiving screen...", addr))

	c := &Session{
		sess:    session.New(conn),
		surface: surface,
		status:  status,
	}

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.renderFrames()
	}()
	go func() {
		defer c.wg.Done()
		c.keepalive()
	}()

	return c, nil
}

// Active reports whether the session is still running.
func (c *Session) Active() bool { return c.sess.Active() }

// Close tears the session down and waits for both tasks to exit.
func (c *Session) Close() {
	c.sess.Teardown()
	c.wg.Wait()
}

// Wait blocks until both tasks have exited, however the session ended.
func (c *Session) Wait() { c.wg.Wait() }

// keepalive idles while input forwarding is active. Input commands are
// sent synchronously from UI event delivery, not from here.
func (c *Session) keepalive() {
	for c.sess.Input() {
		time.Sleep(keepaliveInterval)
	}
}

// describeDialError classifies a dial failure for the status sink.
func describeDialError(addr string, err error) string {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Sprintf("Connection to %s timed out.", addr)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Sprintf("Connection to %s refused. Is the host running?", addr)
	}
	return fmt.Sprintf("Connection to %s failed: %v", addr, err)
}
