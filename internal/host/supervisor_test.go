package host

import (
	"fmt"
	"image"
	"image/color"
	"net"
	"testing"
	"time"

	"github.com/avaropoint/screenlink/internal/codec"
	"github.com/avaropoint/screenlink/internal/protocol"
)

// fakeCapture produces a small solid frame without touching a display.
func fakeCapture() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{200, 50, 50, 255})
		}
	}
	return img, nil
}

// recordingInjector captures dispatched input events for assertions.
type recordingInjector struct {
	events chan string
}

func newRecordingInjector() *recordingInjector {
	return &recordingInjector{events: make(chan string, 100)}
}

func (r *recordingInjector) MouseMove(x, y int) error {
	r.events <- fmt.Sprintf("move %d,%d", x, y)
	return nil
}

func (r *recordingInjector) MouseButton(x, y int, button string, pressed bool) error {
	r.events <- fmt.Sprintf("button %s@%d,%d pressed=%t", button, x, y, pressed)
	return nil
}

func (r *recordingInjector) Scroll(dx, dy float64) error {
	r.events <- fmt.Sprintf("scroll %g,%g", dx, dy)
	return nil
}

func (r *recordingInjector) Key(name string, pressed bool) error {
	r.events <- fmt.Sprintf("key %s pressed=%t", name, pressed)
	return nil
}

func (r *recordingInjector) next(t *testing.T) string {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for injected event")
		return ""
	}
}

// startSupervisor runs a supervisor on a loopback port and returns it with
// its bound address and a channel yielding Run's result.
func startSupervisor(t *testing.T, inj *recordingInjector) (*Supervisor, string, chan error) {
	t.Helper()

	sup := NewSupervisor("127.0.0.1:0", fakeCapture, inj, nil)
	sup.interval = time.Millisecond // keep tests fast

	runErr := make(chan error, 1)
	go func() {
		runErr <- sup.Run()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for sup.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("supervisor did not bind in time")
		}
		time.Sleep(time.Millisecond)
	}

	t.Cleanup(sup.Stop)
	return sup, sup.Addr().String(), runErr
}

func dialChannel(t *testing.T, addr string) (net.Conn, *protocol.Channel) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	return conn, protocol.NewChannel(conn)
}

func TestSessionStreamsFramesAndReplaysInput(t *testing.T) {
	inj := newRecordingInjector()
	_, addr, _ := startSupervisor(t, inj)

	conn, ch := dialChannel(t, addr)
	defer conn.Close()

	// Host -> client: a decodable frame arrives.
	data, err := ch.Receive()
	if err != nil {
		t.Fatalf("receive frame: %v", err)
	}
	img, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("frame is %dx%d, want 8x8", b.Dx(), b.Dy())
	}

	// Client -> host: commands reach the injector in order.
	send := func(cmd protocol.Command) {
		payload, err := cmd.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if err := ch.Send(payload); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	send(protocol.MouseMove(100, 200))
	send(protocol.MouseClick(5, 6, protocol.ButtonLeft, true))
	send(protocol.Scroll(0, -1))
	send(protocol.KeyEvent("enter", true))

	want := []string{
		"move 100,200",
		"button left@5,6 pressed=true",
		"scroll 0,-1",
		"key enter pressed=true",
	}
	for _, w := range want {
		if got := inj.next(t); got != w {
			t.Fatalf("injected %q, want %q", got, w)
		}
	}
}

func TestSessionsAreSerialized(t *testing.T) {
	inj := newRecordingInjector()
	_, addr, _ := startSupervisor(t, inj)

	conn1, ch1 := dialChannel(t, addr)
	if _, err := ch1.Receive(); err != nil {
		t.Fatalf("first session frame: %v", err)
	}

	// A second connection sits in the accept backlog: no frames may
	// arrive on it while the first session is alive.
	conn2, ch2 := dialChannel(t, addr)
	defer conn2.Close()

	conn2.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, err := ch2.Receive(); err == nil {
		t.Fatal("second connection was serviced while first session active")
	}
	conn2.SetReadDeadline(time.Time{})

	// Ending the first session lets the supervisor accept the second.
	conn1.Close()

	if _, err := ch2.Receive(); err != nil {
		t.Fatalf("second session frame after first ended: %v", err)
	}
}

func TestMalformedCommandDoesNotEndSession(t *testing.T) {
	inj := newRecordingInjector()
	_, addr, _ := startSupervisor(t, inj)

	conn, ch := dialChannel(t, addr)
	defer conn.Close()

	if _, err := ch.Receive(); err != nil {
		t.Fatalf("receive frame: %v", err)
	}

	if err := ch.Send([]byte("{not valid json")); err != nil {
		t.Fatalf("send garbage: %v", err)
	}

	payload, err := protocol.MouseMove(1, 2).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := ch.Send(payload); err != nil {
		t.Fatalf("send after garbage: %v", err)
	}

	if got := inj.next(t); got != "move 1,2" {
		t.Fatalf("injected %q after malformed record, want %q", got, "move 1,2")
	}
}

func TestStopShutsDownCleanly(t *testing.T) {
	inj := newRecordingInjector()
	sup, addr, runErr := startSupervisor(t, inj)

	conn, ch := dialChannel(t, addr)
	defer conn.Close()
	if _, err := ch.Receive(); err != nil {
		t.Fatalf("receive frame: %v", err)
	}

	sup.Stop()

	// Run exits without error on an explicit stop.
	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("Run returned %v on explicit stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	// The active session's connection is torn down: the stream ends.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, err := ch.Receive(); err != nil {
			break
		}
	}
}
