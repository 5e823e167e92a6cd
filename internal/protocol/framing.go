// Package protocol defines the wire format shared by the host and the
// client: a length-prefixed framing layer over a TCP stream, and the
// input command records carried over it in the client→host direction.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

const (
	// DefaultPort is the TCP port the host listens on.
	DefaultPort = 12345

	// headerSize is the length prefix: a 4-byte big-endian unsigned count
	// of the payload bytes that follow.
	headerSize = 4

	// maxChunkSize bounds a single read from the connection. Payloads
	// larger than this are accumulated across multiple reads.
	maxChunkSize = 65536
)

// ErrConnectionClosed reports that the peer closed the connection before a
// complete message was transferred. A partially received message is never
// surfaced to the caller.
var ErrConnectionClosed = errors.New("connection closed")

// Channel frames messages on a bidirectional byte stream. Sends from
// concurrent goroutines never interleave; receives are expected from a
// single reader per direction.
type Channel struct {
	conn net.Conn

	writeMu sync.Mutex
}

// NewChannel wraps an established connection.
func NewChannel(conn net.Conn) *Channel {
	return &Channel{conn: conn}
}

// Send writes the length header and payload as one frame. The header and
// body go out in a single write so concurrent senders cannot interleave.
func (c *Channel) Send(payload []byte) error {
	frame := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint32(frame[:headerSize], uint32(len(payload)))
	copy(frame[headerSize:], payload)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := c.conn.Write(frame); err != nil {
		return closedOr("send", err)
	}
	return nil
}

// Receive blocks until one complete message has arrived and returns its
// payload. The payload is accumulated across partial reads, each bounded
// at maxChunkSize bytes. If the stream ends before the declared length has
// arrived the message is discarded and ErrConnectionClosed is returned.
func (c *Channel) Receive() ([]byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(c.conn, header[:]); err != nil {
		return nil, closedOr("receive header", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	payload := make([]byte, length)

	for read := 0; read < int(length); {
		chunk := int(length) - read
		if chunk > maxChunkSize {
			chunk = maxChunkSize
		}
		n, err := c.conn.Read(payload[read : read+chunk])
		read += n
		if err != nil {
			if read < int(length) {
				return nil, closedOr("receive payload", err)
			}
			break
		}
	}
	return payload, nil
}

// Close closes the underlying connection, unblocking any pending reads.
func (c *Channel) Close() error {
	return c.conn.Close()
}

// closedOr maps stream-end conditions to ErrConnectionClosed and wraps
// everything else with the failing operation.
func closedOr(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("%s: %w", op, ErrConnectionClosed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
