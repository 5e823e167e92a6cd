// Package addrbook persists the client's saved host endpoints.
// Implementations satisfy the Book interface so the client can swap
// backends without changing its command handling.
package addrbook

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that no entry carries the requested label.
var ErrNotFound = errors.New("addrbook: entry not found")

// Book is the persistence interface for saved endpoints.
// Implementations must be safe for concurrent use.
type Book interface {
	// Save creates or replaces the entry for label.
	Save(ctx context.Context, label, address string) error

	// Get returns the entry for label, or ErrNotFound.
	Get(ctx context.Context, label string) (*Entry, error)

	// List returns all entries, most recently used first.
	List(ctx context.Context) ([]*Entry, error)

	// Touch records a successful connection to label.
	Touch(ctx context.Context, label string, t time.Time) error

	// Delete removes the entry for label.
	Delete(ctx context.Context, label string) error

	// Close releases database resources.
	Close() error
}

// Entry is one saved host endpoint.
type Entry struct {
	Label     string     `json:"label"`
	Address   string     `json:"address"` // host:port
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}
