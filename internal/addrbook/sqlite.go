package addrbook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// migrations is an ordered list of SQL statements applied on startup.
// Each entry is idempotent (IF NOT EXISTS) so re-running is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS endpoints (
		label      TEXT PRIMARY KEY,
		address    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		last_used  TEXT
	)`,
}

// SQLiteBook implements Book using a SQLite database.
type SQLiteBook struct {
	db *sql.DB
}

// Open opens (or creates) the address book at path and runs migrations.
func Open(path string) (*SQLiteBook, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open address book: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite handles one writer at a time.

	b := &SQLiteBook{db: db}
	if err := b.migrate(); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBook) migrate() error {
	for _, stmt := range migrations {
		if _, err := b.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
	}
	return nil
}

func (b *SQLiteBook) Close() error { return b.db.Close() }

func (b *SQLiteBook) Save(ctx context.Context, label, address string) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO endpoints (label, address, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(label) DO UPDATE SET address = excluded.address`,
		label, address, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save endpoint: %w", err)
	}
	return nil
}

func (b *SQLiteBook) Get(ctx context.Context, label string) (*Entry, error) {
	row := b.db.QueryRowContext(ctx,
		`SELECT label, address, created_at, last_used FROM endpoints WHERE label = ?`, label)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

func (b *SQLiteBook) List(ctx context.Context) ([]*Entry, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT label, address, created_at, last_used FROM endpoints
		 ORDER BY last_used DESC NULLS LAST, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list endpoints: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (b *SQLiteBook) Touch(ctx context.Context, label string, t time.Time) error {
	res, err := b.db.ExecContext(ctx,
		`UPDATE endpoints SET last_used = ? WHERE label = ?`,
		t.UTC().Format(time.RFC3339), label)
	if err != nil {
		return fmt.Errorf("touch endpoint: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (b *SQLiteBook) Delete(ctx context.Context, label string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM endpoints WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("delete endpoint: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var created string
	var lastUsed sql.NullString

	if err := s.Scan(&e.Label, &e.Address, &created, &lastUsed); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	e.CreatedAt = t

	if lastUsed.Valid {
		t, err := time.Parse(time.RFC3339, lastUsed.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_used: %w", err)
		}
		e.LastUsed = &t
	}
	return &e, nil
}
