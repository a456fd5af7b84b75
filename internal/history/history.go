// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of registry lookups.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pnum-lookup/internal/client"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

const (
	dbFile           = "history.db"
	defaultListLimit = 20
	timestampLayout  = time.RFC3339Nano
)

// Entry is one recorded lookup.
type Entry struct {
	ID          int64        `json:"id" yaml:"id"`
	RequestID   string       `json:"request_id" yaml:"request_id"`
	Action      types.Action `json:"action" yaml:"action"`
	Pnum        string       `json:"pnum,omitempty" yaml:"pnum,omitempty"`
	StatusCode  int          `json:"status_code" yaml:"status_code"`
	Body        string       `json:"body" yaml:"body"`
	RequestedAt time.Time    `json:"requested_at" yaml:"requested_at"`
}

// EntryFromResponse builds an Entry for a completed request.
func EntryFromResponse(resp *client.Response, at time.Time) Entry {
	return Entry{
		RequestID:   resp.RequestID,
		Action:      resp.Action(),
		Pnum:        resp.Pnum(),
		StatusCode:  resp.StatusCode,
		Body:        string(resp.Body),
		RequestedAt: at.UTC(),
	}
}

// ListOptions filters List results.
type ListOptions struct {
	// Action restricts entries to one action when non-empty.
	Action types.Action

	// Limit caps the number of entries. Zero uses the default (20).
	Limit int
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns ~/.config/pls/history.db, or history.db in the working
// directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dbFile
	}
	return filepath.Join(home, ".config", "pls", dbFile)
}

// Open opens or creates the history database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			action TEXT NOT NULL,
			pnum TEXT,
			status_code INTEGER NOT NULL,
			body TEXT,
			requested_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_action ON lookups(action)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e and returns its row id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.RequestedAt.IsZero() {
		e.RequestedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (request_id, action, pnum, status_code, body, requested_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RequestID, string(e.Action), e.Pnum, e.StatusCode, e.Body,
		e.RequestedAt.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("recording lookup: %w", err)
	}
	return res.LastInsertId()
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, request_id, action, pnum, status_code, body, requested_at
		FROM lookups WHERE 1=1`)
	if opts.Action != "" {
		qb.WriteString(` AND action = ?`)
		args = append(args, string(opts.Action))
	}
	qb.WriteString(` ORDER BY id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			action string
			pnum   sql.NullString
			body   sql.NullString
			at     string
		)
		if err := rows.Scan(&e.ID, &e.RequestID, &action, &pnum, &e.StatusCode, &body, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Action = types.Action(action)
		e.Pnum = pnum.String
		e.Body = body.String
		if t, parseErr := time.Parse(timestampLayout, at); parseErr == nil {
			e.RequestedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lookups`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}
