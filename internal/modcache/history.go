// History is modcache's sqlite-backed record of module pulls and
// reloads, grounded on the teacher's internal/registry/db.go: same
// modernc.org/sqlite (pure Go, no cgo collision with the hlrt cgo
// build), same WAL-mode open, same CREATE TABLE IF NOT EXISTS migration
// style.
package modcache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History wraps the pull/reload history database.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("create history db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return h, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) migrate() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			image_ref  TEXT NOT NULL,
			digest     TEXT NOT NULL,
			kind       TEXT NOT NULL,
			recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

// EventKind is the closed set of history event kinds recorded.
type EventKind string

const (
	EventPull   EventKind = "pull"
	EventReload EventKind = "reload"
)

// Record appends one pull or reload event.
func (h *History) Record(imageRef, digest string, kind EventKind) error {
	_, err := h.db.Exec(
		`INSERT INTO events (image_ref, digest, kind, recorded_at) VALUES (?, ?, ?, ?)`,
		imageRef, digest, string(kind), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record %s event: %w", kind, err)
	}
	return nil
}

// Event is one recorded history row.
type Event struct {
	ImageRef   string
	Digest     string
	Kind       EventKind
	RecordedAt string
}

// Events returns all events recorded for imageRef, oldest first.
func (h *History) Events(imageRef string) ([]Event, error) {
	rows, err := h.db.Query(
		`SELECT image_ref, digest, kind, recorded_at FROM events WHERE image_ref = ? ORDER BY id ASC`,
		imageRef,
	)
	if err != nil {
		return nil, fmt.Errorf("query history for %s: %w", imageRef, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ImageRef, &e.Digest, &kind, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// LastDigest returns the most recently recorded digest for imageRef, or
// "" if none has ever been pulled.
func (h *History) LastDigest(imageRef string) (string, error) {
	var digest string
	err := h.db.QueryRow(
		`SELECT digest FROM events WHERE image_ref = ? ORDER BY id DESC LIMIT 1`,
		imageRef,
	).Scan(&digest)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query last digest for %s: %w", imageRef, err)
	}
	return digest, nil
}
