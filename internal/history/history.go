// Package history archives recording session metadata in SQLite.
//
// Only metadata is stored: when a session started and stopped, how many
// events it captured, and where exports were written. The captured key
// content itself never touches the database — the buffer stays in
// memory until the user explicitly exports it to a text file.
//
// The archive is an opt-in feature, off by default.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Schema for the session archive.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    started_ns  INTEGER NOT NULL,
    stopped_ns  INTEGER,
    events      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS exports (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id  INTEGER REFERENCES sessions(id),
    exported_ns INTEGER NOT NULL,
    events      INTEGER NOT NULL,
    path        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_ns);
CREATE INDEX IF NOT EXISTS idx_exports_session ON exports(session_id);
`

// Store is the SQLite session archive.
type Store struct {
	db *sql.DB
}

// Session is one archived recording session.
type Session struct {
	ID      int64
	Started time.Time
	Stopped time.Time // zero if the session never stopped cleanly
	Events  int
}

// Export is one archived export of the event log.
type Export struct {
	ID        int64
	SessionID int64
	At        time.Time
	Events    int
	Path      string
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginSession inserts a new session row and returns its id.
func (s *Store) BeginSession(start time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (started_ns) VALUES (?)`,
		start.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("begin session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("begin session id: %w", err)
	}
	return id, nil
}

// EndSession records the stop time and final event count for a session.
func (s *Store) EndSession(id int64, stop time.Time, events int) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET stopped_ns = ?, events = ? WHERE id = ?`,
		stop.UnixNano(), events, id,
	)
	if err != nil {
		return fmt.Errorf("end session %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("end session %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("end session %d: no such session", id)
	}
	return nil
}

// RecordExport records a successful export of the event log.
func (s *Store) RecordExport(sessionID int64, at time.Time, events int, path string) error {
	var sid any
	if sessionID != 0 {
		sid = sessionID
	}
	_, err := s.db.Exec(
		`INSERT INTO exports (session_id, exported_ns, events, path) VALUES (?, ?, ?, ?)`,
		sid, at.UnixNano(), events, path,
	)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// Sessions returns the most recent sessions, newest first.
func (s *Store) Sessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, started_ns, stopped_ns, events
		 FROM sessions ORDER BY started_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			sess      Session
			startedNS int64
			stoppedNS sql.NullInt64
		)
		if err := rows.Scan(&sess.ID, &startedNS, &stoppedNS, &sess.Events); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Started = time.Unix(0, startedNS)
		if stoppedNS.Valid {
			sess.Stopped = time.Unix(0, stoppedNS.Int64)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Exports returns the exports recorded for a session, oldest first.
func (s *Store) Exports(sessionID int64) ([]Export, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, exported_ns, events, path
		 FROM exports WHERE session_id = ? ORDER BY exported_ns`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var (
			e  Export
			ns int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &ns, &e.Events, &e.Path); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		e.At = time.Unix(0, ns)
		out = append(out, e)
	}
	return out, rows.Err()
}
