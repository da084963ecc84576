// Package storage provides SQLite-based persistence for recorded sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/replay"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// Recording is a saved session: everything needed to replay it plus the
// final state it is expected to reach.
type Recording struct {
	ID       int64
	Frontend string
	Seed     int64
	Config   []byte // YAML, as produced by config.Encode
	Ticks    uint64
	Score    int
	Lives    int
	Outcome  string
	Hash     uint64 // Final snapshot hash
	Snapshot breakout.Snapshot

	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			frontend TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config BLOB NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			snapshot_hash INTEGER NOT NULL,
			snapshot BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS recording_commands (
			recording_id INTEGER NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			value REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (recording_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording and its command journal in one transaction.
// Returns the ID of the inserted recording.
func (s *Store) SaveRecording(rec Recording, journal []replay.Command) (int64, error) {
	blob, err := msgpack.Marshal(&rec.Snapshot)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO recordings
		 (frontend, seed, config, ticks, score, lives, outcome, snapshot_hash, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Frontend,
		rec.Seed,
		rec.Config,
		int64(rec.Ticks), //#nosec G115 -- tick counts stay far below 2^63
		rec.Score,
		rec.Lives,
		rec.Outcome,
		int64(rec.Hash), //#nosec G115 -- stored as raw bits, converted back on read
		blob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO recording_commands (recording_id, seq, tick, kind, value) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare command insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range journal {
		//#nosec G115 -- tick counts stay far below 2^63
		if _, err := stmt.Exec(id, i, int64(c.Tick), string(c.Kind), c.Value); err != nil {
			return 0, fmt.Errorf("storage: cannot save command %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return id, nil
}

const recordingColumns = `id, frontend, seed, config, ticks, score, lives, outcome, snapshot_hash, snapshot, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecording(row rowScanner) (Recording, error) {
	var (
		rec       Recording
		ticks     int64
		hash      int64
		blob      []byte
		createdAt any
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Frontend,
		&rec.Seed,
		&rec.Config,
		&ticks,
		&rec.Score,
		&rec.Lives,
		&rec.Outcome,
		&hash,
		&blob,
		&createdAt,
	); err != nil {
		return rec, err
	}

	rec.Ticks = uint64(ticks) //#nosec G115 -- written from a uint64
	rec.Hash = uint64(hash)   //#nosec G115 -- raw bits of a uint64
	if err := msgpack.Unmarshal(blob, &rec.Snapshot); err != nil {
		return rec, fmt.Errorf("storage: cannot decode snapshot of recording %d: %w", rec.ID, err)
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// Recording retrieves a recording by ID.
func (s *Store) Recording(id int64) (*Recording, error) {
	row := s.db.QueryRow("SELECT "+recordingColumns+" FROM recordings WHERE id = ?", id)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	return &rec, nil
}

// ListRecordings retrieves the most recent recordings, newest first.
func (s *Store) ListRecordings(limit int) ([]Recording, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+recordingColumns+" FROM recordings ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return recs, nil
}

// Commands retrieves the command journal of a recording in recorded order.
func (s *Store) Commands(id int64) ([]replay.Command, error) {
	rows, err := s.db.Query(
		`SELECT tick, kind, value
		 FROM recording_commands
		 WHERE recording_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query commands: %w", err)
	}
	defer rows.Close()

	var cmds []replay.Command
	for rows.Next() {
		var (
			c    replay.Command
			tick int64
			kind string
		)
		if err := rows.Scan(&tick, &kind, &c.Value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan command: %w", err)
		}
		c.Tick = uint64(tick) //#nosec G115 -- written from a uint64
		c.Kind = replay.Kind(kind)
		cmds = append(cmds, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return cmds, nil
}

// DeleteRecording removes a recording and its commands.
func (s *Store) DeleteRecording(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM recording_commands WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete commands: %w", err)
	}
	res, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
