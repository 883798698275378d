// Package journal provides a local, append-only SQLite log of swap decisions
// and write-backs. The journal is never synchronized: it exists so a client
// can answer "why did this machine decide that" after the fact, offline.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Op identifies what the client did.
type Op string

const (
	OpCheck    Op = "check"
	OpInitiate Op = "initiate"
	OpCancel   Op = "cancel"
	OpComplete Op = "complete"
)

// Entry is one journal record.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Op        Op
	SwapUUID  string
	Status    string
	Detail    string
}

// Journal is the SQLite-backed decision log.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at the given path.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initialize() error {
	schema := `
	-- Decision log (append-only)
	CREATE TABLE IF NOT EXISTS decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		op TEXT NOT NULL,
		swap_uuid TEXT,
		status TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_swap ON decisions(swap_uuid);
	`

	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return nil
}

// Record appends one decision.
func (j *Journal) Record(op Op, swapUUID, status, detail string) error {
	_, err := j.db.Exec(
		`INSERT INTO decisions (op, swap_uuid, status, detail) VALUES (?, ?, ?, ?)`,
		string(op), swapUUID, status, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, timestamp, op, swap_uuid, status, detail
		 FROM decisions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var op string
		if err := rows.Scan(&e.ID, &e.Timestamp, &op, &e.SwapUUID, &e.Status, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		e.Op = Op(op)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
