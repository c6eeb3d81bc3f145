package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS beds (
		id TEXT PRIMARY KEY,
		patientName TEXT NOT NULL,
		procedureType TEXT NOT NULL,
		priority REAL NOT NULL DEFAULT 0,
		admittedAt REAL NOT NULL,
		currentNote TEXT NOT NULL DEFAULT '',
		lastUpdated REAL
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		bedId TEXT NOT NULL REFERENCES beds(id) ON DELETE CASCADE,
		speakerType TEXT NOT NULL,
		content TEXT NOT NULL,
		equipment TEXT NOT NULL DEFAULT '[]',
		createdAt REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS notes_bed ON notes(bedId, createdAt);

	CREATE TABLE IF NOT EXISTS doctor (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		currentBed TEXT NOT NULL DEFAULT '',
		arrivedAt REAL NOT NULL
	);
`

// Store provides read-write access to the dev backend SQLite database.
type Store struct {
	db *sql.DB
}

// ErrNotFound is returned when a write targets a bed that does not exist.
var ErrNotFound = errors.New("not found")

// Open opens (creating if needed) the database with WAL and applies the
// schema. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Beds returns every bed ordered by id.
func (s *Store) Beds() ([]Bed, error) {
	rows, err := s.db.Query(`
		SELECT id, patientName, procedureType, priority, admittedAt, currentNote, lastUpdated
		FROM beds
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query beds: %w", err)
	}
	defer rows.Close()

	var beds []Bed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, b)
	}
	return beds, rows.Err()
}

// Bed returns one bed, or nil if it does not exist.
func (s *Store) Bed(id string) (*Bed, error) {
	row := s.db.QueryRow(`
		SELECT id, patientName, procedureType, priority, admittedAt, currentNote, lastUpdated
		FROM beds
		WHERE id = ?
	`, id)

	b, err := scanBed(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// UpsertBed inserts or replaces a bed row.
func (s *Store) UpsertBed(b Bed) error {
	var updated sql.NullFloat64
	if b.LastUpdated != nil {
		updated = sql.NullFloat64{Float64: unixFromTime(*b.LastUpdated), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO beds (id, patientName, procedureType, priority, admittedAt, currentNote, lastUpdated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			patientName = excluded.patientName,
			procedureType = excluded.procedureType,
			priority = excluded.priority,
			admittedAt = excluded.admittedAt,
			currentNote = excluded.currentNote,
			lastUpdated = excluded.lastUpdated
	`, b.ID, b.PatientName, b.ProcedureType, b.Priority, unixFromTime(b.AdmittedAt), b.CurrentNote, updated)
	if err != nil {
		return fmt.Errorf("upsert bed %s: %w", b.ID, err)
	}
	return nil
}

// SetPriority overwrites a bed's priority.
func (s *Store) SetPriority(bedID string, priority float64) error {
	res, err := s.db.Exec(`UPDATE beds SET priority = ? WHERE id = ?`, priority, bedID)
	if err != nil {
		return fmt.Errorf("set priority: %w", err)
	}
	return expectOne(res, bedID)
}

// AddNote appends a note and makes it the bed's current note.
func (s *Store) AddNote(n Note) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := addNote(tx, n); err != nil {
		return err
	}
	return tx.Commit()
}

// ResolveBed records the closing note for a bed, drops its priority to zero
// and moves the doctor to nextBed, all or nothing.
func (s *Store) ResolveBed(n Note, nextBed string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := addNote(tx, n); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE beds SET priority = 0 WHERE id = ?`, n.BedID)
	if err != nil {
		return fmt.Errorf("reset priority: %w", err)
	}
	if err := expectOne(res, n.BedID); err != nil {
		return err
	}
	if err := moveDoctor(tx, nextBed, n.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func addNote(tx *sql.Tx, n Note) error {
	equipment, err := json.Marshal(n.Equipment)
	if err != nil {
		return fmt.Errorf("marshal equipment: %w", err)
	}
	if n.Equipment == nil {
		equipment = []byte("[]")
	}

	created := unixFromTime(n.CreatedAt)
	res, err := tx.Exec(`UPDATE beds SET currentNote = ?, lastUpdated = ? WHERE id = ?`,
		n.Content, created, n.BedID)
	if err != nil {
		return fmt.Errorf("update bed note: %w", err)
	}
	if err := expectOne(res, n.BedID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO notes (id, bedId, speakerType, content, equipment, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, n.BedID, n.SpeakerType, n.Content, string(equipment), created); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// NotesForBed returns a bed's notes, oldest first.
func (s *Store) NotesForBed(bedID string) ([]Note, error) {
	rows, err := s.db.Query(`
		SELECT id, bedId, speakerType, content, equipment, createdAt
		FROM notes
		WHERE bedId = ?
		ORDER BY createdAt ASC, rowid ASC
	`, bedID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var equipment string
		var createdAt float64
		if err := rows.Scan(&n.ID, &n.BedID, &n.SpeakerType, &n.Content, &equipment, &createdAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if err := json.Unmarshal([]byte(equipment), &n.Equipment); err != nil {
			return nil, fmt.Errorf("decode equipment for note %s: %w", n.ID, err)
		}
		n.CreatedAt = timeFromUnix(createdAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Doctor returns the doctor's position, or nil if it was never set.
func (s *Store) Doctor() (*Doctor, error) {
	var d Doctor
	var arrivedAt float64
	err := s.db.QueryRow(`SELECT currentBed, arrivedAt FROM doctor WHERE id = 1`).
		Scan(&d.CurrentBed, &arrivedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan doctor: %w", err)
	}
	d.ArrivedAt = timeFromUnix(arrivedAt)
	return &d, nil
}

// MoveDoctor records the doctor arriving at bedID (empty for nowhere).
func (s *Store) MoveDoctor(bedID string, at time.Time) error {
	return moveDoctor(s.db, bedID, at)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func moveDoctor(db execer, bedID string, at time.Time) error {
	_, err := db.Exec(`
		INSERT INTO doctor (id, currentBed, arrivedAt) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET currentBed = excluded.currentBed, arrivedAt = excluded.arrivedAt
	`, bedID, unixFromTime(at))
	if err != nil {
		return fmt.Errorf("move doctor: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBed(row scanner) (Bed, error) {
	var b Bed
	var admittedAt float64
	var updated sql.NullFloat64
	if err := row.Scan(&b.ID, &b.PatientName, &b.ProcedureType, &b.Priority,
		&admittedAt, &b.CurrentNote, &updated); err != nil {
		if err == sql.ErrNoRows {
			return Bed{}, err
		}
		return Bed{}, fmt.Errorf("scan bed: %w", err)
	}
	b.AdmittedAt = timeFromUnix(admittedAt)
	if updated.Valid {
		t := timeFromUnix(updated.Float64)
		b.LastUpdated = &t
	}
	return b, nil
}

func expectOne(res sql.Result, bedID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bed %s: %w", bedID, ErrNotFound)
	}
	return nil
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
