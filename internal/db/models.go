// Package db provides SQLite storage for the development backend.
package db

import "time"

// Bed is a post-op bed row.
type Bed struct {
	ID            string
	PatientName   string
	ProcedureType string
	Priority      float64
	AdmittedAt    time.Time
	CurrentNote   string
	LastUpdated   *time.Time
}

// MinutesPostOp returns whole minutes since the patient arrived in post-op.
func (b Bed) MinutesPostOp(now time.Time) int {
	if now.Before(b.AdmittedAt) {
		return 0
	}
	return int(now.Sub(b.AdmittedAt) / time.Minute)
}

// Note is a voice-derived note attached to a bed.
type Note struct {
	ID          string
	BedID       string
	SpeakerType string
	Content     string
	Equipment   []string
	CreatedAt   time.Time
}

// Doctor is the doctor's current position.
type Doctor struct {
	CurrentBed string
	ArrivedAt  time.Time
}
