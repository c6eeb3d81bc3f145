// Package api provides the HTTP client and wire types for talking to the
// post-op monitoring backend.
package api

import (
	"strings"
	"time"
)

// Status is the coarse bed status reported by the backend.
type Status string

const (
	StatusNeedsAttention Status = "needs_attention"
	StatusStable         Status = "stable"
	StatusReadyDischarge Status = "ready_discharge"
)

// Label renders the status for display, e.g. "needs attention".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Speaker identifies who produced a voice note.
type Speaker string

const (
	SpeakerPatient Speaker = "patient"
	SpeakerNurse   Speaker = "nurse"
)

// Valid reports whether s is a known speaker role.
func (s Speaker) Valid() bool {
	return s == SpeakerPatient || s == SpeakerNurse
}

// Bed is one monitored post-op slot as returned by GET /api/beds.
type Bed struct {
	ID            string  `json:"bed_id"`
	PatientName   string  `json:"patient_name"`
	ProcedureType string  `json:"procedure_type"`
	Priority      float64 `json:"current_priority"`
	MinutesPostOp int     `json:"time_in_postop"`
	Status        Status  `json:"status"`
	CurrentNote   string  `json:"current_note,omitempty"`
	LastUpdated   string  `json:"last_updated,omitempty"`
}

// QueueSnapshot is the doctor's current location and upcoming visit order.
type QueueSnapshot struct {
	CurrentBed     string   `json:"current_bed"`
	TimerRemaining float64  `json:"timer_remaining"`
	NextBeds       []string `json:"next_beds"`
}

// Note is a structured record derived from patient or nurse voice input.
type Note struct {
	ID                 string     `json:"id,omitempty"`
	SpeakerType        Speaker    `json:"speaker_type"`
	Content            string     `json:"content"`
	EquipmentMentioned []string   `json:"equipment_mentioned,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// VoiceNote is the body of POST /api/voice-note.
type VoiceNote struct {
	BedID       string  `json:"bed_id"`
	SpeakerType Speaker `json:"speaker_type"`
	Content     string  `json:"content"`
}

// PatientDone is the body of POST /api/priority-patient-done.
type PatientDone struct {
	BedID string `json:"bed_id"`
}

// StatusResponse is the body returned by the write endpoints. Clients only
// look at the HTTP status; the body is informational.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
