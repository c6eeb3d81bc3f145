package app

import "github.com/jwulff/postop/internal/api"

// InitialLoadMsg carries the startup fetch of beds followed by the queue.
type InitialLoadMsg struct {
	Beds     []api.Bed
	BedsErr  error
	Queue    api.QueueSnapshot
	QueueErr error
}

// BedsLoadedMsg carries a full bed list refresh.
type BedsLoadedMsg struct {
	Beds []api.Bed
	Err  error
}

// QueueLoadedMsg carries a queue snapshot refresh.
type QueueLoadedMsg struct {
	Queue api.QueueSnapshot
	Err   error
}

// NotesLoadedMsg carries the notes for one bed.
type NotesLoadedMsg struct {
	BedID string
	Notes []api.Note
	Err   error
}

// NoteSubmittedMsg reports the outcome of a voice-note submission.
type NoteSubmittedMsg struct {
	BedID string
	Err   error
}

// PatientDoneMsg reports the outcome of marking a patient done.
type PatientDoneMsg struct {
	BedID string
	Err   error
}

// EquipmentSummaryMsg carries per-item equipment counts across the ward.
type EquipmentSummaryMsg struct {
	Summary map[string]int
	Err     error
}

// TickMsg fires when a schedule's interval elapses. Gen identifies the run
// of the schedule that produced it; stale generations are ignored.
type TickMsg struct {
	Kind ScheduleKind
	Gen  int
}

// ClearStatusMsg clears the transient status line.
type ClearStatusMsg struct {
	Seq int
}
