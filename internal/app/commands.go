package app

import (
	"context"
	"strings"

	"github.com/jwulff/postop/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// Backend is the subset of the backend API the dashboard drives.
type Backend interface {
	Beds(ctx context.Context) ([]api.Bed, error)
	Queue(ctx context.Context) (api.QueueSnapshot, error)
	Notes(ctx context.Context, bedID string) ([]api.Note, error)
	SubmitVoiceNote(ctx context.Context, note api.VoiceNote) error
	MarkPatientDone(ctx context.Context, bedID string) error
	EquipmentSummary(ctx context.Context) (map[string]int, error)
}

// initialLoadCmd fetches beds, then the queue, in order.
func initialLoadCmd(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		var msg InitialLoadMsg
		msg.Beds, msg.BedsErr = b.Beds(ctx)
		msg.Queue, msg.QueueErr = b.Queue(ctx)
		return msg
	}
}

func fetchBedsCmd(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		beds, err := b.Beds(ctx)
		return BedsLoadedMsg{Beds: beds, Err: err}
	}
}

func fetchQueueCmd(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		q, err := b.Queue(ctx)
		return QueueLoadedMsg{Queue: q, Err: err}
	}
}

func fetchNotesCmd(ctx context.Context, b Backend, bedID string) tea.Cmd {
	return func() tea.Msg {
		notes, err := b.Notes(ctx, bedID)
		return NotesLoadedMsg{BedID: bedID, Notes: notes, Err: err}
	}
}

func submitNoteCmd(ctx context.Context, b Backend, note api.VoiceNote) tea.Cmd {
	return func() tea.Msg {
		return NoteSubmittedMsg{BedID: note.BedID, Err: b.SubmitVoiceNote(ctx, note)}
	}
}

func patientDoneCmd(ctx context.Context, b Backend, bedID string) tea.Cmd {
	return func() tea.Msg {
		return PatientDoneMsg{BedID: bedID, Err: b.MarkPatientDone(ctx, bedID)}
	}
}

func equipmentSummaryCmd(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		summary, err := b.EquipmentSummary(ctx)
		return EquipmentSummaryMsg{Summary: summary, Err: err}
	}
}

// SelectBed opens the detail modal for bedID and fetches its notes.
func (m *Model) SelectBed(bedID string) tea.Cmd {
	m.selected = bedID
	m.compose = composeState{}
	return fetchNotesCmd(m.ctx, m.backend, bedID)
}

// ClearSelection closes the modal. Calling it with nothing selected is a no-op.
func (m *Model) ClearSelection() {
	m.selected = ""
	m.compose = composeState{}
}

// SubmitNote sends a voice-derived note for bedID. Refreshes happen when the
// NoteSubmittedMsg comes back successful.
func (m *Model) SubmitNote(bedID string, speaker api.Speaker, content string) tea.Cmd {
	content = strings.TrimSpace(content)
	if bedID == "" || content == "" {
		return nil
	}
	return submitNoteCmd(m.ctx, m.backend, api.VoiceNote{
		BedID:       bedID,
		SpeakerType: speaker,
		Content:     content,
	})
}

// MarkPatientDone reports that the doctor has finished with bedID.
func (m *Model) MarkPatientDone(bedID string) tea.Cmd {
	if bedID == "" {
		return nil
	}
	return patientDoneCmd(m.ctx, m.backend, bedID)
}

// Refresh refetches the bed list and the queue.
func (m *Model) Refresh() tea.Cmd {
	return tea.Batch(fetchBedsCmd(m.ctx, m.backend), fetchQueueCmd(m.ctx, m.backend))
}

// ToggleEquipment shows or hides the ward equipment summary, fetching it
// when shown.
func (m *Model) ToggleEquipment() tea.Cmd {
	m.showEquipment = !m.showEquipment
	if !m.showEquipment {
		return nil
	}
	return equipmentSummaryCmd(m.ctx, m.backend)
}

// Teardown cancels both schedules and any in-flight requests. After it, no
// tick fetches, decrements or re-arms.
func (m *Model) Teardown() {
	m.poll.cancel()
	m.countdown.cancel()
	if m.cancel != nil {
		m.cancel()
	}
	m.tornDown = true
}
