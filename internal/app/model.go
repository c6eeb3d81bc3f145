package app

import (
	"context"
	"time"
	"unicode"

	"github.com/jwulff/postop/internal/api"
	"github.com/rs/zerolog"

	tea "github.com/charmbracelet/bubbletea"
)

// Default schedule intervals.
const (
	DefaultPollInterval      = 5 * time.Second
	DefaultCountdownInterval = time.Minute
)

// statusLifetime is how long a transient status line stays visible.
var statusLifetime = 4 * time.Second

// Options configures a Model.
type Options struct {
	PollInterval      time.Duration
	CountdownInterval time.Duration
	Logger            zerolog.Logger
}

// composeState is the free-text note being typed in the modal.
type composeState struct {
	active  bool
	speaker api.Speaker
	text    []rune
}

// Model is the root bubbletea model for the post-op dashboard.
type Model struct {
	backend Backend
	log     zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc

	// Server state
	beds        []api.Bed
	queue       api.QueueSnapshot
	notes       map[string][]api.Note
	equipment   map[string]int
	lastQueueAt time.Time
	loaded      bool

	// Schedules
	poll      schedule
	countdown schedule
	tornDown  bool

	// UI state
	cursor        int
	selected      string
	compose       composeState
	showEquipment bool
	width         int
	height        int

	// Status
	statusText string
	statusSeq  int
}

// New creates a Model that talks to backend.
func New(backend Backend, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.CountdownInterval <= 0 {
		opts.CountdownInterval = DefaultCountdownInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		backend:   backend,
		log:       opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
		notes:     map[string][]api.Note{},
		poll:      newSchedule(PollSchedule, opts.PollInterval),
		countdown: newSchedule(CountdownSchedule, opts.CountdownInterval),
	}
}

// Init returns the initial command: fetch beds, then the queue.
func (m Model) Init() tea.Cmd {
	return initialLoadCmd(m.ctx, m.backend)
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.tornDown {
		return m, nil
	}

	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil

	case InitialLoadMsg:
		if msg.BedsErr != nil {
			m.log.Error().Err(msg.BedsErr).Msg("initial bed fetch failed")
		} else {
			m.beds = msg.Beds
		}
		if msg.QueueErr != nil {
			m.log.Error().Err(msg.QueueErr).Msg("initial queue fetch failed")
		} else {
			m.applyQueue(msg.Queue)
		}
		m.clampCursor()
		m.loaded = true
		cmd := tea.Batch(m.poll.start(), m.countdown.start())
		return m, cmd

	case TickMsg:
		return m.handleTick(msg)

	case BedsLoadedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("bed refresh failed")
			return m, nil
		}
		m.beds = msg.Beds
		m.clampCursor()
		return m, nil

	case QueueLoadedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("queue refresh failed")
			return m, nil
		}
		m.applyQueue(msg.Queue)
		return m, nil

	case NotesLoadedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("bed_id", msg.BedID).Msg("notes fetch failed")
			return m, nil
		}
		m.notes = mergeNotes(m.notes, msg.BedID, msg.Notes)
		return m, nil

	case NoteSubmittedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("bed_id", msg.BedID).Msg("voice note submit failed")
			return m, nil
		}
		m.log.Info().Str("bed_id", msg.BedID).Msg("voice note submitted")
		status := m.setStatus("Note submitted for " + msg.BedID)
		return m, tea.Batch(
			fetchNotesCmd(m.ctx, m.backend, msg.BedID),
			fetchQueueCmd(m.ctx, m.backend),
			status,
		)

	case PatientDoneMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("bed_id", msg.BedID).Msg("mark patient done failed")
			return m, nil
		}
		m.log.Info().Str("bed_id", msg.BedID).Msg("patient marked done")
		status := m.setStatus(msg.BedID + " marked done")
		return m, tea.Batch(
			fetchBedsCmd(m.ctx, m.backend),
			fetchQueueCmd(m.ctx, m.backend),
			fetchNotesCmd(m.ctx, m.backend, msg.BedID),
			status,
		)

	case EquipmentSummaryMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("equipment summary fetch failed")
			return m, nil
		}
		m.equipment = msg.Summary
		return m, nil

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.statusText = ""
		}
		return m, nil
	}

	return m, nil
}

// handleTick runs one schedule tick and re-arms it. Ticks from a cancelled
// or restarted schedule are dropped.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.poll.accepts(msg):
		return m, tea.Batch(fetchQueueCmd(m.ctx, m.backend), m.poll.next())
	case m.countdown.accepts(msg):
		m.queue.TimerRemaining = decrementTimer(m.queue.TimerRemaining)
		return m, m.countdown.next()
	}
	return m, nil
}

// applyQueue replaces the queue snapshot. The server's remaining time
// overrides whatever the local countdown reached.
func (m *Model) applyQueue(q api.QueueSnapshot) {
	if q.TimerRemaining < 0 {
		q.TimerRemaining = 0
	}
	m.queue = q
	m.lastQueueAt = time.Now()
}

// decrementTimer subtracts one minute, floored at zero.
func decrementTimer(remaining float64) float64 {
	return max(0, remaining-1)
}

// mergeNotes returns a copy of cache with bedID's notes replaced.
func mergeNotes(cache map[string][]api.Note, bedID string, notes []api.Note) map[string][]api.Note {
	out := make(map[string][]api.Note, len(cache)+1)
	for k, v := range cache {
		out[k] = v
	}
	if notes == nil {
		notes = []api.Note{}
	}
	out[bedID] = notes
	return out
}

// bedByID looks up a bed in the current list.
func (m Model) bedByID(id string) (api.Bed, bool) {
	if id == "" {
		return api.Bed{}, false
	}
	for _, b := range m.beds {
		if b.ID == id {
			return b, true
		}
	}
	return api.Bed{}, false
}

// selectedBed returns the bed shown in the modal, if any.
func (m Model) selectedBed() (api.Bed, bool) {
	return m.bedByID(m.selected)
}

// notesFor returns the loaded notes for a bed and whether any fetch landed.
func (m Model) notesFor(id string) ([]api.Note, bool) {
	n, ok := m.notes[id]
	return n, ok
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.statusText = text
	seq := m.statusSeq
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.beds) {
		m.cursor = max(0, len(m.beds)-1)
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyCtrlC {
		m.Teardown()
		return m, tea.Quit
	}

	if m.compose.active {
		return m.handleComposeKey(msg)
	}

	if m.selected != "" {
		return m.handleModalKey(key)
	}

	switch key {
	case KeyQuit:
		m.Teardown()
		return m, tea.Quit

	case KeyLeft, KeyH:
		if m.cursor > 0 {
			m.cursor--
		}
	case KeyRight, KeyL:
		if m.cursor < len(m.beds)-1 {
			m.cursor++
		}
	case KeyUp, KeyK:
		if m.cursor-m.gridColumns() >= 0 {
			m.cursor -= m.gridColumns()
		}
	case KeyDown, KeyJ:
		if m.cursor+m.gridColumns() < len(m.beds) {
			m.cursor += m.gridColumns()
		}

	case KeyEnter:
		if m.cursor < len(m.beds) {
			cmd := m.SelectBed(m.beds[m.cursor].ID)
			return m, cmd
		}

	case KeyRefresh:
		return m, m.Refresh()

	case KeyEquipment:
		cmd := m.ToggleEquipment()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleModalKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit:
		m.Teardown()
		return m, tea.Quit

	case KeyEsc:
		m.ClearSelection()
		return m, nil

	case KeyPatient:
		m.compose = composeState{active: true, speaker: api.SpeakerPatient}
		return m, nil

	case KeyNurse:
		m.compose = composeState{active: true, speaker: api.SpeakerNurse}
		return m, nil

	case KeyDone:
		return m, m.MarkPatientDone(m.selected)

	case KeyEquipment:
		cmd := m.ToggleEquipment()
		return m, cmd
	}

	if p, ok := presetForKey(key); ok {
		return m, m.SubmitNote(m.selected, p.Speaker, p.Content)
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.compose = composeState{}
		return m, nil

	case KeyEnter:
		c := m.compose
		m.compose = composeState{}
		return m, m.SubmitNote(m.selected, c.speaker, string(c.text))

	case KeyBackspace:
		if n := len(m.compose.text); n > 0 {
			m.compose.text = m.compose.text[:n-1]
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeySpace:
		m.compose.text = append(m.compose.text, ' ')
		return m, nil

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if unicode.IsPrint(r) {
				m.compose.text = append(m.compose.text, r)
			}
		}
		return m, nil
	}
	return m, nil
}
