package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ScheduleKind names a recurring timer owned by the model.
type ScheduleKind int

const (
	// PollSchedule refetches the queue snapshot.
	PollSchedule ScheduleKind = iota
	// CountdownSchedule decrements the local remaining-time counter.
	CountdownSchedule
)

func (k ScheduleKind) String() string {
	switch k {
	case PollSchedule:
		return "poll"
	case CountdownSchedule:
		return "countdown"
	default:
		return "unknown"
	}
}

// schedule is a repeating tick with explicit start and cancel. Each tick is
// a one-shot tea.Tick tagged with the schedule's generation; the model only
// re-arms the schedule when a tick of the current generation arrives while
// running, so a cancelled schedule goes quiet after at most one stale tick.
type schedule struct {
	kind     ScheduleKind
	interval time.Duration
	gen      int
	running  bool
}

func newSchedule(kind ScheduleKind, interval time.Duration) schedule {
	return schedule{kind: kind, interval: interval}
}

// start begins a new generation and returns the first tick.
func (s *schedule) start() tea.Cmd {
	s.gen++
	s.running = true
	return s.next()
}

// next returns the tick for the current generation.
func (s schedule) next() tea.Cmd {
	kind, gen := s.kind, s.gen
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return TickMsg{Kind: kind, Gen: gen}
	})
}

// cancel stops the schedule; any tick already in flight becomes stale.
func (s *schedule) cancel() {
	s.running = false
	s.gen++
}

// accepts reports whether msg is a live tick for this schedule.
func (s schedule) accepts(msg TickMsg) bool {
	return s.running && msg.Kind == s.kind && msg.Gen == s.gen
}
