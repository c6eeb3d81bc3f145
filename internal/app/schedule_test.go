package app

import (
	"testing"
	"time"
)

func TestScheduleStartAndCancel(t *testing.T) {
	s := newSchedule(PollSchedule, time.Millisecond)
	if s.accepts(TickMsg{Kind: PollSchedule}) {
		t.Error("idle schedule should accept nothing")
	}

	cmd := s.start()
	msg, ok := cmd().(TickMsg)
	if !ok {
		t.Fatal("start should produce a TickMsg")
	}
	if msg.Kind != PollSchedule || msg.Gen != s.gen {
		t.Errorf("tick = %+v, want kind poll gen %d", msg, s.gen)
	}
	if !s.accepts(msg) {
		t.Error("running schedule should accept its own tick")
	}

	s.cancel()
	if s.accepts(msg) {
		t.Error("cancelled schedule should drop in-flight ticks")
	}
}

func TestScheduleRestartDropsOldGeneration(t *testing.T) {
	s := newSchedule(CountdownSchedule, time.Millisecond)
	old := s.start()().(TickMsg)
	s.cancel()
	s.start()

	if s.accepts(old) {
		t.Error("restarted schedule should ignore the previous generation")
	}
}

func TestScheduleKindsDoNotCross(t *testing.T) {
	poll := newSchedule(PollSchedule, time.Millisecond)
	countdown := newSchedule(CountdownSchedule, time.Millisecond)
	poll.start()
	countdown.start()

	msg := TickMsg{Kind: CountdownSchedule, Gen: poll.gen}
	if poll.accepts(msg) {
		t.Error("poll schedule should not accept a countdown tick")
	}
	if !countdown.accepts(msg) {
		t.Error("countdown should accept its tick")
	}
}

func TestScheduleKindString(t *testing.T) {
	if PollSchedule.String() != "poll" || CountdownSchedule.String() != "countdown" {
		t.Error("unexpected schedule names")
	}
	if ScheduleKind(9).String() != "unknown" {
		t.Error("unknown kind should stringify as unknown")
	}
}
