package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/postop/internal/api"
)

func TestViewLoading(t *testing.T) {
	m := New(wardBackend(), testOptions())
	if got := m.View(); got != loadingText {
		t.Errorf("view = %q, want %q", got, loadingText)
	}

	m.width, m.height = 80, 24
	if !strings.Contains(m.View(), loadingText) {
		t.Error("sized loading view should still show the loading text")
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.width = 0
	if got := m.View(); got != initializingText {
		t.Errorf("view = %q, want %q", got, initializingText)
	}
}

func TestViewDoctorHereOnCurrentBedOnly(t *testing.T) {
	m := loadedModel(t, wardBackend())

	view := m.View()
	if n := strings.Count(view, "Doctor Here"); n != 1 {
		t.Errorf("Doctor Here appears %d times, want 1", n)
	}

	if !strings.Contains(renderBedTile(m.beds[0], true, false), "Doctor Here") {
		t.Error("B1 tile should be marked Doctor Here")
	}
	for _, b := range m.beds[1:] {
		if strings.Contains(renderBedTile(b, false, false), "Doctor Here") {
			t.Errorf("%s tile should not be marked", b.ID)
		}
	}
}

func TestSidePanelNextVisits(t *testing.T) {
	m := loadedModel(t, wardBackend())

	panel := m.renderSidePanel(sidePanelWidth)
	for _, want := range []string{"Doctor Status", "B1", "Ada", "12 min remaining", "Next Visits"} {
		if !strings.Contains(panel, want) {
			t.Errorf("side panel missing %q", want)
		}
	}

	header := strings.Index(panel, "Next Visits")
	b2 := strings.Index(panel, "B2")
	marker := strings.Index(panel, "→ Next Visit")
	b3 := strings.Index(panel, "B3")
	if !(header < b2 && b2 < marker && marker < b3) {
		t.Errorf("want Next Visits < B2 < marker < B3, got %d %d %d %d", header, b2, marker, b3)
	}
	if n := strings.Count(panel, "→ Next Visit"); n != 1 {
		t.Errorf("marker appears %d times, want 1", n)
	}
}

func TestSidePanelOnlyConsidersFirstFourSlots(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.beds = append(m.beds,
		api.Bed{ID: "B4", PatientName: "Di"},
		api.Bed{ID: "B5", PatientName: "Ed"},
	)
	m.queue.NextBeds = []string{"X1", "X2", "X3", "B2", "B3", "B4", "B5"}

	visits := m.nextVisits()
	if len(visits) != 1 || visits[0].bed.ID != "B2" || visits[0].slot != 3 {
		t.Fatalf("visits = %+v, want only B2 from slot 3", visits)
	}

	panel := m.renderSidePanel(sidePanelWidth)
	if strings.Contains(panel, "B3") || strings.Contains(panel, "X1") {
		t.Error("only resolved beds from the first four slots should render")
	}
	if strings.Contains(panel, "→ Next Visit") {
		t.Error("marker belongs to the head of the queue, which is unknown")
	}
}

func TestSidePanelNoMarkerWhenHeadUnknown(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.queue.NextBeds = []string{"GONE", "B2", "B3"}

	panel := m.renderSidePanel(sidePanelWidth)
	if !strings.Contains(panel, "B2") || !strings.Contains(panel, "B3") {
		t.Error("known beds after an unknown head should still render")
	}
	if strings.Contains(panel, "→ Next Visit") {
		t.Error("B2 is not next; the server says GONE is")
	}
	if strings.Contains(panel, "GONE") {
		t.Error("unknown bed ids should not render")
	}
}

func TestSidePanelCapsVisitsAtFour(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.beds = append(m.beds,
		api.Bed{ID: "B4", PatientName: "Di"},
		api.Bed{ID: "B5", PatientName: "Ed"},
		api.Bed{ID: "B6", PatientName: "Flo"},
	)
	m.queue.NextBeds = []string{"B2", "B3", "B4", "B5", "B6"}

	visits := m.nextVisits()
	if len(visits) != maxNextVisits {
		t.Fatalf("visits = %d, want %d", len(visits), maxNextVisits)
	}
	if visits[0].bed.ID != "B2" || visits[3].bed.ID != "B5" {
		t.Errorf("visits = %+v", visits)
	}
	if strings.Contains(m.renderSidePanel(sidePanelWidth), "B6") {
		t.Error("fifth slot should not render")
	}
}

func TestSidePanelNoCurrentBed(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.queue = api.QueueSnapshot{}

	panel := m.renderSidePanel(sidePanelWidth)
	if !strings.Contains(panel, "No upcoming visits") {
		t.Error("empty queue should say no upcoming visits")
	}
	if !strings.Contains(panel, "0 min remaining") {
		t.Error("empty queue should show zero minutes")
	}
}

func TestModalWithNotes(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.selected = "B1"
	m.notes = mergeNotes(m.notes, "B1", wardBackend().notes["B1"])

	view := m.View()
	for _, want := range []string{"Patient Info", "Appendectomy", "needs attention", "42 min", "Nurse", "Needs IV pump", "Equipment: IV pump", "High Pain"} {
		if !strings.Contains(view, want) {
			t.Errorf("modal missing %q", want)
		}
	}
	if strings.Contains(view, "No notes yet") {
		t.Error("modal with notes should not say no notes")
	}
}

func TestModalWithoutNotes(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.selected = "B2"

	if !strings.Contains(m.View(), "No notes yet") {
		t.Error("modal without loaded notes should say no notes yet")
	}

	m.notes = mergeNotes(m.notes, "B2", nil)
	if !strings.Contains(m.View(), "No notes yet") {
		t.Error("modal with an empty note list should say no notes yet")
	}
}

func TestModalForVanishedBed(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.selected = "B9"

	if !strings.Contains(m.View(), "no longer in the bed list") {
		t.Error("modal should explain a missing bed")
	}
}

func TestModalComposeLine(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.selected = "B1"
	m.compose = composeState{active: true, speaker: api.SpeakerPatient, text: []rune("it hurts")}

	view := m.View()
	if !strings.Contains(view, "Patient note:") || !strings.Contains(view, "it hurts") {
		t.Error("compose line should render")
	}
	if !strings.Contains(view, "Submit") {
		t.Error("footer should show compose keys")
	}
}

func TestEquipmentPanel(t *testing.T) {
	m := loadedModel(t, wardBackend())
	m.showEquipment = true

	if !strings.Contains(m.View(), "Loading...") {
		t.Error("equipment should show loading before the summary arrives")
	}

	m.equipment = map[string]int{"wheelchair": 1, "IV pump": 3}
	panel := m.renderSidePanel(sidePanelWidth)
	if strings.Index(panel, "IV pump") > strings.Index(panel, "wheelchair") {
		t.Error("equipment should be sorted by count")
	}
}

func TestFormatMinutesFloors(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12 min"},
		{11.9, "11 min"},
		{0, "0 min"},
		{-3, "0 min"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.in); got != tt.want {
			t.Errorf("formatMinutes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Ada", 10, "Ada"},
		{"ascii", "Appendectomy", 6, "Appen…"},
		{"wide runes", "山田太郎山田太郎山田太郎", 20, "山田太郎山田太郎山…"},
		{"wide rune straddles edge", "山田太郎", 6, "山田…"},
		{"zero width", "Ada", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateToWidth(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if w := lipgloss.Width(got); w > tt.width {
				t.Errorf("width = %d, exceeds %d", w, tt.width)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps", 9)
	if len(lines) != 3 || lines[0] != "the quick" || lines[2] != "jumps" {
		t.Errorf("wrapText = %q", lines)
	}
}
