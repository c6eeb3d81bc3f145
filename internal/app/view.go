package app

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/postop/internal/api"
	"github.com/jwulff/postop/internal/ui"
)

// Layout constants, in terminal cells.
const (
	tileWidth        = 24 // outer width including border
	tileGap          = 1
	sidePanelWidth   = 34
	maxModalWidth    = 76
	maxNextVisits    = 4
	defaultColumns   = 3
	loadingText      = "Loading Hospital Operations Multiplier..."
	initializingText = "Initializing..."
)

// View renders the full TUI.
func (m Model) View() string {
	if !m.loaded {
		if m.width == 0 {
			return loadingText
		}
		return lipgloss.Place(m.width, max(1, m.height), lipgloss.Center, lipgloss.Center, loadingText)
	}
	if m.width == 0 {
		return initializingText
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.selected != "" {
		sections = append(sections, m.renderModalArea())
	} else {
		sections = append(sections, m.renderMainContent())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.statusText != "" {
		sections = append(sections, ui.SelectedStyle.Render(m.statusText))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("Hospital Operations Multiplier")
	sub := ui.SubtitleStyle.Render("  Post-Op Efficiency")

	var updated string
	if !m.lastQueueAt.IsZero() {
		updated = ui.DimStyle.Render("  queue " + m.lastQueueAt.Format("15:04:05"))
	}
	return title + sub + updated
}

func (m Model) gridWidth() int {
	if m.width == 0 {
		return defaultColumns*(tileWidth+tileGap) - tileGap
	}
	return max(tileWidth, m.width-sidePanelWidth-2)
}

// gridColumns is how many bed tiles fit on one row.
func (m Model) gridColumns() int {
	if m.width == 0 {
		return defaultColumns
	}
	return max(1, (m.gridWidth()+tileGap)/(tileWidth+tileGap))
}

func (m Model) renderMainContent() string {
	grid := m.renderGrid()
	side := m.renderSidePanel(sidePanelWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", side)
}

func (m Model) renderGrid() string {
	header := ui.PanelTitleStyle.Render("Post-Op Beds")
	if len(m.beds) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, ui.DimStyle.Render("  No beds reported"))
	}

	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(m.beds); start += cols {
		end := min(start+cols, len(m.beds))
		var tiles []string
		for i := start; i < end; i++ {
			b := m.beds[i]
			if i > start {
				tiles = append(tiles, strings.Repeat(" ", tileGap))
			}
			tiles = append(tiles, renderBedTile(b, b.ID == m.queue.CurrentBed, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)
}

// renderBedTile draws one bed. current marks the doctor's bed; focused marks
// the grid cursor.
func renderBedTile(b api.Bed, current, focused bool) string {
	tier := ui.ClassifyPriority(b.Priority)
	inner := tileWidth - 4 // border + horizontal padding

	id := truncateToWidth(b.ID, inner-2)
	if focused {
		id = ui.SelectedStyle.Render(id)
	}
	idLine := padRight(id, inner-1) + lipgloss.NewStyle().Foreground(tier.Color()).Render(tier.Icon())

	lines := []string{
		idLine,
		truncateToWidth(b.PatientName, inner),
		ui.DimStyle.Render(truncateToWidth(b.ProcedureType, inner)),
		ui.DimStyle.Render(truncateToWidth(fmt.Sprintf("Priority: %s | %dmin", formatPriority(b.Priority), b.MinutesPostOp), inner)),
		statusStyle(b.Status).Render(truncateToWidth(b.Status.Label(), inner)),
	}
	if current {
		lines = append(lines, ui.DoctorHereStyle.Render("⚕ Doctor Here"))
	}

	return ui.TileStyle(tier, current, focused).Width(tileWidth - 2).Render(strings.Join(lines, "\n"))
}

func statusStyle(s api.Status) lipgloss.Style {
	switch s {
	case api.StatusNeedsAttention:
		return ui.StatusAttentionStyle
	case api.StatusStable:
		return ui.StatusStableStyle
	default:
		return ui.StatusOtherStyle
	}
}

// nextVisit is one resolved entry of the upcoming queue. slot is its
// position in next_beds.
type nextVisit struct {
	bed  api.Bed
	slot int
}

// nextVisits resolves the first maxNextVisits queue slots against the bed
// list. Slots the bed list does not know are dropped.
func (m Model) nextVisits() []nextVisit {
	ids := m.queue.NextBeds[:min(maxNextVisits, len(m.queue.NextBeds))]
	var out []nextVisit
	for i, id := range ids {
		if b, ok := m.bedByID(id); ok {
			out = append(out, nextVisit{bed: b, slot: i})
		}
	}
	return out
}

func (m Model) renderSidePanel(width int) string {
	inner := width - 4
	var lines []string

	lines = append(lines, ui.PanelTitleStyle.Render("Doctor Status"), "")
	lines = append(lines, ui.DoctorHereStyle.Render("●")+" Currently At")
	current := m.queue.CurrentBed
	if current == "" {
		lines = append(lines, ui.DimStyle.Render("  —"))
	} else {
		lines = append(lines, "  "+ui.PanelTitleStyle.Render(current))
		if b, ok := m.bedByID(current); ok {
			lines = append(lines, ui.DimStyle.Render("  "+truncateToWidth(b.PatientName, inner-2)))
		}
	}
	lines = append(lines, "  ⏱ "+formatMinutes(m.queue.TimerRemaining)+" remaining", "")

	lines = append(lines, ui.PanelTitleStyle.Render("Next Visits"))
	visits := m.nextVisits()
	if len(visits) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No upcoming visits"))
	}
	for _, v := range visits {
		left := v.bed.ID + "  " + v.bed.PatientName
		right := "P" + formatPriority(v.bed.Priority)
		row := padRight(truncateToWidth(left, inner-len(right)-1), inner-len(right)) + right
		if v.slot == 0 {
			lines = append(lines, ui.NextVisitStyle.Render(row))
			lines = append(lines, ui.NextVisitStyle.Render("  → Next Visit"))
		} else {
			lines = append(lines, row)
		}
	}

	if m.showEquipment {
		lines = append(lines, "", ui.PanelTitleStyle.Render("Equipment"))
		lines = append(lines, m.renderEquipment(inner)...)
	}

	return ui.PanelStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderEquipment(width int) []string {
	if m.equipment == nil {
		return []string{ui.DimStyle.Render("  Loading...")}
	}
	if len(m.equipment) == 0 {
		return []string{ui.DimStyle.Render("  Nothing requested")}
	}

	items := make([]string, 0, len(m.equipment))
	for item := range m.equipment {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		ci, cj := m.equipment[items[i]], m.equipment[items[j]]
		if ci != cj {
			return ci > cj
		}
		return items[i] < items[j]
	})

	lines := make([]string, 0, len(items))
	for _, item := range items {
		count := strconv.Itoa(m.equipment[item])
		lines = append(lines, padRight(truncateToWidth("  "+item, width-len(count)-1), width-len(count))+
			ui.EquipmentStyle.Render(count))
	}
	return lines
}

func (m Model) modalWidth() int {
	return max(30, min(maxModalWidth, m.width-4))
}

func (m Model) renderModalArea() string {
	w := m.modalWidth()
	var modal string
	if b, ok := m.selectedBed(); ok {
		modal = m.renderModal(b, w)
	} else {
		modal = ui.ModalStyle.Width(w - 2).Render(
			ui.TitleStyle.Render(m.selected) + "\n\n" +
				ui.DimStyle.Render("This bed is no longer in the bed list."))
	}
	if m.height == 0 {
		return modal
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, modal)
}

// renderModal draws the bed detail view.
func (m Model) renderModal(b api.Bed, width int) string {
	inner := width - 6 // border + padding
	var lines []string

	lines = append(lines, ui.TitleStyle.Render(b.ID+" - "+b.PatientName), "")

	lines = append(lines, ui.PanelTitleStyle.Render("Patient Info"))
	lines = append(lines,
		"  Procedure: "+b.ProcedureType,
		"  Priority: "+formatPriority(b.Priority)+" ("+ui.ClassifyPriority(b.Priority).String()+")",
		"  Status: "+statusStyle(b.Status).Render(b.Status.Label()),
		fmt.Sprintf("  Time in Post-Op: %d min", b.MinutesPostOp),
		"",
	)

	lines = append(lines, ui.PanelTitleStyle.Render("Current Notes"))
	notes, _ := m.notesFor(b.ID)
	if len(notes) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No notes yet"))
	}
	for _, n := range notes {
		lines = append(lines, "  "+speakerLabel(n.SpeakerType))
		for _, wl := range wrapText(n.Content, max(10, inner-4)) {
			lines = append(lines, "    "+wl)
		}
		if len(n.EquipmentMentioned) > 0 {
			lines = append(lines, ui.EquipmentStyle.Render("    Equipment: "+strings.Join(n.EquipmentMentioned, ", ")))
		}
	}
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitleStyle.Render("Simulate Voice Input"))
	var presets []string
	for _, p := range voicePresets {
		presets = append(presets, ui.FooterKeyStyle.Render("["+p.Key+"]")+" "+p.Label)
	}
	for _, wl := range wrapJoined(presets, "  ", inner-2) {
		lines = append(lines, "  "+wl)
	}

	if m.compose.active {
		label := "Patient"
		if m.compose.speaker == api.SpeakerNurse {
			label = "Nurse"
		}
		lines = append(lines, "", ui.ComposeStyle.Render("  "+label+" note: ")+string(m.compose.text)+"▌")
	}

	return ui.ModalStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func speakerLabel(s api.Speaker) string {
	if s == api.SpeakerPatient {
		return ui.PatientLabelStyle.Render("Patient")
	}
	return ui.NurseLabelStyle.Render("Nurse")
}

func (m Model) renderFooter() string {
	var parts []string
	key := func(k, desc string) {
		parts = append(parts, ui.FooterKeyStyle.Render(k)+ui.FooterDescStyle.Render(" "+desc))
	}

	switch {
	case m.compose.active:
		key("Enter", "Submit")
		key("Esc", "Cancel")
	case m.selected != "":
		key("1-4", "Simulate")
		key("p/n", "Patient/Nurse note")
		key("d", "Done")
		key("e", "Equipment")
		key("Esc", "Close")
		key("q", "Quit")
	default:
		key("←↑↓→", "Move")
		key("Enter", "Open")
		key("r", "Refresh")
		key("e", "Equipment")
		key("q", "Quit")
	}

	return strings.Join(parts, "  ")
}

// Helpers

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func formatMinutes(minutes float64) string {
	return fmt.Sprintf("%d min", int(math.Floor(max(0, minutes))))
}

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Cut by display width so wide runes count as two cells
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + "…"
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// wrapJoined joins styled items with sep, breaking lines at item boundaries.
func wrapJoined(items []string, sep string, width int) []string {
	var lines []string
	var current string
	for _, it := range items {
		switch {
		case current == "":
			current = it
		case lipgloss.Width(current)+lipgloss.Width(sep)+lipgloss.Width(it) <= width:
			current += sep + it
		default:
			lines = append(lines, current)
			current = it
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
