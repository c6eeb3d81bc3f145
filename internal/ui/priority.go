// Package ui holds the lipgloss styles and the visual priority tiers of the
// post-op dashboard.
package ui

import "github.com/charmbracelet/lipgloss"

// Tier is the visual treatment bucket for a bed priority.
type Tier int

const (
	TierNormal Tier = iota
	TierElevated
	TierUrgent
)

// Priority thresholds. A bed is urgent at UrgentThreshold and above, elevated
// from ElevatedThreshold up to (not including) UrgentThreshold.
const (
	UrgentThreshold   = 7
	ElevatedThreshold = 4
)

// ClassifyPriority buckets a priority into a Tier. It is the only priority
// classification the dashboard performs.
func ClassifyPriority(p float64) Tier {
	switch {
	case p >= UrgentThreshold:
		return TierUrgent
	case p >= ElevatedThreshold:
		return TierElevated
	default:
		return TierNormal
	}
}

func (t Tier) String() string {
	switch t {
	case TierUrgent:
		return "urgent"
	case TierElevated:
		return "elevated"
	default:
		return "normal"
	}
}

// Icon is the glyph shown in the tile corner.
func (t Tier) Icon() string {
	switch t {
	case TierUrgent:
		return "!"
	case TierElevated:
		return "◷"
	default:
		return "●"
	}
}

// Color is the border and accent color for the tier.
func (t Tier) Color() lipgloss.Color {
	switch t {
	case TierUrgent:
		return ColorRed
	case TierElevated:
		return ColorOrange
	default:
		return ColorGreen
	}
}

// TileStyle returns the bed tile style. The doctor's current bed gets a thick
// blue border instead of the tier color.
func TileStyle(t Tier, current, focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Color()).
		Padding(0, 1)
	if current {
		s = s.Border(lipgloss.ThickBorder()).BorderForeground(ColorBlue)
	}
	if focused {
		s = s.Bold(true).BorderBackground(ColorDimGray)
	}
	return s
}
