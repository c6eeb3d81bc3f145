package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF5555")
	ColorOrange  = lipgloss.Color("#FFA500")
	ColorGreen   = lipgloss.Color("#50FA7B")
	ColorBlue    = lipgloss.Color("#6CB6FF")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	DoctorHereStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	NextVisitStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	EquipmentStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	PatientLabelStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	NurseLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ComposeStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimGray).
			Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorCyan).
			Padding(1, 2)
)

// Status badge styles keyed by bed status; anything else uses StatusOtherStyle.
var (
	StatusAttentionStyle = lipgloss.NewStyle().Foreground(ColorRed)
	StatusStableStyle    = lipgloss.NewStyle().Foreground(ColorGreen)
	StatusOtherStyle     = lipgloss.NewStyle().Foreground(ColorBlue)
)
