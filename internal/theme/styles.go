package theme

import (
	"github.com/charmbracelet/lipgloss"

	"toga/internal/domain"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Status message styles
var (
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorStatusError).
				Bold(true)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(ColorStatusInfo)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorStatusSuccess).
				Bold(true)

	StatusWarningStyle = lipgloss.NewStyle().
				Foreground(ColorStatusWarning)
)

// Screen styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ProgressMessageStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Italic(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSpinner)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// StatusStyle returns the style for a status message class
func StatusStyle(class domain.MessageClass) lipgloss.Style {
	switch class {
	case domain.MessageError:
		return StatusErrorStyle
	case domain.MessageSuccess:
		return StatusSuccessStyle
	case domain.MessageWarning:
		return StatusWarningStyle
	default:
		return StatusInfoStyle
	}
}
