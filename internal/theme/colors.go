package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Status message colors
const (
	ColorStatusError   Color = "196" // Bright red
	ColorStatusInfo    Color = "39"  // Blue
	ColorStatusSuccess Color = "42"  // Green
	ColorStatusWarning Color = "214" // Orange
)

// UI semantic colors
const (
	ColorBorder    Color = "62"  // Muted purple - frames
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorSpinner Color = "205" // Pink
)

// Progress bar gradient
const (
	ProgressGradientEnd   = "#9B59F5"
	ProgressGradientStart = "#5A56E0"
)
