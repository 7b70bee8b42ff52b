package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"toga/internal/theme"
)

var dimStyle = lipgloss.NewStyle().Foreground(theme.ColorMuted)

// compositeOverlay centers overlay on top of a dimmed copy of background,
// filling at least width x height cells
func compositeOverlay(background, overlay string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	for i, line := range bgLines {
		bgLines[i] = padRight(dimStyle.Render(stripAnsi(line)), width)
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := lipgloss.Width(overlay)
	startX := max((width-overlayWidth)/2, 0)
	startY := max((height-len(overlayLines))/2, 0)

	for i, line := range overlayLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		left := strings.Repeat(" ", startX)
		right := strings.Repeat(" ", max(width-startX-lipgloss.Width(line), 0))
		bgLines[y] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// stripAnsi removes ANSI escape sequences
func stripAnsi(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\x1b':
			inEscape = true
		case inEscape:
			if (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z') {
				inEscape = false
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
