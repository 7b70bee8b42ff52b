package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	maxErrorLines  = 2
	minErrorWidth  = 10
	truncationMark = "..."
)

// formatErrorForDisplay word-wraps prefix plus the error text to maxWidth,
// keeping at most maxErrorLines lines and marking truncation with "..."
func formatErrorForDisplay(prefix string, err error, maxWidth int) string {
	if err == nil {
		return ""
	}
	message := strings.TrimSpace(err.Error())
	if message == "" {
		message = "error desconocido"
	}
	if maxWidth < minErrorWidth {
		maxWidth = minErrorWidth
	}

	words := strings.Fields(prefix + message)
	var lines []string
	var line strings.Builder
	truncated := false

	for _, word := range words {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
			if len(lines) == maxErrorLines {
				truncated = true
				break
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if !truncated && line.Len() > 0 {
		lines = append(lines, line.String())
	}

	if truncated {
		last := []rune(lines[len(lines)-1])
		if keep := maxWidth - len(truncationMark); len(last) > keep {
			last = last[:keep]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return strings.Join(lines, "\n")
}
