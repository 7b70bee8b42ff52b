package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		maxWidth int
		want     string
	}{
		{name: "nil error", err: nil, maxWidth: 40, want: ""},
		{name: "fits on one line", err: errors.New("disk full"), maxWidth: 40, want: "Error: disk full"},
		{name: "empty message", err: errors.New(""), maxWidth: 40, want: "Error: error desconocido"},
		{
			name:     "wraps to two lines",
			err:      errors.New("permission denied writing photo"),
			maxWidth: 20,
			want:     "Error: permission\ndenied writing photo",
		},
		{
			name:     "truncates after two lines",
			err:      errors.New("one two three four five six seven eight nine ten"),
			maxWidth: 14,
			want:     "Error: one two\nthree four...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatErrorForDisplay("Error: ", tt.err, tt.maxWidth))
		})
	}
}

func TestFormatErrorForDisplay_MinimumWidth(t *testing.T) {
	got := formatErrorForDisplay("", errors.New("alpha beta gamma delta epsilon"), 1)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, maxErrorLines)
	assert.True(t, strings.HasSuffix(got, truncationMark))
}
