package domain

import (
	"fmt"
	"strings"
)

// NormalizeIdentifier trims id and checks it is a plain numeric cédula
func NormalizeIdentifier(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("identifier is empty: %w", ErrValidation)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("identifier %q must contain only digits: %w", id, ErrValidation)
		}
	}
	return id, nil
}
