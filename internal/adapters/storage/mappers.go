package storage

import (
	"time"

	"toga/internal/domain"
)

func attemptToModel(a domain.Attempt) AttemptModel {
	return AttemptModel{
		CreatedAt:  a.CreatedAt.UTC(),
		DurationMS: a.Duration.Milliseconds(),
		ErrorKind:  string(a.ErrorKind),
		ID:         a.ID,
		Identifier: a.Identifier,
		Kind:       string(a.Kind),
		Outcome:    string(a.Outcome),
	}
}

func modelToAttempt(m AttemptModel) domain.Attempt {
	return domain.Attempt{
		CreatedAt:  m.CreatedAt,
		Duration:   time.Duration(m.DurationMS) * time.Millisecond,
		ErrorKind:  domain.ErrorKind(m.ErrorKind),
		ID:         m.ID,
		Identifier: m.Identifier,
		Kind:       domain.AttemptKind(m.Kind),
		Outcome:    domain.AttemptOutcome(m.Outcome),
	}
}
