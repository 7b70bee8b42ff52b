package ports

import (
	"context"

	"toga/internal/domain"
)

// AttemptFilter specifies criteria for listing journaled attempts
type AttemptFilter struct {
	Identifier string
	Kind       domain.AttemptKind
	Limit      int
}

// AttemptRepository persists the attempt journal
type AttemptRepository interface {
	Add(ctx context.Context, attempt domain.Attempt) error
	CountByOutcome(ctx context.Context) (map[domain.AttemptOutcome]int64, error)
	List(ctx context.Context, filter AttemptFilter) ([]domain.Attempt, error)
	Close() error
}

// AttemptRecorder receives finished backend attempts.
// Implementations must be safe for concurrent use and must not block for long.
type AttemptRecorder interface {
	Record(ctx context.Context, attempt domain.Attempt)
}
