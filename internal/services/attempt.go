package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/metrics"
	"toga/internal/ports"
)

var _ ports.AttemptRecorder = (*AttemptService)(nil)

// AttemptSummary aggregates the journal by outcome
type AttemptSummary struct {
	ByOutcome map[domain.AttemptOutcome]int64
	Total     int64
}

// AttemptService journals backend attempts and feeds the metrics
type AttemptService struct {
	metrics *metrics.Metrics
	now     func() time.Time
	repo    ports.AttemptRepository
}

// NewAttemptService creates a new AttemptService. repo and m may be nil,
// in which case the corresponding sink is skipped.
func NewAttemptService(repo ports.AttemptRepository, m *metrics.Metrics) *AttemptService {
	return &AttemptService{
		metrics: m,
		now:     time.Now,
		repo:    repo,
	}
}

// Record stores a finished attempt. Failures are logged, never returned:
// the journal must not affect the kiosk flow.
func (s *AttemptService) Record(ctx context.Context, attempt domain.Attempt) {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = s.now().UTC()
	}

	if s.metrics != nil {
		s.metrics.RecordAttempt(attempt)
	}

	if s.repo == nil {
		return
	}
	if err := s.repo.Add(ctx, attempt); err != nil {
		logging.Logger.Warn("Failed to journal attempt",
			"id", attempt.ID,
			"kind", attempt.Kind,
			"outcome", attempt.Outcome,
			"error", err)
		return
	}
	logging.Logger.Debug("Attempt journaled",
		"id", attempt.ID,
		"kind", attempt.Kind,
		"outcome", attempt.Outcome,
		"duration", attempt.Duration)
}

// List returns journaled attempts, newest first
func (s *AttemptService) List(ctx context.Context, filter ports.AttemptFilter) ([]domain.Attempt, error) {
	if s.repo == nil {
		return nil, nil
	}
	if filter.Identifier != "" {
		id, err := domain.NormalizeIdentifier(filter.Identifier)
		if err != nil {
			return nil, err
		}
		filter.Identifier = id
	}
	attempts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}

// Summary counts journaled attempts per outcome
func (s *AttemptService) Summary(ctx context.Context) (AttemptSummary, error) {
	summary := AttemptSummary{ByOutcome: map[domain.AttemptOutcome]int64{}}
	if s.repo == nil {
		return summary, nil
	}
	counts, err := s.repo.CountByOutcome(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to count attempts: %w", err)
	}
	for outcome, n := range counts {
		summary.ByOutcome[outcome] = n
		summary.Total += n
	}
	return summary, nil
}
