package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toga/internal/domain"
	"toga/internal/metrics"
	"toga/internal/ports"
	portsmocks "toga/internal/ports/mocks"
)

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	fixed := time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)

	var stored domain.Attempt
	repo.EXPECT().Add(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, attempt domain.Attempt) { stored = attempt }).
		Return(nil)

	service := NewAttemptService(repo, nil)
	service.now = func() time.Time { return fixed }

	service.Record(context.Background(), domain.Attempt{
		Duration:   2 * time.Second,
		Identifier: "1234567890",
		Kind:       domain.AttemptVerify,
		Outcome:    domain.OutcomeVerified,
	})

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, fixed, stored.CreatedAt)
	assert.Equal(t, "1234567890", stored.Identifier)
}

func TestRecord_KeepsExplicitID(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	repo.EXPECT().Add(mock.Anything, mock.MatchedBy(func(a domain.Attempt) bool {
		return a.ID == "fixed-id"
	})).Return(nil)

	NewAttemptService(repo, nil).Record(context.Background(), domain.Attempt{
		ID:      "fixed-id",
		Kind:    domain.AttemptGenerate,
		Outcome: domain.OutcomeCached,
	})
}

func TestRecord_RepositoryErrorIsSwallowed(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	repo.EXPECT().Add(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	m := metrics.New()
	service := NewAttemptService(repo, m)

	assert.NotPanics(t, func() {
		service.Record(context.Background(), domain.Attempt{
			ErrorKind: domain.KindTransport,
			Kind:      domain.AttemptGenerate,
			Outcome:   domain.OutcomeFailed,
		})
	})

	// Metrics are updated even when the journal write fails
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptsTotal.WithLabelValues("generate", "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptErrors.WithLabelValues("generate", "transport")))
}

func TestRecord_NilSinks(t *testing.T) {
	service := NewAttemptService(nil, nil)
	assert.NotPanics(t, func() {
		service.Record(context.Background(), domain.Attempt{Kind: domain.AttemptVerify})
	})

	attempts, err := service.List(context.Background(), ports.AttemptFilter{})
	require.NoError(t, err)
	assert.Empty(t, attempts)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
}

func TestList_NormalizesIdentifier(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	want := []domain.Attempt{{ID: "a", Identifier: "42"}}
	repo.EXPECT().List(mock.Anything, ports.AttemptFilter{Identifier: "42", Limit: 5}).Return(want, nil)

	service := NewAttemptService(repo, nil)
	got, err := service.List(context.Background(), ports.AttemptFilter{Identifier: " 42 ", Limit: 5})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestList_InvalidIdentifier(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	service := NewAttemptService(repo, nil)

	_, err := service.List(context.Background(), ports.AttemptFilter{Identifier: "abc"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_RepositoryError(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	repo.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("locked"))

	_, err := NewAttemptService(repo, nil).List(context.Background(), ports.AttemptFilter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list attempts")
}

func TestSummary_Totals(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	repo.EXPECT().CountByOutcome(mock.Anything).Return(map[domain.AttemptOutcome]int64{
		domain.OutcomeGenerated: 3,
		domain.OutcomeCached:    2,
		domain.OutcomeFailed:    1,
	}, nil)

	summary, err := NewAttemptService(repo, nil).Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(6), summary.Total)
	assert.Equal(t, int64(2), summary.ByOutcome[domain.OutcomeCached])
}
