package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toga/internal/domain"
	"toga/internal/metrics"
	"toga/internal/ports"
	portsmocks "toga/internal/ports/mocks"
	"toga/internal/services"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatus_Health(t *testing.T) {
	s := NewStatusServer(StatusOptions{})

	rec := get(t, s.Handler(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatus_Readiness(t *testing.T) {
	ready := false
	s := NewStatusServer(StatusOptions{Ready: func() bool { return ready }})

	assert.Equal(t, http.StatusServiceUnavailable, get(t, s.Handler(), "/readyz").Code)

	ready = true
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/readyz").Code)
}

func TestStatus_Metrics(t *testing.T) {
	m := metrics.New()
	m.SessionStarted()
	s := NewStatusServer(StatusOptions{Metrics: m})

	rec := get(t, s.Handler(), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "toga_sessions_total 1")
}

func TestStatus_RoutesDisabledWithoutBackends(t *testing.T) {
	s := NewStatusServer(StatusOptions{})

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/attempts").Code)
}

func TestStatus_ListAttempts(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	created := time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)
	repo.EXPECT().List(mock.Anything, ports.AttemptFilter{Identifier: "123", Kind: domain.AttemptGenerate, Limit: 2}).
		Return([]domain.Attempt{{
			CreatedAt:  created,
			Duration:   1500 * time.Millisecond,
			ID:         "a1",
			Identifier: "123",
			Kind:       domain.AttemptGenerate,
			Outcome:    domain.OutcomeCached,
		}}, nil)

	s := NewStatusServer(StatusOptions{Attempts: services.NewAttemptService(repo, nil)})
	rec := get(t, s.Handler(), "/attempts/123?kind=generate&limit=2")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Attempts []attemptView `json:"attempts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Attempts, 1)
	assert.Equal(t, "a1", body.Attempts[0].ID)
	assert.Equal(t, int64(1500), body.Attempts[0].DurationMS)
	assert.Equal(t, "cached", body.Attempts[0].Outcome)
	assert.True(t, created.Equal(body.Attempts[0].CreatedAt))
}

func TestStatus_ListAttemptsBadRequests(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	s := NewStatusServer(StatusOptions{Attempts: services.NewAttemptService(repo, nil)})

	assert.Equal(t, http.StatusBadRequest, get(t, s.Handler(), "/attempts?limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s.Handler(), "/attempts/12a").Code)
}

func TestStatus_ListAttemptsRepositoryError(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	repo.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("locked"))
	s := NewStatusServer(StatusOptions{Attempts: services.NewAttemptService(repo, nil)})

	assert.Equal(t, http.StatusInternalServerError, get(t, s.Handler(), "/attempts").Code)
}

func TestStatus_Summary(t *testing.T) {
	repo := portsmocks.NewMockAttemptRepository(t)
	repo.EXPECT().CountByOutcome(mock.Anything).Return(map[domain.AttemptOutcome]int64{
		domain.OutcomeGenerated: 2,
		domain.OutcomeFailed:    1,
	}, nil)
	s := NewStatusServer(StatusOptions{Attempts: services.NewAttemptService(repo, nil)})

	rec := get(t, s.Handler(), "/attempts/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"byOutcome":{"generated":2,"failed":1},"total":3}`, rec.Body.String())
}
