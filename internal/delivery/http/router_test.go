package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherplan/internal/delivery/http/controllers"
	"gatherplan/internal/delivery/http/middleware"
	"gatherplan/internal/domain"
)

type stubService struct{}

func (stubService) CreateEvent(context.Context, string, []time.Time) (*domain.EventCreated, error) {
	return &domain.EventCreated{EventID: "ev-1", OrganizerToken: "o", ParticipantToken: "p"}, nil
}

func (stubService) GetEventDetail(_ context.Context, eventID, _ string) (*domain.EventDetail, error) {
	if eventID != "ev-1" {
		return nil, domain.ErrNotFound
	}
	return &domain.EventDetail{EventID: eventID}, nil
}

func (stubService) AddParticipant(context.Context, string, string, []domain.SlotStatus, *string) (string, error) {
	return "p-1", nil
}

func newTestRouter(limiter *middleware.RateLimiter) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(
		controllers.NewEventController(logger, stubService{}),
		controllers.NewHealthController(logger, nil),
		limiter,
	)
}

func TestNewRouter_Routes(t *testing.T) {
	mux := newTestRouter(nil)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"create event", http.MethodPost, "/api/events", `{"station_name":"新宿","candidate_datetimes":[{"datetime":"2025-03-01T19:00:00Z"}]}`, http.StatusCreated},
		{"get event", http.MethodGet, "/api/events/ev-1?token=p", "", http.StatusOK},
		{"get missing event", http.MethodGet, "/api/events/nope?token=p", "", http.StatusNotFound},
		{"add participant", http.MethodPost, "/api/events/ev-1/participants", `{"token":"p","availabilities":[{"status":"AVAILABLE"}]}`, http.StatusCreated},
		{"wrong method", http.MethodDelete, "/api/events/ev-1", "", http.StatusMethodNotAllowed},
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestNewRouter_RateLimitsWritesOnly(t *testing.T) {
	mux := newTestRouter(middleware.NewRateLimiter(0.001, 1, time.Minute))
	body := `{"station_name":"新宿","candidate_datetimes":[{"datetime":"2025-03-01T19:00:00Z"}]}`

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	read := httptest.NewRecorder()
	mux.ServeHTTP(read, httptest.NewRequest(http.MethodGet, "/api/events/ev-1?token=p", nil))
	require.Equal(t, http.StatusOK, read.Code)
}
