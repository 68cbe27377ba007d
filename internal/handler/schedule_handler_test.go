package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedly-be/internal/domain"
	"schedly-be/internal/middleware"
	"schedly-be/internal/service"
)

type memoryIntervalRepo struct {
	mu        sync.Mutex
	intervals []*domain.UserTimeInterval
}

func (r *memoryIntervalRepo) CreateBatch(ctx context.Context, intervals []*domain.UserTimeInterval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intervals = append(r.intervals, intervals...)
	return nil
}

func (r *memoryIntervalRepo) ListByUser(ctx context.Context, userID string) ([]*domain.UserTimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.UserTimeInterval
	for _, i := range r.intervals {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memoryIntervalRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.intervals)
}

// newScheduleTestServer mounts the intervals route behind the session
// middleware, exactly as the production router does.
func newScheduleTestServer(t *testing.T) (*chi.Mux, service.SessionService, *memoryIntervalRepo) {
	t.Helper()
	log := newTestLogger(t)
	repo := &memoryIntervalRepo{}
	sessions := service.NewSessionService("test-secret", "development", log)
	schedule := service.NewScheduleService(repo, log)
	h := NewScheduleHandler(schedule, log)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions, log))
		r.Post("/api/users/time-intervals", h.Create)
	})
	return r, sessions, repo
}

func sessionCookie(t *testing.T, sessions service.SessionService, userID string) *http.Cookie {
	t.Helper()
	token, err := sessions.IssueToken(userID)
	require.NoError(t, err)
	return sessions.NewCookie(token)
}

func TestTimeIntervalsWithoutSession(t *testing.T) {
	router, _, repo := newScheduleTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/time-intervals",
		strings.NewReader(`{"intervals":[{"weekDay":1,"startTimeInMinutes":540,"endTimeInMinutes":600}]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String(), "401 carries no body")
	assert.Equal(t, 0, repo.count(), "nothing is written without a session")
}

func TestTimeIntervalsInvalidSession(t *testing.T) {
	router, _, repo := newScheduleTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/time-intervals",
		strings.NewReader(`{"intervals":[{"weekDay":1,"startTimeInMinutes":540,"endTimeInMinutes":600}]}`))
	req.AddCookie(&http.Cookie{Name: "@schedly:userId", Value: "forged-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, 0, repo.count())
}

func TestTimeIntervalsCreate(t *testing.T) {
	router, sessions, repo := newScheduleTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/time-intervals",
		strings.NewReader(`{"intervals":[
			{"weekDay":1,"startTimeInMinutes":540,"endTimeInMinutes":600},
			{"weekDay":3,"startTimeInMinutes":480,"endTimeInMinutes":720}
		]}`))
	req.AddCookie(sessionCookie(t, sessions, "user-123"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String(), "201 carries no body")

	stored, err := repo.ListByUser(context.Background(), "user-123")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, interval := range stored {
		assert.Equal(t, "user-123", interval.UserID)
	}
}

func TestTimeIntervalsMalformedBody(t *testing.T) {
	router, sessions, repo := newScheduleTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/time-intervals", strings.NewReader(`{not json`))
	req.AddCookie(sessionCookie(t, sessions, "user-123"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, repo.count())
}

func TestTimeIntervalsValidationFailure(t *testing.T) {
	router, sessions, repo := newScheduleTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty batch", body: `{"intervals":[]}`},
		{name: "week day out of range", body: `{"intervals":[{"weekDay":7,"startTimeInMinutes":540,"endTimeInMinutes":600}]}`},
		{name: "inverted window", body: `{"intervals":[{"weekDay":1,"startTimeInMinutes":600,"endTimeInMinutes":540}]}`},
		{name: "missing field", body: `{"intervals":[{"weekDay":1,"startTimeInMinutes":540}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users/time-intervals", strings.NewReader(tt.body))
			req.AddCookie(sessionCookie(t, sessions, "user-123"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, repo.count(), "a rejected batch writes nothing")
		})
	}
}

func TestTimeIntervalsMethodNotAllowed(t *testing.T) {
	router, sessions, _ := newScheduleTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/time-intervals", nil)
	req.AddCookie(sessionCookie(t, sessions, "user-123"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
