package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withRequestLogger binds the handler's logger to the request the way
// withCorrelationID does.
func withRequestLogger(h *Handler, r *http.Request, id string) *http.Request {
	ctx, _ := h.logger.WithCorrelationID(r.Context(), id)
	return r.WithContext(ctx)
}

func TestWithLogging_StartAndFinishLines(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus float64
	}{
		{name: "explicit status", status: http.StatusCreated, body: `{"id":1}`, wantStatus: 201},
		{name: "implicit 200", body: "OK", wantStatus: 200},
		{name: "no body no status", wantStatus: 200},
		{name: "error status", status: http.StatusNotFound, body: "{}", wantStatus: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, buf := newTestHandler(t, 0)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := withRequestLogger(h, httptest.NewRequest(http.MethodPost, "/items", nil), "cid-log")
			h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			lines := buf.lines(t)
			require.Len(t, lines, 2)

			assert.Equal(t, "request started", lines[0]["message"])
			assert.Equal(t, "POST", lines[0]["method"])
			assert.Equal(t, "/items", lines[0]["path"])

			assert.Equal(t, "request finished", lines[1]["message"])
			assert.Equal(t, tt.wantStatus, lines[1]["status"])
			assert.Equal(t, outcomeCompleted, lines[1]["outcome"])
			assert.Equal(t, float64(len(tt.body)), lines[1]["size"])
			assert.Contains(t, lines[1], "duration")

			for _, line := range lines {
				assert.Equal(t, "cid-log", line[logger.CorrelationIDField])
			}
		})
	}
}

func TestWithLogging_ClientClosed(t *testing.T) {
	h, _, buf := newTestHandler(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil).WithContext(ctx)
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), withRequestLogger(h, req, "cid"))

	lines := buf.lines(t)
	require.Len(t, lines, 2)
	assert.Equal(t, float64(StatusClientClosedRequest), lines[1]["status"])
	assert.Equal(t, outcomeClientClosed, lines[1]["outcome"])
}

func TestWithLogging_Timeout(t *testing.T) {
	h, _, buf := newTestHandler(t, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil).WithContext(ctx)
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), withRequestLogger(h, req, "cid"))

	lines := buf.lines(t)
	require.Len(t, lines, 2)
	assert.Equal(t, float64(http.StatusServiceUnavailable), lines[1]["status"])
	assert.Equal(t, outcomeTimeout, lines[1]["outcome"])
}

func TestWithLogging_TimeoutBeforeWrite(t *testing.T) {
	h, _, buf := newTestHandler(t, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(ctx)
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), withRequestLogger(h, req, "cid"))

	lines := buf.lines(t)
	require.Len(t, lines, 2)
	assert.Equal(t, float64(http.StatusGatewayTimeout), lines[1]["status"])
	assert.Equal(t, outcomeTimeout, lines[1]["outcome"])
}

func TestRequestOutcome(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	tests := []struct {
		name        string
		ctx         context.Context
		status      int
		wantStatus  int
		wantOutcome string
	}{
		{name: "completed", ctx: context.Background(), status: 201, wantStatus: 201, wantOutcome: outcomeCompleted},
		{name: "unset status", ctx: context.Background(), wantStatus: 200, wantOutcome: outcomeCompleted},
		{name: "canceled", ctx: canceled, status: 200, wantStatus: StatusClientClosedRequest, wantOutcome: outcomeClientClosed},
		{name: "deadline", ctx: expired, status: 500, wantStatus: 500, wantOutcome: outcomeTimeout},
		{name: "deadline before write", ctx: expired, wantStatus: http.StatusGatewayTimeout, wantOutcome: outcomeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, outcome := requestOutcome(tt.ctx, tt.status)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func TestWithLogging_NopLogger(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.withLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}
