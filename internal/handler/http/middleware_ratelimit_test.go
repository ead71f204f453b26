package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/correlation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthFrom(router http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit_ExceededIsProblem(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)
	h.rateLimits = config.RateLimit{Health: 2, Window: time.Minute}
	router := h.Init()

	require.Equal(t, http.StatusOK, healthFrom(router, "10.0.0.1:1000").Code)
	require.Equal(t, http.StatusOK, healthFrom(router, "10.0.0.1:1001").Code)

	rr := healthFrom(router, "10.0.0.1:1002")

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	problem := decodeProblem(t, rr)
	assert.Equal(t, testProblemBase+"rate-limited", problem.Type)
	assert.Equal(t, "Rate limit exceeded", problem.Detail)
	assert.Equal(t, "/health", problem.Instance)
	assert.Equal(t, rr.Header().Get(correlation.Header), problem.CorrelationID)

	seconds, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seconds, 1)
	assert.LessOrEqual(t, seconds, 60)
}

func TestRateLimit_PerClient(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)
	h.rateLimits = config.RateLimit{Health: 1, Window: time.Minute}
	router := h.Init()

	require.Equal(t, http.StatusOK, healthFrom(router, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, healthFrom(router, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, healthFrom(router, "10.0.0.2:1000").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		limits config.RateLimit
	}{
		{name: "negative quota", limits: config.RateLimit{Health: -1, Window: time.Minute}},
		{name: "zero window", limits: config.RateLimit{Health: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestHandler(t, 0)
			h.rateLimits = tt.limits
			router := h.Init()

			for range 3 {
				require.Equal(t, http.StatusOK, healthFrom(router, "10.0.0.1:1000").Code)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	window := time.Minute

	t.Run("missing header uses window", func(t *testing.T) {
		assert.Equal(t, window, retryAfter(http.Header{}, window))
	})

	t.Run("future reset", func(t *testing.T) {
		header := http.Header{}
		header.Set(rateLimitResetHeader, strconv.FormatInt(time.Now().Add(30*time.Second).Unix(), 10))

		got := retryAfter(header, window)
		assert.Greater(t, got, 20*time.Second)
		assert.LessOrEqual(t, got, 30*time.Second)
	})

	t.Run("past reset uses window", func(t *testing.T) {
		header := http.Header{}
		header.Set(rateLimitResetHeader, strconv.FormatInt(time.Now().Add(-time.Second).Unix(), 10))

		assert.Equal(t, window, retryAfter(header, window))
	})
}
