// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/correlation"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpAuditAdapter {
	t.Helper()
	a, err := NewHTTPAuditAdapter(
		config.Audit{Endpoint: serverURL + "/audit"},
		HTTPOptions{Timeout: time.Second, RetryCount: 2, RetryWait: time.Millisecond, RetryMaxWait: 5 * time.Millisecond},
		logger.Nop(),
	)
	require.NoError(t, err)
	return a.(*httpAuditAdapter)
}

func testEntries() []models.AuditLogEntry {
	return []models.AuditLogEntry{
		{CorrelationID: "c1", Action: "item.create", ResourceID: "1", Status: models.AuditStatusSuccess},
		{CorrelationID: "c2", Action: "item.delete", ResourceID: "1", Status: models.AuditStatusFailure},
	}
}

func TestNewHTTPAuditAdapter_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "   ", "collector:9000", "ftp://collector/audit", "http://"} {
		t.Run(endpoint, func(t *testing.T) {
			_, err := NewHTTPAuditAdapter(config.Audit{Endpoint: endpoint}, HTTPOptions{}, logger.Nop())
			assert.ErrorIs(t, err, ErrInvalidEndpoint)
		})
	}
}

func TestNewHTTPAuditAdapter_Defaults(t *testing.T) {
	a, err := NewHTTPAuditAdapter(config.Audit{Endpoint: "https://collector.local/audit"}, HTTPOptions{}, logger.Nop())
	require.NoError(t, err)

	h := a.(*httpAuditAdapter)
	assert.Equal(t, "https://collector.local/audit", h.endpoint)
	assert.Equal(t, defaultRetryCount, h.client.RetryCount)
	assert.Equal(t, defaultRequestTimeout, h.client.GetClient().Timeout)
}

func TestWrite_Success(t *testing.T) {
	entries := testEntries()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/audit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got []models.AuditLogEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Len(t, got, 2)
		assert.Equal(t, "item.create", got[0].Action)
		assert.Equal(t, models.AuditStatusFailure, got[1].Status)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Write(context.Background(), entries)
	require.NoError(t, err)
}

func TestWrite_EmptyBatchIsNotSent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).Write(context.Background(), nil))
	assert.Zero(t, calls.Load())
}

func TestWrite_PropagatesCorrelationID(t *testing.T) {
	id := correlation.NewID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, id, r.Header.Get(correlation.Header))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := correlation.WithID(context.Background(), id)
	require.NoError(t, newTestAdapter(t, srv.URL).Write(ctx, testEntries()))
}

func TestWrite_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).Write(context.Background(), testEntries()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWrite_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("collector down"))
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Write(context.Background(), testEntries())
	assert.ErrorIs(t, err, ErrInternalServerError)
	// one attempt plus two retries
	assert.Equal(t, int32(3), calls.Load())
}

func TestWrite_DoesNotRetryClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, want: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, want: ErrConflict},
		{name: "too many requests", status: http.StatusTooManyRequests, want: ErrTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL).Write(context.Background(), testEntries())
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestWrite_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Write(context.Background(), testEntries())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestWrite_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestAdapter(t, srv.URL).Write(ctx, testEntries())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapHTTPError_TruncatesBody(t *testing.T) {
	long := make([]byte, maxErrorBody*4)
	for i := range long {
		long[i] = 'x'
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(long)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Write(context.Background(), testEntries())
	require.ErrorIs(t, err, ErrBadRequest)
	assert.LessOrEqual(t, len(err.Error()), len(ErrBadRequest.Error())+2+maxErrorBody)
}
