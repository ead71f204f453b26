package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-tracker/internal/correlation"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Type(t *testing.T) {
	client := NewHTTPClient()

	// Ensure the embedded client is actually a *resty.Client
	if _, ok := interface{}(client.Client).(*resty.Client); !ok {
		t.Fatalf("expected embedded client to be *resty.Client, got %T", client.Client)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	// Create two clients and make sure they don't share the same underlying resty.Client
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestHTTPClient_PropagatesCorrelationID(t *testing.T) {
	const id = "550e8400-e29b-41d4-a716-446655440000"

	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(correlation.Header)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := correlation.WithID(context.Background(), id)
	_, err := NewHTTPClient().R().SetContext(ctx).Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestHTTPClient_ExplicitHeaderWins(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(correlation.Header)
	}))
	defer srv.Close()

	ctx := correlation.WithID(context.Background(), "from-context")
	_, err := NewHTTPClient().R().
		SetContext(ctx).
		SetHeader(correlation.Header, "explicit").
		Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "explicit", got)
}

func TestHTTPClient_NoCorrelationWithoutContextID(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(correlation.Header)]
	}))
	defer srv.Close()

	_, err := NewHTTPClient().R().Get(srv.URL)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestHTTPClient_WithRetries(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		wantCalls int32
		wantCode  int
	}{
		{name: "retries 5xx until success", statuses: []int{503, 502, 200}, wantCalls: 3, wantCode: 200},
		{name: "does not retry 4xx", statuses: []int{400}, wantCalls: 1, wantCode: 400},
		{name: "gives up after budget", statuses: []int{500, 500, 500, 500}, wantCalls: 3, wantCode: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				w.WriteHeader(tt.statuses[n-1])
			}))
			defer srv.Close()

			client := NewHTTPClient().WithRetries(2, time.Millisecond, 5*time.Millisecond)
			resp, err := client.R().Get(srv.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode())
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}
