package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-task-tracker/internal/correlation"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Every request sent through an HTTPClient carries the X-Correlation-ID
// header taken from the request context, unless the caller set it
// explicitly.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().SetContext(ctx).Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client and correlation
// propagation installed.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New()
	client.OnBeforeRequest(propagateCorrelationID)
	return &HTTPClient{Client: client}
}

// WithRetries enables bounded retries with exponential backoff between wait
// and maxWait. Only transport errors and 5xx responses are retried; 4xx
// responses are returned to the caller immediately.
func (c *HTTPClient) WithRetries(count int, wait, maxWait time.Duration) *HTTPClient {
	c.SetRetryCount(count).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(maxWait).
		AddRetryCondition(retryOnServerError)
	return c
}

func retryOnServerError(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode() >= http.StatusInternalServerError
}

func propagateCorrelationID(_ *resty.Client, r *resty.Request) error {
	if r.Header.Get(correlation.Header) != "" {
		return nil
	}
	if id, ok := correlation.FromContext(r.Context()); ok {
		r.SetHeader(correlation.Header, id)
	}
	return nil
}
