package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultRetryCount     = 3
	defaultRetryWait      = 100 * time.Millisecond
	defaultRetryMaxWait   = 2 * time.Second
)

// HTTPOptions tunes the collector client. Zero values take defaults.
type HTTPOptions struct {
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

type httpAuditAdapter struct {
	client   *utils.HTTPClient
	endpoint string

	logger *logger.Logger
}

// NewHTTPAuditAdapter constructs an HTTP/REST implementation of
// [AuditAdapter] posting batches to cfg.Endpoint.
//
// Transport errors and 5xx responses are retried with backoff; 4xx
// responses fail immediately. The X-Correlation-ID header is taken from the
// request context.
//
// Returns [ErrInvalidEndpoint] if cfg.Endpoint is not an absolute http(s)
// URL.
func NewHTTPAuditAdapter(cfg config.Audit, opts HTTPOptions, logger *logger.Logger) (AuditAdapter, error) {
	endpoint, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultRequestTimeout
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	} else if opts.RetryCount == 0 {
		opts.RetryCount = defaultRetryCount
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = defaultRetryWait
	}
	if opts.RetryMaxWait <= 0 {
		opts.RetryMaxWait = defaultRetryMaxWait
	}

	client := utils.NewHTTPClient().WithRetries(opts.RetryCount, opts.RetryWait, opts.RetryMaxWait)
	client.SetTimeout(opts.Timeout)

	return &httpAuditAdapter{client: client, endpoint: endpoint, logger: logger}, nil
}

func normalizeEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include host")
	}

	return u.String(), nil
}

// Write implements [AuditAdapter]. It POSTs entries as a JSON array. An
// empty batch is not sent.
func (h *httpAuditAdapter) Write(ctx context.Context, entries []models.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entries).
		Post(h.endpoint)
	if err != nil {
		return fmt.Errorf("audit forward request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Warn().
			Str("func", "httpAuditAdapter.Write").
			Int("status", resp.StatusCode()).
			Int("attempts", resp.Request.Attempt).
			Msg("audit collector rejected batch")
		return err
	}

	return nil
}
