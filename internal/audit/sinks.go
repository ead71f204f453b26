package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/adapter"
	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/models"
)

// ErrUnknownSink is returned by NewSink for an unsupported sink name.
var ErrUnknownSink = errors.New("unknown audit sink")

// NewSink builds the sink selected by cfg.Sink. The "db" sink appends to
// the audit repository of storages.
func NewSink(cfg config.Audit, storages *store.Storages, log *logger.Logger) (Sink, error) {
	switch cfg.Sink {
	case "", config.AuditSinkLog:
		return NewLogSink(log), nil
	case config.AuditSinkDB:
		return NewStoreSink(storages.AuditRepository), nil
	case config.AuditSinkHTTP:
		a, err := adapter.NewHTTPAuditAdapter(cfg, adapter.HTTPOptions{}, log)
		if err != nil {
			return nil, fmt.Errorf("error creating audit adapter: %w", err)
		}
		return NewAdapterSink(a), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sink)
	}
}

// LogSink writes each entry as a structured log line.
type LogSink struct {
	logger *logger.Logger
}

// NewLogSink returns a Sink that logs entries with an "audit" marker field.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

func (s *LogSink) Write(_ context.Context, entries []models.AuditLogEntry) error {
	for _, e := range entries {
		event := s.logger.Info().
			Bool("audit", true).
			Str(logger.CorrelationIDField, e.CorrelationID).
			Time("ts", e.Timestamp).
			Str("action", e.Action).
			Str("resource_id", e.ResourceID).
			Str("status", string(e.Status))
		if e.UserID != nil {
			event = event.Int64("user_id", *e.UserID)
		}
		if len(e.Details) > 0 {
			event = event.Interface("details", e.Details)
		}
		event.Msg("audit")
	}
	return nil
}

// StoreSink appends entries to an [store.AuditRepository].
type StoreSink struct {
	repository store.AuditRepository
}

// NewStoreSink returns a Sink backed by repository.
func NewStoreSink(repository store.AuditRepository) *StoreSink {
	return &StoreSink{repository: repository}
}

func (s *StoreSink) Write(ctx context.Context, entries []models.AuditLogEntry) error {
	if err := s.repository.AppendAuditEntries(ctx, entries); err != nil {
		return fmt.Errorf("error appending audit entries: %w", err)
	}
	return nil
}

// AdapterSink forwards batches to a remote collector.
type AdapterSink struct {
	adapter adapter.AuditAdapter
}

// NewAdapterSink returns a Sink that delivers entries through a.
func NewAdapterSink(a adapter.AuditAdapter) *AdapterSink {
	return &AdapterSink{adapter: a}
}

func (s *AdapterSink) Write(ctx context.Context, entries []models.AuditLogEntry) error {
	if err := s.adapter.Write(ctx, entries); err != nil {
		return fmt.Errorf("error forwarding %d audit entries: %w", len(entries), err)
	}
	return nil
}
