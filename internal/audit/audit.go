package audit

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/correlation"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

//go:generate mockgen -source=audit.go -destination=../mock/audit_sink_mock.go -package=mock

// Sink persists a batch of audit entries. Implementations must write the
// whole batch or fail.
type Sink interface {
	Write(ctx context.Context, entries []models.AuditLogEntry) error
}

// Options configures buffering and batching.
type Options struct {
	// BufferSize is the capacity of the in-memory queue.
	BufferSize int
	// BatchSize is the number of entries written in one Sink.Write.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	// WriteTimeout bounds a single Sink.Write.
	WriteTimeout time.Duration
}

const (
	defaultBufferSize    = 1024
	defaultBatchSize     = 100
	defaultFlushInterval = time.Second
	defaultWriteTimeout  = 5 * time.Second
)

// Recorder is an asynchronous, batching audit trail writer.
type Recorder struct {
	sink    Sink
	opts    Options
	logger  *logger.Logger
	entries chan models.AuditLogEntry

	mu      sync.RWMutex
	stopped bool
}

// NewRecorder creates a Recorder writing to sink. Zero options take
// defaults. The recorder does nothing until Run is started.
func NewRecorder(sink Sink, opts Options, log *logger.Logger) *Recorder {
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.BatchSize > opts.BufferSize {
		opts.BatchSize = opts.BufferSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}

	return &Recorder{
		sink:    sink,
		opts:    opts,
		logger:  log,
		entries: make(chan models.AuditLogEntry, opts.BufferSize),
	}
}

// Record queues entry for writing. A missing correlation id is taken from
// ctx and a missing timestamp is set to now (UTC). Record does not wait for
// the sink unless the queue is full or the recorder has stopped, in which
// case the entry is written synchronously.
func (r *Recorder) Record(ctx context.Context, entry models.AuditLogEntry) {
	if entry.CorrelationID == "" {
		entry.CorrelationID = correlation.IDFromContext(ctx)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.stopped {
		select {
		case r.entries <- entry:
			return
		default:
			logger.FromContext(ctx).Warn().
				Str("action", entry.Action).
				Msg("audit queue is full, writing synchronously")
		}
	}

	r.write(context.WithoutCancel(ctx), []models.AuditLogEntry{entry})
}

// Run collects queued entries into batches until ctx is cancelled, then
// drains the queue and writes what is left. It blocks until the final
// flush completes.
func (r *Recorder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.opts.FlushInterval)
	defer ticker.Stop()

	batch := make([]models.AuditLogEntry, 0, r.opts.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		r.write(context.Background(), batch)
		batch = make([]models.AuditLogEntry, 0, r.opts.BatchSize)
	}

	for {
		select {
		case entry := <-r.entries:
			batch = append(batch, entry)
			if len(batch) >= r.opts.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-ctx.Done():
			r.mu.Lock()
			r.stopped = true
			r.mu.Unlock()

			// no sends can happen after stopped is set
			for {
				select {
				case entry := <-r.entries:
					batch = append(batch, entry)
					if len(batch) >= r.opts.BatchSize {
						flush()
					}
					continue
				default:
				}
				break
			}
			flush()
			r.logger.Info().Msg("audit recorder stopped")
			return
		}
	}
}

func (r *Recorder) write(ctx context.Context, entries []models.AuditLogEntry) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	if err := r.sink.Write(ctx, entries); err != nil {
		r.logger.Err(err).
			Int("entries", len(entries)).
			Str("first_correlation_id", entries[0].CorrelationID).
			Msg("failed to write audit entries")
	}
}
