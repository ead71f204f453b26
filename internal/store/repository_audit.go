package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

const (
	auditAppendAttempts = 3
	auditRetryBackoff   = 100 * time.Millisecond
)

// auditRepository is the SQL-backed implementation of [AuditRepository].
// Entries are only ever inserted into "audit_log".
type auditRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] backed by db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Str("driver", db.driver).Msg("creating audit repository")
	return &auditRepository{
		DB:     db,
		logger: logger,
	}
}

// AppendAuditEntries inserts the batch in a single transaction. Failures the
// error classifier marks as [Retryable] are retried with a linear backoff.
func (r *auditRepository) AppendAuditEntries(ctx context.Context, entries []models.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAuditEntriesQuery(r.builder, entries)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.AppendAuditEntries").Msg("failed to create query")
		return err
	}

	for attempt := 1; ; attempt++ {
		err = r.appendOnce(ctx, query, args)
		if err == nil {
			return nil
		}
		if attempt == auditAppendAttempts || r.errorClassificator.Classify(err) != Retryable {
			log.Err(err).
				Str("func", "auditRepository.AppendAuditEntries").
				Int("entries", len(entries)).
				Int("attempt", attempt).
				Msg("failed to append audit entries")
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("retrying audit append")
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrExecutingStatement, ctx.Err())
		case <-time.After(time.Duration(attempt) * auditRetryBackoff):
		}
	}
}

func (r *auditRepository) appendOnce(ctx context.Context, query string, args []any) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// ListAuditEntries returns every entry recorded for correlationID in
// insertion order.
func (r *auditRepository) ListAuditEntries(ctx context.Context, correlationID string) ([]models.AuditLogEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAuditEntriesQuery(r.builder, correlationID)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.ListAuditEntries").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.ListAuditEntries").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AuditLogEntry, 0, 8)
	for rows.Next() {
		var (
			entry   models.AuditLogEntry
			userID  sql.NullInt64
			status  string
			details string
		)
		if scanErr := rows.Scan(
			&entry.CorrelationID,
			&entry.Timestamp,
			&userID,
			&entry.Action,
			&entry.ResourceID,
			&status,
			&details,
		); scanErr != nil {
			log.Err(scanErr).Str("func", "auditRepository.ListAuditEntries").Msg("failed to scan audit row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if userID.Valid {
			entry.UserID = &userID.Int64
		}
		entry.Status = models.AuditStatus(status)
		if entry.Details, err = unmarshalDetails(details); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "auditRepository.ListAuditEntries").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}
