package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the audit writer whether a failed append may be
// attempted again.
type ErrorClassification int

const (
	// NonRetryable failures are reported to the caller as they are. Every
	// error that is not recognised as transient falls here.
	NonRetryable ErrorClassification = iota

	// Retryable failures are transient: the batch is appended again after
	// a backoff.
	Retryable
)

// PostgresErrorClassifier decides which failures of an audit batch append
// are worth another attempt against PostgreSQL. A batch is written in one
// transaction, so a rolled back or never sent batch can be repeated without
// leaving a partial write behind.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier returns the classifier used by the pgx driver.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports [Retryable] when the server rolled the transaction back
// or the connection failed before the batch could reach it.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if isTransientCode(pgErr.Code) {
			return Retryable
		}
		return NonRetryable
	}

	// nothing was sent, e.g. the pool could not dial
	if pgconn.SafeToRetry(err) {
		return Retryable
	}
	return NonRetryable
}

// isTransientCode covers serialization failures and deadlocks (class 40),
// broken connections (class 08) and a server that is starting up, shutting
// down or out of connection slots.
func isTransientCode(code string) bool {
	switch {
	case pgerrcode.IsTransactionRollback(code), pgerrcode.IsConnectionException(code):
		return true
	}

	switch code {
	case pgerrcode.CannotConnectNow, pgerrcode.AdminShutdown, pgerrcode.TooManyConnections:
		return true
	}
	return false
}
