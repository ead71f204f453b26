package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrItemNotFound is returned when a query or update targets an item
	// that does not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrItemNotSaved is returned when an INSERT completes without error but
	// no id was returned, indicating that nothing was persisted.
	ErrItemNotSaved = errors.New("item was not saved")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// storage driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrUnsafeAttachmentName is returned when an attachment name is not a
	// plain file name inside the upload directory.
	ErrUnsafeAttachmentName = errors.New("unsafe attachment name")

	// ErrAttachmentExists is returned when a file with the same name is
	// already stored.
	ErrAttachmentExists = errors.New("attachment already exists")

	// ErrWritingAttachment is returned when the attachment file cannot be
	// created or written.
	ErrWritingAttachment = errors.New("failed to write attachment")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
