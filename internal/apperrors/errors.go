package apperrors

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// FieldError is a single field-level validation issue. Message must be a
// high-level constraint description such as "must not be empty".
type FieldError struct {
	Field   string
	Message string
}

// Error is a classified application error.
type Error struct {
	Kind Kind

	// Fields lists validation issues in input order. Only set for
	// KindValidation.
	Fields []FieldError

	// RetryAfter is an optional hint for KindRateLimited.
	RetryAfter time.Duration

	// Location is the "file:line function" the error was raised at.
	// Server-side only.
	Location string

	// Err is the underlying cause. Server-side only.
	Err error
}

// Error returns the diagnostic text of the error. It may contain internal
// detail and must not be sent to clients.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	for _, f := range e.Fields {
		b.WriteString("; ")
		b.WriteString(f.Field)
		b.WriteString(" ")
		b.WriteString(f.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports invalid client input. At least one field should be
// given.
func Validation(fields ...FieldError) *Error {
	return newError(KindValidation, nil, fields)
}

// NotFound reports a missing resource. resource and id are kept for
// server-side diagnostics only.
func NotFound(resource string, id any) *Error {
	return newError(KindNotFound, fmt.Errorf("%s %v not found", resource, id), nil)
}

// Forbidden reports an authenticated caller that may not perform an action.
func Forbidden(reason string) *Error {
	return newError(KindForbidden, errors.New(reason), nil)
}

// Unauthenticated reports missing or invalid credentials. cause may be nil.
func Unauthenticated(cause error) *Error {
	return newError(KindUnauthenticated, cause, nil)
}

// RateLimited reports a caller that exceeded its quota. retryAfter may be
// zero when unknown.
func RateLimited(retryAfter time.Duration) *Error {
	e := newError(KindRateLimited, nil, nil)
	e.RetryAfter = retryAfter
	return e
}

// Internal classifies cause as an internal fault and records the caller's
// location.
func Internal(cause error) *Error {
	return newError(KindInternal, cause, nil)
}

func newError(kind Kind, cause error, fields []FieldError) *Error {
	return &Error{
		Kind:     kind,
		Fields:   fields,
		Location: callerLocation(3),
		Err:      cause,
	}
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err. Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// LocationOf returns the location recorded on the first *Error in err's
// chain, or "unknown".
func LocationOf(err error) string {
	if appErr, ok := As(err); ok && appErr.Location != "" {
		return appErr.Location
	}
	return "unknown"
}

func callerLocation(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	loc := filepath.Base(file) + ":" + strconv.Itoa(line)
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc += " " + fn.Name()
	}
	return loc
}
