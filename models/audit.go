package models

import "time"

// AuditStatus is the outcome of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// AuditLogEntry records one significant action. Entries are append-only:
// once written they are never updated or deleted.
type AuditLogEntry struct {
	// CorrelationID links the entry to the request that produced it.
	CorrelationID string `json:"correlation_id"`

	// Timestamp is the UTC time the action completed.
	Timestamp time.Time `json:"timestamp"`

	// UserID is the authenticated actor, or nil for anonymous requests.
	UserID *int64 `json:"user_id,omitempty"`

	// Action names what happened, e.g. "item.create".
	Action string `json:"action"`

	// ResourceID identifies the affected resource, if any.
	ResourceID string `json:"resource_id,omitempty"`

	Status AuditStatus `json:"status"`

	// Details holds non-sensitive metadata about the action.
	Details map[string]string `json:"details,omitempty"`
}
