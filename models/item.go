package models

import "time"

// Item is a single task tracked by the service.
type Item struct {
	// ID is the server-assigned identifier of the task.
	ID int64 `json:"id"`

	// Name is the canonical (trimmed, whitespace-collapsed) task name.
	Name string `json:"name"`

	// Description is optional free text. Nil when not provided.
	Description *string `json:"description"`

	// Price is an optional amount attached to the task, rounded to cents.
	Price *float64 `json:"price"`

	// OwnerID is the user who created the task. It is set only when the
	// request was authenticated.
	OwnerID *int64 `json:"owner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemRequest is the client payload accepted by create and update
// operations. Fields are validated and canonicalized before they reach
// the storage layer.
type ItemRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price,omitempty"`
}

// ItemListOptions bounds a listing of items.
type ItemListOptions struct {
	Limit  int
	Offset int
}
