package models

import "time"

// Attachment describes a file stored for an item. FileName is generated by
// the server and never derived from client input.
type Attachment struct {
	ItemID      int64     `json:"item_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
