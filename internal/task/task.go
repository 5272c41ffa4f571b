// Package task holds the canonical client-side representation of a to-do
// item, the normalizer that produces it from the API's inconsistent response
// shapes, and the local filtering and caching built on top of it.
package task

import (
	"fmt"
	"time"
)

// Sentinel owner id used when the API omits userId from a record. A known
// data-quality gap in the upstream payloads, not a guarantee.
const UnknownUserID = "unknown"

// Task is the canonical normalized to-do item. Every raw API shape collapses
// into this one struct; nothing outside the normalizer inspects raw payloads.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerLabel returns the display name for the task owner, falling back to a
// truncated id placeholder and finally "Unknown User".
func (t Task) OwnerLabel() string {
	if t.UserName != "" {
		return t.UserName
	}
	if t.UserID != "" && t.UserID != UnknownUserID {
		id := t.UserID
		if len(id) > 6 {
			id = id[:6]
		}
		return fmt.Sprintf("User %s...", id)
	}
	return "Unknown User"
}

// StatusLabel returns the admin-view status string for the task.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "success"
	}
	return "pending"
}
