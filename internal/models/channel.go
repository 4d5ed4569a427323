// ABOUTME: Channel model representing a subscribed feed source
// ABOUTME: Carries the derived unread count maintained by the storage layer

package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel represents a subscribed feed source (one URL) with a derived
// unread-entry count. Unread is never written directly; the storage layer
// recomputes it from entry rows after every mutation.
type Channel struct {
	ID        string
	Link      string
	Unread    int
	CreatedAt time.Time
}

// NewChannel creates a new Channel with a generated ID and timestamp.
func NewChannel(link string) *Channel {
	return &Channel{
		ID:        uuid.New().String(),
		Link:      link,
		CreatedAt: time.Now(),
	}
}
