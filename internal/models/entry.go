// ABOUTME: Entry model representing a single feed item with read/unread state
// ABOUTME: Entries are immutable after ingestion except for the read flag

package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents a single item belonging to a channel, keyed by the
// upstream feed's own identifier. Title, link and timestamps never change
// after the entry is first stored; only Read is mutable.
type Entry struct {
	ID          string
	ChannelID   string
	ExternalID  string
	Title       string
	Link        string
	PublishedAt time.Time
	UpdatedAt   time.Time
	Read        bool
	CreatedAt   time.Time
}

// NewEntry creates an unread Entry with a generated ID and creation timestamp.
func NewEntry(channelID, externalID string) *Entry {
	return &Entry{
		ID:         uuid.New().String(),
		ChannelID:  channelID,
		ExternalID: externalID,
		Read:       false,
		CreatedAt:  time.Now(),
	}
}
