// ABOUTME: Storage interface and errors for currents data persistence
// ABOUTME: Defines the contract for channel and entry storage operations

package storage

import (
	"errors"

	"github.com/harper/currents/internal/models"
)

// ErrChannelNotFound is returned when a channel id (or link) matches no row.
var ErrChannelNotFound = errors.New("channel not found")

// ErrEntryNotFound is returned when an entry id matches no row.
var ErrEntryNotFound = errors.New("entry not found")

// Store defines the storage interface for currents data.
//
// Mutations that change the entry set or an entry's read flag also refresh
// the owning channel's unread count inside the same transaction, so readers
// never observe the flag and the count disagreeing.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Channel Operations

	// CreateChannel stores a new channel. A duplicate link is an error.
	CreateChannel(ch *models.Channel) error

	// GetChannel retrieves a channel by ID.
	GetChannel(id string) (*models.Channel, error)

	// GetChannelByLink finds a channel by its source URL.
	GetChannelByLink(link string) (*models.Channel, error)

	// ListChannels returns all channels, newest first.
	ListChannels() ([]*models.Channel, error)

	// Entry Operations

	// InsertEntries inserts candidates for one channel, ignoring any whose
	// (channel_id, external_id) is already stored, then recomputes the
	// channel's unread count. The whole batch runs in one transaction.
	// Returns the number of rows actually inserted.
	InsertEntries(channelID string, entries []*models.Entry) (int, error)

	// GetEntry retrieves an entry by ID.
	GetEntry(id string) (*models.Entry, error)

	// ListEntries returns a channel's entries, newest published first.
	ListEntries(channelID string) ([]*models.Entry, error)

	// ToggleEntryRead flips an entry's read flag and recomputes the owning
	// channel's unread count in one transaction. Returns the updated entry.
	ToggleEntryRead(id string) (*models.Entry, error)

	// MarkChannelRead marks all of a channel's entries read and recomputes
	// the unread count. Returns the number of entries that changed state.
	MarkChannelRead(channelID string) (int64, error)

	// Aggregate Operations

	// RecomputeUnread re-derives a channel's unread count from entry rows
	// and persists it. Safe to call redundantly.
	RecomputeUnread(channelID string) (int, error)

	// CountUnread counts a channel's unread entries from ground truth,
	// bypassing the stored aggregate.
	CountUnread(channelID string) (int, error)
}
