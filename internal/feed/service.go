// ABOUTME: Feed synchronization and read-state engine
// ABOUTME: Orchestrates fetch, parse, per-entry upsert, and unread recompute per channel

package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/harper/currents/internal/models"
	"github.com/harper/currents/internal/parse"
	"github.com/harper/currents/internal/storage"
)

// Fetcher retrieves the raw document behind a channel's source URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Service drives channel refreshes and read-state changes. All store
// mutations for one channel are serialized behind a per-channel lock; the
// network fetch deliberately happens before that lock is taken.
type Service struct {
	store   storage.Store
	fetcher Fetcher
	locks   *channelLocks
}

// NewService creates a Service over the given store and fetcher.
func NewService(store storage.Store, fetcher Fetcher) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		locks:   newChannelLocks(),
	}
}

// Document is the normalized feed returned to the caller after a refresh,
// regardless of how many entries were newly inserted vs. already known.
type Document struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Entries []DocumentEntry `json:"entries"`
}

// DocumentEntry is one valid entry of a refreshed document.
type DocumentEntry struct {
	ExternalID string    `json:"entry_id"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Published  time.Time `json:"published"`
	Updated    time.Time `json:"updated"`
}

// Refresh synchronizes one channel with its upstream feed: fetch, parse,
// validate each item, insert the valid candidates (ignoring known external
// ids), and recompute the channel's unread count once for the whole batch.
//
// Failure modes: storage.ErrChannelNotFound, *FetchError, *ParseError, or a
// wrapped persistence error. None of them leave a partially counted channel:
// the upsert batch and the recompute share one store transaction.
func (s *Service) Refresh(ctx context.Context, channelID string) (*Document, error) {
	ch, err := s.store.GetChannel(channelID)
	if err != nil {
		if errors.Is(err, storage.ErrChannelNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve channel %s: %w", channelID, err)
	}

	body, err := s.fetcher.Fetch(ctx, ch.Link)
	if err != nil {
		return nil, &FetchError{URL: ch.Link, Err: err}
	}

	doc, err := parse.Parse(body)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	candidates := make([]*models.Entry, 0, len(doc.Items))
	for _, item := range doc.Items {
		entry, rejection := buildEntry(ch.ID, item)
		if rejection != nil {
			log.Printf("skipping item %q from %s: %s", rejection.ExternalID, ch.Link, rejection.Reason())
			continue
		}
		candidates = append(candidates, entry)
	}

	// The fetch and parse above ran outside this lock so a slow upstream
	// never blocks toggles on the same channel.
	lock := s.locks.get(ch.ID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.store.InsertEntries(ch.ID, candidates); err != nil {
		if errors.Is(err, storage.ErrChannelNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("persist entries for %s: %w", ch.ID, err)
	}

	return buildDocument(ch, doc, candidates), nil
}

// ListEntries returns a channel's stored entries, newest published first.
func (s *Service) ListEntries(channelID string) ([]*models.Entry, error) {
	return s.store.ListEntries(channelID)
}

// ToggleRead flips the read flag of one entry and recomputes the owning
// channel's unread count. Returns the updated entry.
func (s *Service) ToggleRead(entryID string) (*models.Entry, error) {
	entry, err := s.store.GetEntry(entryID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(entry.ChannelID)
	lock.Lock()
	defer lock.Unlock()

	return s.store.ToggleEntryRead(entryID)
}

// MarkChannelRead marks every entry of a channel read. Returns how many
// entries changed state.
func (s *Service) MarkChannelRead(channelID string) (int64, error) {
	if _, err := s.store.GetChannel(channelID); err != nil {
		return 0, err
	}

	lock := s.locks.get(channelID)
	lock.Lock()
	defer lock.Unlock()

	return s.store.MarkChannelRead(channelID)
}

func buildDocument(ch *models.Channel, doc *parse.Document, entries []*models.Entry) *Document {
	out := &Document{
		ID:      doc.ID,
		Title:   doc.Title,
		Entries: make([]DocumentEntry, 0, len(entries)),
	}
	if out.ID == "" {
		out.ID = ch.Link
	}
	for _, entry := range entries {
		out.Entries = append(out.Entries, DocumentEntry{
			ExternalID: entry.ExternalID,
			Title:      entry.Title,
			Link:       entry.Link,
			Published:  entry.PublishedAt,
			Updated:    entry.UpdatedAt,
		})
	}
	return out
}
