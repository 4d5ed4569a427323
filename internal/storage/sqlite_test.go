// ABOUTME: Tests for SQLite storage implementation
// ABOUTME: Covers channel/entry persistence, dedup inserts, and unread recomputes

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/currents/internal/models"
)

// newTestStore creates a store backed by a temp database file.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

// testEntry builds a fully-populated candidate for the given channel.
func testEntry(channelID, externalID string) *models.Entry {
	entry := models.NewEntry(channelID, externalID)
	entry.Title = "Title for " + externalID
	entry.Link = "https://example.com/posts/" + externalID
	entry.PublishedAt = time.Now().Add(-time.Hour)
	entry.UpdatedAt = time.Now().Add(-time.Hour)
	return entry
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestChannelCRUD(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	// Get by ID
	got, err := store.GetChannel(ch.ID)
	if err != nil {
		t.Fatalf("GetChannel failed: %v", err)
	}
	if got.Link != ch.Link {
		t.Errorf("Link mismatch: got %q, want %q", got.Link, ch.Link)
	}
	if got.Unread != 0 {
		t.Errorf("Unread mismatch: got %d, want 0", got.Unread)
	}

	// Get by link
	got, err = store.GetChannelByLink(ch.Link)
	if err != nil {
		t.Fatalf("GetChannelByLink failed: %v", err)
	}
	if got.ID != ch.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, ch.ID)
	}

	// List channels
	channels, err := store.ListChannels()
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if len(channels) != 1 {
		t.Errorf("ListChannels count: got %d, want 1", len(channels))
	}
}

func TestCreateChannelDuplicateLink(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	if err := store.CreateChannel(models.NewChannel("https://example.com/feed.xml")); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	err := store.CreateChannel(models.NewChannel("https://example.com/feed.xml"))
	if err == nil {
		t.Error("expected duplicate link to be rejected")
	}
}

func TestGetChannelNotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.GetChannel("no-such-channel")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestInsertEntriesRecomputesUnread(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	entries := []*models.Entry{
		testEntry(ch.ID, "a"),
		testEntry(ch.ID, "b"),
		testEntry(ch.ID, "c"),
	}
	inserted, err := store.InsertEntries(ch.ID, entries)
	if err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("inserted: got %d, want 3", inserted)
	}

	got, err := store.GetChannel(ch.ID)
	if err != nil {
		t.Fatalf("GetChannel failed: %v", err)
	}
	if got.Unread != 3 {
		t.Errorf("Unread after insert: got %d, want 3", got.Unread)
	}
}

func TestInsertEntriesIgnoresDuplicates(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	first := testEntry(ch.ID, "a")
	if _, err := store.InsertEntries(ch.ID, []*models.Entry{first}); err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}

	// Re-ingesting the same external id is a no-op, even with changed fields
	again := testEntry(ch.ID, "a")
	again.Title = "Edited upstream"
	inserted, err := store.InsertEntries(ch.ID, []*models.Entry{again})
	if err != nil {
		t.Fatalf("InsertEntries (repeat) failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted on repeat: got %d, want 0", inserted)
	}

	entries, err := store.ListEntries(ch.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count: got %d, want 1", len(entries))
	}
	// The original record wins
	if entries[0].Title != first.Title {
		t.Errorf("Title: got %q, want %q", entries[0].Title, first.Title)
	}
	if entries[0].ID != first.ID {
		t.Errorf("ID: got %q, want %q", entries[0].ID, first.ID)
	}
}

func TestExternalIDScopedPerChannel(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	chA := models.NewChannel("https://a.example.com/feed.xml")
	chB := models.NewChannel("https://b.example.com/feed.xml")
	for _, ch := range []*models.Channel{chA, chB} {
		if err := store.CreateChannel(ch); err != nil {
			t.Fatalf("CreateChannel failed: %v", err)
		}
	}

	// The same external id may live in two different channels
	if _, err := store.InsertEntries(chA.ID, []*models.Entry{testEntry(chA.ID, "shared")}); err != nil {
		t.Fatalf("InsertEntries for channel A failed: %v", err)
	}
	inserted, err := store.InsertEntries(chB.ID, []*models.Entry{testEntry(chB.ID, "shared")})
	if err != nil {
		t.Fatalf("InsertEntries for channel B failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("inserted in channel B: got %d, want 1", inserted)
	}
}

func TestListEntriesOrder(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	older := testEntry(ch.ID, "older")
	older.PublishedAt = time.Now().Add(-48 * time.Hour)
	newer := testEntry(ch.ID, "newer")
	newer.PublishedAt = time.Now().Add(-time.Hour)

	if _, err := store.InsertEntries(ch.ID, []*models.Entry{older, newer}); err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}

	entries, err := store.ListEntries(ch.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count: got %d, want 2", len(entries))
	}
	if entries[0].ExternalID != "newer" {
		t.Errorf("expected newest published first, got %q", entries[0].ExternalID)
	}
}

func TestToggleEntryRead(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	entry := testEntry(ch.ID, "a")
	if _, err := store.InsertEntries(ch.ID, []*models.Entry{entry}); err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}

	// Flip to read
	got, err := store.ToggleEntryRead(entry.ID)
	if err != nil {
		t.Fatalf("ToggleEntryRead failed: %v", err)
	}
	if !got.Read {
		t.Error("expected entry to be read after toggle")
	}
	if got.ChannelID != ch.ID {
		t.Errorf("ChannelID: got %q, want %q", got.ChannelID, ch.ID)
	}

	channel, err := store.GetChannel(ch.ID)
	if err != nil {
		t.Fatalf("GetChannel failed: %v", err)
	}
	if channel.Unread != 0 {
		t.Errorf("Unread after toggle: got %d, want 0", channel.Unread)
	}

	// Flip back to unread
	got, err = store.ToggleEntryRead(entry.ID)
	if err != nil {
		t.Fatalf("ToggleEntryRead (second) failed: %v", err)
	}
	if got.Read {
		t.Error("expected entry to be unread after second toggle")
	}

	channel, err = store.GetChannel(ch.ID)
	if err != nil {
		t.Fatalf("GetChannel failed: %v", err)
	}
	if channel.Unread != 1 {
		t.Errorf("Unread after second toggle: got %d, want 1", channel.Unread)
	}
}

func TestToggleEntryReadNotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.ToggleEntryRead("no-such-entry")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestMarkChannelRead(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	entries := []*models.Entry{testEntry(ch.ID, "a"), testEntry(ch.ID, "b")}
	if _, err := store.InsertEntries(ch.ID, entries); err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}

	changed, err := store.MarkChannelRead(ch.ID)
	if err != nil {
		t.Fatalf("MarkChannelRead failed: %v", err)
	}
	if changed != 2 {
		t.Errorf("changed: got %d, want 2", changed)
	}

	channel, err := store.GetChannel(ch.ID)
	if err != nil {
		t.Fatalf("GetChannel failed: %v", err)
	}
	if channel.Unread != 0 {
		t.Errorf("Unread after mark read: got %d, want 0", channel.Unread)
	}

	// Already-read entries are untouched
	changed, err = store.MarkChannelRead(ch.ID)
	if err != nil {
		t.Fatalf("MarkChannelRead (repeat) failed: %v", err)
	}
	if changed != 0 {
		t.Errorf("changed on repeat: got %d, want 0", changed)
	}
}

func TestRecomputeUnreadSelfHeals(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ch := models.NewChannel("https://example.com/feed.xml")
	if err := store.CreateChannel(ch); err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}
	if _, err := store.InsertEntries(ch.ID, []*models.Entry{testEntry(ch.ID, "a"), testEntry(ch.ID, "b")}); err != nil {
		t.Fatalf("InsertEntries failed: %v", err)
	}

	// Corrupt the stored aggregate directly
	if _, err := store.db.Exec(`UPDATE channels SET unread = 99 WHERE id = ?`, ch.ID); err != nil {
		t.Fatalf("corrupting unread failed: %v", err)
	}

	count, err := store.RecomputeUnread(ch.ID)
	if err != nil {
		t.Fatalf("RecomputeUnread failed: %v", err)
	}
	if count != 2 {
		t.Errorf("recomputed count: got %d, want 2", count)
	}

	channel, err := store.GetChannel(ch.ID)
	if err != nil {
		t.Fatalf("GetChannel failed: %v", err)
	}
	if channel.Unread != 2 {
		t.Errorf("Unread after recompute: got %d, want 2", channel.Unread)
	}
}

func TestRecomputeUnreadUnknownChannel(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.RecomputeUnread("no-such-channel")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}
