// ABOUTME: Test suite for Channel model creation
// ABOUTME: Validates generated IDs, timestamps, and the zero unread default

package models

import (
	"testing"
	"time"
)

func TestNewChannel(t *testing.T) {
	link := "https://example.com/feed.xml"
	ch := NewChannel(link)

	if ch.Link != link {
		t.Errorf("expected Link to be %q, got %q", link, ch.Link)
	}

	if ch.ID == "" {
		t.Error("expected channel ID to be generated, got empty string")
	}

	// A new channel has no entries, so no unread ones either
	if ch.Unread != 0 {
		t.Errorf("expected Unread to be 0, got %d", ch.Unread)
	}

	if ch.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set, got zero time")
	}

	now := time.Now()
	if ch.CreatedAt.After(now) || ch.CreatedAt.Before(now.Add(-time.Second)) {
		t.Errorf("expected CreatedAt to be recent, got %v", ch.CreatedAt)
	}
}

func TestNewChannelUniqueIDs(t *testing.T) {
	a := NewChannel("https://example.com/a.xml")
	b := NewChannel("https://example.com/b.xml")

	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %q", a.ID)
	}
}
