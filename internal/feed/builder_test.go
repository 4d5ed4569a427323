// ABOUTME: Tests for per-item validation and Entry candidate construction
// ABOUTME: Verifies rejects enumerate every missing field and never panic

package feed

import (
	"testing"
	"time"

	"github.com/harper/currents/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() parse.Item {
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := published.Add(time.Hour)
	return parse.Item{
		ExternalID: "https://example.com/posts/1",
		Title:      "A post",
		Links:      []string{"https://example.com/posts/1", "https://mirror.example.com/posts/1"},
		Published:  &published,
		Updated:    &updated,
	}
}

func TestBuildEntryValid(t *testing.T) {
	item := validItem()

	entry, rejection := buildEntry("channel-1", item)
	require.Nil(t, rejection)
	require.NotNil(t, entry)

	assert.Equal(t, "channel-1", entry.ChannelID)
	assert.Equal(t, item.ExternalID, entry.ExternalID)
	assert.Equal(t, item.Title, entry.Title)
	// First link wins when the item exposes several
	assert.Equal(t, "https://example.com/posts/1", entry.Link)
	assert.True(t, entry.PublishedAt.Equal(*item.Published))
	assert.True(t, entry.UpdatedAt.Equal(*item.Updated))
	assert.False(t, entry.Read)
	assert.NotEmpty(t, entry.ID)
}

func TestBuildEntryMissingSingleField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*parse.Item)
		field  string
	}{
		{"no external id", func(i *parse.Item) { i.ExternalID = "" }, "external id"},
		{"no title", func(i *parse.Item) { i.Title = "" }, "title"},
		{"no links", func(i *parse.Item) { i.Links = nil }, "link"},
		{"no published", func(i *parse.Item) { i.Published = nil }, "published"},
		{"no updated", func(i *parse.Item) { i.Updated = nil }, "updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)

			entry, rejection := buildEntry("channel-1", item)
			assert.Nil(t, entry)
			require.NotNil(t, rejection)
			assert.Equal(t, []string{tt.field}, rejection.Missing)
			assert.Contains(t, rejection.Reason(), tt.field)
		})
	}
}

func TestBuildEntryEnumeratesAllMissingFields(t *testing.T) {
	entry, rejection := buildEntry("channel-1", parse.Item{})
	assert.Nil(t, entry)
	require.NotNil(t, rejection)

	assert.Equal(t, []string{"external id", "title", "link", "published", "updated"}, rejection.Missing)
	assert.Equal(t, "missing required fields: external id, title, link, published, updated", rejection.Reason())
}
