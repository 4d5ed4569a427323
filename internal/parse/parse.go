// ABOUTME: RSS/Atom feed parsing using gofeed library
// ABOUTME: Converts gofeed.Feed to a raw Document whose items keep optional fields optional

package parse

import (
	"time"

	"github.com/mmcdole/gofeed"
)

// Document represents a parsed feed before per-item validation. Optional
// fields stay optional here; the entry builder decides what is required.
type Document struct {
	ID    string
	Title string
	Items []Item
}

// Item represents one raw feed item. Timestamps are nil when the upstream
// document omits them.
type Item struct {
	ExternalID string
	Title      string
	Links      []string
	Published  *time.Time
	Updated    *time.Time
}

// Parse parses RSS or Atom feed data and returns a raw Document.
func Parse(data []byte) (*Document, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Title: feed.Title,
		Items: make([]Item, 0, len(feed.Items)),
	}

	// gofeed exposes no Atom <id>; the feed's self link identifies it
	doc.ID = feed.FeedLink
	if doc.ID == "" {
		doc.ID = feed.Link
	}

	for _, item := range feed.Items {
		raw := Item{
			ExternalID: item.GUID,
			Title:      item.Title,
			Published:  item.PublishedParsed,
			Updated:    item.UpdatedParsed,
		}

		// Fallback external id to Link if empty
		if raw.ExternalID == "" {
			raw.ExternalID = item.Link
		}

		if len(item.Links) > 0 {
			raw.Links = item.Links
		} else if item.Link != "" {
			raw.Links = []string{item.Link}
		}

		doc.Items = append(doc.Items, raw)
	}

	return doc, nil
}
