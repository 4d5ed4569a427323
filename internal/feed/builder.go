// ABOUTME: Converts raw parsed feed items into storable Entry candidates
// ABOUTME: Rejects incomplete items individually so one bad item never aborts a batch

package feed

import (
	"strings"

	"github.com/harper/currents/internal/models"
	"github.com/harper/currents/internal/parse"
)

// Rejection explains why a raw item was skipped. It is consumed for
// diagnostics only and never surfaces as the refresh's failure.
type Rejection struct {
	ExternalID string
	Missing    []string
}

// Reason returns a human-readable enumeration of the missing fields.
func (r *Rejection) Reason() string {
	return "missing required fields: " + strings.Join(r.Missing, ", ")
}

// buildEntry validates one raw item and converts it into an Entry candidate
// for the given channel. Every required field is checked so the rejection
// names all of them, not just the first one found.
// When an item exposes multiple links the first is used.
func buildEntry(channelID string, item parse.Item) (*models.Entry, *Rejection) {
	var missing []string
	if item.ExternalID == "" {
		missing = append(missing, "external id")
	}
	if item.Title == "" {
		missing = append(missing, "title")
	}
	if len(item.Links) == 0 {
		missing = append(missing, "link")
	}
	if item.Published == nil {
		missing = append(missing, "published")
	}
	if item.Updated == nil {
		missing = append(missing, "updated")
	}
	if len(missing) > 0 {
		return nil, &Rejection{ExternalID: item.ExternalID, Missing: missing}
	}

	entry := models.NewEntry(channelID, item.ExternalID)
	entry.Title = item.Title
	entry.Link = item.Links[0]
	entry.PublishedAt = *item.Published
	entry.UpdatedAt = *item.Updated
	return entry, nil
}
