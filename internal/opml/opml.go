// ABOUTME: OPML parsing and writing for channel subscription lists
// ABOUTME: Supports flat subscription import/export with round-trip XML serialization

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Version is the OPML version written on export.
const Version = "2.0"

// Document represents an OPML subscription list.
type Document struct {
	Title         string
	Subscriptions []Subscription
}

// Subscription is one feed URL with its display title.
type Subscription struct {
	URL   string
	Title string
}

// XML structs for parsing and writing OPML files
type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// NewDocument creates a new empty OPML document with the given title.
func NewDocument(title string) *Document {
	return &Document{
		Title:         title,
		Subscriptions: []Subscription{},
	}
}

// Parse reads OPML data from an io.Reader and returns a Document.
// Nested folder outlines are flattened; only feed outlines survive.
func Parse(r io.Reader) (*Document, error) {
	var opml opmlXML
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&opml); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	doc := &Document{Title: opml.Head.Title}
	for _, outline := range opml.Body.Outlines {
		doc.Subscriptions = append(doc.Subscriptions, collectSubscriptions(outline)...)
	}
	return doc, nil
}

// ParseFile reads OPML data from a file and returns a Document.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Add appends a subscription. Duplicate URLs are an error.
func (d *Document) Add(url, title string) error {
	for _, sub := range d.Subscriptions {
		if sub.URL == url {
			return fmt.Errorf("subscription with URL %s already exists", url)
		}
	}
	d.Subscriptions = append(d.Subscriptions, Subscription{URL: url, Title: title})
	return nil
}

// Write serializes the document as OPML 2.0 to the given writer.
func (d *Document) Write(w io.Writer) error {
	out := opmlXML{
		Version: Version,
		Head:    headXML{Title: d.Title},
	}
	for _, sub := range d.Subscriptions {
		title := sub.Title
		if title == "" {
			title = sub.URL
		}
		out.Body.Outlines = append(out.Body.Outlines, outlineXML{
			Text:   title,
			Title:  title,
			Type:   "rss",
			XMLURL: sub.URL,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}
	// Trailing newline after the closing tag
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile serializes the document to a file.
func (d *Document) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return d.Write(file)
}

// collectSubscriptions walks an outline tree and keeps every feed node.
func collectSubscriptions(outline outlineXML) []Subscription {
	var subs []Subscription

	if outline.XMLURL != "" {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		subs = append(subs, Subscription{URL: outline.XMLURL, Title: title})
	}

	for _, child := range outline.Children {
		subs = append(subs, collectSubscriptions(child)...)
	}

	return subs
}
