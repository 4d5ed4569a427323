// ABOUTME: Typed errors for the feed refresh pipeline
// ABOUTME: Distinguishes upstream fetch failures from malformed documents

package feed

import "fmt"

// FetchError reports that a channel's document could not be retrieved.
// It is transient: re-invoking the refresh may succeed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a malformed upstream document. Nothing from the
// document is ingested.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
