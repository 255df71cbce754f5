package feeds

import "fmt"

// DuplicateFeedError is returned by AddFeed when a feed with the exact
// same URL is already subscribed. URLs are compared by exact string
// match, without any normalization.
type DuplicateFeedError struct {
	URL string
}

func (e *DuplicateFeedError) Error() string {
	return fmt.Sprintf("feed already exists: %s", e.URL)
}

// FeedNotFoundError is returned when an operation names an unknown
// feed ID.
type FeedNotFoundError struct {
	ID string
}

func (e *FeedNotFoundError) Error() string {
	return fmt.Sprintf("feed not found: %s", e.ID)
}

// FetchError wraps a failure from the remote fetcher. The underlying
// message is passed through verbatim so the caller can display it.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }
