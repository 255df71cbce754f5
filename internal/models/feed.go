package models

// Feed represents a subscribed RSS source.
//
// ErrorMessage and IsLoading are transient refresh state; both are
// reset at the start of every refresh attempt.
type Feed struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Description  string `json:"description,omitempty"`
	LastUpdated  string `json:"lastUpdated,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	IsLoading    bool   `json:"isLoading,omitempty"`
}

// FeedUpdate carries a partial set of feed fields. Nil pointers mean
// "leave unchanged"; ID and URL are immutable and not updatable.
type FeedUpdate struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	LastUpdated  *string `json:"lastUpdated,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`
	IsLoading    *bool   `json:"isLoading,omitempty"`
}

// Apply merges the set fields of the update into the feed.
func (u FeedUpdate) Apply(f *Feed) {
	if u.Title != nil {
		f.Title = *u.Title
	}
	if u.Description != nil {
		f.Description = *u.Description
	}
	if u.LastUpdated != nil {
		f.LastUpdated = *u.LastUpdated
	}
	if u.ErrorMessage != nil {
		f.ErrorMessage = *u.ErrorMessage
	}
	if u.IsLoading != nil {
		f.IsLoading = *u.IsLoading
	}
}

// String returns a pointer to s, for building FeedUpdate literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building FeedUpdate literals.
func Bool(b bool) *bool { return &b }
