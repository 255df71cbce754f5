package models

import "time"

// RemoteFeed is the result of fetching and parsing one feed URL.
// It is the boundary type between the fetcher and the registry; the
// parser behind it is a black box as far as the core is concerned.
type RemoteFeed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Items       []RemoteItem `json:"items"`
}

// RemoteItem is one raw entry as delivered by the parser, before
// normalization into an Article.
type RemoteItem struct {
	GUID            string
	Title           string
	Links           []string
	Published       string
	PublishedParsed *time.Time
	Content         string
	Description     string
	Authors         []string
	Categories      []string
	Enclosures      []Enclosure
}

// Enclosure is a media attachment declared by a remote item.
type Enclosure struct {
	URL  string
	Type string
}
