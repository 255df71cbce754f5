package models

// Article is one entry ingested from a feed, together with the
// user-owned status flags.
//
// Everything except the status triple is replaced wholesale whenever
// the owning feed is re-ingested. IsRead, IsFavorite and IsReadLater
// belong to the user and must survive re-ingestion for any article ID
// that appears in both the old and the new batch.
type Article struct {
	ID             string   `json:"id"`
	FeedID         string   `json:"feedId"`
	Title          string   `json:"title"`
	Link           string   `json:"link"`
	PubDate        string   `json:"pubDate"`
	ISODate        string   `json:"isoDate,omitempty"`
	Content        string   `json:"content,omitempty"`
	ContentSnippet string   `json:"contentSnippet,omitempty"`
	Author         string   `json:"author,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`

	IsRead      bool `json:"isRead"`
	IsFavorite  bool `json:"isFavorite"`
	IsReadLater bool `json:"isReadLater"`
}

// ArticleContent is the minimal subset of an article that is persisted
// in the content record. Descriptive fields not listed here are
// re-populated on the next refresh of the owning feed.
type ArticleContent struct {
	ID       string `json:"id"`
	FeedID   string `json:"feedId"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	PubDate  string `json:"pubDate"`
	ISODate  string `json:"isoDate,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ArticleStatus is the persisted form of the status triple.
type ArticleStatus struct {
	ID          string `json:"id"`
	IsRead      bool   `json:"isRead"`
	IsFavorite  bool   `json:"isFavorite"`
	IsReadLater bool   `json:"isReadLater"`
}

// ContentRecord extracts the persistable content subset of the article.
func (a Article) ContentRecord() ArticleContent {
	return ArticleContent{
		ID:       a.ID,
		FeedID:   a.FeedID,
		Title:    a.Title,
		Link:     a.Link,
		PubDate:  a.PubDate,
		ISODate:  a.ISODate,
		ImageURL: a.ImageURL,
	}
}

// StatusRecord extracts the persistable status triple of the article.
func (a Article) StatusRecord() ArticleStatus {
	return ArticleStatus{
		ID:          a.ID,
		IsRead:      a.IsRead,
		IsFavorite:  a.IsFavorite,
		IsReadLater: a.IsReadLater,
	}
}

// ArticleFilters selects the subset of articles the presentation layer
// sees. Active predicates combine with logical AND. The zero value
// matches everything.
type ArticleFilters struct {
	SearchTerm        string `json:"searchTerm"`
	ShowOnlyUnread    bool   `json:"showOnlyUnread"`
	ShowOnlyFavorites bool   `json:"showOnlyFavorites"`
	ShowOnlyReadLater bool   `json:"showOnlyReadLater"`
	FeedID            string `json:"feedId,omitempty"`
}

// FilterUpdate is a partial ArticleFilters; nil fields are left as-is.
type FilterUpdate struct {
	SearchTerm        *string `json:"searchTerm,omitempty"`
	ShowOnlyUnread    *bool   `json:"showOnlyUnread,omitempty"`
	ShowOnlyFavorites *bool   `json:"showOnlyFavorites,omitempty"`
	ShowOnlyReadLater *bool   `json:"showOnlyReadLater,omitempty"`
	FeedID            *string `json:"feedId,omitempty"`
}

// Apply merges the set fields of the update into the filters.
func (u FilterUpdate) Apply(f *ArticleFilters) {
	if u.SearchTerm != nil {
		f.SearchTerm = *u.SearchTerm
	}
	if u.ShowOnlyUnread != nil {
		f.ShowOnlyUnread = *u.ShowOnlyUnread
	}
	if u.ShowOnlyFavorites != nil {
		f.ShowOnlyFavorites = *u.ShowOnlyFavorites
	}
	if u.ShowOnlyReadLater != nil {
		f.ShowOnlyReadLater = *u.ShowOnlyReadLater
	}
	if u.FeedID != nil {
		f.FeedID = *u.FeedID
	}
}
