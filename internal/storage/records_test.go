package storage

import (
	"context"
	"errors"
	"testing"

	"feedhaven/reader/internal/models"
)

func TestRecordsFeedsRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(NewMemStore())

	feeds := []models.Feed{
		{ID: "f1", Title: "One", URL: "https://example.com/1"},
		{ID: "f2", Title: "Two", URL: "https://example.com/2", ErrorMessage: "last fetch failed"},
	}
	if err := records.SaveFeeds(ctx, feeds); err != nil {
		t.Fatalf("SaveFeeds failed: %v", err)
	}

	got, err := records.LoadFeeds(ctx)
	if err != nil {
		t.Fatalf("LoadFeeds failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d feeds, want 2", len(got))
	}
	if got[0] != feeds[0] || got[1] != feeds[1] {
		t.Errorf("loaded feeds differ: %+v", got)
	}
}

func TestRecordsArticlesStripContent(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(NewMemStore())

	in := []models.Article{
		{
			ID:      "a1",
			FeedID:  "f1",
			Title:   "Kept",
			Link:    "https://example.com/a1",
			PubDate: "Mon, 15 May 2023 10:00:00 GMT",
			ISODate: "2023-05-15T10:00:00Z",
			Content: "full html body",
			Author:  "Alice",
			IsRead:  true,
		},
	}
	if err := records.SaveArticles(ctx, in); err != nil {
		t.Fatalf("SaveArticles failed: %v", err)
	}

	got, err := records.LoadArticles(ctx)
	if err != nil {
		t.Fatalf("LoadArticles failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("loaded %d articles, want 1", len(got))
	}
	// Only the minimal content subset survives; body, author and
	// status live elsewhere.
	want := models.ArticleContent{
		ID:      "a1",
		FeedID:  "f1",
		Title:   "Kept",
		Link:    "https://example.com/a1",
		PubDate: "Mon, 15 May 2023 10:00:00 GMT",
		ISODate: "2023-05-15T10:00:00Z",
	}
	if got[0] != want {
		t.Errorf("loaded content = %+v, want %+v", got[0], want)
	}
}

func TestRecordsStatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(NewMemStore())

	in := []models.Article{
		{ID: "a1", IsRead: true, IsFavorite: true},
		{ID: "a2", IsReadLater: true},
	}
	if err := records.SaveArticleStatus(ctx, in); err != nil {
		t.Fatalf("SaveArticleStatus failed: %v", err)
	}

	got, err := records.LoadArticleStatus(ctx)
	if err != nil {
		t.Fatalf("LoadArticleStatus failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d statuses, want 2", len(got))
	}
	if s := got["a1"]; !s.IsRead || !s.IsFavorite || s.IsReadLater {
		t.Errorf("a1 status = %+v", s)
	}
	if s := got["a2"]; !s.IsReadLater || s.IsRead {
		t.Errorf("a2 status = %+v", s)
	}
}

func TestRecordsLoadMissingKeys(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(NewMemStore())

	feeds, err := records.LoadFeeds(ctx)
	if err != nil || len(feeds) != 0 {
		t.Errorf("LoadFeeds on empty store: %v, %d feeds", err, len(feeds))
	}
	articles, err := records.LoadArticles(ctx)
	if err != nil || len(articles) != 0 {
		t.Errorf("LoadArticles on empty store: %v, %d articles", err, len(articles))
	}
	statuses, err := records.LoadArticleStatus(ctx)
	if err != nil || len(statuses) != 0 {
		t.Errorf("LoadArticleStatus on empty store: %v, %d statuses", err, len(statuses))
	}
}

func TestRecordsClear(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(NewMemStore())

	if err := records.SaveFeeds(ctx, []models.Feed{{ID: "f1"}}); err != nil {
		t.Fatalf("SaveFeeds failed: %v", err)
	}
	if err := records.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	feeds, err := records.LoadFeeds(ctx)
	if err != nil || len(feeds) != 0 {
		t.Errorf("feeds survived Clear: %v, %d feeds", err, len(feeds))
	}
}

// failStore always fails writes; reads behave as an empty store.
type failStore struct {
	err error
}

func (s *failStore) Read(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (s *failStore) Write(context.Context, string, []byte) error        { return s.err }
func (s *failStore) Clear(context.Context, ...string) error             { return nil }

func TestBestEffortInvokesHook(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("disk full")
	records := NewRecords(&failStore{err: cause})

	var hooked error
	records.SetErrorHook(func(err error) { hooked = err })

	// Must not panic or return; the failure surfaces via the hook.
	records.SaveFeedsBestEffort(ctx, []models.Feed{{ID: "f1"}})

	if !errors.Is(hooked, cause) {
		t.Errorf("hook received %v, want %v", hooked, cause)
	}
}

func TestSaveFeedsSurfacesError(t *testing.T) {
	cause := errors.New("disk full")
	records := NewRecords(&failStore{err: cause})

	err := records.SaveFeeds(context.Background(), []models.Feed{{ID: "f1"}})
	if !errors.Is(err, cause) {
		t.Errorf("SaveFeeds error = %v, want wrapped %v", err, cause)
	}
}
