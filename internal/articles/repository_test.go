package articles

import (
	"context"
	"testing"

	"feedhaven/reader/internal/models"
	"feedhaven/reader/internal/storage"
)

func newTestRepository() (*Repository, *storage.Records) {
	records := storage.NewRecords(storage.NewMemStore())
	return NewRepository(records), records
}

func TestIngestPreservesStatus(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	repo.Ingest(ctx, "feed1", []models.Article{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	})
	repo.MarkAsRead(ctx, "a")
	repo.ToggleFavorite(ctx, "a")
	repo.ToggleReadLater(ctx, "b")

	// Re-ingest: "a" survives with updated content, "b" disappears,
	// "c" is new.
	repo.Ingest(ctx, "feed1", []models.Article{
		{ID: "a", Title: "First, updated"},
		{ID: "c", Title: "Third"},
	})

	a, ok := repo.Article("a")
	if !ok {
		t.Fatal("article a missing after re-ingest")
	}
	if a.Title != "First, updated" {
		t.Errorf("content not replaced, Title = %q", a.Title)
	}
	if !a.IsRead || !a.IsFavorite {
		t.Errorf("status not preserved: isRead=%v isFavorite=%v", a.IsRead, a.IsFavorite)
	}

	if _, ok := repo.Article("b"); ok {
		t.Error("article b should be gone after re-ingest")
	}

	c, ok := repo.Article("c")
	if !ok {
		t.Fatal("article c missing after re-ingest")
	}
	if c.IsRead || c.IsFavorite || c.IsReadLater {
		t.Errorf("new article should start unflagged, got %+v", c.StatusRecord())
	}
}

func TestIngestLeavesOtherFeedsAlone(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	repo.Ingest(ctx, "feed1", []models.Article{{ID: "a", Title: "Feed one"}})
	repo.Ingest(ctx, "feed2", []models.Article{{ID: "x", Title: "Feed two"}})
	repo.MarkAsRead(ctx, "a")

	// Re-ingesting feed2 must not disturb feed1's articles or status.
	repo.Ingest(ctx, "feed2", []models.Article{{ID: "y", Title: "Feed two again"}})

	a, ok := repo.Article("a")
	if !ok {
		t.Fatal("feed1 article lost during feed2 ingest")
	}
	if !a.IsRead {
		t.Error("feed1 status lost during feed2 ingest")
	}
	if _, ok := repo.Article("x"); ok {
		t.Error("feed2 old article should be replaced")
	}
}

func TestIngestStampsFeedID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	repo.Ingest(ctx, "feed1", []models.Article{{ID: "a", FeedID: "something-else"}})

	a, _ := repo.Article("a")
	if a.FeedID != "feed1" {
		t.Errorf("FeedID = %q, want feed1", a.FeedID)
	}
}

func TestStatusMutations(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()
	repo.Ingest(ctx, "feed1", []models.Article{{ID: "a"}})

	repo.MarkAsRead(ctx, "a")
	if a, _ := repo.Article("a"); !a.IsRead {
		t.Error("MarkAsRead did not set isRead")
	}
	repo.MarkAsRead(ctx, "a") // idempotent
	if a, _ := repo.Article("a"); !a.IsRead {
		t.Error("second MarkAsRead cleared isRead")
	}
	repo.MarkAsUnread(ctx, "a")
	if a, _ := repo.Article("a"); a.IsRead {
		t.Error("MarkAsUnread did not clear isRead")
	}

	repo.ToggleFavorite(ctx, "a")
	repo.ToggleFavorite(ctx, "a")
	if a, _ := repo.Article("a"); a.IsFavorite {
		t.Error("double ToggleFavorite should restore original state")
	}

	repo.ToggleReadLater(ctx, "a")
	if a, _ := repo.Article("a"); !a.IsReadLater {
		t.Error("ToggleReadLater did not set isReadLater")
	}
}

func TestStatusMutationUnknownID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()
	repo.Ingest(ctx, "feed1", []models.Article{{ID: "a"}})

	// Must not panic or disturb existing articles.
	repo.MarkAsRead(ctx, "no-such-id")
	repo.ToggleFavorite(ctx, "no-such-id")

	if a, _ := repo.Article("a"); a.IsRead || a.IsFavorite {
		t.Errorf("unrelated article mutated: %+v", a.StatusRecord())
	}
}

func TestFilterState(t *testing.T) {
	repo, _ := newTestRepository()

	repo.SetFilters(models.FilterUpdate{
		SearchTerm:     models.String("go"),
		ShowOnlyUnread: models.Bool(true),
	})
	f := repo.Filters()
	if f.SearchTerm != "go" || !f.ShowOnlyUnread {
		t.Errorf("filters not applied: %+v", f)
	}

	// Partial update keeps the untouched fields.
	repo.SetFilters(models.FilterUpdate{FeedID: models.String("feed1")})
	f = repo.Filters()
	if f.SearchTerm != "go" || f.FeedID != "feed1" {
		t.Errorf("partial update clobbered filters: %+v", f)
	}

	repo.ClearFilters()
	if f := repo.Filters(); f != (models.ArticleFilters{}) {
		t.Errorf("ClearFilters left state: %+v", f)
	}
}

func TestQueryAppliesFiltersAndSort(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository()

	repo.Ingest(ctx, "feed1", []models.Article{
		{ID: "old", Title: "Old story", ISODate: "2023-05-14T10:00:00Z"},
		{ID: "new", Title: "New story", ISODate: "2023-05-16T10:00:00Z"},
		{ID: "mid", Title: "Mid story", ISODate: "2023-05-15T10:00:00Z"},
	})
	repo.MarkAsRead(ctx, "mid")
	repo.SetFilters(models.FilterUpdate{ShowOnlyUnread: models.Bool(true)})

	got := repo.Query()
	if len(got) != 2 {
		t.Fatalf("Query returned %d articles, want 2", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("Query order = [%s %s], want [new old]", got[0].ID, got[1].ID)
	}
}

func TestLoadRestoresContentAndStatus(t *testing.T) {
	ctx := context.Background()
	records := storage.NewRecords(storage.NewMemStore())

	first := NewRepository(records)
	first.Ingest(ctx, "feed1", []models.Article{
		{ID: "a", Title: "Persisted", Link: "https://example.com/a", ISODate: "2023-05-15T10:00:00Z"},
		{ID: "b", Title: "Also persisted"},
	})
	first.MarkAsRead(ctx, "a")
	first.ToggleFavorite(ctx, "b")

	second := NewRepository(records)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	a, ok := second.Article("a")
	if !ok {
		t.Fatal("article a not restored")
	}
	if a.Title != "Persisted" || a.Link != "https://example.com/a" || a.ISODate != "2023-05-15T10:00:00Z" {
		t.Errorf("content not restored: %+v", a)
	}
	if !a.IsRead {
		t.Error("isRead not restored")
	}

	b, ok := second.Article("b")
	if !ok {
		t.Fatal("article b not restored")
	}
	if !b.IsFavorite || b.IsRead {
		t.Errorf("status of b not restored: %+v", b.StatusRecord())
	}
}

func TestLoadEmptyStore(t *testing.T) {
	repo, _ := newTestRepository()
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load on empty store failed: %v", err)
	}
	if got := repo.Articles(); len(got) != 0 {
		t.Errorf("expected no articles, got %d", len(got))
	}
}
