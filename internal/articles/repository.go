// Package articles owns the aggregated article collection and the
// user status attached to it.
//
// Ingesting a feed replaces exactly that feed's subset of the
// collection while carrying the status triple forward by article ID.
// Mutations update in-memory state first; persistence is best-effort
// and never fails the mutation.
package articles

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"feedhaven/reader/internal/models"
	"feedhaven/reader/internal/storage"
)

// Repository holds every article across all feeds, plus the transient
// filter state consumed by the query pipeline. Safe for concurrent use.
type Repository struct {
	mu       sync.Mutex
	articles []models.Article
	filters  models.ArticleFilters
	records  *storage.Records
}

// NewRepository creates an empty repository persisting through records.
func NewRepository(records *storage.Records) *Repository {
	return &Repository{records: records}
}

// Load hydrates the collection from the persisted content and status
// records. Articles with no stored status default to the false triple.
func (r *Repository) Load(ctx context.Context) error {
	contents, err := r.records.LoadArticles(ctx)
	if err != nil {
		return err
	}
	statuses, err := r.records.LoadArticleStatus(ctx)
	if err != nil {
		return err
	}

	restored := make([]models.Article, 0, len(contents))
	for _, c := range contents {
		a := models.Article{
			ID:       c.ID,
			FeedID:   c.FeedID,
			Title:    c.Title,
			Link:     c.Link,
			PubDate:  c.PubDate,
			ISODate:  c.ISODate,
			ImageURL: c.ImageURL,
		}
		if s, ok := statuses[c.ID]; ok {
			a.IsRead = s.IsRead
			a.IsFavorite = s.IsFavorite
			a.IsReadLater = s.IsReadLater
		}
		restored = append(restored, a)
	}

	r.mu.Lock()
	r.articles = restored
	r.mu.Unlock()

	log.Debug().Int("articles", len(restored)).Msg("Article repository hydrated")
	return nil
}

// Ingest replaces feedID's articles with the freshly normalized batch.
// Status flags of articles whose ID survives the replacement are
// carried forward unchanged; new IDs start with the false triple.
// Articles of other feeds are never touched.
func (r *Repository) Ingest(ctx context.Context, feedID string, batch []models.Article) {
	r.mu.Lock()

	previous := make(map[string]models.ArticleStatus)
	kept := make([]models.Article, 0, len(r.articles)+len(batch))
	for _, a := range r.articles {
		if a.FeedID == feedID {
			previous[a.ID] = a.StatusRecord()
			continue
		}
		kept = append(kept, a)
	}

	for _, a := range batch {
		a.FeedID = feedID
		if s, ok := previous[a.ID]; ok {
			a.IsRead = s.IsRead
			a.IsFavorite = s.IsFavorite
			a.IsReadLater = s.IsReadLater
		} else {
			a.IsRead = false
			a.IsFavorite = false
			a.IsReadLater = false
		}
		kept = append(kept, a)
	}

	r.articles = kept
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	log.Debug().
		Str("feed_id", feedID).
		Int("ingested", len(batch)).
		Int("total", len(snapshot)).
		Msg("Ingested feed batch")

	// Two independent best-effort writes; a failure in one does not
	// prevent the other.
	r.records.SaveArticlesBestEffort(ctx, snapshot)
	r.records.SaveArticleStatusBestEffort(ctx, snapshot)
}

// MarkAsRead sets isRead on the matching article.
func (r *Repository) MarkAsRead(ctx context.Context, id string) {
	r.mutateStatus(ctx, id, func(a *models.Article) { a.IsRead = true })
}

// MarkAsUnread clears isRead on the matching article.
func (r *Repository) MarkAsUnread(ctx context.Context, id string) {
	r.mutateStatus(ctx, id, func(a *models.Article) { a.IsRead = false })
}

// ToggleFavorite flips isFavorite on the matching article.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) {
	r.mutateStatus(ctx, id, func(a *models.Article) { a.IsFavorite = !a.IsFavorite })
}

// ToggleReadLater flips isReadLater on the matching article.
func (r *Repository) ToggleReadLater(ctx context.Context, id string) {
	r.mutateStatus(ctx, id, func(a *models.Article) { a.IsReadLater = !a.IsReadLater })
}

// mutateStatus applies fn to the article with the given ID and
// persists the status record. An unknown ID is a silent no-op on the
// collection; the persist still runs, mirroring the filter-and-map
// update idiom the merge contract is built on.
func (r *Repository) mutateStatus(ctx context.Context, id string, fn func(*models.Article)) {
	r.mu.Lock()
	for i := range r.articles {
		if r.articles[i].ID == id {
			fn(&r.articles[i])
			break
		}
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.records.SaveArticleStatusBestEffort(ctx, snapshot)
}

// SetFilters shallow-merges the update into the current filter state.
// Filters are session state and never persisted.
func (r *Repository) SetFilters(update models.FilterUpdate) {
	r.mu.Lock()
	update.Apply(&r.filters)
	r.mu.Unlock()
}

// ClearFilters resets the filter state to its defaults.
func (r *Repository) ClearFilters() {
	r.mu.Lock()
	r.filters = models.ArticleFilters{}
	r.mu.Unlock()
}

// Filters returns the current filter state.
func (r *Repository) Filters() models.ArticleFilters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filters
}

// Articles returns a copy of the full collection.
func (r *Repository) Articles() []models.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Article returns the article with the given ID.
func (r *Repository) Article(id string) (models.Article, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

// Query derives the visible article list: the current filters applied
// over the collection, sorted newest first.
func (r *Repository) Query() []models.Article {
	r.mu.Lock()
	snapshot := r.snapshotLocked()
	filters := r.filters
	r.mu.Unlock()

	return SortByDate(Filter(snapshot, filters))
}

// QueryWith ignores the stored filter state and applies the given
// filters instead. Used by the API surface, where filters arrive with
// the request.
func (r *Repository) QueryWith(filters models.ArticleFilters) []models.Article {
	r.mu.Lock()
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	return SortByDate(Filter(snapshot, filters))
}

func (r *Repository) snapshotLocked() []models.Article {
	out := make([]models.Article, len(r.articles))
	copy(out, r.articles)
	return out
}
