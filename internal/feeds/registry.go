// Package feeds owns the set of subscribed feeds and drives the
// fetch-refresh-ingest cycle, per feed and in aggregate.
package feeds

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"feedhaven/reader/internal/fetch"
	"feedhaven/reader/internal/ident"
	"feedhaven/reader/internal/models"
	"feedhaven/reader/internal/normalize"
	"feedhaven/reader/internal/storage"
)

// Ingestor receives the normalized article batch produced by a feed
// refresh. Satisfied by the article repository.
type Ingestor interface {
	Ingest(ctx context.Context, feedID string, batch []models.Article)
}

// Registry owns the subscribed feeds. URL uniqueness is enforced on
// add; per-feed loading and error state is tracked on the feeds
// themselves. Safe for concurrent use, though overlapping refreshes of
// the same feed ID are not serialized: IsLoading is advisory, and a
// superseded refresh simply applies whenever it resolves.
type Registry struct {
	mu      sync.Mutex
	feeds   []models.Feed
	loading bool

	fetcher  fetch.Fetcher
	articles Ingestor
	records  *storage.Records
}

// NewRegistry creates an empty registry.
func NewRegistry(fetcher fetch.Fetcher, articles Ingestor, records *storage.Records) *Registry {
	return &Registry{
		fetcher:  fetcher,
		articles: articles,
		records:  records,
	}
}

// Load hydrates the feed list from the persisted record.
func (r *Registry) Load(ctx context.Context) error {
	feeds, err := r.records.LoadFeeds(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.feeds = feeds
	r.mu.Unlock()

	log.Debug().Int("feeds", len(feeds)).Msg("Feed registry hydrated")
	return nil
}

// Feeds returns a copy of the subscribed feed list.
func (r *Registry) Feeds() []models.Feed {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Feed, len(r.feeds))
	copy(out, r.feeds)
	return out
}

// Feed returns the feed with the given ID.
func (r *Registry) Feed(id string) (models.Feed, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.feeds {
		if f.ID == id {
			return f, true
		}
	}
	return models.Feed{}, false
}

// Loading reports whether an aggregate refresh is in flight.
func (r *Registry) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// AddFeed subscribes to a new feed URL. The URL must not match any
// existing feed exactly; the initial fetch must succeed or the feed is
// not added. The feed list write is surfaced synchronously here, unlike
// the best-effort persistence of later mutations.
func (r *Registry) AddFeed(ctx context.Context, url, title string) (models.Feed, error) {
	r.mu.Lock()
	if r.hasURLLocked(url) {
		r.mu.Unlock()
		return models.Feed{}, &DuplicateFeedError{URL: url}
	}
	r.mu.Unlock()

	remote, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return models.Feed{}, &FetchError{URL: url, Err: err}
	}

	feed := models.Feed{
		ID:          ident.New(),
		Title:       title,
		URL:         url,
		Description: remote.Description,
		LastUpdated: time.Now().Format(time.RFC3339),
	}
	if feed.Title == "" {
		feed.Title = remote.Title
	}
	if feed.Title == "" {
		feed.Title = "Untitled Feed"
	}

	r.mu.Lock()
	// The fetch ran unlocked; a concurrent add may have won the race.
	if r.hasURLLocked(url) {
		r.mu.Unlock()
		return models.Feed{}, &DuplicateFeedError{URL: url}
	}
	r.feeds = append(r.feeds, feed)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	log.Info().Str("feed_id", feed.ID).Str("url", url).Str("title", feed.Title).Msg("Feed added")

	if err := r.records.SaveFeeds(ctx, snapshot); err != nil {
		return feed, err
	}

	if len(remote.Items) > 0 {
		r.articles.Ingest(ctx, feed.ID, normalize.Articles(feed.ID, remote.Items))
	}
	return feed, nil
}

// UpdateFeed merges the set fields of the update into the feed with
// the given ID. Unknown IDs are a silent no-op.
func (r *Registry) UpdateFeed(ctx context.Context, id string, update models.FeedUpdate) {
	r.mu.Lock()
	for i := range r.feeds {
		if r.feeds[i].ID == id {
			update.Apply(&r.feeds[i])
			break
		}
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.records.SaveFeedsBestEffort(ctx, snapshot)
}

// DeleteFeed removes the feed with the given ID from the registry.
// The article repository is deliberately left alone: the deleted
// feed's articles stay addressable by ID but drop out of feed-scoped
// queries.
func (r *Registry) DeleteFeed(ctx context.Context, id string) {
	r.mu.Lock()
	kept := r.feeds[:0]
	for _, f := range r.feeds {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	r.feeds = kept
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	log.Info().Str("feed_id", id).Msg("Feed deleted")
	r.records.SaveFeedsBestEffort(ctx, snapshot)
}

// RefreshFeed re-fetches one feed and re-ingests its articles. The
// feed's loading flag is raised and its error message cleared before
// the fetch; on failure the error message is set and the failure
// returned, on success remote metadata wins only where non-empty.
func (r *Registry) RefreshFeed(ctx context.Context, id string) (*models.RemoteFeed, error) {
	r.mu.Lock()
	var url string
	found := false
	for i := range r.feeds {
		if r.feeds[i].ID == id {
			url = r.feeds[i].URL
			r.feeds[i].IsLoading = true
			r.feeds[i].ErrorMessage = ""
			found = true
			break
		}
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if !found {
		return nil, &FeedNotFoundError{ID: id}
	}
	r.records.SaveFeedsBestEffort(ctx, snapshot)

	log.Debug().Str("feed_id", id).Str("url", url).Msg("Refreshing feed")

	remote, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		r.UpdateFeed(ctx, id, models.FeedUpdate{
			IsLoading:    models.Bool(false),
			ErrorMessage: models.String(err.Error()),
		})
		log.Warn().Str("feed_id", id).Str("url", url).Err(err).Msg("Feed refresh failed")
		return nil, &FetchError{URL: url, Err: err}
	}

	if len(remote.Items) > 0 {
		r.articles.Ingest(ctx, id, normalize.Articles(id, remote.Items))
	}

	update := models.FeedUpdate{
		LastUpdated:  models.String(time.Now().Format(time.RFC3339)),
		IsLoading:    models.Bool(false),
		ErrorMessage: models.String(""),
	}
	if remote.Title != "" {
		update.Title = models.String(remote.Title)
	}
	if remote.Description != "" {
		update.Description = models.String(remote.Description)
	}
	r.UpdateFeed(ctx, id, update)

	log.Info().Str("feed_id", id).Int("items", len(remote.Items)).Msg("Feed refreshed")
	return remote, nil
}

// RefreshAllFeeds refreshes every subscribed feed concurrently.
// Failures stay on the feed that failed; one bad feed never aborts the
// others. The aggregate loading flag clears once every refresh has
// resolved.
func (r *Registry) RefreshAllFeeds(ctx context.Context) {
	r.mu.Lock()
	r.loading = true
	ids := make([]string, 0, len(r.feeds))
	for i := range r.feeds {
		r.feeds[i].IsLoading = true
		ids = append(ids, r.feeds[i].ID)
	}
	r.mu.Unlock()

	log.Info().Int("feeds", len(ids)).Msg("Refreshing all feeds")

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			// RefreshFeed records the failure on the feed itself.
			_, _ = r.RefreshFeed(ctx, id)
		}(id)
	}
	wg.Wait()

	r.mu.Lock()
	r.loading = false
	r.mu.Unlock()
}

func (r *Registry) hasURLLocked(url string) bool {
	for _, f := range r.feeds {
		if f.URL == url {
			return true
		}
	}
	return false
}

func (r *Registry) snapshotLocked() []models.Feed {
	out := make([]models.Feed, len(r.feeds))
	copy(out, r.feeds)
	return out
}
