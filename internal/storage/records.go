package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"feedhaven/reader/internal/models"
)

// ErrorHook receives persistence failures from best-effort writes so
// an observability layer can count or surface them. It must not block.
type ErrorHook func(err error)

// Records provides typed JSON round-trips for the three logical
// records on top of a Store.
//
// Writes to the same record are serialized by a per-key mutex so two
// concurrent saves cannot interleave at the storage key; writes to
// different records proceed independently. The last write to a key
// wins.
type Records struct {
	store Store
	hook  ErrorHook

	feedsMu  sync.Mutex
	contentMu sync.Mutex
	statusMu sync.Mutex
}

// NewRecords creates a Records layer over the given store.
func NewRecords(store Store) *Records {
	return &Records{store: store}
}

// SetErrorHook installs a hook invoked with every best-effort write
// failure, in addition to logging.
func (r *Records) SetErrorHook(hook ErrorHook) {
	r.hook = hook
}

// SaveFeeds persists the full feed list.
func (r *Records) SaveFeeds(ctx context.Context, feeds []models.Feed) error {
	r.feedsMu.Lock()
	defer r.feedsMu.Unlock()
	return r.write(ctx, KeyFeeds, feeds)
}

// LoadFeeds returns the persisted feed list, empty when absent.
func (r *Records) LoadFeeds(ctx context.Context) ([]models.Feed, error) {
	var feeds []models.Feed
	if err := r.read(ctx, KeyFeeds, &feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

// SaveArticles persists the minimal content subset of every article.
func (r *Records) SaveArticles(ctx context.Context, articles []models.Article) error {
	contents := make([]models.ArticleContent, 0, len(articles))
	for _, a := range articles {
		contents = append(contents, a.ContentRecord())
	}
	r.contentMu.Lock()
	defer r.contentMu.Unlock()
	return r.write(ctx, KeyArticles, contents)
}

// LoadArticles returns the persisted minimal article list.
func (r *Records) LoadArticles(ctx context.Context) ([]models.ArticleContent, error) {
	var contents []models.ArticleContent
	if err := r.read(ctx, KeyArticles, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// SaveArticleStatus persists the status triple of every article.
func (r *Records) SaveArticleStatus(ctx context.Context, articles []models.Article) error {
	statuses := make([]models.ArticleStatus, 0, len(articles))
	for _, a := range articles {
		statuses = append(statuses, a.StatusRecord())
	}
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	return r.write(ctx, KeyArticleStatus, statuses)
}

// LoadArticleStatus returns the persisted statuses keyed by article ID.
func (r *Records) LoadArticleStatus(ctx context.Context) (map[string]models.ArticleStatus, error) {
	var statuses []models.ArticleStatus
	if err := r.read(ctx, KeyArticleStatus, &statuses); err != nil {
		return nil, err
	}
	byID := make(map[string]models.ArticleStatus, len(statuses))
	for _, s := range statuses {
		byID[s.ID] = s
	}
	return byID, nil
}

// Clear removes all three records.
func (r *Records) Clear(ctx context.Context) error {
	return r.store.Clear(ctx, KeyFeeds, KeyArticles, KeyArticleStatus)
}

// SaveFeedsBestEffort persists the feed list; failures are logged and
// handed to the error hook instead of returned. In-memory state stays
// authoritative for the session.
func (r *Records) SaveFeedsBestEffort(ctx context.Context, feeds []models.Feed) {
	r.bestEffort(r.SaveFeeds(ctx, feeds))
}

// SaveArticlesBestEffort persists article content, best-effort.
func (r *Records) SaveArticlesBestEffort(ctx context.Context, articles []models.Article) {
	r.bestEffort(r.SaveArticles(ctx, articles))
}

// SaveArticleStatusBestEffort persists article status, best-effort.
func (r *Records) SaveArticleStatusBestEffort(ctx context.Context, articles []models.Article) {
	r.bestEffort(r.SaveArticleStatus(ctx, articles))
}

func (r *Records) bestEffort(err error) {
	if err == nil {
		return
	}
	log.Error().Err(err).Msg("Best-effort persistence failed")
	if r.hook != nil {
		r.hook(err)
	}
}

func (r *Records) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "marshal", Key: key, Err: err}
	}
	return r.store.Write(ctx, key, data)
}

func (r *Records) read(ctx context.Context, key string, v any) error {
	data, ok, err := r.store.Read(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &StorageError{Op: "unmarshal", Key: key, Err: err}
	}
	return nil
}
