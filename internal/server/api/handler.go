// Package api exposes the presentation-facing query and mutation
// surface over HTTP: the feed list, the filtered article list, and the
// per-feed / per-article commands.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"

	"feedhaven/reader/internal/articles"
	"feedhaven/reader/internal/dates"
	"feedhaven/reader/internal/feeds"
	"feedhaven/reader/internal/models"
	"feedhaven/reader/internal/server/pagination"
)

const defaultLimit = 100
const maxLimit = 1000

// Handler holds dependencies for the API endpoints.
type Handler struct {
	registry *feeds.Registry
	repo     *articles.Repository
}

// NewHandler creates a new handler instance.
func NewHandler(registry *feeds.Registry, repo *articles.Repository) *Handler {
	return &Handler{
		registry: registry,
		repo:     repo,
	}
}

// Article is the API shape of an article: the canonical fields plus a
// display-ready published label.
type Article struct {
	models.Article
	Published string `json:"published"`
}

// ArticlesResponse is the paged article list.
type ArticlesResponse struct {
	Items      []Article `json:"items"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}

// ListFeeds handles GET /v1/feeds.
func (h *Handler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.registry.Feeds())
}

// AddFeed handles POST /v1/feeds.
func (h *Handler) AddFeed(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	var req struct {
		URL   string `json:"url"`
		Title string `json:"title,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "Invalid request body: 'url' is required", http.StatusBadRequest)
		return
	}

	feed, err := h.registry.AddFeed(r.Context(), req.URL, req.Title)
	if err != nil {
		log.Warn().Err(err).Str("url", req.URL).Msg("Add feed failed")
		writeFeedError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, feed)
}

// UpdateFeed handles PATCH /v1/feeds/{id}.
func (h *Handler) UpdateFeed(w http.ResponseWriter, r *http.Request) {
	var update models.FeedUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.registry.UpdateFeed(r.Context(), r.PathValue("id"), update)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFeed handles DELETE /v1/feeds/{id}.
func (h *Handler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	h.registry.DeleteFeed(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// RefreshFeed handles POST /v1/feeds/{id}/refresh.
func (h *Handler) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	id := r.PathValue("id")

	if _, err := h.registry.RefreshFeed(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("feed_id", id).Msg("Feed refresh failed")
		writeFeedError(w, err)
		return
	}
	feed, _ := h.registry.Feed(id)
	writeJSON(w, r, http.StatusOK, feed)
}

// RefreshAll handles POST /v1/refresh. Per-feed failures land on the
// feeds themselves; the aggregate call itself always succeeds.
func (h *Handler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	h.registry.RefreshAllFeeds(r.Context())
	writeJSON(w, r, http.StatusOK, h.registry.Feeds())
}

// ListArticles handles GET /v1/articles with the filter parameters
// search, unread, favorites, readlater and feed, plus limit/cursor
// pagination over the date-sorted result.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	query := r.URL.Query()

	filters := models.ArticleFilters{
		SearchTerm:        query.Get("search"),
		ShowOnlyUnread:    query.Get("unread") == "true",
		ShowOnlyFavorites: query.Get("favorites") == "true",
		ShowOnlyReadLater: query.Get("readlater") == "true",
		FeedID:            query.Get("feed"),
	}

	limit := defaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 || parsedLimit > maxLimit {
			log.Warn().Err(err).Str("limit", limitStr).Msg("Invalid 'limit' parameter value")
			http.Error(w, fmt.Sprintf("Invalid 'limit' parameter: must be between 1 and %d", maxLimit), http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	sorted := h.repo.QueryWith(filters)

	start := 0
	if cursorStr := query.Get("cursor"); cursorStr != "" {
		ts, id, err := pagination.DecodeCursor(cursorStr)
		if err != nil {
			log.Warn().Err(err).Str("cursor", cursorStr).Msg("Invalid 'cursor' parameter")
			http.Error(w, "Invalid 'cursor' parameter", http.StatusBadRequest)
			return
		}
		start = pageStart(sorted, ts, id)
	}

	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	page := sorted[start:end]

	var nextCursor *string
	if end < len(sorted) && len(page) > 0 {
		last := page[len(page)-1]
		cursor := pagination.EncodeCursor(articleTime(last), last.ID)
		nextCursor = &cursor
	}

	items := make([]Article, 0, len(page))
	for _, a := range page {
		items = append(items, Article{
			Article:   a,
			Published: publishedLabel(a),
		})
	}
	writeJSON(w, r, http.StatusOK, ArticlesResponse{Items: items, NextCursor: nextCursor})
}

// MarkRead handles POST /v1/articles/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.repo.MarkAsRead(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// MarkUnread handles POST /v1/articles/{id}/unread.
func (h *Handler) MarkUnread(w http.ResponseWriter, r *http.Request) {
	h.repo.MarkAsUnread(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /v1/articles/{id}/favorite.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.repo.ToggleFavorite(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// ToggleReadLater handles POST /v1/articles/{id}/readlater.
func (h *Handler) ToggleReadLater(w http.ResponseWriter, r *http.Request) {
	h.repo.ToggleReadLater(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// pageStart finds the index just past the cursor position. The cursor
// ID wins when it is still present in the list; otherwise the first
// article strictly older than the cursor timestamp starts the page.
func pageStart(sorted []models.Article, ts time.Time, id string) int {
	for i, a := range sorted {
		if a.ID == id {
			return i + 1
		}
	}
	for i, a := range sorted {
		if t := articleTime(a); !t.IsZero() && t.Before(ts) {
			return i
		}
	}
	return len(sorted)
}

func articleTime(a models.Article) time.Time {
	if a.ISODate != "" {
		if t, ok := dates.Parse(a.ISODate); ok {
			return t
		}
	}
	if t, ok := dates.Parse(a.PubDate); ok {
		return t
	}
	return time.Time{}
}

func publishedLabel(a models.Article) string {
	if a.ISODate != "" {
		return dates.FormatDate(a.ISODate)
	}
	return dates.FormatDate(a.PubDate)
}

func writeFeedError(w http.ResponseWriter, err error) {
	var dup *feeds.DuplicateFeedError
	var notFound *feeds.FeedNotFoundError
	var fetchErr *feeds.FetchError
	switch {
	case errors.As(err, &dup):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &fetchErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	log := hlog.FromRequest(r)

	jsonBytes, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling JSON response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonBytes); err != nil {
		log.Error().Err(err).Msg("Error writing JSON response body to client")
	}
}
