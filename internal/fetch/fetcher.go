// Package fetch retrieves and parses remote RSS/Atom feeds.
package fetch

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"feedhaven/reader/internal/models"
)

// DefaultTimeout bounds a single fetch-and-parse round trip.
const DefaultTimeout = 15 * time.Second

// Fetcher retrieves a remote feed by URL. Implementations are black
// boxes to the rest of the core; error messages are passed through to
// the caller verbatim.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.RemoteFeed, error)
}

// HTTPFetcher fetches RSS/Atom feeds over HTTP using gofeed.
type HTTPFetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout;
// non-positive values fall back to DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// Fetch retrieves and parses the feed at url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*models.RemoteFeed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	remote := &models.RemoteFeed{
		Title:       parsed.Title,
		Description: parsed.Description,
		Items:       make([]models.RemoteItem, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		remote.Items = append(remote.Items, convertItem(item))
	}
	return remote, nil
}

// convertItem flattens a gofeed item into the boundary shape the
// normalizer consumes.
func convertItem(item *gofeed.Item) models.RemoteItem {
	out := models.RemoteItem{
		GUID:            item.GUID,
		Title:           item.Title,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
		Content:         item.Content,
		Description:     item.Description,
		Categories:      item.Categories,
	}
	if item.Link != "" {
		out.Links = append(out.Links, item.Link)
	}
	for _, link := range item.Links {
		if link != item.Link {
			out.Links = append(out.Links, link)
		}
	}
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			out.Authors = append(out.Authors, author.Name)
		}
	}
	if len(out.Authors) == 0 && item.Author != nil && item.Author.Name != "" {
		out.Authors = append(out.Authors, item.Author.Name)
	}
	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		out.Enclosures = append(out.Enclosures, models.Enclosure{URL: enc.URL, Type: enc.Type})
	}
	return out
}
