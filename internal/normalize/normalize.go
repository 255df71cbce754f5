// Package normalize maps raw remote feed items into canonical
// articles: snippet extraction, author and image selection, and date
// canonicalization. Status flags are not set here; the article
// repository attaches them during ingestion.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"feedhaven/reader/internal/ident"
	"feedhaven/reader/internal/models"
)

// DefaultSnippetLength is the rune budget for generated snippets.
const DefaultSnippetLength = 120

var whitespace = regexp.MustCompile(`\s+`)

// Articles converts a batch of remote items into articles owned by
// feedID. Items keep their remote GUID as the article ID when present;
// otherwise a generated ID is assigned, which makes status
// preservation across refreshes possible only for items with stable
// GUIDs.
func Articles(feedID string, items []models.RemoteItem) []models.Article {
	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, One(feedID, item))
	}
	return articles
}

// One converts a single remote item into a canonical article.
func One(feedID string, item models.RemoteItem) models.Article {
	a := models.Article{
		ID:             item.GUID,
		FeedID:         feedID,
		Title:          item.Title,
		PubDate:        item.Published,
		Content:        item.Content,
		ContentSnippet: item.Description,
		Categories:     item.Categories,
		ImageURL:       extractImageURL(item),
	}
	if a.ID == "" {
		a.ID = ident.New()
	}
	if a.Title == "" {
		a.Title = "Untitled"
	}
	if len(item.Links) > 0 {
		a.Link = item.Links[0]
	}
	if item.PublishedParsed != nil {
		a.ISODate = item.PublishedParsed.Format(time.RFC3339)
	}
	if len(item.Authors) > 0 {
		a.Author = item.Authors[0]
	}
	if a.ContentSnippet == "" && a.Content != "" {
		a.ContentSnippet = Snippet(a.Content, DefaultSnippetLength)
	}
	return a
}

// extractImageURL picks an image for the article: the first enclosure
// with an image MIME type wins, else the first <img src> found in the
// content body.
func extractImageURL(item models.RemoteItem) string {
	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if item.Content == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.Content))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}

// Snippet strips HTML tags from content, collapses whitespace and
// truncates to at most length runes, appending "..." when truncated.
func Snippet(htmlContent string, length int) string {
	if htmlContent == "" {
		return ""
	}
	text := htmlContent
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent)); err == nil {
		text = doc.Text()
	}
	clean := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	runes := []rune(clean)
	if len(runes) <= length {
		return clean
	}
	return string(runes[:length]) + "..."
}
