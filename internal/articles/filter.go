package articles

import (
	"sort"
	"strings"

	"feedhaven/reader/internal/dates"
	"feedhaven/reader/internal/models"
)

// Filter returns the articles matching every active predicate: feed
// scope, unread, favorites, read-later, and a case-insensitive
// substring search over title and snippet.
func Filter(list []models.Article, f models.ArticleFilters) []models.Article {
	out := make([]models.Article, 0, len(list))
	term := strings.ToLower(f.SearchTerm)
	for _, a := range list {
		if f.FeedID != "" && a.FeedID != f.FeedID {
			continue
		}
		if f.ShowOnlyUnread && a.IsRead {
			continue
		}
		if f.ShowOnlyFavorites && !a.IsFavorite {
			continue
		}
		if f.ShowOnlyReadLater && !a.IsReadLater {
			continue
		}
		if term != "" {
			inTitle := strings.Contains(strings.ToLower(a.Title), term)
			inSnippet := strings.Contains(strings.ToLower(a.ContentSnippet), term)
			if !inTitle && !inSnippet {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// SortByDate orders articles newest first. The normalized isoDate wins
// when both sides carry one; otherwise pubDate is parsed and compared;
// articles without any usable date keep their relative order.
func SortByDate(list []models.Article) []models.Article {
	out := make([]models.Article, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return newerThan(out[i], out[j])
	})
	return out
}

func newerThan(a, b models.Article) bool {
	if a.ISODate != "" && b.ISODate != "" {
		ta, oka := dates.Parse(a.ISODate)
		tb, okb := dates.Parse(b.ISODate)
		if oka && okb {
			return ta.After(tb)
		}
		return false
	}
	if a.PubDate != "" && b.PubDate != "" {
		ta, oka := dates.Parse(a.PubDate)
		tb, okb := dates.Parse(b.PubDate)
		if oka && okb {
			return ta.After(tb)
		}
	}
	return false
}
