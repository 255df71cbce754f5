// Package storage persists the reader's state as three independent
// JSON records: the feed list, the minimal article content list and
// the article status list. Each record is addressed by its own key and
// writes to different keys never block each other.
package storage

import (
	"context"
	"fmt"
)

// Keys for the logical records.
const (
	KeyFeeds         = "reader_feeds"
	KeyArticles      = "reader_articles"
	KeyArticleStatus = "reader_article_status"
)

// Store is the durable key/value backend. A missing key reads as
// (nil, false, nil), not as an error.
type Store interface {
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, keys ...string) error
}

// StorageError wraps a failed read or write against a record key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
