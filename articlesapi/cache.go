package articlesapi

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/eringen/techfeed/feed"
)

// lister is the part of Store the cache reads through.
type lister interface {
	List(ctx context.Context) ([]feed.Article, error)
}

// ArticleCache is an in-memory copy of the stored collection with a TTL.
// It is served to every API request until it expires.
type ArticleCache struct {
	mu       sync.RWMutex
	articles []feed.Article
	fetched  time.Time
	ttl      time.Duration
	store    lister
}

// NewArticleCache creates an ArticleCache backed by store. A ttl of zero or
// less disables caching.
func NewArticleCache(store lister, ttl time.Duration) *ArticleCache {
	return &ArticleCache{store: store, ttl: ttl}
}

func (c *ArticleCache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.mu.Unlock()
}

// List returns the collection in stored order. It tries a read lock first and
// only takes the write lock when a reload is needed.
func (c *ArticleCache) List(ctx context.Context) ([]feed.Article, error) {
	c.mu.RLock()
	if c.valid() {
		articles := c.articles
		c.mu.RUnlock()
		return articles, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.articles, nil
	}
	articles, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.articles = articles
	c.fetched = time.Now()
	return articles, nil
}

// ListTagged returns the articles carrying tag, in stored order. An empty tag
// returns everything.
func (c *ArticleCache) ListTagged(ctx context.Context, tag string) ([]feed.Article, error) {
	articles, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return articles, nil
	}
	normalized := normalizeTag(tag)
	filtered := []feed.Article{}
	for _, a := range articles {
		for _, t := range a.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered, nil
}

// Get returns a single article by id from the cache.
func (c *ArticleCache) Get(ctx context.Context, id string) (feed.Article, error) {
	articles, err := c.List(ctx)
	if err != nil {
		return feed.Article{}, err
	}
	for _, a := range articles {
		if string(a.ID) == id {
			return a, nil
		}
	}
	return feed.Article{}, ErrNotFound
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
