package articlesapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eringen/techfeed/feed"
)

type countingLister struct {
	calls    int
	articles []feed.Article
	err      error
}

func (l *countingLister) List(ctx context.Context) ([]feed.Article, error) {
	l.calls++
	return l.articles, l.err
}

func TestCacheServesWithinTTL(t *testing.T) {
	src := &countingLister{articles: sampleArticles()}
	c := NewArticleCache(src, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.List(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if src.calls != 1 {
		t.Errorf("store read %d times, want 1", src.calls)
	}
	c.Invalidate()
	c.List(ctx)
	if src.calls != 2 {
		t.Errorf("store read %d times after Invalidate, want 2", src.calls)
	}
}

func TestCacheDisabled(t *testing.T) {
	src := &countingLister{articles: sampleArticles()}
	c := NewArticleCache(src, 0)
	c.List(context.Background())
	c.List(context.Background())
	if src.calls != 2 {
		t.Errorf("store read %d times, want 2", src.calls)
	}
}

func TestCacheError(t *testing.T) {
	boom := errors.New("boom")
	c := NewArticleCache(&countingLister{err: boom}, time.Minute)
	if _, err := c.List(context.Background()); !errors.Is(err, boom) {
		t.Errorf("List() error = %v, want boom", err)
	}
}

func TestListTagged(t *testing.T) {
	c := NewArticleCache(&countingLister{articles: sampleArticles()}, time.Minute)
	ctx := context.Background()
	tests := []struct {
		tag  string
		want []feed.ArticleID
	}{
		{"", []feed.ArticleID{"2", "1"}},
		{"GO", []feed.ArticleID{"1"}},
		{" node.js ", []feed.ArticleID{"2"}},
		{"rust", []feed.ArticleID{}},
	}
	for _, tt := range tests {
		got, err := c.ListTagged(ctx, tt.tag)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("ListTagged(%q) = %d articles, want %d", tt.tag, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Errorf("ListTagged(%q)[%d] = %s, want %s", tt.tag, i, got[i].ID, tt.want[i])
			}
		}
	}
}

func TestCacheGet(t *testing.T) {
	c := NewArticleCache(&countingLister{articles: sampleArticles()}, time.Minute)
	if a, err := c.Get(context.Background(), "2"); err != nil || a.Title != "Scaling Node.js" {
		t.Errorf("Get(2) = %+v, %v", a, err)
	}
	if _, err := c.Get(context.Background(), "7"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(7) error = %v, want ErrNotFound", err)
	}
}
