// Package techfeed serves a technical-article feed page built with Go, Echo,
// and templ. The page fetches the article collection once, renders it as
// cards, and emits page metadata plus schema.org JSON-LD for every article.
//
// The companion articles API, the terminal preview, and the CLI live in
// sub-packages.
package techfeed

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techfeed/feed"
	"github.com/eringen/techfeed/seo"
	"github.com/eringen/techfeed/views"
)

// App is the central techfeed application. It wires together the feed,
// handlers, middleware, and view components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Feed   *feed.Feed

	fetcher      feed.Fetcher
	customRoutes []func(*App)
	staticDir    string
	setupOnce    sync.Once
}

// New creates a techfeed App. The feed is created but not mounted; Start
// mounts it.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	if lvl, err := ParseLogLevel(cfg.LogLevel); err == nil {
		e.Logger.SetLevel(lvl)
	}

	a := &App{
		Config:    cfg,
		Echo:      e,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.fetcher == nil {
		a.fetcher = feed.NewHTTPFetcher(cfg.ArticlesEndpoint, feed.WithFetcherLogger(e.Logger))
	}
	a.Feed = feed.New(a.fetcher, feed.WithLogger(e.Logger))
	return a
}

// Setup installs middleware and routes. It is called by Start and is safe to
// call more than once.
func (a *App) Setup() {
	a.setupOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
}

// Start validates the config, mounts the feed, and starts the server.
func (a *App) Start() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("techfeed: invalid config: %w", err)
	}

	a.Feed.Mount(context.Background())
	a.Setup()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and unmounts the feed.
func (a *App) Shutdown(ctx context.Context) error {
	a.Feed.Unmount()
	return a.Echo.Shutdown(ctx)
}

// Close unmounts the feed. Call this when the app is shutting down.
func (a *App) Close() error {
	a.Feed.Unmount()
	return nil
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

// feedOptions builds the page options for a request. The canonical URL is
// read from the request when the head is composed.
func (a *App) feedOptions(c echo.Context) views.FeedOptions {
	return views.FeedOptions{
		Meta: views.FeedMeta{
			Title:       a.Config.FeedTitle,
			Description: a.Config.FeedDescription,
			Keywords:    a.Config.FeedKeywords,
		},
		Variant: seo.Variant(a.Config.StructuredData),
		Publisher: seo.Publisher{
			Name:    a.Config.PublisherName,
			LogoURL: a.Config.PublisherLogo,
		},
		AvatarBaseURL: a.Config.AvatarBaseURL,
		Location: func() string {
			return a.Config.URL + c.Request().URL.Path
		},
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("techfeed: required environment variable %s is not set", key)
	}
	return v
}
