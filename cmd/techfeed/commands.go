package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/eringen/techfeed"
	"github.com/eringen/techfeed/articlesapi"
	"github.com/eringen/techfeed/feed"
	"github.com/eringen/techfeed/preview"
)

const shutdownTimeout = 10 * time.Second

// loadConfig parses the shared -config flag and returns the remaining args.
func loadConfig(name string, args []string) (techfeed.SiteConfig, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", techfeed.EnvOr("TECHFEED_CONFIG", ""), "path to a .yaml or .toml config file")
	if err := fs.Parse(args); err != nil {
		return techfeed.SiteConfig{}, nil, err
	}
	cfg, err := techfeed.LoadConfig(*path)
	if err != nil {
		return techfeed.SiteConfig{}, nil, err
	}
	return cfg, fs.Args(), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runServe(args []string) error {
	cfg, _, err := loadConfig("serve", args)
	if err != nil {
		return err
	}
	app := techfeed.New(cfg)
	ctx, stop := signalContext()
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		app.Close()
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

func runAPI(args []string) error {
	cfg, _, err := loadConfig("api", args)
	if err != nil {
		return err
	}
	store, err := articlesapi.Open(cfg.API.Database)
	if err != nil {
		return fmt.Errorf("techfeed: open store: %w", err)
	}
	defer store.Close()

	rateLimit, cacheTTL := cfg.API.Limits()
	srv := articlesapi.NewServer(store, articlesapi.Config{
		Addr:      cfg.API.Addr,
		RateLimit: rateLimit,
		CacheTTL:  cacheTTL,
	})
	if lvl, err := techfeed.ParseLogLevel(cfg.LogLevel); err == nil {
		srv.Echo.Logger.SetLevel(lvl)
	}
	ctx, stop := signalContext()
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSeed(args []string) error {
	cfg, rest, err := loadConfig("seed", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("usage: techfeed seed [-config file] <articles.json|articles.yaml>")
	}
	articles, err := articlesapi.LoadSeedFile(rest[0])
	if err != nil {
		return err
	}
	store, err := articlesapi.Open(cfg.API.Database)
	if err != nil {
		return fmt.Errorf("techfeed: open store: %w", err)
	}
	defer store.Close()

	ctx, stop := signalContext()
	defer stop()
	if err := store.ReplaceAll(ctx, articles); err != nil {
		return fmt.Errorf("techfeed: seed: %w", err)
	}
	fmt.Printf("Seeded %d articles into %s\n", len(articles), store.Driver())
	return nil
}

func runPreview(args []string) error {
	cfg, _, err := loadConfig("preview", args)
	if err != nil {
		return err
	}
	// The terminal belongs to the preview, so fetch diagnostics are muted.
	logger := log.New("preview")
	logger.SetLevel(log.OFF)
	f := feed.New(
		feed.NewHTTPFetcher(cfg.ArticlesEndpoint, feed.WithFetcherLogger(logger)),
		feed.WithLogger(logger),
	)
	ctx, stop := signalContext()
	defer stop()
	return preview.Run(ctx, f)
}
