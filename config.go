package techfeed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/eringen/techfeed/feed"
	"github.com/eringen/techfeed/seo"
)

// Default feed page metadata. It describes the feed, not any single article.
const (
	DefaultFeedTitle       = "Tech Blog - Latest Articles on Web Development, AI, and Software Architecture"
	DefaultFeedDescription = "Discover in-depth articles on web development, AI integration, software architecture, and more. Expert insights from industry leaders."
	DefaultFeedKeywords    = "web development, AI, software architecture, React, Node.js, microservices, ChatGPT, technical blog"
)

var (
	ErrMissingEndpoint    = errors.New("articles endpoint is required")
	ErrInvalidEndpoint    = errors.New("articles endpoint must be an absolute http(s) URL")
	ErrInvalidVariant     = errors.New("structured_data must be one of tech, scholarly, both")
	ErrInvalidLogLevel    = errors.New("log_level must be one of debug, info, warn, error, off")
	ErrUnsupportedConfig  = errors.New("config file must be .yaml, .yml or .toml")
	ErrUnknownConfigField = errors.New("unknown config field")
)

// SiteConfig holds all configuration for a techfeed site and its articles API.
type SiteConfig struct {
	Name        string // Site name (default "Tech Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr             string // Listen address (default ":3000")
	ArticlesEndpoint string // Upstream article collection (default "http://localhost:6001/api/articles")

	StructuredData string // tech, scholarly or both (default "tech")
	PublisherName  string // TechArticle publisher (default Name)
	PublisherLogo  string // TechArticle publisher logo (default URL + "/public/logo.png")
	AvatarBaseURL  string // Author avatar service (default "https://i.pravatar.cc/150")

	FeedTitle       string
	FeedDescription string
	FeedKeywords    string

	LogLevel string // debug, info, warn, error, off (default "info")

	API APIConfig
}

// APIConfig configures the articles API companion server.
type APIConfig struct {
	Addr      string        // Listen address (default ":6001")
	Database  string        // SQLite path or postgres:// DSN (default "data/articles.db")
	RateLimit int           // Requests per minute per IP (default 120, negative disables)
	CacheTTL  time.Duration // Article list cache TTL (default 30s, negative disables)
}

// Limits returns the rate limit and cache TTL for the articles API server,
// where zero means disabled.
func (c APIConfig) Limits() (rateLimit int, cacheTTL time.Duration) {
	return max(c.RateLimit, 0), max(c.CacheTTL, 0)
}

// parseSwitch reads a numeric setting that also accepts "off".
func parseSwitch[T any](v string, parse func(string) (T, error), off T) (T, error) {
	if strings.EqualFold(strings.TrimSpace(v), "off") {
		return off, nil
	}
	return parse(v)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Tech Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ArticlesEndpoint == "" {
		c.ArticlesEndpoint = "http://localhost:6001/api/articles"
	}
	if c.StructuredData == "" {
		c.StructuredData = string(seo.VariantTech)
	}
	if c.PublisherName == "" {
		c.PublisherName = c.Name
	}
	if c.PublisherLogo == "" {
		c.PublisherLogo = c.URL + "/public/logo.png"
	}
	if c.AvatarBaseURL == "" {
		c.AvatarBaseURL = "https://i.pravatar.cc/150"
	}
	if c.FeedTitle == "" {
		c.FeedTitle = DefaultFeedTitle
	}
	if c.FeedDescription == "" {
		c.FeedDescription = DefaultFeedDescription
	}
	if c.FeedKeywords == "" {
		c.FeedKeywords = DefaultFeedKeywords
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":6001"
	}
	if c.API.Database == "" {
		c.API.Database = "data/articles.db"
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = 120
	}
	if c.API.CacheTTL == 0 {
		c.API.CacheTTL = 30 * time.Second
	}
}

// Validate reports the first invalid setting.
func (c SiteConfig) Validate() error {
	if strings.TrimSpace(c.ArticlesEndpoint) == "" {
		return ErrMissingEndpoint
	}
	u, err := url.Parse(c.ArticlesEndpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.ArticlesEndpoint)
	}
	if !seo.Variant(c.StructuredData).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVariant, c.StructuredData)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name onto the echo logger levels.
func ParseLogLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
}

// fileConfig is the on-disk shape shared by the YAML and TOML loaders.
type fileConfig struct {
	Name             string  `yaml:"name" toml:"name"`
	URL              string  `yaml:"url" toml:"url"`
	Description      string  `yaml:"description" toml:"description"`
	Addr             string  `yaml:"addr" toml:"addr"`
	ArticlesEndpoint string  `yaml:"articles_endpoint" toml:"articles_endpoint"`
	StructuredData   string  `yaml:"structured_data" toml:"structured_data"`
	PublisherName    string  `yaml:"publisher_name" toml:"publisher_name"`
	PublisherLogo    string  `yaml:"publisher_logo" toml:"publisher_logo"`
	AvatarBaseURL    string  `yaml:"avatar_base_url" toml:"avatar_base_url"`
	FeedTitle        string  `yaml:"feed_title" toml:"feed_title"`
	FeedDescription  string  `yaml:"feed_description" toml:"feed_description"`
	FeedKeywords     string  `yaml:"feed_keywords" toml:"feed_keywords"`
	LogLevel         string  `yaml:"log_level" toml:"log_level"`
	API              fileAPI `yaml:"api" toml:"api"`
}

type fileAPI struct {
	Addr      string `yaml:"addr" toml:"addr"`
	Database  string `yaml:"database" toml:"database"`
	RateLimit int    `yaml:"rate_limit" toml:"rate_limit"`
	CacheTTL  string `yaml:"cache_ttl" toml:"cache_ttl"`
}

// LoadConfig reads an optional config file, applies environment overrides and
// defaults, and validates the result. An empty path skips the file.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		fc, err := LoadConfigFile(path)
		if err != nil {
			return SiteConfig{}, err
		}
		cfg = fc
	}
	if err := applyEnv(&cfg); err != nil {
		return SiteConfig{}, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("techfeed: invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile decodes a YAML or TOML config file, chosen by extension.
// Unknown keys are rejected.
func LoadConfigFile(path string) (SiteConfig, error) {
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("techfeed: read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return SiteConfig{}, fmt.Errorf("techfeed: parse %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.DecodeFile(path, &fc)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("techfeed: parse %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return SiteConfig{}, fmt.Errorf("techfeed: parse %s: %w: %s", path, ErrUnknownConfigField, undecoded[0])
		}
	default:
		return SiteConfig{}, fmt.Errorf("techfeed: %w: %s", ErrUnsupportedConfig, path)
	}
	return fc.siteConfig()
}

func (fc fileConfig) siteConfig() (SiteConfig, error) {
	cfg := SiteConfig{
		Name:             fc.Name,
		URL:              fc.URL,
		Description:      fc.Description,
		Addr:             fc.Addr,
		ArticlesEndpoint: fc.ArticlesEndpoint,
		StructuredData:   fc.StructuredData,
		PublisherName:    fc.PublisherName,
		PublisherLogo:    fc.PublisherLogo,
		AvatarBaseURL:    fc.AvatarBaseURL,
		FeedTitle:        fc.FeedTitle,
		FeedDescription:  fc.FeedDescription,
		FeedKeywords:     fc.FeedKeywords,
		LogLevel:         fc.LogLevel,
		API: APIConfig{
			Addr:      fc.API.Addr,
			Database:  fc.API.Database,
			RateLimit: fc.API.RateLimit,
		},
	}
	if fc.API.CacheTTL != "" {
		d, err := parseSwitch(fc.API.CacheTTL, time.ParseDuration, -1)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("techfeed: api.cache_ttl: %w", err)
		}
		cfg.API.CacheTTL = d
	}
	return cfg, nil
}

// applyEnv overrides cfg with any set environment variables.
func applyEnv(cfg *SiteConfig) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"SITE_NAME", &cfg.Name},
		{"SITE_URL", &cfg.URL},
		{"SITE_DESCRIPTION", &cfg.Description},
		{"ADDR", &cfg.Addr},
		{"ARTICLES_ENDPOINT", &cfg.ArticlesEndpoint},
		{"STRUCTURED_DATA", &cfg.StructuredData},
		{"PUBLISHER_NAME", &cfg.PublisherName},
		{"PUBLISHER_LOGO", &cfg.PublisherLogo},
		{"AVATAR_BASE_URL", &cfg.AvatarBaseURL},
		{"LOG_LEVEL", &cfg.LogLevel},
		{"API_ADDR", &cfg.API.Addr},
		{"DATABASE_URL", &cfg.API.Database},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		n, err := parseSwitch(v, strconv.Atoi, -1)
		if err != nil {
			return fmt.Errorf("techfeed: API_RATE_LIMIT: %w", err)
		}
		cfg.API.RateLimit = n
	}
	if v := os.Getenv("API_CACHE_TTL"); v != "" {
		d, err := parseSwitch(v, time.ParseDuration, -1)
		if err != nil {
			return fmt.Errorf("techfeed: API_CACHE_TTL: %w", err)
		}
		cfg.API.CacheTTL = d
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithFetcher replaces the HTTP fetcher built from ArticlesEndpoint.
func WithFetcher(f feed.Fetcher) Option {
	return func(a *App) {
		a.fetcher = f
	}
}
