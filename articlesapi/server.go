package articlesapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/techfeed/httplog"
)

// Config configures the API server.
type Config struct {
	Addr         string
	RateLimit    int           // requests per minute per IP; 0 disables limiting
	CacheTTL     time.Duration // 0 disables caching
	AllowOrigins []string      // CORS origins (default "*")
}

// Server serves the stored article collection over HTTP.
type Server struct {
	Echo *echo.Echo

	cfg     Config
	store   *Store
	cache   *ArticleCache
	limiter *RateLimiter
}

// NewServer creates a Server over store with routes and middleware installed.
func NewServer(store *Store, cfg Config) *Server {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		Echo:  e,
		cfg:   cfg,
		store: store,
		cache: NewArticleCache(store, cfg.CacheTTL),
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, time.Minute)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	e := s.Echo
	httplog.Install(e)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
}

func (s *Server) setupRoutes() {
	api := s.Echo.Group("/api")
	if s.limiter != nil {
		api.Use(s.limiter.Middleware())
	}
	api.GET("/articles", s.handleList)
	api.GET("/articles/:id", s.handleGet)
	s.Echo.GET("/healthz", s.handleHealth)
}

func (s *Server) handleList(c echo.Context) error {
	articles, err := s.cache.ListTagged(c.Request().Context(), c.QueryParam("tag"))
	if err != nil {
		c.Logger().Errorf("list articles: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load articles")
	}
	return c.JSON(http.StatusOK, articles)
}

func (s *Server) handleGet(c echo.Context) error {
	a, err := s.cache.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if err != nil {
		c.Logger().Errorf("get article: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load article")
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) handleHealth(c echo.Context) error {
	n, err := s.store.Count(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"status": "error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "driver": s.store.Driver(), "articles": n})
}

// Invalidate drops the cached collection.
func (s *Server) Invalidate() {
	s.cache.Invalidate()
}

// Start listens on cfg.Addr until the server is shut down.
func (s *Server) Start() error {
	if err := s.Echo.Start(s.cfg.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.Echo.Shutdown(ctx)
}
