package techfeed

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework assets are served under /public/ ahead of the
	// user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/feed.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/", a.handleHome)
	e.GET("/sitemap/", a.handleSitemapPage)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)
}
