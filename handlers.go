package techfeed

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techfeed/views"
)

func (a *App) handleHome(c echo.Context) error {
	st := a.Feed.State()
	opts := a.feedOptions(c)
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "feed" {
		return RenderFeed(c, st, views.FeedSection(views.Compose(st, opts), opts))
	}
	return RenderFeed(c, st, views.FeedPage(a.site(), st, opts))
}

func (a *App) handleSitemapPage(c echo.Context) error {
	return Render(c, views.SitemapPage(a.site(), views.DefaultSitemapLinks))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, views.DefaultSitemapLinks)
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Feed.State().Articles())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

type healthResponse struct {
	Status   string `json:"status"`
	Articles int    `json:"articles"`
	Error    string `json:"error,omitempty"`
}

func (a *App) handleHealth(c echo.Context) error {
	st := a.Feed.State()
	return c.JSON(http.StatusOK, healthResponse{
		Status:   st.Status().String(),
		Articles: len(st.Articles()),
		Error:    st.Message(),
	})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
