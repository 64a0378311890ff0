package techfeed

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/techfeed/feed"
)

// HeaderFeedStatus reports the feed state a response was rendered from.
const HeaderFeedStatus = "X-Feed-Status"

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderFeed writes a view of st. Responses for a feed that has not settled
// are marked no-store.
func RenderFeed(c echo.Context, st feed.State, cmp templ.Component) error {
	h := c.Response().Header()
	h.Set(HeaderFeedStatus, st.Status().String())
	if !st.Terminal() {
		h.Set("Cache-Control", "no-store")
	}
	return Render(c, cmp)
}

// RenderStatus renders cmp into a buffer before writing anything, so a
// failed render leaves the response uncommitted for the error handler.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	_, err := c.Response().Write(buf.Bytes())
	return err
}
