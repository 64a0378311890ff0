package techfeed

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techfeed/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// routedPaths collects the paths served by GET routes, including any
// registered through WithCustomRoutes.
func (a *App) routedPaths() map[string]bool {
	paths := make(map[string]bool)
	for _, r := range a.Echo.Routes() {
		if r.Method == http.MethodGet {
			paths[r.Path] = true
		}
	}
	return paths
}

// renderSitemap lists the home page, the sitemap page and every link that
// resolves to a GET route. Links without a route stay off the XML sitemap.
func (a *App) renderSitemap(c echo.Context, links []views.SitemapLink) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "sitemap")},
	}
	routed := a.routedPaths()
	for _, l := range links {
		p := strings.Trim(l.Href, "/")
		if p == "" || p == "sitemap" {
			continue
		}
		if !routed["/"+p+"/"] && !routed["/"+p] {
			continue
		}
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p)})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
