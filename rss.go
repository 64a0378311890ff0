package techfeed

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techfeed/feed"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

// renderRSS writes the loaded articles as an RSS channel. While the feed is
// loading or failed the channel has no items.
func (a *App) renderRSS(c echo.Context, articles []feed.Article) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(articles))
	for _, art := range articles {
		pubDate := ""
		if t, ok := art.ParseDate(); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := ArticleURL(base, string(art.ID))
		items = append(items, rssItem{
			Title:       art.Title,
			Link:        link,
			Description: art.Summary(),
			Author:      art.Author,
			Categories:  art.Tags,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	rss := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(rss)
}
