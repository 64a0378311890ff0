package views

import (
	"github.com/eringen/techfeed/seo"
)

// Site holds site-wide settings every page needs.
type Site struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL, no trailing slash
	Description string // SITE_DESCRIPTION
}

// FeedMeta is the fixed page metadata describing the feed itself. It is not
// derived from article content.
type FeedMeta struct {
	Title       string
	Description string
	Keywords    string
}

// FeedOptions carries everything the feed page needs besides the state.
type FeedOptions struct {
	Meta          FeedMeta
	Variant       seo.Variant
	Publisher     seo.Publisher
	AvatarBaseURL string
	Location      seo.CurrentURL
}

// SitemapLink is one entry of the HTML sitemap.
type SitemapLink struct {
	Href  string
	Label string
}
