package techfeed

import (
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// ArticleURL is the in-page link to an article card on the feed page.
func ArticleURL(base, id string) string {
	return BuildURL(base) + "#article-" + url.PathEscape(id)
}
