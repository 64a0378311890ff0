package views

import (
	"html"
	"net/url"
	"path"
	"strings"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
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

// SafeURL validates a URL for use in an HTML attribute and returns it escaped,
// or "" when the scheme is not allowed.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return html.EscapeString(val)
	default:
		return ""
	}
}

// AvatarURL returns the avatar image for an article, keyed by its id.
func AvatarURL(base, id string) string {
	if base == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "u=" + url.QueryEscape(id)
}

// CodeLanguageClass returns the class of a code element for lang.
func CodeLanguageClass(lang string) string {
	return "language-" + strings.TrimSpace(lang)
}
