// Package feed retrieves the article collection from the articles API and
// tracks the one-shot Loading -> Success | Error lifecycle of a mounted feed.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ArticleID identifies an article. The API may send it as a JSON number or a
// JSON string; both decode to the same textual form.
type ArticleID string

// UnmarshalJSON accepts numbers and strings.
func (id *ArticleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ArticleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("article id: %w", err)
	}
	*id = ArticleID(n.String())
	return nil
}

// Article is one content item returned by the articles API. Articles are
// immutable once received.
type Article struct {
	ID           ArticleID     `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Content      string        `json:"content" yaml:"content"`
	Author       string        `json:"author" yaml:"author"`
	AuthorRole   string        `json:"authorRole" yaml:"authorRole"`
	Date         string        `json:"date" yaml:"date"`
	ImageURL     string        `json:"imageUrl" yaml:"imageUrl"`
	Tags         []string      `json:"tags" yaml:"tags"`
	References   []Reference   `json:"references" yaml:"references"`
	CodeExamples []CodeExample `json:"codeExamples,omitempty" yaml:"codeExamples,omitempty"`
}

// Reference is a cited external resource.
type Reference struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// CodeExample is a snippet attached to an article.
type CodeExample struct {
	Language string `json:"language" yaml:"language"`
	Code     string `json:"code" yaml:"code"`
}

// Lines splits the content on "\n". Empty content yields a single empty line.
func (a Article) Lines() []string {
	return strings.Split(a.Content, "\n")
}

// Summary returns line 0 of the content.
func (a Article) Summary() string {
	line, _, _ := strings.Cut(a.Content, "\n")
	return line
}

// HasCodeExamples reports whether the code examples section should be shown.
func (a Article) HasCodeExamples() bool {
	return len(a.CodeExamples) > 0
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses the article date using the layouts the API is known to emit.
func (a Article) ParseDate() (time.Time, bool) {
	s := strings.TrimSpace(a.Date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats the publish date as month/day/year. Dates that cannot be
// parsed are shown as received.
func (a Article) DisplayDate() string {
	t, ok := a.ParseDate()
	if !ok {
		return a.Date
	}
	return t.Format("1/2/2006")
}
