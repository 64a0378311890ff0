// Package seo builds the search-engine metadata of the feed: schema.org
// JSON-LD records for articles and the page-level head tags.
package seo

import (
	"encoding/json"
	"strings"

	"github.com/eringen/techfeed/feed"
)

const schemaContext = "https://schema.org"

// DescriptionLimit is the number of characters of content kept in a
// TechArticle description.
const DescriptionLimit = 200

// Fixed values of the ScholarlyArticle record.
const (
	AboutName        = "Artificial Intelligence"
	AboutDescription = "Research and applications of AI and machine learning"
	EducationalLevel = "Advanced"
	Genre            = "Technical Documentation"
)

// Publisher identifies the organization publishing the feed.
type Publisher struct {
	Name    string
	LogoURL string
}

type Person struct {
	Type     string `json:"@type"`
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type Organization struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo ImageObject `json:"logo"`
}

type Thing struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreativeWork struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TechArticleRecord is the standard per-article record.
type TechArticleRecord struct {
	Context       string       `json:"@context"`
	Type          string       `json:"@type"`
	Headline      string       `json:"headline"`
	DatePublished string       `json:"datePublished"`
	Author        Person       `json:"author"`
	Description   string       `json:"description"`
	Keywords      string       `json:"keywords"`
	Image         string       `json:"image"`
	Publisher     Organization `json:"publisher"`
}

// ScholarlyArticleRecord is the extended record for the research framing of
// the same article.
type ScholarlyArticleRecord struct {
	Context          string         `json:"@context"`
	Type             string         `json:"@type"`
	Headline         string         `json:"headline"`
	Author           Person         `json:"author"`
	Description      string         `json:"description"`
	Keywords         string         `json:"keywords"`
	About            Thing          `json:"about"`
	EducationalLevel string         `json:"educationalLevel"`
	Genre            string         `json:"genre"`
	Abstract         string         `json:"abstract"`
	Citation         []CreativeWork `json:"citation"`
}

// TechArticle builds the standard record for a.
func TechArticle(a feed.Article, pub Publisher) TechArticleRecord {
	return TechArticleRecord{
		Context:       schemaContext,
		Type:          "TechArticle",
		Headline:      a.Title,
		DatePublished: a.Date,
		Author:        author(a),
		Description:   Truncate(a.Content, DescriptionLimit),
		Keywords:      JoinTags(a.Tags),
		Image:         a.ImageURL,
		Publisher: Organization{
			Type: "Organization",
			Name: pub.Name,
			Logo: ImageObject{Type: "ImageObject", URL: pub.LogoURL},
		},
	}
}

// ScholarlyArticle builds the extended record for a.
func ScholarlyArticle(a feed.Article) ScholarlyArticleRecord {
	citations := make([]CreativeWork, 0, len(a.References))
	for _, ref := range a.References {
		citations = append(citations, CreativeWork{Type: "CreativeWork", Name: ref.Title, URL: ref.URL})
	}
	return ScholarlyArticleRecord{
		Context:     schemaContext,
		Type:        "ScholarlyArticle",
		Headline:    a.Title,
		Author:      author(a),
		Description: a.Content,
		Keywords:    JoinTags(a.Tags),
		About: Thing{
			Type:        "Thing",
			Name:        AboutName,
			Description: AboutDescription,
		},
		EducationalLevel: EducationalLevel,
		Genre:            Genre,
		Abstract:         a.Summary(),
		Citation:         citations,
	}
}

func author(a feed.Article) Person {
	return Person{Type: "Person", Name: a.Author, JobTitle: a.AuthorRole}
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Truncate returns the first n characters of s, or s when it is shorter.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// JsonLD marshals a record for embedding in a script tag. The encoder
// escapes <, > and & so the output cannot close the surrounding element.
func JsonLD(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Variant selects which records the feed emits per article.
type Variant string

const (
	VariantTech      Variant = "tech"
	VariantScholarly Variant = "scholarly"
	VariantBoth      Variant = "both"
)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantTech, VariantScholarly, VariantBoth:
		return true
	}
	return false
}

// Records returns the JSON-LD documents for a in emission order.
func (v Variant) Records(a feed.Article, pub Publisher) []string {
	switch v {
	case VariantScholarly:
		return []string{JsonLD(ScholarlyArticle(a))}
	case VariantBoth:
		return []string{JsonLD(TechArticle(a, pub)), JsonLD(ScholarlyArticle(a))}
	default:
		return []string{JsonLD(TechArticle(a, pub))}
	}
}

// WebSite builds the site-wide WebSite record.
func WebSite(name, url, description string) string {
	data := map[string]interface{}{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
		"url":      url,
	}
	if description != "" {
		data["description"] = description
	}
	return JsonLD(data)
}
