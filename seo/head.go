package seo

// Robots is the robots directive of every feed page.
const Robots = "index, follow"

// CurrentURL reports the address of the page being rendered. It is passed
// in by the caller so Head never consults ambient state.
type CurrentURL func() string

// StaticURL returns a CurrentURL that always reports u.
func StaticURL(u string) CurrentURL {
	return func() string { return u }
}

// HeadSet is the set of head-region tags of a page.
type HeadSet struct {
	Title         string
	Description   string
	Keywords      string
	Robots        string
	OGTitle       string
	OGDescription string
	OGType        string
	Canonical     string
}

// Head builds the head tags for a page. It has no state: every call returns
// a complete set and the page renders whichever set it was last given.
func Head(title, description, keywords string, current CurrentURL) HeadSet {
	canonical := ""
	if current != nil {
		canonical = current()
	}
	return HeadSet{
		Title:         title,
		Description:   description,
		Keywords:      keywords,
		Robots:        Robots,
		OGTitle:       title,
		OGDescription: description,
		OGType:        "website",
		Canonical:     canonical,
	}
}

// Tag is a single head element in render order.
type Tag struct {
	Element  string // "title", "meta" or "link"
	Name     string // meta name
	Property string // meta property
	Rel      string // link rel
	Content  string // title text, meta content or link href
}

// Tags lists the set in document order.
func (h HeadSet) Tags() []Tag {
	return []Tag{
		{Element: "title", Content: h.Title},
		{Element: "meta", Name: "description", Content: h.Description},
		{Element: "meta", Name: "keywords", Content: h.Keywords},
		{Element: "meta", Name: "robots", Content: h.Robots},
		{Element: "meta", Property: "og:title", Content: h.OGTitle},
		{Element: "meta", Property: "og:description", Content: h.OGDescription},
		{Element: "meta", Property: "og:type", Content: h.OGType},
		{Element: "link", Rel: "canonical", Content: h.Canonical},
	}
}
