package views

import (
	"github.com/eringen/techfeed/feed"
	"github.com/eringen/techfeed/seo"
)

// Composition is what a feed page emits for one state: the page head (nil
// means the default head), the structured-data documents in emission order,
// and the articles to lay out as cards.
type Composition struct {
	Status         feed.Status
	Head           *seo.HeadSet
	StructuredData []string
	Articles       []feed.Article
	Message        string
}

// Compose decides the output of the feed page for st. Loading and Error
// produce no metadata and no structured data; Success produces one head and
// the records of every article in feed order.
func Compose(st feed.State, opts FeedOptions) Composition {
	c := Composition{Status: st.Status()}
	switch st.Status() {
	case feed.StatusError:
		c.Message = st.Message()
	case feed.StatusSuccess:
		head := seo.Head(opts.Meta.Title, opts.Meta.Description, opts.Meta.Keywords, opts.Location)
		c.Head = &head
		c.Articles = st.Articles()
		c.StructuredData = make([]string, 0, len(c.Articles))
		for _, a := range c.Articles {
			c.StructuredData = append(c.StructuredData, opts.Variant.Records(a, opts.Publisher)...)
		}
	}
	return c
}
