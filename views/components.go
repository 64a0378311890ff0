package views

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/techfeed/feed"
	"github.com/eringen/techfeed/seo"
)

const (
	// FeedHeading is the visible heading of the feed page.
	FeedHeading = "Latest Web Development Articles"
	// LoadingText is shown while the fetch is in flight.
	LoadingText = "Loading articles..."
)

// component builds the markup into a buffer and writes it in one call.
func component(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// FeedPage renders the full feed document for st.
func FeedPage(site Site, st feed.State, opts FeedOptions) templ.Component {
	comp := Compose(st, opts)
	var docs []string
	if comp.Status == feed.StatusSuccess {
		docs = append(docs, seo.WebSite(site.Name, buildURL(site.URL), site.Description))
		docs = append(docs, comp.StructuredData...)
	}
	return Layout(site, comp.Head, docs, FeedSection(comp, opts))
}

// FeedSection renders the body of the feed for a composition. It is also
// served on its own as the HTMX partial.
func FeedSection(comp Composition, opts FeedOptions) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<section id="feed" data-status="` + comp.Status.String() + `"`)
		if comp.Status == feed.StatusLoading {
			buf.WriteString(` data-poll="/?partial=feed"`)
		}
		buf.WriteString(`>`)
		switch comp.Status {
		case feed.StatusLoading:
			buf.WriteString(`<div class="text-center py-8"><p>` + LoadingText + `</p></div>`)
		case feed.StatusError:
			buf.WriteString(`<div class="text-center py-8 text-red-700" role="alert"><p>Error: ` + esc(comp.Message) + `</p></div>`)
		case feed.StatusSuccess:
			writeFeedGrid(buf, comp.Articles, opts)
		}
		buf.WriteString(`</section>`)
		return nil
	})
}

func writeFeedGrid(buf *bytes.Buffer, articles []feed.Article, opts FeedOptions) {
	buf.WriteString(`<main role="main" itemscope itemtype="https://schema.org/Blog">`)
	buf.WriteString(`<h1 class="text-3xl mb-8 text-center">` + FeedHeading + `</h1>`)
	buf.WriteString(`<div class="grid grid-cols-1 md:grid-cols-3 gap-8">`)
	for _, a := range articles {
		writeArticle(buf, a, opts)
	}
	buf.WriteString(`</div></main>`)
}

func writeArticle(buf *bytes.Buffer, a feed.Article, opts FeedOptions) {
	id := esc(string(a.ID))
	buf.WriteString(`<article id="article-` + id + `" data-article-id="` + id + `" itemscope itemtype="https://schema.org/TechArticle">`)
	buf.WriteString(`<meta itemprop="isAccessibleForFree" content="true"/>`)
	buf.WriteString(`<meta itemprop="isFamilyFriendly" content="true"/>`)

	buf.WriteString(`<div class="card flex flex-col h-full">`)
	if src := SafeURL(a.ImageURL); src != "" {
		buf.WriteString(`<img class="card-media" height="200" src="` + src + `" alt="` + esc(a.Title) + `" itemprop="image" loading="lazy" decoding="async"/>`)
	}
	buf.WriteString(`<div class="card-content grow">`)
	buf.WriteString(`<h2 class="text-2xl font-bold" itemprop="headline">` + esc(a.Title) + `</h2>`)
	buf.WriteString(`<p class="text-sm text-stone-600" itemprop="description">` + esc(a.Summary()) + `</p>`)

	buf.WriteString(`<div class="author flex items-center gap-2" itemprop="author" itemscope itemtype="https://schema.org/Person">`)
	if avatar := SafeURL(AvatarURL(opts.AvatarBaseURL, string(a.ID))); avatar != "" {
		buf.WriteString(`<img class="avatar rounded-full" width="24" height="24" src="` + avatar + `" alt="` + esc(a.Author) + `"/>`)
	}
	buf.WriteString(`<span class="text-xs" itemprop="name">` + esc(a.Author) + `</span>`)
	buf.WriteString(`<span class="text-xs text-stone-500" itemprop="jobTitle">` + esc(a.AuthorRole) + `</span>`)
	buf.WriteString(`</div>`)

	buf.WriteString(`<meta itemprop="datePublished" content="` + esc(a.Date) + `"/>`)
	buf.WriteString(`<p class="byline text-xs mt-4">By ` + esc(a.Author) + ` on <time datetime="` + esc(a.Date) + `">` + esc(a.DisplayDate()) + `</time></p>`)
	buf.WriteString(`</div>`)
	buf.WriteString(`<div class="card-actions"><a class="text-sm" href="#article-body-` + id + `">Read More</a></div>`)
	buf.WriteString(`</div>`)

	buf.WriteString(`<section id="article-body-` + id + `" itemprop="articleBody">`)
	for _, line := range a.Lines() {
		buf.WriteString(`<p class="mb-4" itemprop="text">` + esc(line) + `</p>`)
	}
	buf.WriteString(`</section>`)

	if a.HasCodeExamples() {
		buf.WriteString(`<section class="code-examples"><h3 class="text-xl mb-4">Code Examples</h3>`)
		for _, ex := range a.CodeExamples {
			lang := esc(strings.TrimSpace(ex.Language))
			buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + lang + `">` + lang + `</span>`)
			buf.WriteString(`<pre class="code-block"><code class="` + esc(CodeLanguageClass(ex.Language)) + `">` + esc(ex.Code) + `</code></pre></div>`)
		}
		buf.WriteString(`</section>`)
	}
	buf.WriteString(`</article>`)
}

// Layout is the document shell: head, header, main container and footer.
// A nil head renders the default head (site name only). Only the given
// structured data documents are emitted.
func Layout(site Site, head *seo.HeadSet, structuredData []string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		if head != nil {
			writeHead(buf, *head)
		} else {
			buf.WriteString(`<title>` + esc(site.Name) + `</title>`)
		}
		buf.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
		buf.WriteString(`<script src="/public/feed.js" defer></script>`)
		for _, doc := range structuredData {
			buf.WriteString(`<script type="application/ld+json">` + doc + `</script>`)
		}
		buf.WriteString(`</head><body>`)
		if err := Header(site).Render(ctx, buf); err != nil {
			return err
		}
		buf.WriteString(`<div class="container mx-auto max-w-6xl mt-8 px-4">`)
		if err := body.Render(ctx, buf); err != nil {
			return err
		}
		buf.WriteString(`</div>`)
		buf.WriteString(`<footer class="text-center text-xs py-8"><a href="/sitemap/">Site Map</a> · <a href="/feed.xml">RSS</a></footer>`)
		buf.WriteString(`</body></html>`)
		return nil
	})
}

// Head renders a head tag set.
func Head(h seo.HeadSet) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		writeHead(buf, h)
		return nil
	})
}

func writeHead(buf *bytes.Buffer, h seo.HeadSet) {
	for _, tag := range h.Tags() {
		switch tag.Element {
		case "title":
			buf.WriteString(`<title>` + esc(tag.Content) + `</title>`)
		case "link":
			if href := SafeURL(tag.Content); href != "" {
				buf.WriteString(`<link rel="` + esc(tag.Rel) + `" href="` + href + `"/>`)
			}
		default:
			if tag.Property != "" {
				buf.WriteString(`<meta property="` + esc(tag.Property) + `" content="` + esc(tag.Content) + `"/>`)
			} else {
				buf.WriteString(`<meta name="` + esc(tag.Name) + `" content="` + esc(tag.Content) + `"/>`)
			}
		}
	}
}

// Header is the site navigation bar.
func Header(site Site) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<header class="border-b"><nav class="container mx-auto max-w-6xl flex items-center justify-between px-4 py-3" aria-label="main navigation">`)
		buf.WriteString(`<a class="font-bold" href="/">` + esc(site.Name) + `</a>`)
		buf.WriteString(`<ul class="flex gap-4 text-sm"><li><a href="/">Articles</a></li><li><a href="/sitemap/">Site Map</a></li></ul>`)
		buf.WriteString(`</nav></header>`)
		return nil
	})
}

// DefaultSitemapLinks are the main sections of the site.
var DefaultSitemapLinks = []SitemapLink{
	{Href: "/", Label: "Home Page - Latest Articles"},
	{Href: "/categories", Label: "Article Categories"},
	{Href: "/about", Label: "About Us"},
	{Href: "/contact", Label: "Contact Information"},
}

// SitemapPage renders the static site navigation listing.
func SitemapPage(site Site, links []SitemapLink) templ.Component {
	body := component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<h1 class="text-3xl mb-6">Site Map</h1>`)
		buf.WriteString(`<nav aria-label="site navigation"><h2 class="text-2xl mb-4">Main Sections</h2><ul class="list-none pl-0">`)
		for _, l := range links {
			buf.WriteString(`<li><a class="block mb-2" href="` + SafeURL(l.Href) + `">` + esc(l.Label) + `</a></li>`)
		}
		buf.WriteString(`</ul></nav>`)
		return nil
	})
	return Layout(site, nil, nil, body)
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return Layout(site, nil, nil, message("Page not found", "The page you are looking for does not exist."))
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return Layout(site, nil, nil, message("Something went wrong", "Please try again later."))
}

func message(title, text string) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<div class="text-center py-16"><h1 class="text-3xl mb-4">` + esc(title) + `</h1><p>` + esc(text) + `</p><p class="mt-4"><a href="/">Back to articles</a></p></div>`)
		return nil
	})
}
