package seo

import "testing"

func TestHead(t *testing.T) {
	h := Head("Title", "Desc", "a, b", StaticURL("https://example.com/"))
	want := HeadSet{
		Title:         "Title",
		Description:   "Desc",
		Keywords:      "a, b",
		Robots:        "index, follow",
		OGTitle:       "Title",
		OGDescription: "Desc",
		OGType:        "website",
		Canonical:     "https://example.com/",
	}
	if h != want {
		t.Errorf("Head() = %+v, want %+v", h, want)
	}
}

func TestHeadReadsCurrentURLAtCallTime(t *testing.T) {
	current := "https://example.com/a/"
	loc := func() string { return current }
	first := Head("T", "D", "K", loc)
	current = "https://example.com/b/"
	second := Head("T2", "D2", "K2", loc)
	if first.Canonical != "https://example.com/a/" || second.Canonical != "https://example.com/b/" {
		t.Errorf("canonical = %q then %q", first.Canonical, second.Canonical)
	}
	if first.Title != "T" {
		t.Error("a later call must not alter an earlier set")
	}
}

func TestHeadNilLocation(t *testing.T) {
	if got := Head("T", "D", "K", nil).Canonical; got != "" {
		t.Errorf("Canonical = %q, want empty", got)
	}
}

func TestHeadTagsOrder(t *testing.T) {
	tags := Head("T", "D", "K", StaticURL("u")).Tags()
	want := []string{"title", "description", "keywords", "robots", "og:title", "og:description", "og:type", "canonical"}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags, want %d", len(tags), len(want))
	}
	for i, tag := range tags {
		key := tag.Name
		switch {
		case tag.Element == "title":
			key = "title"
		case tag.Property != "":
			key = tag.Property
		case tag.Rel != "":
			key = tag.Rel
		}
		if key != want[i] {
			t.Errorf("tag %d = %q, want %q", i, key, want[i])
		}
	}
}
