package preview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/eringen/techfeed/feed"
)

func testArticles() []feed.Article {
	return []feed.Article{
		{ID: "2", Title: "Second Post", Content: "Second summary\nmore", Author: "Bo", Date: "2024-02-01", Tags: []string{"go"}},
		{ID: "1", Title: "First Post", Content: "First summary", Author: "Al", AuthorRole: "Editor", Date: "2024-01-15",
			CodeExamples: []feed.CodeExample{{Language: "go", Code: "x"}}},
	}
}

func newModel(fetch feed.FetcherFunc) (Model, *feed.Feed) {
	f := feed.New(fetch)
	return New(f), f
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestLoadingView(t *testing.T) {
	m, _ := newModel(func(ctx context.Context) ([]feed.Article, error) { return nil, nil })
	view := m.View()
	if !strings.Contains(view, "Loading articles...") {
		t.Errorf("loading view = %q", view)
	}
}

func TestSuccessViewKeepsOrder(t *testing.T) {
	m, _ := newModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m, _ = update(t, m, feedSettledMsg{state: feed.Succeeded(testArticles())})

	view := m.View()
	i2 := strings.Index(view, "Second Post")
	i1 := strings.Index(view, "First Post")
	if i2 < 0 || i1 < 0 || i2 > i1 {
		t.Errorf("card order wrong: second at %d, first at %d\n%s", i2, i1, view)
	}
	if !strings.Contains(view, "By Al (Editor) on 1/15/2024") {
		t.Errorf("byline missing:\n%s", view)
	}
	if !strings.Contains(view, "1 code examples") {
		t.Errorf("code example count missing:\n%s", view)
	}
	if strings.Contains(view, "Loading") {
		t.Errorf("success view still shows loading")
	}
}

func TestErrorView(t *testing.T) {
	m, _ := newModel(nil)
	m, _ = update(t, m, feedSettledMsg{state: feed.Failed("Request failed with status code 500")})
	view := m.View()
	if !strings.Contains(view, "Error: Request failed with status code 500") {
		t.Errorf("error view = %q", view)
	}
}

func TestDiscardedResultIgnored(t *testing.T) {
	m, _ := newModel(nil)
	m, _ = update(t, m, feedSettledMsg{state: feed.Loading()})
	if !m.state.IsLoading() {
		t.Errorf("state = %v, want loading", m.state.Status())
	}
}

func TestQuitUnmounts(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		m, f := newModel(func(ctx context.Context) ([]feed.Article, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		f.Mount(context.Background())
		m, cmd := update(t, m, key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", key)
		}
		select {
		case <-f.Done():
		case <-time.After(2 * time.Second):
			t.Fatalf("%s: feed was not unmounted", key)
		}
		if m.View() != "" {
			t.Errorf("%s: view after quit = %q", key, m.View())
		}
	}
}

func TestWaitForFeed(t *testing.T) {
	f := feed.New(feed.FetcherFunc(func(ctx context.Context) ([]feed.Article, error) {
		return nil, errors.New("dial tcp: connection refused")
	}))
	f.Mount(context.Background())
	msg, ok := waitForFeed(f)().(feedSettledMsg)
	if !ok {
		t.Fatal("waitForFeed did not return feedSettledMsg")
	}
	if !msg.state.IsError() || msg.state.Message() != "dial tcp: connection refused" {
		t.Errorf("state = %v %q", msg.state.Status(), msg.state.Message())
	}
}

func TestRenderCardsFitsWidth(t *testing.T) {
	a := testArticles()[0]
	a.Title = strings.Repeat("長い題名", 20)
	a.Content = strings.Repeat("summary ", 40)
	cells := &runewidth.Condition{EastAsianWidth: false}
	for _, width := range []int{30, 60, 100} {
		out := RenderCards([]feed.Article{a}, width)
		for _, line := range strings.Split(out, "\n") {
			if w := cells.StringWidth(stripANSI(line)); w > width {
				t.Errorf("width %d: line %q is %d cells", width, line, w)
			}
		}
	}
}

func TestRenderCardsEmpty(t *testing.T) {
	if got := RenderCards(nil, 80); got != "" {
		t.Errorf("RenderCards(nil) = %q, want empty", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
