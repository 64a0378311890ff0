// Package preview renders the feed in the terminal. It drives the same
// feed.Feed state machine as the web page: a spinner while loading, then
// either the error message or one card per article in feed order.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/eringen/techfeed/feed"
)

const (
	heading      = "Latest Web Development Articles"
	headerHeight = 2
	footerHeight = 1
	minWidth     = 20
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// feedSettledMsg carries the state once the fetch has finished.
type feedSettledMsg struct {
	state feed.State
}

// Model is the bubbletea model of the preview.
type Model struct {
	feed     *feed.Feed
	state    feed.State
	spinner  spinner.Model
	viewport viewport.Model
	width    int
	ready    bool
	quitting bool
}

// New creates a preview over f. The caller mounts f.
func New(f *feed.Feed) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle))
	return Model{
		feed:    f,
		state:   f.State(),
		spinner: s,
		width:   80,
	}
}

// Init starts the spinner and waits for the feed to settle.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForFeed(m.feed))
}

func waitForFeed(f *feed.Feed) tea.Cmd {
	return func() tea.Msg {
		<-f.Done()
		return feedSettledMsg{state: f.State()}
	}
}

// Update handles keys, resizes, spinner ticks and the settled feed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.feed.Unmount()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil
	case feedSettledMsg:
		// A feed torn down before its fetch finished settles as Loading.
		if !msg.state.Terminal() {
			return m, nil
		}
		m.state = msg.state
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if !m.state.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.ready && m.state.IsSuccess() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) refresh() {
	if m.ready && m.state.IsSuccess() {
		m.viewport.SetContent(RenderCards(m.state.Articles(), m.width))
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(heading))
	b.WriteString("\n")
	switch m.state.Status() {
	case feed.StatusLoading:
		b.WriteString(m.spinner.View() + " Loading articles...")
	case feed.StatusError:
		b.WriteString(errorStyle.Render("Error: " + m.state.Message()))
	case feed.StatusSuccess:
		if m.ready {
			b.WriteString(m.viewport.View())
		} else {
			b.WriteString(RenderCards(m.state.Articles(), m.width))
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.footer()))
	return b.String()
}

func (m Model) footer() string {
	if m.state.IsSuccess() {
		return fmt.Sprintf("%d articles · ↑/↓ scroll · q quit", len(m.state.Articles()))
	}
	return "q quit"
}

// RenderCards lays out one card per article in order, each line fitted to
// width display cells.
func RenderCards(articles []feed.Article, width int) string {
	if width < minWidth {
		width = minWidth
	}
	// border and padding take two cells on each side
	inner := width - 4
	cards := make([]string, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, cardStyle.Width(inner+2).Render(cardBody(a, inner)))
	}
	return strings.Join(cards, "\n")
}

func cardBody(a feed.Article, width int) string {
	fit := func(s string) string {
		return runewidth.Truncate(s, width, "…")
	}
	lines := []string{
		titleStyle.Render(fit(a.Title)),
		mutedStyle.Render(fit(byline(a))),
		fit(a.Summary()),
	}
	if len(a.Tags) > 0 {
		lines = append(lines, mutedStyle.Render(fit("#"+strings.Join(a.Tags, " #"))))
	}
	if a.HasCodeExamples() {
		lines = append(lines, mutedStyle.Render(fit(fmt.Sprintf("%d code examples", len(a.CodeExamples)))))
	}
	return strings.Join(lines, "\n")
}

func byline(a feed.Article) string {
	s := "By " + a.Author
	if a.AuthorRole != "" {
		s += " (" + a.AuthorRole + ")"
	}
	return s + " on " + a.DisplayDate()
}

// Run mounts f, runs the preview until the user quits or ctx ends, and
// unmounts f.
func Run(ctx context.Context, f *feed.Feed, opts ...tea.ProgramOption) error {
	f.Mount(ctx)
	defer f.Unmount()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(f), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
