package feed

import (
	"encoding/json"
	"testing"
)

func TestArticleIDAcceptsNumberAndString(t *testing.T) {
	tests := []struct {
		input    string
		expected ArticleID
	}{
		{`{"id": 1}`, "1"},
		{`{"id": 42}`, "42"},
		{`{"id": "abc-1"}`, "abc-1"},
		{`{"id": "7"}`, "7"},
	}
	for _, tt := range tests {
		var a Article
		if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
		}
		if a.ID != tt.expected {
			t.Errorf("Unmarshal(%s).ID = %q, want %q", tt.input, a.ID, tt.expected)
		}
	}
}

func TestArticleIDRejectsObject(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &a); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestArticleSummary(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{"Summary line.\nBody line.", "Summary line."},
		{"Only line", "Only line"},
		{"", ""},
		{"\nstarts empty", ""},
	}
	for _, tt := range tests {
		got := Article{Content: tt.content}.Summary()
		if got != tt.expected {
			t.Errorf("Summary(%q) = %q, want %q", tt.content, got, tt.expected)
		}
	}
}

func TestArticleLines(t *testing.T) {
	lines := Article{Content: "a\nb\n\nc"}.Lines()
	want := []string{"a", "b", "", "c"}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
	if got := (Article{}).Lines(); len(got) != 1 || got[0] != "" {
		t.Errorf("Lines() of empty content = %q, want one empty line", got)
	}
}

func TestArticleDisplayDate(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2024-01-15", "1/15/2024"},
		{"2024-03-05T10:30:00Z", "3/5/2024"},
		{"2024-12-31T23:00:00.000Z", "12/31/2024"},
		{"Mon, 02 Jan 2006 15:04:05 -0700", "1/2/2006"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		got := Article{Date: tt.date}.DisplayDate()
		if got != tt.expected {
			t.Errorf("DisplayDate(%q) = %q, want %q", tt.date, got, tt.expected)
		}
	}
}

func TestHasCodeExamples(t *testing.T) {
	if (Article{}).HasCodeExamples() {
		t.Error("nil code examples should not render a section")
	}
	if (Article{CodeExamples: []CodeExample{}}).HasCodeExamples() {
		t.Error("empty code examples should not render a section")
	}
	if !(Article{CodeExamples: []CodeExample{{Language: "go", Code: "x"}}}).HasCodeExamples() {
		t.Error("non-empty code examples should render a section")
	}
}
