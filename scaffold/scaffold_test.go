package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eringen/techfeed"
	"github.com/eringen/techfeed/articlesapi"
)

func TestWriteProducesLoadableFiles(t *testing.T) {
	dir := t.TempDir()
	created, err := Write(dir, Data{SiteName: "Dev Notes", Author: "Sam", Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(created) != 3 {
		t.Errorf("created %d files, want 3: %v", len(created), created)
	}
	if _, err := os.Stat(filepath.Join(dir, ".env.example")); err != nil {
		t.Errorf(".env.example missing: %v", err)
	}

	cfg, err := techfeed.LoadConfigFile(filepath.Join(dir, "techfeed.yaml"))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Name != "Dev Notes" {
		t.Errorf("Name = %q", cfg.Name)
	}

	articles, err := articlesapi.LoadSeedFile(filepath.Join(dir, "articles.yaml"))
	if err != nil {
		t.Fatalf("generated seed does not load: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "1" || articles[0].Author != "Sam" {
		t.Errorf("articles = %+v", articles)
	}
	if !articles[0].HasCodeExamples() {
		t.Errorf("sample article should carry a code example")
	}
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "techfeed.yaml"), []byte("name: mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Write(dir, Data{SiteName: "X"}); err == nil {
		t.Fatal("expected error for existing file")
	}
	got, _ := os.ReadFile(filepath.Join(dir, "techfeed.yaml"))
	if string(got) != "name: mine\n" {
		t.Errorf("existing file was modified: %q", got)
	}
}

func TestToTitle(t *testing.T) {
	tests := []struct {
		input, expected string
	}{
		{"dev-notes", "Dev Notes"},
		{"devnotes", "Devnotes"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToTitle(tt.input); got != tt.expected {
			t.Errorf("ToTitle(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
