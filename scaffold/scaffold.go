// Package scaffold writes a starter techfeed project: a config file, a seed
// file of sample articles, and an .env.example.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	SiteName string
	Author   string
	Date     string // YYYY-MM-DD
}

// Write renders every template into dir and returns the created paths.
// Existing files are never overwritten.
func Write(dir string, data Data) ([]string, error) {
	root := "templates"
	var created []string

	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		outPath := filepath.Join(dir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")

		// Rename dotenv to .env.example.
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists", outPath)
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	return created, err
}

// ToTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "dev-notes" -> "Dev Notes", "devnotes" -> "Devnotes"
func ToTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
