package articlesapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eringen/techfeed/feed"
)

var (
	ErrMissingID      = errors.New("article id is required")
	ErrDuplicateID    = errors.New("duplicate article id")
	ErrUnsupportedExt = errors.New("seed file must be .json, .yaml or .yml")
)

// LoadSeedFile reads an article list from a JSON or YAML file, keeping the
// order of the file.
func LoadSeedFile(path string) ([]feed.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var articles []feed.Article
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &articles); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &articles); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, path)
	}
	if err := ValidateArticles(articles); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if articles == nil {
		articles = []feed.Article{}
	}
	return articles, nil
}

// ValidateArticles checks that every article has a unique, non-empty id.
func ValidateArticles(articles []feed.Article) error {
	seen := make(map[feed.ArticleID]struct{}, len(articles))
	for i, a := range articles {
		if strings.TrimSpace(string(a.ID)) == "" {
			return fmt.Errorf("article %d: %w", i, ErrMissingID)
		}
		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
