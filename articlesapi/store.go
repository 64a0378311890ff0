// Package articlesapi is the companion server that publishes the article
// collection the feed page reads. Articles are kept in SQLite or Postgres
// in a fixed position order and served as a JSON array.
package articlesapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/eringen/techfeed/feed"
)

// ErrNotFound is returned when a requested article does not exist.
var ErrNotFound = errors.New("article not found")

// Store wraps a SQL database holding the article collection.
type Store struct {
	db     *sql.DB
	driver string
}

// IsPostgresDSN reports whether dsn names a Postgres database rather than a
// SQLite file path.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open opens the database named by dsn: a postgres:// URL or a SQLite file
// path. The schema is created if missing.
func Open(dsn string) (*Store, error) {
	if IsPostgresDSN(dsn) {
		return openPostgres(dsn)
	}
	return openSQLite(dsn)
}

func openSQLite(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	return newStore(db, "sqlite")
}

func openPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newStore(db, "postgres")
}

func newStore(db *sql.DB, driver string) (*Store, error) {
	s := &Store{db: db, driver: driver}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns "sqlite" or "postgres".
func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    author TEXT NOT NULL,
    author_role TEXT NOT NULL,
    date TEXT NOT NULL,
    image_url TEXT NOT NULL,
    tags TEXT NOT NULL,
    refs TEXT NOT NULL,
    code_examples TEXT NOT NULL
)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS articles_position ON articles (position)`)
	return err
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const selectColumns = `SELECT id, title, content, author, author_role, date, image_url, tags, refs, code_examples FROM articles`

// List returns every article in position order. The result is never nil.
func (s *Store) List(ctx context.Context) ([]feed.Article, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []feed.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}

// Get returns a single article by id.
func (s *Store) Get(ctx context.Context, id string) (feed.Article, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE id = ?`), id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return feed.Article{}, ErrNotFound
	}
	return a, err
}

// Count returns the number of stored articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n)
	return n, err
}

// ReplaceAll swaps the stored collection for articles, keeping their order.
func (s *Store) ReplaceAll(ctx context.Context, articles []feed.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return err
	}
	insert := s.rebind(`INSERT INTO articles (id, position, title, content, author, author_role, date, image_url, tags, refs, code_examples) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, a := range articles {
		tags, refs, examples, err := encodeLists(a)
		if err != nil {
			return fmt.Errorf("article %s: %w", a.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			string(a.ID), i, a.Title, a.Content, a.Author, a.AuthorRole, a.Date, a.ImageURL,
			tags, refs, examples); err != nil {
			return fmt.Errorf("article %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(sc scanner) (feed.Article, error) {
	var a feed.Article
	var id, tags, refs, examples string
	if err := sc.Scan(&id, &a.Title, &a.Content, &a.Author, &a.AuthorRole, &a.Date, &a.ImageURL, &tags, &refs, &examples); err != nil {
		return feed.Article{}, err
	}
	a.ID = feed.ArticleID(id)
	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return feed.Article{}, fmt.Errorf("article %s tags: %w", id, err)
	}
	if err := json.Unmarshal([]byte(refs), &a.References); err != nil {
		return feed.Article{}, fmt.Errorf("article %s references: %w", id, err)
	}
	if err := json.Unmarshal([]byte(examples), &a.CodeExamples); err != nil {
		return feed.Article{}, fmt.Errorf("article %s code examples: %w", id, err)
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.References == nil {
		a.References = []feed.Reference{}
	}
	return a, nil
}

func encodeLists(a feed.Article) (tags, refs, examples string, err error) {
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.References == nil {
		a.References = []feed.Reference{}
	}
	if a.CodeExamples == nil {
		a.CodeExamples = []feed.CodeExample{}
	}
	t, err := json.Marshal(a.Tags)
	if err != nil {
		return "", "", "", err
	}
	r, err := json.Marshal(a.References)
	if err != nil {
		return "", "", "", err
	}
	e, err := json.Marshal(a.CodeExamples)
	if err != nil {
		return "", "", "", err
	}
	return string(t), string(r), string(e), nil
}
