// Package sqlite implements the annotation repository on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"

	"go.trai.ch/margin/internal/adapters/sqlite/migrations"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Repository implements ports.AnnotationRepository with SQLite.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, zerr.New("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open sqlite database"), "path", path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to open sqlite database"), "path", path)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Append inserts a.
func (r *Repository) Append(ctx context.Context, a domain.Annotation) error {
	extra, err := json.Marshal(a.Extra)
	if err != nil {
		return zerr.Wrap(err, "failed to encode annotation fields")
	}
	if a.Extra == nil {
		extra = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO annotations (id, url, selector, comment, author, pos_x, pos_y, created_at, extra)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.URL, a.Selector, a.Comment, a.Author,
		a.Position.X, a.Position.Y, a.Timestamp, string(extra),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to insert annotation"), "id", a.ID)
	}
	return nil
}

// List returns the page's annotations in insertion order.
func (r *Repository) List(ctx context.Context, url string) ([]domain.Annotation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, url, selector, comment, author, pos_x, pos_y, created_at, extra
FROM annotations
WHERE url = ?
ORDER BY seq`, url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to query annotations"), "url", url)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []domain.Annotation{}
	for rows.Next() {
		var (
			a     domain.Annotation
			extra string
		)
		if err := rows.Scan(
			&a.ID, &a.URL, &a.Selector, &a.Comment, &a.Author,
			&a.Position.X, &a.Position.Y, &a.Timestamp, &extra,
		); err != nil {
			return nil, zerr.Wrap(err, "failed to scan annotation")
		}
		if extra != "" && extra != "{}" && extra != "null" {
			if err := json.Unmarshal([]byte(extra), &a.Extra); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to decode annotation fields"), "id", a.ID)
			}
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read annotations")
	}
	return items, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
