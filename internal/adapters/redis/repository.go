// Package redis implements the annotation repository on Redis lists.
package redis

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/zerr"
)

const keyPrefix = "margin:annotations:"

// Repository implements ports.AnnotationRepository with one Redis list per page URL.
type Repository struct {
	client *goredis.Client
}

// Open connects to the Redis server at addr and checks the connection.
func Open(ctx context.Context, addr string, db int) (*Repository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to connect to redis"), "addr", addr)
	}
	return &Repository{client: client}, nil
}

// NewRepository wraps an existing client.
func NewRepository(client *goredis.Client) *Repository {
	return &Repository{client: client}
}

// Key returns the list key holding the annotations of url.
func Key(url string) string {
	return keyPrefix + url
}

// Append pushes a onto its page's list.
func (r *Repository) Append(ctx context.Context, a domain.Annotation) error {
	data, err := json.Marshal(a)
	if err != nil {
		return zerr.Wrap(err, "failed to encode annotation")
	}
	if err := r.client.RPush(ctx, Key(a.URL), data).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to push annotation"), "url", a.URL)
	}
	return nil
}

// List reads the page's whole list.
func (r *Repository) List(ctx context.Context, url string) ([]domain.Annotation, error) {
	raw, err := r.client.LRange(ctx, Key(url), 0, -1).Result()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read annotations"), "url", url)
	}

	items := make([]domain.Annotation, 0, len(raw))
	for _, entry := range raw {
		var a domain.Annotation
		if err := json.Unmarshal([]byte(entry), &a); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to decode annotation"), "url", url)
		}
		items = append(items, a)
	}
	return items, nil
}

// Close closes the client.
func (r *Repository) Close() error {
	return r.client.Close()
}
