// Package memory implements an in-process annotation repository.
package memory

import (
	"context"
	"sync"

	"go.trai.ch/margin/internal/core/domain"
)

// Repository implements ports.AnnotationRepository with a map guarded by a mutex.
// Contents are lost when the process exits.
type Repository struct {
	mu    sync.RWMutex
	pages map[string][]domain.Annotation
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{pages: make(map[string][]domain.Annotation)}
}

// Append stores a at the end of its page's list.
func (r *Repository) Append(ctx context.Context, a domain.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[a.URL] = append(r.pages[a.URL], a)
	return nil
}

// List returns a copy of the page's annotations.
func (r *Repository) List(ctx context.Context, url string) ([]domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.pages[url]
	out := make([]domain.Annotation, len(items))
	copy(out, items)
	return out, nil
}

// Close is a no-op.
func (r *Repository) Close() error {
	return nil
}
