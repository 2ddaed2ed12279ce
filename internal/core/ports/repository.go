package ports

import (
	"context"

	"go.trai.ch/margin/internal/core/domain"
)

// AnnotationRepository persists annotations behind the API server.
//
//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type AnnotationRepository interface {
	// Append stores a complete annotation. Insertion order is preserved per URL.
	Append(ctx context.Context, a domain.Annotation) error

	// List returns the annotations of one page URL in insertion order.
	// A page without annotations yields an empty slice.
	List(ctx context.Context, url string) ([]domain.Annotation, error)

	// Close releases the underlying connection.
	Close() error
}
