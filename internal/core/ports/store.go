package ports

import (
	"context"

	"go.trai.ch/margin/internal/core/domain"
)

// AnnotationStore is the storage collaborator the overlay engine talks to.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type AnnotationStore interface {
	// Create persists a candidate and returns the canonical record with its assigned fields.
	Create(ctx context.Context, c domain.Candidate) (domain.Annotation, error)

	// List returns the annotations recorded for the page URL, in storage order.
	List(ctx context.Context, url string) ([]domain.Annotation, error)
}
