// Package catalog implements the annotation service behind the HTTP API.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Service validates annotations, assigns their identity and stores them.
type Service struct {
	repo  ports.AnnotationRepository
	now   func() time.Time
	newID func() string
}

// New creates a Service storing into repo.
func New(repo ports.AnnotationRepository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator replaces the identifier source.
func (s *Service) WithIDGenerator(newID func() string) *Service {
	s.newID = newID
	return s
}

// Submit stores a submitted annotation and returns the canonical record.
// Client supplied id and timestamp are replaced. Unknown fields are kept.
func (s *Service) Submit(ctx context.Context, a domain.Annotation) (domain.Annotation, error) {
	if strings.TrimSpace(a.URL) == "" || strings.TrimSpace(a.Comment) == "" {
		return domain.Annotation{}, domain.ErrInvalidAnnotation
	}
	if strings.TrimSpace(a.Author) == "" {
		a.Author = domain.DefaultAuthor
	}

	a.ID = s.newID()
	a.Timestamp = s.now().Unix()

	if err := s.repo.Append(ctx, a); err != nil {
		return domain.Annotation{}, zerr.With(zerr.Wrap(err, domain.ErrSaveFailed.Error()), "url", a.URL)
	}
	return a, nil
}

// Create implements ports.AnnotationStore so the overlay can run against the
// service in process.
func (s *Service) Create(ctx context.Context, c domain.Candidate) (domain.Annotation, error) {
	return s.Submit(ctx, c.Annotation())
}

// List returns the annotations of a page. The result is never nil.
func (s *Service) List(ctx context.Context, url string) ([]domain.Annotation, error) {
	if url == "" {
		return nil, domain.ErrURLRequired
	}

	items, err := s.repo.List(ctx, url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLoadFailed.Error()), "url", url)
	}
	if items == nil {
		items = []domain.Annotation{}
	}
	return items, nil
}

var _ ports.AnnotationStore = (*Service)(nil)
