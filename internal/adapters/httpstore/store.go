// Package httpstore implements ports.AnnotationStore against the annotation HTTP API.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"go.trai.ch/margin/internal/adapters/telemetry"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store talks to the annotation endpoint of one site.
type Store struct {
	client   *http.Client
	endpoint *url.URL
	tracer   ports.Tracer
}

type listResponse struct {
	Annotations []domain.Annotation `json:"annotations"`
}

// New creates a Store for the endpoint resolved against base, the page's origin.
// endpoint may be a path or an absolute URL. Requests carry no deadline of their
// own and end only when they complete or the caller's context is done.
func New(base, endpoint string, tracer ports.Tracer) (*Store, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid base URL"), "base", base)
	}
	ref, err := url.Parse(domain.ResolveEndpoint(endpoint))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid endpoint"), "endpoint", endpoint)
	}

	return &Store{
		client:   &http.Client{},
		endpoint: baseURL.ResolveReference(ref),
		tracer:   tracer,
	}, nil
}

// WithClient replaces the HTTP client.
func (s *Store) WithClient(c *http.Client) *Store {
	s.client = c
	return s
}

// Endpoint returns the absolute endpoint URL.
func (s *Store) Endpoint() string {
	return s.endpoint.String()
}

// Create posts the candidate and returns the stored record.
func (s *Store) Create(ctx context.Context, c domain.Candidate) (domain.Annotation, error) {
	ctx, span := s.tracer.Start(ctx, "annotations.create", ports.WithSpanKind(ports.SpanKindClient))
	defer span.End()
	span.SetAttribute("annotation.url", c.URL)

	body, err := json.Marshal(c)
	if err != nil {
		return domain.Annotation{}, zerr.Wrap(err, "failed to encode annotation")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return domain.Annotation{}, zerr.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	var saved domain.Annotation
	if err := s.do(ctx, req, &saved); err != nil {
		span.RecordError(err)
		return domain.Annotation{}, err
	}
	return saved, nil
}

// List fetches the annotations of the page at url.
func (s *Store) List(ctx context.Context, page string) ([]domain.Annotation, error) {
	ctx, span := s.tracer.Start(ctx, "annotations.list", ports.WithSpanKind(ports.SpanKindClient))
	defer span.End()
	span.SetAttribute("annotation.url", page)

	u := *s.endpoint
	q := u.Query()
	q.Set("url", page)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build request")
	}

	var resp listResponse
	if err := s.do(ctx, req, &resp); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if resp.Annotations == nil {
		resp.Annotations = []domain.Annotation{}
	}
	span.SetAttribute("annotation.count", len(resp.Annotations))
	return resp.Annotations, nil
}

func (s *Store) do(ctx context.Context, req *http.Request, target any) error {
	req.Header.Set("Accept", "application/json")
	telemetry.Inject(ctx, req.Header)

	resp, err := s.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "annotation request failed"), "endpoint", req.URL.String())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := zerr.Wrap(domain.ErrUnexpectedStatus, "annotation request failed")
		err = zerr.With(err, "status", resp.StatusCode)
		return zerr.With(err, "endpoint", req.URL.String())
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return zerr.Wrap(err, "failed to decode annotation response")
	}
	return nil
}

var _ ports.AnnotationStore = (*Store)(nil)
