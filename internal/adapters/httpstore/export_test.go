package httpstore

import "net/http"

// Client exposes the HTTP client for tests.
func (s *Store) Client() *http.Client {
	return s.client
}
