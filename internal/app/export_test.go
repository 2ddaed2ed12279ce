package app

import (
	"net/http"
	"net/url"
	"time"
)

// PagePath exposes pagePath for tests.
func PagePath(u *url.URL) string {
	return pagePath(u)
}

// SetFetchTimeout bounds page fetches for tests.
func (a *App) SetFetchTimeout(d time.Duration) {
	a.fetchTimeout = d
}

// HTTPClient exposes the shared HTTP client for tests.
func (a *App) HTTPClient() *http.Client {
	return a.client
}
