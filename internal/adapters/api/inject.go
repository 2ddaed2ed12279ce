package api

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"strings"

	"go.trai.ch/margin/internal/adapters/telemetry"
	"go.trai.ch/margin/internal/core/domain"
)

// MetaTag returns the tag announcing endpoint to pages.
func MetaTag(endpoint string) string {
	return `<meta name="` + domain.EndpointMetaName + `" content="` + html.EscapeString(endpoint) + `">`
}

// InjectMeta inserts the endpoint meta tag before the first </head>. Documents
// without a head are returned unchanged.
func InjectMeta(doc []byte, endpoint string) []byte {
	idx := bytes.Index(bytes.ToLower(doc), []byte("</head>"))
	if idx < 0 {
		return doc
	}

	tag := MetaTag(endpoint) + "\n"
	out := make([]byte, 0, len(doc)+len(tag))
	out = append(out, doc[:idx]...)
	out = append(out, tag...)
	return append(out, doc[idx:]...)
}

// Inject wraps next so successful HTML responses carry the endpoint meta tag.
func Inject(next http.Handler, endpoint string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &bufferedWriter{header: w.Header(), status: http.StatusOK}
		next.ServeHTTP(rec, r)

		body := rec.body.Bytes()
		if rec.status == http.StatusOK && isPlainHTML(w.Header()) {
			body = InjectMeta(body, endpoint)
			w.Header().Del("Content-Length")
		}

		w.WriteHeader(rec.status)
		_, _ = w.Write(body)
	})
}

func isPlainHTML(h http.Header) bool {
	if h.Get("Content-Encoding") != "" {
		return false
	}
	return strings.Contains(strings.ToLower(h.Get("Content-Type")), "text/html")
}

type bufferedWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.wrote = true
	b.status = status
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}

func extract(r *http.Request) context.Context {
	return telemetry.Extract(r.Context(), r.Header)
}
