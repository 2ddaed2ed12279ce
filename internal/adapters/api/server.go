// Package api serves the annotation HTTP API and the annotated pages.
package api

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Catalog is the annotation service behind the API.
type Catalog interface {
	Submit(ctx context.Context, a domain.Annotation) (domain.Annotation, error)
	List(ctx context.Context, url string) ([]domain.Annotation, error)
}

// Options configure the routes of a Server.
type Options struct {
	// Endpoint is the path of the annotation API.
	Endpoint string
	// Inject enables the endpoint meta tag in served HTML pages.
	Inject bool
	// Upstream is the origin pages are proxied to.
	Upstream string
	// StaticDir is served when no upstream is configured.
	StaticDir string
}

// Server routes API requests to the catalog and everything else to the page source.
type Server struct {
	catalog  Catalog
	logger   ports.Logger
	tracer   ports.Tracer
	endpoint string
	router   *gin.Engine
}

// New creates a Server.
func New(catalog Catalog, logger ports.Logger, tracer ports.Tracer, opts Options) (*Server, error) {
	endpoint := domain.ResolveEndpoint(opts.Endpoint)
	if err := domain.ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	pages, err := pageHandler(opts)
	if err != nil {
		return nil, err
	}
	if opts.Inject {
		pages = Inject(pages, endpoint)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		catalog:  catalog,
		logger:   logger,
		tracer:   tracer,
		endpoint: endpoint,
		router:   router,
	}

	router.Use(gin.Recovery(), s.trace())
	router.Any(endpoint, s.cors(), s.serveAPI)
	router.NoRoute(gin.WrapH(pages))

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Endpoint returns the API path.
func (s *Server) Endpoint() string {
	return s.endpoint
}

func pageHandler(opts Options) (http.Handler, error) {
	switch {
	case opts.Upstream != "":
		target, err := url.Parse(opts.Upstream)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, zerr.With(zerr.New("invalid upstream URL"), "upstream", opts.Upstream)
		}
		proxy := httputil.NewSingleHostReverseProxy(target)
		director := proxy.Director
		proxy.Director = func(r *http.Request) {
			director(r)
			r.Host = target.Host
			// Injection rewrites the body, so ask the upstream for plain text.
			r.Header.Del("Accept-Encoding")
		}
		return proxy, nil
	case opts.StaticDir != "":
		return http.FileServer(http.Dir(opts.StaticDir)), nil
	default:
		return http.NotFoundHandler(), nil
	}
}
