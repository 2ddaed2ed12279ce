package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
)

type listResponse struct {
	Annotations []domain.Annotation `json:"annotations"`
	Count       int                 `json:"count"`
}

func (s *Server) serveAPI(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
	case http.MethodGet:
		s.list(c)
	case http.MethodPost:
		s.create(c)
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}

func (s *Server) list(c *gin.Context) {
	page := c.Query("url")
	if page == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrURLRequired.Error()})
		return
	}

	items, err := s.catalog.List(c.Request.Context(), page)
	if err != nil {
		s.fail(c, err)
		return
	}

	body, err := json.Marshal(listResponse{Annotations: items, Count: len(items)})
	if err != nil {
		s.fail(c, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *Server) create(c *gin.Context) {
	var a domain.Annotation
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	saved, err := s.catalog.Submit(c.Request.Context(), a)
	if errors.Is(err, domain.ErrInvalidAnnotation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidAnnotation.Error()})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match, traceparent, tracestate")
		h.Set("Access-Control-Expose-Headers", "ETag")
		c.Next()
	}
}

func (s *Server) trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := extract(c.Request)
		name := "page"
		if c.FullPath() == s.endpoint {
			name = "annotations"
		}

		ctx, span := s.tracer.Start(ctx, c.Request.Method+" "+name, ports.WithSpanKind(ports.SpanKindServer))
		defer span.End()
		span.SetAttribute("http.method", c.Request.Method)
		span.SetAttribute("http.target", c.Request.URL.Path)

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttribute("http.status_code", status)
		if status >= http.StatusInternalServerError {
			span.RecordError(errors.New(http.StatusText(status)))
		}
	}
}
