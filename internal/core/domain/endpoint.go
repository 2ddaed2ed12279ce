package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DefaultEndpoint is the annotation API path used when no override is configured.
	DefaultEndpoint = "/api/annotations"

	// EndpointMetaName is the name of the meta tag carrying the endpoint in served pages.
	EndpointMetaName = "margin-api"
)

// ResolveEndpoint returns override when set and DefaultEndpoint otherwise.
func ResolveEndpoint(override string) string {
	if o := strings.TrimSpace(override); o != "" {
		return o
	}
	return DefaultEndpoint
}

// ValidateEndpoint checks that a server endpoint is an absolute path.
func ValidateEndpoint(endpoint string) error {
	if !strings.HasPrefix(endpoint, "/") {
		return zerr.With(zerr.Wrap(ErrInvalidEndpoint, "invalid configuration"), "endpoint", endpoint)
	}
	return nil
}
