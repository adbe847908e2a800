// Defines shared service dependencies for handlers.

package handlers

import (
	"github.com/notionctx/notionctx/internal/search"
)

// Services holds all service dependencies for handlers.
type Services struct {
	Search *search.Orchestrator
}

// Config holds configuration values needed by handlers.
type Config struct {
	Version             string
	MaxRequestBodyBytes int64
	// UpstreamConfigured reports whether an integration token was provided
	// at startup. Health reports it so probes can tell a misconfigured
	// deployment from a broken one.
	UpstreamConfigured bool
}
