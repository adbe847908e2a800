// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"os"
	"strings"
	"time"
)

// Scope defines how rate limit keys are determined.
type Scope int

const (
	// ScopeIP uses client IP address as the rate limit key.
	ScopeIP Scope = iota
)

// Tier defines a rate limit tier with its limiter and scope.
type Tier struct {
	Name    string
	Limiter *Limiter
	Scope   Scope
}

// Config holds rate limiters for different tiers.
//
// Search endpoints fan out into many Notion API calls per request and get
// the tightest budget. Export walks entire databases and is tighter still.
// Plain reads only touch a handful of upstream calls.
type Config struct {
	Search Tier
	Export Tier
	Read   Tier
}

// DefaultConfig creates a Config with default rate limits:
//   - Search: 30 req/min per IP
//   - Export: 10 req/min per IP
//   - Read: 120 req/min per IP
//
// In test mode (TEST_RATELIMIT_OFF=1), rate limits are increased 1000x to
// effectively disable them.
func DefaultConfig() *Config {
	multiplier := 1
	if os.Getenv("TEST_RATELIMIT_OFF") == "1" {
		multiplier = 1000
	}
	return &Config{
		Search: Tier{
			Name:    "search",
			Limiter: NewLimiter("search", 30*multiplier, time.Minute, 10*multiplier),
			Scope:   ScopeIP,
		},
		Export: Tier{
			Name:    "export",
			Limiter: NewLimiter("export", 10*multiplier, time.Minute, 3*multiplier),
			Scope:   ScopeIP,
		},
		Read: Tier{
			Name:    "read",
			Limiter: NewLimiter("read", 120*multiplier, time.Minute, 30*multiplier),
			Scope:   ScopeIP,
		},
	}
}

// Match returns the tier for a request. Returns nil for paths that should
// not be rate limited.
func (c *Config) Match(method, path string) *Tier {
	// Skip health check and the root banner
	if path == "/api/v1/health" || path == "/" || path == "/api/v1" {
		return nil
	}

	if strings.HasPrefix(path, "/api/v1/search/") || path == "/api/v1/query" {
		return &c.Search
	}

	if strings.HasPrefix(path, "/api/v1/databases/") {
		if strings.HasSuffix(path, "/export") {
			return &c.Export
		}
		if strings.HasSuffix(path, "/search") {
			return &c.Search
		}
	}

	// Context assembly fetches several pages per call, same cost class as search
	if method == "POST" && path == "/api/v1/context" {
		return &c.Search
	}

	return &c.Read
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	c.Search.Limiter.Close()
	c.Export.Limiter.Close()
	c.Read.Limiter.Close()
}
