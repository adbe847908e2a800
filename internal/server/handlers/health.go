package handlers

import (
	"context"

	"github.com/notionctx/notionctx/internal/server/dto"
)

// HealthHandler handles health check and root banner requests.
type HealthHandler struct {
	cfg *Config
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg *Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Health handles health check requests.
func (h *HealthHandler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{
		Status:             "ok",
		Service:            "notionctx",
		Version:            h.cfg.Version,
		UpstreamConfigured: h.cfg.UpstreamConfigured,
	}, nil
}

// Root serves the API banner with the list of endpoints.
func (h *HealthHandler) Root(ctx context.Context, req *dto.RootRequest) (*dto.RootResponse, error) {
	return &dto.RootResponse{
		Service: "notionctx",
		Version: h.cfg.Version,
		Endpoints: []string{
			"GET /api/v1/search/pages",
			"GET /api/v1/search/databases",
			"GET /api/v1/search/recent",
			"GET /api/v1/query",
			"GET /api/v1/pages/{page_id}",
			"GET /api/v1/databases/{database_id}/search",
			"GET /api/v1/databases/{database_id}/export",
			"POST /api/v1/context",
			"GET /api/v1/health",
		},
	}, nil
}
