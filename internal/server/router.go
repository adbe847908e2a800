// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/notionctx/notionctx/internal/server/handlers"
	"github.com/notionctx/notionctx/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(svc *handlers.Services, cfg *handlers.Config, limits *ratelimit.Config) http.Handler {
	mux := &http.ServeMux{}

	sh := handlers.NewSearchHandler(svc)
	ph := handlers.NewPageHandler(svc)
	dh := handlers.NewDatabaseHandler(svc)
	hh := handlers.NewHealthHandler(cfg)

	// Search endpoints
	mux.Handle("GET /api/v1/search/pages", Wrap(sh.SearchPages, cfg, limits))
	mux.Handle("GET /api/v1/search/databases", Wrap(sh.SearchDatabases, cfg, limits))
	mux.Handle("GET /api/v1/search/recent", Wrap(sh.Recent, cfg, limits))
	mux.Handle("GET /api/v1/query", Wrap(sh.Query, cfg, limits))

	// Content endpoints
	mux.Handle("GET /api/v1/pages/{page_id}", Wrap(ph.GetPage, cfg, limits))
	mux.Handle("GET /api/v1/databases/{database_id}/search", Wrap(dh.SearchPages, cfg, limits))
	mux.Handle("GET /api/v1/databases/{database_id}/export", Wrap(dh.Export, cfg, limits))
	mux.Handle("POST /api/v1/context", Wrap(ph.GetContext, cfg, limits))

	// Health check and banner
	mux.Handle("GET /api/v1/health", Wrap(hh.Health, cfg, limits))
	mux.Handle("GET /api/v1", Wrap(hh.Root, cfg, limits))
	mux.Handle("GET /{$}", Wrap(hh.Root, cfg, limits))

	return recoverPanics(logRequests(mux))
}
