package handlers

import (
	"context"

	"github.com/notionctx/notionctx/internal/extract"
	"github.com/notionctx/notionctx/internal/server/dto"
)

// DatabaseHandler handles database export requests.
type DatabaseHandler struct {
	svc *Services
}

// NewDatabaseHandler creates a new database handler.
func NewDatabaseHandler(svc *Services) *DatabaseHandler {
	return &DatabaseHandler{svc: svc}
}

// Export dumps every row of a database, paginating through the full row
// set. Row content failures degrade to per-row error objects.
func (h *DatabaseHandler) Export(ctx context.Context, req *dto.ExportDatabaseRequest) (*dto.ExportResponse, error) {
	exp, err := h.svc.Search.ExportDatabase(ctx, req.DatabaseID, req.Opts.IncludeBlocks, extract.Format(req.Opts.Format))
	if err != nil {
		return nil, notFoundOr("Database", err)
	}
	return exportToDTO(exp, req.Opts), nil
}

// SearchPages finds pages within one database whose title matches q.
func (h *DatabaseHandler) SearchPages(ctx context.Context, req *dto.SearchDatabasePagesRequest) (*dto.SearchResponse, error) {
	resp, err := h.svc.Search.SearchInDatabase(ctx, req.DatabaseID, searchParams(req.Opts, req.Query))
	if err != nil {
		return nil, notFoundOr("Database", err)
	}
	return searchResponseToDTO(resp, req.Opts, false), nil
}
