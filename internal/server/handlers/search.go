package handlers

import (
	"context"

	"github.com/notionctx/notionctx/internal/extract"
	"github.com/notionctx/notionctx/internal/search"
	"github.com/notionctx/notionctx/internal/server/dto"
)

// SearchHandler handles search and query requests.
type SearchHandler struct {
	svc *Services
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(svc *Services) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func searchParams(opts dto.SearchOptions, query string) search.Params {
	return search.Params{
		Query:                query,
		MaxResults:           opts.MaxResults,
		IncludeBlocks:        opts.IncludeBlocks,
		Format:               extract.Format(opts.Format),
		ExpandDatabases:      opts.ExpandDatabases,
		PerDatabasePageLimit: opts.PerDatabasePageLimit,
	}
}

// SearchPages searches pages by title and returns their assembled content.
func (h *SearchHandler) SearchPages(ctx context.Context, req *dto.SearchPagesRequest) (*dto.SearchResponse, error) {
	resp, err := h.svc.Search.SearchPages(ctx, searchParams(req.Opts, req.Query))
	if err != nil {
		return nil, upstreamError(err)
	}
	return searchResponseToDTO(resp, req.Opts, false), nil
}

// SearchDatabases searches databases by title and lists their rows.
func (h *SearchHandler) SearchDatabases(ctx context.Context, req *dto.SearchDatabasesRequest) (*dto.SearchResponse, error) {
	resp, err := h.svc.Search.SearchDatabases(ctx, searchParams(req.Opts, req.Query))
	if err != nil {
		return nil, upstreamError(err)
	}
	return searchResponseToDTO(resp, req.Opts, false), nil
}

// Query searches pages and databases together under one result cap.
// Each result carries an object_type discriminator.
func (h *SearchHandler) Query(ctx context.Context, req *dto.QueryRequest) (*dto.SearchResponse, error) {
	resp, err := h.svc.Search.Query(ctx, searchParams(req.Opts, req.Query))
	if err != nil {
		return nil, upstreamError(err)
	}
	return searchResponseToDTO(resp, req.Opts, true), nil
}

// Recent lists the most recently edited pages the integration can see.
func (h *SearchHandler) Recent(ctx context.Context, req *dto.RecentPagesRequest) (*dto.SearchResponse, error) {
	resp, err := h.svc.Search.Recent(ctx, searchParams(req.Opts, ""))
	if err != nil {
		return nil, upstreamError(err)
	}
	return searchResponseToDTO(resp, req.Opts, false), nil
}
