package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/notionctx/notionctx/internal/extract"
	"github.com/notionctx/notionctx/internal/server/dto"
)

// PageHandler handles single page fetch and context assembly requests.
type PageHandler struct {
	svc *Services
}

// NewPageHandler creates a new page handler.
func NewPageHandler(svc *Services) *PageHandler {
	return &PageHandler{svc: svc}
}

// GetPage fetches one page by ID with its assembled content. A content
// fetch failure still returns the page metadata, with Error set.
func (h *PageHandler) GetPage(ctx context.Context, req *dto.GetPageRequest) (*dto.PageObject, error) {
	obj, err := h.svc.Search.FetchPage(ctx, req.PageID, req.Opts.IncludeBlocks, extract.Format(req.Opts.Format))
	if err != nil {
		return nil, notFoundOr("Page", err)
	}
	page := pageObjectToDTO(obj, req.Opts)
	return &page, nil
}

// GetContext fetches several pages and concatenates their content into one
// prompt-ready blob. Pages that fail to fetch are dropped from the blob and
// from the count; an empty result is not an error.
func (h *PageHandler) GetContext(ctx context.Context, req *dto.ContextRequest) (*dto.ContextResponse, error) {
	objs := h.svc.Search.FetchPages(ctx, req.PageIDs, extract.FormatText)

	fetched := make([]extract.ContentObject, 0, len(objs))
	for i := range objs {
		if objs[i].Error == "" {
			fetched = append(fetched, objs[i])
		}
	}

	blob, err := formatContext(fetched, req.Format)
	if err != nil {
		return nil, dto.InternalWithError("Failed to encode context", err)
	}
	return &dto.ContextResponse{Context: blob, PageCount: len(fetched)}, nil
}

// formatContext renders fetched pages in the requested context format.
func formatContext(objs []extract.ContentObject, format string) (string, error) {
	if format == dto.ContextFormatJSON {
		opts := dto.SearchOptions{IncludeBlocks: true, Format: dto.FormatText}
		out := make([]any, len(objs))
		for i := range objs {
			out[i] = contentObjectToDTO(&objs[i], opts, false)
		}
		b, err := json.Marshal(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	var sb strings.Builder
	for i := range objs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if format == dto.ContextFormatMarkdown {
			sb.WriteString("## ")
			sb.WriteString(objs[i].Title)
			sb.WriteString("\n\n")
		} else {
			sb.WriteString("=== ")
			sb.WriteString(objs[i].Title)
			sb.WriteString(" ===\n")
		}
		sb.WriteString(objs[i].ContentText)
	}
	return sb.String(), nil
}
