package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/notionctx/notionctx/internal/notion"
	"github.com/notionctx/notionctx/internal/search"
	"github.com/notionctx/notionctx/internal/server/dto"
)

// stubUpstream serves canned Notion data to a real orchestrator.
type stubUpstream struct {
	hits      []notion.SearchResult
	pages     map[string]*notion.Page
	rows      map[string][]notion.Page
	children  map[string][]notion.Block
	childErr  map[string]error
	searchErr error
}

func (s *stubUpstream) Search(ctx context.Context, req *notion.SearchRequest) (*notion.SearchResponse, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	hits := s.hits
	if req.Filter != nil {
		var filtered []notion.SearchResult
		for _, h := range hits {
			if h.Object == req.Filter.Value {
				filtered = append(filtered, h)
			}
		}
		hits = filtered
	}
	return &notion.SearchResponse{Results: hits}, nil
}

func (s *stubUpstream) GetPage(ctx context.Context, id string) (*notion.Page, error) {
	p, ok := s.pages[id]
	if !ok {
		return nil, &notion.Error{Status: 404, Code: "object_not_found", Message: "page not found"}
	}
	return p, nil
}

func (s *stubUpstream) GetDatabase(ctx context.Context, id string) (*notion.Database, error) {
	if _, ok := s.rows[id]; !ok {
		return nil, &notion.Error{Status: 404, Code: "object_not_found", Message: "database not found"}
	}
	return &notion.Database{
		ID:    id,
		URL:   "https://notion.so/" + id,
		Title: []notion.RichText{{PlainText: "Projects"}},
	}, nil
}

func (s *stubUpstream) QueryDatabase(ctx context.Context, databaseID string, opts *notion.QueryOptions) (*notion.QueryResponse, error) {
	return &notion.QueryResponse{Results: s.rows[databaseID]}, nil
}

func (s *stubUpstream) QueryDatabaseAll(ctx context.Context, databaseID string, opts *notion.QueryOptions) ([]notion.Page, error) {
	rows, ok := s.rows[databaseID]
	if !ok {
		return nil, &notion.Error{Status: 404, Code: "object_not_found", Message: "database not found"}
	}
	return rows, nil
}

func (s *stubUpstream) GetBlockChildrenAll(ctx context.Context, blockID string) ([]notion.Block, error) {
	if err, ok := s.childErr[blockID]; ok {
		return nil, err
	}
	return s.children[blockID], nil
}

func titledPage(id, title string) *notion.Page {
	return &notion.Page{
		ID:  id,
		URL: "https://notion.so/" + id,
		Properties: map[string]notion.PropertyValue{
			"Name": {Type: "title", Title: []notion.RichText{{PlainText: title}}},
		},
	}
}

func paragraph(text string) notion.Block {
	return notion.Block{
		Type:      "paragraph",
		Paragraph: &notion.TextBlock{RichText: []notion.RichText{{PlainText: text}}},
	}
}

func newTestServices() *Services {
	up := &stubUpstream{
		hits: []notion.SearchResult{
			{
				Object: "page",
				ID:     "p1",
				URL:    "https://notion.so/p1",
				Properties: map[string]notion.PropertyValue{
					"Name": {Type: "title", Title: []notion.RichText{{PlainText: "Roadmap"}}},
				},
			},
			{Object: "database", ID: "d1", Title: []notion.RichText{{PlainText: "Projects"}}},
		},
		pages: map[string]*notion.Page{"p1": titledPage("p1", "Roadmap")},
		rows:  map[string][]notion.Page{"d1": {*titledPage("r1", "Row 1")}},
		children: map[string][]notion.Block{
			"p1": {paragraph("Q2 goals"), paragraph("Ship it")},
			"r1": {paragraph("row body")},
		},
	}
	return &Services{Search: search.New(up, search.Options{})}
}

func TestSearchPagesHandler(t *testing.T) {
	h := NewSearchHandler(newTestServices())
	req := &dto.SearchPagesRequest{Query: "roadmap"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	resp, err := h.SearchPages(t.Context(), req)
	if err != nil {
		t.Fatalf("SearchPages() = %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("Count = %d, want 1", resp.Count)
	}
	page, ok := resp.Results[0].(dto.PageObject)
	if !ok {
		t.Fatalf("result shape = %T", resp.Results[0])
	}
	if page.Title != "Roadmap" || page.ContentText == nil || *page.ContentText != "Q2 goals\nShip it" {
		t.Errorf("page = %+v", page)
	}
}

func TestSearchPagesHandlerMinimal(t *testing.T) {
	h := NewSearchHandler(newTestServices())
	req := &dto.SearchPagesRequest{Query: "roadmap", Minimal: "true", MinimalMode: "lines"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	resp, err := h.SearchPages(t.Context(), req)
	if err != nil {
		t.Fatalf("SearchPages() = %v", err)
	}
	page, ok := resp.Results[0].(dto.MinimalPage)
	if !ok {
		t.Fatalf("result shape = %T, want dto.MinimalPage", resp.Results[0])
	}
	if page.ContentLines == nil || len(*page.ContentLines) != 2 {
		t.Errorf("ContentLines = %v", page.ContentLines)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	up := &stubUpstream{searchErr: errors.New("dial tcp: connection refused")}
	h := NewSearchHandler(&Services{Search: search.New(up, search.Options{})})
	req := &dto.SearchPagesRequest{Query: "x"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	_, err := h.SearchPages(t.Context(), req)
	var apiErr *dto.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *dto.APIError", err)
	}
	if apiErr.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode() = %d, want 503", apiErr.StatusCode())
	}
}

func TestQueryHandlerTagsResults(t *testing.T) {
	h := NewSearchHandler(newTestServices())
	req := &dto.QueryRequest{Query: "q"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	resp, err := h.Query(t.Context(), req)
	if err != nil {
		t.Fatalf("Query() = %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("Count = %d, want 2", resp.Count)
	}
	if page := resp.Results[0].(dto.PageObject); page.ObjectType != "page" {
		t.Errorf("ObjectType = %q, want page", page.ObjectType)
	}
	db := resp.Results[1].(dto.DatabaseObject)
	if db.ObjectType != "database" {
		t.Errorf("ObjectType = %q, want database", db.ObjectType)
	}
	if db.Items == nil || len(*db.Items) != 1 {
		t.Errorf("Items = %v, want one expanded row", db.Items)
	}
}

func TestGetPageHandler(t *testing.T) {
	h := NewPageHandler(newTestServices())

	t.Run("found", func(t *testing.T) {
		req := &dto.GetPageRequest{PageID: "p1"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		page, err := h.GetPage(t.Context(), req)
		if err != nil {
			t.Fatalf("GetPage() = %v", err)
		}
		if page.Title != "Roadmap" || page.TotalBlocks != 2 {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("missing maps to 404", func(t *testing.T) {
		req := &dto.GetPageRequest{PageID: "nope"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		_, err := h.GetPage(t.Context(), req)
		var apiErr *dto.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
			t.Errorf("err = %v, want 404 APIError", err)
		}
	})

	t.Run("content failure keeps metadata with error set", func(t *testing.T) {
		up := &stubUpstream{
			pages:    map[string]*notion.Page{"p1": titledPage("p1", "Roadmap")},
			childErr: map[string]error{"p1": errors.New("blocks unreachable")},
		}
		h := NewPageHandler(&Services{Search: search.New(up, search.Options{})})
		req := &dto.GetPageRequest{PageID: "p1"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		page, err := h.GetPage(t.Context(), req)
		if err != nil {
			t.Fatalf("GetPage() = %v, want degraded object, not an error", err)
		}
		if page.Title != "Roadmap" || page.Error != "blocks unreachable" {
			t.Errorf("page = %+v", page)
		}
		if page.ContentText != nil || page.Elements != nil {
			t.Errorf("content fields should be omitted on a degraded page, got %+v", page)
		}
	})
}

func TestExportHandler(t *testing.T) {
	h := NewDatabaseHandler(newTestServices())
	req := &dto.ExportDatabaseRequest{DatabaseID: "d1"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	resp, err := h.Export(t.Context(), req)
	if err != nil {
		t.Fatalf("Export() = %v", err)
	}
	if resp.DatabaseID != "d1" || resp.Count != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Title != "Projects" {
		t.Errorf("Title = %q, want Projects", resp.Title)
	}
	row := resp.Results[0].(dto.PageObject)
	if row.ContentText == nil || *row.ContentText != "row body" {
		t.Errorf("row = %+v", row)
	}
}

func TestSearchDatabasePagesHandler(t *testing.T) {
	h := NewDatabaseHandler(newTestServices())

	t.Run("matches rows by title", func(t *testing.T) {
		req := &dto.SearchDatabasePagesRequest{DatabaseID: "d1", Query: "row"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		resp, err := h.SearchPages(t.Context(), req)
		if err != nil {
			t.Fatalf("SearchPages() = %v", err)
		}
		if resp.Count != 1 {
			t.Fatalf("Count = %d, want 1", resp.Count)
		}
		page := resp.Results[0].(dto.PageObject)
		if page.Title != "Row 1" || page.ContentText == nil || *page.ContentText != "row body" {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("no match yields empty result set", func(t *testing.T) {
		req := &dto.SearchDatabasePagesRequest{DatabaseID: "d1", Query: "nothing"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		resp, err := h.SearchPages(t.Context(), req)
		if err != nil {
			t.Fatalf("SearchPages() = %v", err)
		}
		if resp.Count != 0 {
			t.Errorf("Count = %d, want 0", resp.Count)
		}
	})

	t.Run("unknown database maps to 404", func(t *testing.T) {
		req := &dto.SearchDatabasePagesRequest{DatabaseID: "nope", Query: "row"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		_, err := h.SearchPages(t.Context(), req)
		var apiErr *dto.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
			t.Errorf("err = %v, want 404 APIError", err)
		}
	})
}

func TestGetContextHandler(t *testing.T) {
	h := NewPageHandler(newTestServices())

	t.Run("text format", func(t *testing.T) {
		req := &dto.ContextRequest{PageIDs: []string{"p1"}}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		resp, err := h.GetContext(t.Context(), req)
		if err != nil {
			t.Fatalf("GetContext() = %v", err)
		}
		if resp.PageCount != 1 {
			t.Errorf("PageCount = %d, want 1", resp.PageCount)
		}
		if !strings.Contains(resp.Context, "=== Roadmap ===") || !strings.Contains(resp.Context, "Ship it") {
			t.Errorf("Context = %q", resp.Context)
		}
	})

	t.Run("markdown format", func(t *testing.T) {
		req := &dto.ContextRequest{PageIDs: []string{"p1"}, Format: "markdown"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		resp, err := h.GetContext(t.Context(), req)
		if err != nil {
			t.Fatalf("GetContext() = %v", err)
		}
		if !strings.HasPrefix(resp.Context, "## Roadmap") {
			t.Errorf("Context = %q", resp.Context)
		}
	})

	t.Run("failed pages are dropped", func(t *testing.T) {
		req := &dto.ContextRequest{PageIDs: []string{"p1", "missing"}}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v", err)
		}
		resp, err := h.GetContext(t.Context(), req)
		if err != nil {
			t.Fatalf("GetContext() = %v", err)
		}
		if resp.PageCount != 1 {
			t.Errorf("PageCount = %d, want 1", resp.PageCount)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(&Config{Version: "1.2.3", UpstreamConfigured: true})
	resp, err := h.Health(t.Context(), &dto.HealthRequest{})
	if err != nil {
		t.Fatalf("Health() = %v", err)
	}
	if resp.Status != "ok" || resp.Version != "1.2.3" || !resp.UpstreamConfigured {
		t.Errorf("resp = %+v", resp)
	}

	root, err := h.Root(t.Context(), &dto.RootRequest{})
	if err != nil {
		t.Fatalf("Root() = %v", err)
	}
	if root.Service != "notionctx" || len(root.Endpoints) == 0 {
		t.Errorf("root = %+v", root)
	}
}
