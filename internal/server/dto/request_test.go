package dto

import (
	"errors"
	"testing"
)

func TestSearchPagesRequestDefaults(t *testing.T) {
	r := &SearchPagesRequest{Query: "roadmap"}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if r.Opts.MaxResults != DefaultMaxResults {
		t.Errorf("MaxResults = %d, want %d", r.Opts.MaxResults, DefaultMaxResults)
	}
	if !r.Opts.IncludeBlocks {
		t.Error("IncludeBlocks should default to true")
	}
	if r.Opts.Format != FormatBoth {
		t.Errorf("Format = %q, want %q", r.Opts.Format, FormatBoth)
	}
	if r.Opts.Minimal {
		t.Error("Minimal should default to false")
	}
	if r.Opts.MinimalMode != MinimalModeString {
		t.Errorf("MinimalMode = %q, want %q", r.Opts.MinimalMode, MinimalModeString)
	}
}

func TestSearchPagesRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      SearchPagesRequest
		wantCode ErrorCode
	}{
		{"missing query", SearchPagesRequest{}, ErrorCodeMissingField},
		{"max_results zero", SearchPagesRequest{Query: "x", MaxResults: "0"}, ErrorCodeInvalidFormat},
		{"max_results too large", SearchPagesRequest{Query: "x", MaxResults: "51"}, ErrorCodeInvalidFormat},
		{"max_results not a number", SearchPagesRequest{Query: "x", MaxResults: "ten"}, ErrorCodeInvalidFormat},
		{"max_results negative", SearchPagesRequest{Query: "x", MaxResults: "-1"}, ErrorCodeInvalidFormat},
		{"bad bool", SearchPagesRequest{Query: "x", IncludeBlocks: "maybe"}, ErrorCodeInvalidFormat},
		{"bad format", SearchPagesRequest{Query: "x", Format: "xml"}, ErrorCodeInvalidFormat},
		{"bad minimal_mode", SearchPagesRequest{Query: "x", MinimalMode: "csv"}, ErrorCodeInvalidFormat},
		{"upper bound ok", SearchPagesRequest{Query: "x", MaxResults: "50"}, ""},
		{"lower bound ok", SearchPagesRequest{Query: "x", MaxResults: "1"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Validate() = %v, want *APIError", err)
			}
			if apiErr.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", apiErr.Code(), tt.wantCode)
			}
			if apiErr.StatusCode() != 400 {
				t.Errorf("StatusCode() = %d, want 400", apiErr.StatusCode())
			}
		})
	}
}

func TestSearchDatabasesRequestDefaults(t *testing.T) {
	r := &SearchDatabasesRequest{Query: "projects"}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if r.Opts.IncludeBlocks {
		t.Error("IncludeBlocks should default to false for database search")
	}
	if r.Opts.PerDatabasePageLimit != DefaultPageLimit {
		t.Errorf("PerDatabasePageLimit = %d, want %d", r.Opts.PerDatabasePageLimit, DefaultPageLimit)
	}
}

func TestQueryRequestValidate(t *testing.T) {
	r := &QueryRequest{Query: "q", PerDatabasePageLimit: "51"}
	err := r.Validate()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Validate() = %v, want *APIError", err)
	}

	r = &QueryRequest{Query: "q", ExpandDatabases: "false", PerDatabasePageLimit: "25"}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if r.Opts.ExpandDatabases {
		t.Error("ExpandDatabases = true, want false")
	}
	if r.Opts.PerDatabasePageLimit != 25 {
		t.Errorf("PerDatabasePageLimit = %d, want 25", r.Opts.PerDatabasePageLimit)
	}
}

func TestExportDatabaseRequestValidate(t *testing.T) {
	r := &ExportDatabaseRequest{}
	if err := r.Validate(); err == nil {
		t.Fatal("Validate() = nil, want missing database_id error")
	}
	r = &ExportDatabaseRequest{DatabaseID: "db1", Format: "text"}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if r.Opts.Format != FormatText {
		t.Errorf("Format = %q, want %q", r.Opts.Format, FormatText)
	}
	if !r.Opts.IncludeBlocks {
		t.Error("IncludeBlocks should default to true for export")
	}
}

func TestSearchDatabasePagesRequestValidate(t *testing.T) {
	r := &SearchDatabasePagesRequest{Query: "x"}
	if err := r.Validate(); err == nil {
		t.Fatal("Validate() = nil, want missing database_id error")
	}
	r = &SearchDatabasePagesRequest{DatabaseID: "db1"}
	if err := r.Validate(); err == nil {
		t.Fatal("Validate() = nil, want missing q error")
	}
	r = &SearchDatabasePagesRequest{DatabaseID: "db1", Query: "alpha", MaxResults: "51"}
	if err := r.Validate(); err == nil {
		t.Fatal("Validate() = nil, want out of range error")
	}

	r = &SearchDatabasePagesRequest{DatabaseID: "db1", Query: "alpha"}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if r.Opts.MaxResults != DefaultMaxResults || !r.Opts.IncludeBlocks || r.Opts.Format != FormatBoth {
		t.Errorf("Opts = %+v", r.Opts)
	}
}

func TestContextRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ContextRequest
		wantErr bool
	}{
		{"empty ids", ContextRequest{}, true},
		{"blank id", ContextRequest{PageIDs: []string{"a", ""}}, true},
		{"bad format", ContextRequest{PageIDs: []string{"a"}, Format: "yaml"}, true},
		{"ok", ContextRequest{PageIDs: []string{"a", "b"}, Format: "markdown"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	r := &ContextRequest{PageIDs: make([]string, maxContextPages+1)}
	for i := range r.PageIDs {
		r.PageIDs[i] = "p"
	}
	if err := r.Validate(); err == nil {
		t.Error("Validate() = nil, want too many pages error")
	}

	r = &ContextRequest{PageIDs: []string{"a"}}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if r.Format != ContextFormatText {
		t.Errorf("Format = %q, want %q", r.Format, ContextFormatText)
	}
}
