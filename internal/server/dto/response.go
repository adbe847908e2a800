package dto

// Element is one flattened content unit carried on the wire.
type Element struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text"`
	Depth    int            `json:"depth"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PageObject is the full page shape returned by search and fetch endpoints.
//
// ContentText and Elements are pointers so the format axis can include a
// field with an empty value or omit it entirely.
type PageObject struct {
	ObjectType  string         `json:"object_type,omitempty"`
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	URL         string         `json:"url,omitempty"`
	CreatedTime string         `json:"created_time,omitempty"`
	LastEdited  string         `json:"last_edited,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	TotalBlocks int            `json:"total_blocks"`
	ContentText *string        `json:"content_text,omitempty"`
	Elements    *[]Element     `json:"elements,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// DatabaseObject is the full database shape with optionally expanded rows.
type DatabaseObject struct {
	ObjectType string `json:"object_type,omitempty"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	LastEdited string `json:"last_edited,omitempty"`
	Items      *[]any `json:"items,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ErrorItem replaces a result slot whose fetch failed.
type ErrorItem struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Error string `json:"error"`
}

// MinimalPage is the compact page shape produced when minimal=true.
// Exactly one of Content and ContentLines is set, per minimal_mode,
// and neither is set when the format axis excludes text.
type MinimalPage struct {
	Title        string    `json:"title"`
	Content      *string   `json:"content,omitempty"`
	ContentLines *[]string `json:"content_lines,omitempty"`
}

// MinimalDatabase is the compact database shape produced when minimal=true.
type MinimalDatabase struct {
	Database string `json:"database"`
	Items    []any  `json:"items"`
}

// SearchResponse is the envelope for the search and query endpoints.
// Results holds page or database shapes, minimal or full, item errors
// included, in upstream relevance order.
type SearchResponse struct {
	Query   string `json:"query"`
	Results []any  `json:"results"`
	Count   int    `json:"count"`
	TookMS  int64  `json:"took_ms"`
	Partial bool   `json:"partial,omitempty"`
}

// ExportResponse is the envelope for a full database dump.
type ExportResponse struct {
	DatabaseID string `json:"database_id"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	Count      int    `json:"count"`
	Results    []any  `json:"results"`
	TookMS     int64  `json:"took_ms"`
	Partial    bool   `json:"partial,omitempty"`
}

// ContextResponse carries an assembled multi-page context blob.
type ContextResponse struct {
	Context   string `json:"context"`
	PageCount int    `json:"page_count"`
}

// HealthResponse reports service liveness and upstream configuration.
type HealthResponse struct {
	Status             string `json:"status"`
	Service            string `json:"service"`
	Version            string `json:"version"`
	UpstreamConfigured bool   `json:"upstream_configured"`
}

// RootResponse is the banner served at the API root.
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
