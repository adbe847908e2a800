// Defines API request types with query/path binding and validation.
//
// Numeric and boolean query parameters bind as raw strings so that
// malformed values can be rejected instead of silently dropped; Validate
// parses them into the typed Opts field.

package dto

// Format axis values.
const (
	FormatText     = "text"
	FormatElements = "elements"
	FormatBoth     = "both"
)

// MinimalMode axis values.
const (
	MinimalModeString = "string"
	MinimalModeLines  = "lines"
)

// SearchOptions are the parsed, validated options shared by the search
// style requests.
type SearchOptions struct {
	MaxResults           int
	PerDatabasePageLimit int
	IncludeBlocks        bool
	ExpandDatabases      bool
	Format               string
	Minimal              bool
	MinimalMode          string
}

// SearchPagesRequest is a request to search pages and return their content.
type SearchPagesRequest struct {
	Query         string `query:"q"`
	MaxResults    string `query:"max_results"`
	IncludeBlocks string `query:"include_blocks"`
	Format        string `query:"format"`
	Minimal       string `query:"minimal"`
	MinimalMode   string `query:"minimal_mode"`

	// Opts is populated by Validate.
	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the search pages request parameters.
func (r *SearchPagesRequest) Validate() error {
	if r.Query == "" {
		return MissingField("q")
	}
	var err error
	if r.Opts.MaxResults, err = parseCount("max_results", r.MaxResults, DefaultMaxResults); err != nil {
		return err
	}
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, true); err != nil {
		return err
	}
	if r.Opts.Format, err = parseEnum("format", r.Format, FormatBoth, FormatText, FormatElements, FormatBoth); err != nil {
		return err
	}
	if r.Opts.Minimal, err = parseBool("minimal", r.Minimal, false); err != nil {
		return err
	}
	if r.Opts.MinimalMode, err = parseEnum("minimal_mode", r.MinimalMode, MinimalModeString, MinimalModeString, MinimalModeLines); err != nil {
		return err
	}
	return nil
}

// SearchDatabasesRequest is a request to search databases and list their rows.
type SearchDatabasesRequest struct {
	Query                string `query:"q"`
	MaxResults           string `query:"max_results"`
	PerDatabasePageLimit string `query:"per_database_page_limit"`
	IncludeBlocks        string `query:"include_blocks"`
	Format               string `query:"format"`
	Minimal              string `query:"minimal"`
	MinimalMode          string `query:"minimal_mode"`

	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the search databases request parameters.
func (r *SearchDatabasesRequest) Validate() error {
	if r.Query == "" {
		return MissingField("q")
	}
	var err error
	if r.Opts.MaxResults, err = parseCount("max_results", r.MaxResults, DefaultMaxResults); err != nil {
		return err
	}
	if r.Opts.PerDatabasePageLimit, err = parseCount("per_database_page_limit", r.PerDatabasePageLimit, DefaultPageLimit); err != nil {
		return err
	}
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, false); err != nil {
		return err
	}
	if r.Opts.Format, err = parseEnum("format", r.Format, FormatBoth, FormatText, FormatElements, FormatBoth); err != nil {
		return err
	}
	if r.Opts.Minimal, err = parseBool("minimal", r.Minimal, false); err != nil {
		return err
	}
	if r.Opts.MinimalMode, err = parseEnum("minimal_mode", r.MinimalMode, MinimalModeString, MinimalModeString, MinimalModeLines); err != nil {
		return err
	}
	return nil
}

// QueryRequest is a combined pages+databases search request.
type QueryRequest struct {
	Query                string `query:"q"`
	MaxResults           string `query:"max_results"`
	PerDatabasePageLimit string `query:"per_database_page_limit"`
	ExpandDatabases      string `query:"expand_databases"`
	IncludeBlocks        string `query:"include_blocks"`
	Format               string `query:"format"`

	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the query request parameters.
func (r *QueryRequest) Validate() error {
	if r.Query == "" {
		return MissingField("q")
	}
	var err error
	if r.Opts.MaxResults, err = parseCount("max_results", r.MaxResults, DefaultMaxResults); err != nil {
		return err
	}
	if r.Opts.PerDatabasePageLimit, err = parseCount("per_database_page_limit", r.PerDatabasePageLimit, DefaultPageLimit); err != nil {
		return err
	}
	if r.Opts.ExpandDatabases, err = parseBool("expand_databases", r.ExpandDatabases, true); err != nil {
		return err
	}
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, true); err != nil {
		return err
	}
	if r.Opts.Format, err = parseEnum("format", r.Format, FormatBoth, FormatText, FormatElements, FormatBoth); err != nil {
		return err
	}
	return nil
}

// SearchDatabasePagesRequest is a request to search pages within one
// database by title.
type SearchDatabasePagesRequest struct {
	DatabaseID    string `path:"database_id"`
	Query         string `query:"q"`
	MaxResults    string `query:"max_results"`
	IncludeBlocks string `query:"include_blocks"`
	Format        string `query:"format"`
	Minimal       string `query:"minimal"`
	MinimalMode   string `query:"minimal_mode"`

	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the database search request parameters.
func (r *SearchDatabasePagesRequest) Validate() error {
	if r.DatabaseID == "" {
		return MissingField("database_id")
	}
	if r.Query == "" {
		return MissingField("q")
	}
	var err error
	if r.Opts.MaxResults, err = parseCount("max_results", r.MaxResults, DefaultMaxResults); err != nil {
		return err
	}
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, true); err != nil {
		return err
	}
	if r.Opts.Format, err = parseEnum("format", r.Format, FormatBoth, FormatText, FormatElements, FormatBoth); err != nil {
		return err
	}
	if r.Opts.Minimal, err = parseBool("minimal", r.Minimal, false); err != nil {
		return err
	}
	if r.Opts.MinimalMode, err = parseEnum("minimal_mode", r.MinimalMode, MinimalModeString, MinimalModeString, MinimalModeLines); err != nil {
		return err
	}
	return nil
}

// RecentPagesRequest is a request for the most recently edited pages.
type RecentPagesRequest struct {
	MaxResults    string `query:"max_results"`
	IncludeBlocks string `query:"include_blocks"`
	Minimal       string `query:"minimal"`
	MinimalMode   string `query:"minimal_mode"`

	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the recent pages request parameters.
func (r *RecentPagesRequest) Validate() error {
	var err error
	if r.Opts.MaxResults, err = parseCount("max_results", r.MaxResults, DefaultMaxResults); err != nil {
		return err
	}
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, false); err != nil {
		return err
	}
	if r.Opts.Minimal, err = parseBool("minimal", r.Minimal, false); err != nil {
		return err
	}
	if r.Opts.MinimalMode, err = parseEnum("minimal_mode", r.MinimalMode, MinimalModeString, MinimalModeString, MinimalModeLines); err != nil {
		return err
	}
	r.Opts.Format = FormatText
	return nil
}

// ExportDatabaseRequest is a request to dump a full database.
type ExportDatabaseRequest struct {
	DatabaseID    string `path:"database_id"`
	IncludeBlocks string `query:"include_blocks"`
	Format        string `query:"format"`

	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the export request parameters.
func (r *ExportDatabaseRequest) Validate() error {
	if r.DatabaseID == "" {
		return MissingField("database_id")
	}
	var err error
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, true); err != nil {
		return err
	}
	if r.Opts.Format, err = parseEnum("format", r.Format, FormatBoth, FormatText, FormatElements, FormatBoth); err != nil {
		return err
	}
	return nil
}

// GetPageRequest is a request to fetch one page with its content.
type GetPageRequest struct {
	PageID        string `path:"page_id"`
	IncludeBlocks string `query:"include_blocks"`
	Format        string `query:"format"`

	Opts SearchOptions `json:"-"`
}

// Validate validates and parses the get page request parameters.
func (r *GetPageRequest) Validate() error {
	if r.PageID == "" {
		return MissingField("page_id")
	}
	var err error
	if r.Opts.IncludeBlocks, err = parseBool("include_blocks", r.IncludeBlocks, true); err != nil {
		return err
	}
	if r.Opts.Format, err = parseEnum("format", r.Format, FormatBoth, FormatText, FormatElements, FormatBoth); err != nil {
		return err
	}
	return nil
}

// Context format values.
const (
	ContextFormatText     = "text"
	ContextFormatMarkdown = "markdown"
	ContextFormatJSON     = "json"
)

// maxContextPages bounds one context assembly request.
const maxContextPages = 20

// ContextRequest assembles several pages into one prompt-ready context blob.
type ContextRequest struct {
	PageIDs []string `json:"page_ids"`
	Format  string   `json:"format,omitempty"`
}

// Validate validates the context request fields.
func (r *ContextRequest) Validate() error {
	if len(r.PageIDs) == 0 {
		return MissingField("page_ids")
	}
	if len(r.PageIDs) > maxContextPages {
		return InvalidParam("page_ids", "at most 20 pages per request")
	}
	for _, id := range r.PageIDs {
		if id == "" {
			return InvalidParam("page_ids", "empty page ID")
		}
	}
	var err error
	if r.Format, err = parseEnum("format", r.Format, ContextFormatText, ContextFormatText, ContextFormatMarkdown, ContextFormatJSON); err != nil {
		return err
	}
	return nil
}

// HealthRequest is a request for the health endpoint.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error { return nil }

// RootRequest is a request for the service banner.
type RootRequest struct{}

// Validate is a no-op for RootRequest.
func (r *RootRequest) Validate() error { return nil }
