// Package search orchestrates upstream search, fetch, and expansion with
// bounded concurrency and per-item failure isolation.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/notionctx/notionctx/internal/extract"
	"github.com/notionctx/notionctx/internal/notion"
)

// TimeoutError marks items whose fetch did not resolve before the
// per-request deadline.
const TimeoutError = "timeout"

// Upstream is the slice of the Notion client the orchestrator needs.
// *notion.Client implements it.
type Upstream interface {
	Search(ctx context.Context, req *notion.SearchRequest) (*notion.SearchResponse, error)
	GetPage(ctx context.Context, id string) (*notion.Page, error)
	GetDatabase(ctx context.Context, id string) (*notion.Database, error)
	QueryDatabase(ctx context.Context, databaseID string, opts *notion.QueryOptions) (*notion.QueryResponse, error)
	QueryDatabaseAll(ctx context.Context, databaseID string, opts *notion.QueryOptions) ([]notion.Page, error)
	GetBlockChildrenAll(ctx context.Context, blockID string) ([]notion.Block, error)
}

// Options tunes the fan-out behavior.
type Options struct {
	// MaxConcurrent bounds concurrently running fetch/assemble tasks.
	MaxConcurrent int
	// Timeout bounds the total duration of one request's fan-out.
	Timeout time.Duration
}

// Params carries the per-request knobs shared by the search operations.
type Params struct {
	Query                string
	MaxResults           int
	IncludeBlocks        bool
	Format               extract.Format
	ExpandDatabases      bool
	PerDatabasePageLimit int
}

// Item is one slot of a search response: a page content object or an
// expanded database, never both.
type Item struct {
	Page     *extract.ContentObject
	Database *DatabaseResult
}

// Err returns the item-level error, if any.
func (it *Item) Err() string {
	switch {
	case it.Page != nil:
		return it.Page.Error
	case it.Database != nil:
		return it.Database.Err()
	}
	return ""
}

// DatabaseResult is a database hit with its expanded rows.
type DatabaseResult struct {
	ID             string
	Title          string
	URL            string
	LastEditedTime time.Time
	Expanded       bool
	Items          []extract.ContentObject
	Error          string
}

// Err returns the first error carried by the database or any of its rows.
func (dr *DatabaseResult) Err() string {
	if dr.Error != "" {
		return dr.Error
	}
	for i := range dr.Items {
		if dr.Items[i].Error != "" {
			return dr.Items[i].Error
		}
	}
	return ""
}

// Response is the assembled result of one search operation. Items keep the
// upstream relevance order. Partial is true when any item carries an error.
type Response struct {
	Query   string
	Items   []Item
	Took    time.Duration
	Partial bool
}

// Orchestrator fans search hits out to fetch and expansion work.
type Orchestrator struct {
	client        Upstream
	asm           *extract.Assembler
	maxConcurrent int
	timeout       time.Duration
}

// New creates an orchestrator over the given upstream client.
func New(client Upstream, opts Options) *Orchestrator {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Orchestrator{
		client:        client,
		asm:           &extract.Assembler{Lister: client},
		maxConcurrent: opts.MaxConcurrent,
		timeout:       opts.Timeout,
	}
}

// SearchPages searches for pages and assembles each hit's content.
func (o *Orchestrator) SearchPages(ctx context.Context, p Params) (*Response, error) {
	return o.run(ctx, p, notion.FilterPages())
}

// SearchDatabases searches for databases and expands each hit's rows.
func (o *Orchestrator) SearchDatabases(ctx context.Context, p Params) (*Response, error) {
	p.ExpandDatabases = true
	return o.run(ctx, p, notion.FilterDatabases())
}

// Query searches pages and databases together. Pages and databases count
// against the same cap, in upstream order.
func (o *Orchestrator) Query(ctx context.Context, p Params) (*Response, error) {
	return o.run(ctx, p, nil)
}

// Recent lists the most recently edited pages the integration can see.
// The upstream returns recency order for an empty query.
func (o *Orchestrator) Recent(ctx context.Context, p Params) (*Response, error) {
	p.Query = ""
	return o.run(ctx, p, notion.FilterPages())
}

// run is the shared search pipeline: one upstream search, partition and
// cap, then a bounded fan-out writing into indexed slots so output order
// matches upstream order regardless of completion order. The deadline is
// installed before the initial search so it bounds the whole request. Only
// the initial search call can fail the request; everything after degrades
// per item.
func (o *Orchestrator) run(ctx context.Context, p Params, filter *notion.SearchFilter) (*Response, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.Search(ctx, &notion.SearchRequest{Query: p.Query, Filter: filter})
	if err != nil {
		return nil, err
	}
	hits := resp.Results
	if p.MaxResults > 0 && len(hits) > p.MaxResults {
		hits = hits[:p.MaxResults]
	}

	items := make([]Item, len(hits))
	o.forEach(len(hits), func(i int) {
		hit := &hits[i]
		if hit.Object == "database" {
			dr := o.expandDatabase(ctx, hit, p)
			items[i] = Item{Database: &dr}
			return
		}
		obj := o.asm.FromSearchResult(hit)
		o.asm.Assemble(ctx, &obj, p.IncludeBlocks, p.Format)
		markTimeout(ctx, &obj)
		items[i] = Item{Page: &obj}
	})

	out := &Response{Query: p.Query, Items: items, Took: time.Since(start)}
	for i := range items {
		if items[i].Err() != "" {
			out.Partial = true
			break
		}
	}
	return out, nil
}

// FetchPage fetches a single page by ID and assembles its content. The
// metadata fetch failure is request-level since there is nothing to degrade
// to; a content fetch failure is captured on the object.
func (o *Orchestrator) FetchPage(ctx context.Context, pageID string, includeBlocks bool, format extract.Format) (*extract.ContentObject, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	page, err := o.client.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	obj := o.asm.FromPage(page)
	o.asm.Assemble(ctx, &obj, includeBlocks, format)
	markTimeout(ctx, &obj)
	return &obj, nil
}

// expandDatabase lists up to PerDatabasePageLimit rows of a database hit
// and assembles each row concurrently. Row failures stay on their row.
func (o *Orchestrator) expandDatabase(ctx context.Context, hit *notion.SearchResult, p Params) DatabaseResult {
	dr := DatabaseResult{
		ID:             hit.ID,
		Title:          extract.Normalize(notion.PlainText(hit.Title)),
		URL:            hit.URL,
		LastEditedTime: hit.LastEditedTime,
	}
	if !p.ExpandDatabases {
		return dr
	}
	dr.Expanded = true

	limit := p.PerDatabasePageLimit
	if limit <= 0 {
		limit = 10
	}
	resp, err := o.client.QueryDatabase(ctx, hit.ID, &notion.QueryOptions{PageSize: limit})
	if err != nil {
		dr.Error = itemError(err)
		return dr
	}
	rows := resp.Results
	if len(rows) > limit {
		rows = rows[:limit]
	}

	dr.Items = make([]extract.ContentObject, len(rows))
	o.forEach(len(rows), func(i int) {
		obj := o.asm.FromPage(&rows[i])
		o.asm.Assemble(ctx, &obj, p.IncludeBlocks, p.Format)
		markTimeout(ctx, &obj)
		dr.Items[i] = obj
	})
	return dr
}

// Export is the full dump of one database.
type Export struct {
	DatabaseID string
	Title      string
	URL        string
	Results    []extract.ContentObject
	Took       time.Duration
	Partial    bool
}

// ExportDatabase dumps every row of a database with pagination. The deadline
// is installed first so the pagination loop cannot run past it. The metadata
// fetch and initial listing are request-level errors; per-row failures
// degrade.
func (o *Orchestrator) ExportDatabase(ctx context.Context, databaseID string, includeBlocks bool, format extract.Format) (*Export, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	db, err := o.client.GetDatabase(ctx, databaseID)
	if err != nil {
		return nil, err
	}
	pages, err := o.client.QueryDatabaseAll(ctx, databaseID, nil)
	if err != nil {
		return nil, err
	}

	results := make([]extract.ContentObject, len(pages))
	o.forEach(len(pages), func(i int) {
		obj := o.asm.FromPage(&pages[i])
		o.asm.Assemble(ctx, &obj, includeBlocks, format)
		markTimeout(ctx, &obj)
		results[i] = obj
	})

	out := &Export{
		DatabaseID: databaseID,
		Title:      extract.Normalize(notion.PlainText(db.Title)),
		URL:        db.URL,
		Results:    results,
		Took:       time.Since(start),
	}
	for i := range results {
		if results[i].Error != "" {
			out.Partial = true
			break
		}
	}
	return out, nil
}

// SearchInDatabase finds rows of one database whose title contains the
// query, case-insensitive, and assembles each match. The listing failure is
// request-level; row content failures degrade.
func (o *Orchestrator) SearchInDatabase(ctx context.Context, databaseID string, p Params) (*Response, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	pages, err := o.client.QueryDatabaseAll(ctx, databaseID, nil)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(p.Query)
	var matched []notion.Page
	for i := range pages {
		title := extract.Normalize(extract.PageTitle(pages[i].Properties))
		if !strings.Contains(strings.ToLower(title), q) {
			continue
		}
		matched = append(matched, pages[i])
		if p.MaxResults > 0 && len(matched) == p.MaxResults {
			break
		}
	}

	items := make([]Item, len(matched))
	o.forEach(len(matched), func(i int) {
		obj := o.asm.FromPage(&matched[i])
		o.asm.Assemble(ctx, &obj, p.IncludeBlocks, p.Format)
		markTimeout(ctx, &obj)
		items[i] = Item{Page: &obj}
	})

	out := &Response{Query: p.Query, Items: items, Took: time.Since(start)}
	for i := range items {
		if items[i].Err() != "" {
			out.Partial = true
			break
		}
	}
	return out, nil
}

// FetchPages assembles several pages by ID, order preserved.
func (o *Orchestrator) FetchPages(ctx context.Context, pageIDs []string, format extract.Format) []extract.ContentObject {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	results := make([]extract.ContentObject, len(pageIDs))
	o.forEach(len(pageIDs), func(i int) {
		page, err := o.client.GetPage(ctx, pageIDs[i])
		if err != nil {
			results[i] = extract.ContentObject{ID: pageIDs[i], ObjectType: "page", Error: itemError(err)}
			return
		}
		obj := o.asm.FromPage(page)
		o.asm.Assemble(ctx, &obj, true, format)
		markTimeout(ctx, &obj)
		results[i] = obj
	})
	return results
}

// forEach runs fn for each index with at most maxConcurrent in flight and
// waits for all of them. fn writes results into its own slot.
func (o *Orchestrator) forEach(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	sem := make(chan struct{}, o.maxConcurrent)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn(i)
		}()
	}
	wg.Wait()
}

// markTimeout rewrites an item error to the timeout marker, so abandoned
// items report uniformly. Only errors caused by the expired context qualify;
// a genuine upstream failure that lands at the deadline keeps its message.
func markTimeout(ctx context.Context, obj *extract.ContentObject) {
	cause := ctx.Err()
	if cause == nil || obj.Error == "" {
		return
	}
	if strings.Contains(obj.Error, cause.Error()) {
		slog.DebugContext(ctx, "Item unresolved at deadline", "id", obj.ID)
		obj.Error = TimeoutError
	}
}

// itemError is markTimeout for paths that still hold the error value.
func itemError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return TimeoutError
	}
	return err.Error()
}
