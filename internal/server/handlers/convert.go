// Converts assembled content into wire shapes.
//
// All minimal/full, string/lines and format branching lives here so the
// handlers stay declarative and every endpoint shapes items identically.

package handlers

import (
	"strings"
	"time"

	"github.com/notionctx/notionctx/internal/extract"
	"github.com/notionctx/notionctx/internal/search"
	"github.com/notionctx/notionctx/internal/server/dto"
)

// --- Time formatting ---

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func includesText(format string) bool {
	return format == dto.FormatText || format == dto.FormatBoth
}

func includesElements(format string) bool {
	return format == dto.FormatElements || format == dto.FormatBoth
}

// splitLines splits content into lines for minimal_mode=lines. Empty content
// yields an empty slice, not a single empty line.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// --- Content to DTO conversions ---

func elementsToDTO(elements []extract.Element) []dto.Element {
	out := make([]dto.Element, len(elements))
	for i, el := range elements {
		out[i] = dto.Element{
			Kind:     el.Kind,
			Text:     el.Text,
			Depth:    el.Depth,
			Metadata: el.Metadata,
		}
	}
	return out
}

// contentObjectToDTO shapes one page or database row. tagged adds the
// object_type discriminator used by the mixed query endpoint.
func contentObjectToDTO(obj *extract.ContentObject, opts dto.SearchOptions, tagged bool) any {
	if obj.Error != "" {
		return dto.ErrorItem{ID: obj.ID, Title: obj.Title, Error: obj.Error}
	}

	if opts.Minimal {
		out := dto.MinimalPage{Title: obj.Title}
		if includesText(opts.Format) {
			if opts.MinimalMode == dto.MinimalModeLines {
				lines := splitLines(obj.ContentText)
				out.ContentLines = &lines
			} else {
				text := obj.ContentText
				out.Content = &text
			}
		}
		return out
	}

	out := pageObjectToDTO(obj, opts)
	if tagged {
		out.ObjectType = obj.ObjectType
	}
	return out
}

// pageObjectToDTO is the full page shape. Unlike the batch shaping above it
// never collapses to an error item: a degraded object keeps its metadata
// with Error set, which is what the single page endpoint returns when the
// page exists but its content could not be fetched.
func pageObjectToDTO(obj *extract.ContentObject, opts dto.SearchOptions) dto.PageObject {
	out := dto.PageObject{
		ID:          obj.ID,
		Title:       obj.Title,
		URL:         obj.URL,
		CreatedTime: formatTime(obj.CreatedTime),
		LastEdited:  formatTime(obj.LastEditedTime),
		Properties:  obj.Properties,
		TotalBlocks: obj.TotalBlocks,
		Error:       obj.Error,
	}
	if obj.Error == "" && opts.IncludeBlocks {
		if includesText(opts.Format) {
			text := obj.ContentText
			out.ContentText = &text
		}
		if includesElements(opts.Format) {
			elements := elementsToDTO(obj.Elements)
			out.Elements = &elements
		}
	}
	return out
}

// databaseToDTO shapes a database hit with its expanded rows.
func databaseToDTO(dr *search.DatabaseResult, opts dto.SearchOptions, tagged bool) any {
	if dr.Error != "" {
		return dto.ErrorItem{ID: dr.ID, Title: dr.Title, Error: dr.Error}
	}

	var items []any
	if dr.Expanded {
		items = make([]any, len(dr.Items))
		for i := range dr.Items {
			items[i] = contentObjectToDTO(&dr.Items[i], opts, false)
		}
	}

	if opts.Minimal {
		if items == nil {
			items = []any{}
		}
		return dto.MinimalDatabase{Database: dr.Title, Items: items}
	}

	out := dto.DatabaseObject{
		ID:         dr.ID,
		Title:      dr.Title,
		URL:        dr.URL,
		LastEdited: formatTime(dr.LastEditedTime),
	}
	if tagged {
		out.ObjectType = "database"
	}
	if dr.Expanded {
		out.Items = &items
	}
	return out
}

func itemToDTO(it *search.Item, opts dto.SearchOptions, tagged bool) any {
	switch {
	case it.Page != nil:
		return contentObjectToDTO(it.Page, opts, tagged)
	case it.Database != nil:
		return databaseToDTO(it.Database, opts, tagged)
	}
	return nil
}

// searchResponseToDTO shapes a whole search result set.
func searchResponseToDTO(resp *search.Response, opts dto.SearchOptions, tagged bool) *dto.SearchResponse {
	results := make([]any, len(resp.Items))
	for i := range resp.Items {
		results[i] = itemToDTO(&resp.Items[i], opts, tagged)
	}
	return &dto.SearchResponse{
		Query:   resp.Query,
		Results: results,
		Count:   len(results),
		TookMS:  resp.Took.Milliseconds(),
		Partial: resp.Partial,
	}
}

// exportToDTO shapes a full database dump.
func exportToDTO(exp *search.Export, opts dto.SearchOptions) *dto.ExportResponse {
	results := make([]any, len(exp.Results))
	for i := range exp.Results {
		results[i] = contentObjectToDTO(&exp.Results[i], opts, false)
	}
	return &dto.ExportResponse{
		DatabaseID: exp.DatabaseID,
		Title:      exp.Title,
		URL:        exp.URL,
		Count:      len(results),
		Results:    results,
		TookMS:     exp.Took.Milliseconds(),
		Partial:    exp.Partial,
	}
}
