// Assembles pages and database rows into content objects.

package extract

import (
	"context"
	"strings"
	"time"

	"github.com/notionctx/notionctx/internal/notion"
)

// Format selects which content renderings an assembled object carries.
type Format string

// Recognized formats.
const (
	FormatText     Format = "text"
	FormatElements Format = "elements"
	FormatBoth     Format = "both"
)

// Valid reports whether f is one of the recognized formats.
func (f Format) Valid() bool {
	return f == FormatText || f == FormatElements || f == FormatBoth
}

// IncludesText reports whether the flattened text form is wanted.
func (f Format) IncludesText() bool { return f == FormatText || f == FormatBoth }

// IncludesElements reports whether the structured element form is wanted.
func (f Format) IncludesElements() bool { return f == FormatElements || f == FormatBoth }

// ContentObject is the assembled result for one page or database row.
// When Error is set the content fields are empty and the object stands in
// for the item that failed.
type ContentObject struct {
	ID             string
	ObjectType     string
	Title          string
	URL            string
	CreatedTime    time.Time
	LastEditedTime time.Time
	Properties     map[string]any
	Elements       []Element
	ContentText    string
	TotalBlocks    int
	Error          string
}

// Assembler builds content objects by driving block extraction.
type Assembler struct {
	Lister ChildLister
}

// FromPage builds a metadata-only content object from a page record.
func (a *Assembler) FromPage(p *notion.Page) ContentObject {
	return ContentObject{
		ID:             p.ID,
		ObjectType:     "page",
		Title:          Normalize(PageTitle(p.Properties)),
		URL:            p.URL,
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
		Properties:     FlattenProperties(p.Properties),
	}
}

// FromSearchResult builds a metadata-only content object from a search hit.
func (a *Assembler) FromSearchResult(m *notion.SearchResult) ContentObject {
	title := PageTitle(m.Properties)
	if title == "" {
		title = notion.PlainText(m.Title)
	}
	return ContentObject{
		ID:             m.ID,
		ObjectType:     m.Object,
		Title:          Normalize(title),
		URL:            m.URL,
		CreatedTime:    m.CreatedTime,
		LastEditedTime: m.LastEditedTime,
	}
}

// Assemble fills the content fields of obj according to includeBlocks and
// format. With includeBlocks false it is the listing-only fast path and
// returns immediately. A fetch failure is captured as obj.Error rather than
// propagated, so one bad item never aborts a batch.
func (a *Assembler) Assemble(ctx context.Context, obj *ContentObject, includeBlocks bool, format Format) {
	if !includeBlocks {
		return
	}
	elements, err := Flatten(ctx, a.Lister, obj.ID)
	if err != nil {
		obj.Error = err.Error()
		return
	}
	obj.TotalBlocks = len(elements)
	if format.IncludesElements() {
		obj.Elements = elements
	}
	if format.IncludesText() {
		obj.ContentText = JoinText(elements)
	}
}

// JoinText renders elements to the flattened text form: non-empty texts in
// traversal order, one per line, normalized as a whole.
func JoinText(elements []Element) string {
	parts := make([]string, 0, len(elements))
	for i := range elements {
		if elements[i].Text != "" {
			parts = append(parts, elements[i].Text)
		}
	}
	return Normalize(strings.Join(parts, "\n"))
}

// PageTitle returns the plain text of the title property, or "".
func PageTitle(props map[string]notion.PropertyValue) string {
	for _, pv := range props {
		if pv.Type == "title" {
			return notion.PlainText(pv.Title)
		}
	}
	return ""
}

// FlattenProperties reduces property values to plain scalars keyed by
// property name. Types without a natural scalar form are skipped.
func FlattenProperties(props map[string]notion.PropertyValue) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]any, len(props))
	for name, pv := range props {
		switch pv.Type {
		case "title":
			out[name] = notion.PlainText(pv.Title)
		case "rich_text":
			out[name] = notion.PlainText(pv.RichText)
		case "select":
			if pv.Select != nil {
				out[name] = pv.Select.Name
			} else {
				out[name] = nil
			}
		case "status":
			if pv.Status != nil {
				out[name] = pv.Status.Name
			} else {
				out[name] = nil
			}
		case "multi_select":
			names := make([]string, len(pv.MultiSelect))
			for i, s := range pv.MultiSelect {
				names[i] = s.Name
			}
			out[name] = names
		case "date":
			if pv.Date != nil {
				out[name] = pv.Date.Start
			} else {
				out[name] = nil
			}
		case "checkbox":
			checked := false
			if pv.Checkbox != nil {
				checked = *pv.Checkbox
			}
			out[name] = checked
		case "number":
			if pv.Number != nil {
				out[name] = *pv.Number
			} else {
				out[name] = nil
			}
		case "url":
			out[name] = deref(pv.URL)
		case "email":
			out[name] = deref(pv.Email)
		case "phone_number":
			out[name] = deref(pv.PhoneNumber)
		case "people":
			out[name] = len(pv.People)
		}
	}
	return out
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
