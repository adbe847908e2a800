// Tests for content assembly.

package extract

import (
	"errors"
	"testing"
	"time"

	"github.com/notionctx/notionctx/internal/notion"
)

func titleProp(text string) notion.PropertyValue {
	return notion.PropertyValue{Type: "title", Title: []notion.RichText{{PlainText: text}}}
}

func TestAssembleFormats(t *testing.T) {
	lister := &fakeLister{children: map[string][]notion.Block{
		"p1": {para("a", "first", false), para("b", "second", false)},
	}}
	a := &Assembler{Lister: lister}

	t.Run("both", func(t *testing.T) {
		obj := ContentObject{ID: "p1"}
		a.Assemble(t.Context(), &obj, true, FormatBoth)
		if obj.ContentText != "first\nsecond" {
			t.Errorf("ContentText = %q", obj.ContentText)
		}
		if len(obj.Elements) != 2 || obj.TotalBlocks != 2 {
			t.Errorf("Elements = %+v, TotalBlocks = %d", obj.Elements, obj.TotalBlocks)
		}
	})

	t.Run("text only", func(t *testing.T) {
		obj := ContentObject{ID: "p1"}
		a.Assemble(t.Context(), &obj, true, FormatText)
		if obj.ContentText == "" || obj.Elements != nil {
			t.Errorf("obj = %+v", obj)
		}
	})

	t.Run("elements only", func(t *testing.T) {
		obj := ContentObject{ID: "p1"}
		a.Assemble(t.Context(), &obj, true, FormatElements)
		if obj.ContentText != "" || len(obj.Elements) != 2 {
			t.Errorf("obj = %+v", obj)
		}
	})

	t.Run("listing only fast path", func(t *testing.T) {
		obj := ContentObject{ID: "p1"}
		a.Assemble(t.Context(), &obj, false, FormatBoth)
		if obj.ContentText != "" || obj.Elements != nil || obj.TotalBlocks != 0 {
			t.Errorf("obj = %+v", obj)
		}
	})
}

func TestAssembleCapturesFetchError(t *testing.T) {
	lister := &fakeLister{fail: map[string]error{"p1": errors.New("no access")}}
	a := &Assembler{Lister: lister}
	obj := ContentObject{ID: "p1"}
	a.Assemble(t.Context(), &obj, true, FormatBoth)
	if obj.Error != "no access" {
		t.Errorf("Error = %q", obj.Error)
	}
	if obj.ContentText != "" || obj.Elements != nil {
		t.Errorf("content fields should stay empty, obj = %+v", obj)
	}
}

func TestAssembleTotalBlocksCountsUnsupported(t *testing.T) {
	lister := &fakeLister{children: map[string][]notion.Block{
		"p1": {para("a", "text", false), {ID: "u", Type: "video"}},
	}}
	a := &Assembler{Lister: lister}
	obj := ContentObject{ID: "p1"}
	a.Assemble(t.Context(), &obj, true, FormatText)
	if obj.TotalBlocks != 2 {
		t.Errorf("TotalBlocks = %d, want 2", obj.TotalBlocks)
	}
	if obj.ContentText != "text" {
		t.Errorf("ContentText = %q", obj.ContentText)
	}
}

func TestFromPage(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &notion.Page{
		ID:          "p1",
		URL:         "https://notion.so/p1",
		CreatedTime: created,
		Properties: map[string]notion.PropertyValue{
			"Name":   titleProp("My Page"),
			"Status": {Type: "select", Select: &notion.SelectValue{Name: "Done"}},
		},
	}
	a := &Assembler{}
	obj := a.FromPage(p)
	if obj.Title != "My Page" {
		t.Errorf("Title = %q", obj.Title)
	}
	if obj.ObjectType != "page" || obj.URL != "https://notion.so/p1" || !obj.CreatedTime.Equal(created) {
		t.Errorf("obj = %+v", obj)
	}
	if obj.Properties["Status"] != "Done" {
		t.Errorf("Properties = %v", obj.Properties)
	}
}

func TestFlattenProperties(t *testing.T) {
	n := 4.5
	u := "https://example.com"
	checked := true
	props := map[string]notion.PropertyValue{
		"Name":   titleProp("T"),
		"Notes":  {Type: "rich_text", RichText: []notion.RichText{{PlainText: "hi"}}},
		"Score":  {Type: "number", Number: &n},
		"Done":   {Type: "checkbox", Checkbox: &checked},
		"Link":   {Type: "url", URL: &u},
		"Tags":   {Type: "multi_select", MultiSelect: []notion.SelectValue{{Name: "a"}, {Name: "b"}}},
		"When":   {Type: "date", Date: &notion.DateValue{Start: "2024-01-02"}},
		"Owner":  {Type: "people", People: []notion.Person{{ID: "u1"}}},
		"Status": {Type: "select"},
	}
	got := FlattenProperties(props)
	if got["Name"] != "T" || got["Notes"] != "hi" || got["Score"] != 4.5 {
		t.Errorf("got = %v", got)
	}
	if got["Done"] != true || got["Link"] != u || got["When"] != "2024-01-02" {
		t.Errorf("got = %v", got)
	}
	if tags, ok := got["Tags"].([]string); !ok || len(tags) != 2 {
		t.Errorf("Tags = %v", got["Tags"])
	}
	if got["Owner"] != 1 {
		t.Errorf("Owner = %v", got["Owner"])
	}
	if got["Status"] != nil {
		t.Errorf("Status = %v", got["Status"])
	}
}

func TestJoinTextSkipsEmpty(t *testing.T) {
	els := []Element{
		{Kind: "paragraph", Text: "a"},
		{Kind: "unsupported", Text: ""},
		{Kind: "paragraph", Text: "b"},
	}
	if got := JoinText(els); got != "a\nb" {
		t.Errorf("JoinText = %q", got)
	}
	if got := JoinText(nil); got != "" {
		t.Errorf("JoinText(nil) = %q", got)
	}
}
