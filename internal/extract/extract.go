// Flattens Notion block trees into element sequences.

package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/notionctx/notionctx/internal/notion"
)

// CellDelimiter joins table row cells in the flattened text form.
const CellDelimiter = " | "

// Element is the normalized representation of one block. Depth 0 is a
// top-level block of the page; children sit at parent depth plus one.
type Element struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text"`
	Depth    int            `json:"depth"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ChildLister fetches the direct children of a block. *notion.Client
// implements it.
type ChildLister interface {
	GetBlockChildrenAll(ctx context.Context, blockID string) ([]notion.Block, error)
}

// Flatten fetches the block tree rooted at blockID and returns its elements
// in depth-first document order. A failure fetching the top-level list is
// returned to the caller; a failure deeper in the tree degrades that subtree
// only and keeps the traversal going.
func Flatten(ctx context.Context, lister ChildLister, blockID string) ([]Element, error) {
	blocks, err := lister.GetBlockChildrenAll(ctx, blockID)
	if err != nil {
		return nil, err
	}
	var out []Element
	walk(ctx, lister, blocks, 0, nil, &out)
	return out, nil
}

func walk(ctx context.Context, lister ChildLister, blocks []notion.Block, depth int, table *notion.TableBlock, out *[]Element) {
	for i := range blocks {
		b := &blocks[i]
		el := blockElement(b, depth)
		if table != nil && b.Type == "table_row" && table.HasColumnHeader && i == 0 {
			if el.Metadata == nil {
				el.Metadata = map[string]any{}
			}
			el.Metadata["header"] = true
		}
		*out = append(*out, el)

		if !b.HasChildren {
			continue
		}
		var childTable *notion.TableBlock
		if b.Type == "table" {
			childTable = b.Table
		}
		children, err := lister.GetBlockChildrenAll(ctx, b.ID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to fetch child blocks", "block", b.ID, "err", err)
			continue
		}
		walk(ctx, lister, children, depth+1, childTable, out)
	}
}

// blockElement converts one raw block into an element. Unknown kinds never
// fail; they become "unsupported" elements with empty text.
func blockElement(b *notion.Block, depth int) Element {
	el := Element{Kind: b.Type, Depth: depth}
	switch b.Type {
	case "paragraph":
		if b.Paragraph != nil {
			el.Text = notion.PlainText(b.Paragraph.RichText)
		}
	case "heading_1", "heading_2", "heading_3":
		var h *notion.HeadingBlock
		var level int
		switch b.Type {
		case "heading_1":
			h, level = b.Heading1, 1
		case "heading_2":
			h, level = b.Heading2, 2
		default:
			h, level = b.Heading3, 3
		}
		if h != nil {
			el.Text = notion.PlainText(h.RichText)
		}
		el.Metadata = map[string]any{"level": level}
	case "bulleted_list_item":
		if b.BulletedListItem != nil {
			el.Text = notion.PlainText(b.BulletedListItem.RichText)
		}
	case "numbered_list_item":
		if b.NumberedListItem != nil {
			el.Text = notion.PlainText(b.NumberedListItem.RichText)
		}
	case "to_do":
		if b.ToDo != nil {
			el.Text = notion.PlainText(b.ToDo.RichText)
			el.Metadata = map[string]any{"checked": b.ToDo.Checked}
		}
	case "toggle":
		if b.Toggle != nil {
			el.Text = notion.PlainText(b.Toggle.RichText)
		}
	case "quote":
		if b.Quote != nil {
			el.Text = notion.PlainText(b.Quote.RichText)
		}
	case "callout":
		if b.Callout != nil {
			el.Text = notion.PlainText(b.Callout.RichText)
		}
	case "code":
		if b.Code != nil {
			el.Text = notion.PlainText(b.Code.RichText)
			el.Metadata = map[string]any{"language": b.Code.Language}
		}
	case "divider":
		el.Text = "---"
	case "bookmark":
		if b.Bookmark != nil {
			el.Text = b.Bookmark.URL
		}
	case "table":
		if b.Table != nil {
			el.Metadata = map[string]any{
				"width":             b.Table.TableWidth,
				"has_column_header": b.Table.HasColumnHeader,
			}
		}
	case "table_row":
		if b.TableRow != nil {
			cells := make([]string, len(b.TableRow.Cells))
			for i, cell := range b.TableRow.Cells {
				cells[i] = notion.PlainText(cell)
			}
			el.Text = strings.Join(cells, CellDelimiter)
		}
	case "child_page":
		if b.ChildPage != nil {
			el.Text = b.ChildPage.Title
		}
	case "child_database":
		if b.ChildDatabase != nil {
			el.Text = b.ChildDatabase.Title
			el.Metadata = map[string]any{"title": b.ChildDatabase.Title}
		}
	default:
		el.Kind = "unsupported"
		el.Metadata = map[string]any{"type": b.Type}
	}
	el.Text = Normalize(el.Text)
	return el
}
