package paged

import (
	"encoding/json"
	"fmt"
)

// Canonical alias chains for layout fields whose names drift across
// assembler versions. Each logical field has exactly one ordered list,
// shared by every consumer; structural fields (item type, positions) are
// not aliased and fail loudly instead.
var (
	textKeys       = []string{"text", "display", "value"}
	markerTextKeys = []string{"marker_override_text", "text", "label", "display", "bullet"}
	fontKeys       = []string{"font", "font_name", "family"}
	sizeKeys       = []string{"size", "font_size"}
	colorKeys      = []string{"color", "fill", "foreground"}
	highlightKeys  = []string{"highlight", "highlight_color", "background"}
	spacesKeys     = []string{"spaces", "space_count", "num_spaces"}
	suffixKeys     = []string{"suffix", "marker_suffix", "after"}
	baselineKeys   = []string{"baseline_adjust", "baseline", "shift"}

	superscriptKeys = []string{"superscript", "sup"}
	subscriptKeys   = []string{"subscript", "sub"}
	underlineKeys   = []string{"underline", "underlined"}
	strikeKeys      = []string{"strikethrough", "strike", "strikeout"}

	justifyKeys        = []string{"justify", "justified"}
	availableWidthKeys = []string{"available_width", "line_width"}
	contentWidthKeys   = []string{"content_width", "text_width"}

	imageBytesKeys  = []string{"bytes", "image_bytes"}
	imageSourceKeys = []string{"source", "path", "file"}
)

// ItemKind tags the layout item variants.
type ItemKind uint8

const (
	// ItemText is one positioned, styled text run.
	ItemText ItemKind = iota
	// ItemLine groups the runs of one laid-out line and carries its
	// justification geometry.
	ItemLine
	// ItemImage is a positioned raster image.
	ItemImage
	// ItemMarker is a list marker (bullet or numbering).
	ItemMarker
)

// Item is one read-only unit of the externally computed layout. The
// renderer never mutates items or recomputes their geometry.
type Item struct {
	Kind   ItemKind
	X, Y   float64
	Width  float64 // images only
	Height float64 // images only
	Data   Node
	Items  []Item // line children
}

// Page is one ordered sequence of layout items. Zero width or height means
// the document default applies.
type Page struct {
	Width  float64
	Height float64
	Items  []Item
}

// Document is the renderer's input: pages in paint order.
type Document struct {
	Pages []Page
}

// ParseDocument decodes a JSON layout document into its generic tree and
// validates the structural fields.
func ParseDocument(data []byte) (*Document, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructureParse, err)
	}
	pageNodes, err := RequireArray(root, "pages")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStructureParse, err)
	}
	doc := &Document{Pages: make([]Page, 0, len(pageNodes))}
	for i, pv := range pageNodes {
		pn, ok := pv.(Node)
		if !ok {
			return nil, fmt.Errorf("%w: page %d is %T, not an object", ErrStructureParse, i+1, pv)
		}
		page, err := parsePage(pn)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func parsePage(n Node) (Page, error) {
	page := Page{
		Width:  NumberOr(n, "width", 0),
		Height: NumberOr(n, "height", 0),
	}
	itemNodes, ok := Array(n, "items")
	if !ok {
		return page, nil
	}
	page.Items = make([]Item, 0, len(itemNodes))
	for i, iv := range itemNodes {
		in, isObj := iv.(Node)
		if !isObj {
			return Page{}, fmt.Errorf("%w: item %d is %T, not an object", ErrStructureParse, i+1, iv)
		}
		item, err := parseItem(in)
		if err != nil {
			return Page{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

func parseItem(n Node) (Item, error) {
	kindName, err := RequireString(n, "type")
	if err != nil {
		return Item{}, err
	}
	item := Item{Data: Node{}}
	if data, ok := Object(n, "data"); ok {
		item.Data = data
	}
	switch kindName {
	case "text", "run":
		item.Kind = ItemText
	case "line":
		item.Kind = ItemLine
	case "image":
		item.Kind = ItemImage
	case "marker":
		item.Kind = ItemMarker
	default:
		return Item{}, fmt.Errorf("%w: unknown item type %q", ErrInvalidLayout, kindName)
	}

	if item.Kind == ItemLine {
		// line children carry their own absolute positions
		item.X = NumberOr(n, "x", 0)
		item.Y = NumberOr(n, "y", 0)
	} else {
		if item.X, err = RequireNumber(n, "x"); err != nil {
			return Item{}, err
		}
		if item.Y, err = RequireNumber(n, "y"); err != nil {
			return Item{}, err
		}
	}

	if item.Kind == ItemImage {
		item.Width = NumberOr(n, "width", 0)
		item.Height = NumberOr(n, "height", 0)
	}

	if item.Kind == ItemLine {
		children, err := RequireArray(n, "items")
		if err != nil {
			return Item{}, err
		}
		item.Items = make([]Item, 0, len(children))
		for i, cv := range children {
			cn, ok := cv.(Node)
			if !ok {
				return Item{}, fmt.Errorf("%w: line item %d is %T, not an object", ErrStructureParse, i+1, cv)
			}
			child, err := parseItem(cn)
			if err != nil {
				return Item{}, fmt.Errorf("line item %d: %w", i+1, err)
			}
			if child.Kind == ItemLine {
				return Item{}, fmt.Errorf("%w: lines cannot nest", ErrInvalidLayout)
			}
			item.Items = append(item.Items, child)
		}
	}
	return item, nil
}
