package paged

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocument(t *testing.T) {
	input := []byte(`{
		"pages": [
			{
				"width": 612,
				"height": 792,
				"items": [
					{"type": "text", "x": 72, "y": 700, "data": {"text": "Title", "size": 18}},
					{"type": "image", "x": 72, "y": 400, "width": 200, "height": 100, "data": {"source": "logo.png"}},
					{"type": "line", "items": [
						{"type": "run", "x": 72, "y": 650, "data": {"text": "one two"}},
						{"type": "marker", "x": 60, "y": 650, "data": {"text": "1."}}
					]}
				]
			},
			{}
		]
	}`)

	doc, err := ParseDocument(input)
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	want := &Document{Pages: []Page{
		{
			Width:  612,
			Height: 792,
			Items: []Item{
				{Kind: ItemText, X: 72, Y: 700, Data: Node{"text": "Title", "size": 18.0}},
				{Kind: ItemImage, X: 72, Y: 400, Width: 200, Height: 100, Data: Node{"source": "logo.png"}},
				{Kind: ItemLine, Data: Node{}, Items: []Item{
					{Kind: ItemText, X: 72, Y: 650, Data: Node{"text": "one two"}},
					{Kind: ItemMarker, X: 60, Y: 650, Data: Node{"text": "1."}},
				}},
			},
		},
		{},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", `{`, ErrStructureParse},
		{"missing pages", `{}`, ErrStructureParse},
		{"pages not array", `{"pages": 3}`, ErrStructureParse},
		{"page not object", `{"pages": ["x"]}`, ErrStructureParse},
		{"item without type", `{"pages":[{"items":[{"x":1,"y":2}]}]}`, ErrMissingField},
		{"unknown type", `{"pages":[{"items":[{"type":"circle","x":1,"y":2}]}]}`, ErrInvalidLayout},
		{"text without x", `{"pages":[{"items":[{"type":"text","y":2}]}]}`, ErrMissingField},
		{"text with string y", `{"pages":[{"items":[{"type":"text","x":1,"y":"low"}]}]}`, ErrInvalidValue},
		{"line without items", `{"pages":[{"items":[{"type":"line"}]}]}`, ErrMissingField},
		{
			"nested line",
			`{"pages":[{"items":[{"type":"line","items":[{"type":"line","items":[]}]}]}]}`,
			ErrInvalidLayout,
		},
		{
			"line child with wrong shape",
			`{"pages":[{"items":[{"type":"line","items":["run"]}]}]}`,
			ErrStructureParse,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(tc.input)); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseItemMarkerRequiresPosition(t *testing.T) {
	_, err := ParseDocument([]byte(`{"pages":[{"items":[{"type":"marker"}]}]}`))
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("marker without position: error = %v, want ErrMissingField", err)
	}
}
