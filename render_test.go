package paged

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderPlain(t *testing.T, layout string) []byte {
	t.Helper()
	out, err := RenderBytes([]byte(layout), Config{NoCompress: true})
	if err != nil {
		t.Fatalf("RenderBytes returned error: %v", err)
	}
	return out
}

func TestRenderBytes(t *testing.T) {
	out := renderPlain(t, `{
		"pages": [{
			"width": 612,
			"height": 792,
			"items": [
				{"type": "text", "x": 72, "y": 700, "data": {"text": "Hello world", "size": 18}}
			]
		}]
	}`)

	if !bytes.HasPrefix(out, []byte("%PDF-1.4\n")) {
		t.Fatalf("output missing PDF header: %q", out[:16])
	}
	if !bytes.HasSuffix(out, []byte("%%EOF\n")) {
		t.Fatalf("output missing EOF marker: %q", out[len(out)-16:])
	}
	for _, want := range []string{
		"(Hello world) Tj",
		"/Type /Catalog",
		"/MediaBox [0 0 612 792]",
		"/Count 1",
		"/BaseFont /Helvetica",
		"startxref",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestRenderBytesDefaultPageSize(t *testing.T) {
	out := renderPlain(t, `{"pages": [{"items": [
		{"type": "text", "x": 10, "y": 10, "data": {"text": "x"}}
	]}]}`)
	if !bytes.Contains(out, []byte("/MediaBox [0 0 595.28 841.89]")) {
		t.Fatalf("default A4 media box missing")
	}
}

func TestRenderBytesErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   error
	}{
		{"not json", `nope`, ErrStructureParse},
		{"no pages", `{"pages": []}`, ErrInvalidLayout},
		{"unknown item", `{"pages":[{"items":[{"type":"circle","x":1,"y":2}]}]}`, ErrInvalidLayout},
		{
			"bad run color",
			`{"pages":[{"items":[{"type":"text","x":1,"y":2,"data":{"text":"a","color":"#zz"}}]}]}`,
			ErrInvalidColor,
		},
		{
			"line child image",
			`{"pages":[{"items":[{"type":"line","items":[{"type":"image","x":0,"y":0}]}]}]}`,
			ErrInvalidLayout,
		},
		{
			"image without payload",
			`{"pages":[{"items":[{"type":"image","x":0,"y":0,"data":{}}]}]}`,
			ErrImage,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RenderBytes([]byte(tc.layout), Config{}); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRenderJustifiedLine(t *testing.T) {
	out := renderPlain(t, `{"pages": [{"items": [{
		"type": "line",
		"data": {"justify": true, "available_width": 120, "content_width": 100},
		"items": [
			{"type": "run", "x": 0, "y": 650, "data": {"text": "one two"}},
			{"type": "run", "x": 50, "y": 650, "data": {"text": "end"}}
		]
	}]}]}`)

	// 20 points of slack over one space shifts both the spanning run and
	// everything after it by the full amount
	if !bytes.Contains(out, []byte("BT 20.00 650.00 Td (one two) Tj")) {
		t.Fatalf("first run not shifted by its own space")
	}
	if !bytes.Contains(out, []byte("BT 70.00 650.00 Td (end) Tj")) {
		t.Fatalf("trailing run not shifted")
	}
}

func TestRenderUnjustifiedLineKeepsPositions(t *testing.T) {
	out := renderPlain(t, `{"pages": [{"items": [{
		"type": "line",
		"data": {"available_width": 120, "content_width": 100},
		"items": [
			{"type": "run", "x": 0, "y": 650, "data": {"text": "one two"}}
		]
	}]}]}`)
	if !bytes.Contains(out, []byte("BT 0.00 650.00 Td (one two) Tj")) {
		t.Fatalf("unjustified run must keep its position")
	}
}

func TestRenderInlineImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 100})
	encoded := base64.StdEncoding.EncodeToString(encodePNG(t, img))

	out := renderPlain(t, `{"pages": [{"items": [
		{"type": "image", "x": 50, "y": 100, "width": 40, "height": 40,
		 "data": {"bytes": "`+encoded+`"}}
	]}]}`)

	for _, want := range []string{
		"/Subtype /Image",
		"/ColorSpace /DeviceRGB",
		"/ColorSpace /DeviceGray",
		"/SMask",
		" Do Q",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Fatalf("output missing %q", want)
		}
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader(`{"pages":[{"items":[{"type":"text","x":1,"y":2,"data":{"text":"ok"}}]}]}`),
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("written output is not a PDF")
	}

	if err := Render(RenderRequest{Writer: &buf}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("{}")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestRenderFailureWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader(`{"pages": []}`),
		Writer: &buf,
	})
	if err == nil {
		t.Fatalf("expected error for empty document")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed render must write nothing, wrote %d bytes", buf.Len())
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "layout.json")
	out := filepath.Join(dir, "out.pdf")
	layout := `{"pages":[{"items":[{"type":"text","x":72,"y":700,"data":{"text":"file"}}]}]}`
	if err := os.WriteFile(in, []byte(layout), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	if err := RenderFile(in, out); err != nil {
		t.Fatalf("RenderFile returned error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output file is not a PDF")
	}
}

func TestRenderFileLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "layout.json")
	out := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(in, []byte(`{"pages": "broken"}`), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	if err := RenderFile(in, out); err == nil {
		t.Fatalf("expected error for broken layout")
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed render must leave no output file, stat err = %v", err)
	}
}

func TestRenderFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := RenderFile(filepath.Join(dir, "nope.json"), filepath.Join(dir, "out.pdf"))
	if err == nil {
		t.Fatalf("expected error for missing input")
	}
}
