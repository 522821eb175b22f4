package paged

import (
	"bytes"
	"fmt"

	"pkt.systems/paged/pdfobj"
)

// graphicsState is the drawing state the q/Q operators save and restore.
type graphicsState struct {
	fill      Color
	stroke    Color
	lineWidth float64
	font      Ref
	fontSize  float64
}

// Canvas is an append-only emitter of content-stream operators for one page.
// Every drawing call appends operators in call order; nothing is reordered
// or batched. The canvas also records which font and image resources the
// page used so the page resource dictionary can be assembled.
type Canvas struct {
	buf    bytes.Buffer
	stack  []graphicsState
	state  graphicsState
	fonts  map[string]Ref
	images map[string]Ref
}

// NewCanvas returns an empty canvas for one page's content stream.
func NewCanvas() *Canvas {
	return &Canvas{
		fonts:  make(map[string]Ref),
		images: make(map[string]Ref),
	}
}

// StateGuard undoes one Save. Restore is idempotent, so callers can defer it
// and still restore early on the happy path.
type StateGuard struct {
	c        *Canvas
	released bool
}

// Save pushes the graphics state and returns the guard that pops it. Every
// save must be matched by exactly one restore along every execution path.
func (c *Canvas) Save() *StateGuard {
	c.stack = append(c.stack, c.state)
	c.buf.WriteString("q\n")
	return &StateGuard{c: c}
}

// Restore pops the state saved by the matching Save. Calling it again is a
// no-op.
func (g *StateGuard) Restore() {
	if g.released {
		return
	}
	g.released = true
	g.c.restore()
}

func (c *Canvas) restore() {
	if len(c.stack) == 0 {
		panic("paged: restore without matching save")
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.buf.WriteString("Q\n")
}

// SetFillColor sets the non-stroking color, clamped to [0, 1].
func (c *Canvas) SetFillColor(col Color) {
	col = col.clamped()
	c.state.fill = col
	fmt.Fprintf(&c.buf, "%.3f %.3f %.3f rg\n", col.R, col.G, col.B)
}

// SetStrokeColor sets the stroking color, clamped to [0, 1].
func (c *Canvas) SetStrokeColor(col Color) {
	col = col.clamped()
	c.state.stroke = col
	fmt.Fprintf(&c.buf, "%.3f %.3f %.3f RG\n", col.R, col.G, col.B)
}

// SetLineWidth sets the stroke width in points.
func (c *Canvas) SetLineWidth(width float64) {
	c.state.lineWidth = width
	fmt.Fprintf(&c.buf, "%.3f w\n", width)
}

// SetFont makes ref the active font at the given size and registers it in
// the page resources.
func (c *Canvas) SetFont(ref Ref, size float64) {
	c.state.font = ref
	c.state.fontSize = size
	name := fontResourceName(ref)
	c.fonts[name] = ref
	fmt.Fprintf(&c.buf, "BT /%s %.2f Tf ET\n", name, size)
}

// DrawString paints text with its baseline origin at (x, y) using the active
// font and fill color.
func (c *Canvas) DrawString(x, y float64, text string) {
	fmt.Fprintf(&c.buf, "BT %.2f %.2f Td (", x, y)
	c.buf.Write(escapeText(text))
	c.buf.WriteString(") Tj ET\n")
}

// DrawRect paints a rectangle, filled and/or stroked.
func (c *Canvas) DrawRect(r Rect, fill, stroke bool) {
	fmt.Fprintf(&c.buf, "%.2f %.2f %.2f %.2f re ", r.X, r.Y, r.W, r.H)
	switch {
	case fill && stroke:
		c.buf.WriteString("B\n")
	case fill:
		c.buf.WriteString("f\n")
	case stroke:
		c.buf.WriteString("S\n")
	default:
		c.buf.WriteString("n\n")
	}
}

// DrawLine strokes a line from (x1, y1) to (x2, y2).
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&c.buf, "%.2f %.2f m %.2f %.2f l S\n", x1, y1, x2, y2)
}

// DrawImage paints the named image XObject into r and registers it in the
// page resources.
func (c *Canvas) DrawImage(name string, ref Ref, r Rect) {
	c.images[name] = ref
	fmt.Fprintf(&c.buf, "q %.2f 0 0 %.2f %.2f %.2f cm /%s Do Q\n", r.W, r.H, r.X, r.Y, name)
}

// Depth reports the current save/restore nesting depth.
func (c *Canvas) Depth() int {
	return len(c.stack)
}

// Content returns the accumulated content-stream operators.
func (c *Canvas) Content() []byte {
	return c.buf.Bytes()
}

// Resources returns the font and image resources the page used.
func (c *Canvas) Resources() pdfobj.PageResources {
	return pdfobj.PageResources{Fonts: c.fonts, Images: c.images}
}

func fontResourceName(ref Ref) string {
	return fmt.Sprintf("F%d", ref)
}

// escapeText encodes a string for a PDF literal string with WinAnsi-encoded
// base fonts. Runes outside Latin-1 degrade to '?'; widths were approximate
// to begin with.
func escapeText(text string) []byte {
	out := make([]byte, 0, len(text)+4)
	for _, r := range text {
		switch {
		case r == '\\' || r == '(' || r == ')':
			out = append(out, '\\', byte(r))
		case r == '\n' || r == '\r' || r == '\t':
			out = append(out, ' ')
		case r < 0x20:
			// control runes have no glyphs
		case r <= 0xFF:
			out = append(out, byte(r))
		default:
			out = append(out, '?')
		}
	}
	return out
}
