package paged

import "github.com/muesli/reflow/ansi"

// Formatting effect constants. The width and extent ratios are heuristics
// over approximate metrics; the layout assembler owns real glyph widths.
const (
	scriptScale      = 0.58
	superscriptShift = 0.33
	subscriptShift   = -0.25
	charWidthRatio   = 0.6
	highlightHeight  = 1.2
	highlightDescent = 0.25
	underlineDrop    = 0.1
	strikeRise       = 0.3
	decorationWidth  = 0.05
)

// TextFormatting is the per-run style derived from a run's payload. It is
// stateless and recomputed per run, never persisted.
type TextFormatting struct {
	Superscript   bool
	Subscript     bool
	Underline     bool
	Strikethrough bool
	Highlight     *Color
}

// DeriveFormatting reads the style flags of a run payload with alias-key
// tolerance. The highlight accepts a plain color value or an object with a
// nested color field; unparseable highlights are ignored rather than failing
// the run.
func DeriveFormatting(data Node) TextFormatting {
	f := TextFormatting{
		Superscript:   firstBoolOr(data, false, superscriptKeys...),
		Subscript:     firstBoolOr(data, false, subscriptKeys...),
		Underline:     firstBoolOr(data, false, underlineKeys...),
		Strikethrough: firstBoolOr(data, false, strikeKeys...),
	}
	if v, ok := firstValue(data, highlightKeys...); ok {
		if nested, isObj := v.(Node); isObj {
			if inner, innerOk := firstValue(nested, colorKeys...); innerOk {
				v = inner
			}
		}
		if col, err := ParseColor(v); err == nil {
			f.Highlight = &col
		}
	}
	return f
}

// AdjustedSize returns the font size after script scaling.
func (f TextFormatting) AdjustedSize(size float64) float64 {
	if f.Superscript || f.Subscript {
		return size * scriptScale
	}
	return size
}

// BaselineShift returns the vertical baseline offset for the run. When a run
// is marked both superscript and subscript, superscript wins.
func (f TextFormatting) BaselineShift(size float64) float64 {
	switch {
	case f.Superscript:
		return size * superscriptShift
	case f.Subscript:
		return size * subscriptShift
	default:
		return 0
	}
}

// approxTextWidth estimates the painted width of text at a font size. Column
// counting keeps wide runes from collapsing to one unit; the 0.6 ratio is
// the usual average-glyph stand-in for real metrics.
func approxTextWidth(text string, size float64) float64 {
	return float64(ansi.PrintableRuneWidth(text)) * size * charWidthRatio
}

// RenderText paints one styled run at baseline (x, y): highlight first, then
// the glyphs, then underline and strikethrough rules. Each optional
// decoration runs inside its own save/restore pair so its color and line
// width cannot leak into later drawing.
func RenderText(c *Canvas, x, y float64, text string, font Ref, size float64, color Color, f TextFormatting) {
	if text == "" {
		return
	}
	adjusted := f.AdjustedSize(size)
	y += f.BaselineShift(size)
	width := approxTextWidth(text, adjusted)

	guard := c.Save()
	defer guard.Restore()
	c.SetFont(font, adjusted)
	c.SetFillColor(color)

	if f.Highlight != nil {
		hl := c.Save()
		c.SetFillColor(*f.Highlight)
		c.DrawRect(Rect{
			X: x,
			Y: y - adjusted*highlightDescent,
			W: width,
			H: adjusted * highlightHeight,
		}, true, false)
		hl.Restore()
	}

	c.DrawString(x, y, text)

	if f.Underline {
		ul := c.Save()
		c.SetStrokeColor(color)
		c.SetLineWidth(adjusted * decorationWidth)
		ruleY := y - adjusted*underlineDrop
		c.DrawLine(x, ruleY, x+width, ruleY)
		ul.Restore()
	}
	if f.Strikethrough {
		st := c.Save()
		c.SetStrokeColor(color)
		c.SetLineWidth(adjusted * decorationWidth)
		ruleY := y + adjusted*strikeRise
		c.DrawLine(x, ruleY, x+width, ruleY)
		st.Restore()
	}
}
