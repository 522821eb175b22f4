package paged

import "strings"

// MarkerDefaults are the document-level fallbacks for marker fields the
// payload leaves out.
type MarkerDefaults struct {
	Font           string
	Size           float64
	Color          Color
	Suffix         string
	BaselineAdjust float64
}

// normalizeSuffix maps the assembler's symbolic suffix names to the text
// actually appended after a marker. Unknown values pass through verbatim.
func normalizeSuffix(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tab", "tabulation", "none", "-":
		return ""
	case "space":
		return " "
	default:
		return s
	}
}

// RenderMarker composes and draws one list marker at (x, y). An empty
// marker text is a no-op. The suffix is appended only when non-empty and
// not already part of the marker text, so "1." never becomes "1..".
func RenderMarker(c *Canvas, fonts *FontRegistry, data Node, x, y float64, def MarkerDefaults) {
	text := firstString(data, markerTextKeys...)
	if text == "" {
		return
	}
	suffix := normalizeSuffix(firstStringOr(data, def.Suffix, suffixKeys...))
	if suffix != "" && !strings.Contains(text, suffix) {
		text += suffix
	}
	fontName := firstStringOr(data, def.Font, fontKeys...)
	size := firstNumberOr(data, def.Size, sizeKeys...)
	color := def.Color
	if v, ok := firstValue(data, colorKeys...); ok {
		if parsed, err := ParseColor(v); err == nil {
			color = parsed
		}
	}
	baseline := firstNumberOr(data, def.BaselineAdjust, baselineKeys...)

	guard := c.Save()
	defer guard.Restore()
	c.SetFillColor(color)
	c.SetFont(fonts.Resolve(fontName), size)
	c.DrawString(x, y+baseline, text)
}
