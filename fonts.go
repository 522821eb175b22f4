package paged

import "strings"

// FallbackFont is the builtin font substituted for unknown family names.
const FallbackFont = "Helvetica"

// fontAliases maps normalized requested names to base-14 font names.
// Anything not listed resolves to FallbackFont.
var fontAliases = map[string]string{
	"helvetica":         "Helvetica",
	"helvetica-bold":    "Helvetica-Bold",
	"helvetica-oblique": "Helvetica-Oblique",
	"arial":             "Helvetica",
	"arial-bold":        "Helvetica-Bold",
	"sans":              "Helvetica",
	"sans-serif":        "Helvetica",
	"times":             "Times-Roman",
	"times-roman":       "Times-Roman",
	"times new roman":   "Times-Roman",
	"times-bold":        "Times-Bold",
	"times-italic":      "Times-Italic",
	"serif":             "Times-Roman",
	"courier":           "Courier",
	"courier-bold":      "Courier-Bold",
	"courier-oblique":   "Courier-Oblique",
	"mono":              "Courier",
	"monospace":         "Courier",
	"symbol":            "Symbol",
	"zapfdingbats":      "ZapfDingbats",
}

// FontRegistry binds requested font names to document font objects, writing
// at most one font object per distinct requested name. Resolution never
// fails: unknown names bind to the builtin fallback.
type FontRegistry struct {
	w    DocWriter
	refs map[string]Ref
}

// NewFontRegistry returns a registry writing through w.
func NewFontRegistry(w DocWriter) *FontRegistry {
	return &FontRegistry{w: w, refs: make(map[string]Ref)}
}

// Resolve returns the font reference for the requested name, binding and
// caching it on first use. Repeated lookups for the same name return the
// identical reference.
func (r *FontRegistry) Resolve(name string) Ref {
	key := strings.ToLower(strings.TrimSpace(name))
	if ref, ok := r.refs[key]; ok {
		return ref
	}
	base, ok := fontAliases[key]
	if !ok {
		base = FallbackFont
	}
	ref := r.w.Alloc()
	r.w.WriteFont(ref, base)
	r.refs[key] = ref
	return ref
}
