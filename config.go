package paged

// A4 page size in points.
const (
	a4Width  = 595.28
	a4Height = 841.89
)

// Config holds document rendering defaults. Per-page and per-item fields in
// the layout always win over these.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	FontFamily   string
	FontSize     float64
	TextColor    Color
	MarkerFont   string
	MarkerSize   float64
	MarkerColor  Color
	MarkerSuffix string
	NoCompress   bool
}

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		PageWidth:    a4Width,
		PageHeight:   a4Height,
		FontFamily:   FallbackFont,
		FontSize:     12,
		TextColor:    Color{},
		MarkerFont:   FallbackFont,
		MarkerSize:   12,
		MarkerColor:  Color{},
		MarkerSuffix: "tab",
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageWidth > 0 {
		dst.PageWidth = src.PageWidth
	}
	if src.PageHeight > 0 {
		dst.PageHeight = src.PageHeight
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.FontSize > 0 {
		dst.FontSize = src.FontSize
	}
	if src.TextColor != (Color{}) {
		dst.TextColor = src.TextColor
	}
	if src.MarkerFont != "" {
		dst.MarkerFont = src.MarkerFont
	}
	if src.MarkerSize > 0 {
		dst.MarkerSize = src.MarkerSize
	}
	if src.MarkerColor != (Color{}) {
		dst.MarkerColor = src.MarkerColor
	}
	if src.MarkerSuffix != "" {
		dst.MarkerSuffix = src.MarkerSuffix
	}
	if src.NoCompress {
		dst.NoCompress = true
	}
}

func (cfg Config) markerDefaults() MarkerDefaults {
	return MarkerDefaults{
		Font:   cfg.MarkerFont,
		Size:   cfg.MarkerSize,
		Color:  cfg.MarkerColor,
		Suffix: cfg.MarkerSuffix,
	}
}
