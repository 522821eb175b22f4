package paged

import (
	"fmt"
	"strings"
)

// Color is an RGB color with channels nominally in [0, 1]. Values are not
// clamped on construction; emitters clamp before writing operators.
type Color struct {
	R, G, B float64
}

// Rect is a rectangle in document coordinates: origin bottom-left,
// y increasing upward, sizes in points.
type Rect struct {
	X, Y, W, H float64
}

func (c Color) clamped() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor accepts the color representations upstream payloads use: a hex
// string ("#rgb", "#rrggbb", leading "#" optional) or a 3-element numeric
// array. Array channels above 1 are treated as 0-255 values.
func ParseColor(v any) (Color, error) {
	switch cv := v.(type) {
	case string:
		return parseHexColor(cv)
	case []any:
		return parseArrayColor(cv)
	default:
		return Color{}, fmt.Errorf("%w: unsupported representation %T", ErrInvalidColor, v)
	}
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var digits [6]byte
	switch len(hex) {
	case 6:
		copy(digits[:], hex)
	case 3:
		for i := 0; i < 3; i++ {
			digits[2*i] = hex[i]
			digits[2*i+1] = hex[i]
		}
	default:
		return Color{}, fmt.Errorf("%w: hex string %q", ErrInvalidColor, s)
	}
	var channels [3]float64
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(digits[2*i])
		lo, ok2 := hexDigit(digits[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("%w: hex string %q", ErrInvalidColor, s)
		}
		channels[i] = float64(hi<<4|lo) / 255
	}
	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func parseArrayColor(a []any) (Color, error) {
	if len(a) != 3 {
		return Color{}, fmt.Errorf("%w: expected 3 channels, got %d", ErrInvalidColor, len(a))
	}
	var channels [3]float64
	scaled := false
	for i, v := range a {
		f, ok := asNumber(v)
		if !ok {
			return Color{}, fmt.Errorf("%w: channel %d is %T", ErrInvalidColor, i, v)
		}
		if f > 1 {
			scaled = true
		}
		channels[i] = f
	}
	if scaled {
		for i := range channels {
			channels[i] /= 255
		}
	}
	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
