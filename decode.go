package paged

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodePixels decodes raw image bytes into an 8-bit pixmap, separating any
// alpha channel into its own plane. Supported formats are PNG, JPEG, GIF,
// BMP, TIFF, and WebP. Malformed bytes fail before anything is written to
// the document.
func DecodePixels(data []byte) (*Pixmap, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImage, err)
	}
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s image has empty bounds", ErrImage, format)
	}

	rgb := make([]byte, 0, width*height*3)
	alpha := make([]byte, 0, width*height)
	opaque := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			rgb = append(rgb, byte(r>>8), byte(g>>8), byte(bl>>8))
			alpha = append(alpha, byte(a>>8))
			if a != 0xffff {
				opaque = false
			}
		}
	}
	pm := &Pixmap{Width: width, Height: height, RGB: rgb}
	if !opaque {
		pm.Alpha = alpha
	}
	return pm, nil
}
