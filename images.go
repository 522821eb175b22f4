package paged

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"pkt.systems/paged/pdfobj"
)

// Pixmap is a decoded raster image: 8-bit RGB samples plus an optional
// per-pixel alpha plane. Alpha is nil when the image is fully opaque.
type Pixmap struct {
	Width  int
	Height int
	RGB    []byte // 3 bytes per pixel, row-major
	Alpha  []byte // 1 byte per pixel, row-major
}

func (pm *Pixmap) digest() [sha256.Size]byte {
	h := sha256.New()
	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(pm.Width))
	binary.BigEndian.PutUint64(dims[8:], uint64(pm.Height))
	h.Write(dims[:])
	h.Write(pm.RGB)
	h.Write(pm.Alpha)
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// ImageInfo records one embedded image for the lifetime of the document.
// Entries are never mutated after creation.
type ImageInfo struct {
	Ref     Ref
	Name    string
	Width   int
	Height  int
	HasMask bool
	MaskRef Ref
}

// ImageRegistry embeds decoded pixmaps as image objects, writing each
// distinct payload exactly once per document.
type ImageRegistry struct {
	w       DocWriter
	entries map[[sha256.Size]byte]*ImageInfo
}

// NewImageRegistry returns a registry writing through w.
func NewImageRegistry(w DocWriter) *ImageRegistry {
	return &ImageRegistry{w: w, entries: make(map[[sha256.Size]byte]*ImageInfo)}
}

// Embed writes pm into the document and returns its registry entry. A
// pixmap with an alpha plane first gets a DeviceGray soft mask object; the
// mask is written before the color image that references it because the
// single-pass writer cannot patch forward references. Repeated calls with
// the same payload return the existing entry without writing new objects.
func (r *ImageRegistry) Embed(pm *Pixmap) (*ImageInfo, error) {
	if pm.Width <= 0 || pm.Height <= 0 {
		return nil, fmt.Errorf("%w: pixmap dimensions %dx%d", ErrInvalidGeometry, pm.Width, pm.Height)
	}
	if len(pm.RGB) != pm.Width*pm.Height*3 {
		return nil, fmt.Errorf("%w: pixmap has %d rgb bytes, want %d", ErrImage, len(pm.RGB), pm.Width*pm.Height*3)
	}
	if pm.Alpha != nil && len(pm.Alpha) != pm.Width*pm.Height {
		return nil, fmt.Errorf("%w: pixmap has %d alpha bytes, want %d", ErrImage, len(pm.Alpha), pm.Width*pm.Height)
	}
	key := pm.digest()
	if info, ok := r.entries[key]; ok {
		return info, nil
	}

	var maskRef Ref
	if pm.Alpha != nil {
		maskRef = r.w.Alloc()
		r.w.WriteImage(maskRef, pdfobj.ImageObject{
			Width:            pm.Width,
			Height:           pm.Height,
			ColorSpace:       "DeviceGray",
			BitsPerComponent: 8,
			Data:             pm.Alpha,
		})
	}
	ref := r.w.Alloc()
	r.w.WriteImage(ref, pdfobj.ImageObject{
		Width:            pm.Width,
		Height:           pm.Height,
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		SMask:            maskRef,
		Data:             pm.RGB,
	})

	info := &ImageInfo{
		Ref:     ref,
		Name:    fmt.Sprintf("Im%d", ref),
		Width:   pm.Width,
		Height:  pm.Height,
		HasMask: maskRef != 0,
		MaskRef: maskRef,
	}
	r.entries[key] = info
	return info, nil
}
