package pdfobj

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"sort"
)

// Ref is the number of an indirect object in the output document. The zero
// value means "no reference".
type Ref int

// ImageObject describes one image XObject: raw 8-bit samples plus the
// dictionary entries that frame them.
type ImageObject struct {
	Width            int
	Height           int
	ColorSpace       string // DeviceRGB or DeviceGray
	BitsPerComponent int
	SMask            Ref // soft-mask image, 0 when fully opaque
	Data             []byte
}

// PageResources names the indirect resources one page's content stream uses.
type PageResources struct {
	Fonts  map[string]Ref
	Images map[string]Ref
}

type pageRec struct {
	width, height float64
	content       Ref
	res           PageResources
}

// Writer builds a PDF document in memory, one object at a time.
type Writer struct {
	buf      bytes.Buffer
	offsets  map[Ref]int
	next     Ref
	pages    []pageRec
	compress bool
	err      error
}

// New returns a writer with the document header already emitted.
func New() *Writer {
	w := &Writer{
		offsets:  make(map[Ref]int),
		next:     1,
		compress: true,
	}
	w.buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	return w
}

// SetCompression toggles flate compression of stream objects.
func (w *Writer) SetCompression(on bool) {
	w.compress = on
}

// Alloc issues a fresh object number. Numbers are monotonically increasing
// and never reused.
func (w *Writer) Alloc() Ref {
	ref := w.next
	w.next++
	return ref
}

// Err returns the first latched write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) beginObj(ref Ref) bool {
	if ref <= 0 || ref >= w.next {
		w.setErr(fmt.Errorf("pdfobj: object %d was never allocated", ref))
		return false
	}
	if _, dup := w.offsets[ref]; dup {
		w.setErr(fmt.Errorf("pdfobj: object %d written twice", ref))
		return false
	}
	w.offsets[ref] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n", ref)
	return true
}

func (w *Writer) endObj() {
	w.buf.WriteString("endobj\n")
}

// WriteFont writes a base-14 Type1 font object at ref.
func (w *Writer) WriteFont(ref Ref, baseName string) {
	if baseName == "" {
		w.setErr(fmt.Errorf("pdfobj: empty base font name for object %d", ref))
		return
	}
	if !w.beginObj(ref) {
		return
	}
	fmt.Fprintf(&w.buf, "<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >>\n", baseName)
	w.endObj()
}

// WriteStream writes a generic stream object (page content) at ref.
func (w *Writer) WriteStream(ref Ref, data []byte) {
	w.writeStream(ref, "", data, w.compress)
}

// WriteImage writes an image XObject at ref. The soft mask object, when
// referenced, must already be in the buffer; the writer cannot patch forward
// references.
func (w *Writer) WriteImage(ref Ref, img ImageObject) {
	if img.Width <= 0 || img.Height <= 0 {
		w.setErr(fmt.Errorf("pdfobj: image %d has invalid dimensions %dx%d", ref, img.Width, img.Height))
		return
	}
	channels := 0
	switch img.ColorSpace {
	case "DeviceRGB":
		channels = 3
	case "DeviceGray":
		channels = 1
	default:
		w.setErr(fmt.Errorf("pdfobj: image %d has unsupported color space %q", ref, img.ColorSpace))
		return
	}
	if want := img.Width * img.Height * channels; len(img.Data) != want {
		w.setErr(fmt.Errorf("pdfobj: image %d has %d sample bytes, want %d", ref, len(img.Data), want))
		return
	}
	if img.SMask != 0 {
		if _, written := w.offsets[img.SMask]; !written {
			w.setErr(fmt.Errorf("pdfobj: image %d refers to unwritten soft mask %d", ref, img.SMask))
			return
		}
	}
	bits := img.BitsPerComponent
	if bits == 0 {
		bits = 8
	}
	extra := fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /%s /BitsPerComponent %d",
		img.Width, img.Height, img.ColorSpace, bits)
	if img.SMask != 0 {
		extra += fmt.Sprintf(" /SMask %d 0 R", img.SMask)
	}
	w.writeStream(ref, extra, img.Data, true)
}

func (w *Writer) writeStream(ref Ref, extra string, data []byte, compress bool) {
	filter := ""
	if compress {
		var packed bytes.Buffer
		zw := zlib.NewWriter(&packed)
		if _, err := zw.Write(data); err != nil {
			w.setErr(fmt.Errorf("pdfobj: compress stream %d: %w", ref, err))
			return
		}
		if err := zw.Close(); err != nil {
			w.setErr(fmt.Errorf("pdfobj: compress stream %d: %w", ref, err))
			return
		}
		data = packed.Bytes()
		filter = " /Filter /FlateDecode"
	}
	if !w.beginObj(ref) {
		return
	}
	sep := ""
	if extra != "" {
		sep = " "
	}
	fmt.Fprintf(&w.buf, "<< %s%s/Length %d%s >>\nstream\n", extra, sep, len(data), filter)
	w.buf.Write(data)
	w.buf.WriteString("\nendstream\n")
	w.endObj()
}

// AddPage records one page for serialization at Finish. Pages appear in the
// document in the order they are added.
func (w *Writer) AddPage(width, height float64, content Ref, res PageResources) {
	if width <= 0 || height <= 0 {
		w.setErr(fmt.Errorf("pdfobj: page %d has invalid size %gx%g", len(w.pages)+1, width, height))
		return
	}
	w.pages = append(w.pages, pageRec{width: width, height: height, content: content, res: res})
}

// Finish writes the page tree, catalog, cross-reference table, and trailer,
// and returns the complete document bytes.
func (w *Writer) Finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.pages) == 0 {
		return nil, fmt.Errorf("pdfobj: document has no pages")
	}

	pagesRef := w.Alloc()
	pageRefs := make([]Ref, 0, len(w.pages))
	for _, p := range w.pages {
		ref := w.Alloc()
		pageRefs = append(pageRefs, ref)
		if !w.beginObj(ref) {
			return nil, w.err
		}
		fmt.Fprintf(&w.buf, "<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s]", pagesRef, num(p.width), num(p.height))
		w.buf.WriteString(" /Resources << /ProcSet [/PDF /Text /ImageB /ImageC]")
		writeResourceDict(&w.buf, "Font", p.res.Fonts)
		writeResourceDict(&w.buf, "XObject", p.res.Images)
		w.buf.WriteString(" >>")
		if p.content != 0 {
			fmt.Fprintf(&w.buf, " /Contents %d 0 R", p.content)
		}
		w.buf.WriteString(" >>\n")
		w.endObj()
	}

	if !w.beginObj(pagesRef) {
		return nil, w.err
	}
	w.buf.WriteString("<< /Type /Pages /Kids [")
	for i, ref := range pageRefs {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		fmt.Fprintf(&w.buf, "%d 0 R", ref)
	}
	fmt.Fprintf(&w.buf, "] /Count %d >>\n", len(pageRefs))
	w.endObj()

	catalogRef := w.Alloc()
	if !w.beginObj(catalogRef) {
		return nil, w.err
	}
	fmt.Fprintf(&w.buf, "<< /Type /Catalog /Pages %d 0 R >>\n", pagesRef)
	w.endObj()

	count := int(w.next)
	for ref := Ref(1); ref < w.next; ref++ {
		if _, ok := w.offsets[ref]; !ok {
			return nil, fmt.Errorf("pdfobj: object %d allocated but never written", ref)
		}
	}

	startxref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n0000000000 65535 f \n", count)
	for ref := Ref(1); ref < w.next; ref++ {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", w.offsets[ref])
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", count, catalogRef, startxref)

	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out, nil
}

func writeResourceDict(buf *bytes.Buffer, kind string, refs map[string]Ref) {
	if len(refs) == 0 {
		return
	}
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(buf, " /%s <<", kind)
	for _, name := range names {
		fmt.Fprintf(buf, " /%s %d 0 R", name, refs[name])
	}
	buf.WriteString(" >>")
}

// num formats a coordinate without trailing zero noise.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = trimRight(s, '0')
	s = trimRight(s, '.')
	return s
}

func trimRight(s string, b byte) string {
	for len(s) > 0 && s[len(s)-1] == b {
		s = s[:len(s)-1]
	}
	return s
}
