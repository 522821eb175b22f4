package paged

import (
	"fmt"

	"pkt.systems/paged/pdfobj"
)

// recordedOp is one call made against the recording writer, in call order.
type recordedOp struct {
	kind string // "font", "image", "stream", "page"
	ref  Ref
	font string
	img  pdfobj.ImageObject
}

// recordingWriter satisfies DocWriter and records every write so tests can
// assert on object ordering without parsing PDF bytes.
type recordingWriter struct {
	next  Ref
	ops   []recordedOp
	pages int
}

func (w *recordingWriter) Alloc() Ref {
	w.next++
	return w.next
}

func (w *recordingWriter) WriteFont(ref Ref, baseName string) {
	w.ops = append(w.ops, recordedOp{kind: "font", ref: ref, font: baseName})
}

func (w *recordingWriter) WriteImage(ref Ref, img pdfobj.ImageObject) {
	w.ops = append(w.ops, recordedOp{kind: "image", ref: ref, img: img})
}

func (w *recordingWriter) WriteStream(ref Ref, data []byte) {
	w.ops = append(w.ops, recordedOp{kind: "stream", ref: ref})
}

func (w *recordingWriter) AddPage(width, height float64, content Ref, res pdfobj.PageResources) {
	w.pages++
	w.ops = append(w.ops, recordedOp{kind: "page", ref: content})
}

func (w *recordingWriter) Finish() ([]byte, error) {
	if w.pages == 0 {
		return nil, fmt.Errorf("no pages recorded")
	}
	return []byte("%PDF-fake"), nil
}

func (w *recordingWriter) opsOfKind(kind string) []recordedOp {
	var out []recordedOp
	for _, op := range w.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}
