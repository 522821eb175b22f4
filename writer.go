package paged

import "pkt.systems/paged/pdfobj"

// Ref identifies an indirect object in the output document.
type Ref = pdfobj.Ref

// DocWriter is the single-pass document-object writer the renderer draws
// through. Alloc issues fresh object numbers in first-need order; written
// objects are final and never rewritten, so referenced objects must be
// written before their referrers. Write failures are latched and surfaced
// by Finish.
type DocWriter interface {
	Alloc() Ref
	WriteFont(ref Ref, baseName string)
	WriteImage(ref Ref, img pdfobj.ImageObject)
	WriteStream(ref Ref, data []byte)
	AddPage(width, height float64, content Ref, res pdfobj.PageResources)
	Finish() ([]byte, error)
}

var _ DocWriter = (*pdfobj.Writer)(nil)
