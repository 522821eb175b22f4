// Package paged renders pre-computed document layouts to PDF.
//
// This package is the painting stage of a document pipeline: an upstream
// layout assembler decides line breaks, absolute positions, and per-run
// styling, and paged turns that structured layout into pages of PDF drawing
// operators. It never wraps text or recomputes geometry; it paints exactly
// what it is given.
//
// Core properties:
//   - Generic layout trees in, finished PDF bytes out
//   - Tolerant field access across evolving upstream payload versions
//   - Deduplicating font and image registries over a single-pass writer
//   - Balanced graphics-state handling via scoped save/restore guards
//
// Example:
//
//	layout := strings.NewReader(`{"pages":[{"items":[
//		{"type":"text","x":72,"y":720,"data":{"text":"Hello PDF","size":14}}
//	]}]}`)
//	err := paged.Render(paged.RenderRequest{
//		Reader: layout,
//		Writer: outFile,
//		Config: paged.DefaultConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// RenderBytes and RenderFile provide the same conversion for byte-slice and
// file-path callers.
package paged
