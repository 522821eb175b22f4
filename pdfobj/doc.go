// Package pdfobj is a minimal single-pass PDF object writer.
//
// The writer allocates monotonically increasing object numbers on demand and
// appends fully formed indirect objects to an in-memory buffer as they are
// handed to it. Objects are never rewritten, so anything one object refers to
// must be written first. Finish serializes the deferred page tree, catalog,
// cross-reference table, and trailer, and returns the complete document.
//
// Write failures are latched on the writer and surfaced by Finish, in the
// manner of fpdf-style builders, so drawing code stays free of error
// plumbing.
package pdfobj
