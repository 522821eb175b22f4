package paged

import "testing"

func TestFontRegistryResolve(t *testing.T) {
	w := &recordingWriter{}
	fonts := NewFontRegistry(w)

	tests := []struct {
		requested string
		base      string
	}{
		{"Helvetica", "Helvetica"},
		{"arial", "Helvetica"},
		{"Times New Roman", "Times-Roman"},
		{"MONO", "Courier"},
		{"ZapfDingbats", "ZapfDingbats"},
		{"Comic Sans MS", FallbackFont},
		{"", FallbackFont},
	}
	for i, tc := range tests {
		ref := fonts.Resolve(tc.requested)
		if ref == 0 {
			t.Fatalf("Resolve(%q) returned zero ref", tc.requested)
		}
		op := w.ops[i]
		if op.kind != "font" || op.ref != ref || op.font != tc.base {
			t.Fatalf("Resolve(%q) wrote %+v, want font %q at %d", tc.requested, op, tc.base, ref)
		}
	}
}

func TestFontRegistryCachesPerName(t *testing.T) {
	w := &recordingWriter{}
	fonts := NewFontRegistry(w)

	first := fonts.Resolve("Helvetica")
	again := fonts.Resolve("  helvetica ")
	if first != again {
		t.Fatalf("normalized lookups differ: %d vs %d", first, again)
	}
	if got := len(w.opsOfKind("font")); got != 1 {
		t.Fatalf("expected one font object, got %d", got)
	}

	// distinct requested names bind separately even when they share a base
	alias := fonts.Resolve("arial")
	if alias == first {
		t.Fatalf("distinct requested names must get distinct bindings")
	}
	if got := len(w.opsOfKind("font")); got != 2 {
		t.Fatalf("expected two font objects, got %d", got)
	}
}
