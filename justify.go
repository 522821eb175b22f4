package paged

import "strings"

const (
	// minJustifyExtra treats near-exact fits as unjustified so rounding
	// noise never becomes visible spacing distortion.
	minJustifyExtra = 0.1
	// minAdjustment drops cumulative offsets too small to see.
	minAdjustment = 0.01
)

// SpacingAdjustment shifts the item at Index right by the cumulative extra
// width owed to the inter-word spaces up to and including that item.
type SpacingAdjustment struct {
	Index int
	Extra float64
}

// ComputeWordSpacing returns the extra width each inter-word space must
// absorb for the line's items to fill the available width. Lines that
// already fit, and lines without any spaces, get zero.
func ComputeWordSpacing(items []Node, available, content float64) float64 {
	extra := available - content
	if extra <= minJustifyExtra {
		return 0
	}
	total := 0
	for _, item := range items {
		total += spaceCount(item)
	}
	if total == 0 {
		return 0
	}
	return extra / float64(total)
}

// ApplyWordSpacing walks the items in order, accumulating each item's share
// of the spacing, and returns the per-item cumulative offsets. Offsets with
// magnitude at or below the visibility threshold are dropped.
func ApplyWordSpacing(items []Node, spacing float64) []SpacingAdjustment {
	adjustments := make([]SpacingAdjustment, 0, len(items))
	cumulative := 0.0
	for i, item := range items {
		cumulative += spacing * float64(spaceCount(item))
		if cumulative > minAdjustment || cumulative < -minAdjustment {
			adjustments = append(adjustments, SpacingAdjustment{Index: i, Extra: cumulative})
		}
	}
	return adjustments
}

// spaceCount prefers the assembler's precomputed space count and falls back
// to counting literal spaces in the item text.
func spaceCount(item Node) int {
	if data, ok := Object(item, "data"); ok {
		item = data
	}
	if n, ok := firstNumber(item, spacesKeys...); ok {
		if n < 0 {
			return 0
		}
		return int(n)
	}
	return strings.Count(firstString(item, textKeys...), " ")
}
