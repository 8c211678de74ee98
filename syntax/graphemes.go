package syntax

import "github.com/rivo/uniseg"

// GraphemeColumn converts a UTF-16 code-unit offset within text into a
// grapheme-cluster column, the unit an editor actually moves the caret by
// (spec section 6, "Source text": code-unit offsets are the wire format,
// but a caret between the two code units of an emoji ZWJ sequence is not a
// position a user can land on). Grounded on the uniseg-driven column
// accounting the teacher uses for its text-shaping string width.
func GraphemeColumn(text string, codeUnit int) int {
	if codeUnit <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(text)
	cu, column := 0, 0
	for gr.Next() {
		if cu >= codeUnit {
			break
		}
		cluster := gr.Str()
		for _, r := range cluster {
			cu += codeUnitWidth(r)
		}
		column++
	}
	return column
}

// CodeUnitAtGraphemeColumn is the inverse of GraphemeColumn: it returns the
// UTF-16 code-unit offset at the start of the nth grapheme cluster.
func CodeUnitAtGraphemeColumn(text string, column int) int {
	if column <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(text)
	cu, n := 0, 0
	for gr.Next() {
		if n >= column {
			break
		}
		for _, r := range gr.Str() {
			cu += codeUnitWidth(r)
		}
		n++
	}
	return cu
}
