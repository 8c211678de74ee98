package syntax

// LineToken is a token as produced by the per-line tokenizer: its
// positions are relative to the start of its own line only (spec section
// 3, "Token").
type LineToken struct {
	Kind          Kind
	Data          string
	PositionStart int // code-unit offset within the line
	PositionEnd   int
}

// SnapshotToken is a token with absolute, whole-document positions, as
// produced by flattening a Snapshot (spec section 4.2). Multi-line
// Start/Content/End sequences have already been folded into one token by
// the time a SnapshotToken exists.
type SnapshotToken struct {
	Kind          Kind
	Data          string
	PositionStart Position
	PositionEnd   Position
	CodeUnitStart int
	CodeUnitEnd   int
}

// Comment is a non-stream attachment: a line comment or a (possibly
// multi-line) block comment, recorded alongside the token stream but not
// part of it (spec section 4.2).
type Comment struct {
	Kind          Kind // LineComment or MultilineComment
	Data          string
	PositionStart Position
	PositionEnd   Position
	CodeUnitStart int
	CodeUnitEnd   int
}

// Range returns the token's absolute range.
func (t SnapshotToken) Range() Range {
	return Range{Start: t.PositionStart, End: t.PositionEnd}
}
