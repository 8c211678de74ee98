package syntax

// Snapshot is the flattened, whole-document view of a State: a single
// token stream with absolute positions, comments pulled out to the side,
// and a line-terminator index for translating between Position and flat
// code-unit offsets (spec section 4.2, "Snapshot").
type Snapshot struct {
	Tokens          []SnapshotToken
	Comments        []Comment
	Err             *LexError // set when a multi-line fold never closed before end of input, else to an ErrorLineMap for the first line that failed to tokenize
	lineTerminators []LineTerminator
	lineStartCU     []int // cumulative code-unit offset of each line's first character
}

// TakeSnapshot flattens state into a Snapshot, folding every multi-line
// Start/Content/End run (text literal, quoted identifier, block comment)
// into a single token or comment with a document-wide range (spec section
// 4.2, "Folding").
func TakeSnapshot(state *State) *Snapshot {
	snap := &Snapshot{
		lineTerminators: make([]LineTerminator, len(state.Lines)),
		lineStartCU:     make([]int, len(state.Lines)),
	}

	cu := 0
	for i, line := range state.Lines {
		snap.lineStartCU[i] = cu
		snap.lineTerminators[i] = line.Terminator
		cu += lineCodeUnitLen(line) + line.Terminator.Length()
	}

	var open *foldBuilder
	for lineIdx, line := range state.Lines {
		for _, tok := range line.Tokens {
			start := Position{LineNumber: lineIdx, LineCodeUnit: tok.PositionStart}
			end := Position{LineNumber: lineIdx, LineCodeUnit: tok.PositionEnd}
			absStart := snap.lineStartCU[lineIdx] + tok.PositionStart
			absEnd := snap.lineStartCU[lineIdx] + tok.PositionEnd

			if open != nil {
				open.extend(tok, end, absEnd)
				if foldCloses(tok.Kind) {
					snap.emitFold(open)
					open = nil
				}
				continue
			}

			if foldOpens(tok.Kind) {
				open = newFoldBuilder(tok, start, absStart)
				continue
			}

			switch tok.Kind {
			case LineComment:
				snap.Comments = append(snap.Comments, Comment{
					Kind: LineComment, Data: tok.Data,
					PositionStart: start, PositionEnd: end,
					CodeUnitStart: absStart, CodeUnitEnd: absEnd,
				})
			default:
				snap.Tokens = append(snap.Tokens, SnapshotToken{
					Kind: tok.Kind, Data: tok.Data,
					PositionStart: start, PositionEnd: end,
					CodeUnitStart: absStart, CodeUnitEnd: absEnd,
				})
			}
		}
	}

	if open != nil {
		lastLine := len(state.Lines) - 1
		snap.Err = &LexError{
			Kind:   LexErrorUnterminatedMultilineToken,
			Line:   lastLine,
			Column: open.positionEnd.LineCodeUnit,
			Unterm: open.unterminatedKind(),
		}
		snap.emitFold(open)
	}

	// A line can fail to tokenize (LineError/LineTouchedWithError) without
	// ever leaving a multi-line fold open — e.g. a bad hex literal — and
	// that failure has no other way to reach a Snapshot's caller, since
	// Snapshot works off line.Tokens, not line.Err. Surface the first one
	// as an aggregate ErrorLineMap (spec section 7) rather than silently
	// dropping it.
	if snap.Err == nil {
		for i, line := range state.Lines {
			if line.Err != nil {
				snap.Err = &LexError{Kind: LexErrorErrorLineMap, Line: i, Wrapped: line.Err}
				break
			}
		}
	}

	return snap
}

// foldBuilder accumulates the pieces of a multi-line Start/Content/End run
// until its End token arrives.
type foldBuilder struct {
	startKind     Kind
	foldedKind    Kind
	data          string
	positionStart Position
	positionEnd   Position
	codeUnitStart int
	codeUnitEnd   int
}

func newFoldBuilder(tok LineToken, start Position, absStart int) *foldBuilder {
	return &foldBuilder{
		startKind:     tok.Kind,
		foldedKind:    foldedKindOf(tok.Kind),
		data:          tok.Data,
		positionStart: start,
		positionEnd:   start,
		codeUnitStart: absStart,
		codeUnitEnd:   absStart,
	}
}

// unterminatedKind maps the fold's opening token to the UnterminatedKind
// spec section 7 uses to describe it.
func (b *foldBuilder) unterminatedKind() UnterminatedKind {
	switch b.startKind {
	case QuotedIdentifierStart:
		return UnterminatedQuotedIdentifier
	case MultilineCommentStart:
		return UnterminatedMultilineComment
	default:
		return UnterminatedText
	}
}

func (b *foldBuilder) extend(tok LineToken, end Position, absEnd int) {
	b.data += tok.Data
	b.positionEnd = end
	b.codeUnitEnd = absEnd
}

func foldOpens(k Kind) bool {
	switch k {
	case TextLiteralStart, QuotedIdentifierStart, MultilineCommentStart:
		return true
	}
	return false
}

func foldCloses(k Kind) bool {
	switch k {
	case TextLiteralEnd, QuotedIdentifierEnd, MultilineCommentEnd:
		return true
	}
	return false
}

func foldedKindOf(startKind Kind) Kind {
	switch startKind {
	case TextLiteralStart:
		return TextLiteral
	case QuotedIdentifierStart:
		return Identifier
	case MultilineCommentStart:
		return MultilineComment
	}
	return startKind
}

func (snap *Snapshot) emitFold(b *foldBuilder) {
	if b.foldedKind == MultilineComment {
		snap.Comments = append(snap.Comments, Comment{
			Kind: MultilineComment, Data: b.data,
			PositionStart: b.positionStart, PositionEnd: b.positionEnd,
			CodeUnitStart: b.codeUnitStart, CodeUnitEnd: b.codeUnitEnd,
		})
		return
	}
	snap.Tokens = append(snap.Tokens, SnapshotToken{
		Kind: b.foldedKind, Data: b.data,
		PositionStart: b.positionStart, PositionEnd: b.positionEnd,
		CodeUnitStart: b.codeUnitStart, CodeUnitEnd: b.codeUnitEnd,
	})
}

func lineCodeUnitLen(line *Line) int {
	n := 0
	for _, r := range line.Text {
		n += codeUnitWidth(r)
	}
	return n
}

// PositionFor converts an absolute code-unit offset into a line/column
// Position, used by callers that only know a flat cursor offset (e.g. an
// editor reporting a caret position as an index into the document text).
func (snap *Snapshot) PositionFor(codeUnit int) Position {
	lo, hi := 0, len(snap.lineStartCU)-1
	line := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if snap.lineStartCU[mid] <= codeUnit {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return Position{LineNumber: line, LineCodeUnit: codeUnit - snap.lineStartCU[line]}
}

// CodeUnitFor converts a Position back into an absolute code-unit offset.
func (snap *Snapshot) CodeUnitFor(pos Position) int {
	if pos.LineNumber < 0 || pos.LineNumber >= len(snap.lineStartCU) {
		return -1
	}
	return snap.lineStartCU[pos.LineNumber] + pos.LineCodeUnit
}
