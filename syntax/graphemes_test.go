package syntax

import "testing"

// TestGraphemeColumnTreatsEmojiZWJAsOneColumn verifies that a family emoji
// built from a zero-width-joiner sequence — several runes and several
// UTF-16 code units — counts as a single caret stop, not one per code
// unit (spec section 6, "Source text").
func TestGraphemeColumnTreatsEmojiZWJAsOneColumn(t *testing.T) {
	family := "\U0001F468‍\U0001F469‍\U0001F467" // man-ZWJ-woman-ZWJ-girl
	text := family + "x"

	codeUnitOfX := 0
	for _, r := range family {
		codeUnitOfX += codeUnitWidth(r)
	}

	if col := GraphemeColumn(text, codeUnitOfX); col != 1 {
		t.Errorf("GraphemeColumn at start of %q = %d, want 1", "x", col)
	}
	if col := GraphemeColumn(text, 0); col != 0 {
		t.Errorf("GraphemeColumn at start of text = %d, want 0", col)
	}
}

// TestCodeUnitAtGraphemeColumnRoundTrips verifies CodeUnitAtGraphemeColumn
// inverts GraphemeColumn for plain ASCII text.
func TestCodeUnitAtGraphemeColumnRoundTrips(t *testing.T) {
	text := "abc"
	for cu := 0; cu <= len(text); cu++ {
		col := GraphemeColumn(text, cu)
		if got := CodeUnitAtGraphemeColumn(text, col); got != cu {
			t.Errorf("CodeUnitAtGraphemeColumn(GraphemeColumn(%d)) = %d, want %d", cu, got, cu)
		}
	}
}

// TestLexErrorGraphemeColumnReflectsOffendingSpan verifies a LexError's
// Column survives conversion to a grapheme column for a line whose error
// sits after a multi-code-unit grapheme. The emoji sits inside a text
// literal, since the lexer rejects it as a bare token.
func TestLexErrorGraphemeColumnReflectsOffendingSpan(t *testing.T) {
	family := "\U0001F468‍\U0001F469‍\U0001F467"
	line := "\"" + family + "\" 0x"
	state := Lex(Settings{}, line)
	err := state.Lines[0].Err
	if err == nil {
		t.Fatalf("expected a lex error for a bad hex literal, got none")
	}
	if err.Kind != LexErrorUnexpectedEof {
		t.Fatalf("expected LexErrorUnexpectedEof, got %v", err.Kind)
	}
	if col := err.GraphemeColumn(line); col != 4 {
		t.Errorf("GraphemeColumn = %d, want 4 (quote, emoji sequence as one grapheme, quote, space)", col)
	}
}

// TestParseErrorGraphemeColumnDelegatesToPosition verifies ParseError's
// GraphemeColumn matches Position.GraphemeColumn for the same line text.
func TestParseErrorGraphemeColumnDelegatesToPosition(t *testing.T) {
	line := "let x = "
	pos := Position{LineNumber: 0, LineCodeUnit: len(line)}
	perr := &ParseError{Kind: ParseErrorExpectedTokenKind, Position: pos}
	if got, want := perr.GraphemeColumn(line), pos.GraphemeColumn(line); got != want {
		t.Errorf("ParseError.GraphemeColumn = %d, want %d", got, want)
	}
}
