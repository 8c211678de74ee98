package syntax

import "testing"

func snapshotFor(text string) *Snapshot {
	return TakeSnapshot(Lex(Settings{}, text))
}

// TestSnapshotFoldsTextLiteral verifies a text literal spanning a single
// line collapses into one TextLiteral token.
func TestSnapshotFoldsTextLiteral(t *testing.T) {
	snap := snapshotFor(`"hello"`)
	if snap.Err != nil {
		t.Fatalf("unexpected snapshot error: %v", snap.Err)
	}
	found := false
	for _, tok := range snap.Tokens {
		if tok.Kind == TextLiteral {
			found = true
		}
	}
	if !found {
		t.Error("expected a folded TextLiteral token")
	}
}

// TestSnapshotFoldsMultilineTextLiteral verifies a text literal spanning
// more than one line folds into a single token with a document-wide
// range, per scenario 1 (spec section 8).
func TestSnapshotFoldsMultilineTextLiteral(t *testing.T) {
	snap := snapshotFor("\"foo\nbar\"")
	if snap.Err != nil {
		t.Fatalf("unexpected snapshot error: %v", snap.Err)
	}
	if len(snap.Tokens) != 1 {
		t.Fatalf("expected exactly one folded token, got %d", len(snap.Tokens))
	}
	tok := snap.Tokens[0]
	if tok.Kind != TextLiteral {
		t.Errorf("kind = %v, want TextLiteral", tok.Kind)
	}
	if tok.PositionStart.LineNumber != 0 || tok.PositionEnd.LineNumber != 1 {
		t.Errorf("range = %+v..%+v, want to span lines 0 and 1", tok.PositionStart, tok.PositionEnd)
	}
}

// TestSnapshotUnterminatedTextRaisesError covers scenario 1 (spec section
// 8): a text literal still open at end of input surfaces an
// UnterminatedMultilineToken error at snapshot time rather than silently
// dropping the fold.
func TestSnapshotUnterminatedTextRaisesError(t *testing.T) {
	snap := snapshotFor("\"foo\n")
	if snap.Err == nil {
		t.Fatal("expected an UnterminatedMultilineToken error")
	}
	if snap.Err.Kind != LexErrorUnterminatedMultilineToken {
		t.Errorf("err kind = %v, want LexErrorUnterminatedMultilineToken", snap.Err.Kind)
	}
	if snap.Err.Unterm != UnterminatedText {
		t.Errorf("unterm kind = %v, want UnterminatedText", snap.Err.Unterm)
	}
	if len(snap.Tokens) != 1 {
		t.Errorf("expected the partial fold still emitted as a token, got %d", len(snap.Tokens))
	}
}

// TestSnapshotPositionForRoundTripsCodeUnitFor verifies the two position
// conversion helpers agree with each other across a multi-line document.
func TestSnapshotPositionForRoundTripsCodeUnitFor(t *testing.T) {
	text := "let a = 1\nin a"
	snap := snapshotFor(text)
	for cu := 0; cu <= len(text); cu++ {
		pos := snap.PositionFor(cu)
		back := snap.CodeUnitFor(pos)
		if back != cu {
			t.Errorf("code unit %d: PositionFor -> %+v -> CodeUnitFor -> %d", cu, pos, back)
		}
	}
}

// TestSnapshotCommentsAreSeparatedFromTokens verifies line and block
// comments are collected into Comments rather than Tokens.
func TestSnapshotCommentsAreSeparatedFromTokens(t *testing.T) {
	snap := snapshotFor("1 // a comment\n+ 2")
	if len(snap.Comments) != 1 {
		t.Fatalf("expected one comment, got %d", len(snap.Comments))
	}
	for _, tok := range snap.Tokens {
		if tok.Kind == LineComment {
			t.Error("a LineComment token leaked into Tokens")
		}
	}
}
