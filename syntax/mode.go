package syntax

// LexMode is the lexer's multi-line continuation state: what a line started
// in, and what it left off in for the following line to pick up. This is
// the only state that crosses a line boundary (spec section 3, "Line").
type LexMode uint8

const (
	// ModeDefault is ordinary code: identifiers, literals, punctuation.
	ModeDefault LexMode = iota
	// ModeComment is inside an unterminated `/* ... */` block comment.
	ModeComment
	// ModeText is inside an unterminated `"..."` text literal.
	ModeText
	// ModeQuotedIdentifier is inside an unterminated `#"..."` identifier.
	ModeQuotedIdentifier
)

// String returns a human-readable name for the lex mode.
func (m LexMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeComment:
		return "comment"
	case ModeText:
		return "text"
	case ModeQuotedIdentifier:
		return "quotedIdentifier"
	default:
		return "unknown"
	}
}
