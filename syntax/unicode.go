package syntax

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// IsNewline returns true if the character is one of the line terminators
// recognized by the lexer's line splitter (spec section 4.1): LF, CR, NEL,
// LS, PS. CR is only a terminator when not immediately followed by LF —
// the splitter handles that two-character case itself.
func IsNewline(c rune) bool {
	switch c {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsLineSpace returns true for horizontal whitespace the lexer skips
// silently between tokens (not a line terminator).
func IsLineSpace(c rune) bool {
	return c == ' ' || c == '\t' || unicode.Is(unicode.Zs, c)
}

// IsIDStart returns true if the character can start an identifier.
func IsIDStart(c rune) bool {
	return unicode.Is(unicode.L, c) || unicode.Is(unicode.Nl, c) || c == '_'
}

// IsIDContinue returns true if the character can continue an identifier.
func IsIDContinue(c rune) bool {
	return unicode.Is(unicode.L, c) ||
		unicode.Is(unicode.Nl, c) ||
		unicode.Is(unicode.Mn, c) ||
		unicode.Is(unicode.Mc, c) ||
		unicode.Is(unicode.Nd, c) ||
		unicode.Is(unicode.Pc, c) ||
		c == '_'
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// IsHexDigit reports whether c is a hexadecimal digit.
func IsHexDigit(c rune) bool {
	return IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DescribeRune renders a rune for an "unexpected character" diagnostic,
// using Unicode character names so messages stay legible for combining
// marks and other non-printable runes. Diagnostic use only — never used
// to drive lexing decisions.
func DescribeRune(r rune) string {
	if r < 0 {
		return "end of input"
	}
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf("%q (%s)", r, name)
}
