package syntax

// KindSet is a set of Kinds implemented as a bitset, one bit per
// discriminator. Used for operator-precedence membership tests and for the
// keyword-autocomplete starter sets.
//
// Based on rust-analyzer's TokenSet, the same structure the teacher's
// SyntaxSet borrows from.
type KindSet struct {
	lo uint64 // bits 0-63
	hi uint64 // bits 64-127
}

const maxSetBit = 128

// NewKindSet creates a new empty set.
func NewKindSet() KindSet {
	return KindSet{}
}

// KindSetOf creates a set containing the given kinds.
func KindSetOf(kinds ...Kind) KindSet {
	s := KindSet{}
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add inserts a kind into the set and returns the new set.
func (s KindSet) Add(kind Kind) KindSet {
	if kind >= maxSetBit {
		panic("KindSet.Add: kind discriminator must be < 128")
	}
	if kind < 64 {
		s.lo |= 1 << kind
	} else {
		s.hi |= 1 << (kind - 64)
	}
	return s
}

// Union combines two kind sets.
func (s KindSet) Union(other KindSet) KindSet {
	return KindSet{lo: s.lo | other.lo, hi: s.hi | other.hi}
}

// Contains returns true if the set contains the given kind.
func (s KindSet) Contains(kind Kind) bool {
	if kind >= maxSetBit {
		return false
	}
	if kind < 64 {
		return (s.lo & (1 << kind)) != 0
	}
	return (s.hi & (1 << (kind - 64))) != 0
}

// IsEmpty returns true if the set contains no kinds.
func (s KindSet) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Operator-precedence tiers, lowest to highest binding (spec section 4.3).

var NullCoalesceOpSet = KindSetOf(NullCoalesce)
var OrOpSet = KindSetOf(KeywordOr)
var AndOpSet = KindSetOf(KeywordAnd)
var RelationalOpSet = KindSetOf(Less, LessEqual, Greater, GreaterEqual)
var EqualityOpSet = KindSetOf(Equal, NotEqual)
var AsOpSet = KindSetOf(KeywordAs)
var IsOpSet = KindSetOf(KeywordIs)
var AdditiveOpSet = KindSetOf(Plus, Minus, Ampersand)
var MultiplicativeOpSet = KindSetOf(Star, Slash)
var MetadataOpSet = KindSetOf(KeywordMeta)
var UnaryOpSet = KindSetOf(Plus, Minus, KeywordNot)

// ExpressionStarterSet contains kinds that can begin a Power Query
// expression (spec section 4.8). No code in this module reads it: the
// parser dispatches in readPrimary, and keyword autocomplete keeps its own
// list of the keyword members (inspect's starterKeywordKinds).
var ExpressionStarterSet = KindSetOf(
	KeywordLet, KeywordIf, KeywordEach, KeywordTry, KeywordError,
	KeywordType, KeywordNot,
	Identifier, NumericLiteral, HexLiteral, TextLiteral,
	KeywordTrue, KeywordFalse, KeywordNull,
	LeftParen, LeftBrace, LeftBracket,
	Plus, Minus,
).Union(PrimitiveTypeKeywords)

// RecursivePrimarySuffixSet contains kinds that start a recursive-primary
// suffix: invocation, item-access, field-selector, field-projection (spec
// section 4.3, "Primary-expression chain").
var RecursivePrimarySuffixSet = KindSetOf(LeftParen, LeftBrace, LeftBracket)
