package inspect

import "github.com/pqls/pqcore/syntax"

// Keyword is one suggested reserved word (spec section 4.8, "Keyword
// Autocomplete").
type Keyword string

// starterKeywordKinds are the keyword-kind members of an expression
// starter — the reserved-word members of syntax.ExpressionStarterSet,
// listed here on their own (that set also contains punctuation/identifier/literal kinds,
// which aren't autocomplete candidates).
var starterKeywordKinds = []syntax.Kind{
	syntax.KeywordLet, syntax.KeywordIf, syntax.KeywordEach, syntax.KeywordTry,
	syntax.KeywordError, syntax.KeywordType, syntax.KeywordNot,
	syntax.KeywordTrue, syntax.KeywordFalse, syntax.KeywordNull,
	syntax.KeywordAny, syntax.KeywordAnyNonNull, syntax.KeywordNone,
	syntax.KeywordLogical, syntax.KeywordNumber, syntax.KeywordText,
	syntax.KeywordDate, syntax.KeywordDateTime, syntax.KeywordDateTimeZone,
	syntax.KeywordDuration, syntax.KeywordTime, syntax.KeywordBinary,
	syntax.KeywordList, syntax.KeywordRecord, syntax.KeywordTable,
	syntax.KeywordFunction, syntax.KeywordAction,
}

func expressionStarterKeywords() []Keyword {
	out := make([]Keyword, len(starterKeywordKinds))
	for i, k := range starterKeywordKinds {
		out[i] = Keyword(k.String())
	}
	return out
}

// conjunctionMap is the shared conjunction-keyword map (SUPPLEMENTED
// FEATURES #4): a lone leading letter of a trailing identifier-like token
// can be the start of more than one reserved word, so all candidates
// sharing that first letter are offered before prefix filtering narrows
// them further.
var conjunctionMap = map[byte][]Keyword{
	'a': {"and", "as"},
	'i': {"in", "is"},
	'm': {"meta"},
	'o': {"or", "otherwise"},
	'n': {"not"},
}

// AutocompleteKeyword computes keyword candidates for an active node,
// optionally narrowed by a trailing partial-identifier token (spec
// section 6, external interface 7).
func AutocompleteKeyword(idMap *syntax.NodeIdMap, active syntax.ActiveNode, trailingText string) []Keyword {
	inner, ok := active.InnermostOfKind(
		syntax.ErrorHandlingExpression, syntax.LetExpression,
		syntax.ListExpression, syntax.RecordExpression, syntax.RecordLiteral,
		syntax.InvokeExpression, syntax.ParenthesizedExpression,
	)

	var candidates []Keyword
	switch {
	case ok && inner.Kind() == syntax.ErrorHandlingExpression:
		candidates = errorHandlingCandidates(idMap, inner, active)
	case ok && inner.Kind() == syntax.LetExpression:
		candidates = letCandidates(idMap, inner, active)
	case ok && isItemSlotContainer(inner.Kind()):
		if emptyItemSlot(idMap, active) {
			candidates = expressionStarterKeywords()
		}
	default:
		candidates = defaultCandidates(idMap, active)
	}

	candidates = append(candidates, conjunctionCandidates(trailingText)...)
	return filterByPrefix(dedupeKeywords(candidates), trailingText)
}

func isItemSlotContainer(k syntax.Kind) bool {
	switch k {
	case syntax.ListExpression, syntax.RecordExpression, syntax.RecordLiteral,
		syntax.InvokeExpression, syntax.ParenthesizedExpression:
		return true
	}
	return false
}

func leafKind(idMap *syntax.NodeIdMap, id syntax.NodeId) syntax.Kind {
	n, ok := idMap.Get(id)
	if !ok {
		return syntax.End
	}
	return n.Kind()
}

// emptyItemSlot reports whether the cursor sits right after an opening
// bracket/paren or a comma with nothing but a closer (or another comma)
// ahead — an empty item slot ready for a fresh expression. An empty Csv
// node (the item list of `{}`) reached as the trailing leaf counts as
// nothing ahead.
func emptyItemSlot(idMap *syntax.NodeIdMap, active syntax.ActiveNode) bool {
	k := leafKind(idMap, active.Leaf)
	opening := k == syntax.LeftParen || k == syntax.LeftBrace || k == syntax.LeftBracket || k == syntax.Comma
	if !opening || active.Relation != syntax.RelationAfter {
		return false
	}
	if !active.HasTrailing {
		return true
	}
	switch leafKind(idMap, active.TrailingLeaf) {
	case syntax.RightParen, syntax.RightBrace, syntax.RightBracket, syntax.Comma, syntax.Csv:
		return true
	}
	return false
}

// errorHandlingCandidates implements the ErrorHandlingExpression rule
// (spec section 4.8): `try` at the try slot itself, `otherwise` once the
// protected expression is complete with nothing trailing, and both `or`/
// `otherwise` in the ambiguous ("trailing `o…`") case — the conjunction
// map already supplies that ambiguity, so this only adds the bare-word
// suggestions that apply regardless of any trailing prefix.
func errorHandlingCandidates(idMap *syntax.NodeIdMap, tryExpr syntax.XorNode, active syntax.ActiveNode) []Keyword {
	children := tryExpr.Children()
	if len(children) == 0 {
		return nil
	}
	if active.Leaf == children[0] {
		return []Keyword{"try"}
	}
	if len(children) >= 2 && active.Leaf == children[1] && active.Relation == syntax.RelationAfter {
		if !active.HasTrailing || leafKind(idMap, active.TrailingLeaf) != syntax.KeywordOtherwise {
			return []Keyword{"otherwise"}
		}
	}
	return nil
}

// letCandidates implements the LetExpression rule (spec section 4.8): an
// empty value slot suggests expression starters; a complete value with no
// trailing comma additionally suggests `in`.
func letCandidates(idMap *syntax.NodeIdMap, let syntax.XorNode, active syntax.ActiveNode) []Keyword {
	k := leafKind(idMap, active.Leaf)
	var out []Keyword
	if (k == syntax.Equal || k == syntax.Comma) && active.Relation == syntax.RelationAfter {
		out = append(out, expressionStarterKeywords()...)
	}
	if active.Relation == syntax.RelationAfter && k != syntax.Equal && k != syntax.Comma && k != syntax.KeywordLet {
		if !active.HasTrailing {
			out = append(out, Keyword("in"))
		} else if next := leafKind(idMap, active.TrailingLeaf); next != syntax.Comma && next != syntax.KeywordIn {
			out = append(out, Keyword("in"))
		}
	}
	_ = let
	return out
}

// defaultCandidates implements the fallback rule (spec section 4.8):
// expression starters before any token of the current (innermost
// non-special) node, nothing once the cursor is past its closing token.
func defaultCandidates(idMap *syntax.NodeIdMap, active syntax.ActiveNode) []Keyword {
	if len(active.Ancestry) == 0 {
		return expressionStarterKeywords()
	}
	node := active.Ancestry[0]
	rng, ok := idMap.Range(node.Id())
	if !ok {
		return expressionStarterKeywords()
	}
	leafRng, ok := idMap.Range(active.Leaf)
	if ok && leafRng.CodeUnitStart == rng.CodeUnitStart && active.Relation != syntax.RelationAfter {
		return expressionStarterKeywords()
	}
	if ok && leafRng.CodeUnitEnd >= rng.CodeUnitEnd {
		return nil
	}
	return expressionStarterKeywords()
}

func conjunctionCandidates(trailingText string) []Keyword {
	if trailingText == "" {
		return nil
	}
	return conjunctionMap[trailingText[0]]
}

func filterByPrefix(candidates []Keyword, prefix string) []Keyword {
	if prefix == "" {
		return candidates
	}
	var out []Keyword
	for _, c := range candidates {
		if len(string(c)) >= len(prefix) && string(c)[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func dedupeKeywords(in []Keyword) []Keyword {
	seen := map[Keyword]bool{}
	var out []Keyword
	for _, k := range in {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
