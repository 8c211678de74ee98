package inspect

import "testing"

// TestAutocompleteErrorHandlingOtherwise covers scenario 7 (spec section
// 8): at `try true o|` the trailing "o" yields both `or` and `otherwise`;
// narrowing to "ot" yields only `otherwise`.
func TestAutocompleteErrorHandlingOtherwise(t *testing.T) {
	idMap, active := parseAt(t, "try true o|")

	wide := AutocompleteKeyword(idMap, active, "o")
	if !hasKeyword(wide, "or") || !hasKeyword(wide, "otherwise") {
		t.Errorf("trailing \"o\": got %v, want [or, otherwise]", wide)
	}

	narrow := AutocompleteKeyword(idMap, active, "ot")
	if len(narrow) != 1 || narrow[0] != "otherwise" {
		t.Errorf("trailing \"ot\": got %v, want [otherwise]", narrow)
	}
}

// TestAutocompleteTrySlotSuggestsTry verifies the cursor at the very
// start of an ErrorHandlingExpression (on its `try` keyword) suggests
// `try` itself.
func TestAutocompleteTrySlotSuggestsTry(t *testing.T) {
	idMap, active := parseAt(t, "|try true otherwise false")
	candidates := AutocompleteKeyword(idMap, active, "")
	if !hasKeyword(candidates, "try") {
		t.Errorf("expected try among candidates, got %v", candidates)
	}
}

// TestAutocompleteLetSuggestsInAfterCompleteValue verifies a complete
// let-binding value with nothing trailing offers `in`.
func TestAutocompleteLetSuggestsInAfterCompleteValue(t *testing.T) {
	idMap, active := parseAt(t, "let a = 1|")
	candidates := AutocompleteKeyword(idMap, active, "")
	if !hasKeyword(candidates, "in") {
		t.Errorf("expected in among candidates, got %v", candidates)
	}
}

// TestAutocompleteLetEmptyValueSlotSuggestsExpressionStarters verifies
// the position right after `=` offers expression-starter keywords such
// as `let` and `if`.
func TestAutocompleteLetEmptyValueSlotSuggestsExpressionStarters(t *testing.T) {
	idMap, active := parseAt(t, "let a =|")
	candidates := AutocompleteKeyword(idMap, active, "")
	if !hasKeyword(candidates, "if") || !hasKeyword(candidates, "let") {
		t.Errorf("expected expression-starter keywords, got %v", candidates)
	}
}

// TestAutocompleteEmptyListItemSuggestsExpressionStarters verifies an
// empty item slot inside a list literal offers expression starters.
func TestAutocompleteEmptyListItemSuggestsExpressionStarters(t *testing.T) {
	idMap, active := parseAt(t, "{|}")
	candidates := AutocompleteKeyword(idMap, active, "")
	if !hasKeyword(candidates, "each") {
		t.Errorf("expected expression-starter keywords inside {}, got %v", candidates)
	}
}

func hasKeyword(list []Keyword, want Keyword) bool {
	for _, k := range list {
		if k == want {
			return true
		}
	}
	return false
}
