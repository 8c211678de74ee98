package pqcore

import (
	"testing"

	"github.com/pqls/pqcore/syntax"
)

// parseText runs the full Lex -> Snapshot -> Parse pipeline, returning
// the node-id map and root regardless of whether parsing succeeded (the
// map still holds whatever was built before a failure).
func parseText(text string) (ParseResult, *syntax.Snapshot) {
	state := Lex(Settings{}, text)
	snap := Snapshot(state)
	return Parse(Settings{}, snap), snap
}

func TestParsePipelineSucceedsOnValidDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"number literal", "42"},
		{"let expression", "let a = 1, b = 2 in a + b"},
		{"each expression", "each _ + 1"},
		{"function", "(a, b as number) => a + b"},
		{"record", "[a = 1, b = 2]"},
		{"section document", "section Foo; shared x = 1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := parseText(tt.input)
			if result.Err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, result.Err)
			}
			if result.Root == syntax.NoNode {
				t.Fatalf("Parse(%q) produced no root", tt.input)
			}
		})
	}
}

func TestParsePipelineRetainsPartialTreeOnError(t *testing.T) {
	result, _ := parseText("[a = 1, b =")
	if result.Err == nil {
		t.Fatal("expected a parse error for a dangling record field")
	}
	if result.IDMap == nil {
		t.Fatal("expected a node-id map even on parse failure")
	}
}

func TestActiveNodeAncestryEndsAtRoot(t *testing.T) {
	result, snap := parseText("let a = 1 in a")
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}

	pos := syntax.Position{LineNumber: 0, LineCodeUnit: len("let a = 1 in a") - 1}
	active := ActiveNodeAt(result.IDMap, snap, pos)
	if len(active.Ancestry) == 0 {
		t.Fatal("expected a non-empty ancestry")
	}
	if last := active.Ancestry[len(active.Ancestry)-1].Id(); last != result.Root {
		t.Errorf("ancestry root = %v, want document root %v", last, result.Root)
	}
}

func TestScopeAtLetBodyIncludesAllBindings(t *testing.T) {
	text := "let a = 1, b = 2 in a"
	result, snap := parseText(text)
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}

	pos := syntax.Position{LineNumber: 0, LineCodeUnit: len(text) - 1}
	active := ActiveNodeAt(result.IDMap, snap, pos)
	items := Scope(Settings{}, result.IDMap, active.Leaf)

	names := map[string]bool{}
	for _, item := range items {
		names[item.Name] = true
	}
	if !names["a"] || !names["b"] {
		t.Errorf("expected both a and b in scope, got %+v", items)
	}
}

func TestAutocompleteKeywordAtErrorHandlingOtherwise(t *testing.T) {
	text := "try true o"
	result, snap := parseText(text)
	_ = result.Err // a dangling "o" identifier may itself fail to parse cleanly

	pos := syntax.Position{LineNumber: 0, LineCodeUnit: len(text)}
	active := ActiveNodeAt(result.IDMap, snap, pos)

	candidates := AutocompleteKeyword(result.IDMap, active, "o")
	if !containsKeyword(candidates, "or") || !containsKeyword(candidates, "otherwise") {
		t.Errorf("trailing %q: expected [or, otherwise], got %v", "o", candidates)
	}

	narrowed := AutocompleteKeyword(result.IDMap, active, "ot")
	if len(narrowed) != 1 || narrowed[0] != "otherwise" {
		t.Errorf("trailing %q: expected [otherwise], got %v", "ot", narrowed)
	}
}

func containsKeyword(list []Keyword, want Keyword) bool {
	for _, k := range list {
		if k == want {
			return true
		}
	}
	return false
}
