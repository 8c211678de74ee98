package syntax

import "testing"

func parseFor(t *testing.T, text string) ParseResult {
	t.Helper()
	state := Lex(Settings{}, text)
	snap := TakeSnapshot(state)
	return ParseDocument(Settings{}, snap)
}

// TestParseDocumentAccepts tests a representative sample of each grammar
// production reaching a clean, error-free parse.
func TestParseDocumentAccepts(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
	}{
		{"literal", "42", LiteralExpression},
		{"identifier", "x", IdentifierExpression},
		{"addition", "1 + 2", BinOpExpression},
		{"let", "let a = 1 in a", LetExpression},
		{"each", "each _", EachExpression},
		{"function", "(a) => a", FunctionExpression},
		{"if", "if true then 1 else 2", IfExpression},
		{"list", "{1, 2, 3}", ListExpression},
		{"record", "[a = 1]", RecordLiteral},
		{"as", "1 as number", AsExpression},
		{"is", "1 is number", IsExpression},
		{"try otherwise", "try 1 otherwise 2", ErrorHandlingExpression},
		{"parenthesized", "(1)", ParenthesizedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseFor(t, tt.text)
			if result.Err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.text, result.Err)
			}
			root, ok := result.IDMap.Get(result.Root)
			if !ok {
				t.Fatalf("Parse(%q): no root in node-id map", tt.text)
			}
			if root.Kind() != Document {
				t.Fatalf("root kind = %v, want Document", root.Kind())
			}
			if !containsKind(result.IDMap, result.Root, tt.kind) {
				t.Errorf("Parse(%q): expected a %v node somewhere in the tree", tt.text, tt.kind)
			}
		})
	}
}

func containsKind(idMap *NodeIdMap, id NodeId, want Kind) bool {
	n, ok := idMap.Get(id)
	if !ok {
		return false
	}
	if n.Kind() == want {
		return true
	}
	for _, child := range n.Children() {
		if containsKind(idMap, child, want) {
			return true
		}
	}
	return false
}

// TestAsIsReadATypeNotAnExpression verifies `as` takes a type on its
// right-hand side rather than recursing back into the expression
// grammar: `1 as number` parses to an AsExpression and no IsExpression.
func TestAsIsReadATypeNotAnExpression(t *testing.T) {
	result := parseFor(t, "1 as number")
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	if !containsKind(result.IDMap, result.Root, AsExpression) {
		t.Fatal("expected an AsExpression node")
	}
	if containsKind(result.IDMap, result.Root, IsExpression) {
		t.Fatal("did not expect an IsExpression node for a plain `as`")
	}
}

// TestParsePartialRecordRetainsPartialTree covers scenario 2 (spec
// section 8): a record with a dangling trailing field still fails to
// parse but leaves a RecordLiteral behind in the node-id map.
func TestParsePartialRecordRetainsPartialTree(t *testing.T) {
	result := parseFor(t, "[a = 1, b =")
	if result.Err == nil {
		t.Fatal("expected a parse error for a dangling record field")
	}
	if result.IDMap == nil {
		t.Fatal("expected a node-id map even on parse failure")
	}
	if !containsKind(result.IDMap, result.IDMap.Root(), RecordLiteral) {
		t.Error("expected the partial RecordLiteral context to survive the failure")
	}
}

// TestLetExpressionDanglingCommaRaisesCsvContinuationLetExpression
// verifies a let expression's variable list goes through the same Csv
// machinery as records/lists/invocations, so a trailing comma before
// `in` is reported as ParseErrorExpectedCsvContinuation with
// CsvContinuationLetExpression, not a generic "expected identifier"
// error from trying to parse `in` itself as a new binding's name.
func TestLetExpressionDanglingCommaRaisesCsvContinuationLetExpression(t *testing.T) {
	result := parseFor(t, "let a = 1, in a")
	if result.Err == nil {
		t.Fatal("expected a parse error for a dangling comma in a let's variable list")
	}
	perr, ok := result.Err.(*ParseError)
	if !ok {
		t.Fatalf("expected a *ParseError, got %T: %v", result.Err, result.Err)
	}
	if perr.Kind != ParseErrorExpectedCsvContinuation {
		t.Fatalf("expected ParseErrorExpectedCsvContinuation, got %v", perr.Kind)
	}
	if perr.Csv != CsvContinuationLetExpression {
		t.Errorf("expected CsvContinuationLetExpression, got %v", perr.Csv)
	}
}

// TestLetExpressionVariableListIsACsv verifies readLetExpression wraps
// its bindings in a Csv node like every other comma-separated list (spec
// section 4.3, "Csv"), rather than attaching them directly to
// LetExpression.
func TestLetExpressionVariableListIsACsv(t *testing.T) {
	result := parseFor(t, "let a = 1, b = 2 in a")
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	letID, _ := result.IDMap.ChildAt(result.Root, 0)
	letNode, ok := result.IDMap.Get(letID)
	if !ok || letNode.Kind() != LetExpression {
		t.Fatal("missing LetExpression under the Document root")
	}
	foundCsv := false
	for _, id := range letNode.Children() {
		n, ok := result.IDMap.Get(id)
		if ok && n.Kind() == Csv {
			foundCsv = true
			kvCount := 0
			for _, cid := range n.Children() {
				if cn, ok := result.IDMap.Get(cid); ok && cn.Kind() == KeyValuePair {
					kvCount++
				}
			}
			if kvCount != 2 {
				t.Errorf("Csv has %d KeyValuePair children, want 2", kvCount)
			}
		}
	}
	if !foundCsv {
		t.Error("expected LetExpression's direct children to include a Csv node")
	}
}

// TestParseSectionDocument verifies the section-document form (spec
// section 4.3, "Document") is recognized ahead of the bare-expression
// fallback.
func TestParseSectionDocument(t *testing.T) {
	result := parseFor(t, "section Foo; shared a = 1; b = 2;")
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}
	if !containsKind(result.IDMap, result.Root, Section) {
		t.Error("expected a Section node")
	}
	members := 0
	var count func(id NodeId)
	count = func(id NodeId) {
		n, ok := result.IDMap.Get(id)
		if !ok {
			return
		}
		if n.Kind() == SectionMember {
			members++
		}
		for _, c := range n.Children() {
			count(c)
		}
	}
	count(result.Root)
	if members != 2 {
		t.Errorf("expected 2 section members, got %d", members)
	}
}
