package inspect

import "testing"

// TestScopeLetBindingsAreAllVisibleFromTheBody covers scenario 3 (spec
// section 8): both bindings are visible at the body position and
// neither is recursive there.
func TestScopeLetBindingsAreAllVisibleFromTheBody(t *testing.T) {
	idMap, active := parseAt(t, "let a = 1, b = 2 in |a")
	scope := ComputeScope(idMap, active, nil)

	a, ok := scope.Get("a")
	if !ok {
		t.Fatal("expected a in scope")
	}
	if a.IsRecursive {
		t.Error("a should not be recursive from the body")
	}
	b, ok := scope.Get("b")
	if !ok {
		t.Fatal("expected b in scope")
	}
	if b.IsRecursive {
		t.Error("b should not be recursive from the body")
	}
}

// TestScopeLetBindingIsRecursiveInsideItsOwnValue covers scenario 4 (spec
// section 8): a binding is marked recursive only while the cursor sits
// inside that binding's own value, and siblings remain non-recursive.
func TestScopeLetBindingIsRecursiveInsideItsOwnValue(t *testing.T) {
	idMap, active := parseAt(t, "let a = |1, b = 2 in x")
	scope := ComputeScope(idMap, active, nil)

	a, ok := scope.Get("a")
	if !ok {
		t.Fatal("expected a in scope")
	}
	if !a.IsRecursive {
		t.Error("a should be recursive when the cursor is inside its own value")
	}
	b, ok := scope.Get("b")
	if !ok {
		t.Fatal("expected b in scope")
	}
	if b.IsRecursive {
		t.Error("b should not be recursive")
	}
}

// TestScopeLetVariableListHidesFollowingSiblings verifies the
// variable-list exclusion: a binding still being typed in its own
// name/type slot only sees the bindings that precede it.
func TestScopeLetVariableListHidesFollowingSiblings(t *testing.T) {
	idMap, active := parseAt(t, "let a = 1, b| = 2 in x")
	scope := ComputeScope(idMap, active, nil)

	if _, ok := scope.Get("a"); !ok {
		t.Error("expected a to be visible from a later binding's name slot")
	}
	if _, ok := scope.Get("b"); ok {
		t.Error("b should not see itself while its own name is still being typed")
	}
}

// TestScopeRecordFieldDoesNotHideSiblings verifies the record rule
// differs from let's: a field being typed in its own name slot still
// leaves its siblings visible (spec section 4.6).
func TestScopeRecordFieldDoesNotHideSiblings(t *testing.T) {
	idMap, active := parseAt(t, "[a = 1, b| = 2]")
	scope := ComputeScope(idMap, active, nil)

	if _, ok := scope.Get("a"); !ok {
		t.Error("expected a to remain visible while b's name is being typed")
	}
}

// TestScopeEachImplicitParameter verifies each introduces the implicit
// `_` binding.
func TestScopeEachImplicitParameter(t *testing.T) {
	idMap, active := parseAt(t, "each |_")
	scope := ComputeScope(idMap, active, nil)

	item, ok := scope.Get("_")
	if !ok {
		t.Fatal("expected an implicit _ binding inside each")
	}
	if item.Kind != ScopeItemEachImplicit {
		t.Errorf("kind = %v, want ScopeItemEachImplicit", item.Kind)
	}
}

// TestScopeFunctionParameters covers scenario 8 (spec section 8): every
// declared parameter is visible and non-recursive inside the function
// body.
func TestScopeFunctionParameters(t *testing.T) {
	idMap, active := parseAt(t, "(a, b as number, c as nullable function, optional d, optional e as table) => |1")
	scope := ComputeScope(idMap, active, nil)

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		item, ok := scope.Get(name)
		if !ok {
			t.Errorf("expected parameter %s in scope", name)
			continue
		}
		if item.Kind != ScopeItemParameter {
			t.Errorf("parameter %s kind = %v, want ScopeItemParameter", name, item.Kind)
		}
		if item.IsRecursive {
			t.Errorf("parameter %s should never be recursive", name)
		}
	}
}

// TestScopeSectionMembersAreMutuallyRecursive verifies every section
// member is visible from every other member's value, including its own,
// with isRecursive set only for the member containing the cursor.
func TestScopeSectionMembersAreMutuallyRecursive(t *testing.T) {
	idMap, active := parseAt(t, "section Foo; a = |1; b = a + 1;")
	scope := ComputeScope(idMap, active, nil)

	a, ok := scope.Get("a")
	if !ok {
		t.Fatal("expected a in scope")
	}
	if !a.IsRecursive {
		t.Error("a should be recursive from inside its own value")
	}
	b, ok := scope.Get("b")
	if !ok {
		t.Fatal("expected b in scope even though its value follows a")
	}
	if b.IsRecursive {
		t.Error("b should not be recursive from inside a's value")
	}
}

// TestScopeIsIdempotent covers the stability invariant (spec section 8):
// recomputing the scope at the same target twice yields the same names.
func TestScopeIsIdempotent(t *testing.T) {
	idMap, active := parseAt(t, "let a = 1, b = 2 in |a")
	first := ComputeScope(idMap, active, nil).Items()
	second := ComputeScope(idMap, active, nil).Items()

	if len(first) != len(second) {
		t.Fatalf("item count changed across recomputation: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || first[i].IsRecursive != second[i].IsRecursive {
			t.Errorf("item %d differs across recomputation: %+v vs %+v", i, first[i], second[i])
		}
	}
}
