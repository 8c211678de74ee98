package inspect

import (
	"testing"

	"github.com/pqls/pqcore/syntax"
)

// TestTypeOfLiteralsAreRefined verifies number/text literals carry their
// source text as a refinement (SUPPLEMENTED FEATURES #1).
func TestTypeOfLiteralsAreRefined(t *testing.T) {
	idMap, active := parseAt(t, "|42")
	lit, ok := active.InnermostOfKind(syntax.LiteralExpression)
	if !ok {
		t.Fatal("expected an enclosing LiteralExpression")
	}
	typ := TypeOf(idMap, nil, lit.Id(), nil)
	if typ.Kind != KindNumber || typ.Literal != "42" {
		t.Errorf("type of 42 = %+v, want Number refined to \"42\"", typ)
	}
}

// TestTypeOfLetBodyCarriesNestedBindingValue covers scenario 5 (spec
// section 8): the literal body of an outer let whose first binding is
// itself a let types to that literal's refined Number.
func TestTypeOfLetBodyCarriesNestedBindingValue(t *testing.T) {
	idMap, active := parseAt(t, "let eggs = let ham = 0 in 1, foo = 2, bar = 3 in |4")
	lit, ok := active.InnermostOfKind(syntax.LiteralExpression)
	if !ok {
		t.Fatal("expected an enclosing LiteralExpression")
	}
	typ := TypeOf(idMap, nil, lit.Id(), nil)
	if typ.Kind != KindNumber || typ.Literal != "4" {
		t.Errorf("type of final body = %+v, want Number refined to \"4\"", typ)
	}
}

// TestTypeOfIfUnionsBranches covers scenario 6 (spec section 8): an if
// expression with differently-typed branches types to an AnyUnion, and
// nesting an if in the condition position still collapses the condition
// to Logical without changing the branch union.
func TestTypeOfIfUnionsBranches(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain condition", "|if true then 1 else \"\""},
		{"nested condition", "|if if true then true else false then 1 else \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idMap, active := parseAt(t, tt.text)
			ifExpr, ok := active.InnermostOfKind(syntax.IfExpression)
			if !ok {
				t.Fatal("expected an enclosing IfExpression")
			}
			typ := TypeOf(idMap, nil, ifExpr.Id(), nil)
			if typ.Kind != KindAnyUnion {
				t.Fatalf("type = %+v, want AnyUnion", typ)
			}
			if len(typ.UnionTypes) != 2 {
				t.Fatalf("union members = %+v, want 2", typ.UnionTypes)
			}
			foundNumber, foundText := false, false
			for _, m := range typ.UnionTypes {
				if m.Kind == KindNumber {
					foundNumber = true
				}
				if m.Kind == KindText {
					foundText = true
				}
			}
			if !foundNumber || !foundText {
				t.Errorf("union members = %+v, want Number and Text", typ.UnionTypes)
			}
		})
	}
}

// TestUnionIsIdempotent covers the type-folding invariant (spec section
// 8): union(union(A, B), B) == union(A, B).
func TestUnionIsIdempotent(t *testing.T) {
	a, b := NumberType, TextType
	once := Union(a, b)
	twice := Union(once, b)
	if !Equal(once, twice) {
		t.Errorf("union(union(A,B),B) = %+v, want %+v", twice, once)
	}
}

// TestUnionWidensRefinementAgainstUnrefinedSibling verifies a literal
// refinement is dropped once an unrefined sibling of the same base kind
// appears in the same union set.
func TestUnionWidensRefinementAgainstUnrefinedSibling(t *testing.T) {
	refined := Refined(KindNumber, "1")
	bare := Primitive(KindNumber)
	result := Union(refined, bare)
	if result.Kind != KindNumber || result.Literal != "" {
		t.Errorf("Union(refined, bare) = %+v, want bare Number", result)
	}
}

// TestUnionAnyAbsorbsEverything verifies Any swallows all other members.
func TestUnionAnyAbsorbsEverything(t *testing.T) {
	result := Union(NumberType, TextType, AnyType)
	if result.Kind != KindAny {
		t.Errorf("Union(..., Any) = %+v, want Any", result)
	}
}

// TestTypeOfFunctionSignature covers scenario 8 (spec section 8): a
// function's parameter list exposes each parameter's declared type,
// optionality, and nullability.
func TestTypeOfFunctionSignature(t *testing.T) {
	idMap, active := parseAt(t, "(a, b as number, c as nullable function, optional d, optional e as table) => |1")
	fn, ok := active.InnermostOfKind(syntax.FunctionExpression)
	if !ok {
		t.Fatal("expected an enclosing FunctionExpression")
	}
	typ := TypeOf(idMap, nil, fn.Id(), nil)
	if typ.Function == nil || len(typ.Function.Parameters) != 5 {
		t.Fatalf("expected 5 parameters, got %+v", typ.Function)
	}

	params := typ.Function.Parameters
	wantOptional := []bool{false, false, false, true, true}
	wantNullable := []bool{true, false, true, true, false}
	wantKind := []PrimitiveKind{KindAny, KindNumber, KindFunction, KindAny, KindTable}
	for i, p := range params {
		if p.IsOptional != wantOptional[i] {
			t.Errorf("parameter %d (%s) IsOptional = %v, want %v", i, p.Name, p.IsOptional, wantOptional[i])
		}
		if p.Type.Nullable != wantNullable[i] {
			t.Errorf("parameter %d (%s) Nullable = %v, want %v", i, p.Name, p.Type.Nullable, wantNullable[i])
		}
		if p.Type.Kind != wantKind[i] {
			t.Errorf("parameter %d (%s) Kind = %v, want %v", i, p.Name, p.Type.Kind, wantKind[i])
		}
	}
}
