package syntax

import "testing"

// TestComputeActiveNodeAncestryReachesRoot verifies that for any position
// in a successfully-parsed text, the active-node ancestry ends at the
// document root and every consecutive pair is a parent-child edge (spec
// section 8, invariants).
func TestComputeActiveNodeAncestryReachesRoot(t *testing.T) {
	text := "let a = 1 in a + 2"
	state := Lex(Settings{}, text)
	snap := TakeSnapshot(state)
	result := ParseDocument(Settings{}, snap)
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}

	for cu := 0; cu <= len(text); cu++ {
		pos := snap.PositionFor(cu)
		active := ComputeActiveNode(result.IDMap, snap, pos)
		if len(active.Ancestry) == 0 {
			t.Fatalf("position %d: empty ancestry", cu)
		}
		last := active.Ancestry[len(active.Ancestry)-1]
		if last.Id() != result.Root {
			t.Errorf("position %d: ancestry ends at %v, want root %v", cu, last.Id(), result.Root)
		}
		for i := 1; i < len(active.Ancestry); i++ {
			parentID, ok := result.IDMap.Parent(active.Ancestry[i-1].Id())
			if !ok || parentID != active.Ancestry[i].Id() {
				t.Errorf("position %d: ancestry[%d] is not the parent of ancestry[%d]", cu, i, i-1)
			}
		}
	}
}

// TestComputeActiveNodeRelationAtBoundaries verifies a cursor exactly at
// a token's start or end is reported as Before/After, and strictly inside
// a multi-character token as Inside rather than collapsed into either.
func TestComputeActiveNodeRelationAtBoundaries(t *testing.T) {
	text := "abc"
	state := Lex(Settings{}, text)
	snap := TakeSnapshot(state)
	result := ParseDocument(Settings{}, snap)
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}

	before := ComputeActiveNode(result.IDMap, snap, snap.PositionFor(0))
	if before.Relation != RelationBefore {
		t.Errorf("relation at start = %v, want RelationBefore", before.Relation)
	}

	after := ComputeActiveNode(result.IDMap, snap, snap.PositionFor(len(text)))
	if after.Relation != RelationAfter {
		t.Errorf("relation at end = %v, want RelationAfter", after.Relation)
	}

	inside := ComputeActiveNode(result.IDMap, snap, snap.PositionFor(1))
	if inside.Relation != RelationInside {
		t.Errorf("relation in the middle = %v, want RelationInside", inside.Relation)
	}
}

// TestInnermostOfKind verifies the ancestry search returns the nearest
// matching ancestor, not the outermost one.
func TestInnermostOfKind(t *testing.T) {
	text := "let a = each _ in a"
	state := Lex(Settings{}, text)
	snap := TakeSnapshot(state)
	result := ParseDocument(Settings{}, snap)
	if result.Err != nil {
		t.Fatalf("unexpected parse error: %v", result.Err)
	}

	cu := len("let a = each ")
	active := ComputeActiveNode(result.IDMap, snap, snap.PositionFor(cu))
	inner, ok := active.InnermostOfKind(EachExpression, LetExpression)
	if !ok {
		t.Fatal("expected to find an enclosing EachExpression or LetExpression")
	}
	if inner.Kind() != EachExpression {
		t.Errorf("innermost match = %v, want EachExpression", inner.Kind())
	}
}
