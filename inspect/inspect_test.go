package inspect

import (
	"testing"

	"github.com/pqls/pqcore/syntax"
)

// parseAt parses text and resolves the cursor at the single `|` marker
// removed from it, returning the node-id map and the resulting
// ActiveNode.
func parseAt(t *testing.T, marked string) (*syntax.NodeIdMap, syntax.ActiveNode) {
	t.Helper()
	cu := -1
	text := ""
	for _, r := range marked {
		if r == '|' {
			cu = len(text)
			continue
		}
		text += string(r)
	}
	if cu < 0 {
		t.Fatalf("no | cursor marker in %q", marked)
	}

	state := syntax.Lex(syntax.Settings{}, text)
	snap := syntax.TakeSnapshot(state)
	result := syntax.ParseDocument(syntax.Settings{}, snap)
	if result.IDMap == nil {
		t.Fatalf("parse of %q produced no node-id map (err: %v)", text, result.Err)
	}

	pos := snap.PositionFor(cu)
	active := syntax.ComputeActiveNode(result.IDMap, snap, pos)
	return result.IDMap, active
}
