package syntax

// CursorRelation describes where a cursor position sits relative to the
// leaf token ActiveNode resolved it against (spec section 4.4, "Active
// node").
type CursorRelation uint8

const (
	// RelationBefore means the cursor sits exactly at the leaf's start.
	RelationBefore CursorRelation = iota
	// RelationOn means the cursor sits on a zero-width leaf — its start
	// and end coincide, so "before" and "after" are the same position.
	RelationOn
	// RelationInside means the cursor sits strictly within a
	// multi-character leaf's span, on neither boundary.
	RelationInside
	// RelationAfter means the cursor sits exactly at the leaf's end.
	RelationAfter
)

// ActiveNode is the result of resolving a cursor position against a parse
// (spec section 4.4): the leaf the cursor relates to, its full ancestry up
// to the document root, and — when the cursor sits at a boundary — the
// adjacent leaf on the other side, since autocomplete and type inspection
// both care which token the cursor is "attached to" when it sits between
// two of them.
type ActiveNode struct {
	Leaf         NodeId
	Relation     CursorRelation
	Ancestry     []XorNode
	TrailingLeaf NodeId // NoNode if there is no leaf after Leaf
	HasTrailing  bool
}

// ComputeActiveNode finds the node addressed by a cursor position (spec
// section 4.4). It always succeeds as long as idMap has a root: even a
// parse that failed immediately still has at least the Document context
// node to land on.
func ComputeActiveNode(idMap *NodeIdMap, snap *Snapshot, pos Position) ActiveNode {
	codeUnit := snap.CodeUnitFor(pos)
	leaf, ok := idMap.LeafAt(codeUnit)
	if !ok {
		return ActiveNode{Leaf: idMap.Root(), Ancestry: idMap.Ancestry(idMap.Root()), TrailingLeaf: NoNode}
	}

	relation := RelationInside
	if rng, ok := idMap.Range(leaf); ok {
		switch {
		case rng.CodeUnitStart == rng.CodeUnitEnd:
			relation = RelationOn
		case codeUnit == rng.CodeUnitStart:
			relation = RelationBefore
		case codeUnit == rng.CodeUnitEnd:
			relation = RelationAfter
		}
	}

	an := ActiveNode{
		Leaf:         leaf,
		Relation:     relation,
		Ancestry:     idMap.Ancestry(leaf),
		TrailingLeaf: NoNode,
	}

	if trailing, ok := nextLeaf(idMap, leaf); ok {
		an.TrailingLeaf = trailing
		an.HasTrailing = true
	}
	return an
}

// nextLeaf walks up from id until it finds an ancestor with a following
// sibling, then descends into that sibling's leftmost leaf — the same
// "next leaf across sibling boundaries" walk as the teacher's
// LinkedNode.NextLeaf (node.go), adapted to the id-addressed graph.
func nextLeaf(idMap *NodeIdMap, id NodeId) (NodeId, bool) {
	cur := id
	for {
		parentID, ok := idMap.Parent(cur)
		if !ok {
			return NoNode, false
		}
		parent, _ := idMap.Get(parentID)
		siblings := parent.Children()
		idx := indexOf(siblings, cur)
		if idx >= 0 && idx+1 < len(siblings) {
			return leftmostLeaf(idMap, siblings[idx+1]), true
		}
		cur = parentID
	}
}

func leftmostLeaf(idMap *NodeIdMap, id NodeId) NodeId {
	n, ok := idMap.Get(id)
	if !ok || len(n.Children()) == 0 {
		return id
	}
	return leftmostLeaf(idMap, n.Children()[0])
}

func indexOf(ids []NodeId, target NodeId) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

// InnermostOfKind walks an ActiveNode's ancestry and returns the first
// (innermost) node matching any of the given kinds.
func (an ActiveNode) InnermostOfKind(kinds ...Kind) (XorNode, bool) {
	want := KindSetOf(kinds...)
	for _, n := range an.Ancestry {
		if want.Contains(n.Kind()) {
			return n, true
		}
	}
	return XorNode{}, false
}
