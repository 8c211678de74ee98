package syntax

// NodeIdMap is the parser's output: every node ever opened, addressed by
// NodeId, whether it closed into an AstNode or was abandoned as an open
// ContextNode (spec section 2, "the node graph"). It is read-only once
// parsing finishes; ParseContext is the mutable builder that fills it in.
type NodeIdMap struct {
	asts     map[NodeId]*AstNode
	contexts map[NodeId]*ContextNode
	root     NodeId
}

func newNodeIdMap() *NodeIdMap {
	return &NodeIdMap{
		asts:     make(map[NodeId]*AstNode),
		contexts: make(map[NodeId]*ContextNode),
		root:     NoNode,
	}
}

// Root returns the id of the document's top-level node.
func (m *NodeIdMap) Root() NodeId { return m.root }

// Get looks up a node by id.
func (m *NodeIdMap) Get(id NodeId) (XorNode, bool) {
	if n, ok := m.asts[id]; ok {
		return astXor(n), true
	}
	if n, ok := m.contexts[id]; ok {
		return contextXor(n), true
	}
	return XorNode{}, false
}

// Parent returns the id's parent, or (NoNode, false) at the root.
func (m *NodeIdMap) Parent(id NodeId) (NodeId, bool) {
	n, ok := m.Get(id)
	if !ok || n.Parent() == NoNode {
		return NoNode, false
	}
	return n.Parent(), true
}

// Ancestry walks from id up to (and including) the root, id first (spec
// section 2, "ancestry walk"; grounded on the teacher's LinkedNode.Parent
// chain-walking pattern in node.go).
func (m *NodeIdMap) Ancestry(id NodeId) []XorNode {
	var chain []XorNode
	cur := id
	for {
		n, ok := m.Get(cur)
		if !ok {
			break
		}
		chain = append(chain, n)
		if n.Parent() == NoNode {
			break
		}
		cur = n.Parent()
	}
	return chain
}

// ChildAt returns the nth child of id, or (NoNode, false) out of range.
func (m *NodeIdMap) ChildAt(id NodeId, index int) (NodeId, bool) {
	n, ok := m.Get(id)
	if !ok || index < 0 || index >= len(n.Children()) {
		return NoNode, false
	}
	return n.Children()[index], true
}

// Leaves returns the token-leaf descendants of id in source order (empty
// Children slice marks a leaf, mirroring the teacher's IsLeaf check).
func (m *NodeIdMap) Leaves(id NodeId) []NodeId {
	n, ok := m.Get(id)
	if !ok {
		return nil
	}
	if len(n.Children()) == 0 {
		return []NodeId{id}
	}
	var out []NodeId
	for _, c := range n.Children() {
		out = append(out, m.Leaves(c)...)
	}
	return out
}

// LeafAt finds the deepest leaf whose TokenRange contains codeUnit,
// preferring the AstNode still carrying a known range. Context nodes are
// walked the same way using whatever range their attached children cover.
// When codeUnit falls in a gap that no child's range covers (whitespace
// between tokens), the innermost node spanning the gap is returned rather
// than a leaf; no neighbouring leaf is chosen.
// Grounded on the teacher's LinkedNode.LeafAt/leafBefore/leafAfter walk
// (node.go), adapted to work over both node flavors.
func (m *NodeIdMap) LeafAt(codeUnit int) (NodeId, bool) {
	if m.root == NoNode {
		return NoNode, false
	}
	return m.leafAt(m.root, codeUnit)
}

func (m *NodeIdMap) leafAt(id NodeId, codeUnit int) (NodeId, bool) {
	n, ok := m.Get(id)
	if !ok {
		return NoNode, false
	}
	children := n.Children()
	if len(children) == 0 {
		return id, true
	}
	for _, c := range children {
		rng, ok := m.Range(c)
		if !ok {
			continue
		}
		if codeUnit >= rng.CodeUnitStart && codeUnit <= rng.CodeUnitEnd {
			return m.leafAt(c, codeUnit)
		}
	}
	return id, true
}

// snapshotRange is the absolute code-unit span of a node, used only for
// LeafAt's containment test.
type snapshotRange struct {
	CodeUnitStart int
	CodeUnitEnd   int
}

// Range returns the absolute code-unit span of id: an AstNode's own range,
// or for a ContextNode the union of whatever it has attached so far.
func (m *NodeIdMap) Range(id NodeId) (snapshotRange, bool) {
	n, ok := m.Get(id)
	if !ok {
		return snapshotRange{}, false
	}
	if ast, isAst := n.AsAst(); isAst {
		return snapshotRange{CodeUnitStart: ast.CodeUnitStart, CodeUnitEnd: ast.CodeUnitEnd}, true
	}
	var rng snapshotRange
	found := false
	for _, c := range n.Children() {
		r, ok := m.Range(c)
		if !ok {
			continue
		}
		if !found {
			rng.CodeUnitStart = r.CodeUnitStart
			found = true
		}
		rng.CodeUnitEnd = r.CodeUnitEnd
	}
	return rng, found
}
