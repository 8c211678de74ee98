package syntax

// ParseContext is the mutable graph builder the parser drives while it
// works: OpenContext pushes a new ContextNode, AttachLeaf appends a
// finished token leaf, CloseContext converts the open node in place into an AstNode
// (same NodeId — anything already holding that id keeps pointing at valid
// data), and Abandon leaves a context node open forever, which is exactly
// the state a partial parse wants to preserve (spec section 2, "partial
// context retention"). Grounded on the incremental rebuild loop in the
// teacher's reparser.go, generalized from "replace a subtree" to "grow a
// subtree one token at a time and allow it to stay unfinished".
type ParseContext struct {
	idMap  *NodeIdMap
	nextID NodeId
	stack  []NodeId
}

func newParseContext() *ParseContext {
	return &ParseContext{idMap: newNodeIdMap(), nextID: 0}
}

func (pc *ParseContext) allocID() NodeId {
	id := pc.nextID
	pc.nextID++
	return id
}

// OpenContext starts a new open node of the given kind as a child of the
// current top-of-stack context (or as the root, if the stack is empty).
func (pc *ParseContext) OpenContext(kind Kind, start Position) NodeId {
	id := pc.allocID()
	parent := NoNode
	if len(pc.stack) > 0 {
		parent = pc.stack[len(pc.stack)-1]
	} else {
		pc.idMap.root = id
	}
	node := &ContextNode{Id: id, Kind: kind, Parent: parent, Start: start, Attributes: map[string]int{}}
	pc.idMap.contexts[id] = node
	if parent != NoNode {
		pc.attachChild(parent, id)
	}
	pc.stack = append(pc.stack, id)
	return id
}

func (pc *ParseContext) attachChild(parentID, childID NodeId) {
	if parent, ok := pc.idMap.contexts[parentID]; ok {
		parent.Children = append(parent.Children, childID)
		return
	}
	// Parents are only ever context nodes while the stack holds them; a
	// closed AstNode parent would mean the stack discipline broke.
}

// AttachLeaf appends a finished token leaf as a child of the current
// open context and returns its id.
func (pc *ParseContext) AttachLeaf(tok SnapshotToken) NodeId {
	id := pc.allocID()
	parent := NoNode
	if len(pc.stack) > 0 {
		parent = pc.stack[len(pc.stack)-1]
	}
	leaf := &AstNode{
		Id: id, Kind: tok.Kind, Parent: parent,
		PositionStart: tok.PositionStart, PositionEnd: tok.PositionEnd,
		CodeUnitStart: tok.CodeUnitStart, CodeUnitEnd: tok.CodeUnitEnd,
		Data: tok.Data,
	}
	pc.idMap.asts[id] = leaf
	if parent != NoNode {
		pc.attachChild(parent, id)
	} else if pc.idMap.root == NoNode {
		pc.idMap.root = id
	}
	return id
}

// Promote wraps an already-closed node in a brand new open context of the
// given kind, splicing the wrapper into child's old parent in child's
// place and reparenting child underneath it. This is how the binary
// operator precedence cascade turns "some expression already fully
// parsed" into "the left operand of a BinOpExpression we're still
// reading the right side of" without having predicted the operator before
// parsing the left operand (spec section 4.3, the precedence cascade).
func (pc *ParseContext) Promote(kind Kind, child NodeId) NodeId {
	childNode := pc.idMap.asts[child]
	oldParent := childNode.Parent

	id := pc.allocID()
	wrapper := &ContextNode{Id: id, Kind: kind, Parent: oldParent, Children: []NodeId{child}, Attributes: map[string]int{}}
	pc.idMap.contexts[id] = wrapper
	childNode.Parent = id

	if oldParent == NoNode {
		pc.idMap.root = id
	} else if parentCtx, ok := pc.idMap.contexts[oldParent]; ok {
		for i, c := range parentCtx.Children {
			if c == child {
				parentCtx.Children[i] = id
				break
			}
		}
	}

	pc.stack = append(pc.stack, id)
	return id
}

// Attribute increments a named counter on the current open context, used
// for bookkeeping like "how many Csv items has this list read so far".
func (pc *ParseContext) Attribute(name string, delta int) {
	if len(pc.stack) == 0 {
		return
	}
	top := pc.idMap.contexts[pc.stack[len(pc.stack)-1]]
	top.Attributes[name] += delta
}

// CloseContext finishes the current open context, converting it in place
// into an AstNode with the given absolute range, and pops the stack.
func (pc *ParseContext) CloseContext(posStart, posEnd Position, cuStart, cuEnd int) NodeId {
	id := pc.stack[len(pc.stack)-1]
	pc.stack = pc.stack[:len(pc.stack)-1]
	ctx := pc.idMap.contexts[id]
	delete(pc.idMap.contexts, id)
	pc.idMap.asts[id] = &AstNode{
		Id: id, Kind: ctx.Kind, Parent: ctx.Parent, Children: ctx.Children,
		PositionStart: posStart, PositionEnd: posEnd,
		CodeUnitStart: cuStart, CodeUnitEnd: cuEnd,
	}
	return id
}

// Abandon pops the current open context without closing it, leaving it as
// a permanently-open ContextNode reachable from the map. Used when a
// parse branch fails partway and the parser backs out to try something
// else, or gives up entirely (spec section 2, "partial context
// retention").
func (pc *ParseContext) Abandon() NodeId {
	id := pc.stack[len(pc.stack)-1]
	pc.stack = pc.stack[:len(pc.stack)-1]
	return id
}

// Top returns the id of the currently-open innermost context, or
// (NoNode, false) if the stack is empty.
func (pc *ParseContext) Top() (NodeId, bool) {
	if len(pc.stack) == 0 {
		return NoNode, false
	}
	return pc.stack[len(pc.stack)-1], true
}

// IDMap returns the backing NodeIdMap. Valid to call at any point, even
// mid-parse: open contexts are already visible through it.
func (pc *ParseContext) IDMap() *NodeIdMap { return pc.idMap }
