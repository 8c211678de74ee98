// Package inspect implements the position-driven inspection engine: scope
// inspection, type inspection, and keyword autocomplete, all driven off an
// ActiveNode (or a target NodeId directly) computed by the syntax package.
// Grounded on the teacher's eval/scope.go Scope/Scopes stack (lexical
// nesting with shadowing) and eval/captures.go (the ancestry walk that
// decides what a closure can see), adapted from "walk an owned AST
// computing values" to "walk an id-addressed ancestry computing binding
// visibility without evaluating anything".
package inspect

import "github.com/pqls/pqcore/syntax"

// ScopeItemKind classifies how a name entered scope (spec section 4.6,
// "Scope inspection").
type ScopeItemKind uint8

const (
	ScopeItemLet ScopeItemKind = iota
	ScopeItemEachImplicit
	ScopeItemParameter
	ScopeItemRecordField
	ScopeItemSectionMember
)

func (k ScopeItemKind) String() string {
	switch k {
	case ScopeItemLet:
		return "let"
	case ScopeItemEachImplicit:
		return "each"
	case ScopeItemParameter:
		return "parameter"
	case ScopeItemRecordField:
		return "record field"
	case ScopeItemSectionMember:
		return "section member"
	}
	return "unknown"
}

// ScopeItem is one name visible at a position, together with the node
// that defines it so a caller can jump to the definition or feed it to
// type inspection.
type ScopeItem struct {
	Name        string
	Kind        ScopeItemKind
	DefiningId  syntax.NodeId // the KeyValuePair/Parameter/SectionMember node
	ValueId     syntax.NodeId // the bound expression, NoNode if there isn't one (each's implicit `_`, a parameter)
	IsRecursive bool          // true if this binding's own value may reference it
}

// Scope is the set of names visible at a position, nearest-binding first —
// a flattened view of the nested Scopes stack the teacher's eval package
// threads through evaluation, but computed once from ancestry instead of
// accumulated while walking down.
type Scope struct {
	items []ScopeItem
	seen  map[string]bool
}

func newScope() *Scope {
	return &Scope{seen: map[string]bool{}}
}

func (s *Scope) add(item ScopeItem) {
	if s.seen[item.Name] {
		return
	}
	s.seen[item.Name] = true
	s.items = append(s.items, item)
}

// Items returns every visible binding, nearest first.
func (s *Scope) Items() []ScopeItem { return s.items }

// Get looks up a name, respecting shadowing (the nearest binding wins,
// exactly like Scopes.Get walking top-to-bottom in eval/scope.go).
func (s *Scope) Get(name string) (ScopeItem, bool) {
	for _, item := range s.items {
		if item.Name == name {
			return item, true
		}
	}
	return ScopeItem{}, false
}

// ComputeScope walks an ActiveNode's ancestry, collecting every binding
// each enclosing construct introduces, visible from the cursor's leaf
// (spec section 6, external interface 5: "scope(..., targetNodeId)" with
// targetNodeId taken as the active leaf). token may be nil, meaning the
// walk never cancels.
func ComputeScope(idMap *syntax.NodeIdMap, active syntax.ActiveNode, token syntax.CancellationToken) *Scope {
	return ComputeScopeForNode(idMap, active.Leaf, token)
}

// ComputeScopeForNode computes the scope visible at an arbitrary node id,
// not just a cursor-resolved leaf — the External Interface's `scope`
// operation takes a targetNodeId directly (spec section 6). The
// ancestry walk checks token once per iteration (spec section 5,
// "suspension points"), unwinding to whatever scope was accumulated so
// far rather than raising, per inspection's never-fails recovery policy
// (spec section 7).
func ComputeScopeForNode(idMap *syntax.NodeIdMap, targetId syntax.NodeId, token syntax.CancellationToken) *Scope {
	ancestry := idMap.Ancestry(targetId)
	scope := newScope()
	for i, anc := range ancestry {
		if token != nil && token.IsCancelled() {
			break
		}
		var through syntax.NodeId = syntax.NoNode
		if i > 0 {
			through = ancestry[i-1].Id()
		}
		switch anc.Kind() {
		case syntax.LetExpression:
			addLetBindings(idMap, anc, through, targetId, scope)
		case syntax.EachExpression:
			scope.add(ScopeItem{Name: "_", Kind: ScopeItemEachImplicit, DefiningId: anc.Id(), ValueId: syntax.NoNode})
		case syntax.FunctionExpression:
			addParameters(idMap, anc, scope)
		case syntax.RecordLiteral, syntax.RecordExpression:
			addRecordFields(idMap, anc, through, targetId, scope)
		case syntax.Section:
			addSectionMembers(idMap, anc, through, targetId, scope)
		}
	}
	return scope
}

// childContaining returns the direct child of parentID that targetId is,
// or descends from, if any — used to find which Csv item a cursor sits
// inside regardless of how many levels deep the cursor's own leaf is.
func childContaining(idMap *syntax.NodeIdMap, parentID, targetId syntax.NodeId) (syntax.NodeId, bool) {
	cur := targetId
	for {
		parent, ok := idMap.Parent(cur)
		if !ok {
			return syntax.NoNode, false
		}
		if parent == parentID {
			return cur, true
		}
		cur = parent
	}
}

func childrenOfKind(idMap *syntax.NodeIdMap, parent syntax.XorNode, kind Kind) []syntax.XorNode {
	var out []syntax.XorNode
	for _, id := range parent.Children() {
		n, ok := idMap.Get(id)
		if ok && n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}

// Kind is a local alias so this file's helper signatures can name kinds
// concisely.
type Kind = syntax.Kind

// targetInValuePosition reports whether targetId lies after kv's `=`
// token — i.e. within the bound value rather than the name/type slot. A
// kv whose `=` hasn't been parsed yet (an in-progress key slot) is never
// a value position.
func targetInValuePosition(idMap *syntax.NodeIdMap, kv syntax.XorNode, targetId syntax.NodeId) bool {
	equalEnd := -1
	for _, id := range kv.Children() {
		n, ok := idMap.Get(id)
		if !ok || n.Kind() != syntax.Equal {
			continue
		}
		if ast, isAst := n.AsAst(); isAst {
			equalEnd = ast.CodeUnitEnd
		}
	}
	if equalEnd < 0 {
		return false
	}
	rng, ok := idMap.Range(targetId)
	if !ok {
		return true
	}
	return rng.CodeUnitStart >= equalEnd
}

// addLetBindings implements the LetExpression rule (spec section 4.6):
// every binding is visible from every other binding's value and from the
// body, except that a binding being typed in its own name/type slot only
// sees the bindings that precede it, and a binding is marked recursive
// only while the target sits inside that binding's own value. The
// variable list is itself a Csv of KeyValuePair (readLetExpression routes
// it through readCsv like every other comma-separated list), so the
// binding containing the target is found by walking up from targetId
// rather than assuming it is let's direct child.
func addLetBindings(idMap *syntax.NodeIdMap, let syntax.XorNode, through, targetId syntax.NodeId, scope *Scope) {
	csvs := childrenOfKind(idMap, let, syntax.Csv)
	if len(csvs) == 0 {
		return
	}
	kvs := childrenOfKind(idMap, csvs[0], syntax.KeyValuePair)
	containingIdx, inValuePosition := -1, false
	if containingKV, ok := childContaining(idMap, csvs[0].Id(), targetId); ok {
		for i, kv := range kvs {
			if kv.Id() == containingKV {
				containingIdx = i
				inValuePosition = targetInValuePosition(idMap, kv, targetId)
				break
			}
		}
	}
	for i, kv := range kvs {
		name, nameID := bindingName(idMap, kv)
		if name == "" {
			continue
		}
		recursive := false
		switch {
		case i == containingIdx:
			if !inValuePosition {
				continue // still typing this binding's own name/type: not yet visible to itself
			}
			recursive = true
		case containingIdx != -1 && !inValuePosition && i > containingIdx:
			continue // variable-list position: only preceding siblings are visible
		}
		scope.add(ScopeItem{
			Name: name, Kind: ScopeItemLet, DefiningId: kv.Id(),
			ValueId: bindingValue(idMap, kv, nameID), IsRecursive: recursive,
		})
	}
}

func addParameters(idMap *syntax.NodeIdMap, fn syntax.XorNode, scope *Scope) {
	paramLists := childrenOfKind(idMap, fn, syntax.ParameterList)
	if len(paramLists) == 0 {
		return
	}
	for _, param := range childrenOfKind(idMap, paramLists[0], syntax.Parameter) {
		name, _ := bindingName(idMap, param)
		if name == "" {
			continue
		}
		scope.add(ScopeItem{Name: name, Kind: ScopeItemParameter, DefiningId: param.Id(), ValueId: syntax.NoNode})
	}
}

// addRecordFields implements the RecordExpression/RecordLiteral rule
// (spec section 4.6): every other field is visible non-recursively; the
// field whose value contains the target is recursive; a field currently
// being typed in its own name slot is excluded (but doesn't hide its
// siblings, unlike let's variable-list rule).
func addRecordFields(idMap *syntax.NodeIdMap, rec syntax.XorNode, through, targetId syntax.NodeId, scope *Scope) {
	for _, csv := range childrenOfKind(idMap, rec, syntax.Csv) {
		kvs := childrenOfKind(idMap, csv, syntax.KeyValuePair)
		containingKV := syntax.NoNode
		inValuePosition := false
		if child, ok := childContaining(idMap, csv.Id(), targetId); ok {
			for _, kv := range kvs {
				if kv.Id() == child {
					containingKV = kv.Id()
					inValuePosition = targetInValuePosition(idMap, kv, targetId)
					break
				}
			}
		}
		for _, kv := range kvs {
			name, nameID := bindingName(idMap, kv)
			if name == "" {
				continue
			}
			recursive := false
			if kv.Id() == containingKV {
				if !inValuePosition {
					continue
				}
				recursive = true
			}
			scope.add(ScopeItem{
				Name: name, Kind: ScopeItemRecordField, DefiningId: kv.Id(),
				ValueId: bindingValue(idMap, kv, nameID), IsRecursive: recursive,
			})
		}
	}
}

// addSectionMembers implements the Section rule (spec section 4.6): every
// member is visible to every member's value, including its own, with
// isRecursive set only for the member whose value contains the target.
func addSectionMembers(idMap *syntax.NodeIdMap, sec syntax.XorNode, through, targetId syntax.NodeId, scope *Scope) {
	for _, mem := range childrenOfKind(idMap, sec, syntax.SectionMember) {
		name, nameID := bindingName(idMap, mem)
		if name == "" {
			continue
		}
		recursive := mem.Id() == through && targetInValuePosition(idMap, mem, targetId)
		scope.add(ScopeItem{
			Name: name, Kind: ScopeItemSectionMember, DefiningId: mem.Id(),
			ValueId: bindingValue(idMap, mem, nameID), IsRecursive: recursive,
		})
	}
}

// bindingName finds the GeneralizedIdentifier child of a binding-shaped
// node (KeyValuePair, Parameter, SectionMember) and renders its text.
func bindingName(idMap *syntax.NodeIdMap, node syntax.XorNode) (string, syntax.NodeId) {
	for _, id := range node.Children() {
		n, ok := idMap.Get(id)
		if ok && n.Kind() == syntax.GeneralizedIdentifier {
			return generalizedIdentifierText(idMap, n), id
		}
	}
	return "", syntax.NoNode
}

// bindingValue returns the node id of whatever follows the `=` after a
// binding's name — the value of a let/record-field/section-member
// binding. Returns NoNode for parameters, which have no bound expression.
func bindingValue(idMap *syntax.NodeIdMap, node syntax.XorNode, nameID syntax.NodeId) syntax.NodeId {
	children := node.Children()
	sawName, sawEquals := false, false
	for _, id := range children {
		if id == nameID {
			sawName = true
			continue
		}
		if !sawName {
			continue
		}
		n, ok := idMap.Get(id)
		if !ok {
			continue
		}
		if !sawEquals {
			if n.Kind() == syntax.Equal {
				sawEquals = true
			}
			continue
		}
		return id
	}
	return syntax.NoNode
}

func generalizedIdentifierText(idMap *syntax.NodeIdMap, node syntax.XorNode) string {
	leaves := idMap.Leaves(node.Id())
	text := ""
	for _, leaf := range leaves {
		n, ok := idMap.Get(leaf)
		if !ok {
			continue
		}
		if ast, isAst := n.AsAst(); isAst {
			if text != "" {
				text += " "
			}
			text += ast.Data
		}
	}
	return text
}
