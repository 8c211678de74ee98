package inspect

import "github.com/pqls/pqcore/syntax"

// Inferrer computes typeOf for nodes in a single parse (spec section 4.7,
// "Type Inspection"). It owns the per-request cycle guard the teacher's
// library/foundations/cast.go documents for recursive type references:
// resolving an identifier that is already being resolved yields Unknown
// instead of recursing forever.
type Inferrer struct {
	idMap     *syntax.NodeIdMap
	resolver  ExternalTypeResolver
	token     syntax.CancellationToken
	resolving map[syntax.NodeId]bool
}

// NewInferrer builds an Inferrer over a finished (or partial) parse.
// resolver may be nil, in which case unresolved identifiers and
// invocations always type to Unknown. token may be nil, meaning
// inference never cancels.
func NewInferrer(idMap *syntax.NodeIdMap, resolver ExternalTypeResolver, token syntax.CancellationToken) *Inferrer {
	return &Inferrer{idMap: idMap, resolver: resolver, token: token, resolving: map[syntax.NodeId]bool{}}
}

// TypeOf resolves the type of id using a fresh Inferrer — the External
// Interface's `type` operation (spec section 6, interface 6).
func TypeOf(idMap *syntax.NodeIdMap, resolver ExternalTypeResolver, id syntax.NodeId, token syntax.CancellationToken) Type {
	return NewInferrer(idMap, resolver, token).TypeOf(id)
}

// TypeOf dispatches on id's node kind (spec section 4.7). Every visit
// consults the cancellation token first (spec section 5, "each node
// visit in type inspection"); a cancelled inference unwinds to Unknown
// at every enclosing level rather than raising, matching inspection's
// "never fails on malformed input" recovery policy (spec section 7).
func (inf *Inferrer) TypeOf(id syntax.NodeId) Type {
	if inf.token != nil && inf.token.IsCancelled() {
		return UnknownType
	}
	n, ok := inf.idMap.Get(id)
	if !ok {
		return UnknownType
	}
	switch n.Kind() {
	case syntax.LiteralExpression:
		return inf.literalType(n)
	case syntax.UnaryExpression:
		return inf.unaryType(n)
	case syntax.BinOpExpression:
		return inf.binOpType(n)
	case syntax.NullCoalescingExpression:
		return inf.nullCoalesceType(n)
	case syntax.AsExpression:
		return inf.asExpressionType(n)
	case syntax.IsExpression:
		return LogicalType
	case syntax.MetadataExpression:
		return inf.metadataType(n)
	case syntax.IfExpression:
		return inf.ifType(n)
	case syntax.RecordExpression, syntax.RecordLiteral:
		return inf.recordExpressionType(n)
	case syntax.ListExpression:
		return inf.listType(n)
	case syntax.FunctionExpression:
		return inf.functionType(n)
	case syntax.InvokeExpression:
		return inf.invokeType(n)
	case syntax.ItemAccessExpression:
		return inf.itemAccessType(n)
	case syntax.FieldSelector:
		return inf.fieldSelectorType(n)
	case syntax.FieldProjection:
		return inf.fieldProjectionType(n)
	case syntax.IdentifierExpression:
		return inf.identifierType(n)
	case syntax.ParenthesizedExpression:
		children := n.Children()
		if len(children) < 2 {
			return UnknownType
		}
		return inf.TypeOf(children[1])
	case syntax.ErrorHandlingExpression:
		return inf.errorHandlingType(n)
	case syntax.ErrorRaisingExpression:
		// `error E` never produces a value on the success path.
		return NoneType
	case syntax.NotImplementedExpression:
		return UnknownType
	case syntax.TypePrimaryType:
		// `type T` used as a value: its own type is the meta-type Type,
		// not the type T denotes (T's denotation is only surfaced through
		// typeOfTypeNode, e.g. for `as`/declared-type slots).
		return Primitive(KindType)
	default:
		return UnknownType
	}
}

func (inf *Inferrer) literalType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	leaf, ok := inf.idMap.Get(children[0])
	if !ok {
		return UnknownType
	}
	ast, isAst := leaf.AsAst()
	if !isAst {
		return UnknownType
	}
	switch ast.Kind {
	case syntax.NumericLiteral, syntax.HexLiteral:
		return Refined(KindNumber, ast.Data)
	case syntax.TextLiteral:
		return Refined(KindText, ast.Data)
	case syntax.KeywordTrue, syntax.KeywordFalse:
		return Primitive(KindLogical)
	case syntax.KeywordNull:
		return NullType
	}
	return UnknownType
}

func (inf *Inferrer) unaryType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) < 2 {
		return UnknownType
	}
	opLeaf, ok := inf.idMap.Get(children[0])
	if !ok {
		return UnknownType
	}
	ast, isAst := opLeaf.AsAst()
	if !isAst {
		return UnknownType
	}
	operand := inf.TypeOf(children[1])
	switch ast.Kind {
	case syntax.KeywordNot:
		if operand.Kind == KindLogical {
			return operand
		}
		return NoneType
	case syntax.Plus, syntax.Minus:
		if operand.Kind == KindNumber {
			return operand
		}
		return NoneType
	}
	return UnknownType
}

func (inf *Inferrer) binOpType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) < 3 {
		return UnknownType
	}
	left := inf.TypeOf(children[0])
	opLeaf, ok := inf.idMap.Get(children[1])
	if !ok {
		return UnknownType
	}
	ast, isAst := opLeaf.AsAst()
	if !isAst {
		return UnknownType
	}
	right := inf.TypeOf(children[2])
	switch ast.Kind {
	case syntax.Plus, syntax.Minus, syntax.Star, syntax.Slash:
		return arithmeticType(ast.Kind, left, right)
	case syntax.Ampersand:
		return concatType(left, right)
	case syntax.KeywordAnd, syntax.KeywordOr:
		if left.Kind == KindLogical && right.Kind == KindLogical {
			return LogicalType
		}
		return NoneType
	case syntax.Less, syntax.LessEqual, syntax.Greater, syntax.GreaterEqual, syntax.Equal, syntax.NotEqual:
		if comparable(left, right) {
			return LogicalType
		}
		return NoneType
	}
	return UnknownType
}

func isDateTimeKind(k PrimitiveKind) bool {
	switch k {
	case KindDate, KindDateTime, KindDateTimeZone, KindTime:
		return true
	}
	return false
}

func arithmeticType(op syntax.Kind, left, right Type) Type {
	if left.Kind == KindNumber && right.Kind == KindNumber {
		return NumberType
	}
	if op == syntax.Plus && isDateTimeKind(left.Kind) && right.Kind == KindDuration {
		return Primitive(left.Kind)
	}
	if op == syntax.Plus && left.Kind == KindDuration && isDateTimeKind(right.Kind) {
		return Primitive(right.Kind)
	}
	if op == syntax.Minus && isDateTimeKind(left.Kind) && right.Kind == KindDuration {
		return Primitive(left.Kind)
	}
	if op == syntax.Minus && isDateTimeKind(left.Kind) && isDateTimeKind(right.Kind) {
		return Primitive(KindDuration)
	}
	return NoneType
}

func concatType(left, right Type) Type {
	if left.Kind != right.Kind {
		return NoneType
	}
	switch left.Kind {
	case KindText:
		return TextType
	case KindList:
		var elems []Type
		if left.List != nil {
			elems = append(elems, left.List.ElementTypes...)
		}
		if right.List != nil {
			elems = append(elems, right.List.ElementTypes...)
		}
		return list(elems)
	case KindRecord:
		if left.Record == nil || right.Record == nil {
			return Type{Kind: KindRecord}
		}
		return mergeRecords(left.Record, right.Record)
	}
	return NoneType
}

func comparable(left, right Type) bool {
	if left.Kind == KindAny || right.Kind == KindAny {
		return true
	}
	if left.Kind == KindUnknown || right.Kind == KindUnknown {
		return true
	}
	return left.Kind == right.Kind
}

func (inf *Inferrer) nullCoalesceType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) < 3 {
		return UnknownType
	}
	left := inf.TypeOf(children[0])
	left.Nullable = false
	right := inf.TypeOf(children[2])
	return Union(left, right)
}

func (inf *Inferrer) asExpressionType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) < 3 {
		return UnknownType
	}
	return inf.typeOfTypeNodeById(children[2])
}

func (inf *Inferrer) metadataType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	return inf.TypeOf(children[0])
}

func (inf *Inferrer) ifType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) < 6 {
		return UnknownType
	}
	cond := inf.TypeOf(children[1])
	if cond.Kind != KindLogical {
		return NoneType
	}
	thenType := inf.TypeOf(children[3])
	elseType := inf.TypeOf(children[5])
	return Union(thenType, elseType)
}

func (inf *Inferrer) recordExpressionType(n syntax.XorNode) Type {
	fields := map[string]Type{}
	var order []string
	for _, csv := range childrenOfKind(inf.idMap, n, syntax.Csv) {
		for _, kv := range childrenOfKind(inf.idMap, csv, syntax.KeyValuePair) {
			name, nameID := bindingName(inf.idMap, kv)
			if name == "" {
				continue
			}
			valueID := bindingValue(inf.idMap, kv, nameID)
			t := UnknownType
			if valueID != syntax.NoNode {
				t = inf.TypeOf(valueID)
			}
			if _, exists := fields[name]; !exists {
				order = append(order, name)
			}
			fields[name] = t
		}
	}
	return record(fields, order, false)
}

func (inf *Inferrer) listType(n syntax.XorNode) Type {
	var elems []Type
	for _, csv := range childrenOfKind(inf.idMap, n, syntax.Csv) {
		for _, id := range csv.Children() {
			c, ok := inf.idMap.Get(id)
			if !ok || c.Kind().IsToken() {
				continue
			}
			elems = append(elems, inf.TypeOf(id))
		}
	}
	return list(elems)
}

func (inf *Inferrer) functionType(n syntax.XorNode) Type {
	children := n.Children()
	var params []FunctionSignature
	fatArrowIdx := -1
	for i, id := range children {
		c, ok := inf.idMap.Get(id)
		if !ok {
			continue
		}
		switch c.Kind() {
		case syntax.ParameterList:
			params = inf.parameterSignatures(c)
		case syntax.FatArrow:
			fatArrowIdx = i
		}
	}
	ret := UnknownType
	if fatArrowIdx >= 0 && fatArrowIdx+1 < len(children) {
		ret = inf.TypeOf(children[fatArrowIdx+1])
	}
	return function(params, ret)
}

func (inf *Inferrer) parameterSignatures(paramList syntax.XorNode) []FunctionSignature {
	var sigs []FunctionSignature
	for _, param := range childrenOfKind(inf.idMap, paramList, syntax.Parameter) {
		name, _ := bindingName(inf.idMap, param)
		sigs = append(sigs, FunctionSignature{
			Name:       name,
			Type:       inf.parameterDeclaredType(param.Id()),
			IsOptional: hasChildOfKind(inf.idMap, param, syntax.KeywordOptional),
		})
	}
	return sigs
}

// parameterDeclaredType implements the Open Question decision recorded in
// DESIGN.md: an unannotated parameter is nullable Any.
func (inf *Inferrer) parameterDeclaredType(paramID syntax.NodeId) Type {
	n, ok := inf.idMap.Get(paramID)
	if !ok {
		return NullablePrimitive(KindAny)
	}
	typeID := childFollowing(inf.idMap, n, syntax.KeywordAs)
	if typeID == syntax.NoNode {
		return NullablePrimitive(KindAny)
	}
	return inf.typeOfTypeNodeById(typeID)
}

func (inf *Inferrer) invokeType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	callee := inf.TypeOf(children[0])
	var args []Type
	for _, csv := range childrenOfKind(inf.idMap, n, syntax.Csv) {
		for _, argID := range csv.Children() {
			c, ok := inf.idMap.Get(argID)
			if !ok || c.Kind().IsToken() {
				continue
			}
			args = append(args, inf.TypeOf(argID))
		}
	}
	switch callee.Kind {
	case KindFunction:
		if callee.Function != nil {
			return callee.Function.Return
		}
		return AnyType
	case KindAny:
		return AnyType
	}
	if name, ok := identifierExpressionName(inf.idMap, children[0]); ok {
		if inf.resolver != nil {
			if t, ok := inf.resolver.ResolveInvocation(name, args); ok {
				return t
			}
		}
		if callee.Kind == KindUnknown {
			return UnknownType
		}
	}
	return NoneType
}

func (inf *Inferrer) itemAccessType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	target := inf.TypeOf(children[0])
	switch target.Kind {
	case KindList:
		if target.List == nil || len(target.List.ElementTypes) == 0 {
			return AnyType
		}
		if len(target.List.ElementTypes) == 1 {
			return target.List.ElementTypes[0]
		}
		return Union(target.List.ElementTypes...)
	case KindAny:
		return AnyType
	}
	return NoneType
}

func (inf *Inferrer) fieldSelectorType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	target := inf.TypeOf(children[0])
	name, hasName := fieldSelectorName(inf.idMap, n)
	optional := hasChildOfKind(inf.idMap, n, syntax.Question)

	switch target.Kind {
	case KindAny:
		return AnyType
	case KindRecord:
		if target.Record == nil {
			return AnyType
		}
		if hasName {
			if t, found := target.Record.fieldType(name); found {
				return t
			}
			if target.Record.IsOpen {
				return AnyType
			}
		}
	case KindTable:
		if target.Table == nil {
			return AnyType
		}
		if hasName {
			if t, found := target.Table.fieldType(name); found {
				return t
			}
			if target.Table.IsOpen {
				return AnyType
			}
		}
	default:
		return NoneType
	}
	if optional {
		return NullType
	}
	return NoneType
}

func (inf *Inferrer) fieldProjectionType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	target := inf.TypeOf(children[0])
	names := projectionNames(inf.idMap, n)
	src := recordLikeFields(target)
	fields := map[string]Type{}
	var order []string
	for _, name := range names {
		t := AnyType
		if src != nil {
			if ft, found := src.fieldType(name); found {
				t = ft
			}
		}
		fields[name] = t
		order = append(order, name)
	}
	if target.Kind == KindTable {
		return table(fields, order, false)
	}
	return record(fields, order, false)
}

func (inf *Inferrer) identifierType(n syntax.XorNode) Type {
	name, ok := identifierExpressionName(inf.idMap, n.Id())
	if !ok {
		return UnknownType
	}
	scope := ComputeScopeForNode(inf.idMap, n.Id(), inf.token)
	item, found := scope.Get(name)
	if !found {
		if inf.resolver != nil {
			if t, ok := inf.resolver.ResolveValue(name); ok {
				return t
			}
		}
		return UnknownType
	}
	switch item.Kind {
	case ScopeItemParameter:
		return inf.parameterDeclaredType(item.DefiningId)
	case ScopeItemEachImplicit:
		// The implicit `_` input is supplied by the caller at invocation
		// time and isn't derivable from source alone.
		return AnyType
	default:
		if item.ValueId == syntax.NoNode {
			return UnknownType
		}
		if inf.resolving[item.ValueId] {
			return UnknownType
		}
		inf.resolving[item.ValueId] = true
		t := inf.TypeOf(item.ValueId)
		delete(inf.resolving, item.ValueId)
		return t
	}
}

func (inf *Inferrer) errorHandlingType(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) < 2 {
		return UnknownType
	}
	protected := inf.TypeOf(children[1])
	for _, id := range children {
		c, ok := inf.idMap.Get(id)
		if !ok || c.Kind() != syntax.OtherwiseExpression {
			continue
		}
		otherChildren := c.Children()
		if len(otherChildren) >= 2 {
			return Union(protected, inf.TypeOf(otherChildren[1]))
		}
	}
	return protected
}

// --- type sub-language dispatch ---

func (inf *Inferrer) typeOfTypeNodeById(id syntax.NodeId) Type {
	n, ok := inf.idMap.Get(id)
	if !ok {
		return UnknownType
	}
	return inf.typeOfTypeNode(n)
}

func (inf *Inferrer) typeOfTypeNode(n syntax.XorNode) Type {
	switch n.Kind() {
	case syntax.NullableType:
		children := n.Children()
		if len(children) < 2 {
			return UnknownType
		}
		inner := inf.typeOfTypeNodeById(children[1])
		inner.Nullable = true
		return inner
	case syntax.ListType:
		children := n.Children()
		if len(children) < 2 {
			return Type{Kind: KindList}
		}
		return list([]Type{inf.typeOfTypeNodeById(children[1])})
	case syntax.RecordType:
		return inf.recordTypeFromTypeNode(n)
	case syntax.TableType:
		return inf.tableTypeFromTypeNode(n)
	case syntax.FunctionType:
		return inf.functionTypeFromTypeNode(n)
	case syntax.PrimitiveType:
		return inf.primitiveTypeFromTypeNode(n)
	default:
		return UnknownType
	}
}

func (inf *Inferrer) recordTypeFromTypeNode(n syntax.XorNode) Type {
	fields := map[string]Type{}
	var order []string
	isOpen := false
	for _, id := range n.Children() {
		c, ok := inf.idMap.Get(id)
		if !ok {
			continue
		}
		switch c.Kind() {
		case syntax.KeyValuePair:
			name, _ := bindingName(inf.idMap, c)
			if name == "" {
				continue
			}
			typeID := childFollowing(inf.idMap, c, syntax.Equal)
			t := UnknownType
			if typeID != syntax.NoNode {
				t = inf.typeOfTypeNodeById(typeID)
			}
			if _, exists := fields[name]; !exists {
				order = append(order, name)
			}
			fields[name] = t
		case syntax.Ellipsis:
			isOpen = true
		}
	}
	return record(fields, order, isOpen)
}

func (inf *Inferrer) tableTypeFromTypeNode(n syntax.XorNode) Type {
	for _, id := range n.Children() {
		c, ok := inf.idMap.Get(id)
		if ok && c.Kind() == syntax.RecordType {
			rt := inf.recordTypeFromTypeNode(c)
			return table(rt.Record.Fields, rt.Record.FieldOrder, rt.Record.IsOpen)
		}
	}
	return Type{Kind: KindTable}
}

func (inf *Inferrer) functionTypeFromTypeNode(n syntax.XorNode) Type {
	children := n.Children()
	var params []FunctionSignature
	retID := syntax.NoNode
	for i, id := range children {
		c, ok := inf.idMap.Get(id)
		if !ok {
			continue
		}
		if c.Kind() == syntax.ParameterList {
			params = inf.parameterSignatures(c)
		}
		if c.Kind() == syntax.KeywordAs && i+1 < len(children) {
			retID = children[i+1]
		}
	}
	ret := UnknownType
	if retID != syntax.NoNode {
		ret = inf.typeOfTypeNodeById(retID)
	}
	return function(params, ret)
}

var primitiveKeywordKinds = map[syntax.Kind]PrimitiveKind{
	syntax.KeywordAny:          KindAny,
	syntax.KeywordAnyNonNull:   KindAnyNonNull,
	syntax.KeywordNone:         KindNone,
	syntax.KeywordLogical:      KindLogical,
	syntax.KeywordNumber:       KindNumber,
	syntax.KeywordText:         KindText,
	syntax.KeywordDate:         KindDate,
	syntax.KeywordDateTime:     KindDateTime,
	syntax.KeywordDateTimeZone: KindDateTimeZone,
	syntax.KeywordDuration:     KindDuration,
	syntax.KeywordTime:         KindTime,
	syntax.KeywordBinary:       KindBinary,
	syntax.KeywordList:         KindList,
	syntax.KeywordRecord:       KindRecord,
	syntax.KeywordTable:        KindTable,
	syntax.KeywordFunction:     KindFunction,
	syntax.KeywordAction:       KindAction,
	syntax.KeywordNull:         KindNull,
	syntax.KeywordType:         KindType,
}

func (inf *Inferrer) primitiveTypeFromTypeNode(n syntax.XorNode) Type {
	children := n.Children()
	if len(children) == 0 {
		return UnknownType
	}
	c, ok := inf.idMap.Get(children[0])
	if !ok {
		return UnknownType
	}
	if ast, isAst := c.AsAst(); isAst {
		if k, found := primitiveKeywordKinds[ast.Kind]; found {
			return Primitive(k)
		}
	}
	if c.Kind() == syntax.IdentifierExpression {
		return inf.identifierType(c)
	}
	return UnknownType
}

// --- shared node-shape helpers ---

func recordLikeFields(t Type) *DefinedRecord {
	switch t.Kind {
	case KindRecord:
		return t.Record
	case KindTable:
		return t.Table
	}
	return nil
}

func identifierExpressionName(idMap *syntax.NodeIdMap, id syntax.NodeId) (string, bool) {
	n, ok := idMap.Get(id)
	if !ok || n.Kind() != syntax.IdentifierExpression {
		return "", false
	}
	for _, cid := range n.Children() {
		c, ok := idMap.Get(cid)
		if ok && c.Kind() == syntax.GeneralizedIdentifier {
			return generalizedIdentifierText(idMap, c), true
		}
	}
	return "", false
}

func fieldSelectorName(idMap *syntax.NodeIdMap, n syntax.XorNode) (string, bool) {
	for _, id := range n.Children() {
		c, ok := idMap.Get(id)
		if ok && c.Kind() == syntax.GeneralizedIdentifier {
			return generalizedIdentifierText(idMap, c), true
		}
	}
	return "", false
}

func projectionNames(idMap *syntax.NodeIdMap, n syntax.XorNode) []string {
	var names []string
	for _, csv := range childrenOfKind(idMap, n, syntax.Csv) {
		for _, id := range csv.Children() {
			c, ok := idMap.Get(id)
			if !ok || c.Kind() != syntax.GeneralizedIdentifier {
				continue
			}
			names = append(names, generalizedIdentifierText(idMap, c))
		}
	}
	return names
}

func hasChildOfKind(idMap *syntax.NodeIdMap, n syntax.XorNode, kind syntax.Kind) bool {
	for _, id := range n.Children() {
		c, ok := idMap.Get(id)
		if ok && c.Kind() == kind {
			return true
		}
	}
	return false
}

// childFollowing finds the first child of kind `marker` and returns the
// id of whatever child follows it — used both for `as Type` annotations
// and for `name = Type` record-type fields.
func childFollowing(idMap *syntax.NodeIdMap, n syntax.XorNode, marker syntax.Kind) syntax.NodeId {
	children := n.Children()
	for i, id := range children {
		c, ok := idMap.Get(id)
		if ok && c.Kind() == marker && i+1 < len(children) {
			return children[i+1]
		}
	}
	return syntax.NoNode
}
