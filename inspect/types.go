package inspect

import "sort"

// PrimitiveKind is the base Power Query type lattice (spec section 4.7,
// "Type Inspection"). Structural shapes (list/record/table/function) carry
// their detail in the Type struct's optional fields rather than as
// separate Go types, mirroring the teacher's single tagged-union Value
// representation (library/foundations/value.go) adapted to types instead
// of runtime values.
type PrimitiveKind uint8

const (
	KindUnknown PrimitiveKind = iota
	KindNone
	KindAny
	KindAnyNonNull
	KindNull
	KindLogical
	KindNumber
	KindText
	KindDate
	KindDateTime
	KindDateTimeZone
	KindDuration
	KindTime
	KindBinary
	KindList
	KindRecord
	KindTable
	KindFunction
	KindType
	KindAction
	KindAnyUnion
)

func (k PrimitiveKind) String() string {
	names := [...]string{
		"Unknown", "None", "Any", "AnyNonNull", "Null", "Logical", "Number",
		"Text", "Date", "DateTime", "DateTimeZone", "Duration", "Time",
		"Binary", "List", "Record", "Table", "Function", "Type", "Action", "AnyUnion",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// FunctionSignature describes one declared parameter for DefinedFunction
// and the Function type-expression form.
type FunctionSignature struct {
	Name       string
	Type       Type
	IsOptional bool
}

// Type is the tagged union typeOf returns for any node (spec section 4.7).
// At most one of the pointer fields is populated when Kind names a
// structural shape, and a nil one there means an abstract shape (e.g. a
// table with no known row schema); primitive Kinds leave all of them nil.
type Type struct {
	Kind     PrimitiveKind
	Nullable bool

	// Literal carries the source text of a literal-refined Number or Text
	// type (spec section 9, "Literal refinement" — this implementation
	// always refines number and text literals; Equal compares the
	// refinement text, and Union drops a refinement when an unrefined
	// member of the same kind is present).
	Literal string

	List       *DefinedList
	Record     *DefinedRecord
	Table      *DefinedRecord // a table's row schema; nil Table means an abstract table
	Function   *DefinedFunction
	UnionTypes []Type // populated only when Kind == KindAnyUnion
}

// DefinedList is `{T1, T2, ...}` with a known element-type sequence, or an
// unknown-shape list when ElementTypes is empty.
type DefinedList struct {
	ElementTypes []Type
}

// DefinedRecord backs both DefinedRecord and DefinedTable (a table's rows
// are a record schema). IsOpen marks "and possibly more fields", matching
// the record-type/table-type `...` marker and record-merge semantics.
type DefinedRecord struct {
	Fields     map[string]Type
	FieldOrder []string
	IsOpen     bool
}

func (r *DefinedRecord) fieldType(name string) (Type, bool) {
	if r == nil || r.Fields == nil {
		return Type{}, false
	}
	t, ok := r.Fields[name]
	return t, ok
}

// DefinedFunction is a function's parameter signature plus return type.
type DefinedFunction struct {
	Parameters []FunctionSignature
	Return     Type
}

// Primitive builds a non-nullable primitive type.
func Primitive(kind PrimitiveKind) Type { return Type{Kind: kind} }

// NullablePrimitive builds a nullable primitive type.
func NullablePrimitive(kind PrimitiveKind) Type { return Type{Kind: kind, Nullable: true} }

// Refined attaches literal-refinement text to a primitive type.
func Refined(kind PrimitiveKind, literal string) Type {
	return Type{Kind: kind, Literal: literal}
}

var (
	AnyType     = Primitive(KindAny)
	NoneType    = Primitive(KindNone)
	UnknownType = Primitive(KindUnknown)
	NullType    = Type{Kind: KindNull, Nullable: true}
	LogicalType = Primitive(KindLogical)
	NumberType  = Primitive(KindNumber)
	TextType    = Primitive(KindText)
)

func list(elems []Type) Type {
	return Type{Kind: KindList, List: &DefinedList{ElementTypes: elems}}
}

func record(fields map[string]Type, order []string, isOpen bool) Type {
	return Type{Kind: KindRecord, Record: &DefinedRecord{Fields: fields, FieldOrder: order, IsOpen: isOpen}}
}

func table(fields map[string]Type, order []string, isOpen bool) Type {
	if fields == nil {
		return Type{Kind: KindTable}
	}
	return Type{Kind: KindTable, Table: &DefinedRecord{Fields: fields, FieldOrder: order, IsOpen: isOpen}}
}

func function(params []FunctionSignature, ret Type) Type {
	return Type{Kind: KindFunction, Function: &DefinedFunction{Parameters: params, Return: ret}}
}

// Equal is structural equality, literal refinement included (spec section
// 9, "Literal refinement"; the rule is spelled out below).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind || a.Nullable != b.Nullable {
		return false
	}
	// Literal refinement (SUPPLEMENTED FEATURES #1): two refinements of the
	// same base kind are equal only if their literal text matches too; a
	// refinement is never equal to its unrefined base kind here — Union's
	// widening pass is what collapses a refinement into its base kind.
	if a.Literal != b.Literal {
		return false
	}
	switch a.Kind {
	case KindList:
		return equalLists(a.List, b.List)
	case KindRecord:
		return equalRecords(a.Record, b.Record)
	case KindTable:
		return equalRecords(a.Table, b.Table)
	case KindFunction:
		return equalFunctions(a.Function, b.Function)
	case KindAnyUnion:
		return equalUnionMembers(a.UnionTypes, b.UnionTypes)
	default:
		return true
	}
}

func equalLists(a, b *DefinedList) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.ElementTypes) != len(b.ElementTypes) {
		return false
	}
	for i := range a.ElementTypes {
		if !Equal(a.ElementTypes[i], b.ElementTypes[i]) {
			return false
		}
	}
	return true
}

func equalRecords(a, b *DefinedRecord) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsOpen != b.IsOpen || len(a.Fields) != len(b.Fields) {
		return false
	}
	for name, t := range a.Fields {
		ot, ok := b.Fields[name]
		if !ok || !Equal(t, ot) {
			return false
		}
	}
	return true
}

func equalFunctions(a, b *DefinedFunction) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Parameters) != len(b.Parameters) || !Equal(a.Return, b.Return) {
		return false
	}
	for i := range a.Parameters {
		if a.Parameters[i].IsOptional != b.Parameters[i].IsOptional ||
			!Equal(a.Parameters[i].Type, b.Parameters[i].Type) {
			return false
		}
	}
	return true
}

func equalUnionMembers(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ta := range a {
		found := false
		for i, tb := range b {
			if !used[i] && Equal(ta, tb) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Union folds a set of types per the any-union rule (spec section 4.7):
// structurally-equal duplicates collapse; an Any member absorbs everything;
// a single surviving member is returned bare; otherwise the result is a
// flattened AnyUnion (members of an AnyUnion operand are spliced in rather
// than nested, so Union is idempotent: union(union(A,B),B) == union(A,B)).
func Union(members ...Type) Type {
	var flat []Type
	for _, m := range members {
		if m.Kind == KindAnyUnion {
			flat = append(flat, m.UnionTypes...)
		} else {
			flat = append(flat, m)
		}
	}
	for _, m := range flat {
		if m.Kind == KindAny {
			return AnyType
		}
	}
	widenRefinements(flat)
	var deduped []Type
	for _, m := range flat {
		dup := false
		for _, d := range deduped {
			if Equal(d, m) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, m)
		}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	if len(deduped) == 0 {
		return NoneType
	}
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].Kind < deduped[j].Kind })
	return Type{Kind: KindAnyUnion, UnionTypes: deduped}
}

type baseKey struct {
	kind     PrimitiveKind
	nullable bool
}

// widenRefinements drops the literal off any refined member that shares a
// base kind with an unrefined member present in the same set — "a
// refinement unions with its own base primitive to just the base
// primitive" (SUPPLEMENTED FEATURES #1). Operates in place before dedup.
func widenRefinements(types []Type) {
	bare := map[baseKey]bool{}
	for _, t := range types {
		if t.Literal == "" {
			bare[baseKey{t.Kind, t.Nullable}] = true
		}
	}
	for i, t := range types {
		if t.Literal != "" && bare[baseKey{t.Kind, t.Nullable}] {
			types[i].Literal = ""
		}
	}
}

// mergeRecords implements `R1 & R2`: right wins on key collision, openness
// is the disjunction of the operands (spec section 4.7, "Record merge").
func mergeRecords(left, right *DefinedRecord) Type {
	fields := map[string]Type{}
	var order []string
	for _, name := range left.FieldOrder {
		fields[name] = left.Fields[name]
		order = append(order, name)
	}
	for _, name := range right.FieldOrder {
		if _, exists := fields[name]; !exists {
			order = append(order, name)
		}
		fields[name] = right.Fields[name]
	}
	return record(fields, order, left.IsOpen || right.IsOpen)
}
