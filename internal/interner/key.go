package interner

// Kind discriminates the concrete shape of a TypeKey, mirroring spec.md
// §3.3's sum of type forms. Every non-reserved TypeId is the hash-cons of
// exactly one TypeKey value.
type Kind uint8

const (
	KindLiteralString Kind = iota
	KindLiteralNumber
	KindLiteralBigInt
	KindLiteralBoolean
	KindTemplateLiteral
	KindArray
	KindTuple
	KindObject
	KindCallable
	KindFunction
	KindUnion
	KindIntersection
	KindReadonly
	KindTypeParameter
	KindInfer
	KindConditional
	KindMapped
	KindIndexAccess
	KindKeyOf
	KindApplication
	KindRef
	KindLazy
	KindTypeQuery
	KindEnum
	KindStringIntrinsic
	KindModuleNamespace
	KindRecursive
	KindBoundParameter
)

// TypeKey is implemented by every interned type form. Concrete variants are
// comparable structs (only TypeId/Atom/scalar fields, never raw slices —
// variable-length content lives in the list/shape tables keyed by id), so
// TypeKey values can be used directly as Go map keys for hash-consing.
type TypeKey interface {
	Kind() Kind
}

type LiteralStringKey struct{ Value Atom }

func (LiteralStringKey) Kind() Kind { return KindLiteralString }

type LiteralNumberKey struct{ Value float64 }

func (LiteralNumberKey) Kind() Kind { return KindLiteralNumber }

// LiteralBigIntKey stores the canonical decimal text of the literal as an
// atom; bigint literal values are arbitrary precision and have no float64
// representation.
type LiteralBigIntKey struct{ Value Atom }

func (LiteralBigIntKey) Kind() Kind { return KindLiteralBigInt }

type LiteralBooleanKey struct{ Value bool }

func (LiteralBooleanKey) Kind() Kind { return KindLiteralBoolean }

type TemplateLiteralKey struct{ Spans TemplateListId }

func (TemplateLiteralKey) Kind() Kind { return KindTemplateLiteral }

type ArrayKey struct{ Elem TypeId }

func (ArrayKey) Kind() Kind { return KindArray }

type TupleKey struct{ Elems TupleListId }

func (TupleKey) Kind() Kind { return KindTuple }

type ObjectKey struct{ Shape ObjectShapeId }

func (ObjectKey) Kind() Kind { return KindObject }

type CallableKey struct{ Shape CallableShapeId }

func (CallableKey) Kind() Kind { return KindCallable }

// FunctionKey is the single-call-signature convenience form; it shares the
// CallableShapeId backing store with CallableKey but interns to a distinct
// TypeId so the checker can preserve the surface distinction the original
// TypeScript checker draws for emission (see DESIGN.md Open Question #1),
// while the subtype checker treats the two forms interchangeably.
type FunctionKey struct{ Shape CallableShapeId }

func (FunctionKey) Kind() Kind { return KindFunction }

type UnionKey struct{ Members TypeListId }

func (UnionKey) Kind() Kind { return KindUnion }

type IntersectionKey struct{ Members TypeListId }

func (IntersectionKey) Kind() Kind { return KindIntersection }

type ReadonlyKey struct{ Inner TypeId }

func (ReadonlyKey) Kind() Kind { return KindReadonly }

type TypeParameterKey struct{ Info TypeParamInfo }

func (TypeParameterKey) Kind() Kind { return KindTypeParameter }

type InferKey struct{ Info TypeParamInfo }

func (InferKey) Kind() Kind { return KindInfer }

type ConditionalKey struct {
	Check        TypeId
	Extends      TypeId
	TrueBranch   TypeId
	FalseBranch  TypeId
	Distributive bool
}

func (ConditionalKey) Kind() Kind { return KindConditional }

// MappedMod is a `+`/`-`/absent modifier on a mapped type's readonly or
// optional markers.
type MappedMod uint8

const (
	ModNone MappedMod = iota
	ModAdd
	ModRemove
)

type MappedKey struct {
	IVar        Atom
	Constraint  TypeId
	NameType    TypeId // NoType if absent
	Template    TypeId
	ReadonlyMod MappedMod
	OptionalMod MappedMod
}

func (MappedKey) Kind() Kind { return KindMapped }

type IndexAccessKey struct {
	Object TypeId
	Key    TypeId
}

func (IndexAccessKey) Kind() Kind { return KindIndexAccess }

type KeyOfKey struct{ Operand TypeId }

func (KeyOfKey) Kind() Kind { return KindKeyOf }

type ApplicationKey struct {
	Base TypeId
	Args TypeListId
}

func (ApplicationKey) Kind() Kind { return KindApplication }

// RefKey is the legacy symbol-reference form. DESIGN.md records the
// decision to keep it distinct from LazyKey in storage while every
// consumer (visitor, variance, subtype, application) treats them
// equivalently per spec.md §3.3.
type RefKey struct{ Symbol uint32 }

func (RefKey) Kind() Kind { return KindRef }

type LazyKey struct{ Def uint32 }

func (LazyKey) Kind() Kind { return KindLazy }

type TypeQueryKey struct{ Symbol uint32 }

func (TypeQueryKey) Kind() Kind { return KindTypeQuery }

type EnumKey struct {
	Def    uint32
	Member TypeId
}

func (EnumKey) Kind() Kind { return KindEnum }

// StringIntrinsicKind enumerates the uppercase/lowercase/capitalize/
// uncapitalize string transform type operators.
type StringIntrinsicKind uint8

const (
	Uppercase StringIntrinsicKind = iota
	Lowercase
	Capitalize
	Uncapitalize
)

type StringIntrinsicKey struct {
	Op  StringIntrinsicKind
	Arg TypeId
}

func (StringIntrinsicKey) Kind() Kind { return KindStringIntrinsic }

type ModuleNamespaceKey struct{ Symbol uint32 }

func (ModuleNamespaceKey) Kind() Kind { return KindModuleNamespace }

// RecursiveKey and BoundParameterKey are De Bruijn-indexed closure forms
// for representing a binder's body without fresh TypeParameter atoms at
// every recursion. Only types.Builder's Recursive/BoundParameter
// constructors build them; package subst treats them as opaque.
type RecursiveKey struct{ Index uint32 }

func (RecursiveKey) Kind() Kind { return KindRecursive }

type BoundParameterKey struct{ Index uint32 }

func (BoundParameterKey) Kind() Kind { return KindBoundParameter }
