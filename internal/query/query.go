// Package query implements the query surface (spec.md §4.L): a flat
// façade over the interner exposing classification-only predicates so
// callers can classify a type without matching on a raw
// interner.TypeKey themselves. Every ClassifyFor* function mirrors one call site's worth of
// decisions from original_source's type_computation_complex.rs, which
// consumed an equivalent (non-surviving) type_queries module the same
// way: a Kind enum plus the handful of fields that call site actually
// needs, nothing more.
package query

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
	"github.com/gotsc/gotsc/internal/visitor"
)

// IsGenericType reports whether id contains a TypeParameter or Infer
// occurrence, the same question
// get_construct_type_from_type's recursion guard and the inference
// engine's "does this still have open variables" checks both need. It
// walks arrays, tuples, unions, intersections, readonly, conditional,
// index-access, keyof and application forms, object property read types
// and index signatures, and signature parameters and return types; it
// does not look inside mapped types, template literal types, string
// intrinsics, enum members, signature this types, type-parameter
// constraints, property write types or a callable's index signatures.
func IsGenericType(b *types.Builder, id types.TypeId) bool {
	v := &genericVisitor{b: b, seen: make(map[types.TypeId]bool)}
	v.walk(id)
	return v.found
}

type genericVisitor struct {
	visitor.Base
	b     *types.Builder
	seen  map[types.TypeId]bool
	found bool
}

func (v *genericVisitor) walk(id types.TypeId) {
	if v.found || v.seen[id] {
		return
	}
	v.seen[id] = true
	visitor.Dispatch(v.b, v, id)
}

func (v *genericVisitor) VisitTypeParameter(interner.TypeParamInfo) { v.found = true }
func (v *genericVisitor) VisitInfer(interner.TypeParamInfo)         { v.found = true }

func (v *genericVisitor) VisitArray(elem types.TypeId) { v.walk(elem) }
func (v *genericVisitor) VisitTuple(elems []interner.TupleElement) {
	for _, el := range elems {
		v.walk(el.Type)
	}
}
func (v *genericVisitor) VisitObject(shape interner.ObjectShape) {
	for _, p := range shape.Properties {
		v.walk(p.ReadType)
	}
	if shape.StringIndex != nil {
		v.walk(shape.StringIndex.ValueType)
	}
	if shape.NumberIndex != nil {
		v.walk(shape.NumberIndex.ValueType)
	}
}
func (v *genericVisitor) visitCallableShape(shape interner.CallableShape) {
	for _, sig := range append(append([]interner.CallSignature{}, shape.CallSignatures...), shape.ConstructSignatures...) {
		for _, p := range sig.Params {
			v.walk(p.Type)
		}
		v.walk(sig.ReturnType)
	}
	for _, p := range shape.Properties {
		v.walk(p.ReadType)
	}
}
func (v *genericVisitor) VisitCallable(shape interner.CallableShape) { v.visitCallableShape(shape) }
func (v *genericVisitor) VisitFunction(shape interner.CallableShape) { v.visitCallableShape(shape) }
func (v *genericVisitor) VisitUnion(members []types.TypeId) {
	for _, m := range members {
		v.walk(m)
	}
}
func (v *genericVisitor) VisitIntersection(members []types.TypeId) {
	for _, m := range members {
		v.walk(m)
	}
}
func (v *genericVisitor) VisitReadonlyType(inner types.TypeId) { v.walk(inner) }
func (v *genericVisitor) VisitConditional(check, extends, trueBranch, falseBranch types.TypeId, _ bool) {
	v.walk(check)
	v.walk(extends)
	v.walk(trueBranch)
	v.walk(falseBranch)
}
func (v *genericVisitor) VisitIndexAccess(object, key types.TypeId) {
	v.walk(object)
	v.walk(key)
}
func (v *genericVisitor) VisitKeyOf(operand types.TypeId) { v.walk(operand) }
func (v *genericVisitor) VisitApplication(base types.TypeId, args []types.TypeId) {
	v.walk(base)
	for _, a := range args {
		v.walk(a)
	}
}

// ApplicationInfo is the Base/Args pair backing an Application(base,
// args) type, the generic-instantiation-site shape callers need without
// matching on interner.ApplicationKey directly.
type ApplicationInfo struct {
	Base types.TypeId
	Args []types.TypeId
}

// GetApplicationInfo returns id's Application base/args, if id is one.
func GetApplicationInfo(b *types.Builder, id types.TypeId) (ApplicationInfo, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return ApplicationInfo{}, false
	}
	a, ok := key.(interner.ApplicationKey)
	if !ok {
		return ApplicationInfo{}, false
	}
	return ApplicationInfo{Base: a.Base, Args: b.In.TypeList(a.Args)}, true
}

// GetSymbolRef returns the symbol id behind a Ref or TypeQuery
// indirection, if id is one of those forms.
func GetSymbolRef(b *types.Builder, id types.TypeId) (uint32, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return 0, false
	}
	switch k := key.(type) {
	case interner.RefKey:
		return k.Symbol, true
	case interner.TypeQueryKey:
		return k.Symbol, true
	default:
		return 0, false
	}
}

// ConstructabilityKind discriminates ClassifyForConstructability's result.
type ConstructabilityKind int

const (
	NotConstructable ConstructabilityKind = iota
	CallableWithConstruct
	CallableMaybePrototype
	FunctionConstructable
	ConstructableSymbolRef
	ConstructableTypeQueryRef
	ConstructableTypeParamWithConstraint
	ConstructableTypeParamNoConstraint
	ConstructableIntersection
)

// ConstructabilityResult is the classification new_expr.rs's
// get_construct_type_from_type switches on, grounded on
// classify_for_constructability's call site in
// original_source/src/checker/type_computation_complex.rs.
type ConstructabilityResult struct {
	Kind ConstructabilityKind

	Shape      interner.CallableShapeId // CallableWithConstruct, CallableMaybePrototype
	Symbol     uint32                   // ConstructableSymbolRef, ConstructableTypeQueryRef
	Constraint types.TypeId             // ConstructableTypeParamWithConstraint
	Members    []types.TypeId           // ConstructableIntersection
}

func ClassifyForConstructability(b *types.Builder, id types.TypeId) ConstructabilityResult {
	key, ok := b.Lookup(id)
	if !ok {
		return ConstructabilityResult{Kind: NotConstructable}
	}
	switch k := key.(type) {
	case interner.CallableKey:
		shape := b.In.CallableShape(k.Shape)
		if len(shape.ConstructSignatures) > 0 {
			return ConstructabilityResult{Kind: CallableWithConstruct, Shape: k.Shape}
		}
		return ConstructabilityResult{Kind: CallableMaybePrototype, Shape: k.Shape}
	case interner.FunctionKey:
		return ConstructabilityResult{Kind: FunctionConstructable}
	case interner.RefKey:
		return ConstructabilityResult{Kind: ConstructableSymbolRef, Symbol: k.Symbol}
	case interner.TypeQueryKey:
		return ConstructabilityResult{Kind: ConstructableTypeQueryRef, Symbol: k.Symbol}
	case interner.TypeParameterKey:
		if k.Info.Constraint == interner.NoType {
			return ConstructabilityResult{Kind: ConstructableTypeParamNoConstraint}
		}
		return ConstructabilityResult{Kind: ConstructableTypeParamWithConstraint, Constraint: k.Info.Constraint}
	case interner.IntersectionKey:
		return ConstructabilityResult{Kind: ConstructableIntersection, Members: b.In.TypeList(k.Members)}
	default:
		return ConstructabilityResult{Kind: NotConstructable}
	}
}

// NewExpressionKind discriminates ClassifyForNewExpression's result.
type NewExpressionKind int

const (
	NotConstructableNew NewExpressionKind = iota
	NewCallable
	NewFunction
	NewTypeQuery
)

// NewExpressionResult is the classification a `new Expr(...)` site
// switches on to decide the constructed callable shape, grounded on
// classify_for_new_expression's call site: Ref and TypeQuery both
// collapse into the same "resolve the symbol" branch there, since both
// need the same treatment before a construct signature can be found.
type NewExpressionResult struct {
	Kind NewExpressionKind

	Shape  interner.CallableShapeId // NewCallable
	Symbol uint32                   // NewTypeQuery
}

func ClassifyForNewExpression(b *types.Builder, id types.TypeId) NewExpressionResult {
	key, ok := b.Lookup(id)
	if !ok {
		return NewExpressionResult{Kind: NotConstructableNew}
	}
	switch k := key.(type) {
	case interner.CallableKey:
		return NewExpressionResult{Kind: NewCallable, Shape: k.Shape}
	case interner.FunctionKey:
		return NewExpressionResult{Kind: NewFunction}
	case interner.RefKey:
		return NewExpressionResult{Kind: NewTypeQuery, Symbol: k.Symbol}
	case interner.TypeQueryKey:
		return NewExpressionResult{Kind: NewTypeQuery, Symbol: k.Symbol}
	default:
		return NewExpressionResult{Kind: NotConstructableNew}
	}
}

// CallSignaturesKind discriminates ClassifyForCallSignatures's result.
type CallSignaturesKind int

const (
	NoSignatures CallSignaturesKind = iota
	HasCallSignatures
)

// CallSignaturesResult surfaces a callable or function's call
// signatures for overload resolution without exposing the raw shape
// key; Callable and Function are treated alike here, the same way
// internal/subtype's CallableShapeOf already unifies them.
type CallSignaturesResult struct {
	Kind  CallSignaturesKind
	Shape interner.CallableShapeId
}

func ClassifyForCallSignatures(b *types.Builder, id types.TypeId) CallSignaturesResult {
	key, ok := b.Lookup(id)
	if !ok {
		return CallSignaturesResult{Kind: NoSignatures}
	}
	switch k := key.(type) {
	case interner.CallableKey:
		return CallSignaturesResult{Kind: HasCallSignatures, Shape: k.Shape}
	case interner.FunctionKey:
		return CallSignaturesResult{Kind: HasCallSignatures, Shape: k.Shape}
	default:
		return CallSignaturesResult{Kind: NoSignatures}
	}
}

// AbstractClassCheckKind discriminates ClassifyForAbstractCheck's result.
type AbstractClassCheckKind int

const (
	NotAbstract AbstractClassCheckKind = iota
	AbstractTypeQuery
	AbstractUnion
	AbstractIntersection
)

// AbstractClassCheckResult is the classification
// type_contains_abstract_class recurses over: a `typeof ClassName`
// reference carries the symbol the checker must test for the abstract
// flag, while union/intersection recurse member-wise.
type AbstractClassCheckResult struct {
	Kind    AbstractClassCheckKind
	Symbol  uint32         // AbstractTypeQuery
	Members []types.TypeId // AbstractUnion, AbstractIntersection
}

func ClassifyForAbstractCheck(b *types.Builder, id types.TypeId) AbstractClassCheckResult {
	key, ok := b.Lookup(id)
	if !ok {
		return AbstractClassCheckResult{Kind: NotAbstract}
	}
	switch k := key.(type) {
	case interner.TypeQueryKey:
		return AbstractClassCheckResult{Kind: AbstractTypeQuery, Symbol: k.Symbol}
	case interner.UnionKey:
		return AbstractClassCheckResult{Kind: AbstractUnion, Members: b.In.TypeList(k.Members)}
	case interner.IntersectionKey:
		return AbstractClassCheckResult{Kind: AbstractIntersection, Members: b.In.TypeList(k.Members)}
	default:
		return AbstractClassCheckResult{Kind: NotAbstract}
	}
}

// ClassDeclKind discriminates ClassifyForClassDecl's result.
type ClassDeclKind int

const (
	NotClassDecl ClassDeclKind = iota
	ClassDeclObject
)

// ClassDeclResult surfaces an instance type's object shape so the
// checker can scan its properties for the private-brand markers that
// identify which class declaration produced it.
type ClassDeclResult struct {
	Kind  ClassDeclKind
	Shape interner.ObjectShapeId
}

func ClassifyForClassDecl(b *types.Builder, id types.TypeId) ClassDeclResult {
	key, ok := b.Lookup(id)
	if !ok {
		return ClassDeclResult{Kind: NotClassDecl}
	}
	o, ok := key.(interner.ObjectKey)
	if !ok {
		return ClassDeclResult{Kind: NotClassDecl}
	}
	return ClassDeclResult{Kind: ClassDeclObject, Shape: o.Shape}
}

// KeyOfKind discriminates ClassifyForKeyof's result.
type KeyOfKind int

const (
	NoKeys KeyOfKind = iota
	HasObjectKeys
)

// KeyOfResult surfaces an object's property names for `keyof T`; any
// non-object operand has no keys at this level (spec.md §4.L leaves
// array/tuple well-known keys to the caller, same as the original).
type KeyOfResult struct {
	Kind  KeyOfKind
	Shape interner.ObjectShapeId
}

func ClassifyForKeyof(b *types.Builder, id types.TypeId) KeyOfResult {
	key, ok := b.Lookup(id)
	if !ok {
		return KeyOfResult{Kind: NoKeys}
	}
	o, ok := key.(interner.ObjectKey)
	if !ok {
		return KeyOfResult{Kind: NoKeys}
	}
	return KeyOfResult{Kind: HasObjectKeys, Shape: o.Shape}
}

// ConstructSignatureKind discriminates ClassifyForConstructSignature's result.
type ConstructSignatureKind int

const (
	NoConstructSignature ConstructSignatureKind = iota
	ConstructSigCallable
	ConstructSigLazy
)

// ConstructSignatureResult surfaces the construct signature(s) behind a
// construct type, or the Lazy definition id to resolve first when the
// constructor hasn't been forced yet.
type ConstructSignatureResult struct {
	Kind  ConstructSignatureKind
	Shape interner.CallableShapeId // ConstructSigCallable
	Def   uint32                   // ConstructSigLazy
}

func ClassifyForConstructSignature(b *types.Builder, id types.TypeId) ConstructSignatureResult {
	key, ok := b.Lookup(id)
	if !ok {
		return ConstructSignatureResult{Kind: NoConstructSignature}
	}
	switch k := key.(type) {
	case interner.CallableKey:
		return ConstructSignatureResult{Kind: ConstructSigCallable, Shape: k.Shape}
	case interner.LazyKey:
		return ConstructSignatureResult{Kind: ConstructSigLazy, Def: k.Def}
	default:
		return ConstructSignatureResult{Kind: NoConstructSignature}
	}
}

// LazyResolutionKind discriminates ClassifyForLazyResolution's result.
type LazyResolutionKind int

const (
	NotLazy LazyResolutionKind = iota
	IsLazy
)

// LazyResolutionResult is resolve_ref_type's classification: only the
// preferred Lazy(defId) form needs resolving here, matching key.go's
// comment that every consumer treats Ref and Lazy equivalently except
// where one has already been normalized away from the other.
type LazyResolutionResult struct {
	Kind LazyResolutionKind
	Def  uint32
}

func ClassifyForLazyResolution(b *types.Builder, id types.TypeId) LazyResolutionResult {
	key, ok := b.Lookup(id)
	if !ok {
		return LazyResolutionResult{Kind: NotLazy}
	}
	l, ok := key.(interner.LazyKey)
	if !ok {
		return LazyResolutionResult{Kind: NotLazy}
	}
	return LazyResolutionResult{Kind: IsLazy, Def: l.Def}
}

// StringLiteralKeyKind discriminates ClassifyForStringLiteralKeys's result.
type StringLiteralKeyKind int

const (
	NotStringLiteral StringLiteralKeyKind = iota
	SingleString
	UnionStrings
)

// StringLiteralKeyResult is extract_string_literal_keys's classification:
// a bare string-literal type, a union of them, or anything else.
type StringLiteralKeyResult struct {
	Kind    StringLiteralKeyKind
	Value   interner.Atom  // SingleString
	Members []types.TypeId // UnionStrings, each still needing GetStringLiteralValue
}

func ClassifyForStringLiteralKeys(b *types.Builder, id types.TypeId) StringLiteralKeyResult {
	key, ok := b.Lookup(id)
	if !ok {
		return StringLiteralKeyResult{Kind: NotStringLiteral}
	}
	switch k := key.(type) {
	case interner.LiteralStringKey:
		return StringLiteralKeyResult{Kind: SingleString, Value: k.Value}
	case interner.UnionKey:
		return StringLiteralKeyResult{Kind: UnionStrings, Members: b.In.TypeList(k.Members)}
	default:
		return StringLiteralKeyResult{Kind: NotStringLiteral}
	}
}

// GetStringLiteralValue returns id's backing atom if id is a string
// literal, for use against each member ClassifyForStringLiteralKeys's
// UnionStrings case returns.
func GetStringLiteralValue(b *types.Builder, id types.TypeId) (interner.Atom, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return 0, false
	}
	s, ok := key.(interner.LiteralStringKey)
	if !ok {
		return 0, false
	}
	return s.Value, true
}
