// Package visitor implements a shared dispatch point for structural
// traversals over TypeIds: variance analysis, query.IsGenericType and the
// inference occurs check drive a Visitor, while substitution, subtype
// checking and generic-application evaluation switch over
// interner.TypeKey themselves.
package visitor

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// Visitor receives one callback per type-form variant. Implementations
// that don't care about a form leave its method a no-op.
type Visitor interface {
	VisitIntrinsic(id types.TypeId)
	VisitLiteralString(value interner.Atom)
	VisitLiteralNumber(value float64)
	VisitLiteralBigInt(value interner.Atom)
	VisitLiteralBoolean(value bool)
	VisitTemplateLiteral(spans []interner.TemplateSpan)
	VisitArray(elem types.TypeId)
	VisitTuple(elems []interner.TupleElement)
	VisitObject(shape interner.ObjectShape)
	VisitCallable(shape interner.CallableShape)
	VisitFunction(shape interner.CallableShape)
	VisitUnion(members []types.TypeId)
	VisitIntersection(members []types.TypeId)
	VisitReadonlyType(inner types.TypeId)
	VisitTypeParameter(info interner.TypeParamInfo)
	VisitInfer(info interner.TypeParamInfo)
	VisitConditional(check, extends, trueBranch, falseBranch types.TypeId, distributive bool)
	VisitMapped(ivar interner.Atom, constraint, nameType, template types.TypeId, readonlyMod, optionalMod interner.MappedMod)
	VisitIndexAccess(object, key types.TypeId)
	VisitKeyOf(operand types.TypeId)
	VisitApplication(base types.TypeId, args []types.TypeId)
	VisitRef(symbol uint32)
	VisitLazy(defID uint32)
	VisitTypeQuery(symbol uint32)
	VisitEnum(defID uint32, member types.TypeId)
	VisitStringIntrinsic(op interner.StringIntrinsicKind, arg types.TypeId)
	VisitModuleNamespace(symbol uint32)
	VisitRecursive(index uint32)
	VisitBoundParameter(index uint32)
}

// Dispatch resolves id's form and invokes the matching Visitor method.
// Reserved ids (Any, Never, the primitives, ...) and any id with no
// interned key are treated as intrinsics.
func Dispatch(b *types.Builder, v Visitor, id types.TypeId) {
	key, ok := b.Lookup(id)
	if !ok {
		v.VisitIntrinsic(id)
		return
	}

	switch k := key.(type) {
	case interner.LiteralStringKey:
		v.VisitLiteralString(k.Value)
	case interner.LiteralNumberKey:
		v.VisitLiteralNumber(k.Value)
	case interner.LiteralBigIntKey:
		v.VisitLiteralBigInt(k.Value)
	case interner.LiteralBooleanKey:
		v.VisitLiteralBoolean(k.Value)
	case interner.TemplateLiteralKey:
		v.VisitTemplateLiteral(b.In.TemplateList(k.Spans))
	case interner.ArrayKey:
		v.VisitArray(k.Elem)
	case interner.TupleKey:
		v.VisitTuple(b.In.TupleList(k.Elems))
	case interner.ObjectKey:
		v.VisitObject(b.In.ObjectShape(k.Shape))
	case interner.CallableKey:
		v.VisitCallable(b.In.CallableShape(k.Shape))
	case interner.FunctionKey:
		v.VisitFunction(b.In.CallableShape(k.Shape))
	case interner.UnionKey:
		v.VisitUnion(b.In.TypeList(k.Members))
	case interner.IntersectionKey:
		v.VisitIntersection(b.In.TypeList(k.Members))
	case interner.ReadonlyKey:
		v.VisitReadonlyType(k.Inner)
	case interner.TypeParameterKey:
		v.VisitTypeParameter(k.Info)
	case interner.InferKey:
		v.VisitInfer(k.Info)
	case interner.ConditionalKey:
		v.VisitConditional(k.Check, k.Extends, k.TrueBranch, k.FalseBranch, k.Distributive)
	case interner.MappedKey:
		v.VisitMapped(k.IVar, k.Constraint, k.NameType, k.Template, k.ReadonlyMod, k.OptionalMod)
	case interner.IndexAccessKey:
		v.VisitIndexAccess(k.Object, k.Key)
	case interner.KeyOfKey:
		v.VisitKeyOf(k.Operand)
	case interner.ApplicationKey:
		v.VisitApplication(k.Base, b.In.TypeList(k.Args))
	case interner.RefKey:
		v.VisitRef(k.Symbol)
	case interner.LazyKey:
		v.VisitLazy(k.Def)
	case interner.TypeQueryKey:
		v.VisitTypeQuery(k.Symbol)
	case interner.EnumKey:
		v.VisitEnum(k.Def, k.Member)
	case interner.StringIntrinsicKey:
		v.VisitStringIntrinsic(k.Op, k.Arg)
	case interner.ModuleNamespaceKey:
		v.VisitModuleNamespace(k.Symbol)
	case interner.RecursiveKey:
		v.VisitRecursive(k.Index)
	case interner.BoundParameterKey:
		v.VisitBoundParameter(k.Index)
	default:
		v.VisitIntrinsic(id)
	}
}

// Base is an embeddable no-op implementation of Visitor; concrete
// visitors embed it and override only the methods they need, the same
// pattern CWBudde-go-dws's ast visitors use for optional callbacks.
type Base struct{}

func (Base) VisitIntrinsic(types.TypeId)                       {}
func (Base) VisitLiteralString(interner.Atom)                  {}
func (Base) VisitLiteralNumber(float64)                        {}
func (Base) VisitLiteralBigInt(interner.Atom)                  {}
func (Base) VisitLiteralBoolean(bool)                          {}
func (Base) VisitTemplateLiteral([]interner.TemplateSpan)      {}
func (Base) VisitArray(types.TypeId)                           {}
func (Base) VisitTuple([]interner.TupleElement)                {}
func (Base) VisitObject(interner.ObjectShape)                  {}
func (Base) VisitCallable(interner.CallableShape)               {}
func (Base) VisitFunction(interner.CallableShape)                {}
func (Base) VisitUnion([]types.TypeId)                         {}
func (Base) VisitIntersection([]types.TypeId)                  {}
func (Base) VisitReadonlyType(types.TypeId)                     {}
func (Base) VisitTypeParameter(interner.TypeParamInfo)          {}
func (Base) VisitInfer(interner.TypeParamInfo)                  {}
func (Base) VisitConditional(check, extends, trueBranch, falseBranch types.TypeId, distributive bool) {
}
func (Base) VisitMapped(ivar interner.Atom, constraint, nameType, template types.TypeId, readonlyMod, optionalMod interner.MappedMod) {
}
func (Base) VisitIndexAccess(object, key types.TypeId)      {}
func (Base) VisitKeyOf(types.TypeId)                        {}
func (Base) VisitApplication(types.TypeId, []types.TypeId)  {}
func (Base) VisitRef(uint32)                                {}
func (Base) VisitLazy(uint32)                                {}
func (Base) VisitTypeQuery(uint32)                           {}
func (Base) VisitEnum(uint32, types.TypeId)                  {}
func (Base) VisitStringIntrinsic(interner.StringIntrinsicKind, types.TypeId) {}
func (Base) VisitModuleNamespace(uint32)                     {}
func (Base) VisitRecursive(uint32)                           {}
func (Base) VisitBoundParameter(uint32)                      {}
