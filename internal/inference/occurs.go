package inference

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
	"github.com/gotsc/gotsc/internal/visitor"
)

// occurs reports whether t structurally mentions a TypeParameterKey (or
// Infer slot) named name anywhere in its tree — arrays, tuples, unions,
// intersections, objects, signatures (including this types and their own
// nested type parameters), applications, conditionals, mapped types,
// index-access, keyof, and readonly wrappers all count.
func occurs(b *types.Builder, t types.TypeId, name interner.Atom) bool {
	ov := &occursVisitor{b: b, name: name, seen: make(map[types.TypeId]bool)}
	ov.visit(t)
	return ov.found
}

type occursVisitor struct {
	visitor.Base
	b     *types.Builder
	name  interner.Atom
	found bool
	seen  map[types.TypeId]bool
}

func (v *occursVisitor) visit(id types.TypeId) {
	if v.found || v.seen[id] {
		return
	}
	v.seen[id] = true
	visitor.Dispatch(v.b, v, id)
}

func (v *occursVisitor) visitParamInfo(info interner.TypeParamInfo) {
	if info.Constraint != interner.NoType {
		v.visit(info.Constraint)
	}
	if info.Default != interner.NoType {
		v.visit(info.Default)
	}
}

func (v *occursVisitor) VisitArray(elem types.TypeId) { v.visit(elem) }

func (v *occursVisitor) VisitTuple(elems []interner.TupleElement) {
	for _, e := range elems {
		v.visit(e.Type)
	}
}

func (v *occursVisitor) VisitObject(shape interner.ObjectShape) {
	v.visitShape(shape)
}

func (v *occursVisitor) VisitCallable(shape interner.CallableShape) {
	v.visitCallableShape(shape)
}

func (v *occursVisitor) VisitFunction(shape interner.CallableShape) {
	v.visitCallableShape(shape)
}

func (v *occursVisitor) visitShape(shape interner.ObjectShape) {
	for _, p := range shape.Properties {
		v.visit(p.ReadType)
		if p.WriteType != interner.NoType {
			v.visit(p.WriteType)
		}
	}
	if shape.StringIndex != nil {
		v.visit(shape.StringIndex.ValueType)
	}
	if shape.NumberIndex != nil {
		v.visit(shape.NumberIndex.ValueType)
	}
}

func (v *occursVisitor) visitCallableShape(shape interner.CallableShape) {
	for _, sig := range shape.CallSignatures {
		v.visitSignature(sig)
	}
	for _, sig := range shape.ConstructSignatures {
		v.visitSignature(sig)
	}
	v.visitShape(interner.ObjectShape{Properties: shape.Properties, StringIndex: shape.StringIndex, NumberIndex: shape.NumberIndex})
}

func (v *occursVisitor) visitSignature(sig interner.CallSignature) {
	for _, tp := range sig.TypeParams {
		v.visitParamInfo(tp)
	}
	for _, p := range sig.Params {
		v.visit(p.Type)
	}
	if sig.ThisType != interner.NoType {
		v.visit(sig.ThisType)
	}
	v.visit(sig.ReturnType)
	if sig.Predicate != nil {
		v.visit(sig.Predicate.Type)
	}
}

func (v *occursVisitor) VisitUnion(members []types.TypeId)        { v.visitAll(members) }
func (v *occursVisitor) VisitIntersection(members []types.TypeId) { v.visitAll(members) }

func (v *occursVisitor) visitAll(ids []types.TypeId) {
	for _, id := range ids {
		v.visit(id)
	}
}

func (v *occursVisitor) VisitReadonlyType(inner types.TypeId) { v.visit(inner) }

func (v *occursVisitor) VisitTypeParameter(info interner.TypeParamInfo) {
	if info.Name == v.name {
		v.found = true
		return
	}
	v.visitParamInfo(info)
}

func (v *occursVisitor) VisitInfer(info interner.TypeParamInfo) {
	if info.Name == v.name {
		v.found = true
		return
	}
	v.visitParamInfo(info)
}

func (v *occursVisitor) VisitConditional(check, extends, trueBranch, falseBranch types.TypeId, distributive bool) {
	v.visit(check)
	v.visit(extends)
	v.visit(trueBranch)
	v.visit(falseBranch)
}

func (v *occursVisitor) VisitMapped(ivar interner.Atom, constraint, nameType, template types.TypeId, readonlyMod, optionalMod interner.MappedMod) {
	v.visit(constraint)
	if nameType != interner.NoType {
		v.visit(nameType)
	}
	v.visit(template)
}

func (v *occursVisitor) VisitIndexAccess(object, key types.TypeId) {
	v.visit(object)
	v.visit(key)
}

func (v *occursVisitor) VisitKeyOf(operand types.TypeId) { v.visit(operand) }

func (v *occursVisitor) VisitApplication(base types.TypeId, args []types.TypeId) {
	v.visit(base)
	v.visitAll(args)
}

func (v *occursVisitor) VisitEnum(defID uint32, member types.TypeId) { v.visit(member) }

func (v *occursVisitor) VisitStringIntrinsic(op interner.StringIntrinsicKind, arg types.TypeId) {
	v.visit(arg)
}
