// Package variance computes how a generic type parameter's subtyping
// relates to the subtyping of the type that uses it (spec.md §4.D),
// enabling O(1) generic assignability checks instead of re-deriving
// variance from scratch on every comparison.
package variance

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
	"github.com/gotsc/gotsc/internal/visitor"
)

// Variance is a bitmask: Covariant|Contravariant is invariant, neither bit
// set is independent (the parameter doesn't occur).
type Variance uint8

const (
	Independent   Variance = 0
	Covariant     Variance = 1 << 0
	Contravariant Variance = 1 << 1
	Invariant              = Covariant | Contravariant
)

func (v Variance) IsCovariant() bool     { return v&Covariant != 0 }
func (v Variance) IsContravariant() bool { return v&Contravariant != 0 }
func (v Variance) IsInvariant() bool     { return v&Invariant == Invariant }
func (v Variance) IsIndependent() bool   { return v == Independent }

// Resolver supplies the symbolic lookups variance composition needs:
// resolving Lazy/Ref indirections to their underlying type and fetching
// the already-computed per-parameter variance of a generic definition so
// variance composes through nested generic applications without
// recomputing the base type's body each time.
type Resolver interface {
	ResolveLazy(defID uint32) (types.TypeId, bool)
	ResolveRef(symbol uint32) (types.TypeId, bool)
	SymbolToDefID(symbol uint32) (uint32, bool)
	TypeParamVariance(defID uint32) ([]Variance, bool)
}

// Compute returns the variance of targetParam within typeID.
func Compute(b *types.Builder, r Resolver, typeID types.TypeId, targetParam interner.Atom) Variance {
	v := &visitorImpl{
		b:        b,
		r:        r,
		target:   targetParam,
		visiting: make(map[cycleKey]bool),
		polarity: []bool{true},
	}
	v.dispatchAt(typeID, true)
	return v.result
}

type cycleKey struct {
	id       types.TypeId
	polarity bool
}

type visitorImpl struct {
	visitor.Base
	b      *types.Builder
	r      Resolver
	target interner.Atom
	result Variance

	visiting map[cycleKey]bool
	polarity []bool
}

func (v *visitorImpl) current() bool {
	return v.polarity[len(v.polarity)-1]
}

func (v *visitorImpl) dispatchAt(id types.TypeId, polarity bool) {
	key := cycleKey{id, polarity}
	if v.visiting[key] {
		return
	}
	v.visiting[key] = true
	v.polarity = append(v.polarity, polarity)

	visitor.Dispatch(v.b, v, id)

	v.polarity = v.polarity[:len(v.polarity)-1]
	delete(v.visiting, key)
}

func (v *visitorImpl) flip(id types.TypeId) {
	v.dispatchAt(id, !v.current())
}

func (v *visitorImpl) same(id types.TypeId) {
	v.dispatchAt(id, v.current())
}

func (v *visitorImpl) occur() {
	if v.current() {
		v.result |= Covariant
	} else {
		v.result |= Contravariant
	}
}

func (v *visitorImpl) VisitUnion(members []types.TypeId) {
	for _, m := range members {
		v.same(m)
	}
}

func (v *visitorImpl) VisitIntersection(members []types.TypeId) {
	for _, m := range members {
		v.same(m)
	}
}

func (v *visitorImpl) VisitArray(elem types.TypeId) {
	v.same(elem)
}

func (v *visitorImpl) VisitTuple(elems []interner.TupleElement) {
	for _, e := range elems {
		v.same(e.Type)
	}
}

func (v *visitorImpl) visitSignature(sig interner.CallSignature) {
	if !sig.IsMethod {
		for _, p := range sig.Params {
			v.flip(p.Type)
		}
	}
	v.same(sig.ReturnType)
	if sig.ThisType != interner.NoType {
		v.flip(sig.ThisType)
	}
}

func (v *visitorImpl) visitCallableShape(shape interner.CallableShape) {
	for _, sig := range shape.CallSignatures {
		v.visitSignature(sig)
	}
	for _, sig := range shape.ConstructSignatures {
		for _, p := range sig.Params {
			v.flip(p.Type)
		}
		v.same(sig.ReturnType)
		if sig.ThisType != interner.NoType {
			v.flip(sig.ThisType)
		}
	}
	v.visitProperties(shape.Properties)
}

func (v *visitorImpl) VisitCallable(shape interner.CallableShape) { v.visitCallableShape(shape) }
func (v *visitorImpl) VisitFunction(shape interner.CallableShape) { v.visitCallableShape(shape) }

func (v *visitorImpl) visitProperties(props []interner.Property) {
	for _, p := range props {
		v.same(p.ReadType)
		if !p.Readonly {
			write := p.WriteType
			if write == interner.NoType {
				write = p.ReadType
			}
			v.flip(write)
		}
	}
}

func (v *visitorImpl) VisitObject(shape interner.ObjectShape) {
	v.visitProperties(shape.Properties)
	if shape.StringIndex != nil {
		v.same(shape.StringIndex.ValueType)
		if !shape.StringIndex.Readonly {
			v.flip(shape.StringIndex.ValueType)
		}
	}
	if shape.NumberIndex != nil {
		v.same(shape.NumberIndex.ValueType)
		if !shape.NumberIndex.Readonly {
			v.flip(shape.NumberIndex.ValueType)
		}
	}
}

func (v *visitorImpl) VisitTypeParameter(info interner.TypeParamInfo) {
	if info.Name == v.target {
		v.occur()
	}
	if info.Constraint != interner.NoType {
		v.same(info.Constraint)
	}
	if info.Default != interner.NoType {
		v.same(info.Default)
	}
}

// VisitInfer deliberately does not check info.Name == v.target: `infer X`
// declares X, it is never a usage of the outer target parameter even when
// the names collide.
func (v *visitorImpl) VisitInfer(info interner.TypeParamInfo) {
	if info.Constraint != interner.NoType {
		v.same(info.Constraint)
	}
}

func (v *visitorImpl) VisitLazy(defID uint32) {
	if resolved, ok := v.r.ResolveLazy(defID); ok {
		v.same(resolved)
	}
}

func (v *visitorImpl) VisitRef(symbol uint32) {
	if defID, ok := v.r.SymbolToDefID(symbol); ok {
		if resolved, ok := v.r.ResolveLazy(defID); ok {
			v.same(resolved)
			return
		}
	}
	if resolved, ok := v.r.ResolveRef(symbol); ok {
		v.same(resolved)
	}
}

func (v *visitorImpl) VisitEnum(_ uint32, member types.TypeId) {
	v.same(member)
}

func (v *visitorImpl) VisitApplication(base types.TypeId, args []types.TypeId) {
	var defID uint32
	var haveDef bool
	if key, ok := v.b.Lookup(base); ok {
		switch k := key.(type) {
		case interner.LazyKey:
			defID, haveDef = k.Def, true
		case interner.RefKey:
			defID, haveDef = v.r.SymbolToDefID(k.Symbol)
		}
	}

	var variances []Variance
	if haveDef {
		variances, _ = v.r.TypeParamVariance(defID)
	}

	for i, arg := range args {
		var pv Variance
		if i < len(variances) {
			pv = variances[i]
		} else {
			pv = Invariant
		}
		if variances == nil {
			// Base variance unknown: assume invariance, the safest choice.
			v.same(arg)
			v.flip(arg)
			continue
		}
		if pv.IsCovariant() {
			v.same(arg)
		}
		if pv.IsContravariant() {
			v.flip(arg)
		}
	}
}

func (v *visitorImpl) VisitConditional(check, extends, trueBranch, falseBranch types.TypeId, _ bool) {
	v.same(check)
	v.flip(extends)
	v.same(trueBranch)
	v.same(falseBranch)
}

func (v *visitorImpl) VisitMapped(_ interner.Atom, constraint, nameType, template types.TypeId, _, _ interner.MappedMod) {
	v.flip(constraint)
	v.same(template)
	if nameType != interner.NoType {
		v.same(nameType)
	}
}

func (v *visitorImpl) VisitIndexAccess(object, key types.TypeId) {
	v.same(object)
	v.same(key)
}

func (v *visitorImpl) VisitKeyOf(operand types.TypeId) {
	v.same(operand)
}

func (v *visitorImpl) VisitReadonlyType(inner types.TypeId) {
	v.same(inner)
}

func (v *visitorImpl) VisitTemplateLiteral(spans []interner.TemplateSpan) {
	for _, s := range spans {
		if s.IsType {
			v.same(s.Type)
		}
	}
}

func (v *visitorImpl) VisitStringIntrinsic(_ interner.StringIntrinsicKind, arg types.TypeId) {
	v.same(arg)
}
