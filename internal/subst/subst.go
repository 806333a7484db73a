// Package subst implements type-parameter substitution and generic-body
// instantiation (spec.md §4.E). It sits below package application: given a
// generic definition's body and a set of bound type arguments, Instantiate
// produces the concrete type with every free occurrence of a bound type
// parameter replaced.
package subst

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// MaxDepth bounds substitution recursion; spec.md §5 requires every
// overflow to degrade to the ERROR sentinel rather than overflow the
// goroutine stack.
const MaxDepth = 40

// Substitution maps type-parameter names (by interned Atom) to the TypeId
// they are bound to within one instantiation.
type Substitution struct {
	values map[interner.Atom]types.TypeId
}

// New returns an empty substitution.
func New() *Substitution {
	return &Substitution{values: make(map[interner.Atom]types.TypeId)}
}

// Bind records name -> value, overwriting any prior binding.
func (s *Substitution) Bind(name interner.Atom, value types.TypeId) {
	s.values[name] = value
}

// Lookup returns the bound value for name, if any.
func (s *Substitution) Lookup(name interner.Atom) (types.TypeId, bool) {
	v, ok := s.values[name]
	return v, ok
}

// without returns a copy of s with name unbound, used to mask a
// substitution when a nested form (a mapped type's iteration variable, a
// signature's own type parameters) rebinds the same name.
func (s *Substitution) without(name interner.Atom) *Substitution {
	if _, ok := s.values[name]; !ok {
		return s
	}
	cp := make(map[interner.Atom]types.TypeId, len(s.values))
	for k, v := range s.values {
		if k != name {
			cp[k] = v
		}
	}
	return &Substitution{values: cp}
}

// FromArgs zips type parameters to arguments left to right. A parameter
// past the end of args falls back to its default type if declared,
// otherwise to unknown (spec.md's conservative choice for an omitted,
// unconstrained type argument).
func FromArgs(params []interner.TypeParamInfo, args []types.TypeId) *Substitution {
	s := New()
	for i, p := range params {
		switch {
		case i < len(args):
			s.Bind(p.Name, args[i])
		case p.Default != interner.NoType:
			s.Bind(p.Name, p.Default)
		default:
			s.Bind(p.Name, types.Unknown)
		}
	}
	return s
}

// Instantiate substitutes every free type-parameter occurrence in id
// according to sub. Lazy and Ref forms are left untouched: resolving a
// symbolic reference's body is package application's job, not
// substitution's, so a generic's unexpanded body can be instantiated
// without forcing every nested alias open.
func Instantiate(b *types.Builder, id types.TypeId, sub *Substitution) types.TypeId {
	inst := &instantiator{b: b}
	return inst.run(id, sub, 0)
}

type instantiator struct {
	b *types.Builder
}

func (inst *instantiator) run(id types.TypeId, sub *Substitution, depth int) types.TypeId {
	if depth > MaxDepth {
		return types.ErrorType
	}
	if len(sub.values) == 0 {
		return id
	}

	key, ok := inst.b.Lookup(id)
	if !ok {
		return id
	}

	d := depth + 1
	switch k := key.(type) {
	case interner.TypeParameterKey:
		if v, ok := sub.Lookup(k.Info.Name); ok {
			return v
		}
		return id

	case interner.ArrayKey:
		elem := inst.run(k.Elem, sub, d)
		if elem == k.Elem {
			return id
		}
		return inst.b.Array(elem)

	case interner.TupleKey:
		elems := inst.b.In.TupleList(k.Elems)
		changed := false
		out := make([]interner.TupleElement, len(elems))
		for i, e := range elems {
			nt := inst.run(e.Type, sub, d)
			out[i] = e
			out[i].Type = nt
			changed = changed || nt != e.Type
		}
		if !changed {
			return id
		}
		return inst.b.Tuple(out)

	case interner.UnionKey:
		members := inst.b.In.TypeList(k.Members)
		return inst.b.Union(inst.runAll(members, sub, d))

	case interner.IntersectionKey:
		members := inst.b.In.TypeList(k.Members)
		return inst.b.Intersection(inst.runAll(members, sub, d))

	case interner.ReadonlyKey:
		nt := inst.run(k.Inner, sub, d)
		if nt == k.Inner {
			return id
		}
		return inst.b.ReadonlyType(nt)

	case interner.ObjectKey:
		shape := inst.b.In.ObjectShape(k.Shape)
		newShape, changed := inst.substObjectShape(shape, sub, d)
		if !changed {
			return id
		}
		return inst.b.Object(newShape)

	case interner.CallableKey:
		shape := inst.b.In.CallableShape(k.Shape)
		newShape, changed := inst.substCallableShape(shape, sub, d)
		if !changed {
			return id
		}
		return inst.b.Callable(newShape)

	case interner.FunctionKey:
		shape := inst.b.In.CallableShape(k.Shape)
		newShape, changed := inst.substCallableShape(shape, sub, d)
		if !changed {
			return id
		}
		return inst.b.Function(newShape.CallSignatures[0])

	case interner.ApplicationKey:
		args := inst.b.In.TypeList(k.Args)
		newArgs := inst.runAll(args, sub, d)
		base := inst.run(k.Base, sub, d)
		return inst.b.Application(base, newArgs)

	case interner.ConditionalKey:
		check := inst.run(k.Check, sub, d)
		extends := inst.run(k.Extends, sub, d)
		trueB := inst.run(k.TrueBranch, sub, d)
		falseB := inst.run(k.FalseBranch, sub, d)
		if check == k.Check && extends == k.Extends && trueB == k.TrueBranch && falseB == k.FalseBranch {
			return id
		}
		return inst.b.Conditional(check, extends, trueB, falseB, k.Distributive)

	case interner.MappedKey:
		inner := sub.without(k.IVar)
		constraint := inst.run(k.Constraint, sub, d)
		nameType := interner.NoType
		if k.NameType != interner.NoType {
			nameType = inst.run(k.NameType, inner, d)
		}
		template := inst.run(k.Template, inner, d)
		return inst.b.Mapped(k.IVar, constraint, nameType, template, k.ReadonlyMod, k.OptionalMod)

	case interner.IndexAccessKey:
		object := inst.run(k.Object, sub, d)
		keyTy := inst.run(k.Key, sub, d)
		if object == k.Object && keyTy == k.Key {
			return id
		}
		return inst.b.IndexAccess(object, keyTy)

	case interner.KeyOfKey:
		operand := inst.run(k.Operand, sub, d)
		if operand == k.Operand {
			return id
		}
		return inst.b.KeyOf(operand)

	case interner.StringIntrinsicKey:
		arg := inst.run(k.Arg, sub, d)
		if arg == k.Arg {
			return id
		}
		return inst.b.StringIntrinsic(k.Op, arg)

	case interner.EnumKey:
		member := inst.run(k.Member, sub, d)
		if member == k.Member {
			return id
		}
		return inst.b.Enum(k.Def, member)

	case interner.TemplateLiteralKey:
		spans := inst.b.In.TemplateList(k.Spans)
		changed := false
		out := make([]interner.TemplateSpan, len(spans))
		for i, s := range spans {
			out[i] = s
			if s.IsType {
				nt := inst.run(s.Type, sub, d)
				out[i].Type = nt
				changed = changed || nt != s.Type
			}
		}
		if !changed {
			return id
		}
		return inst.b.TemplateLiteral(out)

	default:
		// Infer, Lazy, Ref, TypeQuery, Recursive, BoundParameter,
		// ModuleNamespace, literals: opaque to substitution.
		return id
	}
}

func (inst *instantiator) runAll(ids []types.TypeId, sub *Substitution, depth int) []types.TypeId {
	out := make([]types.TypeId, len(ids))
	for i, id := range ids {
		out[i] = inst.run(id, sub, depth)
	}
	return out
}

func (inst *instantiator) substObjectShape(shape interner.ObjectShape, sub *Substitution, depth int) (interner.ObjectShape, bool) {
	changed := false
	props := make([]interner.Property, len(shape.Properties))
	for i, p := range shape.Properties {
		props[i] = p
		nr := inst.run(p.ReadType, sub, depth)
		props[i].ReadType = nr
		changed = changed || nr != p.ReadType
		if p.WriteType != interner.NoType {
			nw := inst.run(p.WriteType, sub, depth)
			props[i].WriteType = nw
			changed = changed || nw != p.WriteType
		}
	}
	out := shape
	out.Properties = props
	if shape.StringIndex != nil {
		nv := inst.run(shape.StringIndex.ValueType, sub, depth)
		if nv != shape.StringIndex.ValueType {
			changed = true
			idx := *shape.StringIndex
			idx.ValueType = nv
			out.StringIndex = &idx
		}
	}
	if shape.NumberIndex != nil {
		nv := inst.run(shape.NumberIndex.ValueType, sub, depth)
		if nv != shape.NumberIndex.ValueType {
			changed = true
			idx := *shape.NumberIndex
			idx.ValueType = nv
			out.NumberIndex = &idx
		}
	}
	return out, changed
}

func (inst *instantiator) substCallableShape(shape interner.CallableShape, sub *Substitution, depth int) (interner.CallableShape, bool) {
	changed := false
	sigs := make([]interner.CallSignature, len(shape.CallSignatures))
	for i, sig := range shape.CallSignatures {
		ns, c := inst.substSignature(sig, sub, depth)
		sigs[i] = ns
		changed = changed || c
	}
	ctors := make([]interner.CallSignature, len(shape.ConstructSignatures))
	for i, sig := range shape.ConstructSignatures {
		ns, c := inst.substSignature(sig, sub, depth)
		ctors[i] = ns
		changed = changed || c
	}
	objShape, objChanged := inst.substObjectShape(interner.ObjectShape{
		Properties:  shape.Properties,
		StringIndex: shape.StringIndex,
		NumberIndex: shape.NumberIndex,
	}, sub, depth)
	changed = changed || objChanged

	out := shape
	out.CallSignatures = sigs
	out.ConstructSignatures = ctors
	out.Properties = objShape.Properties
	out.StringIndex = objShape.StringIndex
	out.NumberIndex = objShape.NumberIndex
	return out, changed
}

func (inst *instantiator) substSignature(sig interner.CallSignature, sub *Substitution, depth int) (interner.CallSignature, bool) {
	// A signature's own type parameters shadow the outer substitution for
	// the rest of the signature.
	inner := sub
	for _, tp := range sig.TypeParams {
		inner = inner.without(tp.Name)
	}

	changed := false
	params := make([]interner.Param, len(sig.Params))
	for i, p := range sig.Params {
		np := inst.run(p.Type, inner, depth)
		params[i] = p
		params[i].Type = np
		changed = changed || np != p.Type
	}
	ret := inst.run(sig.ReturnType, inner, depth)
	changed = changed || ret != sig.ReturnType

	this := sig.ThisType
	if this != interner.NoType {
		nt := inst.run(this, inner, depth)
		changed = changed || nt != this
		this = nt
	}

	out := sig
	out.Params = params
	out.ReturnType = ret
	out.ThisType = this
	return out, changed
}
