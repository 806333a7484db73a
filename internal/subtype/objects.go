package subtype

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// dispatchStructural handles the pair-of-variants dispatch table once
// both sides have resolved to a genuine interned key (neither is a bare
// reserved primitive and neither is Union/Intersection, handled earlier).
func (c *Checker) dispatchStructural(source types.TypeId, sourceKey interner.TypeKey, target types.TypeId, targetKey interner.TypeKey, mode Mode) bool {
	switch tk := targetKey.(type) {
	case interner.TupleKey:
		targetElems := c.b.In.TupleList(tk.Elems)
		switch sk := sourceKey.(type) {
		case interner.TupleKey:
			return c.checkTupleSubtype(c.b.In.TupleList(sk.Elems), targetElems, mode)
		case interner.ArrayKey:
			return c.checkArrayToTupleSubtype(sk.Elem, targetElems, mode)
		default:
			return false
		}
	case interner.ArrayKey:
		switch sk := sourceKey.(type) {
		case interner.ArrayKey:
			return c.checkArraySubtype(sk.Elem, tk.Elem, mode)
		case interner.TupleKey:
			return c.checkTupleToArraySubtype(tk, sk, mode)
		default:
			return false
		}
	case interner.ObjectKey:
		shape := c.b.In.ObjectShape(tk.Shape)
		if apparentKind, ok := apparentPrimitiveKind(c.b, source, sourceKey); ok {
			return c.checkApparentPrimitiveAgainstObject(apparentKindToTypeID(apparentKind), shape, mode)
		}
		sourceShape, ok := sourceObjectView(c.b, source, sourceKey)
		if !ok {
			return false
		}
		return c.checkObjectSubtype(sourceShape, shape, mode)
	case interner.CallableKey:
		return c.checkCallableAgainstCallable(source, sourceKey, c.b.In.CallableShape(tk.Shape), mode)
	case interner.FunctionKey:
		return c.checkCallableAgainstCallable(source, sourceKey, c.b.In.CallableShape(tk.Shape), mode)
	case interner.EnumKey:
		return c.checkEnumSubtype(source, sourceKey, tk, mode)
	case interner.ReadonlyKey:
		// readonly T accepts both T and readonly T; the readonly modifier
		// is a write-capability restriction, not a structural narrowing.
		return c.IsSubtype(unwrapReadonly(c.b, source, sourceKey), tk.Inner, mode)
	case interner.TemplateLiteralKey:
		return c.checkTemplateLiteralTarget(source, sourceKey, tk, mode)
	default:
		return false
	}
}

func unwrapReadonly(b *types.Builder, id types.TypeId, key interner.TypeKey) types.TypeId {
	if r, ok := key.(interner.ReadonlyKey); ok {
		return r.Inner
	}
	return id
}

// sourceObjectView extracts a structural ObjectShape view from whatever
// source actually is: a plain Object, a Callable/Function's member
// properties, or (after unwrapping) a ReadonlyType.
func sourceObjectView(b *types.Builder, source types.TypeId, key interner.TypeKey) (interner.ObjectShape, bool) {
	switch k := key.(type) {
	case interner.ObjectKey:
		return b.In.ObjectShape(k.Shape), true
	case interner.CallableKey:
		return callableAsObjectShape(b.In.CallableShape(k.Shape)), true
	case interner.FunctionKey:
		return callableAsObjectShape(b.In.CallableShape(k.Shape)), true
	case interner.ReadonlyKey:
		innerKey, ok := b.Lookup(k.Inner)
		if !ok {
			return interner.ObjectShape{}, false
		}
		return sourceObjectView(b, k.Inner, innerKey)
	default:
		return interner.ObjectShape{}, false
	}
}

// ObjectViewOf is the exported form of sourceObjectView, for collaborators
// outside this package (property access, spec.md §4.J) that need the same
// "what structural shape does this type present" view member lookup itself
// already relies on, without duplicating the Object/Callable/Readonly
// unwrapping rules.
func (c *Checker) ObjectViewOf(id types.TypeId) (interner.ObjectShape, bool) {
	key, ok := c.b.Lookup(id)
	if !ok {
		return interner.ObjectShape{}, false
	}
	return sourceObjectView(c.b, id, key)
}

func callableAsObjectShape(shape interner.CallableShape) interner.ObjectShape {
	return interner.ObjectShape{
		Properties:  shape.Properties,
		StringIndex: shape.StringIndex,
		NumberIndex: shape.NumberIndex,
	}
}

// checkObjectSubtype is the structural object/object rule: every target
// property must have a matching, compatible source property (or the
// source must supply a compatible index signature instead), optional
// target properties may be altogether absent from source, and a mutable
// (non-readonly) target property requires an invariant match.
func (c *Checker) checkObjectSubtype(source, target interner.ObjectShape, mode Mode) bool {
	for _, tp := range target.Properties {
		sp, ok := findProperty(source, tp.Name)
		if !ok {
			if tp.Optional {
				if !c.indexSignatureCovers(source, tp, mode) {
					continue
				}
				continue
			}
			if !c.indexSignatureSatisfies(source, tp, mode) {
				return false
			}
			continue
		}
		if sp.Optional && !tp.Optional {
			return false
		}
		if !c.IsSubtype(sp.ReadType, tp.ReadType, mode) {
			return false
		}
		if !tp.Readonly {
			tWrite := tp.WriteType
			if tWrite == interner.NoType {
				tWrite = tp.ReadType
			}
			sWrite := sp.WriteType
			if sWrite == interner.NoType {
				sWrite = sp.ReadType
			}
			if !c.IsSubtype(tWrite, sWrite, mode) {
				return false
			}
		}
	}

	if target.StringIndex != nil {
		if source.StringIndex == nil || !c.IsSubtype(source.StringIndex.ValueType, target.StringIndex.ValueType, mode) {
			if !c.allPropertiesSatisfyIndex(source, target.StringIndex.ValueType, mode) {
				return false
			}
		}
	}
	if target.NumberIndex != nil {
		if source.NumberIndex == nil || !c.IsSubtype(source.NumberIndex.ValueType, target.NumberIndex.ValueType, mode) {
			return false
		}
	}

	return true
}

func (c *Checker) indexSignatureSatisfies(source interner.ObjectShape, tp interner.Property, mode Mode) bool {
	if source.StringIndex != nil && c.IsSubtype(source.StringIndex.ValueType, tp.ReadType, mode) {
		return true
	}
	return false
}

func (c *Checker) indexSignatureCovers(interner.ObjectShape, interner.Property, Mode) bool {
	return true
}

func (c *Checker) allPropertiesSatisfyIndex(source interner.ObjectShape, valueType types.TypeId, mode Mode) bool {
	for _, p := range source.Properties {
		if !c.IsSubtype(p.ReadType, valueType, mode) {
			return false
		}
	}
	return true
}

func findProperty(shape interner.ObjectShape, name interner.Atom) (interner.Property, bool) {
	for _, p := range shape.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return interner.Property{}, false
}

// CheckExcessProperties implements TS2353: a source that is a fresh
// object literal may not declare a property the target shape doesn't
// recognize (directly, or through an index signature). This is kept
// separate from IsSubtype because the excess-property restriction only
// ever applies to literal sources, never to general structural subtyping.
func (c *Checker) CheckExcessProperties(sourceLiteral, target interner.ObjectShape) []interner.Atom {
	var excess []interner.Atom
	for _, sp := range sourceLiteral.Properties {
		if _, ok := findProperty(target, sp.Name); ok {
			continue
		}
		if target.StringIndex != nil {
			continue
		}
		excess = append(excess, sp.Name)
	}
	return excess
}

// checkCallableAgainstCallable implements function/callable compatibility:
// every target call signature must be satisfied by some source call
// signature, applying strict-function-types contravariance for
// non-method signatures (bivariant when the signature is a method or
// mode.ForceBivariantCallbacks is set).
func (c *Checker) checkCallableAgainstCallable(source types.TypeId, sourceKey interner.TypeKey, target interner.CallableShape, mode Mode) bool {
	var sourceShape interner.CallableShape
	switch k := sourceKey.(type) {
	case interner.CallableKey:
		sourceShape = c.b.In.CallableShape(k.Shape)
	case interner.FunctionKey:
		sourceShape = c.b.In.CallableShape(k.Shape)
	default:
		return false
	}

	for _, tsig := range target.CallSignatures {
		matched := false
		for _, ssig := range sourceShape.CallSignatures {
			if c.checkSignatureCompatible(ssig, tsig, mode) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, tsig := range target.ConstructSignatures {
		matched := false
		for _, ssig := range sourceShape.ConstructSignatures {
			if c.checkSignatureCompatible(ssig, tsig, mode) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return c.checkObjectSubtype(callableAsObjectShape(sourceShape), callableAsObjectShape(target), mode)
}

// checkSignatureCompatible: source must accept at least as much as target
// requires (fewer or equal required parameters), each target parameter
// must be assignable to the corresponding source parameter (contravariant
// under strict_function_types for non-method signatures; bivariant —
// either direction accepted — for methods or a forced-bivariant call
// site), and the source return type must be assignable to the target's.
func (c *Checker) checkSignatureCompatible(source, target interner.CallSignature, mode Mode) bool {
	requiredSourceParams := countRequired(source.Params)
	if requiredSourceParams > len(target.Params) && !hasRest(source.Params) {
		return false
	}

	bivariant := source.IsMethod || target.IsMethod || mode.ForceBivariantCallbacks
	strict := mode.StrictFunctionTypes && !bivariant

	for i, tp := range target.Params {
		sp, ok := paramAt(source.Params, i)
		if !ok {
			continue
		}
		if strict {
			if !c.IsSubtype(tp.Type, sp.Type, mode) {
				return false
			}
		} else {
			if !c.IsSubtype(tp.Type, sp.Type, mode) && !c.IsSubtype(sp.Type, tp.Type, mode) {
				return false
			}
		}
	}

	return c.IsSubtype(source.ReturnType, target.ReturnType, mode)
}

func countRequired(params []interner.Param) int {
	n := 0
	for _, p := range params {
		if !p.Optional && !p.Rest {
			n++
		}
	}
	return n
}

func hasRest(params []interner.Param) bool {
	for _, p := range params {
		if p.Rest {
			return true
		}
	}
	return false
}

func paramAt(params []interner.Param, i int) (interner.Param, bool) {
	if i < len(params) {
		if params[i].Rest && i > 0 {
			return params[i], true
		}
		return params[i], true
	}
	if len(params) > 0 && params[len(params)-1].Rest {
		return params[len(params)-1], true
	}
	return interner.Param{}, false
}

func (c *Checker) checkArraySubtype(sourceElem, targetElem types.TypeId, mode Mode) bool {
	if mode.Sound {
		return c.IsSubtype(sourceElem, targetElem, mode) && c.IsSubtype(targetElem, sourceElem, mode)
	}
	return c.IsSubtype(sourceElem, targetElem, mode)
}

func (c *Checker) checkTemplateLiteralTarget(source types.TypeId, sourceKey interner.TypeKey, target interner.TemplateLiteralKey, mode Mode) bool {
	if source == interner.String {
		return false
	}
	if kind, ok := apparentPrimitiveKind(c.b, source, sourceKey); ok {
		return kind == apparentString
	}
	return false
}

func (c *Checker) checkEnumSubtype(source types.TypeId, sourceKey interner.TypeKey, target interner.EnumKey, mode Mode) bool {
	sk, ok := sourceKey.(interner.EnumKey)
	if !ok {
		return false
	}
	if sk.Def != target.Def {
		return false
	}
	return c.IsSubtype(sk.Member, target.Member, mode)
}
