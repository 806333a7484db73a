package subtype

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// isObjectKeywordType reports whether source is assignable to the bare
// `object` keyword type: every non-primitive form (objects, arrays,
// tuples, functions/callables, mapped types, unresolved applications,
// `this`) qualifies; primitives, null, undefined, void and unknown do not.
func (c *Checker) isObjectKeywordType(source types.TypeId, mode Mode) bool {
	switch source {
	case types.Any, types.Never, types.ErrorType, interner.Object, types.This:
		return true
	case types.Unknown, types.Void, types.Null, types.Undefined,
		types.Boolean, types.Number, types.String, types.BigInt, interner.Symbol:
		return false
	}

	key, ok := c.b.Lookup(source)
	if !ok {
		return false
	}

	switch k := key.(type) {
	case interner.ObjectKey, interner.ArrayKey, interner.TupleKey,
		interner.FunctionKey, interner.CallableKey, interner.MappedKey,
		interner.ApplicationKey:
		return true
	case interner.ReadonlyKey:
		return c.isObjectKeywordType(k.Inner, mode)
	case interner.TypeParameterKey:
		if k.Info.Constraint == interner.NoType {
			return false
		}
		return c.IsSubtype(k.Info.Constraint, interner.Object, mode)
	case interner.InferKey:
		if k.Info.Constraint == interner.NoType {
			return false
		}
		return c.IsSubtype(k.Info.Constraint, interner.Object, mode)
	case interner.RefKey:
		if resolved, ok := c.resolver.Resolve(k.Symbol); ok {
			return c.IsSubtype(resolved, interner.Object, mode)
		}
		return false
	default:
		return false
	}
}

// isCallableType reports whether source can appear in call position:
// functions/callables directly, every member of a union, at least one
// member of an intersection, or a type-parameter whose constraint is
// itself callable.
func (c *Checker) isCallableType(source types.TypeId, mode Mode) bool {
	switch source {
	case types.Any, types.Never, types.ErrorType, interner.Function:
		return true
	}

	key, ok := c.b.Lookup(source)
	if !ok {
		return false
	}

	switch k := key.(type) {
	case interner.FunctionKey, interner.CallableKey:
		return true
	case interner.UnionKey:
		for _, m := range c.b.In.TypeList(k.Members) {
			if !c.isCallableType(m, mode) {
				return false
			}
		}
		return true
	case interner.IntersectionKey:
		for _, m := range c.b.In.TypeList(k.Members) {
			if c.isCallableType(m, mode) {
				return true
			}
		}
		return false
	case interner.TypeParameterKey:
		if k.Info.Constraint == interner.NoType {
			return false
		}
		return c.isCallableType(k.Info.Constraint, mode)
	case interner.InferKey:
		if k.Info.Constraint == interner.NoType {
			return false
		}
		return c.isCallableType(k.Info.Constraint, mode)
	case interner.RefKey:
		if resolved, ok := c.resolver.Resolve(k.Symbol); ok {
			return c.isCallableType(resolved, mode)
		}
		return false
	default:
		return false
	}
}
