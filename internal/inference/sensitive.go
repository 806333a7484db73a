package inference

import "github.com/gotsc/gotsc/internal/resolver"

// IsSensitive classifies an argument expression as "contextually
// sensitive" per spec.md §4.H's two-pass inference rule: a lambda, an
// object literal containing a sensitive element, an array literal
// containing a sensitive element, or a parenthesized/conditional
// expression wrapping a sensitive one. Two-pass inference processes
// non-sensitive arguments first so lambdas in later positions get a
// partially-instantiated expected parameter type as their contextual
// type, rather than inferring from an un-annotated lambda parameter.
func IsSensitive(arena resolver.NodeArena, id resolver.NodeID) bool {
	if _, ok := arena.FunctionLike(id); ok {
		return true
	}
	if elems, ok := arena.ObjectLiteral(id); ok {
		for _, el := range elems {
			if el.Kind == resolver.SpreadProperty {
				continue
			}
			if IsSensitive(arena, el.Value) {
				return true
			}
		}
		return false
	}
	if elems, ok := arena.ArrayLiteral(id); ok {
		for _, el := range elems {
			if IsSensitive(arena, el) {
				return true
			}
		}
		return false
	}
	if inner, ok := arena.Parenthesized(id); ok {
		return IsSensitive(arena, inner)
	}
	if cond, ok := arena.ConditionalExpression(id); ok {
		return IsSensitive(arena, cond.WhenTrue) || IsSensitive(arena, cond.WhenFalse)
	}
	return false
}

// Partition splits a call's arguments into the non-sensitive indices
// (processed in pass 1) and the sensitive ones (processed in pass 2,
// after pass 1's bindings have narrowed the expected parameter types).
func Partition(arena resolver.NodeArena, args []resolver.NodeID) (nonSensitive, sensitive []int) {
	for i, a := range args {
		if IsSensitive(arena, a) {
			sensitive = append(sensitive, i)
		} else {
			nonSensitive = append(nonSensitive, i)
		}
	}
	return nonSensitive, sensitive
}
