package subtype

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// tupleRestExpansion is a rest element broken into the part before the
// variadic portion, the variadic element type itself, and any fixed
// elements trailing it (rare, but valid for `[...T[], U]` patterns).
type tupleRestExpansion struct {
	fixed    []interner.TupleElement
	variadic *types.TypeId
	tail     []interner.TupleElement
}

// expandTupleRest recursively expands a rest element's type into its
// fixed/variadic/tail triple, so that e.g. `[A, ...[...B[], C]]` expands
// to fixed:[A], variadic:B, tail:[C].
func (c *Checker) expandTupleRest(id types.TypeId) tupleRestExpansion {
	if elem, ok := arrayElementType(c.b, id); ok {
		v := elem
		return tupleRestExpansion{variadic: &v}
	}

	if elems, ok := tupleElements(c.b, id); ok {
		var fixed []interner.TupleElement
		for i, e := range elems {
			if e.Rest {
				inner := c.expandTupleRest(e.Type)
				fixed = append(fixed, inner.fixed...)
				tail := append([]interner.TupleElement{}, inner.tail...)
				tail = append(tail, elems[i+1:]...)
				return tupleRestExpansion{fixed: fixed, variadic: inner.variadic, tail: tail}
			}
			fixed = append(fixed, e)
		}
		return tupleRestExpansion{fixed: fixed}
	}

	v := id
	return tupleRestExpansion{variadic: &v}
}

// ExpandTupleRest exposes expandTupleRest's fixed/variadic/tail triple
// (spec.md §4.G.5) to callers outside this package — in particular
// internal/calleval, which needs the same expansion to map a tuple-typed
// rest parameter's call arguments positionally instead of comparing every
// argument against the whole tuple.
func (c *Checker) ExpandTupleRest(id types.TypeId) (fixed []interner.TupleElement, variadic *types.TypeId, tail []interner.TupleElement) {
	e := c.expandTupleRest(id)
	return e.fixed, e.variadic, e.tail
}

func arrayElementType(b *types.Builder, id types.TypeId) (types.TypeId, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return 0, false
	}
	a, ok := key.(interner.ArrayKey)
	if !ok {
		return 0, false
	}
	return a.Elem, true
}

func tupleElements(b *types.Builder, id types.TypeId) ([]interner.TupleElement, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return nil, false
	}
	tp, ok := key.(interner.TupleKey)
	if !ok {
		return nil, false
	}
	return b.In.TupleList(tp.Elems), true
}

// checkTupleSubtype implements spec.md §4.G.1: required-count matching,
// positional element compatibility, and full rest-element expansion
// matched from both ends of the source tuple.
func (c *Checker) checkTupleSubtype(source, target []interner.TupleElement, mode Mode) bool {
	sourceRequired := countRequiredTupleElems(source)
	targetRequired := countRequiredTupleElems(target)
	if sourceRequired < targetRequired {
		return false
	}

	for i, t := range target {
		if !t.Rest {
			if i < len(source) {
				s := source[i]
				if s.Rest {
					return false
				}
				if !c.IsSubtype(s.Type, t.Type, mode) {
					return false
				}
				continue
			}
			if !t.Optional {
				return false
			}
			continue
		}

		// t is the target's rest element: expand it and match the
		// combined suffix (expansion tail + whatever follows the rest in
		// target) from the end of source backward.
		expansion := c.expandTupleRest(t.Type)
		outerTail := target[i+1:]
		combinedSuffix := append(append([]interner.TupleElement{}, expansion.tail...), outerTail...)

		sourceEnd := len(source)
		ok := true
		for j := len(combinedSuffix) - 1; j >= 0; j-- {
			tailElem := combinedSuffix[j]
			if sourceEnd <= i {
				if !tailElem.Optional {
					ok = false
				}
				break
			}
			sElem := source[sourceEnd-1]
			if sElem.Rest {
				if !tailElem.Optional {
					ok = false
				}
				break
			}
			assignable := c.IsSubtype(sElem.Type, tailElem.Type, mode)
			if tailElem.Optional && !assignable {
				break
			}
			if !assignable {
				ok = false
				break
			}
			sourceEnd--
		}
		if !ok {
			return false
		}

		idx := i
		for _, tFixed := range expansion.fixed {
			if idx >= sourceEnd {
				if !tFixed.Optional {
					return false
				}
				continue
			}
			sElem := source[idx]
			if sElem.Rest {
				return false
			}
			if !c.IsSubtype(sElem.Type, tFixed.Type, mode) {
				return false
			}
			idx++
		}

		if expansion.variadic != nil {
			variadicArray := c.b.Array(*expansion.variadic)
			for ; idx < sourceEnd; idx++ {
				sElem := source[idx]
				if sElem.Rest {
					if !c.IsSubtype(sElem.Type, variadicArray, mode) {
						return false
					}
				} else if !c.IsSubtype(sElem.Type, *expansion.variadic, mode) {
					return false
				}
			}
			return true
		}

		if idx < sourceEnd {
			return false
		}
		return true
	}

	// Target is closed (no rest element): source can't be longer or open.
	if len(source) > len(target) {
		return false
	}
	for _, s := range source {
		if s.Rest {
			return false
		}
	}
	return true
}

func countRequiredTupleElems(elems []interner.TupleElement) int {
	n := 0
	for _, e := range elems {
		if !e.Optional && !e.Rest {
			n++
		}
	}
	return n
}

// checkArrayToTupleSubtype: only `never[]` can ever satisfy a tuple
// target, and then only if the tuple allows being empty.
func (c *Checker) checkArrayToTupleSubtype(sourceElem types.TypeId, target []interner.TupleElement, mode Mode) bool {
	if sourceElem != types.Never {
		return false
	}
	return c.tupleAllowsEmpty(target)
}

func (c *Checker) tupleAllowsEmpty(target []interner.TupleElement) bool {
	for i, elem := range target {
		if elem.Rest {
			tail := target[i+1:]
			for _, t := range tail {
				if !t.Optional {
					return false
				}
			}
			expansion := c.expandTupleRest(elem.Type)
			for _, f := range expansion.fixed {
				if !f.Optional {
					return false
				}
			}
			for _, t := range expansion.tail {
				if !t.Optional {
					return false
				}
			}
			return true
		}
		if !elem.Optional {
			return false
		}
	}
	return true
}

// checkTupleToArraySubtype: a tuple is a subtype of an array if every one
// of its elements (rest elements expanded) is a subtype of the array's
// element type.
func (c *Checker) checkTupleToArraySubtype(targetArray interner.ArrayKey, source interner.TupleKey, mode Mode) bool {
	elems := c.b.In.TupleList(source.Elems)
	for _, elem := range elems {
		if elem.Rest {
			expansion := c.expandTupleRest(elem.Type)
			for _, f := range expansion.fixed {
				if !c.IsSubtype(f.Type, targetArray.Elem, mode) {
					return false
				}
			}
			if expansion.variadic != nil && !c.IsSubtype(*expansion.variadic, targetArray.Elem, mode) {
				return false
			}
			for _, t := range expansion.tail {
				if !c.IsSubtype(t.Type, targetArray.Elem, mode) {
					return false
				}
			}
			continue
		}
		if !c.IsSubtype(elem.Type, targetArray.Elem, mode) {
			return false
		}
	}
	return true
}
