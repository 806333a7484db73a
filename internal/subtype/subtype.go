// Package subtype implements the structural subtype/assignability checker
// (spec.md §4.G): the central engine every other evaluator (calleval,
// propaccess, expreval, inference) calls into to decide whether one type
// can flow into another.
package subtype

import (
	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// Resolver is the subset of resolver.TypeResolver the checker needs to
// chase Ref indirections (object-keyword and callable-type tests operate
// on the raw type graph and must be able to follow a legacy Ref(symbol)
// the same way application evaluation follows Lazy(defId)).
type Resolver = application.Resolver

// Mode mirrors spec.md §4.G's named modes. The zero value is TypeScript's
// default posture (non-strict function parameters, no bivariant override,
// indexed reads without an added undefined).
type Mode struct {
	StrictFunctionTypes      bool
	ForceBivariantCallbacks  bool
	NoUncheckedIndexedAccess bool
	Sound                    bool
}

// MaxMemoEntries bounds the subtype memo; spec.md §5 calls for an
// LRU-by-insertion-order eviction policy rather than unbounded growth.
const MaxMemoEntries = 200_000

type memoKey struct {
	source, target types.TypeId
	mode           Mode
}

// Checker is the stateful subtype engine for one compilation: its only
// state is the memo (by (source, target, mode)) and the application
// evaluator it shares with the rest of the checker.
type Checker struct {
	b        *types.Builder
	resolver Resolver
	apply    *application.Evaluator

	memo     map[memoKey]bool
	order    []memoKey
	visiting map[memoKey]bool
}

// New creates a Checker bound to one Builder/Resolver/application.Evaluator
// triple — all three must be the same instances the rest of the
// compilation uses, so caches agree on TypeId identity.
func New(b *types.Builder, r Resolver, apply *application.Evaluator) *Checker {
	return &Checker{
		b:        b,
		resolver: r,
		apply:    apply,
		memo:     make(map[memoKey]bool),
		visiting: make(map[memoKey]bool),
	}
}

// IsSubtype reports whether source can flow into target under mode.
func (c *Checker) IsSubtype(source, target types.TypeId, mode Mode) bool {
	key := memoKey{source, target, mode}
	if v, ok := c.memo[key]; ok {
		return v
	}

	// Recursive types reach the same (source, target, mode) pair again
	// while still proving it; assume true co-inductively, the standard
	// resolution for structural recursive-type subtyping. A wrong
	// optimistic assumption here is corrected the moment any sibling
	// branch in the same top-level call returns false on its own merits.
	if c.visiting[key] {
		return true
	}
	c.visiting[key] = true
	result := c.computeSubtype(source, target, mode)
	delete(c.visiting, key)

	c.remember(key, result)
	return result
}

// IsAssignable is the alias spec.md §4.G names for the call evaluator and
// expression checker's use of the same relation.
func (c *Checker) IsAssignable(source, target types.TypeId, mode Mode) bool {
	return c.IsSubtype(source, target, mode)
}

func (c *Checker) remember(key memoKey, result bool) {
	if _, exists := c.memo[key]; !exists {
		if len(c.order) >= MaxMemoEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.memo, oldest)
		}
		c.order = append(c.order, key)
	}
	c.memo[key] = result
}

func (c *Checker) computeSubtype(source, target types.TypeId, mode Mode) bool {
	if source == target {
		return true
	}
	if source == types.Never {
		return true
	}
	if target == types.Any || target == types.ErrorType {
		return true
	}
	if source == types.Any || source == types.ErrorType {
		return true
	}
	if target == types.Unknown {
		return true
	}
	if source == types.Unknown {
		return false
	}
	if target == types.Never {
		return false
	}

	source = c.apply.EvaluateOrOriginal(source)
	target = c.apply.EvaluateOrOriginal(target)
	if source == target {
		return true
	}

	if target == interner.Object {
		return c.isObjectKeywordType(source, mode)
	}
	if target == interner.Function {
		return c.isCallableType(source, mode)
	}

	if interner.IsReserved(source) && interner.IsReserved(target) {
		return c.checkIntrinsicSubtype(source, target)
	}

	targetKey, targetOk := c.b.Lookup(target)
	sourceKey, sourceOk := c.b.Lookup(source)

	// Union/intersection distribute regardless of what's on the other side.
	if sourceOk {
		if u, ok := sourceKey.(interner.UnionKey); ok {
			for _, m := range c.b.In.TypeList(u.Members) {
				if !c.IsSubtype(m, target, mode) {
					return false
				}
			}
			return true
		}
		if i, ok := sourceKey.(interner.IntersectionKey); ok {
			for _, m := range c.b.In.TypeList(i.Members) {
				if c.IsSubtype(m, target, mode) {
					return true
				}
			}
			return false
		}
	}
	if targetOk {
		if u, ok := targetKey.(interner.UnionKey); ok {
			for _, m := range c.b.In.TypeList(u.Members) {
				if c.IsSubtype(source, m, mode) {
					return true
				}
			}
			return false
		}
		if i, ok := targetKey.(interner.IntersectionKey); ok {
			for _, m := range c.b.In.TypeList(i.Members) {
				if !c.IsSubtype(source, m, mode) {
					return false
				}
			}
			return true
		}
	}

	if reduced, ok := c.reduceLazyForm(source, target, mode); ok {
		return reduced
	}

	if !sourceOk || !targetOk {
		return c.checkIntrinsicOrUnresolved(source, target, sourceOk, sourceKey, targetOk, targetKey, mode)
	}

	return c.dispatchStructural(source, sourceKey, target, targetKey, mode)
}

func (c *Checker) checkIntrinsicOrUnresolved(source, target types.TypeId, sourceOk bool, sourceKey interner.TypeKey, targetOk bool, targetKey interner.TypeKey, mode Mode) bool {
	if !sourceOk && !targetOk {
		return c.checkIntrinsicSubtype(source, target)
	}
	if !sourceOk {
		// source is a reserved primitive, target is a compound form: only
		// the apparent-primitive-shape path can possibly match, and that
		// only applies against Object-shaped targets.
		if obj, ok := targetKey.(interner.ObjectKey); ok {
			return c.checkApparentPrimitiveAgainstObject(source, c.b.In.ObjectShape(obj.Shape), mode)
		}
		return false
	}
	// target is a reserved primitive, source is a compound form: a literal
	// (or template-literal) type is still a subtype of its bare primitive,
	// e.g. "a" <: string, 1n <: bigint, `${string}` <: string.
	if kind, ok := apparentPrimitiveKind(c.b, source, sourceKey); ok && apparentKindToTypeID(kind) == target {
		return true
	}
	return false
}

func (c *Checker) checkIntrinsicSubtype(source, target types.TypeId) bool {
	if source == target {
		return true
	}
	if source == interner.Undefined && target == interner.Void {
		return true
	}
	return false
}
