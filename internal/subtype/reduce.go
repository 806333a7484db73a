package subtype

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subst"
	"github.com/gotsc/gotsc/internal/types"
)

// reduceLazyForm gives Conditional/Mapped/IndexAccess/KeyOf/StringIntrinsic
// types a chance to reduce to a concrete form before the structural
// dispatch table gives up on them. These forms are intentionally not
// evaluated at construction time (spec.md §4.B), so the subtype checker is
// where most callers first force them.
//
// Full conditional-type reduction requires binding any `infer` positions
// by unifying check against extends, which is package inference's job.
// Conditional reduction here binds no infer slots: it picks a branch by a
// plain subtype test of check against extends, distributing over the
// members of a union check when the conditional is distributive.
func (c *Checker) reduceLazyForm(source, target types.TypeId, mode Mode) (result bool, handled bool) {
	if reduced, ok := c.tryReduce(source); ok {
		return c.IsSubtype(reduced, target, mode), true
	}
	if reduced, ok := c.tryReduce(target); ok {
		return c.IsSubtype(source, reduced, mode), true
	}
	return false, false
}

func (c *Checker) tryReduce(id types.TypeId) (types.TypeId, bool) {
	key, ok := c.b.Lookup(id)
	if !ok {
		return id, false
	}

	switch k := key.(type) {
	case interner.ConditionalKey:
		return c.reduceConditional(k), true
	case interner.MappedKey:
		return c.reduceMapped(k), true
	case interner.IndexAccessKey:
		return c.reduceIndexAccess(k), true
	case interner.KeyOfKey:
		return c.reduceKeyOf(k.Operand), true
	default:
		return id, false
	}
}

func (c *Checker) reduceConditional(k interner.ConditionalKey) types.TypeId {
	if k.Distributive {
		if members, ok := unionMembers(c.b, k.Check); ok {
			branches := make([]types.TypeId, len(members))
			for i, m := range members {
				branches[i] = c.reduceConditionalOnce(m, k.Extends, k.TrueBranch, k.FalseBranch)
			}
			return c.b.Union(branches)
		}
	}
	return c.reduceConditionalOnce(k.Check, k.Extends, k.TrueBranch, k.FalseBranch)
}

func (c *Checker) reduceConditionalOnce(check, extends, trueBranch, falseBranch types.TypeId) types.TypeId {
	if c.IsSubtype(check, extends, Mode{}) {
		return trueBranch
	}
	return falseBranch
}

func unionMembers(b *types.Builder, id types.TypeId) ([]types.TypeId, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return nil, false
	}
	u, ok := key.(interner.UnionKey)
	if !ok {
		return nil, false
	}
	return b.In.TypeList(u.Members), true
}

// reduceMapped realizes `{ [ivar in constraint]: template }` into a
// concrete Object shape when constraint reduces to a finite set of
// literal string keys (the common case: `keyof SomeObject`, or an
// explicit union of string literals). Anything else degrades to the
// ERROR sentinel rather than silently mismatching or panicking.
func (c *Checker) reduceMapped(k interner.MappedKey) types.TypeId {
	keys, ok := c.literalStringKeysOf(k.Constraint)
	if !ok {
		return types.ErrorType
	}

	props := make([]interner.Property, 0, len(keys))
	for _, lit := range keys {
		sub := subst.New()
		sub.Bind(k.IVar, lit)
		propType := subst.Instantiate(c.b, k.Template, sub)

		name, ok := literalStringAtom(c.b, lit)
		if !ok {
			continue
		}
		props = append(props, interner.Property{
			Name:     name,
			ReadType: propType,
			WriteType: propType,
			Optional: k.OptionalMod == interner.ModAdd,
			Readonly: k.ReadonlyMod == interner.ModAdd,
		})
	}
	return c.b.Object(interner.ObjectShape{Properties: props})
}

func literalStringAtom(b *types.Builder, id types.TypeId) (interner.Atom, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return 0, false
	}
	l, ok := key.(interner.LiteralStringKey)
	if !ok {
		return 0, false
	}
	return l.Value, true
}

// literalStringKeysOf expands constraint into its finite set of literal
// string-type members, used by both KeyOf reduction callers and Mapped
// realization. Supports a bare literal, a union of literals, or `keyof`
// applied to an Object shape.
func (c *Checker) literalStringKeysOf(constraint types.TypeId) ([]types.TypeId, bool) {
	if _, ok := literalStringAtom(c.b, constraint); ok {
		return []types.TypeId{constraint}, true
	}
	if members, ok := unionMembers(c.b, constraint); ok {
		out := make([]types.TypeId, 0, len(members))
		for _, m := range members {
			if _, ok := literalStringAtom(c.b, m); !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	if key, ok := c.b.Lookup(constraint); ok {
		if kk, ok := key.(interner.KeyOfKey); ok {
			reduced := c.reduceKeyOf(kk.Operand)
			if reduced == types.ErrorType {
				return nil, false
			}
			return c.literalStringKeysOf(reduced)
		}
	}
	return nil, false
}

// reduceKeyOf builds the union of literal string types naming an object
// shape's properties (plus `number`/`string` for its index signatures).
// Degrades to ERROR for any operand this package can't yet see through
// (a type parameter, an unresolved application, ...).
func (c *Checker) reduceKeyOf(operand types.TypeId) types.TypeId {
	key, ok := c.b.Lookup(operand)
	if !ok {
		return types.ErrorType
	}
	shape, ok := sourceObjectView(c.b, operand, key)
	if !ok {
		return types.ErrorType
	}

	members := make([]types.TypeId, 0, len(shape.Properties))
	for _, p := range shape.Properties {
		members = append(members, c.b.LiteralString(c.b.In.AtomText(p.Name)))
	}
	if shape.StringIndex != nil {
		members = append(members, interner.String)
	}
	if shape.NumberIndex != nil {
		members = append(members, interner.Number)
	}
	return c.b.Union(members)
}

func (c *Checker) reduceIndexAccess(k interner.IndexAccessKey) types.TypeId {
	objKey, ok := c.b.Lookup(k.Object)
	if !ok {
		return types.ErrorType
	}
	shape, ok := sourceObjectView(c.b, k.Object, objKey)
	if !ok {
		return types.ErrorType
	}

	if keys, ok := c.literalStringKeysOf(k.Key); ok {
		members := make([]types.TypeId, 0, len(keys))
		for _, lit := range keys {
			name, ok := literalStringAtom(c.b, lit)
			if !ok {
				return types.ErrorType
			}
			p, ok := findProperty(shape, name)
			if !ok {
				if shape.StringIndex != nil {
					members = append(members, shape.StringIndex.ValueType)
					continue
				}
				return types.ErrorType
			}
			members = append(members, p.ReadType)
		}
		return c.b.Union(members)
	}

	return types.ErrorType
}
