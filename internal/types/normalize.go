package types

import "github.com/gotsc/gotsc/internal/interner"

// Union interns the normalized union of members per spec.md §4.B:
//   - nested unions are flattened one level before dedup
//   - duplicate members (by TypeId, post-flatten) collapse
//   - Never is absorbed (dropped unless it is the only member)
//   - Any absorbs the whole union to Any
//   - a one-member union is that member
//   - an empty union is Never
//
// Member order is otherwise preserved (first occurrence wins) so that two
// unions built from the same members in the same order intern identically;
// callers that need order-independent identity should sort before calling.
func (b *Builder) Union(members []TypeId) TypeId {
	flat := make([]TypeId, 0, len(members))
	for _, m := range members {
		flat = b.flattenUnionInto(flat, m)
	}

	seen := make(map[TypeId]bool, len(flat))
	out := flat[:0]
	for _, m := range flat {
		if m == Any {
			return Any
		}
		if m == Never {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}

	switch len(out) {
	case 0:
		return Never
	case 1:
		return out[0]
	default:
		list := b.In.InternTypeList(out)
		return b.intern(interner.UnionKey{Members: list})
	}
}

func (b *Builder) flattenUnionInto(into []TypeId, id TypeId) []TypeId {
	if key, ok := b.In.Lookup(id); ok {
		if u, ok := key.(interner.UnionKey); ok {
			for _, m := range b.In.TypeList(u.Members) {
				into = append(into, m)
			}
			return into
		}
	}
	return append(into, id)
}

// Intersection interns the normalized intersection of members per spec.md
// §4.B:
//   - nested intersections are flattened one level before dedup
//   - duplicate members collapse
//   - Unknown is absorbed (dropped unless it is the only member)
//   - Never annihilates the whole intersection to Never
//   - a one-member intersection is that member
//   - an empty intersection is Unknown (the top type, identity of ∩)
func (b *Builder) Intersection(members []TypeId) TypeId {
	flat := make([]TypeId, 0, len(members))
	for _, m := range members {
		flat = b.flattenIntersectionInto(flat, m)
	}

	seen := make(map[TypeId]bool, len(flat))
	out := flat[:0]
	for _, m := range flat {
		if m == Never {
			return Never
		}
		if m == Unknown {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}

	switch len(out) {
	case 0:
		return Unknown
	case 1:
		return out[0]
	default:
		list := b.In.InternTypeList(out)
		return b.intern(interner.IntersectionKey{Members: list})
	}
}

func (b *Builder) flattenIntersectionInto(into []TypeId, id TypeId) []TypeId {
	if key, ok := b.In.Lookup(id); ok {
		if i, ok := key.(interner.IntersectionKey); ok {
			for _, m := range b.In.TypeList(i.Members) {
				into = append(into, m)
			}
			return into
		}
	}
	return append(into, id)
}

// ReadonlyType interns readonly T per spec.md §4.B:
//   - readonly(readonly T) = readonly T (idempotent, not nested)
//   - readonly over a union distributes: readonly(A|B) = readonly A | readonly B
//   - readonly over Never/Any/Unknown/ErrorType is the operand unchanged
//     (modifiers are meaningless on those forms)
func (b *Builder) ReadonlyType(inner TypeId) TypeId {
	switch inner {
	case Never, Any, Unknown, ErrorType:
		return inner
	}

	key, ok := b.In.Lookup(inner)
	if !ok {
		return b.intern(interner.ReadonlyKey{Inner: inner})
	}

	switch k := key.(type) {
	case interner.ReadonlyKey:
		return inner
	case interner.UnionKey:
		members := b.In.TypeList(k.Members)
		distributed := make([]TypeId, len(members))
		for i, m := range members {
			distributed[i] = b.ReadonlyType(m)
		}
		return b.Union(distributed)
	default:
		return b.intern(interner.ReadonlyKey{Inner: inner})
	}
}

// IsReadonly reports whether id is a ReadonlyType wrapper and returns its
// inner type.
func (b *Builder) IsReadonly(id TypeId) (TypeId, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return 0, false
	}
	r, ok := key.(interner.ReadonlyKey)
	if !ok {
		return 0, false
	}
	return r.Inner, true
}
