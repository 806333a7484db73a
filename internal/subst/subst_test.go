package subst

import (
	"testing"

	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

func newBuilder() *types.Builder {
	return types.New(interner.New())
}

func TestInstantiateSubstitutesTypeParameter(t *testing.T) {
	b := newBuilder()
	tName := b.In.InternString("T")
	T := b.TypeParameter(interner.TypeParamInfo{Name: tName})
	arr := b.Array(T)

	s := New()
	s.Bind(tName, types.String)

	got := Instantiate(b, arr, s)
	want := b.Array(types.String)
	if got != want {
		t.Fatalf("Instantiate(Array<T>, T=string) = %v, want %v", got, want)
	}
}

func TestInstantiateLeavesUnboundIdentity(t *testing.T) {
	b := newBuilder()
	arr := b.Array(types.String)
	s := New()
	s.Bind(b.In.InternString("Unused"), types.Number)

	got := Instantiate(b, arr, s)
	if got != arr {
		t.Fatalf("substitution with no matching binder should be identity: %v != %v", got, arr)
	}
}

func TestInstantiateLeavesLazyOpaque(t *testing.T) {
	b := newBuilder()
	lazy := b.Lazy(7)
	tName := b.In.InternString("T")
	s := New()
	s.Bind(tName, types.String)

	if got := Instantiate(b, lazy, s); got != lazy {
		t.Fatalf("Instantiate must not unwrap Lazy: %v != %v", got, lazy)
	}
}

func TestFromArgsZipsLeftToRight(t *testing.T) {
	b := newBuilder()
	tName := b.In.InternString("T")
	uName := b.In.InternString("U")
	params := []interner.TypeParamInfo{{Name: tName}, {Name: uName, Default: types.Boolean}}

	s := FromArgs(params, []types.TypeId{types.String})
	got, ok := s.Lookup(tName)
	if !ok || got != types.String {
		t.Fatalf("T should bind to string")
	}
	got, ok = s.Lookup(uName)
	if !ok || got != types.Boolean {
		t.Fatalf("U should fall back to its default type")
	}
}

func TestMappedTypeMasksShadowedIterationVariable(t *testing.T) {
	b := newBuilder()
	outerName := b.In.InternString("K")
	outer := b.TypeParameter(interner.TypeParamInfo{Name: outerName})

	mapped := b.Mapped(outerName, types.String, interner.NoType, outer, interner.ModNone, interner.ModNone)

	s := New()
	s.Bind(outerName, types.Number)

	got := Instantiate(b, mapped, s)
	// The template's occurrence of K refers to the mapped type's own
	// iteration variable (same atom), not the outer substitution's K, so it
	// must be left untouched.
	if got != mapped {
		t.Fatalf("mapped iteration variable should shadow the outer substitution: got %v, want %v", got, mapped)
	}
}
