package types

import (
	"testing"

	"github.com/gotsc/gotsc/internal/interner"
)

func newBuilder() *Builder {
	return New(interner.New())
}

func TestUnionOfOneMemberIsThatMember(t *testing.T) {
	b := newBuilder()
	if got := b.Union([]TypeId{String}); got != String {
		t.Fatalf("Union([string]) = %v, want string", got)
	}
}

func TestUnionEmptyIsNever(t *testing.T) {
	b := newBuilder()
	if got := b.Union(nil); got != Never {
		t.Fatalf("Union(nil) = %v, want never", got)
	}
}

func TestUnionAbsorbsNever(t *testing.T) {
	b := newBuilder()
	if got := b.Union([]TypeId{String, Never}); got != String {
		t.Fatalf("Union([string, never]) = %v, want string", got)
	}
}

func TestUnionAnyAbsorbsEverything(t *testing.T) {
	b := newBuilder()
	if got := b.Union([]TypeId{String, Any, Number}); got != Any {
		t.Fatalf("Union([string, any, number]) = %v, want any", got)
	}
}

func TestUnionCollapsesDuplicates(t *testing.T) {
	b := newBuilder()
	a := b.Union([]TypeId{String, Number})
	c := b.Union([]TypeId{String, Number, String})
	if a != c {
		t.Fatalf("duplicate members should collapse: %v != %v", a, c)
	}
}

func TestUnionFlattensNested(t *testing.T) {
	b := newBuilder()
	inner := b.Union([]TypeId{String, Number})
	flat := b.Union([]TypeId{inner, Boolean})
	direct := b.Union([]TypeId{String, Number, Boolean})
	if flat != direct {
		t.Fatalf("nested union should flatten to the same id: %v != %v", flat, direct)
	}
}

func TestIntersectionOfOneMemberIsThatMember(t *testing.T) {
	b := newBuilder()
	if got := b.Intersection([]TypeId{String}); got != String {
		t.Fatalf("Intersection([string]) = %v, want string", got)
	}
}

func TestIntersectionEmptyIsUnknown(t *testing.T) {
	b := newBuilder()
	if got := b.Intersection(nil); got != Unknown {
		t.Fatalf("Intersection(nil) = %v, want unknown", got)
	}
}

func TestIntersectionAbsorbsUnknown(t *testing.T) {
	b := newBuilder()
	if got := b.Intersection([]TypeId{String, Unknown}); got != String {
		t.Fatalf("Intersection([string, unknown]) = %v, want string", got)
	}
}

func TestIntersectionNeverAnnihilates(t *testing.T) {
	b := newBuilder()
	if got := b.Intersection([]TypeId{String, Never}); got != Never {
		t.Fatalf("Intersection([string, never]) = %v, want never", got)
	}
}

func TestReadonlyIdempotent(t *testing.T) {
	b := newBuilder()
	str := b.Object(interner.ObjectShape{})
	once := b.ReadonlyType(str)
	twice := b.ReadonlyType(once)
	if once != twice {
		t.Fatalf("readonly(readonly T) should equal readonly T: %v != %v", once, twice)
	}
}

func TestReadonlyDistributesOverUnion(t *testing.T) {
	b := newBuilder()
	a := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: b.In.InternString("a"), ReadType: String}}})
	c := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: b.In.InternString("c"), ReadType: Number}}})
	u := b.Union([]TypeId{a, c})

	got := b.ReadonlyType(u)
	want := b.Union([]TypeId{b.ReadonlyType(a), b.ReadonlyType(c)})
	if got != want {
		t.Fatalf("readonly should distribute over union: %v != %v", got, want)
	}
}

func TestReadonlyOnNeverAnyUnknownErrorIsNoop(t *testing.T) {
	b := newBuilder()
	for _, id := range []TypeId{Never, Any, Unknown, ErrorType} {
		if got := b.ReadonlyType(id); got != id {
			t.Fatalf("readonly(%v) = %v, want unchanged", id, got)
		}
	}
}

func TestInternStabilityForCompoundForms(t *testing.T) {
	b := newBuilder()
	a := b.Array(String)
	c := b.Array(String)
	if a != c {
		t.Fatalf("Array(string) should intern stably: %v != %v", a, c)
	}
}

func TestFunctionAndCallableAreDistinctTypeIds(t *testing.T) {
	b := newBuilder()
	sig := interner.CallSignature{ReturnType: Void}
	fn := b.Function(sig)
	cal := b.Callable(interner.CallableShape{CallSignatures: []interner.CallSignature{sig}})
	if fn == cal {
		t.Fatalf("Function and single-signature Callable must intern to distinct TypeIds")
	}
	fnShape, ok := b.CallableShapeOf(fn)
	if !ok {
		t.Fatalf("CallableShapeOf(Function) should succeed")
	}
	calShape, ok := b.CallableShapeOf(cal)
	if !ok {
		t.Fatalf("CallableShapeOf(Callable) should succeed")
	}
	if len(fnShape.CallSignatures) != 1 || len(calShape.CallSignatures) != 1 {
		t.Fatalf("expected one call signature on each shape view")
	}
}

func TestTupleRoundTrip(t *testing.T) {
	b := newBuilder()
	elems := []interner.TupleElement{
		{Type: String},
		{Type: Number, Optional: true},
		{Type: b.Array(Boolean), Rest: true},
	}
	id := b.Tuple(elems)
	got, ok := b.TupleElements(id)
	if !ok {
		t.Fatalf("TupleElements should succeed for a tuple id")
	}
	if len(got) != len(elems) {
		t.Fatalf("tuple element count mismatch: got %d want %d", len(got), len(elems))
	}
}

func TestApplicationRoundTrip(t *testing.T) {
	b := newBuilder()
	base := b.Lazy(42)
	id := b.Application(base, []TypeId{String, Number})
	gotBase, gotArgs, ok := b.ApplicationInfo(id)
	if !ok || gotBase != base || len(gotArgs) != 2 {
		t.Fatalf("ApplicationInfo roundtrip failed")
	}
}
