package interner

import "testing"

func TestInternStability(t *testing.T) {
	in := New()
	a := in.Intern(ArrayKey{Elem: String})
	b := in.Intern(ArrayKey{Elem: String})
	if a != b {
		t.Fatalf("intern(key) != intern(key): %v != %v", a, b)
	}
}

func TestInternDistinctForDifferentKeys(t *testing.T) {
	in := New()
	a := in.Intern(ArrayKey{Elem: String})
	b := in.Intern(ArrayKey{Elem: Number})
	if a == b {
		t.Fatalf("expected distinct ids for Array<string> and Array<number>")
	}
}

func TestReservedIdsNeverReinterned(t *testing.T) {
	if IsReserved(Any) != true || IsReserved(Never) != true {
		t.Fatalf("expected primitive ids reserved")
	}
	in := New()
	if _, ok := in.Lookup(Any); ok {
		t.Fatalf("reserved ids should not resolve through Lookup")
	}
}

func TestAtomInterning(t *testing.T) {
	in := New()
	a := in.InternString("foo")
	b := in.InternString("foo")
	if a != b {
		t.Fatalf("InternString not stable across calls with identical text")
	}
	if in.AtomText(a) != "foo" {
		t.Fatalf("AtomText roundtrip failed: got %q", in.AtomText(a))
	}
}

func TestObjectShapeContentAddressed(t *testing.T) {
	in := New()
	name := in.InternString("x")
	shapeA := ObjectShape{Properties: []Property{{Name: name, ReadType: String}}}
	shapeB := ObjectShape{Properties: []Property{{Name: name, ReadType: String}}}
	idA := in.InternObjectShape(shapeA)
	idB := in.InternObjectShape(shapeB)
	if idA != idB {
		t.Fatalf("structurally identical object shapes must share an id")
	}
}

func TestTypeListDedup(t *testing.T) {
	in := New()
	a := in.InternTypeList([]TypeId{String, Number})
	b := in.InternTypeList([]TypeId{String, Number})
	c := in.InternTypeList([]TypeId{Number, String})
	if a != b {
		t.Fatalf("identical type lists must share an id")
	}
	if a == c {
		t.Fatalf("order matters for type lists (union/intersection normalize before interning, not here)")
	}
}
