package subtype

import (
	"testing"

	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

type noopResolver struct{}

func (noopResolver) Resolve(uint32) (types.TypeId, bool)                { return 0, false }
func (noopResolver) TypeParams(uint32) ([]interner.TypeParamInfo, bool) { return nil, false }

func newChecker() (*types.Builder, *Checker) {
	b := types.New(interner.New())
	apply := application.New(b, noopResolver{})
	return b, New(b, noopResolver{}, apply)
}

func TestReflexiveAndTop(t *testing.T) {
	_, c := newChecker()
	if !c.IsSubtype(types.String, types.String, Mode{}) {
		t.Fatalf("string <: string should hold")
	}
	if !c.IsSubtype(types.String, types.Any, Mode{}) {
		t.Fatalf("string <: any should hold")
	}
	if !c.IsSubtype(types.Never, types.String, Mode{}) {
		t.Fatalf("never <: string should hold")
	}
	if c.IsSubtype(types.String, types.Never, Mode{}) {
		t.Fatalf("string <: never should not hold")
	}
	if !c.IsSubtype(types.String, types.Unknown, Mode{}) {
		t.Fatalf("string <: unknown should hold")
	}
	if c.IsSubtype(types.Unknown, types.String, Mode{}) {
		t.Fatalf("unknown <: string should not hold")
	}
}

func TestUndefinedIsSubtypeOfVoid(t *testing.T) {
	_, c := newChecker()
	if !c.IsSubtype(types.Undefined, types.Void, Mode{}) {
		t.Fatalf("undefined <: void should hold")
	}
	if c.IsSubtype(types.Void, types.Undefined, Mode{}) {
		t.Fatalf("void <: undefined should not hold")
	}
}

func TestUnionSourceRequiresAllMembers(t *testing.T) {
	b, c := newChecker()
	u := b.Union([]types.TypeId{types.String, types.Number})
	if !c.IsSubtype(u, b.Union([]types.TypeId{types.String, types.Number, types.Boolean}), Mode{}) {
		t.Fatalf("(string|number) <: (string|number|boolean) should hold")
	}
	if c.IsSubtype(u, types.String, Mode{}) {
		t.Fatalf("(string|number) <: string should not hold")
	}
}

func TestUnionTargetRequiresSomeMember(t *testing.T) {
	b, c := newChecker()
	u := b.Union([]types.TypeId{types.String, types.Number})
	if !c.IsSubtype(types.String, u, Mode{}) {
		t.Fatalf("string <: (string|number) should hold")
	}
	if c.IsSubtype(types.Boolean, u, Mode{}) {
		t.Fatalf("boolean <: (string|number) should not hold")
	}
}

func TestObjectStructuralSubtyping(t *testing.T) {
	b, c := newChecker()
	wide := b.Object(interner.ObjectShape{
		Properties: []interner.Property{
			{Name: b.In.InternString("x"), ReadType: types.Number, Readonly: true},
		},
	})
	narrow := b.Object(interner.ObjectShape{
		Properties: []interner.Property{
			{Name: b.In.InternString("x"), ReadType: types.Number, Readonly: true},
			{Name: b.In.InternString("y"), ReadType: types.String, Readonly: true},
		},
	})
	if !c.IsSubtype(narrow, wide, Mode{}) {
		t.Fatalf("object with extra property should be assignable to narrower target")
	}
	if c.IsSubtype(wide, narrow, Mode{}) {
		t.Fatalf("object missing a required property should not be assignable")
	}
}

func TestMutablePropertyIsInvariantForObjectSubtyping(t *testing.T) {
	b, c := newChecker()
	str := b.Object(interner.ObjectShape{
		Properties: []interner.Property{{Name: b.In.InternString("x"), ReadType: types.String}},
	})
	wideUnion := b.Object(interner.ObjectShape{
		Properties: []interner.Property{{Name: b.In.InternString("x"), ReadType: b.Union([]types.TypeId{types.String, types.Number})}},
	})
	if c.IsSubtype(str, wideUnion, Mode{}) {
		t.Fatalf("a mutable property with a narrower type should not be assignable (invariance)")
	}
}

func TestArrayCovariance(t *testing.T) {
	b, c := newChecker()
	sub := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: b.In.InternString("x"), ReadType: types.Number, Readonly: true}}})
	sup := b.Object(interner.ObjectShape{})
	subArr := b.Array(sub)
	supArr := b.Array(sup)
	if !c.IsSubtype(subArr, supArr, Mode{}) {
		t.Fatalf("arrays should be covariant in their element type")
	}
}

func TestTupleAssignableToWiderTuple(t *testing.T) {
	b, c := newChecker()
	source := b.Tuple([]interner.TupleElement{{Type: types.Number}, {Type: types.String}})
	target := b.Tuple([]interner.TupleElement{{Type: types.Number}, {Type: types.String}, {Type: types.Boolean, Optional: true}})
	if !c.IsSubtype(source, target, Mode{}) {
		t.Fatalf("[number,string] <: [number,string,boolean?] should hold")
	}
}

func TestTupleRestAcceptsVariadicSource(t *testing.T) {
	b, c := newChecker()
	target := b.Tuple([]interner.TupleElement{{Type: types.Number}, {Type: types.String, Rest: true}})
	source := b.Tuple([]interner.TupleElement{{Type: types.Number}, {Type: types.String}, {Type: types.String}})
	if !c.IsSubtype(source, target, Mode{}) {
		t.Fatalf("[number,string,string] <: [number, ...string[]] should hold")
	}
}

func TestClosedTupleRejectsExtraElement(t *testing.T) {
	b, c := newChecker()
	source := b.Tuple([]interner.TupleElement{{Type: types.Number}, {Type: types.String}})
	target := b.Tuple([]interner.TupleElement{{Type: types.Number}})
	if c.IsSubtype(source, target, Mode{}) {
		t.Fatalf("[number,string] <: [number] should not hold (closed tuple)")
	}
}

func TestNeverArrayAssignableToOptionalTuple(t *testing.T) {
	b, c := newChecker()
	neverArr := b.Array(types.Never)
	target := b.Tuple([]interner.TupleElement{{Type: types.String, Optional: true}})
	if !c.IsSubtype(neverArr, target, Mode{}) {
		t.Fatalf("never[] <: [string?] should hold")
	}
	required := b.Tuple([]interner.TupleElement{{Type: types.String}})
	if c.IsSubtype(neverArr, required, Mode{}) {
		t.Fatalf("never[] <: [string] should not hold")
	}
}

func TestStringHasApparentMembers(t *testing.T) {
	b, c := newChecker()
	target := b.Object(interner.ObjectShape{
		Properties: []interner.Property{{Name: b.In.InternString("length"), ReadType: types.Number, Readonly: true}},
	})
	if !c.IsSubtype(types.String, target, Mode{}) {
		t.Fatalf("string should structurally satisfy { readonly length: number } via its apparent shape")
	}
}

func TestThisIsAssignableToObjectKeyword(t *testing.T) {
	_, c := newChecker()
	if !c.IsSubtype(types.This, interner.Object, Mode{}) {
		t.Fatalf("this should satisfy the bare object keyword type")
	}
}

func TestPrimitivesAreNotAssignableToObjectKeyword(t *testing.T) {
	_, c := newChecker()
	if c.IsSubtype(types.String, interner.Object, Mode{}) {
		t.Fatalf("string should not satisfy the bare object keyword type")
	}
}

func TestFunctionParameterContravarianceUnderStrictMode(t *testing.T) {
	b, c := newChecker()
	wideParam := b.Function(interner.CallSignature{Params: []interner.Param{{Type: b.Union([]types.TypeId{types.String, types.Number})}}, ReturnType: types.Void})
	narrowParam := b.Function(interner.CallSignature{Params: []interner.Param{{Type: types.String}}, ReturnType: types.Void})

	mode := Mode{StrictFunctionTypes: true}
	if !c.IsSubtype(wideParam, narrowParam, mode) {
		t.Fatalf("(string|number)=>void should be assignable to (string)=>void under strict contravariance")
	}
	if c.IsSubtype(narrowParam, wideParam, mode) {
		t.Fatalf("(string)=>void should not be assignable to (string|number)=>void under strict contravariance")
	}
}

func TestMethodParametersAreBivariant(t *testing.T) {
	b, c := newChecker()
	wideParam := b.Function(interner.CallSignature{Params: []interner.Param{{Type: b.Union([]types.TypeId{types.String, types.Number})}}, ReturnType: types.Void, IsMethod: true})
	narrowParam := b.Function(interner.CallSignature{Params: []interner.Param{{Type: types.String}}, ReturnType: types.Void, IsMethod: true})

	mode := Mode{StrictFunctionTypes: true}
	if !c.IsSubtype(narrowParam, wideParam, mode) {
		t.Fatalf("methods should compare parameters bivariantly even under strict_function_types")
	}
}

func TestReadonlyWrapsWithoutNarrowingStructure(t *testing.T) {
	b, c := newChecker()
	obj := b.Object(interner.ObjectShape{})
	ro := b.ReadonlyType(obj)
	if !c.IsSubtype(obj, ro, Mode{}) {
		t.Fatalf("T should be assignable to readonly T")
	}
	if !c.IsSubtype(ro, obj, Mode{}) {
		t.Fatalf("readonly T should be assignable to T (readonly only restricts writes)")
	}
}

func TestEnumMembersAreNominal(t *testing.T) {
	b, c := newChecker()
	a := b.Enum(1, types.Number)
	other := b.Enum(2, types.Number)
	if c.IsSubtype(a, other, Mode{}) {
		t.Fatalf("members of different enum defs should not be mutually assignable")
	}
	same := b.Enum(1, types.Number)
	if !c.IsSubtype(a, same, Mode{}) {
		t.Fatalf("members of the same enum def should be assignable")
	}
}

func TestMemoStabilityAcrossCalls(t *testing.T) {
	b, c := newChecker()
	obj := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: b.In.InternString("x"), ReadType: types.Number, Readonly: true}}})
	first := c.IsSubtype(obj, obj, Mode{})
	second := c.IsSubtype(obj, obj, Mode{})
	if first != second || !first {
		t.Fatalf("memoized result should be stable across repeated calls")
	}
}
