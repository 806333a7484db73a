package propaccess

import (
	"testing"

	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

type stubResolver struct {
	bodies map[uint32]types.TypeId
}

func (s stubResolver) Resolve(id uint32) (types.TypeId, bool) {
	t, ok := s.bodies[id]
	return t, ok
}
func (stubResolver) TypeParams(uint32) ([]interner.TypeParamInfo, bool) { return nil, false }

func newEvaluator(mode subtype.Mode) (*types.Builder, *Evaluator, stubResolver) {
	b := types.New(interner.New())
	resolver := stubResolver{bodies: make(map[uint32]types.TypeId)}
	apply := application.New(b, resolver)
	sub := subtype.New(b, resolver, apply)
	return b, New(b, apply, sub, resolver, mode), resolver
}

func TestAccessOnAnyAndErrorShortCircuit(t *testing.T) {
	_, e, _ := newEvaluator(subtype.Mode{})
	if r := e.Access(types.Any, 0); r.Kind != Success || r.Type != types.Any {
		t.Fatalf("expected Success(any), got %+v", r)
	}
	if r := e.Access(types.ErrorType, 0); r.Kind != Success || r.Type != types.Any {
		t.Fatalf("expected Success(any) for error input, got %+v", r)
	}
}

func TestAccessOnNeverIsNever(t *testing.T) {
	_, e, _ := newEvaluator(subtype.Mode{})
	r := e.Access(types.Never, 0)
	if r.Kind != Success || r.Type != types.Never {
		t.Fatalf("expected Success(never), got %+v", r)
	}
}

func TestAccessOnNullishFails(t *testing.T) {
	_, e, _ := newEvaluator(subtype.Mode{})
	r := e.Access(types.Undefined, 0)
	if r.Kind != PossiblyNullOrUndefined || r.Cause != types.Undefined {
		t.Fatalf("expected PossiblyNullOrUndefined(undefined), got %+v", r)
	}
}

func TestAccessStringLengthViaApparentShape(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	r := e.Access(types.String, b.In.InternString("length"))
	if r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected Success(number) for string.length, got %+v", r)
	}
}

func TestAccessObjectProperty(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	obj := b.Object(interner.ObjectShape{
		Properties: []interner.Property{{Name: nameAtom, ReadType: types.String}},
	})
	r := e.Access(obj, nameAtom)
	if r.Kind != Success || r.Type != types.String {
		t.Fatalf("expected Success(string), got %+v", r)
	}
}

func TestAccessOptionalPropertyLiftsToUnionWithUndefined(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	obj := b.Object(interner.ObjectShape{
		Properties: []interner.Property{{Name: nameAtom, ReadType: types.String, Optional: true}},
	})
	r := e.Access(obj, nameAtom)
	if r.Kind != Success {
		t.Fatalf("expected Success, got %+v", r)
	}
	members, ok := b.Lookup(r.Type)
	u, uok := members.(interner.UnionKey)
	if !ok || !uok {
		t.Fatalf("expected the optional property's type to be a union, got %+v", r)
	}
	list := b.In.TypeList(u.Members)
	if len(list) != 2 {
		t.Fatalf("expected a two-member union, got %v", list)
	}
}

func TestAccessMissingPropertyFails(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	obj := b.Object(interner.ObjectShape{})
	r := e.Access(obj, b.In.InternString("missing"))
	if r.Kind != PropertyNotFound {
		t.Fatalf("expected PropertyNotFound, got %+v", r)
	}
}

func TestAccessStringIndexSignatureFallback(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	obj := b.Object(interner.ObjectShape{StringIndex: &interner.IndexSignature{ValueType: types.Number}})
	r := e.Access(obj, b.In.InternString("anything"))
	if r.Kind != Success || r.Type != types.Number || !r.FromIndexSignature {
		t.Fatalf("expected Success(number, fromIndexSignature), got %+v", r)
	}
}

func TestNoUncheckedIndexedAccessAddsUndefined(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{NoUncheckedIndexedAccess: true})
	obj := b.Object(interner.ObjectShape{StringIndex: &interner.IndexSignature{ValueType: types.Number}})
	r := e.Access(obj, b.In.InternString("anything"))
	if r.Kind != Success {
		t.Fatalf("expected Success, got %+v", r)
	}
	key, _ := b.Lookup(r.Type)
	if _, ok := key.(interner.UnionKey); !ok {
		t.Fatalf("expected the index read to add | undefined under NoUncheckedIndexedAccess, got %+v", r)
	}
}

func TestAccessUnionRequiresAllMembersToSucceed(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	withName := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: nameAtom, ReadType: types.String}}})
	without := b.Object(interner.ObjectShape{})
	u := b.Union([]types.TypeId{withName, without})
	r := e.Access(u, nameAtom)
	if r.Kind != PropertyNotFound {
		t.Fatalf("expected the whole union access to fail when one member lacks the property, got %+v", r)
	}
}

func TestAccessUnionOfSuccessesUnionsResults(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	a := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: nameAtom, ReadType: types.String}}})
	bb := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: nameAtom, ReadType: types.Number}}})
	u := b.Union([]types.TypeId{a, bb})
	r := e.Access(u, nameAtom)
	if r.Kind != Success {
		t.Fatalf("expected Success, got %+v", r)
	}
	key, _ := b.Lookup(r.Type)
	if _, ok := key.(interner.UnionKey); !ok {
		t.Fatalf("expected string|number union result, got %+v", r)
	}
}

func TestAccessIntersectionFirstProviderWins(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	without := b.Object(interner.ObjectShape{})
	withName := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: nameAtom, ReadType: types.String}}})
	i := b.Intersection([]types.TypeId{without, withName})
	r := e.Access(i, nameAtom)
	if r.Kind != Success || r.Type != types.String {
		t.Fatalf("expected the second intersection member to supply the property, got %+v", r)
	}
}

func TestAccessArrayLength(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	arr := b.Array(types.String)
	r := e.Access(arr, b.In.InternString("length"))
	if r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected Success(number), got %+v", r)
	}
}

func TestAccessTupleLengthIsLiteralUnionWhenClosed(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	tup := b.Tuple([]interner.TupleElement{{Type: types.String}, {Type: types.Number, Optional: true}})
	r := e.Access(tup, b.In.InternString("length"))
	if r.Kind != Success {
		t.Fatalf("expected Success, got %+v", r)
	}
	key, _ := b.Lookup(r.Type)
	if _, ok := key.(interner.UnionKey); !ok {
		t.Fatalf("expected a closed tuple's length to be a literal union, got %+v", r)
	}
}

func TestAccessTupleLengthIsNumberWhenOpen(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	tup := b.Tuple([]interner.TupleElement{{Type: types.String}, {Type: types.Number, Rest: true}})
	r := e.Access(tup, b.In.InternString("length"))
	if r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected Success(number) for an open tuple, got %+v", r)
	}
}

func TestAccessTypeParameterUsesConstraint(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	constraint := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: nameAtom, ReadType: types.String}}})
	tp := b.TypeParameter(interner.TypeParamInfo{Name: b.In.InternString("T"), Constraint: constraint})
	r := e.Access(tp, nameAtom)
	if r.Kind != Success || r.Type != types.String {
		t.Fatalf("expected Success(string) via the type parameter's constraint, got %+v", r)
	}
}

func TestAccessUnconstrainedTypeParameterFallsBackToUnknown(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	tp := b.TypeParameter(interner.TypeParamInfo{Name: b.In.InternString("T")})
	r := e.Access(tp, b.In.InternString("anything"))
	if r.Kind != Success || r.Type != types.Unknown {
		t.Fatalf("expected Success(unknown) for an unconstrained type parameter, got %+v", r)
	}
}

func TestAccessLazyResolvesThenRecurses(t *testing.T) {
	b, e, resolver := newEvaluator(subtype.Mode{})
	nameAtom := b.In.InternString("name")
	body := b.Object(interner.ObjectShape{Properties: []interner.Property{{Name: nameAtom, ReadType: types.String}}})
	resolver.bodies[7] = body

	lazy := b.In.Intern(interner.LazyKey{Def: 7})
	r := e.Access(lazy, nameAtom)
	if r.Kind != Success || r.Type != types.String {
		t.Fatalf("expected Success(string) through the Lazy indirection, got %+v", r)
	}
}

func TestAccessLazyCycleProducesInputUnchanged(t *testing.T) {
	b, e, resolver := newEvaluator(subtype.Mode{})
	lazy := b.In.Intern(interner.LazyKey{Def: 9})
	resolver.bodies[9] = lazy

	r := e.Access(lazy, b.In.InternString("anything"))
	if r.Kind != Success || r.Type != lazy {
		t.Fatalf("expected a self-referential Lazy to resolve to itself unchanged, got %+v", r)
	}
}

func TestAccessCallableWellKnownMembers(t *testing.T) {
	b, e, _ := newEvaluator(subtype.Mode{})
	fn := b.Function(interner.CallSignature{ReturnType: types.Void})
	if r := e.Access(fn, b.In.InternString("length")); r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected Success(number) for fn.length, got %+v", r)
	}
	if r := e.Access(fn, b.In.InternString("call")); r.Kind != Success {
		t.Fatalf("expected Success for fn.call, got %+v", r)
	}
}
