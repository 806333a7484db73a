package calleval

import (
	"testing"

	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

type noopResolver struct{}

func (noopResolver) Resolve(uint32) (types.TypeId, bool)                { return 0, false }
func (noopResolver) TypeParams(uint32) ([]interner.TypeParamInfo, bool) { return nil, false }

func newEvaluator() (*types.Builder, *Evaluator) {
	b := types.New(interner.New())
	apply := application.New(b, noopResolver{})
	sub := subtype.New(b, noopResolver{}, apply)
	return b, New(b, apply, sub, subtype.Mode{})
}

func callable(b *types.Builder, sigs ...interner.CallSignature) types.TypeId {
	return b.Callable(interner.CallableShape{CallSignatures: sigs})
}

func constructable(b *types.Builder, sigs ...interner.CallSignature) types.TypeId {
	return b.Callable(interner.CallableShape{ConstructSignatures: sigs})
}

func TestCallShortCircuitsOnAny(t *testing.T) {
	_, e := newEvaluator()
	r := e.Call(types.Any, nil, Args{}, false)
	if r.Kind != Success || r.Type != types.Any {
		t.Fatalf("expected Success(any), got %+v", r)
	}
}

func TestCallShortCircuitsOnError(t *testing.T) {
	_, e := newEvaluator()
	r := e.Call(types.ErrorType, nil, Args{}, false)
	if r.Kind != Success || r.Type != types.ErrorType {
		t.Fatalf("expected Success(error), got %+v", r)
	}
}

func TestCallShortCircuitsOnNever(t *testing.T) {
	_, e := newEvaluator()
	r := e.Call(types.Never, nil, Args{}, false)
	if r.Kind != Success || r.Type != types.Never {
		t.Fatalf("expected Success(never), got %+v", r)
	}
}

func TestOptionalChainPeelsNullishToUndefined(t *testing.T) {
	b, e := newEvaluator()
	callee := b.Union([]types.TypeId{types.Undefined, types.Null})
	r := e.Call(callee, nil, Args{}, true)
	if r.Kind != Success || r.Type != interner.Undefined {
		t.Fatalf("expected Success(undefined) for an all-nullish optional chain, got %+v", r)
	}
}

func TestOptionalChainPeelsRemainderThenCalls(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{ReturnType: types.Number})
	callee := b.Union([]types.TypeId{fn, types.Undefined})
	r := e.Call(callee, nil, Args{}, true)
	if r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected Success(number) after peeling undefined, got %+v", r)
	}
}

func TestCallOnNonCallableIsNotCallable(t *testing.T) {
	_, e := newEvaluator()
	r := e.Call(types.String, nil, Args{}, false)
	if r.Kind != NotCallable {
		t.Fatalf("expected NotCallable, got %+v", r)
	}
}

func TestArgumentCountMismatchTooFew(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{
		Params:     []interner.Param{{Type: types.String}, {Type: types.Number}},
		ReturnType: types.Void,
	})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.String}}, false)
	if r.Kind != ArgumentCountMismatch || r.Min != 2 || r.Max != 2 || r.Actual != 1 {
		t.Fatalf("expected ArgumentCountMismatch(min=2,max=2,actual=1), got %+v", r)
	}
}

func TestArgumentCountMismatchTooMany(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{
		Params:     []interner.Param{{Type: types.String}},
		ReturnType: types.Void,
	})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.String, types.Number}}, false)
	if r.Kind != ArgumentCountMismatch || r.Actual != 2 {
		t.Fatalf("expected ArgumentCountMismatch(actual=2), got %+v", r)
	}
}

func TestRestParameterAllowsUnboundedArgs(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{
		Params:     []interner.Param{{Type: types.Number, Rest: true}},
		ReturnType: types.Void,
	})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.Number, types.Number, types.Number}}, false)
	if r.Kind != Success {
		t.Fatalf("expected a rest parameter to accept any number of matching args, got %+v", r)
	}
}

func TestTupleTypedRestParameterAcceptsMatchingFixedAndVariadicArgs(t *testing.T) {
	b, e := newEvaluator()
	restType := b.Tuple([]interner.TupleElement{
		{Type: types.Number},
		{Type: b.Array(types.String), Rest: true},
	})
	fn := callable(b, interner.CallSignature{
		Params:     []interner.Param{{Type: restType, Rest: true}},
		ReturnType: types.Void,
	})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.Number, types.String, types.String}}, false)
	if r.Kind != Success {
		t.Fatalf("expected (1, \"a\", \"b\") to match [number, ...string[]], got %+v", r)
	}
}

func TestTupleTypedRestParameterRejectsMismatchedVariadicArgument(t *testing.T) {
	b, e := newEvaluator()
	restType := b.Tuple([]interner.TupleElement{
		{Type: types.Number},
		{Type: b.Array(types.String), Rest: true},
	})
	fn := callable(b, interner.CallSignature{
		Params:     []interner.Param{{Type: restType, Rest: true}},
		ReturnType: types.Void,
	})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.Number, types.Number}}, false)
	if r.Kind != ArgumentTypeMismatch {
		t.Fatalf("expected ArgumentTypeMismatch for (1, 2) against [number, ...string[]], got %+v", r)
	}
	if r.Index != 1 || r.Expected != types.String || r.ArgType != types.Number {
		t.Fatalf("expected {index=1, expected=string, actual=number}, got %+v", r)
	}
}

func TestArgumentTypeMismatchMapsToOriginalIndex(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{
		Params:     []interner.Param{{Type: types.String}, {Type: types.Number}},
		ReturnType: types.Void,
	})
	args := Args{
		Types:         []types.TypeId{types.String, types.String},
		OriginalIndex: []int{0, 3},
	}
	r := e.Call(fn, nil, args, false)
	if r.Kind != ArgumentTypeMismatch {
		t.Fatalf("expected ArgumentTypeMismatch, got %+v", r)
	}
	if r.Index != 3 {
		t.Fatalf("expected the mismatch to map back to original argument index 3, got %d", r.Index)
	}
}

func TestSuccessfulGenericCallInfersTypeParameter(t *testing.T) {
	b, e := newEvaluator()
	tName := b.In.InternString("T")
	tParam := b.TypeParameter(interner.TypeParamInfo{Name: tName})
	fn := callable(b, interner.CallSignature{
		TypeParams: []interner.TypeParamInfo{{Name: tName}},
		Params:     []interner.Param{{Type: tParam}},
		ReturnType: tParam,
	})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.Number}}, false)
	if r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected T to be inferred as number and returned, got %+v", r)
	}
}

func TestExplicitTypeArgumentsOverrideInference(t *testing.T) {
	b, e := newEvaluator()
	tName := b.In.InternString("T")
	tParam := b.TypeParameter(interner.TypeParamInfo{Name: tName})
	fn := callable(b, interner.CallSignature{
		TypeParams: []interner.TypeParamInfo{{Name: tName}},
		Params:     []interner.Param{{Type: tParam}},
		ReturnType: tParam,
	})
	r := e.Call(fn, []types.TypeId{types.String}, Args{Types: []types.TypeId{types.String}}, false)
	if r.Kind != Success || r.Type != types.String {
		t.Fatalf("expected the explicit type argument to win, got %+v", r)
	}
}

func TestNoOverloadMatchWrapsMultipleFailures(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b,
		interner.CallSignature{Params: []interner.Param{{Type: types.String}}, ReturnType: types.Void},
		interner.CallSignature{Params: []interner.Param{{Type: types.Number}}, ReturnType: types.Void},
	)
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.Boolean}}, false)
	if r.Kind != NoOverloadMatch {
		t.Fatalf("expected NoOverloadMatch across both failing overloads, got %+v", r)
	}
	if len(r.Failures) != 2 {
		t.Fatalf("expected one recorded failure per attempted signature, got %d", len(r.Failures))
	}
}

func TestSingleSignatureFailureIsNotWrapped(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{Params: []interner.Param{{Type: types.String}}, ReturnType: types.Void})
	r := e.Call(fn, nil, Args{Types: []types.TypeId{types.Boolean}}, false)
	if r.Kind != ArgumentTypeMismatch {
		t.Fatalf("a single candidate's failure should be reported directly, got %+v", r)
	}
}

func TestNewResolvesConstructSignature(t *testing.T) {
	b, e := newEvaluator()
	ctor := constructable(b, interner.CallSignature{ReturnType: types.Number})
	r := e.New(ctor, nil, Args{})
	if r.Kind != Success || r.Type != types.Number {
		t.Fatalf("expected Success(number) from the construct signature, got %+v", r)
	}
}

func TestNewOnCallOnlyConstructorIsPermissiveAny(t *testing.T) {
	b, e := newEvaluator()
	fn := callable(b, interner.CallSignature{ReturnType: types.String})
	r := e.New(fn, nil, Args{})
	if r.Kind != Success || r.Type != types.Any {
		t.Fatalf("expected a call-only callable to permit new as Success(any), got %+v", r)
	}
}

func TestNewOnNonCallableIsNotCallable(t *testing.T) {
	_, e := newEvaluator()
	r := e.New(types.String, nil, Args{})
	if r.Kind != NotCallable {
		t.Fatalf("expected NotCallable for new on a non-callable type, got %+v", r)
	}
}

func TestNewOnNoSignaturesIsNotCallable(t *testing.T) {
	b, e := newEvaluator()
	empty := b.Callable(interner.CallableShape{})
	r := e.New(empty, nil, Args{})
	if r.Kind != NotCallable {
		t.Fatalf("expected NotCallable for a callable with neither call nor construct signatures, got %+v", r)
	}
}
