package inference

import (
	"testing"

	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

func newBuilder() *types.Builder {
	return types.New(interner.New())
}

func TestFreshVarStartsUnresolved(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	v := ctx.FreshVar()
	if _, ok := ctx.Probe(v); ok {
		t.Fatalf("fresh var should start unresolved")
	}
	if err := ctx.UnifyVarType(v, types.Number); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := ctx.Probe(v)
	if !ok || got != types.Number {
		t.Fatalf("expected number, got %v ok=%v", got, ok)
	}
}

func TestFreshTypeParamRoundTrip(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	tName := b.In.InternString("T")
	uName := b.In.InternString("U")

	varT := ctx.FreshTypeParam(tName)
	found, ok := ctx.FindTypeParam(tName)
	if !ok || found != varT {
		t.Fatalf("expected to find T's var")
	}
	if _, ok := ctx.FindTypeParam(uName); ok {
		t.Fatalf("U was never registered")
	}
}

func TestUnifyVarTypeConflict(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	v := ctx.FreshVar()
	if err := ctx.UnifyVarType(v, types.String); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ctx.UnifyVarType(v, types.Number)
	if err == nil {
		t.Fatalf("expected a conflict error")
	}
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected *ConflictError, got %T", err)
	}
}

func TestUnifyVarsMergesBindings(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	tName := b.In.InternString("T")
	uName := b.In.InternString("U")
	varT := ctx.FreshTypeParam(tName)
	varU := ctx.FreshTypeParam(uName)

	if err := ctx.UnifyVars(varT, varU); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctx.UnifyVarType(varU, types.String); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotT, ok := ctx.Probe(varT)
	if !ok || gotT != types.String {
		t.Fatalf("expected T to resolve through the merged class, got %v ok=%v", gotT, ok)
	}
	gotU, ok := ctx.Probe(varU)
	if !ok || gotU != types.String {
		t.Fatalf("expected U to resolve to string, got %v ok=%v", gotU, ok)
	}
}

func TestUnifyVarsConflict(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	a := ctx.FreshVar()
	bb := ctx.FreshVar()
	if err := ctx.UnifyVarType(a, types.String); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctx.UnifyVarType(bb, types.Number); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctx.UnifyVars(a, bb); err == nil {
		t.Fatalf("expected a conflict merging two differently-bound vars")
	}
}

func TestOccursCheckRejectsSelfReferentialArray(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	tName := b.In.InternString("T")
	varT := ctx.FreshTypeParam(tName)
	tType := b.TypeParameter(interner.TypeParamInfo{Name: tName})
	arrayT := b.Array(tType)

	err := ctx.UnifyVarType(varT, arrayT)
	if err == nil {
		t.Fatalf("expected an occurs-check error")
	}
	if _, ok := err.(*OccursCheckError); !ok {
		t.Fatalf("expected *OccursCheckError, got %T", err)
	}
}

func TestOccursCheckDescendsThroughThisType(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	tName := b.In.InternString("T")
	varT := ctx.FreshTypeParam(tName)
	tType := b.TypeParameter(interner.TypeParamInfo{Name: tName})
	fn := b.Function(interner.CallSignature{ThisType: tType, ReturnType: types.Void})

	err := ctx.UnifyVarType(varT, fn)
	if err == nil {
		t.Fatalf("expected an occurs-check error through a function's this type")
	}
	if _, ok := err.(*OccursCheckError); !ok {
		t.Fatalf("expected *OccursCheckError, got %T", err)
	}
}

func TestInferArrayElementPairsUp(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	tName := b.In.InternString("T")
	varT := ctx.FreshTypeParam(tName)
	formal := b.Array(b.TypeParameter(interner.TypeParamInfo{Name: tName}))
	arg := b.Array(types.String)

	eng := &Engine{Ctx: ctx, B: b}
	if err := eng.Infer(formal, arg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := ctx.Probe(varT)
	if !ok || got != types.String {
		t.Fatalf("expected T bound to string, got %v ok=%v", got, ok)
	}
}

func TestInferFunctionParameterIsContravariant(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	tName := b.In.InternString("T")
	varT := ctx.FreshTypeParam(tName)
	tType := b.TypeParameter(interner.TypeParamInfo{Name: tName})

	// formal: (cb: (x: T) => void) — the callback's parameter position is
	// where T must be inferred from the concrete callback the caller passes.
	formal := b.Function(interner.CallSignature{
		Params:     []interner.Param{{Type: tType}},
		ReturnType: types.Void,
	})
	arg := b.Function(interner.CallSignature{
		Params:     []interner.Param{{Type: types.Number}},
		ReturnType: types.Void,
	})

	eng := &Engine{Ctx: ctx, B: b}
	if err := eng.Infer(formal, arg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := ctx.Probe(varT)
	if !ok || got != types.Number {
		t.Fatalf("expected T bound to number from the callback's own parameter, got %v ok=%v", got, ok)
	}
}

func TestResolveFallsBackToDefaultThenConstraintThenUnknown(t *testing.T) {
	b := newBuilder()
	ctx := New(b)
	withDefault := interner.TypeParamInfo{Name: b.In.InternString("T"), Default: types.String}
	withConstraint := interner.TypeParamInfo{Name: b.In.InternString("U"), Constraint: types.Number}
	bare := interner.TypeParamInfo{Name: b.In.InternString("V")}
	ctx.FreshTypeParam(withDefault.Name)
	ctx.FreshTypeParam(withConstraint.Name)
	ctx.FreshTypeParam(bare.Name)

	resolved := Resolve(b, nil, ctx, []interner.TypeParamInfo{withDefault, withConstraint, bare})
	if resolved[0] != types.String {
		t.Fatalf("expected default to win for T, got %v", resolved[0])
	}
	if resolved[1] != types.Number {
		t.Fatalf("expected constraint fallback for U, got %v", resolved[1])
	}
	if resolved[2] != types.Unknown {
		t.Fatalf("expected unknown fallback for V, got %v", resolved[2])
	}
}
