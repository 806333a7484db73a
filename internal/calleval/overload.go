package calleval

import (
	"github.com/gotsc/gotsc/internal/inference"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subst"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

// resolveOverload implements spec.md §4.I steps 4-6: try each signature in
// declaration order under a fresh inference state; the first full success
// wins. A single-signature callee's failure is reported directly (not
// wrapped in NoOverloadMatch, which is reserved for genuine overload sets).
func (e *Evaluator) resolveOverload(sigs []interner.CallSignature, typeArgs []types.TypeId, args Args) Result {
	var failures []Result
	for _, sig := range sigs {
		result := e.trySignature(sig, typeArgs, args)
		if result.Kind == Success {
			return result
		}
		failures = append(failures, result)
	}

	if len(failures) == 1 {
		return failures[0]
	}
	return Result{Kind: NoOverloadMatch, Failures: failures}
}

// trySignature runs inference and argument checking for one candidate
// signature: parameter count, type-parameter inference (explicit type
// arguments if supplied, else the structural pairing rules), per-argument
// assignability against the instantiated parameter types, and the
// instantiated return type on success.
func (e *Evaluator) trySignature(sig interner.CallSignature, typeArgs []types.TypeId, args Args) Result {
	min, max := arity(e.sub, sig.Params)
	actual := len(args.Types)
	if actual < min || (max >= 0 && actual > max) {
		return Result{Kind: ArgumentCountMismatch, Min: min, Max: max, Actual: actual}
	}
	expected := expectedParamTypes(e.sub, sig.Params, actual)

	ctx := inference.New(e.b)
	for _, tp := range sig.TypeParams {
		ctx.FreshTypeParam(tp.Name)
	}
	eng := &inference.Engine{Ctx: ctx, B: e.b, Sub: e.sub}

	if len(typeArgs) > 0 {
		for i, tp := range sig.TypeParams {
			if i >= len(typeArgs) {
				break
			}
			if v, ok := ctx.FindTypeParam(tp.Name); ok {
				_ = ctx.UnifyVarType(v, typeArgs[i])
			}
		}
	} else {
		// Two-pass contextual inference (spec.md §4.H): non-sensitive
		// arguments first, fixing as many vars as possible, then sensitive
		// ones against the now-narrower expected parameter types. A caller
		// with AST access should classify with inference.IsSensitive/
		// Partition before building Args; calleval only ever sees already-
		// evaluated argument TypeIds, so partitionByKind is the fallback
		// classifier for callers that didn't.
		nonSensitive, sensitive := partitionByKind(e.b, args.Types)
		for _, i := range nonSensitive {
			_ = eng.Infer(expected[i], args.Types[i])
		}
		for _, i := range sensitive {
			_ = eng.Infer(expected[i], args.Types[i])
		}
	}

	resolvedTypeParams := inference.Resolve(e.b, e.sub, ctx, sig.TypeParams)
	sub := subst.FromArgs(sig.TypeParams, resolvedTypeParams)

	for i, argType := range args.Types {
		instantiated := subst.Instantiate(e.b, expected[i], sub)
		if !e.sub.IsAssignable(argType, instantiated, e.mode) {
			return Result{
				Kind:     ArgumentTypeMismatch,
				Index:    args.originalIndexOf(i),
				Expected: instantiated,
				ArgType:  argType,
			}
		}
	}

	returnType := subst.Instantiate(e.b, sig.ReturnType, sub)
	return Result{Kind: Success, Type: returnType}
}

// partitionByKind is the non-AST-aware fallback sensitivity classifier
// (spec.md §4.H): an argument whose own evaluated type is itself callable
// is treated as "sensitive" the way an un-annotated lambda literal would
// be, since its signature's own type parameters (if any) are exactly the
// case a first pass should defer. A caller with access to the original
// argument expressions should prefer inference.IsSensitive/Partition,
// which classifies the expression rather than its already-evaluated type.
func partitionByKind(b *types.Builder, argTypes []types.TypeId) (nonSensitive, sensitive []int) {
	for i, t := range argTypes {
		if _, ok := b.CallableShapeOf(t); ok {
			sensitive = append(sensitive, i)
		} else {
			nonSensitive = append(nonSensitive, i)
		}
	}
	return nonSensitive, sensitive
}

// lastIsRest reports whether params ends in a rest parameter, and if so,
// the count of parameters before it.
func lastIsRest(params []interner.Param) (nonRest int, hasRest bool) {
	if len(params) > 0 && params[len(params)-1].Rest {
		return len(params) - 1, true
	}
	return len(params), false
}

// arity computes the minimum and maximum argument counts a signature
// accepts. A plain rest parameter (spec.md §4.I) is unbounded. A
// tuple-typed rest parameter (spec.md §4.G.5's `[A, ...B[], C]` shape)
// instead contributes its own fixed/tail elements to both bounds, via the
// same fixed/variadic/tail decomposition internal/subtype's tuple-to-tuple
// checking already uses — unbounded only if that decomposition still has
// a variadic tail of its own.
func arity(sub *subtype.Checker, params []interner.Param) (min, max int) {
	nonRest, hasRest := lastIsRest(params)
	for _, p := range params[:nonRest] {
		max++
		if !p.Optional {
			min++
		}
	}
	if !hasRest {
		return min, max
	}

	fixed, variadic, tail := sub.ExpandTupleRest(params[len(params)-1].Type)
	min += countRequired(fixed) + countRequired(tail)
	if variadic != nil {
		return min, -1
	}
	max += len(fixed) + len(tail)
	return min, max
}

func countRequired(elems []interner.TupleElement) int {
	n := 0
	for _, e := range elems {
		if !e.Optional {
			n++
		}
	}
	return n
}

// expectedParamTypes maps each of argCount call-argument positions to the
// parameter type it is checked and inferred against. Positions before a
// trailing rest parameter map directly to that parameter's declared type.
// Positions within the rest run expand the rest parameter's own type via
// subtype.Checker.ExpandTupleRest (spec.md §4.G.5): the decomposition's
// fixed prefix is matched forward from the first rest argument, its tail
// is matched backward from the last call argument (mirroring
// checkTupleSubtype's tuple-to-tuple rest matching), and anything between
// them takes the variadic element type. A plain (non-tuple) rest
// parameter's type has no fixed/tail elements of its own, so every
// position in the run falls through to the variadic case, reproducing the
// simple "repeat the element type" behavior unchanged.
func expectedParamTypes(sub *subtype.Checker, params []interner.Param, argCount int) []types.TypeId {
	expected := make([]types.TypeId, argCount)
	nonRest, hasRest := lastIsRest(params)
	for i := 0; i < nonRest && i < argCount; i++ {
		expected[i] = params[i].Type
	}
	if !hasRest {
		return expected
	}

	fixed, variadic, tail := sub.ExpandTupleRest(params[len(params)-1].Type)
	runLen := argCount - nonRest
	if runLen < 0 {
		runLen = 0
	}
	tailStart := runLen - len(tail)
	for j := 0; j < runLen; j++ {
		i := nonRest + j
		switch {
		case j < len(fixed):
			expected[i] = fixed[j].Type
		case j >= tailStart:
			expected[i] = tail[j-tailStart].Type
		case variadic != nil:
			expected[i] = *variadic
		default:
			expected[i] = types.Unknown
		}
	}
	return expected
}
