// Package calleval implements the call/new expression evaluator
// (spec.md §4.I): overload resolution driven by package inference and
// package subtype, short-circuiting for Any/Error/Never, optional-chain
// peeling, and the structured failure classification the diagnostics
// layer turns into exactly one TS-numbered code per failed call.
package calleval

import (
	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

// Kind discriminates a Result the way spec.md §4.I's CallResult sum does.
type Kind int

const (
	Success Kind = iota
	NotCallable
	ArgumentCountMismatch
	ArgumentTypeMismatch
	NoOverloadMatch
)

// Result is the structured call-result variant: exactly one Kind is
// populated, and the call evaluator's caller maps it to exactly one
// diagnostic at exactly one span.
type Result struct {
	Kind Kind

	Type types.TypeId // Success

	Min, Max int // ArgumentCountMismatch; Max < 0 means unbounded
	Actual   int

	Index             int // ArgumentTypeMismatch; index in the ORIGINAL argument list
	Expected, ArgType types.TypeId

	Failures []Result // NoOverloadMatch, one per attempted signature
}

// MaxCallDepth bounds recursive call-expression typing (spec.md §5); a
// call whose own argument expressions recursively reach another call at
// this depth fails closed to ERROR rather than overflowing the stack.
const MaxCallDepth = 50

// Resolver is the application/subtype resolver contract this evaluator's
// collaborators need.
type Resolver = application.Resolver

// Evaluator ties together the collaborators one call expression needs:
// the type algebra, the application evaluator (for resolving a generic
// callee before signature lookup), and the subtype checker (for argument
// compatibility and inference's extends-edge decisions).
type Evaluator struct {
	b     *types.Builder
	apply *application.Evaluator
	sub   *subtype.Checker
	mode  subtype.Mode
	depth int
}

// New creates an Evaluator bound to one compilation's Builder/Evaluator/
// Checker triple under mode, matching propaccess.New's posture parameter so
// argument-assignability checks (trySignature) honor the same strict/loose
// setting as every other evaluator in the Checker rather than defaulting to
// the zero-value Mode.
func New(b *types.Builder, apply *application.Evaluator, sub *subtype.Checker, mode subtype.Mode) *Evaluator {
	return &Evaluator{b: b, apply: apply, sub: sub, mode: mode}
}

// Args bundles one call site's argument types alongside which positions
// (if any) were expanded from a spread, so failure indices can be mapped
// back to the original source position (spec.md §4.I.6).
type Args struct {
	Types []types.TypeId
	// OriginalIndex[i] is the source argument position Types[i] expanded
	// from; nil means Types and the source argument list are 1:1.
	OriginalIndex []int
}

func (a Args) originalIndexOf(i int) int {
	if a.OriginalIndex == nil {
		return i
	}
	if i < len(a.OriginalIndex) {
		return a.OriginalIndex[i]
	}
	return i
}

// Call evaluates a call expression: callee is the (already-evaluated)
// type being called, typeArgs are any explicit type arguments, args are
// the argument types, and optionalChain reports whether this is an
// `f?.(...)` call site.
func (e *Evaluator) Call(callee types.TypeId, typeArgs []types.TypeId, args Args, optionalChain bool) Result {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxCallDepth {
		return Result{Kind: Success, Type: types.ErrorType}
	}

	if callee == types.Any {
		return Result{Kind: Success, Type: types.Any}
	}
	if callee == types.ErrorType {
		return Result{Kind: Success, Type: types.ErrorType}
	}
	if callee == types.Never {
		return Result{Kind: Success, Type: types.Never}
	}

	if optionalChain {
		remainder, empty := peelNullish(e.b, callee)
		if empty {
			return Result{Kind: Success, Type: interner.Undefined}
		}
		callee = remainder
	}

	callee = e.apply.EvaluateOrOriginal(callee)

	shape, ok := e.b.CallableShapeOf(callee)
	if !ok || len(shape.CallSignatures) == 0 {
		return Result{Kind: NotCallable}
	}

	return e.resolveOverload(shape.CallSignatures, typeArgs, args)
}

// New evaluates a new-expression the same way, against construct
// signatures instead of call signatures. A callable with call-but-not-
// construct signatures is treated as compatible with ANY result (the
// permissive choice spec.md §4.I names); a callable with neither is
// TS2351 (NotCallable is reused — the caller maps it to that code).
func (e *Evaluator) New(callee types.TypeId, typeArgs []types.TypeId, args Args) Result {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxCallDepth {
		return Result{Kind: Success, Type: types.ErrorType}
	}
	if callee == types.Any {
		return Result{Kind: Success, Type: types.Any}
	}
	if callee == types.ErrorType {
		return Result{Kind: Success, Type: types.ErrorType}
	}

	callee = e.apply.EvaluateOrOriginal(callee)
	shape, ok := e.b.CallableShapeOf(callee)
	if !ok {
		return Result{Kind: NotCallable}
	}
	if len(shape.ConstructSignatures) > 0 {
		return e.resolveOverload(shape.ConstructSignatures, typeArgs, args)
	}
	if len(shape.CallSignatures) > 0 {
		return Result{Kind: Success, Type: types.Any}
	}
	return Result{Kind: NotCallable}
}

func peelNullish(b *types.Builder, id types.TypeId) (remainder types.TypeId, empty bool) {
	key, ok := b.Lookup(id)
	if !ok {
		if id == interner.Null || id == interner.Undefined {
			return types.Never, true
		}
		return id, false
	}
	u, ok := key.(interner.UnionKey)
	if !ok {
		return id, false
	}
	var kept []types.TypeId
	for _, m := range b.In.TypeList(u.Members) {
		if m == interner.Null || m == interner.Undefined {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return types.Never, true
	}
	return b.Union(kept), false
}
