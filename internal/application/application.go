// Package application evaluates generic type applications such as
// Store<ExtractState<R>>: resolve the base symbol to its body, instantiate
// the body with the (themselves recursively evaluated) type arguments, and
// keep evaluating until the result is no longer itself an application
// (spec.md §4.F). Grounded on the teacher's pattern of a small stateful
// evaluator guarding depth and cycles around a pure recursive step.
package application

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subst"
	"github.com/gotsc/gotsc/internal/types"
)

// MaxDepth bounds recursive application evaluation (spec.md §5).
const MaxDepth = 50

// Result classifies the outcome of evaluating a single type.
type Result struct {
	Type TypeResult
	ID   types.TypeId
}

// TypeResult discriminates why evaluation stopped.
type TypeResult int

const (
	Resolved TypeResult = iota
	NotApplication
	DepthExceeded
	ResolutionFailed
)

// Resolver is the subset of resolver.TypeResolver this package needs;
// any concrete TypeResolver implementation satisfies it structurally.
type Resolver interface {
	// Resolve returns the body type a generic definition's symbol refers
	// to (a type alias's aliased type, an interface's merged shape, ...).
	Resolve(symbol uint32) (types.TypeId, bool)
	// TypeParams returns the ordered formal type parameters declared by
	// symbol, or (nil, false) if symbol declares none.
	TypeParams(symbol uint32) ([]interner.TypeParamInfo, bool)
}

// Evaluator evaluates Application(base, args) types against one Resolver,
// caching results and guarding against runaway recursion across nested
// applications within a single compilation.
type Evaluator struct {
	b        *types.Builder
	resolver Resolver

	depth    int
	visiting map[types.TypeId]bool
	cache    map[types.TypeId]types.TypeId
}

// New creates an Evaluator bound to one Builder/Resolver pair.
func New(b *types.Builder, r Resolver) *Evaluator {
	return &Evaluator{
		b:        b,
		resolver: r,
		visiting: make(map[types.TypeId]bool),
		cache:    make(map[types.TypeId]types.TypeId),
	}
}

// ClearCache drops all cached evaluations. Call this when the contextual
// type that application evaluation depends on changes, so a stale result
// from a different context isn't reused.
func (e *Evaluator) ClearCache() {
	e.cache = make(map[types.TypeId]types.TypeId)
}

// Evaluate resolves id if it is a type application, recursively evaluating
// both its arguments and its instantiated body until a non-application
// type settles out.
func (e *Evaluator) Evaluate(id types.TypeId) Result {
	base, args, isApp := e.b.ApplicationInfo(id)
	if !isApp {
		return Result{Type: NotApplication, ID: id}
	}

	if cached, ok := e.cache[id]; ok {
		return Result{Type: Resolved, ID: cached}
	}

	if e.visiting[id] {
		return Result{Type: Resolved, ID: id}
	}

	if e.depth >= MaxDepth {
		return Result{Type: DepthExceeded, ID: types.ErrorType}
	}

	e.visiting[id] = true
	e.depth++
	result := e.evaluateInner(id, base, args)
	e.depth--
	delete(e.visiting, id)

	if result.Type == Resolved {
		e.cache[id] = result.ID
	}
	return result
}

func (e *Evaluator) evaluateInner(id, base types.TypeId, args []types.TypeId) Result {
	symbol, ok := symbolOf(e.b, base)
	if !ok {
		return Result{Type: NotApplication, ID: id}
	}

	bodyType, ok := e.resolver.Resolve(symbol)
	if !ok {
		return Result{Type: ResolutionFailed, ID: id}
	}

	if bodyType == types.Any || bodyType == types.ErrorType {
		return Result{Type: Resolved, ID: id}
	}

	typeParams, _ := e.resolver.TypeParams(symbol)
	if len(typeParams) == 0 {
		return Result{Type: Resolved, ID: bodyType}
	}

	evaluatedArgs := make([]types.TypeId, len(args))
	for i, arg := range args {
		if r := e.Evaluate(arg); r.Type == Resolved {
			evaluatedArgs[i] = r.ID
		} else {
			evaluatedArgs[i] = arg
		}
	}

	sub := subst.FromArgs(typeParams, evaluatedArgs)
	instantiated := subst.Instantiate(e.b, bodyType, sub)

	if r := e.Evaluate(instantiated); r.Type == Resolved {
		return Result{Type: Resolved, ID: r.ID}
	}
	return Result{Type: Resolved, ID: instantiated}
}

// symbolOf extracts the symbol id a Lazy or Ref base refers to.
func symbolOf(b *types.Builder, base types.TypeId) (uint32, bool) {
	key, ok := b.Lookup(base)
	if !ok {
		return 0, false
	}
	switch k := key.(type) {
	case interner.LazyKey:
		return k.Def, true
	case interner.RefKey:
		return k.Symbol, true
	default:
		return 0, false
	}
}

// EvaluateOrOriginal unwraps Evaluate, falling back to the input type for
// any non-Resolved outcome. This is the convenience entry point most
// callers outside this package should use.
func (e *Evaluator) EvaluateOrOriginal(id types.TypeId) types.TypeId {
	switch r := e.Evaluate(id); r.Type {
	case Resolved:
		return r.ID
	default:
		return id
	}
}
