// Package checker ties the evaluator packages together into one
// per-compilation orchestrator (spec.md §5's "private interner, binder,
// checker" unit): a Checker owns the Builder, the resolver it was given,
// and one instance each of application.Evaluator, subtype.Checker,
// calleval.Evaluator, propaccess.Evaluator and expreval.Evaluator, all
// bound to the same Builder/resolver pair so their caches agree on TypeId
// identity; inference.Context is not owned but handed out fresh per call
// by NewInferenceContext. Grounded on the teacher's
// internal/analyzer.Walker, which plays the analogous role of bundling a
// type environment, an error sink, and the evaluation entry points a
// caller drives one AST node at a time.
package checker

import (
	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/calleval"
	"github.com/gotsc/gotsc/internal/config"
	"github.com/gotsc/gotsc/internal/diagnostics"
	"github.com/gotsc/gotsc/internal/expreval"
	"github.com/gotsc/gotsc/internal/inference"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/propaccess"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

// Resolver is the binder collaborator contract every evaluator in this
// compilation shares. It is satisfied structurally by resolver.TypeResolver;
// this package re-declares only the subset application/subtype/propaccess
// actually call, the same narrowing those packages already do.
type Resolver = application.Resolver

// Checker is one compilation unit: one Builder, one Resolver, and the
// full set of evaluators spec.md §4 names, all sharing the posture
// (subtype.Mode) loaded from config.CheckerOptions. Diagnostics are
// reported against the injected Run rather than returned, matching
// spec.md §6's "the core never formats messages, it reports against an
// injected sink."
type Checker struct {
	b        *types.Builder
	resolver Resolver
	opts     config.CheckerOptions
	mode     subtype.Mode

	Apply  *application.Evaluator
	Sub    *subtype.Checker
	Call   *calleval.Evaluator
	Access *propaccess.Evaluator
	Expr   *expreval.Evaluator
	Run    *diagnostics.CheckRun

	explain ExplainHook
}

// New creates a Checker bound to one Builder/Resolver pair under opts.
// run collects diagnostics; pass diagnostics.NewCheckRun() for a fresh
// per-compilation sink. internal/host gives every job its own CheckRun and
// returns each job's diagnostics on that job's own Outcome.
func New(b *types.Builder, resolver Resolver, opts config.CheckerOptions, run *diagnostics.CheckRun) *Checker {
	mode := opts.Mode()
	apply := application.New(b, resolver)
	sub := subtype.New(b, resolver, apply)
	return &Checker{
		b:        b,
		resolver: resolver,
		opts:     opts,
		mode:     mode,
		Apply:    apply,
		Sub:      sub,
		Call:     calleval.New(b, apply, sub, mode),
		Access:   propaccess.New(b, apply, sub, resolver, mode),
		Expr:     expreval.New(b),
		Run:      run,
	}
}

// Builder returns the Builder this Checker's evaluators share, for
// callers (cmd/gotsc) that need to intern types of their own before
// handing them to IsAssignable/CheckCall/CheckNew.
func (c *Checker) Builder() *types.Builder { return c.b }

// Mode is the posture shared by every evaluator in this Checker.
func (c *Checker) Mode() subtype.Mode { return c.mode }

// Options returns the CheckerOptions this Checker was constructed from.
func (c *Checker) Options() config.CheckerOptions { return c.opts }

// NewInferenceContext starts a fresh unification context for one generic
// call or instantiation site; inference.Context is cheap and scoped to a
// single call the way the teacher scopes a fresh type environment to a
// single function invocation.
func (c *Checker) NewInferenceContext() *inference.Context {
	return inference.New(c.b)
}

// IsAssignable reports whether source can flow into target under this
// Checker's mode, and — if an ExplainHook is installed — records which
// top-level §4.G dispatch rule decided it.
func (c *Checker) IsAssignable(source, target types.TypeId) bool {
	result := c.Sub.IsSubtype(source, target, c.mode)
	if c.explain != nil {
		c.explain(Verdict{
			Kind:   SubtypeVerdict,
			Source: source,
			Target: target,
			Bool:   result,
			Rule:   RuleFor(c.b, source, target),
		})
	}
	return result
}

// CheckCall evaluates a call expression and, if an ExplainHook is
// installed, reports the full calleval.Result as the verdict's
// explanation — calleval's Kind/Failures already say why a call
// succeeded or failed, so no extra classification is needed here.
func (c *Checker) CheckCall(callee types.TypeId, typeArgs []types.TypeId, args calleval.Args, optionalChain bool) calleval.Result {
	result := c.Call.Call(callee, typeArgs, args, optionalChain)
	if c.explain != nil {
		c.explain(Verdict{Kind: CallVerdict, Call: &result})
	}
	return result
}

// CheckNew evaluates a new-expression the same way CheckCall evaluates a
// call expression.
func (c *Checker) CheckNew(callee types.TypeId, typeArgs []types.TypeId, args calleval.Args) calleval.Result {
	result := c.Call.New(callee, typeArgs, args)
	if c.explain != nil {
		c.explain(Verdict{Kind: NewVerdict, Call: &result})
	}
	return result
}

// CheckProperty evaluates object.name.
func (c *Checker) CheckProperty(object types.TypeId, name interner.Atom) propaccess.Result {
	return c.Access.Access(object, name)
}

// CheckBinary evaluates a binary operator expression.
func (c *Checker) CheckBinary(left, right types.TypeId, op string) expreval.Result {
	return c.Expr.Binary(left, right, op)
}

// SetExplainHook installs fn as the post-evaluation callback invoked
// after every top-level IsAssignable/CheckCall/CheckNew verdict. This is
// the Judge hook SPEC_FULL.md's supplemented-features section describes,
// grounded on original_source/src/checker/judge_integration.rs's
// Checker -> Judge -> Lawyer migration bridge: a pure-type-algebra
// observation point sitting between the checker and whatever consumes
// its verdicts, used by cmd/gotsc's explain subcommand to print why a
// verdict was reached without the checker itself knowing about CLI
// formatting. Pass nil to remove a previously installed hook.
func (c *Checker) SetExplainHook(fn ExplainHook) {
	c.explain = fn
}
