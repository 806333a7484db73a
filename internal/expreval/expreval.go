// Package expreval implements the binary-op and expression evaluator
// (spec.md §4.K): arithmetic/string `+`, the other numeric operators,
// logical short-circuit narrowing, equality overlap checking, conditional-
// expression typing, template-expression typing, and best-common-type.
// Grounded on original_source/src/solver/expression_ops.rs for the
// conditional/template/best-common-type rules (the only one of this
// package's concerns with a surviving implementation file) and on
// original_source/src/solver/operations_tests.rs's BinaryOpEvaluator test
// cases for the equality-overlap and `+`/`&&` rules, whose implementation
// file itself did not survive into the retained pack.
package expreval

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// Kind discriminates a Result, mirroring the tagged-struct idiom already
// established by internal/application.Result, internal/calleval.Result,
// and internal/propaccess.Result.
type Kind int

const (
	Success Kind = iota
	TypeError
)

// Result is the structured outcome of a binary or equality evaluation.
type Result struct {
	Kind Kind

	Type types.TypeId // Success

	Op          string // TypeError
	Left, Right types.TypeId
}

// Evaluator evaluates binary/conditional/template expressions against one
// Builder's type algebra; it holds no other state (unlike calleval or
// propaccess, expression typing here never recurses into a collaborator
// that itself needs depth guarding).
type Evaluator struct {
	b *types.Builder
}

// New creates an Evaluator bound to one compilation's Builder.
func New(b *types.Builder) *Evaluator {
	return &Evaluator{b: b}
}

// Binary evaluates a binary expression's result type for one of spec.md
// §4.K's operator groups. Equality operators delegate to Equality.
func (e *Evaluator) Binary(left, right types.TypeId, op string) Result {
	if left == types.ErrorType || right == types.ErrorType {
		return Result{Kind: Success, Type: types.ErrorType}
	}
	switch op {
	case "==", "===", "!=", "!==":
		return e.Equality(left, right, op)
	}
	if left == types.Any || right == types.Any {
		return Result{Kind: Success, Type: types.Any}
	}
	if left == types.Never || right == types.Never {
		return Result{Kind: Success, Type: types.Never}
	}

	switch op {
	case "+":
		return e.add(left, right)
	case "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", ">>>":
		return e.numeric(left, right, op)
	case "&&":
		return Result{Kind: Success, Type: e.b.Union([]types.TypeId{e.excludeTruthy(left), right})}
	case "||":
		return Result{Kind: Success, Type: e.b.Union([]types.TypeId{e.excludeFalsy(left), right})}
	default:
		return Result{Kind: TypeError, Op: op, Left: left, Right: right}
	}
}

func (e *Evaluator) add(left, right types.TypeId) Result {
	if e.isBigIntKind(left) || e.isBigIntKind(right) {
		if e.isBigIntKind(left) && e.isBigIntKind(right) {
			return Result{Kind: Success, Type: types.BigInt}
		}
		return Result{Kind: TypeError, Op: "+", Left: left, Right: right}
	}
	if e.isStringKind(left) || e.isStringKind(right) {
		return Result{Kind: Success, Type: types.String}
	}
	if e.isNumberKind(left) && e.isNumberKind(right) {
		return Result{Kind: Success, Type: types.Number}
	}
	return Result{Kind: TypeError, Op: "+", Left: left, Right: right}
}

func (e *Evaluator) numeric(left, right types.TypeId, op string) Result {
	if e.isBigIntKind(left) && e.isBigIntKind(right) {
		return Result{Kind: Success, Type: types.BigInt}
	}
	if e.isNumberKind(left) && e.isNumberKind(right) {
		return Result{Kind: Success, Type: types.Number}
	}
	return Result{Kind: TypeError, Op: op, Left: left, Right: right}
}

// Equality evaluates `== === != !==`: the operands must overlap (share at
// least one possible concrete value), otherwise this is a TypeError per
// spec.md §4.K — `any`/`unknown` are permissive, `never` is rejected,
// type parameters overlap through their constraint (unconstrained
// overlaps with anything), and literal/template-literal overlap widens
// to the underlying primitive kind before comparing.
func (e *Evaluator) Equality(left, right types.TypeId, op string) Result {
	if left == types.ErrorType || right == types.ErrorType {
		return Result{Kind: Success, Type: types.ErrorType}
	}
	if !e.overlaps(left, right) {
		return Result{Kind: TypeError, Op: op, Left: left, Right: right}
	}
	return Result{Kind: Success, Type: types.Boolean}
}

func (e *Evaluator) overlaps(left, right types.TypeId) bool {
	for _, l := range e.expandForOverlap(left) {
		for _, r := range e.expandForOverlap(right) {
			if e.overlapPair(l, r) {
				return true
			}
		}
	}
	return false
}

// expandForOverlap flattens a union into its members and a type parameter
// (or infer variable) into its constraint — unconstrained counts as `any`,
// since an unconstrained generic could be instantiated to anything.
func (e *Evaluator) expandForOverlap(id types.TypeId) []types.TypeId {
	key, ok := e.b.Lookup(id)
	if !ok {
		return []types.TypeId{id}
	}
	switch k := key.(type) {
	case interner.UnionKey:
		var out []types.TypeId
		for _, m := range e.b.In.TypeList(k.Members) {
			out = append(out, e.expandForOverlap(m)...)
		}
		return out
	case interner.TypeParameterKey:
		if k.Info.Constraint == interner.NoType {
			return []types.TypeId{types.Any}
		}
		return e.expandForOverlap(k.Info.Constraint)
	case interner.InferKey:
		if k.Info.Constraint == interner.NoType {
			return []types.TypeId{types.Any}
		}
		return e.expandForOverlap(k.Info.Constraint)
	default:
		return []types.TypeId{id}
	}
}

func (e *Evaluator) overlapPair(a, b types.TypeId) bool {
	if a == types.Any || b == types.Any || a == types.Unknown || b == types.Unknown {
		return true
	}
	if a == types.Never || b == types.Never {
		return false
	}
	if a == b {
		return true
	}
	wa, wb := e.widenToPrimitive(a), e.widenToPrimitive(b)
	if wa != wb {
		return false
	}
	// Same underlying primitive kind: if both sides narrowed to a literal
	// (template literals count as "narrowed" only loosely — a template
	// always overlaps any string, matching operations_tests.rs's
	// template-vs-string case) and the literals differ, they're disjoint.
	if a != wa && b != wb && !e.isTemplateLiteral(a) && !e.isTemplateLiteral(b) {
		return false
	}
	return true
}

func (e *Evaluator) isTemplateLiteral(id types.TypeId) bool {
	key, ok := e.b.Lookup(id)
	if !ok {
		return false
	}
	_, ok = key.(interner.TemplateLiteralKey)
	return ok
}

// widenToPrimitive maps a literal or template-literal type to its bare
// primitive kind, and leaves everything else (including a bare primitive)
// unchanged.
func (e *Evaluator) widenToPrimitive(id types.TypeId) types.TypeId {
	switch id {
	case types.String, types.Number, types.Boolean, types.BigInt:
		return id
	}
	key, ok := e.b.Lookup(id)
	if !ok {
		return id
	}
	switch key.(type) {
	case interner.LiteralStringKey, interner.TemplateLiteralKey:
		return types.String
	case interner.LiteralNumberKey:
		return types.Number
	case interner.LiteralBooleanKey:
		return types.Boolean
	case interner.LiteralBigIntKey:
		return types.BigInt
	default:
		return id
	}
}

func (e *Evaluator) isStringKind(id types.TypeId) bool { return e.widenToPrimitive(id) == types.String }
func (e *Evaluator) isNumberKind(id types.TypeId) bool { return e.widenToPrimitive(id) == types.Number }
func (e *Evaluator) isBigIntKind(id types.TypeId) bool { return e.widenToPrimitive(id) == types.BigInt }

// Conditional evaluates `condition ? trueType : falseType`, grounded
// directly on original_source's compute_conditional_expression_type.
func (e *Evaluator) Conditional(condition, trueType, falseType types.TypeId) types.TypeId {
	if condition == types.ErrorType || trueType == types.ErrorType || falseType == types.ErrorType {
		return types.ErrorType
	}
	if condition == types.Any {
		return e.b.Union([]types.TypeId{trueType, falseType})
	}
	if condition == types.Never {
		return types.Never
	}
	if e.isDefinitelyTruthy(condition) {
		return trueType
	}
	if e.isDefinitelyFalsy(condition) {
		return falseType
	}
	if trueType == falseType {
		return trueType
	}
	return e.b.Union([]types.TypeId{trueType, falseType})
}

// Template evaluates a template expression's result type, grounded
// directly on original_source's compute_template_expression_type.
func (e *Evaluator) Template(parts []types.TypeId) types.TypeId {
	for _, p := range parts {
		if p == types.ErrorType {
			return types.ErrorType
		}
	}
	for _, p := range parts {
		if p == types.Never {
			return types.Never
		}
	}
	return types.String
}

// BestCommonType evaluates the best-common-type of a set of candidates,
// grounded directly on original_source's compute_best_common_type: the
// Phase-1 original falls back to a plain union once candidates differ,
// rather than attempting supertype selection, and this port keeps that
// simplification (spec.md §4.K names it explicitly as "a conservative
// fallback — later passes may pick a supertype by structural order").
func (e *Evaluator) BestCommonType(candidates []types.TypeId) types.TypeId {
	if len(candidates) == 0 {
		return types.Never
	}
	for _, t := range candidates {
		if t == types.ErrorType {
			return types.ErrorType
		}
	}
	first := candidates[0]
	allSame := true
	for _, t := range candidates {
		if t != first {
			allSame = false
			break
		}
	}
	if allSame {
		return first
	}
	return e.b.Union(candidates)
}

func (e *Evaluator) excludeTruthy(id types.TypeId) types.TypeId {
	return e.filterMembers(id, func(m types.TypeId) bool { return !e.isDefinitelyTruthy(m) })
}

func (e *Evaluator) excludeFalsy(id types.TypeId) types.TypeId {
	return e.filterMembers(id, func(m types.TypeId) bool { return !e.isDefinitelyFalsy(m) })
}

func (e *Evaluator) filterMembers(id types.TypeId, keep func(types.TypeId) bool) types.TypeId {
	key, ok := e.b.Lookup(id)
	if !ok {
		if keep(id) {
			return id
		}
		return types.Never
	}
	u, ok := key.(interner.UnionKey)
	if !ok {
		if keep(id) {
			return id
		}
		return types.Never
	}
	var kept []types.TypeId
	for _, m := range e.b.In.TypeList(u.Members) {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return types.Never
	}
	return e.b.Union(kept)
}

// isDefinitelyTruthy reports whether every value of id is truthy: a
// `true` literal, a nonzero number literal, a nonempty string literal, or
// an object/array/tuple/callable type (objects are always truthy at
// runtime regardless of shape).
func (e *Evaluator) isDefinitelyTruthy(id types.TypeId) bool {
	key, ok := e.b.Lookup(id)
	if !ok {
		return false
	}
	switch k := key.(type) {
	case interner.LiteralBooleanKey:
		return k.Value
	case interner.LiteralNumberKey:
		return k.Value != 0
	case interner.LiteralStringKey:
		return e.b.In.AtomText(k.Value) != ""
	case interner.ObjectKey, interner.ArrayKey, interner.TupleKey, interner.CallableKey, interner.FunctionKey:
		return true
	default:
		return false
	}
}

// isDefinitelyFalsy reports whether every value of id is falsy: `null`,
// `undefined`, `void`, a `false` literal, the `0` literal, or the `""`
// literal.
func (e *Evaluator) isDefinitelyFalsy(id types.TypeId) bool {
	switch id {
	case types.Null, types.Undefined, types.Void:
		return true
	}
	key, ok := e.b.Lookup(id)
	if !ok {
		return false
	}
	switch k := key.(type) {
	case interner.LiteralBooleanKey:
		return !k.Value
	case interner.LiteralNumberKey:
		return k.Value == 0
	case interner.LiteralStringKey:
		return e.b.In.AtomText(k.Value) == ""
	default:
		return false
	}
}
