package checker

import (
	"github.com/gotsc/gotsc/internal/calleval"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// VerdictKind discriminates a Verdict the way calleval.Kind and
// propaccess.Kind already discriminate their own results.
type VerdictKind int

const (
	SubtypeVerdict VerdictKind = iota
	CallVerdict
	NewVerdict
)

// Verdict is the argument an ExplainHook receives: exactly one top-level
// decision the checker just made, plus enough of the inputs to explain
// it. For a SubtypeVerdict, Rule names which §4.G dispatch branch the
// decision fell into; for Call/NewVerdict, Call's own Kind/Failures are
// the explanation (calleval already classifies a failed call down to
// one Result, so nothing further is reclassified here).
type Verdict struct {
	Kind VerdictKind

	Source, Target types.TypeId // SubtypeVerdict
	Bool            bool        // SubtypeVerdict
	Rule            RuleName    // SubtypeVerdict

	Call *calleval.Result // Call/NewVerdict
}

// ExplainHook is the Judge-style post-evaluation callback SPEC_FULL.md's
// supplemented-features section describes: installed via
// Checker.SetExplainHook, invoked after every top-level verdict. The
// checker core never formats or prints anything itself — cmd/gotsc's
// explain subcommand is the only consumer that turns a Verdict into
// text.
type ExplainHook func(Verdict)

// RuleName names one branch of spec.md §4.G's subtype dispatch table.
// This is query-surface territory (component L) extended with one
// explain-only question: "which branch would decide this pair", not
// "what is the verdict" — RuleFor never computes subtype, it only
// reports which rule subtype.Checker.IsSubtype would have dispatched to.
type RuleName int

const (
	RuleUnclassified RuleName = iota
	RuleIdentity
	RuleAnyOrErrorPermissive
	RuleNeverBottom
	RuleUnknownTop
	RuleUnionSource
	RuleUnionTarget
	RuleIntersectionTarget
	RuleIntersectionSource
	RuleTupleTuple
	RuleArrayTuple
	RuleTupleArray
	RuleObjectObject
	RuleSignatureCompat
	RuleApparentPrimitive
	RuleGenericApplication
	RuleConditionalMappedIndexKeyof
	RuleEnum
	RuleReadonly
)

// RuleFor classifies which top-level §4.G branch decides (source,
// target), purely from each side's interned shape — it never runs the
// algorithm itself, matching this package's Judge as "pure type algebra
// observation", not a second implementation of subtype.Checker.
func RuleFor(b *types.Builder, source, target types.TypeId) RuleName {
	if source == target {
		return RuleIdentity
	}
	if source == types.Any || source == types.ErrorType || target == types.Any || target == types.ErrorType {
		return RuleAnyOrErrorPermissive
	}
	if source == types.Never {
		return RuleNeverBottom
	}
	if target == types.Unknown {
		return RuleUnknownTop
	}

	sourceKey, sourceOK := b.Lookup(source)
	targetKey, targetOK := b.Lookup(target)

	if sourceOK {
		switch sourceKey.(type) {
		case interner.UnionKey:
			return RuleUnionSource
		case interner.IntersectionKey:
			return RuleIntersectionSource
		}
	}
	if targetOK {
		switch targetKey.(type) {
		case interner.UnionKey:
			return RuleUnionTarget
		case interner.IntersectionKey:
			return RuleIntersectionTarget
		}
	}

	if sourceOK && targetOK {
		_, sourceTuple := sourceKey.(interner.TupleKey)
		_, targetTuple := targetKey.(interner.TupleKey)
		_, sourceArray := sourceKey.(interner.ArrayKey)
		_, targetArray := targetKey.(interner.ArrayKey)
		switch {
		case sourceTuple && targetTuple:
			return RuleTupleTuple
		case sourceArray && targetTuple:
			return RuleArrayTuple
		case sourceTuple && targetArray:
			return RuleTupleArray
		}

		_, sourceObj := sourceKey.(interner.ObjectKey)
		_, targetObj := targetKey.(interner.ObjectKey)
		if sourceObj && targetObj {
			return RuleObjectObject
		}

		if isCallableShapeKey(sourceKey) && isCallableShapeKey(targetKey) {
			return RuleSignatureCompat
		}

		if _, ok := sourceKey.(interner.EnumKey); ok {
			if _, ok := targetKey.(interner.EnumKey); ok {
				return RuleEnum
			}
		}

		if _, ok := targetKey.(interner.ReadonlyKey); ok {
			return RuleReadonly
		}
		if _, ok := sourceKey.(interner.ReadonlyKey); ok {
			return RuleReadonly
		}

		if isConditionalMappedIndexOrKeyof(sourceKey) || isConditionalMappedIndexOrKeyof(targetKey) {
			return RuleConditionalMappedIndexKeyof
		}

		if _, _, ok := b.ApplicationInfo(source); ok {
			return RuleGenericApplication
		}
		if _, _, ok := b.ApplicationInfo(target); ok {
			return RuleGenericApplication
		}
	}

	if isPrimitiveApparent(source) || isPrimitiveApparent(target) {
		return RuleApparentPrimitive
	}

	return RuleUnclassified
}

func isCallableShapeKey(key interner.TypeKey) bool {
	switch key.(type) {
	case interner.CallableKey, interner.FunctionKey:
		return true
	default:
		return false
	}
}

func isConditionalMappedIndexOrKeyof(key interner.TypeKey) bool {
	switch key.(type) {
	case interner.ConditionalKey, interner.MappedKey, interner.IndexAccessKey, interner.KeyOfKey:
		return true
	default:
		return false
	}
}

func isPrimitiveApparent(id types.TypeId) bool {
	switch id {
	case types.String, types.Number, types.Boolean, types.BigInt, types.Symbol:
		return true
	default:
		return false
	}
}
