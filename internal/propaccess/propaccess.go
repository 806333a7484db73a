// Package propaccess implements the property-access evaluator (spec.md
// §4.J): given an already-evaluated object type and a property name,
// decide the accessed type or why access fails. Grounded on the same
// per-pair structural dispatch discipline internal/subtype and
// internal/calleval already use, reusing subtype's object/apparent-shape
// views rather than re-deriving them.
package propaccess

import (
	"github.com/gotsc/gotsc/internal/application"
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

// Kind discriminates a Result the way spec.md §4.J's access result sum
// does, mirroring the tagged-struct-with-enum-field idiom already
// established by internal/application.Result and internal/calleval.Result.
type Kind int

const (
	Success Kind = iota
	PropertyNotFound
	PossiblyNullOrUndefined
)

// Result is the structured property-access outcome: exactly one Kind is
// populated.
type Result struct {
	Kind Kind

	Type               types.TypeId // Success
	FromIndexSignature bool         // Success, when no named property matched

	Cause types.TypeId // PossiblyNullOrUndefined: the nullish member responsible
}

// MaxDepth bounds recursive Ref/Lazy/Application resolution the same way
// every other evaluator in this module caps its own recursion (spec.md §5).
const MaxDepth = 50

// Resolver is the subset of resolver.TypeResolver this package needs to
// chase a legacy Ref(symbol) indirection.
type Resolver = application.Resolver

// Evaluator ties together the collaborators property access needs: the
// type algebra, the application evaluator (to force Lazy/Application
// indirections before inspecting shape), the subtype checker (for its
// object/apparent-shape views and NoUncheckedIndexedAccess mode), and the
// resolver (for Ref and type-parameter constraint lookups).
type Evaluator struct {
	b        *types.Builder
	apply    *application.Evaluator
	sub      *subtype.Checker
	resolver Resolver
	mode     subtype.Mode

	visiting map[types.TypeId]bool
	depth    int
}

// New creates an Evaluator bound to one compilation's collaborators. mode
// supplies the NoUncheckedIndexedAccess/Sound posture propagated from the
// active CheckerOptions.
func New(b *types.Builder, apply *application.Evaluator, sub *subtype.Checker, resolver Resolver, mode subtype.Mode) *Evaluator {
	return &Evaluator{b: b, apply: apply, sub: sub, resolver: resolver, mode: mode, visiting: make(map[types.TypeId]bool)}
}

// Access evaluates `object.name`. It has no optional-chain mode: for
// `object?.name` the caller peels nullish members off object before
// calling, whereas calleval.Call peels an optional-chain callee itself.
func (e *Evaluator) Access(object types.TypeId, name interner.Atom) Result {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxDepth {
		return Result{Kind: Success, Type: types.ErrorType}
	}

	if object == types.Any || object == types.ErrorType {
		return Result{Kind: Success, Type: types.Any}
	}
	if object == types.Never {
		return Result{Kind: Success, Type: types.Never}
	}

	switch object {
	case types.Void, types.Null, types.Undefined:
		return Result{Kind: PossiblyNullOrUndefined, Cause: object}
	}

	if shape, ok := e.sub.ApparentShapeOf(object); ok {
		return e.accessShape(shape, name)
	}

	key, ok := e.b.Lookup(object)
	if !ok {
		return Result{Kind: PropertyNotFound}
	}

	switch k := key.(type) {
	case interner.UnionKey:
		return e.accessUnion(k, name)
	case interner.IntersectionKey:
		return e.accessIntersection(k, name)
	case interner.ArrayKey:
		return e.accessArray(k, name)
	case interner.TupleKey:
		return e.accessTuple(k, name)
	case interner.ObjectKey:
		return e.accessShape(e.b.In.ObjectShape(k.Shape), name)
	case interner.CallableKey:
		return e.accessCallable(e.b.In.CallableShape(k.Shape), name)
	case interner.FunctionKey:
		return e.accessCallable(e.b.In.CallableShape(k.Shape), name)
	case interner.ReadonlyKey:
		return e.Access(k.Inner, name)
	case interner.TypeParameterKey:
		if k.Info.Constraint == interner.NoType {
			return Result{Kind: Success, Type: types.Unknown}
		}
		return e.Access(k.Info.Constraint, name)
	case interner.InferKey:
		if k.Info.Constraint == interner.NoType {
			return Result{Kind: Success, Type: types.Unknown}
		}
		return e.Access(k.Info.Constraint, name)
	case interner.RefKey:
		return e.accessIndirection(object, func() (types.TypeId, bool) { return e.resolver.Resolve(k.Symbol) }, name)
	case interner.LazyKey:
		return e.accessIndirection(object, func() (types.TypeId, bool) { return e.resolver.Resolve(k.Def) }, name)
	case interner.ApplicationKey:
		return e.accessIndirection(object, func() (types.TypeId, bool) { return e.apply.EvaluateOrOriginal(object), true }, name)
	default:
		return Result{Kind: PropertyNotFound}
	}
}

// accessIndirection resolves a Ref/Lazy/Application indirection then
// recurses, producing the input type unchanged on a resolution cycle
// (spec.md §4.J's explicit cycle rule) rather than looping forever.
func (e *Evaluator) accessIndirection(object types.TypeId, resolve func() (types.TypeId, bool), name interner.Atom) Result {
	if e.visiting[object] {
		return Result{Kind: Success, Type: object}
	}
	e.visiting[object] = true
	defer delete(e.visiting, object)

	resolved, ok := resolve()
	if !ok {
		return Result{Kind: Success, Type: types.Unknown}
	}
	return e.Access(resolved, name)
}

func (e *Evaluator) accessUnion(u interner.UnionKey, name interner.Atom) Result {
	members := e.b.In.TypeList(u.Members)
	results := make([]types.TypeId, 0, len(members))
	for _, m := range members {
		r := e.Access(m, name)
		if r.Kind != Success {
			return r
		}
		results = append(results, r.Type)
	}
	return Result{Kind: Success, Type: e.b.Union(results)}
}

func (e *Evaluator) accessIntersection(i interner.IntersectionKey, name interner.Atom) Result {
	for _, m := range e.b.In.TypeList(i.Members) {
		r := e.Access(m, name)
		if r.Kind == Success {
			return r
		}
	}
	return Result{Kind: PropertyNotFound}
}

func (e *Evaluator) accessShape(shape interner.ObjectShape, name interner.Atom) Result {
	for _, p := range shape.Properties {
		if p.Name != name {
			continue
		}
		t := p.ReadType
		if p.Optional {
			t = e.b.Union([]types.TypeId{t, interner.Undefined})
		}
		return Result{Kind: Success, Type: t}
	}
	if shape.StringIndex != nil {
		return e.indexSignatureResult(*shape.StringIndex)
	}
	if shape.NumberIndex != nil {
		return e.indexSignatureResult(*shape.NumberIndex)
	}
	return Result{Kind: PropertyNotFound}
}

func (e *Evaluator) indexSignatureResult(sig interner.IndexSignature) Result {
	t := sig.ValueType
	if e.mode.NoUncheckedIndexedAccess {
		t = e.b.Union([]types.TypeId{t, interner.Undefined})
	}
	return Result{Kind: Success, Type: t, FromIndexSignature: true}
}

func (e *Evaluator) accessCallable(shape interner.CallableShape, name interner.Atom) Result {
	switch e.b.In.AtomText(name) {
	case "call", "apply", "bind":
		return Result{Kind: Success, Type: e.b.Function(interner.CallSignature{ReturnType: types.Any})}
	case "length":
		return Result{Kind: Success, Type: types.Number}
	case "name":
		return Result{Kind: Success, Type: types.String}
	case "toString":
		return Result{Kind: Success, Type: e.b.Function(interner.CallSignature{ReturnType: types.String})}
	}
	return e.accessShape(interner.ObjectShape{Properties: shape.Properties, StringIndex: shape.StringIndex, NumberIndex: shape.NumberIndex}, name)
}

func (e *Evaluator) accessArray(a interner.ArrayKey, name interner.Atom) Result {
	switch e.b.In.AtomText(name) {
	case "length":
		return Result{Kind: Success, Type: types.Number}
	case "at":
		ret := e.b.Union([]types.TypeId{a.Elem, interner.Undefined})
		return Result{Kind: Success, Type: e.b.Function(interner.CallSignature{Params: []interner.Param{{Type: types.Number}}, ReturnType: ret})}
	case "map":
		return Result{Kind: Success, Type: e.b.Function(interner.CallSignature{ReturnType: types.Any})}
	case "entries":
		pair := e.b.Tuple([]interner.TupleElement{{Type: types.Number}, {Type: a.Elem}})
		return Result{Kind: Success, Type: e.b.Function(interner.CallSignature{ReturnType: pair})}
	case "reduce":
		return Result{Kind: Success, Type: e.b.Function(interner.CallSignature{ReturnType: types.Any})}
	}
	return Result{Kind: PropertyNotFound}
}

func (e *Evaluator) accessTuple(tp interner.TupleKey, name interner.Atom) Result {
	elems := e.b.In.TupleList(tp.Elems)
	if e.b.In.AtomText(name) == "length" {
		open := false
		for _, el := range elems {
			if el.Rest {
				open = true
			}
		}
		if open {
			return Result{Kind: Success, Type: types.Number}
		}
		required := 0
		for _, el := range elems {
			if !el.Optional {
				required++
			}
		}
		lengths := make([]types.TypeId, 0, len(elems)-required+1)
		for n := required; n <= len(elems); n++ {
			lengths = append(lengths, e.b.LiteralNumber(float64(n)))
		}
		return Result{Kind: Success, Type: e.b.Union(lengths)}
	}
	elemTypes := make([]types.TypeId, 0, len(elems))
	for _, el := range elems {
		elemTypes = append(elemTypes, el.Type)
	}
	return e.accessArray(interner.ArrayKey{Elem: e.b.Union(elemTypes)}, name)
}
