// rules.go implements spec.md §4.H's per-pair inference rules: the
// structural walk a call evaluator drives once per (formalParamType,
// argType) pair to discover bindings for a signature's type parameters.
package inference

import (
	"strings"

	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subst"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

// Engine bundles the collaborators a single inference pass over a call
// needs: the variable store, the Builder to decompose types with, and the
// subtype checker for extends-edge and narrowing decisions.
type Engine struct {
	Ctx *Context
	B   *types.Builder
	Sub *subtype.Checker
}

// Infer walks formal and arg in lockstep, recording whatever bindings the
// structural pairing rules license. It never fails outright — an
// unresolvable shape mismatch simply contributes no binding, leaving
// later defaulting (Resolve) to pick a fallback — except for genuine
// unifier errors (Conflict, OccursCheck), which propagate so the caller
// can fail this signature attempt.
func (e *Engine) Infer(formal, arg types.TypeId) error {
	return e.infer(formal, arg, 0)
}

const maxInferDepth = 64

func (e *Engine) infer(formal, arg types.TypeId, depth int) error {
	if depth > maxInferDepth {
		return nil
	}

	formalKey, formalOk := e.B.Lookup(formal)
	if formalOk {
		switch fk := formalKey.(type) {
		case interner.TypeParameterKey:
			if v, ok := e.Ctx.FindTypeParam(fk.Info.Name); ok {
				return e.Ctx.UnifyVarType(v, arg)
			}
			return nil
		case interner.ArrayKey:
			if ak, ok := e.B.Lookup(arg); ok {
				if a, ok := ak.(interner.ArrayKey); ok {
					return e.infer(fk.Elem, a.Elem, depth+1)
				}
			}
			return nil
		case interner.TupleKey:
			return e.inferTuple(fk, arg, depth)
		case interner.ObjectKey:
			return e.inferObject(fk, arg, depth)
		case interner.FunctionKey:
			return e.inferCallable(fk, arg, depth)
		case interner.CallableKey:
			return e.inferCallable(fk, arg, depth)
		case interner.IndexAccessKey:
			return e.inferIndexAccess(fk, arg, depth)
		case interner.KeyOfKey:
			return e.inferKeyOf(fk, arg, depth)
		case interner.MappedKey:
			return e.inferMapped(fk, arg, depth)
		case interner.TemplateLiteralKey:
			return e.inferTemplateLiteral(fk, arg, depth)
		case interner.ConditionalKey:
			return e.inferConditional(fk, arg, depth)
		case interner.ReadonlyKey:
			if inner, ok := e.B.IsReadonly(arg); ok {
				return e.infer(fk.Inner, inner, depth+1)
			}
			return e.infer(fk.Inner, arg, depth+1)
		}
	}
	return nil
}

func (e *Engine) inferTuple(fk interner.TupleKey, arg types.TypeId, depth int) error {
	ak, ok := e.B.Lookup(arg)
	if !ok {
		return nil
	}
	a, ok := ak.(interner.TupleKey)
	if !ok {
		return nil
	}
	felems := e.B.In.TupleList(fk.Elems)
	aelems := e.B.In.TupleList(a.Elems)
	n := len(felems)
	if len(aelems) < n {
		n = len(aelems)
	}
	for i := 0; i < n; i++ {
		if err := e.infer(felems[i].Type, aelems[i].Type, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) inferObject(fk interner.ObjectKey, arg types.TypeId, depth int) error {
	ak, ok := e.B.Lookup(arg)
	if !ok {
		return nil
	}
	var argShape interner.ObjectShape
	switch a := ak.(type) {
	case interner.ObjectKey:
		argShape = e.B.In.ObjectShape(a.Shape)
	case interner.CallableKey:
		argShape = interner.ObjectShape{Properties: e.B.In.CallableShape(a.Shape).Properties}
	case interner.FunctionKey:
		argShape = interner.ObjectShape{Properties: e.B.In.CallableShape(a.Shape).Properties}
	default:
		return nil
	}

	formalShape := e.B.In.ObjectShape(fk.Shape)
	for _, fp := range formalShape.Properties {
		for _, ap := range argShape.Properties {
			if ap.Name == fp.Name {
				if err := e.infer(fp.ReadType, ap.ReadType, depth+1); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func (e *Engine) inferCallable(fk interface{}, arg types.TypeId, depth int) error {
	var formalShape interner.CallableShape
	switch f := fk.(type) {
	case interner.FunctionKey:
		formalShape = e.B.In.CallableShape(f.Shape)
	case interner.CallableKey:
		formalShape = e.B.In.CallableShape(f.Shape)
	default:
		return nil
	}

	var argShape interner.CallableShape
	ok := false
	if ak, found := e.B.Lookup(arg); found {
		switch a := ak.(type) {
		case interner.FunctionKey:
			argShape = e.B.In.CallableShape(a.Shape)
			ok = true
		case interner.CallableKey:
			argShape = e.B.In.CallableShape(a.Shape)
			ok = true
		}
	}
	if !ok || len(formalShape.CallSignatures) == 0 || len(argShape.CallSignatures) == 0 {
		return nil
	}

	fsig := formalShape.CallSignatures[0]
	asig := argShape.CallSignatures[0]
	n := len(fsig.Params)
	if len(asig.Params) < n {
		n = len(asig.Params)
	}
	// Parameter positions are contravariant in full TypeScript inference
	// (candidates collected there are intersected rather than unioned);
	// this unifier keeps a single first-binding-wins slot per variable, so
	// the practical effect that matters here is simply pairing each
	// declared parameter against its concrete counterpart position-for-
	// position — the formal side still supplies the pattern.
	for i := 0; i < n; i++ {
		if err := e.infer(fsig.Params[i].Type, asig.Params[i].Type, depth+1); err != nil {
			return err
		}
	}
	return e.infer(fsig.ReturnType, asig.ReturnType, depth+1)
}

func (e *Engine) inferIndexAccess(fk interner.IndexAccessKey, arg types.TypeId, depth int) error {
	keyAtom, ok := literalStringAtomOf(e.B, fk.Key)
	if !ok {
		return nil
	}
	objKey, ok := e.B.Lookup(fk.Object)
	if !ok {
		return nil
	}
	obj, ok := objKey.(interner.ObjectKey)
	if !ok {
		return nil
	}
	shape := e.B.In.ObjectShape(obj.Shape)
	for _, p := range shape.Properties {
		if e.B.In.AtomText(p.Name) == keyAtom {
			return e.infer(p.ReadType, arg, depth+1)
		}
	}
	return nil
}

func (e *Engine) inferKeyOf(fk interner.KeyOfKey, arg types.TypeId, depth int) error {
	operandKey, ok := e.B.Lookup(fk.Operand)
	if !ok {
		return nil
	}
	tp, ok := operandKey.(interner.TypeParameterKey)
	if !ok {
		return nil
	}
	v, ok := e.Ctx.FindTypeParam(tp.Info.Name)
	if !ok {
		return nil
	}

	keys, ok := literalKeysOf(e.B, arg)
	if !ok {
		return nil
	}
	props := make([]interner.Property, 0, len(keys))
	for _, k := range keys {
		props = append(props, interner.Property{Name: e.B.In.InternString(k), ReadType: types.Unknown})
	}
	shape := e.B.Object(interner.ObjectShape{Properties: props})
	return e.Ctx.UnifyVarType(v, shape)
}

func (e *Engine) inferMapped(fk interner.MappedKey, arg types.TypeId, depth int) error {
	keys, ok := literalKeysOf(e.B, fk.Constraint)
	if !ok {
		ak, ok := e.B.Lookup(fk.Constraint)
		if !ok {
			return nil
		}
		kk, ok := ak.(interner.KeyOfKey)
		if !ok {
			return nil
		}
		shapeKey, ok := e.B.Lookup(kk.Operand)
		if !ok {
			return nil
		}
		obj, ok := shapeKey.(interner.ObjectKey)
		if !ok {
			return nil
		}
		shape := e.B.In.ObjectShape(obj.Shape)
		keys = nil
		for _, p := range shape.Properties {
			keys = append(keys, e.B.In.AtomText(p.Name))
		}
	}

	argKey, ok := e.B.Lookup(arg)
	if !ok {
		return nil
	}
	argObj, ok := argKey.(interner.ObjectKey)
	if !ok {
		return nil
	}
	argShape := e.B.In.ObjectShape(argObj.Shape)

	for _, k := range keys {
		nameAtom := e.B.In.InternString(k)
		var propType types.TypeId
		found := false
		for _, p := range argShape.Properties {
			if p.Name == nameAtom {
				propType = p.ReadType
				found = true
				break
			}
		}
		if !found {
			continue
		}
		sub := subst.New()
		sub.Bind(fk.IVar, e.B.LiteralString(k))
		instantiated := subst.Instantiate(e.B, fk.Template, sub)
		if err := e.infer(instantiated, propType, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) inferTemplateLiteral(fk interner.TemplateLiteralKey, arg types.TypeId, depth int) error {
	lit, ok := literalStringAtomOf(e.B, arg)
	if !ok {
		return nil
	}
	spans := e.B.In.TemplateList(fk.Spans)

	rest := lit
	for i, span := range spans {
		if !span.IsType {
			if !strings.HasPrefix(rest, span.Text) {
				return nil
			}
			rest = rest[len(span.Text):]
			continue
		}
		// A type-hole span: consume up to the next fixed-text anchor (or
		// the whole remainder if this is the last span).
		var captured string
		if i+1 < len(spans) && !spans[i+1].IsType && spans[i+1].Text != "" {
			idx := strings.Index(rest, spans[i+1].Text)
			if idx < 0 {
				return nil
			}
			captured, rest = rest[:idx], rest[idx:]
		} else {
			captured, rest = rest, ""
		}
		if err := e.infer(span.Type, e.B.LiteralString(captured), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) inferConditional(fk interner.ConditionalKey, arg types.TypeId, depth int) error {
	if e.Sub != nil && e.Sub.IsSubtype(fk.Check, fk.Extends, subtype.Mode{}) {
		return e.infer(fk.TrueBranch, arg, depth+1)
	}
	if err := e.infer(fk.TrueBranch, arg, depth+1); err != nil {
		return err
	}
	return e.infer(fk.FalseBranch, arg, depth+1)
}

func literalStringAtomOf(b *types.Builder, id types.TypeId) (string, bool) {
	key, ok := b.Lookup(id)
	if !ok {
		return "", false
	}
	l, ok := key.(interner.LiteralStringKey)
	if !ok {
		return "", false
	}
	return b.In.AtomText(l.Value), true
}

// literalKeysOf expands a bare literal string, a union of literal
// strings, or a keyof-of-object-shape into its finite set of key texts.
func literalKeysOf(b *types.Builder, id types.TypeId) ([]string, bool) {
	if s, ok := literalStringAtomOf(b, id); ok {
		return []string{s}, true
	}
	key, ok := b.Lookup(id)
	if !ok {
		return nil, false
	}
	if u, ok := key.(interner.UnionKey); ok {
		members := b.In.TypeList(u.Members)
		out := make([]string, 0, len(members))
		for _, m := range members {
			s, ok := literalStringAtomOf(b, m)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
