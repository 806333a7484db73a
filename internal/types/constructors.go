package types

import "github.com/gotsc/gotsc/internal/interner"

// Array interns Array<elem>.
func (b *Builder) Array(elem TypeId) TypeId {
	return b.intern(interner.ArrayKey{Elem: elem})
}

// Tuple interns a tuple type from its ordered elements.
func (b *Builder) Tuple(elems []interner.TupleElement) TypeId {
	list := b.In.InternTupleList(elems)
	return b.intern(interner.TupleKey{Elems: list})
}

// TupleElements returns the elements of a Tuple TypeId, or nil if id is not
// a tuple.
func (b *Builder) TupleElements(id TypeId) ([]interner.TupleElement, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return nil, false
	}
	t, ok := key.(interner.TupleKey)
	if !ok {
		return nil, false
	}
	return b.In.TupleList(t.Elems), true
}

// Object interns an object shape as an Object(shape) type.
func (b *Builder) Object(shape interner.ObjectShape) TypeId {
	id := b.In.InternObjectShape(shape)
	return b.intern(interner.ObjectKey{Shape: id})
}

// ObjectShape returns the shape backing an Object TypeId.
func (b *Builder) ObjectShape(id TypeId) (interner.ObjectShape, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return interner.ObjectShape{}, false
	}
	o, ok := key.(interner.ObjectKey)
	if !ok {
		return interner.ObjectShape{}, false
	}
	return b.In.ObjectShape(o.Shape), true
}

// Callable interns a multi-signature callable shape.
func (b *Builder) Callable(shape interner.CallableShape) TypeId {
	id := b.In.InternCallableShape(shape)
	return b.intern(interner.CallableKey{Shape: id})
}

// Function interns the common case of a single call signature. Function and
// a single-call-signature Callable share a CallableShapeId but intern to
// distinct TypeIds — see interner.FunctionKey's doc comment and DESIGN.md
// Open Question #1.
func (b *Builder) Function(sig interner.CallSignature) TypeId {
	shape := interner.CallableShape{CallSignatures: []interner.CallSignature{sig}}
	id := b.In.InternCallableShape(shape)
	return b.intern(interner.FunctionKey{Shape: id})
}

// CallableShapeOf returns the shape behind either a Callable or a Function
// TypeId, normalizing both to the same CallableShape view — the one place
// callers should look instead of special-casing Kind() == Function.
func (b *Builder) CallableShapeOf(id TypeId) (interner.CallableShape, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return interner.CallableShape{}, false
	}
	switch k := key.(type) {
	case interner.CallableKey:
		return b.In.CallableShape(k.Shape), true
	case interner.FunctionKey:
		return b.In.CallableShape(k.Shape), true
	default:
		return interner.CallableShape{}, false
	}
}

// Application interns Base<Args...> without evaluating it; evaluation is
// package application's job (spec.md §4.F).
func (b *Builder) Application(base TypeId, args []TypeId) TypeId {
	list := b.In.InternTypeList(args)
	return b.intern(interner.ApplicationKey{Base: base, Args: list})
}

// ApplicationInfo returns (base, args) for an Application TypeId.
func (b *Builder) ApplicationInfo(id TypeId) (TypeId, []TypeId, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return 0, nil, false
	}
	a, ok := key.(interner.ApplicationKey)
	if !ok {
		return 0, nil, false
	}
	return a.Base, b.In.TypeList(a.Args), true
}

// LiteralString interns a string singleton type.
func (b *Builder) LiteralString(s string) TypeId {
	return b.intern(interner.LiteralStringKey{Value: b.In.InternString(s)})
}

// LiteralNumber interns a numeric singleton type.
func (b *Builder) LiteralNumber(n float64) TypeId {
	return b.intern(interner.LiteralNumberKey{Value: n})
}

// LiteralBigInt interns a bigint singleton type from its canonical decimal
// text (bigints have no float64 representation).
func (b *Builder) LiteralBigInt(text string) TypeId {
	return b.intern(interner.LiteralBigIntKey{Value: b.In.InternString(text)})
}

// LiteralBoolean interns a boolean singleton type.
func (b *Builder) LiteralBoolean(v bool) TypeId {
	return b.intern(interner.LiteralBooleanKey{Value: v})
}

// TemplateLiteral interns an ordered sequence of text/type spans.
func (b *Builder) TemplateLiteral(spans []interner.TemplateSpan) TypeId {
	list := b.In.InternTemplateList(spans)
	return b.intern(interner.TemplateLiteralKey{Spans: list})
}

// TemplateSpans returns the spans backing a TemplateLiteral TypeId.
func (b *Builder) TemplateSpans(id TypeId) ([]interner.TemplateSpan, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return nil, false
	}
	t, ok := key.(interner.TemplateLiteralKey)
	if !ok {
		return nil, false
	}
	return b.In.TemplateList(t.Spans), true
}

// TypeParameter interns a free type-variable occurrence within its
// declaring scope.
func (b *Builder) TypeParameter(info interner.TypeParamInfo) TypeId {
	return b.intern(interner.TypeParameterKey{Info: info})
}

// Infer interns an `infer X` slot within a conditional's extends clause.
func (b *Builder) Infer(info interner.TypeParamInfo) TypeId {
	return b.intern(interner.InferKey{Info: info})
}

// Conditional interns `check extends extendsTy ? t : f`. Lazy: not
// evaluated at construction (spec.md §4.B).
func (b *Builder) Conditional(check, extends, trueBranch, falseBranch TypeId, distributive bool) TypeId {
	return b.intern(interner.ConditionalKey{
		Check: check, Extends: extends, TrueBranch: trueBranch, FalseBranch: falseBranch,
		Distributive: distributive,
	})
}

// Mapped interns `{ [ivar in constraint as nameType]: template }`. Lazy.
func (b *Builder) Mapped(ivar Atom, constraint, nameType, template TypeId, readonlyMod, optionalMod interner.MappedMod) TypeId {
	return b.intern(interner.MappedKey{
		IVar: ivar, Constraint: constraint, NameType: nameType, Template: template,
		ReadonlyMod: readonlyMod, OptionalMod: optionalMod,
	})
}

// IndexAccess interns `object[key]`. Lazy.
func (b *Builder) IndexAccess(object, key TypeId) TypeId {
	return b.intern(interner.IndexAccessKey{Object: object, Key: key})
}

// KeyOf interns `keyof operand`. Lazy.
func (b *Builder) KeyOf(operand TypeId) TypeId {
	return b.intern(interner.KeyOfKey{Operand: operand})
}

// Reference interns the legacy Ref(symbol) form.
func (b *Builder) Reference(symbol uint32) TypeId {
	return b.intern(interner.RefKey{Symbol: symbol})
}

// Lazy interns the preferred Lazy(defId) symbolic-reference form.
func (b *Builder) Lazy(defID uint32) TypeId {
	return b.intern(interner.LazyKey{Def: defID})
}

// TypeQuery interns the `typeof X` construct.
func (b *Builder) TypeQuery(symbol uint32) TypeId {
	return b.intern(interner.TypeQueryKey{Symbol: symbol})
}

// Enum interns a nominal enum-member wrapper.
func (b *Builder) Enum(defID uint32, member TypeId) TypeId {
	return b.intern(interner.EnumKey{Def: defID, Member: member})
}

// StringIntrinsic interns Uppercase<T>/Lowercase<T>/Capitalize<T>/Uncapitalize<T>.
func (b *Builder) StringIntrinsic(op interner.StringIntrinsicKind, arg TypeId) TypeId {
	return b.intern(interner.StringIntrinsicKey{Op: op, Arg: arg})
}

// ModuleNamespace interns a module namespace reference.
func (b *Builder) ModuleNamespace(symbol uint32) TypeId {
	return b.intern(interner.ModuleNamespaceKey{Symbol: symbol})
}

// Recursive and BoundParameter intern the De Bruijn closure forms; no
// other code in this repository constructs them.
func (b *Builder) Recursive(index uint32) TypeId      { return b.intern(interner.RecursiveKey{Index: index}) }
func (b *Builder) BoundParameter(index uint32) TypeId { return b.intern(interner.BoundParameterKey{Index: index}) }
