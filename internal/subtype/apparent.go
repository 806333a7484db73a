package subtype

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// apparentKind names which primitive wrapper's members apply.
type apparentKind int

const (
	apparentNone apparentKind = iota
	apparentString
	apparentNumber
	apparentBoolean
	apparentBigInt
	apparentSymbol
)

func apparentKindToTypeID(k apparentKind) types.TypeId {
	switch k {
	case apparentString:
		return interner.String
	case apparentNumber:
		return interner.Number
	case apparentBoolean:
		return interner.Boolean
	case apparentBigInt:
		return interner.BigInt
	case apparentSymbol:
		return interner.Symbol
	default:
		return interner.Never
	}
}

// apparentPrimitiveKind reports whether id is (or behaves like, for
// member-lookup purposes) one of the five primitive wrapper kinds:
// the bare intrinsic, a literal of that kind, or (string only) a
// template-literal type.
func apparentPrimitiveKind(b *types.Builder, id types.TypeId, key interner.TypeKey) (apparentKind, bool) {
	switch id {
	case interner.String:
		return apparentString, true
	case interner.Number:
		return apparentNumber, true
	case interner.Boolean:
		return apparentBoolean, true
	case interner.BigInt:
		return apparentBigInt, true
	case interner.Symbol:
		return apparentSymbol, true
	}
	if key == nil {
		return apparentNone, false
	}
	switch key.(type) {
	case interner.LiteralStringKey:
		return apparentString, true
	case interner.LiteralNumberKey:
		return apparentNumber, true
	case interner.LiteralBigIntKey:
		return apparentBigInt, true
	case interner.LiteralBooleanKey:
		return apparentBoolean, true
	case interner.TemplateLiteralKey:
		return apparentString, true
	default:
		return apparentNone, false
	}
}

// checkApparentPrimitiveAgainstObject compares the wrapper shape of a
// primitive kind against a structural object target — how `"x".length`
// style member access gets type-checked without ever boxing a value at
// runtime.
func (c *Checker) checkApparentPrimitiveAgainstObject(primitiveID types.TypeId, target interner.ObjectShape, mode Mode) bool {
	shape := c.apparentPrimitiveShape(primitiveID)
	return c.checkObjectSubtype(shape, target, mode)
}

// apparentPrimitiveShape builds the member shape exposed by a primitive
// value for property access and structural comparisons. The member set
// is intentionally minimal — the handful of members every TypeScript
// lib.d.ts declares for these wrapper types that expression evaluation
// actually needs to type-check (`.length`, `.toString()`, `.valueOf()`)
// rather than the full lib surface, which belongs to a loaded library
// file, not the checker core.
func (c *Checker) apparentPrimitiveShape(primitiveID types.TypeId) interner.ObjectShape {
	toStringMethod := c.apparentMethodType(interner.String)
	valueOfMethod := func(ret types.TypeId) interner.Property {
		return interner.Property{Name: c.b.In.InternString("valueOf"), ReadType: c.apparentMethodType(ret), WriteType: c.apparentMethodType(ret), Readonly: true, Method: true}
	}

	switch primitiveID {
	case interner.String:
		return interner.ObjectShape{
			Properties: []interner.Property{
				{Name: c.b.In.InternString("length"), ReadType: interner.Number, WriteType: interner.Number, Readonly: true},
				{Name: c.b.In.InternString("charAt"), ReadType: c.apparentMethodType(interner.String), WriteType: c.apparentMethodType(interner.String), Readonly: true, Method: true},
				{Name: c.b.In.InternString("concat"), ReadType: c.apparentMethodType(interner.String), WriteType: c.apparentMethodType(interner.String), Readonly: true, Method: true},
				{Name: c.b.In.InternString("toString"), ReadType: toStringMethod, WriteType: toStringMethod, Readonly: true, Method: true},
				valueOfMethod(interner.String),
			},
			NumberIndex: &interner.IndexSignature{ValueType: interner.String, Readonly: false},
		}
	case interner.Number:
		return interner.ObjectShape{
			Properties: []interner.Property{
				{Name: c.b.In.InternString("toFixed"), ReadType: c.apparentMethodType(interner.String), WriteType: c.apparentMethodType(interner.String), Readonly: true, Method: true},
				{Name: c.b.In.InternString("toPrecision"), ReadType: c.apparentMethodType(interner.String), WriteType: c.apparentMethodType(interner.String), Readonly: true, Method: true},
				{Name: c.b.In.InternString("toString"), ReadType: toStringMethod, WriteType: toStringMethod, Readonly: true, Method: true},
				valueOfMethod(interner.Number),
			},
		}
	case interner.Boolean:
		return interner.ObjectShape{
			Properties: []interner.Property{
				{Name: c.b.In.InternString("toString"), ReadType: toStringMethod, WriteType: toStringMethod, Readonly: true, Method: true},
				valueOfMethod(interner.Boolean),
			},
		}
	case interner.BigInt:
		return interner.ObjectShape{
			Properties: []interner.Property{
				{Name: c.b.In.InternString("toString"), ReadType: toStringMethod, WriteType: toStringMethod, Readonly: true, Method: true},
				valueOfMethod(interner.BigInt),
			},
		}
	case interner.Symbol:
		return interner.ObjectShape{
			Properties: []interner.Property{
				{Name: c.b.In.InternString("description"), ReadType: interner.String, WriteType: interner.String, Readonly: true},
				{Name: c.b.In.InternString("toString"), ReadType: toStringMethod, WriteType: toStringMethod, Readonly: true, Method: true},
				valueOfMethod(interner.Symbol),
			},
		}
	default:
		return interner.ObjectShape{}
	}
}

func (c *Checker) apparentMethodType(returnType types.TypeId) types.TypeId {
	return c.b.Function(interner.CallSignature{ReturnType: returnType})
}

// ApparentShapeOf is the exported form of apparentPrimitiveKind +
// apparentPrimitiveShape, for collaborators outside this package (property
// access, spec.md §4.J) that need `"x".length`-style member lookup against
// one of the five primitive wrapper shapes without duplicating the wrapper
// member tables here.
func (c *Checker) ApparentShapeOf(id types.TypeId) (interner.ObjectShape, bool) {
	key, _ := c.b.Lookup(id)
	kind, ok := apparentPrimitiveKind(c.b, id, key)
	if !ok {
		return interner.ObjectShape{}, false
	}
	return c.apparentPrimitiveShape(apparentKindToTypeID(kind)), true
}
