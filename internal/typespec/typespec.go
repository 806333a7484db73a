// Package typespec is the JSON wire format cmd/gotsc reads type
// expressions from. spec.md treats the lexer/parser/binder that would
// turn real TypeScript source into types as an external boundary
// collaborator (§6's TypeResolver/NodeArena contracts) this repo never
// implements, so the CLI needs its own small, explicit input format
// rather than a TypeScript parser the core has no use for. Spec is a
// tagged JSON structure that maps one-to-one onto types.Builder's own
// smart constructors — it introduces no type algebra of its own, only a
// serialization of the constructors already named in spec.md §5's
// operations inventory.
package typespec

import (
	"fmt"

	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// Spec is one JSON-decoded type expression. Kind selects which fields
// are meaningful, mirroring the tagged-struct discipline this repo's
// Result types (application.Result, calleval.Result, ...) already use.
type Spec struct {
	Kind string `json:"kind"`

	// Kind == "primitive": Name is one of string/number/boolean/bigint/
	// any/unknown/never/void/null/undefined/object/symbol/this/error.
	Name string `json:"name,omitempty"`

	// Kind == "literalString"/"literalNumber"/"literalBigInt": Value
	// carries the literal's text (literalNumber is parsed as float64).
	Value string `json:"value,omitempty"`

	// Kind == "literalBoolean".
	Bool bool `json:"bool,omitempty"`

	// Kind == "array"/"readonly"/"keyof": Elem is the single operand.
	Elem *Spec `json:"elem,omitempty"`

	// Kind == "union"/"intersection"/"tuple": Members are the operands
	// (tuple members are always required, non-rest elements — a CLI
	// scenario format has no use for optional/rest tuple slots).
	Members []Spec `json:"members,omitempty"`

	// Kind == "object": Properties maps a property name to its read
	// type; every property is required and read-only in this format.
	Properties map[string]Spec `json:"properties,omitempty"`

	// Kind == "typeParameter": Name is the parameter's declared name;
	// Constraint/Default are optional.
	Constraint *Spec `json:"constraint,omitempty"`
	Default    *Spec `json:"default,omitempty"`
}

// Build interns s against b, returning the resulting TypeId.
func Build(b *types.Builder, s Spec) (types.TypeId, error) {
	switch s.Kind {
	case "primitive":
		id, ok := primitives[s.Name]
		if !ok {
			return 0, fmt.Errorf("typespec: unknown primitive %q", s.Name)
		}
		return id, nil

	case "literalString":
		return b.LiteralString(s.Value), nil
	case "literalNumber":
		var n float64
		if _, err := fmt.Sscanf(s.Value, "%g", &n); err != nil {
			return 0, fmt.Errorf("typespec: invalid literalNumber %q: %w", s.Value, err)
		}
		return b.LiteralNumber(n), nil
	case "literalBigInt":
		return b.LiteralBigInt(s.Value), nil
	case "literalBoolean":
		return b.LiteralBoolean(s.Bool), nil

	case "array":
		elem, err := requireElem(b, s)
		if err != nil {
			return 0, err
		}
		return b.Array(elem), nil

	case "readonly":
		elem, err := requireElem(b, s)
		if err != nil {
			return 0, err
		}
		return b.ReadonlyType(elem), nil

	case "keyof":
		elem, err := requireElem(b, s)
		if err != nil {
			return 0, err
		}
		return b.KeyOf(elem), nil

	case "union":
		members, err := buildAll(b, s.Members)
		if err != nil {
			return 0, err
		}
		return b.Union(members), nil

	case "intersection":
		members, err := buildAll(b, s.Members)
		if err != nil {
			return 0, err
		}
		return b.Intersection(members), nil

	case "tuple":
		elems := make([]interner.TupleElement, 0, len(s.Members))
		for _, m := range s.Members {
			id, err := Build(b, m)
			if err != nil {
				return 0, err
			}
			elems = append(elems, interner.TupleElement{Type: id})
		}
		return b.Tuple(elems), nil

	case "object":
		shape := interner.ObjectShape{}
		for name, propSpec := range s.Properties {
			id, err := Build(b, propSpec)
			if err != nil {
				return 0, err
			}
			shape.Properties = append(shape.Properties, interner.Property{
				Name: b.In.InternString(name), ReadType: id, WriteType: id, Readonly: true,
			})
		}
		return b.Object(shape), nil

	case "typeParameter":
		info := interner.TypeParamInfo{Name: b.In.InternString(s.Name)}
		if s.Constraint != nil {
			id, err := Build(b, *s.Constraint)
			if err != nil {
				return 0, err
			}
			info.Constraint = id
		}
		if s.Default != nil {
			id, err := Build(b, *s.Default)
			if err != nil {
				return 0, err
			}
			info.Default = id
		}
		return b.TypeParameter(info), nil

	default:
		return 0, fmt.Errorf("typespec: unknown kind %q", s.Kind)
	}
}

func requireElem(b *types.Builder, s Spec) (types.TypeId, error) {
	if s.Elem == nil {
		return 0, fmt.Errorf("typespec: %q requires \"elem\"", s.Kind)
	}
	return Build(b, *s.Elem)
}

func buildAll(b *types.Builder, specs []Spec) ([]types.TypeId, error) {
	ids := make([]types.TypeId, 0, len(specs))
	for _, s := range specs {
		id, err := Build(b, s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var primitives = map[string]types.TypeId{
	"string":    types.String,
	"number":    types.Number,
	"boolean":   types.Boolean,
	"bigint":    types.BigInt,
	"any":       types.Any,
	"unknown":   types.Unknown,
	"never":     types.Never,
	"void":      types.Void,
	"null":      types.Null,
	"undefined": types.Undefined,
	"object":    types.Object,
	"symbol":    types.Symbol,
	"this":      types.This,
	"error":     types.ErrorType,
}
