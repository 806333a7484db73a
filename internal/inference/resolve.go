package inference

import (
	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/subtype"
	"github.com/gotsc/gotsc/internal/types"
)

// Resolve finalizes one call's type parameters after an inference pass:
// each parameter's variable is probed; an unresolved variable falls back
// to its declared default, then its constraint, then unknown. A resolved
// type that violates its own constraint becomes ERROR rather than being
// silently accepted (spec.md §4.H).
func Resolve(b *types.Builder, sub *subtype.Checker, ctx *Context, typeParams []interner.TypeParamInfo) []types.TypeId {
	result := make([]types.TypeId, len(typeParams))
	for i, tp := range typeParams {
		v, ok := ctx.FindTypeParam(tp.Name)
		if !ok {
			result[i] = fallback(tp)
			continue
		}
		resolved, ok := ctx.Probe(v)
		if !ok {
			resolved = fallback(tp)
		}
		if tp.Constraint != interner.NoType && sub != nil {
			if !sub.IsSubtype(resolved, tp.Constraint, subtype.Mode{}) {
				resolved = types.ErrorType
			}
		}
		result[i] = resolved
	}
	return result
}

func fallback(tp interner.TypeParamInfo) types.TypeId {
	if tp.Default != interner.NoType {
		return tp.Default
	}
	if tp.Constraint != interner.NoType {
		return tp.Constraint
	}
	return types.Unknown
}
