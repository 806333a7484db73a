// Package inference implements the type-variable unifier (spec.md §4.H):
// a union-find store of inference variables, an occurs check that
// descends through every structural type form, and the per-pair
// inference rules a call evaluator drives one formal/argument pair at a
// time.
package inference

import (
	"fmt"

	"github.com/gotsc/gotsc/internal/interner"
	"github.com/gotsc/gotsc/internal/types"
)

// Var names an inference variable: a union-find node that is either still
// free, bound to another var (after UnifyVars), or resolved to a concrete
// TypeId.
type Var uint32

// ConflictError reports two incompatible concrete types forced into the
// same variable.
type ConflictError struct {
	A, B types.TypeId
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("inference conflict: %v vs %v", e.A, e.B)
}

// OccursCheckError reports an attempt to bind a variable to a type that
// structurally contains that same variable (directly, via a matching type
// parameter name).
type OccursCheckError struct {
	Var  Var
	Type types.TypeId
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("inference occurs check failed for var %d against type %v", e.Var, e.Type)
}

type varRecord struct {
	parent  Var // self if root
	name    interner.Atom
	hasName bool
	bound   types.TypeId
	hasBound bool
}

// Context is the per-call (or per-signature-attempt) unification state.
// Each call/new expression attempt gets a fresh Context so that a failed
// overload never leaks variable bindings into the next attempt.
type Context struct {
	b      *types.Builder
	vars   []varRecord
	byName map[interner.Atom]Var
}

// New creates an empty inference context over b's type graph.
func New(b *types.Builder) *Context {
	return &Context{b: b, byName: make(map[interner.Atom]Var)}
}

// FreshVar allocates an anonymous inference variable.
func (c *Context) FreshVar() Var {
	v := Var(len(c.vars))
	c.vars = append(c.vars, varRecord{parent: v})
	return v
}

// FreshTypeParam allocates an inference variable standing for the generic
// type parameter named name, discoverable later via FindTypeParam.
func (c *Context) FreshTypeParam(name interner.Atom) Var {
	v := Var(len(c.vars))
	c.vars = append(c.vars, varRecord{parent: v, name: name, hasName: true})
	c.byName[name] = v
	return v
}

// FindTypeParam looks up the variable standing for a previously registered
// type-parameter name.
func (c *Context) FindTypeParam(name interner.Atom) (Var, bool) {
	v, ok := c.byName[name]
	return v, ok
}

func (c *Context) find(v Var) Var {
	for c.vars[v].parent != v {
		c.vars[v].parent = c.vars[c.vars[v].parent].parent // path halving
		v = c.vars[v].parent
	}
	return v
}

// Probe returns the concrete type a variable currently resolves to, if any.
func (c *Context) Probe(v Var) (types.TypeId, bool) {
	root := c.find(v)
	rec := c.vars[root]
	if !rec.hasBound {
		return 0, false
	}
	return rec.bound, true
}

// UnifyVarType binds v (or its union-find root) to t. Binding to a second,
// structurally distinct concrete type is a Conflict; binding to a type
// that itself mentions v's own type-parameter name is an OccursCheck
// failure.
func (c *Context) UnifyVarType(v Var, t types.TypeId) error {
	root := c.find(v)
	rec := c.vars[root]

	if rec.hasName {
		if occurs(c.b, t, rec.name) {
			return &OccursCheckError{Var: root, Type: t}
		}
	}

	if rec.hasBound {
		if rec.bound == t {
			return nil
		}
		return &ConflictError{A: rec.bound, B: t}
	}

	c.vars[root] = varRecord{parent: root, name: rec.name, hasName: rec.hasName, bound: t, hasBound: true}
	return nil
}

// UnifyVars merges two variables into the same union-find class,
// propagating either side's existing binding onto the merged root.
func (c *Context) UnifyVars(a, b Var) error {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return nil
	}

	recA, recB := c.vars[ra], c.vars[rb]
	switch {
	case recA.hasBound && recB.hasBound:
		if recA.bound != recB.bound {
			return &ConflictError{A: recA.bound, B: recB.bound}
		}
		c.vars[rb].parent = ra
	case recA.hasBound:
		c.vars[rb].parent = ra
	case recB.hasBound:
		c.vars[ra].parent = rb
	default:
		c.vars[rb].parent = ra
	}
	return nil
}
