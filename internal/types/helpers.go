package types

import "github.com/gotsc/gotsc/internal/interner"

// TypeId, Atom and the reserved constants are re-exported so consumers of
// package types rarely need to import package interner directly.
type (
	TypeId = interner.TypeId
	Atom   = interner.Atom
)

const (
	Any       = interner.Any
	Unknown   = interner.Unknown
	Never     = interner.Never
	ErrorType = interner.ErrorType
	Void      = interner.Void
	Null      = interner.Null
	Undefined = interner.Undefined
	String    = interner.String
	Number    = interner.Number
	Boolean   = interner.Boolean
	BigInt    = interner.BigInt
	Symbol    = interner.Symbol
	Object    = interner.Object
	Function  = interner.Function
	This      = interner.This
)

// IsNever, IsAny, IsUnknown, IsErrorType report identity against the
// reserved constants; these never require an interner lookup.
func IsNever(id TypeId) bool     { return id == Never }
func IsAny(id TypeId) bool       { return id == Any }
func IsUnknown(id TypeId) bool   { return id == Unknown }
func IsErrorType(id TypeId) bool { return id == ErrorType }

// Kind returns the variant discriminator of a non-reserved TypeId's key, or
// false if id is reserved (reserved ids have no interned key).
func (b *Builder) Kind(id TypeId) (interner.Kind, bool) {
	key, ok := b.In.Lookup(id)
	if !ok {
		return 0, false
	}
	return key.Kind(), true
}

// Lookup exposes the raw interned key. Prefer the typed accessors in
// query.go (package query) outside of the algebra/visitor/subtype core —
// this exists so sibling core packages (visitor, variance, subst, subtype,
// inference) can reach the interned key through the Builder they already
// hold.
func (b *Builder) Lookup(id TypeId) (interner.TypeKey, bool) {
	return b.In.Lookup(id)
}
