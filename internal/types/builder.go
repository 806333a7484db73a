// Package types implements the algebra of type forms on top of package
// interner: smart constructors that normalize before hash-consing (union
// flattening, duplicate removal, readonly idempotence, ...) per spec.md
// §3.4 and §4.B. Nothing outside this package is permitted to call
// Interner.Intern directly with a non-canonical key.
package types

import "github.com/gotsc/gotsc/internal/interner"

// Builder is the smart-constructor façade over one compilation's Interner.
// Non-test code interns types only through it: every other package
// (subtype, inference, calleval, ...) builds types via Builder, while
// several of them still read interned keys back as interner.TypeKey values.
type Builder struct {
	In *interner.Interner
}

// New wraps an Interner with the normalizing smart constructors.
func New(in *interner.Interner) *Builder {
	return &Builder{In: in}
}

func (b *Builder) intern(key interner.TypeKey) interner.TypeId {
	return b.In.Intern(key)
}
