// Package resolver defines the two collaborator contracts the checking
// core depends on without ever importing the binder or parser directly
// (spec.md §6): TypeResolver answers symbol/definition questions, and
// NodeArena answers AST-shape questions. Every core package (application,
// subtype, inference, calleval, propaccess, expreval) is written against
// these interfaces so the core is reusable from a checker whose binder and
// AST representation it never needs to see.
package resolver

import "github.com/gotsc/gotsc/internal/interner"

// SymbolFlags is a bitmask describing what kind of declaration a symbol
// binds to.
type SymbolFlags uint16

const (
	Class SymbolFlags = 1 << iota
	Interface
	Type
	Value
	TypeAlias
	Abstract
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// DefID identifies a type-bearing declaration (a class, interface, type
// alias, or generic function) the binder already resolved during an
// earlier pass. Symbol identifies a name binding in scope; the two overlap
// but are not interchangeable — a DefID always carries type parameters and
// a body, a Symbol may resolve to a value with no type-level meaning.
type (
	DefID  = uint32
	Symbol = uint32
)

// TypeResolver is the binder collaborator contract. All other binder
// features — file-local lookup, merged declarations, lib-file loading —
// are handled before the resolver is ever invoked; by the time core code
// asks, the answer is a plain TypeId or parameter list.
type TypeResolver interface {
	// Resolve returns the declared body type of a definition or symbol.
	Resolve(id DefID) (TypeId, bool)
	// TypeParams returns the ordered formal type parameters a definition
	// declares, or (nil, false) if it declares none.
	TypeParams(id DefID) ([]interner.TypeParamInfo, bool)
	// SymbolFlags reports what kind of declaration symbol binds to.
	SymbolFlags(symbol Symbol) SymbolFlags
	// LookupName resolves atom within scope to the symbol it names.
	LookupName(scope Symbol, atom interner.Atom) (Symbol, bool)
}

// TypeId is re-exported to keep this package's public surface
// self-contained for implementers outside the module.
type TypeId = interner.TypeId

// NodeID is an opaque handle into the host's AST; the core never
// dereferences it except through NodeArena.
type NodeID uint32

// CallLikeNode is the shared shape of call and new expressions.
type CallLikeNode struct {
	Callee        NodeID
	TypeArguments []NodeID
	Arguments     []NodeID
	OptionalChain bool
}

// PropertyAccessNode is `expr.name` or `expr?.name`.
type PropertyAccessNode struct {
	Expression  NodeID
	Name        interner.Atom
	QuestionDot bool
}

// ElementAccessNode is `expr[index]` or `expr?.[index]`.
type ElementAccessNode struct {
	Expression  NodeID
	Index       NodeID
	QuestionDot bool
}

// ObjectLiteralElementKind discriminates the members of ObjectLiteralNode.
type ObjectLiteralElementKind int

const (
	PropertyAssignment ObjectLiteralElementKind = iota
	ShorthandProperty
	SpreadProperty
	MethodProperty
	AccessorProperty
)

// ObjectLiteralElement is one member of an object-literal node.
type ObjectLiteralElement struct {
	Kind  ObjectLiteralElementKind
	Name  interner.Atom
	Value NodeID
}

// ConditionalExpressionNode is `cond ? whenTrue : whenFalse`.
type ConditionalExpressionNode struct {
	Condition, WhenTrue, WhenFalse NodeID
}

// FunctionLikeNode covers both arrow functions and function expressions.
type FunctionLikeNode struct {
	Params     []NodeID
	Body       NodeID
	IsArrow    bool
	TypeParams []interner.TypeParamInfo
}

// BinaryExpressionNode is `left op right`.
type BinaryExpressionNode struct {
	Left, Right NodeID
	Operator    string
}

// CompositeTypeKind discriminates union/intersection type nodes.
type CompositeTypeKind int

const (
	UnionTypeNode CompositeTypeKind = iota
	IntersectionTypeNode
)

// TypeOperatorKind discriminates the unary type-level operators.
type TypeOperatorKind int

const (
	KeyOfOperator TypeOperatorKind = iota
	ReadonlyOperator
	UniqueOperator
)

// NodeArena is the AST collaborator contract (spec.md §6). No node kind
// outside this set is ever inspected by the core.
type NodeArena interface {
	IdentifierText(id NodeID) (interner.Atom, bool)
	LiteralValue(id NodeID) (interner.TypeKey, bool)

	CallExpression(id NodeID) (CallLikeNode, bool)
	NewExpression(id NodeID) (CallLikeNode, bool)

	PropertyAccess(id NodeID) (PropertyAccessNode, bool)
	ElementAccess(id NodeID) (ElementAccessNode, bool)

	ObjectLiteral(id NodeID) ([]ObjectLiteralElement, bool)
	ArrayLiteral(id NodeID) ([]NodeID, bool)
	Parenthesized(id NodeID) (NodeID, bool)
	ConditionalExpression(id NodeID) (ConditionalExpressionNode, bool)
	FunctionLike(id NodeID) (FunctionLikeNode, bool)
	TemplateExpression(id NodeID) ([]NodeID, bool)
	BinaryExpression(id NodeID) (BinaryExpressionNode, bool)

	CompositeType(id NodeID) (CompositeTypeKind, []NodeID, bool)
	TypeOperator(id NodeID) (TypeOperatorKind, NodeID, bool)
	TypeReference(id NodeID) (Symbol, []NodeID, bool)
	TypeQuery(id NodeID) (Symbol, bool)
	ImportType(id NodeID) (string, bool)
}
