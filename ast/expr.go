package ast

import (
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/types"
)

// ASTExpr represents an expression, simple or complex.  All expression nodes
// implement the ASTExpr interface.
type ASTExpr interface {
	ASTNode

	// Type is the yielded type of the expression.
	Type() types.Type

	// SetType sets the type of the expression.
	SetType(types.Type)

	// Category is the value category of the expression.  It should be one of
	// the enumerated value categories.
	Category() int
}

// Enumeration of value categories.
const (
	LValue = iota
	RValue
)

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	typ types.Type
	cat int
}

// NewExprBase creates a new expression base with the given value category.
func NewExprBase(base ASTBase, cat int) ExprBase {
	return ExprBase{ASTBase: base, cat: cat}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

func (eb *ExprBase) Category() int {
	return eb.cat
}

// -----------------------------------------------------------------------------

// Enumeration of literal kinds.
const (
	LitInteger = iota
	LitReal
	LitBoolean
	LitSymbol
	LitNoValue
)

// Literal represents a literal value.
type Literal struct {
	ExprBase

	// The literal's kind: one of the enumerated literal kinds.
	Kind int

	// The source text of the literal.
	Value string
}

// Identifier represents a named reference to a symbol.
type Identifier struct {
	ExprBase

	// The name of the identifier.
	Name string

	// The symbol the identifier resolves to.  Set during analysis.
	Sym *common.Symbol
}

// SelfExpr represents a use of the receiver inside a method body.
type SelfExpr struct {
	ExprBase
}

// FieldAccess represents an access to a declared field of a value.
type FieldAccess struct {
	ExprBase

	// The expression whose field is accessed.
	Recv ASTExpr

	// The name of the accessed field.
	FieldName string

	// The resolved field.  Set during analysis.
	Field *types.Field
}

// -----------------------------------------------------------------------------

// MethodCall represents a method call expression: an operator use or a named
// call on a receiver.  Its resolution records whether the call lowers to a
// primitive intrinsic or to one of the dispatch strategies.
type MethodCall struct {
	ExprBase

	// The receiver expression.  Analyzed independently before the call is
	// resolved.
	Callee ASTExpr

	// The normalized name of the called method.
	Name string

	// The ordered argument expressions.
	Args []ASTExpr

	// The outcome of call analysis.  Never mutated after analysis completes;
	// consumed read-only by code generation.
	Resolution *CallResolution
}
