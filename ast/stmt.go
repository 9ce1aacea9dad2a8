package ast

import (
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/types"
)

// VarDecl represents a variable declaration statement.
type VarDecl struct {
	ASTBase

	// The name of the declared variable.
	Name string

	// Whether the variable is a mutable binding.
	Mutable bool

	// The declared type of the variable.  May be nil if the type should be
	// taken from the initializer.
	DeclType types.Type

	// The initializer expression.  May be nil only if DeclType is set.
	Init ASTExpr

	// The declared symbol.  Set during analysis.
	Sym *common.Symbol
}

// Assignment represents an assignment statement.
type Assignment struct {
	ASTBase

	// The assigned-to expression.
	LHS ASTExpr

	// The assigned value.
	RHS ASTExpr
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	ASTBase

	// The returned value.  May be nil for a bare return.
	Value ASTExpr
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	ASTBase

	// The wrapped expression.
	Expr ASTExpr
}
