package ast

// Block represents a list of AST statements.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []ASTNode
}
