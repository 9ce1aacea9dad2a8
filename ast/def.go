package ast

import (
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/types"
)

// Def represents a definition whose body requires semantic analysis.
type Def interface {
	ASTNode
}

// MethodDef represents the body definition of a declared method.  The
// declaration itself lives in the owning type's method table; this node only
// carries the body to analyze.
type MethodDef struct {
	ASTBase

	// The declared method this body belongs to.
	Method *types.Method

	// The static type of the receiver inside the body.
	SelfType types.Type

	// The parameter symbols.  Set during analysis.
	ParamSyms []*common.Symbol

	// The body to analyze.
	Body *Block
}

// FuncDef represents the body definition of a free function.
type FuncDef struct {
	ASTBase

	// The name of the function.
	Name string

	// The ordered parameter names of the function.
	ParamNames []string

	// The ordered parameter types of the function.
	ParamTypes []types.Type

	// The return type of the function.
	ReturnType types.Type

	// The parameter symbols.  Set during analysis.
	ParamSyms []*common.Symbol

	// The body to analyze.
	Body *Block
}
