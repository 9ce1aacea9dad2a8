package codegen

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/report"

	"github.com/llir/llvm/ir/constant"
)

// generateVarDecl generates a variable declaration.
func (g *Generator) generateVarDecl(vd *ast.VarDecl) {
	llType := g.convType(vd.Sym.Type)
	vd.Sym.LLValue = g.alloca(llType)

	if vd.Init != nil {
		g.block.NewStore(g.generateExpr(vd.Init), vd.Sym.LLValue)
	} else {
		g.block.NewStore(constant.NewZeroInitializer(llType), vd.Sym.LLValue)
	}
}

// generateAssignment generates an assignment statement.
func (g *Generator) generateAssignment(as *ast.Assignment) {
	rhs := g.generateExpr(as.RHS)

	switch v := as.LHS.(type) {
	case *ast.Identifier:
		g.block.NewStore(rhs, v.Sym.LLValue)
	case *ast.FieldAccess:
		g.block.NewStore(rhs, g.generateFieldAddr(v))
	default:
		report.ReportICE("assignment codegen not implemented for: %T", as.LHS)
	}
}

// generateReturnStmt generates a return statement.
func (g *Generator) generateReturnStmt(ret *ast.ReturnStmt) {
	if ret.Value == nil {
		g.block.NewRet(nil)
		return
	}

	g.block.NewRet(g.generateExpr(ret.Value))
}
