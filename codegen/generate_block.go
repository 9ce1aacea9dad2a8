package codegen

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/report"
)

// generateBlock generates a block of statements.
func (g *Generator) generateBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		switch v := stmt.(type) {
		case *ast.VarDecl:
			g.generateVarDecl(v)
		case *ast.Assignment:
			g.generateAssignment(v)
		case *ast.ReturnStmt:
			g.generateReturnStmt(v)

			// All code after a return is dead.
			return
		case *ast.ExprStmt:
			g.generateExpr(v.Expr)
		case *ast.Block:
			g.generateBlock(v)
		default:
			report.ReportICE("codegen for statement not implemented: %T", stmt)
		}
	}
}
