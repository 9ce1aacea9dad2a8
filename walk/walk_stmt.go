package walk

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"
)

// walkBlock walks a block of statements in a fresh enclosing scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope()
	defer w.popScope()

	for _, stmt := range block.Stmts {
		w.walkStmt(stmt)
	}
}

// walkStmt walks a statement AST node.
func (w *Walker) walkStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		w.walkVarDecl(v)
	case *ast.Assignment:
		w.walkAssignment(v)
	case *ast.ReturnStmt:
		w.walkReturnStmt(v)
	case *ast.ExprStmt:
		w.tryWalkExpr(v.Expr)
	case *ast.Block:
		w.walkBlock(v)
	default:
		report.ReportICE("walkStmt not implemented for statement: %T", stmt)
	}
}

// walkVarDecl walks a local variable declaration.
func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	declType := vd.DeclType

	if vd.Init != nil {
		w.tryWalkExpr(vd.Init)

		initType := vd.Init.Type()
		if declType == nil {
			declType = initType
		} else if !types.Equals(initType, types.PrimNoReturn) && !types.IsAssignable(initType, declType) {
			w.recError(report.RaiseKind(
				report.ErrGeneral, vd.Init.Span(),
				"cannot initialize a variable of type %s with %s",
				declType.Repr(), initType.Repr(),
			))
		}
	}

	vd.Sym = &common.Symbol{
		Name:     vd.Name,
		ParentID: w.file.Parent.ID,
		DefSpan:  vd.Span(),
		Type:     declType,
		DefKind:  common.DefKindValue,
		Mutable:  vd.Mutable,
	}
	w.defineLocal(vd.Sym)
}

// walkAssignment walks an assignment statement.
func (w *Walker) walkAssignment(as *ast.Assignment) {
	lhsOK := w.tryWalkExpr(as.LHS)
	w.tryWalkExpr(as.RHS)

	if !lhsOK {
		return
	}

	if !w.isMutableLocation(as.LHS) {
		w.recError(report.RaiseKind(
			report.ErrMutationImmutable, as.LHS.Span(),
			"cannot assign to an immutable value",
		))
		return
	}

	rhsType := as.RHS.Type()
	if !types.Equals(rhsType, types.PrimNoReturn) && !types.IsAssignable(rhsType, as.LHS.Type()) {
		w.recError(report.RaiseKind(
			report.ErrGeneral, as.RHS.Span(),
			"cannot assign %s to %s", rhsType.Repr(), as.LHS.Type().Repr(),
		))
	}
}

// walkReturnStmt walks a return statement.
func (w *Walker) walkReturnStmt(rs *ast.ReturnStmt) {
	if w.enclosingReturnType == nil {
		w.error(rs.Span(), "return statement outside of a function body")
	}

	if rs.Value == nil {
		if !types.Equals(w.enclosingReturnType, types.PrimNoReturn) {
			w.error(rs.Span(), "expected a return value of type %s", w.enclosingReturnType.Repr())
		}

		return
	}

	w.tryWalkExpr(rs.Value)

	valueType := rs.Value.Type()
	if !types.Equals(valueType, types.PrimNoReturn) && !types.IsAssignable(valueType, w.enclosingReturnType) {
		w.recError(report.RaiseKind(
			report.ErrGeneral, rs.Value.Span(),
			"cannot return %s from a function returning %s",
			valueType.Repr(), w.enclosingReturnType.Repr(),
		))
	}
}
