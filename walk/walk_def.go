package walk

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"
)

// doWalkDef walks a definition.  This should only be called from `walkDef`.
func (w *Walker) doWalkDef(def ast.Def) {
	switch v := def.(type) {
	case *ast.FuncDef:
		w.walkFuncDef(v)
	case *ast.MethodDef:
		w.walkMethodDef(v)
	default:
		report.ReportICE("walkDef not implemented for definition: %T", def)
	}
}

// walkFuncDef walks the body of a free function.
func (w *Walker) walkFuncDef(fd *ast.FuncDef) {
	if fd.Body == nil {
		return
	}

	w.enclosingReturnType = fd.ReturnType

	w.pushScope()
	defer w.popScope()

	fd.ParamSyms = make([]*common.Symbol, len(fd.ParamNames))
	for i, name := range fd.ParamNames {
		fd.ParamSyms[i] = &common.Symbol{
			Name:     name,
			ParentID: w.file.Parent.ID,
			DefSpan:  fd.Span(),
			Type:     fd.ParamTypes[i],
			DefKind:  common.DefKindValue,
		}
		w.defineLocal(fd.ParamSyms[i])
	}

	w.walkBlock(fd.Body)
}

// walkMethodDef walks the body of a method.  Inside the body the receiver's
// mutability follows the method's own mutating declaration.
func (w *Walker) walkMethodDef(md *ast.MethodDef) {
	if md.Body == nil {
		return
	}

	w.selfType = md.SelfType
	w.selfMutable = md.Method.Mutating
	w.enclosingReturnType = md.Method.ReturnType

	w.pushScope()
	defer w.popScope()

	md.ParamSyms = make([]*common.Symbol, len(md.Method.ParamNames))
	for i, name := range md.Method.ParamNames {
		md.ParamSyms[i] = &common.Symbol{
			Name:     name,
			ParentID: w.file.Parent.ID,
			DefSpan:  md.Span(),
			Type:     md.Method.Params[i],
			DefKind:  common.DefKindValue,
		}
		w.defineLocal(md.ParamSyms[i])
	}

	w.walkBlock(md.Body)
}
