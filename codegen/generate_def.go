package codegen

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
)

// declareMethods declares the LLVM functions of every method of a declared
// type.  Method functions take the receiver as a leading pointer parameter.
func (g *Generator) declareMethods(decl types.NamedType) {
	for _, method := range decl.Methods() {
		// Inherited slots reuse the declaring class's function.
		if method.Owner != decl {
			continue
		}

		llName := g.pkgPrefix + decl.Name() + "." + method.Name

		llParams := make([]*ir.Param, len(method.Params)+1)
		llParams[0] = ir.NewParam("self", lltypes.NewPointer(lltypes.I8))
		for i, param := range method.Params {
			llParams[i+1] = ir.NewParam(method.ParamNames[i], g.convType(param))
		}

		llFunc := g.mod.NewFunc(llName, g.convReturnType(method.ReturnType), llParams...)

		if method.Access == types.AccessPublic {
			llFunc.Linkage = enum.LinkageExternal
		} else {
			llFunc.Linkage = enum.LinkageInternal
		}

		g.methodFuncs[method] = llFunc
	}
}

// buildVTable lays out and emits the virtual method table of a class.  The
// superclass's slots come first in the superclass's own order so that a
// subclass table can stand in for a superclass table.
func (g *Generator) buildVTable(class *types.ClassType) *vtable {
	if vt, ok := g.vtables[class]; ok {
		return vt
	}

	slots := make(map[*types.Method]int)
	var entries []constant.Constant

	if class.Superclass != nil {
		super := g.buildVTable(class.Superclass)

		entries = make([]constant.Constant, super.tableType.Len)
		for _, method := range class.Superclass.Methods() {
			slot := super.slots[method]
			slots[method] = slot
			entries[slot] = g.vtableEntry(method)
		}
	}

	for _, method := range class.Methods() {
		// An override fills the slot its superclass declaration occupies.
		if class.Superclass != nil {
			if overridden, ok := class.Superclass.LookupMethod(method.Name); ok {
				slot := slots[overridden]
				slots[method] = slot
				entries[slot] = g.vtableEntry(method)
				continue
			}
		}

		slots[method] = len(entries)
		entries = append(entries, g.vtableEntry(method))
	}

	tableType := lltypes.NewArray(uint64(len(entries)), lltypes.NewPointer(lltypes.I8))
	global := g.mod.NewGlobalDef(
		g.pkgPrefix+class.Name()+".vtable",
		constant.NewArray(tableType, entries...),
	)
	global.Immutable = true

	vt := &vtable{slots: slots, global: global, tableType: tableType}
	g.vtables[class] = vt
	return vt
}

// vtableEntry builds the table constant for a single method slot.
func (g *Generator) vtableEntry(method *types.Method) constant.Constant {
	return constant.NewBitCast(g.lookupMethodFunc(method), lltypes.NewPointer(lltypes.I8))
}

// -----------------------------------------------------------------------------

// declareDef declares the LLVM function of a definition and queues its body.
func (g *Generator) declareDef(def ast.Def) {
	switch v := def.(type) {
	case *ast.FuncDef:
		llParams := make([]*ir.Param, len(v.ParamTypes))
		for i, param := range v.ParamTypes {
			llParams[i] = ir.NewParam(v.ParamNames[i], g.convType(param))
		}

		llFunc := g.mod.NewFunc(g.pkgPrefix+v.Name, g.convReturnType(v.ReturnType), llParams...)

		if v.Body != nil {
			g.bodyPredicates = append(g.bodyPredicates, bodyPredicate{llFunc: llFunc, def: v})
		}
	case *ast.MethodDef:
		if v.Body != nil {
			g.bodyPredicates = append(g.bodyPredicates, bodyPredicate{
				llFunc: g.lookupMethodFunc(v.Method),
				def:    v,
			})
		}
	default:
		report.ReportICE("codegen not implemented for definition: %T", def)
	}
}

// generateBody generates the body of a queued definition.
func (g *Generator) generateBody(pred bodyPredicate) {
	g.fn = pred.llFunc
	g.varBlock = g.fn.NewBlock("entry")
	g.block = g.fn.NewBlock("")

	switch v := pred.def.(type) {
	case *ast.FuncDef:
		g.self = nil
		g.storeParams(pred.llFunc.Params, v.ParamSyms)
		g.generateBlock(v.Body)
		g.terminate(v.ReturnType)
	case *ast.MethodDef:
		g.self = pred.llFunc.Params[0]
		g.storeParams(pred.llFunc.Params[1:], v.ParamSyms)
		g.generateBlock(v.Body)
		g.terminate(v.Method.ReturnType)
	}

	g.varBlock.NewBr(g.fn.Blocks[1])
}

// storeParams spills parameters into entry-block allocations so that they
// behave like ordinary local variables.
func (g *Generator) storeParams(llParams []*ir.Param, paramSyms []*common.Symbol) {
	for i, llParam := range llParams {
		ptr := g.alloca(llParam.Typ)
		g.block.NewStore(llParam, ptr)
		paramSyms[i].LLValue = ptr
	}
}

// terminate adds the implicit return of a body whose last block has no
// terminator.
func (g *Generator) terminate(returnType types.Type) {
	if g.block.Term != nil {
		return
	}

	if pt, ok := types.BarePrimitive(returnType); ok && pt == types.PrimNoReturn {
		g.block.NewRet(nil)
		return
	}

	g.block.NewRet(constant.NewZeroInitializer(g.convType(returnType)))
}
