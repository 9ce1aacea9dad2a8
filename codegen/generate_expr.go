package codegen

import (
	"strconv"

	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// generateExpr generates an expression.
func (g *Generator) generateExpr(expr ast.ASTExpr) value.Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return g.generateLiteral(v)
	case *ast.Identifier:
		return g.block.NewLoad(g.convType(v.Sym.Type), v.Sym.LLValue)
	case *ast.SelfExpr:
		return g.self
	case *ast.FieldAccess:
		return g.generateFieldAccess(v)
	case *ast.MethodCall:
		return g.generateMethodCall(v)
	}

	report.ReportICE("expression codegen not implemented for: %T", expr)
	return nil
}

// generateLiteral generates a literal value.
func (g *Generator) generateLiteral(lit *ast.Literal) value.Value {
	switch lit.Kind {
	case ast.LitInteger:
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			report.ReportICE("unchecked integer literal reached codegen: `%s`", lit.Value)
		}

		return constant.NewInt(lltypes.I64, n)
	case ast.LitReal:
		x, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			report.ReportICE("unchecked real literal reached codegen: `%s`", lit.Value)
		}

		return constant.NewFloat(lltypes.Double, x)
	case ast.LitBoolean:
		return constant.NewBool(lit.Value == "true")
	case ast.LitSymbol:
		return constant.NewInt(lltypes.I32, int64([]rune(lit.Value)[0]))
	case ast.LitNoValue:
		// The bare no-value literal only appears as an intrinsic operand and
		// never produces a value of its own.
		return constant.NewNull(lltypes.NewPointer(lltypes.I8))
	default:
		report.ReportICE("literal codegen not implemented")
		return nil
	}
}

// generateFieldAccess generates a field load.
func (g *Generator) generateFieldAccess(fa *ast.FieldAccess) value.Value {
	return g.block.NewLoad(g.convType(fa.Field.Type), g.generateFieldAddr(fa))
}

// generateFieldAddr generates the address of a field.
func (g *Generator) generateFieldAddr(fa *ast.FieldAccess) value.Value {
	named, _ := types.NamedOf(fa.Recv.Type())

	// A class reference already is a pointer to the instance, so the GEP
	// runs on the loaded reference against the full instance layout.
	if class, ok := named.(*types.ClassType); ok {
		fieldNdx := -1
		for i, field := range classFields(class) {
			if field == fa.Field {
				fieldNdx = i
				break
			}
		}

		if fieldNdx == -1 {
			report.ReportICE("resolved field `%s` missing from its owner", fa.FieldName)
		}

		return g.block.NewGetElementPtr(
			g.classStruct(class), g.generateExpr(fa.Recv),
			constant.NewInt(lltypes.I32, 0),
			constant.NewInt(lltypes.I32, int64(fieldNdx)),
		)
	}

	fieldNdx := -1
	for i, field := range named.Fields() {
		if field == fa.Field {
			fieldNdx = i
			break
		}
	}

	if fieldNdx == -1 {
		report.ReportICE("resolved field `%s` missing from its owner", fa.FieldName)
	}

	var recvPtr value.Value
	switch v := fa.Recv.(type) {
	case *ast.Identifier:
		recvPtr = v.Sym.LLValue
	case *ast.SelfExpr:
		recvPtr = g.self
	case *ast.FieldAccess:
		recvPtr = g.generateFieldAddr(v)
	default:
		// A temporary: spill it so the field has an address.
		recvVal := g.generateExpr(fa.Recv)
		recvPtr = g.alloca(recvVal.Type())
		g.block.NewStore(recvVal, recvPtr)
	}

	return g.block.NewGetElementPtr(
		g.convType(fa.Recv.Type()), recvPtr,
		constant.NewInt(lltypes.I32, 0),
		constant.NewInt(lltypes.I32, int64(fieldNdx)),
	)
}

// -----------------------------------------------------------------------------

// generateMethodCall generates a method call by its recorded resolution.
// Generation is total over the resolvable kinds; an unresolved or failed
// call reaching here is a compiler bug.
func (g *Generator) generateMethodCall(call *ast.MethodCall) value.Value {
	res := call.Resolution

	switch res.Kind {
	case ast.BuiltInMatched:
		return g.generateBuiltIn(call)
	case ast.StaticDispatch:
		return g.generateDirectCall(call)
	case ast.DynamicDispatch:
		return g.generateVirtualCall(call)
	case ast.ProtocolDispatch:
		return g.generateWitnessCall(call)
	default:
		report.ReportICE("%s call reached code generation", res.Kind.Repr())
		return nil
	}
}

// generateDirectCall generates a call whose target function is statically
// known.
func (g *Generator) generateDirectCall(call *ast.MethodCall) value.Value {
	llFunc := g.lookupMethodFunc(call.Resolution.Method)
	return g.block.NewCall(llFunc, g.generateCallOperands(call)...)
}

// generateVirtualCall generates an indirect call through the receiver
// class's virtual method table.
func (g *Generator) generateVirtualCall(call *ast.MethodCall) value.Value {
	method := call.Resolution.Method

	class, ok := types.NamedOf(call.Resolution.ReceiverType)
	if !ok {
		report.ReportICE("dynamic dispatch on a non-class receiver")
	}

	vt := g.buildVTable(class.(*types.ClassType))
	slot, ok := vt.slots[method]
	if !ok {
		report.ReportICE("method `%s` has no vtable slot", method.Name)
	}

	slotPtr := g.block.NewGetElementPtr(
		vt.tableType, vt.global,
		constant.NewInt(lltypes.I32, 0),
		constant.NewInt(lltypes.I32, int64(slot)),
	)
	rawFunc := g.block.NewLoad(lltypes.NewPointer(lltypes.I8), slotPtr)

	target := g.block.NewBitCast(rawFunc, lltypes.NewPointer(g.methodSig(method)))
	return g.block.NewCall(target, g.generateCallOperands(call)...)
}

// generateWitnessCall generates an indirect call through the conformance
// witness table carried by a protocol value.
func (g *Generator) generateWitnessCall(call *ast.MethodCall) value.Value {
	method := call.Resolution.Method

	// A protocol value is a boxed value paired with its witness table; the
	// witness table is an array of function pointers in the protocol's
	// declaration order.
	slot := -1
	for i, declared := range call.Resolution.Protocol.Methods() {
		if declared == method {
			slot = i
			break
		}
	}

	if slot == -1 {
		report.ReportICE("method `%s` missing from its protocol's table", method.Name)
	}

	recvVal := g.generateExpr(call.Callee)
	recvPtr := g.alloca(recvVal.Type())
	g.block.NewStore(recvVal, recvPtr)

	protoType := g.convType(call.Resolution.ReceiverType)
	boxPtr := g.block.NewGetElementPtr(
		protoType, recvPtr,
		constant.NewInt(lltypes.I32, 0),
		constant.NewInt(lltypes.I32, 0),
	)
	box := g.block.NewLoad(lltypes.NewPointer(lltypes.I8), boxPtr)

	witnessPtr := g.block.NewGetElementPtr(
		protoType, recvPtr,
		constant.NewInt(lltypes.I32, 0),
		constant.NewInt(lltypes.I32, 1),
	)
	witness := g.block.NewLoad(lltypes.NewPointer(lltypes.I8), witnessPtr)

	tableType := lltypes.NewArray(uint64(len(call.Resolution.Protocol.Methods())), lltypes.NewPointer(lltypes.I8))
	table := g.block.NewBitCast(witness, lltypes.NewPointer(tableType))
	slotPtr := g.block.NewGetElementPtr(
		tableType, table,
		constant.NewInt(lltypes.I32, 0),
		constant.NewInt(lltypes.I32, int64(slot)),
	)
	rawFunc := g.block.NewLoad(lltypes.NewPointer(lltypes.I8), slotPtr)

	args := []value.Value{box}
	for _, arg := range call.Args {
		args = append(args, g.generateExpr(arg))
	}

	target := g.block.NewBitCast(rawFunc, lltypes.NewPointer(g.methodSig(method)))
	return g.block.NewCall(target, args...)
}

// generateCallOperands generates the receiver and arguments of a call.
func (g *Generator) generateCallOperands(call *ast.MethodCall) []value.Value {
	operands := make([]value.Value, len(call.Args)+1)
	operands[0] = g.generateSelfOperand(call.Callee)
	for i, arg := range call.Args {
		operands[i+1] = g.generateExpr(arg)
	}

	return operands
}

// generateSelfOperand generates the receiver argument of a method call.
// Methods take their receiver by pointer so that mutating methods observe a
// stable address.
func (g *Generator) generateSelfOperand(recv ast.ASTExpr) value.Value {
	// A class reference already points at the instance.
	if named, ok := types.NamedOf(recv.Type()); ok {
		if _, isClass := named.(*types.ClassType); isClass {
			return g.block.NewBitCast(g.generateExpr(recv), lltypes.NewPointer(lltypes.I8))
		}
	}

	switch v := recv.(type) {
	case *ast.Identifier:
		return g.block.NewBitCast(v.Sym.LLValue, lltypes.NewPointer(lltypes.I8))
	case *ast.SelfExpr:
		return g.self
	case *ast.FieldAccess:
		return g.block.NewBitCast(g.generateFieldAddr(v), lltypes.NewPointer(lltypes.I8))
	default:
		recvVal := g.generateExpr(recv)
		ptr := g.alloca(recvVal.Type())
		g.block.NewStore(recvVal, ptr)
		return g.block.NewBitCast(ptr, lltypes.NewPointer(lltypes.I8))
	}
}

// methodSig builds the LLVM function signature of a method.
func (g *Generator) methodSig(method *types.Method) *lltypes.FuncType {
	paramTypes := make([]lltypes.Type, len(method.Params)+1)
	paramTypes[0] = lltypes.NewPointer(lltypes.I8)
	for i, param := range method.Params {
		paramTypes[i+1] = g.convType(param)
	}

	return lltypes.NewFunc(g.convReturnType(method.ReturnType), paramTypes...)
}
