package codegen

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// generateBuiltIn lowers an intrinsic-matched call to LLVM instructions.
// The switch is total over the catalog: an unknown operation is a compiler
// bug.
func (g *Generator) generateBuiltIn(call *ast.MethodCall) value.Value {
	recv := g.generateExpr(call.Callee)

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.generateExpr(arg)
	}

	switch call.Resolution.BuiltIn {
	case common.RealMultiply:
		return g.block.NewFMul(recv, args[0])
	case common.RealAdd:
		return g.block.NewFAdd(recv, args[0])
	case common.RealSubtract:
		return g.block.NewFSub(recv, args[0])
	case common.RealDivide:
		return g.block.NewFDiv(recv, args[0])
	case common.RealRemainder:
		return g.block.NewFRem(recv, args[0])
	case common.RealGreater:
		return g.block.NewFCmp(enum.FPredOGT, recv, args[0])
	case common.RealGreaterOrEqual:
		return g.block.NewFCmp(enum.FPredOGE, recv, args[0])
	case common.RealLess:
		return g.block.NewFCmp(enum.FPredOLT, recv, args[0])
	case common.RealLessOrEqual:
		return g.block.NewFCmp(enum.FPredOLE, recv, args[0])
	case common.RealEqual:
		return g.block.NewFCmp(enum.FPredOEQ, recv, args[0])
	case common.IntegerMultiply:
		return g.block.NewMul(recv, args[0])
	case common.IntegerAdd:
		return g.block.NewAdd(recv, args[0])
	case common.IntegerSubtract:
		return g.block.NewSub(recv, args[0])
	case common.IntegerDivide:
		return g.block.NewSDiv(recv, args[0])
	case common.IntegerRemainder:
		return g.block.NewSRem(recv, args[0])
	case common.IntegerGreater:
		return g.block.NewICmp(enum.IPredSGT, recv, args[0])
	case common.IntegerGreaterOrEqual:
		return g.block.NewICmp(enum.IPredSGE, recv, args[0])
	case common.IntegerLess:
		return g.block.NewICmp(enum.IPredSLT, recv, args[0])
	case common.IntegerLessOrEqual:
		return g.block.NewICmp(enum.IPredSLE, recv, args[0])
	case common.IntegerLeftShift:
		return g.block.NewShl(recv, args[0])
	case common.IntegerRightShift:
		return g.block.NewAShr(recv, args[0])
	case common.IntegerOr:
		return g.block.NewOr(recv, args[0])
	case common.IntegerAnd:
		return g.block.NewAnd(recv, args[0])
	case common.IntegerXor:
		return g.block.NewXor(recv, args[0])
	case common.IntegerNot:
		return g.block.NewXor(recv, constant.NewInt(lltypes.I64, -1))
	case common.IntegerToReal:
		return g.block.NewSIToFP(recv, lltypes.Double)
	case common.BooleanAnd:
		return g.block.NewAnd(recv, args[0])
	case common.BooleanOr:
		return g.block.NewOr(recv, args[0])
	case common.BooleanNegate:
		return g.block.NewXor(recv, constant.True)
	case common.Equal:
		return g.block.NewICmp(enum.IPredEQ, recv, args[0])
	case common.Store:
		addr := g.block.NewGetElementPtr(lltypes.I8, recv, args[1])
		g.block.NewStore(args[0], addr)
		return nil
	case common.Load:
		addr := g.block.NewGetElementPtr(lltypes.I8, recv, args[0])
		return g.block.NewLoad(lltypes.I8, addr)
	case common.IsNoValueLeft:
		// The optional is the argument; its leading flag marks presence.
		return g.block.NewXor(g.block.NewExtractValue(args[0], 0), constant.True)
	case common.IsNoValueRight:
		return g.block.NewXor(g.block.NewExtractValue(recv, 0), constant.True)
	default:
		report.ReportICE("intrinsic codegen not implemented for %s", call.Resolution.BuiltIn.Repr())
		return nil
	}
}
