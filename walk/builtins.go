package walk

import (
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"
)

// builtInKey identifies an intrinsic table entry: the call name together with
// the exact primitive kinds of the receiver and arguments.  Matching is
// exact: no kind is ever widened or narrowed to reach an entry.
type builtInKey struct {
	// The normalized call name.
	name string

	// The primitive kind of the receiver.
	recv types.PrimitiveType

	// The number of arguments the entry matches.
	argc int

	// The primitive kinds of the arguments.  Unused slots hold PrimNoReturn.
	args [2]types.PrimitiveType
}

// builtInEntry is the operation and result type an intrinsic table entry
// resolves to.
type builtInEntry struct {
	// The low-level operation the call lowers to.
	builtIn common.BuiltIn

	// The type the intrinsic produces.
	result types.Type
}

// builtInTable is the process-wide intrinsic catalog.  It is built once at
// startup and read-only afterward, so it may be shared across parallel
// analyses without locking.
var builtInTable = make(map[builtInKey]builtInEntry)

// addBuiltIn registers an intrinsic table entry.  Two entries may never share
// a key: a collision is a compiler bug and aborts startup.
func addBuiltIn(name string, recv types.PrimitiveType, args []types.PrimitiveType, builtIn common.BuiltIn, result types.Type) {
	key := builtInKey{name: name, recv: recv, argc: len(args)}
	for i, arg := range args {
		key.args[i] = arg
	}

	if _, ok := builtInTable[key]; ok {
		report.ReportICE("duplicate intrinsic table entry for `%s` on %s", name, recv.Repr())
	}

	builtInTable[key] = builtInEntry{builtIn: builtIn, result: result}
}

func init() {
	integer := []types.PrimitiveType{types.PrimInteger}
	real := []types.PrimitiveType{types.PrimReal}
	boolean := []types.PrimitiveType{types.PrimBoolean}

	// Integer arithmetic.
	addBuiltIn("multiply", types.PrimInteger, integer, common.IntegerMultiply, types.PrimInteger)
	addBuiltIn("add", types.PrimInteger, integer, common.IntegerAdd, types.PrimInteger)
	addBuiltIn("subtract", types.PrimInteger, integer, common.IntegerSubtract, types.PrimInteger)
	addBuiltIn("divide", types.PrimInteger, integer, common.IntegerDivide, types.PrimInteger)
	addBuiltIn("remainder", types.PrimInteger, integer, common.IntegerRemainder, types.PrimInteger)

	// Integer comparisons.
	addBuiltIn("greater", types.PrimInteger, integer, common.IntegerGreater, types.PrimBoolean)
	addBuiltIn("greaterOrEqual", types.PrimInteger, integer, common.IntegerGreaterOrEqual, types.PrimBoolean)
	addBuiltIn("less", types.PrimInteger, integer, common.IntegerLess, types.PrimBoolean)
	addBuiltIn("lessOrEqual", types.PrimInteger, integer, common.IntegerLessOrEqual, types.PrimBoolean)

	// Integer bitwise operations.
	addBuiltIn("leftShift", types.PrimInteger, integer, common.IntegerLeftShift, types.PrimInteger)
	addBuiltIn("rightShift", types.PrimInteger, integer, common.IntegerRightShift, types.PrimInteger)
	addBuiltIn("or", types.PrimInteger, integer, common.IntegerOr, types.PrimInteger)
	addBuiltIn("and", types.PrimInteger, integer, common.IntegerAnd, types.PrimInteger)
	addBuiltIn("xor", types.PrimInteger, integer, common.IntegerXor, types.PrimInteger)
	addBuiltIn("invert", types.PrimInteger, nil, common.IntegerNot, types.PrimInteger)

	// Integer conversion.
	addBuiltIn("toReal", types.PrimInteger, nil, common.IntegerToReal, types.PrimReal)

	// Real arithmetic.
	addBuiltIn("multiply", types.PrimReal, real, common.RealMultiply, types.PrimReal)
	addBuiltIn("add", types.PrimReal, real, common.RealAdd, types.PrimReal)
	addBuiltIn("subtract", types.PrimReal, real, common.RealSubtract, types.PrimReal)
	addBuiltIn("divide", types.PrimReal, real, common.RealDivide, types.PrimReal)
	addBuiltIn("remainder", types.PrimReal, real, common.RealRemainder, types.PrimReal)

	// Real comparisons.
	addBuiltIn("greater", types.PrimReal, real, common.RealGreater, types.PrimBoolean)
	addBuiltIn("greaterOrEqual", types.PrimReal, real, common.RealGreaterOrEqual, types.PrimBoolean)
	addBuiltIn("less", types.PrimReal, real, common.RealLess, types.PrimBoolean)
	addBuiltIn("lessOrEqual", types.PrimReal, real, common.RealLessOrEqual, types.PrimBoolean)
	addBuiltIn("equal", types.PrimReal, real, common.RealEqual, types.PrimBoolean)

	// Boolean connectives.
	addBuiltIn("and", types.PrimBoolean, boolean, common.BooleanAnd, types.PrimBoolean)
	addBuiltIn("or", types.PrimBoolean, boolean, common.BooleanOr, types.PrimBoolean)
	addBuiltIn("negate", types.PrimBoolean, nil, common.BooleanNegate, types.PrimBoolean)

	// Generic equality over the remaining word-sized kinds.
	addBuiltIn("equal", types.PrimInteger, integer, common.Equal, types.PrimBoolean)
	addBuiltIn("equal", types.PrimBoolean, boolean, common.Equal, types.PrimBoolean)
	addBuiltIn("equal", types.PrimSymbol, []types.PrimitiveType{types.PrimSymbol}, common.Equal, types.PrimBoolean)
	addBuiltIn("equal", types.PrimByte, []types.PrimitiveType{types.PrimByte}, common.Equal, types.PrimBoolean)

	// Raw memory access.
	addBuiltIn("store", types.PrimMemory, []types.PrimitiveType{types.PrimByte, types.PrimInteger}, common.Store, types.PrimNoReturn)
	addBuiltIn("load", types.PrimMemory, integer, common.Load, types.PrimByte)
}

// MatchBuiltIn consults the intrinsic catalog for the given call.  It returns
// the matched operation and its result type.  Absence of a match is never an
// error: the call simply falls through to ordinary resolution.
//
// The catalog is consulted only for bare primitive receivers.  The one
// exception is the pair of optional-presence tests, which are the only
// operators allowed to match an optional receiver.
func MatchBuiltIn(name string, recvType types.Type, argTypes []types.Type) (common.BuiltIn, types.Type, bool) {
	// The no-value literal compared against an optional.
	if pt, ok := types.BarePrimitive(recvType); ok && pt == types.PrimNoValue {
		if name == "equal" && len(argTypes) == 1 {
			if _, ok := types.IsOptional(argTypes[0]); ok {
				return common.IsNoValueLeft, types.PrimBoolean, true
			}
		}

		return common.BuiltInNone, nil, false
	}

	// An optional compared against the no-value literal.  All other calls on
	// optional receivers fall through to dispatch resolution.
	if _, ok := types.IsOptional(recvType); ok {
		if name == "equal" && len(argTypes) == 1 {
			if pt, ok := types.BarePrimitive(argTypes[0]); ok && pt == types.PrimNoValue {
				return common.IsNoValueRight, types.PrimBoolean, true
			}
		}

		return common.BuiltInNone, nil, false
	}

	recv, ok := types.BarePrimitive(recvType)
	if !ok || len(argTypes) > 2 {
		return common.BuiltInNone, nil, false
	}

	key := builtInKey{name: name, recv: recv, argc: len(argTypes)}
	for i, argType := range argTypes {
		arg, ok := types.BarePrimitive(argType)
		if !ok {
			return common.BuiltInNone, nil, false
		}

		key.args[i] = arg
	}

	entry, ok := builtInTable[key]
	if !ok {
		return common.BuiltInNone, nil, false
	}

	return entry.builtIn, entry.result, true
}
