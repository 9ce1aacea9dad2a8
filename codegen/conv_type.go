package codegen

import (
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	lltypes "github.com/llir/llvm/ir/types"
)

// convType converts a checked type to its LLVM value representation.
func (g *Generator) convType(typ types.Type) lltypes.Type {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return g.convPrimType(v)
	case *types.OptionalType:
		// An optional is a presence flag paired with the wrapped value.
		return lltypes.NewStruct(lltypes.I1, g.convType(v.Elem))
	case *types.ClassType:
		// Class instances are always heap references.
		return lltypes.NewPointer(g.classStruct(v))
	case *types.ValueType:
		fieldTypes := make([]lltypes.Type, len(v.Fields()))
		for i, field := range v.Fields() {
			fieldTypes[i] = g.convType(field.Type)
		}

		return lltypes.NewStruct(fieldTypes...)
	case *types.EnumType:
		return lltypes.I64
	case *types.ProtocolType, *types.MultiProtocolType:
		// A protocol value is a boxed value paired with its witness tables.
		return lltypes.NewStruct(lltypes.NewPointer(lltypes.I8), lltypes.NewPointer(lltypes.I8))
	case *types.AppliedType:
		return g.convType(v.Named)
	}

	report.ReportICE("LLVM type conversion not implemented for %s", typ.Repr())
	return nil
}

// classStruct builds the instance layout of a class.  Inherited fields come
// first, in the superclass's order, so a subclass instance is usable through
// a superclass-typed reference.
func (g *Generator) classStruct(class *types.ClassType) *lltypes.StructType {
	var fieldTypes []lltypes.Type
	for _, field := range classFields(class) {
		fieldTypes = append(fieldTypes, g.convType(field.Type))
	}

	return lltypes.NewStruct(fieldTypes...)
}

// classFields returns the fields of a class in instance layout order.
func classFields(class *types.ClassType) []*types.Field {
	var fields []*types.Field
	if class.Superclass != nil {
		fields = classFields(class.Superclass)
	}

	return append(fields, class.Fields()...)
}

// convPrimType converts a primitive kind to its LLVM representation.
func (g *Generator) convPrimType(pt types.PrimitiveType) lltypes.Type {
	switch pt {
	case types.PrimBoolean:
		return lltypes.I1
	case types.PrimInteger:
		return lltypes.I64
	case types.PrimReal:
		return lltypes.Double
	case types.PrimSymbol:
		return lltypes.I32
	case types.PrimByte:
		return lltypes.I8
	case types.PrimMemory:
		return lltypes.NewPointer(lltypes.I8)
	default:
		report.ReportICE("LLVM type conversion not implemented for %s", pt.Repr())
		return nil
	}
}

// convReturnType converts a checked return type to an LLVM return type.  The
// no-value result type only exists in return position.
func (g *Generator) convReturnType(typ types.Type) lltypes.Type {
	if pt, ok := types.BarePrimitive(typ); ok && pt == types.PrimNoReturn {
		return lltypes.Void
	}

	return g.convType(typ)
}
