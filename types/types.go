package types

import (
	"strings"
)

// Type represents the static type of an Emojicode value.
type Type interface {
	// Returns whether this type is equal to the other type.  This does not
	// account for optional unwrapping: it should only be called between
	// already-unwrapped types.
	equals(other Type) bool

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the
// enumerated primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	// PrimNoReturn is the designated "no value" type.  It is both the type of
	// expressions which produce nothing and the type failed call analysis
	// resolves to so that surrounding analysis can continue without cascading
	// diagnostics.
	PrimNoReturn = PrimitiveType(iota)

	// PrimNoValue is the type of the no-value literal used in the two
	// optional-presence tests.
	PrimNoValue

	PrimBoolean
	PrimInteger
	PrimReal
	PrimSymbol
	PrimByte

	// PrimMemory is the raw memory pointer kind targeted by the store and
	// load intrinsics.
	PrimMemory
)

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case PrimNoReturn:
		return "no-return"
	case PrimNoValue:
		return "no-value"
	case PrimBoolean:
		return "boolean"
	case PrimInteger:
		return "integer"
	case PrimReal:
		return "real"
	case PrimSymbol:
		return "symbol"
	case PrimByte:
		return "byte"
	default:
		return "memory"
	}
}

// IsNumeric returns whether this primitive type is one of the numeric kinds.
func (pt PrimitiveType) IsNumeric() bool {
	return pt == PrimInteger || pt == PrimReal
}

// -----------------------------------------------------------------------------

// OptionalType represents an optional: a value of the element type boxed
// together with the possibility of being absent.
type OptionalType struct {
	// The element (content) type of the optional.
	Elem Type
}

func (ot *OptionalType) equals(other Type) bool {
	if oot, ok := other.(*OptionalType); ok {
		return Equals(ot.Elem, oot.Elem)
	}

	return false
}

func (ot *OptionalType) Repr() string {
	return ot.Elem.Repr() + "?"
}

// -----------------------------------------------------------------------------

// GenericVarType represents an unresolved generic variable of a generic
// method or type declaration.
type GenericVarType struct {
	// The declared name of the generic variable.
	Name string

	// The index of the variable within its declaration's parameter list.
	Index int
}

func (gv *GenericVarType) equals(other Type) bool {
	if ogv, ok := other.(*GenericVarType); ok {
		return gv.Name == ogv.Name && gv.Index == ogv.Index
	}

	return false
}

func (gv *GenericVarType) Repr() string {
	return gv.Name
}

// -----------------------------------------------------------------------------

// AppliedType represents a generic declared type instantiated with concrete
// type arguments: eg. a generic list type applied to `integer`.
type AppliedType struct {
	// The declaration being applied.
	Named NamedType

	// The ordered type arguments.
	TypeArgs []Type
}

func (at *AppliedType) equals(other Type) bool {
	if oat, ok := other.(*AppliedType); ok {
		if !at.Named.equals(oat.Named) || len(at.TypeArgs) != len(oat.TypeArgs) {
			return false
		}

		for i, targ := range at.TypeArgs {
			if !Equals(targ, oat.TypeArgs[i]) {
				return false
			}
		}

		return true
	}

	return false
}

func (at *AppliedType) Repr() string {
	sb := strings.Builder{}

	sb.WriteString(at.Named.Repr())
	sb.WriteRune('<')

	for i, targ := range at.TypeArgs {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(targ.Repr())
	}

	sb.WriteRune('>')
	return sb.String()
}
