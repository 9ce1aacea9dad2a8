package common

// BuiltIn identifies one of the closed set of primitive intrinsic operations.
// Each value names the exact low-level operation a matched call lowers to; the
// receiver and argument kinds it matches are recorded in the intrinsic table.
type BuiltIn int

// Enumeration of built-in intrinsic operations.
const (
	BuiltInNone = BuiltIn(iota) // No intrinsic: the call goes through dispatch.

	RealMultiply
	RealAdd
	RealSubtract
	RealDivide
	RealRemainder
	RealGreater
	RealGreaterOrEqual
	RealLess
	RealLessOrEqual
	RealEqual

	IntegerMultiply
	IntegerAdd
	IntegerSubtract
	IntegerDivide
	IntegerRemainder
	IntegerGreater
	IntegerGreaterOrEqual
	IntegerLess
	IntegerLessOrEqual
	IntegerLeftShift
	IntegerRightShift
	IntegerOr
	IntegerAnd
	IntegerXor
	IntegerNot
	IntegerToReal

	BooleanAnd
	BooleanOr
	BooleanNegate

	Equal

	Store
	Load

	IsNoValueLeft
	IsNoValueRight
)

// Repr returns the representative string for the built-in operation.
func (b BuiltIn) Repr() string {
	if name, ok := builtInNames[b]; ok {
		return name
	}

	return "none"
}

var builtInNames = map[BuiltIn]string{
	RealMultiply:          "real-multiply",
	RealAdd:               "real-add",
	RealSubtract:          "real-subtract",
	RealDivide:            "real-divide",
	RealRemainder:         "real-remainder",
	RealGreater:           "real-greater",
	RealGreaterOrEqual:    "real-greater-or-equal",
	RealLess:              "real-less",
	RealLessOrEqual:       "real-less-or-equal",
	RealEqual:             "real-equal",
	IntegerMultiply:       "integer-multiply",
	IntegerAdd:            "integer-add",
	IntegerSubtract:       "integer-subtract",
	IntegerDivide:         "integer-divide",
	IntegerRemainder:      "integer-remainder",
	IntegerGreater:        "integer-greater",
	IntegerGreaterOrEqual: "integer-greater-or-equal",
	IntegerLess:           "integer-less",
	IntegerLessOrEqual:    "integer-less-or-equal",
	IntegerLeftShift:      "integer-left-shift",
	IntegerRightShift:     "integer-right-shift",
	IntegerOr:             "integer-or",
	IntegerAnd:            "integer-and",
	IntegerXor:            "integer-xor",
	IntegerNot:            "integer-not",
	IntegerToReal:         "integer-to-real",
	BooleanAnd:            "boolean-and",
	BooleanOr:             "boolean-or",
	BooleanNegate:         "boolean-negate",
	Equal:                 "equal",
	Store:                 "store",
	Load:                  "load",
	IsNoValueLeft:         "is-no-value-left",
	IsNoValueRight:        "is-no-value-right",
}
