package common

import (
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	"github.com/llir/llvm/ir/value"
)

// Symbol represents a semantic symbol: a named value or definition.
type Symbol struct {
	// The name of the symbol.
	Name string

	// The ID of the parent package to this symbol.
	ParentID uint64

	// Where the symbol was defined.
	DefSpan *report.TextSpan

	// The type of the value stored in the symbol.
	Type types.Type

	// The symbol's kind: what kind of things does this symbol represent.  This
	// must be one the enumerated definition kinds.
	DefKind int

	// Whether the symbol denotes a mutable storage location.
	Mutable bool

	// Whether or not the symbol was actually used.
	Used bool

	// The symbol's LLVM value.  This is not set until code generation.
	LLValue value.Value
}

// Enumeration of different symbol kinds.
const (
	DefKindValue = iota
	DefKindFunc
	DefKindType
)
