package ast

import (
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/types"
)

// ResolutionKind identifies the executable strategy a call was resolved to.
// It must be one of the enumerated resolution kinds below.
type ResolutionKind int

// Enumeration of resolution kinds.
const (
	// Unresolved marks a call whose analysis has not run.  It must never
	// reach code generation.
	Unresolved = ResolutionKind(iota)

	// BuiltInMatched marks a call replaced by a primitive intrinsic.
	BuiltInMatched

	// StaticDispatch marks a direct call to a statically known function.
	StaticDispatch

	// DynamicDispatch marks an indirect call through the receiver's virtual
	// method table.
	DynamicDispatch

	// ProtocolDispatch marks an indirect call through a conformance witness
	// table.
	ProtocolDispatch

	// Failed marks a call whose analysis terminated with an error.  It must
	// never reach code generation.
	Failed
)

func (rk ResolutionKind) Repr() string {
	switch rk {
	case BuiltInMatched:
		return "intrinsic"
	case StaticDispatch:
		return "static dispatch"
	case DynamicDispatch:
		return "dynamic dispatch"
	case ProtocolDispatch:
		return "protocol dispatch"
	case Failed:
		return "failed"
	default:
		return "unresolved"
	}
}

// CallResolution records the strategy decision for a single call expression.
// It is produced once per call node during analysis, never mutated afterward,
// and consumed read-only by code generation.  The Method payload is a
// reference into the relevant type's declaration table: resolution never
// duplicates declarations.
type CallResolution struct {
	// The kind of the resolution.
	Kind ResolutionKind

	// The matched intrinsic when Kind is BuiltInMatched.
	BuiltIn common.BuiltIn

	// The resolved method for the dispatch kinds.
	Method *types.Method

	// The protocol that declared the matched method when Kind is
	// ProtocolDispatch.  For an intersection receiver this is the single
	// declaring member, not the intersection.
	Protocol *types.ProtocolType

	// The checked type of the receiver.
	ReceiverType types.Type

	// The checked types of the arguments in order.
	ArgTypes []types.Type

	// The resolved return type of the call after generic substitution.
	ReturnType types.Type
}
