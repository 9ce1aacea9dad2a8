package walk

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"
)

// resolveDispatch selects the dispatch strategy for a method call that no
// intrinsic matched.  On success it returns a completed resolution; on
// failure it raises an error describing the most specific reason the call
// could not be resolved.
func (w *Walker) resolveDispatch(
	name string,
	recv ast.ASTExpr,
	recvType types.Type,
	argTypes []types.Type,
	span *report.TextSpan,
	argSpans []*report.TextSpan,
) *ast.CallResolution {
	if mp, ok := recvType.(*types.MultiProtocolType); ok {
		return w.resolveIntersectionDispatch(mp, name, recv, recvType, argTypes, span, argSpans)
	}

	named, ok := types.NamedOf(recvType)
	if !ok {
		w.errorKind(report.ErrMethodNotFound, span, "%s has no method named `%s`", recvType.Repr(), name)
	}

	switch v := named.(type) {
	case *types.ClassType:
		// Walk the superclass chain from the receiver's own class upward.
		// The first table that declares the name wins: subclasses shadow.
		for class := v; class != nil; class = class.Superclass {
			if method, ok := class.LookupMethod(name); ok {
				kind := ast.DynamicDispatch

				// A final method on the receiver's exact static class cannot
				// be overridden by any runtime subtype, so the call target is
				// statically known.
				if method.Final && class == v {
					kind = ast.StaticDispatch
				}

				return w.checkDispatch(kind, method, nil, recv, recvType, argTypes, span, argSpans)
			}
		}
	case *types.ValueType, *types.EnumType:
		// Value types and enums have no subtypes, so their methods are always
		// resolved on their own table and called directly.
		if method, ok := named.LookupMethod(name); ok {
			return w.checkDispatch(ast.StaticDispatch, method, nil, recv, recvType, argTypes, span, argSpans)
		}
	case *types.ProtocolType:
		if method, ok := v.LookupMethod(name); ok {
			return w.checkDispatch(ast.ProtocolDispatch, method, v, recv, recvType, argTypes, span, argSpans)
		}
	}

	w.errorKind(report.ErrMethodNotFound, span, "%s has no method named `%s`", recvType.Repr(), name)
	return nil
}

// resolveIntersectionDispatch resolves a call on a protocol-intersection
// receiver.  Exactly one member protocol must declare the name: none is a
// missing method, more than one is an ambiguity the caller must break by
// upcasting the receiver to a single protocol.
func (w *Walker) resolveIntersectionDispatch(
	mp *types.MultiProtocolType,
	name string,
	recv ast.ASTExpr,
	recvType types.Type,
	argTypes []types.Type,
	span *report.TextSpan,
	argSpans []*report.TextSpan,
) *ast.CallResolution {
	declarers := mp.Declarers(name)

	switch len(declarers) {
	case 0:
		w.errorKind(report.ErrMethodNotFound, span, "%s has no method named `%s`", recvType.Repr(), name)
	case 1:
		method, _ := declarers[0].LookupMethod(name)
		return w.checkDispatch(ast.ProtocolDispatch, method, declarers[0], recv, recvType, argTypes, span, argSpans)
	default:
		w.errorKind(
			report.ErrAmbiguousProtocolMethod, span,
			"method `%s` is declared by both %s and %s",
			name, declarers[0].Repr(), declarers[1].Repr(),
		)
	}

	return nil
}

// checkDispatch validates a name-matched method and builds the final
// resolution.  The checks run in a fixed order so that each call failure
// reports the most specific applicable error: mutability before arity, arity
// before access, access before generic unification, unification before
// per-argument compatibility.  The mutation check runs first so that a
// mutating call on an immutable binding is diagnosed as such even when its
// arguments would not have matched either.
func (w *Walker) checkDispatch(
	kind ast.ResolutionKind,
	method *types.Method,
	protocol *types.ProtocolType,
	recv ast.ASTExpr,
	recvType types.Type,
	argTypes []types.Type,
	span *report.TextSpan,
	argSpans []*report.TextSpan,
) *ast.CallResolution {
	if method.Mutating {
		w.checkMutation(recv, method.Name)
	}

	if len(argTypes) != len(method.Params) {
		w.errorKind(
			report.ErrArityMismatch, span,
			"method `%s` expects %d arguments but received %d",
			method.Name, len(method.Params), len(argTypes),
		)
	}

	w.checkAccess(method, span)

	// Type-level generic variables are fixed by the receiver's type
	// arguments before any method-level variable is inferred.
	sub := make(types.Substitution)
	var recvSub types.Substitution
	if applied, ok := recvType.(*types.AppliedType); ok {
		recvSub = make(types.Substitution)
		for i, tp := range applied.Named.TypeParams() {
			recvSub[tp.Name] = applied.TypeArgs[i]
			sub[tp.Name] = applied.TypeArgs[i]
		}
	}

	for i, argType := range argTypes {
		// Receiver-fixed variables are concrete before unification runs: a
		// mismatch against them is a positional argument error, not a failed
		// inference.  Only method-level variables are left to bind here.
		param := method.Params[i]
		if recvSub != nil {
			param = types.ApplySubstitution(param, recvSub)
		}

		if !types.Unify(param, argType, sub) {
			w.errorKind(
				report.ErrGenericUnification, argSpans[i],
				"cannot deduce generic arguments of method `%s` from %s",
				method.Name, argType.Repr(),
			)
		}
	}

	// Every generic parameter of the method must have been bound by the
	// arguments: there is no syntax for supplying them explicitly.
	for _, tp := range method.TypeParams {
		bound, ok := sub[tp.Name]
		if !ok {
			w.errorKind(
				report.ErrGenericUnification, span,
				"cannot deduce generic argument `%s` of method `%s`",
				tp.Name, method.Name,
			)
		}

		if tp.Constraint != nil && !types.IsAssignable(bound, tp.Constraint) {
			w.errorKind(
				report.ErrGenericUnification, span,
				"deduced generic argument %s does not satisfy the constraint %s",
				bound.Repr(), tp.Constraint.Repr(),
			)
		}
	}

	for i, argType := range argTypes {
		param := types.ApplySubstitution(method.Params[i], sub)

		if !types.IsAssignable(argType, param) {
			w.errorKind(
				report.ErrArgumentTypeMismatch, argSpans[i],
				"argument %d of method `%s` expects %s but received %s",
				i+1, method.Name, param.Repr(), argType.Repr(),
			)
		}
	}

	return &ast.CallResolution{
		Kind:         kind,
		Method:       method,
		Protocol:     protocol,
		ReceiverType: recvType,
		ArgTypes:     argTypes,
		ReturnType:   types.ApplySubstitution(method.ReturnType, sub),
	}
}

// checkAccess verifies that the method's access level admits a call from the
// walker's current position.
func (w *Walker) checkAccess(method *types.Method, span *report.TextSpan) {
	switch method.Access {
	case types.AccessPublic:
		return
	case types.AccessPrivate:
		if named, ok := w.selfNamed(); ok && named == method.Owner {
			return
		}
	case types.AccessProtected:
		if named, ok := w.selfNamed(); ok {
			if named == method.Owner {
				return
			}

			if class, ok := named.(*types.ClassType); ok {
				if owner, ok := method.Owner.(*types.ClassType); ok && class.SubclassOf(owner) {
					return
				}
			}
		}
	}

	w.errorKind(
		report.ErrAccessViolation, span,
		"method `%s` of %s is %s", method.Name, method.Owner.Repr(), method.Access.Repr(),
	)
}

// selfNamed returns the named type enclosing the definition being walked.
func (w *Walker) selfNamed() (types.NamedType, bool) {
	if w.selfType == nil {
		return nil, false
	}

	return types.NamedOf(w.selfType)
}
