package walk

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"
)

// walkExpr walks an AST expression.  It updates the AST with types and, for
// method calls, with resolutions.
func (w *Walker) walkExpr(expr ast.ASTExpr) {
	switch v := expr.(type) {
	case *ast.Literal:
		w.walkLiteral(v)
	case *ast.Identifier:
		if sym := w.lookup(v.Name, v.Span()); sym != nil {
			sym.Used = true
			v.Sym = sym
			v.SetType(sym.Type)
		}
	case *ast.SelfExpr:
		if w.selfType == nil {
			w.error(v.Span(), "the receiver can only be used inside a method")
		}

		v.SetType(w.selfType)
	case *ast.FieldAccess:
		w.walkFieldAccess(v)
	case *ast.MethodCall:
		w.walkMethodCall(v)
	default:
		report.ReportICE("walkExpr not implemented for expression: %T", expr)
	}
}

// walkFieldAccess walks a field access expression.
func (w *Walker) walkFieldAccess(fa *ast.FieldAccess) {
	w.walkExpr(fa.Recv)

	recvType := fa.Recv.Type()
	if types.Equals(recvType, types.PrimNoReturn) {
		fa.SetType(types.PrimNoReturn)

		// Only the sentinel of an already reported failure passes silently: a
		// receiver that legitimately produces no value is a new error.
		if !poisoned(fa.Recv) {
			w.error(fa.Recv.Span(), "expression produces no value")
		}

		return
	}

	named, ok := types.NamedOf(recvType)
	if !ok {
		w.error(fa.Span(), "%s has no field named `%s`", recvType.Repr(), fa.FieldName)
	}

	field, ok := named.LookupField(fa.FieldName)
	if !ok {
		w.error(fa.Span(), "%s has no field named `%s`", recvType.Repr(), fa.FieldName)
	}

	fa.Field = field
	fa.SetType(field.Type)
}

// -----------------------------------------------------------------------------

// walkMethodCall analyzes a method call: the receiver and arguments first,
// then the intrinsic catalog, then dispatch resolution.  A call whose
// analysis fails is marked failed and typed as the no-value result type so
// that enclosing expressions do not re-report it.
func (w *Walker) walkMethodCall(call *ast.MethodCall) {
	subFailed := !w.tryWalkExpr(call.Callee) || poisoned(call.Callee)

	argTypes := make([]types.Type, len(call.Args))
	argSpans := make([]*report.TextSpan, len(call.Args))
	for i, arg := range call.Args {
		if !w.tryWalkExpr(arg) || poisoned(arg) {
			subFailed = true
		}

		argTypes[i] = arg.Type()
		argSpans[i] = arg.Span()
	}

	// A failed sub-expression has already produced a report.  The call
	// cannot be resolved against the error type, so it fails silently.
	if subFailed {
		w.failCall(call, argTypes)
		return
	}

	// An operand that resolved successfully but produces no value is a new
	// error: without one the call would fail with no diagnostic at all.
	if types.Equals(call.Callee.Type(), types.PrimNoReturn) {
		w.recError(report.Raise(call.Callee.Span(), "expression produces no value"))
		w.failCall(call, argTypes)
		return
	}

	for i, argType := range argTypes {
		if types.Equals(argType, types.PrimNoReturn) {
			w.recError(report.Raise(call.Args[i].Span(), "expression produces no value"))
			w.failCall(call, argTypes)
			return
		}
	}

	recvType := call.Callee.Type()

	// The intrinsic catalog is consulted before any method table.  A
	// catalog hit fully determines the call: user declarations can never
	// shadow an intrinsic.
	if builtIn, result, ok := MatchBuiltIn(call.Name, recvType, argTypes); ok {
		call.Resolution = &ast.CallResolution{
			Kind:         ast.BuiltInMatched,
			BuiltIn:      builtIn,
			ReceiverType: recvType,
			ArgTypes:     argTypes,
			ReturnType:   result,
		}
		call.SetType(result)
		return
	}

	resolution, cerr := w.tryResolve(call, recvType, argTypes, argSpans)
	if cerr != nil {
		w.recError(cerr)
		w.failCall(call, argTypes)
		return
	}

	call.Resolution = resolution
	call.SetType(resolution.ReturnType)
}

// tryResolve runs dispatch resolution, converting a raised resolution error
// into a returned one so the caller can mark the call failed and keep
// walking.
func (w *Walker) tryResolve(
	call *ast.MethodCall,
	recvType types.Type,
	argTypes []types.Type,
	argSpans []*report.TextSpan,
) (resolution *ast.CallResolution, cerr *report.CompileError) {
	defer func() {
		if x := recover(); x != nil {
			if rerr, ok := x.(*report.CompileError); ok {
				resolution = nil
				cerr = rerr
				return
			}

			panic(x)
		}
	}()

	resolution = w.resolveDispatch(call.Name, call.Callee, recvType, argTypes, call.Span(), argSpans)
	return resolution, nil
}

// tryWalkExpr walks a sub-expression, converting a raised error into a
// report plus a false return so that siblings still get analyzed.
func (w *Walker) tryWalkExpr(expr ast.ASTExpr) (ok bool) {
	defer func() {
		if x := recover(); x != nil {
			if cerr, isCompile := x.(*report.CompileError); isCompile {
				w.recError(cerr)
				expr.SetType(types.PrimNoReturn)
				ok = false
				return
			}

			panic(x)
		}
	}()

	w.walkExpr(expr)
	return true
}

// failCall marks a call failed and types it as the no-value result type.
// Failed calls never reach code generation.
func (w *Walker) failCall(call *ast.MethodCall, argTypes []types.Type) {
	call.Resolution = &ast.CallResolution{
		Kind:         ast.Failed,
		ReceiverType: call.Callee.Type(),
		ArgTypes:     argTypes,
		ReturnType:   types.PrimNoReturn,
	}
	call.SetType(types.PrimNoReturn)
}

// poisoned returns whether an expression carries the sentinel type of a
// failure that has already been reported.  Failed calls walk without raising,
// so the sentinel alone cannot distinguish them from genuinely valueless
// results; the failed resolution marker can.
func poisoned(expr ast.ASTExpr) bool {
	switch v := expr.(type) {
	case *ast.MethodCall:
		return v.Resolution != nil && v.Resolution.Kind == ast.Failed
	case *ast.FieldAccess:
		return types.Equals(v.Type(), types.PrimNoReturn) && poisoned(v.Recv)
	}

	return false
}
