package walk

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/report"
)

// checkMutation verifies that a mutating method is being called on a mutable
// storage location.  It runs for every name-matched mutating method, whether
// or not the rest of the call resolves.
func (w *Walker) checkMutation(recv ast.ASTExpr, methodName string) {
	if w.isMutableLocation(recv) {
		return
	}

	w.errorKind(
		report.ErrMutationImmutable, recv.Span(),
		"cannot call mutating method `%s` on an immutable value", methodName,
	)
}

// isMutableLocation returns whether the expression names a storage location
// that may be mutated in place.  Temporaries are never mutable: a value must
// be stored somewhere before a mutating method can run on it.
func (w *Walker) isMutableLocation(expr ast.ASTExpr) bool {
	if expr.Category() != ast.LValue {
		return false
	}

	switch v := expr.(type) {
	case *ast.Identifier:
		return v.Sym != nil && v.Sym.Mutable
	case *ast.SelfExpr:
		return w.selfMutable
	case *ast.FieldAccess:
		// A field is mutable only if it is declared mutable and the value it
		// is accessed through is itself mutable.
		return v.Field != nil && v.Field.Mutable && w.isMutableLocation(v.Recv)
	}

	return false
}
