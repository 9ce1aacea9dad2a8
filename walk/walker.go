package walk

import (
	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/depm"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"
)

// Walker is responsible for walking source files and performing semantic
// analysis on their definitions.  One walker analyzes one file; walkers for
// different files may run in parallel since they only read the frozen
// declaration tables.
type Walker struct {
	// The source file being walked.
	file *depm.SourceFile

	// The frozen declaration context shared by all walkers.
	table *depm.PackageTable

	// The stack of local scopes used to lookup symbols.
	localScopes []map[string]*common.Symbol

	// The static type of the receiver inside the method being walked.  This
	// is nil outside of method bodies.
	selfType types.Type

	// Whether the receiver is a mutable storage location: ie. whether the
	// enclosing method is a mutating method.
	selfMutable bool

	// The return type of the enclosing function.  If this is nil, then there
	// is no enclosing function: ie. return statements are not valid.
	enclosingReturnType types.Type
}

// WalkFile semantically analyzes the given source file against the frozen
// declaration context.
func WalkFile(file *depm.SourceFile, table *depm.PackageTable) {
	w := NewWalker(file, table)

	for _, def := range file.Defs {
		w.walkDef(def)
	}
}

// NewWalker creates a walker for the given file.  The declaration context
// must already be frozen: analysis only ever reads it.
func NewWalker(file *depm.SourceFile, table *depm.PackageTable) *Walker {
	if !table.Frozen() {
		report.ReportICE("call analysis started before declarations were frozen")
	}

	return &Walker{file: file, table: table}
}

// walkDef walks a definition and catches any errors that occur.
func (w *Walker) walkDef(def ast.Def) {
	// Catch any errors that abort walking of the definition.
	defer report.CatchErrors(w.file.AbsPath, w.file.ReprPath)

	// Ensure that the walker is reset.
	defer func() {
		w.localScopes = nil
		w.selfType = nil
		w.selfMutable = false
		w.enclosingReturnType = nil
	}()

	w.doWalkDef(def)
}

// -----------------------------------------------------------------------------

// lookup looks up a symbol by name in all visible scopes.  If no symbol by
// the given name can be found, then an error is reported.
func (w *Walker) lookup(name string, span *report.TextSpan) *common.Symbol {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(w.localScopes) - 1; i > -1; i-- {
		if sym, ok := w.localScopes[i][name]; ok {
			return sym
		}
	}

	w.error(span, "undefined symbol: `%s`", name)
	return nil
}

// defineLocal defines a local symbol in the current local scope.  If the
// symbol is already defined, then an error is reported.
func (w *Walker) defineLocal(sym *common.Symbol) {
	currScope := w.localScopes[len(w.localScopes)-1]

	if _, ok := currScope[sym.Name]; ok {
		w.error(sym.DefSpan, "multiple symbols named `%s` defined in immediate local scope", sym.Name)
	}

	currScope[sym.Name] = sym
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.localScopes = append(w.localScopes, make(map[string]*common.Symbol))
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.localScopes = w.localScopes[:len(w.localScopes)-1]
}

// -----------------------------------------------------------------------------

// error raises an error of the general kind on the given span that aborts
// walking of the current definition.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// errorKind raises an error of the given kind on the given span.
func (w *Walker) errorKind(kind report.ErrorKind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.RaiseKind(kind, span, msg, args...))
}

// recError reports a recoverable error on the given span.
func (w *Walker) recError(cerr *report.CompileError) {
	report.ReportCompileError(w.file.AbsPath, w.file.ReprPath, cerr)
}

// warn reports a compile warning.
func (w *Walker) warn(span *report.TextSpan, msg string, args ...interface{}) {
	report.ReportCompileWarning(w.file.AbsPath, w.file.ReprPath, span, msg, args...)
}
