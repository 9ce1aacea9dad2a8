package report

import (
	"fmt"
	"os"
)

// ErrorKind classifies a compile error.  It must be one of the enumerated
// error kinds below.  The kind is part of the error's structured form: tools
// consuming diagnostics switch on it rather than on the message text.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	ErrGeneral ErrorKind = iota // Any error without a more specific kind.

	ErrMethodNotFound          // No method with the called name is declared on the receiver.
	ErrAmbiguousProtocolMethod // Two or more intersection members declare the called name.
	ErrArityMismatch           // Argument count does not match parameter count.
	ErrArgumentTypeMismatch    // A positional argument has an incompatible type.
	ErrAccessViolation         // The method was found but is inaccessible from the call site.
	ErrGenericUnification      // A generic variable could not be consistently bound.
	ErrMutationImmutable       // A mutating method was called on an immutable receiver.
)

// Label returns the user-facing label for the error kind.
func (ek ErrorKind) Label() string {
	switch ek {
	case ErrMethodNotFound:
		return "Method"
	case ErrAmbiguousProtocolMethod:
		return "Ambiguity"
	case ErrArityMismatch:
		return "Argument"
	case ErrArgumentTypeMismatch:
		return "Type"
	case ErrAccessViolation:
		return "Access"
	case ErrGenericUnification:
		return "Generic"
	case ErrMutationImmutable:
		return "Mutability"
	default:
		return "Compile"
	}
}

// -----------------------------------------------------------------------------

// CompileError is a compilation error that occurs in a context in which the
// file is known by the error handler and thus doesn't need to be passed along
// with the error.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a new compile error of the general kind.
func Raise(span *TextSpan, msg string, args ...interface{}) *CompileError {
	return RaiseKind(ErrGeneral, span, msg, args...)
}

// RaiseKind creates a new compile error of the given kind.
func RaiseKind(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug or unexpected condition occurring within the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: a missing package
// manifest, an unreadable source path, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportCompileError reports a compilation error: ie. erroneous input code.
// The absPath is the absolute path to the erroneous source file.  The reprPath
// is the representative path to the erroneous source file as it should be
// shown to the user.  The error's span may be nil in which case no position
// information is printed.
func ReportCompileError(absPath, reprPath string, cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	// Errors are counted even when they are not displayed: the log level
	// controls output, never whether compilation proceeds.
	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage(cerr.Kind.Label()+" Error", true, absPath, reprPath, cerr.Span, cerr.Message)
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of
// the same form as those to ReportCompileError.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, message string, args ...interface{}) {
	if rep.logLevel > LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompileMessage("Warning", false, absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayStdError(reprPath, err)
	}
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` during a stage of
// compilation.  In effect, this handler determines when any errors
// "unrecoverable" within a given subsection of the compiler should stop
// bubbling.
// NB: This function must ALWAYS be deferred.
func CatchErrors(absPath, reprPath string) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			ReportCompileError(absPath, reprPath, cerr)
		} else if serr, ok := x.(error); ok {
			ReportStdError(reprPath, serr)
		} else {
			ReportFatal("%s", x)
		}
	}
}
