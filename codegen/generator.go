package codegen

import (
	"fmt"

	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/depm"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator is responsible for converting a checked package into an LLVM
// module.  Every call it generates carries a completed resolution: the
// generator never re-resolves, it only translates the recorded strategy.
type Generator struct {
	// The package being generated.
	pkg *depm.Package

	// The LLVM module being generated.
	mod *ir.Module

	// The prefix prepended to all global symbols to prevent definition
	// collisions between symbols in different packages.
	pkgPrefix string

	// The LLVM functions of declared methods keyed by declaration.
	methodFuncs map[*types.Method]*ir.Func

	// The virtual method tables of classes keyed by declaration.
	vtables map[*types.ClassType]*vtable

	// The function bodies to generate after all declarations exist.
	bodyPredicates []bodyPredicate

	// The current LLVM function being generated.
	fn *ir.Func

	// The current LLVM block being appended to.
	block *ir.Block

	// The entry block holding the local variable allocations of the current
	// function.
	varBlock *ir.Block

	// The receiver value of the method being generated.  Nil inside free
	// functions.
	self value.Value
}

// bodyPredicate is the pending body of a function or method.
type bodyPredicate struct {
	// The LLVM function.
	llFunc *ir.Func

	// The definition whose body is generated into the function.
	def ast.Def
}

// vtable records the slot layout and global table of a class.  Slots for
// inherited methods come first, in the superclass's order, so a subclass
// table is usable through a superclass-typed reference.
type vtable struct {
	// The slot index of each method reachable on the class.
	slots map[*types.Method]int

	// The global constant holding the table.
	global *ir.Global

	// The LLVM array type of the table.
	tableType *lltypes.ArrayType
}

// Generate generates a checked package into an LLVM module.
func Generate(pkg *depm.Package) *ir.Module {
	g := Generator{
		pkg:         pkg,
		mod:         ir.NewModule(),
		pkgPrefix:   fmt.Sprintf("pkg%d.", pkg.ID),
		methodFuncs: make(map[*types.Method]*ir.Func),
		vtables:     make(map[*types.ClassType]*vtable),
	}

	// Declare all methods and build class vtables before any body is
	// generated: bodies may call forward.
	for _, decl := range pkg.Decls.Decls() {
		g.declareMethods(decl)
	}

	for _, decl := range pkg.Decls.Decls() {
		if class, ok := decl.(*types.ClassType); ok {
			g.buildVTable(class)
		}
	}

	for _, file := range pkg.Files {
		for _, def := range file.Defs {
			g.declareDef(def)
		}
	}

	for _, pred := range g.bodyPredicates {
		g.generateBody(pred)
	}

	return g.mod
}

// -----------------------------------------------------------------------------

// appendBlock appends a new basic block to the current function.
func (g *Generator) appendBlock() *ir.Block {
	return g.fn.NewBlock("")
}

// alloca builds a stack allocation in the entry block of the current
// function so that every local has a stable address.
func (g *Generator) alloca(typ lltypes.Type) value.Value {
	saved := g.block
	g.block = g.varBlock
	ptr := g.block.NewAlloca(typ)
	g.block = saved
	return ptr
}

// lookupMethodFunc returns the LLVM function of a declared method.
func (g *Generator) lookupMethodFunc(method *types.Method) *ir.Func {
	llFunc, ok := g.methodFuncs[method]
	if !ok {
		report.ReportICE("no LLVM function declared for method `%s`", method.Name)
	}

	return llFunc
}
