package depm

import (
	"time"

	"github.com/JerryHue/emojicode/ast"
)

// SourceFile represents an Emojicode source file.
type SourceFile struct {
	// AbsPath is the absolute path to the source file.
	AbsPath string

	// ReprPath is the representative path of the source file: the path as it
	// should be shown to the user in diagnostics.
	ReprPath string

	// Parent is the parent package to the file.
	Parent *Package

	// Defs is the list of definitions that make up this source file.
	Defs []ast.Def
}

// Package represents an Emojicode package: a named collection of source files
// together with its declaration arena.
type Package struct {
	// ID is the unique ID of this package.
	ID uint64

	// Name is the package name.
	Name string

	// Version is the declared package version.
	Version string

	// Documentation is the package's documentation comment.
	Documentation string

	// AbsPath is the absolute path to the root of the package.
	AbsPath string

	// Files is a list of all the source files that belong to this package.
	Files []*SourceFile

	// Decls is the package's declaration arena.
	Decls *DeclArena

	// ShouldCache indicates if compilation caching is enabled for the
	// package.
	ShouldCache bool

	// LastBuildTime supports compilation caching.
	LastBuildTime *time.Time
}
