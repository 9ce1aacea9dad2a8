// Package cmd is the top-level "driver" package for the compiler: it contains
// all the functionality for parsing command-line arguments, managing compiler
// state, and running all the various phases of the compiler.
package cmd

// RunCompiler is the main entry point for the compiler.  This should be
// called directly from main.
func RunCompiler() int {
	// Create a new compiler from the given command-line arguments.
	c := NewCompilerFromArgs()

	// Load the root package and the universe.
	if !c.InitPackages() {
		return 1
	}

	// Perform semantic analysis.
	if !c.WalkPackages() {
		return 1
	}

	// Generate compilation output.
	if !c.CodeGen() {
		return 1
	}

	// Write the documentation report and metadata cache.
	if !c.EmitArtifacts() {
		return 1
	}

	return 0
}
