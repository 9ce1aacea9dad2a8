package cmd

import (
	"os"
	"path/filepath"

	"github.com/JerryHue/emojicode/codegen"
	"github.com/JerryHue/emojicode/depm"
	"github.com/JerryHue/emojicode/docgen"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/walk"
)

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The path to the root package directory.
	rootPath string

	// The path to write the generated LLVM IR to.
	outputPath string

	// The path to write the JSON documentation report to.  Empty if no
	// report was requested.
	reportPath string

	// Whether the package metadata cache is disabled.
	noCache bool

	// The table of packages participating in compilation.
	table *depm.PackageTable

	// The root package being compiled.
	rootPkg *depm.Package
}

// InitPackages loads the root package and the universe and freezes the
// resulting declaration context.
func (c *Compiler) InitPackages() bool {
	c.table = depm.NewPackageTable()
	c.table.AddPackage(depm.NewUniverse())

	pkg, ok := depm.LoadPackage(c.rootPath)
	if !ok {
		return false
	}

	c.rootPkg = pkg
	if !c.table.AddPackage(pkg) {
		return false
	}

	// Declarations never change after loading: analysis and code generation
	// only read them.
	c.table.Freeze()

	return report.ShouldProceed()
}

// WalkPackages semantically analyzes all the files of all loaded packages.
func (c *Compiler) WalkPackages() bool {
	for _, pkg := range c.table.Packages() {
		for _, file := range pkg.Files {
			walk.WalkFile(file, c.table)
		}
	}

	return report.ShouldProceed()
}

// CodeGen generates the root package into an LLVM IR text file.
func (c *Compiler) CodeGen() bool {
	mod := codegen.Generate(c.rootPkg)

	outPath := c.outputPath
	if outPath == "" {
		outPath = filepath.Join(c.rootPath, c.rootPkg.Name+".ll")
	}

	file, err := os.Create(outPath)
	if err != nil {
		report.ReportStdError(c.rootPkg.Name, err)
		return false
	}
	defer file.Close()

	if _, err := mod.WriteTo(file); err != nil {
		report.ReportStdError(c.rootPkg.Name, err)
		return false
	}

	return true
}

// EmitArtifacts writes the requested documentation report and refreshes the
// package metadata cache.
func (c *Compiler) EmitArtifacts() bool {
	if c.reportPath != "" {
		if err := docgen.WriteDocs(c.rootPkg, c.reportPath); err != nil {
			report.ReportStdError(c.rootPkg.Name, err)
			return false
		}
	}

	if c.rootPkg.ShouldCache && !c.noCache {
		if err := depm.WriteCache(c.rootPkg); err != nil {
			report.ReportStdError(c.rootPkg.Name, err)
			return false
		}
	}

	return true
}
