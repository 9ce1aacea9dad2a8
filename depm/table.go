package depm

import (
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"
)

// DeclArena stores a package's type declarations indexed by stable
// declaration indices.  Declarations are registered during the declaration
// collection phase and frozen before any call analysis runs: analysis only
// ever reads the arena.
type DeclArena struct {
	// The declarations in declaration order.  A declaration's index in this
	// slice is its stable identifier.
	decls []types.NamedType

	// A mapping between declaration names and their indices.
	indices map[string]int

	// Whether the arena has been frozen.
	frozen bool
}

// NewDeclArena creates a new empty declaration arena.
func NewDeclArena() *DeclArena {
	return &DeclArena{indices: make(map[string]int)}
}

// NextIndex returns the declaration index the next registered declaration
// will receive.
func (da *DeclArena) NextIndex() int {
	return len(da.decls)
}

// Declare registers a type declaration in the arena.  It returns false if a
// declaration with the same name already exists.
func (da *DeclArena) Declare(nt types.NamedType) bool {
	if da.frozen {
		report.ReportICE("type %s declared after the declaration arena was frozen", nt.Name())
	}

	if _, ok := da.indices[nt.Name()]; ok {
		return false
	}

	da.indices[nt.Name()] = len(da.decls)
	da.decls = append(da.decls, nt)
	return true
}

// Lookup returns the declaration registered under the given name.
func (da *DeclArena) Lookup(name string) (types.NamedType, bool) {
	if ndx, ok := da.indices[name]; ok {
		return da.decls[ndx], true
	}

	return nil, false
}

// Get returns the declaration with the given stable index.
func (da *DeclArena) Get(ndx int) types.NamedType {
	return da.decls[ndx]
}

// Decls returns the declarations in declaration order.
func (da *DeclArena) Decls() []types.NamedType {
	return da.decls
}

// Freeze marks the arena read-only.
func (da *DeclArena) Freeze() {
	da.frozen = true
}

// Frozen returns whether the arena has been frozen.
func (da *DeclArena) Frozen() bool {
	return da.frozen
}

// -----------------------------------------------------------------------------

// PackageTable is the shared, read-only declaration context threaded through
// call analysis.  It is produced by the declaration collection phase; once
// frozen it may be shared across parallel analyses of independent functions
// without locking.
type PackageTable struct {
	// The packages by ID.
	pkgs map[uint64]*Package

	// The packages by name.
	pkgsByName map[string]*Package

	// Whether the table and all its arenas have been frozen.
	frozen bool
}

// NewPackageTable creates a new empty package table.
func NewPackageTable() *PackageTable {
	return &PackageTable{
		pkgs:       make(map[uint64]*Package),
		pkgsByName: make(map[string]*Package),
	}
}

// AddPackage registers a package in the table.  It returns false if a package
// with the same name or ID is already registered.
func (pt *PackageTable) AddPackage(pkg *Package) bool {
	if pt.frozen {
		report.ReportICE("package %s added after the package table was frozen", pkg.Name)
	}

	if _, ok := pt.pkgsByName[pkg.Name]; ok {
		return false
	}

	if _, ok := pt.pkgs[pkg.ID]; ok {
		return false
	}

	pt.pkgs[pkg.ID] = pkg
	pt.pkgsByName[pkg.Name] = pkg
	return true
}

// Get returns the package with the given ID.
func (pt *PackageTable) Get(id uint64) (*Package, bool) {
	pkg, ok := pt.pkgs[id]
	return pkg, ok
}

// GetByName returns the package with the given name.
func (pt *PackageTable) GetByName(name string) (*Package, bool) {
	pkg, ok := pt.pkgsByName[name]
	return pkg, ok
}

// Packages returns all registered packages.
func (pt *PackageTable) Packages() []*Package {
	pkgs := make([]*Package, 0, len(pt.pkgs))
	for _, pkg := range pt.pkgs {
		pkgs = append(pkgs, pkg)
	}

	return pkgs
}

// Freeze marks the table and every package's declaration arena read-only.
// Call analysis takes a hard dependency on declarations being frozen before
// it begins.
func (pt *PackageTable) Freeze() {
	for _, pkg := range pt.pkgs {
		pkg.Decls.Freeze()
	}

	pt.frozen = true
}

// Frozen returns whether the table has been frozen.
func (pt *PackageTable) Frozen() bool {
	return pt.frozen
}
