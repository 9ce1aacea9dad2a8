package depm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDFromPath(t *testing.T) {
	a := GenerateIDFromPath("/pkg/a")
	b := GenerateIDFromPath("/pkg/b")

	assert.Equal(t, a, GenerateIDFromPath("/pkg/a"))
	assert.NotEqual(t, a, b)
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("mypkg"))
	assert.True(t, IsValidIdentifier("_private"))
	assert.True(t, IsValidIdentifier("pkg2"))

	assert.False(t, IsValidIdentifier(""))
	assert.False(t, IsValidIdentifier("2pkg"))
	assert.False(t, IsValidIdentifier("my-pkg"))
	assert.False(t, IsValidIdentifier("my pkg"))
}

func TestDeclArena(t *testing.T) {
	arena := NewDeclArena()

	point := types.NewValueType("point", 1, arena.NextIndex(), "")
	require.True(t, arena.Declare(point))

	// Duplicate names are rejected.
	assert.False(t, arena.Declare(types.NewValueType("point", 1, arena.NextIndex(), "")))

	got, ok := arena.Lookup("point")
	require.True(t, ok)
	assert.Same(t, point, got)

	assert.Same(t, point, arena.Get(0))
	assert.Len(t, arena.Decls(), 1)

	assert.False(t, arena.Frozen())
	arena.Freeze()
	assert.True(t, arena.Frozen())
}

func TestPackageTable(t *testing.T) {
	table := NewPackageTable()

	pkg := &Package{ID: 1, Name: "main", Decls: NewDeclArena()}
	require.True(t, table.AddPackage(pkg))
	assert.False(t, table.AddPackage(&Package{ID: 1, Name: "other", Decls: NewDeclArena()}))

	got, ok := table.Get(1)
	require.True(t, ok)
	assert.Same(t, pkg, got)

	byName, ok := table.GetByName("main")
	require.True(t, ok)
	assert.Same(t, pkg, byName)

	table.Freeze()
	assert.True(t, table.Frozen())
	assert.True(t, pkg.Decls.Frozen())
}

func TestLoadPackage(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	manifest := "name = \"mypkg\"\nversion = \"1.2.0\"\ndocumentation = \"A test package.\"\ncaching = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ManifestFileName), []byte(manifest), 0o644))

	pkg, ok := LoadPackage(dir)
	require.True(t, ok)

	assert.Equal(t, "mypkg", pkg.Name)
	assert.Equal(t, "1.2.0", pkg.Version)
	assert.Equal(t, "A test package.", pkg.Documentation)
	assert.True(t, pkg.ShouldCache)
	assert.Equal(t, GenerateIDFromPath(dir), pkg.ID)
	assert.NotNil(t, pkg.Decls)
}

func TestLoadPackageRejectsBadName(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	manifest := "name = \"not a name\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ManifestFileName), []byte(manifest), 0o644))

	_, ok := LoadPackage(dir)
	assert.False(t, ok)
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	pkg := &Package{
		ID:          1,
		Name:        "mypkg",
		Version:     "0.3.0",
		AbsPath:     dir,
		Decls:       NewDeclArena(),
		ShouldCache: true,
	}

	animal := types.NewClass("Animal", pkg.ID, pkg.Decls.NextIndex(), "")
	animal.AddMethod(&types.Method{
		Name:       "speak",
		Access:     types.AccessPublic,
		ReturnType: types.PrimNoReturn,
		Owner:      animal,
	})
	pkg.Decls.Declare(animal)
	pkg.Decls.Freeze()

	require.NoError(t, WriteCache(pkg))
	require.NotNil(t, pkg.LastBuildTime)

	cached, ok := ReadCache(pkg)
	require.True(t, ok)

	assert.Equal(t, "mypkg", cached.Name)
	assert.Equal(t, "0.3.0", cached.Version)
	require.Len(t, cached.Types, 1)
	assert.Equal(t, "Animal", cached.Types[0].Name)
	assert.Equal(t, "class", cached.Types[0].Kind)
	require.Len(t, cached.Types[0].Methods, 1)
	assert.Equal(t, "speak", cached.Types[0].Methods[0].Name)
}

func TestReadCacheMissing(t *testing.T) {
	pkg := &Package{Name: "ghost", AbsPath: t.TempDir(), Decls: NewDeclArena()}

	_, ok := ReadCache(pkg)
	assert.False(t, ok)
}

func TestUniverse(t *testing.T) {
	pkg := NewUniverse()

	assert.Equal(t, UniversePkgName, pkg.Name)

	str, ok := pkg.Decls.Lookup("string")
	require.True(t, ok)

	_, isClass := str.(*types.ClassType)
	assert.True(t, isClass)

	_, ok = str.LookupMethod("length")
	assert.True(t, ok)

	printable, ok := pkg.Decls.Lookup("printable")
	require.True(t, ok)
	assert.True(t, types.IsAssignable(str, printable))

	rng, ok := pkg.Decls.Lookup("range")
	require.True(t, ok)

	extendTo, ok := rng.LookupMethod("extendTo")
	require.True(t, ok)
	assert.True(t, extendTo.Mutating)
}
