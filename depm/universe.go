package depm

import (
	"github.com/JerryHue/emojicode/types"
)

// UniversePkgName is the name of the builtin package whose declarations are
// visible in every compilation without being imported.
const UniversePkgName = "s"

// NewUniverse builds the builtin "s" package.  Its declarations are
// constructed programmatically rather than parsed: the primitive kinds are
// closed and built-in, and the few base declarations below are the minimum
// the rest of the standard library builds upon.
func NewUniverse() *Package {
	pkg := &Package{
		ID:            GenerateIDFromPath(UniversePkgName),
		Name:          UniversePkgName,
		Version:       "1.0.0",
		Documentation: "The s package provides the base types every program uses.",
		AbsPath:       UniversePkgName,
		Decls:         NewDeclArena(),
	}

	declareUniverseTypes(pkg)
	return pkg
}

func declareUniverseTypes(pkg *Package) {
	arena := pkg.Decls

	// The comparable protocol.
	comparable := types.NewProtocol("comparable", pkg.ID, arena.NextIndex(),
		"A type whose values have a total order.")
	arena.Declare(comparable)
	comparable.AddMethod(&types.Method{
		Name:       "isGreaterThan",
		Access:     types.AccessPublic,
		Params:     []types.Type{comparable},
		ParamNames: []string{"other"},
		ReturnType: types.PrimBoolean,
		Owner:      comparable,
		Doc:        "Returns whether the receiver orders after the given value.",
	})

	// The printable protocol.
	printable := types.NewProtocol("printable", pkg.ID, arena.NextIndex(),
		"A type whose values have a textual description.")
	arena.Declare(printable)

	// The string class.
	str := types.NewClass("string", pkg.ID, arena.NextIndex(),
		"An immutable sequence of characters.")
	arena.Declare(str)
	str.AddConformance(printable)
	str.AddMethod(&types.Method{
		Name:       "length",
		Access:     types.AccessPublic,
		ReturnType: types.PrimInteger,
		Owner:      str,
		Doc:        "Returns the number of characters in the string.",
	})
	str.AddMethod(&types.Method{
		Name:       "byteAt",
		Access:     types.AccessPublic,
		Params:     []types.Type{types.PrimInteger},
		ParamNames: []string{"index"},
		ReturnType: types.PrimByte,
		Owner:      str,
		Doc:        "Returns the byte at the given index.",
	})
	printable.AddMethod(&types.Method{
		Name:       "description",
		Access:     types.AccessPublic,
		ReturnType: str,
		Owner:      printable,
		Doc:        "Returns a textual description of the value.",
	})
	str.AddMethod(&types.Method{
		Name:       "description",
		Access:     types.AccessPublic,
		ReturnType: str,
		Owner:      str,
		Doc:        "Returns the string itself.",
	})

	// The range value type.
	rng := types.NewValueType("range", pkg.ID, arena.NextIndex(),
		"A span of integers with an inclusive start and an exclusive stop.")
	arena.Declare(rng)
	rng.AddField(&types.Field{Name: "start", Type: types.PrimInteger, Owner: rng})
	rng.AddField(&types.Field{Name: "stop", Type: types.PrimInteger, Mutable: true, Owner: rng})
	rng.AddInitializer(&types.Initializer{
		Name:       "new",
		Access:     types.AccessPublic,
		Params:     []types.Type{types.PrimInteger, types.PrimInteger},
		ParamNames: []string{"start", "stop"},
		Owner:      rng,
		Doc:        "Creates a range spanning from start up to but not including stop.",
	})
	rng.AddMethod(&types.Method{
		Name:       "contains",
		Access:     types.AccessPublic,
		Params:     []types.Type{types.PrimInteger},
		ParamNames: []string{"value"},
		ReturnType: types.PrimBoolean,
		Owner:      rng,
		Doc:        "Returns whether the given integer lies within the range.",
	})
	rng.AddMethod(&types.Method{
		Name:       "extendTo",
		Mutating:   true,
		Access:     types.AccessPublic,
		Params:     []types.Type{types.PrimInteger},
		ParamNames: []string{"stop"},
		ReturnType: types.PrimNoReturn,
		Owner:      rng,
		Doc:        "Moves the range's stop to the given integer.",
	})
}
