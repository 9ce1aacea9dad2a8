package codegen

import (
	"testing"

	"github.com/JerryHue/emojicode/types"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *Generator {
	return &Generator{
		mod:         ir.NewModule(),
		pkgPrefix:   "pkg1.",
		methodFuncs: make(map[*types.Method]*ir.Func),
		vtables:     make(map[*types.ClassType]*vtable),
	}
}

func declMethod(owner types.NamedType, name string, access types.AccessLevel) *types.Method {
	method := &types.Method{
		Name:       name,
		Access:     access,
		ReturnType: types.PrimNoReturn,
		Owner:      owner,
	}

	switch v := owner.(type) {
	case *types.ClassType:
		v.AddMethod(method)
	case *types.ValueType:
		v.AddMethod(method)
	}

	return method
}

func TestVTableLayout(t *testing.T) {
	animal := types.NewClass("Animal", 1, 0, "")
	animalSpeak := declMethod(animal, "speak", types.AccessPublic)
	animalEat := declMethod(animal, "eat", types.AccessPublic)

	dog := types.NewClass("Dog", 1, 1, "")
	dog.Superclass = animal
	dogSpeak := declMethod(dog, "speak", types.AccessPublic)
	dogFetch := declMethod(dog, "fetch", types.AccessPublic)

	g := newTestGenerator()
	g.declareMethods(animal)
	g.declareMethods(dog)

	dogTable := g.buildVTable(dog)
	animalTable := g.vtables[animal]
	require.NotNil(t, animalTable)

	// Superclass slots are assigned in declaration order.
	assert.Equal(t, 0, animalTable.slots[animalSpeak])
	assert.Equal(t, 1, animalTable.slots[animalEat])
	assert.Equal(t, uint64(2), animalTable.tableType.Len)

	// The subclass table keeps the superclass layout: the override fills the
	// inherited slot and new methods append after it.
	assert.Equal(t, 0, dogTable.slots[animalSpeak])
	assert.Equal(t, 1, dogTable.slots[animalEat])
	assert.Equal(t, 0, dogTable.slots[dogSpeak])
	assert.Equal(t, 2, dogTable.slots[dogFetch])
	assert.Equal(t, uint64(3), dogTable.tableType.Len)

	assert.Equal(t, "pkg1.Dog.vtable", dogTable.global.Name())
	assert.True(t, dogTable.global.Immutable)
}

func TestVTableIsBuiltOnce(t *testing.T) {
	animal := types.NewClass("Animal", 1, 0, "")
	declMethod(animal, "speak", types.AccessPublic)

	g := newTestGenerator()
	g.declareMethods(animal)

	first := g.buildVTable(animal)
	second := g.buildVTable(animal)
	assert.Same(t, first, second)
}

func TestDeclareMethodsLinkage(t *testing.T) {
	point := types.NewValueType("point", 1, 0, "")
	shift := declMethod(point, "shift", types.AccessPublic)
	reset := declMethod(point, "reset", types.AccessPrivate)

	g := newTestGenerator()
	g.declareMethods(point)

	require.Contains(t, g.methodFuncs, shift)
	require.Contains(t, g.methodFuncs, reset)

	assert.Equal(t, "pkg1.point.shift", g.methodFuncs[shift].Name())

	// Method functions take the receiver as a leading pointer parameter.
	require.Len(t, g.methodFuncs[shift].Params, 1)
	assert.Equal(t, "self", g.methodFuncs[shift].Params[0].Name())
}
