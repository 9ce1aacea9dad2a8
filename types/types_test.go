package types

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, Equals(PrimInteger, PrimInteger))
	assert.False(t, Equals(PrimInteger, PrimReal))
	assert.False(t, Equals(PrimInteger, &OptionalType{Elem: PrimInteger}))
}

func TestNamedTypeIdentity(t *testing.T) {
	a := NewClass("box", 1, 0, "")
	b := NewClass("box", 1, 1, "")

	// Named types compare by declaration identity, never structurally.
	assert.True(t, Equals(a, a))
	assert.False(t, Equals(a, b))
}

func TestOptionalAcceptsBareElement(t *testing.T) {
	opt := &OptionalType{Elem: PrimInteger}

	assert.True(t, IsAssignable(PrimInteger, opt))
	assert.False(t, IsAssignable(opt, PrimInteger))
	assert.False(t, IsAssignable(PrimReal, opt))
}

func TestSubclassAssignability(t *testing.T) {
	animal := NewClass("Animal", 1, 0, "")
	dog := NewClass("Dog", 1, 1, "")
	dog.Superclass = animal
	puppy := NewClass("Puppy", 1, 2, "")
	puppy.Superclass = dog

	assert.True(t, IsAssignable(dog, animal))
	assert.True(t, IsAssignable(puppy, animal))
	assert.False(t, IsAssignable(animal, dog))
}

func TestProtocolConformanceAssignability(t *testing.T) {
	printable := NewProtocol("printable", 1, 0, "")

	animal := NewClass("Animal", 1, 1, "")
	animal.AddConformance(printable)
	dog := NewClass("Dog", 1, 2, "")
	dog.Superclass = animal

	point := NewValueType("point", 1, 3, "")

	assert.True(t, IsAssignable(animal, printable))

	// Conformance is inherited down the superclass chain.
	assert.True(t, IsAssignable(dog, printable))

	assert.False(t, IsAssignable(point, printable))
}

func TestIntersectionAssignability(t *testing.T) {
	comparable := NewProtocol("comparable", 1, 0, "")
	printable := NewProtocol("printable", 1, 1, "")
	intersection := NewMultiProtocol(comparable, printable)

	both := NewValueType("both", 1, 2, "")
	both.AddConformance(comparable)
	both.AddConformance(printable)

	one := NewValueType("one", 1, 3, "")
	one.AddConformance(comparable)

	// An intersection requires conformance to every member.
	assert.True(t, IsAssignable(both, intersection))
	assert.False(t, IsAssignable(one, intersection))

	// An intersection value satisfies each member on its own.
	assert.True(t, IsAssignable(intersection, comparable))
	assert.True(t, IsAssignable(intersection, printable))
}

func TestMultiProtocolCanonicalization(t *testing.T) {
	comparable := NewProtocol("comparable", 1, 0, "")
	printable := NewProtocol("printable", 1, 1, "")

	// Duplicate members collapse; a single distinct member is no
	// intersection at all.
	single := NewMultiProtocol(comparable, comparable)
	assert.Same(t, comparable, single)

	mp, ok := NewMultiProtocol(comparable, printable, comparable).(*MultiProtocolType)
	require.True(t, ok)
	assert.Len(t, mp.Protocols, 2)

	// Member order is canonical for equality, however the intersection was
	// spelled.
	other := NewMultiProtocol(printable, comparable)
	assert.True(t, Equals(mp, other))
}

func TestMultiProtocolDeclarers(t *testing.T) {
	comparable := NewProtocol("comparable", 1, 0, "")
	comparable.AddMethod(&Method{Name: "describe", Owner: comparable, ReturnType: PrimSymbol})

	printable := NewProtocol("printable", 1, 1, "")
	printable.AddMethod(&Method{Name: "describe", Owner: printable, ReturnType: PrimSymbol})
	printable.AddMethod(&Method{Name: "print", Owner: printable, ReturnType: PrimNoReturn})

	mp := NewMultiProtocol(comparable, printable).(*MultiProtocolType)

	assert.Len(t, mp.Declarers("describe"), 2)
	assert.Len(t, mp.Declarers("print"), 1)
	assert.Empty(t, mp.Declarers("missing"))
}

func TestMultiProtocolDeclarersShared(t *testing.T) {
	comparable := NewProtocol("comparable", 1, 0, "")
	comparable.AddMethod(&Method{Name: "describe", Owner: comparable, ReturnType: PrimSymbol})

	printable := NewProtocol("printable", 1, 1, "")
	printable.AddMethod(&Method{Name: "describe", Owner: printable, ReturnType: PrimSymbol})

	mp := NewMultiProtocol(comparable, printable).(*MultiProtocolType)

	// A frozen descriptor is shared between concurrent analyses: its name
	// union must be readable without synchronization.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				assert.Len(t, mp.Declarers("describe"), 2)
			}
		}()
	}

	wg.Wait()
}

/* -------------------------------------------------------------------------- */

func TestUnifyBindsVariables(t *testing.T) {
	sub := make(Substitution)

	require.True(t, Unify(&GenericVarType{Name: "T"}, PrimInteger, sub))
	assert.True(t, Equals(PrimInteger, sub["T"]))

	// A second consistent use succeeds; a conflicting one fails.
	assert.True(t, Unify(&GenericVarType{Name: "T"}, PrimInteger, sub))
	assert.False(t, Unify(&GenericVarType{Name: "T"}, PrimReal, sub))
}

func TestUnifyThroughOptionals(t *testing.T) {
	sub := make(Substitution)
	param := &OptionalType{Elem: &GenericVarType{Name: "T"}}

	require.True(t, Unify(param, &OptionalType{Elem: PrimReal}, sub))
	assert.True(t, Equals(PrimReal, sub["T"]))

	// A bare argument binds the element of an optional parameter.
	sub2 := make(Substitution)
	require.True(t, Unify(param, PrimReal, sub2))
	assert.True(t, Equals(PrimReal, sub2["T"]))
}

func TestUnifyAppliedTypes(t *testing.T) {
	box := NewValueType("box", 1, 0, "")
	box.SetTypeParams([]TypeParam{{Name: "T"}})

	param := &AppliedType{Named: box, TypeArgs: []Type{&GenericVarType{Name: "T"}}}
	arg := &AppliedType{Named: box, TypeArgs: []Type{PrimInteger}}

	sub := make(Substitution)
	require.True(t, Unify(param, arg, sub))
	assert.True(t, Equals(PrimInteger, sub["T"]))
}

func TestUnifyLeavesStructuralMismatchesAlone(t *testing.T) {
	// A variable-free parameter never fails unification: the positional
	// compatibility check owns that diagnosis.
	sub := make(Substitution)
	assert.True(t, Unify(PrimInteger, PrimReal, sub))
	assert.Empty(t, sub)
}

func TestApplySubstitution(t *testing.T) {
	sub := Substitution{"T": PrimInteger}

	applied := ApplySubstitution(&OptionalType{Elem: &GenericVarType{Name: "T"}}, sub)
	assert.True(t, Equals(&OptionalType{Elem: PrimInteger}, applied))
	assert.False(t, HasGenericVars(applied))

	// Unbound variables stay in place.
	left := ApplySubstitution(&GenericVarType{Name: "U"}, sub)
	assert.True(t, HasGenericVars(left))
}

func TestDeclBaseRejectsDuplicates(t *testing.T) {
	point := NewValueType("point", 1, 0, "")

	require.True(t, point.AddMethod(&Method{Name: "scale", Owner: point, ReturnType: PrimNoReturn}))
	assert.False(t, point.AddMethod(&Method{Name: "scale", Owner: point, ReturnType: PrimNoReturn}))

	require.True(t, point.AddField(&Field{Name: "x", Type: PrimReal, Owner: point}))
	assert.False(t, point.AddField(&Field{Name: "x", Type: PrimReal, Owner: point}))
}
