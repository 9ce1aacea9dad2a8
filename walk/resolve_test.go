package walk

import (
	"testing"

	"github.com/JerryHue/emojicode/ast"
	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/depm"
	"github.com/JerryHue/emojicode/report"
	"github.com/JerryHue/emojicode/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv bundles a frozen single-package declaration context and a walker
// positioned inside one of its files.
type testEnv struct {
	pkg    *depm.Package
	table  *depm.PackageTable
	walker *Walker
}

// newTestEnv builds a test context around the given declarations.
func newTestEnv(t *testing.T, declare func(pkg *depm.Package)) *testEnv {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	pkg := &depm.Package{
		ID:      1,
		Name:    "test",
		AbsPath: "/test",
		Decls:   depm.NewDeclArena(),
	}
	file := &depm.SourceFile{AbsPath: "/test/main.emojic", ReprPath: "main.emojic", Parent: pkg}
	pkg.Files = []*depm.SourceFile{file}

	if declare != nil {
		declare(pkg)
	}

	table := depm.NewPackageTable()
	require.True(t, table.AddPackage(pkg))
	table.Freeze()

	w := NewWalker(file, table)
	w.pushScope()

	return &testEnv{pkg: pkg, table: table, walker: w}
}

func testSpan() *report.TextSpan {
	return &report.TextSpan{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 2}
}

func exprBase(cat int) ast.ExprBase {
	return ast.NewExprBase(ast.NewASTBaseOn(testSpan()), cat)
}

// localOf defines a local binding of the given type and returns an
// identifier referring to it.
func (env *testEnv) localOf(name string, typ types.Type, mutable bool) *ast.Identifier {
	sym := &common.Symbol{
		Name:     name,
		ParentID: env.pkg.ID,
		DefSpan:  testSpan(),
		Type:     typ,
		DefKind:  common.DefKindValue,
		Mutable:  mutable,
	}
	env.walker.defineLocal(sym)

	return &ast.Identifier{ExprBase: exprBase(ast.LValue), Name: name, Sym: sym}
}

func intLit(text string) *ast.Literal {
	return &ast.Literal{ExprBase: exprBase(ast.RValue), Kind: ast.LitInteger, Value: text}
}

func realLit(text string) *ast.Literal {
	return &ast.Literal{ExprBase: exprBase(ast.RValue), Kind: ast.LitReal, Value: text}
}

func callOf(recv ast.ASTExpr, name string, args ...ast.ASTExpr) *ast.MethodCall {
	return &ast.MethodCall{ExprBase: exprBase(ast.RValue), Callee: recv, Name: name, Args: args}
}

// resolveErrKind runs fn and captures the kind of the compile error it
// raises.
func resolveErrKind(t *testing.T, fn func()) report.ErrorKind {
	t.Helper()

	var kind report.ErrorKind
	raised := func() (raised bool) {
		defer func() {
			if x := recover(); x != nil {
				cerr, ok := x.(*report.CompileError)
				require.True(t, ok, "panic was not a compile error: %v", x)
				kind = cerr.Kind
				raised = true
			}
		}()

		fn()
		return false
	}()

	require.True(t, raised, "expected a compile error")
	return kind
}

func publicMethod(owner types.NamedType, name string, params []types.Type, returnType types.Type) *types.Method {
	paramNames := make([]string, len(params))
	for i := range params {
		paramNames[i] = "arg"
	}

	return &types.Method{
		Name:       name,
		Access:     types.AccessPublic,
		Params:     params,
		ParamNames: paramNames,
		ReturnType: returnType,
		Owner:      owner,
	}
}

/* -------------------------------------------------------------------------- */

func TestIntegerAddMatchesIntrinsic(t *testing.T) {
	env := newTestEnv(t, nil)

	call := callOf(intLit("1"), "add", intLit("2"))
	env.walker.walkMethodCall(call)

	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.BuiltInMatched, call.Resolution.Kind)
	assert.Equal(t, common.IntegerAdd, call.Resolution.BuiltIn)
	assert.True(t, types.Equals(types.PrimInteger, call.Type()))
}

func TestIntrinsicPrecedesDispatchForPrimitives(t *testing.T) {
	env := newTestEnv(t, nil)

	// Every keyed entry must produce an intrinsic resolution, never any
	// dispatch kind.
	cases := []struct {
		name    string
		recv    ast.ASTExpr
		arg     ast.ASTExpr
		builtIn common.BuiltIn
		result  types.Type
	}{
		{"multiply", intLit("3"), intLit("4"), common.IntegerMultiply, types.PrimInteger},
		{"less", intLit("3"), intLit("4"), common.IntegerLess, types.PrimBoolean},
		{"equal", intLit("3"), intLit("4"), common.Equal, types.PrimBoolean},
		{"divide", realLit("1.5"), realLit("0.5"), common.RealDivide, types.PrimReal},
		{"equal", realLit("1.5"), realLit("0.5"), common.RealEqual, types.PrimBoolean},
	}

	for _, c := range cases {
		call := callOf(c.recv, c.name, c.arg)
		env.walker.walkMethodCall(call)

		require.NotNil(t, call.Resolution, c.name)
		assert.Equal(t, ast.BuiltInMatched, call.Resolution.Kind, c.name)
		assert.Equal(t, c.builtIn, call.Resolution.BuiltIn, c.name)
		assert.True(t, types.Equals(c.result, call.Type()), c.name)
	}
}

func TestMismatchedPrimitiveKindsFallThrough(t *testing.T) {
	// Integer equal Real matches no table entry, and bare primitives carry
	// no methods, so the fallthrough is an ordinary method-not-found.
	env := newTestEnv(t, nil)

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"equal",
			intLit("1"),
			types.PrimInteger,
			[]types.Type{types.PrimReal},
			testSpan(),
			[]*report.TextSpan{testSpan()},
		)
	})

	assert.Equal(t, report.ErrMethodNotFound, kind)
}

func TestOptionalPresenceIntrinsics(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		pkg.Decls.Declare(types.NewClass("box", pkg.ID, pkg.Decls.NextIndex(), ""))
	})

	boxDecl, _ := env.pkg.Decls.Lookup("box")
	optType := &types.OptionalType{Elem: boxDecl}

	opt := env.localOf("maybe", optType, false)
	noValue := &ast.Literal{ExprBase: exprBase(ast.RValue), Kind: ast.LitNoValue}

	call := callOf(opt, "equal", noValue)
	env.walker.walkMethodCall(call)
	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.BuiltInMatched, call.Resolution.Kind)
	assert.Equal(t, common.IsNoValueRight, call.Resolution.BuiltIn)
	assert.True(t, types.Equals(types.PrimBoolean, call.Type()))

	noValue2 := &ast.Literal{ExprBase: exprBase(ast.RValue), Kind: ast.LitNoValue}
	opt2 := env.localOf("maybe2", optType, false)
	call2 := callOf(noValue2, "equal", opt2)
	env.walker.walkMethodCall(call2)
	require.NotNil(t, call2.Resolution)
	assert.Equal(t, ast.BuiltInMatched, call2.Resolution.Kind)
	assert.Equal(t, common.IsNoValueLeft, call2.Resolution.BuiltIn)
}

/* -------------------------------------------------------------------------- */

func TestClassMethodDynamicDispatch(t *testing.T) {
	var speak *types.Method

	env := newTestEnv(t, func(pkg *depm.Package) {
		animal := types.NewClass("Animal", pkg.ID, pkg.Decls.NextIndex(), "")
		speak = publicMethod(animal, "speak", nil, types.PrimNoReturn)
		animal.AddMethod(speak)
		pkg.Decls.Declare(animal)

		dog := types.NewClass("Dog", pkg.ID, pkg.Decls.NextIndex(), "")
		dog.Superclass = animal
		pkg.Decls.Declare(dog)
	})

	animalDecl, _ := env.pkg.Decls.Lookup("Animal")
	dogDecl, _ := env.pkg.Decls.Lookup("Dog")

	// A method found anywhere on a class chain dispatches dynamically: the
	// runtime value may be any subclass.
	animalRecv := env.localOf("a", animalDecl, false)
	call := callOf(animalRecv, "speak")
	env.walker.walkMethodCall(call)
	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.DynamicDispatch, call.Resolution.Kind)
	assert.Same(t, speak, call.Resolution.Method)

	// Resolution through a subclass finds the inherited declaration.
	dogRecv := env.localOf("d", dogDecl, false)
	call2 := callOf(dogRecv, "speak")
	env.walker.walkMethodCall(call2)
	require.NotNil(t, call2.Resolution)
	assert.Equal(t, ast.DynamicDispatch, call2.Resolution.Kind)
	assert.Same(t, speak, call2.Resolution.Method)
}

func TestSubclassShadowsSuperclassMethod(t *testing.T) {
	var base, override *types.Method

	env := newTestEnv(t, func(pkg *depm.Package) {
		animal := types.NewClass("Animal", pkg.ID, pkg.Decls.NextIndex(), "")
		base = publicMethod(animal, "speak", nil, types.PrimNoReturn)
		animal.AddMethod(base)
		pkg.Decls.Declare(animal)

		dog := types.NewClass("Dog", pkg.ID, pkg.Decls.NextIndex(), "")
		dog.Superclass = animal
		override = publicMethod(dog, "speak", nil, types.PrimNoReturn)
		dog.AddMethod(override)
		pkg.Decls.Declare(dog)
	})

	dogDecl, _ := env.pkg.Decls.Lookup("Dog")

	call := callOf(env.localOf("d", dogDecl, false), "speak")
	env.walker.walkMethodCall(call)
	require.NotNil(t, call.Resolution)
	assert.Same(t, override, call.Resolution.Method)
}

func TestFinalMethodOnExactClassStaticDispatch(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		animal := types.NewClass("Animal", pkg.ID, pkg.Decls.NextIndex(), "")
		name := publicMethod(animal, "name", nil, types.PrimSymbol)
		name.Final = true
		animal.AddMethod(name)
		pkg.Decls.Declare(animal)
	})

	animalDecl, _ := env.pkg.Decls.Lookup("Animal")

	call := callOf(env.localOf("a", animalDecl, false), "name")
	env.walker.walkMethodCall(call)
	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.StaticDispatch, call.Resolution.Kind)
}

func TestValueTypeAndEnumStaticDispatch(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		point := types.NewValueType("point", pkg.ID, pkg.Decls.NextIndex(), "")
		point.AddMethod(publicMethod(point, "magnitude", nil, types.PrimReal))
		pkg.Decls.Declare(point)

		color := types.NewEnum("color", pkg.ID, pkg.Decls.NextIndex(), "")
		color.AddMethod(publicMethod(color, "code", nil, types.PrimInteger))
		pkg.Decls.Declare(color)
	})

	pointDecl, _ := env.pkg.Decls.Lookup("point")
	call := callOf(env.localOf("p", pointDecl, false), "magnitude")
	env.walker.walkMethodCall(call)
	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.StaticDispatch, call.Resolution.Kind)

	colorDecl, _ := env.pkg.Decls.Lookup("color")
	call2 := callOf(env.localOf("c", colorDecl, false), "code")
	env.walker.walkMethodCall(call2)
	require.NotNil(t, call2.Resolution)
	assert.Equal(t, ast.StaticDispatch, call2.Resolution.Kind)
}

func TestProtocolDispatch(t *testing.T) {
	var describe *types.Method

	env := newTestEnv(t, func(pkg *depm.Package) {
		printable := types.NewProtocol("printable", pkg.ID, pkg.Decls.NextIndex(), "")
		describe = publicMethod(printable, "describe", nil, types.PrimSymbol)
		printable.AddMethod(describe)
		pkg.Decls.Declare(printable)
	})

	printableDecl, _ := env.pkg.Decls.Lookup("printable")

	call := callOf(env.localOf("p", printableDecl, false), "describe")
	env.walker.walkMethodCall(call)
	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.ProtocolDispatch, call.Resolution.Kind)
	assert.Same(t, describe, call.Resolution.Method)
	assert.Equal(t, printableDecl, call.Resolution.Protocol)
}

/* -------------------------------------------------------------------------- */

func TestIntersectionSingleDeclarerDispatch(t *testing.T) {
	var compareTo *types.Method
	var comparable *types.ProtocolType

	env := newTestEnv(t, func(pkg *depm.Package) {
		comparable = types.NewProtocol("comparable", pkg.ID, pkg.Decls.NextIndex(), "")
		compareTo = publicMethod(comparable, "compareTo", []types.Type{types.PrimInteger}, types.PrimInteger)
		comparable.AddMethod(compareTo)
		pkg.Decls.Declare(comparable)

		printable := types.NewProtocol("printable", pkg.ID, pkg.Decls.NextIndex(), "")
		printable.AddMethod(publicMethod(printable, "describe", nil, types.PrimSymbol))
		pkg.Decls.Declare(printable)
	})

	printableDecl, _ := env.pkg.Decls.Lookup("printable")
	intersection := types.NewMultiProtocol(comparable, printableDecl.(*types.ProtocolType))

	call := callOf(env.localOf("x", intersection, false), "compareTo", intLit("1"))
	env.walker.walkMethodCall(call)

	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.ProtocolDispatch, call.Resolution.Kind)
	assert.Same(t, compareTo, call.Resolution.Method)

	// The resolution is tagged with the single declaring member, not the
	// intersection itself.
	assert.Same(t, comparable, call.Resolution.Protocol)
}

func TestIntersectionDualDeclarerAmbiguity(t *testing.T) {
	env := newTestEnv(t, nil)

	comparable := types.NewProtocol("comparable", 1, 0, "")
	comparable.AddMethod(publicMethod(comparable, "describe", []types.Type{types.PrimInteger}, types.PrimInteger))

	printable := types.NewProtocol("printable", 1, 1, "")
	printable.AddMethod(publicMethod(printable, "describe", nil, types.PrimSymbol))

	intersection := types.NewMultiProtocol(comparable, printable)

	// Ambiguity is structural: differing signatures do not break the tie.
	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"describe",
			env.localOf("x", intersection, false),
			intersection,
			nil,
			testSpan(),
			nil,
		)
	})

	assert.Equal(t, report.ErrAmbiguousProtocolMethod, kind)
}

func TestIntersectionNoDeclarerNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	a := types.NewProtocol("a", 1, 0, "")
	b := types.NewProtocol("b", 1, 1, "")
	intersection := types.NewMultiProtocol(a, b)

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"missing",
			env.localOf("x", intersection, false),
			intersection,
			nil,
			testSpan(),
			nil,
		)
	})

	assert.Equal(t, report.ErrMethodNotFound, kind)
}

/* -------------------------------------------------------------------------- */

func TestArityMismatch(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		point := types.NewValueType("point", pkg.ID, pkg.Decls.NextIndex(), "")
		point.AddMethod(publicMethod(point, "scale", []types.Type{types.PrimReal}, types.PrimNoReturn))
		pkg.Decls.Declare(point)
	})

	pointDecl, _ := env.pkg.Decls.Lookup("point")

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"scale",
			env.localOf("p", pointDecl, false),
			pointDecl,
			[]types.Type{types.PrimReal, types.PrimReal},
			testSpan(),
			[]*report.TextSpan{testSpan(), testSpan()},
		)
	})

	assert.Equal(t, report.ErrArityMismatch, kind)
}

func TestArgumentTypeMismatch(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		point := types.NewValueType("point", pkg.ID, pkg.Decls.NextIndex(), "")
		point.AddMethod(publicMethod(point, "scale", []types.Type{types.PrimReal}, types.PrimNoReturn))
		pkg.Decls.Declare(point)
	})

	pointDecl, _ := env.pkg.Decls.Lookup("point")

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"scale",
			env.localOf("p", pointDecl, false),
			pointDecl,
			[]types.Type{types.PrimBoolean},
			testSpan(),
			[]*report.TextSpan{testSpan()},
		)
	})

	assert.Equal(t, report.ErrArgumentTypeMismatch, kind)
}

func TestPrivateMethodAccessViolation(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		point := types.NewValueType("point", pkg.ID, pkg.Decls.NextIndex(), "")
		secret := publicMethod(point, "secret", nil, types.PrimNoReturn)
		secret.Access = types.AccessPrivate
		point.AddMethod(secret)
		pkg.Decls.Declare(point)
	})

	pointDecl, _ := env.pkg.Decls.Lookup("point")

	// Outside any method body there is no self, so a private method is
	// unreachable.
	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"secret",
			env.localOf("p", pointDecl, false),
			pointDecl,
			nil,
			testSpan(),
			nil,
		)
	})
	assert.Equal(t, report.ErrAccessViolation, kind)

	// From inside the declaring type the same call resolves.
	env.walker.selfType = pointDecl
	res := env.walker.resolveDispatch(
		"secret",
		env.localOf("p2", pointDecl, false),
		pointDecl,
		nil,
		testSpan(),
		nil,
	)
	assert.Equal(t, ast.StaticDispatch, res.Kind)
}

func TestProtectedMethodVisibleToSubclass(t *testing.T) {
	var guard *types.Method

	env := newTestEnv(t, func(pkg *depm.Package) {
		animal := types.NewClass("Animal", pkg.ID, pkg.Decls.NextIndex(), "")
		guard = publicMethod(animal, "guard", nil, types.PrimNoReturn)
		guard.Access = types.AccessProtected
		animal.AddMethod(guard)
		pkg.Decls.Declare(animal)

		dog := types.NewClass("Dog", pkg.ID, pkg.Decls.NextIndex(), "")
		dog.Superclass = animal
		pkg.Decls.Declare(dog)
	})

	animalDecl, _ := env.pkg.Decls.Lookup("Animal")
	dogDecl, _ := env.pkg.Decls.Lookup("Dog")

	env.walker.selfType = dogDecl
	res := env.walker.resolveDispatch(
		"guard",
		env.localOf("a", animalDecl, false),
		animalDecl,
		nil,
		testSpan(),
		nil,
	)
	assert.Same(t, guard, res.Method)
}

/* -------------------------------------------------------------------------- */

func TestGenericRoundTrip(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		box := types.NewValueType("box", pkg.ID, pkg.Decls.NextIndex(), "")
		swap := &types.Method{
			Name:       "swap",
			Access:     types.AccessPublic,
			Params:     []types.Type{&types.GenericVarType{Name: "T", Index: 0}},
			ParamNames: []string{"value"},
			ReturnType: &types.GenericVarType{Name: "T", Index: 0},
			TypeParams: []types.TypeParam{{Name: "T"}},
			Owner:      box,
		}
		box.AddMethod(swap)
		pkg.Decls.Declare(box)
	})

	boxDecl, _ := env.pkg.Decls.Lookup("box")

	res := env.walker.resolveDispatch(
		"swap",
		env.localOf("b", boxDecl, false),
		boxDecl,
		[]types.Type{types.PrimInteger},
		testSpan(),
		[]*report.TextSpan{testSpan()},
	)

	// The substituted return type must contain no unresolved variables.
	assert.True(t, types.Equals(types.PrimInteger, res.ReturnType))
	assert.False(t, types.HasGenericVars(res.ReturnType))
}

func TestGenericBindingConflict(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		box := types.NewValueType("box", pkg.ID, pkg.Decls.NextIndex(), "")
		pair := &types.Method{
			Name:   "pair",
			Access: types.AccessPublic,
			Params: []types.Type{
				&types.GenericVarType{Name: "T", Index: 0},
				&types.GenericVarType{Name: "T", Index: 0},
			},
			ParamNames: []string{"first", "second"},
			ReturnType: types.PrimNoReturn,
			TypeParams: []types.TypeParam{{Name: "T"}},
			Owner:      box,
		}
		box.AddMethod(pair)
		pkg.Decls.Declare(box)
	})

	boxDecl, _ := env.pkg.Decls.Lookup("box")

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"pair",
			env.localOf("b", boxDecl, false),
			boxDecl,
			[]types.Type{types.PrimInteger, types.PrimReal},
			testSpan(),
			[]*report.TextSpan{testSpan(), testSpan()},
		)
	})

	assert.Equal(t, report.ErrGenericUnification, kind)
}

func TestAppliedReceiverFixesTypeVariables(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		box := types.NewValueType("box", pkg.ID, pkg.Decls.NextIndex(), "")
		box.SetTypeParams([]types.TypeParam{{Name: "T"}})
		box.AddMethod(&types.Method{
			Name:       "put",
			Access:     types.AccessPublic,
			Params:     []types.Type{&types.GenericVarType{Name: "T", Index: 0}},
			ParamNames: []string{"value"},
			ReturnType: types.PrimNoReturn,
			Owner:      box,
		})
		pkg.Decls.Declare(box)
	})

	boxDecl, _ := env.pkg.Decls.Lookup("box")
	intBox := &types.AppliedType{Named: boxDecl, TypeArgs: []types.Type{types.PrimInteger}}

	// The receiver's type argument binds T, so a Real argument is an
	// argument mismatch against Integer, not a unification failure.
	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"put",
			env.localOf("b", intBox, false),
			intBox,
			[]types.Type{types.PrimReal},
			testSpan(),
			[]*report.TextSpan{testSpan()},
		)
	})

	assert.Equal(t, report.ErrArgumentTypeMismatch, kind)
}

/* -------------------------------------------------------------------------- */

func TestMutatingMethodOnImmutableBinding(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		counter := types.NewValueType("counter", pkg.ID, pkg.Decls.NextIndex(), "")
		increment := publicMethod(counter, "increment", nil, types.PrimNoReturn)
		increment.Mutating = true
		counter.AddMethod(increment)
		pkg.Decls.Declare(counter)
	})

	counterDecl, _ := env.pkg.Decls.Lookup("counter")

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"increment",
			env.localOf("c", counterDecl, false),
			counterDecl,
			nil,
			testSpan(),
			nil,
		)
	})
	assert.Equal(t, report.ErrMutationImmutable, kind)

	// The same call on a mutable binding resolves.
	res := env.walker.resolveDispatch(
		"increment",
		env.localOf("m", counterDecl, true),
		counterDecl,
		nil,
		testSpan(),
		nil,
	)
	assert.Equal(t, ast.StaticDispatch, res.Kind)
}

func TestMutationErrorIndependentOfResolvability(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		counter := types.NewValueType("counter", pkg.ID, pkg.Decls.NextIndex(), "")
		add := publicMethod(counter, "addBy", []types.Type{types.PrimInteger}, types.PrimNoReturn)
		add.Mutating = true
		counter.AddMethod(add)
		pkg.Decls.Declare(counter)
	})

	counterDecl, _ := env.pkg.Decls.Lookup("counter")

	// Wrong arity and an immutable receiver: the mutability diagnosis wins.
	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"addBy",
			env.localOf("c", counterDecl, false),
			counterDecl,
			nil,
			testSpan(),
			nil,
		)
	})

	assert.Equal(t, report.ErrMutationImmutable, kind)
}

func TestMutatingMethodOnTemporary(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		counter := types.NewValueType("counter", pkg.ID, pkg.Decls.NextIndex(), "")
		increment := publicMethod(counter, "increment", nil, types.PrimNoReturn)
		increment.Mutating = true
		counter.AddMethod(increment)
		pkg.Decls.Declare(counter)
	})

	counterDecl, _ := env.pkg.Decls.Lookup("counter")

	// A call result is a temporary, never a storage location.
	temp := callOf(env.localOf("c", counterDecl, false), "copy")
	temp.SetType(counterDecl)

	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch(
			"increment",
			temp,
			counterDecl,
			nil,
			testSpan(),
			nil,
		)
	})

	assert.Equal(t, report.ErrMutationImmutable, kind)
}

func TestMutatingMethodThroughFieldChain(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		counter := types.NewValueType("counter", pkg.ID, pkg.Decls.NextIndex(), "")
		increment := publicMethod(counter, "increment", nil, types.PrimNoReturn)
		increment.Mutating = true
		counter.AddMethod(increment)
		pkg.Decls.Declare(counter)

		holder := types.NewValueType("holder", pkg.ID, pkg.Decls.NextIndex(), "")
		holder.AddField(&types.Field{Name: "mut", Type: counter, Mutable: true, Owner: holder})
		holder.AddField(&types.Field{Name: "fixed", Type: counter, Mutable: false, Owner: holder})
		pkg.Decls.Declare(holder)
	})

	counterDecl, _ := env.pkg.Decls.Lookup("counter")
	holderDecl, _ := env.pkg.Decls.Lookup("holder")

	mutField, _ := holderDecl.LookupField("mut")
	fixedField, _ := holderDecl.LookupField("fixed")

	base := env.localOf("h", holderDecl, true)

	// Mutable field through a mutable chain: allowed.
	access := &ast.FieldAccess{ExprBase: exprBase(ast.LValue), Recv: base, FieldName: "mut", Field: mutField}
	access.SetType(counterDecl)
	res := env.walker.resolveDispatch("increment", access, counterDecl, nil, testSpan(), nil)
	assert.Equal(t, ast.StaticDispatch, res.Kind)

	// Immutable field breaks the chain.
	access2 := &ast.FieldAccess{ExprBase: exprBase(ast.LValue), Recv: base, FieldName: "fixed", Field: fixedField}
	access2.SetType(counterDecl)
	kind := resolveErrKind(t, func() {
		env.walker.resolveDispatch("increment", access2, counterDecl, nil, testSpan(), nil)
	})
	assert.Equal(t, report.ErrMutationImmutable, kind)

	// A mutable field through an immutable base also breaks it.
	immBase := env.localOf("frozen", holderDecl, false)
	access3 := &ast.FieldAccess{ExprBase: exprBase(ast.LValue), Recv: immBase, FieldName: "mut", Field: mutField}
	access3.SetType(counterDecl)
	kind2 := resolveErrKind(t, func() {
		env.walker.resolveDispatch("increment", access3, counterDecl, nil, testSpan(), nil)
	})
	assert.Equal(t, report.ErrMutationImmutable, kind2)
}

/* -------------------------------------------------------------------------- */

func TestFailedCallResolvesToNoReturn(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		pkg.Decls.Declare(types.NewClass("empty", pkg.ID, pkg.Decls.NextIndex(), ""))
	})

	emptyDecl, _ := env.pkg.Decls.Lookup("empty")

	call := callOf(env.localOf("e", emptyDecl, false), "missing")
	env.walker.walkMethodCall(call)

	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.Failed, call.Resolution.Kind)
	assert.True(t, types.Equals(types.PrimNoReturn, call.Type()))
	assert.True(t, report.AnyErrors())
}

func TestSubExpressionErrorNotReReported(t *testing.T) {
	env := newTestEnv(t, nil)

	// The receiver refers to an undefined symbol: exactly one error is
	// reported even though the enclosing call also cannot resolve.
	bad := &ast.Identifier{ExprBase: exprBase(ast.LValue), Name: "ghost"}
	call := callOf(bad, "add", intLit("1"))
	env.walker.walkMethodCall(call)

	require.NotNil(t, call.Resolution)
	assert.Equal(t, ast.Failed, call.Resolution.Kind)
	assert.True(t, types.Equals(types.PrimNoReturn, call.Type()))

	// An enclosing call over the failed one also fails without reporting.
	outer := callOf(call, "add", intLit("2"))
	env.walker.walkMethodCall(outer)
	require.NotNil(t, outer.Resolution)
	assert.Equal(t, ast.Failed, outer.Resolution.Kind)
}

func TestCallOnValuelessResultReportsError(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		point := types.NewValueType("point", pkg.ID, pkg.Decls.NextIndex(), "")
		point.AddMethod(publicMethod(point, "reset", nil, types.PrimNoReturn))
		pkg.Decls.Declare(point)
	})

	pointDecl, _ := env.pkg.Decls.Lookup("point")

	// The inner call resolves: its valueless result is not a failure.
	inner := callOf(env.localOf("p", pointDecl, true), "reset")
	outer := callOf(inner, "reset")
	env.walker.walkMethodCall(outer)

	require.NotNil(t, inner.Resolution)
	assert.Equal(t, ast.StaticDispatch, inner.Resolution.Kind)

	// Chaining off it is an error of its own: the outer call must fail with
	// a diagnostic, never silently.
	require.NotNil(t, outer.Resolution)
	assert.Equal(t, ast.Failed, outer.Resolution.Kind)
	assert.True(t, report.AnyErrors())
}

func TestResolutionIsIdempotent(t *testing.T) {
	env := newTestEnv(t, func(pkg *depm.Package) {
		point := types.NewValueType("point", pkg.ID, pkg.Decls.NextIndex(), "")
		point.AddMethod(publicMethod(point, "magnitude", nil, types.PrimReal))
		pkg.Decls.Declare(point)
	})

	pointDecl, _ := env.pkg.Decls.Lookup("point")
	recv := env.localOf("p", pointDecl, false)

	first := env.walker.resolveDispatch("magnitude", recv, pointDecl, nil, testSpan(), nil)
	second := env.walker.resolveDispatch("magnitude", recv, pointDecl, nil, testSpan(), nil)

	assert.Equal(t, first.Kind, second.Kind)
	assert.Same(t, first.Method, second.Method)
	assert.True(t, types.Equals(first.ReturnType, second.ReturnType))
}
