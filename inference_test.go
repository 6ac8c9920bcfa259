// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package jinfer_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/wdamron/jinfer"
	. "github.com/wdamron/jinfer/construct"

	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/types"
)

type fixture struct {
	env *types.Env
	// class A; class B extends A
	a, b *types.Class
	// interface List<E>; class ArrayList<E> implements List<E>; class G<X>
	list, arrayList, g *types.Class
	// interface Function<P, R> { R apply(P p); }
	function *types.Class
	// interface Runnable { void run(); }
	runnable *types.Class
}

func newFixture() *fixture {
	env := types.NewEnv()
	f := &fixture{env: env}
	f.a = env.Declare(TClass("A"))
	f.b = env.Declare(TSubclass("B", f.a))
	f.list = env.Declare(TInterface("List", TParam("E")))
	e := TParam("E")
	f.arrayList = env.Declare(TClass("ArrayList", e))
	f.arrayList.Interfaces = []types.Type{TApp(f.list, e)}
	f.g = env.Declare(TClass("G", TParam("X")))
	p, r := TParam("P"), TParam("R")
	f.function = env.Declare(TFunctional("Function", []*types.TypeParam{p, r}, "apply", []types.Type{p}, r))
	f.runnable = env.Declare(TFunctional("Runnable", nil, "run", nil, types.Void))
	return f
}

// <T> T id(T x)
func (f *fixture) id() *types.Method {
	T := TParam("T")
	return Method("id", []*types.TypeParam{T}, []types.Type{T}, T)
}

func (f *fixture) str(s string) *ast.Literal { return Lit(`"`+s+`"`, f.env.String) }

func (f *fixture) integer(s string) *ast.Literal { return Lit(s, types.Int) }

func typeStrings(ts []types.Type) string { return strings.Join(types.TypeStrings(ts), ", ") }

func TestIdentityFromArgument(t *testing.T) {
	f := newFixture()
	ts, err := InferInvocation(f.env, f.id(), []ast.Expr{f.str("hi")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestIdentityIncompatibleTarget(t *testing.T) {
	f := newFixture()
	ctx := NewContext(f.env, Var("o", f.env.Object))
	_, err := ctx.InferInvocation(f.id(), f.env.String)
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable constraints, found %v", err)
	}
	if ctx.State() != Failed || ctx.Error() != err {
		t.Fatalf("state: %s, error: %v", ctx.State(), ctx.Error())
	}
}

func TestIndependentVariables(t *testing.T) {
	f := newFixture()
	S, T, U := TParam("S"), TParam("T"), TParam("U")
	process := Method("process", []*types.TypeParam{S, T, U}, []types.Type{S, T, U}, nil)
	integer := f.env.Box(types.Int)
	ctx := NewContext(f.env, f.str("a"), Var("i", integer), Var("b", f.b))
	ts, err := ctx.InferInvocation(process, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String, Integer, B" {
		t.Fatalf("solutions: %s", s)
	}
	stats := ctx.Stats()
	if stats.Resolutions != 3 || stats.CaptureFallbacks != 0 {
		t.Fatalf("stats: %+v", stats)
	}
}

func TestConditionalAgainstSuperWildcard(t *testing.T) {
	f := newFixture()
	// <T> void sink(G<? super T> g, T t)
	T := TParam("T")
	sink := Method("sink", []*types.TypeParam{T}, []types.Type{TApp(f.g, TSuper(T)), T}, nil)
	cond := Cond(Var("c", types.Boolean), Var("ga", TApp(f.g, f.a)), Var("gb", TApp(f.g, f.b)))
	if !ast.IsPolyExpression(cond) {
		t.Fatalf("expected a poly conditional")
	}
	ts, err := InferInvocation(f.env, sink, []ast.Expr{cond, Var("b", f.b)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "B" {
		t.Fatalf("solutions: %s", s)
	}

	// A is not contained by `? super B`
	_, err = InferInvocation(f.env, sink, []ast.Expr{cond, Var("a", f.a)}, nil)
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable constraints, found %v", err)
	}
}

func TestMutuallyDependentCaptureFallback(t *testing.T) {
	f := newFixture()
	// <S extends T, T extends S> void m()
	S, T := TParam("S"), TParam("T")
	S.Bounds, T.Bounds = []types.Type{T}, []types.Type{S}
	m := Method("m", []*types.TypeParam{S, T}, nil, nil)

	ctx := NewContext(f.env)
	vars := ctx.CreateInitialBoundSet(m.TypeParams)
	b, err := ctx.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if !ctx.IsResolved(b) {
		t.Fatalf("expected resolved bounds: %s", b)
	}
	for _, v := range vars {
		z, ok := b.Instantiation(v).(*types.Capture)
		if !ok || z.Origin != v {
			t.Fatalf("expected a fresh capture for %s, found %s", v.Name(), types.TypeString(b.Instantiation(v)))
		}
	}
	if ctx.Stats().CaptureFallbacks != 1 {
		t.Fatalf("stats: %+v", ctx.Stats())
	}
	if sols := ctx.GetSolutions(m.TypeParams, b); len(sols) != 2 {
		t.Fatalf("solutions: %v", sols)
	}

	ctx = NewContext(f.env)
	ctx.EnableCaptureFallback(false)
	ctx.CreateInitialBoundSet(m.TypeParams)
	if _, err = ctx.Solve(); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable constraints without the capture fallback, found %v", err)
	}
}

func TestResolutionWithinDependencySet(t *testing.T) {
	f := newFixture()
	// <A extends B, B extends List<C>, C> void m(C c)
	A, B, C := TParam("A"), TParam("B"), TParam("C")
	A.Bounds, B.Bounds = []types.Type{B}, []types.Type{TApp(f.list, C)}
	m := Method("m", []*types.TypeParam{A, B, C}, []types.Type{C}, nil)

	ctx := NewContext(f.env, f.str("x"))
	ts, err := ctx.InferInvocation(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "List<String>, List<String>, String" {
		t.Fatalf("solutions: %s", s)
	}
	if st := ctx.Stats(); st.CaptureFallbacks != 0 {
		t.Fatalf("stats: %+v", st)
	}

	// <A extends B, B> void m(B b)
	A, B = TParam("A"), TParam("B")
	A.Bounds = []types.Type{B}
	m = Method("m", []*types.TypeParam{A, B}, []types.Type{B}, nil)
	ts, err = InferInvocation(f.env, m, []ast.Expr{f.str("x")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String, String" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestCaptureFallbackLowerBound(t *testing.T) {
	f := newFixture()
	// <R> void take(R r); <S extends T, T extends S> List<S> empty()
	R := TParam("R")
	take := Method("take", []*types.TypeParam{R}, []types.Type{R}, nil)
	S, T := TParam("S"), TParam("T")
	S.Bounds, T.Bounds = []types.Type{T}, []types.Type{S}
	empty := Method("empty", []*types.TypeParam{S, T}, nil, TApp(f.list, S))

	ctx := NewContext(f.env, Call(empty))
	if _, err := ctx.InferInvocation(take, nil); err != nil {
		t.Fatal(err)
	}
	b := ctx.Bounds()
	if !ctx.IsResolved(b) {
		t.Fatalf("expected resolved bounds: %s", b)
	}
	vars := ctx.Variables()
	if len(vars) != 3 {
		t.Fatalf("expected 3 inference variables, found %d", len(vars))
	}
	zr, ok := b.Instantiation(vars[0]).(*types.Capture)
	if !ok || zr.Origin != vars[0] {
		t.Fatalf("expected a fresh capture for %s, found %s", vars[0].Name(), types.TypeString(b.Instantiation(vars[0])))
	}
	zs, ok := b.Instantiation(vars[1]).(*types.Capture)
	if !ok {
		t.Fatalf("expected a fresh capture for %s, found %s", vars[1].Name(), types.TypeString(b.Instantiation(vars[1])))
	}
	if want := TApp(f.list, zs); zr.Lower == nil || !types.Identical(zr.Lower, want) {
		t.Fatalf("lower bound of %s: %s", zr.Name(), types.TypeString(zr.Lower))
	}
	if st := ctx.Stats(); st.CaptureFallbacks != 1 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestDiscardedAttemptReleasesVariables(t *testing.T) {
	f := newFixture()
	// <V> void apply(V v, Function<V, String> fn); <S extends T, T extends S> List<S> empty()
	V := TParam("V")
	apply := Method("apply", []*types.TypeParam{V}, []types.Type{V, TApp(f.function, V, f.env.String)}, nil)
	S, T := TParam("S"), TParam("T")
	S.Bounds, T.Bounds = []types.Type{T}, []types.Type{S}
	empty := Method("empty", []*types.TypeParam{S, T}, nil, TApp(f.list, S))

	// apply(empty(), x -> id("y"))
	ctx := NewContext(f.env, Call(empty), Lambda([]string{"x"}, Call(f.id(), f.str("y"))))
	if _, err := ctx.InferInvocation(apply, nil); err != nil {
		t.Fatal(err)
	}
	b := ctx.Bounds()
	if !ctx.IsResolved(b) {
		t.Fatalf("expected resolved bounds: %s", b)
	}
	// V, S, T and the variable of id("y") reduced after the fallback
	vars := ctx.Variables()
	if len(vars) != 4 {
		t.Fatalf("expected 4 inference variables, found %d", len(vars))
	}
	if s := types.TypeString(b.Instantiation(vars[3])); s != "String" {
		t.Fatalf("%s := %s", vars[3].Name(), s)
	}
	if st := ctx.Stats(); st.CaptureFallbacks != 1 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestDeterministicSolutions(t *testing.T) {
	f := newFixture()
	// <T> List<T> asList(T... a)
	T := TParam("T")
	asList := VarargsMethod("asList", []*types.TypeParam{T}, nil, T, TApp(f.list, T))
	args := []ast.Expr{Var("i", f.env.Box(types.Int)), Var("d", f.env.Box(types.Double))}
	first, err := InferInvocation(f.env, asList, args, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 8; i++ {
		again, err := InferInvocation(f.env, asList, args, nil)
		if err != nil {
			t.Fatal(err)
		}
		if typeStrings(again) != typeStrings(first) {
			t.Fatalf("solutions differ: %s, %s", typeStrings(first), typeStrings(again))
		}
	}
	t.Logf("lub: %s", typeStrings(first))
}

func TestVarargsInvocation(t *testing.T) {
	f := newFixture()
	T := TParam("T")
	asList := VarargsMethod("asList", []*types.TypeParam{T}, nil, T, TApp(f.list, T))
	ts, err := InferInvocation(f.env, asList, []ast.Expr{f.str("a"), f.str("b"), f.str("c")}, TApp(f.list, f.env.Object))
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "Object" {
		t.Fatalf("solutions: %s", s)
	}

	ts, err = InferInvocation(f.env, asList, []ast.Expr{f.str("a"), f.str("b")}, TApp(f.list, TExtends(f.env.Object)))
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String" {
		t.Fatalf("solutions: %s", s)
	}

	// an array argument in the variable-arity position is passed directly
	ts, err = InferInvocation(f.env, asList, []ast.Expr{Var("bs", TArray(f.b))}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "B" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestNestedInvocation(t *testing.T) {
	f := newFixture()
	// <T> List<T> singleton(T t); <U> U first(List<U> l)
	T, U := TParam("T"), TParam("U")
	singleton := Method("singleton", []*types.TypeParam{T}, []types.Type{T}, TApp(f.list, T))
	first := Method("first", []*types.TypeParam{U}, []types.Type{TApp(f.list, U)}, U)

	ctx := NewContext(f.env, Call(singleton, f.str("hi")))
	ts, err := ctx.InferInvocation(first, f.env.Object)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String" {
		t.Fatalf("solutions: %s", s)
	}
	if n := len(ctx.Variables()); n != 2 {
		t.Fatalf("expected 2 inference variables, found %d", n)
	}
	if !ctx.IsResolved(ctx.Bounds()) {
		t.Fatalf("expected nested variables to be resolved: %s", ctx.Bounds())
	}
}

func TestGenericConstructor(t *testing.T) {
	f := newFixture()
	// new ArrayList<>(E e) with target List<A>
	ctor := Constructor(f.arrayList, f.arrayList.TypeParams[0])
	ts, err := InferInvocation(f.env, ctor, []ast.Expr{Var("b", f.b)}, TApp(f.list, f.a))
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "A" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestImplicitLambdaDeferred(t *testing.T) {
	f := newFixture()
	// <T, R> R apply(T t, Function<T, R> fn)
	T, R := TParam("T"), TParam("R")
	apply := Method("apply", []*types.TypeParam{T, R}, []types.Type{T, TApp(f.function, T, R)}, R)

	ctx := NewContext(f.env, f.str("hi"), Lambda([]string{"s"}, f.integer("1")))
	ts, err := ctx.InferInvocation(apply, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String, Integer" {
		t.Fatalf("solutions: %s", s)
	}
	if len(ctx.Bounds().Deferred()) != 0 {
		t.Fatalf("expected no remaining deferred constraints")
	}
}

func TestExplicitLambda(t *testing.T) {
	f := newFixture()
	T, R := TParam("T"), TParam("R")
	// <T, R> Function<T, R> fn(Function<T, R> f)
	fn := Method("fn", []*types.TypeParam{T, R}, []types.Type{TApp(f.function, T, R)}, TApp(f.function, T, R))
	lambda := TypedLambda([]ast.LambdaParam{Param("a", f.a)}, Var("b", f.b))
	ts, err := InferInvocation(f.env, fn, []ast.Expr{lambda}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "A, B" {
		t.Fatalf("solutions: %s", s)
	}

	// arity mismatch
	lambda = TypedLambda([]ast.LambdaParam{Param("a", f.a), Param("b", f.b)}, Var("b", f.b))
	if _, err = InferInvocation(f.env, fn, []ast.Expr{lambda}, nil); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable constraints, found %v", err)
	}
}

func TestBlockLambdaShapes(t *testing.T) {
	f := newFixture()
	// void run(Runnable r)
	run := Method("run", nil, []types.Type{f.runnable}, nil)
	if _, err := InferInvocation(f.env, run, []ast.Expr{BlockLambda(nil, true)}, nil); err != nil {
		t.Fatal(err)
	}
	valued := BlockLambda(nil, false, f.str("x"))
	if _, err := InferInvocation(f.env, run, []ast.Expr{valued}, nil); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected a value-returning block to be incompatible with Runnable, found %v", err)
	}
}

func TestExactMethodReference(t *testing.T) {
	f := newFixture()
	length := f.env.String.AddMethod(&types.Method{Name: "length", Return: types.Int})
	T, R := TParam("T"), TParam("R")
	apply := Method("apply", []*types.TypeParam{T, R}, []types.Type{T, TApp(f.function, T, R)}, R)

	ts, err := InferInvocation(f.env, apply, []ast.Expr{f.str("hi"), TypeRef(f.env.String, "length", length)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "String, Integer" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestInexactMethodReference(t *testing.T) {
	f := newFixture()
	T, R := TParam("T"), TParam("R")
	apply := Method("apply", []*types.TypeParam{T, R}, []types.Type{T, TApp(f.function, T, R)}, R)
	// static String show(A a); static String show(String s); static String show(Object o)
	showA := f.a.AddMethod(&types.Method{Name: "show", Params: []types.Type{f.a}, Return: f.env.String, Static: true})
	showS := f.a.AddMethod(&types.Method{Name: "show", Params: []types.Type{f.env.String}, Return: f.env.String, Static: true})
	showO := f.a.AddMethod(&types.Method{Name: "show", Params: []types.Type{f.env.Object}, Return: f.env.String, Static: true})

	ts, err := InferInvocation(f.env, apply, []ast.Expr{Var("b", f.b), TypeRef(f.a, "show", showA, showS)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "B, String" {
		t.Fatalf("solutions: %s", s)
	}

	// show(A) and show(Object) both accept B
	_, err = InferInvocation(f.env, apply, []ast.Expr{Var("b", f.b), TypeRef(f.a, "show", showA, showO)}, nil)
	var unsupported *UnsupportedConstraintError
	if !errors.As(err, &unsupported) || !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected an unsupported constraint, found %v", err)
	}

	// no candidate accepts B
	_, err = InferInvocation(f.env, apply, []ast.Expr{Var("b", f.b), TypeRef(f.a, "show", showS)}, nil)
	if err == nil {
		t.Fatalf("expected inference to fail")
	}
}

func TestThrowsBound(t *testing.T) {
	f := newFixture()
	// <E extends Throwable> void attempt() throws E
	E := TParam("E", f.env.Throwable)
	attempt := Method("attempt", []*types.TypeParam{E}, nil, nil)
	attempt.Thrown = []types.Type{E}
	ts, err := InferInvocation(f.env, attempt, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "RuntimeException" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestWrapperBoundTarget(t *testing.T) {
	f := newFixture()
	ts, err := InferInvocation(f.env, f.id(), []ast.Expr{f.integer("1")}, types.Int)
	if err != nil {
		t.Fatal(err)
	}
	if s := typeStrings(ts); s != "Integer" {
		t.Fatalf("solutions: %s", s)
	}
}

func TestNoValueIsHardFailure(t *testing.T) {
	f := newFixture()
	U := TParam("U")
	sink := Method("sink", []*types.TypeParam{U}, []types.Type{U}, nil)

	_, err := InferInvocation(f.env, sink, []ast.Expr{f.str("x")}, f.env.String)
	var ierr *InferenceError
	if !errors.As(err, &ierr) || errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected an inference error, found %v", err)
	}

	// a void invocation passed as an argument
	_, err = InferInvocation(f.env, f.id(), []ast.Expr{Call(sink, f.str("x"))}, nil)
	if !errors.As(err, &ierr) || ierr.Expr == nil {
		t.Fatalf("expected an inference error naming the expression, found %v", err)
	}
}

func TestIncorporationLimit(t *testing.T) {
	f := newFixture()
	T, U := TParam("T"), TParam("U")
	singleton := Method("singleton", []*types.TypeParam{T}, []types.Type{T}, TApp(f.list, T))
	first := Method("first", []*types.TypeParam{U}, []types.Type{TApp(f.list, U)}, U)

	ctx := NewContext(f.env, Call(singleton, f.str("hi")))
	ctx.SetMaxIncorporationRounds(1)
	if _, err := ctx.InferInvocation(first, nil); !errors.Is(err, ErrIncorporationLimit) {
		t.Fatalf("expected the incorporation limit to be exceeded, found %v", err)
	}
}

func TestWrongArity(t *testing.T) {
	f := newFixture()
	_, err := InferInvocation(f.env, f.id(), []ast.Expr{f.str("a"), f.str("b")}, nil)
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable constraints, found %v", err)
	}
	var ierr *InferenceError
	if errors.As(err, &ierr) {
		t.Fatalf("expected a soft failure, found %v", err)
	}
}
