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

package jinfer

import (
	"errors"
	"testing"

	"github.com/wdamron/jinfer/construct"
	"github.com/wdamron/jinfer/types"
)

func newVars(ctx *InferenceContext, names ...string) []*types.InferenceVar {
	params := make([]*types.TypeParam, len(names))
	for i, name := range names {
		params[i] = construct.TParam(name)
	}
	return ctx.CreateInitialBoundSet(params)
}

func TestBoundSetCopyIsolation(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	vars := newVars(ctx, "T", "U")
	T, U := vars[0], vars[1]

	b := ctx.Bounds()
	b.AddBound(NewTypeBound(T, env.String, Supertype))
	n := b.Len()

	c := b.Copy()
	c.AddBound(NewTypeBound(U, env.Number, Supertype))
	c.AddBound(NewTypeBound(T, env.String, Same))
	c.AddFalse()

	if b.Len() != n || c.Len() != n+2 {
		t.Fatalf("expected %d bounds in the original and %d in the copy, found %d and %d", n, n+2, b.Len(), c.Len())
	}
	if b.IsInstantiated(T) || !c.IsInstantiated(T) {
		t.Fatalf("instantiation leaked between copies")
	}
	if len(b.LowerBounds(U, true)) != 0 {
		t.Fatalf("lower bounds leaked into the original: %s", b)
	}
	if !b.IsSatisfiable() || c.IsSatisfiable() {
		t.Fatalf("FALSE leaked between copies")
	}
}

func TestBoundSetDeduplicates(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	T := newVars(ctx, "T")[0]
	b := NewBoundSet()
	list := construct.TInterface("List", construct.TParam("E"))
	if !b.AddBound(NewTypeBound(T, construct.TApp(list, env.String), Subtype)) {
		t.Fatalf("expected a new bound")
	}
	if b.AddBound(NewTypeBound(T, construct.TApp(list, env.String), Subtype)) {
		t.Fatalf("expected a structurally identical bound to be ignored")
	}
	if !b.AddBound(NewTypeBound(T, construct.TApp(list, env.String), Same)) || b.Len() != 2 {
		t.Fatalf("expected bounds of distinct relations to be kept: %s", b)
	}
	if b.Instantiation(T) == nil {
		t.Fatalf("expected an instantiation")
	}
}

func TestUpperBoundsSimpleTypes(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	T := newVars(ctx, "T")[0]
	b := NewBoundSet()
	b.AddBound(NewTypeBound(T, env.Object, Subtype))
	b.AddBound(NewTypeBound(T, env.Serializable, Subtype))
	if ubs := b.UpperBounds(T, true); len(ubs) != 2 {
		t.Fatalf("upper bounds: %v", types.TypeStrings(ubs))
	}
	b.AddBound(NewTypeBound(T, types.Int, Subtype))
	if ubs := b.UpperBounds(T, true); len(ubs) != 1 || ubs[0] != types.Type(types.Int) {
		t.Fatalf("expected a single simple upper bound, found %v", types.TypeStrings(ubs))
	}
	b.AddBound(NewTypeBound(T, types.Long, Subtype))
	if ubs := b.UpperBounds(T, true); len(ubs) != 0 {
		t.Fatalf("expected ambiguous simple upper bounds to be dropped, found %v", types.TypeStrings(ubs))
	}
}

func TestDependsOnResolutionOf(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	vars := newVars(ctx, "S", "T", "U")
	S, T, U := vars[0], vars[1], vars[2]
	list := construct.TInterface("List", construct.TParam("E"))

	b := NewBoundSet()
	b.AddBound(NewTypeBound(S, construct.TApp(list, T), Subtype))
	if !b.DependsOnResolutionOf(S, T) || !b.DependsOnResolutionOf(T, S) {
		t.Fatalf("expected S and T to depend on each other")
	}
	if b.DependsOnResolutionOf(S, U) {
		t.Fatalf("expected S and U to be independent")
	}

	g := b.dependencyGraph(len(vars))
	if deps := ctx.dependencies(b, g, T); len(deps) != 2 || deps[0] != S || deps[1] != T {
		t.Fatalf("dependencies of T: %v", deps)
	}
}

func TestIncorporationIdempotent(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	vars := newVars(ctx, "S", "T")
	S, T := vars[0], vars[1]

	b := ctx.Bounds()
	b.AddBound(NewTypeBound(S, env.String, Supertype))
	b.AddBound(NewTypeBound(S, T, Subtype))
	b.AddBound(NewTypeBound(T, env.Serializable, Subtype))
	if err := b.Incorporate(ctx); err != nil {
		t.Fatal(err)
	}
	// String <: S <: T implies String <: T
	if lbs := b.LowerBounds(T, true); len(lbs) != 1 || lbs[0] != types.Type(env.String) {
		t.Fatalf("lower bounds of T: %s", b)
	}

	n, rounds := b.Len(), ctx.Stats().Rounds
	if err := b.Incorporate(ctx); err != nil {
		t.Fatal(err)
	}
	if b.Len() != n || ctx.Stats().Rounds != rounds {
		t.Fatalf("expected no new bounds, found %s", b)
	}
}

func TestIncorporationSubstitutesInstantiations(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	vars := newVars(ctx, "S", "T")
	S, T := vars[0], vars[1]
	list := construct.TInterface("List", construct.TParam("E"))

	b := ctx.Bounds()
	b.AddBound(NewTypeBound(S, construct.TApp(list, T), Same))
	b.AddBound(NewTypeBound(T, env.String, Same))
	if err := b.Incorporate(ctx); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(b.Instantiation(S)); s != "List<String>" {
		t.Fatalf("instantiation of S: %s", s)
	}
}

func TestCompatibilitySoundness(t *testing.T) {
	env := types.NewEnv()
	list := env.Declare(construct.TInterface("List", construct.TParam("E")))
	e := construct.TParam("E")
	arrayList := env.Declare(construct.TClass("ArrayList", e))
	arrayList.Interfaces = []types.Type{construct.TApp(list, e)}
	integer, long := env.Box(types.Int), env.Box(types.Long)

	tests := []struct {
		s, t types.Type
		ok   bool
	}{
		{types.Int, integer, true},
		{integer, types.Int, true},
		{types.Int, types.Long, true},
		{types.Long, types.Int, false},
		{types.Int, env.Object, true},
		{integer, types.Long, true},
		{integer, long, false},
		{env.String, env.Object, true},
		{env.Object, env.String, false},
		{types.Null, env.String, true},
		{construct.TApp(arrayList, env.String), construct.TApp(list, env.String), true},
		{construct.TApp(list, env.String), construct.TApp(list, env.Object), false},
		{construct.TApp(list, env.String), construct.TApp(list, construct.TExtends(env.Object)), true},
		{construct.TApp(list, integer), construct.TApp(list, construct.TSuper(integer)), true},
		{construct.TApp(list, env.Number), construct.TApp(list, construct.TExtends(integer)), false},
		{arrayList, construct.TApp(list, env.String), true},
		{construct.TArray(env.String), construct.TArray(env.Object), true},
		{construct.TArray(types.Int), construct.TArray(types.Long), false},
	}
	ctx := NewContext(env)
	for _, test := range tests {
		f := NewTypeFormula(test.s, Compatible, test.t)
		r, err := f.reduce(ctx, NewBoundSet())
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if (r.kind == reducedTrue) != test.ok || (r.kind != reducedTrue && r.kind != reducedFalse) {
			t.Fatalf("%s: expected %v", f, test.ok)
		}
	}
}

// reduceFully reduces f into a fresh bound set.
func reduceFully(ctx *InferenceContext, f *ConstraintFormula) (*BoundSet, error) {
	b := NewBoundSet()
	return b, b.ReduceOneConstraint(ctx, f)
}

func TestReduceSameParameterized(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	vars := newVars(ctx, "S", "T")
	S, T := vars[0], vars[1]
	m := env.Declare(construct.TInterface("Map", construct.TParam("K"), construct.TParam("V")))
	list := env.Declare(construct.TInterface("List", construct.TParam("E")))

	b, err := reduceFully(ctx, NewTypeFormula(construct.TApp(m, S, env.String), Same, construct.TApp(m, env.Number, T)))
	if err != nil {
		t.Fatal(err)
	}
	if b.Instantiation(S) != types.Type(env.Number) || b.Instantiation(T) != types.Type(env.String) {
		t.Fatalf("bounds: %s", b)
	}

	if _, err = reduceFully(ctx, NewTypeFormula(construct.TApp(m, S, T), Same, construct.TApp(list, S))); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected distinct generic classes to be unequal, found %v", err)
	}
	if _, err = reduceFully(ctx, NewTypeFormula(S, Same, types.Int)); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected a variable to be unequal to a primitive, found %v", err)
	}
}

func TestReduceSameWildcards(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	S := newVars(ctx, "S")[0]

	b, err := reduceFully(ctx, NewTypeFormula(construct.TWild(), Same, construct.TExtends(S)))
	if err != nil {
		t.Fatal(err)
	}
	if b.Instantiation(S) != types.Type(env.Object) {
		t.Fatalf("expected `?` to equal `? extends Object`: %s", b)
	}
	if _, err = reduceFully(ctx, NewTypeFormula(construct.TSuper(S), Same, construct.TExtends(S))); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected wildcards of distinct kinds to be unequal, found %v", err)
	}
}

func TestReduceContained(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	S := newVars(ctx, "S")[0]

	b, err := reduceFully(ctx, NewTypeFormula(construct.TExtends(S), TypeArgumentContained, construct.TExtends(env.Number)))
	if err != nil {
		t.Fatal(err)
	}
	if ubs := b.UpperBounds(S, true); len(ubs) != 1 || ubs[0] != types.Type(env.Number) {
		t.Fatalf("bounds: %s", b)
	}
	b, err = reduceFully(ctx, NewTypeFormula(construct.TSuper(S), TypeArgumentContained, construct.TSuper(env.String)))
	if err != nil {
		t.Fatal(err)
	}
	if lbs := b.LowerBounds(S, true); len(lbs) != 1 || lbs[0] != types.Type(env.String) {
		t.Fatalf("bounds: %s", b)
	}
	if _, err = reduceFully(ctx, NewTypeFormula(construct.TExtends(S), TypeArgumentContained, construct.TSuper(env.String))); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected `? extends S` not to be contained by `? super String`, found %v", err)
	}
	if _, err = reduceFully(ctx, NewTypeFormula(construct.TWild(), TypeArgumentContained, S)); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected a wildcard not to be contained by a type, found %v", err)
	}
}

func TestReduceIntersectionUnsupported(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	S := newVars(ctx, "S")[0]
	_, err := reduceFully(ctx, NewTypeFormula(construct.TAnd(env.Number, env.Serializable), Same, construct.TAnd(S, env.Serializable)))
	var unsupported *UnsupportedConstraintError
	if !errors.As(err, &unsupported) || !errors.Is(err, ErrUnsupported) || errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected an unsupported constraint, found %v", err)
	}
}

func TestReduceSubtypeIntersection(t *testing.T) {
	env := types.NewEnv()
	ctx := NewContext(env)
	S := newVars(ctx, "S")[0]
	b, err := reduceFully(ctx, NewTypeFormula(S, Subtype, construct.TAnd(env.Number, env.Serializable)))
	if err != nil {
		t.Fatal(err)
	}
	if ubs := b.UpperBounds(S, true); len(ubs) != 1 {
		t.Fatalf("expected a single intersection bound, found %s", b)
	}

	b, err = reduceFully(ctx, NewTypeFormula(construct.TAnd(env.Number, S), Subtype, env.Serializable))
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected Number & S <: Serializable through Number: %s", b)
	}
}

func TestDeferredConstraintInputs(t *testing.T) {
	env := types.NewEnv()
	p, r := construct.TParam("P"), construct.TParam("R")
	function := env.Declare(construct.TFunctional("Function", []*types.TypeParam{p, r}, "apply", []types.Type{p}, r))
	ctx := NewContext(env)
	vars := newVars(ctx, "T", "R")
	T, R := vars[0], vars[1]

	lambda := construct.Lambda([]string{"x"}, construct.Lit("1", types.Int))
	b := ctx.Bounds()
	if err := b.ReduceOneConstraint(ctx, NewExpressionFormula(lambda, construct.TApp(function, T, R))); err != nil {
		t.Fatal(err)
	}
	if len(b.Deferred()) != 1 {
		t.Fatalf("expected a deferred constraint: %s", b)
	}
	if ready := b.takeReady(); len(ready) != 0 {
		t.Fatalf("expected no ready constraints")
	}
	b.AddBound(NewTypeBound(T, env.String, Same))
	if ready := b.takeReady(); len(ready) != 1 || len(b.Deferred()) != 0 {
		t.Fatalf("expected the deferred constraint to become ready")
	}
}
