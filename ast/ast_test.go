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

package ast_test

import (
	"testing"

	"github.com/wdamron/jinfer/ast"
	. "github.com/wdamron/jinfer/construct"
	"github.com/wdamron/jinfer/types"
)

func TestPolyExpressions(t *testing.T) {
	env := types.NewEnv()
	T := TParam("T")
	id := Method("id", []*types.TypeParam{T}, []types.Type{T}, T)
	length := Method("length", nil, []types.Type{env.String}, types.Int)
	s := Var("s", env.String)

	// id(c ? id(s) : s) and length(s)
	inner := Call(id, s)
	cond := Cond(Lit("c", types.Boolean), inner, s)
	outer := Call(id, cond)
	if polys := ast.PolyExpressions(outer); len(polys) != 3 || polys[0] != ast.Expr(outer) || polys[1] != ast.Expr(cond) || polys[2] != ast.Expr(inner) {
		t.Fatalf("unexpected poly expressions of %s: %d", ast.ExprString(outer), len(polys))
	}
	if ast.IsPolyExpression(Call(length, s)) {
		t.Fatalf("expected a non-generic invocation not to be a poly expression")
	}
	explicit := Call(id, s)
	explicit.TypeArgs = []types.Type{env.String}
	if ast.IsPolyExpression(explicit) {
		t.Fatalf("expected an invocation with explicit type-arguments not to be a poly expression")
	}
	if ast.IsPolyExpression(Cond(Lit("c", types.Boolean), Lit("1", types.Int), Lit("2", types.Int))) {
		t.Fatalf("expected a primitive conditional not to be a poly expression")
	}
	if !ast.IsPolyExpression(Lambda([]string{"x"}, s)) || !ast.IsPolyExpression(TypeRef(env.String, "length", length)) {
		t.Fatalf("expected lambdas and method references to be poly expressions")
	}
	if ast.ShapeOf(cond) != ast.ShapeConditional || ast.ShapeOf(s) != ast.ShapeOther || ast.ShapeOf(outer).String() != "invocation" {
		t.Fatalf("unexpected shapes")
	}
}

func TestExprString(t *testing.T) {
	env := types.NewEnv()
	T := TParam("T")
	id := Method("id", []*types.TypeParam{T}, []types.Type{T}, T)
	s := Var("s", env.String)
	list := env.Declare(TClass("ArrayList", TParam("E")))
	ctor := Constructor(list)

	tests := []struct {
		e        ast.Expr
		expected string
	}{
		{Call(id, Cond(Var("c", types.Boolean), s, Lit("null", types.Null))), "id(c ? s : null)"},
		{Lambda([]string{"x", "y"}, Call(id, Var("x", nil))), "(x, y) -> id(x)"},
		{TypedLambda([]ast.LambdaParam{Param("a", env.String)}, s), "(String a) -> s"},
		{BlockLambda(nil, false, s, nil), "() -> { return s; return; }"},
		{TypeRef(env.String, "length"), "String::length"},
		{Call(ctor), "new ArrayList<>()"},
		{Cond(Var("c", types.Boolean), Lambda(nil, s), s), "c ? (() -> s) : s"},
	}
	for _, test := range tests {
		if s := ast.ExprString(test.e); s != test.expected {
			t.Fatalf("expected %s, found %s", test.expected, s)
		}
	}
}

func TestLambdaBodies(t *testing.T) {
	env := types.NewEnv()
	s := Var("s", env.String)
	run := Method("run", nil, nil, types.Void)
	get := Method("get", nil, nil, env.String)

	tests := []struct {
		e           *ast.Lambda
		void, value bool
		results     int
	}{
		{Lambda(nil, s), false, true, 1},
		{Lambda(nil, Call(run)), true, false, 1},
		{Lambda(nil, Call(get)), true, true, 1},
		{BlockLambda(nil, true), true, false, 0},
		{BlockLambda(nil, false, s), false, true, 1},
		{BlockLambda(nil, true, s), false, false, 1},
		{BlockLambda(nil, false, nil), true, false, 0},
	}
	for _, test := range tests {
		if test.e.IsVoidCompatible() != test.void || test.e.IsValueCompatible() != test.value {
			t.Fatalf("%s: expected void/value compatibility %v/%v", ast.ExprString(test.e), test.void, test.value)
		}
		if n := len(test.e.ResultExpressions()); n != test.results {
			t.Fatalf("%s: expected %d result expressions, found %d", ast.ExprString(test.e), test.results, n)
		}
	}

	if !TypedLambda([]ast.LambdaParam{Param("a", env.String)}, s).IsExplicitlyTyped() || Lambda([]string{"a"}, s).IsExplicitlyTyped() {
		t.Fatalf("explicit typing")
	}
}

func TestMethodRefExactness(t *testing.T) {
	env := types.NewEnv()
	T := TParam("T")
	plain := Method("f", nil, []types.Type{env.String}, types.Int)
	generic := Method("g", []*types.TypeParam{T}, []types.Type{T}, T)
	varargs := VarargsMethod("h", nil, nil, env.String, types.Int)

	if !TypeRef(env.String, "f", plain).IsExact() {
		t.Fatalf("expected a single plain method to be exact")
	}
	if TypeRef(env.String, "f", plain, plain).IsExact() || TypeRef(env.String, "h", varargs).IsExact() || TypeRef(env.String, "g", generic).IsExact() {
		t.Fatalf("expected overloaded, variable-arity and generic references to be inexact")
	}
	ref := TypeRef(env.String, "g", generic)
	ref.TypeArgs = []types.Type{env.String}
	if !ref.IsExact() {
		t.Fatalf("expected a generic reference with type-arguments to be exact")
	}
}
