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
	"testing"

	. "github.com/wdamron/jinfer"
	. "github.com/wdamron/jinfer/construct"

	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/types"
)

func BenchmarkIdentity(b *testing.B) {
	f := newFixture()
	id := f.id()
	args := []ast.Expr{f.str("hi")}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ts, err := InferInvocation(f.env, id, args, f.env.Object)
		if err != nil || len(ts) != 1 {
			b.Fatal(err)
		}
	}
}

func BenchmarkNestedInvocations(b *testing.B) {
	f := newFixture()
	id := f.id()
	// id(id(id(id("hi"))))
	var arg ast.Expr = f.str("hi")
	for i := 0; i < 4; i++ {
		arg = Call(id, arg)
	}
	args := []ast.Expr{arg}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ts, err := InferInvocation(f.env, id, args, nil)
		if err != nil || len(ts) != 1 {
			b.Fatal(err)
		}
	}
}

func BenchmarkImplicitLambda(b *testing.B) {
	f := newFixture()
	// <T, R> R map(T x, Function<T, R> fn)
	T, R := TParam("T"), TParam("R")
	m := Method("map", []*types.TypeParam{T, R}, []types.Type{T, TApp(f.function, T, R)}, R)
	args := []ast.Expr{f.str("hi"), Lambda([]string{"s"}, f.integer("1"))}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ts, err := InferInvocation(f.env, m, args, nil)
		if err != nil || len(ts) != 2 {
			b.Fatal(err)
		}
	}
}

func BenchmarkVarargsLUB(b *testing.B) {
	f := newFixture()
	// <T> List<T> asList(T... a)
	T := TParam("T")
	asList := VarargsMethod("asList", []*types.TypeParam{T}, nil, T, TApp(f.list, T))
	args := []ast.Expr{Var("i", f.env.Box(types.Int)), Var("d", f.env.Box(types.Double)), Var("l", f.env.Box(types.Long))}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ts, err := InferInvocation(f.env, asList, args, nil)
		if err != nil || len(ts) != 1 {
			b.Fatal(err)
		}
	}
}

func BenchmarkBoundSetCopy(b *testing.B) {
	f := newFixture()
	ctx := NewContext(f.env)
	vars := ctx.CreateInitialBoundSet([]*types.TypeParam{TParam("S"), TParam("T")})
	bounds := ctx.Bounds()
	bounds.AddBound(NewTypeBound(vars[0], f.env.String, Supertype))
	bounds.AddBound(NewTypeBound(vars[0], vars[1], Subtype))

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		c := bounds.Copy()
		c.AddBound(NewTypeBound(vars[1], f.env.String, Same))
		if c.Len() != bounds.Len()+1 {
			b.Fatal(c)
		}
	}
}
