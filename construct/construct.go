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

package construct

import (
	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/types"
)

// Types

// Class declaration extending Object: `class A`
func TClass(name string, params ...*types.TypeParam) *types.Class {
	return &types.Class{Name: name, TypeParams: params}
}

// Class declaration with a superclass and interfaces: `class B extends A implements I`
func TSubclass(name string, super types.Type, interfaces ...types.Type) *types.Class {
	return &types.Class{Name: name, Super: super, Interfaces: interfaces}
}

// Interface declaration: `interface I<T>`
func TInterface(name string, params ...*types.TypeParam) *types.Class {
	return &types.Class{Name: name, Interface: true, TypeParams: params}
}

// Functional interface with one abstract method: `interface Function<T, R> { R apply(T t); }`
func TFunctional(name string, params []*types.TypeParam, method string, args []types.Type, ret types.Type) *types.Class {
	iface := TInterface(name, params...)
	iface.AddMethod(&types.Method{Name: method, Params: args, Return: ret, Abstract: true})
	return iface
}

// Type-parameter: `T extends Bound`
func TParam(name string, bounds ...types.Type) *types.TypeParam {
	return types.NewTypeParam(name, bounds...)
}

// Parameterized type: `List<String>`
func TApp(generic *types.Class, args ...types.Type) *types.Parameterized {
	return types.NewParameterized(generic, args...)
}

// Array type: `T[]`
func TArray(elem types.Type) *types.Array {
	return &types.Array{Elem: elem}
}

// Unbounded wildcard: `?`
func TWild() *types.Wildcard {
	return &types.Wildcard{BoundKind: types.Unbounded}
}

// Upper-bounded wildcard: `? extends T`
func TExtends(bound types.Type) *types.Wildcard {
	return &types.Wildcard{BoundKind: types.Extends, Bound: bound}
}

// Lower-bounded wildcard: `? super T`
func TSuper(bound types.Type) *types.Wildcard {
	return &types.Wildcard{BoundKind: types.Super, Bound: bound}
}

// Intersection type: `A & B`
func TAnd(bounds ...types.Type) types.Type {
	return types.NewIntersection(bounds...)
}

// Methods

// Generic method: `<T> R name(P...)`
func Method(name string, params []*types.TypeParam, formals []types.Type, ret types.Type) *types.Method {
	return &types.Method{Name: name, TypeParams: params, Params: formals, Return: ret, Static: true}
}

// Variable-arity generic method: `<T> R name(P..., E... rest)`
func VarargsMethod(name string, params []*types.TypeParam, formals []types.Type, elem types.Type, ret types.Type) *types.Method {
	all := append(append([]types.Type(nil), formals...), TArray(elem))
	return &types.Method{Name: name, TypeParams: params, Params: all, Return: ret, Static: true, Varargs: true}
}

// Constructor of a (possibly generic) class: `C(P...)`
func Constructor(class *types.Class, formals ...types.Type) *types.Method {
	return class.AddMethod(&types.Method{Name: "<init>", Params: formals, Constructor: true})
}

// Expressions

// Literal of a known type: `"hi"`
func Lit(syntax string, t types.Type) *ast.Literal {
	e := &ast.Literal{Syntax: syntax}
	e.SetType(t)
	return e
}

// Variable of a known type
func Var(name string, t types.Type) *ast.Var {
	e := &ast.Var{Name: name}
	e.SetType(t)
	return e
}

// Conditional: `cond ? a : b`
func Cond(cond, then, els ast.Expr) *ast.Conditional {
	return &ast.Conditional{Cond: cond, Then: then, Else: els}
}

// Invocation: `m(args...)`
func Call(m *types.Method, args ...ast.Expr) *ast.Invocation {
	return &ast.Invocation{Method: m, Args: args}
}

// Lambda with an expression body and elided parameter types: `(x, y) -> body`
func Lambda(params []string, body ast.Expr) *ast.Lambda {
	ps := make([]ast.LambdaParam, len(params))
	for i, name := range params {
		ps[i] = ast.LambdaParam{Name: name}
	}
	return &ast.Lambda{Params: ps, Body: body}
}

// Lambda with an expression body and declared parameter types: `(String s) -> body`
func TypedLambda(params []ast.LambdaParam, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Params: params, Body: body}
}

// Lambda parameter with a declared type
func Param(name string, t types.Type) ast.LambdaParam {
	return ast.LambdaParam{Name: name, Type: t}
}

// Lambda with a block body: `(x) -> { return a; return b; }`
func BlockLambda(params []ast.LambdaParam, canCompleteNormally bool, returns ...ast.Expr) *ast.Lambda {
	return &ast.Lambda{Params: params, Block: &ast.Block{Returns: returns, CanCompleteNormally: canCompleteNormally}}
}

// Method reference: `Type::name`
func TypeRef(qualifier types.Type, name string, candidates ...*types.Method) *ast.MethodRef {
	return &ast.MethodRef{Qualifier: qualifier, TypeQualified: true, Name: name, Candidates: candidates}
}

// Method reference through a receiver expression: `expr::name`
func ExprRef(receiver types.Type, name string, candidates ...*types.Method) *ast.MethodRef {
	return &ast.MethodRef{Qualifier: receiver, Name: name, Candidates: candidates}
}
