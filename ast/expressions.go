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

package ast

import (
	"github.com/wdamron/jinfer/types"
)

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Type returns the resolved type of an expression. Poly expressions may have no resolved
	// type until their target type is known.
	Type() types.Type
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*MethodRef)(nil)
	_ Expr = (*Invocation)(nil)
)

// Shape classifies expressions for constraint reduction.
type Shape uint8

const (
	ShapeOther Shape = iota
	ShapeInvocation
	ShapeConditional
	ShapeLambda
	ShapeMethodRef
)

func (s Shape) String() string {
	switch s {
	case ShapeInvocation:
		return "invocation"
	case ShapeConditional:
		return "conditional"
	case ShapeLambda:
		return "lambda"
	case ShapeMethodRef:
		return "method-reference"
	}
	return "other"
}

// ShapeOf returns the syntactic shape of e.
func ShapeOf(e Expr) Shape {
	switch e.(type) {
	case *Invocation:
		return ShapeInvocation
	case *Conditional:
		return ShapeConditional
	case *Lambda:
		return ShapeLambda
	case *MethodRef:
		return ShapeMethodRef
	}
	return ShapeOther
}

// IsPolyExpression reports whether the type of e depends on its target type when e appears as a
// method argument: lambdas, method references, reference conditionals, and generic invocations
// which elide type-arguments and whose return type mentions the method's type-parameters.
func IsPolyExpression(e Expr) bool {
	switch e := e.(type) {
	case *Lambda, *MethodRef:
		return true
	case *Conditional:
		_, thenPrim := e.Then.Type().(*types.Primitive)
		_, elsePrim := e.Else.Type().(*types.Primitive)
		return !(thenPrim && elsePrim)
	case *Invocation:
		m := e.Method
		if m == nil || len(e.TypeArgs) > 0 {
			return false
		}
		if m.Constructor {
			return m.Declaring.IsGeneric() || m.IsGeneric()
		}
		return m.IsGeneric() && types.MentionsParams(m.ReturnType(), m.TypeParams)
	}
	return false
}

// Semi-opaque literal value with a known type: `"hi"` or `42`
type Literal struct {
	// Syntax is printed when the literal is printed.
	Syntax   string
	resolved types.Type
}

// Returns the syntax of e.
func (e *Literal) ExprName() string { return e.Syntax }

// Get the resolved type of e.
func (e *Literal) Type() types.Type { return e.resolved }

// Assign a type to e.
func (e *Literal) SetType(t types.Type) { e.resolved = t }

// Variable with a known type
type Var struct {
	Name     string
	resolved types.Type
}

// "Var"
func (e *Var) ExprName() string { return "Var" }

// Get the resolved type of e.
func (e *Var) Type() types.Type { return e.resolved }

// Assign a type to e.
func (e *Var) SetType(t types.Type) { e.resolved = t }

// Conditional expression: `cond ? a : b`
type Conditional struct {
	Cond     Expr
	Then     Expr
	Else     Expr
	resolved types.Type
}

// "Conditional"
func (e *Conditional) ExprName() string { return "Conditional" }

// Get the resolved type of e.
func (e *Conditional) Type() types.Type { return e.resolved }

// Assign a type to e.
func (e *Conditional) SetType(t types.Type) { e.resolved = t }

// Lambda expression: `(x, y) -> body` or `(String s) -> { ... }`
type Lambda struct {
	Params []LambdaParam
	// Expression body; nil when the lambda has a block body.
	Body Expr
	// Block body; nil when the lambda has an expression body.
	Block    *Block
	resolved types.Type
}

// Lambda parameter; Type is nil when the parameter type is elided.
type LambdaParam struct {
	Name string
	Type types.Type
}

// Block body of a lambda, summarized by its return statements.
type Block struct {
	// Expressions of `return` statements; nil entries stand for `return;`.
	Returns []Expr
	// The block may complete normally (fall off its end).
	CanCompleteNormally bool
}

// "Lambda"
func (e *Lambda) ExprName() string { return "Lambda" }

// Get the resolved type of e.
func (e *Lambda) Type() types.Type { return e.resolved }

// Assign a type to e.
func (e *Lambda) SetType(t types.Type) { e.resolved = t }

// IsExplicitlyTyped reports whether every parameter type is declared.
func (e *Lambda) IsExplicitlyTyped() bool {
	for _, p := range e.Params {
		if p.Type == nil {
			return false
		}
	}
	return true
}

// ResultExpressions returns the expression body, or the value of every `return` in a block body.
func (e *Lambda) ResultExpressions() []Expr {
	if e.Block == nil {
		if e.Body == nil {
			return nil
		}
		return []Expr{e.Body}
	}
	var results []Expr
	for _, r := range e.Block.Returns {
		if r != nil {
			results = append(results, r)
		}
	}
	return results
}

// IsVoidCompatible reports whether the body may be used where no value is expected.
func (e *Lambda) IsVoidCompatible() bool {
	if e.Block == nil {
		_, ok := e.Body.(*Invocation)
		return ok
	}
	for _, r := range e.Block.Returns {
		if r != nil {
			return false
		}
	}
	return true
}

// IsValueCompatible reports whether every path through the body produces a value.
func (e *Lambda) IsValueCompatible() bool {
	if e.Block == nil {
		if inv, ok := e.Body.(*Invocation); ok && inv.Method != nil {
			_, isVoid := inv.Method.ReturnType().(*types.VoidType)
			return !isVoid
		}
		return e.Body != nil
	}
	if e.Block.CanCompleteNormally {
		return false
	}
	for _, r := range e.Block.Returns {
		if r == nil {
			return false
		}
	}
	return true
}

// Method reference: `Type::name` or `expr::name`
type MethodRef struct {
	// Type named before `::`, or the type of the receiver expression.
	Qualifier types.Type
	// The qualifier names a type rather than a receiver expression, so an instance method
	// receives its receiver as the first function parameter.
	TypeQualified bool
	Name          string
	// Potentially applicable methods, as found by the front end.
	Candidates []*types.Method
	TypeArgs   []types.Type
	resolved   types.Type
}

// "MethodRef"
func (e *MethodRef) ExprName() string { return "MethodRef" }

// Get the resolved type of e.
func (e *MethodRef) Type() types.Type { return e.resolved }

// Assign a type to e.
func (e *MethodRef) SetType(t types.Type) { e.resolved = t }

// IsExact reports whether the reference denotes exactly one method which is neither
// variable-arity nor generic without explicit type-arguments.
func (e *MethodRef) IsExact() bool {
	if len(e.Candidates) != 1 {
		return false
	}
	m := e.Candidates[0]
	return !m.Varargs && (!m.IsGeneric() || len(e.TypeArgs) > 0)
}

// Method or constructor invocation: `m(a, b)` or `new C<>(a)`
type Invocation struct {
	Method   *types.Method
	Args     []Expr
	TypeArgs []types.Type
	resolved types.Type
}

// "Invocation"
func (e *Invocation) ExprName() string { return "Invocation" }

// Get the resolved type of e.
func (e *Invocation) Type() types.Type { return e.resolved }

// Assign a type to e.
func (e *Invocation) SetType(t types.Type) { e.resolved = t }
