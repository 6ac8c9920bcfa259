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

// WalkExpr calls f for e and every sub-expression of e, in evaluation order.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case nil:
		return

	case *Literal, *Var, *MethodRef:
		f(e)

	case *Conditional:
		f(e)
		WalkExpr(e.Cond, f)
		WalkExpr(e.Then, f)
		WalkExpr(e.Else, f)

	case *Lambda:
		f(e)
		if e.Block == nil {
			WalkExpr(e.Body, f)
			return
		}
		for _, r := range e.Block.Returns {
			WalkExpr(r, f)
		}

	case *Invocation:
		f(e)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	default:
		f(e)
	}
}

// PolyExpressions returns e and its sub-expressions which are poly expressions.
func PolyExpressions(e Expr) []Expr {
	var polys []Expr
	WalkExpr(e, func(sub Expr) {
		if IsPolyExpression(sub) {
			polys = append(polys, sub)
		}
	})
	return polys
}
