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
	"strings"

	"github.com/wdamron/jinfer/types"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case nil:
		sb.WriteString("<nil>")

	case *Literal:
		sb.WriteString(et.Syntax)

	case *Var:
		sb.WriteString(et.Name)

	case *Conditional:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Cond)
		sb.WriteString(" ? ")
		exprString(sb, true, et.Then)
		sb.WriteString(" : ")
		exprString(sb, true, et.Else)
		if simple {
			sb.WriteByte(')')
		}

	case *Lambda:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteByte('(')
		for i, p := range et.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Type != nil {
				sb.WriteString(types.TypeString(p.Type))
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(") -> ")
		if et.Block == nil {
			exprString(sb, false, et.Body)
		} else {
			sb.WriteString("{ ")
			for _, r := range et.Block.Returns {
				sb.WriteString("return")
				if r != nil {
					sb.WriteByte(' ')
					exprString(sb, false, r)
				}
				sb.WriteString("; ")
			}
			sb.WriteByte('}')
		}
		if simple {
			sb.WriteByte(')')
		}

	case *MethodRef:
		if et.Qualifier != nil {
			sb.WriteString(types.TypeString(et.Qualifier))
		}
		sb.WriteString("::")
		sb.WriteString(et.Name)

	case *Invocation:
		if et.Method == nil {
			sb.WriteString("<unknown>")
		} else if et.Method.Constructor {
			sb.WriteString("new ")
			sb.WriteString(et.Method.Declaring.Name)
			if et.Method.Declaring.IsGeneric() && len(et.TypeArgs) == 0 {
				sb.WriteString("<>")
			}
		} else {
			sb.WriteString(et.Method.Name)
		}
		if len(et.TypeArgs) > 0 {
			sb.WriteByte('<')
			for i, t := range et.TypeArgs {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(types.TypeString(t))
			}
			sb.WriteByte('>')
		}
		sb.WriteByte('(')
		for i, arg := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, arg)
		}
		sb.WriteByte(')')

	default:
		sb.WriteString("<" + e.ExprName() + ">")
	}
}
