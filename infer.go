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
	"fmt"

	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/types"
)

// InferInvocation infers the type-arguments of an invocation of m with args, where the invocation
// appears in a context expecting target (nil when no type is expected). The instantiations are
// returned in the order of m.InferenceParams(): type-parameters of the declaring class first for
// constructors of generic classes, then type-parameters of m.
func InferInvocation(env *types.Env, m *types.Method, args []ast.Expr, target types.Type) ([]types.Type, error) {
	return NewContext(env, args...).InferInvocation(m, target)
}

// InferInvocation infers the type-arguments of an invocation of m with the arguments of the
// context. See InferInvocation.
func (ctx *InferenceContext) InferInvocation(m *types.Method, target types.Type) ([]types.Type, error) {
	params := m.InferenceParams()
	ctx.CreateInitialBoundSet(params)

	varargs := isVarargsInvocation(m, ctx.args)
	var elem types.Type
	if varargs {
		elem = m.VarargsElem()
	}
	if err := ctx.CreateInitialConstraintsForParameters(m.Params, varargs, elem); err != nil {
		return nil, err
	}
	ctx.AddThrowsConstraints(m.Thrown)
	if err := ctx.CreateInitialConstraintsForTargetType(m.ReturnType(), target); err != nil {
		return nil, err
	}

	b, err := ctx.Solve()
	if err != nil {
		return nil, err
	}
	solutions := ctx.GetSolutions(params, b)
	if solutions == nil && len(params) > 0 {
		return nil, fmt.Errorf("%w: type-parameters of %s are not instantiated", ErrUnsatisfiable, m.Name)
	}
	return solutions, nil
}
