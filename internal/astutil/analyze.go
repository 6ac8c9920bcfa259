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

package astutil

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/types"
)

// Analysis of the inference variables an expression constraint ‹e → T› depends on (its input
// variables) and the variables it may constrain once reduced (its output variables).
//
// Input variables must be resolved before the constraint can be reduced: the target of a lambda
// or method reference, the parameter types an implicitly-typed lambda or inexact method
// reference needs from its function type, and (recursively) the inputs of lambda results and
// conditional branches. Output variables are the remaining variables mentioned by the target.
type Analysis struct {
	Inputs  []*types.InferenceVar
	Outputs []*types.InferenceVar
}

// Analyze computes the input and output variables of the constraint ‹e → t›.
func Analyze(env *types.Env, e ast.Expr, t types.Type) Analysis {
	inputs := set.NewTreeSet[*types.InferenceVar](types.CompareVars)
	addInputs(env, inputs, e, t)
	outputs := set.NewTreeSet[*types.InferenceVar](types.CompareVars)
	for _, v := range types.InferenceVars(t) {
		if !inputs.Contains(v) {
			outputs.Insert(v)
		}
	}
	return Analysis{Inputs: inputs.Slice(), Outputs: outputs.Slice()}
}

// InputVariables returns the input variables of ‹e → t›, ordered by rank.
func InputVariables(env *types.Env, e ast.Expr, t types.Type) []*types.InferenceVar {
	inputs := set.NewTreeSet[*types.InferenceVar](types.CompareVars)
	addInputs(env, inputs, e, t)
	return inputs.Slice()
}

func addInputs(env *types.Env, inputs *set.TreeSet[*types.InferenceVar], e ast.Expr, t types.Type) {
	switch e := e.(type) {
	case *ast.Lambda:
		if v, ok := t.(*types.InferenceVar); ok {
			inputs.Insert(v)
			return
		}
		fn, ok := env.FunctionType(t)
		if !ok {
			return
		}
		if !e.IsExplicitlyTyped() {
			for _, p := range fn.Params {
				inputs.InsertSlice(types.InferenceVars(p))
			}
		}
		if _, isVoid := fn.ReturnType().(*types.VoidType); isVoid {
			return
		}
		for _, r := range e.ResultExpressions() {
			addInputs(env, inputs, r, fn.ReturnType())
		}

	case *ast.MethodRef:
		if v, ok := t.(*types.InferenceVar); ok {
			inputs.Insert(v)
			return
		}
		if e.IsExact() {
			return
		}
		if fn, ok := env.FunctionType(t); ok {
			for _, p := range fn.Params {
				inputs.InsertSlice(types.InferenceVars(p))
			}
		}

	case *ast.Conditional:
		addInputs(env, inputs, e.Then, t)
		addInputs(env, inputs, e.Else, t)
	}
}
