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

package types

import "strconv"

// Inference variable: a placeholder for an unknown type-argument (or expression type) during
// one inference episode. Inference variables are compared by identity; the id is the creation
// rank within the owning context.
type InferenceVar struct {
	id int
	// Originating type-parameter; nil for expression variables.
	Param *TypeParam
	// Originating expression for expression variables.
	Source interface{}
}

// Create a new inference variable for a type-parameter.
func NewInferenceVar(id int, param *TypeParam) *InferenceVar {
	return &InferenceVar{id: id, Param: param}
}

// Create a new inference variable standing for the type of an expression.
func NewExpressionVar(id int, source interface{}) *InferenceVar {
	return &InferenceVar{id: id, Source: source}
}

// Id returns the creation rank of the variable.
func (v *InferenceVar) Id() int { return v.id }

// IsExpressionVar reports whether v originates from an expression rather than a type-parameter.
func (v *InferenceVar) IsExpressionVar() bool { return v.Param == nil }

// Name returns `T#rank` for type-parameter variables and `expr#rank` for expression variables.
func (v *InferenceVar) Name() string {
	if v.Param == nil {
		return "expr#" + strconv.Itoa(v.id)
	}
	return v.Param.Name + "#" + strconv.Itoa(v.id)
}

// CompareVars orders inference variables by rank.
func CompareVars(a, b *InferenceVar) int { return a.id - b.id }
