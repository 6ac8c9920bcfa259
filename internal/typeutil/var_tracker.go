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

package typeutil

import (
	"github.com/wdamron/jinfer/types"
)

// VarTracker allocates inference variables and captures, and tracks variable allocations in
// creation order. The id of each variable is its rank: its index in the allocation order.
type VarTracker struct {
	NextCaptureId int
	vars          []*types.InferenceVar
}

func (vt *VarTracker) Reset() { vt.NextCaptureId, vt.vars = 0, nil }

// Len returns the number of allocated variables.
func (vt *VarTracker) Len() int { return len(vt.vars) }

// Vars returns all allocated variables, ordered by rank. The slice must not be modified.
func (vt *VarTracker) Vars() []*types.InferenceVar { return vt.vars }

// Get returns the variable with the given rank.
func (vt *VarTracker) Get(rank int) *types.InferenceVar { return vt.vars[rank] }

// Tracks reports whether v was allocated by vt and has not been released.
func (vt *VarTracker) Tracks(v *types.InferenceVar) bool {
	rank := v.Id()
	return rank >= 0 && rank < len(vt.vars) && vt.vars[rank] == v
}

// Truncate releases every variable with rank n or above. Their ranks are reissued by later
// allocations; slices previously returned by Vars are left unchanged.
func (vt *VarTracker) Truncate(n int) {
	if n < len(vt.vars) {
		vt.vars = vt.vars[:n:n]
	}
}

// New allocates an inference variable for a type-parameter.
func (vt *VarTracker) New(param *types.TypeParam) *types.InferenceVar {
	v := types.NewInferenceVar(len(vt.vars), param)
	vt.vars = append(vt.vars, v)
	return v
}

// NewList allocates one inference variable per type-parameter.
func (vt *VarTracker) NewList(params []*types.TypeParam) []*types.InferenceVar {
	vars := make([]*types.InferenceVar, len(params))
	for i, p := range params {
		vars[i] = vt.New(p)
	}
	return vars
}

// NewExpressionVar allocates an inference variable standing for the type of an expression.
func (vt *VarTracker) NewExpressionVar(source interface{}) *types.InferenceVar {
	v := types.NewExpressionVar(len(vt.vars), source)
	vt.vars = append(vt.vars, v)
	return v
}

// NewCapture allocates a fresh capture synthesized for origin.
func (vt *VarTracker) NewCapture(origin *types.InferenceVar) *types.Capture {
	z := types.NewCapture(vt.NextCaptureId, origin)
	vt.NextCaptureId++
	return z
}
