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

// Substitution maps type-parameters to the inference variables standing for them.
type Substitution struct {
	params []*types.TypeParam
	vars   []*types.InferenceVar
}

// NewSubstitution maps each of params to the variable at the same index.
func NewSubstitution(params []*types.TypeParam, vars []*types.InferenceVar) Substitution {
	return Substitution{params: params, vars: vars}
}

// Len returns the number of mapped type-parameters.
func (s Substitution) Len() int { return len(s.params) }

// Lookup returns the variable standing for p, or nil.
func (s Substitution) Lookup(p *types.TypeParam) *types.InferenceVar {
	for i, q := range s.params {
		if p == q {
			return s.vars[i]
		}
	}
	return nil
}

// Apply replaces mapped type-parameters in t with their inference variables.
func (s Substitution) Apply(t types.Type) types.Type {
	if len(s.params) == 0 || t == nil {
		return t
	}
	return types.Substitute(t, func(leaf types.Type) (types.Type, bool) {
		if p, ok := leaf.(*types.TypeParam); ok {
			if v := s.Lookup(p); v != nil {
				return v, true
			}
		}
		return nil, false
	})
}

// ApplyAll applies s to each of ts.
func (s Substitution) ApplyAll(ts []types.Type) []types.Type {
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = s.Apply(t)
	}
	return out
}

// Instantiate replaces inference variables in t for which lookup returns a type.
func Instantiate(t types.Type, lookup func(*types.InferenceVar) types.Type) types.Type {
	if t == nil {
		return nil
	}
	return types.Substitute(t, func(leaf types.Type) (types.Type, bool) {
		if v, ok := leaf.(*types.InferenceVar); ok {
			if u := lookup(v); u != nil {
				return u, true
			}
		}
		return nil, false
	})
}

// CaptureSubstitution maps each of vars to the capture at the same index.
func CaptureSubstitution(vars []*types.InferenceVar, zs []*types.Capture) func(*types.InferenceVar) types.Type {
	return func(v *types.InferenceVar) types.Type {
		for i, w := range vars {
			if v == w {
				return zs[i]
			}
		}
		return nil
	}
}
