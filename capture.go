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

	"github.com/wdamron/jinfer/internal/typeutil"
	"github.com/wdamron/jinfer/types"
)

// resolveWithCaptures instantiates each uninstantiated variable of deps to a fresh capture. A
// capture's lower bound is the least upper bound of its variable's lower bounds; otherwise its upper
// bound is the greatest lower bound of its variable's upper bounds. In both, the variables of deps
// are replaced by their captures and instantiated variables by their instantiations.
func (ctx *InferenceContext) resolveWithCaptures(b *BoundSet, deps []*types.InferenceVar) (*BoundSet, error) {
	env := ctx.env
	c := b.Copy()
	vars := deps[:0:0]
	for _, v := range deps {
		if !c.IsInstantiated(v) {
			vars = append(vars, v)
		}
	}
	zs := make([]*types.Capture, len(vars))
	for i, v := range vars {
		zs[i] = ctx.tracker.NewCapture(v)
	}
	toCapture := typeutil.CaptureSubstitution(vars, zs)
	theta := func(w *types.InferenceVar) types.Type {
		if z := toCapture(w); z != nil {
			return z
		}
		return c.Instantiation(w)
	}

	for i, v := range vars {
		z := zs[i]
		if lower := c.LowerBounds(v, false); len(lower) > 0 {
			for j, l := range lower {
				lower[j] = typeutil.Instantiate(l, theta)
			}
			if lub := env.LUB(lower...); lub != nil && lub != types.Type(z) {
				z.Lower = lub
				z.SetUpperBounds(nil, env.Object)
				continue
			}
		}
		upper := c.UpperBounds(v, false)
		for j, u := range upper {
			upper[j] = typeutil.Instantiate(u, theta)
		}
		var glb types.Type = env.Object
		if len(upper) > 0 {
			if glb = env.GLB(upper...); glb == nil {
				return nil, fmt.Errorf("%w: no greatest lower bound for %s", ErrUnsatisfiable, v.Name())
			}
		}
		z.SetUpperBounds([]types.Type{glb}, env.Object)
	}

	for i, v := range vars {
		ctx.logger.Debug("fresh capture", "var", v.Name(), "capture", zs[i].Name())
		c.AddBound(NewTypeBound(v, zs[i], Same))
	}
	if err := ctx.incorporate(c); err != nil {
		return nil, err
	}
	return c, nil
}
