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

	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/jinfer/internal/util"
	"github.com/wdamron/jinfer/types"
)

// resolveDeferred reduces the deferred expression constraints of b. Constraints are ordered by a
// graph with an edge from each constraint to the constraints whose input variables depend on its
// output variables; the input variables of the first strongly-connected component are resolved,
// which makes its constraints ready for reduction. The process repeats until no constraint remains.
func (ctx *InferenceContext) resolveDeferred(b *BoundSet) (*BoundSet, error) {
	for b.deferred.Len() > 0 {
		pending := b.deferred.Len()
		ds := make([]deferredConstraint, 0, pending)
		itr := b.deferred.Iterator()
		for !itr.Done() {
			_, d := itr.Next()
			ds = append(ds, d)
		}

		order := ctx.deferredOrder(b, ds)
		var inputs []*types.InferenceVar
		for _, i := range order[0] {
			inputs = append(inputs, ds[i].inputs...)
		}
		ctx.logger.Debug("resolving deferred constraints", "constraints", len(order[0]), "inputs", len(inputs))

		var err error
		if b, err = ctx.resolve(b, inputs); err != nil {
			return nil, err
		}
		if err = ctx.incorporate(b); err != nil {
			return nil, err
		}
		if b.deferred.Len() >= pending {
			return nil, fmt.Errorf("%w: deferred constraints cannot be reduced", ErrUnsatisfiable)
		}
	}
	return b, nil
}

// deferredOrder returns the strongly-connected components of the deferred-constraint graph, in
// topological order.
func (ctx *InferenceContext) deferredOrder(b *BoundSet, ds []deferredConstraint) [][]int {
	deps := b.dependencyGraph(ctx.tracker.Len())
	closures := make([]*set.Set[*types.InferenceVar], len(ds))
	for i, d := range ds {
		closure := set.New[*types.InferenceVar](len(d.inputs))
		for _, v := range d.inputs {
			for _, rank := range deps.Reachable(v.Id()) {
				closure.Insert(ctx.tracker.Get(rank))
			}
		}
		closures[i] = closure
	}

	g := util.NewGraph(len(ds))
	for i := range ds {
		for j, d := range ds {
			if i == j {
				continue
			}
			for _, out := range d.outputs {
				if closures[i].Contains(out) {
					g.AddEdge(j, i)
					break
				}
			}
		}
	}
	return g.SCC()
}
