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
	"errors"
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/jinfer/internal/util"
	"github.com/wdamron/jinfer/types"
)

// dependencyGraph links each pair of uninstantiated variables related by a bound of b. Vertices are
// variable ranks in [0, n).
func (b *BoundSet) dependencyGraph(n int) util.Graph {
	g := util.NewGraph(n)
	itr := b.arena.Iterator()
	for !itr.Done() {
		_, tb := itr.Next()
		if tb.proper || b.IsInstantiated(tb.Var) {
			continue
		}
		for _, w := range types.InferenceVars(tb.Type) {
			if w == tb.Var || b.IsInstantiated(w) || w.Id() >= n {
				continue
			}
			g.AddEdge(tb.Var.Id(), w.Id())
			g.AddEdge(w.Id(), tb.Var.Id())
		}
	}
	return g
}

// dependencies returns v and the uninstantiated variables v transitively depends on, in rank order.
func (ctx *InferenceContext) dependencies(b *BoundSet, g util.Graph, v *types.InferenceVar) []*types.InferenceVar {
	deps := set.NewTreeSet[*types.InferenceVar](types.CompareVars)
	for _, rank := range g.Reachable(v.Id()) {
		if w := ctx.tracker.Get(rank); !b.IsInstantiated(w) {
			deps.Insert(w)
		}
	}
	return deps.Slice()
}

// resolve instantiates each of vars (and the variables they depend on) within b, returning the
// resulting bound set. b itself is left unchanged. Variables allocated by a discarded attempt are
// released, and vars no longer tracked are skipped.
func (ctx *InferenceContext) resolve(b *BoundSet, vars []*types.InferenceVar) (*BoundSet, error) {
	for _, v := range vars {
		if !ctx.tracker.Tracks(v) || b.IsInstantiated(v) {
			continue
		}
		deps := ctx.dependencies(b, b.dependencyGraph(ctx.tracker.Len()), v)
		ctx.stats.Resolutions++
		ctx.logger.Debug("resolving", "var", v.Name(), "dependencies", len(deps))

		n := ctx.tracker.Len()
		resolved, err := ctx.resolveFromBounds(b, deps)
		if err == nil {
			b = resolved
			continue
		}
		ctx.tracker.Truncate(n)
		if !errors.Is(err, ErrUnsatisfiable) || !ctx.captureFallback {
			return nil, err
		}
		ctx.stats.CaptureFallbacks++
		ctx.logger.Debug("resolving with fresh captures", "var", v.Name(), "reason", err)
		if resolved, err = ctx.resolveWithCaptures(b, deps); err != nil {
			ctx.tracker.Truncate(n)
			return nil, err
		}
		b = resolved
	}
	return b, nil
}

// resolveAll resolves every tracked variable, including those allocated while resolving.
func (ctx *InferenceContext) resolveAll(b *BoundSet) (*BoundSet, error) {
	for n := 0; n < ctx.tracker.Len(); {
		vars := ctx.tracker.Vars()[n:]
		n = ctx.tracker.Len()
		var err error
		if b, err = ctx.resolve(b, vars); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// resolveFromBounds instantiates the variables of deps one at a time. Each step instantiates the
// lowest-ranked variable with a proper lower bound, or else with a throws bound, or else with proper
// upper bounds; bounds are incorporated after each instantiation, so a variable with no proper
// bound may gain one from the instantiation of another. The attempt fails when no remaining
// variable has a candidate.
func (ctx *InferenceContext) resolveFromBounds(b *BoundSet, deps []*types.InferenceVar) (*BoundSet, error) {
	c := b.Copy()
	for {
		var pending []*types.InferenceVar
		for _, v := range deps {
			if !c.IsInstantiated(v) {
				pending = append(pending, v)
			}
		}
		if len(pending) == 0 {
			return c, nil
		}
		v, t := ctx.nextInstantiation(c, pending)
		if v == nil {
			return nil, fmt.Errorf("%w: no proper bound determines %s", ErrUnsatisfiable, pending[0].Name())
		}
		ctx.logger.Debug("instantiating", "var", v.Name(), "type", types.TypeString(t))
		c.AddBound(NewTypeBound(v, t, Same))
		if err := ctx.incorporate(c); err != nil {
			return nil, err
		}
	}
}

// nextInstantiation returns the first of vars (in rank order) with a candidate from the earliest
// applicable source: proper lower bounds, a throws bound, then proper upper bounds.
func (ctx *InferenceContext) nextInstantiation(b *BoundSet, vars []*types.InferenceVar) (*types.InferenceVar, types.Type) {
	for _, from := range [...]func(*BoundSet, *types.InferenceVar) types.Type{
		ctx.fromLowerBounds,
		ctx.fromThrows,
		ctx.fromUpperBounds,
	} {
		for _, v := range vars {
			if t := from(b, v); t != nil {
				return v, t
			}
		}
	}
	return nil, nil
}

func (ctx *InferenceContext) fromLowerBounds(b *BoundSet, v *types.InferenceVar) types.Type {
	if lower := b.LowerBounds(v, true); len(lower) > 0 {
		return ctx.env.LUB(lower...)
	}
	return nil
}

// throws α with no proper lower bound, and only upper bounds RuntimeException satisfies
func (ctx *InferenceContext) fromThrows(b *BoundSet, v *types.InferenceVar) types.Type {
	if !b.HasThrows(v) || len(b.LowerBounds(v, true)) > 0 {
		return nil
	}
	if ctx.admitsRuntimeException(b.UpperBounds(v, true)) {
		return ctx.env.RuntimeException
	}
	return nil
}

func (ctx *InferenceContext) fromUpperBounds(b *BoundSet, v *types.InferenceVar) types.Type {
	upper := b.UpperBounds(v, true)
	switch len(upper) {
	case 0:
		return nil
	case 1:
		return upper[0]
	}
	return ctx.env.GLB(upper...)
}

func (ctx *InferenceContext) admitsRuntimeException(upper []types.Type) bool {
	for _, u := range upper {
		if !ctx.env.IsSubtype(ctx.env.RuntimeException, u) {
			return false
		}
	}
	return true
}
