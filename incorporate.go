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

	"github.com/benbjohnson/immutable"

	"github.com/wdamron/jinfer/internal/astutil"
	"github.com/wdamron/jinfer/types"
)

// Expression constraint which could not be reduced until its input variables are instantiated.
type deferredConstraint struct {
	formula *ConstraintFormula
	inputs  []*types.InferenceVar
	outputs []*types.InferenceVar
}

// ReduceOneConstraint reduces f, and every formula it reduces to, into bounds of b. Expression
// formulas whose input variables are not yet known are recorded in b and reduced later.
//
// A formula which reduces to false marks b unsatisfiable; the returned error wraps ErrUnsatisfiable.
func (b *BoundSet) ReduceOneConstraint(ctx *InferenceContext, f *ConstraintFormula) error {
	queue := []*ConstraintFormula{f}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if b.isFalse {
			return fmt.Errorf("%w: %s", ErrUnsatisfiable, f)
		}
		r, err := f.reduce(ctx, b)
		if err != nil {
			return err
		}
		switch r.kind {
		case reducedFalse:
			ctx.logger.Debug("constraint reduced to false", "formula", f)
			b.AddFalse()
			return fmt.Errorf("%w: %s reduces to false", ErrUnsatisfiable, f)
		case reducedBound:
			if b.AddBound(r.bound) {
				ctx.logger.Debug("bound added", "bound", r.bound)
			}
		case reducedFormulas:
			queue = append(queue, r.formulas...)
		case reducedDeferred:
			if err := b.deferConstraint(ctx, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *BoundSet) deferConstraint(ctx *InferenceContext, f *ConstraintFormula) error {
	a := astutil.Analyze(ctx.env, f.Expr, b.Instantiate(f.Right))
	inputs := a.Inputs[:0:0]
	for _, v := range a.Inputs {
		if !b.IsInstantiated(v) {
			inputs = append(inputs, v)
		}
	}
	if len(inputs) == 0 {
		b.AddFalse()
		return fmt.Errorf("%w: %s cannot be reduced", ErrUnsatisfiable, f)
	}
	ctx.logger.Debug("constraint deferred", "formula", f, "inputs", len(inputs))
	b.deferred = b.deferred.Append(deferredConstraint{formula: f, inputs: inputs, outputs: a.Outputs})
	return nil
}

// Deferred returns the expression formulas waiting on uninstantiated input variables.
func (b *BoundSet) Deferred() []*ConstraintFormula {
	out := make([]*ConstraintFormula, 0, b.deferred.Len())
	itr := b.deferred.Iterator()
	for !itr.Done() {
		_, d := itr.Next()
		out = append(out, d.formula)
	}
	return out
}

// takeReady removes and returns the deferred formulas whose input variables are all instantiated.
func (b *BoundSet) takeReady() []*ConstraintFormula {
	var ready []*ConstraintFormula
	remaining := immutable.NewList[deferredConstraint]()
	itr := b.deferred.Iterator()
	for !itr.Done() {
		_, d := itr.Next()
		if b.allInstantiated(d.inputs) {
			ready = append(ready, d.formula)
			continue
		}
		remaining = remaining.Append(d)
	}
	if len(ready) > 0 {
		b.deferred = remaining
	}
	return ready
}

func (b *BoundSet) allInstantiated(vars []*types.InferenceVar) bool {
	for _, v := range vars {
		if !b.IsInstantiated(v) {
			return false
		}
	}
	return true
}

// Incorporate derives the bounds implied by pairs of bounds in b until no new bound is found.
// Only pairs with at least one bound added since the previous call are examined.
//
// Incorporation fails with an error wrapping ErrUnsatisfiable when an implied formula reduces
// to false, or with ErrIncorporationLimit when no fixpoint is reached within the context's
// round limit.
func (b *BoundSet) Incorporate(ctx *InferenceContext) error {
	rounds := 0
	for {
		if b.isFalse {
			return fmt.Errorf("%w: bound set is false", ErrUnsatisfiable)
		}
		n := b.arena.Len()
		if b.incorporated >= n {
			return nil
		}
		if rounds++; rounds > ctx.maxRounds {
			return fmt.Errorf("%w (%d rounds)", ErrIncorporationLimit, ctx.maxRounds)
		}
		ctx.stats.Rounds++

		var implied []*ConstraintFormula
		var fi, fj []fact
		for j := b.incorporated; j < n; j++ {
			fj = appendFacts(fj[:0], b.arena.Get(j))
			for i := 0; i < j; i++ {
				fi = appendFacts(fi[:0], b.arena.Get(i))
				for _, f := range fi {
					for _, g := range fj {
						implied = impliedBy(ctx.env, implied, f, g)
						implied = impliedBy(ctx.env, implied, g, f)
					}
				}
			}
		}
		b.incorporated = n

		for _, f := range implied {
			if err := b.ReduceOneConstraint(ctx, f); err != nil {
				return err
			}
		}
	}
}

// A bound viewed as a relation between two types: `lhs = rhs` with a variable on the left, or
// `lhs <: rhs` with a variable on at least one side. `α = β` is viewed from both variables.
type fact struct {
	lhs, rhs types.Type
	same     bool
}

func appendFacts(dst []fact, tb TypeBound) []fact {
	switch tb.Relation {
	case Same:
		dst = append(dst, fact{lhs: tb.Var, rhs: tb.Type, same: true})
		if _, ok := tb.Type.(*types.InferenceVar); ok {
			dst = append(dst, fact{lhs: tb.Type, rhs: tb.Var, same: true})
		}
	case Supertype:
		dst = append(dst, fact{lhs: tb.Type, rhs: tb.Var})
	default:
		dst = append(dst, fact{lhs: tb.Var, rhs: tb.Type})
	}
	return dst
}

// impliedBy appends the formulas implied by f together with g.
func impliedBy(env *types.Env, out []*ConstraintFormula, f, g fact) []*ConstraintFormula {
	if f.same {
		alpha := f.lhs.(*types.InferenceVar)
		s := f.rhs
		rel := Subtype
		if g.same {
			rel = Same
		}
		switch {
		case g.lhs == f.lhs:
			return append(out, NewTypeFormula(s, rel, g.rhs))
		case !g.same && g.rhs == f.lhs:
			return append(out, NewTypeFormula(g.lhs, Subtype, s))
		case isProper(s) && (types.Mentions(g.lhs, alpha) || types.Mentions(g.rhs, alpha)):
			return append(out, NewTypeFormula(types.SubstituteVar(g.lhs, alpha, s), rel, types.SubstituteVar(g.rhs, alpha, s)))
		}
		return out
	}
	if g.same {
		return out
	}

	// S <: α, α <: T
	if v, ok := f.rhs.(*types.InferenceVar); ok && g.lhs == types.Type(v) {
		out = append(out, NewTypeFormula(f.lhs, Subtype, g.rhs))
	}
	// α <: S, α <: T
	if _, ok := f.lhs.(*types.InferenceVar); ok && f.lhs == g.lhs {
		out = appendSharedParameterizations(env, out, f.rhs, g.rhs)
	}
	return out
}

// appendSharedParameterizations appends ‹Si = Ti› for each pair of non-wildcard type-arguments of
// supertypes G<S1..Sn> of s and G<T1..Tn> of t.
func appendSharedParameterizations(env *types.Env, out []*ConstraintFormula, s, t types.Type) []*ConstraintFormula {
	if !sharesParameterizations(s) || !sharesParameterizations(t) || types.Identical(s, t) {
		return out
	}
	for _, sup := range env.AllSupertypes(s) {
		sp, ok := sup.(*types.Parameterized)
		if !ok {
			continue
		}
		tp, ok := env.FindSupertype(t, sp.Generic).(*types.Parameterized)
		if !ok || len(tp.Args) != len(sp.Args) {
			continue
		}
		for i := range sp.Args {
			_, sw := sp.Args[i].(*types.Wildcard)
			_, tw := tp.Args[i].(*types.Wildcard)
			if !sw && !tw {
				out = append(out, NewTypeFormula(sp.Args[i], Same, tp.Args[i]))
			}
		}
	}
	return out
}

func sharesParameterizations(t types.Type) bool {
	switch t.(type) {
	case *types.Class, *types.Parameterized:
		return true
	}
	return false
}
