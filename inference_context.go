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
	"io"
	"log/slog"

	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/internal/typeutil"
	"github.com/wdamron/jinfer/types"
)

// DefaultMaxIncorporationRounds is the default limit on incorporation rounds within one call to Incorporate.
const DefaultMaxIncorporationRounds = 1024

// State of an inference context.
type State uint8

const (
	// Variables and initial constraints are being registered.
	Collecting State = iota
	// Initial constraints are being reduced into bounds.
	Reducing
	// Bounds are being closed under incorporation.
	Incorporating
	// Remaining variables are being instantiated.
	Resolving
	Solved
	Failed
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Reducing:
		return "reducing"
	case Incorporating:
		return "incorporating"
	case Resolving:
		return "resolving"
	case Solved:
		return "solved"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Stats counts the work performed by an inference context.
type Stats struct {
	// Incorporation rounds which examined at least one new bound.
	Rounds int
	// Dependency sets resolved.
	Resolutions int
	// Dependency sets resolved through fresh captures.
	CaptureFallbacks int
}

// Type-parameter substitution of one (possibly nested) invocation.
type invocation struct {
	method *types.Method
	subst  typeutil.Substitution
	outer  *invocation
}

// InferenceContext holds the inference variables, the bound set and the pending constraints of one
// inference episode: one generic method or constructor invocation, including the generic
// invocations nested within its arguments.
//
// An inference context cannot be used concurrently, and should not be reused across unrelated
// invocations.
type InferenceContext struct {
	env     *types.Env
	tracker typeutil.VarTracker
	bounds  *BoundSet
	args    []ast.Expr

	initial []*ConstraintFormula
	// return type and target type of the root invocation
	targetReturn, targetType types.Type

	root, current *invocation
	state         State

	maxRounds       int
	captureFallback bool
	logger          *slog.Logger
	stats           Stats
	err             error
}

// Create a new inference context for an invocation with the given argument expressions. Types are
// related within env.
func NewContext(env *types.Env, args ...ast.Expr) *InferenceContext {
	if env == nil {
		panic("jinfer: nil type environment")
	}
	return &InferenceContext{
		env:             env,
		bounds:          NewBoundSet(),
		args:            args,
		maxRounds:       DefaultMaxIncorporationRounds,
		captureFallback: true,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Limit the number of incorporation rounds within a single incorporation. Exceeding the limit fails
// inference with ErrIncorporationLimit.
//
// By default, the limit is DefaultMaxIncorporationRounds.
func (ctx *InferenceContext) SetMaxIncorporationRounds(n int) {
	if n < 1 {
		n = 1
	}
	ctx.maxRounds = n
}

// Set the logger which receives debug records for reduction, deferral and resolution steps.
// By default, records are discarded.
func (ctx *InferenceContext) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx.logger = logger
}

// The capture fallback resolves variables to fresh captures when their proper bounds do not
// determine an instantiation. When disabled, such variables fail to resolve with ErrUnsatisfiable.
//
// By default, the capture fallback is enabled.
func (ctx *InferenceContext) EnableCaptureFallback(enabled bool) { ctx.captureFallback = enabled }

// Get the type environment of the context.
func (ctx *InferenceContext) Env() *types.Env { return ctx.env }

// Get the current state of the context.
func (ctx *InferenceContext) State() State { return ctx.state }

// Get counters for the work performed so far.
func (ctx *InferenceContext) Stats() Stats { return ctx.stats }

// Get every inference variable created within the context, in rank order.
func (ctx *InferenceContext) Variables() []*types.InferenceVar { return ctx.tracker.Vars() }

// Get the current bound set.
func (ctx *InferenceContext) Bounds() *BoundSet { return ctx.bounds }

// Get the error which caused inference to fail.
func (ctx *InferenceContext) Error() error { return ctx.err }

// CreateInitialBoundSet creates one inference variable per type-parameter, along with the bounds
// implied by the declared bounds of the type-parameters. Calling it again with the same
// type-parameters returns the same variables.
func (ctx *InferenceContext) CreateInitialBoundSet(params []*types.TypeParam) []*types.InferenceVar {
	if ctx.root != nil && ctx.root.subst.Len() == len(params) {
		vars := make([]*types.InferenceVar, len(params))
		for i, p := range params {
			if vars[i] = ctx.root.subst.Lookup(p); vars[i] == nil {
				vars = nil
				break
			}
		}
		if vars != nil {
			return vars
		}
	}
	vars := ctx.tracker.NewList(params)
	ctx.root = &invocation{subst: typeutil.NewSubstitution(params, vars)}
	ctx.current = ctx.root
	ctx.addParamBounds(ctx.bounds, params, vars)
	return vars
}

// addParamBounds adds `α <: B` for each declared bound B of each type-parameter, or `α <: Object`
// for unbounded type-parameters.
func (ctx *InferenceContext) addParamBounds(b *BoundSet, params []*types.TypeParam, vars []*types.InferenceVar) {
	subst := typeutil.NewSubstitution(params, vars)
	for i, p := range params {
		if len(p.Bounds) == 0 {
			b.AddBound(NewTypeBound(vars[i], ctx.env.Object, Subtype))
			continue
		}
		for _, bound := range p.Bounds {
			if bt := subst.Apply(bound); bt != types.Type(vars[i]) {
				b.AddBound(NewTypeBound(vars[i], bt, Subtype))
			}
		}
	}
}

// Substitute replaces type-parameters of the current invocation (and enclosing invocations) within t
// with their inference variables.
func (ctx *InferenceContext) Substitute(t types.Type) types.Type {
	for inv := ctx.current; inv != nil; inv = inv.outer {
		t = inv.subst.Apply(t)
	}
	return t
}

// CreateInitialConstraintsForParameters pairs each argument expression of the context with its
// formal parameter type, producing ‹ei → Fi θ›. When isVarargs is set, arguments beyond the
// second-to-last formal are paired with varargsElem.
func (ctx *InferenceContext) CreateInitialConstraintsForParameters(formals []types.Type, isVarargs bool, varargsElem types.Type) error {
	if !isVarargs {
		varargsElem = nil
	}
	targets, ok := argumentTargets(formals, len(ctx.args), varargsElem)
	if !ok {
		return ctx.fail(fmt.Errorf("%w: %d arguments for %d parameters", ErrUnsatisfiable, len(ctx.args), len(formals)))
	}
	for i, arg := range ctx.args {
		ctx.initial = append(ctx.initial, NewExpressionFormula(arg, ctx.Substitute(targets[i])))
	}
	return nil
}

// argumentTargets returns the parameter type each of n arguments is checked against.
func argumentTargets(formals []types.Type, n int, varargsElem types.Type) ([]types.Type, bool) {
	if varargsElem == nil {
		return formals, n == len(formals)
	}
	k := len(formals)
	if k == 0 || n < k-1 {
		return nil, false
	}
	targets := make([]types.Type, n)
	for i := range targets {
		if i < k-1 {
			targets[i] = formals[i]
		} else {
			targets[i] = varargsElem
		}
	}
	return targets, true
}

// isVarargsInvocation reports whether m must be invoked by variable-arity with args.
func isVarargsInvocation(m *types.Method, args []ast.Expr) bool {
	if !m.Varargs {
		return false
	}
	if len(args) != len(m.Params) {
		return true
	}
	_, isArray := exprType(args[len(args)-1]).(*types.Array)
	return !isArray
}

// CreateInitialConstraintsForTargetType constrains the return type of the invocation against the
// type expected by its context. The constraints are reduced by Solve after the argument
// constraints, once the bounds they imply are known.
//
// A void return type cannot satisfy any target type; the returned error is an *InferenceError.
func (ctx *InferenceContext) CreateInitialConstraintsForTargetType(returnType, expected types.Type) error {
	if expected == nil {
		return nil
	}
	if _, isVoid := returnType.(*types.VoidType); isVoid || returnType == nil {
		return ctx.fail(&InferenceError{Msg: "expression has no value"})
	}
	ctx.targetReturn, ctx.targetType = ctx.Substitute(returnType), expected
	return nil
}

// AddInitialConstraints registers additional formulas to be reduced by Solve.
func (ctx *InferenceContext) AddInitialConstraints(fs ...*ConstraintFormula) {
	ctx.initial = append(ctx.initial, fs...)
}

// AddThrowsConstraints records `throws α` for each type-parameter named in a throws clause.
func (ctx *InferenceContext) AddThrowsConstraints(thrown []types.Type) {
	for _, t := range thrown {
		if v, ok := ctx.Substitute(t).(*types.InferenceVar); ok {
			ctx.bounds.AddThrows(v)
		}
	}
}

// targetConstraints returns the formulas relating the return type r of an invocation to its target
// type t. Wildcard-parameterized return types are captured with fresh expression variables; an
// inference variable returned into a primitive target is fixed to its wrapper-class bound.
func (ctx *InferenceContext) targetConstraints(b *BoundSet, r, t types.Type, e ast.Expr) []*ConstraintFormula {
	if p, ok := r.(*types.Parameterized); ok && p.HasWildcards() {
		return []*ConstraintFormula{NewTypeFormula(ctx.captureReturn(b, p, e), Compatible, t)}
	}
	if v, ok := r.(*types.InferenceVar); ok {
		if _, prim := t.(*types.Primitive); prim {
			if w := b.WrapperBound(ctx.env, v); w != nil {
				b.AddBound(NewTypeBound(v, w, Same))
				return []*ConstraintFormula{NewTypeFormula(w, Compatible, t)}
			}
		}
	}
	return []*ConstraintFormula{NewTypeFormula(r, Compatible, t)}
}

// captureReturn replaces each wildcard argument of p with a fresh expression variable bounded by
// the wildcard and by the declared bounds of the corresponding type-parameter.
func (ctx *InferenceContext) captureReturn(b *BoundSet, p *types.Parameterized, e ast.Expr) types.Type {
	args := make([]types.Type, len(p.Args))
	var fresh []int
	for i, a := range p.Args {
		if _, ok := a.(*types.Wildcard); ok {
			args[i] = ctx.tracker.NewExpressionVar(e)
			fresh = append(fresh, i)
			continue
		}
		args[i] = a
	}
	params := p.Generic.TypeParams
	for _, i := range fresh {
		beta := args[i].(*types.InferenceVar)
		w := p.Args[i].(*types.Wildcard)
		switch w.BoundKind {
		case types.Extends:
			b.AddBound(NewTypeBound(beta, w.Bound, Subtype))
		case types.Super:
			b.AddBound(NewTypeBound(beta, w.Bound, Supertype))
		}
		declared := false
		if i < len(params) {
			for _, bound := range params[i].Bounds {
				b.AddBound(NewTypeBound(beta, types.SubstituteParams(bound, params, args), Subtype))
				declared = true
			}
		}
		if !declared && w.BoundKind != types.Extends {
			b.AddBound(NewTypeBound(beta, ctx.env.Object, Subtype))
		}
	}
	return types.NewParameterized(p.Generic, args...)
}

// incorporate closes b under incorporation, then reduces the deferred constraints whose input
// variables became instantiated, until neither step makes progress.
func (ctx *InferenceContext) incorporate(b *BoundSet) error {
	for {
		if err := b.Incorporate(ctx); err != nil {
			if isLimit(err) {
				ctx.logger.Debug("incorporation limit exceeded", "rounds", ctx.maxRounds, "bounds", b.Len())
			}
			return err
		}
		ready := b.takeReady()
		if len(ready) == 0 {
			return nil
		}
		for _, f := range ready {
			if err := b.ReduceOneConstraint(ctx, f); err != nil {
				return err
			}
		}
	}
}

// Solve reduces the initial constraints, closes the bounds under incorporation, and resolves every
// inference variable. The returned bound set instantiates every variable.
//
// When the constraints have no solution, the returned error wraps ErrUnsatisfiable. Hard failures
// are returned as *InferenceError, and constraint shapes which cannot be reduced as
// *UnsupportedConstraintError.
func (ctx *InferenceContext) Solve() (*BoundSet, error) {
	switch ctx.state {
	case Solved:
		return ctx.bounds, nil
	case Failed:
		return nil, ctx.err
	}
	if ctx.root == nil {
		ctx.CreateInitialBoundSet(nil)
	}
	b := ctx.bounds

	ctx.state = Reducing
	for _, f := range ctx.initial {
		if err := b.ReduceOneConstraint(ctx, f); err != nil {
			return nil, ctx.fail(err)
		}
	}
	ctx.state = Incorporating
	if err := ctx.incorporate(b); err != nil {
		return nil, ctx.fail(err)
	}

	if ctx.targetType != nil {
		ctx.state = Reducing
		for _, f := range ctx.targetConstraints(b, ctx.targetReturn, ctx.targetType, nil) {
			if err := b.ReduceOneConstraint(ctx, f); err != nil {
				return nil, ctx.fail(err)
			}
		}
		ctx.state = Incorporating
		if err := ctx.incorporate(b); err != nil {
			return nil, ctx.fail(err)
		}
	}

	ctx.state = Resolving
	b, err := ctx.resolveDeferred(b)
	if err != nil {
		return nil, ctx.fail(err)
	}
	if b, err = ctx.resolveAll(b); err != nil {
		return nil, ctx.fail(err)
	}
	ctx.bounds = b
	if !ctx.IsResolved(b) {
		return nil, ctx.fail(fmt.Errorf("%w: unresolved inference variables", ErrUnsatisfiable))
	}
	ctx.state = Solved
	return b, nil
}

func (ctx *InferenceContext) fail(err error) error {
	ctx.state, ctx.err = Failed, err
	return err
}

// GetSolutions returns the instantiation within b of the inference variable for each of params, or
// nil if any of them is not instantiated.
func (ctx *InferenceContext) GetSolutions(params []*types.TypeParam, b *BoundSet) []types.Type {
	if ctx.root == nil || b == nil {
		return nil
	}
	out := make([]types.Type, len(params))
	for i, p := range params {
		v := ctx.root.subst.Lookup(p)
		if v == nil {
			return nil
		}
		if out[i] = b.Instantiation(v); out[i] == nil {
			return nil
		}
	}
	return out
}

// IsResolved reports whether every inference variable of the context is instantiated within b.
func (ctx *InferenceContext) IsResolved(b *BoundSet) bool {
	return b != nil && b.IsSatisfiable() && b.allInstantiated(ctx.tracker.Vars())
}
