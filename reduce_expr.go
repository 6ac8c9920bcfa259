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
	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/internal/typeutil"
	"github.com/wdamron/jinfer/types"
)

// exprType returns the resolved type of e. Non-generic invocations, and generic invocations with
// explicit type-arguments, have the (substituted) return type of their method.
func exprType(e ast.Expr) types.Type {
	if t := e.Type(); t != nil {
		return t
	}
	inv, ok := e.(*ast.Invocation)
	if !ok || inv.Method == nil {
		return nil
	}
	m := inv.Method
	r, params := m.ReturnType(), m.InferenceParams()
	if len(params) > 0 && len(inv.TypeArgs) == len(params) {
		return types.SubstituteParams(r, params, inv.TypeArgs)
	}
	if !types.MentionsParams(r, params) {
		return r
	}
	return nil
}

// ‹e → T›
func reduceExpression(ctx *InferenceContext, b *BoundSet, f *ConstraintFormula) (reduction, error) {
	e, t := f.Expr, b.Instantiate(f.Right)
	if isProper(t) {
		if et := e.Type(); et != nil {
			return reduceBool(ctx.env.IsCompatible(et, t)), nil
		}
	}
	if !ast.IsPolyExpression(e) {
		et := exprType(e)
		if et == nil {
			return reduceFalse, nil
		}
		if _, isVoid := et.(*types.VoidType); isVoid {
			return reduction{}, &InferenceError{Msg: "expression has no value", Expr: e}
		}
		return reduceTo(NewTypeFormula(et, Compatible, t)), nil
	}

	switch e := e.(type) {
	case *ast.Invocation:
		return ctx.reduceInvocation(b, e, t)
	case *ast.Conditional:
		return reduceTo(NewExpressionFormula(e.Then, t), NewExpressionFormula(e.Else, t)), nil
	case *ast.Lambda:
		return ctx.reduceLambda(e, t)
	case *ast.MethodRef:
		return ctx.reduceMethodRef(e, t, f)
	}
	return unsupported(f, "expression shape "+ast.ShapeOf(e).String())
}

// reduceInvocation adds the inference variables, bounds and argument constraints of a nested
// generic invocation to b, then constrains its return type against t.
func (ctx *InferenceContext) reduceInvocation(b *BoundSet, e *ast.Invocation, t types.Type) (reduction, error) {
	m := e.Method
	r := m.ReturnType()
	if _, isVoid := r.(*types.VoidType); isVoid {
		return reduction{}, &InferenceError{Msg: "expression has no value", Expr: e}
	}
	params := m.InferenceParams()
	vars := ctx.tracker.NewList(params)
	outer := ctx.current
	ctx.current = &invocation{method: m, subst: typeutil.NewSubstitution(params, vars), outer: outer}
	defer func() { ctx.current = outer }()

	ctx.addParamBounds(b, params, vars)
	var varargsElem types.Type
	if isVarargsInvocation(m, e.Args) {
		varargsElem = m.VarargsElem()
	}
	targets, ok := argumentTargets(m.Params, len(e.Args), varargsElem)
	if !ok {
		return reduceFalse, nil
	}
	for i, arg := range e.Args {
		if err := b.ReduceOneConstraint(ctx, NewExpressionFormula(arg, ctx.Substitute(targets[i]))); err != nil {
			return reduction{}, err
		}
	}
	for _, thrown := range m.Thrown {
		if v, ok := ctx.Substitute(thrown).(*types.InferenceVar); ok {
			b.AddThrows(v)
		}
	}
	for _, f := range ctx.targetConstraints(b, ctx.Substitute(r), t, e) {
		if err := b.ReduceOneConstraint(ctx, f); err != nil {
			return reduction{}, err
		}
	}
	return reduceIncorporated, nil
}

// ‹lambda → T›
func (ctx *InferenceContext) reduceLambda(e *ast.Lambda, t types.Type) (reduction, error) {
	if _, ok := t.(*types.InferenceVar); ok {
		return reduceDeferred, nil
	}
	fn, ok := ctx.env.FunctionType(t)
	if !ok || fn.IsGeneric() || len(fn.Params) != len(e.Params) {
		return reduceFalse, nil
	}
	var fs []*ConstraintFormula
	if e.IsExplicitlyTyped() {
		for i, p := range e.Params {
			fs = append(fs, NewTypeFormula(p.Type, Same, fn.Params[i]))
		}
	} else {
		for _, p := range fn.Params {
			if !isProper(p) {
				return reduceDeferred, nil
			}
		}
	}

	r := fn.ReturnType()
	if _, isVoid := r.(*types.VoidType); isVoid {
		if !e.IsVoidCompatible() {
			return reduceFalse, nil
		}
		return reduceTo(fs...), nil
	}
	if !e.IsValueCompatible() {
		return reduceFalse, nil
	}
	for _, result := range e.ResultExpressions() {
		fs = append(fs, NewExpressionFormula(result, r))
	}
	return reduceTo(fs...), nil
}

// ‹Type::m → T›
func (ctx *InferenceContext) reduceMethodRef(e *ast.MethodRef, t types.Type, f *ConstraintFormula) (reduction, error) {
	if _, ok := t.(*types.InferenceVar); ok {
		return reduceDeferred, nil
	}
	fn, ok := ctx.env.FunctionType(t)
	if !ok {
		return reduceFalse, nil
	}
	r := fn.ReturnType()
	_, voidTarget := r.(*types.VoidType)

	if e.IsExact() {
		decl := e.Candidates[0]
		m := ctx.referencedSignature(e, decl)
		ps := fn.Params
		var fs []*ConstraintFormula
		if len(ps) == len(m.Params)+1 && takesReceiver(e, decl) {
			fs = append(fs, NewTypeFormula(ps[0], Subtype, e.Qualifier))
			ps = ps[1:]
		}
		if len(ps) != len(m.Params) {
			return reduceFalse, nil
		}
		for i, p := range ps {
			fs = append(fs, NewTypeFormula(p, Compatible, m.Params[i]))
		}
		if !voidTarget {
			if _, isVoid := m.Return.(*types.VoidType); isVoid {
				return reduceFalse, nil
			}
			fs = append(fs, NewTypeFormula(m.Return, Compatible, r))
		}
		return reduceTo(fs...), nil
	}

	for _, p := range fn.Params {
		if !isProper(p) {
			return reduceDeferred, nil
		}
	}
	var applicable []*types.Method
	for _, cand := range e.Candidates {
		if ctx.isApplicableReference(e, cand, fn.Params) {
			applicable = append(applicable, cand)
		}
	}
	switch {
	case len(applicable) == 0:
		return reduceFalse, nil
	case len(applicable) > 1:
		return unsupported(f, "ambiguous method reference "+e.Name)
	case voidTarget:
		return reduceTrue, nil
	}
	m := applicable[0]
	if m.IsGeneric() && len(e.TypeArgs) == 0 && types.MentionsParams(m.ReturnType(), m.TypeParams) {
		return unsupported(f, "generic method reference "+e.Name)
	}
	m = ctx.referencedSignature(e, m)
	if _, isVoid := m.Return.(*types.VoidType); isVoid {
		return reduceFalse, nil
	}
	return reduceTo(NewTypeFormula(m.Return, Compatible, r)), nil
}

// referencedSignature substitutes the qualifier's type-arguments and the reference's explicit
// type-arguments into m.
func (ctx *InferenceContext) referencedSignature(e *ast.MethodRef, m *types.Method) *types.Method {
	var params []*types.TypeParam
	var args []types.Type
	if c := m.Declaring; c != nil && c.IsGeneric() && e.Qualifier != nil {
		if q, ok := ctx.env.FindSupertype(e.Qualifier, c).(*types.Parameterized); ok {
			params, args = append(params, c.TypeParams...), append(args, q.Args...)
		}
	}
	if len(e.TypeArgs) == len(m.TypeParams) {
		params, args = append(params, m.TypeParams...), append(args, e.TypeArgs...)
	}
	return m.Substitute(types.ParamSubstitution(params, args))
}

// isApplicableReference reports whether cand accepts arguments of the function parameter types ps,
// either directly or with the first parameter as the receiver.
func (ctx *InferenceContext) isApplicableReference(e *ast.MethodRef, cand *types.Method, ps []types.Type) bool {
	m := ctx.referencedSignature(e, cand)
	if !takesReceiver(e, cand) {
		return ctx.acceptsArgs(m, ps)
	}
	return len(ps) > 0 && ctx.env.IsSubtype(ps[0], e.Qualifier) && ctx.acceptsArgs(m, ps[1:])
}

// takesReceiver reports whether the first function parameter is the receiver of m: an instance
// method referenced through a type name.
func takesReceiver(e *ast.MethodRef, m *types.Method) bool {
	return e.TypeQualified && !m.Static && !m.Constructor
}

func (ctx *InferenceContext) acceptsArgs(m *types.Method, ps []types.Type) bool {
	var elem types.Type
	if m.Varargs && len(ps) != len(m.Params) {
		elem = m.VarargsElem()
	}
	targets, ok := argumentTargets(m.Params, len(ps), elem)
	if !ok {
		return false
	}
	for i, p := range ps {
		if types.MentionsParams(targets[i], m.TypeParams) {
			continue
		}
		if !ctx.env.IsCompatible(p, targets[i]) {
			return false
		}
	}
	return true
}

// ‹e ⊆throws T›
func reduceExceptions(f *ConstraintFormula) (reduction, error) {
	switch f.Expr.(type) {
	case *ast.Lambda, *ast.MethodRef, *ast.Conditional:
		return unsupported(f, "exception containment of "+ast.ShapeOf(f.Expr).String())
	}
	return reduceTrue, nil
}
