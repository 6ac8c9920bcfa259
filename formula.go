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
	"github.com/wdamron/jinfer/types"
)

// FormulaKind distinguishes formulas over two types from formulas over an expression and a type.
type FormulaKind uint8

const (
	// ‹S rel T›
	TypeFormula FormulaKind = iota
	// ‹e rel T›
	ExpressionFormula
)

// ConstraintFormula is an assertion of compatibility or subtyping which may involve inference
// variables. Type formulas relate Left and Right; expression formulas relate Expr and Right.
type ConstraintFormula struct {
	Kind     FormulaKind
	Relation Relation
	Left     types.Type
	Expr     ast.Expr
	Right    types.Type
}

// Create a new formula ‹s rel t›.
func NewTypeFormula(s types.Type, rel Relation, t types.Type) *ConstraintFormula {
	return &ConstraintFormula{Kind: TypeFormula, Relation: rel, Left: s, Right: t}
}

// Create a new formula ‹e → t›.
func NewExpressionFormula(e ast.Expr, t types.Type) *ConstraintFormula {
	return &ConstraintFormula{Kind: ExpressionFormula, Relation: Compatible, Expr: e, Right: t}
}

// Create a new formula ‹e ⊆throws t›.
func NewExceptionFormula(e ast.Expr, t types.Type) *ConstraintFormula {
	return &ConstraintFormula{Kind: ExpressionFormula, Relation: ExceptionsContained, Expr: e, Right: t}
}

func (f *ConstraintFormula) String() string {
	var left string
	if f.Kind == ExpressionFormula {
		left = ast.ExprString(f.Expr)
	} else {
		left = types.TypeString(f.Left)
	}
	return "‹" + left + " " + f.Relation.String() + " " + types.TypeString(f.Right) + "›"
}

type reductionKind uint8

const (
	reducedTrue reductionKind = iota
	reducedFalse
	reducedBound
	reducedFormulas
	// the formula waits for its input variables to be instantiated
	reducedDeferred
	// bounds were added to the bound set directly and incorporated
	reducedIncorporated
)

// Result of reducing a single formula.
type reduction struct {
	kind     reductionKind
	bound    TypeBound
	formulas []*ConstraintFormula
}

var (
	reduceTrue         = reduction{kind: reducedTrue}
	reduceFalse        = reduction{kind: reducedFalse}
	reduceDeferred     = reduction{kind: reducedDeferred}
	reduceIncorporated = reduction{kind: reducedIncorporated}
)

func reduceToBound(v *types.InferenceVar, t types.Type, rel Relation) reduction {
	return reduction{kind: reducedBound, bound: NewTypeBound(v, t, rel)}
}

func reduceTo(fs ...*ConstraintFormula) reduction {
	return reduction{kind: reducedFormulas, formulas: fs}
}

func reduceBool(ok bool) reduction {
	if ok {
		return reduceTrue
	}
	return reduceFalse
}

// reduce rewrites f into bounds and simpler formulas. Expression formulas may add bounds to b
// directly (nested generic invocations) and report reducedIncorporated.
func (f *ConstraintFormula) reduce(ctx *InferenceContext, b *BoundSet) (reduction, error) {
	if f.Kind == ExpressionFormula {
		if f.Relation == ExceptionsContained {
			return reduceExceptions(f)
		}
		return reduceExpression(ctx, b, f)
	}
	switch f.Relation {
	case Compatible:
		return reduceCompatible(ctx.env, f)
	case Subtype:
		return reduceSubtype(ctx.env, f.Left, f.Right, f)
	case Supertype:
		return reduceSubtype(ctx.env, f.Right, f.Left, f)
	case Same:
		return reduceSame(ctx.env, f.Left, f.Right, f)
	case TypeArgumentContained:
		return reduceContained(ctx.env, f.Left, f.Right, f)
	}
	return unsupported(f, "unknown relation")
}
