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

	"github.com/wdamron/jinfer/ast"
)

var (
	// ErrUnsatisfiable indicates that the constraints have no solution: the bound set reduced to FALSE.
	ErrUnsatisfiable = errors.New("inference: constraints are unsatisfiable")
	// ErrUnsupported is matched by UnsupportedConstraintError.
	ErrUnsupported = errors.New("inference: unsupported constraint")
	// ErrIncorporationLimit indicates that incorporation did not reach a fixpoint within the configured number of rounds.
	ErrIncorporationLimit = errors.New("inference: incorporation round limit exceeded")
)

// InferenceError is a hard failure mandated by the language rules (such as a void invocation used
// where a value is required). It is never an ErrUnsatisfiable.
type InferenceError struct {
	Msg  string
	Expr ast.Expr
}

func (e *InferenceError) Error() string {
	if e.Expr == nil {
		return "inference: " + e.Msg
	}
	return "inference: " + e.Msg + ": " + ast.ExprString(e.Expr)
}

// UnsupportedConstraintError marks a constraint shape which the engine does not reduce.
type UnsupportedConstraintError struct {
	Formula *ConstraintFormula
	Reason  string
}

func (e *UnsupportedConstraintError) Error() string {
	return "inference: unsupported constraint " + e.Formula.String() + ": " + e.Reason
}

func (e *UnsupportedConstraintError) Is(target error) bool { return target == ErrUnsupported }

func isLimit(err error) bool { return errors.Is(err, ErrIncorporationLimit) }

func unsupported(f *ConstraintFormula, reason string) (reduction, error) {
	return reduction{}, &UnsupportedConstraintError{Formula: f, Reason: reason}
}
