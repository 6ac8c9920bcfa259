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

package problem

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/wdamron/jinfer"
	"github.com/wdamron/jinfer/types"
)

// Outcome classifies the result of an invocation.
type Outcome uint8

const (
	Solved Outcome = iota
	Unsatisfiable
	Unsupported
	IncorporationLimit
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Unsatisfiable:
		return "unsatisfiable"
	case Unsupported:
		return "unsupported"
	case IncorporationLimit:
		return "incorporation limit"
	}
	return "error"
}

// Classify maps an inference error onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Solved
	case errors.Is(err, jinfer.ErrUnsatisfiable):
		return Unsatisfiable
	case errors.Is(err, jinfer.ErrUnsupported):
		return Unsupported
	case errors.Is(err, jinfer.ErrIncorporationLimit):
		return IncorporationLimit
	}
	return Failed
}

// Result of inferring the type-arguments of one invocation.
type Result struct {
	Call    *Call
	Vars    []*types.InferenceVar
	Types   []types.Type
	Outcome Outcome
	Err     error
	Stats   jinfer.Stats
	// Final bound set: resolved on success, as far as inference progressed otherwise.
	Bounds *jinfer.BoundSet
}

// Summary prints the instantiations (`T := String, U := Integer`) or the outcome.
func (r *Result) Summary() string {
	if r.Outcome != Solved {
		return r.Outcome.String()
	}
	parts := make([]string, len(r.Types))
	for i, t := range r.Types {
		parts[i] = r.Vars[i].Param.Name + " := " + types.TypeString(t)
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether the summary agrees with the expected outcome of the call, if any.
func (r *Result) Matches() bool {
	return r.Call.Expect == "" || r.Call.Expect == r.Summary()
}

func (r *Result) String() string {
	var sb strings.Builder
	sb.WriteString(r.Call.Name)
	sb.WriteString(": ")
	if r.Outcome != Solved {
		sb.WriteString(r.Outcome.String())
		sb.WriteString(": ")
		sb.WriteString(r.Err.Error())
		return sb.String()
	}
	for i, t := range r.Types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.Vars[i].Name())
		sb.WriteString(" := ")
		sb.WriteString(types.TypeString(t))
	}
	return sb.String()
}

// Solve infers each invocation of p in a fresh context configured by p.Options.
func (p *Problem) Solve(logger *slog.Logger) []*Result {
	results := make([]*Result, len(p.Invocations))
	for i, call := range p.Invocations {
		results[i] = p.SolveCall(call, logger)
	}
	return results
}

// SolveCall infers the type-arguments of call.
func (p *Problem) SolveCall(call *Call, logger *slog.Logger) *Result {
	ctx := jinfer.NewContext(p.Env, call.Args...)
	if logger != nil {
		ctx.SetLogger(logger.With("call", call.Name))
	}
	if p.Options.MaxRounds > 0 {
		ctx.SetMaxIncorporationRounds(p.Options.MaxRounds)
	}
	if p.Options.CaptureFallback != nil {
		ctx.EnableCaptureFallback(*p.Options.CaptureFallback)
	}

	ts, err := ctx.InferInvocation(call.Method, call.Target)
	r := &Result{
		Call:    call,
		Types:   ts,
		Outcome: Classify(err),
		Err:     err,
		Stats:   ctx.Stats(),
		Bounds:  ctx.Bounds(),
	}
	if vars := ctx.Variables(); len(vars) >= len(ts) {
		r.Vars = vars[:len(ts)]
	}
	return r
}
