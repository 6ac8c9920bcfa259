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

// Package problem loads inference problems from YAML files: class and method declarations, and a
// list of invocations whose type-arguments are to be inferred.
package problem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/jinfer/ast"
	"github.com/wdamron/jinfer/construct"
	"github.com/wdamron/jinfer/types"
)

// File is the YAML representation of a problem file.
type File struct {
	Classes []ClassDecl  `yaml:"classes"`
	Methods []MethodDecl `yaml:"methods"`
	Solve   []Invocation `yaml:"solve"`
	Options Options      `yaml:"options"`
}

// ClassDecl declares a class or interface. Params are type-parameter declarations such as
// `T extends Comparable<T>`.
type ClassDecl struct {
	Name       string       `yaml:"name"`
	Interface  bool         `yaml:"interface"`
	Params     []string     `yaml:"params"`
	Super      string       `yaml:"super"`
	Interfaces []string     `yaml:"interfaces"`
	Methods    []MethodDecl `yaml:"methods"`
}

// MethodDecl declares a method. Top-level methods are static unless Instance is set; methods
// declared within a class are abstract instance methods. Constructors name their class.
type MethodDecl struct {
	Name        string   `yaml:"name"`
	Class       string   `yaml:"class"`
	Constructor bool     `yaml:"constructor"`
	Instance    bool     `yaml:"instance"`
	Params      []string `yaml:"params"`
	Formals     []string `yaml:"formals"`
	Varargs     bool     `yaml:"varargs"`
	Returns     string   `yaml:"returns"`
	Throws      []string `yaml:"throws"`
}

// Invocation names a declared method, its arguments and the expected type of the invocation.
// Expect, when set, is compared with the printed outcome.
type Invocation struct {
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
	Args   []Arg  `yaml:"args"`
	Target string `yaml:"target"`
	Expect string `yaml:"expect"`
}

// Arg is an argument expression. Exactly one field should be set.
type Arg struct {
	Type   string     `yaml:"type,omitempty"`
	Cond   *CondArg   `yaml:"cond,omitempty"`
	Lambda *LambdaArg `yaml:"lambda,omitempty"`
	Call   *CallArg   `yaml:"call,omitempty"`
	Ref    *RefArg    `yaml:"ref,omitempty"`
}

// CondArg is a conditional expression `c ? then : else`.
type CondArg struct {
	Then Arg `yaml:"then"`
	Else Arg `yaml:"else"`
}

// LambdaArg is a lambda expression. Params are `x` or `Type x`. A lambda with Block set has a
// block body with one return statement per result (an empty result list is a void block).
type LambdaArg struct {
	Params            []string `yaml:"params"`
	Results           []Arg    `yaml:"results"`
	Block             bool     `yaml:"block"`
	CompletesNormally bool     `yaml:"completes_normally"`
}

// CallArg is a nested invocation.
type CallArg struct {
	Method   string   `yaml:"method"`
	Args     []Arg    `yaml:"args"`
	TypeArgs []string `yaml:"type_args"`
}

// RefArg is a method reference `Qualifier::Name`, or `expr::Name` when Receiver is set.
// Candidates are the declared methods named Name, both top-level and within the qualifier.
type RefArg struct {
	Qualifier string   `yaml:"qualifier"`
	Receiver  bool     `yaml:"receiver"`
	Name      string   `yaml:"name"`
	TypeArgs  []string `yaml:"type_args"`
}

// Options configure each inference context created for the problem.
type Options struct {
	MaxRounds       int   `yaml:"max_rounds"`
	CaptureFallback *bool `yaml:"capture_fallback"`
}

// Problem is a loaded problem file with its declarations resolved.
type Problem struct {
	Env         *types.Env
	Invocations []*Call
	Options     Options

	scope   *Scope
	methods map[string][]*types.Method
}

// Call is a resolved invocation.
type Call struct {
	Name   string
	Method *types.Method
	Args   []ast.Expr
	Target types.Type
	Expect string
}

var (
	ErrUnknownMethod   = errors.New("problem: unknown method")
	ErrAmbiguousMethod = errors.New("problem: ambiguous method")
	ErrMalformedArg    = errors.New("problem: malformed argument")
)

// Load reads a problem file from r. Unknown fields are rejected.
func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("problem: decode: %w", err)
	}
	return &f, nil
}

// LoadFile reads and resolves the problem file at path.
func LoadFile(path string) (*Problem, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	f, err := Load(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Build resolves the declarations and invocations of f within a fresh environment.
func (f *File) Build() (*Problem, error) {
	env := types.NewEnv()
	p := &Problem{
		Env:     env,
		Options: f.Options,
		scope:   &Scope{Env: env},
		methods: make(map[string][]*types.Method),
	}

	// Names first, so declarations may refer to each other in any order.
	classes := make([]*types.Class, len(f.Classes))
	for i, decl := range f.Classes {
		if decl.Name == "" {
			return nil, fmt.Errorf("problem: class %d has no name", i)
		}
		classes[i] = env.Declare(&types.Class{Name: decl.Name, Interface: decl.Interface})
	}
	scopes := make([]*Scope, len(f.Classes))
	for i, decl := range f.Classes {
		params, inner, err := p.scope.ParseTypeParams(decl.Params)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", decl.Name, err)
		}
		classes[i].TypeParams = params
		scopes[i] = inner
	}
	for i, decl := range f.Classes {
		c, sc := classes[i], scopes[i]
		if decl.Super != "" {
			super, err := sc.ParseType(decl.Super)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", decl.Name, err)
			}
			c.Super = super
		}
		ifaces, err := sc.ParseTypes(decl.Interfaces)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", decl.Name, err)
		}
		c.Interfaces = ifaces
		for _, md := range decl.Methods {
			m, err := p.method(sc, md)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", decl.Name, err)
			}
			m.Static, m.Abstract = false, true
			c.AddMethod(m)
		}
	}

	for _, md := range f.Methods {
		sc := p.scope
		var owner *types.Class
		if md.Class != "" {
			if owner = env.Lookup(md.Class); owner == nil {
				return nil, fmt.Errorf("method %s: unknown class %s", md.Name, md.Class)
			}
			sc = sc.NewScope(owner.TypeParams...)
		}
		m, err := p.method(sc, md)
		if err != nil {
			return nil, err
		}
		if md.Constructor {
			if owner == nil {
				return nil, fmt.Errorf("method %s: constructor without a class", md.Name)
			}
			m.Constructor, m.Static, m.Return = true, false, nil
			if m.Name == "" {
				m.Name = "new " + owner.Name
			}
		}
		if owner != nil {
			owner.AddMethod(m)
		}
		p.methods[m.Name] = append(p.methods[m.Name], m)
	}

	for i, inv := range f.Solve {
		call, err := p.call(inv, i)
		if err != nil {
			return nil, err
		}
		p.Invocations = append(p.Invocations, call)
	}
	return p, nil
}

func (p *Problem) method(sc *Scope, md MethodDecl) (*types.Method, error) {
	if md.Name == "" && !md.Constructor {
		return nil, fmt.Errorf("problem: method has no name")
	}
	params, inner, err := sc.ParseTypeParams(md.Params)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", md.Name, err)
	}
	formals, err := inner.ParseTypes(md.Formals)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", md.Name, err)
	}
	var ret types.Type = types.Void
	if md.Returns != "" {
		if ret, err = inner.ParseType(md.Returns); err != nil {
			return nil, fmt.Errorf("method %s: %w", md.Name, err)
		}
	}
	thrown, err := inner.ParseTypes(md.Throws)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", md.Name, err)
	}
	if md.Varargs {
		if n := len(formals); n == 0 {
			return nil, fmt.Errorf("method %s: varargs without parameters", md.Name)
		} else if _, ok := formals[n-1].(*types.Array); !ok {
			return nil, fmt.Errorf("method %s: variable-arity parameter is not an array", md.Name)
		}
	}
	return &types.Method{
		Name:       md.Name,
		TypeParams: params,
		Params:     formals,
		Return:     ret,
		Thrown:     thrown,
		Varargs:    md.Varargs,
		Static:     !md.Instance,
	}, nil
}

func (p *Problem) lookupMethod(name string) (*types.Method, error) {
	switch ms := p.methods[name]; len(ms) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	case 1:
		return ms[0], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguousMethod, name)
}

func (p *Problem) call(inv Invocation, i int) (*Call, error) {
	m, err := p.lookupMethod(inv.Method)
	if err != nil {
		return nil, err
	}
	call := &Call{Name: inv.Name, Method: m, Expect: strings.TrimSpace(inv.Expect)}
	if call.Name == "" {
		call.Name = fmt.Sprintf("%s#%d", inv.Method, i)
	}
	if call.Args, err = p.args(inv.Args); err != nil {
		return nil, fmt.Errorf("%s: %w", call.Name, err)
	}
	if inv.Target != "" {
		if call.Target, err = p.scope.ParseType(inv.Target); err != nil {
			return nil, fmt.Errorf("%s: %w", call.Name, err)
		}
	}
	return call, nil
}

func (p *Problem) args(args []Arg) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(args))
	for i, a := range args {
		e, err := p.arg(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

func (p *Problem) arg(a Arg) (ast.Expr, error) {
	switch {
	case a.Type != "":
		t, err := p.scope.ParseType(a.Type)
		if err != nil {
			return nil, err
		}
		return construct.Lit(types.TypeString(t), t), nil

	case a.Cond != nil:
		then, err := p.arg(a.Cond.Then)
		if err != nil {
			return nil, err
		}
		els, err := p.arg(a.Cond.Else)
		if err != nil {
			return nil, err
		}
		return construct.Cond(construct.Lit("c", types.Boolean), then, els), nil

	case a.Lambda != nil:
		return p.lambda(a.Lambda)

	case a.Call != nil:
		m, err := p.lookupMethod(a.Call.Method)
		if err != nil {
			return nil, err
		}
		args, err := p.args(a.Call.Args)
		if err != nil {
			return nil, err
		}
		e := construct.Call(m, args...)
		if e.TypeArgs, err = p.scope.ParseTypes(a.Call.TypeArgs); err != nil {
			return nil, err
		}
		if len(e.TypeArgs) == 0 {
			e.TypeArgs = nil
		}
		return e, nil

	case a.Ref != nil:
		return p.ref(a.Ref)
	}
	return nil, ErrMalformedArg
}

func (p *Problem) lambda(la *LambdaArg) (ast.Expr, error) {
	params := make([]ast.LambdaParam, len(la.Params))
	for i, decl := range la.Params {
		fields := strings.Fields(decl)
		switch len(fields) {
		case 1:
			params[i] = ast.LambdaParam{Name: fields[0]}
		case 2:
			t, err := p.scope.ParseType(fields[0])
			if err != nil {
				return nil, err
			}
			params[i] = construct.Param(fields[1], t)
		default:
			return nil, fmt.Errorf("%w: lambda parameter %q", ErrMalformedArg, decl)
		}
	}
	results, err := p.args(la.Results)
	if err != nil {
		return nil, err
	}
	if la.Block {
		return construct.BlockLambda(params, la.CompletesNormally, results...), nil
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("%w: expression lambda with %d results", ErrMalformedArg, len(results))
	}
	return &ast.Lambda{Params: params, Body: results[0]}, nil
}

func (p *Problem) ref(ra *RefArg) (ast.Expr, error) {
	qualifier, err := p.scope.ParseType(ra.Qualifier)
	if err != nil {
		return nil, err
	}
	candidates := append([]*types.Method(nil), p.methods[ra.Name]...)
	if c, ok := qualifier.(*types.Class); ok {
		for _, m := range c.Methods {
			if m.Name == ra.Name && !containsMethod(candidates, m) {
				candidates = append(candidates, m)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s::%s", ErrUnknownMethod, ra.Qualifier, ra.Name)
	}
	var e *ast.MethodRef
	if ra.Receiver {
		e = construct.ExprRef(qualifier, ra.Name, candidates...)
	} else {
		e = construct.TypeRef(qualifier, ra.Name, candidates...)
	}
	if e.TypeArgs, err = p.scope.ParseTypes(ra.TypeArgs); err != nil {
		return nil, err
	}
	if len(e.TypeArgs) == 0 {
		e.TypeArgs = nil
	}
	return e, nil
}

func containsMethod(ms []*types.Method, m *types.Method) bool {
	for _, n := range ms {
		if n == m {
			return true
		}
	}
	return false
}
