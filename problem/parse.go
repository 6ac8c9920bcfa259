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
	"fmt"
	"strings"

	"github.com/wdamron/jinfer/types"
)

// Scope resolves names within type expressions: type-parameters in scope shadow declared classes.
type Scope struct {
	Env    *types.Env
	Params map[string]*types.TypeParam
	Outer  *Scope
}

// NewScope returns a scope nested within s binding params.
func (s *Scope) NewScope(params ...*types.TypeParam) *Scope {
	inner := &Scope{Env: s.Env, Params: make(map[string]*types.TypeParam, len(params)), Outer: s}
	for _, p := range params {
		inner.Params[p.Name] = p
	}
	return inner
}

func (s *Scope) lookup(name string) types.Type {
	for sc := s; sc != nil; sc = sc.Outer {
		if p, ok := sc.Params[name]; ok {
			return p
		}
	}
	switch name {
	case "void":
		return types.Void
	case "null":
		return types.Null
	}
	for _, p := range types.Primitives {
		if p.Name == name {
			return p
		}
	}
	if c := s.Env.Lookup(name); c != nil {
		return c
	}
	return nil
}

// SyntaxError is returned for malformed type expressions.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("type %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// ParseType parses a type expression:
//
//	type     = primary { "&" primary }
//	primary  = "?" [ ("extends" | "super") element ] | element
//	element  = name [ "<" type { "," type } ">" ] { "[]" }
func (s *Scope) ParseType(input string) (types.Type, error) {
	p := &typeParser{scope: s, input: input}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q", p.tok)
	}
	return t, nil
}

// ParseTypes parses each of inputs.
func (s *Scope) ParseTypes(inputs []string) ([]types.Type, error) {
	out := make([]types.Type, len(inputs))
	for i, input := range inputs {
		t, err := s.ParseType(input)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// ParseTypeParams parses declarations of the form `T` or `T extends A & B`. Every parameter is
// in scope within the bounds of every other, so `T extends Comparable<T>` is accepted.
func (s *Scope) ParseTypeParams(decls []string) ([]*types.TypeParam, *Scope, error) {
	params := make([]*types.TypeParam, len(decls))
	bounds := make([]string, len(decls))
	for i, decl := range decls {
		name, bound, _ := strings.Cut(strings.TrimSpace(decl), " extends ")
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, "<>[]?&, ") {
			return nil, nil, &SyntaxError{Input: decl, Msg: "malformed type-parameter"}
		}
		params[i] = types.NewTypeParam(name)
		bounds[i] = bound
	}
	inner := s.NewScope(params...)
	for i, bound := range bounds {
		if strings.TrimSpace(bound) == "" {
			continue
		}
		t, err := inner.ParseType(bound)
		if err != nil {
			return nil, nil, err
		}
		if it, ok := t.(*types.Intersection); ok {
			params[i].Bounds = it.Bounds
		} else {
			params[i].Bounds = []types.Type{t}
		}
	}
	return params, inner, nil
}

type typeParser struct {
	scope *Scope
	input string
	pos   int
	// Current token and its offset; tok is empty at the end of input.
	tok    string
	tokPos int
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Input: p.input, Offset: p.tokPos, Msg: fmt.Sprintf(format, args...)}
}

func isNameByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (p *typeParser) next() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
	p.tokPos = p.pos
	if p.pos >= len(p.input) {
		p.tok = ""
		return
	}
	start := p.pos
	switch c := p.input[p.pos]; {
	case isNameByte(c):
		for p.pos < len(p.input) && isNameByte(p.input[p.pos]) {
			p.pos++
		}
	case c == '[' && p.pos+1 < len(p.input) && p.input[p.pos+1] == ']':
		p.pos += 2
	default:
		p.pos++
	}
	p.tok = p.input[start:p.pos]
}

func (p *typeParser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q, found end of input", tok)
		}
		return p.errorf("expected %q, found %q", tok, p.tok)
	}
	p.next()
	return nil
}

func (p *typeParser) parseType() (types.Type, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok != "&" {
		return first, nil
	}
	bounds := []types.Type{first}
	for p.tok == "&" {
		p.next()
		t, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, t)
	}
	return types.NewIntersection(bounds...), nil
}

func (p *typeParser) parsePrimary() (types.Type, error) {
	if p.tok != "?" {
		return p.parseElement()
	}
	p.next()
	var kind types.WildcardKind
	switch p.tok {
	case "extends":
		kind = types.Extends
	case "super":
		kind = types.Super
	default:
		return &types.Wildcard{BoundKind: types.Unbounded}, nil
	}
	p.next()
	bound, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	return &types.Wildcard{BoundKind: kind, Bound: bound}, nil
}

func (p *typeParser) parseElement() (types.Type, error) {
	if p.tok == "" || !isNameByte(p.tok[0]) {
		if p.tok == "" {
			return nil, p.errorf("expected a type, found end of input")
		}
		return nil, p.errorf("expected a type, found %q", p.tok)
	}
	name := p.tok
	t := p.scope.lookup(name)
	if t == nil {
		return nil, p.errorf("unknown type %s", name)
	}
	p.next()

	if p.tok == "<" {
		c, ok := t.(*types.Class)
		if !ok || !c.IsGeneric() {
			return nil, p.errorf("%s is not generic", name)
		}
		p.next()
		var args []types.Type
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok != "," {
				break
			}
			p.next()
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		if len(args) != len(c.TypeParams) {
			return nil, p.errorf("%s expects %d type-arguments, found %d", name, len(c.TypeParams), len(args))
		}
		t = types.NewParameterized(c, args...)
	}

	for p.tok == "[]" {
		if _, ok := t.(*types.VoidType); ok {
			return nil, p.errorf("array of void")
		}
		p.next()
		t = &types.Array{Elem: t}
	}
	return t, nil
}
