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

package types

import (
	"github.com/hashicorp/go-set/v3"
)

// classOf returns the declaration of a class or parameterized type, or nil.
func classOf(t Type) *Class {
	switch t := t.(type) {
	case *Class:
		return t
	case *Parameterized:
		return t.Generic
	}
	return nil
}

// ClassOf returns the declaration of a class or parameterized type, or nil.
func ClassOf(t Type) *Class { return classOf(t) }

// erase replaces parameterized types with their raw declaration.
func erase(t Type) Type {
	if p, ok := t.(*Parameterized); ok {
		return p.Generic
	}
	return t
}

// IsRaw reports whether t is a generic class referenced without type-arguments.
func IsRaw(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.IsGeneric()
}

// Supertypes returns the direct supertypes of t. Type-arguments of parameterized types are
// substituted into the declared supertypes; raw types have raw (erased) supertypes.
func (env *Env) Supertypes(t Type) []Type {
	switch t := t.(type) {
	case *Class:
		if t == env.Object {
			return nil
		}
		raw := t.IsGeneric()
		out := make([]Type, 0, 1+len(t.Interfaces))
		if t.Super != nil {
			out = append(out, eraseIf(raw, t.Super))
		}
		for _, iface := range t.Interfaces {
			out = append(out, eraseIf(raw, iface))
		}
		if t.Super == nil {
			out = append(out, env.Object)
		}
		return out
	case *Parameterized:
		f := ParamSubstitution(t.Generic.TypeParams, t.Args)
		decl := t.Generic
		out := make([]Type, 0, 1+len(decl.Interfaces))
		if decl.Super != nil {
			out = append(out, Substitute(decl.Super, f))
		}
		for _, iface := range decl.Interfaces {
			out = append(out, Substitute(iface, f))
		}
		if decl.Super == nil {
			out = append(out, env.Object)
		}
		return out
	case *Array:
		return []Type{env.Object, env.Cloneable, env.Serializable}
	case *TypeParam:
		if len(t.Bounds) == 0 {
			return []Type{env.Object}
		}
		return t.Bounds
	case *Capture:
		if len(t.Upper) == 0 {
			return []Type{env.Object}
		}
		return t.Upper
	case *Intersection:
		return t.Bounds
	}
	return nil
}

func eraseIf(raw bool, t Type) Type {
	if raw {
		return erase(t)
	}
	return t
}

// FindSupertype returns the supertype of t (possibly t itself) whose declaration is c, with
// type-arguments substituted along the way; nil when c is not a supertype of t.
func (env *Env) FindSupertype(t Type, c *Class) Type {
	if c == env.Object && IsReference(t) {
		if _, isNull := t.(*NullType); !isNull {
			return env.Object
		}
	}
	seen := set.New[Type](8)
	queue := []Type{t}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if classOf(u) == c {
			return u
		}
		for _, s := range env.Supertypes(u) {
			key := s
			if sc := classOf(s); sc != nil {
				key = sc
			}
			if seen.Insert(key) {
				queue = append(queue, s)
			}
		}
	}
	return nil
}

// AllSupertypes returns the reflexive, transitive closure of the direct supertype relation
// for t, in breadth-first order, with one entry per declaration.
func (env *Env) AllSupertypes(t Type) []Type {
	seen := set.New[Type](8)
	out := []Type{t}
	if sc := classOf(t); sc != nil {
		seen.Insert(sc)
	} else {
		seen.Insert(t)
	}
	for i := 0; i < len(out); i++ {
		for _, s := range env.Supertypes(out[i]) {
			key := s
			if sc := classOf(s); sc != nil {
				key = sc
			}
			if seen.Insert(key) {
				out = append(out, s)
			}
		}
	}
	return out
}
