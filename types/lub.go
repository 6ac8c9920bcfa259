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

// Nesting limit for least containing type-arguments; deeper arguments become `?`.
const maxLubDepth = 2

// LUB returns the least upper bound of ts (JLS 4.10.4). Primitive types are boxed and null
// types are ignored. It returns nil when ts is empty or mentions void.
func (env *Env) LUB(ts ...Type) Type { return env.lub(ts, 0) }

func (env *Env) lub(ts []Type, depth int) Type {
	us := make([]Type, 0, len(ts))
	sawNull := false
next:
	for _, t := range ts {
		switch t.(type) {
		case *NullType:
			sawNull = true
			continue
		case *VoidType, nil:
			return nil
		}
		t = env.Boxed(t)
		for _, u := range us {
			if Identical(u, t) {
				continue next
			}
		}
		us = append(us, t)
	}
	switch len(us) {
	case 0:
		if sawNull {
			return Null
		}
		return nil
	case 1:
		return us[0]
	}

	for _, candidate := range us {
		all := true
		for _, u := range us {
			if !env.IsSubtype(u, candidate) {
				all = false
				break
			}
		}
		if all {
			return candidate
		}
	}

	if elems, ok := referenceArrayElems(us); ok {
		if elem := env.lub(elems, depth); elem != nil {
			return &Array{Elem: elem}
		}
	}

	// Erased candidate set: declarations which are supertypes of every u.
	var ec []*Class
	for _, s := range env.AllSupertypes(us[0]) {
		c := classOf(s)
		if c == nil {
			continue
		}
		shared := true
		for _, u := range us[1:] {
			if env.FindSupertype(u, c) == nil {
				shared = false
				break
			}
		}
		if shared {
			ec = append(ec, c)
		}
	}

	// Minimal erased candidates.
	var classes, interfaces []Type
	for _, c := range ec {
		minimal := true
		for _, d := range ec {
			if d != c && env.FindSupertype(d, c) != nil {
				minimal = false
				break
			}
		}
		if !minimal {
			continue
		}
		var m Type = c
		if c.IsGeneric() {
			m = env.leastContainingParameterization(c, us, depth)
		}
		if c.Interface {
			interfaces = append(interfaces, m)
		} else {
			classes = append(classes, m)
		}
	}
	bounds := append(classes, interfaces...)
	if len(bounds) == 0 {
		return env.Object
	}
	return NewIntersection(bounds...)
}

func referenceArrayElems(us []Type) ([]Type, bool) {
	elems := make([]Type, len(us))
	for i, u := range us {
		a, ok := u.(*Array)
		if !ok || !IsReference(a.Elem) {
			return nil, false
		}
		elems[i] = a.Elem
	}
	return elems, true
}

func (env *Env) leastContainingParameterization(c *Class, us []Type, depth int) Type {
	var result *Parameterized
	for _, u := range us {
		p, ok := env.FindSupertype(u, c).(*Parameterized)
		if !ok {
			return c // a raw relevant parameterization makes the candidate raw
		}
		if result == nil {
			result = p
			continue
		}
		args := make([]Type, len(p.Args))
		for i := range p.Args {
			args[i] = env.leastContainingTypeArg(result.Args[i], p.Args[i], depth)
		}
		result = &Parameterized{Generic: c, Args: args}
	}
	return result
}

func (env *Env) leastContainingTypeArg(u, v Type, depth int) Type {
	if Identical(u, v) {
		return u
	}
	if depth+1 > maxLubDepth {
		return &Wildcard{BoundKind: Unbounded}
	}
	uw, uIsWildcard := u.(*Wildcard)
	vw, vIsWildcard := v.(*Wildcard)
	if uIsWildcard && !vIsWildcard {
		uw, vw, u, v = vw, uw, v, u
		uIsWildcard, vIsWildcard = false, true
	}
	switch {
	case !uIsWildcard && !vIsWildcard:
		return env.extendsLub(depth, u, v)
	case !uIsWildcard:
		switch vw.BoundKind {
		case Extends:
			return env.extendsLub(depth, u, vw.Bound)
		case Super:
			if glb := env.GLB(u, vw.Bound); glb != nil {
				return &Wildcard{BoundKind: Super, Bound: glb}
			}
		}
	case uw.BoundKind == Extends && vw.BoundKind == Extends:
		return env.extendsLub(depth, uw.Bound, vw.Bound)
	case uw.BoundKind == Super && vw.BoundKind == Super:
		if glb := env.GLB(uw.Bound, vw.Bound); glb != nil {
			return &Wildcard{BoundKind: Super, Bound: glb}
		}
	case uw.BoundKind != Unbounded && vw.BoundKind != Unbounded && Identical(uw.Bound, vw.Bound):
		return uw.Bound
	}
	return &Wildcard{BoundKind: Unbounded}
}

func (env *Env) extendsLub(depth int, ts ...Type) Type {
	bound := env.lub(ts, depth+1)
	if bound == nil || bound == Type(env.Object) {
		return &Wildcard{BoundKind: Unbounded}
	}
	return &Wildcard{BoundKind: Extends, Bound: bound}
}

// GLB returns the greatest lower bound of ts (JLS 5.1.10). Types which are supertypes of other
// members are dropped; several remaining types form an intersection, class types first. It
// returns nil when ts is empty or when two remaining types are unrelated classes.
func (env *Env) GLB(ts ...Type) Type {
	var flat []Type
	for _, t := range ts {
		if it, ok := t.(*Intersection); ok {
			flat = append(flat, it.Bounds...)
			continue
		}
		flat = append(flat, t)
	}
	var kept []Type
	for i, t := range flat {
		redundant := false
		for j, u := range flat {
			if i == j || !env.IsSubtype(u, t) {
				continue
			}
			if !env.IsSubtype(t, u) || j < i {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, t)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	var classes, rest []Type
	for _, t := range kept {
		switch tt := t.(type) {
		case *Class:
			if !tt.Interface {
				classes = append(classes, t)
				continue
			}
		case *Parameterized:
			if !tt.Generic.Interface {
				classes = append(classes, t)
				continue
			}
		case *Array:
			classes = append(classes, t)
			continue
		}
		rest = append(rest, t)
	}
	if len(classes) > 1 {
		return nil
	}
	return NewIntersection(append(classes, rest...)...)
}
