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

// Recursion limit for subtype checks through bounds of type-variables and captures.
const maxSubtypeDepth = 64

// IsSubtype reports whether s is a subtype of t.
func (env *Env) IsSubtype(s, t Type) bool { return env.isSubtype(s, t, 0) }

func (env *Env) isSubtype(s, t Type, depth int) bool {
	if depth > maxSubtypeDepth {
		return false
	}
	if Identical(s, t) {
		return true
	}
	switch st := s.(type) {
	case *Primitive:
		tp, ok := t.(*Primitive)
		return ok && primitiveWidens(st, tp)
	case *VoidType, *InferenceVar, *Wildcard:
		return false
	case *NullType:
		return IsReference(t) && t.Kind() != KindWildcard
	case *Intersection:
		for _, b := range st.Bounds {
			if env.isSubtype(b, t, depth+1) {
				return true
			}
		}
		if _, ok := t.(*Intersection); !ok {
			return false
		}
	}

	switch tt := t.(type) {
	case *Primitive, *VoidType, *NullType, *InferenceVar, *Wildcard:
		return false
	case *Intersection:
		for _, b := range tt.Bounds {
			if !env.isSubtype(s, b, depth+1) {
				return false
			}
		}
		return true
	case *TypeParam:
		return env.subtypeViaBounds(s, t, depth)
	case *Capture:
		if tt.Lower != nil && env.isSubtype(s, tt.Lower, depth+1) {
			return true
		}
		return env.subtypeViaBounds(s, t, depth)
	case *Array:
		sa, ok := s.(*Array)
		if !ok {
			return env.subtypeViaBounds(s, t, depth)
		}
		if !IsReference(sa.Elem) || !IsReference(tt.Elem) {
			return Identical(sa.Elem, tt.Elem)
		}
		return env.isSubtype(sa.Elem, tt.Elem, depth+1)
	case *Class:
		if tt == env.Object {
			return true
		}
		return env.FindSupertype(s, tt) != nil
	case *Parameterized:
		sp, ok := env.FindSupertype(s, tt.Generic).(*Parameterized)
		if !ok || len(sp.Args) != len(tt.Args) {
			return false
		}
		for i := range tt.Args {
			if !env.contains(tt.Args[i], sp.Args[i], depth+1) {
				return false
			}
		}
		return true
	}
	return false
}

func (env *Env) subtypeViaBounds(s, t Type, depth int) bool {
	switch s.(type) {
	case *TypeParam, *Capture:
		for _, b := range env.Supertypes(s) {
			if env.isSubtype(b, t, depth+1) {
				return true
			}
		}
	}
	return false
}

// Contains reports whether the type-argument t contains the type-argument s (JLS 4.5.1).
func (env *Env) Contains(t, s Type) bool { return env.contains(t, s, 0) }

func (env *Env) contains(t, s Type, depth int) bool {
	tw, ok := t.(*Wildcard)
	if !ok {
		return Identical(t, s)
	}
	sw, sIsWildcard := s.(*Wildcard)
	switch tw.BoundKind {
	case Extends:
		if !sIsWildcard {
			return env.isSubtype(s, tw.Bound, depth+1)
		}
		if sw.BoundKind == Extends {
			return env.isSubtype(sw.Bound, tw.Bound, depth+1)
		}
		return env.isSubtype(env.Object, tw.Bound, depth+1)
	case Super:
		if !sIsWildcard {
			return env.isSubtype(tw.Bound, s, depth+1)
		}
		return sw.BoundKind == Super && env.isSubtype(tw.Bound, sw.Bound, depth+1)
	}
	return true
}

// primitiveWidens implements subtyping among primitive types:
// double > float > long > int > char, int > short > byte.
func primitiveWidens(s, t *Primitive) bool {
	if s == t {
		return true
	}
	if s == Boolean || t == Boolean || t == Char {
		return false
	}
	return s.rank < t.rank
}

// IsCompatible reports whether a value of type s may be passed where t is expected in a loose
// invocation context: by subtyping, boxing then subtyping, unboxing then widening, or unchecked
// conversion from a raw type.
func (env *Env) IsCompatible(s, t Type) bool {
	if env.IsSubtype(s, t) {
		return true
	}
	if sp, ok := s.(*Primitive); ok {
		if _, ok := t.(*Primitive); ok {
			return false
		}
		box := env.Box(sp)
		return box != nil && env.IsSubtype(box, t)
	}
	if tp, ok := t.(*Primitive); ok {
		p := env.Unbox(s)
		return p != nil && primitiveWidens(p, tp)
	}
	if tt, ok := t.(*Parameterized); ok {
		if _, isNull := s.(*NullType); !isNull {
			return IsRaw(env.FindSupertype(s, tt.Generic))
		}
	}
	return false
}
