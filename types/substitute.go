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

// Substitute replaces leaf variables within t. f is invoked for each type-parameter, inference
// variable and capture; it returns the replacement and true, or false to keep the leaf. Types
// are rebuilt only where a replacement occurred, so an unchanged t is returned as-is.
func Substitute(t Type, f func(Type) (Type, bool)) Type {
	switch tt := t.(type) {
	case *TypeParam, *InferenceVar, *Capture:
		if u, ok := f(t); ok {
			return u
		}
		return t
	case *Parameterized:
		var args []Type
		for i, arg := range tt.Args {
			sub := Substitute(arg, f)
			if sub != arg && args == nil {
				args = make([]Type, len(tt.Args))
				copy(args, tt.Args[:i])
			}
			if args != nil {
				args[i] = sub
			}
		}
		if args == nil {
			return t
		}
		return &Parameterized{Generic: tt.Generic, Args: args}
	case *Array:
		elem := Substitute(tt.Elem, f)
		if elem == tt.Elem {
			return t
		}
		return &Array{Elem: elem}
	case *Wildcard:
		if tt.Bound == nil {
			return t
		}
		bound := Substitute(tt.Bound, f)
		if bound == tt.Bound {
			return t
		}
		return &Wildcard{BoundKind: tt.BoundKind, Bound: bound}
	case *Intersection:
		var bounds []Type
		for i, b := range tt.Bounds {
			sub := Substitute(b, f)
			if sub != b && bounds == nil {
				bounds = make([]Type, len(tt.Bounds))
				copy(bounds, tt.Bounds[:i])
			}
			if bounds != nil {
				bounds[i] = sub
			}
		}
		if bounds == nil {
			return t
		}
		return NewIntersection(bounds...)
	}
	return t
}

// ParamSubstitution maps each type-parameter in params to the type at the same index in args.
func ParamSubstitution(params []*TypeParam, args []Type) func(Type) (Type, bool) {
	return func(t Type) (Type, bool) {
		if p, ok := t.(*TypeParam); ok {
			for i, q := range params {
				if p == q && i < len(args) {
					return args[i], true
				}
			}
		}
		return nil, false
	}
}

// SubstituteParams replaces type-parameters in t with the type-arguments at the same index.
func SubstituteParams(t Type, params []*TypeParam, args []Type) Type {
	if len(params) == 0 {
		return t
	}
	return Substitute(t, ParamSubstitution(params, args))
}

// SubstituteVar replaces the inference variable v in t with u.
func SubstituteVar(t Type, v *InferenceVar, u Type) Type {
	return Substitute(t, func(leaf Type) (Type, bool) {
		if leaf == Type(v) {
			return u, true
		}
		return nil, false
	})
}

// Visit calls f for t and each type nested within t, depth-first. Returning false from f stops
// the traversal below the current type. Capture bounds are not traversed.
func Visit(t Type, f func(Type) bool) {
	if t == nil || !f(t) {
		return
	}
	switch tt := t.(type) {
	case *Parameterized:
		for _, arg := range tt.Args {
			Visit(arg, f)
		}
	case *Array:
		Visit(tt.Elem, f)
	case *Wildcard:
		if tt.Bound != nil {
			Visit(tt.Bound, f)
		}
	case *Intersection:
		for _, b := range tt.Bounds {
			Visit(b, f)
		}
	}
}

// Mentions reports whether the leaf variable v occurs anywhere within t.
func Mentions(t, v Type) bool {
	found := false
	Visit(t, func(u Type) bool {
		if u == v {
			found = true
		}
		return !found
	})
	return found
}

// MentionsParams reports whether any of params occur within t.
func MentionsParams(t Type, params []*TypeParam) bool {
	found := false
	Visit(t, func(u Type) bool {
		if p, ok := u.(*TypeParam); ok {
			for _, q := range params {
				if p == q {
					found = true
				}
			}
		}
		return !found
	})
	return found
}

// InferenceVars returns the distinct inference variables mentioned by t, in order of first occurrence.
func InferenceVars(t Type) []*InferenceVar {
	var vars []*InferenceVar
	Visit(t, func(u Type) bool {
		if v, ok := u.(*InferenceVar); ok {
			for _, w := range vars {
				if w == v {
					return true
				}
			}
			vars = append(vars, v)
		}
		return true
	})
	return vars
}

// IsProper reports whether t mentions no inference variable. Captures are proper only when
// admitCapture is set: they stand in for still-unknown types until assigned as an instantiation.
func IsProper(t Type, admitCapture bool) bool {
	proper := true
	Visit(t, func(u Type) bool {
		switch u.(type) {
		case *InferenceVar:
			proper = false
		case *Capture:
			proper = proper && admitCapture
		}
		return proper
	})
	return proper
}
