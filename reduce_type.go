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
	"github.com/wdamron/jinfer/types"
)

func isProper(t types.Type) bool { return types.IsProper(t, true) }

// ‹S → T›
func reduceCompatible(env *types.Env, f *ConstraintFormula) (reduction, error) {
	s, t := f.Left, f.Right
	if isProper(s) && isProper(t) {
		return reduceBool(env.IsCompatible(s, t)), nil
	}
	if sp, ok := s.(*types.Primitive); ok {
		return reduceTo(NewTypeFormula(env.Box(sp), Compatible, t)), nil
	}
	if tp, ok := t.(*types.Primitive); ok {
		return reduceTo(NewTypeFormula(s, Same, env.Box(tp))), nil
	}
	// unchecked conversion from a raw supertype
	if tp, ok := t.(*types.Parameterized); ok {
		if _, isVar := s.(*types.InferenceVar); !isVar {
			if types.IsRaw(env.FindSupertype(s, tp.Generic)) {
				return reduceTrue, nil
			}
		}
	}
	return reduceTo(NewTypeFormula(s, Subtype, t)), nil
}

// ‹S <: T›
func reduceSubtype(env *types.Env, s, t types.Type, f *ConstraintFormula) (reduction, error) {
	if types.Identical(s, t) {
		return reduceTrue, nil
	}
	if isProper(s) && isProper(t) {
		return reduceBool(env.IsSubtype(s, t)), nil
	}
	if _, ok := s.(*types.NullType); ok {
		return reduceBool(types.IsReference(t)), nil
	}
	if v, ok := s.(*types.InferenceVar); ok {
		return reduceToBound(v, t, Subtype), nil
	}
	if v, ok := t.(*types.InferenceVar); ok {
		return reduceToBound(v, s, Supertype), nil
	}

	switch tt := t.(type) {
	case *types.Class:
		if tt == env.Object {
			return reduceBool(types.IsReference(s)), nil
		}
		return reduceBool(env.FindSupertype(s, tt) != nil), nil

	case *types.Parameterized:
		sup, ok := env.FindSupertype(s, tt.Generic).(*types.Parameterized)
		if !ok || len(sup.Args) != len(tt.Args) {
			return reduceFalse, nil
		}
		fs := make([]*ConstraintFormula, len(tt.Args))
		for i := range tt.Args {
			fs[i] = NewTypeFormula(sup.Args[i], TypeArgumentContained, tt.Args[i])
		}
		return reduceTo(fs...), nil

	case *types.Array:
		sa := arraySupertype(env, s)
		if sa == nil {
			return reduceFalse, nil
		}
		if !types.IsReference(sa.Elem) || !types.IsReference(tt.Elem) {
			return reduceBool(types.Identical(sa.Elem, tt.Elem)), nil
		}
		return reduceTo(NewTypeFormula(sa.Elem, Subtype, tt.Elem)), nil

	case *types.TypeParam:
		return reduceBool(intersectionHas(s, t)), nil

	case *types.Capture:
		if intersectionHas(s, t) {
			return reduceTrue, nil
		}
		if tt.Lower != nil {
			return reduceTo(NewTypeFormula(s, Subtype, tt.Lower)), nil
		}
		return reduceFalse, nil

	case *types.Intersection:
		fs := make([]*ConstraintFormula, len(tt.Bounds))
		for i, b := range tt.Bounds {
			fs[i] = NewTypeFormula(s, Subtype, b)
		}
		return reduceTo(fs...), nil

	case *types.Wildcard:
		if tt.BoundKind == types.Super {
			return reduceTo(NewTypeFormula(s, Subtype, tt.Bound)), nil
		}
	}
	return reduceFalse, nil
}

// arraySupertype returns the most specific array type among the supertypes of t, or nil.
func arraySupertype(env *types.Env, t types.Type) *types.Array {
	switch tt := t.(type) {
	case *types.Array:
		return tt
	case *types.TypeParam, *types.Capture, *types.Intersection:
		for _, s := range env.Supertypes(t) {
			if a := arraySupertype(env, s); a != nil {
				return a
			}
		}
	}
	return nil
}

func intersectionHas(s, t types.Type) bool {
	it, ok := s.(*types.Intersection)
	if !ok {
		return false
	}
	for _, b := range it.Bounds {
		if types.Identical(b, t) {
			return true
		}
	}
	return false
}

// ‹S = T›
func reduceSame(env *types.Env, s, t types.Type, f *ConstraintFormula) (reduction, error) {
	if types.Identical(s, t) {
		return reduceTrue, nil
	}
	sw, sIsWildcard := s.(*types.Wildcard)
	tw, tIsWildcard := t.(*types.Wildcard)
	if sIsWildcard || tIsWildcard {
		if !sIsWildcard || !tIsWildcard {
			return reduceFalse, nil
		}
		sk, sb := wildcardUpper(env, sw)
		tk, tb := wildcardUpper(env, tw)
		if sk != tk {
			return reduceFalse, nil
		}
		return reduceTo(NewTypeFormula(sb, Same, tb)), nil
	}
	if isProper(s) && isProper(t) {
		return reduceFalse, nil
	}
	if v, ok := s.(*types.InferenceVar); ok {
		if _, prim := t.(*types.Primitive); prim {
			return reduceFalse, nil
		}
		return reduceToBound(v, t, Same), nil
	}
	if v, ok := t.(*types.InferenceVar); ok {
		if _, prim := s.(*types.Primitive); prim {
			return reduceFalse, nil
		}
		return reduceToBound(v, s, Same), nil
	}

	switch st := s.(type) {
	case *types.Parameterized:
		tp, ok := t.(*types.Parameterized)
		if !ok || tp.Generic != st.Generic || len(tp.Args) != len(st.Args) {
			return reduceFalse, nil
		}
		fs := make([]*ConstraintFormula, len(st.Args))
		for i := range st.Args {
			fs[i] = NewTypeFormula(st.Args[i], Same, tp.Args[i])
		}
		return reduceTo(fs...), nil

	case *types.Array:
		ta, ok := t.(*types.Array)
		if !ok {
			return reduceFalse, nil
		}
		return reduceTo(NewTypeFormula(st.Elem, Same, ta.Elem)), nil

	case *types.Intersection:
		return unsupported(f, "equality of intersection types")
	}
	if _, ok := t.(*types.Intersection); ok {
		return unsupported(f, "equality of intersection types")
	}
	return reduceFalse, nil
}

// wildcardUpper treats `?` as `? extends Object`.
func wildcardUpper(env *types.Env, w *types.Wildcard) (types.WildcardKind, types.Type) {
	if w.BoundKind == types.Unbounded {
		return types.Extends, env.Object
	}
	return w.BoundKind, w.Bound
}

// ‹S <= T›
func reduceContained(env *types.Env, s, t types.Type, f *ConstraintFormula) (reduction, error) {
	sw, sIsWildcard := s.(*types.Wildcard)
	tw, ok := t.(*types.Wildcard)
	if !ok {
		if sIsWildcard {
			return reduceFalse, nil
		}
		return reduceTo(NewTypeFormula(s, Same, t)), nil
	}

	switch tw.BoundKind {
	case types.Unbounded:
		return reduceTrue, nil

	case types.Extends:
		if tw.Bound == types.Type(env.Object) {
			return reduceTrue, nil
		}
		if !sIsWildcard {
			return reduceTo(NewTypeFormula(s, Subtype, tw.Bound)), nil
		}
		switch sw.BoundKind {
		case types.Extends:
			return reduceTo(NewTypeFormula(sw.Bound, Subtype, tw.Bound)), nil
		case types.Super:
			return reduceTo(NewTypeFormula(env.Object, Same, tw.Bound)), nil
		}
		return reduceTo(NewTypeFormula(env.Object, Subtype, tw.Bound)), nil

	case types.Super:
		if !sIsWildcard {
			return reduceTo(NewTypeFormula(tw.Bound, Subtype, s)), nil
		}
		if sw.BoundKind == types.Super {
			return reduceTo(NewTypeFormula(tw.Bound, Subtype, sw.Bound)), nil
		}
		return reduceFalse, nil
	}
	return unsupported(f, "malformed wildcard")
}
