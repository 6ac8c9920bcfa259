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

// Method or constructor signature.
type Method struct {
	Name       string
	Declaring  *Class
	TypeParams []*TypeParam
	Params     []Type
	// Void for methods which produce no value.
	Return Type
	Thrown []Type
	// The last parameter is a variable-arity array parameter.
	Varargs     bool
	Static      bool
	Abstract    bool
	Constructor bool
}

// IsGeneric reports whether the method declares type-parameters.
func (m *Method) IsGeneric() bool { return len(m.TypeParams) > 0 }

// ReturnType returns the type produced by an invocation of m. For constructors of generic
// classes this is the class parameterized by its own type-parameters.
func (m *Method) ReturnType() Type {
	if !m.Constructor {
		if m.Return == nil {
			return Void
		}
		return m.Return
	}
	c := m.Declaring
	if !c.IsGeneric() {
		return c
	}
	args := make([]Type, len(c.TypeParams))
	for i, p := range c.TypeParams {
		args[i] = p
	}
	return &Parameterized{Generic: c, Args: args}
}

// VarargsElem returns the element type of the variable-arity parameter, or nil.
func (m *Method) VarargsElem() Type {
	if !m.Varargs || len(m.Params) == 0 {
		return nil
	}
	if a, ok := m.Params[len(m.Params)-1].(*Array); ok {
		return a.Elem
	}
	return nil
}

// Substitute returns a copy of m with types substituted by f. Type-parameters of m are kept.
func (m *Method) Substitute(f func(Type) (Type, bool)) *Method {
	cp := *m
	cp.Params = make([]Type, len(m.Params))
	for i, p := range m.Params {
		cp.Params[i] = Substitute(p, f)
	}
	cp.Return = Substitute(m.ReturnType(), f)
	cp.Constructor = false
	if len(m.Thrown) > 0 {
		cp.Thrown = make([]Type, len(m.Thrown))
		for i, t := range m.Thrown {
			cp.Thrown[i] = Substitute(t, f)
		}
	}
	return &cp
}

// FunctionType returns the function type of a functional interface type: its single abstract
// method, with parameter and return types substituted for the type-arguments of t. Wildcard
// type-arguments are replaced by their non-wildcard parameterization first. The second result
// is false when t is not a functional interface.
func (env *Env) FunctionType(t Type) (*Method, bool) {
	var decl *Class
	switch tt := t.(type) {
	case *Class:
		decl = tt
	case *Parameterized:
		decl = tt.Generic
		t = nonWildcardParameterization(tt, env.Object)
	default:
		return nil, false
	}
	if !decl.Interface {
		return nil, false
	}

	var found *Method
	var owner *Class
	seen := make(map[*Class]bool)
	var walk func(c *Class) bool
	walk = func(c *Class) bool {
		if seen[c] {
			return true
		}
		seen[c] = true
		for _, m := range c.Methods {
			if !m.Abstract || m.Static || isObjectMethod(m) {
				continue
			}
			if found != nil {
				if found.Name == m.Name && len(found.Params) == len(m.Params) {
					continue // overridden in a sub-interface
				}
				return false
			}
			found, owner = m, c
		}
		for _, super := range c.Interfaces {
			if sc := classOf(super); sc != nil && !walk(sc) {
				return false
			}
		}
		return true
	}
	if !walk(decl) || found == nil {
		return nil, false
	}

	ownerType := env.FindSupertype(t, owner)
	pt, ok := ownerType.(*Parameterized)
	if !ok {
		return found.Substitute(func(Type) (Type, bool) { return nil, false }), true
	}
	return found.Substitute(ParamSubstitution(owner.TypeParams, pt.Args)), true
}

// IsFunctionalInterface reports whether t has exactly one abstract method.
func (env *Env) IsFunctionalInterface(t Type) bool {
	_, ok := env.FunctionType(t)
	return ok
}

func isObjectMethod(m *Method) bool {
	switch m.Name {
	case "equals":
		return len(m.Params) == 1
	case "hashCode", "toString":
		return len(m.Params) == 0
	}
	return false
}

// nonWildcardParameterization replaces wildcard type-arguments: `? extends B` and `? super B`
// become B, and `?` becomes the corresponding type-parameter's bound when it is proper.
func nonWildcardParameterization(t *Parameterized, object *Class) *Parameterized {
	if !t.HasWildcards() {
		return t
	}
	args := make([]Type, len(t.Args))
	for i, arg := range t.Args {
		w, ok := arg.(*Wildcard)
		if !ok {
			args[i] = arg
			continue
		}
		switch {
		case w.BoundKind != Unbounded:
			args[i] = w.Bound
		case i < len(t.Generic.TypeParams) && len(t.Generic.TypeParams[i].Bounds) == 1 &&
			!MentionsParams(t.Generic.TypeParams[i].Bounds[0], t.Generic.TypeParams):
			args[i] = t.Generic.TypeParams[i].Bounds[0]
		default:
			args[i] = object
		}
	}
	return &Parameterized{Generic: t.Generic, Args: args}
}

// InferenceParams returns the type-parameters inferred for an invocation of m. Constructors of
// generic classes (`new C<>(...)`) infer the class type-parameters ahead of their own.
func (m *Method) InferenceParams() []*TypeParam {
	if !m.Constructor || !m.Declaring.IsGeneric() {
		return m.TypeParams
	}
	params := make([]*TypeParam, 0, len(m.Declaring.TypeParams)+len(m.TypeParams))
	params = append(params, m.Declaring.TypeParams...)
	return append(params, m.TypeParams...)
}
