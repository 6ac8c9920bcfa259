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

// Env holds the well-known classes consulted by subtyping, boxing and bound computations, along
// with any user-declared classes.
type Env struct {
	Object           *Class
	String           *Class
	Number           *Class
	Cloneable        *Class
	Serializable     *Class
	Comparable       *Class
	Throwable        *Class
	Exception        *Class
	RuntimeException *Class

	classes map[string]*Class
	boxes   map[*Primitive]*Class
	unboxes map[*Class]*Primitive
}

// Create a new environment populated with the core language classes and primitive wrappers.
func NewEnv() *Env {
	env := &Env{
		classes: make(map[string]*Class, 32),
		boxes:   make(map[*Primitive]*Class, len(Primitives)),
		unboxes: make(map[*Class]*Primitive, len(Primitives)),
	}
	env.Object = env.Declare(&Class{Name: "Object"})
	env.Serializable = env.Declare(&Class{Name: "Serializable", Interface: true})
	env.Cloneable = env.Declare(&Class{Name: "Cloneable", Interface: true})

	cmpParam := NewTypeParam("T")
	env.Comparable = env.Declare(&Class{Name: "Comparable", Interface: true, TypeParams: []*TypeParam{cmpParam}})
	env.Comparable.AddMethod(&Method{Name: "compareTo", Params: []Type{cmpParam}, Return: Int, Abstract: true})

	env.String = env.Declare(&Class{Name: "String", Super: env.Object})
	env.String.Interfaces = []Type{env.Serializable, NewParameterized(env.Comparable, env.String)}
	env.Number = env.Declare(&Class{Name: "Number", Super: env.Object, Interfaces: []Type{env.Serializable}})

	env.Throwable = env.Declare(&Class{Name: "Throwable", Super: env.Object, Interfaces: []Type{env.Serializable}})
	env.Exception = env.Declare(&Class{Name: "Exception", Super: env.Throwable})
	env.RuntimeException = env.Declare(&Class{Name: "RuntimeException", Super: env.Exception})

	wrappers := [...]struct {
		prim    *Primitive
		name    string
		numeric bool
	}{
		{Boolean, "Boolean", false},
		{Byte, "Byte", true},
		{Short, "Short", true},
		{Char, "Character", false},
		{Int, "Integer", true},
		{Long, "Long", true},
		{Float, "Float", true},
		{Double, "Double", true},
	}
	for _, w := range wrappers {
		c := &Class{Name: w.name, Super: env.Object}
		if w.numeric {
			c.Super = env.Number
		}
		c.Interfaces = []Type{env.Serializable, NewParameterized(env.Comparable, c)}
		env.Declare(c)
		env.boxes[w.prim] = c
		env.unboxes[c] = w.prim
	}
	return env
}

// Declare adds c to the environment, replacing any class with the same name. Classes without an
// explicit superclass extend Object.
func (env *Env) Declare(c *Class) *Class {
	if c.Super == nil && !c.Interface && env.Object != nil && c != env.Object {
		c.Super = env.Object
	}
	env.classes[c.Name] = c
	return c
}

// Lookup returns the class declared with the given name, or nil.
func (env *Env) Lookup(name string) *Class { return env.classes[name] }

// Box returns the wrapper class of a primitive type.
func (env *Env) Box(p *Primitive) *Class { return env.boxes[p] }

// Unbox returns the primitive type wrapped by t, or nil when t is not a wrapper class.
func (env *Env) Unbox(t Type) *Primitive {
	if c, ok := t.(*Class); ok {
		return env.unboxes[c]
	}
	return nil
}

// IsWrapper reports whether t is the wrapper class of a primitive type.
func (env *Env) IsWrapper(t Type) bool { return env.Unbox(t) != nil }

// Boxed returns the wrapper class for primitive types, or t itself for any other type.
func (env *Env) Boxed(t Type) Type {
	if p, ok := t.(*Primitive); ok {
		if c := env.boxes[p]; c != nil {
			return c
		}
	}
	return t
}
