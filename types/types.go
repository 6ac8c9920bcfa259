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

// Type is the base interface for all types.
type Type interface {
	TypeName() string
	Kind() Kind
}

func (t *Primitive) TypeName() string     { return "Primitive" }
func (t *VoidType) TypeName() string      { return "Void" }
func (t *NullType) TypeName() string      { return "Null" }
func (t *Class) TypeName() string         { return "Class" }
func (t *Parameterized) TypeName() string { return "Parameterized" }
func (t *Array) TypeName() string         { return "Array" }
func (t *Wildcard) TypeName() string      { return "Wildcard" }
func (t *Intersection) TypeName() string  { return "Intersection" }
func (t *TypeParam) TypeName() string     { return "TypeParam" }
func (t *InferenceVar) TypeName() string  { return "InferenceVar" }
func (t *Capture) TypeName() string       { return "Capture" }

func (t *Primitive) Kind() Kind     { return KindPrimitive }
func (t *VoidType) Kind() Kind      { return KindVoid }
func (t *NullType) Kind() Kind      { return KindNull }
func (t *Class) Kind() Kind         { return KindClass }
func (t *Parameterized) Kind() Kind { return KindParameterized }
func (t *Array) Kind() Kind         { return KindArray }
func (t *Wildcard) Kind() Kind      { return KindWildcard }
func (t *Intersection) Kind() Kind  { return KindIntersection }
func (t *TypeParam) Kind() Kind     { return KindTypeParam }
func (t *InferenceVar) Kind() Kind  { return KindInferenceVar }
func (t *Capture) Kind() Kind       { return KindCapture }

// Primitive type: `int` or `boolean`
type Primitive struct {
	Name string
	// widening rank; primitives of equal rank are unrelated (boolean, char)
	rank int
}

var (
	Boolean = &Primitive{Name: "boolean", rank: -1}
	Byte    = &Primitive{Name: "byte", rank: 0}
	Short   = &Primitive{Name: "short", rank: 1}
	Char    = &Primitive{Name: "char", rank: 1}
	Int     = &Primitive{Name: "int", rank: 2}
	Long    = &Primitive{Name: "long", rank: 3}
	Float   = &Primitive{Name: "float", rank: 4}
	Double  = &Primitive{Name: "double", rank: 5}
)

// Primitives lists every primitive type in declaration order.
var Primitives = []*Primitive{Boolean, Byte, Short, Char, Int, Long, Float, Double}

// PrimitiveNamed returns the primitive type with the given name, or nil.
func PrimitiveNamed(name string) *Primitive {
	for _, p := range Primitives {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Result type of methods which produce no value
type VoidType struct{}

// Type of the `null` literal
type NullType struct{}

var (
	Void = &VoidType{}
	Null = &NullType{}
)

// Class or interface declaration. A generic declaration referenced without type-arguments is a raw type.
type Class struct {
	Name       string
	Interface  bool
	TypeParams []*TypeParam
	// Direct superclass; nil for Object and for interfaces.
	Super      Type
	Interfaces []Type
	Methods    []*Method
}

// IsGeneric reports whether the declaration has type-parameters.
func (c *Class) IsGeneric() bool { return len(c.TypeParams) > 0 }

// AddMethod declares m as a member of c.
func (c *Class) AddMethod(m *Method) *Method {
	m.Declaring = c
	c.Methods = append(c.Methods, m)
	return m
}

// Parameterized type: `List<String>`
type Parameterized struct {
	Generic *Class
	Args    []Type
}

// Create a new parameterized type.
func NewParameterized(generic *Class, args ...Type) *Parameterized {
	return &Parameterized{Generic: generic, Args: args}
}

// HasWildcards reports whether any type-argument of t is a wildcard.
func (t *Parameterized) HasWildcards() bool {
	for _, arg := range t.Args {
		if _, ok := arg.(*Wildcard); ok {
			return true
		}
	}
	return false
}

// Array type: `String[]`
type Array struct {
	Elem Type
}

// Dimensions returns the number of array dimensions and the leaf component type.
func (t *Array) Dimensions() (int, Type) {
	dims := 1
	leaf := t.Elem
	for {
		a, ok := leaf.(*Array)
		if !ok {
			return dims, leaf
		}
		dims++
		leaf = a.Elem
	}
}

// WildcardKind distinguishes unbounded, upper-bounded and lower-bounded wildcards.
type WildcardKind uint8

const (
	// `?`
	Unbounded WildcardKind = iota
	// `? extends T`
	Extends
	// `? super T`
	Super
)

// Wildcard type-argument: `?`, `? extends T` or `? super T`
type Wildcard struct {
	BoundKind WildcardKind
	Bound     Type
}

// Intersection type: `A & B`
type Intersection struct {
	Bounds []Type
}

// NewIntersection flattens nested intersections and drops duplicate components. A single
// remaining component is returned as-is.
func NewIntersection(bounds ...Type) Type {
	flat := make([]Type, 0, len(bounds))
	var add func(t Type)
	add = func(t Type) {
		if it, ok := t.(*Intersection); ok {
			for _, b := range it.Bounds {
				add(b)
			}
			return
		}
		for _, existing := range flat {
			if Identical(existing, t) {
				return
			}
		}
		flat = append(flat, t)
	}
	for _, b := range bounds {
		add(b)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Intersection{Bounds: flat}
}

// Declared type-variable of a generic class or method. Type-parameters are compared by identity.
type TypeParam struct {
	Name string
	// Declared bounds; empty means `Object`.
	Bounds []Type
}

// Create a new type-parameter with the given bounds.
func NewTypeParam(name string, bounds ...Type) *TypeParam {
	return &TypeParam{Name: name, Bounds: bounds}
}

// IsReference reports whether t is a reference type (anything other than a primitive or void).
func IsReference(t Type) bool {
	switch t.(type) {
	case *Primitive, *VoidType, nil:
		return false
	}
	return true
}
