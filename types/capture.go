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

import "strconv"

// Capture is a fresh type-variable synthesized during inference. It carries explicit upper
// bounds (a class part and interface parts) and an optional lower bound.
type Capture struct {
	id int
	// Inference variable the capture was synthesized for, if any.
	Origin *InferenceVar
	Lower  Type
	// Class part of the upper bounds; nil when only interfaces bound the capture.
	Superclass Type
	Interfaces []Type
	// All upper bounds, class part first.
	Upper []Type
}

// Create a new capture with no bounds.
func NewCapture(id int, origin *InferenceVar) *Capture {
	return &Capture{id: id, Origin: origin}
}

// Id returns the unique identifier of the capture.
func (c *Capture) Id() int { return c.id }

// Name returns `Z#id` or `Z#id-of-T#rank` when the capture originates from an inference variable.
func (c *Capture) Name() string {
	if c.Origin == nil {
		return "Z#" + strconv.Itoa(c.id)
	}
	return "Z#" + strconv.Itoa(c.id) + "-of-" + c.Origin.Name()
}

// SetUpperBounds classifies bounds into a class part and interface parts. Intersections are
// flattened and references to c itself are dropped. With no usable bound, the upper bound is object.
func (c *Capture) SetUpperBounds(bounds []Type, object *Class) {
	c.Superclass, c.Interfaces, c.Upper = nil, nil, nil
	var flat []Type
	for _, b := range bounds {
		if it, ok := b.(*Intersection); ok {
			flat = append(flat, it.Bounds...)
			continue
		}
		flat = append(flat, b)
	}
	for _, b := range flat {
		if b == Type(c) {
			continue
		}
		if isInterfaceType(b) {
			c.Interfaces = append(c.Interfaces, b)
			continue
		}
		if c.Superclass == nil {
			c.Superclass = b
		} else {
			c.Interfaces = append(c.Interfaces, b)
		}
	}
	if c.Superclass == nil && len(c.Interfaces) == 0 {
		c.Superclass = object
	}
	if c.Superclass != nil {
		c.Upper = append(c.Upper, c.Superclass)
	}
	c.Upper = append(c.Upper, c.Interfaces...)
}

func isInterfaceType(t Type) bool {
	switch t := t.(type) {
	case *Class:
		return t.Interface
	case *Parameterized:
		return t.Generic.Interface
	}
	return false
}
