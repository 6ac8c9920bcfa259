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
	"fmt"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter(keys bool) *typePrinter {
	p := printerPool.Get().(*typePrinter)
	p.keys = keys
	return p
}

func (p *typePrinter) Release() {
	p.sb.Reset()
	p.keys = false
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
	// print identities instead of names for declarations and variables
	keys bool
}

// TypeString returns a string representation of a Type.
func TypeString(t Type) string {
	p := newTypePrinter(false)
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// Key returns a canonical string for t. Types with equal keys are identical; intersection
// components are not reordered, so `A & B` and `B & A` have distinct keys.
func Key(t Type) string {
	p := newTypePrinter(true)
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

func (p *typePrinter) identity(prefix string, ptr interface{}, name string) {
	if !p.keys {
		p.sb.WriteString(name)
		return
	}
	p.sb.WriteString(prefix)
	fmt.Fprintf(&p.sb, "%p", ptr)
}

func typeString(p *typePrinter, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Primitive:
		p.sb.WriteString(t.Name)

	case *VoidType:
		p.sb.WriteString("void")

	case *NullType:
		p.sb.WriteString("null")

	case *Class:
		p.identity("C", t, t.Name)

	case *TypeParam:
		p.identity("P", t, t.Name)

	case *InferenceVar:
		p.identity("I", t, t.Name())

	case *Capture:
		p.identity("Z", t, t.Name())

	case *Parameterized:
		p.identity("C", t.Generic, t.Generic.Name)
		p.sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, arg)
		}
		p.sb.WriteByte('>')

	case *Array:
		typeString(p, t.Elem)
		p.sb.WriteString("[]")

	case *Wildcard:
		p.sb.WriteByte('?')
		switch t.BoundKind {
		case Extends:
			p.sb.WriteString(" extends ")
			typeString(p, t.Bound)
		case Super:
			p.sb.WriteString(" super ")
			typeString(p, t.Bound)
		}

	case *Intersection:
		for i, b := range t.Bounds {
			if i > 0 {
				p.sb.WriteString(" & ")
			}
			typeString(p, b)
		}

	default:
		p.sb.WriteString("<" + t.TypeName() + ">")
	}
}

// TypeStrings formats each of ts.
func TypeStrings(ts []Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = TypeString(t)
	}
	return out
}
