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
	"strconv"

	"github.com/wdamron/jinfer/types"
)

// Relation between the operands of a bound or constraint formula.
type Relation uint8

const (
	// ‹S → T›: S is compatible with T in a loose invocation context
	Compatible Relation = iota + 1
	// ‹S <: T›
	Subtype
	// ‹S :> T›
	Supertype
	// ‹S = T›
	Same
	// ‹S <= T›: type-argument S is contained by T
	TypeArgumentContained
	// ‹e ⊆throws T›
	ExceptionsContained
)

func (r Relation) String() string {
	switch r {
	case Compatible:
		return "→"
	case Subtype:
		return "<:"
	case Supertype:
		return ":>"
	case Same:
		return "="
	case TypeArgumentContained:
		return "<="
	case ExceptionsContained:
		return "⊆throws"
	}
	return "?" + strconv.Itoa(int(r))
}

// TypeBound relates an inference variable to a type: `α = T`, `α <: T` or `T <: α`
// (Relation Same, Subtype or Supertype). A Same bound with a proper type is an instantiation.
type TypeBound struct {
	Var      *types.InferenceVar
	Type     types.Type
	Relation Relation
	proper   bool
}

// Create a new bound. Relation must be Same, Subtype or Supertype.
func NewTypeBound(v *types.InferenceVar, t types.Type, rel Relation) TypeBound {
	return TypeBound{Var: v, Type: t, Relation: rel, proper: types.IsProper(t, true)}
}

// IsProper reports whether the bound's type mentions no inference variable.
func (b TypeBound) IsProper() bool { return b.proper }

// IsInstantiation reports whether b fixes its variable to a proper type.
func (b TypeBound) IsInstantiation() bool { return b.Relation == Same && b.proper }

func (b TypeBound) key() string {
	return strconv.Itoa(b.Var.Id()) + b.Relation.String() + types.Key(b.Type)
}

func (b TypeBound) String() string {
	if b.Relation == Supertype {
		return types.TypeString(b.Type) + " <: " + b.Var.Name()
	}
	return b.Var.Name() + " " + b.Relation.String() + " " + types.TypeString(b.Type)
}
