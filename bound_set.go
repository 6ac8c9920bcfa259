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
	"sort"
	"strconv"
	"strings"

	"github.com/benbjohnson/immutable"

	"github.com/wdamron/jinfer/internal/typeutil"
	"github.com/wdamron/jinfer/types"
)

// BoundSet accumulates bounds on inference variables, the expression constraints which could not
// be reduced yet, and a marker for unsatisfiability (the pseudo-bound FALSE).
//
// Bounds are stored in an append-only arena; each variable indexes its supertype, same and
// subtype bounds by arena slot. All storage is persistent, so Copy is a constant-time clone and
// a copy never observes bounds added to the original (or the reverse).
type BoundSet struct {
	arena *immutable.List[TypeBound]
	// bound key -> arena slot
	index *immutable.Map[string, int]
	// variable rank -> bound slots
	vars *immutable.SortedMap[int, threeSets]
	// variable rank -> proper type
	instantiations *immutable.SortedMap[int, types.Type]
	deferred       *immutable.List[deferredConstraint]
	// ranks of variables with a `throws α` bound
	throws immutable.SortedSet[int]
	// arena slots below this have been paired with every other slot below it
	incorporated int
	isFalse      bool
}

// Bound slots of one variable, by relation.
type threeSets struct {
	super, same, sub immutable.SortedSet[int]
}

func newThreeSets() threeSets {
	return threeSets{
		super: immutable.NewSortedSet[int](nil),
		same:  immutable.NewSortedSet[int](nil),
		sub:   immutable.NewSortedSet[int](nil),
	}
}

// Create a new, empty (TRUE) bound set.
func NewBoundSet() *BoundSet {
	return &BoundSet{
		arena:          immutable.NewList[TypeBound](),
		index:          immutable.NewMap[string, int](nil),
		vars:           immutable.NewSortedMap[int, threeSets](nil),
		instantiations: immutable.NewSortedMap[int, types.Type](nil),
		deferred:       immutable.NewList[deferredConstraint](),
		throws:         immutable.NewSortedSet[int](nil),
	}
}

// Copy returns an independent copy of b.
func (b *BoundSet) Copy() *BoundSet {
	c := *b
	return &c
}

// AddBound records tb, returning false when an equal bound was already known. A Same bound with a
// proper type instantiates its variable, unless the variable is already instantiated.
func (b *BoundSet) AddBound(tb TypeBound) bool {
	key := tb.key()
	if _, ok := b.index.Get(key); ok {
		return false
	}
	slot := b.arena.Len()
	b.arena = b.arena.Append(tb)
	b.index = b.index.Set(key, slot)

	rank := tb.Var.Id()
	sets, ok := b.vars.Get(rank)
	if !ok {
		sets = newThreeSets()
	}
	switch tb.Relation {
	case Supertype:
		sets.super = sets.super.Add(slot)
	case Same:
		sets.same = sets.same.Add(slot)
	default:
		sets.sub = sets.sub.Add(slot)
	}
	b.vars = b.vars.Set(rank, sets)

	if tb.IsInstantiation() {
		if _, ok := b.instantiations.Get(rank); !ok {
			b.instantiations = b.instantiations.Set(rank, tb.Type)
		}
	}
	return true
}

// AddFalse marks b permanently unsatisfiable.
func (b *BoundSet) AddFalse() { b.isFalse = true }

// IsSatisfiable reports whether FALSE has not been recorded.
func (b *BoundSet) IsSatisfiable() bool { return !b.isFalse }

// AddThrows records the bound `throws v`.
func (b *BoundSet) AddThrows(v *types.InferenceVar) { b.throws = b.throws.Add(v.Id()) }

// HasThrows reports whether b contains the bound `throws v`.
func (b *BoundSet) HasThrows(v *types.InferenceVar) bool { return b.throws.Has(v.Id()) }

// Len returns the number of bounds in b.
func (b *BoundSet) Len() int { return b.arena.Len() }

// Bounds returns every bound in b, in insertion order.
func (b *BoundSet) Bounds() []TypeBound {
	out := make([]TypeBound, 0, b.arena.Len())
	itr := b.arena.Iterator()
	for !itr.Done() {
		_, tb := itr.Next()
		out = append(out, tb)
	}
	return out
}

// BoundsOf returns the bounds of v, in insertion order.
func (b *BoundSet) BoundsOf(v *types.InferenceVar) []TypeBound {
	sets, ok := b.vars.Get(v.Id())
	if !ok {
		return nil
	}
	slots := append(append(sets.super.Items(), sets.same.Items()...), sets.sub.Items()...)
	sort.Ints(slots)
	out := make([]TypeBound, len(slots))
	for i, slot := range slots {
		out[i] = b.arena.Get(slot)
	}
	return out
}

// IsInstantiated reports whether v has been fixed to a proper type.
func (b *BoundSet) IsInstantiated(v *types.InferenceVar) bool {
	_, ok := b.instantiations.Get(v.Id())
	return ok
}

// Instantiation returns the proper type v is fixed to, or nil.
func (b *BoundSet) Instantiation(v *types.InferenceVar) types.Type {
	t, _ := b.instantiations.Get(v.Id())
	return t
}

// Instantiate replaces instantiated inference variables within t with their instantiations.
func (b *BoundSet) Instantiate(t types.Type) types.Type {
	if b.instantiations.Len() == 0 {
		return t
	}
	return typeutil.Instantiate(t, b.Instantiation)
}

// UpperBounds returns the types T of bounds `v <: T`, in insertion order. Non-reference (simple)
// types dominate: a single simple bound is returned alone, and several make the result empty.
func (b *BoundSet) UpperBounds(v *types.InferenceVar, onlyProper bool) []types.Type {
	sets, ok := b.vars.Get(v.Id())
	if !ok {
		return nil
	}
	var refs []types.Type
	var simple types.Type
	for _, slot := range sets.sub.Items() {
		tb := b.arena.Get(slot)
		if onlyProper && !tb.proper {
			continue
		}
		if types.IsReference(tb.Type) {
			refs = appendUnique(refs, tb.Type)
			continue
		}
		if simple != nil && !types.Identical(simple, tb.Type) {
			return nil
		}
		simple = tb.Type
	}
	if simple != nil {
		return []types.Type{simple}
	}
	return refs
}

// LowerBounds returns the types S of bounds `S <: v`, in insertion order.
func (b *BoundSet) LowerBounds(v *types.InferenceVar, onlyProper bool) []types.Type {
	sets, ok := b.vars.Get(v.Id())
	if !ok {
		return nil
	}
	var out []types.Type
	for _, slot := range sets.super.Items() {
		tb := b.arena.Get(slot)
		if onlyProper && !tb.proper {
			continue
		}
		out = appendUnique(out, tb.Type)
	}
	return out
}

// DependsOnResolutionOf reports whether a bound of either variable mentions the other.
func (b *BoundSet) DependsOnResolutionOf(alpha, beta *types.InferenceVar) bool {
	return b.mentionedBy(alpha, beta) || b.mentionedBy(beta, alpha)
}

// mentionedBy reports whether a bound of v mentions w.
func (b *BoundSet) mentionedBy(v, w *types.InferenceVar) bool {
	sets, ok := b.vars.Get(v.Id())
	if !ok {
		return false
	}
	for _, s := range [...]immutable.SortedSet[int]{sets.super, sets.same, sets.sub} {
		itr := s.Iterator()
		for !itr.Done() {
			slot, _ := itr.Next()
			tb := b.arena.Get(slot)
			if !tb.proper && types.Mentions(tb.Type, w) {
				return true
			}
		}
	}
	return false
}

// WrapperBound returns a proper bound of v (of any relation) which is the wrapper class of a
// primitive type, or nil.
func (b *BoundSet) WrapperBound(env *types.Env, v *types.InferenceVar) types.Type {
	for _, tb := range b.BoundsOf(v) {
		if tb.proper && env.IsWrapper(tb.Type) {
			return tb.Type
		}
	}
	return nil
}

func (b *BoundSet) String() string {
	if b.isFalse {
		return "{FALSE}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, tb := range b.Bounds() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tb.String())
	}
	for _, v := range b.throws.Items() {
		if sb.Len() > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString("throws #")
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('}')
	return sb.String()
}

func appendUnique(ts []types.Type, t types.Type) []types.Type {
	for _, u := range ts {
		if types.Identical(u, t) {
			return ts
		}
	}
	return append(ts, t)
}
