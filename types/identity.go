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

// Identical reports whether a and b denote the same type. Classes, type-parameters, inference
// variables and captures are compared by identity; composite types structurally.
func Identical(a, b Type) bool {
	if a == b {
		return true
	}
	switch at := a.(type) {
	case *Parameterized:
		bt, ok := b.(*Parameterized)
		if !ok || at.Generic != bt.Generic || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Identical(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *Array:
		bt, ok := b.(*Array)
		return ok && Identical(at.Elem, bt.Elem)
	case *Wildcard:
		bt, ok := b.(*Wildcard)
		if !ok || at.BoundKind != bt.BoundKind {
			return false
		}
		if at.Bound == nil || bt.Bound == nil {
			return at.Bound == nil && bt.Bound == nil
		}
		return Identical(at.Bound, bt.Bound)
	case *Intersection:
		bt, ok := b.(*Intersection)
		if !ok || len(at.Bounds) != len(bt.Bounds) {
			return false
		}
	outer:
		for _, x := range at.Bounds {
			for _, y := range bt.Bounds {
				if Identical(x, y) {
					continue outer
				}
			}
			return false
		}
		return true
	}
	return false
}
