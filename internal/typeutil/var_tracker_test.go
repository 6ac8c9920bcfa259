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

package typeutil_test

import (
	"testing"

	. "github.com/wdamron/jinfer/internal/typeutil"
	"github.com/wdamron/jinfer/types"
)

func TestVarTrackerTruncate(t *testing.T) {
	var vt VarTracker
	vt.NewList([]*types.TypeParam{types.NewTypeParam("S"), types.NewTypeParam("T")})
	kept := vt.Vars()
	dropped := vt.New(types.NewTypeParam("U"))
	vt.Truncate(2)
	if vt.Len() != 2 || vt.Tracks(dropped) {
		t.Fatalf("expected %s to be released", dropped.Name())
	}
	for _, v := range kept {
		if !vt.Tracks(v) {
			t.Fatalf("expected %s to be tracked", v.Name())
		}
	}

	v := vt.New(types.NewTypeParam("V"))
	if v.Id() != 2 || !vt.Tracks(v) || vt.Tracks(dropped) {
		t.Fatalf("expected rank 2 to be reissued, found %s", v.Name())
	}
	if len(kept) != 2 {
		t.Fatalf("previously returned variables changed: %d", len(kept))
	}
	vt.Truncate(5)
	if vt.Len() != 3 {
		t.Fatalf("expected 3 variables, found %d", vt.Len())
	}
}
