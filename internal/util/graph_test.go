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

package util_test

import (
	"sort"
	"testing"

	. "github.com/wdamron/jinfer/internal/util"
)

func checkComponents(t *testing.T, expected, actual [][]int) {
	if len(expected) != len(actual) {
		t.Fatalf("expected %d components, found %#+v", len(expected), actual)
	}
	for i := range expected {
		sort.Ints(actual[i])
		if len(actual[i]) != len(expected[i]) {
			t.Fatalf("expect: %#+v, actual: %#+v", expected, actual)
		}
		for j := range expected[i] {
			if actual[i][j] != expected[i][j] {
				t.Fatalf("expect: %#+v, actual: %#+v", expected, actual)
			}
		}
	}
}

func TestSCC(t *testing.T) {
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	g.AddEdge(2, 3)
	g.AddEdge(2, 3)
	if len(g[2]) != 2 {
		t.Fatalf("duplicate edge added: %#+v", g[2])
	}
	checkComponents(t, [][]int{{0}, {1, 2}, {3}}, g.SCC())
}

func TestSCCTopologicalOrder(t *testing.T) {
	g := NewGraph(5)
	g.AddEdge(4, 3)
	g.AddEdge(3, 1)
	g.AddEdge(1, 0)
	g.AddEdge(2, 0)
	sccs := g.SCC()
	pos := make(map[int]int)
	for i, c := range sccs {
		for _, v := range c {
			pos[v] = i
		}
	}
	for from := range g {
		for _, to := range g[from] {
			if pos[from] >= pos[to] {
				t.Fatalf("edge %d -> %d out of order in %#+v", from, to, sccs)
			}
		}
	}
}

func TestSCCSelfLoopAndCycle(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 0)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	sccs := g.SCC()
	if len(sccs) != 2 {
		t.Fatalf("unexpected components: %#+v", sccs)
	}
}

func TestReachable(t *testing.T) {
	g := NewGraph(6)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	g.AddEdge(3, 4)
	reached := g.Reachable(1)
	sort.Ints(reached)
	if len(reached) != 3 || reached[0] != 0 || reached[1] != 1 || reached[2] != 2 {
		t.Fatalf("unexpected reachable set: %#+v", reached)
	}
	if r := g.Reachable(5); len(r) != 1 || r[0] != 5 {
		t.Fatalf("isolated vertex should only reach itself: %#+v", r)
	}
}

func TestReachableDeepChain(t *testing.T) {
	const n = 100000
	g := NewGraph(n)
	for i := 0; i < n-1; i++ {
		g.AddEdge(i, i+1)
	}
	if r := g.Reachable(0); len(r) != n {
		t.Fatalf("expected %d reachable vertices, found %d", n, len(r))
	}
	if sccs := g.SCC(); len(sccs) != n {
		t.Fatalf("expected %d components, found %d", n, len(sccs))
	}
}
