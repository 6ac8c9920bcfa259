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

package util

// Graph is an adjacency list over vertices 0..len(g)-1.
type Graph [][]int

func NewGraph(numVerts int) Graph { return Graph(make([][]int, numVerts)) }

func (g Graph) AddEdge(from, to int) {
	if !g.HasEdge(from, to) {
		g[from] = append(g[from], to)
	}
}

func (g Graph) HasEdge(from, to int) bool {
	for _, succ := range g[from] {
		if succ == to {
			return true
		}
	}
	return false
}

// Reachable returns the vertices reachable from root (root included) in visitation order. The
// walk uses an explicit stack.
func (g Graph) Reachable(root int) []int {
	visited := make([]bool, len(g))
	visited[root] = true
	order := []int{root}
	stack := []int{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range g[v] {
			if !visited[succ] {
				visited[succ] = true
				order = append(order, succ)
				stack = append(stack, succ)
			}
		}
	}
	return order
}

// SCC returns the strongly-connected components of g in topological order: when an edge leads
// from u to v in different components, the component of u precedes the component of v.
//
// Tarjan's algorithm, with the recursion unrolled onto an explicit stack of frames.
func (g Graph) SCC() [][]int {
	var (
		index    = 1
		indexOf  = make([]int, len(g))
		lowLink  = make([]int, len(g))
		onStack  = make([]bool, len(g))
		stack    []int
		sccs     [][]int
		frames   []sccFrame
		minimize = func(v, w int) {
			if w < lowLink[v] {
				lowLink[v] = w
			}
		}
	)
	for root := range g {
		if indexOf[root] != 0 {
			continue
		}
		frames = append(frames, sccFrame{v: root})
		indexOf[root], lowLink[root] = index, index
		index++
		stack = append(stack, root)
		onStack[root] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := f.v
			if f.next < len(g[v]) {
				succ := g[v][f.next]
				f.next++
				switch {
				case indexOf[succ] == 0:
					indexOf[succ], lowLink[succ] = index, index
					index++
					stack = append(stack, succ)
					onStack[succ] = true
					frames = append(frames, sccFrame{v: succ})
				case onStack[succ]:
					minimize(v, indexOf[succ])
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				minimize(frames[len(frames)-1].v, lowLink[v])
			}
			if lowLink[v] != indexOf[v] {
				continue
			}
			var c []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				c = append(c, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, c)
		}
	}
	// Components are completed in reverse topological order.
	for i, j := 0, len(sccs)-1; i < j; i, j = i+1, j-1 {
		sccs[i], sccs[j] = sccs[j], sccs[i]
	}
	return sccs
}

type sccFrame struct {
	v    int
	next int
}
