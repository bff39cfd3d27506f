// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import "gonum.org/v1/gonum/graph"

// Paths returns every path through g from an exon without predecessors
// to an exon without successors. Paths are returned in coordinate order
// of their exons. If g holds more than max paths, the first max paths
// are returned with ok false. The graph must be acyclic.
func Paths(g graph.Directed, max int) (paths [][]*Exon, ok bool) {
	type frame struct {
		exon *Exon
		next []*Exon
		i    int
	}
	for _, r := range roots(g) {
		stack := []frame{{exon: r, next: successors(g, r)}}
		for len(stack) != 0 {
			f := &stack[len(stack)-1]
			if len(f.next) == 0 {
				if len(paths) == max {
					return paths, false
				}
				p := make([]*Exon, len(stack))
				for i, f := range stack {
					p[i] = f.exon
				}
				paths = append(paths, p)
				stack = stack[:len(stack)-1]
				continue
			}
			if f.i == len(f.next) {
				stack = stack[:len(stack)-1]
				continue
			}
			n := f.next[f.i]
			f.i++
			stack = append(stack, frame{exon: n, next: successors(g, n)})
		}
	}
	return paths, true
}
