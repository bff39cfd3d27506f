// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// MinPathCover returns a minimum set of paths through g, each from an
// exon without predecessors to an exon without successors, such that
// every edge of g is on at least one path. The graph must be acyclic.
//
// The cover is found as a minimum flow from a super-source joined to
// every root to a super-sink joined from every sink, with every exon
// edge carrying a flow of at least one. An initial feasible flow routes
// one unit through each uncovered edge along the first predecessors and
// successors in coordinate order. The flow is then reduced by shortest
// augmenting paths from the sink back to the source in the residual
// graph, and finally decomposed into paths, taking edges in coordinate
// order.
func MinPathCover(g graph.Directed) ([][]*Exon, error) {
	order, err := topo.SortStabilized(g, coordinateOrder)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, nil
	}
	f := newCoverFlow(g, order)
	f.feasible()
	f.reduce()
	return f.decompose(), nil
}

// coordinateOrder sorts exon nodes by start then end.
func coordinateOrder(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i].(*Exon), nodes[j].(*Exon)
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}

// arc is an edge of a coverFlow network.
type arc struct {
	from, to int
	lower    int
	flow     int
}

// coverFlow is the flow network used to find a minimum path cover.
type coverFlow struct {
	exons []*Exon

	arcs []arc
	out  [][]int
	in   [][]int

	source, sink int

	// rootArc and sinkArc hold the index of the arc
	// from the source to each root, and from each sink
	// to the sink, or -1.
	rootArc []int
	sinkArc []int
}

func newCoverFlow(g graph.Directed, order []graph.Node) *coverFlow {
	n := len(order)
	f := &coverFlow{
		exons:   make([]*Exon, n),
		out:     make([][]int, n+2),
		in:      make([][]int, n+2),
		source:  n,
		sink:    n + 1,
		rootArc: make([]int, n),
		sinkArc: make([]int, n),
	}
	idx := make(map[int64]int, n)
	for i, v := range order {
		f.exons[i] = v.(*Exon)
		idx[v.ID()] = i
	}
	for i, e := range f.exons {
		f.rootArc[i] = -1
		if g.To(e.ID()).Len() == 0 {
			f.rootArc[i] = f.addArc(f.source, i, 0)
		}
	}
	for i, e := range f.exons {
		next := successors(g, e)
		for _, s := range next {
			f.addArc(i, idx[s.ID()], 1)
		}
		f.sinkArc[i] = -1
		if len(next) == 0 {
			f.sinkArc[i] = f.addArc(i, f.sink, 0)
		}
	}
	return f
}

func (f *coverFlow) addArc(from, to, lower int) int {
	f.arcs = append(f.arcs, arc{from: from, to: to, lower: lower})
	i := len(f.arcs) - 1
	f.out[from] = append(f.out[from], i)
	f.in[to] = append(f.in[to], i)
	return i
}

// feasible routes one unit of flow through every exon edge that does not
// yet carry flow.
func (f *coverFlow) feasible() {
	for i := range f.arcs {
		a := f.arcs[i]
		if a.lower == 0 || a.flow != 0 {
			continue
		}
		var path []int
		for v := a.from; ; {
			if f.rootArc[v] >= 0 {
				path = append(path, f.rootArc[v])
				break
			}
			p := f.in[v][0]
			path = append(path, p)
			v = f.arcs[p].from
		}
		path = append(path, i)
		for v := a.to; ; {
			if f.sinkArc[v] >= 0 {
				path = append(path, f.sinkArc[v])
				break
			}
			s := f.out[v][0]
			path = append(path, s)
			v = f.arcs[s].to
		}
		for _, p := range path {
			f.arcs[p].flow++
		}
	}
}

// step is an arc of a residual path. A forward step increases the flow
// on its arc and a backward step decreases it.
type step struct {
	arc      int
	backward bool
}

// reduce repeatedly pushes flow from the sink back to the source
// through the residual network until no augmenting path remains.
func (f *coverFlow) reduce() {
	for {
		path := f.residualPath()
		if path == nil {
			return
		}
		b := -1
		for _, s := range path {
			if !s.backward {
				continue
			}
			a := f.arcs[s.arc]
			if c := a.flow - a.lower; b < 0 || c < b {
				b = c
			}
		}
		for _, s := range path {
			if s.backward {
				f.arcs[s.arc].flow -= b
			} else {
				f.arcs[s.arc].flow += b
			}
		}
	}
}

// residualPath returns the shortest path from the sink to the source in
// the residual network, or nil if there is none. Arcs have no upper
// bound, so only backward steps constrain the path.
func (f *coverFlow) residualPath() []step {
	n := len(f.out)
	via := make([]step, n)
	seen := make([]bool, n)
	seen[f.sink] = true
	queue := []int{f.sink}
	for len(queue) != 0 {
		v := queue[0]
		queue = queue[1:]
		if v == f.source {
			break
		}
		for _, i := range f.in[v] {
			a := f.arcs[i]
			if a.flow > a.lower && !seen[a.from] {
				seen[a.from] = true
				via[a.from] = step{arc: i, backward: true}
				queue = append(queue, a.from)
			}
		}
		for _, i := range f.out[v] {
			a := f.arcs[i]
			if !seen[a.to] {
				seen[a.to] = true
				via[a.to] = step{arc: i}
				queue = append(queue, a.to)
			}
		}
	}
	if !seen[f.source] {
		return nil
	}
	var path []step
	for v := f.source; v != f.sink; {
		s := via[v]
		path = append(path, s)
		if s.backward {
			v = f.arcs[s.arc].to
		} else {
			v = f.arcs[s.arc].from
		}
	}
	return path
}

// decompose returns the flow as a set of source to sink paths.
func (f *coverFlow) decompose() [][]*Exon {
	var paths [][]*Exon
	for {
		v := f.source
		var p []*Exon
		for v != f.sink {
			next := -1
			for _, i := range f.out[v] {
				if f.arcs[i].flow > 0 {
					next = i
					break
				}
			}
			if next < 0 {
				return paths
			}
			f.arcs[next].flow--
			v = f.arcs[next].to
			if v != f.sink {
				p = append(p, f.exons[v])
			}
		}
		paths = append(paths, p)
	}
}
