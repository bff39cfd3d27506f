// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// SpliceGraph returns the exon graph of the locus: the union of the exon
// edges of every intron in every cluster of the locus. Nodes of the
// returned graph are *Exon.
func (s *Session) SpliceGraph(locus []int) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for _, c := range locus {
		for in := range s.clusters[c].nodes {
			for e := range s.intronByID[in].exons {
				g.SetEdge(g.NewEdge(s.exonByID[e.from], s.exonByID[e.to]))
			}
		}
	}
	return g
}

// Collapse merges alternative terminal exons of g that differ from a
// neighbouring exon only by a UTR extension of at most tol bases.
//
// Exons sharing an end (a splice donor) are considered in (end, start)
// order and a 5' terminal exon is merged into its neighbour. Then exons
// sharing a start (a splice acceptor) are considered in (start, end)
// order and a 3' terminal exon is merged into its neighbour. Internal
// exons are never removed.
func Collapse(g *simple.DirectedGraph, tol int) {
	exons := exonsOf(g.Nodes())
	if len(exons) < 2 {
		return
	}
	sort.Sort(byEndStart(exons))
	curr := exons[0]
	for _, next := range exons[1:] {
		if next.End != curr.End || next.Start-curr.Start > tol {
			curr = next
			continue
		}
		switch {
		case next.Is(FivePrime):
			merge(g, next, curr)
		case curr.Is(FivePrime):
			merge(g, curr, next)
			curr = next
		default:
			curr = next
		}
	}

	exons = exonsOf(g.Nodes())
	sort.Sort(byStartEnd(exons))
	curr = exons[0]
	for _, next := range exons[1:] {
		if next.Start != curr.Start || next.End-curr.End > tol {
			curr = next
			continue
		}
		switch {
		case curr.Is(ThreePrime):
			merge(g, curr, next)
			curr = next
		case next.Is(ThreePrime):
			merge(g, next, curr)
		default:
			curr = next
		}
	}
}

// merge redirects the edges of the exon src to dst and removes src
// from g.
func merge(g *simple.DirectedGraph, src, dst *Exon) {
	for _, n := range graph.NodesOf(g.To(src.ID())) {
		if n.ID() != dst.ID() {
			g.SetEdge(g.NewEdge(n, dst))
		}
	}
	for _, n := range graph.NodesOf(g.From(src.ID())) {
		if n.ID() != dst.ID() {
			g.SetEdge(g.NewEdge(dst, n))
		}
	}
	g.RemoveNode(src.ID())
}

// exonsOf returns the exons in the node iterator.
func exonsOf(it graph.Nodes) []*Exon {
	var exons []*Exon
	for it.Next() {
		exons = append(exons, it.Node().(*Exon))
	}
	return exons
}

// successors returns the exons directly reachable from e in
// coordinate order.
func successors(g graph.Directed, e *Exon) []*Exon {
	next := exonsOf(g.From(e.ID()))
	sort.Sort(byStartEnd(next))
	return next
}

// roots returns the exons of g without predecessors in coordinate order.
func roots(g graph.Directed) []*Exon {
	var r []*Exon
	for _, e := range exonsOf(g.Nodes()) {
		if g.To(e.ID()).Len() == 0 {
			r = append(r, e)
		}
	}
	sort.Sort(byStartEnd(r))
	return r
}
