// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
)

// locusGraph returns the collapsed splice graph of the only locus in
// the session built from the chains.
func locusGraph(t *testing.T, tol int, chains ...[]Interval) *simple.DirectedGraph {
	s := newTestSession(chains...)
	loci := s.Loci()
	require.Len(t, loci, 1)
	g := s.SpliceGraph(loci[0])
	Collapse(g, tol)
	return g
}

func coords(exons []*Exon) [][2]int {
	c := make([][2]int, len(exons))
	for i, e := range exons {
		c[i] = [2]int{e.Start, e.End}
	}
	return c
}

func nodeCoords(g *simple.DirectedGraph) [][2]int {
	exons := exonsOf(g.Nodes())
	sort.Sort(byStartEnd(exons))
	return coords(exons)
}

func TestSpliceGraph(t *testing.T) {
	s := newTestSession(
		ivs("chr1", 0, 100, 200, 300, 400, 500),
		ivs("chr1", 0, 100, 250, 300, 400, 500),
	)
	loci := s.Loci()
	require.Len(t, loci, 1)
	g := s.SpliceGraph(loci[0])
	assert.Equal(t, 4, g.Nodes().Len())
	assert.Equal(t, 4, g.Edges().Len())
}

func TestCollapseFivePrime(t *testing.T) {
	g := locusGraph(t, 100,
		ivs("chr1", 0, 100, 200, 300, 400, 500),
		ivs("chr1", 5, 100, 200, 300, 400, 500),
	)
	assert.Equal(t, [][2]int{{0, 100}, {200, 300}, {400, 500}}, nodeCoords(g))
	paths, ok := Paths(g, 10)
	assert.True(t, ok)
	assert.Len(t, paths, 1)
}

func TestCollapseBeyondTolerance(t *testing.T) {
	chains := [][]Interval{
		ivs("chr1", 1000, 1100, 1200, 1300),
		ivs("chr1", 500, 1100, 1200, 1300),
	}
	g := locusGraph(t, 100, chains...)
	assert.Equal(t, [][2]int{{500, 1100}, {1000, 1100}, {1200, 1300}}, nodeCoords(g))
	paths, ok := Paths(g, 10)
	assert.True(t, ok)
	assert.Len(t, paths, 2)

	g = locusGraph(t, 500, chains...)
	assert.Equal(t, [][2]int{{500, 1100}, {1200, 1300}}, nodeCoords(g))
}

func TestCollapseKeepsInternal(t *testing.T) {
	g := locusGraph(t, 100,
		ivs("chr1", 0, 100, 200, 300, 400, 500),
		ivs("chr1", 150, 300, 400, 500),
	)
	assert.Equal(t, [][2]int{{0, 100}, {200, 300}, {400, 500}}, nodeCoords(g))
	assert.True(t, g.HasEdgeFromTo(exonAt(t, g, 0, 100).ID(), exonAt(t, g, 200, 300).ID()))
}

func TestCollapseThreePrime(t *testing.T) {
	g := locusGraph(t, 100,
		ivs("chr1", 0, 100, 200, 300),
		ivs("chr1", 0, 100, 200, 350),
	)
	assert.Equal(t, [][2]int{{0, 100}, {200, 350}}, nodeCoords(g))
	assert.Equal(t, 1, g.Edges().Len())
}

func TestCollapseOrderIndependent(t *testing.T) {
	a := ivs("chr1", 0, 100, 200, 300, 400, 500)
	b := ivs("chr1", 30, 100, 200, 300, 400, 450)
	c := ivs("chr1", 150, 300, 400, 500)
	want := nodeCoords(locusGraph(t, 100, a, b, c))
	for _, order := range [][][]Interval{{b, a, c}, {c, b, a}, {c, a, b}} {
		assert.Equal(t, want, nodeCoords(locusGraph(t, 100, order...)))
	}
}

func exonAt(t *testing.T, g *simple.DirectedGraph, start, end int) *Exon {
	for _, e := range exonsOf(g.Nodes()) {
		if e.Start == start && e.End == end {
			return e
		}
	}
	t.Fatalf("no exon at %d-%d", start, end)
	return nil
}
