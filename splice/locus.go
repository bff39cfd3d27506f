// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Loci returns the gene loci of the session. Each locus is the sorted
// set of ids of the local clusters that are connected through shared
// exons. Loci are sorted by their leftmost exon.
//
// Loci must only be called after all alignments have been added.
func (s *Session) Loci() [][]int {
	g := simple.NewUndirectedGraph()
	for _, e := range s.exonByID {
		if len(e.introns) == 0 {
			continue
		}
		ids := make([]int64, 0, len(e.introns))
		for id := range e.introns {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		prev := int64(s.clusterOf(s.intronByID[ids[0]]))
		if g.Node(prev) == nil {
			g.AddNode(simple.Node(prev))
		}
		for _, id := range ids[1:] {
			c := int64(s.clusterOf(s.intronByID[id]))
			if c != prev {
				g.SetEdge(g.NewEdge(simple.Node(prev), simple.Node(c)))
			}
			prev = c
		}
	}

	cc := topo.ConnectedComponents(g)
	loci := make([][]int, len(cc))
	left := make([]Key, len(cc))
	for i, c := range cc {
		l := make([]int, len(c))
		for j, n := range c {
			l[j] = int(n.ID())
		}
		sort.Ints(l)
		loci[i] = l
		left[i] = s.leftmost(l)
	}
	sort.Sort(byLeftmost{loci: loci, left: left})
	return loci
}

// leftmost returns the key of the leftmost exon in the locus.
func (s *Session) leftmost(locus []int) Key {
	var (
		k     Key
		found bool
	)
	for _, c := range locus {
		for in := range s.clusters[c].nodes {
			for e := range s.intronByID[in].exons {
				x := s.exonByID[e.from].Key
				if !found || x.Chrom < k.Chrom ||
					(x.Chrom == k.Chrom && (x.Start < k.Start || (x.Start == k.Start && x.End < k.End))) {
					k = x
					found = true
				}
			}
		}
	}
	return k
}

type byLeftmost struct {
	loci [][]int
	left []Key
}

func (l byLeftmost) Len() int { return len(l.loci) }
func (l byLeftmost) Swap(i, j int) {
	l.loci[i], l.loci[j] = l.loci[j], l.loci[i]
	l.left[i], l.left[j] = l.left[j], l.left[i]
}
func (l byLeftmost) Less(i, j int) bool {
	a, b := l.left[i], l.left[j]
	if a.Chrom != b.Chrom {
		return a.Chrom < b.Chrom
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	return l.loci[i][0] < l.loci[j][0]
}
