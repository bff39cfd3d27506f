// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(chains ...[]Interval) *Session {
	s := NewSession(DefaultParams)
	for _, c := range chains {
		s.Add(c)
	}
	return s
}

func TestCanonicalTerminalOrderIndependent(t *testing.T) {
	a := ivs("chr1", 0, 100, 200, 300, 400, 500)
	b := ivs("chr1", 200, 300, 400, 500)
	c := ivs("chr1", 400, 500, 600, 700)

	want := map[Interval]Terminal{
		{Chrom: "chr1", Start: 0, End: 100}:   FivePrime,
		{Chrom: "chr1", Start: 200, End: 300}: 0,
		{Chrom: "chr1", Start: 400, End: 500}: ThreePrime | FivePrime,
		{Chrom: "chr1", Start: 600, End: 700}: ThreePrime,
	}
	for _, order := range [][][]Interval{
		{a, b, c},
		{b, a, c},
		{c, b, a},
		{c, a, b},
	} {
		s := newTestSession(order...)
		assert.Equal(t, len(want), s.Exons())
		for iv, term := range want {
			e, ok := s.Exon(iv)
			require.True(t, ok, "missing exon %v", iv)
			assert.Equal(t, term, e.Terminal(), "unexpected terminal state for %v", iv)
		}
	}
}

func TestInternalIsIrreversible(t *testing.T) {
	s := newTestSession(
		ivs("chr1", 0, 100, 200, 300, 400, 500),
		ivs("chr1", 200, 300, 400, 500),
		ivs("chr1", 0, 100, 200, 300),
	)
	e, ok := s.Exon(Interval{Chrom: "chr1", Start: 200, End: 300})
	require.True(t, ok)
	assert.False(t, e.Is(FivePrime))
	assert.False(t, e.Is(ThreePrime))
}

func TestSharedJunction(t *testing.T) {
	x := ivs("chr1", 0, 100, 200, 300)
	y := ivs("chr1", 50, 100, 200, 350)
	for _, order := range [][][]Interval{{x, y}, {y, x}} {
		s := newTestSession(order...)
		assert.Equal(t, 1, s.Introns())
		assert.Equal(t, 1, s.Clusters())
		assert.Equal(t, 4, s.Exons())
		_, ok := s.Cluster(Interval{Chrom: "chr1", Start: 100, End: 200})
		assert.True(t, ok)
	}
}

func TestClusterMerge(t *testing.T) {
	a := ivs("chr1", 0, 100, 200, 300)
	b := ivs("chr1", 1000, 1100, 1200, 1300)
	c := ivs("chr1", 2000, 2100, 2200, 2300)
	d := ivs("chr1", 50, 100, 200, 300, 1000, 1100, 1200, 1300, 2000, 2100, 2200, 2300)
	junctions := ivs("chr1", 100, 200, 1100, 1200, 2100, 2200, 300, 1000, 1300, 2000)

	for _, test := range []struct {
		order  [][]Interval
		before int
	}{
		{order: [][]Interval{a, b, c, d}, before: 3},
		{order: [][]Interval{d, a, b, c}, before: 1},
		{order: [][]Interval{a, d, c, b}, before: 1},
	} {
		s := newTestSession(test.order[:3]...)
		assert.Equal(t, test.before, s.Clusters(), "unexpected cluster count before last alignment")
		s.Add(test.order[3])
		assert.Equal(t, 1, s.Clusters())

		want, ok := s.Cluster(junctions[0])
		require.True(t, ok)
		for _, j := range junctions[1:] {
			got, ok := s.Cluster(j)
			require.True(t, ok, "missing intron %v", j)
			assert.Equal(t, want, got, "intron %v in different cluster", j)
		}

		// The merged cluster holds every intron and
		// the intron chain of the spanning alignment.
		c := s.clusters[want]
		assert.Len(t, c.nodes, len(junctions))
		chain := []int64{
			intronID(t, s, junctions[0]),
			intronID(t, s, junctions[3]),
			intronID(t, s, junctions[1]),
			intronID(t, s, junctions[4]),
			intronID(t, s, junctions[2]),
		}
		wantEdges := make(map[edge]struct{})
		for i, id := range chain[1:] {
			wantEdges[edge{from: chain[i], to: id}] = struct{}{}
		}
		assert.Equal(t, wantEdges, c.edges, "unexpected intron chain")
	}
}

func intronID(t *testing.T, s *Session, iv Interval) int64 {
	in, ok := s.introns[Key{Chrom: s.chroms[iv.Chrom], Start: iv.Start, End: iv.End}]
	require.True(t, ok, "missing intron %v", iv)
	return in.id
}

func TestMaxIntron(t *testing.T) {
	p := DefaultParams
	p.MaxIntron = 500
	s := NewSession(p)
	s.Add(ivs("chr1", 0, 100, 1000, 1100))
	assert.Equal(t, 0, s.Introns())
	assert.Equal(t, 0, s.Clusters())
	assert.Empty(t, s.Loci())

	s.Add(ivs("chr1", 0, 100, 600, 700))
	assert.Equal(t, 1, s.Introns(), "intron at maximum length rejected")
}

func TestLoci(t *testing.T) {
	s := newTestSession(
		ivs("chr1", 5000, 5100, 5200, 5300),
		ivs("chr1", 0, 100, 200, 300),
		ivs("chr1", 200, 300, 400, 500),
	)
	assert.Equal(t, 3, s.Clusters())

	loci := s.Loci()
	require.Len(t, loci, 2)
	assert.Len(t, loci[0], 2, "clusters sharing an exon not joined")
	assert.Len(t, loci[1], 1)

	first, _ := s.Cluster(Interval{Chrom: "chr1", Start: 100, End: 200})
	second, _ := s.Cluster(Interval{Chrom: "chr1", Start: 300, End: 400})
	assert.ElementsMatch(t, []int{first, second}, loci[0])
}

func TestSingleLoci(t *testing.T) {
	s := newTestSession(
		ivs("chr2", 0, 50),
		ivs("chr1", 500, 600),
		ivs("chr1", 150, 300),
		ivs("chr1", 100, 200),
		ivs("chr1", 300, 320),
	)
	want := []Interval{
		{Chrom: "chr1", Start: 100, End: 320},
		{Chrom: "chr1", Start: 500, End: 600},
		{Chrom: "chr2", Start: 0, End: 50},
	}
	assert.Equal(t, want, s.SingleLoci())
	assert.Equal(t, 0, s.Exons(), "single exons added to exon table")
}
