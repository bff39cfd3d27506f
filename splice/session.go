// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package splice assembles transcript models from spliced alignments.
//
// Alignments are added to a Session one at a time. Each alignment's exons
// are canonicalised into a shared exon table and its introns are placed
// into local clusters, which are merged when a later alignment shares an
// intron with them. When all alignments have been added, clusters linked
// through shared exons are grouped into gene loci and the splice graph of
// each locus is collapsed and walked to produce transcripts.
package splice

import "github.com/biogo/store/interval"

// Session holds the exon, intron and cluster tables of an assembly.
// A Session is not safe for concurrent use.
type Session struct {
	params Params

	chroms map[string]int32
	names  []string

	exons    map[Key]*Exon
	exonByID []*Exon

	introns    map[Key]*intron
	intronByID []*intron

	clusters    map[int]*cluster
	sets        djSet
	nextCluster int

	singles map[int32]*interval.IntTree
	nextID  uintptr
}

// NewSession returns a new Session using the given parameters. The
// parameters are not validated.
func NewSession(p Params) *Session {
	return &Session{
		params:   p,
		chroms:   make(map[string]int32),
		exons:    make(map[Key]*Exon),
		introns:  make(map[Key]*intron),
		clusters: make(map[int]*cluster),
		sets:     make(djSet),
		singles:  make(map[int32]*interval.IntTree),
	}
}

// chrom returns the interned id of the named chromosome.
func (s *Session) chrom(name string) int32 {
	id, ok := s.chroms[name]
	if !ok {
		id = int32(len(s.names))
		s.chroms[name] = id
		s.names = append(s.names, name)
	}
	return id
}

// Add adds a normalised exon chain to the session. The exons must be on
// the same chromosome and sorted by start. Chains with a single exon are
// held for single-exon locus merging.
func (s *Session) Add(chain []Interval) {
	switch len(chain) {
	case 0:
		return
	case 1:
		s.addSingle(chain[0])
		return
	}
	s.addIntrons(s.canonicalize(chain))
}

// canonicalize returns the canonical exons for the chain, adding new
// exons to the exon table and reconciling terminal states of existing
// exons.
func (s *Session) canonicalize(chain []Interval) []*Exon {
	c := s.chrom(chain[0].Chrom)
	exons := make([]*Exon, len(chain))
	for i, iv := range chain {
		var t Terminal
		switch i {
		case 0:
			t = FivePrime
		case len(chain) - 1:
			t = ThreePrime
		}
		k := Key{Chrom: c, Start: iv.Start, End: iv.End}
		e, ok := s.exons[k]
		if !ok {
			e = newExon(int64(len(s.exonByID)), k)
			s.exons[k] = e
			s.exonByID = append(s.exonByID, e)
		}
		e.observe(t)
		exons[i] = e
	}
	return exons
}

// addIntrons indexes the introns between adjacent exons and places them
// in a local cluster, merging any existing clusters that they touch.
func (s *Session) addIntrons(exons []*Exon) {
	var (
		chain   []*intron
		touched []int
	)
	for i, up := range exons[:len(exons)-1] {
		down := exons[i+1]
		if down.Start-up.End > s.params.MaxIntron {
			continue
		}
		up.next[down.id] = struct{}{}

		k := Key{Chrom: up.Chrom, Start: up.End, End: down.Start}
		in, ok := s.introns[k]
		if !ok {
			in = newIntron(int64(len(s.intronByID)), k)
			in.cluster = -1
			s.introns[k] = in
			s.intronByID = append(s.intronByID, in)
		} else {
			touched = append(touched, in.cluster)
		}
		in.exons[edge{from: up.id, to: down.id}] = struct{}{}
		up.introns[in.id] = struct{}{}
		down.introns[in.id] = struct{}{}
		chain = append(chain, in)
	}
	if len(chain) == 0 {
		return
	}

	id := s.nextCluster
	s.nextCluster++
	s.sets.add(id)
	s.clusters[id] = newCluster(id)

	root := id
	for _, t := range touched {
		r := s.sets.find(t)
		if r == root {
			continue
		}
		keep := s.sets.union(root, r)
		lose := r
		if keep == r {
			lose = root
		}
		s.clusters[keep].absorb(s.clusters[lose])
		delete(s.clusters, lose)
		root = keep
	}
	s.clusters[root].addPath(chain)
	for _, in := range chain {
		if in.cluster < 0 {
			in.cluster = id
		}
	}
}

// clusterOf returns the current cluster id of the intron.
func (s *Session) clusterOf(in *intron) int {
	return s.sets.find(in.cluster)
}

// Exon returns the canonical exon with the coordinates of iv.
func (s *Session) Exon(iv Interval) (*Exon, bool) {
	c, ok := s.chroms[iv.Chrom]
	if !ok {
		return nil, false
	}
	e, ok := s.exons[Key{Chrom: c, Start: iv.Start, End: iv.End}]
	return e, ok
}

// Cluster returns the id of the local cluster holding the intron with
// the coordinates of iv, the half-open interval between two exons.
func (s *Session) Cluster(iv Interval) (id int, ok bool) {
	c, ok := s.chroms[iv.Chrom]
	if !ok {
		return -1, false
	}
	in, ok := s.introns[Key{Chrom: c, Start: iv.Start, End: iv.End}]
	if !ok {
		return -1, false
	}
	return s.clusterOf(in), true
}

// Exons returns the number of canonical exons in the session.
func (s *Session) Exons() int { return len(s.exonByID) }

// Introns returns the number of introns in the session.
func (s *Session) Introns() int { return len(s.intronByID) }

// Clusters returns the number of live local clusters in the session.
func (s *Session) Clusters() int { return len(s.clusters) }

// Chrom returns the name of the chromosome with the given interned id.
func (s *Session) Chrom(id int32) string { return s.names[id] }
