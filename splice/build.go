// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"fmt"

	"github.com/grailbio/base/log"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats holds assembly counts.
type Stats struct {
	// Alignments is the number of alignment records
	// offered and Rejected is the number of those that
	// were malformed.
	Alignments int
	Rejected   int

	// Spliced and Unspliced are the numbers of exon
	// chains remaining after normalisation that had more
	// than one and exactly one exon respectively.
	Spliced   int
	Unspliced int

	Exons int
	Loci  int

	Genes       int
	Transcripts int

	// Excluded is the number of transcripts that were
	// not longer than the minimum transcript length.
	Excluded int
	// Truncated is the number of loci with too many
	// paths to enumerate that were reported as a minimum
	// path cover.
	Truncated int
	// Skipped is the number of loci that could not be
	// walked.
	Skipped int
}

func (s *Stats) add(o Stats) {
	s.Alignments += o.Alignments
	s.Rejected += o.Rejected
	s.Spliced += o.Spliced
	s.Unspliced += o.Unspliced
	s.Exons += o.Exons
	s.Loci += o.Loci
	s.Genes += o.Genes
	s.Transcripts += o.Transcripts
	s.Excluded += o.Excluded
	s.Truncated += o.Truncated
	s.Skipped += o.Skipped
}

// Build assembles the transcripts of every gene locus of the session and
// of the merged single-exon loci. Transcripts returned by Build have not
// been numbered. Build must only be called after all alignments have been
// added, and only once.
func (s *Session) Build() (spliced, single []Gene, stats Stats) {
	stats.Exons = len(s.exonByID)
	for i, l := range s.Loci() {
		stats.Loci++
		g := s.SpliceGraph(l)
		if g.Nodes().Len() == 0 {
			continue
		}
		Collapse(g, s.params.MinUTR)

		paths, err := s.transcriptPaths(g, &stats)
		if err != nil {
			log.Error.Printf("splice: skipping locus %s: %v", s.span(g), err)
			stats.Skipped++
			continue
		}
		var gene Gene
		for _, p := range paths {
			t := newTranscript(s.names[p[0].Chrom], intervalsOf(s.names[p[0].Chrom], p))
			if t.Len() <= s.params.MinTranscript {
				stats.Excluded++
				continue
			}
			gene.Transcripts = append(gene.Transcripts, t)
		}
		if len(gene.Transcripts) != 0 {
			spliced = append(spliced, gene)
		}
		if (i+1)%1000 == 0 {
			log.Printf("... %s %d: excluded %d transcript(s)", s.names[0], i+1, stats.Excluded)
		}
	}

	for _, iv := range s.SingleLoci() {
		single = append(single, Gene{Transcripts: []*Transcript{newTranscript(iv.Chrom, []Interval{iv})}})
	}
	return spliced, single, stats
}

// transcriptPaths returns the candidate transcripts of the collapsed
// locus graph g.
func (s *Session) transcriptPaths(g *simple.DirectedGraph, stats *Stats) ([][]*Exon, error) {
	if s.params.Min {
		return MinPathCover(g)
	}
	if _, err := topo.Sort(g); err != nil {
		return nil, err
	}
	paths, ok := Paths(g, s.params.MaxPaths)
	if ok {
		return paths, nil
	}
	stats.Truncated++
	log.Error.Printf("splice: locus %s has more than %d paths: reporting minimum path cover", s.span(g), s.params.MaxPaths)
	return MinPathCover(g)
}

// span returns a description of the genomic extent of g.
func (s *Session) span(g *simple.DirectedGraph) string {
	exons := exonsOf(g.Nodes())
	if len(exons) == 0 {
		return "<empty>"
	}
	start, end := exons[0].Start, exons[0].End
	for _, e := range exons[1:] {
		if e.Start < start {
			start = e.Start
		}
		if e.End > end {
			end = e.End
		}
	}
	return fmt.Sprintf("%s:%d-%d", s.names[exons[0].Chrom], start, end)
}

func intervalsOf(chrom string, path []*Exon) []Interval {
	iv := make([]Interval, len(path))
	for i, e := range path {
		iv[i] = Interval{Chrom: chrom, Start: e.Start, End: e.End}
	}
	return iv
}
