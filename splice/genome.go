// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
)

// Record is an alignment of a single RNA fragment. Exons must be on the
// same chromosome, sorted by start.
type Record struct {
	Name  string
	Exons []Interval
}

// Validate returns an error if the record is not a valid alignment.
func (r Record) Validate() error {
	if len(r.Exons) == 0 {
		return errors.E(errors.Invalid, "splice: no exons in record", r.Name)
	}
	chrom := r.Exons[0].Chrom
	for i, e := range r.Exons {
		if e.Chrom != chrom {
			return errors.E(errors.Invalid, "splice: mixed chromosomes in record", r.Name)
		}
		if e.Start < 0 || e.Start >= e.End {
			return errors.E(errors.Invalid, "splice: invalid exon in record", r.Name, e.String())
		}
		if i != 0 && e.Start < r.Exons[i-1].Start {
			return errors.E(errors.Invalid, "splice: unsorted exons in record", r.Name)
		}
	}
	return nil
}

// Genome assembles alignments from many chromosomes. Each chromosome is
// held in its own Session and chromosomes are built in parallel.
type Genome struct {
	params   Params
	sessions map[string]*Session
	stats    Stats
}

// NewGenome returns a new Genome using the given parameters.
func NewGenome(p Params) (*Genome, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	return &Genome{params: p, sessions: make(map[string]*Session)}, nil
}

// Add normalises the alignment and adds the resulting exon chains to the
// session for its chromosome. Invalid records are rejected with an
// errors.Invalid error and do not alter the Genome's tables.
func (g *Genome) Add(r Record) error {
	g.stats.Alignments++
	err := r.Validate()
	if err != nil {
		g.stats.Rejected++
		return err
	}
	chrom := r.Exons[0].Chrom
	s, ok := g.sessions[chrom]
	if !ok {
		s = NewSession(g.params)
		g.sessions[chrom] = s
	}
	for _, chain := range Normalize(r.Exons, g.params) {
		if len(chain) == 1 {
			g.stats.Unspliced++
		} else {
			g.stats.Spliced++
		}
		s.Add(chain)
	}
	return nil
}

// Stats returns the counts of alignments added to the Genome so far.
func (g *Genome) Stats() Stats { return g.stats }

// Build assembles the transcripts of every chromosome. Genes are numbered
// from one, first the spliced genes and then the single-exon genes, each
// in chromosome name and coordinate order. Build must only be called
// once, after all alignments have been added.
func (g *Genome) Build() ([]*Transcript, Stats, error) {
	names := make([]string, 0, len(g.sessions))
	for c := range g.sessions {
		names = append(names, c)
	}
	sort.Strings(names)

	type shard struct {
		spliced, single []Gene
		stats           Stats
	}
	shards := make([]shard, len(names))
	err := traverse.Each(len(names), func(i int) error {
		sh := &shards[i]
		sh.spliced, sh.single, sh.stats = g.sessions[names[i]].Build()
		return nil
	})
	stats := g.stats
	if err != nil {
		return nil, stats, err
	}

	var genes []Gene
	for _, sh := range shards {
		genes = append(genes, sh.spliced...)
		stats.add(sh.stats)
	}
	for _, sh := range shards {
		genes = append(genes, sh.single...)
	}

	var transcripts []*Transcript
	for i, gene := range genes {
		for j, t := range gene.Transcripts {
			t.Gene = i + 1
			t.ID = j + 1
			transcripts = append(transcripts, t)
		}
	}
	stats.Genes = len(genes)
	stats.Transcripts = len(transcripts)
	return transcripts, stats, nil
}
