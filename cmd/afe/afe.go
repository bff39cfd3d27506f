// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// afe identifies alternative first exon events in BED12 gene models
// and writes them as GFF gene, mRNA and exon features.
//
// Transcripts are grouped into genes by the prefix of their name before
// the last '.', so gimme transcript chr1:4.2 is in gene chr1:4. The
// transcripts of a gene must be adjacent in the input.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/bed"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

var rootCmd = &cobra.Command{
	Use:   "afe <models.bed>",
	Short: "Find alternative first exon events in gene models",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := findEvents(f, os.Stdout)
		if err != nil {
			return err
		}
		log.Printf("found %d alternative first exon events", n)
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// findEvents reads BED12 models from r and writes alternative first exon
// events to w as GFF. It returns the number of events found.
func findEvents(r io.Reader, w io.Writer) (int, error) {
	br, err := bed.NewReader(r, 12)
	if err != nil {
		return 0, err
	}
	gw := gff.NewWriter(w, 60, true)

	var (
		n    int
		curr *gene
	)
	flush := func() error {
		if curr == nil {
			return nil
		}
		ev := curr.events()
		if ev == nil {
			return nil
		}
		n++
		return writeEvent(gw, curr.name+".ev1", curr.name, ev)
	}
	sc := featio.NewScanner(br)
	for sc.Next() {
		b := sc.Feat().(*bed.Bed12)
		if b.FeatStrand == seq.None || len(b.BlockSizes) < 2 {
			continue
		}
		name := geneOf(b.FeatName)
		if curr == nil || curr.name != name {
			err = flush()
			if err != nil {
				return n, err
			}
			curr = newGene(name)
		}
		curr.add(b)
	}
	err = sc.Error()
	if err != nil {
		return n, err
	}
	return n, flush()
}

// geneOf returns the gene name of the named transcript.
func geneOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name
	}
	return name[:i]
}

// exon is a node in a gene's exon graph.
type exon struct {
	id         int64
	chrom      string
	start, end int
	strand     seq.Strand
}

func (e *exon) ID() int64 { return e.id }

type exonKey struct{ start, end int }

// gene is the exon graph of the transcripts of a gene.
type gene struct {
	name        string
	exons       map[exonKey]*exon
	g           *simple.DirectedGraph
	transcripts [][]*exon
	first       map[*exon]bool
}

func newGene(name string) *gene {
	return &gene{
		name:  name,
		exons: make(map[exonKey]*exon),
		g:     simple.NewDirectedGraph(),
		first: make(map[*exon]bool),
	}
}

// add adds the exons of the transcript b to the gene.
func (g *gene) add(b *bed.Bed12) {
	t := make([]*exon, len(b.BlockSizes))
	for i, size := range b.BlockSizes {
		start := b.ChromStart + b.BlockStarts[i]
		k := exonKey{start: start, end: start + size}
		e, ok := g.exons[k]
		if !ok {
			e = &exon{id: int64(len(g.exons)), chrom: b.Chrom, start: k.start, end: k.end, strand: b.FeatStrand}
			g.exons[k] = e
			g.g.AddNode(e)
		}
		if i != 0 && t[i-1] != e {
			g.g.SetEdge(g.g.NewEdge(t[i-1], e))
		}
		t[i] = e
	}
	g.transcripts = append(g.transcripts, t)
	if b.FeatStrand == seq.Minus {
		g.first[t[len(t)-1]] = true
	} else {
		g.first[t[0]] = true
	}
}

// events returns the distinct exon paths from each alternative first
// exon of the gene to the first exon shared by the transcripts. It
// returns nil if the gene has no alternative first exon event.
func (g *gene) events() [][]*exon {
	if len(g.transcripts) < 2 || len(g.first) < 2 {
		return nil
	}
	minus := g.transcripts[0][0].strand == seq.Minus

	// The shared exon is the first exon reached by more than
	// one transcript in the direction of transcription.
	var shared []*exon
	for _, t := range g.transcripts {
		for _, e := range t {
			if (minus && g.g.From(e.id).Len() > 1) || (!minus && g.g.To(e.id).Len() > 1) {
				shared = append(shared, e)
				break
			}
		}
	}
	if len(shared) == 0 {
		return nil
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].start < shared[j].start })
	common := shared[0]
	if minus {
		common = shared[len(shared)-1]
	}

	var (
		paths [][]*exon
		seen  = make(map[string]bool)
	)
	for _, t := range g.transcripts {
		var p []graph.Node
		if minus {
			p, _ = path.DijkstraFrom(common, g.g).To(t[len(t)-1].id)
		} else {
			p, _ = path.DijkstraFrom(t[0], g.g).To(common.id)
		}
		if len(p) < 2 {
			continue
		}
		exons := make([]*exon, len(p))
		var key strings.Builder
		for i, n := range p {
			exons[i] = n.(*exon)
			fmt.Fprintf(&key, "%d,", n.ID())
		}
		if seen[key.String()] {
			continue
		}
		seen[key.String()] = true
		paths = append(paths, exons)
	}
	if len(paths) < 2 {
		return nil
	}
	return paths
}

// writeEvent writes the event paths as a GFF gene feature with one
// mRNA feature per path.
func writeEvent(w *gff.Writer, id, name string, paths [][]*exon) error {
	start, end := paths[0][0].start, paths[0][0].end
	for _, p := range paths {
		for _, e := range p {
			if e.start < start {
				start = e.start
			}
			if e.end > end {
				end = e.end
			}
		}
	}
	first := paths[0][0]
	_, err := w.Write(&gff.Feature{
		SeqName:        first.chrom,
		Source:         "gimme",
		Feature:        "gene",
		FeatStart:      start,
		FeatEnd:        end,
		FeatStrand:     first.strand,
		FeatFrame:      gff.NoFrame,
		FeatAttributes: gff.Attributes{{Tag: "ID", Value: id}, {Tag: "Name", Value: name}},
	})
	if err != nil {
		return err
	}
	for i, p := range paths {
		mrna := fmt.Sprintf("%s.%d", id, i+1)
		_, err = w.Write(&gff.Feature{
			SeqName:        first.chrom,
			Source:         "gimme",
			Feature:        "mRNA",
			FeatStart:      p[0].start,
			FeatEnd:        p[len(p)-1].end,
			FeatStrand:     first.strand,
			FeatFrame:      gff.NoFrame,
			FeatAttributes: gff.Attributes{{Tag: "ID", Value: mrna}, {Tag: "Parent", Value: id}},
		})
		if err != nil {
			return err
		}
		for j, e := range p {
			_, err = w.Write(&gff.Feature{
				SeqName:        e.chrom,
				Source:         "gimme",
				Feature:        "exon",
				FeatStart:      e.start,
				FeatEnd:        e.end,
				FeatStrand:     e.strand,
				FeatFrame:      gff.NoFrame,
				FeatAttributes: gff.Attributes{{Tag: "ID", Value: fmt.Sprintf("%s.%d", mrna, j+1)}, {Tag: "Parent", Value: mrna}},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
