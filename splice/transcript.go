// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"fmt"
	"image/color"

	"github.com/biogo/biogo/io/featio/bed"
	"github.com/biogo/biogo/seq"
)

// Block is an exon of a transcript. Start is relative to the start of
// the transcript.
type Block struct {
	Start, Size int
}

// Transcript is an assembled transcript model.
type Transcript struct {
	Chrom      string
	Start, End int
	Blocks     []Block
	Strand     seq.Strand

	// Gene and ID are the gene and transcript numbers
	// of the transcript. Transcript numbers start from
	// one within each gene.
	Gene, ID int
}

// newTranscript returns a transcript for the exons on the named
// chromosome. The exons must be sorted by start.
func newTranscript(chrom string, exons []Interval) *Transcript {
	t := &Transcript{
		Chrom:  chrom,
		Start:  exons[0].Start,
		End:    exons[len(exons)-1].End,
		Blocks: make([]Block, len(exons)),
		Strand: seq.Plus,
	}
	for i, e := range exons {
		t.Blocks[i] = Block{Start: e.Start - t.Start, Size: e.Len()}
	}
	return t
}

// Len returns the summed length of the transcript's exons.
func (t *Transcript) Len() int {
	var n int
	for _, b := range t.Blocks {
		n += b.Size
	}
	return n
}

// Exons returns the genomic intervals of the transcript's exons.
func (t *Transcript) Exons() []Interval {
	exons := make([]Interval, len(t.Blocks))
	for i, b := range t.Blocks {
		exons[i] = Interval{Chrom: t.Chrom, Start: t.Start + b.Start, End: t.Start + b.Start + b.Size}
	}
	return exons
}

// Name returns the name of the transcript, chrom:gene.transcript.
func (t *Transcript) Name() string {
	return fmt.Sprintf("%s:%d.%d", t.Chrom, t.Gene, t.ID)
}

// Bed12 returns a BED12 feature for the transcript.
func (t *Transcript) Bed12() *bed.Bed12 {
	sizes := make([]int, len(t.Blocks))
	starts := make([]int, len(t.Blocks))
	for i, b := range t.Blocks {
		sizes[i] = b.Size
		starts[i] = b.Start
	}
	return &bed.Bed12{
		Chrom:       t.Chrom,
		ChromStart:  t.Start,
		ChromEnd:    t.End,
		FeatName:    t.Name(),
		FeatScore:   1000,
		FeatStrand:  t.Strand,
		ThickStart:  t.Start,
		ThickEnd:    t.End,
		Rgb:         color.RGBA{A: 0xff},
		BlockCount:  len(t.Blocks),
		BlockSizes:  sizes,
		BlockStarts: starts,
	}
}

// Gene is a group of transcripts assembled from a single locus.
type Gene struct {
	Transcripts []*Transcript
}
