// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// txseq writes the sequences of BED12 gene models as fasta.
//
// In transcript mode the spliced sequence of each model is written with
// the model's name as its ID. In exon mode the sequence of each exon is
// written with the ID name_n for the nth exon of the model. Sequences of
// models on the minus strand are reverse complemented.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/bed"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"
)

var mode string

var rootCmd = &cobra.Command{
	Use:   "txseq [--mode transcript|exon] <models.bed> <genome.fa>",
	Short: "Write the sequences of gene models as fasta",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mode != "transcript" && mode != "exon" {
			return errors.E(errors.Invalid, "unsupported output mode:", mode)
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		log.Printf("reading reference from %q", args[1])
		ref, err := readReference(f)
		f.Close()
		if err != nil {
			return err
		}

		f, err = os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := writeSeqs(os.Stdout, f, ref, mode)
		log.Printf("wrote sequences for %d models", n)
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&mode, "mode", "transcript", "output mode: transcript or exon")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// readReference returns the fasta sequences in r keyed by their IDs.
func readReference(r io.Reader) (map[string]*linear.Seq, error) {
	ref := make(map[string]*linear.Seq)
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		ref[s.Name()] = s
	}
	return ref, sc.Error()
}

// writeSeqs writes the sequences of the BED12 models in r to w in the
// given mode. Models that cannot be extracted from the reference are
// logged and skipped. It returns the number of models written.
func writeSeqs(w io.Writer, r io.Reader, ref map[string]*linear.Seq, mode string) (int, error) {
	br, err := bed.NewReader(r, 12)
	if err != nil {
		return 0, err
	}
	var n int
	sc := featio.NewScanner(br)
	for i := 1; sc.Next(); i++ {
		b := sc.Feat().(*bed.Bed12)
		exons, err := exonSeqs(b, ref)
		if err != nil {
			log.Error.Printf("skipping %s: %v", b.FeatName, err)
			continue
		}
		switch mode {
		case "transcript":
			t := linear.NewSeq(b.FeatName, nil, alphabet.DNA)
			for _, e := range exons {
				t.AppendLetters(e.Seq...)
			}
			if b.FeatStrand == seq.Minus {
				t.RevComp()
			}
			_, err = fmt.Fprintf(w, "%60a\n", t)
		case "exon":
			for j, e := range exons {
				e.ID = fmt.Sprintf("%s_%d", b.FeatName, j+1)
				if b.FeatStrand == seq.Minus {
					e.RevComp()
				}
				_, err = fmt.Fprintf(w, "%60a\n", e)
				if err != nil {
					break
				}
			}
		}
		if err != nil {
			return n, err
		}
		n++
		if i%1000 == 0 {
			log.Printf("... %d", i)
		}
	}
	return n, sc.Error()
}

// exonSeqs returns the sequences of the exons of b in coordinate order.
func exonSeqs(b *bed.Bed12, ref map[string]*linear.Seq) ([]*linear.Seq, error) {
	chrom, ok := ref[b.Chrom]
	if !ok {
		return nil, errors.E(errors.NotExist, "no reference sequence for", b.Chrom)
	}
	exons := make([]*linear.Seq, len(b.BlockSizes))
	for i, size := range b.BlockSizes {
		start := b.ChromStart + b.BlockStarts[i]
		end := start + size
		if start < 0 || end > chrom.Len() {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("exon %d:%d-%d out of range", i+1, start, end))
		}
		s := linear.NewSeq("", nil, alphabet.DNA)
		s.AppendLetters(chrom.Seq[start:end]...)
		exons[i] = s
	}
	return exons, nil
}
