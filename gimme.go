// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gimme assembles transcript models from spliced alignments of RNA
// sequences to a reference genome.
//
// Alignments are read from BED12, PSL, SAM or BAM files, optionally gzip
// compressed. Exons shared between alignments are merged into splice
// graphs, one per gene locus, and every path through each graph is
// reported as a transcript model in BED12 format. Transcripts are named
// chrom:gene.transcript.
package main

import (
	"bufio"
	"io"
	golog "log"
	"os"

	"github.com/biogo/biogo/io/featio/bed"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"

	"github.com/kortschak/gimme/config"
	"github.com/kortschak/gimme/ingest"
	"github.com/kortschak/gimme/splice"
)

var (
	settings string
	v        = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "gimme [flags] <alignments>...",
	Short: "Assemble transcript models from spliced alignments",
	Long: `Assemble transcript models from spliced alignments.

gimme reads spliced alignments of RNA sequences to a genome in BED12, PSL,
SAM or BAM format and merges them into gene models. Alignments sharing an
intron are placed in the same gene, exons differing only by a short UTR
extension are merged, and every distinct path of exons through each gene
is written as a BED12 transcript model.

Settings may be given as flags, in a YAML file named by --config, or in
environment variables prefixed with GIMME_, for example GIMME_MAX_INTRON.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.New(v, settings)
		if err != nil {
			return err
		}
		return run(c, args)
	},
}

func init() {
	p := splice.DefaultParams
	f := rootCmd.Flags()
	f.StringVar(&settings, "config", "", "path to a YAML settings file")
	f.Int("gap-size", p.GapSize, "maximum gap between alignment blocks to fill (bp)")
	f.Int("min-exon", p.MinExon, "minimum exon length (bp)")
	f.Int("max-intron", p.MaxIntron, "maximum intron length (bp)")
	f.Int("min-utr", p.MinUTR, "maximum alternative UTR length to collapse (bp)")
	f.Int("min-transcript", p.MinTranscript, "minimum transcript length (bp)")
	f.Bool("min", p.Min, "report a minimum set of isoforms")
	f.Int("max-paths", p.MaxPaths, "maximum number of isoforms enumerated for a gene")
	f.String("out", "", "output file name (default to stdout)")
	f.String("err", "", "log file name (default to stderr)")
	for _, name := range []string{
		"gap-size", "min-exon", "max-intron", "min-utr", "min-transcript",
		"min", "max-paths", "out", "err",
	} {
		err := v.BindPFlag(name, f.Lookup(name))
		if err != nil {
			log.Fatalf("failed to bind flag %q: %v", name, err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// run assembles the alignments in the files at paths using the
// settings in c.
func run(c config.Config, paths []string) error {
	if c.Err != "" {
		w, err := os.Create(c.Err)
		if err != nil {
			// Oh, the irony.
			return errors.E(err, "failed to create log file:", c.Err)
		}
		defer w.Close()
		golog.SetOutput(w)
		defer golog.SetOutput(os.Stderr)
	}

	p, err := c.Params()
	if err != nil {
		return err
	}
	log.Printf("gap size = %d, min exon = %d, max intron = %d, min UTR = %d, min transcript = %d, max paths = %d, min isoforms = %t",
		p.GapSize, p.MinExon, p.MaxIntron, p.MinUTR, p.MinTranscript, p.MaxPaths, p.Min)
	g, err := splice.NewGenome(p)
	if err != nil {
		return err
	}
	var unreadable int
	for _, path := range paths {
		n, err := addAlignments(g, path)
		unreadable += n
		if err != nil {
			return err
		}
	}

	log.Printf("building gene models")
	transcripts, stats, err := g.Build()
	if err != nil {
		return err
	}
	stats.Alignments += unreadable
	stats.Rejected += unreadable

	out := os.Stdout
	if c.Out != "" {
		out, err = os.Create(c.Out)
		if err != nil {
			return errors.E(err, "failed to create out file:", c.Out)
		}
	}
	err = writeModels(out, transcripts)
	if c.Out != "" {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		return errors.E(err, "failed to write gene models")
	}

	summarize(stats)
	return nil
}

// addAlignments adds the alignments in the file at path to g. It returns
// the number of records that could not be read.
func addAlignments(g *splice.Genome, path string) (unreadable int, err error) {
	f, err := ingest.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	log.Printf("parsing %s alignments from %q", f.Format, path)
	for n := 1; ; n++ {
		rec, err := f.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !errors.Is(errors.Invalid, err) {
				return unreadable, errors.E(err, "failed to read alignments:", path)
			}
			unreadable++
			log.Error.Printf("skipping alignment %d of %q: %v", n, path, err)
			continue
		}
		err = g.Add(rec)
		if err != nil {
			log.Error.Printf("skipping alignment %d of %q: %v", n, path, err)
		}
		if n%1000 == 0 {
			log.Printf("... %d", n)
		}
	}
	return unreadable, nil
}

// writeModels writes the transcripts to w as BED12.
func writeModels(w io.Writer, transcripts []*splice.Transcript) error {
	buf := bufio.NewWriter(w)
	bw, err := bed.NewWriter(buf, 12)
	if err != nil {
		return err
	}
	for _, t := range transcripts {
		_, err = bw.Write(t.Bed12())
		if err != nil {
			return err
		}
	}
	return buf.Flush()
}

func summarize(stats splice.Stats) {
	log.Printf("total alignments = %d (%d rejected)", stats.Alignments, stats.Rejected)
	log.Printf("total exons = %d", stats.Exons)
	log.Printf("total genes = %d", stats.Genes)
	log.Printf("total transcripts = %d", stats.Transcripts)
	if stats.Genes != 0 {
		log.Printf("isoform/gene = %.2f", float64(stats.Transcripts)/float64(stats.Genes))
	}
	if stats.Excluded != 0 {
		log.Printf("short transcripts excluded = %d", stats.Excluded)
	}
	if stats.Truncated != 0 {
		log.Printf("genes reported as minimum isoform sets = %d", stats.Truncated)
	}
	if stats.Skipped != 0 {
		log.Printf("genes skipped = %d", stats.Skipped)
	}
}
