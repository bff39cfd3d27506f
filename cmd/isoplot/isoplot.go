// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// isoplot renders a histogram of the number of isoforms per gene in
// gimme BED12 gene models.
package main

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/bed"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	bins   int
	format string
)

var rootCmd = &cobra.Command{
	Use:   "isoplot <models.bed>",
	Short: "Plot the distribution of isoforms per gene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		counts, err := isoforms(f)
		f.Close()
		if err != nil {
			return err
		}
		log.Printf("%d genes", len(counts))

		p, err := histogram(counts, bins, filepath.Base(args[0]))
		if err != nil {
			return err
		}
		return p.Save(19*vg.Centimeter, 15*vg.Centimeter, filepath.Base(args[0])+"."+format)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().IntVar(&bins, "bins", 20, "number of histogram bins")
	rootCmd.Flags().StringVar(&format, "format", "svg", "output image format (svg, pdf, png, eps)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// isoforms returns the number of transcripts of each gene in the BED12
// models read from r, ordered by gene name. Genes are named by the
// prefix of the transcript name before the last '.'.
func isoforms(r io.Reader) (plotter.Values, error) {
	br, err := bed.NewReader(r, 12)
	if err != nil {
		return nil, err
	}
	genes := make(map[string]int)
	sc := featio.NewScanner(br)
	for sc.Next() {
		name := sc.Feat().(*bed.Bed12).FeatName
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		genes[name]++
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(genes))
	for n := range genes {
		names = append(names, n)
	}
	sort.Strings(names)
	counts := make(plotter.Values, len(names))
	for i, n := range names {
		counts[i] = float64(genes[n])
	}
	return counts, nil
}

func histogram(counts plotter.Values, bins int, title string) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	h, err := plotter.NewHist(counts, bins)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	p.Title.Text = title
	p.X.Label.Text = "isoforms per gene"
	p.Y.Label.Text = "genes"
	return p, nil
}
