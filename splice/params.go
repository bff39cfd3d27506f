// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"strconv"

	"github.com/grailbio/base/errors"
)

// Params holds the assembly parameters. All lengths are in bases.
type Params struct {
	// GapSize is the largest gap between adjacent
	// alignment blocks that is filled.
	GapSize int
	// MinExon is the shortest exon retained. Alignments
	// are split at shorter exons.
	MinExon int
	// MaxIntron is the longest intron linked into the
	// splice graph.
	MaxIntron int
	// MinUTR is the largest terminal exon extension that
	// is collapsed into a neighbouring exon.
	MinUTR int
	// MinTranscript is the length a transcript must
	// exceed to be reported.
	MinTranscript int

	// Min specifies that a minimum set of transcripts
	// covering every splice graph edge is reported rather
	// than every path.
	Min bool
	// MaxPaths is the largest number of paths enumerated
	// for a locus before it falls back to a minimum path
	// cover.
	MaxPaths int
}

// DefaultParams are the default assembly parameters.
var DefaultParams = Params{
	GapSize:       10,
	MinExon:       10,
	MaxIntron:     100000,
	MinUTR:        100,
	MinTranscript: 300,
	MaxPaths:      10000,
}

// Validate returns an error if any of the parameters are out of range.
func (p Params) Validate() error {
	for _, c := range []struct {
		name string
		val  int
	}{
		{"gap size", p.GapSize},
		{"minimum exon length", p.MinExon},
		{"maximum intron length", p.MaxIntron},
		{"minimum UTR length", p.MinUTR},
		{"minimum transcript length", p.MinTranscript},
		{"maximum path count", p.MaxPaths},
	} {
		if c.val <= 0 {
			return errors.E(errors.Invalid, "splice: invalid "+c.name+":", strconv.Itoa(c.val))
		}
	}
	return nil
}
