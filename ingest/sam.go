// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"io"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/errors"

	"github.com/kortschak/gimme/splice"
)

// samReader is the common behaviour of SAM and BAM readers.
type samReader interface {
	Read() (*sam.Record, error)
}

// SAMReader reads spliced alignments from a SAM stream.
type SAMReader struct {
	r samReader
}

// NewSAMReader returns a new SAMReader reading from r.
func NewSAMReader(r io.Reader) (*SAMReader, error) {
	sr, err := sam.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &SAMReader{r: sr}, nil
}

// Read returns the next mapped alignment in the stream.
func (r *SAMReader) Read() (splice.Record, error) { return readMapped(r.r) }

// BAMReader reads spliced alignments from a BAM stream.
type BAMReader struct {
	r *bam.Reader
}

// NewBAMReader returns a new BAMReader reading from r.
func NewBAMReader(r io.Reader) (*BAMReader, error) {
	br, err := bam.NewReader(r, 0)
	if err != nil {
		return nil, err
	}
	return &BAMReader{r: br}, nil
}

// Read returns the next mapped alignment in the stream.
func (r *BAMReader) Read() (splice.Record, error) { return readMapped(r.r) }

// Close closes the BAM stream.
func (r *BAMReader) Close() error { return r.r.Close() }

// readMapped returns the next mapped primary alignment from r.
func readMapped(r samReader) (splice.Record, error) {
	for {
		rec, err := r.Read()
		if err != nil {
			return splice.Record{}, err
		}
		if rec.Ref == nil || rec.Flags&(sam.Unmapped|sam.Secondary) != 0 {
			continue
		}
		return samRecord(rec)
	}
}

// samRecord returns the alignment described by rec. Reference consuming
// CIGAR operations extend the current exon and skipped regions, N, start
// a new exon.
func samRecord(rec *sam.Record) (splice.Record, error) {
	chrom := rec.Ref.Name()
	r := splice.Record{Name: rec.Name}
	start := rec.Pos
	pos := start
	for _, co := range rec.Cigar {
		switch co.Type() {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch, sam.CigarDeletion:
			pos += co.Len()
		case sam.CigarSkipped:
			if pos > start {
				r.Exons = append(r.Exons, splice.Interval{Chrom: chrom, Start: start, End: pos})
			}
			pos += co.Len()
			start = pos
		}
	}
	if pos > start {
		r.Exons = append(r.Exons, splice.Interval{Chrom: chrom, Start: start, End: pos})
	}
	if len(r.Exons) == 0 {
		return r, errors.E(errors.Invalid, "ingest: no aligned bases in record", rec.Name)
	}
	return r, nil
}
