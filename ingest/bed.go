// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"bufio"
	"bytes"
	"io"

	"github.com/biogo/biogo/io/featio/bed"
	"github.com/grailbio/base/errors"

	"github.com/kortschak/gimme/splice"
)

// BEDReader reads alignments from a BED12 stream. Each block of a BED12
// line is an aligned exon.
type BEDReader struct {
	src *lines
	r   *bed.Reader
}

// NewBEDReader returns a new BEDReader reading from r. Blank lines are
// ignored and the last line need not be newline terminated.
func NewBEDReader(r io.Reader) (*BEDReader, error) {
	src := &lines{r: bufio.NewReader(r)}
	br, err := bed.NewReader(src, 12)
	if err != nil {
		return nil, err
	}
	return &BEDReader{src: src, r: br}, nil
}

// Read returns the next alignment in the stream. Malformed lines are
// reported as errors of kind errors.Invalid and reading may continue.
func (r *BEDReader) Read() (splice.Record, error) {
	for {
		f, err := r.r.Read()
		if err != nil {
			if err == io.EOF || r.src.err != nil {
				return splice.Record{}, err
			}
			return splice.Record{}, errors.E(errors.Invalid, "ingest: malformed BED record:", err)
		}
		b, ok := f.(*bed.Bed12)
		if !ok || b == nil {
			continue
		}
		return bedRecord(b)
	}
}

// bedRecord returns the alignment described by b.
func bedRecord(b *bed.Bed12) (splice.Record, error) {
	rec := splice.Record{Name: b.FeatName}
	if len(b.BlockSizes) == 0 {
		rec.Exons = []splice.Interval{{Chrom: b.Chrom, Start: b.ChromStart, End: b.ChromEnd}}
		return rec, nil
	}
	if len(b.BlockSizes) != len(b.BlockStarts) {
		return rec, errors.E(errors.Invalid, "ingest: block count mismatch in BED record", b.FeatName)
	}
	rec.Exons = make([]splice.Interval, len(b.BlockSizes))
	for i, size := range b.BlockSizes {
		start := b.ChromStart + b.BlockStarts[i]
		rec.Exons[i] = splice.Interval{Chrom: b.Chrom, Start: start, End: start + size}
	}
	return rec, nil
}

// lines is an io.Reader that yields the non-blank lines of r, each
// terminated by a newline. The first read error other than io.EOF
// is retained in err.
type lines struct {
	r    *bufio.Reader
	buf  []byte
	done bool
	err  error
}

func (l *lines) Read(p []byte) (int, error) {
	for len(l.buf) == 0 {
		if l.err != nil {
			return 0, l.err
		}
		if l.done {
			return 0, io.EOF
		}
		line, err := l.r.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				l.err = err
				return 0, err
			}
			l.done = true
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if line[len(line)-1] != '\n' {
			line = append(line, '\n')
		}
		l.buf = line
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}
