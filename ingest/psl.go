// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"

	"github.com/kortschak/gimme/splice"
)

// PSL column indexes.
const (
	pslStrand      = 8
	pslQName       = 9
	pslTName       = 13
	pslTSize       = 14
	pslBlockCount  = 17
	pslBlockSizes  = 18
	pslTStarts     = 20
	pslColumnCount = 21
)

// PSLReader reads alignments from a PSL stream. Each block of a PSL
// line is an aligned exon in target coordinates.
type PSLReader struct {
	sc     *bufio.Scanner
	line   int
	header bool
}

// NewPSLReader returns a new PSLReader reading from r. An optional
// psLayout header is skipped.
func NewPSLReader(r io.Reader) *PSLReader {
	return &PSLReader{sc: bufio.NewScanner(r)}
}

// Read returns the next alignment in the stream.
func (r *PSLReader) Read() (splice.Record, error) {
	for r.sc.Scan() {
		r.line++
		b := bytes.TrimSpace(r.sc.Bytes())
		switch {
		case bytes.HasPrefix(b, []byte("psLayout")):
			r.header = true
			continue
		case r.header:
			if bytes.HasPrefix(b, []byte("---")) {
				r.header = false
			}
			continue
		case len(b) == 0:
			continue
		}
		rec, err := pslRecord(bytes.Fields(b))
		if err != nil {
			return rec, errors.E(errors.Invalid, fmt.Sprintf("ingest: line %d:", r.line), err)
		}
		return rec, nil
	}
	err := r.sc.Err()
	if err == nil {
		err = io.EOF
	}
	return splice.Record{}, err
}

// pslRecord returns the alignment described by the PSL fields.
func pslRecord(f [][]byte) (splice.Record, error) {
	if len(f) != pslColumnCount {
		return splice.Record{}, fmt.Errorf("invalid PSL column count: %d", len(f))
	}
	rec := splice.Record{Name: string(f[pslQName])}
	n, err := strconv.Atoi(string(f[pslBlockCount]))
	if err != nil {
		return rec, err
	}
	sizes, err := pslInts(f[pslBlockSizes])
	if err != nil {
		return rec, err
	}
	starts, err := pslInts(f[pslTStarts])
	if err != nil {
		return rec, err
	}
	if len(sizes) != n || len(starts) != n {
		return rec, fmt.Errorf("block count mismatch in %s", rec.Name)
	}

	// Translated alignments to the reverse strand of the
	// target hold reverse strand target coordinates.
	var tSize int
	reverse := len(f[pslStrand]) == 2 && f[pslStrand][1] == '-'
	if reverse {
		tSize, err = strconv.Atoi(string(f[pslTSize]))
		if err != nil {
			return rec, err
		}
	}

	chrom := string(f[pslTName])
	rec.Exons = make([]splice.Interval, n)
	for i := range rec.Exons {
		start, end := starts[i], starts[i]+sizes[i]
		if reverse {
			start, end = tSize-end, tSize-start
			rec.Exons[n-1-i] = splice.Interval{Chrom: chrom, Start: start, End: end}
			continue
		}
		rec.Exons[i] = splice.Interval{Chrom: chrom, Start: start, End: end}
	}
	return rec, nil
}

// pslInts parses a comma-separated, optionally comma-terminated, list
// of integers.
func pslInts(b []byte) ([]int, error) {
	b = bytes.TrimSuffix(b, []byte{','})
	if len(b) == 0 {
		return nil, nil
	}
	fields := bytes.Split(b, []byte{','})
	v := make([]int, len(fields))
	for i, f := range fields {
		var err error
		v[i], err = strconv.Atoi(string(f))
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}
