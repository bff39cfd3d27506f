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
)

// Format is an alignment file format.
type Format int

const (
	Unknown Format = iota
	BED
	PSL
	SAM
	BAM
)

func (f Format) String() string {
	switch f {
	case Unknown:
		return "unknown"
	case BED:
		return "BED12"
	case PSL:
		return "PSL"
	case SAM:
		return "SAM"
	case BAM:
		return "BAM"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	bamMagic  = []byte("BAM\x01")
)

// peekLen is the longest first line that can be examined by Detect.
const peekLen = 4096

// Detect returns the format of the text alignment stream held by r
// based on its first line. No data is consumed from r.
//
// A line with 12 columns and ordered coordinates in columns 2 and 3 is
// BED12 and a line with 21 columns and ordered query coordinates in
// columns 12 and 13 is PSL. A PSL header or a SAM header line is also
// recognised.
func Detect(r *bufio.Reader) (Format, error) {
	b, err := r.Peek(peekLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return Unknown, err
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	b = bytes.TrimSuffix(b, []byte{'\r'})
	if len(b) == 0 {
		return Unknown, nil
	}
	if b[0] == '@' {
		return SAM, nil
	}
	if bytes.HasPrefix(b, []byte("psLayout")) {
		return PSL, nil
	}

	cols := bytes.Fields(b)
	switch len(cols) {
	case 12:
		if ordered(cols[1], cols[2]) && isStrand(cols[5]) {
			return BED, nil
		}
	case 21:
		if ordered(cols[11], cols[12]) && isStrand(cols[8]) {
			return PSL, nil
		}
	}
	return Unknown, nil
}

// ordered returns whether a and b are integers with a <= b.
func ordered(a, b []byte) bool {
	x, err := strconv.Atoi(string(a))
	if err != nil {
		return false
	}
	y, err := strconv.Atoi(string(b))
	if err != nil {
		return false
	}
	return x <= y
}

// isStrand returns whether b is a strand field. PSL strands from
// translated alignments hold the query and target strand.
func isStrand(b []byte) bool {
	switch string(b) {
	case "+", "-", ".", "++", "+-", "-+", "--":
		return true
	}
	return false
}
