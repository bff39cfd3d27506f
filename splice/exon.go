// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import "fmt"

// Interval is a zero-based half-open genomic interval.
type Interval struct {
	Chrom      string
	Start, End int
}

// Len returns the length of the interval.
func (iv Interval) Len() int { return iv.End - iv.Start }

func (iv Interval) String() string { return fmt.Sprintf("%s:%d-%d", iv.Chrom, iv.Start, iv.End) }

// Key is the coordinate identity of an exon or intron within a Session.
// Chromosome names are interned by the Session.
type Key struct {
	Chrom      int32
	Start, End int
}

// Terminal is the set of terminal positions an exon has been seen at.
type Terminal uint8

const (
	// FivePrime marks the first exon of an alignment.
	FivePrime Terminal = 1 << iota
	// ThreePrime marks the last exon of an alignment.
	ThreePrime
)

func (t Terminal) String() string {
	switch t {
	case 0:
		return "internal"
	case FivePrime:
		return "5'"
	case ThreePrime:
		return "3'"
	case FivePrime | ThreePrime:
		return "5'|3'"
	default:
		return fmt.Sprintf("Terminal(%d)", uint8(t))
	}
}

// Exon is a canonical exon shared by every alignment that uses its
// coordinates. Exon implements graph.Node.
type Exon struct {
	id int64
	Key

	terminal Terminal
	// internal is set once the exon has been seen
	// inside an alignment and is never cleared.
	internal bool

	next    map[int64]struct{}
	introns map[int64]struct{}
}

func newExon(id int64, k Key) *Exon {
	return &Exon{
		id:      id,
		Key:     k,
		next:    make(map[int64]struct{}),
		introns: make(map[int64]struct{}),
	}
}

// ID returns the session-unique id of the exon.
func (e *Exon) ID() int64 { return e.id }

// Len returns the length of the exon.
func (e *Exon) Len() int { return e.End - e.Start }

// Terminal returns the terminal state of the exon. An exon that has
// been seen at an internal position is never terminal.
func (e *Exon) Terminal() Terminal {
	if e.internal {
		return 0
	}
	return e.terminal
}

// Is returns whether the exon is terminal at position t.
func (e *Exon) Is(t Terminal) bool { return e.Terminal()&t != 0 }

// observe merges an occurrence of the exon at position t into its
// terminal state. A zero t is an internal occurrence.
func (e *Exon) observe(t Terminal) {
	if t == 0 {
		e.internal = true
		e.terminal = 0
		return
	}
	if !e.internal {
		e.terminal |= t
	}
}

func (e *Exon) String() string {
	return fmt.Sprintf("%d:%d-%d", e.Chrom, e.Start, e.End)
}

// byEndStart sorts exons by end then start.
type byEndStart []*Exon

func (e byEndStart) Len() int      { return len(e) }
func (e byEndStart) Swap(i, j int) { e[i], e[j] = e[j], e[i] }
func (e byEndStart) Less(i, j int) bool {
	if e[i].End != e[j].End {
		return e[i].End < e[j].End
	}
	return e[i].Start < e[j].Start
}

// byStartEnd sorts exons by start then end.
type byStartEnd []*Exon

func (e byStartEnd) Len() int      { return len(e) }
func (e byStartEnd) Swap(i, j int) { e[i], e[j] = e[j], e[i] }
func (e byStartEnd) Less(i, j int) bool {
	if e[i].Start != e[j].Start {
		return e[i].Start < e[j].Start
	}
	return e[i].End < e[j].End
}
