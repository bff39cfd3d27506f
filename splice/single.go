// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"sort"

	"github.com/biogo/store/interval"
)

// singleExon is an unspliced alignment held for merging.
type singleExon struct {
	Interval
	id uintptr
}

func (e singleExon) ID() uintptr { return e.id }
func (e singleExon) Range() interval.IntRange {
	return interval.IntRange{Start: e.Start, End: e.End}
}
func (e singleExon) Overlap(b interval.IntRange) bool {
	// Abutting intervals are merged.
	return e.End >= b.Start && e.Start <= b.End
}

// addSingle holds an unspliced alignment for single-exon locus merging.
func (s *Session) addSingle(iv Interval) {
	c := s.chrom(iv.Chrom)
	t, ok := s.singles[c]
	if !ok {
		t = &interval.IntTree{}
		s.singles[c] = t
	}
	s.nextID++
	// Insertion cannot fail since ids are unique
	// and start < end is checked by the caller.
	t.Insert(singleExon{Interval: iv, id: s.nextID}, true)
}

// SingleLoci returns the maximal intervals formed by merging
// overlapping unspliced alignments, sorted by chromosome name and start.
func (s *Session) SingleLoci() []Interval {
	chroms := make([]int32, 0, len(s.singles))
	for c := range s.singles {
		chroms = append(chroms, c)
	}
	sort.Slice(chroms, func(i, j int) bool { return s.names[chroms[i]] < s.names[chroms[j]] })

	var merged []Interval
	for _, c := range chroms {
		merged = append(merged, mergeSingles(s.singles[c])...)
	}
	return merged
}

// mergeSingles returns the maximal intervals formed by merging the
// single exons held in t that overlap or abut.
func mergeSingles(t *interval.IntTree) []Interval {
	var (
		merged []Interval
		curr   Interval
		open   bool
	)
	// Do visits intervals in start order.
	t.Do(func(e interval.IntInterface) (done bool) {
		next := e.(singleExon).Interval
		switch {
		case !open:
			curr = next
			open = true
		case next.Start <= curr.End:
			if next.End > curr.End {
				curr.End = next.End
			}
		default:
			merged = append(merged, curr)
			curr = next
		}
		return false
	})
	if open {
		merged = append(merged, curr)
	}
	return merged
}
