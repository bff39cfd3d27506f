// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

// FillGaps returns the exons with every gap of at most gap bases
// between adjacent exons filled. Alignments may contain small gaps from
// indels that do not represent introns. The exons must be sorted by start.
// The input slice is not modified.
func FillGaps(exons []Interval, gap int) []Interval {
	if len(exons) == 0 {
		return nil
	}
	filled := make([]Interval, 0, len(exons))
	curr := exons[0]
	for _, next := range exons[1:] {
		if next.Start-curr.End <= gap {
			if next.End > curr.End {
				curr.End = next.End
			}
			continue
		}
		filled = append(filled, curr)
		curr = next
	}
	return append(filled, curr)
}

// SplitSmall removes exons shorter than min and splits the alignment
// into the runs of exons preceding and succeeding each removed exon.
// Empty runs are not returned.
func SplitSmall(exons []Interval, min int) [][]Interval {
	var (
		parts [][]Interval
		kept  []Interval
	)
	for _, e := range exons {
		if e.Len() >= min {
			kept = append(kept, e)
			continue
		}
		if len(kept) != 0 {
			parts = append(parts, kept)
			kept = nil
		}
	}
	if len(kept) != 0 {
		parts = append(parts, kept)
	}
	return parts
}

// Normalize fills gaps and removes small exons from an alignment
// according to p, returning the independent exon chains that remain.
func Normalize(exons []Interval, p Params) [][]Interval {
	return SplitSmall(FillGaps(exons, p.GapSize), p.MinExon)
}
