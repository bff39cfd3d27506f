// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ivs(chrom string, c ...int) []Interval {
	iv := make([]Interval, len(c)/2)
	for i := range iv {
		iv[i] = Interval{Chrom: chrom, Start: c[2*i], End: c[2*i+1]}
	}
	return iv
}

func TestFillGaps(t *testing.T) {
	for _, test := range []struct {
		exons []Interval
		gap   int
		want  []Interval
	}{
		{
			exons: ivs("chr1", 0, 100, 105, 200, 300, 400),
			gap:   10,
			want:  ivs("chr1", 0, 200, 300, 400),
		},
		{
			exons: ivs("chr1", 0, 100, 110, 200, 211, 300),
			gap:   10,
			want:  ivs("chr1", 0, 200, 211, 300),
		},
		{
			exons: ivs("chr1", 0, 100, 105, 200, 300, 400),
			gap:   0,
			want:  ivs("chr1", 0, 100, 105, 200, 300, 400),
		},
		{
			exons: ivs("chr1", 0, 100, 105, 200, 300, 400),
			gap:   100,
			want:  ivs("chr1", 0, 400),
		},
		{
			// Contained blocks do not shorten the exon.
			exons: ivs("chr1", 0, 100, 50, 80, 300, 400),
			gap:   10,
			want:  ivs("chr1", 0, 100, 300, 400),
		},
		{
			exons: nil,
			gap:   10,
			want:  nil,
		},
	} {
		got := FillGaps(test.exons, test.gap)
		assert.Equal(t, test.want, got, "gap=%d %v", test.gap, test.exons)
		assert.Equal(t, got, FillGaps(got, test.gap), "not idempotent for gap=%d", test.gap)
		assert.True(t, len(got) <= len(test.exons), "exon count increased")
	}
}

func TestFillGapsMonotone(t *testing.T) {
	exons := ivs("chr1", 0, 100, 103, 200, 220, 300, 350, 400, 500, 600)
	prev := len(exons) + 1
	for gap := 0; gap <= 200; gap += 5 {
		n := len(FillGaps(exons, gap))
		assert.True(t, n <= prev, "exon count increased at gap=%d", gap)
		prev = n
	}
}

func TestSplitSmall(t *testing.T) {
	for _, test := range []struct {
		exons []Interval
		min   int
		want  [][]Interval
	}{
		{
			exons: ivs("chr1", 0, 100, 200, 205, 300, 400),
			min:   10,
			want:  [][]Interval{ivs("chr1", 0, 100), ivs("chr1", 300, 400)},
		},
		{
			exons: ivs("chr1", 0, 5, 100, 200, 300, 400),
			min:   10,
			want:  [][]Interval{ivs("chr1", 100, 200, 300, 400)},
		},
		{
			exons: ivs("chr1", 0, 100, 200, 210, 300, 400),
			min:   10,
			want:  [][]Interval{ivs("chr1", 0, 100, 200, 210, 300, 400)},
		},
		{
			exons: ivs("chr1", 0, 5, 100, 105),
			min:   10,
			want:  nil,
		},
	} {
		got := SplitSmall(test.exons, test.min)
		assert.Equal(t, test.want, got, "min=%d %v", test.min, test.exons)
	}
}

func TestNormalize(t *testing.T) {
	p := DefaultParams
	got := Normalize(ivs("chr1", 0, 100, 104, 200, 300, 305, 400, 500, 600, 700), p)
	want := [][]Interval{
		ivs("chr1", 0, 200),
		ivs("chr1", 400, 500, 600, 700),
	}
	assert.Equal(t, want, got)
}
