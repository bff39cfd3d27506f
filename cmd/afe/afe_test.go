// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bedLine(name, strand string, start int, exons ...int) string {
	var sizes, starts []string
	end := start
	for i := 0; i < len(exons); i += 2 {
		sizes = append(sizes, strconv.Itoa(exons[i+1]-exons[i]))
		starts = append(starts, strconv.Itoa(exons[i]-start))
		end = exons[i+1]
	}
	return strings.Join([]string{
		"chr1", strconv.Itoa(start), strconv.Itoa(end), name, "1000", strand, strconv.Itoa(start), strconv.Itoa(end), "0,0,0",
		strconv.Itoa(len(sizes)), strings.Join(sizes, ",") + ",", strings.Join(starts, ",") + ",",
	}, "\t") + "\n"
}

func TestGeneOf(t *testing.T) {
	for _, test := range []struct{ name, want string }{
		{name: "chr1:4.2", want: "chr1:4"},
		{name: "chrUn_gl000220.1:7.1", want: "chrUn_gl000220.1:7"},
		{name: "gene", want: "gene"},
	} {
		assert.Equal(t, test.want, geneOf(test.name))
	}
}

func TestFindEvents(t *testing.T) {
	for _, test := range []struct {
		name   string
		models string
		events int
		mrna   int
		exons  int
	}{
		{
			name: "plus",
			models: bedLine("chr1:1.1", "+", 100, 100, 200, 500, 600, 900, 1000) +
				bedLine("chr1:1.2", "+", 300, 300, 400, 500, 600, 900, 1000),
			events: 1, mrna: 2, exons: 4,
		},
		{
			name: "minus",
			models: bedLine("chr1:2.1", "-", 100, 100, 200, 500, 600, 900, 1000) +
				bedLine("chr1:2.2", "-", 100, 100, 200, 500, 600, 1200, 1300),
			events: 1, mrna: 2, exons: 4,
		},
		{
			name: "two exon paths",
			models: bedLine("chr1:3.1", "+", 100, 100, 200, 900, 1000, 1500, 1600) +
				bedLine("chr1:3.2", "+", 300, 300, 400, 500, 600, 900, 1000, 1500, 1600),
			events: 1, mrna: 2, exons: 5,
		},
		{
			name: "shared first exon",
			models: bedLine("chr1:4.1", "+", 100, 100, 200, 500, 600, 900, 1000) +
				bedLine("chr1:4.2", "+", 100, 100, 200, 550, 600, 900, 1000),
		},
		{
			name: "different genes",
			models: bedLine("chr1:5.1", "+", 100, 100, 200, 500, 600) +
				bedLine("chr1:6.1", "+", 300, 300, 400, 500, 600),
		},
		{
			name: "unstranded",
			models: bedLine("chr1:7.1", ".", 100, 100, 200, 500, 600) +
				bedLine("chr1:7.2", ".", 300, 300, 400, 500, 600),
		},
	} {
		var buf bytes.Buffer
		n, err := findEvents(strings.NewReader(test.models), &buf)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.events, n, test.name)
		out := buf.String()
		assert.Equal(t, test.events, strings.Count(out, "\tgene\t"), "%s: unexpected gene count:\n%s", test.name, out)
		assert.Equal(t, test.mrna, strings.Count(out, "\tmRNA\t"), "%s: unexpected mRNA count:\n%s", test.name, out)
		assert.Equal(t, test.exons, strings.Count(out, "\texon\t"), "%s: unexpected exon count:\n%s", test.name, out)
	}
}
