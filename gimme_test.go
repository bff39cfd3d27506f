// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/gimme/config"
)

const alignments = "chr1\t1000\t2200\tread1\t0\t+\t1000\t2200\t0,0,0\t3\t200,200,200,\t0,500,1000,\n" +
	"chr1\t1000\t2200\tread2\t0\t+\t1000\t2200\t0,0,0\t3\t200,150,200,\t0,550,1000,\n" +
	"chr1\t1005\t2200\tread3\t0\t+\t1005\t2200\t0,0,0\t3\t195,200,200,\t0,495,995,\n" +
	"chr1\t9000\t9400\tread4\t0\t+\t9000\t9400\t0,0,0\t1\t400,\t0,\n"

func TestRun(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	in := filepath.Join(dir, "reads.bed")
	require.NoError(t, ioutil.WriteFile(in, []byte(alignments), 0644))

	c, err := config.New(config.NewViper(), "")
	require.NoError(t, err)
	c.Out = filepath.Join(dir, "models.bed")
	c.Err = filepath.Join(dir, "gimme.log")
	require.NoError(t, run(c, []string{in}))

	b, err := ioutil.ReadFile(c.Out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)

	var names []string
	for _, l := range lines {
		f := strings.Split(l, "\t")
		require.Len(t, f, 12, "unexpected BED12 line: %q", l)
		names = append(names, f[3])
		assert.Equal(t, "1000", f[4])
	}
	assert.Equal(t, []string{"chr1:1.1", "chr1:1.2", "chr1:2.1"}, names)

	first := strings.Split(lines[0], "\t")
	assert.Equal(t, []string{"chr1", "1000", "2200"}, first[:3])
	assert.Equal(t, "3", first[9])

	logs, err := ioutil.ReadFile(c.Err)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "total genes = 2")
	assert.Contains(t, string(logs), "max intron = 100000")
}

func TestRunInvalidParams(t *testing.T) {
	c, err := config.New(config.NewViper(), "")
	require.NoError(t, err)
	c.MaxIntron = 0
	assert.Error(t, run(c, []string{"reads.bed"}))
}

func TestRunMalformedRecords(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	const badCount = "chr1\t0\t300\tbad\t0\t+\t0\t300\t0,0,0\t3\t100,100,\t0,200,\n"
	in := filepath.Join(dir, "reads.bed")
	data := badCount + "\n" + strings.TrimSuffix(alignments, "\n")
	require.NoError(t, ioutil.WriteFile(in, []byte(data), 0644))

	c, err := config.New(config.NewViper(), "")
	require.NoError(t, err)
	c.Out = filepath.Join(dir, "models.bed")
	c.Err = filepath.Join(dir, "gimme.log")
	require.NoError(t, run(c, []string{in}))

	b, err := ioutil.ReadFile(c.Out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3, "alignments after a malformed record not assembled")
	last := strings.Split(lines[2], "\t")
	assert.Equal(t, []string{"chr1", "9000", "9400", "chr1:2.1"}, last[:4], "final unterminated record not read")

	logs, err := ioutil.ReadFile(c.Err)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "(1 rejected)")
}
