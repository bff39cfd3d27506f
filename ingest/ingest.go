// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ingest reads spliced alignments from BED12, PSL, SAM and BAM
// files and presents them as splice.Records.
//
// Malformed records are returned with an error of kind errors.Invalid
// and reading may continue after them. Any other error is fatal to the
// stream.
package ingest

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/klauspost/compress/gzip"

	"github.com/kortschak/gimme/splice"
)

// Reader is an alignment record reader.
type Reader interface {
	// Read returns the next alignment record. At the end
	// of the stream Read returns io.EOF.
	Read() (splice.Record, error)
}

// File is an alignment file opened for reading.
type File struct {
	Format Format

	r       Reader
	closers []io.Closer
}

// Open opens the alignment file at path, detecting its format.
// Gzip compressed BED, PSL and SAM files are decompressed
// transparently.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(err, "ingest: failed to open alignments:", path)
	}
	file := &File{closers: []io.Closer{f}}

	magic := make([]byte, len(gzipMagic))
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		file.Close()
		return nil, errors.E(err, "ingest: failed to read alignments:", path)
	}
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		file.Close()
		return nil, errors.E(err, "ingest: failed to read alignments:", path)
	}

	var br *bufio.Reader
	if n == len(gzipMagic) && bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			file.Close()
			return nil, errors.E(err, "ingest: failed to open gzip stream:", path)
		}
		br = bufio.NewReader(gz)
		m, err := br.Peek(len(bamMagic))
		if err == nil && bytes.Equal(m, bamMagic) {
			// Start again so that the BGZF stream
			// is read by the BAM reader.
			gz.Close()
			_, err = f.Seek(0, io.SeekStart)
			if err == nil {
				err = file.openBAM(f)
			}
			if err != nil {
				file.Close()
				return nil, errors.E(err, "ingest: failed to open BAM stream:", path)
			}
			return file, nil
		}
		file.closers = append(file.closers, gz)
	} else {
		br = bufio.NewReader(f)
	}

	file.Format, err = Detect(br)
	if err != nil {
		file.Close()
		return nil, errors.E(err, path)
	}
	if file.Format == Unknown && isSAMName(path) {
		file.Format = SAM
	}
	switch file.Format {
	case BED:
		file.r, err = NewBEDReader(br)
	case PSL:
		file.r = NewPSLReader(br)
	case SAM:
		file.r, err = NewSAMReader(br)
	default:
		err = errors.E(errors.NotSupported, "ingest: unrecognized alignment format:", path)
	}
	if err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

func (f *File) openBAM(r io.Reader) error {
	br, err := NewBAMReader(r)
	if err != nil {
		return err
	}
	f.Format = BAM
	f.r = br
	f.closers = append(f.closers, br)
	return nil
}

// isSAMName returns whether path has a SAM file extension.
func isSAMName(path string) bool {
	return filepath.Ext(strings.TrimSuffix(path, ".gz")) == ".sam"
}

// Read returns the next alignment record in the file.
func (f *File) Read() (splice.Record, error) { return f.r.Read() }

// Close closes the file and any decompression streams reading from it.
func (f *File) Close() error {
	var err error
	for i := len(f.closers) - 1; i >= 0; i-- {
		cerr := f.closers[i].Close()
		if err == nil {
			err = cerr
		}
	}
	return err
}
