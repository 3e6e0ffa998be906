/*
 * files.go, part of molgraph.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format is a structure file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDB
	FormatSDF
)

func (F Format) String() string {
	switch F {
	case FormatPDB:
		return "pdb"
	case FormatSDF:
		return "sdf"
	}
	return "unknown"
}

// FormatFromName guesses the format of a file from its extension.
// Compression extensions (.gz, .zst) are ignored.
func FormatFromName(name string) Format {
	ext := strings.ToLower(filepath.Ext(stripCompression(name)))
	switch ext {
	case ".pdb", ".ent":
		return FormatPDB
	case ".sdf", ".sd", ".mol":
		return FormatSDF
	}
	return FormatUnknown
}

func stripCompression(name string) string {
	l := strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		if strings.HasSuffix(l, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// OpenFile opens the file name for reading. Files ending in .gz are
// gunzipped, and files ending in .zst or .zstd are zstd-decompressed on the fly.
// The returned ReadCloser closes both the decompressor and the file.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", FileUnreadable, name, err)
	}
	l := strings.ToLower(name)
	switch {
	case strings.HasSuffix(l, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s %s: %w", CompressedBroken, name, err)
		}
		return &stackedCloser{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case strings.HasSuffix(l, ".zst"), strings.HasSuffix(l, ".zstd"):
		zs, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s %s: %w", CompressedBroken, name, err)
		}
		return &stackedCloser{Reader: zs, closers: []func() error{func() error { zs.Close(); return nil }, f.Close}}, nil
	}
	return f, nil
}

// stackedCloser closes several things, in order, keeping the first error.
type stackedCloser struct {
	io.Reader
	closers []func() error
}

func (S *stackedCloser) Close() error {
	var first error
	for _, c := range S.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// PDBFileRead reads a PDB file, possibly compressed.
func PDBFileRead(name string, opts *PDBOptions) (*Molecule, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := PDBRead(f, opts)
	return mol, fileErr(err, name, "PDBFileRead")
}

// SDFFileRead reads the first molecule in an SD file, possibly compressed.
func SDFFileRead(name string) (*Molecule, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := SDFRead(f)
	return mol, fileErr(err, name, "SDFFileRead")
}

// ReadFile reads the first molecule in a PDB or SD file, choosing the
// parser from the file extension. opts is used only for PDB files.
func ReadFile(name string, opts *PDBOptions) (*Molecule, error) {
	switch FormatFromName(name) {
	case FormatPDB:
		return PDBFileRead(name, opts)
	case FormatSDF:
		return SDFFileRead(name)
	}
	err := NewFormatError(UnknownFormat)
	err.filename = name
	err.Decorate("ReadFile")
	return nil, err
}

// fileErr records the file name in FormatErrors and decorates err with caller.
func fileErr(err error, name, caller string) error {
	if err == nil {
		return nil
	}
	if ferr, ok := err.(*FormatError); ok {
		ferr.filename = name
	}
	return errDecorate(err, caller)
}

// readLines returns all the lines in r, without their line endings.
// A final empty line (i.e. a trailing newline) is not included.
func readLines(r io.Reader) ([]string, error) {
	buf := bufio.NewReader(r)
	lines := make([]string, 0, 64)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading line %d: %w", len(lines)+1, err)
		}
		if len(line) > 0 {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
	}
}
