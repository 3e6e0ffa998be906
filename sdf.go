/*
 * sdf.go, part of molgraph.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	sdfEnd       = "M  END"
	sdfSeparator = "$$$$"
)

// ParseSDF reads the first molecule in the text of an SDF (MDL molfile V2000) file.
func ParseSDF(text string) (*Molecule, error) {
	mol, err := SDFRead(strings.NewReader(text))
	return mol, errDecorate(err, "ParseSDF")
}

// SDFRead reads the first molecule in an SDF (MDL molfile V2000) stream.
// The bonds are always the ones in the file. Atom and bond lines that can't be
// read are skipped and reported in the Skipped field of the molecule, and so are bonds
// involving a skipped atom. The reading stops at the "M  END" line or at the end of the input.
// A *FormatError is returned if the data has fewer than 4 lines, if the counts line can't be read,
// or if the atom or bond blocks have fewer lines than declared in the counts line.
func SDFRead(sdf io.Reader) (*Molecule, error) {
	lines, err := readLines(sdf)
	if err != nil {
		return nil, errDecorate(err, "SDFRead")
	}
	mol, err := molBlock(lines, 0)
	return mol, errDecorate(err, "SDFRead")
}

// ParseSDFAll reads all the molecules in the text of a multi-record SD file.
func ParseSDFAll(text string) ([]*Molecule, error) {
	mols, err := SDFReadAll(strings.NewReader(text))
	return mols, errDecorate(err, "ParseSDFAll")
}

// SDFReadAll reads all the records, separated by "$$$$" lines, in an SD stream.
// Records with no content are ignored. If a record can't be read, the molecules
// read before it are returned together with the error.
func SDFReadAll(sdf io.Reader) ([]*Molecule, error) {
	lines, err := readLines(sdf)
	if err != nil {
		return nil, errDecorate(err, "SDFReadAll")
	}
	mols := make([]*Molecule, 0, 1)
	start := 0
	record := 1
	for i := 0; i <= len(lines); i++ {
		if i < len(lines) && strings.TrimSpace(lines[i]) != sdfSeparator {
			continue
		}
		block := lines[start:i]
		if !blank(block) {
			mol, err := molBlock(block, start)
			if err != nil {
				return mols, errDecorate(err, fmt.Sprintf("SDFReadAll: record %d", record))
			}
			mols = append(mols, mol)
		}
		start = i + 1
		record++
	}
	return mols, nil
}

func blank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

func isSDFEnd(line string) bool {
	return strings.TrimRight(line, " \t") == sdfEnd
}

// molBlock parses one molfile. offset is the number of input lines before the block,
// used only to report line numbers.
func molBlock(lines []string, offset int) (*Molecule, error) {
	if len(lines) < 4 {
		return nil, NewFormatError(SDFTooShort)
	}
	natoms, nbonds, ok := sdfCounts(lines[3], len(lines)-4)
	if !ok {
		return nil, NewFormatError(SDFBadCounts)
	}
	//Every declared atom and bond takes one line.
	if natoms > len(lines)-4 {
		return nil, NewFormatError(SDFTruncAtoms)
	}
	if nbonds > len(lines)-4-natoms {
		return nil, NewFormatError(SDFTruncBonds)
	}
	mol := newMolecule(strings.TrimSpace(lines[0]))
	mol.Atoms = make([]Atom, 0, natoms)
	file2index := make([]int, natoms) //-1 for skipped atoms
	l := 4
	for i := 0; i < natoms; i, l = i+1, l+1 {
		if l >= len(lines) || isSDFEnd(lines[l]) {
			return nil, NewFormatError(SDFTruncAtoms)
		}
		at, err := sdfAtomLine(lines[l])
		if err != nil {
			file2index[i] = -1
			mol.Skipped = append(mol.Skipped, &RecordError{Line: offset + l + 1, Record: "atom", Err: err})
			continue
		}
		at.Index = len(mol.Atoms)
		at.Serial = i + 1
		file2index[i] = at.Index
		mol.Atoms = append(mol.Atoms, at)
	}
	if natoms > 0 && len(mol.Atoms) == 0 {
		return nil, NewFormatError(NoAtoms)
	}
	set := newBondSet(nbonds)
	for i := 0; i < nbonds; i, l = i+1, l+1 {
		if l >= len(lines) || isSDFEnd(lines[l]) {
			return nil, NewFormatError(SDFTruncBonds)
		}
		lineno := offset + l + 1
		a1, a2, order, err := sdfBondLine(lines[l], natoms)
		if err != nil {
			mol.Skipped = append(mol.Skipped, &RecordError{Line: lineno, Record: "bond", Err: err})
			continue
		}
		if a1 < 1 || a2 < 1 || a1 > natoms || a2 > natoms {
			mol.Skipped = append(mol.Skipped, recordErr(lineno, "bond", "atom number out of range: %d-%d (%d atoms)", a1, a2, natoms))
			continue
		}
		i1, i2 := file2index[a1-1], file2index[a2-1]
		if i1 < 0 || i2 < 0 {
			mol.Skipped = append(mol.Skipped, recordErr(lineno, "bond", "bond %d-%d refers to a skipped atom", a1, a2))
			continue
		}
		if !set.add(NewBond(i1, i2, order)) {
			mol.Skipped = append(mol.Skipped, recordErr(lineno, "bond", "self or repeated bond %d-%d", a1, a2))
		}
	}
	mol.Bonds = set.bonds
	return mol, nil
}

// sdfCounts reads the number of atoms and bonds from the counts line.
// The first two whitespace-separated fields are used, unless they can't be read,
// or declare more records than the avail lines after the counts line can hold
// while the V2000 fixed columns (1-3 and 4-6) do fit. The fixed columns are
// needed when 3-digit counts are written without a separating space.
func sdfCounts(line string, avail int) (natoms, nbonds int, ok bool) {
	fits := func(a, b int) bool { return a <= avail && b <= avail-a }
	wa, wb, wok := fieldCounts(line)
	if wok && fits(wa, wb) {
		return wa, wb, true
	}
	if ints, fok := fixedInts(line, 3, 2); fok && ints[0] >= 0 && ints[1] >= 0 {
		if !wok || fits(ints[0], ints[1]) {
			return ints[0], ints[1], true
		}
	}
	return wa, wb, wok
}

// fieldCounts reads the counts from the first two whitespace-separated fields.
func fieldCounts(line string) (natoms, nbonds int, ok bool) {
	v, err := fieldInts(line, 2)
	if err != nil || v[0] < 0 || v[1] < 0 {
		return 0, 0, false
	}
	return v[0], v[1], true
}

// fixedInts reads n integer fields of the given width from the start of line.
func fixedInts(line string, width, n int) ([]int, bool) {
	if len(line) < width*n {
		return nil, false
	}
	ret := make([]int, n)
	for i := range ret {
		f := strings.TrimSpace(line[i*width : (i+1)*width])
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		ret[i] = v
	}
	return ret, true
}

// sdfAtomLine reads the coordinates and symbol of an atom line, from the V2000
// fixed columns or, failing that, from whitespace-separated fields.
func sdfAtomLine(line string) (Atom, error) {
	var at Atom
	var c [3]float64
	var err error
	var sym string
	fixed := len(line) >= 32
	if fixed {
		for i := range c {
			if c[i], err = strconv.ParseFloat(strings.TrimSpace(line[i*10:(i+1)*10]), 64); err != nil {
				fixed = false
				break
			}
		}
		sym = strings.TrimSpace(column(line, 32, 34))
	}
	if !fixed {
		f := strings.Fields(line)
		if len(f) < 4 {
			return at, fmt.Errorf("expected 3 coordinates and a symbol, found %d fields", len(f))
		}
		for i := range c {
			if c[i], err = strconv.ParseFloat(f[i], 64); err != nil {
				return at, fmt.Errorf("bad coordinate %d: %w", i+1, err)
			}
		}
		sym = f[3]
	}
	at.X, at.Y, at.Z = c[0], c[1], c[2]
	at.Name = sym
	at.Element = CanonicalSymbol(sym)
	if at.Element == "" {
		at.Element = UnknownElement
	}
	return at, nil
}

// sdfBondLine returns the two 1-based atom numbers and the order in a bond line.
// Whitespace-separated fields are used when they give atom numbers between 1 and
// natoms; otherwise the V2000 fixed columns are tried.
func sdfBondLine(line string, natoms int) (a1, a2, order int, err error) {
	v, werr := fieldInts(line, 3)
	if werr == nil && v[0] >= 1 && v[1] >= 1 && v[0] <= natoms && v[1] <= natoms {
		return v[0], v[1], v[2], nil
	}
	if ints, ok := fixedInts(line, 3, 3); ok {
		return ints[0], ints[1], ints[2], nil
	}
	if werr != nil {
		return 0, 0, 0, werr
	}
	return v[0], v[1], v[2], nil
}

// fieldInts reads the first n whitespace-separated fields of line as integers.
func fieldInts(line string, n int) ([]int, error) {
	f := strings.Fields(line)
	if len(f) < n {
		return nil, fmt.Errorf("expected %d integer fields, found %d fields", n, len(f))
	}
	v := make([]int, n)
	var err error
	for i := range v {
		if v[i], err = strconv.Atoi(f[i]); err != nil {
			return nil, fmt.Errorf("bad field %d: %w", i+1, err)
		}
	}
	return v, nil
}
