/*
 * pdb.go, part of molgraph.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PDBOptions controls how a PDB file is read. A nil *PDBOptions means DefaultPDBOptions.
type PDBOptions struct {
	//InferBonds makes the reader assign bonds by distance when the file has no CONECT records.
	InferBonds bool
	//Tolerance for the bond inference, nil means DefaultTolerance. Zero and negative
	//values are used as given.
	Tolerance *float64
}

// DefaultPDBOptions returns options with bond inference on and the default tolerance.
func DefaultPDBOptions() *PDBOptions {
	tol := DefaultTolerance
	return &PDBOptions{InferBonds: true, Tolerance: &tol}
}

func (O *PDBOptions) tolerance() float64 {
	if O.Tolerance == nil {
		return DefaultTolerance
	}
	return *O.Tolerance
}

// ParsePDB reads a molecule from the text of a PDB file.
func ParsePDB(text string, opts *PDBOptions) (*Molecule, error) {
	mol, err := PDBRead(strings.NewReader(text), opts)
	return mol, errDecorate(err, "ParsePDB")
}

// PDBRead reads a molecule from an io.Reader with PDB data. Only the first model
// is read: the reading stops at the first line starting with END (which includes ENDMDL).
// ATOM and HETATM records with unreadable serials or coordinates are skipped and
// reported in the Skipped field of the returned molecule. If the file has CONECT records,
// those are the bonds of the molecule. Otherwise, the bonds are inferred from the
// geometry if opts.InferBonds is true. If no atom could be read, a *FormatError is returned.
func PDBRead(pdb io.Reader, opts *PDBOptions) (*Molecule, error) {
	if opts == nil {
		opts = DefaultPDBOptions()
	}
	r := &pdbReader{
		mol:      newMolecule(""),
		serials:  make(map[int]int),
		conect:   newBondSet(16),
		bufiopdb: bufio.NewReader(pdb),
	}
	if err := r.read(); err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	mol := r.mol
	if len(mol.Atoms) == 0 {
		err := NewFormatError(NoAtoms)
		err.Decorate("PDBRead")
		return nil, err
	}
	switch {
	case len(r.conect.bonds) > 0:
		mol.Bonds = r.conect.sorted()
	case opts.InferBonds:
		mol.Bonds = InferBonds(mol.Atoms, opts.tolerance())
	}
	return mol, nil
}

type pdbReader struct {
	mol      *Molecule
	serials  map[int]int //serial->index
	conect   *bondSet
	bufiopdb *bufio.Reader
	lineno   int
}

func (R *pdbReader) read() error {
	for {
		line, err := R.bufiopdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading PDB line %d: %w", R.lineno+1, err)
		}
		if len(line) > 0 {
			R.lineno++
			if R.line(strings.TrimRight(line, "\r\n")) {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// line processes one line, and returns true if the reading should stop.
func (R *pdbReader) line(line string) bool {
	switch {
	case strings.HasPrefix(line, "END"):
		return true
	case column(line, 1, 6) == "HEADER":
		if name := strings.TrimSpace(column(line, 7, len(line))); name != "" {
			R.mol.Name = name
		}
	case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
		at, err := readAtomLine(line, R.lineno)
		if err != nil {
			R.mol.Skipped = append(R.mol.Skipped, err)
			return false
		}
		at.Index = len(R.mol.Atoms)
		if _, ok := R.serials[at.Serial]; !ok {
			R.serials[at.Serial] = at.Index
		}
		R.mol.Atoms = append(R.mol.Atoms, at)
	case strings.HasPrefix(line, "CONECT"):
		R.conectLine(line)
	}
	return false
}

func (R *pdbReader) conectLine(line string) {
	serials := conectSerials(line)
	if len(serials) == 0 {
		R.mol.Skipped = append(R.mol.Skipped, recordErr(R.lineno, "CONECT", "no atom serial found"))
		return
	}
	from, ok := R.serials[serials[0]]
	if !ok {
		return
	}
	for _, s := range serials[1:] {
		to, ok := R.serials[s]
		if !ok {
			continue
		}
		R.conect.add(NewBond(from, to, 1))
	}
}

// column returns the text between the 1-based columns from and to, both included,
// clipped to the length of the line.
func column(line string, from, to int) string {
	if from > len(line) || from > to {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from-1 : to]
}

// Parses a valid ATOM or HETATM line of a PDB file. The serial and the coordinates
// are required, everything else can be missing.
func readAtomLine(line string, lineno int) (Atom, error) {
	rec := "ATOM"
	if strings.HasPrefix(line, "HETATM") {
		rec = "HETATM"
	}
	at := Atom{IsHetero: rec == "HETATM"}
	var err error
	at.Serial, err = strconv.Atoi(strings.TrimSpace(column(line, 7, 11)))
	if err != nil {
		return at, &RecordError{Line: lineno, Record: rec, Err: fmt.Errorf("bad serial: %w", err)}
	}
	if len(line) < 54 {
		return at, recordErr(lineno, rec, "line too short for coordinates (%d columns)", len(line))
	}
	c := [3]float64{}
	for i := range c {
		start := 31 + 8*i
		c[i], err = strconv.ParseFloat(strings.TrimSpace(column(line, start, start+7)), 64)
		if err != nil {
			return at, &RecordError{Line: lineno, Record: rec, Err: fmt.Errorf("bad coordinate %d: %w", i+1, err)}
		}
	}
	at.X, at.Y, at.Z = c[0], c[1], c[2]
	namefield := column(line, 13, 16)
	at.Name = strings.TrimSpace(namefield)
	at.ResidueName = strings.TrimSpace(column(line, 18, 20))
	at.ChainID = strings.TrimSpace(column(line, 22, 22))
	at.ResidueSeq, _ = strconv.Atoi(strings.TrimSpace(column(line, 23, 26))) //0 if missing
	at.Element = elementField(column(line, 77, 78))
	if at.Element == "" {
		at.Element = symbolFromName(namefield)
	}
	if at.Element == "" {
		at.Element = UnknownElement
	}
	return at, nil
}

// elementField returns the canonical symbol in the element columns,
// or the empty string if they don't contain a valid symbol.
func elementField(f string) string {
	f = strings.TrimSpace(f)
	if f == "" {
		return ""
	}
	for _, r := range f {
		if !isASCIILetter(byte(r)) {
			return ""
		}
	}
	return CanonicalSymbol(f)
}

// This tries to guess a chemical element symbol from the atom name columns (13-16) of a PDB line.
// Following the PDB convention, two-letter elements start at column 13, while the names
// of one-letter elements start at column 14. Names starting with H at column 13 are
// taken as hydrogens (4-character hydrogen names). Leading digits are skipped.
// Returns the empty string if no letter is found.
func symbolFromName(field string) string {
	if len(field) >= 2 && isASCIILetter(field[0]) && isASCIILetter(field[1]) && field[0] != 'H' && field[0] != 'h' {
		two := CanonicalSymbol(field[:2])
		if KnownElement(two) {
			return two
		}
	}
	for i := 0; i < len(field); i++ {
		if isASCIILetter(field[i]) {
			return CanonicalSymbol(field[i : i+1])
		}
	}
	return ""
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// conectSerials returns the serials in a CONECT line, the source atom first.
// The fixed PDB columns are tried first, then whitespace-separated fields.
// At most 5 serials (the source and 4 partners) are returned.
func conectSerials(line string) []int {
	ret := make([]int, 0, 5)
	fixed := true
	for c := 7; c <= 27; c += 5 {
		f := strings.TrimSpace(column(line, c, c+4))
		if f == "" {
			continue
		}
		s, err := strconv.Atoi(f)
		if err != nil {
			fixed = false
			break
		}
		ret = append(ret, s)
	}
	if fixed && len(ret) > 0 {
		return ret
	}
	ret = ret[:0]
	for _, f := range strings.Fields(column(line, 7, len(line))) {
		s, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		ret = append(ret, s)
		if len(ret) == 5 {
			break
		}
	}
	return ret
}
