/*
 * chem.go, part of molgraph.
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
 */

package chem

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// UnnamedMolecule is the name given to molecules whose file carries no title.
const UnnamedMolecule = "Unnamed molecule"

// Atom contains the information read for one atom, coordinates included.
// Index is the position of the atom in its molecule's Atoms slice.
type Atom struct {
	Index       int     `json:"index"`
	Element     string  `json:"element"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Serial      int     `json:"serial"`
	Name        string  `json:"name,omitempty"`
	ResidueName string  `json:"residueName"`
	ResidueSeq  int     `json:"residueSeq,omitempty"`
	ChainID     string  `json:"chainId"`
	IsHetero    bool    `json:"isHetero"`
}

// Coords returns the position of the atom.
func (A *Atom) Coords() r3.Vec {
	return r3.Vec{X: A.X, Y: A.Y, Z: A.Z}
}

// Bond joins the atoms with indexes Atom1Index and Atom2Index.
// Bonds are undirected. The canonical form has Atom1Index < Atom2Index.
type Bond struct {
	Atom1Index int `json:"atom1Index"`
	Atom2Index int `json:"atom2Index"`
	Order      int `json:"order"`
}

// NewBond returns a bond between i and j in canonical order.
// A zero or negative order is taken as a single bond.
func NewBond(i, j, order int) Bond {
	if i > j {
		i, j = j, i
	}
	if order <= 0 {
		order = 1
	}
	return Bond{Atom1Index: i, Atom2Index: j, Order: order}
}

// Canonical returns the bond with its indexes in canonical order.
func (B Bond) Canonical() Bond {
	return NewBond(B.Atom1Index, B.Atom2Index, B.Order)
}

// Key returns the unordered pair joined by the bond, smallest index first.
func (B Bond) Key() [2]int {
	c := B.Canonical()
	return [2]int{c.Atom1Index, c.Atom2Index}
}

// Cross returns the index at the other end of the bond, or -1
// if origin is not part of the bond.
func (B Bond) Cross(origin int) int {
	switch origin {
	case B.Atom1Index:
		return B.Atom2Index
	case B.Atom2Index:
		return B.Atom1Index
	}
	return -1
}

func (B Bond) String() string {
	return fmt.Sprintf("%d-%d(%d)", B.Atom1Index, B.Atom2Index, B.Order)
}

// bondSet accumulates bonds, dropping self bonds and repeated
// unordered pairs. The first occurrence of a pair wins.
type bondSet struct {
	seen  map[[2]int]struct{}
	bonds []Bond
}

func newBondSet(capacity int) *bondSet {
	return &bondSet{seen: make(map[[2]int]struct{}, capacity), bonds: make([]Bond, 0, capacity)}
}

// add returns false if the bond was a self bond or was already present.
func (S *bondSet) add(b Bond) bool {
	b = b.Canonical()
	if b.Atom1Index == b.Atom2Index {
		return false
	}
	k := b.Key()
	if _, ok := S.seen[k]; ok {
		return false
	}
	S.seen[k] = struct{}{}
	S.bonds = append(S.bonds, b)
	return true
}

func (S *bondSet) has(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	_, ok := S.seen[[2]int{i, j}]
	return ok
}

// sorted returns the bonds ordered by their first, then second, index.
func (S *bondSet) sorted() []Bond {
	sortBonds(S.bonds)
	return S.bonds
}

func sortBonds(b []Bond) {
	sort.Slice(b, func(i, j int) bool {
		if b[i].Atom1Index != b[j].Atom1Index {
			return b[i].Atom1Index < b[j].Atom1Index
		}
		return b[i].Atom2Index < b[j].Atom2Index
	})
}

/**Type Molecule**/

// Molecule is the result of parsing one structure. It is built once by a parser
// and not modified afterwards. Skipped holds the records that could not be
// read and were left out.
type Molecule struct {
	Name    string  `json:"name"`
	Atoms   []Atom  `json:"atoms"`
	Bonds   []Bond  `json:"bonds"`
	Skipped []error `json:"-"`
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns a pointer to the atom with index i. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i < 0 || i >= len(M.Atoms) {
		panic(fmt.Sprintf("Molecule: Requested Atom %d out of bounds", i))
	}
	return &M.Atoms[i]
}

// Coords returns the positions of all the atoms, in order.
func (M *Molecule) Coords() []r3.Vec {
	return atomPoints(M.Atoms)
}

// BondLengths returns the length, in A, of each bond in the molecule.
func (M *Molecule) BondLengths() []float64 {
	ret := make([]float64, 0, len(M.Bonds))
	for _, b := range M.Bonds {
		d := r3.Sub(M.Atoms[b.Atom1Index].Coords(), M.Atoms[b.Atom2Index].Coords())
		ret = append(ret, r3.Norm(d))
	}
	return ret
}

// Corrupted returns an error if some bond refers to an atom not in the molecule,
// if an atom's Index doesn't match its position or if an atom has no element.
func (M *Molecule) Corrupted() error {
	for i, a := range M.Atoms {
		if a.Index != i {
			return fmt.Errorf("Atom %d has Index %d", i, a.Index)
		}
		if a.Element == "" {
			return fmt.Errorf("Atom %d has no element", i)
		}
	}
	seen := make(map[[2]int]bool, len(M.Bonds))
	for _, b := range M.Bonds {
		if b.Atom1Index < 0 || b.Atom2Index < 0 || b.Atom1Index >= len(M.Atoms) || b.Atom2Index >= len(M.Atoms) {
			return fmt.Errorf("Bond %v refers to atoms out of range (%d atoms)", b, len(M.Atoms))
		}
		if b.Atom1Index == b.Atom2Index {
			return fmt.Errorf("Bond %v joins an atom to itself", b)
		}
		if seen[b.Key()] {
			return fmt.Errorf("Bond %v is repeated", b)
		}
		seen[b.Key()] = true
	}
	return nil
}

func atomPoints(atoms []Atom) []r3.Vec {
	ret := make([]r3.Vec, len(atoms))
	for i := range atoms {
		ret[i] = atoms[i].Coords()
	}
	return ret
}

// newMolecule returns a molecule named name, or UnnamedMolecule if name is empty.
func newMolecule(name string) *Molecule {
	if name == "" {
		name = UnnamedMolecule
	}
	return &Molecule{Name: name, Atoms: make([]Atom, 0, 64), Bonds: []Bond{}}
}
