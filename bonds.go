/*
 * bonds.go, part of molgraph.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"github.com/rmera/molgraph/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// similar to the criterium described in DOI:10.1186/1758-2946-3-33
const (
	DefaultTolerance = 0.45
	minBondDist      = 0.4 //closer than this, the atoms are taken as coincident, not bonded
	// BruteForceLimit is the largest number of atoms for which bonds
	// are searched comparing all pairs.
	BruteForceLimit = 500
)

// InferBonds assigns bonds to a set of atoms based on a simple distance criterium:
// atoms i and j are bonded if
//
//	0.4 < d(i,j) <= covrad(i) + covrad(j) + tolerance
//
// All inferred bonds are single bonds. The indexes in the returned bonds are the
// positions of the atoms in the given slice. Up to BruteForceLimit atoms, all the pairs are
// compared; for larger sets a spatial hash with cells of grid.DefaultCellSize is used.
// The bonds are returned sorted. An empty set of atoms gives an empty set of bonds.
func InferBonds(atoms []Atom, tolerance float64) []Bond {
	return InferBondsWith(atoms, nil, tolerance)
}

// InferBondsWith works as InferBonds, but the explicit bonds are kept, in canonical
// form, and no bond is inferred between atoms that already have an explicit one.
// Explicit bonds that refer to atoms not in the set are dropped.
func InferBondsWith(atoms []Atom, explicit []Bond, tolerance float64) []Bond {
	set := newBondSet(len(atoms) + len(explicit))
	for _, b := range explicit {
		if b.Atom1Index < 0 || b.Atom2Index < 0 || b.Atom1Index >= len(atoms) || b.Atom2Index >= len(atoms) {
			continue
		}
		set.add(b)
	}
	if len(atoms) <= BruteForceLimit {
		bruteForce(atoms, tolerance, set)
	} else {
		hashed(atoms, tolerance, set)
	}
	return set.sorted()
}

// BruteForceBonds compares all the pairs of atoms, regardless of their number.
func BruteForceBonds(atoms []Atom, tolerance float64) []Bond {
	set := newBondSet(len(atoms))
	bruteForce(atoms, tolerance, set)
	return set.sorted()
}

// HashedBonds uses a spatial hash regardless of the number of atoms.
// Only atoms in neighboring cells are compared, so pairs farther apart than
// one cell (grid.DefaultCellSize) can be missed.
func HashedBonds(atoms []Atom, tolerance float64) []Bond {
	set := newBondSet(len(atoms))
	hashed(atoms, tolerance, set)
	return set.sorted()
}

// bondCutoff returns the squared maximum bonding distance for two atoms with the
// covalent radii given.
func bondCutoff(cov1, cov2, tolerance float64) float64 {
	c := cov1 + cov2 + tolerance
	return c * c
}

func bonded(p1, p2 r3.Vec, cutoff2 float64) bool {
	d2 := r3.Norm2(r3.Sub(p1, p2))
	return d2 > minBondDist*minBondDist && d2 <= cutoff2
}

func covRadii(atoms []Atom) []float64 {
	ret := make([]float64, len(atoms))
	for i := range atoms {
		ret[i] = CovalentRadius(atoms[i].Element)
	}
	return ret
}

func bruteForce(atoms []Atom, tolerance float64, set *bondSet) {
	points := atomPoints(atoms)
	cov := covRadii(atoms)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if set.has(i, j) {
				continue
			}
			if bonded(points[i], points[j], bondCutoff(cov[i], cov[j], tolerance)) {
				set.add(NewBond(i, j, 1))
			}
		}
	}
}

func hashed(atoms []Atom, tolerance float64, set *bondSet) {
	points := atomPoints(atoms)
	cov := covRadii(atoms)
	g := grid.Build(points, grid.DefaultCellSize)
	for i := range points {
		g.ForEachNeighborhood(i, 1, func(members []int) {
			for _, j := range members {
				if j <= i || set.has(i, j) {
					continue
				}
				if bonded(points[i], points[j], bondCutoff(cov[i], cov[j], tolerance)) {
					set.add(NewBond(i, j, 1))
				}
			}
		})
	}
}
