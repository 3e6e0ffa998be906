/*
 * bonds_test.go, part of molgraph.
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
 */

package chem

import (
	"math/rand"
	"reflect"
	"testing"
)

func atomsAt(element string, coords ...[3]float64) []Atom {
	ret := make([]Atom, len(coords))
	for i, c := range coords {
		ret[i] = Atom{Index: i, Element: element, X: c[0], Y: c[1], Z: c[2], Serial: i + 1}
	}
	return ret
}

// lattice returns n carbons on a cubic lattice with the given spacing,
// starting at a negative corner so that cells on both sides of zero are used.
func lattice(n int, spacing float64) []Atom {
	ret := make([]Atom, 0, n)
	side := 1
	for side*side*side < n {
		side++
	}
	for i := 0; i < side && len(ret) < n; i++ {
		for j := 0; j < side && len(ret) < n; j++ {
			for k := 0; k < side && len(ret) < n; k++ {
				ret = append(ret, Atom{Index: len(ret), Element: "C",
					X: float64(i)*spacing - 5, Y: float64(j)*spacing - 5, Z: float64(k)*spacing - 5})
			}
		}
	}
	return ret
}

func TestInferBondsEmpty(Te *testing.T) {
	for _, atoms := range [][]Atom{nil, {}, atomsAt("C", [3]float64{1, 2, 3})} {
		b := InferBonds(atoms, DefaultTolerance)
		if b == nil || len(b) != 0 {
			Te.Errorf("Expected an empty, non-nil, set of bonds, got %v", b)
		}
	}
}

func TestInferBondsDistances(Te *testing.T) {
	cases := []struct {
		d      float64
		bonded bool
	}{
		{0, false},    //coincident
		{0.39, false}, //too close
		{0.5, true},
		{1.54, true},
		{1.96, true}, //the cutoff is 2*0.76+0.45
		{1.98, false},
	}
	for _, c := range cases {
		b := InferBonds(atomsAt("C", [3]float64{0, 0, 0}, [3]float64{0, c.d, 0}), DefaultTolerance)
		if (len(b) == 1) != c.bonded {
			Te.Errorf("Two carbons at %.2f A: bonded should be %t, got %v", c.d, c.bonded, b)
		}
	}
	//X has the default radius, so two of them bond at 3.2 A.
	b := InferBonds(atomsAt(UnknownElement, [3]float64{0, 0, 0}, [3]float64{3.2, 0, 0}), DefaultTolerance)
	if len(b) != 1 {
		Te.Errorf("Unknown elements should use a radius of %.1f A, got %v", DefaultCovRad, b)
	}
	b = InferBonds(atomsAt("C", [3]float64{0, 0, 0}, [3]float64{1.54, 0, 0}), -0.2)
	if len(b) != 0 {
		Te.Errorf("A negative tolerance should shrink the cutoff, got %v", b)
	}
}

func TestInferBondsDeterministic(Te *testing.T) {
	atoms := lattice(64, 1.5)
	b1 := InferBonds(atoms, DefaultTolerance)
	b2 := InferBonds(atoms, DefaultTolerance)
	if !reflect.DeepEqual(b1, b2) {
		Te.Errorf("Two inferences on the same atoms differ")
	}
	//4x4x4 lattice: 3*4*4 bonds per axis.
	if len(b1) != 144 {
		Te.Errorf("Expected 144 bonds, got %d", len(b1))
	}
	for i := 1; i < len(b1); i++ {
		if b1[i-1].Key()[0] > b1[i].Key()[0] ||
			(b1[i-1].Key()[0] == b1[i].Key()[0] && b1[i-1].Key()[1] >= b1[i].Key()[1]) {
			Te.Fatalf("Bonds not sorted: %v before %v", b1[i-1], b1[i])
		}
	}
}

// Just above BruteForceLimit the hashed search must give the brute force result.
func TestInferBondsHashedLattice(Te *testing.T) {
	atoms := lattice(BruteForceLimit+1, 1.5)
	hashed := InferBonds(atoms, DefaultTolerance)
	brute := BruteForceBonds(atoms, DefaultTolerance)
	if len(brute) == 0 {
		Te.Fatal("No bonds found in the lattice")
	}
	if !reflect.DeepEqual(hashed, brute) {
		Te.Errorf("Hashed and brute force bonds differ: %d vs %d bonds", len(hashed), len(brute))
	}
}

func TestInferBondsHashedRandom(Te *testing.T) {
	elements := []string{"H", "C", "N", "O", "S"}
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 5; round++ {
		atoms := make([]Atom, 700)
		for i := range atoms {
			atoms[i] = Atom{
				Index:   i,
				Element: elements[rng.Intn(len(elements))],
				X:       rng.Float64()*18 - 9,
				Y:       rng.Float64()*18 - 9,
				Z:       rng.Float64()*18 - 9,
			}
		}
		hashed := HashedBonds(atoms, DefaultTolerance)
		brute := BruteForceBonds(atoms, DefaultTolerance)
		if len(brute) == 0 {
			Te.Fatal("No bonds in the random set")
		}
		if !reflect.DeepEqual(hashed, brute) {
			Te.Errorf("Round %d: hashed and brute force bonds differ: %d vs %d bonds", round, len(hashed), len(brute))
		}
		if !reflect.DeepEqual(InferBonds(atoms, DefaultTolerance), brute) {
			Te.Errorf("Round %d: InferBonds differs from the brute force search", round)
		}
	}
}

func TestInferBondsWith(Te *testing.T) {
	atoms := atomsAt("C", [3]float64{0, 0, 0}, [3]float64{1.34, 0, 0}, [3]float64{2.8, 0, 0})
	explicit := []Bond{{1, 0, 2}, {0, 7, 1}, {2, 2, 1}}
	b := InferBondsWith(atoms, explicit, DefaultTolerance)
	expected := []Bond{{0, 1, 2}, {1, 2, 1}}
	if !reflect.DeepEqual(b, expected) {
		Te.Errorf("Expected %v, got %v", expected, b)
	}
}

func TestBond(Te *testing.T) {
	b := NewBond(5, 2, 0)
	if b != (Bond{2, 5, 1}) {
		Te.Errorf("NewBond should canonicalize, got %v", b)
	}
	if b.Cross(2) != 5 || b.Cross(5) != 2 || b.Cross(3) != -1 {
		Te.Errorf("Wrong Cross results for %v", b)
	}
	if (Bond{7, 3, 2}).Key() != [2]int{3, 7} {
		Te.Errorf("Wrong key")
	}
	if b.String() != "2-5(1)" {
		Te.Errorf("Wrong string %s", b)
	}
	mol := &Molecule{Atoms: atomsAt("C", [3]float64{0, 0, 0}, [3]float64{1.5, 0, 0}), Bonds: []Bond{{0, 1, 1}, {1, 0, 1}}}
	if mol.Corrupted() == nil {
		Te.Errorf("Repeated bond not detected")
	}
	mol.Bonds = []Bond{{0, 2, 1}}
	if mol.Corrupted() == nil {
		Te.Errorf("Out of range bond not detected")
	}
	mol.Bonds = []Bond{{0, 1, 1}}
	if err := mol.Corrupted(); err != nil {
		Te.Error(err)
	}
	if l := mol.BondLengths(); len(l) != 1 || l[0] != 1.5 {
		Te.Errorf("Wrong bond lengths %v", l)
	}
}

func TestCovalentRadius(Te *testing.T) {
	if CovalentRadius("c") != 0.76 || CovalentRadius("CL") != CovalentRadius("Cl") {
		Te.Errorf("Radii lookup should ignore case")
	}
	if CovalentRadius("Qq") != DefaultCovRad || KnownElement("Qq") {
		Te.Errorf("Unknown elements should get the default radius")
	}
	if CanonicalSymbol(" fE ") != "Fe" {
		Te.Errorf("Wrong canonical symbol %q", CanonicalSymbol(" fE "))
	}
}

// 501 atoms: the first and the last 50 A apart, the rest isolated 11 A from each other.
func TestInferBondsIsolated(Te *testing.T) {
	atoms := make([]Atom, BruteForceLimit+1)
	atoms[0] = Atom{Index: 0, Element: "C"}
	for i := 1; i < BruteForceLimit; i++ {
		atoms[i] = Atom{Index: i, Element: "C", X: 100 + 11*float64(i%20), Y: 11 * float64(i/20)}
	}
	atoms[BruteForceLimit] = Atom{Index: BruteForceLimit, Element: "C", Z: 50}
	inferred := InferBonds(atoms, DefaultTolerance)
	brute := BruteForceBonds(atoms, DefaultTolerance)
	if len(inferred) != len(brute) || len(inferred) != 0 {
		Te.Errorf("Expected no bonds from both searches, got %d and %d", len(inferred), len(brute))
	}
	//Moving the last atom next to the first one gives exactly one bond.
	atoms[BruteForceLimit].Z = 1.5
	inferred = InferBonds(atoms, DefaultTolerance)
	if !reflect.DeepEqual(inferred, BruteForceBonds(atoms, DefaultTolerance)) ||
		len(inferred) != 1 || inferred[0] != (Bond{0, BruteForceLimit, 1}) {
		Te.Errorf("Expected the bond 0-%d from both searches, got %v", BruteForceLimit, inferred)
	}
}
