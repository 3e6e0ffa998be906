/*
 * plot_test.go, part of molgraph.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/molgraph"
)

func TestBondLengthHistogram(Te *testing.T) {
	mol, err := chem.PDBFileRead("../test/ethanol.pdb", nil)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "lengths.png")
	if err := BondLengthHistogram(mol, 0, mol.Name, name); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("No plot written: %v", err)
	}
	mol.Bonds = nil
	if _, err := BondLengthPlot(mol, 10, "no bonds"); err == nil {
		Te.Errorf("Expected an error for a molecule without bonds")
	}
}

func TestFragmentMap(Te *testing.T) {
	mols, err := chem.ParseSDFAll(sdfPair())
	if err != nil {
		Te.Fatal(err)
	}
	mol := mols[0]
	name := filepath.Join(Te.TempDir(), "fragments.svg")
	if err := FragmentMap(mol, []int{0, 2}, "Fragments", name); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("No plot written: %v", err)
	}
	if _, err := FragmentPlot(mol, []int{0, 1, 2, 3, 0}, "too many"); err == nil {
		Te.Errorf("Expected an error for more than %d tags", MaxTagged)
	}
	if _, err := FragmentPlot(mol, []int{9}, "out of range"); err == nil {
		Te.Errorf("Expected an error for a tag out of range")
	}
}

// Two unbonded diatomics in one record.
func sdfPair() string {
	return "pair\n\n\n4 2\n0 0 0 C\n1.2 0 0 O\n5 5 0 N\n6.1 5 0 N\n1 2 2\n3 4 3\nM  END\n"
}

func TestFragmentColor(Te *testing.T) {
	seen := make(map[[3]uint8]bool)
	for key := 0; key < 6; key++ {
		c := fragmentColor(key, 6)
		if c.A != 255 {
			Te.Errorf("Colors should be opaque")
		}
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	if len(seen) != 6 {
		Te.Errorf("Expected 6 different colors, got %d", len(seen))
	}
	if r, g, b := iHVS2RGB(0, 1, 1); r != 255 || g != 0 || b != 0 {
		Te.Errorf("Hue 0 should be red, got %d %d %d", r, g, b)
	}
}
