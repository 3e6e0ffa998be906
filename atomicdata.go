/*
 * atomicdata.go, part of molgraph.
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
	"strings"
	"unicode"
)

// DefaultCovRad is the covalent radius, in A, given to elements not in the table.
const DefaultCovRad = 1.5

// UnknownElement is the symbol given to atoms whose element can't be determined.
const UnknownElement = "X"

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//sp3 value for C, low-spin values for Mn, Fe and Co.
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76,
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Sc": 1.70,
	"Ti": 1.60,
	"V":  1.53,
	"Cr": 1.39,
	"Mn": 1.39,
	"Fe": 1.32,
	"Co": 1.26,
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.20,
	"Br": 1.20,
	"Kr": 1.16,
	"Rb": 2.20,
	"Sr": 1.95,
	"Y":  1.90,
	"Zr": 1.75,
	"Mo": 1.54,
	"Ru": 1.46,
	"Rh": 1.42,
	"Pd": 1.39,
	"Ag": 1.45,
	"Cd": 1.44,
	"In": 1.42,
	"Sn": 1.39,
	"Sb": 1.39,
	"Te": 1.38,
	"I":  1.39,
	"Xe": 1.40,
	"Cs": 2.44,
	"Ba": 2.15,
	"W":  1.62,
	"Pt": 1.36,
	"Au": 1.36,
	"Hg": 1.32,
	"Pb": 1.46,
	"Bi": 1.48,
	"U":  1.96,
}

// CanonicalSymbol returns the element symbol s with its first letter in upper case
// and the rest in lower case ("FE" and "fe" give "Fe"). Non-letters are dropped.
func CanonicalSymbol(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			continue
		}
		if b.Len() == 0 {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// KnownElement returns true if the symbol, in any case, is in the radius table.
func KnownElement(symbol string) bool {
	_, ok := symbolCovrad[CanonicalSymbol(symbol)]
	return ok
}

// CovalentRadius returns the covalent radius for the element symbol, in any case,
// or DefaultCovRad if the element is not in the table.
func CovalentRadius(symbol string) float64 {
	if r, ok := symbolCovrad[CanonicalSymbol(symbol)]; ok {
		return r
	}
	return DefaultCovRad
}
