/*
 * doc.go, part of molgraph.
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

/*
Package chem is the main package of molgraph. It reads molecular structure files and
produces a molecule graph: atoms with their element and cartesian coordinates, and the
bonds between them.

	**Capabilities**

	Reads PDB files (HEADER, ATOM, HETATM, CONECT and END records). The bonds in
	CONECT records are used if present. Otherwise, the bonds can be inferred from the geometry.

	Reads SD files (MDL molfile V2000), including multi-record files. The bonds are
	always those in the file.

	Reads gzip and zstd-compressed files transparently.

	Infers bonds from interatomic distances and covalent radii. For large
	structures, a spatial hash (package grid) is used to avoid comparing all pairs of atoms.

Records that can't be read (a bad coordinate, a bond to a non-existing atom) are skipped
and reported in the Skipped field of the molecule, so as much as possible of a file is
recovered. Files that don't meet the minimum requirements of their format give a
*FormatError.

The chemgraph package builds a gonum graph from a molecule, and the offload package
runs bond inference and spatial indexing as requests on a separate worker.
*/
package chem
