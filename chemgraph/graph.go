/*
 * graph.go, part of molgraph.
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

// Package chemgraph exposes the bonds of a molecule as a gonum graph, with one node per
// atom (the node ID is the atom index) and one undirected edge per bond.
package chemgraph

import (
	"sort"

	chem "github.com/rmera/molgraph"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// FromMolecule returns an undirected graph for mol. Atoms without bonds are
// included as isolated nodes. Bonds referring to atoms outside mol are ignored.
func FromMolecule(mol chem.Bonder) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	n := mol.Len()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, b := range mol.BondList() {
		if b.Atom1Index == b.Atom2Index || !inRange(b, n) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(b.Atom1Index), T: simple.Node(b.Atom2Index)})
	}
	return g
}

func inRange(b chem.Bond, n int) bool {
	return b.Atom1Index >= 0 && b.Atom2Index >= 0 && b.Atom1Index < n && b.Atom2Index < n
}

// Fragments returns the covalently connected fragments of mol, each as a sorted slice of
// atom indexes. Fragments are sorted by their first atom.
func Fragments(mol chem.Bonder) [][]int {
	cc := topo.ConnectedComponents(FromMolecule(mol))
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, nodeIDs(c))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Degrees returns the number of bonds of each atom in mol.
func Degrees(mol chem.Bonder) []int {
	g := FromMolecule(mol)
	ret := make([]int, mol.Len())
	for i := range ret {
		ret[i] = g.From(int64(i)).Len()
	}
	return ret
}

// ShortestPath returns the atoms in the shortest bond path from atom from to atom to,
// both included, or nil if there is no path between them.
func ShortestPath(mol chem.Bonder, from, to int) []int {
	if from < 0 || to < 0 || from >= mol.Len() || to >= mol.Len() {
		return nil
	}
	g := FromMolecule(mol)
	sh := path.DijkstraFrom(simple.Node(from), g)
	nodes, _ := sh.To(int64(to))
	if len(nodes) == 0 {
		return nil
	}
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	return ret
}

func nodeIDs(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	sort.Ints(ret)
	return ret
}
