/*
 * grid.go, part of molgraph.
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

// Package grid implements a uniform spatial hash over a set of points in 3D.
// Each point is assigned to the cubic cell that contains it, so the points close
// to a given one can be found by looking only at the surrounding cells.
//
// A Grid is built once from a slice of points and is read-only afterwards. If
// the points move, a new Grid must be built.
package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// DefaultCellSize is the edge, in A, of the grid cells used for bond search.
// It is larger than any covalent bond between the common elements plus the default tolerance.
const DefaultCellSize = 3.0

// Key identifies one cell of the grid: the coordinates divided by the cell size, floored.
type Key struct {
	I, J, K int
}

// Grid is a spatial hash of points.
type Grid struct {
	cellSize float64
	cells    map[Key][]int
	keys     []Key //keys[i] is the cell of point i
}

// Stats summarizes how the points are spread over the cells.
// Only non-empty cells are counted.
type Stats struct {
	CellCount       int     `json:"cellCount"`
	AvgAtomsPerCell float64 `json:"avgAtomsPerCell"`
	MaxAtomsInCell  int     `json:"maxAtomsInCell"`
}

// Build returns a Grid containing all the points, with cells of edge cellSize.
// If cellSize is not positive, DefaultCellSize is used.
func Build(points []r3.Vec, cellSize float64) *Grid {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		cellSize = DefaultCellSize
	}
	G := &Grid{
		cellSize: cellSize,
		cells:    make(map[Key][]int, len(points)/2+1),
		keys:     make([]Key, len(points)),
	}
	for i, p := range points {
		k := G.KeyFor(p)
		G.keys[i] = k
		G.cells[k] = append(G.cells[k], i)
	}
	return G
}

// KeyFor returns the key of the cell that would contain p.
func (G *Grid) KeyFor(p r3.Vec) Key {
	return Key{
		I: int(math.Floor(p.X / G.cellSize)),
		J: int(math.Floor(p.Y / G.cellSize)),
		K: int(math.Floor(p.Z / G.cellSize)),
	}
}

// Len returns the number of points in the grid.
func (G *Grid) Len() int {
	return len(G.keys)
}

// CellSize returns the edge of the grid cells.
func (G *Grid) CellSize() float64 {
	return G.cellSize
}

// Cell returns the key of the cell that contains point i. ok is false
// if i is out of range.
func (G *Grid) Cell(i int) (key Key, ok bool) {
	if i < 0 || i >= len(G.keys) {
		return Key{}, false
	}
	return G.keys[i], true
}

// Members returns the points in the cell k. The returned slice must not be modified.
func (G *Grid) Members(k Key) []int {
	return G.cells[k]
}

// Neighbors returns the indexes of the points in the cells around the cell of point i,
// that cell included, but not i itself. The search goes as many cells away from
// i's cell as needed to cover radius; a radius of zero or less means one cell,
// i.e. the 3x3x3 block, and an infinite radius means all the cells. The result is
// unordered and can contain points farther than radius (points in the corners of the
// block), so callers need to check distances themselves. An out-of-range i gives an
// empty result.
func (G *Grid) Neighbors(i int, radius float64) []int {
	center, ok := G.Cell(i)
	if !ok {
		return []int{}
	}
	ret := make([]int, 0, 32)
	G.visit(center, G.reach(radius), func(members []int) {
		for _, j := range members {
			if j != i {
				ret = append(ret, j)
			}
		}
	})
	return ret
}

// maxReach is the largest reach, in cells, handled as a number. Farther than
// this, every cell is visited.
const maxReach = 1 << 20

// reach returns the number of cells needed to cover radius, or -1 for all of them.
func (G *Grid) reach(radius float64) int {
	if !(radius > G.cellSize) {
		return 1
	}
	r := math.Ceil(radius / G.cellSize)
	if r > maxReach {
		return -1
	}
	return int(r)
}

// ForEachNeighborhood calls f with the members of each of the cells at most
// reach cells away from the cell of point i, in each axis. A negative reach means
// all the cells.
func (G *Grid) ForEachNeighborhood(i, reach int, f func(members []int)) {
	center, ok := G.Cell(i)
	if !ok {
		return
	}
	G.visit(center, reach, f)
}

// visit calls f with each non-empty cell at most reach cells away from center.
// When the block around center has more cells than the grid holds, the occupied
// cells are scanned instead of the block.
func (G *Grid) visit(center Key, reach int, f func(members []int)) {
	if reach < 0 || reach > maxReach || math.Pow(float64(2*reach+1), 3) > float64(len(G.cells)) {
		for k, members := range G.cells {
			if reach < 0 || reach > maxReach || (within(k.I, center.I, reach) && within(k.J, center.J, reach) && within(k.K, center.K, reach)) {
				f(members)
			}
		}
		return
	}
	for di := -reach; di <= reach; di++ {
		for dj := -reach; dj <= reach; dj++ {
			for dk := -reach; dk <= reach; dk++ {
				members := G.cells[Key{center.I + di, center.J + dj, center.K + dk}]
				if len(members) > 0 {
					f(members)
				}
			}
		}
	}
}

func within(a, b, reach int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= reach
}

// Stats returns the occupancy statistics of the grid. An empty grid gives all zeroes.
func (G *Grid) Stats() Stats {
	if len(G.cells) == 0 {
		return Stats{}
	}
	occ := make([]float64, 0, len(G.cells))
	for _, v := range G.cells {
		occ = append(occ, float64(len(v)))
	}
	return Stats{
		CellCount:       len(G.cells),
		AvgAtomsPerCell: stat.Mean(occ, nil),
		MaxAtomsInCell:  int(floats.Max(occ)),
	}
}
