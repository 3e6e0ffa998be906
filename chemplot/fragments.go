/*
 * fragments.go, part of molgraph
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
*/

package chemplot

import (
	"fmt"
	"image/color"
	"math"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/chemgraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MaxTagged is the largest number of atoms that can be highlighted in a fragment map.
const MaxTagged = 4

// FragmentPlot returns a scatter plot of the atoms of mol projected on the XY plane,
// with one color per covalently bonded fragment. The atoms with the indexes in tag
// (MaxTagged at most) are drawn with a distinct glyph each.
func FragmentPlot(mol *chem.Molecule, tag []int, title string) (*plot.Plot, error) {
	if mol.Len() == 0 {
		return nil, fmt.Errorf("FragmentPlot: molecule %q has no atoms", mol.Name)
	}
	if len(tag) > MaxTagged {
		return nil, fmt.Errorf("FragmentPlot: at most %d atoms can be tagged, got %d", MaxTagged, len(tag))
	}
	for _, t := range tag {
		if t < 0 || t >= mol.Len() {
			return nil, fmt.Errorf("FragmentPlot: tagged atom %d out of range", t)
		}
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "X (A)"
	p.Y.Label.Text = "Y (A)"
	p.Add(plotter.NewGrid())
	frags := chemgraph.Fragments(mol)
	fragOf := make([]int, mol.Len())
	for key, frag := range frags {
		pts := make(plotter.XYs, len(frag))
		for k, i := range frag {
			fragOf[i] = key
			pts[k].X = mol.Atoms[i].X
			pts[k].Y = mol.Atoms[i].Y
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("FragmentPlot: %w", err)
		}
		s.GlyphStyle.Color = fragmentColor(key, len(frags))
		p.Add(s)
		if len(frags) > 1 {
			p.Legend.Add(fmt.Sprintf("Fragment %d", key+1), s)
		}
	}
	for tagged, i := range tag {
		s, err := plotter.NewScatter(plotter.XYs{{X: mol.Atoms[i].X, Y: mol.Atoms[i].Y}})
		if err != nil {
			return nil, fmt.Errorf("FragmentPlot: %w", err)
		}
		s.GlyphStyle.Shape = shape(tagged)
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Color = fragmentColor(fragOf[i], len(frags))
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s%d", mol.Atoms[i].Element, mol.Atoms[i].Serial), s)
	}
	return p, nil
}

// FragmentMap saves the plot produced by FragmentPlot to plotname.
// The format is given by the extension of plotname.
func FragmentMap(mol *chem.Molecule, tag []int, title, plotname string) error {
	p, err := FragmentPlot(mol, tag, title)
	if err != nil {
		return err
	}
	if err := p.Save(5*vg.Inch, 5*vg.Inch, plotname); err != nil {
		return fmt.Errorf("FragmentMap: %w", err)
	}
	return nil
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var r, g, b float64
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default: //case 5
		r, g, b = 1, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// fragmentColor spreads the hues between red and violet, skipping
// the yellows, which are hard to see on white.
func fragmentColor(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	hp := float64(key)*260.0/float64(steps) + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	r, g, b := iHVS2RGB(h, 1, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func shape(tagged int) draw.GlyphDrawer {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}
	case 1:
		return draw.SquareGlyph{}
	case 2:
		return draw.CrossGlyph{}
	default:
		return draw.RingGlyph{}
	}
}
