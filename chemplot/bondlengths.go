/*
 * bondlengths.go, part of molgraph.
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

// Package chemplot draws plots of molecule properties using gonum/plot.
package chemplot

import (
	"fmt"

	chem "github.com/rmera/molgraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg" //png output
	_ "gonum.org/v1/plot/vg/vgsvg" //svg output
)

// DefaultBins is the number of bins used when a non-positive number is given.
const DefaultBins = 30

// BondLengthPlot returns a histogram of the bond lengths of mol, with bins bins.
func BondLengthPlot(mol *chem.Molecule, bins int, title string) (*plot.Plot, error) {
	lengths := mol.BondLengths()
	if len(lengths) == 0 {
		return nil, fmt.Errorf("BondLengthPlot: molecule %q has no bonds", mol.Name)
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Bond length (A)"
	p.Y.Label.Text = "Bonds"
	p.Add(plotter.NewGrid())
	h, err := plotter.NewHist(plotter.Values(lengths), bins)
	if err != nil {
		return nil, fmt.Errorf("BondLengthPlot: %w", err)
	}
	p.Add(h)
	return p, nil
}

// BondLengthHistogram saves a histogram of the bond lengths of mol to plotname.
// The format is given by the extension of plotname (png, svg, pdf...).
func BondLengthHistogram(mol *chem.Molecule, bins int, title, plotname string) error {
	p, err := BondLengthPlot(mol, bins, title)
	if err != nil {
		return err
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("BondLengthHistogram: %w", err)
	}
	return nil
}
