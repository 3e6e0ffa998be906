// Command molgraph reads a PDB or SD file and reports its molecule graph,
// or serves bond inference requests through stdin/stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/chemgraph"
	"github.com/rmera/molgraph/chemplot"
	"github.com/rmera/molgraph/offload"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	flagNoInfer = false
	flagTol     = chem.DefaultTolerance
	flagJSON    = false
	flagPlot    = ""
	flagBins    = chemplot.DefaultBins
	flagMap     = ""
	flagServe   = false
	flagAll     = false
	flagVerbose = false
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("molgraph: ")

	flag.BoolVar(&flagNoInfer, "noinfer", flagNoInfer,
		"Don't infer bonds for PDB files without CONECT records.")
	flag.Float64Var(&flagTol, "tol", flagTol,
		"Tolerance, in A, added to the sum of covalent radii when inferring bonds.")
	flag.BoolVar(&flagJSON, "json", flagJSON,
		"Write the molecule(s) as JSON to stdout instead of a summary.")
	flag.StringVar(&flagPlot, "plot", flagPlot,
		"Save a histogram of the bond lengths to this file (png, svg, pdf).")
	flag.IntVar(&flagBins, "bins", flagBins,
		"Number of bins for the bond length histogram.")
	flag.StringVar(&flagMap, "map", flagMap,
		"Save a map of the covalent fragments, projected on the XY plane, to this file.")
	flag.BoolVar(&flagServe, "serve", flagServe,
		"Read JSON requests from stdin, one per line, and write the responses to stdout.")
	flag.BoolVar(&flagAll, "all", flagAll,
		"Read all the records of an SD file, not only the first.")
	flag.BoolVar(&flagVerbose, "v", flagVerbose,
		"Report every skipped record.")
	flag.Usage = usage
	flag.Parse()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] structure-file\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -serve\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	if flagServe {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := offload.Serve(ctx, offload.NewWorker(), os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	if flag.NArg() != 1 {
		usage()
	}
	mols, err := read(flag.Arg(0))
	if err != nil {
		fatalf("Could not read '%s': %s", flag.Arg(0), err)
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(mols); err != nil {
			fatalf("Could not write JSON: %s", err)
		}
	} else {
		for _, mol := range mols {
			summary(os.Stdout, mol)
		}
	}
	if flagPlot != "" {
		if err := chemplot.BondLengthHistogram(mols[0], flagBins, mols[0].Name, flagPlot); err != nil {
			fatalf("Could not plot bond lengths: %s", err)
		}
	}
	if flagMap != "" {
		if err := chemplot.FragmentMap(mols[0], nil, mols[0].Name, flagMap); err != nil {
			fatalf("Could not plot the fragments: %s", err)
		}
	}
}

func read(name string) ([]*chem.Molecule, error) {
	opts := &chem.PDBOptions{InferBonds: !flagNoInfer, Tolerance: &flagTol}
	if flagAll && chem.FormatFromName(name) == chem.FormatSDF {
		f, err := chem.OpenFile(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		mols, err := chem.SDFReadAll(f)
		if err == nil && len(mols) == 0 {
			err = chem.NewFormatError(chem.NoAtoms)
		}
		return mols, err
	}
	mol, err := chem.ReadFile(name, opts)
	if err != nil {
		return nil, err
	}
	return []*chem.Molecule{mol}, nil
}

func summary(w io.Writer, mol *chem.Molecule) {
	fmt.Fprintf(w, "%s\n", mol.Name)
	fmt.Fprintf(w, "  atoms:     %d\n", mol.Len())
	fmt.Fprintf(w, "  bonds:     %d\n", len(mol.Bonds))
	fmt.Fprintf(w, "  fragments: %d\n", len(chemgraph.Fragments(mol)))
	if lengths := mol.BondLengths(); len(lengths) > 0 {
		mean, std := stat.MeanStdDev(lengths, nil)
		fmt.Fprintf(w, "  bond lengths: %.3f +/- %.3f A (min %.3f, max %.3f)\n",
			mean, std, floats.Min(lengths), floats.Max(lengths))
	}
	if len(mol.Skipped) > 0 {
		fmt.Fprintf(w, "  skipped records: %d\n", len(mol.Skipped))
		if flagVerbose {
			for _, e := range mol.Skipped {
				log.Println(e)
			}
		}
	}
}

func fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}
