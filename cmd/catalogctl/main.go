// catalogctl validates occupation catalog directories and packs raw JSON
// vectors into the binary matrix format the server loads.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pathlight/careermatch/internal/catalog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "pack":
		err = runPack(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  catalogctl validate -dir <catalog-dir>
  catalogctl pack -in <vectors.json> -out <matrix.npy>`)
}

// runValidate loads the full catalog the same way the server does and
// reports per-domain shape.
func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	dir := fs.String("dir", "data/embeddings", "catalog directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := catalog.Load(*dir)
	if err != nil {
		return err
	}

	for d, rows := range cat.Sizes() {
		fmt.Printf("%-10s %6d rows x %d dims\n", d, rows, cat.Dimensions(d))
	}
	return nil
}

// runPack converts a JSON array-of-vectors file into an NPY matrix.
func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	in := fs.String("in", "", "input JSON file: array of equal-length float vectors")
	out := fs.String("out", "", "output .npy file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("both -in and -out are required")
	}

	data, err := os.ReadFile(filepath.Clean(*in))
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	var vectors [][]float32
	if err := json.Unmarshal(data, &vectors); err != nil {
		return fmt.Errorf("parse %s: %w", *in, err)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("%s contains no vectors", *in)
	}

	cols := len(vectors[0])
	flat := make([]float32, 0, len(vectors)*cols)
	for i, v := range vectors {
		if len(v) != cols {
			return fmt.Errorf("vector %d has %d dims, expected %d", i, len(v), cols)
		}
		flat = append(flat, v...)
	}

	encoded, err := catalog.EncodeMatrix(catalog.Matrix{
		Rows: len(vectors),
		Cols: cols,
		Data: flat,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	fmt.Printf("wrote %s: %d rows x %d dims\n", *out, len(vectors), cols)
	return nil
}
