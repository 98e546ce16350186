// Command vagen regenerates the checked-in equation units.
//
// Each target is a Go source file produced from a symbolic equation
// definition in internal/equations. The output is deterministic, so the
// files can live in version control and -check can verify them in CI.
//
// Usage:
//
//	vagen [flags]
//
// Examples:
//
//	vagen -out .
//	vagen -only svf -out .
//	vagen -check -out .
//	vagen -list
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-va/internal/equations"
)

func main() {
	list := flag.Bool("list", false, "list target names and exit")
	only := flag.String("only", "", "restrict to a single named target")
	out := flag.String("out", ".", "module root directory to write into")
	check := flag.Bool("check", false, "verify checked-in files instead of writing, exit 1 on drift")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vagen [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Regenerates the checked-in equation units from their symbolic definitions.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	targets := equations.Targets()

	if *list {
		for _, t := range targets {
			fmt.Printf("%-10s %s\n", t.Name, t.Path)
		}

		return
	}

	if *only != "" {
		targets = filterTargets(targets, *only)
		if len(targets) == 0 {
			fmt.Fprintf(os.Stderr, "vagen: unknown target %q\n", *only)
			os.Exit(2)
		}
	}

	drift := false

	for _, t := range targets {
		src, err := t.Generate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "vagen: generate %s: %v\n", t.Name, err)
			os.Exit(1)
		}

		path := filepath.Join(*out, filepath.FromSlash(t.Path))

		if *check {
			existing, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "vagen: read %s: %v\n", path, err)
				os.Exit(1)
			}

			if string(existing) != src {
				fmt.Fprintf(os.Stderr, "vagen: %s is out of date\n", path)

				drift = true
			}

			continue
		}

		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "vagen: write %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("wrote %s\n", path)
	}

	if drift {
		os.Exit(1)
	}
}

func filterTargets(targets []equations.Target, name string) []equations.Target {
	var kept []equations.Target

	for _, t := range targets {
		if t.Name == name {
			kept = append(kept, t)
		}
	}

	return kept
}
