// Command brandlint validates brand definitions: variant table totality and
// the presence of every referenced asset file on disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"hat-studio/internal/brand"
)

func main() {
	assetRoot := flag.String("assets", "assets", "Directory holding the per-brand asset directories")
	skipAssets := flag.Bool("no-assets", false, "Skip checking that asset files exist")
	flag.Parse()

	specs, err := collectSpecs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, spec := range specs {
		if err := lint(spec, *assetRoot, *skipAssets); err != nil {
			fmt.Printf("FAIL %s: %v\n", spec.Name, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s (%d variants)\n", spec.Name, len(spec.Variants))
	}

	if failed > 0 {
		fmt.Printf("%d of %d brands failed\n", failed, len(specs))
		os.Exit(1)
	}
}

// collectSpecs resolves the command line arguments into brand specs. With no
// arguments every built-in brand is checked.
func collectSpecs(args []string) ([]brand.Spec, error) {
	if len(args) == 0 {
		return brand.BuiltinSpecs(), nil
	}

	var specs []brand.Spec
	for _, arg := range args {
		var spec brand.Spec
		var err error
		if strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml") {
			spec, err = brand.LoadFile(arg)
		} else {
			spec, err = brand.GetSpec(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func lint(spec brand.Spec, assetRoot string, skipAssets bool) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if skipAssets {
		return nil
	}
	return spec.CheckAssets(assetRoot)
}
