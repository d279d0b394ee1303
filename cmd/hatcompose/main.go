// Command hatcompose renders a hat composite without the GUI. Positions are
// given in native photo pixels relative to the image center.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hat-studio/internal/brand"
	"hat-studio/internal/compositor"
	"hat-studio/internal/overlay"
	"hat-studio/internal/photo"
	"hat-studio/pkg/geometry"
)

func main() {
	photoPath := flag.String("photo", "", "Path to the base photograph")
	brandName := flag.String("brand", "partner", "Brand skin ("+strings.Join(brand.Names(), ", ")+") or a brand YAML file")
	assetRoot := flag.String("assets", "assets", "Directory holding the per-brand asset directories")
	outPath := flag.String("o", "", "Output path (default: the brand's export filename)")

	x := flag.Float64("x", 0, "Overlay center X offset from the image center")
	y := flag.Float64("y", 0, "Overlay center Y offset from the image center")
	rotation := flag.Float64("rot", 0, "Overlay rotation in degrees")
	scale := flag.Float64("scale", 1, "Overlay scale")
	flip := flag.Bool("flip", false, "Mirror the overlay horizontally")
	tape := flag.Bool("tape", false, "Enable the tape accessory")
	colorIdx := flag.Int("color", 0, "Overlay color index")
	flag.Parse()

	if *photoPath == "" {
		fmt.Println("Usage: hatcompose -photo <path> [-brand partner] [-x 0 -y 0 -rot 0 -scale 1] [-o out.png]")
		os.Exit(1)
	}

	spec, err := resolveBrand(*brandName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Brand: %v\n", err)
		os.Exit(1)
	}

	base, err := photo.Load(*photoPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load photo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded photo: %dx%d pixels\n", base.Width(), base.Height())

	key := overlay.Key{Flipped: *flip, Tape: *tape, Color: *colorIdx}
	assetName, err := spec.ResolveAsset(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Variant: %v\n", err)
		os.Exit(1)
	}

	dir := spec.AssetDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(*assetRoot, dir)
	}
	hat, err := overlay.NewStore(dir).Get(assetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Overlay: %v\n", err)
		os.Exit(1)
	}

	// Native-pixel placement: the display size equals the native size, so
	// display and native coordinates coincide.
	img, err := compositor.Render(base, hat, compositor.Options{
		Transform: overlay.Transform{
			Position: geometry.NewPoint2D(*x, *y),
			Rotation: *rotation,
			Scale:    *scale,
			FlipX:    *flip,
		},
		OverlayWidth: spec.OverlayDisplayWidth,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render: %v\n", err)
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		out = spec.ExportFilename
	}
	if err := compositor.Save(out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%s, variant %s)\n", out, compositor.FormatForPath(out), assetName)
}

func resolveBrand(name string) (brand.Spec, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return brand.LoadFile(name)
	}
	return brand.GetSpec(name)
}
