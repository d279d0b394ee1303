// Package brand provides the per-brand editor configuration: overlay asset
// variants, the overlay's reference display width, the export filename, and
// the skin accent. One parameterized editor core serves every brand.
package brand

import (
	"fmt"
	"os"
	"path/filepath"

	"hat-studio/internal/overlay"
)

// Spec describes one branded editor variant.
type Spec struct {
	// Name is the short identifier used on the command line and in
	// preferences.
	Name string

	// Title is the window title.
	Title string

	// AssetDir is the directory holding the overlay images, relative to
	// the asset root unless absolute.
	AssetDir string

	// ExportFilename is the fixed name of the exported composite.
	ExportFilename string

	// OverlayDisplayWidth is the overlay's on-screen footprint width in
	// display pixels at scale 1. The source skins disagreed on this value
	// (100 vs 400), so it is configuration, never inferred.
	OverlayDisplayWidth float64

	// HasTape reports whether the brand has the tape accessory toggle.
	HasTape bool

	// Colors lists the selectable overlay colors. A single entry means
	// the color toggle is absent.
	Colors []string

	// Accent is the skin's accent color as #RRGGBB.
	Accent string

	// Variants maps every toggle combination to its asset file.
	Variants overlay.Table
}

// ColorCount returns the number of selectable colors, at least 1.
func (s Spec) ColorCount() int {
	if len(s.Colors) < 1 {
		return 1
	}
	return len(s.Colors)
}

// ResolveAsset returns the asset file name for the given toggle states.
func (s Spec) ResolveAsset(k overlay.Key) (string, error) {
	return s.Variants.Resolve(k)
}

// Validate checks the spec for completeness, including variant-table
// totality over the brand's toggle space.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("brand has no name")
	}
	if s.ExportFilename == "" {
		return fmt.Errorf("brand %s has no export filename", s.Name)
	}
	if s.OverlayDisplayWidth <= 0 {
		return fmt.Errorf("brand %s has non-positive overlay display width", s.Name)
	}
	if err := s.Variants.Validate(s.HasTape, s.ColorCount()); err != nil {
		return fmt.Errorf("brand %s: %w", s.Name, err)
	}
	return nil
}

// CheckAssets verifies that every asset the variant table references exists
// under the given asset root.
func (s Spec) CheckAssets(root string) error {
	dir := s.AssetDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	for _, name := range s.Variants.AssetNames() {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("brand %s: asset %s: %w", s.Name, name, err)
		}
	}
	return nil
}

// GetSpec returns the built-in spec with the given name.
func GetSpec(name string) (Spec, error) {
	for _, s := range BuiltinSpecs() {
		if s.Name == name {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("unknown brand %q", name)
}

// BuiltinSpecs returns all built-in brand specs.
func BuiltinSpecs() []Spec {
	return []Spec{
		PartnerSpec(),
		SweetychatSpec(),
		ElizaSpec(),
	}
}

// Names returns the built-in brand names.
func Names() []string {
	specs := BuiltinSpecs()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}
