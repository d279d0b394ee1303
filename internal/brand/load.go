package brand

import (
	"fmt"
	"os"

	"hat-studio/internal/overlay"

	"gopkg.in/yaml.v3"
)

// specFile is the YAML representation of a custom brand.
type specFile struct {
	Name                string         `yaml:"name"`
	Title               string         `yaml:"title"`
	AssetDir            string         `yaml:"asset_dir"`
	ExportFilename      string         `yaml:"export_filename"`
	OverlayDisplayWidth float64        `yaml:"overlay_display_width"`
	HasTape             bool           `yaml:"has_tape"`
	Colors              []string       `yaml:"colors"`
	Accent              string         `yaml:"accent"`
	Variants            []variantEntry `yaml:"variants"`
}

type variantEntry struct {
	Flipped bool   `yaml:"flipped"`
	Tape    bool   `yaml:"tape"`
	Color   int    `yaml:"color"`
	Asset   string `yaml:"asset"`
}

// LoadFile reads a custom brand spec from a YAML file and validates it.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("brand: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML brand spec and validates it.
func Parse(data []byte) (Spec, error) {
	var f specFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Spec{}, fmt.Errorf("brand: parse: %w", err)
	}

	spec := Spec{
		Name:                f.Name,
		Title:               f.Title,
		AssetDir:            f.AssetDir,
		ExportFilename:      f.ExportFilename,
		OverlayDisplayWidth: f.OverlayDisplayWidth,
		HasTape:             f.HasTape,
		Colors:              f.Colors,
		Accent:              f.Accent,
		Variants:            make(overlay.Table, len(f.Variants)),
	}
	if spec.Title == "" {
		spec.Title = spec.Name
	}
	if spec.AssetDir == "" {
		spec.AssetDir = spec.Name
	}

	for _, v := range f.Variants {
		key := overlay.Key{Flipped: v.Flipped, Tape: v.Tape, Color: v.Color}
		if _, dup := spec.Variants[key]; dup {
			return Spec{}, fmt.Errorf("brand %s: duplicate variant %v", spec.Name, key)
		}
		if v.Asset == "" {
			return Spec{}, fmt.Errorf("brand %s: variant %v has no asset", spec.Name, key)
		}
		spec.Variants[key] = v.Asset
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}
