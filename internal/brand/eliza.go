package brand

import "hat-studio/internal/overlay"

// The eliza skin offers the hat in three colors, cycled with a single
// button, plus the flip.

const (
	elizaOverlayWidth   = 100.0
	elizaExportFilename = "eliza-hat.png"
)

// ElizaSpec returns the Eliza brand.
func ElizaSpec() Spec {
	return Spec{
		Name:                "eliza",
		Title:               "Eliza Hat Studio",
		AssetDir:            "eliza",
		ExportFilename:      elizaExportFilename,
		OverlayDisplayWidth: elizaOverlayWidth,
		Colors:              []string{"green", "pink", "blue"},
		Accent:              "#3FA66A",
		Variants: overlay.Table{
			{Flipped: false, Color: 0}: "hat-green.png",
			{Flipped: false, Color: 1}: "hat-pink.png",
			{Flipped: false, Color: 2}: "hat-blue.png",
			{Flipped: true, Color: 0}:  "hat-green-flipped.png",
			{Flipped: true, Color: 1}:  "hat-pink-flipped.png",
			{Flipped: true, Color: 2}:  "hat-blue-flipped.png",
		},
	}
}
