package brand

import "hat-studio/internal/overlay"

// The partner skin uses a single large hat with no accessory or color
// toggles, only the horizontal flip.

const (
	partnerOverlayWidth   = 400.0
	partnerExportFilename = "you-are-a-partner-now.png"
)

// PartnerSpec returns the "You Are A Partner Now" brand.
func PartnerSpec() Spec {
	return Spec{
		Name:                "partner",
		Title:               "You Are A Partner Now",
		AssetDir:            "partner",
		ExportFilename:      partnerExportFilename,
		OverlayDisplayWidth: partnerOverlayWidth,
		Colors:              []string{"classic"},
		Accent:              "#C8A24B",
		Variants: overlay.Table{
			{Flipped: false}: "hat.png",
			{Flipped: true}:  "hat-flipped.png",
		},
	}
}
