package brand

import "hat-studio/internal/overlay"

// The sweetychat skin adds a tape accessory toggle on top of the flip.

const (
	sweetychatOverlayWidth   = 100.0
	sweetychatExportFilename = "sweetychat-hat.png"
)

// SweetychatSpec returns the SweetyChat brand.
func SweetychatSpec() Spec {
	return Spec{
		Name:                "sweetychat",
		Title:               "SweetyChat Hat Studio",
		AssetDir:            "sweetychat",
		ExportFilename:      sweetychatExportFilename,
		OverlayDisplayWidth: sweetychatOverlayWidth,
		HasTape:             true,
		Colors:              []string{"classic"},
		Accent:              "#E96BA8",
		Variants: overlay.Table{
			{Flipped: false, Tape: false}: "hat.png",
			{Flipped: false, Tape: true}:  "hat-tape.png",
			{Flipped: true, Tape: false}:  "hat-flipped.png",
			{Flipped: true, Tape: true}:   "hat-flipped-tape.png",
		},
	}
}
