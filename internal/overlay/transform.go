// Package overlay provides the hat overlay's placement state and variant
// selection.
package overlay

import (
	"hat-studio/pkg/geometry"
)

const (
	// RotateStep is the rotation applied per rotate action, in degrees.
	RotateStep = 15.0

	// ScaleUpFactor and ScaleDownFactor multiply the current scale per action.
	ScaleUpFactor   = 1.1
	ScaleDownFactor = 0.9

	// MinScale and MaxScale bound the overlay scale.
	MinScale = 0.1
	MaxScale = 7.0
)

// Transform describes the complete placement of the overlay: the center
// offset from the preview center in display pixels, an unbounded rotation in
// degrees, a uniform scale, and a horizontal mirror flag.
//
// Transform is a value type. Every mutation produces a full, consistent
// snapshot; renders never observe a partially updated placement.
type Transform struct {
	Position geometry.Point2D `json:"position"`
	Rotation float64          `json:"rotation"`
	Scale    float64          `json:"scale"`
	FlipX    bool             `json:"flip_x"`
}

// IdentityTransform returns the default placement: centered, unrotated,
// unit scale, not flipped.
func IdentityTransform() Transform {
	return Transform{Scale: 1.0}
}

// Rotated returns a copy rotated by the given number of degrees. Rotation
// accumulates without wrapping; 360 and 0 render identically.
func (t Transform) Rotated(degrees float64) Transform {
	t.Rotation += degrees
	return t
}

// Scaled returns a copy with the scale multiplied by factor and clamped to
// [MinScale, MaxScale].
func (t Transform) Scaled(factor float64) Transform {
	t.Scale *= factor
	if t.Scale < MinScale {
		t.Scale = MinScale
	}
	if t.Scale > MaxScale {
		t.Scale = MaxScale
	}
	return t
}

// MovedTo returns a copy positioned at the given center offset.
func (t Transform) MovedTo(pos geometry.Point2D) Transform {
	t.Position = pos
	return t
}

// Flipped returns a copy with the horizontal mirror toggled.
func (t Transform) Flipped() Transform {
	t.FlipX = !t.FlipX
	return t
}
