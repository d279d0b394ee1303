// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"hat-studio/internal/brand"
	"hat-studio/internal/compositor"
	"hat-studio/internal/overlay"
	"hat-studio/internal/photo"
	"hat-studio/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventPhotoLoaded EventType = iota
	EventTransformChanged
	EventVariantChanged
	EventReset
	EventExported
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the editor state: the loaded photograph, the overlay
// placement, the variant toggles, and the drag interaction state. All
// mutation happens on discrete UI event callbacks; the single State is the
// one logical owner of everything here.
type State struct {
	mu sync.RWMutex

	// Brand is the active skin configuration.
	Brand brand.Spec

	// Assets resolves the brand's overlay images.
	Assets *overlay.Store

	photo     *photo.Layer
	transform overlay.Transform
	variant   overlay.Key

	// displaySize is the on-screen size of the fitted photo, reported by
	// the preview widget. The export path uses it to derive the
	// display-to-native scale.
	displaySize geometry.Size

	// Drag interaction. dragStart preserves the grab offset between the
	// contact point and the overlay center for the whole drag.
	dragging  bool
	dragStart geometry.Point2D

	listeners map[EventType][]EventListener
}

// NewState creates editor state for the given brand. assetRoot is the
// directory holding the per-brand asset directories.
func NewState(spec brand.Spec, assetRoot string) *State {
	dir := spec.AssetDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(assetRoot, dir)
	}
	return &State{
		Brand:     spec,
		Assets:    overlay.NewStore(dir),
		transform: overlay.IdentityTransform(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Photo returns the loaded photograph, or nil.
func (s *State) Photo() *photo.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.photo
}

// Transform returns the current overlay placement snapshot.
func (s *State) Transform() overlay.Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

// Variant returns the current variant toggle states.
func (s *State) Variant() overlay.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variant
}

// DisplaySize returns the preview's fitted photo size in display pixels.
func (s *State) DisplaySize() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displaySize
}

// SetDisplaySize records the fitted photo size reported by the preview.
func (s *State) SetDisplaySize(size geometry.Size) {
	s.mu.Lock()
	s.displaySize = size
	s.mu.Unlock()
}

// LoadPhoto loads the base photograph. A new photo replaces the previous
// one; the overlay placement is kept. On failure nothing changes.
func (s *State) LoadPhoto(path string) error {
	layer, err := photo.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.photo = layer
	s.mu.Unlock()

	s.Emit(EventPhotoLoaded, layer)
	return nil
}

// BeginDrag starts a drag at the given contact point (display pixels,
// relative to the preview center). A second simultaneous contact is
// ignored: the drag already in progress keeps its grab offset.
func (s *State) BeginDrag(contact geometry.Point2D) {
	s.mu.Lock()
	if s.dragging {
		s.mu.Unlock()
		return
	}
	s.dragging = true
	s.dragStart = contact.Sub(s.transform.Position)
	s.mu.Unlock()
}

// DragTo moves the overlay so it tracks the contact point rigidly,
// preserving the original grab offset. Ignored outside a drag.
func (s *State) DragTo(contact geometry.Point2D) {
	s.mu.Lock()
	if !s.dragging {
		s.mu.Unlock()
		return
	}
	s.transform = s.transform.MovedTo(contact.Sub(s.dragStart))
	t := s.transform
	s.mu.Unlock()

	s.Emit(EventTransformChanged, t)
}

// EndDrag finishes the current drag. Further moves are ignored until the
// next BeginDrag.
func (s *State) EndDrag() {
	s.mu.Lock()
	s.dragging = false
	s.mu.Unlock()
}

// Dragging reports whether a drag is in progress.
func (s *State) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragging
}

// RotateLeft rotates the overlay one step counter-clockwise.
func (s *State) RotateLeft() {
	s.updateTransform(func(t overlay.Transform) overlay.Transform {
		return t.Rotated(-overlay.RotateStep)
	})
}

// RotateRight rotates the overlay one step clockwise.
func (s *State) RotateRight() {
	s.updateTransform(func(t overlay.Transform) overlay.Transform {
		return t.Rotated(overlay.RotateStep)
	})
}

// ScaleUp enlarges the overlay one step.
func (s *State) ScaleUp() {
	s.updateTransform(func(t overlay.Transform) overlay.Transform {
		return t.Scaled(overlay.ScaleUpFactor)
	})
}

// ScaleDown shrinks the overlay one step.
func (s *State) ScaleDown() {
	s.updateTransform(func(t overlay.Transform) overlay.Transform {
		return t.Scaled(overlay.ScaleDownFactor)
	})
}

func (s *State) updateTransform(f func(overlay.Transform) overlay.Transform) {
	s.mu.Lock()
	s.transform = f(s.transform)
	t := s.transform
	s.mu.Unlock()

	s.Emit(EventTransformChanged, t)
}

// ToggleFlip mirrors the overlay horizontally and re-resolves the variant,
// so brands with side-specific artwork swap to it.
func (s *State) ToggleFlip() {
	s.mu.Lock()
	s.transform = s.transform.Flipped()
	s.variant.Flipped = s.transform.FlipX
	t := s.transform
	k := s.variant
	s.mu.Unlock()

	s.Emit(EventTransformChanged, t)
	s.Emit(EventVariantChanged, k)
}

// ToggleTape toggles the tape accessory. No-op for brands without it.
func (s *State) ToggleTape() {
	if !s.Brand.HasTape {
		return
	}

	s.mu.Lock()
	s.variant.Tape = !s.variant.Tape
	k := s.variant
	s.mu.Unlock()

	s.Emit(EventVariantChanged, k)
}

// CycleColor advances to the next overlay color. No-op for single-color
// brands.
func (s *State) CycleColor() {
	n := s.Brand.ColorCount()
	if n < 2 {
		return
	}

	s.mu.Lock()
	s.variant.Color = (s.variant.Color + 1) % n
	k := s.variant
	s.mu.Unlock()

	s.Emit(EventVariantChanged, k)
}

// Reset restores the identity placement and the default variant,
// regardless of prior toggle history. The loaded photo is kept.
func (s *State) Reset() {
	s.mu.Lock()
	s.transform = overlay.IdentityTransform()
	s.variant = overlay.Key{}
	s.dragging = false
	s.mu.Unlock()

	s.Emit(EventReset, nil)
}

// OverlayImage resolves the current variant to its decoded asset.
func (s *State) OverlayImage() (*image.NRGBA, error) {
	name, err := s.Brand.ResolveAsset(s.Variant())
	if err != nil {
		return nil, err
	}
	return s.Assets.Get(name)
}

// ExportPath returns the brand's fixed export filename inside dir.
func (s *State) ExportPath(dir string) string {
	return filepath.Join(dir, s.Brand.ExportFilename)
}

// RenderComposite renders the export composite at the photo's native
// resolution. Every detectable export failure (no photo, missing or
// undecodable asset, degenerate photo) happens here, before any output
// destination is touched.
func (s *State) RenderComposite() (*image.RGBA, error) {
	if s.Photo() == nil {
		return nil, compositor.ErrNoPhoto
	}

	hat, err := s.OverlayImage()
	if err != nil {
		return nil, fmt.Errorf("overlay unavailable: %w", err)
	}

	return compositor.Render(s.Photo(), hat, compositor.Options{
		Transform:    s.Transform(),
		DisplaySize:  s.DisplaySize(),
		OverlayWidth: s.Brand.OverlayDisplayWidth,
	})
}

// Export renders the composite at the photo's native resolution and writes
// it to path. Any failure leaves all state untouched and produces no file.
func (s *State) Export(path string) error {
	img, err := s.RenderComposite()
	if err != nil {
		return err
	}

	if err := compositor.Save(path, img); err != nil {
		return err
	}

	s.Emit(EventExported, path)
	return nil
}
