package app

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"hat-studio/internal/brand"
	"hat-studio/internal/compositor"
	"hat-studio/internal/overlay"
	"hat-studio/pkg/geometry"
)

func testBrand() brand.Spec {
	return brand.Spec{
		Name:                "test",
		Title:               "Test",
		AssetDir:            "test",
		ExportFilename:      "test-hat.png",
		OverlayDisplayWidth: 100,
		HasTape:             true,
		Colors:              []string{"red", "blue"},
		Accent:              "#112233",
		Variants: overlay.Table{
			{Flipped: false, Tape: false, Color: 0}: "hat.png",
			{Flipped: true, Tape: false, Color: 0}:  "hat-flipped.png",
			{Flipped: false, Tape: true, Color: 0}:  "hat-tape.png",
			{Flipped: true, Tape: true, Color: 0}:   "hat-tape-flipped.png",
			{Flipped: false, Tape: false, Color: 1}: "hat-blue.png",
			{Flipped: true, Tape: false, Color: 1}:  "hat-blue-flipped.png",
			{Flipped: false, Tape: true, Color: 1}:  "hat-blue-tape.png",
			{Flipped: true, Tape: true, Color: 1}:   "hat-blue-tape-flipped.png",
		},
	}
}

func writeTestPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// newTestState creates state backed by a temp asset directory holding every
// variant of the test brand.
func newTestState(t *testing.T) *State {
	t.Helper()
	root := t.TempDir()
	spec := testBrand()
	for _, name := range spec.Variants.AssetNames() {
		writeTestPNG(t, filepath.Join(root, spec.AssetDir, name), 20, 10, color.NRGBA{R: 255, A: 255})
	}
	return NewState(spec, root)
}

func TestDragPreservesGrabOffset(t *testing.T) {
	s := newTestState(t)

	// Overlay sits at (30, 40); the pointer grabs it at (35, 48).
	s.DragTo(geometry.NewPoint2D(999, 999)) // no drag yet, must be ignored
	if s.Transform().Position != (geometry.Point2D{}) {
		t.Fatal("DragTo outside a drag moved the overlay")
	}

	s.updateTransform(func(tr overlay.Transform) overlay.Transform {
		return tr.MovedTo(geometry.NewPoint2D(30, 40))
	})
	s.BeginDrag(geometry.NewPoint2D(35, 48))
	s.DragTo(geometry.NewPoint2D(135, 148))

	pos := s.Transform().Position
	if pos.X != 130 || pos.Y != 140 {
		t.Errorf("position = %+v, want (130, 140)", pos)
	}
	s.EndDrag()
	if s.Dragging() {
		t.Error("still dragging after EndDrag")
	}
}

func TestBeginDragIgnoresSecondContact(t *testing.T) {
	s := newTestState(t)

	s.BeginDrag(geometry.NewPoint2D(10, 10))
	s.BeginDrag(geometry.NewPoint2D(500, 500)) // second touch, ignored
	s.DragTo(geometry.NewPoint2D(20, 10))

	pos := s.Transform().Position
	if pos.X != 10 || pos.Y != 0 {
		t.Errorf("position = %+v, want (10, 0) from the first grab offset", pos)
	}
}

func TestRotateAndScaleActions(t *testing.T) {
	s := newTestState(t)

	s.RotateRight()
	s.RotateRight()
	s.RotateLeft()
	if got := s.Transform().Rotation; got != overlay.RotateStep {
		t.Errorf("rotation = %f, want %f", got, overlay.RotateStep)
	}

	s.ScaleUp()
	want := overlay.ScaleUpFactor
	if got := s.Transform().Scale; got != want {
		t.Errorf("scale = %f, want %f", got, want)
	}
}

func TestToggleFlipSyncsVariant(t *testing.T) {
	s := newTestState(t)

	s.ToggleFlip()
	if !s.Transform().FlipX {
		t.Error("transform not flipped")
	}
	if !s.Variant().Flipped {
		t.Error("variant key not flipped")
	}

	s.ToggleFlip()
	if s.Transform().FlipX || s.Variant().Flipped {
		t.Error("double flip did not restore the original")
	}
}

func TestToggleTape(t *testing.T) {
	s := newTestState(t)
	s.ToggleTape()
	if !s.Variant().Tape {
		t.Error("tape not enabled")
	}

	// Brands without the accessory ignore the action.
	spec := testBrand()
	spec.HasTape = false
	noTape := NewState(spec, t.TempDir())
	noTape.ToggleTape()
	if noTape.Variant().Tape {
		t.Error("tape toggled on a brand without it")
	}
}

func TestCycleColorWraps(t *testing.T) {
	s := newTestState(t)

	s.CycleColor()
	if s.Variant().Color != 1 {
		t.Errorf("color = %d, want 1", s.Variant().Color)
	}
	s.CycleColor()
	if s.Variant().Color != 0 {
		t.Errorf("color = %d, want wrap to 0", s.Variant().Color)
	}

	spec := testBrand()
	spec.Colors = []string{"only"}
	single := NewState(spec, t.TempDir())
	single.CycleColor()
	if single.Variant().Color != 0 {
		t.Error("single-color brand cycled")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestState(t)

	s.RotateRight()
	s.ScaleUp()
	s.ToggleFlip()
	s.ToggleTape()
	s.CycleColor()
	s.BeginDrag(geometry.NewPoint2D(5, 5))
	s.DragTo(geometry.NewPoint2D(80, 90))

	s.Reset()

	if s.Transform() != overlay.IdentityTransform() {
		t.Errorf("transform after reset = %+v", s.Transform())
	}
	if s.Variant() != (overlay.Key{}) {
		t.Errorf("variant after reset = %+v", s.Variant())
	}
	if s.Dragging() {
		t.Error("still dragging after reset")
	}

	// Reset is idempotent.
	s.Reset()
	if s.Transform() != overlay.IdentityTransform() {
		t.Error("second reset changed state")
	}
}

func TestLoadPhotoKeepsTransform(t *testing.T) {
	s := newTestState(t)
	dir := t.TempDir()

	s.RotateRight()
	s.updateTransform(func(tr overlay.Transform) overlay.Transform {
		return tr.MovedTo(geometry.NewPoint2D(12, 34))
	})
	before := s.Transform()

	photoPath := filepath.Join(dir, "photo.png")
	writeTestPNG(t, photoPath, 64, 48, color.NRGBA{B: 255, A: 255})
	if err := s.LoadPhoto(photoPath); err != nil {
		t.Fatalf("load: %v", err)
	}

	if s.Transform() != before {
		t.Errorf("loading a photo changed the transform: %+v", s.Transform())
	}

	// A failed load leaves the previous photo in place.
	if err := s.LoadPhoto(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected load failure")
	}
	if s.Photo() == nil || s.Photo().Path != photoPath {
		t.Error("failed load discarded the previous photo")
	}
}

func TestEventEmission(t *testing.T) {
	s := newTestState(t)

	var transforms, variants int
	s.On(EventTransformChanged, func(interface{}) { transforms++ })
	s.On(EventVariantChanged, func(interface{}) { variants++ })

	s.RotateRight()
	s.ScaleDown()
	s.ToggleFlip() // emits both
	s.ToggleTape()

	if transforms != 3 {
		t.Errorf("transform events = %d, want 3", transforms)
	}
	if variants != 2 {
		t.Errorf("variant events = %d, want 2", variants)
	}
}

func TestOverlayImageResolvesVariant(t *testing.T) {
	s := newTestState(t)

	img, err := s.OverlayImage()
	if err != nil {
		t.Fatalf("overlay image: %v", err)
	}
	if img.Rect.Dx() != 20 || img.Rect.Dy() != 10 {
		t.Errorf("got %dx%d", img.Rect.Dx(), img.Rect.Dy())
	}

	s.ToggleFlip()
	if _, err := s.OverlayImage(); err != nil {
		t.Errorf("flipped overlay image: %v", err)
	}
}

func TestExportWithoutPhoto(t *testing.T) {
	s := newTestState(t)
	path := filepath.Join(t.TempDir(), "out.png")

	err := s.Export(path)
	if !errors.Is(err, compositor.ErrNoPhoto) {
		t.Fatalf("export without photo gave %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("export without photo left a file behind")
	}
}

func TestExportMissingAssetLeavesNoFile(t *testing.T) {
	// State whose asset directory holds no files: the variant resolves but
	// the asset load fails.
	root := t.TempDir()
	s := NewState(testBrand(), root)

	photoPath := filepath.Join(root, "photo.png")
	writeTestPNG(t, photoPath, 32, 32, color.NRGBA{G: 255, A: 255})
	if err := s.LoadPhoto(photoPath); err != nil {
		t.Fatalf("load: %v", err)
	}

	outPath := filepath.Join(root, "out.png")
	if err := s.Export(outPath); err == nil {
		t.Fatal("export with a missing overlay asset should fail")
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("failed export left a file at the chosen path")
	}
}

func TestRenderCompositeDetectsFailuresUpFront(t *testing.T) {
	s := newTestState(t)

	// No photo yet.
	if _, err := s.RenderComposite(); !errors.Is(err, compositor.ErrNoPhoto) {
		t.Fatalf("render without photo gave %v", err)
	}

	photoPath := filepath.Join(t.TempDir(), "photo.png")
	writeTestPNG(t, photoPath, 64, 32, color.NRGBA{B: 255, A: 255})
	if err := s.LoadPhoto(photoPath); err != nil {
		t.Fatalf("load: %v", err)
	}

	img, err := s.RenderComposite()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("composite is %dx%d, want native 64x32", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Missing asset reported before any destination exists.
	missing := NewState(testBrand(), t.TempDir())
	if err := missing.LoadPhoto(photoPath); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := missing.RenderComposite(); err == nil {
		t.Fatal("render with a missing overlay asset should fail")
	}
}

func TestExportNativeResolution(t *testing.T) {
	s := newTestState(t)
	dir := t.TempDir()

	photoPath := filepath.Join(dir, "photo.png")
	writeTestPNG(t, photoPath, 320, 240, color.NRGBA{B: 255, A: 255})
	if err := s.LoadPhoto(photoPath); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.SetDisplaySize(geometry.NewSize(160, 120))

	var exported int
	s.On(EventExported, func(interface{}) { exported++ })

	outPath := filepath.Join(dir, "out.png")
	if err := s.Export(outPath); err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported != 1 {
		t.Errorf("export events = %d, want 1", exported)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("export is %dx%d, want native 320x240", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestExportPath(t *testing.T) {
	s := newTestState(t)
	got := s.ExportPath("/tmp/downloads")
	want := filepath.Join("/tmp/downloads", "test-hat.png")
	if got != want {
		t.Errorf("export path = %q, want %q", got, want)
	}
}
