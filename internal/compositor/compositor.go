// Package compositor renders the base photograph with the transformed hat
// overlay onto an offscreen surface. The same drawing routine backs the live
// preview and the native-resolution export, so the export reproduces the
// preview exactly.
package compositor

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"hat-studio/internal/overlay"
	"hat-studio/internal/photo"
	"hat-studio/pkg/geometry"
)

// ErrNoPhoto is returned when an export is attempted before a photograph
// has been loaded.
var ErrNoPhoto = errors.New("no photo loaded")

// ErrNoOverlay is returned when the overlay asset is unavailable.
var ErrNoOverlay = errors.New("no overlay image")

// Placement describes where and how the overlay lands on a target surface.
// Width is the overlay's footprint in target pixels at scale 1; the height
// follows the overlay's own aspect ratio.
type Placement struct {
	Center   geometry.Point2D
	Rotation float64 // degrees
	Scale    float64
	FlipX    bool
	Width    float64
}

// Options describes an export render.
type Options struct {
	Transform overlay.Transform

	// DisplaySize is the on-screen size of the fitted photo in display
	// pixels. The transform's position and OverlayWidth are in the same
	// units. A zero size means the render happens directly in native
	// pixels.
	DisplaySize geometry.Size

	// OverlayWidth is the brand's reference overlay display width.
	OverlayWidth float64
}

// Render composites the photograph and the overlay at the photograph's
// native resolution. The base fills the surface exactly; the overlay is
// placed at the image center plus the transform's offset scaled from
// display to native coordinates.
func Render(base *photo.Layer, hat *image.NRGBA, opts Options) (*image.RGBA, error) {
	if base == nil || base.Image == nil {
		return nil, ErrNoPhoto
	}
	if hat == nil {
		return nil, ErrNoOverlay
	}

	native := base.NativeSize()
	if native.IsZero() {
		return nil, ErrNoPhoto
	}

	display := opts.DisplaySize
	if display.IsZero() {
		display = native
	}
	scaleX := native.Width / display.Width
	scaleY := native.Height / display.Height

	dst := image.NewRGBA(image.Rect(0, 0, int(native.Width), int(native.Height)))
	draw.Draw(dst, dst.Bounds(), base.Image, base.Image.Bounds().Min, draw.Src)

	t := opts.Transform
	DrawOverlay(dst, hat, Placement{
		Center: geometry.NewPoint2D(
			native.Width/2+t.Position.X*scaleX,
			native.Height/2+t.Position.Y*scaleY,
		),
		Rotation: t.Rotation,
		Scale:    t.Scale,
		FlipX:    t.FlipX,
		Width:    opts.OverlayWidth * scaleX,
	})

	return dst, nil
}

// DrawOverlay draws the overlay onto dst with the placement's transform.
// The operation order is translate, rotate, mirror, scale; affine
// operations do not commute, and this order matches the live preview.
func DrawOverlay(dst *image.RGBA, src *image.NRGBA, p Placement) {
	srcW := float64(src.Rect.Dx())
	srcH := float64(src.Rect.Dy())
	if srcW <= 0 || srcH <= 0 || p.Width <= 0 || p.Scale <= 0 {
		return
	}

	// Overlay-local coordinates are source pixels centered on the origin,
	// so one uniform factor maps them to the target footprint.
	sx := p.Width / srcW * p.Scale
	sy := sx
	if p.FlipX {
		sx = -sx
	}

	forward := geometry.Translation(p.Center.X, p.Center.Y).
		Compose(geometry.Rotation(p.Rotation * math.Pi / 180.0)).
		Compose(geometry.Scale(sx, sy))

	inverse, ok := forward.Inverse()
	if !ok {
		return
	}

	// Restrict the pixel loop to the transformed overlay's bounding box.
	corners := []geometry.Point2D{
		forward.Apply(geometry.NewPoint2D(-srcW/2, -srcH/2)),
		forward.Apply(geometry.NewPoint2D(srcW/2, -srcH/2)),
		forward.Apply(geometry.NewPoint2D(srcW/2, srcH/2)),
		forward.Apply(geometry.NewPoint2D(-srcW/2, srcH/2)),
	}
	box := geometry.BoundingBox(corners)

	bounds := dst.Bounds()
	minX := clampInt(int(math.Floor(box.X)), bounds.Min.X, bounds.Max.X)
	maxX := clampInt(int(math.Ceil(box.X+box.Width))+1, bounds.Min.X, bounds.Max.X)
	minY := clampInt(int(math.Floor(box.Y)), bounds.Min.Y, bounds.Max.Y)
	maxY := clampInt(int(math.Ceil(box.Y+box.Height))+1, bounds.Min.Y, bounds.Max.Y)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			// Inverse-map the pixel center into overlay space.
			local := inverse.Apply(geometry.NewPoint2D(float64(x)+0.5, float64(y)+0.5))
			u := local.X + srcW/2
			v := local.Y + srcH/2
			if u < 0 || u > srcW-1 || v < 0 || v > srcH-1 {
				continue
			}

			sr, sg, sb, sa := sampleBilinear(src, u, v)
			if sa == 0 {
				continue
			}

			alpha := float64(sa) / 255.0
			if alpha >= 0.999 {
				dst.SetRGBA(x, y, color.RGBA{R: sr, G: sg, B: sb, A: 255})
				continue
			}

			d := dst.RGBAAt(x, y)
			inv := 1 - alpha
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(sr)*alpha + float64(d.R)*inv),
				G: uint8(float64(sg)*alpha + float64(d.G)*inv),
				B: uint8(float64(sb)*alpha + float64(d.B)*inv),
				A: 255,
			})
		}
	}
}

// sampleBilinear performs clamped bilinear filtering on an NRGBA image.
// Accesses src.Pix directly for performance.
func sampleBilinear(src *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	x0 := int(u)
	y0 := int(v)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	dx := u - float64(x0)
	dy := v - float64(y0)

	stride := src.Stride
	pix := src.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
