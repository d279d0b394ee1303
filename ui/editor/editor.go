// Package editor provides the interactive preview canvas: the fitted
// photograph with the draggable hat overlay on top.
package editor

import (
	"image"
	"image/color"
	"image/draw"

	"hat-studio/internal/app"
	"hat-studio/internal/compositor"
	"hat-studio/internal/photo"
	"hat-studio/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	xdraw "golang.org/x/image/draw"
)

// PreviewCanvas renders the live preview and turns pointer drags into
// overlay position updates. It uses the same overlay drawing routine as
// the export path, so what is on screen is what gets exported.
type PreviewCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	// Current overlay image, swapped by the window whenever the variant
	// changes. Nil when the asset failed to load.
	hat *image.NRGBA

	// Fitted-base cache, keyed by the photo layer and raster size.
	cachedBase  *image.RGBA
	cachedPhoto *photo.Layer
	cachedW     int
	cachedH     int
}

// NewPreviewCanvas creates the preview bound to the editor state.
func NewPreviewCanvas(state *app.State) *PreviewCanvas {
	pc := &PreviewCanvas{state: state}
	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.SetMinSize(fyne.NewSize(480, 360))
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetOverlayImage sets the decoded overlay asset to draw.
func (pc *PreviewCanvas) SetOverlayImage(img *image.NRGBA) {
	pc.hat = img
	pc.Refresh()
}

// Refresh redraws the preview.
func (pc *PreviewCanvas) Refresh() {
	pc.raster.Refresh()
	pc.BaseWidget.Refresh()
}

// Dragged implements fyne.Draggable. The first event of a drag records the
// grab offset; subsequent events move the overlay rigidly with the pointer.
func (pc *PreviewCanvas) Dragged(ev *fyne.DragEvent) {
	size := pc.Size()
	contact := geometry.NewPoint2D(
		float64(ev.Position.X)-float64(size.Width)/2,
		float64(ev.Position.Y)-float64(size.Height)/2,
	)

	if !pc.state.Dragging() {
		pc.state.BeginDrag(contact)
	}
	pc.state.DragTo(contact)
	pc.Refresh()
}

// DragEnd implements fyne.Draggable.
func (pc *PreviewCanvas) DragEnd() {
	pc.state.EndDrag()
}

// draw is the raster drawing function. w and h are device pixels; widget
// coordinates are logical, so display-unit geometry is scaled by the pixel
// ratio before drawing.
func (pc *PreviewCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), &image.Uniform{color.RGBA{28, 28, 30, 255}}, image.Point{}, draw.Src)

	base := pc.state.Photo()
	if base == nil || base.Image == nil || w <= 0 || h <= 0 {
		return output
	}

	ratio := 1.0
	if lw := float64(pc.Size().Width); lw > 0 {
		ratio = float64(w) / lw
	}

	// Fit the photo inside the raster, aspect-preserving, centered.
	fitted := photo.FitContain(base.NativeSize(), geometry.NewSize(float64(w), float64(h)))
	if fitted.IsZero() {
		return output
	}
	dispW := int(fitted.Width)
	dispH := int(fitted.Height)
	offX := (w - dispW) / 2
	offY := (h - dispH) / 2

	scaled := pc.fittedBase(base, dispW, dispH)
	draw.Draw(output, image.Rect(offX, offY, offX+dispW, offY+dispH), scaled, image.Point{}, draw.Src)

	// The export derives its display-to-native factors from this size, in
	// logical units to match drag coordinates.
	pc.state.SetDisplaySize(geometry.NewSize(fitted.Width/ratio, fitted.Height/ratio))

	if pc.hat == nil {
		return output
	}

	t := pc.state.Transform()
	compositor.DrawOverlay(output, pc.hat, compositor.Placement{
		Center: geometry.NewPoint2D(
			float64(w)/2+t.Position.X*ratio,
			float64(h)/2+t.Position.Y*ratio,
		),
		Rotation: t.Rotation,
		Scale:    t.Scale,
		FlipX:    t.FlipX,
		Width:    pc.state.Brand.OverlayDisplayWidth * ratio,
	})

	return output
}

// fittedBase returns the photo scaled to the displayed size, cached until
// the photo or the size changes.
func (pc *PreviewCanvas) fittedBase(base *photo.Layer, w, h int) *image.RGBA {
	if pc.cachedBase != nil && pc.cachedPhoto == base && pc.cachedW == w && pc.cachedH == h {
		return pc.cachedBase
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), base.Image, base.Image.Bounds(), xdraw.Src, nil)

	pc.cachedBase = scaled
	pc.cachedPhoto = base
	pc.cachedW = w
	pc.cachedH = h
	return scaled
}

// CreateRenderer implements fyne.Widget.
func (pc *PreviewCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.raster)
}
