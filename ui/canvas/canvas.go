// Package canvas provides the image viewport with pan, zoom, and pointer
// tracking. Pointer positions are mapped to natural pixel coordinates before
// they leave the package; everything downstream works in image space.
package canvas

import (
	"image"

	"image-inspector/internal/inspect"
	"image-inspector/internal/render"
	"image-inspector/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// ImageCanvas displays the loaded bitmap with its inspection overlays and
// reports taps and hovers in natural pixel coordinates.
type ImageCanvas struct {
	widget.BaseWidget

	// Displayed bitmap and the overlay state drawn on top of it
	img  image.Image
	snap inspect.Snapshot

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Container
	scroll  *zoomScroll
	content *pointerContent
	imgSize fyne.Size // Current image display size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onTap        func(pt geometry.Point2D)
	onHover      func(pt geometry.Point2D)
	onLeave      func()
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pointerContent wraps the raster to turn taps and mouse movement into
// image-space callbacks.
type pointerContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

func newPointerContent(ic *ImageCanvas, raster *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{
		canvas: ic,
		raster: raster,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return &pointerContentRenderer{content: pc}
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

func (pc *pointerContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		pc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		pc.canvas.ZoomOut()
	}
}

// Tapped handles left-click events.
func (pc *pointerContent) Tapped(ev *fyne.PointEvent) {
	if pc.canvas.onTap == nil {
		return
	}

	pt, ok := pc.imagePosition(ev.Position)
	if !ok {
		return
	}
	pc.canvas.onTap(pt)
}

// MouseIn implements desktop.Hoverable.
func (pc *pointerContent) MouseIn(ev *desktop.MouseEvent) {
	pc.MouseMoved(ev)
}

// MouseMoved reports the pointer position in image coordinates.
func (pc *pointerContent) MouseMoved(ev *desktop.MouseEvent) {
	if pc.canvas.onHover == nil {
		return
	}

	pt, ok := pc.imagePosition(ev.Position)
	if !ok {
		return
	}
	pc.canvas.onHover(pt)
}

// MouseOut implements desktop.Hoverable.
func (pc *pointerContent) MouseOut() {
	if pc.canvas.onLeave != nil {
		pc.canvas.onLeave()
	}
}

// imagePosition converts an event position to natural pixel coordinates.
// ok is false when the position falls outside the widget or no image is
// loaded.
func (pc *pointerContent) imagePosition(pos fyne.Position) (geometry.Point2D, bool) {
	// Workaround for Fyne bug: reject events outside widget bounds
	size := pc.Size()
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return geometry.Point2D{}, false
	}

	// ev.Position is relative to viewport, add scroll offset for content position
	scrollOffset := pc.canvas.scroll.Offset()
	display := geometry.Point2D{
		X: float64(pos.X + scrollOffset.X),
		Y: float64(pos.Y + scrollOffset.Y),
	}

	return pc.canvas.mapper().ToImage(display)
}

type pointerContentRenderer struct {
	content *pointerContent
}

func (r *pointerContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *pointerContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *pointerContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *pointerContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *pointerContentRenderer) Destroy() {}

// NewImageCanvas creates a new image canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:    1.0,
		snap:    inspect.NewSnapshot(),
		imgSize: fyne.NewSize(400, 300),
	}

	// Create the raster for drawing
	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	// Wrap raster in pointer-aware content for mouse events
	ic.content = newPointerContent(ic, ic.raster)

	// Create zoomable scroll container (wheel = zoom, drag = pan)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetImage sets the bitmap to display. A nil image clears the canvas.
func (ic *ImageCanvas) SetImage(img image.Image) {
	ic.img = img
	ic.updateContentSize()
}

// GetImage returns the displayed bitmap.
func (ic *ImageCanvas) GetImage() image.Image {
	return ic.img
}

// SetSnapshot updates the overlay state and repaints.
func (ic *ImageCanvas) SetSnapshot(snap inspect.Snapshot) {
	ic.snap = snap
	ic.Refresh()
}

// SetZoom sets the zoom level.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ic.zoom = zoom
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ic *ImageCanvas) GetZoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the image in the visible area.
func (ic *ImageCanvas) FitToWindow() {
	bounds := ic.imageBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	// Get viewport size
	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	// Calculate zoom to fit both dimensions
	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	ic.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ic *ImageCanvas) SetFitToWindow(fit bool) {
	ic.fitToWindow = fit
	if fit {
		ic.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (ic *ImageCanvas) GetFitToWindow() bool {
	return ic.fitToWindow
}

// CheckResize checks if scroll container was resized and auto-fits if enabled.
func (ic *ImageCanvas) CheckResize(size fyne.Size) {
	if !ic.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ic.lastScrollSize {
		ic.lastScrollSize = size
		ic.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnTap sets a callback for left-click events.
// Coordinates are in image space (not zoomed).
func (ic *ImageCanvas) OnTap(callback func(pt geometry.Point2D)) {
	ic.onTap = callback
}

// OnHover sets a callback for pointer movement over the image.
// Coordinates are in image space (not zoomed).
func (ic *ImageCanvas) OnHover(callback func(pt geometry.Point2D)) {
	ic.onHover = callback
}

// OnLeave sets a callback for the pointer leaving the canvas.
func (ic *ImageCanvas) OnLeave(callback func()) {
	ic.onLeave = callback
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// mapper returns the coordinate mapper for the current image and zoom. It is
// rebuilt on every event so it always reflects current geometry.
func (ic *ImageCanvas) mapper() inspect.Mapper {
	bounds := ic.imageBounds()
	return inspect.NewMapper(
		bounds.Dx(), bounds.Dy(),
		float64(bounds.Dx())*ic.zoom, float64(bounds.Dy())*ic.zoom,
	)
}

// imageBounds returns the bounds of the displayed bitmap.
func (ic *ImageCanvas) imageBounds() image.Rectangle {
	if ic.img == nil {
		return image.Rectangle{}
	}
	b := ic.img.Bounds()
	return image.Rect(0, 0, b.Dx(), b.Dy())
}

// updateContentSize updates the content size based on image and zoom.
func (ic *ImageCanvas) updateContentSize() {
	bounds := ic.imageBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		ic.imgSize = fyne.NewSize(400, 300)
	} else {
		width := float32(float64(bounds.Dx()) * ic.zoom)
		height := float32(float64(bounds.Dy()) * ic.zoom)
		ic.imgSize = fyne.NewSize(width, height)
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	// Check for size change and auto-fit if enabled
	currentSize := fyne.NewSize(float32(w), float32(h))
	if ic.fitToWindow && currentSize != ic.lastScrollSize && w > 0 && h > 0 {
		ic.lastScrollSize = currentSize
		// Schedule fit after this draw completes
		go func() {
			ic.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	render.Frame(output, ic.img, ic.zoom, ic.snap)
	return output
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &imageCanvasRenderer{canvas: ic}
}

type imageCanvasRenderer struct {
	canvas *ImageCanvas
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	// Check for resize and auto-fit if enabled
	r.canvas.CheckResize(size)
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *imageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *imageCanvasRenderer) Destroy() {}
