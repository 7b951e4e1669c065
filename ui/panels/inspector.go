// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"image-inspector/internal/app"
	inspimage "image-inspector/internal/image"
	"image-inspector/internal/inspect"
	"image-inspector/internal/render"
	"image-inspector/internal/sample"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const regionRadius = 1 // 3x3 neighborhood for the region statistics readout

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	// Tab content
	inspectPanel *InspectPanel
	historyPanel *HistoryPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	// Create individual panels
	sp.inspectPanel = NewInspectPanel(state)
	sp.historyPanel = NewHistoryPanel(state)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem("Inspect", sp.inspectPanel.Container()),
		container.NewTabItem("History", sp.historyPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for clipboard access.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.inspectPanel.SetWindow(w)
}

// InspectPanel shows the loaded image's details, the current color sample,
// the active measurement, and the AI description of the sampled color.
type InspectPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	// Image info
	fileLabel   *widget.Label
	sizeLabel   *widget.Label
	formatLabel *widget.Label
	dpiLabel    *widget.Label

	// Color sample
	swatch      *fynecanvas.Rectangle
	hexLabel    *widget.Label
	nameLabel   *widget.Label
	coordLabel  *widget.Label
	rgbLabel    *widget.Label
	hslLabel    *widget.Label
	copyButton  *widget.Button
	loupe       *fynecanvas.Image
	regionLabel *widget.Label

	// Measurement
	distanceLabel *widget.Label
	pointsLabel   *widget.Label
	measureHint   *widget.Label

	// AI description
	describeButton *widget.Button
	describeLabel  *widget.Label
}

// NewInspectPanel creates a new inspect panel.
func NewInspectPanel(state *app.State) *InspectPanel {
	ip := &InspectPanel{state: state}

	// Initialize all labels first (before any callbacks can fire)
	ip.fileLabel = widget.NewLabel("No image loaded")
	ip.fileLabel.Wrapping = fyne.TextWrapWord
	ip.sizeLabel = widget.NewLabel("")
	ip.formatLabel = widget.NewLabel("")
	ip.dpiLabel = widget.NewLabel("DPI: Unknown")

	ip.hexLabel = widget.NewLabel("Click the image to sample a color")
	ip.hexLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	ip.nameLabel = widget.NewLabel("")
	ip.coordLabel = widget.NewLabel("")
	ip.rgbLabel = widget.NewLabel("")
	ip.hslLabel = widget.NewLabel("")
	ip.regionLabel = widget.NewLabel("")

	ip.distanceLabel = widget.NewLabel("No measurement")
	ip.distanceLabel.TextStyle = fyne.TextStyle{Bold: true}
	ip.pointsLabel = widget.NewLabel("")
	ip.measureHint = widget.NewLabel("")
	ip.measureHint.Wrapping = fyne.TextWrapWord

	ip.describeLabel = widget.NewLabel("")
	ip.describeLabel.Wrapping = fyne.TextWrapWord

	ip.swatch = fynecanvas.NewRectangle(color.NRGBA{A: 255})
	ip.swatch.SetMinSize(fyne.NewSize(48, 48))
	ip.swatch.StrokeColor = color.Gray{Y: 150}
	ip.swatch.StrokeWidth = 1

	ip.loupe = fynecanvas.NewImageFromImage(
		image.NewRGBA(image.Rect(0, 0, render.LoupeSize, render.LoupeSize)))
	ip.loupe.ScaleMode = fynecanvas.ImageScalePixels
	ip.loupe.FillMode = fynecanvas.ImageFillContain
	ip.loupe.SetMinSize(fyne.NewSize(render.LoupeSize, render.LoupeSize))

	ip.copyButton = widget.NewButton("Copy Hex", func() {
		ip.copyHex()
	})
	ip.copyButton.Disable()

	ip.describeButton = widget.NewButton("Describe This Color", func() {
		state.RequestDescribe()
	})
	ip.describeButton.Disable()

	// Layout
	ip.container = container.NewVScroll(container.NewVBox(
		widget.NewCard("Image", "", container.NewVBox(
			ip.fileLabel,
			ip.sizeLabel,
			ip.formatLabel,
			ip.dpiLabel,
		)),
		widget.NewCard("Color", "", container.NewVBox(
			container.NewHBox(ip.swatch, container.NewVBox(ip.hexLabel, ip.nameLabel)),
			ip.coordLabel,
			ip.rgbLabel,
			ip.hslLabel,
			ip.copyButton,
			ip.loupe,
			ip.regionLabel,
		)),
		widget.NewCard("Measure", "", container.NewVBox(
			ip.distanceLabel,
			ip.pointsLabel,
			ip.measureHint,
		)),
		widget.NewCard("AI Description", "", container.NewVBox(
			ip.describeButton,
			ip.describeLabel,
		)),
	))

	// Register for events
	state.On(app.EventImageLoaded, func(data interface{}) {
		bmp, ok := data.(*inspimage.Bitmap)
		if !ok || bmp == nil {
			return
		}
		ip.updateImageInfo(bmp)
		ip.resetSampleReadout()
		ip.updateMeasure(nil)
	})

	state.On(app.EventSampleTaken, func(data interface{}) {
		smp, ok := data.(sample.Sample)
		if !ok {
			return
		}
		ip.updateSampleReadout(smp)
	})

	state.On(app.EventMeasureChanged, func(data interface{}) {
		m, _ := data.(*inspect.Measurement)
		ip.updateMeasure(m)
	})

	state.On(app.EventToolChanged, func(data interface{}) {
		ip.updateMeasureHint()
	})

	state.On(app.EventDescribeStarted, func(data interface{}) {
		ip.describeButton.Disable()
		ip.describeLabel.SetText("Asking the vision model...")
	})

	state.On(app.EventDescribeDone, func(data interface{}) {
		out, ok := data.(app.DescribeOutcome)
		if !ok {
			return
		}
		if _, have := ip.state.CurrentSample(); have {
			ip.describeButton.Enable()
		}
		if out.Stale {
			// Superseded by a newer sample; keep whatever is showing.
			return
		}
		if out.Err != nil {
			ip.describeLabel.SetText(fmt.Sprintf("Couldn't describe: %v", out.Err))
			return
		}
		ip.describeLabel.SetText(out.Text)
	})

	ip.updateMeasureHint()

	return ip
}

// SetWindow sets the parent window for clipboard access.
func (ip *InspectPanel) SetWindow(w fyne.Window) {
	ip.window = w
}

// Container returns the panel container.
func (ip *InspectPanel) Container() fyne.CanvasObject {
	return ip.container
}

func (ip *InspectPanel) copyHex() {
	smp, ok := ip.state.CurrentSample()
	if !ok || ip.window == nil {
		return
	}
	ip.window.Clipboard().SetContent(smp.Hex)
	ip.state.SetStatus("Copied " + smp.Hex)
}

func (ip *InspectPanel) updateImageInfo(bmp *inspimage.Bitmap) {
	ip.fileLabel.SetText(filepath.Base(bmp.Path))
	ip.sizeLabel.SetText(fmt.Sprintf("%d × %d px", bmp.Width, bmp.Height))
	ip.formatLabel.SetText("Format: " + strings.ToUpper(bmp.Format))
	if bmp.DPI > 0 {
		ip.dpiLabel.SetText(fmt.Sprintf("%.0f DPI (%.2f\" × %.2f\")",
			bmp.DPI, bmp.WidthInches(), bmp.HeightInches()))
	} else {
		ip.dpiLabel.SetText("DPI: Unknown")
	}
}

func (ip *InspectPanel) resetSampleReadout() {
	ip.swatch.FillColor = color.NRGBA{A: 255}
	ip.swatch.Refresh()
	ip.hexLabel.SetText("Click the image to sample a color")
	ip.nameLabel.SetText("")
	ip.coordLabel.SetText("")
	ip.rgbLabel.SetText("")
	ip.hslLabel.SetText("")
	ip.regionLabel.SetText("")
	ip.loupe.Image = image.NewRGBA(image.Rect(0, 0, render.LoupeSize, render.LoupeSize))
	ip.loupe.Refresh()
	ip.copyButton.Disable()
	ip.describeButton.Disable()
	ip.describeLabel.SetText("")
}

func (ip *InspectPanel) updateSampleReadout(smp sample.Sample) {
	ip.swatch.FillColor = color.NRGBA{R: smp.R, G: smp.G, B: smp.B, A: 255}
	ip.swatch.Refresh()
	ip.hexLabel.SetText(smp.Hex)
	ip.nameLabel.SetText("≈ " + smp.Name)
	ip.coordLabel.SetText(fmt.Sprintf("at (%d, %d)", smp.X, smp.Y))
	ip.rgbLabel.SetText("RGB: " + smp.RGBString())
	ip.hslLabel.SetText("HSL: " + smp.HSLString())
	ip.copyButton.Enable()

	bmp := ip.state.Bitmap()
	if bmp != nil && bmp.Image != nil {
		pt := smp.Point()
		ip.loupe.Image = render.Loupe(bmp.Image, pt)
		ip.loupe.Refresh()

		st := sample.Region(bmp.Image, pt, regionRadius)
		side := 2*regionRadius + 1
		ip.regionLabel.SetText(fmt.Sprintf("%dx%d avg: %.1f, %.1f, %.1f\n%dx%d stddev: %.1f, %.1f, %.1f",
			side, side, st.MeanR, st.MeanG, st.MeanB,
			side, side, st.StdR, st.StdG, st.StdB))
	}

	// A fresh sample is a fresh description target.
	ip.describeLabel.SetText("")
	if !ip.state.DescribeBusy() {
		ip.describeButton.Enable()
	}
}

func (ip *InspectPanel) updateMeasure(m *inspect.Measurement) {
	if m == nil {
		ip.distanceLabel.SetText("No measurement")
		ip.pointsLabel.SetText("")
	} else {
		ip.distanceLabel.SetText(fmt.Sprintf("%d px", int(math.Round(m.Distance()))))
		ip.pointsLabel.SetText(fmt.Sprintf("from (%.0f, %.0f) to (%.0f, %.0f)",
			m.Start.X, m.Start.Y, m.End.X, m.End.Y))
	}
	ip.updateMeasureHint()
}

func (ip *InspectPanel) updateMeasureHint() {
	snap := ip.state.Snapshot()
	switch {
	case snap.Tool != inspect.ToolMeasure:
		ip.measureHint.SetText("Select the measure tool to take one.")
	case snap.Phase == inspect.PhaseAwaitingSecond:
		ip.measureHint.SetText("Click the second point.")
	default:
		ip.measureHint.SetText("Click two points on the image.")
	}
}
