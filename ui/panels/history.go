package panels

import (
	"fmt"
	"image/color"

	"image-inspector/internal/app"
	"image-inspector/internal/sample"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// HistoryPanel lists recent color samples, most recent first. Tapping an
// entry makes it the active sample again.
type HistoryPanel struct {
	state     *app.State
	container fyne.CanvasObject

	countLabel  *widget.Label
	clearButton *widget.Button
	list        *fyne.Container
}

// NewHistoryPanel creates a new history panel.
func NewHistoryPanel(state *app.State) *HistoryPanel {
	hp := &HistoryPanel{state: state}

	hp.countLabel = widget.NewLabel("No samples yet")
	hp.clearButton = widget.NewButton("Clear", func() {
		state.ClearHistory()
	})
	hp.clearButton.Disable()

	hp.list = container.NewVBox()

	header := container.NewBorder(nil, nil, hp.countLabel, hp.clearButton)
	hp.container = container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()), nil, nil, nil,
		container.NewVScroll(hp.list),
	)

	// Register for events
	state.On(app.EventHistoryChanged, func(data interface{}) {
		samples, ok := data.([]sample.Sample)
		if !ok {
			return
		}
		hp.rebuild(samples)
	})

	return hp
}

// Container returns the panel container.
func (hp *HistoryPanel) Container() fyne.CanvasObject {
	return hp.container
}

func (hp *HistoryPanel) rebuild(samples []sample.Sample) {
	hp.list.Objects = nil
	for _, smp := range samples {
		smp := smp
		hp.list.Add(newSampleRow(smp, func() {
			hp.state.RestoreSample(smp)
		}))
	}
	hp.list.Refresh()

	switch len(samples) {
	case 0:
		hp.countLabel.SetText("No samples yet")
		hp.clearButton.Disable()
	case 1:
		hp.countLabel.SetText("1 sample")
		hp.clearButton.Enable()
	default:
		hp.countLabel.SetText(fmt.Sprintf("%d samples", len(samples)))
		hp.clearButton.Enable()
	}
}

// sampleRow is a tappable history entry: a color swatch next to the hex
// code, the sample coordinates, and the time it was taken.
type sampleRow struct {
	widget.BaseWidget
	smp      sample.Sample
	onTapped func()
}

func newSampleRow(smp sample.Sample, tapped func()) *sampleRow {
	r := &sampleRow{smp: smp, onTapped: tapped}
	r.ExtendBaseWidget(r)
	return r
}

func (r *sampleRow) CreateRenderer() fyne.WidgetRenderer {
	rect := fynecanvas.NewRectangle(color.NRGBA{R: r.smp.R, G: r.smp.G, B: r.smp.B, A: 255})
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := fynecanvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	hex := widget.NewLabel(r.smp.Hex)
	hex.TextStyle = fyne.TextStyle{Monospace: true}
	where := widget.NewLabel(fmt.Sprintf("(%d, %d)", r.smp.X, r.smp.Y))
	when := widget.NewLabel(r.smp.Taken.Format("15:04:05"))

	row := container.NewHBox(container.NewStack(rect, border), hex, where, when)
	return widget.NewSimpleRenderer(row)
}

func (r *sampleRow) Tapped(_ *fyne.PointEvent) {
	if r.onTapped != nil {
		r.onTapped()
	}
}
