// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"

	"image-inspector/internal/app"
	"image-inspector/internal/describe"
	inspimage "image-inspector/internal/image"
	"image-inspector/internal/inspect"
	"image-inspector/internal/sample"
	"image-inspector/internal/version"
	"image-inspector/pkg/geometry"
	"image-inspector/ui/canvas"
	"image-inspector/ui/dialogs"
	"image-inspector/ui/panels"
	"image-inspector/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	sidePanel *panels.SidePanel
	split     *container.Split

	// Toolbar
	toolRadio *widget.RadioGroup

	// Status bar
	statusLabel *widget.Label
	cursorLabel *widget.Label
	zoomLabel   *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Image Inspector")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefs.KeyWindowWidth, 1280)),
		float32(p.FloatWithFallback(prefs.KeyWindowHeight, 800)),
	))
	mw.SetOnClosed(mw.savePrefs)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	// Create the image canvas
	mw.canvas = canvas.NewImageCanvas()
	mw.canvas.OnTap(func(pt geometry.Point2D) {
		mw.state.ClickAt(pt)
	})
	mw.canvas.OnHover(func(pt geometry.Point2D) {
		mw.state.HoverAt(pt)
		mw.cursorLabel.SetText(fmt.Sprintf("(%d, %d)",
			int(math.Round(pt.X)), int(math.Round(pt.Y))))
	})
	mw.canvas.OnLeave(func() {
		mw.state.ClearHover()
		mw.cursorLabel.SetText("")
	})
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	// Create the side panel with tabs
	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.sidePanel.SetWindow(mw.Window)

	// Create status bar
	mw.statusLabel = widget.NewLabel("Ready")
	mw.cursorLabel = widget.NewLabel("")
	mw.zoomLabel = widget.NewLabel("100%")
	statusBar := container.NewBorder(
		nil, nil, nil,
		container.NewHBox(mw.cursorLabel, mw.zoomLabel),
		mw.statusLabel,
	)

	// Create toolbar with tool selection and zoom controls
	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	// Create main layout: side panel | canvas area
	mw.split = container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	mw.split.SetOffset(mw.prefs.FloatWithFallback(prefs.KeySplitOffset, 0.28))

	// Main container with status bar at bottom
	content := container.NewBorder(
		nil,                            // top
		container.NewPadded(statusBar), // bottom
		nil,                            // left
		nil,                            // right
		mw.split,                       // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with tool selection and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.toolRadio = widget.NewRadioGroup(
		[]string{inspect.ToolPick.String(), inspect.ToolMeasure.String()},
		func(selected string) {
			if selected == inspect.ToolMeasure.String() {
				mw.state.SetTool(inspect.ToolMeasure)
			} else {
				mw.state.SetTool(inspect.ToolPick)
			}
		})
	mw.toolRadio.Horizontal = true
	mw.toolRadio.SetSelected(inspect.ToolPick.String())

	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		mw.toolRadio,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	// File menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Annotated PNG...", mw.onExportAnnotated),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	// Edit menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Copy Hex", mw.onCopyHex),
		fyne.NewMenuItem("Clear History", func() { mw.state.ClearHistory() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Describe Settings...", mw.onDescribeSettings),
	)

	// View menu
	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	// Tools menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Color Picker", func() { mw.state.SetTool(inspect.ToolPick) }),
		fyne.NewMenuItem("Measure", func() { mw.state.SetTool(inspect.ToolMeasure) }),
	)

	// Help menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		bmp, ok := data.(*inspimage.Bitmap)
		if !ok || bmp == nil {
			return
		}
		mw.canvas.SetImage(bmp.Image)
		mw.canvas.SetSnapshot(mw.state.Snapshot())
		mw.SetTitle("Image Inspector - " + filepath.Base(bmp.Path))
		mw.updateStatus(fmt.Sprintf("Loaded %s (%d × %d)",
			filepath.Base(bmp.Path), bmp.Width, bmp.Height))
	})

	mw.state.On(app.EventOverlayChanged, func(data interface{}) {
		snap, ok := data.(inspect.Snapshot)
		if !ok {
			return
		}
		mw.canvas.SetSnapshot(snap)
	})

	mw.state.On(app.EventToolChanged, func(data interface{}) {
		t, ok := data.(inspect.Tool)
		if !ok {
			return
		}
		mw.toolRadio.SetSelected(t.String())
		mw.updateStatus(t.String() + " selected")
	})

	mw.state.On(app.EventSampleTaken, func(data interface{}) {
		smp, ok := data.(sample.Sample)
		if !ok {
			return
		}
		mw.updateStatus(fmt.Sprintf("Sampled %s at (%d, %d)", smp.Hex, smp.X, smp.Y))
	})

	mw.state.On(app.EventMeasureChanged, func(data interface{}) {
		m, _ := data.(*inspect.Measurement)
		if m != nil {
			mw.updateStatus(fmt.Sprintf("Measured %d px", int(math.Round(m.Distance()))))
		}
	})

	mw.state.On(app.EventDescribeStarted, func(data interface{}) {
		mw.updateStatus("Describing color...")
	})

	mw.state.On(app.EventDescribeDone, func(data interface{}) {
		out, ok := data.(app.DescribeOutcome)
		if !ok || out.Stale {
			return
		}
		if out.Err != nil {
			mw.updateStatus("Description failed: " + out.Err.Error())
			return
		}
		mw.updateStatus("Description ready")
	})

	mw.state.On(app.EventStatusMessage, func(data interface{}) {
		if msg, ok := data.(string); ok {
			mw.updateStatus(msg)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusLabel.SetText(text)
}

// savePrefs records window geometry and split position on close.
func (mw *MainWindow) savePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetFloat(prefs.KeySplitOffset, mw.split.Offset)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// lastDir returns the directory stored under key as a ListableURI, or nil.
func (mw *MainWindow) lastDir(key string) fyne.ListableURI {
	path := mw.prefs.String(key)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir stores the directory of the given file path under key.
func (mw *MainWindow) saveLastDir(key, filePath string) {
	mw.prefs.SetString(key, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(prefs.KeyLastOpenDir, path)
		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(inspimage.SupportedFormats()))
	if loc := mw.lastDir(prefs.KeyLastOpenDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportAnnotated() {
	bmp := mw.state.Bitmap()
	if bmp == nil {
		mw.updateStatus("No image to export")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(prefs.KeyLastExportDir, path)
		if err := mw.state.ExportAnnotated(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)

	base := strings.TrimSuffix(filepath.Base(bmp.Path), filepath.Ext(bmp.Path))
	fd.SetFileName(base + "-annotated.png")
	if loc := mw.lastDir(prefs.KeyLastExportDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onCopyHex() {
	smp, ok := mw.state.CurrentSample()
	if !ok {
		mw.updateStatus("No color sampled yet")
		return
	}
	mw.Clipboard().SetContent(smp.Hex)
	mw.updateStatus("Copied " + smp.Hex)
}

func (mw *MainWindow) onDescribeSettings() {
	current := dialogs.DescribeSettings{
		BaseURL: mw.prefs.String(prefs.KeyDescribeBaseURL),
		Model:   mw.prefs.String(prefs.KeyDescribeModel),
		APIKey:  mw.prefs.String(prefs.KeyDescribeAPIKey),
	}

	dialogs.NewSettingsDialog(mw.Window, current, func(s dialogs.DescribeSettings) {
		mw.prefs.SetString(prefs.KeyDescribeBaseURL, s.BaseURL)
		mw.prefs.SetString(prefs.KeyDescribeModel, s.Model)
		mw.prefs.SetString(prefs.KeyDescribeAPIKey, s.APIKey)
		if err := mw.prefs.Save(); err != nil {
			log.Printf("save preferences: %v", err)
		}
		mw.state.SetDescribeClient(describe.NewClient(s.BaseURL, s.Model, describe.ResolveKey(s.APIKey)))
		mw.updateStatus("Description service updated")
	}).Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	// Toggle state
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	// Update menu label to show state
	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Image Inspector",
		fmt.Sprintf("Image Inspector %s\n\n"+
			"Inspect pixel colors, measure distances, and ask a vision\n"+
			"model what a sampled color belongs to.",
			version.String()),
		mw.Window)
}
