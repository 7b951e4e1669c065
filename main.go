// Package main provides the entry point for the Image Inspector application.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"image-inspector/internal/app"
	"image-inspector/internal/describe"
	"image-inspector/internal/version"
	"image-inspector/ui/mainwindow"
	"image-inspector/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println("image-inspector " + version.String())
		return
	}

	log.Printf("starting image inspector %s", version.String())

	fyneApp := fyneapp.NewWithID("image-inspector")
	fyneApp.Settings().SetTheme(&app.InspectorTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	appState.SetDescribeClient(describe.NewClient(
		appPrefs.String(prefs.KeyDescribeBaseURL),
		appPrefs.String(prefs.KeyDescribeModel),
		describe.ResolveKey(appPrefs.String(prefs.KeyDescribeAPIKey)),
	))

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// An image path on the command line is opened immediately.
	if flag.NArg() > 0 {
		path := flag.Arg(0)
		if err := appState.LoadImage(path); err != nil {
			log.Printf("failed to load %s: %v", path, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload prompts for an in-place restart when a newer binary
// replaces the running one, which keeps rebuild cycles short during
// development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("hot reload: unable to determine executable path")
		return
	}

	var arm func()
	arm = func() {
		reloader.Watch(func() {
			log.Println("hot reload: newer binary detected")
			dialog.ShowConfirm("New Build Available",
				"The application binary has been updated. Restart now?",
				func(restart bool) {
					if !restart {
						reloader.Defer()
						arm()
						return
					}
					if err := reloader.Restart(); err != nil {
						log.Printf("hot reload: restart failed: %v", err)
					}
				}, win)
		})
	}
	arm()
}
