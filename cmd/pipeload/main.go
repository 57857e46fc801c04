// PipeLoad: Pipe Container Loading Planner
//
// A cross-platform desktop application that works out how an order of
// pipes is telescoped, packed and spread over shipping containers.
//
// Build:
//   go build -o pipeload ./cmd/pipeload
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o pipeload.exe ./cmd/pipeload
//   GOOS=darwin  GOARCH=amd64 go build -o pipeload-darwin ./cmd/pipeload
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/PipeLoad/internal/logging"
	"github.com/piwi3910/PipeLoad/internal/ui"
)

func main() {
	level := os.Getenv("PIPELOAD_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger, err := logging.New(level, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	application := app.NewWithID("com.piwi3910.pipeload")
	window := application.NewWindow("PipeLoad - Pipe Container Loading Planner")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()
	window.ShowAndRun()
}
