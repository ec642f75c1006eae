// Package main provides the entry point for the Reverse Image Search application.
package main

import (
	"flag"
	"log"

	"reverse-image-search/internal/app"
	"reverse-image-search/internal/config"
	"reverse-image-search/internal/version"
	"reverse-image-search/ui/mainwindow"
	"reverse-image-search/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.reverse-image-search"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Reverse Image Search v%s", version.Version)

	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appPrefs := prefs.Load()
	appState := app.NewState(cfg)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.SearchTheme{})

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetOnClosed(func() {
		if err := appPrefs.SaveIfChanged(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
	})

	// Optional starting selections: image then folder
	if args := flag.Args(); len(args) > 0 {
		if err := appState.SelectImage(args[0]); err != nil {
			log.Printf("Failed to load image %s: %v", args[0], err)
		}
		if len(args) > 1 {
			appState.SelectFolder(args[1])
		}
	}

	win.ShowAndRun()
}
