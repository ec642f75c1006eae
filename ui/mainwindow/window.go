// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"reverse-image-search/internal/app"
	"reverse-image-search/internal/image"
	"reverse-image-search/internal/search"
	"reverse-image-search/internal/version"
	"reverse-image-search/ui/labels"
	"reverse-image-search/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle  = "Reverse Image Search"
	minWidth  = 650
	minHeight = 400
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	imageText  *widget.Label
	folderText *widget.Label
	queryView  *canvas.Image
	resultView *canvas.Image
	colorCheck *widget.Check
	findButton *widget.Button
	statusBar  *widget.Label

	mainMenu     *fyne.MainMenu
	findMenuItem *fyne.MenuItem
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.restorePreferences()
	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(minWidth+50, minHeight+50))
	return mw
}

// restorePreferences copies saved session memory into the state.
func (mw *MainWindow) restorePreferences() {
	if dir := mw.prefs.RecentDir(); dir != "" {
		mw.state.SetRecentDir(dir)
	}
	mw.state.SetCompareWithColor(mw.prefs.CompareWithColor(mw.state.CompareWithColor))
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	display := mw.state.Config.Display
	frameSize := fyne.NewSize(float32(display.FrameWidth), float32(display.FrameHeight))

	mw.imageText = widget.NewLabel("")
	mw.imageText.Alignment = fyne.TextAlignCenter
	mw.folderText = widget.NewLabel("")
	mw.folderText.Alignment = fyne.TextAlignCenter

	mw.queryView = mw.newFrameImage(frameSize)
	mw.resultView = mw.newFrameImage(frameSize)

	selectImage := widget.NewButton("Select Image", mw.onSelectImage)
	selectFolder := widget.NewButton("Select Folder", mw.onSelectFolder)
	mw.findButton = widget.NewButton("Find Closest Match", mw.onFindClosestMatch)
	mw.findButton.Importance = widget.HighImportance

	mw.colorCheck = widget.NewCheck("Compare with color", func(on bool) {
		mw.state.SetCompareWithColor(on)
		mw.prefs.SetCompareWithColor(on)
	})
	mw.colorCheck.SetChecked(mw.state.CompareWithColor)

	mw.statusBar = widget.NewLabel("Ready")

	left := container.NewVBox(
		mw.imageText,
		mw.framed(mw.queryView, frameSize),
		container.NewCenter(selectImage),
	)
	right := container.NewVBox(
		mw.folderText,
		mw.framed(mw.resultView, frameSize),
		container.NewCenter(selectFolder),
	)

	body := container.NewVBox(
		container.NewGridWithColumns(2, left, right),
		container.NewCenter(container.NewHBox(mw.findButton, mw.colorCheck)),
	)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		container.NewCenter(body),         // center
	)
	mw.SetContent(content)
}

func (mw *MainWindow) newFrameImage(size fyne.Size) *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(size)
	return img
}

// framed places img on a solid rectangle in the frame background colour.
func (mw *MainWindow) framed(img *canvas.Image, size fyne.Size) fyne.CanvasObject {
	bg := canvas.NewRectangle(mw.state.Config.BackgroundColor())
	bg.SetMinSize(size)
	return container.NewCenter(container.NewStack(bg, img))
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	mw.findMenuItem = fyne.NewMenuItem("Find Closest Match", mw.onFindClosestMatch)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Select Image...", mw.onSelectImage),
		fyne.NewMenuItem("Select Folder...", mw.onSelectFolder),
		fyne.NewMenuItemSeparator(),
		mw.findMenuItem,
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.mainMenu = fyne.NewMainMenu(fileMenu, helpMenu)
	mw.SetMainMenu(mw.mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageSelected, func(data interface{}) {
		ev, _ := data.(app.ImageEvent)
		mw.imageText.SetText(labels.Image(ev.Path))
		mw.showBuffer(mw.queryView, ev.Image)
		mw.rememberDir(filepath.Dir(ev.Path))
	})

	mw.state.On(app.EventFolderSelected, func(data interface{}) {
		path, _ := data.(string)
		mw.folderText.SetText(labels.Folder(path))
		mw.clearView(mw.resultView)
		mw.rememberDir(path)
	})

	mw.state.On(app.EventSearchStarted, func(data interface{}) {
		mw.findButton.Disable()
		mw.findMenuItem.Disabled = true
		mw.mainMenu.Refresh()
		mw.updateStatus("Searching...")
	})

	mw.state.On(app.EventMatchFound, func(data interface{}) {
		ev, _ := data.(app.MatchEvent)
		mw.folderText.SetText(labels.Match(ev.Folder, ev.Path))
		mw.showBuffer(mw.resultView, ev.Image)
		mw.updateStatus(fmt.Sprintf("Closest match: %s (difference %.1f, %d scanned)",
			filepath.Base(ev.Path), ev.Match.Score, ev.Match.Scanned))
		mw.enableSearch()
	})

	mw.state.On(app.EventSearchFailed, func(data interface{}) {
		err, _ := data.(error)
		mw.enableSearch()
		mw.showSearchError(err)
	})
}

func (mw *MainWindow) enableSearch() {
	mw.findButton.Enable()
	mw.findMenuItem.Disabled = false
	mw.mainMenu.Refresh()
}

// showSearchError puts "No image selected"/"No folder selected" in the
// captions, notes a discarded result in the status bar, and shows anything
// else in a dialog.
func (mw *MainWindow) showSearchError(err error) {
	if err == nil {
		return
	}
	handled := false
	if errors.Is(err, app.ErrNoImageSelected) {
		mw.imageText.SetText("No image selected")
		handled = true
	}
	if errors.Is(err, app.ErrNoFolderSelected) {
		mw.folderText.SetText("No folder selected")
		handled = true
	}
	if handled {
		mw.updateStatus("Select an image and a folder first")
		return
	}
	if errors.Is(err, app.ErrSelectionChanged) {
		mw.updateStatus("Selection changed; search result discarded")
		return
	}
	if errors.Is(err, search.ErrEmptyCandidateSet) {
		mw.updateStatus("No images found in the selected folder")
	} else {
		mw.updateStatus("Search failed")
	}
	dialog.ShowError(err, mw.Window)
}

// showBuffer pads buf to the frame's ratio and scales it into the frame.
func (mw *MainWindow) showBuffer(view *canvas.Image, buf *image.Buffer) {
	if buf == nil {
		mw.clearView(view)
		return
	}
	cfg := mw.state.Config
	padded, err := search.Pad(buf, cfg.FrameRatio(), cfg.BackgroundColor())
	if err != nil {
		log.Printf("Failed to pad image for display: %v", err)
		return
	}
	view.Image = image.Fit(padded, cfg.Display.FrameWidth, cfg.Display.FrameHeight)
	view.Refresh()
}

func (mw *MainWindow) clearView(view *canvas.Image) {
	view.Image = nil
	view.Refresh()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// rememberDir records dir as the starting point for the next dialog.
func (mw *MainWindow) rememberDir(dir string) {
	mw.prefs.SetRecentDir(dir)
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// recentLocation returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) recentLocation() fyne.ListableURI {
	dir := mw.state.Snapshot().RecentDir
	if dir == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return listable
}

// Menu and button handlers

func (mw *MainWindow) onSelectImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		if err := mw.state.SelectImage(reader.URI().Path()); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.SupportedFormats()))
	if loc := mw.recentLocation(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSelectFolder() {
	fd := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		mw.state.SelectFolder(dir.Path())
	}, mw.Window)
	if loc := mw.recentLocation(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onFindClosestMatch runs the search off the UI goroutine; results arrive
// through the state's events.
func (mw *MainWindow) onFindClosestMatch() {
	if mw.state.Searching() {
		return
	}
	go func() {
		if _, err := mw.state.FindClosestMatch(); errors.Is(err, app.ErrSearchInProgress) {
			log.Printf("Search ignored: %v", err)
		} else if err != nil {
			log.Printf("Search failed: %v", err)
		}
	}()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Finds the image in a folder that looks most like a chosen image.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
