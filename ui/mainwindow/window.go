// Package mainwindow provides the main application window.
package mainwindow

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"hat-studio/internal/app"
	"hat-studio/internal/compositor"
	"hat-studio/internal/photo"
	"hat-studio/internal/status"
	"hat-studio/internal/version"
	"hat-studio/ui/editor"
	"hat-studio/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	prefs    *prefs.Prefs
	preview  *editor.PreviewCanvas
	notifier *status.Notifier

	statusLabel *widget.Label
	colorBtn    *widget.Button

	prefsDirty bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(state.Brand.Title)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	// The dismissal timer fires on its own goroutine; fyne.Do moves the
	// label update onto the UI goroutine.
	mw.notifier = status.NewNotifier(mw.showStatus, func() {
		fyne.Do(mw.clearStatus)
	})

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.refreshOverlay()
	mw.restoreLastPhoto()

	win.Resize(fyne.NewSize(900, 700))
	win.SetOnClosed(mw.SavePreferences)
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.preview = editor.NewPreviewCanvas(mw.state)
	mw.statusLabel = widget.NewLabel("")

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		toolbar,                             // top
		container.NewPadded(mw.statusLabel), // bottom
		nil,                                 // left
		nil,                                 // right
		mw.preview,                          // center
	)

	mw.SetContent(content)
}

// createToolbar creates the overlay action buttons. Rotation and scale are
// discrete actions only; the pointer controls position alone.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	openBtn := widget.NewButton("Open Photo…", mw.onOpenPhoto)
	saveBtn := widget.NewButton("Save", mw.onExport)

	rotateLeftBtn := widget.NewButton("⟲", mw.state.RotateLeft)
	rotateRightBtn := widget.NewButton("⟳", mw.state.RotateRight)
	scaleUpBtn := widget.NewButton("+", mw.state.ScaleUp)
	scaleDownBtn := widget.NewButton("−", mw.state.ScaleDown)
	flipBtn := widget.NewButton("Flip", mw.state.ToggleFlip)
	resetBtn := widget.NewButton("Reset", mw.state.Reset)

	items := []fyne.CanvasObject{
		openBtn,
		widget.NewSeparator(),
		rotateLeftBtn,
		rotateRightBtn,
		scaleDownBtn,
		scaleUpBtn,
		flipBtn,
	}

	if mw.state.Brand.HasTape {
		items = append(items, widget.NewButton("Tape", mw.state.ToggleTape))
	}
	if mw.state.Brand.ColorCount() > 1 {
		mw.colorBtn = widget.NewButton(mw.colorLabel(), mw.state.CycleColor)
		items = append(items, mw.colorBtn)
	}

	items = append(items,
		resetBtn,
		widget.NewSeparator(),
		saveBtn,
	)

	return container.NewHBox(items...)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Photo…", mw.onOpenPhoto),
		fyne.NewMenuItem("Export Hat Photo…", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Flip Hat", mw.state.ToggleFlip),
		fyne.NewMenuItem("Reset Hat", mw.state.Reset),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventPhotoLoaded, func(data interface{}) {
		mw.preview.Refresh()
		mw.notifier.Success("Photo loaded")
	})

	mw.state.On(app.EventTransformChanged, func(data interface{}) {
		mw.preview.Refresh()
	})

	mw.state.On(app.EventVariantChanged, func(data interface{}) {
		mw.refreshOverlay()
		if mw.colorBtn != nil {
			mw.colorBtn.SetText(mw.colorLabel())
		}
	})

	mw.state.On(app.EventReset, func(data interface{}) {
		mw.refreshOverlay()
		if mw.colorBtn != nil {
			mw.colorBtn.SetText(mw.colorLabel())
		}
		mw.preview.Refresh()
	})
}

// refreshOverlay resolves the current variant's asset and hands it to the
// preview. Asset failures are reported but leave the editor running.
func (mw *MainWindow) refreshOverlay() {
	img, err := mw.state.OverlayImage()
	if err != nil {
		mw.preview.SetOverlayImage(nil)
		mw.notifier.Error(err.Error())
		return
	}
	mw.preview.SetOverlayImage(img)
}

// colorLabel returns the name of the current color for the cycle button.
func (mw *MainWindow) colorLabel() string {
	colors := mw.state.Brand.Colors
	idx := mw.state.Variant().Color
	if idx < 0 || idx >= len(colors) || colors[idx] == "" {
		return "Color"
	}
	name := colors[idx]
	return strings.ToUpper(name[:1]) + name[1:]
}

func (mw *MainWindow) showStatus(msg status.Message) {
	text := msg.Text
	if msg.Kind == status.KindError {
		text = "Error: " + text
	}
	mw.statusLabel.SetText(text)
}

func (mw *MainWindow) clearStatus() {
	mw.statusLabel.SetText("")
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
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

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
	mw.prefsDirty = true
}

// restoreLastPhoto loads the previously used photo, if any.
func (mw *MainWindow) restoreLastPhoto() {
	path := mw.prefs.String(prefs.KeyLastPhoto)
	if path == "" {
		return
	}
	if err := mw.state.LoadPhoto(path); err != nil {
		// The file may have moved since the last run; forget it.
		mw.prefs.SetString(prefs.KeyLastPhoto, "")
		mw.prefsDirty = true
	}
}

// SavePreferences writes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err == nil {
		mw.prefsDirty = false
	}
}

// SavePreferencesIfChanged writes preferences only when something changed.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if mw.prefsDirty {
		mw.SavePreferences()
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenPhoto() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()

		if loadErr := mw.state.LoadPhoto(path); loadErr != nil {
			mw.notifier.Error(loadErr.Error())
			return
		}

		mw.saveLastDir(path)
		mw.prefs.SetString(prefs.KeyLastPhoto, path)
		mw.prefsDirty = true
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(photo.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExport() {
	if mw.state.Photo() == nil {
		mw.notifier.Error("load a photo before saving")
		return
	}

	// Render fully before showing the dialog. The save dialog truncates
	// the chosen file the moment its writer opens, so every failure that
	// can be detected must surface before the user picks a path.
	img, err := mw.state.RenderComposite()
	if err != nil {
		mw.notifier.Error(err.Error())
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		mw.saveLastDir(path)

		var buf bytes.Buffer
		if encErr := compositor.Encode(&buf, compositor.FormatForPath(path), img); encErr != nil {
			mw.notifier.Error(encErr.Error())
			return
		}
		if _, writeErr := writer.Write(buf.Bytes()); writeErr != nil {
			mw.notifier.Error(writeErr.Error())
			return
		}

		mw.state.Emit(app.EventExported, path)
		mw.notifier.Success("Saved " + filepath.Base(path))
	}, mw.Window)

	fd.SetFileName(mw.state.Brand.ExportFilename)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+mw.state.Brand.Title,
		fmt.Sprintf("%s v%s\n\n"+
			"Put a hat on any photo.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			mw.state.Brand.Title, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
