// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"github.com/charmbracelet/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tileboard/internal/app"
	"tileboard/internal/board"
	"tileboard/internal/layout"
	"tileboard/internal/persist"
	"tileboard/internal/version"
	"tileboard/ui/canvas"
	"tileboard/ui/prefs"
)

const (
	prefKeyWindowWidth  = "windowWidth"
	prefKeyWindowHeight = "windowHeight"
	prefKeyEditMode     = "editMode"
)

// MainWindow is the primary application window: the board canvas with a
// toolbar above and a status bar below.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *board.State
	store     *persist.FileStore
	saver     *persist.Debouncer
	prefs     *prefs.Prefs
	logger    *log.Logger
	canvas    *canvas.BoardCanvas
	statusBar *widget.Label

	// Menu items that need state tracking
	editModeItem *fyne.MenuItem
}

// New creates the main window over the given board state and store.
func New(fyneApp fyne.App, state *board.State, store *persist.FileStore, saver *persist.Debouncer, p *prefs.Prefs, logger *log.Logger) *MainWindow {
	win := fyneApp.NewWindow("Tile Board")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		store:  store,
		saver:  saver,
		prefs:  p,
		logger: logger,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreSession()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state, mw.store, mw.saver, mw.logger)
	mw.canvas.OnNotice = mw.updateStatus

	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		mw.createToolbar(),                // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)
	mw.SetContent(content)
}

// createToolbar creates the toolbar with view and mode controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToContent)
	resetBtn := widget.NewButton("1:1", mw.canvas.ResetViewport)
	editBtn := widget.NewButton("Edit Mode", mw.onToggleEditMode)
	gridBtn := widget.NewButton("Arrange Grid", mw.onArrangeGrid)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		resetBtn,
		widget.NewSeparator(),
		editBtn,
		gridBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Now", mw.onSaveNow),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.editModeItem = fyne.NewMenuItem("  Edit Mode", mw.onToggleEditMode)

	editMenu := fyne.NewMenu("Edit",
		mw.editModeItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Remove Tile", mw.onRemoveTile),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Content", mw.canvas.FitToContent),
		fyne.NewMenuItem("Reset View", mw.canvas.ResetViewport),
	)

	layoutMenu := fyne.NewMenu("Layout",
		fyne.NewMenuItem("Arrange as Grid", mw.onArrangeGrid),
		fyne.NewMenuItem("Recompute Scan Order", mw.onRecomputeScanOrder),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, layoutMenu, helpMenu))
}

// setupEventHandlers registers for board state events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(board.EventTileCreated, func(data interface{}) {
		mw.updateStatus(fmt.Sprintf("Tile created (%d on board)", mw.state.Count()))
	})

	mw.state.On(board.EventTileRemoved, func(data interface{}) {
		mw.updateStatus(fmt.Sprintf("Tile removed (%d on board)", mw.state.Count()))
	})

	mw.state.On(board.EventSelectionChanged, func(data interface{}) {
		if id, ok := data.(string); ok && id != "" {
			mw.updateStatus("Tile selected")
		}
	})

	mw.state.On(board.EventEditModeChanged, func(data interface{}) {
		enabled, _ := data.(bool)
		if enabled {
			mw.editModeItem.Label = "✓ Edit Mode"
			mw.updateStatus("Edit mode on: tap empty canvas to add tiles")
		} else {
			mw.editModeItem.Label = "  Edit Mode"
			mw.updateStatus("Edit mode off")
		}
		mw.MainMenu().Refresh()
	})

	mw.state.On(board.EventLayoutConverted, func(data interface{}) {
		mw.updateStatus("Layout converted")
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// restoreSession applies window geometry and mode from preferences.
func (mw *MainWindow) restoreSession() {
	w := mw.prefs.FloatWithFallback(prefKeyWindowWidth, 1024)
	h := mw.prefs.FloatWithFallback(prefKeyWindowHeight, 768)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	mw.state.SetEditMode(mw.prefs.Bool(prefKeyEditMode, false))
}

// SavePreferences writes window geometry and mode to the prefs file.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefKeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefKeyWindowHeight, float64(size.Height))
	mw.prefs.SetBool(prefKeyEditMode, mw.state.EditMode())

	if err := mw.prefs.Save(); err != nil {
		mw.logger.Warn("save preferences", "err", err)
	}
}

// SavePreferencesIfChanged saves only when a tracked value differs from the
// stored one. Called periodically from the hot-reload tick.
func (mw *MainWindow) SavePreferencesIfChanged() {
	size := mw.Canvas().Size()
	if mw.prefs.Float(prefKeyWindowWidth) == float64(size.Width) &&
		mw.prefs.Float(prefKeyWindowHeight) == float64(size.Height) &&
		mw.prefs.Bool(prefKeyEditMode, false) == mw.state.EditMode() {
		return
	}
	mw.SavePreferences()
}

// Menu action handlers

func (mw *MainWindow) onSaveNow() {
	mw.saver.UpdateViewport(mw.state.ID, mw.state.Viewport())
	mw.saver.Flush()
	mw.updateStatus("Saved to " + mw.store.Path())
}

func (mw *MainWindow) onToggleEditMode() {
	mw.state.SetEditMode(!mw.state.EditMode())
}

func (mw *MainWindow) onRemoveTile() {
	id := mw.state.Selected()
	if id == "" {
		mw.updateStatus("No tile selected")
		return
	}
	mw.state.RemoveTile(id)
	if err := mw.store.RemoveTile(id); err != nil {
		mw.logger.Warn("remove stored tile", "tile", id, "err", err)
	}
	mw.canvas.Refresh()
}

// onArrangeGrid snaps every tile to a deterministic near-square grid and
// persists the new positions and stacking order.
func (mw *MainWindow) onArrangeGrid() {
	arranged, err := app.ArrangeGrid(mw.state, mw.store)
	if err != nil {
		mw.logger.Warn("persist grid layout", "err", err)
		dialog.ShowError(err, mw.Window)
	}
	if arranged == 0 {
		mw.updateStatus("Board is empty")
		return
	}
	mw.canvas.Refresh()
}

// onRecomputeScanOrder rederives grid indices from current positions without
// moving anything. The resulting order is what grid mode and screen readers
// walk.
func (mw *MainWindow) onRecomputeScanOrder() {
	ordered := layout.FreeformToGrid(mw.state.Tiles(), mw.state.Config.RowTolerance)
	mw.updateStatus(fmt.Sprintf("Scan order recomputed for %d tiles", len(ordered)))
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Tile Board",
		fmt.Sprintf("Tile Board v%s\n\n"+
			"A freeform communication board editor.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
