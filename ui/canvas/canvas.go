// Package canvas provides the freeform board widget: tiles on a pannable,
// zoomable surface with drag, resize, and tap-to-create.
package canvas

import (
	"errors"

	"github.com/charmbracelet/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"tileboard/internal/board"
	"tileboard/internal/gesture"
	"tileboard/internal/persist"
	"tileboard/pkg/geometry"
)

// scrollZoomStep is the zoom factor applied per wheel notch.
const scrollZoomStep = 1.1

// mousePointer is the pointer id used for the single desktop mouse stream.
// Touch backends feed the router with real per-finger ids instead.
const mousePointer gesture.PointerID = 0

// BoardCanvas renders a board's tiles in freeform mode and feeds pointer
// events through the gesture router.
type BoardCanvas struct {
	widget.BaseWidget

	state  *board.State
	router *gesture.Router
	saver  *persist.Debouncer
	store  persist.Store
	logger *log.Logger

	tiles   map[string]*tileObject
	handles [4]*handleObject

	// preview holds live candidate rects during a gesture so rendering can
	// show motion before commit.
	preview map[string]geometry.Rect

	// OnNotice surfaces user-visible notices (e.g. the tile limit).
	OnNotice func(msg string)
}

// New creates a board canvas over the given state, store, and debouncer.
func New(state *board.State, store persist.Store, saver *persist.Debouncer, logger *log.Logger) *BoardCanvas {
	bc := &BoardCanvas{
		state:   state,
		saver:   saver,
		store:   store,
		logger:  logger,
		tiles:   make(map[string]*tileObject),
		preview: make(map[string]geometry.Rect),
	}
	for i := range bc.handles {
		bc.handles[i] = newHandleObject(gesture.Handle(i))
	}

	constraints := geometry.DefaultConstraints(state.Config.CanvasSize())
	bc.router = gesture.NewRouter(constraints, gesture.Hooks{
		Viewport:    state.Viewport,
		SetViewport: bc.setViewport,
		TileRect:    bc.tileRect,
		Preview:     bc.previewRect,
		Commit:      bc.commitRect,
		Cancel:      bc.cancelPreview,
		Tap:         bc.tapCreate,
		SelectTile:  bc.selectTile,
		GestureEnd:  bc.gestureEnd,
	})
	bc.router.TapThreshold = state.Config.TapThreshold

	bc.ExtendBaseWidget(bc)

	state.On(board.EventTileCreated, func(interface{}) { bc.Refresh() })
	state.On(board.EventTileRemoved, func(interface{}) { bc.Refresh() })
	state.On(board.EventSelectionChanged, func(interface{}) { bc.Refresh() })
	state.On(board.EventViewportChanged, func(interface{}) { bc.Refresh() })
	state.On(board.EventLayoutConverted, func(interface{}) { bc.Refresh() })
	state.On(board.EventEditModeChanged, func(interface{}) { bc.Refresh() })

	return bc
}

// Router exposes the gesture router for backends that deliver multi-touch
// pointer streams directly.
func (bc *BoardCanvas) Router() *gesture.Router {
	return bc.router
}

// --- router hooks ---

func (bc *BoardCanvas) setViewport(v geometry.Viewport) {
	bc.state.SetViewport(v)
}

func (bc *BoardCanvas) tileRect(tileID string) (geometry.Rect, bool) {
	t := bc.state.Tile(tileID)
	if t == nil {
		return geometry.Rect{}, false
	}
	return t.Rect, true
}

// previewRect paints a candidate rect immediately and buffers the write.
// Storage stays a full debounce interval behind the screen by design.
func (bc *BoardCanvas) previewRect(tileID string, rect geometry.Rect) {
	bc.preview[tileID] = rect
	bc.saver.UpdatePosition(tileID, rect)
	bc.Refresh()
}

// cancelPreview withdraws a preview that never became a gesture: the
// buffered write is dropped and the committed rect renders again.
func (bc *BoardCanvas) cancelPreview(tileID string) {
	delete(bc.preview, tileID)
	bc.saver.Cancel()
	bc.Refresh()
}

func (bc *BoardCanvas) commitRect(tileID string, rect geometry.Rect) {
	delete(bc.preview, tileID)
	bc.state.SetTileRect(tileID, rect)
	bc.saver.UpdatePosition(tileID, rect)
	bc.Refresh()
}

func (bc *BoardCanvas) tapCreate(world geometry.Point2D) {
	if !bc.state.EditMode() {
		return
	}
	tile, err := bc.state.CreateTileAt(world)
	if errors.Is(err, board.ErrTileLimit) {
		bc.logger.Info("tile limit reached", "max", bc.state.Config.MaxTiles)
		if bc.OnNotice != nil {
			bc.OnNotice("This board is full. Remove a tile to add another.")
		}
		return
	}
	if err != nil {
		bc.logger.Error("create tile", "err", err)
		return
	}

	bc.state.Select(tile.ID)
	bc.saver.UpdatePosition(tile.ID, tile.Rect)
	bc.saver.Flush()
	if err := bc.store.UpdateZIndex(tile.ID, tile.ZIndex); err != nil {
		bc.logger.Warn("persist z-index", "tile", tile.ID, "err", err)
	}
}

func (bc *BoardCanvas) selectTile(tileID string) {
	bc.state.Select(tileID)
	if tileID != "" {
		bc.state.RaiseTile(tileID)
		if err := bc.store.UpdateZIndex(tileID, bc.state.Tile(tileID).ZIndex); err != nil {
			bc.logger.Warn("persist z-index", "tile", tileID, "err", err)
		}
	}
}

// gestureEnd is the unconditional flush point: buffered tile positions and
// the final viewport are written through the store.
func (bc *BoardCanvas) gestureEnd() {
	bc.saver.UpdateViewport(bc.state.ID, bc.state.Viewport())
	bc.saver.Flush()
}

// --- pointer event plumbing ---

// hitTest classifies a screen position into a gesture target. Handles are
// screen-space squares on the selected tile's corners and win over tile
// bodies; tile bodies win over empty canvas.
func (bc *BoardCanvas) hitTest(pos geometry.Point2D) gesture.Target {
	if bc.state.EditMode() {
		if selected := bc.state.Selected(); selected != "" {
			if t := bc.state.Tile(selected); t != nil {
				screen := bc.state.Viewport().WorldRectToScreen(t.Rect)
				for _, h := range bc.handles {
					if h.hitArea(screen).Contains(pos) {
						return gesture.Target{Kind: gesture.TargetHandle, TileID: selected, Handle: h.handle}
					}
				}
			}
		}
	}

	world := bc.state.Viewport().ScreenToWorld(pos)
	if t := bc.state.TileAt(world); t != nil {
		return gesture.Target{Kind: gesture.TargetTile, TileID: t.ID}
	}
	return gesture.Target{Kind: gesture.TargetCanvas}
}

func toPoint(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

// MouseDown implements desktop.Mouseable.
func (bc *BoardCanvas) MouseDown(ev *desktop.MouseEvent) {
	p := toPoint(ev.Position)
	bc.router.PointerDown(mousePointer, p, bc.hitTest(p))
}

// MouseUp implements desktop.Mouseable.
func (bc *BoardCanvas) MouseUp(ev *desktop.MouseEvent) {
	bc.router.PointerUp(mousePointer, toPoint(ev.Position))
}

// Dragged implements fyne.Draggable; it only forwards motion — the
// down/up transitions arrive via MouseDown/MouseUp.
func (bc *BoardCanvas) Dragged(ev *fyne.DragEvent) {
	bc.router.PointerMove(mousePointer, toPoint(ev.Position))
}

// DragEnd implements fyne.Draggable.
func (bc *BoardCanvas) DragEnd() {}

// Scrolled zooms at the cursor. Wheel zoom has no gesture lifecycle, so the
// viewport is flushed immediately.
func (bc *BoardCanvas) Scrolled(ev *fyne.ScrollEvent) {
	factor := scrollZoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / scrollZoomStep
	}
	p := toPoint(ev.Position)
	bc.state.SetViewport(bc.state.Viewport().ZoomAt(factor, p.X, p.Y))
	bc.gestureEnd()
}

// CancelGesture aborts the active gesture, e.g. when the window loses
// pointer capture. Nothing is committed.
func (bc *BoardCanvas) CancelGesture() {
	bc.router.CancelAll()
	bc.saver.Cancel()
	bc.preview = make(map[string]geometry.Rect)
	bc.Refresh()
}

// displayRect returns the rect to render for a tile: the live preview while
// a gesture is active, the committed rect otherwise.
func (bc *BoardCanvas) displayRect(t *board.Tile) geometry.Rect {
	if r, ok := bc.preview[t.ID]; ok {
		return r
	}
	return t.Rect
}

// FitToContent reframes the viewport around all tiles and persists it.
func (bc *BoardCanvas) FitToContent() {
	size := bc.Size()
	rects := make([]geometry.Rect, 0, bc.state.Count())
	for _, t := range bc.state.Tiles() {
		rects = append(rects, t.Rect)
	}
	bc.state.SetViewport(geometry.FitToContent(rects, float64(size.Width), float64(size.Height)))
	bc.gestureEnd()
}

// ResetViewport returns to the default zoom and pan and persists it.
func (bc *BoardCanvas) ResetViewport() {
	bc.state.SetViewport(geometry.DefaultViewport())
	bc.gestureEnd()
}

// ZoomIn steps the zoom up around the widget center.
func (bc *BoardCanvas) ZoomIn() { bc.zoomStep(scrollZoomStep) }

// ZoomOut steps the zoom down around the widget center.
func (bc *BoardCanvas) ZoomOut() { bc.zoomStep(1 / scrollZoomStep) }

func (bc *BoardCanvas) zoomStep(factor float64) {
	size := bc.Size()
	bc.state.SetViewport(bc.state.Viewport().ZoomAt(factor, float64(size.Width)/2, float64(size.Height)/2))
	bc.gestureEnd()
}

// CreateRenderer implements fyne.Widget.
func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(bc)
}
