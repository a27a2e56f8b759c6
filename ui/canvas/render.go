package canvas

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"tileboard/pkg/geometry"
)

var boardBackground = color.RGBA{R: 0xe8, G: 0xea, B: 0xed, A: 0xff}

// boardRenderer lays out the board's tiles at their screen rectangles
// (WorldRectToScreen of the committed or preview rect) and the four resize
// grips on the selected tile.
type boardRenderer struct {
	bc       *BoardCanvas
	backdrop *fynecanvas.Rectangle
	surface  *fynecanvas.Rectangle
}

func newBoardRenderer(bc *BoardCanvas) *boardRenderer {
	surface := fynecanvas.NewRectangle(color.White)
	surface.StrokeColor = color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
	surface.StrokeWidth = 1
	return &boardRenderer{
		bc:       bc,
		backdrop: fynecanvas.NewRectangle(boardBackground),
		surface:  surface,
	}
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.backdrop.Resize(size)
	r.layoutContent()
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *boardRenderer) Refresh() {
	r.syncTiles()
	r.layoutContent()
	r.backdrop.Refresh()
	r.surface.Refresh()
	for _, to := range r.bc.tiles {
		to.refresh()
	}
	for _, h := range r.bc.handles {
		h.box.Refresh()
	}
}

// syncTiles reconciles render objects with board state.
func (r *boardRenderer) syncTiles() {
	seen := make(map[string]bool)
	for _, t := range r.bc.state.Tiles() {
		seen[t.ID] = true
		if _, ok := r.bc.tiles[t.ID]; !ok {
			r.bc.tiles[t.ID] = newTileObject(t)
		}
	}
	for id := range r.bc.tiles {
		if !seen[id] {
			delete(r.bc.tiles, id)
		}
	}
}

func (r *boardRenderer) layoutContent() {
	vp := r.bc.state.Viewport()

	// The virtual canvas outline, transformed like the tiles.
	surface := vp.WorldRectToScreen(geometry.NewRect(0, 0, r.bc.state.Config.CanvasWidth, r.bc.state.Config.CanvasHeight))
	r.surface.Move(fyne.NewPos(float32(surface.X), float32(surface.Y)))
	r.surface.Resize(fyne.NewSize(float32(surface.Width), float32(surface.Height)))

	selected := r.bc.state.Selected()
	showHandles := r.bc.state.EditMode() && selected != ""

	for _, t := range r.bc.state.Tiles() {
		to, ok := r.bc.tiles[t.ID]
		if !ok {
			continue
		}
		screen := vp.WorldRectToScreen(r.bc.displayRect(t))
		to.layout(screen, t.ID == selected, vp.Zoom)

		if showHandles && t.ID == selected {
			for _, h := range r.bc.handles {
				h.layout(screen)
			}
		}
	}
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{r.backdrop, r.surface}

	// state.Tiles() is already z-ordered bottom-first.
	for _, t := range r.bc.state.Tiles() {
		if to, ok := r.bc.tiles[t.ID]; ok {
			objs = append(objs, to.objects()...)
		}
	}

	if r.bc.state.EditMode() && r.bc.state.Selected() != "" {
		for _, h := range r.bc.handles {
			objs = append(objs, h.box)
		}
	}
	return objs
}

func (r *boardRenderer) Destroy() {}
