package canvas

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"tileboard/internal/board"
	"tileboard/internal/gesture"
	"tileboard/pkg/geometry"
)

const (
	// handleSize is the rendered size of a resize grip in screen pixels.
	handleSize = 12.0
	// handleSlop widens the hit target beyond the rendered grip, for touch.
	handleSlop = 6.0
)

var (
	tileFill     = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf0, A: 0xff}
	tileStroke   = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	tileSelected = color.RGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff}
	handleFill   = color.RGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff}
)

// tileObject is the render representation of one tile: a filled rectangle,
// an optional symbol image, and a label.
type tileObject struct {
	tile  *board.Tile
	box   *fynecanvas.Rectangle
	image *fynecanvas.Image
	label *fynecanvas.Text
}

func newTileObject(t *board.Tile) *tileObject {
	box := fynecanvas.NewRectangle(tileFill)
	box.StrokeColor = tileStroke
	box.StrokeWidth = 1

	label := fynecanvas.NewText(t.Label, color.Black)
	label.Alignment = fyne.TextAlignCenter

	to := &tileObject{tile: t, box: box, label: label}
	if t.ImagePath != "" {
		to.image = fynecanvas.NewImageFromImage(nil)
		to.image.FillMode = fynecanvas.ImageFillContain
	}
	return to
}

// layout positions the tile's objects at its screen rectangle.
func (to *tileObject) layout(screen geometry.Rect, selected bool, zoom float64) {
	pos := fyne.NewPos(float32(screen.X), float32(screen.Y))
	size := fyne.NewSize(float32(screen.Width), float32(screen.Height))

	if selected {
		to.box.StrokeColor = tileSelected
		to.box.StrokeWidth = 2
	} else {
		to.box.StrokeColor = tileStroke
		to.box.StrokeWidth = 1
	}
	to.box.Move(pos)
	to.box.Resize(size)

	if to.image != nil {
		if img := scaledSymbol(to.tile.ImagePath, screen, zoom); img != nil {
			to.image.Image = img
		}
		to.image.Move(pos)
		to.image.Resize(size)
	}

	to.label.TextSize = float32(14 * zoom)
	to.label.Move(fyne.NewPos(float32(screen.X), float32(screen.Y+screen.Height-22*zoom)))
	to.label.Resize(fyne.NewSize(float32(screen.Width), float32(20*zoom)))
}

func (to *tileObject) objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{to.box}
	if to.image != nil {
		objs = append(objs, to.image)
	}
	objs = append(objs, to.label)
	return objs
}

func (to *tileObject) refresh() {
	to.box.Refresh()
	if to.image != nil {
		to.image.Refresh()
	}
	to.label.Text = to.tile.Label
	to.label.Refresh()
}

// handleObject is one corner resize grip, rendered in screen space so it
// keeps a constant size at any zoom.
type handleObject struct {
	handle gesture.Handle
	box    *fynecanvas.Rectangle
}

func newHandleObject(h gesture.Handle) *handleObject {
	box := fynecanvas.NewRectangle(handleFill)
	return &handleObject{handle: h, box: box}
}

// corner returns the screen position of the grip's corner on a tile's
// screen rectangle.
func (h *handleObject) corner(screen geometry.Rect) geometry.Point2D {
	p := screen.TopLeft()
	switch h.handle {
	case gesture.HandleNE:
		p.X += screen.Width
	case gesture.HandleSW:
		p.Y += screen.Height
	case gesture.HandleSE:
		p.X += screen.Width
		p.Y += screen.Height
	}
	return p
}

// layout centers the grip on its corner.
func (h *handleObject) layout(screen geometry.Rect) {
	c := h.corner(screen)
	h.box.Move(fyne.NewPos(float32(c.X-handleSize/2), float32(c.Y-handleSize/2)))
	h.box.Resize(fyne.NewSize(handleSize, handleSize))
}

// hitArea returns the screen-space square that accepts pointer-downs for
// this grip.
func (h *handleObject) hitArea(screen geometry.Rect) geometry.Rect {
	c := h.corner(screen)
	half := handleSize/2 + handleSlop
	return geometry.Rect{X: c.X - half, Y: c.Y - half, Width: 2 * half, Height: 2 * half}
}
