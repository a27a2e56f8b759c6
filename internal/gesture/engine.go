package gesture

import (
	"tileboard/pkg/geometry"
)

// MinTileSize mirrors the geometry constraint; the engine enforces it during
// resize so the anchor edge can be preserved, independent of the caller's
// final clamp.
const MinTileSize = geometry.MinTileSize

type opState int

const (
	opIdle opState = iota
	opDragging
	opResizing
)

// Engine is the drag/resize state machine. Exactly one operation can be
// active; Begin calls while active are silently ignored. The engine computes
// candidate rectangles only — position constraints are applied by the caller
// before commit.
type Engine struct {
	state    opState
	tileID   string
	handle   Handle
	anchor   geometry.Point2D // screen point where the gesture started
	original geometry.Rect
}

// Active reports whether a drag or resize is in progress.
func (e *Engine) Active() bool {
	return e.state != opIdle
}

// Dragging reports whether a drag specifically is in progress.
func (e *Engine) Dragging() bool {
	return e.state == opDragging
}

// TileID returns the tile the active operation targets, or "".
func (e *Engine) TileID() string {
	if e.state == opIdle {
		return ""
	}
	return e.tileID
}

// BeginDrag starts dragging a tile from the given screen anchor. Returns
// false (no-op) if an operation is already active.
func (e *Engine) BeginDrag(tileID string, anchor geometry.Point2D, original geometry.Rect) bool {
	if e.state != opIdle {
		return false
	}
	e.state = opDragging
	e.tileID = tileID
	e.anchor = anchor
	e.original = original
	return true
}

// BeginResize starts resizing a tile by the given handle. Returns false
// (no-op) if an operation is already active.
func (e *Engine) BeginResize(tileID string, handle Handle, anchor geometry.Point2D, original geometry.Rect) bool {
	if e.state != opIdle {
		return false
	}
	e.state = opResizing
	e.tileID = tileID
	e.handle = handle
	e.anchor = anchor
	e.original = original
	return true
}

// Update computes the candidate rectangle for the current pointer position.
// Screen deltas are converted to world units by dividing by zoom. Returns
// false when no operation is active.
func (e *Engine) Update(current geometry.Point2D, zoom float64) (geometry.Rect, bool) {
	switch e.state {
	case opDragging:
		return e.dragRect(current, zoom), true
	case opResizing:
		return e.resizeRect(current, zoom), true
	}
	return geometry.Rect{}, false
}

// End finishes the operation, returning the tile id and final rectangle.
// The engine returns to idle regardless.
func (e *Engine) End(current geometry.Point2D, zoom float64) (string, geometry.Rect, bool) {
	rect, ok := e.Update(current, zoom)
	tileID := e.tileID
	e.reset()
	return tileID, rect, ok
}

// Cancel discards the active operation without emitting a rectangle.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	*e = Engine{}
}

func (e *Engine) dragRect(current geometry.Point2D, zoom float64) geometry.Rect {
	r := e.original
	r.X += (current.X - e.anchor.X) / zoom
	r.Y += (current.Y - e.anchor.Y) / zoom
	return r
}

func (e *Engine) resizeRect(current geometry.Point2D, zoom float64) geometry.Rect {
	dx := (current.X - e.anchor.X) / zoom
	dy := (current.Y - e.anchor.Y) / zoom

	r := e.original
	if e.handle.left() {
		r.X += dx
		r.Width -= dx
	} else {
		r.Width += dx
	}
	if e.handle.top() {
		r.Y += dy
		r.Height -= dy
	} else {
		r.Height += dy
	}

	// Anchor preservation: when a dimension bottoms out at the minimum, the
	// edge opposite the handle must not move. For left/top handles that
	// means recomputing x/y from the original far edge.
	if r.Width < MinTileSize {
		r.Width = MinTileSize
		if e.handle.left() {
			r.X = e.original.X + e.original.Width - MinTileSize
		}
	}
	if r.Height < MinTileSize {
		r.Height = MinTileSize
		if e.handle.top() {
			r.Y = e.original.Y + e.original.Height - MinTileSize
		}
	}
	return r
}
