package gesture

import (
	"tileboard/pkg/geometry"
)

// TargetKind classifies what a pointer landed on.
type TargetKind int

const (
	// TargetCanvas is empty board space: pan, pinch, or tap-to-create.
	TargetCanvas TargetKind = iota
	// TargetTile is a tile body: drag.
	TargetTile
	// TargetHandle is a resize grip on the selected tile: resize.
	TargetHandle
)

// Target describes the hit-test result for a pointer-down. The UI layer owns
// hit testing (handles are screen-space widgets); the router owns what
// happens next.
type Target struct {
	Kind   TargetKind
	TileID string
	Handle Handle
}

// Hooks are the router's outbound edges, injected by the caller. All are
// optional; nil hooks are skipped.
type Hooks struct {
	// Viewport returns the current viewport; SetViewport publishes a new one
	// for immediate re-render.
	Viewport    func() geometry.Viewport
	SetViewport func(geometry.Viewport)

	// TileRect fetches the committed rectangle for a tile at drag/resize
	// start.
	TileRect func(tileID string) (geometry.Rect, bool)

	// Preview publishes a clamped candidate rect during a live drag/resize.
	Preview func(tileID string, rect geometry.Rect)

	// Commit publishes the final clamped rect when the gesture ends.
	Commit func(tileID string, rect geometry.Rect)

	// Cancel fires when a tile press resolves without a gesture (a
	// sub-threshold tap): previews published for the tile must be discarded
	// and nothing written.
	Cancel func(tileID string)

	// Tap fires for a sub-threshold press/release on empty canvas, with the
	// world-space point.
	Tap func(world geometry.Point2D)

	// SelectTile fires when a pointer lands on a tile.
	SelectTile func(tileID string)

	// GestureEnd fires after any completed gesture (not after a cancel);
	// this is the debouncer's unconditional flush point.
	GestureEnd func()
}

// DefaultTapThreshold is the movement budget, in screen pixels, under which
// a press/release is reclassified as a tap.
const DefaultTapThreshold = 5.0

type routerMode int

const (
	modeNone routerMode = iota
	modeDrag
	modeResize
	modePan
	modePinch
)

// Router tracks active pointers, disambiguates tap / drag / pan / pinch from
// the shared event stream, and dispatches to the viewport or the drag/resize
// engine. Exactly one gesture is active at a time; attempts to start another
// are silently ignored.
//
// The router is single-threaded by contract: all methods are called from the
// UI event loop.
type Router struct {
	hooks       Hooks
	constraints geometry.Constraints

	// TapThreshold overrides DefaultTapThreshold when positive.
	TapThreshold float64

	engine   Engine
	pointers pointerTracker

	mode           routerMode
	gesturePointer PointerID
	downPoint      geometry.Point2D
	moved          float64
	pinchDist      float64

	// panning flips once pointer movement clears the tap threshold; until
	// then pan deltas are withheld so a later tap resolves against the
	// viewport as it was at pointer-down.
	panning bool

	// multiTouch flips once a second pointer lands and makes the gesture
	// non-tappable: total movement spans all pointers, and a stationary
	// anchor finger must not read as a tap when it lifts last.
	multiTouch bool
}

// NewRouter creates a router with the given constraints and hooks.
func NewRouter(constraints geometry.Constraints, hooks Hooks) *Router {
	return &Router{
		hooks:       hooks,
		constraints: constraints,
		pointers:    newPointerTracker(),
	}
}

func (r *Router) tapThreshold() float64 {
	if r.TapThreshold > 0 {
		return r.TapThreshold
	}
	return DefaultTapThreshold
}

func (r *Router) viewport() geometry.Viewport {
	if r.hooks.Viewport == nil {
		return geometry.DefaultViewport()
	}
	return r.hooks.Viewport()
}

// PointerDown registers a pointer and, for the first pointer, starts the
// gesture the target implies. A second pointer converts a pan into a pinch,
// re-seeding the pinch baseline; further pointers are tracked but ignored.
func (r *Router) PointerDown(id PointerID, pos geometry.Point2D, target Target) {
	r.pointers.set(id, pos)

	switch r.pointers.count() {
	case 1:
		r.beginGesture(id, pos, target)
	case 2:
		r.multiTouch = true
		if r.mode == modePan || r.mode == modeNone {
			r.mode = modePinch
			r.pinchDist = r.pointers.pairDistance()
		}
		// An active drag/resize keeps its single driving pointer.
	}
}

func (r *Router) beginGesture(id PointerID, pos geometry.Point2D, target Target) {
	r.gesturePointer = id
	r.downPoint = pos
	r.moved = 0
	r.panning = false
	r.multiTouch = false

	switch target.Kind {
	case TargetTile:
		if r.hooks.SelectTile != nil {
			r.hooks.SelectTile(target.TileID)
		}
		if rect, ok := r.tileRect(target.TileID); ok && r.engine.BeginDrag(target.TileID, pos, rect) {
			r.mode = modeDrag
			return
		}
		r.mode = modeNone
	case TargetHandle:
		if rect, ok := r.tileRect(target.TileID); ok && r.engine.BeginResize(target.TileID, target.Handle, pos, rect) {
			r.mode = modeResize
			return
		}
		r.mode = modeNone
	default:
		if r.hooks.SelectTile != nil {
			r.hooks.SelectTile("")
		}
		r.mode = modePan
	}
}

func (r *Router) tileRect(tileID string) (geometry.Rect, bool) {
	if r.hooks.TileRect == nil {
		return geometry.Rect{}, false
	}
	return r.hooks.TileRect(tileID)
}

// PointerMove updates a tracked pointer and advances the active gesture.
func (r *Router) PointerMove(id PointerID, pos geometry.Point2D) {
	prev, ok := r.pointers.get(id)
	if !ok {
		return
	}
	r.pointers.set(id, pos)

	if id == r.gesturePointer {
		if d := r.downPoint.Distance(pos); d > r.moved {
			r.moved = d
		}
	}

	switch r.mode {
	case modeDrag, modeResize:
		if id != r.gesturePointer {
			return
		}
		if rect, ok := r.engine.Update(pos, r.viewport().Zoom); ok {
			rect = r.constraints.ClampRect(rect)
			if r.hooks.Preview != nil {
				r.hooks.Preview(r.engine.TileID(), rect)
			}
		}
	case modePan:
		// One- and two-pointer logic are mutually exclusive per instant.
		if id != r.gesturePointer || r.pointers.count() != 1 {
			return
		}
		if !r.panning {
			if r.moved < r.tapThreshold() {
				// Still within tap range; don't disturb the viewport yet.
				return
			}
			// First move past the threshold: apply the delta accumulated
			// since pointer-down so no motion is lost.
			prev = r.downPoint
			r.panning = true
		}
		if r.hooks.SetViewport != nil {
			r.hooks.SetViewport(r.viewport().Pan(pos.X-prev.X, pos.Y-prev.Y))
		}
	case modePinch:
		if r.pointers.count() < 2 {
			return
		}
		dist := r.pointers.pairDistance()
		if r.pinchDist > 0 && dist > 0 {
			mid := r.pointers.pairMidpoint()
			if r.hooks.SetViewport != nil {
				r.hooks.SetViewport(r.viewport().ZoomAt(dist/r.pinchDist, mid.X, mid.Y))
			}
		}
		r.pinchDist = dist
	}
}

// PointerUp releases a pointer. When the last pointer lifts the gesture
// resolves: a sub-threshold canvas press becomes a tap, a drag/resize
// commits its final rectangle, and GestureEnd fires.
func (r *Router) PointerUp(id PointerID, pos geometry.Point2D) {
	if _, ok := r.pointers.get(id); !ok {
		return
	}
	r.pointers.remove(id)

	if r.pointers.count() > 0 {
		r.resolveRemainingPointers(id, pos)
		return
	}
	r.finishGesture(pos)
}

// resolveRemainingPointers handles a lift that leaves other pointers down.
func (r *Router) resolveRemainingPointers(lifted PointerID, pos geometry.Point2D) {
	switch r.mode {
	case modePinch:
		if r.pointers.count() == 1 {
			// Continue as a pan driven by the surviving pointer; its next
			// move supplies the baseline. The pinch already counted as a
			// real gesture, so panning resumes without a fresh threshold.
			r.mode = modePan
			r.gesturePointer = r.pointers.anyID()
			r.pinchDist = 0
			r.panning = true
		}
	case modeDrag, modeResize:
		if lifted == r.gesturePointer {
			// The driving pointer lifted; commit now. The leftover pointer
			// stays tracked but drives nothing.
			r.commitOperation(pos)
			r.gestureEnd()
			r.mode = modeNone
		}
	}
}

func (r *Router) finishGesture(pos geometry.Point2D) {
	mode := r.mode
	tapped := r.moved < r.tapThreshold() && !r.multiTouch
	r.mode = modeNone
	r.pinchDist = 0
	r.panning = false
	r.multiTouch = false

	switch mode {
	case modeDrag:
		if tapped {
			// Press and release on a tile without movement: selection only,
			// no commit. Any preview the jitter produced is withdrawn.
			tileID := r.engine.TileID()
			r.engine.Cancel()
			if r.hooks.Cancel != nil {
				r.hooks.Cancel(tileID)
			}
			return
		}
		r.commitOperation(pos)
		r.gestureEnd()
	case modeResize:
		r.commitOperation(pos)
		r.gestureEnd()
	case modePan:
		if tapped {
			if r.hooks.Tap != nil {
				r.hooks.Tap(r.viewport().ScreenToWorld(r.downPoint))
			}
			return
		}
		r.gestureEnd()
	case modePinch:
		r.gestureEnd()
	}
}

func (r *Router) commitOperation(pos geometry.Point2D) {
	tileID, rect, ok := r.engine.End(pos, r.viewport().Zoom)
	if !ok {
		return
	}
	rect = r.constraints.ClampRect(rect)
	if r.hooks.Commit != nil {
		r.hooks.Commit(tileID, rect)
	}
}

func (r *Router) gestureEnd() {
	if r.hooks.GestureEnd != nil {
		r.hooks.GestureEnd()
	}
}

// CancelAll aborts the active gesture and forgets all pointers, e.g. on lost
// pointer capture. Nothing is committed and no flush fires.
func (r *Router) CancelAll() {
	r.engine.Cancel()
	r.pointers.clear()
	r.mode = modeNone
	r.moved = 0
	r.pinchDist = 0
	r.panning = false
	r.multiTouch = false
}

// Active reports whether any gesture is in progress.
func (r *Router) Active() bool {
	return r.mode != modeNone
}
