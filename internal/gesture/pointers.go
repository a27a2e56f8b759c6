package gesture

import (
	"tileboard/pkg/geometry"
)

// PointerID identifies one active pointer (finger or mouse button stream).
type PointerID int

// pointerTracker maps active pointer ids to their last known screen points.
// It is owned exclusively by the Router for a session's lifetime; callers
// only see intent-level router methods, never raw map mutation.
type pointerTracker struct {
	points map[PointerID]geometry.Point2D
	order  []PointerID // insertion order, so pinch pairs are stable
}

func newPointerTracker() pointerTracker {
	return pointerTracker{points: make(map[PointerID]geometry.Point2D)}
}

func (t *pointerTracker) set(id PointerID, p geometry.Point2D) {
	if _, ok := t.points[id]; !ok {
		t.order = append(t.order, id)
	}
	t.points[id] = p
}

func (t *pointerTracker) get(id PointerID) (geometry.Point2D, bool) {
	p, ok := t.points[id]
	return p, ok
}

func (t *pointerTracker) remove(id PointerID) {
	if _, ok := t.points[id]; !ok {
		return
	}
	delete(t.points, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *pointerTracker) count() int {
	return len(t.points)
}

func (t *pointerTracker) clear() {
	t.points = make(map[PointerID]geometry.Point2D)
	t.order = nil
}

// anyID returns the first tracked pointer id. Only meaningful when count>0.
func (t *pointerTracker) anyID() PointerID {
	return t.order[0]
}

// pair returns the two oldest tracked points. Only meaningful when count>=2.
func (t *pointerTracker) pair() (geometry.Point2D, geometry.Point2D) {
	return t.points[t.order[0]], t.points[t.order[1]]
}

// pairDistance returns the distance between the pinch pair, or 0 when fewer
// than two pointers are down.
func (t *pointerTracker) pairDistance() float64 {
	if t.count() < 2 {
		return 0
	}
	a, b := t.pair()
	return a.Distance(b)
}

// pairMidpoint returns the midpoint of the pinch pair in screen coordinates.
func (t *pointerTracker) pairMidpoint() geometry.Point2D {
	a, b := t.pair()
	return a.Midpoint(b)
}
