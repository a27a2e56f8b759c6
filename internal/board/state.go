package board

import (
	"fmt"
	"sort"
	"sync"

	"tileboard/pkg/geometry"
)

// ErrTileLimit is returned when tap-to-create would exceed the configured
// maximum tile count.
var ErrTileLimit = fmt.Errorf("board: tile limit reached")

// EventType identifies board state change events.
type EventType int

const (
	EventTileCreated EventType = iota
	EventTileMoved
	EventTileResized
	EventTileRemoved
	EventSelectionChanged
	EventViewportChanged
	EventLayoutConverted
	EventEditModeChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds one open board: its tiles, viewport, selection and edit mode.
// UI panels subscribe to events rather than polling.
type State struct {
	mu sync.RWMutex

	ID     string
	Config Config

	tiles    []*Tile
	byID     map[string]*Tile
	selected string
	editMode bool
	viewport geometry.Viewport

	listeners map[EventType][]EventListener
}

// NewState creates an empty board with the given id and config.
func NewState(id string, cfg Config) *State {
	return &State{
		ID:        id,
		Config:    cfg,
		byID:      make(map[string]*Tile),
		viewport:  geometry.DefaultViewport(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Tiles returns the tiles in z-order (bottom first).
func (s *State) Tiles() []*Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Tile, len(s.tiles))
	copy(out, s.tiles)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Tile returns the tile with the given id, or nil.
func (s *State) Tile(id string) *Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Count returns the number of tiles on the board.
func (s *State) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tiles)
}

// AddTile inserts an existing tile (e.g. loaded from storage).
func (s *State) AddTile(t *Tile) {
	s.mu.Lock()
	s.tiles = append(s.tiles, t)
	s.byID[t.ID] = t
	s.mu.Unlock()
}

// CreateTileAt creates a new tile centered on the given world point, clamped
// into the canvas. Returns ErrTileLimit once the configured maximum is
// reached; the caller surfaces the notice to the user.
func (s *State) CreateTileAt(p geometry.Point2D) (*Tile, error) {
	s.mu.Lock()
	if len(s.tiles) >= s.Config.MaxTiles {
		s.mu.Unlock()
		return nil, ErrTileLimit
	}

	size := s.Config.DefaultTileSize
	rect := geometry.Rect{
		X:      p.X - size/2,
		Y:      p.Y - size/2,
		Width:  size,
		Height: size,
	}
	rect = geometry.DefaultConstraints(s.Config.CanvasSize()).ClampRect(rect)

	t := NewTile(rect)
	t.ZIndex = s.nextZIndexLocked()
	t.GridIndex = len(s.tiles)
	s.tiles = append(s.tiles, t)
	s.byID[t.ID] = t
	s.mu.Unlock()

	s.Emit(EventTileCreated, t)
	return t, nil
}

// RemoveTile deletes a tile by id.
func (s *State) RemoveTile(id string) {
	s.mu.Lock()
	t, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.byID, id)
	for i, cand := range s.tiles {
		if cand == t {
			s.tiles = append(s.tiles[:i], s.tiles[i+1:]...)
			break
		}
	}
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()

	s.Emit(EventTileRemoved, t)
}

// SetTileRect commits a new rectangle to a tile and reports which event
// applies (moved vs resized).
func (s *State) SetTileRect(id string, rect geometry.Rect) {
	s.mu.Lock()
	t, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	resized := t.Rect.Width != rect.Width || t.Rect.Height != rect.Height
	t.Rect = rect
	s.mu.Unlock()

	if resized {
		s.Emit(EventTileResized, t)
	} else {
		s.Emit(EventTileMoved, t)
	}
}

// RaiseTile moves a tile to the top of the z-order. Called when a drag
// begins so the active tile renders above its neighbours.
func (s *State) RaiseTile(id string) {
	s.mu.Lock()
	t, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	top := s.nextZIndexLocked()
	if t.ZIndex == top-1 {
		s.mu.Unlock()
		return
	}
	t.ZIndex = top
	s.mu.Unlock()

	s.Emit(EventTileMoved, t)
}

func (s *State) nextZIndexLocked() int {
	top := 0
	for _, t := range s.tiles {
		if t.ZIndex >= top {
			top = t.ZIndex + 1
		}
	}
	return top
}

// TileAt returns the topmost tile containing the given world point, or nil.
func (s *State) TileAt(p geometry.Point2D) *Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var hit *Tile
	for _, t := range s.tiles {
		if t.Rect.Contains(p) && (hit == nil || t.ZIndex > hit.ZIndex) {
			hit = t
		}
	}
	return hit
}

// Select marks a tile as selected ("" clears the selection).
func (s *State) Select(id string) {
	s.mu.Lock()
	if s.selected == id {
		s.mu.Unlock()
		return
	}
	s.selected = id
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, id)
}

// Selected returns the currently selected tile id, or "".
func (s *State) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SetEditMode toggles edit mode. Resize handles only appear while editing.
func (s *State) SetEditMode(enabled bool) {
	s.mu.Lock()
	if s.editMode == enabled {
		s.mu.Unlock()
		return
	}
	s.editMode = enabled
	s.mu.Unlock()

	s.Emit(EventEditModeChanged, enabled)
}

// EditMode reports whether editing is enabled.
func (s *State) EditMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editMode
}

// Viewport returns the current viewport.
func (s *State) Viewport() geometry.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetViewport replaces the viewport and notifies listeners.
func (s *State) SetViewport(v geometry.Viewport) {
	s.mu.Lock()
	s.viewport = v
	s.mu.Unlock()

	s.Emit(EventViewportChanged, v)
}
