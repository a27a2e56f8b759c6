// Package persist defines the storage interface the canvas engine consumes,
// a JSON-file reference implementation, and the debouncer that throttles
// position writes during live gestures.
package persist

import (
	"errors"

	"tileboard/pkg/geometry"
)

// ErrTileLimit is returned by CreateTileAt when the board already holds the
// configured maximum number of tiles.
var ErrTileLimit = errors.New("persist: tile limit reached")

// PositionUpdate pairs a tile id with its new rectangle for batch writes.
type PositionUpdate struct {
	TileID string        `json:"tileId"`
	Rect   geometry.Rect `json:"rect"`
}

// Store is the persistence interface consumed by the engine. The engine
// never resolves a store from ambient state; an instance is injected.
//
// Implementations may be slow (network, disk); the engine only calls them
// through the debouncer, so visual state never blocks on storage I/O.
type Store interface {
	// GetPosition returns the stored rectangle for a tile. ok is false when
	// the tile has no stored position; that is not an error.
	GetPosition(tileID string) (rect geometry.Rect, ok bool, err error)

	// UpdatePosition stores a tile's rectangle.
	UpdatePosition(tileID string, rect geometry.Rect) error

	// UpdateZIndex stores a tile's stacking order.
	UpdateZIndex(tileID string, z int) error

	// UpdateViewport stores a board's pan/zoom state.
	UpdateViewport(boardID string, v geometry.Viewport) error

	// BatchUpdatePositions stores several rectangles in one operation.
	BatchUpdatePositions(updates []PositionUpdate) error

	// CreateTileAt persists a new tile and returns its id. Returns
	// ErrTileLimit when the board is full.
	CreateTileAt(boardID string, rect geometry.Rect) (string, error)
}
