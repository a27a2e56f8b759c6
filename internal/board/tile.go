// Package board holds the communication-board model: tiles, board state,
// and the engine configuration.
package board

import (
	"github.com/google/uuid"

	"tileboard/pkg/geometry"
)

// Tile is a single rectangular element on the board. The canvas engine only
// computes candidate rectangles; the tile entity owns the committed values.
type Tile struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	// ImagePath points at the tile's symbol image, if any. Media handling
	// itself lives outside the engine.
	ImagePath string `json:"image,omitempty"`

	Rect   geometry.Rect `json:"rect"`
	ZIndex int           `json:"zIndex"`

	// GridIndex is the tile's slot in fixed-grid mode. Tiles created in
	// freeform mode get their index assigned by the layout converter.
	GridIndex int `json:"gridIndex"`
}

// NewTile creates a tile with a fresh id at the given rectangle.
func NewTile(rect geometry.Rect) *Tile {
	return &Tile{
		ID:   uuid.NewString(),
		Rect: rect,
	}
}

// HasPosition reports whether the tile carries a freeform position. Tiles
// restored from grid-only boards have a zero-size rect until converted.
func (t *Tile) HasPosition() bool {
	return t.Rect.Width > 0 && t.Rect.Height > 0
}
