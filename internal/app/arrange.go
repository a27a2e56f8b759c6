package app

import (
	"tileboard/internal/board"
	"tileboard/internal/layout"
	"tileboard/internal/persist"
)

// ArrangeGrid snaps every tile on the board to a deterministic near-square
// grid, ordered by the current scan order, and persists the result. The
// converter reassigns stacking order along with positions, so both are
// written; a reload must restore the same board.
func ArrangeGrid(state *board.State, store persist.Store) (int, error) {
	tiles := layout.FreeformToGrid(state.Tiles(), state.Config.RowTolerance)
	if len(tiles) == 0 {
		return 0, nil
	}
	layout.GridToFreeform(tiles, len(tiles), state.Config.CanvasSize(), state.Config.DefaultTileSize)

	updates := make([]persist.PositionUpdate, 0, len(tiles))
	for _, t := range tiles {
		updates = append(updates, persist.PositionUpdate{TileID: t.ID, Rect: t.Rect})
	}
	if err := store.BatchUpdatePositions(updates); err != nil {
		return 0, err
	}
	for _, t := range tiles {
		if err := store.UpdateZIndex(t.ID, t.ZIndex); err != nil {
			return 0, err
		}
	}

	state.Emit(board.EventLayoutConverted, len(tiles))
	return len(tiles), nil
}
