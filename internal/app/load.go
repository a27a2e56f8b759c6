package app

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tileboard/internal/board"
	"tileboard/internal/layout"
	"tileboard/internal/persist"
)

// LoadBoard builds board state from a file store. Tiles stored without a
// usable freeform position (boards last saved in grid mode) are assigned
// deterministic grid-default rectangles, which are written back so the next
// load is a plain restore.
func LoadBoard(fs *persist.FileStore, cfg board.Config, logger *log.Logger) (*board.State, error) {
	boardID := fs.BoardID()
	if boardID == "" {
		boardID = uuid.NewString()
	}
	state := board.NewState(boardID, cfg)

	ids := fs.TileIDs()
	sort.Strings(ids)

	var defaulted []*board.Tile
	for _, id := range ids {
		rect, _, err := fs.GetPosition(id)
		if err != nil {
			return nil, err
		}
		t := &board.Tile{ID: id, Rect: rect, ZIndex: fs.ZIndex(id)}
		state.AddTile(t)
		if !t.HasPosition() {
			defaulted = append(defaulted, t)
		}
	}

	if len(defaulted) > 0 {
		layout.GridToFreeform(defaulted, state.Count(), cfg.CanvasSize(), cfg.DefaultTileSize)

		updates := make([]persist.PositionUpdate, 0, len(defaulted))
		for _, t := range defaulted {
			updates = append(updates, persist.PositionUpdate{TileID: t.ID, Rect: t.Rect})
		}
		if err := fs.BatchUpdatePositions(updates); err != nil {
			// The defaults are recomputable, so a failed write only costs
			// doing it again next launch.
			logger.Warn("persist grid defaults", "tiles", len(updates), "err", err)
		}
		logger.Info("assigned grid-default positions", "tiles", len(defaulted))
	}

	// Scan order for the whole board, not just the defaulted tiles.
	layout.FreeformToGrid(state.Tiles(), cfg.RowTolerance)

	state.SetViewport(fs.Viewport())
	logger.Info("board loaded", "board", boardID, "tiles", state.Count())
	return state, nil
}
