package app

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"tileboard/internal/board"
	"tileboard/internal/persist"
	"tileboard/pkg/geometry"
)

func openTestStore(t *testing.T) *persist.FileStore {
	t.Helper()
	fs, err := persist.OpenFileStore(filepath.Join(t.TempDir(), "board.json"), 50)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	return fs
}

func TestLoadBoardRestoresTilesAndViewport(t *testing.T) {
	fs := openTestStore(t)
	if err := fs.UpdatePosition("a", geometry.NewRect(100, 100, 150, 150)); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}
	if err := fs.UpdatePosition("b", geometry.NewRect(600, 100, 150, 150)); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}
	vp := geometry.Viewport{Zoom: 1.5, PanX: -20, PanY: 40}
	if err := fs.UpdateViewport("board-1", vp); err != nil {
		t.Fatalf("UpdateViewport: %v", err)
	}

	state, err := LoadBoard(fs, board.DefaultConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}

	if state.ID != "board-1" {
		t.Errorf("board id = %q, want board-1", state.ID)
	}
	if state.Count() != 2 {
		t.Fatalf("count = %d, want 2", state.Count())
	}
	if got := state.Viewport(); got != vp {
		t.Errorf("viewport = %+v, want %+v", got, vp)
	}

	// Same row, so scan order is left to right.
	a, b := state.Tile("a"), state.Tile("b")
	if a.GridIndex != 0 || b.GridIndex != 1 {
		t.Errorf("grid indices = %d, %d, want 0, 1", a.GridIndex, b.GridIndex)
	}
}

func TestLoadBoardAssignsGridDefaults(t *testing.T) {
	fs := openTestStore(t)
	// A board last saved in grid mode: ids present, no usable rects.
	for _, id := range []string{"a", "b", "c"} {
		if err := fs.UpdatePosition(id, geometry.Rect{}); err != nil {
			t.Fatalf("UpdatePosition: %v", err)
		}
	}

	state, err := LoadBoard(fs, board.DefaultConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}

	seen := make(map[geometry.Rect]bool)
	for _, tile := range state.Tiles() {
		if !tile.HasPosition() {
			t.Errorf("tile %q still has no position", tile.ID)
		}
		if seen[tile.Rect] {
			t.Errorf("tile %q shares rect %+v with another tile", tile.ID, tile.Rect)
		}
		seen[tile.Rect] = true

		// Defaults are persisted so the next load is a plain restore.
		stored, ok, err := fs.GetPosition(tile.ID)
		if err != nil || !ok {
			t.Fatalf("GetPosition(%q): ok=%v err=%v", tile.ID, ok, err)
		}
		if stored != tile.Rect {
			t.Errorf("stored rect %+v != assigned %+v", stored, tile.Rect)
		}
	}
}

func TestLoadBoardDeterministic(t *testing.T) {
	build := func() *board.State {
		fs := openTestStore(t)
		for _, id := range []string{"z", "m", "a"} {
			if err := fs.UpdatePosition(id, geometry.Rect{}); err != nil {
				t.Fatalf("UpdatePosition: %v", err)
			}
		}
		state, err := LoadBoard(fs, board.DefaultConfig(), log.New(io.Discard))
		if err != nil {
			t.Fatalf("LoadBoard: %v", err)
		}
		return state
	}

	first, second := build(), build()
	for _, tile := range first.Tiles() {
		other := second.Tile(tile.ID)
		if other == nil || other.Rect != tile.Rect {
			t.Errorf("tile %q rect differs across loads", tile.ID)
		}
	}
}
