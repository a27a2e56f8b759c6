package persist

import (
	"errors"
	"path/filepath"
	"testing"

	"tileboard/pkg/geometry"
)

func tempStore(t *testing.T, maxTiles int) *FileStore {
	t.Helper()
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "board.json"), maxTiles)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	return fs
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	fs, err := OpenFileStore(path, 0)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}

	rect := geometry.NewRect(100, 200, 150, 150)
	id, err := fs.CreateTileAt("board1", rect)
	if err != nil {
		t.Fatalf("CreateTileAt: %v", err)
	}

	v := geometry.Viewport{Zoom: 1.5, PanX: -30, PanY: 40}
	if err := fs.UpdateViewport("board1", v); err != nil {
		t.Fatalf("UpdateViewport: %v", err)
	}
	if err := fs.UpdateZIndex(id, 7); err != nil {
		t.Fatalf("UpdateZIndex: %v", err)
	}

	// Reopen from disk and verify everything survived.
	reopened, err := OpenFileStore(path, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := reopened.GetPosition(id)
	if err != nil || !ok {
		t.Fatalf("GetPosition = (%v, %v, %v)", got, ok, err)
	}
	if got != rect {
		t.Errorf("position = %+v, want %+v", got, rect)
	}
	if reopened.Viewport() != v {
		t.Errorf("viewport = %+v, want %+v", reopened.Viewport(), v)
	}
	if reopened.ZIndex(id) != 7 {
		t.Errorf("zIndex = %d, want 7", reopened.ZIndex(id))
	}
}

func TestGetPositionMissingIsNotError(t *testing.T) {
	fs := tempStore(t, 0)
	_, ok, err := fs.GetPosition("nope")
	if err != nil {
		t.Fatalf("GetPosition error: %v", err)
	}
	if ok {
		t.Error("missing tile reported as present")
	}
}

func TestCreateTileAtEnforcesLimit(t *testing.T) {
	fs := tempStore(t, 2)

	for i := 0; i < 2; i++ {
		if _, err := fs.CreateTileAt("b", geometry.NewRect(0, 0, 100, 100)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := fs.CreateTileAt("b", geometry.NewRect(0, 0, 100, 100))
	if !errors.Is(err, ErrTileLimit) {
		t.Errorf("err = %v, want ErrTileLimit", err)
	}
	if got := len(fs.TileIDs()); got != 2 {
		t.Errorf("tile count = %d, want 2", got)
	}
}

func TestBatchUpdatePositions(t *testing.T) {
	fs := tempStore(t, 0)

	updates := []PositionUpdate{
		{TileID: "a", Rect: geometry.NewRect(0, 0, 100, 100)},
		{TileID: "b", Rect: geometry.NewRect(200, 0, 100, 100)},
	}
	if err := fs.BatchUpdatePositions(updates); err != nil {
		t.Fatalf("BatchUpdatePositions: %v", err)
	}

	for _, u := range updates {
		got, ok, _ := fs.GetPosition(u.TileID)
		if !ok || got != u.Rect {
			t.Errorf("position %q = (%+v, %v), want %+v", u.TileID, got, ok, u.Rect)
		}
	}
}
