package layout

import (
	"testing"

	"tileboard/internal/board"
	"tileboard/pkg/geometry"
)

func makeTiles(n int) []*board.Tile {
	tiles := make([]*board.Tile, n)
	for i := range tiles {
		tiles[i] = &board.Tile{ID: string(rune('a' + i))}
	}
	return tiles
}

func TestGridToFreeformFourTiles(t *testing.T) {
	tiles := makeTiles(4)
	canvas := geometry.Size{Width: 1920, Height: 1080}
	GridToFreeform(tiles, 4, canvas, 150)

	// 4 tiles: 2x2 grid of 960x540 cells, tiles centered.
	wants := []geometry.Rect{
		{X: 405, Y: 195, Width: 150, Height: 150},
		{X: 1365, Y: 195, Width: 150, Height: 150},
		{X: 405, Y: 735, Width: 150, Height: 150},
		{X: 1365, Y: 735, Width: 150, Height: 150},
	}
	for i, tile := range tiles {
		if tile.Rect != wants[i] {
			t.Errorf("tile %d rect = %+v, want %+v", i, tile.Rect, wants[i])
		}
		if tile.ZIndex != i {
			t.Errorf("tile %d zIndex = %d, want %d", i, tile.ZIndex, i)
		}
	}
}

func TestGridToFreeformDeterministic(t *testing.T) {
	canvas := geometry.Size{Width: 1920, Height: 1080}
	a := makeTiles(7)
	b := makeTiles(7)
	GridToFreeform(a, 9, canvas, 150)
	GridToFreeform(b, 9, canvas, 150)

	for i := range a {
		if a[i].Rect != b[i].Rect {
			t.Errorf("tile %d differs across runs: %+v vs %+v", i, a[i].Rect, b[i].Rect)
		}
	}
}

func TestGridFreeformRoundTrip(t *testing.T) {
	tiles := makeTiles(4)
	canvas := geometry.Size{Width: 1920, Height: 1080}
	GridToFreeform(tiles, 4, canvas, 150)

	ordered := FreeformToGrid(tiles, DefaultRowTolerance)

	for i, tile := range ordered {
		if tile.ID != tiles[i].ID {
			t.Errorf("position %d = tile %q, want %q", i, tile.ID, tiles[i].ID)
		}
		if tile.GridIndex != i {
			t.Errorf("tile %q gridIndex = %d, want %d", tile.ID, tile.GridIndex, i)
		}
	}
}

func TestFreeformToGridRowTolerance(t *testing.T) {
	newTile := func(id string, x, y float64) *board.Tile {
		return &board.Tile{ID: id, Rect: geometry.NewRect(x, y, 100, 100)}
	}

	// Tile b sits slightly lower but further left than a.
	a := newTile("a", 200, 0)
	b := newTile("b", 100, 40)

	// Under tolerance 50 both fall in row bucket 0, so x order wins: b, a.
	got := FreeformToGrid([]*board.Tile{a, b}, 50)
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("tolerance 50 order = [%s %s], want [b a]", got[0].ID, got[1].ID)
	}

	// Under tolerance 30 they are different rows (0 and 1): a first.
	got = FreeformToGrid([]*board.Tile{a, b}, 30)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("tolerance 30 order = [%s %s], want [a b]", got[0].ID, got[1].ID)
	}
}

func TestFreeformToGridAppendsUnpositioned(t *testing.T) {
	positioned := &board.Tile{ID: "p", Rect: geometry.NewRect(500, 500, 100, 100)}
	u1 := &board.Tile{ID: "u1"}
	u2 := &board.Tile{ID: "u2"}

	got := FreeformToGrid([]*board.Tile{u1, positioned, u2}, 50)

	wantOrder := []string{"p", "u1", "u2"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestFreeformToGridStableWithinRow(t *testing.T) {
	// Identical x and same row bucket: original order is preserved.
	a := &board.Tile{ID: "a", Rect: geometry.NewRect(100, 0, 100, 100)}
	b := &board.Tile{ID: "b", Rect: geometry.NewRect(100, 10, 100, 100)}

	got := FreeformToGrid([]*board.Tile{a, b}, 50)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order = [%s %s], want [a b]", got[0].ID, got[1].ID)
	}
}
