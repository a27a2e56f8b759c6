package board

import (
	"errors"
	"testing"

	"tileboard/pkg/geometry"
)

func TestCreateTileAtCentersAndClamps(t *testing.T) {
	s := NewState("b1", DefaultConfig())

	tile, err := s.CreateTileAt(geometry.NewPoint2D(500, 400))
	if err != nil {
		t.Fatalf("CreateTileAt: %v", err)
	}
	// Default tile size 150, centered on the tap point.
	want := geometry.NewRect(425, 325, 150, 150)
	if tile.Rect != want {
		t.Errorf("rect = %+v, want %+v", tile.Rect, want)
	}

	// A tap near the corner clamps the tile inside the canvas.
	edge, err := s.CreateTileAt(geometry.NewPoint2D(0, 0))
	if err != nil {
		t.Fatalf("CreateTileAt: %v", err)
	}
	if edge.Rect.X != 0 || edge.Rect.Y != 0 {
		t.Errorf("edge rect = %+v, want origin-clamped", edge.Rect)
	}
}

func TestCreateTileAtRefusesPastLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTiles = 2
	s := NewState("b1", cfg)

	for i := 0; i < 2; i++ {
		if _, err := s.CreateTileAt(geometry.NewPoint2D(500, 500)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := s.CreateTileAt(geometry.NewPoint2D(500, 500))
	if !errors.Is(err, ErrTileLimit) {
		t.Errorf("err = %v, want ErrTileLimit", err)
	}
	if s.Count() != 2 {
		t.Errorf("count = %d, want 2", s.Count())
	}
}

func TestRaiseTileMovesToTop(t *testing.T) {
	s := NewState("b1", DefaultConfig())
	a, _ := s.CreateTileAt(geometry.NewPoint2D(200, 200))
	b, _ := s.CreateTileAt(geometry.NewPoint2D(600, 200))

	s.RaiseTile(a.ID)

	if a.ZIndex <= b.ZIndex {
		t.Errorf("raised tile z = %d, not above %d", a.ZIndex, b.ZIndex)
	}

	tiles := s.Tiles()
	if tiles[len(tiles)-1].ID != a.ID {
		t.Errorf("topmost tile = %q, want %q", tiles[len(tiles)-1].ID, a.ID)
	}
}

func TestTileAtReturnsTopmost(t *testing.T) {
	s := NewState("b1", DefaultConfig())
	a, _ := s.CreateTileAt(geometry.NewPoint2D(500, 500))
	b, _ := s.CreateTileAt(geometry.NewPoint2D(520, 500)) // overlaps a

	hit := s.TileAt(geometry.NewPoint2D(510, 500))
	if hit == nil || hit.ID != b.ID {
		t.Fatalf("hit = %v, want later tile %q", hit, b.ID)
	}

	s.RaiseTile(a.ID)
	hit = s.TileAt(geometry.NewPoint2D(510, 500))
	if hit == nil || hit.ID != a.ID {
		t.Errorf("hit after raise = %v, want %q", hit, a.ID)
	}

	if s.TileAt(geometry.NewPoint2D(1900, 1000)) != nil {
		t.Error("hit on empty canvas, want nil")
	}
}

func TestSetTileRectEmitsMoveOrResize(t *testing.T) {
	s := NewState("b1", DefaultConfig())
	tile, _ := s.CreateTileAt(geometry.NewPoint2D(500, 500))

	var moves, resizes int
	s.On(EventTileMoved, func(interface{}) { moves++ })
	s.On(EventTileResized, func(interface{}) { resizes++ })

	r := tile.Rect
	r.X += 50
	s.SetTileRect(tile.ID, r)

	r.Width += 20
	s.SetTileRect(tile.ID, r)

	if moves != 1 || resizes != 1 {
		t.Errorf("moves = %d resizes = %d, want 1 and 1", moves, resizes)
	}
}

func TestSelectionEvents(t *testing.T) {
	s := NewState("b1", DefaultConfig())
	tile, _ := s.CreateTileAt(geometry.NewPoint2D(500, 500))

	var changes []string
	s.On(EventSelectionChanged, func(data interface{}) {
		changes = append(changes, data.(string))
	})

	s.Select(tile.ID)
	s.Select(tile.ID) // no-op, no event
	s.Select("")

	if len(changes) != 2 || changes[0] != tile.ID || changes[1] != "" {
		t.Errorf("selection events = %v", changes)
	}
	if s.Selected() != "" {
		t.Errorf("selected = %q, want empty", s.Selected())
	}
}
