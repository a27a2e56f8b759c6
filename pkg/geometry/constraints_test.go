package geometry

import (
	"testing"
)

func TestClampRect(t *testing.T) {
	c := DefaultConstraints(Size{Width: 1920, Height: 1080})

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{
			"in range untouched",
			Rect{X: 100, Y: 100, Width: 120, Height: 120},
			Rect{X: 100, Y: 100, Width: 120, Height: 120},
		},
		{
			"too small grows to min",
			Rect{X: 10, Y: 10, Width: 5, Height: 20},
			Rect{X: 10, Y: 10, Width: MinTileSize, Height: MinTileSize},
		},
		{
			"too large shrinks to max",
			Rect{X: 0, Y: 0, Width: 5000, Height: 600},
			Rect{X: 0, Y: 0, Width: MaxTileSize, Height: MaxTileSize},
		},
		{
			"negative origin clamps to zero",
			Rect{X: -50, Y: -10, Width: 100, Height: 100},
			Rect{X: 0, Y: 0, Width: 100, Height: 100},
		},
		{
			"pushed back inside right/bottom edge",
			Rect{X: 1900, Y: 1070, Width: 100, Height: 100},
			Rect{X: 1820, Y: 980, Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		if got := c.ClampRect(tt.in); got != tt.want {
			t.Errorf("%s: ClampRect(%+v) = %+v, want %+v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestClampRectSizeBeforeBounds(t *testing.T) {
	// An oversized rect near the edge: size is clamped first, then the
	// position, so the result always fits inside the canvas.
	c := DefaultConstraints(Size{Width: 1920, Height: 1080})
	got := c.ClampRect(Rect{X: 1800, Y: 900, Width: 900, Height: 900})

	if got.Width != MaxTileSize || got.Height != MaxTileSize {
		t.Fatalf("size = %vx%v, want %vx%v", got.Width, got.Height, MaxTileSize, MaxTileSize)
	}
	if got.X+got.Width > c.Canvas.Width || got.Y+got.Height > c.Canvas.Height {
		t.Errorf("rect %+v protrudes past canvas %+v", got, c.Canvas)
	}
}

func TestDefaultConstraintsFallback(t *testing.T) {
	c := DefaultConstraints(Size{})
	if c.Canvas.Width != DefaultCanvasWidth || c.Canvas.Height != DefaultCanvasHeight {
		t.Errorf("canvas = %+v, want default %vx%v", c.Canvas, DefaultCanvasWidth, DefaultCanvasHeight)
	}
}
