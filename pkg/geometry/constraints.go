package geometry

// Tile size limits in world units.
const (
	MinTileSize = 44.0
	MaxTileSize = 500.0
)

// Default virtual canvas dimensions.
const (
	DefaultCanvasWidth  = 1920.0
	DefaultCanvasHeight = 1080.0
)

// Constraints clamps candidate tile rectangles to size and canvas-bound
// limits. Out-of-range values are always clamped, never rejected.
type Constraints struct {
	MinSize float64
	MaxSize float64
	Canvas  Size
}

// DefaultConstraints returns constraints for the given canvas size, or the
// default 1920x1080 canvas when width or height is zero.
func DefaultConstraints(canvas Size) Constraints {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = Size{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
	}
	return Constraints{
		MinSize: MinTileSize,
		MaxSize: MaxTileSize,
		Canvas:  canvas,
	}
}

// ClampRect clamps a candidate rectangle. Size is clamped before position:
// width/height go into [MinSize, MaxSize] first, then x/y are clamped so the
// rect lies inside the canvas. Because MaxSize never exceeds the canvas
// dimensions, the clamped rect always fits entirely.
func (c Constraints) ClampRect(r Rect) Rect {
	r.Width = clamp(r.Width, c.MinSize, c.MaxSize)
	r.Height = clamp(r.Height, c.MinSize, c.MaxSize)
	r.X = clamp(r.X, 0, c.Canvas.Width-r.Width)
	r.Y = clamp(r.Y, 0, c.Canvas.Height-r.Height)
	return r
}

// ClampPoint clamps a world point into the canvas.
func (c Constraints) ClampPoint(p Point2D) Point2D {
	p.X = clamp(p.X, 0, c.Canvas.Width)
	p.Y = clamp(p.Y, 0, c.Canvas.Height)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
