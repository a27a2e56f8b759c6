package geometry

import (
	"math"
)

// Zoom limits for the canvas viewport. Requested values outside this range
// are clamped, never rejected.
const (
	MinZoom = 0.5
	MaxZoom = 2.0
)

// FitPadding is the margin in screen pixels left around content by
// FitToContent.
const FitPadding = 50.0

// Viewport describes how world space maps to screen space: a uniform zoom
// followed by a pan offset. The zero value is not valid; use DefaultViewport.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// DefaultViewport returns the identity viewport (zoom 1, no pan).
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1, PanX: 0, PanY: 0}
}

// ClampZoom clamps a zoom value into [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// WorldToScreen maps a world-space point to screen space.
func (v Viewport) WorldToScreen(p Point2D) Point2D {
	return Point2D{
		X: p.X*v.Zoom + v.PanX,
		Y: p.Y*v.Zoom + v.PanY,
	}
}

// ScreenToWorld maps a screen-space point back to world space. It is the
// exact inverse of WorldToScreen for any valid viewport.
func (v Viewport) ScreenToWorld(p Point2D) Point2D {
	return Point2D{
		X: (p.X - v.PanX) / v.Zoom,
		Y: (p.Y - v.PanY) / v.Zoom,
	}
}

// WorldRectToScreen maps a world-space rectangle to its on-screen position
// and size.
func (v Viewport) WorldRectToScreen(r Rect) Rect {
	tl := v.WorldToScreen(r.TopLeft())
	return Rect{
		X:      tl.X,
		Y:      tl.Y,
		Width:  r.Width * v.Zoom,
		Height: r.Height * v.Zoom,
	}
}

// Transform returns the viewport as an affine transform,
// translate(pan) composed with scale(zoom). This is the transform the UI
// layer applies to the tile container.
func (v Viewport) Transform() AffineTransform {
	return Translation(v.PanX, v.PanY).Compose(Scale(v.Zoom, v.Zoom))
}

// Pan shifts the viewport by a raw screen-space delta. The delta is not
// scaled by zoom; pointer deltas are already in screen space.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.PanX += dx
	v.PanY += dy
	return v
}

// ZoomAt multiplies the zoom by factor, clamped to [MinZoom, MaxZoom], while
// keeping the screen point (cx, cy) visually stationary. The pan is adjusted
// by the actual post-clamp factor, so a clamped zoom still anchors correctly.
func (v Viewport) ZoomAt(factor, cx, cy float64) Viewport {
	newZoom := ClampZoom(v.Zoom * factor)
	actual := newZoom / v.Zoom
	v.PanX = cx - (cx-v.PanX)*actual
	v.PanY = cy - (cy-v.PanY)*actual
	v.Zoom = newZoom
	return v
}

// FitToContent returns a viewport that shows all given rects inside a screen
// area of viewportW x viewportH with FitPadding around them, centered. With
// no rects it returns the default viewport.
func FitToContent(rects []Rect, viewportW, viewportH float64) Viewport {
	if len(rects) == 0 {
		return DefaultViewport()
	}

	bounds := BoundingRect(rects)
	contentW := bounds.Width + 2*FitPadding
	contentH := bounds.Height + 2*FitPadding
	if contentW <= 0 || contentH <= 0 {
		return DefaultViewport()
	}

	zoom := ClampZoom(math.Min(viewportW/contentW, viewportH/contentH))

	// Center the content bounding box in the viewport.
	center := bounds.Center()
	return Viewport{
		Zoom: zoom,
		PanX: viewportW/2 - center.X*zoom,
		PanY: viewportH/2 - center.Y*zoom,
	}
}
