package geometry

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func TestWorldScreenRoundTrip(t *testing.T) {
	viewports := []Viewport{
		DefaultViewport(),
		{Zoom: 2.0, PanX: 150, PanY: -75},
		{Zoom: 0.5, PanX: -300.5, PanY: 42.25},
		{Zoom: 1.37, PanX: 9999, PanY: -9999},
	}
	points := []Point2D{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: -512.5, Y: 1080},
		{X: 0.001, Y: 1919.999},
	}

	for _, v := range viewports {
		for _, p := range points {
			got := v.ScreenToWorld(v.WorldToScreen(p))
			if !scalar.EqualWithinAbs(got.X, p.X, tol) || !scalar.EqualWithinAbs(got.Y, p.Y, tol) {
				t.Errorf("round trip %+v through %+v = %+v, want original", p, v, got)
			}
		}
	}
}

func TestWorldToScreenMatchesTransform(t *testing.T) {
	v := Viewport{Zoom: 1.5, PanX: 20, PanY: -10}
	p := Point2D{X: 33, Y: 77}

	direct := v.WorldToScreen(p)
	viaTransform := v.Transform().Apply(p)

	if !scalar.EqualWithinAbs(direct.X, viaTransform.X, tol) ||
		!scalar.EqualWithinAbs(direct.Y, viaTransform.Y, tol) {
		t.Errorf("WorldToScreen = %+v, Transform().Apply = %+v", direct, viaTransform)
	}
}

func TestZoomAtClamps(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		factor float64
		want   float64
	}{
		{"huge factor clamps to max", 1.0, 10.0, MaxZoom},
		{"tiny factor clamps to min", 1.0, 0.01, MinZoom},
		{"in range", 1.0, 1.5, 1.5},
		{"already at max", MaxZoom, 3.0, MaxZoom},
	}

	for _, tt := range tests {
		v := Viewport{Zoom: tt.start}
		got := v.ZoomAt(tt.factor, 100, 100)
		if !scalar.EqualWithinAbs(got.Zoom, tt.want, tol) {
			t.Errorf("%s: zoom = %v, want %v", tt.name, got.Zoom, tt.want)
		}
	}
}

func TestZoomAtKeepsAnchorStationary(t *testing.T) {
	v := Viewport{Zoom: 1.0, PanX: 50, PanY: 30}
	cx, cy := 400.0, 300.0

	// The world point under the cursor must map back to the cursor after
	// zooming.
	anchor := v.ScreenToWorld(Point2D{X: cx, Y: cy})
	zoomed := v.ZoomAt(1.6, cx, cy)
	after := zoomed.WorldToScreen(anchor)

	if !scalar.EqualWithinAbs(after.X, cx, tol) || !scalar.EqualWithinAbs(after.Y, cy, tol) {
		t.Errorf("anchor moved to (%v, %v), want (%v, %v)", after.X, after.Y, cx, cy)
	}
}

func TestZoomAtClampedStillAnchors(t *testing.T) {
	v := Viewport{Zoom: 1.8, PanX: 0, PanY: 0}
	cx, cy := 200.0, 200.0

	anchor := v.ScreenToWorld(Point2D{X: cx, Y: cy})
	zoomed := v.ZoomAt(5.0, cx, cy) // clamps to 2.0, actual factor 2.0/1.8
	after := zoomed.WorldToScreen(anchor)

	if zoomed.Zoom != MaxZoom {
		t.Fatalf("zoom = %v, want %v", zoomed.Zoom, MaxZoom)
	}
	if !scalar.EqualWithinAbs(after.X, cx, tol) || !scalar.EqualWithinAbs(after.Y, cy, tol) {
		t.Errorf("anchor moved to (%v, %v) under clamped zoom", after.X, after.Y)
	}
}

func TestPanIsRawScreenDelta(t *testing.T) {
	v := Viewport{Zoom: 2.0, PanX: 10, PanY: 20}
	got := v.Pan(100, -50)

	if got.PanX != 110 || got.PanY != -30 {
		t.Errorf("pan = (%v, %v), want (110, -30)", got.PanX, got.PanY)
	}
	if got.Zoom != 2.0 {
		t.Errorf("pan changed zoom to %v", got.Zoom)
	}
}

func TestFitToContentEmpty(t *testing.T) {
	got := FitToContent(nil, 800, 600)
	want := DefaultViewport()
	if got != want {
		t.Errorf("FitToContent(nil) = %+v, want %+v", got, want)
	}
}

func TestFitToContentClampsZoom(t *testing.T) {
	// A tiny rect in a huge viewport would want an enormous zoom; it must
	// clamp to MaxZoom.
	got := FitToContent([]Rect{{X: 0, Y: 0, Width: 10, Height: 10}}, 10000, 10000)
	if got.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want %v", got.Zoom, MaxZoom)
	}
}

func TestFitToContentCenters(t *testing.T) {
	rects := []Rect{
		{X: 100, Y: 100, Width: 200, Height: 100},
		{X: 500, Y: 300, Width: 100, Height: 200},
	}
	vw, vh := 800.0, 600.0
	v := FitToContent(rects, vw, vh)

	center := BoundingRect(rects).Center()
	onScreen := v.WorldToScreen(center)
	if !scalar.EqualWithinAbs(onScreen.X, vw/2, tol) || !scalar.EqualWithinAbs(onScreen.Y, vh/2, tol) {
		t.Errorf("content center maps to (%v, %v), want viewport center (%v, %v)",
			onScreen.X, onScreen.Y, vw/2, vh/2)
	}
}

func TestFitToContentZoomsOutForLargeContent(t *testing.T) {
	rects := []Rect{{X: 0, Y: 0, Width: 1920, Height: 1080}}
	v := FitToContent(rects, 800, 600)

	if v.Zoom != MinZoom {
		// 800/2020 ≈ 0.396, below the floor.
		t.Errorf("zoom = %v, want clamped to %v", v.Zoom, MinZoom)
	}
}
