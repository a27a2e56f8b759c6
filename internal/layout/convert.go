// Package layout converts boards between fixed-grid and freeform
// positioning. Both directions are deterministic: the same input always
// produces the same output, and the freeform-to-grid ordering doubles as the
// accessibility scan order.
package layout

import (
	"math"
	"sort"

	"tileboard/internal/board"
	"tileboard/pkg/geometry"
)

// DefaultRowTolerance buckets y-positions into rows when recovering grid
// order from a freeform layout.
const DefaultRowTolerance = 50.0

// GridToFreeform assigns freeform rectangles to tiles laid out in a fixed
// grid. The grid is near-square: cols = ceil(sqrt(layoutCount)), rows =
// ceil(layoutCount/cols). Each tile is centered in its cell at tileSize, and
// z-index follows the original grid index order.
func GridToFreeform(tiles []*board.Tile, layoutCount int, canvas geometry.Size, tileSize float64) {
	if len(tiles) == 0 {
		return
	}
	if layoutCount < len(tiles) {
		layoutCount = len(tiles)
	}

	cols := int(math.Ceil(math.Sqrt(float64(layoutCount))))
	rows := int(math.Ceil(float64(layoutCount) / float64(cols)))

	cellW := canvas.Width / float64(cols)
	cellH := canvas.Height / float64(rows)

	// Tiles larger than a cell still center on it; the caller's constraints
	// take care of canvas bounds.
	w := math.Min(tileSize, cellW)
	h := math.Min(tileSize, cellH)

	for i, t := range tiles {
		col := i % cols
		row := i / cols
		t.Rect = geometry.Rect{
			X:      float64(col)*cellW + (cellW-w)/2,
			Y:      float64(row)*cellH + (cellH-h)/2,
			Width:  w,
			Height: h,
		}
		t.ZIndex = i
		t.GridIndex = i
	}
}

// FreeformToGrid derives sequential grid indices from freeform positions.
// Positioned tiles sort by row bucket (floor(y/rowTolerance)) then by x;
// tiles without a position are appended afterwards in their original order.
// Returns the tiles in the resulting scan order; GridIndex is rewritten on
// each tile.
func FreeformToGrid(tiles []*board.Tile, rowTolerance float64) []*board.Tile {
	if rowTolerance <= 0 {
		rowTolerance = DefaultRowTolerance
	}

	positioned := make([]*board.Tile, 0, len(tiles))
	unpositioned := make([]*board.Tile, 0)
	for _, t := range tiles {
		if t.HasPosition() {
			positioned = append(positioned, t)
		} else {
			unpositioned = append(unpositioned, t)
		}
	}

	sort.SliceStable(positioned, func(i, j int) bool {
		ri := rowBucket(positioned[i].Rect.Y, rowTolerance)
		rj := rowBucket(positioned[j].Rect.Y, rowTolerance)
		if ri != rj {
			return ri < rj
		}
		return positioned[i].Rect.X < positioned[j].Rect.X
	})

	ordered := append(positioned, unpositioned...)
	for i, t := range ordered {
		t.GridIndex = i
	}
	return ordered
}

func rowBucket(y, tolerance float64) int {
	return int(math.Floor(y / tolerance))
}
