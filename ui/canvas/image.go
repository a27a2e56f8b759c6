package canvas

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"tileboard/pkg/geometry"
)

// symbolCache holds decoded source images keyed by path so pan/zoom frames
// only pay for rescaling, not decoding.
var symbolCache = map[string]image.Image{}

// scaledSymbol loads a tile's symbol image and scales it to the tile's
// on-screen size. Returns nil when the image cannot be loaded; the tile
// renders as label-only.
func scaledSymbol(path string, screen geometry.Rect, zoom float64) image.Image {
	src, ok := symbolCache[path]
	if !ok {
		f, err := os.Open(path)
		if err != nil {
			symbolCache[path] = nil
			return nil
		}
		src, _, err = image.Decode(f)
		f.Close()
		if err != nil {
			src = nil
		}
		symbolCache[path] = src
	}
	if src == nil {
		return nil
	}

	w := int(screen.Width)
	h := int(screen.Height)
	if w <= 0 || h <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
