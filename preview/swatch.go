package preview

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

var _ = fmt.Print

// Size and corner radius of the preview square, in pixels
const (
	SwatchSize   = 150
	SwatchRadius = 12
)

// Control point distance for approximating a quarter circle with a cubic
const kappa = 0.5522847498

func rounded_rect(z *vector.Rasterizer, w, h, r float32) {
	r = max(0, min(r, w/2, h/2))
	k := r * (1 - kappa)
	z.MoveTo(r, 0)
	z.LineTo(w-r, 0)
	z.CubeTo(w-k, 0, w, k, w, r)
	z.LineTo(w, h-r)
	z.CubeTo(w, h-k, w-k, h, w-r, h)
	z.LineTo(r, h)
	z.CubeTo(k, h, 0, h-k, 0, h-r)
	z.LineTo(0, r)
	z.CubeTo(0, k, k, 0, r, 0)
	z.ClosePath()
}

// Swatch renders a size x size square of color c with corners rounded to
// radius. Pixels outside the rounded corners are transparent.
func Swatch(c color.Color, size, radius int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if size <= 0 {
		return dst
	}
	z := vector.NewRasterizer(size, size)
	rounded_rect(z, float32(size), float32(size), float32(radius))
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}
