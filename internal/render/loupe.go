package render

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"github.com/fogleman/gg"

	"image-inspector/pkg/colorutil"
	"image-inspector/pkg/geometry"
)

const (
	loupeRadius = 7
	loupeScale  = 8
)

// LoupeSize is the square side length of a generated loupe image.
const LoupeSize = (2*loupeRadius + 1) * loupeScale

// Loupe returns a magnified nearest-neighbor view of the pixels around pt,
// with the focus pixel outlined at the center. Neighborhood cells outside
// the image show the canvas background color.
func Loupe(src image.Image, pt geometry.Point2D) *image.RGBA {
	side := 2*loupeRadius + 1
	tile := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(tile, tile.Bounds(), &image.Uniform{colorutil.Background}, image.Point{}, draw.Src)

	b := src.Bounds()
	p := pt.Round()
	for dy := -loupeRadius; dy <= loupeRadius; dy++ {
		for dx := -loupeRadius; dx <= loupeRadius; dx++ {
			x, y := p.X+dx, p.Y+dy
			if x < 0 || x >= b.Dx() || y < 0 || y >= b.Dy() {
				continue
			}
			tile.Set(dx+loupeRadius, dy+loupeRadius, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}

	out := transform.Resize(tile, LoupeSize, LoupeSize, transform.NearestNeighbor)

	// Outline the focus cell.
	dc := gg.NewContextForRGBA(out)
	cell := float64(loupeRadius * loupeScale)
	dc.SetLineWidth(2)
	dc.SetColor(colorutil.White)
	dc.DrawRectangle(cell, cell, loupeScale, loupeScale)
	dc.Stroke()
	dc.SetLineWidth(1)
	dc.SetColor(colorutil.Black)
	dc.DrawRectangle(cell, cell, loupeScale, loupeScale)
	dc.Stroke()

	return out
}
