// Package sample implements color sampling: grabbing single pixels from a
// decoded image, deriving display values for them, and keeping a bounded
// history of recent grabs.
package sample

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"image-inspector/pkg/geometry"
)

// Sample is a single color grabbed from the image.
type Sample struct {
	ID    uuid.UUID `json:"id"`
	X     int       `json:"x"`
	Y     int       `json:"y"`
	R     uint8     `json:"r"`
	G     uint8     `json:"g"`
	B     uint8     `json:"b"`
	Hex   string    `json:"hex"`
	H     float64   `json:"h"`
	S     float64   `json:"s"`
	L     float64   `json:"l"`
	Name  string    `json:"name"`
	Taken time.Time `json:"taken"`
}

// Grab reads the pixel nearest to pt and returns a fully populated Sample.
// pt is in natural image coordinates relative to the top-left corner; it is
// rounded to the nearest pixel and clamped to the image bounds.
func Grab(img image.Image, pt geometry.Point2D) Sample {
	b := img.Bounds()
	p := pt.Round()
	x := clampInt(p.X, 0, b.Dx()-1)
	y := clampInt(p.Y, 0, b.Dy()-1)

	r16, g16, b16, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	r := uint8(r16 >> 8)
	g := uint8(g16 >> 8)
	bl := uint8(b16 >> 8)

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(bl) / 255}
	h, s, l := c.Hsl()

	return Sample{
		ID:    uuid.New(),
		X:     x,
		Y:     y,
		R:     r,
		G:     g,
		B:     bl,
		Hex:   fmt.Sprintf("#%02X%02X%02X", r, g, bl),
		H:     h,
		S:     s,
		L:     l,
		Name:  nearestName(c),
		Taken: time.Now(),
	}
}

// Point returns the sampled pixel location as a point.
func (s Sample) Point() geometry.Point2D {
	return geometry.Point2D{X: float64(s.X), Y: float64(s.Y)}
}

// RGBString formats the sample channels as "R, G, B" decimal values.
func (s Sample) RGBString() string {
	return fmt.Sprintf("%d, %d, %d", s.R, s.G, s.B)
}

// HSLString formats hue in degrees and saturation/lightness as percentages.
func (s Sample) HSLString() string {
	return fmt.Sprintf("%.0f°, %.0f%%, %.0f%%", s.H, s.S*100, s.L*100)
}

// nearestName returns the name of the closest CSS color by perceptual
// distance in Lab space. Iteration follows the sorted name list so ties
// resolve deterministically.
func nearestName(c colorful.Color) string {
	best := ""
	bestDist := math.MaxFloat64
	for _, name := range colornames.Names {
		v := colornames.Map[name]
		cand := colorful.Color{R: float64(v.R) / 255, G: float64(v.G) / 255, B: float64(v.B) / 255}
		if d := c.DistanceLab(cand); d < bestDist {
			bestDist = d
			best = name
		}
	}
	return best
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
