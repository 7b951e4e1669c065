// Package inspect provides the interaction core of the inspector: the
// display-to-image coordinate mapper and the session snapshot with its
// per-event transitions. It has no rendering or widget dependencies so the
// whole package is testable headlessly.
package inspect

import (
	"image-inspector/pkg/geometry"
)

// Mapper converts pointer positions between displayed canvas space and the
// image's natural pixel space. The horizontal and vertical factors are
// computed independently; under uniform zoom they are equal, but the mapper
// does not assume it. Mappers are built per event from current geometry and
// never cached across zoom or resize.
type Mapper struct {
	NaturalW int     // image width in pixels
	NaturalH int     // image height in pixels
	DisplayW float64 // rendered canvas width in display units
	DisplayH float64 // rendered canvas height in display units
}

// NewMapper creates a mapper for the given natural and displayed sizes.
func NewMapper(naturalW, naturalH int, displayW, displayH float64) Mapper {
	return Mapper{
		NaturalW: naturalW,
		NaturalH: naturalH,
		DisplayW: displayW,
		DisplayH: displayH,
	}
}

// ToImage maps a display position to natural pixel coordinates, clamping
// each axis to [0, dimension-1] so every result addresses a real pixel.
// ok is false when no image is loaded or the canvas has no geometry yet;
// callers must treat that as "ignore the event".
func (m Mapper) ToImage(pos geometry.Point2D) (geometry.Point2D, bool) {
	if m.NaturalW <= 0 || m.NaturalH <= 0 || m.DisplayW <= 0 || m.DisplayH <= 0 {
		return geometry.Point2D{}, false
	}

	x := pos.X * float64(m.NaturalW) / m.DisplayW
	y := pos.Y * float64(m.NaturalH) / m.DisplayH

	return geometry.Point2D{
		X: clamp(x, 0, float64(m.NaturalW-1)),
		Y: clamp(y, 0, float64(m.NaturalH-1)),
	}, true
}

// ToDisplay maps natural pixel coordinates to display space. Overlay
// geometry is stored in natural coordinates and projected through this for
// drawing; no clamping is applied.
func (m Mapper) ToDisplay(pt geometry.Point2D) geometry.Point2D {
	if m.NaturalW <= 0 || m.NaturalH <= 0 {
		return pt
	}
	return geometry.Point2D{
		X: pt.X * m.DisplayW / float64(m.NaturalW),
		Y: pt.Y * m.DisplayH / float64(m.NaturalH),
	}
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
