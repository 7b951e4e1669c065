// Package colorutil provides shared color utilities for the image inspector.
package colorutil

import (
	"image/color"
)

// Overlay colors used by the render pipeline and panels.
var (
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Measure    = color.RGBA{R: 255, G: 128, B: 0, A: 255} // Orange measurement chrome
	LabelBack  = color.RGBA{R: 32, G: 32, B: 32, A: 208}  // Translucent label backing
	Background = color.RGBA{R: 48, G: 48, B: 48, A: 255}  // Letterbox fill behind the bitmap
)
