package render

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/imgio"

	"image-inspector/internal/inspect"
)

// WriteAnnotated renders src with the current overlays at natural resolution
// and writes the result to path as PNG.
func WriteAnnotated(path string, src image.Image, snap inspect.Snapshot) error {
	if src == nil {
		return errors.New("no image to export")
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	Frame(dst, src, 1.0, snap)
	return imgio.Save(path, dst, imgio.PNGEncoder())
}
