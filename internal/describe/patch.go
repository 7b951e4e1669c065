package describe

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"image-inspector/pkg/geometry"
)

const (
	// patchRadius is the half-side of the context window cropped around
	// the sampled pixel.
	patchRadius = 128

	// patchMaxSide is the longest side sent to the vision service.
	patchMaxSide = 128
)

// BuildPatch crops the neighborhood around pt, downscales it for transport,
// and returns it as a base64 PNG data URI.
func BuildPatch(img image.Image, pt geometry.Point2D) (string, error) {
	b := img.Bounds()
	p := pt.Round()
	rect := image.Rect(p.X-patchRadius, p.Y-patchRadius, p.X+patchRadius, p.Y+patchRadius).
		Add(b.Min).
		Intersect(b)
	if rect.Empty() {
		return "", fmt.Errorf("patch region around (%d,%d) is outside the image", p.X, p.Y)
	}

	patch := imaging.Crop(img, rect)
	if patch.Bounds().Dx() > patchMaxSide || patch.Bounds().Dy() > patchMaxSide {
		patch = imaging.Fit(patch, patchMaxSide, patchMaxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, patch); err != nil {
		return "", fmt.Errorf("encoding patch: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
