package describe

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"image-inspector/pkg/geometry"
)

func decodePatch(t *testing.T, uri string) (int, int) {
	t.Helper()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("patch is not a PNG data URI: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestBuildPatchSmallImage(t *testing.T) {
	uri, err := BuildPatch(testImage(64, 48), geometry.Point2D{X: 30, Y: 20})
	if err != nil {
		t.Fatalf("BuildPatch: %v", err)
	}
	w, h := decodePatch(t, uri)
	if w != 64 || h != 48 {
		t.Errorf("patch = %dx%d, want the whole 64x48 image", w, h)
	}
}

func TestBuildPatchDownscalesLargeCrop(t *testing.T) {
	uri, err := BuildPatch(testImage(600, 400), geometry.Point2D{X: 300, Y: 200})
	if err != nil {
		t.Fatalf("BuildPatch: %v", err)
	}
	w, h := decodePatch(t, uri)
	if w != 128 || h != 128 {
		t.Errorf("patch = %dx%d, want 128x128", w, h)
	}
}

func TestBuildPatchAtCorner(t *testing.T) {
	uri, err := BuildPatch(testImage(600, 400), geometry.Point2D{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("BuildPatch: %v", err)
	}
	w, h := decodePatch(t, uri)
	if w != 128 || h != 128 {
		t.Errorf("patch = %dx%d, want the clipped 128x128 corner", w, h)
	}
}
