package image

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 7), uint8(y * 11), 99, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.png")
	writeTestPNG(t, path, 17, 23)

	bmp, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bmp.Width != 17 || bmp.Height != 23 {
		t.Errorf("size = %dx%d, want 17x23", bmp.Width, bmp.Height)
	}
	if bmp.Format != "png" {
		t.Errorf("Format = %q, want png", bmp.Format)
	}
	if bmp.Path != path {
		t.Errorf("Path = %q", bmp.Path)
	}
	if bmp.DPI != 0 {
		t.Errorf("DPI = %v for a PNG, want 0", bmp.DPI)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readme.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestLoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("definitely not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestIsSupportedFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.png", true},
		{"scan.TIFF", true},
		{"shot.webp", true},
		{"paper.bmp", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
	}
	for _, tt := range tests {
		if got := IsSupportedFormat(tt.path); got != tt.want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWidthInchesUnknownDPI(t *testing.T) {
	b := &Bitmap{Width: 300, Height: 150}
	if b.WidthInches() != 0 || b.HeightInches() != 0 {
		t.Error("physical size should be 0 when DPI is unknown")
	}

	b.DPI = 300
	if b.WidthInches() != 1 {
		t.Errorf("WidthInches = %v, want 1", b.WidthInches())
	}
	if b.HeightInches() != 0.5 {
		t.Errorf("HeightInches = %v, want 0.5", b.HeightInches())
	}
}
