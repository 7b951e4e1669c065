package inspect

import (
	"math"
	"testing"

	"image-inspector/pkg/geometry"
)

func TestToImageCorners(t *testing.T) {
	tests := []struct {
		name               string
		naturalW, naturalH int
		displayW, displayH float64
	}{
		{"downscaled", 800, 600, 400, 300},
		{"upscaled", 320, 240, 640, 480},
		{"non-uniform", 100, 200, 300, 300},
		{"tiny image", 1, 1, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMapper(tt.naturalW, tt.naturalH, tt.displayW, tt.displayH)

			topLeft, ok := m.ToImage(geometry.Point2D{X: 0, Y: 0})
			if !ok {
				t.Fatal("ToImage returned !ok with an image loaded")
			}
			if topLeft.X != 0 || topLeft.Y != 0 {
				t.Errorf("top-left mapped to %v, want (0,0)", topLeft)
			}

			bottomRight, ok := m.ToImage(geometry.Point2D{X: tt.displayW, Y: tt.displayH})
			if !ok {
				t.Fatal("ToImage returned !ok with an image loaded")
			}
			wantX := float64(tt.naturalW - 1)
			wantY := float64(tt.naturalH - 1)
			if bottomRight.X != wantX || bottomRight.Y != wantY {
				t.Errorf("bottom-right mapped to %v, want (%v,%v)", bottomRight, wantX, wantY)
			}
		})
	}
}

func TestToImageScalesAxesIndependently(t *testing.T) {
	// 100x200 image shown in a square 300x300 canvas: the factors differ.
	m := NewMapper(100, 200, 300, 300)

	pt, ok := m.ToImage(geometry.Point2D{X: 150, Y: 150})
	if !ok {
		t.Fatal("ToImage returned !ok")
	}
	if pt.X != 50 || pt.Y != 100 {
		t.Errorf("mapped to %v, want (50,100)", pt)
	}
}

func TestToImageClampsOutOfRange(t *testing.T) {
	m := NewMapper(800, 600, 800, 600)

	tests := []struct {
		name string
		in   geometry.Point2D
		want geometry.Point2D
	}{
		{"negative both", geometry.Point2D{X: -50, Y: -10}, geometry.Point2D{X: 0, Y: 0}},
		{"past right edge", geometry.Point2D{X: 5000, Y: 10}, geometry.Point2D{X: 799, Y: 10}},
		{"past bottom edge", geometry.Point2D{X: 10, Y: 5000}, geometry.Point2D{X: 10, Y: 599}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.ToImage(tt.in)
			if !ok {
				t.Fatal("ToImage returned !ok")
			}
			if got != tt.want {
				t.Errorf("ToImage(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToImageNoImage(t *testing.T) {
	tests := []struct {
		name string
		m    Mapper
	}{
		{"no image", NewMapper(0, 0, 400, 300)},
		{"no layout yet", NewMapper(800, 600, 0, 0)},
		{"zero width only", NewMapper(800, 600, 0, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.m.ToImage(geometry.Point2D{X: 10, Y: 10}); ok {
				t.Error("expected !ok for unavailable geometry")
			}
		})
	}
}

func TestToDisplayRoundTrip(t *testing.T) {
	m := NewMapper(800, 600, 400, 300)

	orig := geometry.Point2D{X: 100, Y: 50}
	disp := m.ToDisplay(orig)
	back, ok := m.ToImage(disp)
	if !ok {
		t.Fatal("ToImage returned !ok")
	}
	if math.Abs(back.X-orig.X) > 1e-9 || math.Abs(back.Y-orig.Y) > 1e-9 {
		t.Errorf("round trip %v -> %v -> %v", orig, disp, back)
	}
}
