package sample

import (
	"image/color"
	"math"
	"testing"

	"image-inspector/pkg/geometry"
)

func TestRegionUniform(t *testing.T) {
	img := uniformImage(9, 9, color.RGBA{100, 150, 200, 255})

	st := Region(img, geometry.Point2D{X: 4, Y: 4}, 2)
	if st.Window.Width != 5 || st.Window.Height != 5 {
		t.Fatalf("window = %+v, want 5x5", st.Window)
	}
	if st.MeanR != 100 || st.MeanG != 150 || st.MeanB != 200 {
		t.Errorf("means = %v,%v,%v, want 100,150,200", st.MeanR, st.MeanG, st.MeanB)
	}
	if st.StdR != 0 || st.StdG != 0 || st.StdB != 0 {
		t.Errorf("stds = %v,%v,%v, want all 0", st.StdR, st.StdG, st.StdB)
	}
}

func TestRegionClipsAtCorner(t *testing.T) {
	img := uniformImage(9, 9, color.RGBA{50, 50, 50, 255})

	st := Region(img, geometry.Point2D{X: 0, Y: 0}, 2)
	want := geometry.RectInt{X: 0, Y: 0, Width: 3, Height: 3}
	if st.Window != want {
		t.Errorf("window = %+v, want %+v", st.Window, want)
	}
	if st.MeanR != 50 {
		t.Errorf("MeanR = %v, want 50", st.MeanR)
	}
}

func TestRegionMixedValues(t *testing.T) {
	// Two pixels with R values 0 and 255: mean 127.5, sample deviation
	// 127.5 * sqrt(2).
	img := uniformImage(2, 1, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})

	st := Region(img, geometry.Point2D{X: 0, Y: 0}, 1)
	if st.Window.Width != 2 || st.Window.Height != 1 {
		t.Fatalf("window = %+v, want 2x1", st.Window)
	}
	if math.Abs(st.MeanR-127.5) > 1e-9 {
		t.Errorf("MeanR = %v, want 127.5", st.MeanR)
	}
	if want := 127.5 * math.Sqrt2; math.Abs(st.StdR-want) > 1e-9 {
		t.Errorf("StdR = %v, want %v", st.StdR, want)
	}
}

func TestRegionOutsideImage(t *testing.T) {
	img := uniformImage(4, 4, color.RGBA{10, 10, 10, 255})

	st := Region(img, geometry.Point2D{X: 100, Y: 100}, 2)
	if !st.Window.Empty() {
		t.Errorf("window = %+v, want empty", st.Window)
	}
	if st.MeanR != 0 || st.StdR != 0 {
		t.Error("stats should be zero for an empty window")
	}
}
