package sample

import (
	"image"

	"gonum.org/v1/gonum/stat"

	"image-inspector/pkg/geometry"
)

// Stats summarizes the per-channel distribution of a square neighborhood
// around a sampled pixel.
type Stats struct {
	Window geometry.RectInt
	MeanR  float64
	MeanG  float64
	MeanB  float64
	StdR   float64
	StdG   float64
	StdB   float64
}

// Region computes channel statistics for the square of side 2*radius+1
// centered on pt, clipped to the image bounds. A window that falls entirely
// outside the image yields zeroed stats with an empty Window.
func Region(img image.Image, pt geometry.Point2D, radius int) Stats {
	b := img.Bounds()
	p := pt.Round()
	win := geometry.RectInt{
		X:      p.X - radius,
		Y:      p.Y - radius,
		Width:  2*radius + 1,
		Height: 2*radius + 1,
	}
	win = win.Clip(geometry.RectInt{Width: b.Dx(), Height: b.Dy()})

	st := Stats{Window: win}
	if win.Empty() {
		return st
	}

	n := win.Width * win.Height
	rs := make([]float64, 0, n)
	gs := make([]float64, 0, n)
	bs := make([]float64, 0, n)
	for y := win.Y; y < win.Y+win.Height; y++ {
		for x := win.X; x < win.X+win.Width; x++ {
			r16, g16, b16, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			rs = append(rs, float64(r16>>8))
			gs = append(gs, float64(g16>>8))
			bs = append(bs, float64(b16>>8))
		}
	}

	st.MeanR, st.StdR = meanStd(rs)
	st.MeanG, st.StdG = meanStd(gs)
	st.MeanB, st.StdB = meanStd(bs)
	return st
}

// meanStd wraps stat.MeanStdDev, reporting zero deviation for windows too
// small to estimate one.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		if len(xs) == 1 {
			return xs[0], 0
		}
		return 0, 0
	}
	return stat.MeanStdDev(xs, nil)
}
