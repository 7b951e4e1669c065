package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want float64
	}{
		{"same point", Point2D{X: 5, Y: 5}, Point2D{X: 5, Y: 5}, 0},
		{"3-4-5 triangle", Point2D{X: 0, Y: 0}, Point2D{X: 3, Y: 4}, 5},
		{"horizontal", Point2D{X: 1, Y: 2}, Point2D{X: 11, Y: 2}, 10},
		{"negative coords", Point2D{X: -3, Y: -4}, Point2D{X: 0, Y: 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Distance(tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := []struct {
		a, b Point2D
	}{
		{Point2D{X: 0, Y: 0}, Point2D{X: 3, Y: 4}},
		{Point2D{X: 10, Y: 10}, Point2D{X: 13, Y: 14}},
		{Point2D{X: -7.5, Y: 2.25}, Point2D{X: 100.1, Y: -40}},
	}

	for _, p := range pairs {
		ab := p.a.Distance(p.b)
		ba := p.b.Distance(p.a)
		if ab != ba {
			t.Errorf("distance not symmetric: %v vs %v for %v, %v", ab, ba, p.a, p.b)
		}
	}
}

func TestMidpoint(t *testing.T) {
	mid := Point2D{X: 10, Y: 10}.Midpoint(Point2D{X: 20, Y: 30})
	if mid.X != 15 || mid.Y != 20 {
		t.Errorf("Midpoint() = %v, want (15, 20)", mid)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   Point2D
		want PointInt
	}{
		{Point2D{X: 1.4, Y: 1.5}, PointInt{X: 1, Y: 2}},
		{Point2D{X: 99.9, Y: 0.1}, PointInt{X: 100, Y: 0}},
		{Point2D{X: 0, Y: 0}, PointInt{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		if got := tt.in.Round(); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectIntClip(t *testing.T) {
	bounds := RectInt{X: 0, Y: 0, Width: 100, Height: 50}

	tests := []struct {
		name string
		r    RectInt
		want RectInt
	}{
		{"inside", RectInt{X: 10, Y: 10, Width: 20, Height: 20}, RectInt{X: 10, Y: 10, Width: 20, Height: 20}},
		{"overlapping left edge", RectInt{X: -10, Y: 5, Width: 30, Height: 10}, RectInt{X: 0, Y: 5, Width: 20, Height: 10}},
		{"overlapping bottom right", RectInt{X: 90, Y: 40, Width: 30, Height: 30}, RectInt{X: 90, Y: 40, Width: 10, Height: 10}},
		{"fully outside", RectInt{X: 200, Y: 200, Width: 10, Height: 10}, RectInt{X: 200, Y: 200, Width: 0, Height: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Clip(bounds)
			if got != tt.want {
				t.Errorf("Clip() = %+v, want %+v", got, tt.want)
			}
			if tt.name == "fully outside" && !got.Empty() {
				t.Error("clip of disjoint rectangles should be empty")
			}
		})
	}
}
