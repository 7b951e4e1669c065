// Package render composes inspector frames: the zoomed bitmap plus the
// measurement and color-pick overlays for the current interaction snapshot.
// Frames are drawn at display resolution, so overlay strokes and labels keep
// a constant apparent size at every zoom level.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"image-inspector/internal/inspect"
	"image-inspector/pkg/colorutil"
	"image-inspector/pkg/geometry"
)

// Overlay chrome sizes in display pixels.
const (
	measureStrokeWidth = 2.0
	endpointRadius     = 4.5
	labelFontSize      = 13.0
	labelPadding       = 4.0
	ringRadius         = 9.0
	ringOuterWidth     = 5.0
	ringInnerWidth     = 2.0
	crosshairGap       = 3.0
	crosshairLen       = 8.0
)

// Frame repaints dst from scratch: background fill, the bitmap scaled by
// zoom with nearest-neighbor sampling, then the overlays for snap. Repeated
// calls with unchanged inputs produce bit-identical output. A nil src paints
// the background only.
func Frame(dst *image.RGBA, src image.Image, zoom float64, snap inspect.Snapshot) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{colorutil.Background}, image.Point{}, draw.Src)
	if src == nil || zoom <= 0 {
		return
	}

	sb := src.Bounds()
	dw := int(math.Round(float64(sb.Dx()) * zoom))
	dh := int(math.Round(float64(sb.Dy()) * zoom))
	if dw < 1 || dh < 1 {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, image.Rect(0, 0, dw, dh), src, sb, xdraw.Over, nil)

	drawOverlays(dst, zoom, snap)
}

func drawOverlays(dst *image.RGBA, zoom float64, snap inspect.Snapshot) {
	hasMeasure := snap.Tool == inspect.ToolMeasure &&
		(snap.Measure != nil || snap.Phase == inspect.PhaseAwaitingSecond)
	hasPick := snap.Tool == inspect.ToolPick && snap.HasPick
	if !hasMeasure && !hasPick {
		return
	}

	dc := gg.NewContextForRGBA(dst)
	dc.SetFontFace(labelFace)

	if hasMeasure {
		drawMeasure(dc, zoom, snap)
	}
	if hasPick {
		drawPickMarker(dc, snap.Pick.Scale(zoom))
	}
}

// drawMeasure renders the segment overlay. A completed measurement uses its
// stored endpoints; an in-progress one rubber-bands from the pending start
// to the hover position. Distances are computed in natural pixels.
func drawMeasure(dc *gg.Context, zoom float64, snap inspect.Snapshot) {
	var start, second geometry.Point2D
	var haveSecond bool
	var dist float64

	if m := snap.Measure; m != nil {
		start, second, haveSecond = m.Start, m.End, true
		dist = m.Distance()
	} else {
		start = snap.Pending
		if snap.HasHover {
			second, haveSecond = snap.Hover, true
			dist = start.Distance(second)
		}
	}

	s := start.Scale(zoom)
	dc.SetColor(colorutil.Measure)

	if haveSecond {
		e := second.Scale(zoom)
		dc.SetLineWidth(measureStrokeWidth)
		dc.DrawLine(s.X, s.Y, e.X, e.Y)
		dc.Stroke()

		dc.DrawCircle(e.X, e.Y, endpointRadius)
		dc.Fill()
	}

	dc.DrawCircle(s.X, s.Y, endpointRadius)
	dc.Fill()

	if haveSecond {
		mid := s.Midpoint(second.Scale(zoom))
		drawLabel(dc, fmt.Sprintf("%d px", int(math.Round(dist))), mid)
	}
}

// drawPickMarker renders the two-tone ring and crosshair on the sampled
// pixel. The white pass is wider than the black pass so the marker stays
// visible over both dark and light content.
func drawPickMarker(dc *gg.Context, at geometry.Point2D) {
	passes := []struct {
		c color.Color
		w float64
	}{
		{colorutil.White, ringOuterWidth},
		{colorutil.Black, ringInnerWidth},
	}
	for _, p := range passes {
		dc.SetColor(p.c)
		dc.SetLineWidth(p.w)
		dc.DrawCircle(at.X, at.Y, ringRadius)
		for _, d := range [][2]float64{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			dc.DrawLine(
				at.X+d[0]*(ringRadius+crosshairGap),
				at.Y+d[1]*(ringRadius+crosshairGap),
				at.X+d[0]*(ringRadius+crosshairGap+crosshairLen),
				at.Y+d[1]*(ringRadius+crosshairGap+crosshairLen),
			)
		}
		dc.Stroke()
	}
}

func drawLabel(dc *gg.Context, text string, at geometry.Point2D) {
	w, h := dc.MeasureString(text)
	dc.SetColor(colorutil.LabelBack)
	dc.DrawRoundedRectangle(at.X-w/2-labelPadding, at.Y-h/2-labelPadding, w+2*labelPadding, h+2*labelPadding, 3)
	dc.Fill()
	dc.SetColor(colorutil.White)
	dc.DrawStringAnchored(text, at.X, at.Y, 0.5, 0.5)
}
