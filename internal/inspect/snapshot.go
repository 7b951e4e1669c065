package inspect

import (
	"image-inspector/pkg/geometry"
)

// Tool represents the active interaction tool.
type Tool int

const (
	ToolPick    Tool = iota // color sampling
	ToolMeasure             // two-point distance measurement
)

func (t Tool) String() string {
	switch t {
	case ToolPick:
		return "Color Picker"
	case ToolMeasure:
		return "Measure"
	default:
		return "Unknown"
	}
}

// Phase tracks the two-click measurement sequence.
type Phase int

const (
	PhaseIdle           Phase = iota // no measurement in progress
	PhaseAwaitingSecond              // start placed, waiting for the end point
)

// Measurement is a two-point distance measurement in natural pixel
// coordinates. Both points are always present in a reported Measurement.
type Measurement struct {
	Start geometry.Point2D `json:"start"`
	End   geometry.Point2D `json:"end"`
}

// Distance returns the Euclidean length of the segment in pixels. It is
// recomputed on every call, never cached.
func (m Measurement) Distance() float64 {
	return m.Start.Distance(m.End)
}

// Midpoint returns the center of the segment, where the distance label sits.
func (m Measurement) Midpoint() geometry.Point2D {
	return m.Start.Midpoint(m.End)
}

// Snapshot is the immutable interaction state of one session: the active
// tool, the measurement phase, and the overlay geometry the renderer needs.
// Transitions return a successor value; the receiver is never modified, so
// a Snapshot can be handed to the renderer without locking.
type Snapshot struct {
	Tool  Tool
	Phase Phase

	// Pending is the start of an in-progress measurement. It is
	// meaningful exactly while Phase == PhaseAwaitingSecond.
	Pending geometry.Point2D

	// Hover is the last pointer position over the canvas, updated on
	// every move and used only to preview the in-progress segment.
	Hover    geometry.Point2D
	HasHover bool

	// Pick is where the last color sample was taken.
	Pick    geometry.Point2D
	HasPick bool

	// Measure is the last completed measurement. It stays visible until
	// the next measure click starts a fresh one.
	Measure *Measurement
}

// NewSnapshot returns the initial session state: color picker, nothing
// placed.
func NewSnapshot() Snapshot {
	return Snapshot{Tool: ToolPick}
}

// WithTool switches the active tool. Any in-progress or completed
// measurement is cleared. Selecting the already-active tool is a no-op.
func (s Snapshot) WithTool(t Tool) Snapshot {
	if t == s.Tool {
		return s
	}
	next := s
	next.Tool = t
	next.Phase = PhaseIdle
	next.Pending = geometry.Point2D{}
	next.Measure = nil
	return next
}

// WithHover records the pointer position for segment preview.
func (s Snapshot) WithHover(p geometry.Point2D) Snapshot {
	next := s
	next.Hover = p
	next.HasHover = true
	return next
}

// ClearHover drops the hover position, typically when the pointer leaves
// the canvas.
func (s Snapshot) ClearHover() Snapshot {
	next := s
	next.Hover = geometry.Point2D{}
	next.HasHover = false
	return next
}

// ClickMeasure applies a measure-mode click at p. The first click arms a
// measurement starting at p and reports nil (collaborators clear their
// readout); the second click completes the measurement and reports it with
// both points intact. The completed segment remains in the snapshot until
// the following click arms a new one.
func (s Snapshot) ClickMeasure(p geometry.Point2D) (Snapshot, *Measurement) {
	next := s
	if s.Phase == PhaseAwaitingSecond {
		m := &Measurement{Start: s.Pending, End: p}
		next.Phase = PhaseIdle
		next.Pending = geometry.Point2D{}
		next.Measure = m
		return next, m
	}

	next.Phase = PhaseAwaitingSecond
	next.Pending = p
	next.Measure = nil
	return next, nil
}

// ClickPick records a color-pick location, replacing the previous marker.
func (s Snapshot) ClickPick(p geometry.Point2D) Snapshot {
	next := s
	next.Pick = p
	next.HasPick = true
	return next
}

// Reset returns the state for a freshly loaded image: the active tool is
// retained, all positional state is discarded.
func (s Snapshot) Reset() Snapshot {
	return Snapshot{Tool: s.Tool}
}
