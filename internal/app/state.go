// Package app provides application state, session transitions, and events.
package app

import (
	"errors"
	"log"
	"sync"

	"image-inspector/internal/describe"
	"image-inspector/internal/image"
	"image-inspector/internal/inspect"
	"image-inspector/internal/render"
	"image-inspector/internal/sample"
	"image-inspector/pkg/geometry"

	"github.com/google/uuid"
)

// State holds the inspection session: the loaded bitmap, the interaction
// snapshot, the sample history, and the describe-call bookkeeping. UI layers
// observe it through events rather than polling.
type State struct {
	mu sync.RWMutex

	// Loaded bitmap, nil until the first successful load.
	bitmap *image.Bitmap

	// Interaction snapshot: tool, measurement phase, hover, pick marker.
	snap inspect.Snapshot

	// Sampling
	history sample.History
	current *sample.Sample

	// AI description
	descClient *describe.Client
	descBusy   bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded     EventType = iota // *image.Bitmap
	EventToolChanged                      // inspect.Tool
	EventOverlayChanged                   // inspect.Snapshot
	EventSampleTaken                      // sample.Sample
	EventMeasureChanged                   // *inspect.Measurement, nil when cleared or re-armed
	EventHistoryChanged                   // []sample.Sample, most recent first
	EventDescribeStarted                  // sample.Sample
	EventDescribeDone                     // DescribeOutcome
	EventStatusMessage                    // string
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// DescribeOutcome is the payload of EventDescribeDone. Stale marks a
// response that arrived after a newer pick: its text must not be shown.
// Otherwise exactly one of Text and Err is meaningful.
type DescribeOutcome struct {
	SampleID uuid.UUID
	Text     string
	Err      error
	Stale    bool
}

// NewState creates a new application state with the color picker active.
func NewState() *State {
	return &State{
		snap:      inspect.NewSnapshot(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetDescribeClient wires the vision service client used by RequestDescribe.
func (s *State) SetDescribeClient(c *describe.Client) {
	s.mu.Lock()
	s.descClient = c
	s.mu.Unlock()
}

// Snapshot returns the current interaction snapshot.
func (s *State) Snapshot() inspect.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Bitmap returns the loaded bitmap, nil when none is loaded.
func (s *State) Bitmap() *image.Bitmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bitmap
}

// HasImage reports whether a bitmap is loaded.
func (s *State) HasImage() bool {
	return s.Bitmap() != nil
}

// CurrentSample returns the active sample, if any.
func (s *State) CurrentSample() (sample.Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return sample.Sample{}, false
	}
	return *s.current, true
}

// History returns a copy of the sample history, most recent first.
func (s *State) History() []sample.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.All()
}

// DescribeBusy reports whether a description request is in flight.
func (s *State) DescribeBusy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.descBusy
}

// LoadImage decodes the image at path and resets the inspection session:
// measurement, pick marker, active sample, and history all clear. The
// active tool is kept.
func (s *State) LoadImage(path string) error {
	bmp, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.bitmap = bmp
	s.snap = s.snap.Reset()
	s.history.Clear()
	s.current = nil
	s.mu.Unlock()

	log.Printf("loaded %s (%dx%d %s)", path, bmp.Width, bmp.Height, bmp.Format)
	s.Emit(EventImageLoaded, bmp)
	s.Emit(EventHistoryChanged, []sample.Sample{})
	s.Emit(EventMeasureChanged, (*inspect.Measurement)(nil))
	return nil
}

// SetTool switches the active tool. Switching clears any in-progress or
// completed measurement; selecting the already-active tool is a no-op.
func (s *State) SetTool(t inspect.Tool) {
	s.mu.Lock()
	if s.snap.Tool == t {
		s.mu.Unlock()
		return
	}
	s.snap = s.snap.WithTool(t)
	snap := s.snap
	s.mu.Unlock()

	s.Emit(EventToolChanged, t)
	s.Emit(EventMeasureChanged, (*inspect.Measurement)(nil))
	s.Emit(EventOverlayChanged, snap)
}

// HoverAt records the pointer position in natural coordinates. Ignored
// until an image is loaded.
func (s *State) HoverAt(pt geometry.Point2D) {
	s.mu.Lock()
	if s.bitmap == nil {
		s.mu.Unlock()
		return
	}
	s.snap = s.snap.WithHover(pt)
	snap := s.snap
	s.mu.Unlock()

	s.Emit(EventOverlayChanged, snap)
}

// ClearHover drops the hover position, typically when the pointer leaves
// the canvas.
func (s *State) ClearHover() {
	s.mu.Lock()
	if s.bitmap == nil {
		s.mu.Unlock()
		return
	}
	s.snap = s.snap.ClearHover()
	snap := s.snap
	s.mu.Unlock()

	s.Emit(EventOverlayChanged, snap)
}

// ClickAt routes a click in natural coordinates to the active tool.
// Ignored until an image is loaded.
func (s *State) ClickAt(pt geometry.Point2D) {
	s.mu.RLock()
	loaded := s.bitmap != nil
	tool := s.snap.Tool
	s.mu.RUnlock()
	if !loaded {
		return
	}

	switch tool {
	case inspect.ToolPick:
		s.pickAt(pt)
	case inspect.ToolMeasure:
		s.measureAt(pt)
	}
}

func (s *State) pickAt(pt geometry.Point2D) {
	s.mu.Lock()
	if s.bitmap == nil {
		s.mu.Unlock()
		return
	}
	smp := sample.Grab(s.bitmap.Image, pt)
	s.current = &smp
	s.history.Push(smp)
	s.snap = s.snap.ClickPick(pt)
	hist := s.history.All()
	snap := s.snap
	s.mu.Unlock()

	s.Emit(EventSampleTaken, smp)
	s.Emit(EventHistoryChanged, hist)
	s.Emit(EventOverlayChanged, snap)
}

func (s *State) measureAt(pt geometry.Point2D) {
	s.mu.Lock()
	if s.bitmap == nil {
		s.mu.Unlock()
		return
	}
	var m *inspect.Measurement
	s.snap, m = s.snap.ClickMeasure(pt)
	snap := s.snap
	s.mu.Unlock()

	s.Emit(EventMeasureChanged, m)
	s.Emit(EventOverlayChanged, snap)
}

// RestoreSample makes a historical sample the active one again. The pick
// marker moves to its coordinates; history order is unchanged.
func (s *State) RestoreSample(smp sample.Sample) {
	s.mu.Lock()
	if s.bitmap == nil {
		s.mu.Unlock()
		return
	}
	s.current = &smp
	s.snap = s.snap.ClickPick(smp.Point())
	snap := s.snap
	s.mu.Unlock()

	s.Emit(EventSampleTaken, smp)
	s.Emit(EventOverlayChanged, snap)
}

// ClearHistory drops all recorded samples.
func (s *State) ClearHistory() {
	s.mu.Lock()
	s.history.Clear()
	s.mu.Unlock()

	s.Emit(EventHistoryChanged, []sample.Sample{})
}

// RequestDescribe asks the vision service to describe the surroundings of
// the active sample. At most one request is in flight at a time; a response
// for a sample that is no longer active is dropped.
func (s *State) RequestDescribe() {
	s.mu.Lock()
	if s.bitmap == nil || s.current == nil || s.descClient == nil || s.descBusy {
		s.mu.Unlock()
		return
	}
	s.descBusy = true
	client := s.descClient
	img := s.bitmap.Image
	smp := *s.current
	s.mu.Unlock()

	s.Emit(EventDescribeStarted, smp)

	go func() {
		res, err := client.Describe(img, smp)

		s.mu.Lock()
		s.descBusy = false
		stale := s.current == nil || s.current.ID != smp.ID
		s.mu.Unlock()

		if stale {
			// The pick moved on mid-flight. Drop the text but still signal
			// completion so the trigger can re-enable.
			log.Printf("describe: dropping stale response for sample %s", smp.ID)
			s.Emit(EventDescribeDone, DescribeOutcome{SampleID: smp.ID, Stale: true})
			return
		}
		if err != nil {
			log.Printf("describe: %v", err)
		}
		s.Emit(EventDescribeDone, DescribeOutcome{SampleID: smp.ID, Text: res.Text, Err: err})
	}()
}

// ExportAnnotated writes the loaded image with the current overlays to path
// as PNG.
func (s *State) ExportAnnotated(path string) error {
	s.mu.RLock()
	bmp := s.bitmap
	snap := s.snap
	s.mu.RUnlock()

	if bmp == nil {
		return errors.New("no image loaded")
	}
	if err := render.WriteAnnotated(path, bmp.Image, snap); err != nil {
		return err
	}
	log.Printf("exported annotated image to %s", path)
	return nil
}

// SetStatus pushes a transient message to the status bar.
func (s *State) SetStatus(msg string) {
	s.Emit(EventStatusMessage, msg)
}
