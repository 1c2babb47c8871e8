package counter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/swdee/go-peoplecount/tracker"
)

// ErrFrameSize is returned when the counter is created for a frame with no
// area
var ErrFrameSize = errors.New("invalid frame size")

// Frame is the outcome of processing the detections of a single frame
type Frame struct {
	// Index is the frame number in the stream
	Index int
	// Objects maps each tracked identity to its current centroid
	Objects map[int]tracker.Point
	// Events are the crossings decided on this frame, in ascending id order
	Events []CrossingEvent
	// TotalIn and TotalOut are the running totals after this frame
	TotalIn  int
	TotalOut int
}

// IDs returns the ids of the tracked objects in ascending order
func (f Frame) IDs() []int {

	ids := make([]int, 0, len(f.Objects))

	for id := range f.Objects {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

// Counter connects the identity tracker with the trajectory recorder and
// keeps the crossing totals
type Counter struct {
	tracker  *tracker.CentroidTracker
	recorder *Recorder
	tally    Tally
}

// New returns a Counter for frames of the given size
func New(cfg tracker.Config, width, height int) (*Counter, error) {

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameSize, width, height)
	}

	ct, err := tracker.NewCentroidTracker(cfg)

	if err != nil {
		return nil, err
	}

	return &Counter{
		tracker:  ct,
		recorder: NewRecorder(NewZone(width, height)),
	}, nil
}

// Update runs the detections of one frame through the identity tracker and
// the recorder, returning the tracked objects and any crossings decided
func (c *Counter) Update(frameIndex int, rects []tracker.Rect) Frame {

	objects := c.tracker.Update(rects)

	frame := Frame{
		Index:   frameIndex,
		Objects: objects,
	}

	for _, id := range frame.IDs() {
		evt, ok := c.recorder.Observe(id, objects[id])

		if !ok {
			continue
		}

		c.tally.Add(evt)
		frame.Events = append(frame.Events, evt)
	}

	frame.TotalIn = c.tally.In()
	frame.TotalOut = c.tally.Out()

	return frame
}

// Totals returns the number of objects counted entering and leaving
func (c *Counter) Totals() (in, out int) {
	return c.tally.In(), c.tally.Out()
}

// Zone returns the counting zone
func (c *Counter) Zone() Zone {
	return c.recorder.Zone()
}

// History returns the centroid history of an identity
func (c *Counter) History(id int) []tracker.Point {
	return c.recorder.History(id)
}
