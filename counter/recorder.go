package counter

import (
	"github.com/swdee/go-peoplecount/tracker"
	"gonum.org/v1/gonum/stat"
)

// predictStep is the distance in pixels the reference point is extrapolated
// along each axis in the direction of travel
const predictStep = 10

// CrossingEvent is emitted once for an object when it is classified as
// crossing into or out of the zone
type CrossingEvent struct {
	// ID is the tracked object identity
	ID int
	// Direction of the crossing
	Direction Direction
	// Centroid is the position observed on the frame the decision was made
	Centroid tracker.Point
}

// TrackableObject is the trajectory of a single tracked identity
type TrackableObject struct {
	// ID is shared with the identity tracker
	ID int
	// History of every centroid observed, in order
	History []tracker.Point
	// Counted is latched once a crossing has been recorded
	Counted bool
}

// Recorder keeps the centroid history of each identity and decides, at most
// once per identity, whether it crossed the zone
type Recorder struct {
	zone    Zone
	objects map[int]*TrackableObject
}

// NewRecorder returns a Recorder for the given zone
func NewRecorder(zone Zone) *Recorder {
	return &Recorder{
		zone:    zone,
		objects: make(map[int]*TrackableObject),
	}
}

// Zone returns the counting zone used by the recorder
func (r *Recorder) Zone() Zone {
	return r.zone
}

// Len returns the number of identities seen
func (r *Recorder) Len() int {
	return len(r.objects)
}

// History returns a copy of the centroid history of an identity
func (r *Recorder) History(id int) []tracker.Point {

	obj, ok := r.objects[id]

	if !ok {
		return nil
	}

	res := make([]tracker.Point, len(obj.History))
	copy(res, obj.History)

	return res
}

// Counted reports whether the identity has already been counted
func (r *Recorder) Counted(id int) bool {
	obj, ok := r.objects[id]
	return ok && obj.Counted
}

// Observe records the centroid of an identity for the current frame and
// returns a crossing event if this observation decided the crossing.
// An id that was never seen before starts a new trajectory.
func (r *Recorder) Observe(id int, c tracker.Point) (CrossingEvent, bool) {

	obj, ok := r.objects[id]

	if !ok {
		r.objects[id] = &TrackableObject{
			ID:      id,
			History: []tracker.Point{c},
		}
		return CrossingEvent{}, false
	}

	// the reference point is the mean of the centroids seen before this one
	xs := make([]float64, len(obj.History))
	ys := make([]float64, len(obj.History))

	for i, p := range obj.History {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}

	curX := stat.Mean(xs, nil)
	curY := stat.Mean(ys, nil)

	dirX := float64(c.X) - curX
	dirY := float64(c.Y) - curY

	obj.History = append(obj.History, c)

	if obj.Counted {
		return CrossingEvent{}, false
	}

	predX := curX + predictStep*sign(dirX)
	predY := curY + predictStep*sign(dirY)

	dir, crossed := r.zone.Classify(curX, curY, predX, predY)

	if !crossed {
		return CrossingEvent{}, false
	}

	obj.Counted = true

	return CrossingEvent{
		ID:        id,
		Direction: dir,
		Centroid:  c,
	}, true
}

// sign returns -1, 0 or 1 according to the sign of v
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
