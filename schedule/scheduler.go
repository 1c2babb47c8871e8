package schedule

import (
	"fmt"

	"github.com/swdee/go-peoplecount/internal/monitoring"
	"github.com/swdee/go-peoplecount/postprocess"
	"github.com/swdee/go-peoplecount/tracker"
)

// Detector runs object detection on a single frame
type Detector[F any] interface {
	Detect(frame F) ([]postprocess.DetectResult, error)
}

// TrackerFactory creates a new unseeded lightweight tracker
type TrackerFactory[F any] func() (VisualTracker[F], error)

// Step is the outcome of processing one frame
type Step struct {
	// Rects are the bounding boxes of this frame fed to the identity tracker
	Rects []tracker.Rect
	// Status is the scheduler state for the frame
	Status Status
	// Discarded is the number of boxes dropped for invalid coordinates
	Discarded int
}

// Scheduler alternates between running the detector every SkipFrames frames
// and updating the lightweight trackers seeded from the last detection in
// between
type Scheduler[F any] struct {
	params     Params
	detector   Detector[F]
	newTracker TrackerFactory[F]
	pool       *TrackerPool[F]
}

// New returns a Scheduler for the given detector and tracker factory
func New[F any](p Params, det Detector[F], factory TrackerFactory[F]) (*Scheduler[F], error) {

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if det == nil || factory == nil {
		return nil, fmt.Errorf("%w: detector and tracker factory are required",
			ErrInvalidParams)
	}

	return &Scheduler[F]{
		params:     p,
		detector:   det,
		newTracker: factory,
		pool:       NewTrackerPool[F](p.Workers),
	}, nil
}

// Params returns the scheduler parameters
func (s *Scheduler[F]) Params() Params {
	return s.params
}

// Trackers returns the number of lightweight trackers currently held
func (s *Scheduler[F]) Trackers() int {
	return s.pool.Len()
}

// Step processes the frame at frameIndex and returns the boxes to pass to the
// identity tracker. An error from the detector or tracker factory is
// returned along with a Step holding no boxes.
func (s *Scheduler[F]) Step(frame F, frameIndex int) (Step, error) {

	if frameIndex%s.params.SkipFrames == 0 {
		return s.detect(frame, frameIndex)
	}

	return s.track(frame), nil
}

// detect runs the detector and seeds a tracker per accepted detection
func (s *Scheduler[F]) detect(frame F, frameIndex int) (Step, error) {

	step := Step{Status: Detecting}

	s.pool.Reset()

	dets, err := s.detector.Detect(frame)

	if err != nil {
		return step, fmt.Errorf("detect frame %d: %w", frameIndex, err)
	}

	dets = postprocess.Filter(dets, s.params.Confidence, s.params.TargetClass)

	for _, det := range dets {

		rect := det.Box.Rect()

		if err := rect.Validate(); err != nil {
			monitoring.Logf("frame %d: discarding detection %d: %v",
				frameIndex, det.ID, err)
			step.Discarded++
			continue
		}

		t, err := s.newTracker()

		if err != nil {
			s.pool.Reset()
			return Step{Status: Detecting}, fmt.Errorf("create tracker: %w", err)
		}

		if !t.Init(frame, rect.Image()) {
			monitoring.Debugf("frame %d: tracker init failed for detection %d",
				frameIndex, det.ID)
			_ = t.Close()
		} else {
			s.pool.Add(t)
		}

		step.Rects = append(step.Rects, rect)
	}

	return step, nil
}

// track updates the held trackers and collects the boxes of those that
// succeeded
func (s *Scheduler[F]) track(frame F) Step {

	step := Step{Status: Waiting}

	if s.pool.Len() == 0 {
		return step
	}

	step.Status = Tracking

	for i, res := range s.pool.Update(frame) {

		if !res.OK {
			monitoring.Debugf("tracker %d lost its object", i)
			continue
		}

		rect := tracker.RectFromImage(res.Box)

		if err := rect.Validate(); err != nil {
			monitoring.Logf("discarding tracker %d box: %v", i, err)
			step.Discarded++
			continue
		}

		step.Rects = append(step.Rects, rect)
	}

	return step
}

// Close releases all held trackers
func (s *Scheduler[F]) Close() {
	s.pool.Close()
}
