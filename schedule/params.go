package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when scheduler parameters are out of range
var ErrInvalidParams = errors.New("invalid scheduler parameters")

// Params defines the run configuration of the Scheduler. The values are
// constant for the lifetime of a run.
type Params struct {
	// SkipFrames is the number of frames between detector runs
	SkipFrames int
	// Confidence is the minimum detection probability, detections must be
	// strictly greater than this to be tracked
	Confidence float32
	// TargetClass is the label index of the object class to track
	TargetClass int
	// Workers is the number of lightweight trackers updated concurrently
	// within a frame
	Workers int
}

// DefaultParams returns the scheduler defaults for tracking persons with the
// VOC trained MobileNet SSD model
func DefaultParams() Params {
	return Params{
		SkipFrames:  200,
		Confidence:  0.3,
		TargetClass: 15,
		Workers:     1,
	}
}

// Validate checks the parameters are usable
func (p Params) Validate() error {

	if p.SkipFrames <= 0 {
		return fmt.Errorf("%w: skip frames must be positive, got %d",
			ErrInvalidParams, p.SkipFrames)
	}

	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be within [0,1], got %f",
			ErrInvalidParams, p.Confidence)
	}

	if p.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d",
			ErrInvalidParams, p.Workers)
	}

	return nil
}
