package peoplecount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swdee/go-peoplecount/postprocess"
	"github.com/swdee/go-peoplecount/preprocess"
	"github.com/swdee/go-peoplecount/schedule"
	"github.com/swdee/go-peoplecount/tracker"
)

// TrackerKind selects the OpenCV lightweight tracker algorithm
type TrackerKind string

const (
	TrackerMIL  TrackerKind = "mil"
	TrackerKCF  TrackerKind = "kcf"
	TrackerCSRT TrackerKind = "csrt"
)

// TrackerKinds lists the supported tracker algorithms
var TrackerKinds = []TrackerKind{TrackerMIL, TrackerKCF, TrackerCSRT}

// ParseTrackerKind converts a tracker name to its kind, ignoring case
func ParseTrackerKind(s string) (TrackerKind, error) {

	kind := TrackerKind(strings.ToLower(strings.TrimSpace(s)))

	for _, k := range TrackerKinds {
		if k == kind {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown tracker %q", s)
}

// Config defines the run configuration of the people counter. All values are
// constant for the duration of a run.
type Config struct {
	// Confidence is the minimum probability to filter weak detections
	Confidence float32
	// SkipFrames is the number of frames between detector runs
	SkipFrames int
	// MaxDisappeared is the number of consecutive frames an identity may be
	// missing before it is retired
	MaxDisappeared int
	// MaxDistance is the largest centroid displacement in pixels accepted as
	// the same identity
	MaxDistance float64
	// Matching selects the identity assignment algorithm
	Matching tracker.MatchMode
	// Labels are the class labels of the detection model
	Labels []string
	// TargetLabel is the class counted
	TargetLabel string
	// ResizeWidth is the width frames are scaled to before processing, zero
	// processes frames at their source size
	ResizeWidth int
	// Tracker is the lightweight tracker algorithm
	Tracker TrackerKind
	// Workers is the number of lightweight trackers updated concurrently
	Workers int
	// DrawBoxes renders the boxes passed to the identity tracker
	DrawBoxes bool
}

// DefaultConfig returns the library default configuration
func DefaultConfig() Config {
	return Config{
		Confidence:     0.3,
		SkipFrames:     200,
		MaxDisappeared: 10,
		MaxDistance:    50,
		Matching:       tracker.MatchGreedy,
		Labels:         postprocess.VOCLabels,
		TargetLabel:    "person",
		ResizeWidth:    preprocess.DefaultWidth,
		Tracker:        TrackerMIL,
		Workers:        1,
	}
}

// TargetClass returns the label index of the target class or -1 if the labels
// do not contain it
func (c Config) TargetClass() int {
	return postprocess.LabelIndex(c.Labels, c.TargetLabel)
}

// TrackerConfig returns the identity tracker configuration
func (c Config) TrackerConfig() tracker.Config {
	return tracker.Config{
		MaxDisappeared: c.MaxDisappeared,
		MaxDistance:    c.MaxDistance,
		Matching:       c.Matching,
	}
}

// ScheduleParams returns the detection and tracking scheduler parameters
func (c Config) ScheduleParams() schedule.Params {
	return schedule.Params{
		SkipFrames:  c.SkipFrames,
		Confidence:  c.Confidence,
		TargetClass: c.TargetClass(),
		Workers:     c.Workers,
	}
}

// Validate checks the configuration and returns a *ConfigError describing
// the first invalid field
func (c Config) Validate() error {

	if c.SkipFrames <= 0 {
		return configErr("SkipFrames", fmt.Errorf("must be positive, got %d", c.SkipFrames))
	}

	if c.Confidence < 0 || c.Confidence > 1 {
		return configErr("Confidence", fmt.Errorf("must be within [0,1], got %f", c.Confidence))
	}

	if c.Workers < 1 {
		return configErr("Workers", fmt.Errorf("must be at least 1, got %d", c.Workers))
	}

	if c.ResizeWidth < 0 {
		return configErr("ResizeWidth", fmt.Errorf("must not be negative, got %d", c.ResizeWidth))
	}

	if len(c.Labels) == 0 {
		return configErr("Labels", errors.New("no labels given"))
	}

	if c.TargetClass() < 0 {
		return configErr("TargetLabel", fmt.Errorf("label %q not found", c.TargetLabel))
	}

	if _, err := ParseTrackerKind(string(c.Tracker)); err != nil {
		return configErr("Tracker", err)
	}

	if err := c.TrackerConfig().Validate(); err != nil {
		return configErr("IdentityTracker", err)
	}

	return nil
}
