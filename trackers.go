package peoplecount

import (
	"github.com/swdee/go-peoplecount/schedule"
	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// NewTrackerFactory returns a factory creating OpenCV trackers of the given
// kind. The MIL tracker is provided by OpenCV core, KCF and CSRT require the
// opencv_contrib tracking module.
func NewTrackerFactory(kind TrackerKind) (schedule.TrackerFactory[gocv.Mat], error) {

	kind, err := ParseTrackerKind(string(kind))

	if err != nil {
		return nil, configErr("Tracker", err)
	}

	var create func() gocv.Tracker

	switch kind {
	case TrackerMIL:
		create = gocv.NewTrackerMIL
	case TrackerKCF:
		create = contrib.NewTrackerKCF
	case TrackerCSRT:
		create = contrib.NewTrackerCSRT
	}

	return func() (schedule.VisualTracker[gocv.Mat], error) {
		return create(), nil
	}, nil
}
