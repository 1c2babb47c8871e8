package postprocess

import "github.com/swdee/go-peoplecount/tracker"

// BoxRect are the dimensions of the bounding box of a detected object in
// frame pixel coordinates
type BoxRect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Rect converts the box to the tracker rectangle format
func (b BoxRect) Rect() tracker.Rect {
	return tracker.NewRect(b.Left, b.Top, b.Right, b.Bottom)
}

// DetectResult defines the attributes of a single object detected
type DetectResult struct {
	// Class is the index in the labels list the Model was trained on
	// defining the Class of the detected object
	Class int
	// Box are the bounding box dimensions of the object location
	Box BoxRect
	// Probability is the confidence score of the object detected
	Probability float32
	// ID is a unique ID assigned to the detection result
	ID int64
}

// Filter returns the detections whose probability is strictly greater than
// minProb and whose class is the given class
func Filter(dets []DetectResult, minProb float32, class int) []DetectResult {

	res := make([]DetectResult, 0, len(dets))

	for _, det := range dets {
		if det.Probability <= minProb {
			continue
		}

		if det.Class != class {
			continue
		}

		res = append(res, det)
	}

	return res
}
