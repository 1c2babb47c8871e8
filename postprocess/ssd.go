package postprocess

import (
	"github.com/swdee/go-peoplecount/postprocess/result"
)

// ssdStride is the number of values describing each detection in the SSD
// DetectionOutput layer: image id, class, confidence, x1, y1, x2, y2
const ssdStride = 7

// SSD is a post processor for the output tensor of a single shot detector
// DetectionOutput layer, where box coordinates are normalised to [0,1]
type SSD struct {
	// Params are the decoding parameters
	Params SSDParams
	// idGen generates sequential detection ids
	idGen *result.IDGenerator
}

// SSDParams defines the parameters of the SSD post processor
type SSDParams struct {
	// MinProb discards detections with a confidence at or below this value
	// before any further processing
	MinProb float32
	// ClassCount is the number of classes the model was trained on, including
	// background
	ClassCount int
}

// MobileNetSSDParams returns the parameters for the Caffe MobileNet SSD
// model trained on VOC
func MobileNetSSDParams() SSDParams {
	return SSDParams{
		MinProb:    0,
		ClassCount: len(VOCLabels),
	}
}

// NewSSD returns an SSD post processor
func NewSSD(p SSDParams) *SSD {
	return &SSD{
		Params: p,
		idGen:  result.NewIDGenerator(),
	}
}

// DetectObjects decodes the flattened DetectionOutput tensor into detection
// results scaled to a frame of the given width and height. Rows with an
// unknown class are skipped.
func (s *SSD) DetectObjects(output []float32, width, height int) []DetectResult {

	rows := len(output) / ssdStride
	res := make([]DetectResult, 0, rows)

	for i := 0; i < rows; i++ {

		row := output[i*ssdStride : (i+1)*ssdStride]

		class := int(row[1])
		prob := row[2]

		if class <= 0 || (s.Params.ClassCount > 0 && class >= s.Params.ClassCount) {
			continue
		}

		if prob <= s.Params.MinProb {
			continue
		}

		res = append(res, DetectResult{
			Class: class,
			Box: BoxRect{
				Left:   float64(row[3]) * float64(width),
				Top:    float64(row[4]) * float64(height),
				Right:  float64(row[5]) * float64(width),
				Bottom: float64(row[6]) * float64(height),
			},
			Probability: prob,
			ID:          s.idGen.GetNext(),
		})
	}

	return res
}
