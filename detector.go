package peoplecount

import (
	"errors"
	"fmt"
	"image"

	"github.com/swdee/go-peoplecount/postprocess"
	"gocv.io/x/gocv"
)

const (
	// ssdInputSize is the width and height of the MobileNet SSD input blob
	ssdInputSize = 300
	// ssdScale scales pixel values to the range [-1,1] after mean subtraction
	ssdScale = 0.007843
	// ssdMean is subtracted from each channel
	ssdMean = 127.5
)

// SSDDetector runs the Caffe MobileNet SSD model with the OpenCV DNN module
type SSDDetector struct {
	net gocv.Net
	ssd *postprocess.SSD
}

// NewSSDDetector loads the Caffe model from the given prototxt and weight
// files. labels are the classes the model was trained on.
func NewSSDDetector(prototxt, model string, labels []string) (*SSDDetector, error) {

	net := gocv.ReadNetFromCaffe(prototxt, model)

	if net.Empty() {
		return nil, fmt.Errorf("error reading network model from %s and %s",
			prototxt, model)
	}

	params := postprocess.MobileNetSSDParams()
	params.ClassCount = len(labels)

	return &SSDDetector{
		net: net,
		ssd: postprocess.NewSSD(params),
	}, nil
}

// Detect runs the detector on the frame and returns the detections with boxes
// in frame pixel coordinates
func (d *SSDDetector) Detect(frame gocv.Mat) ([]postprocess.DetectResult, error) {

	if frame.Empty() {
		return nil, errors.New("empty frame")
	}

	blob := gocv.BlobFromImage(frame, ssdScale, image.Pt(ssdInputSize, ssdInputSize),
		gocv.NewScalar(ssdMean, ssdMean, ssdMean, 0), false, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()

	if err != nil {
		return nil, fmt.Errorf("error reading detector output: %w", err)
	}

	return d.ssd.DetectObjects(data, frame.Cols(), frame.Rows()), nil
}

// Close frees the network
func (d *SSDDetector) Close() error {
	return d.net.Close()
}
