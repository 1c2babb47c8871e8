package peoplecount

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Source provides decoded video frames. Read returns false at end of stream.
// *gocv.VideoCapture satisfies Source.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Sink consumes rendered frames. *gocv.VideoWriter satisfies Sink.
type Sink interface {
	Write(m gocv.Mat) error
	Close() error
}

// SinkFactory opens a Sink for frames of the given size
type SinkFactory func(width, height int) (Sink, error)

const (
	// outputCodec is the fourcc of written video
	outputCodec = "MJPG"
	// outputFPS is the frame rate of written video
	outputFPS = 30
)

// OpenSource opens the video file at input, an empty input opens the default
// camera
func OpenSource(input string) (Source, error) {

	if input == "" {
		cam, err := gocv.VideoCaptureDevice(0)

		if err != nil {
			return nil, fmt.Errorf("error opening camera: %w", err)
		}

		return cam, nil
	}

	vid, err := gocv.VideoCaptureFile(input)

	if err != nil {
		return nil, fmt.Errorf("error opening video file %s: %w", input, err)
	}

	return vid, nil
}

// VideoFileSink returns a SinkFactory writing MJPG video at 30 FPS to path
func VideoFileSink(path string) SinkFactory {
	return func(width, height int) (Sink, error) {

		w, err := gocv.VideoWriterFile(path, outputCodec, outputFPS,
			width, height, true)

		if err != nil {
			return nil, fmt.Errorf("error opening video writer %s: %w", path, err)
		}

		return w, nil
	}
}
