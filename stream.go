package peoplecount

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/hybridgroup/mjpeg"
	"gocv.io/x/gocv"
)

// ErrStreamClosed is returned when writing to a closed MJPEGStream
var ErrStreamClosed = errors.New("stream closed")

// MJPEGStream is a Sink that serves rendered frames to HTTP clients as a
// multipart JPEG stream
type MJPEGStream struct {
	stream *mjpeg.Stream
	mu     sync.Mutex
	closed bool
}

// NewMJPEGStream returns a stream with no connected clients
func NewMJPEGStream() *MJPEGStream {
	return &MJPEGStream{
		stream: mjpeg.NewStream(),
	}
}

// SinkFactory returns a SinkFactory that always yields this stream
func (s *MJPEGStream) SinkFactory() SinkFactory {
	return func(int, int) (Sink, error) {
		return s, nil
	}
}

// Write encodes the frame as JPEG and passes it to connected clients
func (s *MJPEGStream) Write(m gocv.Mat) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, m)

	if err != nil {
		return fmt.Errorf("error encoding frame: %w", err)
	}

	defer buf.Close()

	// the stream copies the bytes so the native buffer can be freed
	s.stream.UpdateJPEG(buf.GetBytes())

	return nil
}

// Close stops accepting frames, connected clients stop receiving updates
func (s *MJPEGStream) Close() error {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// ServeHTTP streams frames to the client
func (s *MJPEGStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.stream.ServeHTTP(w, r)
}
