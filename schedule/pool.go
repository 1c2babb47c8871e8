package schedule

import (
	"image"
	"sync"

	"golang.org/x/sync/errgroup"
)

// VisualTracker is a lightweight single object tracker seeded with a
// bounding box on one frame and updated on subsequent ones. gocv.Tracker
// satisfies VisualTracker[gocv.Mat].
type VisualTracker[F any] interface {
	Init(frame F, box image.Rectangle) bool
	Update(frame F) (image.Rectangle, bool)
	Close() error
}

// TrackResult is the outcome of updating a single tracker
type TrackResult struct {
	Box image.Rectangle
	OK  bool
}

// TrackerPool holds the lightweight trackers seeded on the last detection
// frame
type TrackerPool[F any] struct {
	trackers []VisualTracker[F]
	// workers is the number of trackers updated concurrently
	workers int
	closed  bool
	close   sync.Once
}

// NewTrackerPool creates a new tracker pool updating up to workers trackers
// at a time
func NewTrackerPool[F any](workers int) *TrackerPool[F] {

	if workers < 1 {
		workers = 1
	}

	return &TrackerPool[F]{
		workers: workers,
	}
}

// Add a tracker to the pool, the pool takes ownership and closes it on
// Reset or Close
func (p *TrackerPool[F]) Add(t VisualTracker[F]) {

	if p.closed {
		// pool is closed
		_ = t.Close()
		return
	}

	p.trackers = append(p.trackers, t)
}

// Len returns the number of trackers held
func (p *TrackerPool[F]) Len() int {
	return len(p.trackers)
}

// Update every tracker against the frame. Results are returned in the order
// trackers were added regardless of the number of workers.
func (p *TrackerPool[F]) Update(frame F) []TrackResult {

	results := make([]TrackResult, len(p.trackers))

	if p.workers == 1 || len(p.trackers) < 2 {
		for i, t := range p.trackers {
			box, ok := t.Update(frame)
			results[i] = TrackResult{Box: box, OK: ok}
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, t := range p.trackers {
		g.Go(func() error {
			box, ok := t.Update(frame)
			results[i] = TrackResult{Box: box, OK: ok}
			return nil
		})
	}

	// trackers report failure through OK so there is no error to check
	_ = g.Wait()

	return results
}

// Reset closes and discards all held trackers
func (p *TrackerPool[F]) Reset() {

	for _, t := range p.trackers {
		_ = t.Close()
	}

	p.trackers = p.trackers[:0]
}

// Close the pool and all trackers in it
func (p *TrackerPool[F]) Close() {
	p.close.Do(func() {
		p.Reset()
		p.closed = true
	})
}
