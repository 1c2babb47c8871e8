package schedule

import (
	"errors"
	"image"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swdee/go-peoplecount/internal/monitoring"
	"github.com/swdee/go-peoplecount/postprocess"
	"github.com/swdee/go-peoplecount/tracker"
)

const person = 15

// frame is a stand in for a decoded image, the value is the frame number
type frame int

type fakeDetector struct {
	results []postprocess.DetectResult
	err     error
	calls   int
}

func (d *fakeDetector) Detect(frame) ([]postprocess.DetectResult, error) {
	d.calls++
	return d.results, d.err
}

// fakeTracker moves its seeded box dx pixels right on every update and
// fails once lostAfter updates have been made
type fakeTracker struct {
	box       image.Rectangle
	dx        int
	lostAfter int
	updates   int
	failInit  bool
	closed    *atomic.Int32
}

func (t *fakeTracker) Init(_ frame, box image.Rectangle) bool {
	t.box = box
	return !t.failInit
}

func (t *fakeTracker) Update(frame) (image.Rectangle, bool) {
	t.updates++
	if t.lostAfter > 0 && t.updates > t.lostAfter {
		return image.Rectangle{}, false
	}
	t.box = t.box.Add(image.Pt(t.dx, 0))
	return t.box, true
}

func (t *fakeTracker) Close() error {
	t.closed.Add(1)
	return nil
}

type fakeFactory struct {
	created  []*fakeTracker
	closed   atomic.Int32
	dx       int
	// lost holds the lostAfter value by creation order
	lost     map[int]int
	failInit map[int]bool
	err      error
}

func (f *fakeFactory) New() (VisualTracker[frame], error) {
	if f.err != nil {
		return nil, f.err
	}
	n := len(f.created)
	t := &fakeTracker{
		dx:        f.dx,
		lostAfter: f.lost[n],
		failInit:  f.failInit[n],
		closed:    &f.closed,
	}
	f.created = append(f.created, t)
	return t, nil
}

func det(class int, prob float32, x1, y1, x2, y2 float64) postprocess.DetectResult {
	return postprocess.DetectResult{
		Class:       class,
		Probability: prob,
		Box:         postprocess.BoxRect{Left: x1, Top: y1, Right: x2, Bottom: y2},
	}
}

func newScheduler(t *testing.T, skip, workers int, d *fakeDetector, f *fakeFactory) *Scheduler[frame] {
	t.Helper()

	p := DefaultParams()
	p.SkipFrames = skip
	p.Workers = workers

	s, err := New[frame](p, d, f.New)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func TestDetectionFrameFiltersAndSeeds(t *testing.T) {

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, 10, 10, 30, 50),
		det(person, 0.3, 100, 10, 120, 50), // at threshold, rejected
		det(7, 0.99, 200, 10, 220, 50),     // wrong class
		det(person, 0.31, 300, 10, 320, 50),
	}}
	f := &fakeFactory{}
	s := newScheduler(t, 30, 1, d, f)

	step, err := s.Step(0, 0)
	require.NoError(t, err)

	assert.Equal(t, Detecting, step.Status)
	assert.Equal(t, []tracker.Rect{
		tracker.NewRect(10, 10, 30, 50),
		tracker.NewRect(300, 10, 320, 50),
	}, step.Rects)
	assert.Equal(t, 2, s.Trackers())
	assert.Equal(t, 1, d.calls)

	assert.Equal(t, image.Rect(10, 10, 30, 50), f.created[0].box)
}

func TestTrackingFrames(t *testing.T) {

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, 10, 10, 30, 50),
		det(person, 0.9, 100, 10, 120, 50),
	}}
	f := &fakeFactory{dx: 5, lost: map[int]int{1: 1}}
	s := newScheduler(t, 30, 1, d, f)

	_, err := s.Step(0, 0)
	require.NoError(t, err)

	step, err := s.Step(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Tracking, step.Status)
	assert.Equal(t, []tracker.Rect{
		tracker.NewRect(15, 10, 35, 50),
		tracker.NewRect(105, 10, 125, 50),
	}, step.Rects)

	// second tracker loses its object
	step, err = s.Step(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Tracking, step.Status)
	assert.Equal(t, []tracker.Rect{tracker.NewRect(20, 10, 40, 50)}, step.Rects)

	assert.Equal(t, 1, d.calls)
}

func TestWaitingWithoutTrackers(t *testing.T) {

	d := &fakeDetector{}
	f := &fakeFactory{}
	s := newScheduler(t, 30, 1, d, f)

	step, err := s.Step(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Detecting, step.Status)
	assert.Empty(t, step.Rects)

	step, err = s.Step(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Waiting, step.Status)
	assert.Empty(t, step.Rects)
}

func TestRedetectDiscardsTrackers(t *testing.T) {

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, 10, 10, 30, 50),
		det(person, 0.9, 100, 10, 120, 50),
	}}
	f := &fakeFactory{}
	s := newScheduler(t, 3, 1, d, f)

	for i := 0; i < 3; i++ {
		_, err := s.Step(frame(i), i)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(0), f.closed.Load())

	step, err := s.Step(3, 3)
	require.NoError(t, err)

	assert.Equal(t, Detecting, step.Status)
	assert.Equal(t, int32(2), f.closed.Load())
	assert.Equal(t, 2, s.Trackers())
	assert.Len(t, f.created, 4)
	assert.Equal(t, 2, d.calls)
}

func TestInvalidDetectionsDiscarded(t *testing.T) {

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, math.NaN(), 10, 30, 50),
		det(person, 0.9, 50, 50, 10, 10),
		det(person, 0.9, 10, 10, 30, 50),
	}}
	f := &fakeFactory{}
	s := newScheduler(t, 30, 1, d, f)

	step, err := s.Step(0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, step.Discarded)
	assert.Len(t, step.Rects, 1)
	assert.Equal(t, 1, s.Trackers())
}

func TestTrackerInitFailureKeepsDetection(t *testing.T) {

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, 10, 10, 30, 50),
		det(person, 0.9, 100, 10, 120, 50),
	}}
	f := &fakeFactory{failInit: map[int]bool{0: true}}
	s := newScheduler(t, 30, 1, d, f)

	step, err := s.Step(0, 0)
	require.NoError(t, err)

	assert.Len(t, step.Rects, 2)
	assert.Equal(t, 1, s.Trackers())
	assert.Equal(t, int32(1), f.closed.Load())
}

func TestDetectorError(t *testing.T) {

	boom := errors.New("boom")

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, 10, 10, 30, 50),
	}}
	f := &fakeFactory{}
	s := newScheduler(t, 2, 1, d, f)

	_, err := s.Step(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, s.Trackers())

	d.err = boom
	step, err := s.Step(0, 2)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Detecting, step.Status)
	assert.Empty(t, step.Rects)
	assert.Equal(t, 0, s.Trackers())
}

func TestTrackerFactoryError(t *testing.T) {

	boom := errors.New("no tracker")

	d := &fakeDetector{results: []postprocess.DetectResult{
		det(person, 0.9, 10, 10, 30, 50),
	}}
	f := &fakeFactory{err: boom}
	s := newScheduler(t, 30, 1, d, f)

	step, err := s.Step(0, 0)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, step.Rects)
}

func TestConcurrentWorkersKeepOrder(t *testing.T) {

	var results []postprocess.DetectResult
	for i := 0; i < 16; i++ {
		x := float64(i * 30)
		results = append(results, det(person, 0.9, x, 10, x+20, 50))
	}

	run := func(workers int) [][]tracker.Rect {
		d := &fakeDetector{results: results}
		f := &fakeFactory{dx: 1, lost: map[int]int{3: 2, 9: 1}}
		s := newScheduler(t, 10, workers, d, f)

		var out [][]tracker.Rect
		for i := 0; i < 10; i++ {
			step, err := s.Step(frame(i), i)
			require.NoError(t, err)
			out = append(out, step.Rects)
		}
		return out
	}

	assert.Equal(t, run(1), run(4))
}

func TestNewValidation(t *testing.T) {

	d := &fakeDetector{}
	f := &fakeFactory{}

	tests := []struct {
		name   string
		modify func(p *Params)
	}{
		{"zero skip frames", func(p *Params) { p.SkipFrames = 0 }},
		{"negative confidence", func(p *Params) { p.Confidence = -0.1 }},
		{"confidence above one", func(p *Params) { p.Confidence = 1.5 }},
		{"no workers", func(p *Params) { p.Workers = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.modify(&p)
			_, err := New[frame](p, d, f.New)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}

	_, err := New[frame](DefaultParams(), nil, f.New)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Waiting", Waiting.String())
	assert.Equal(t, "Detecting", Detecting.String())
	assert.Equal(t, "Tracking", Tracking.String())
	assert.Equal(t, "Unknown", Status(9).String())
}
