package peoplecount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/swdee/go-peoplecount/counter"
	"github.com/swdee/go-peoplecount/internal/monitoring"
	"github.com/swdee/go-peoplecount/preprocess"
	"github.com/swdee/go-peoplecount/render"
	"github.com/swdee/go-peoplecount/report"
	"github.com/swdee/go-peoplecount/schedule"
	"github.com/swdee/go-peoplecount/store"
	"gocv.io/x/gocv"
)

// windowName is the title of the display window
const windowName = "Frame"

// Result summarises a completed run
type Result struct {
	// RunID is the unique id of the run
	RunID string
	// Frames is the number of frames processed
	Frames int
	// In and Out are the final crossing totals
	In  int
	Out int
	// Elapsed is the wall clock duration of the run
	Elapsed time.Duration
}

// FPS returns the approximate number of frames processed per second
func (r Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Runner processes frames from a Source one at a time through the detection
// and tracking scheduler, identity tracker and crossing counter
type Runner struct {
	cfg     Config
	source  Source
	sched   *schedule.Scheduler[gocv.Mat]
	resizer *preprocess.Resizer
	counter *counter.Counter
	sinkFns []SinkFactory
	sinks   []Sink
	store   *store.Store
	series  *report.Series
	display bool
	window  *gocv.Window
	name    string
	runID   string
}

// RunnerOption configures optional Runner outputs
type RunnerOption func(*Runner)

// WithSink writes every rendered frame to the Sink opened by f, the option
// may be given more than once
func WithSink(f SinkFactory) RunnerOption {
	return func(r *Runner) {
		r.sinkFns = append(r.sinkFns, f)
	}
}

// WithStore persists the run and its crossing events
func WithStore(s *store.Store) RunnerOption {
	return func(r *Runner) {
		r.store = s
	}
}

// WithSeries samples the running totals of every frame into s
func WithSeries(s *report.Series) RunnerOption {
	return func(r *Runner) {
		r.series = s
	}
}

// WithDisplay shows rendered frames in a window, pressing 'q' stops the run
func WithDisplay(show bool) RunnerOption {
	return func(r *Runner) {
		r.display = show
	}
}

// WithSourceName sets the name of the source recorded with the run
func WithSourceName(name string) RunnerOption {
	return func(r *Runner) {
		r.name = name
	}
}

// NewRunner returns a Runner. The Runner does not take ownership of the
// source, detector or store.
func NewRunner(cfg Config, src Source, det schedule.Detector[gocv.Mat],
	factory schedule.TrackerFactory[gocv.Mat], opts ...RunnerOption) (*Runner, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if src == nil {
		return nil, configErr("Source", errors.New("no video source given"))
	}

	sched, err := schedule.New[gocv.Mat](cfg.ScheduleParams(), det, factory)

	if err != nil {
		return nil, configErr("Scheduler", err)
	}

	r := &Runner{
		cfg:    cfg,
		source: src,
		sched:  sched,
		runID:  uuid.NewString(),
		name:   "camera",
	}

	if cfg.ResizeWidth > 0 {
		r.resizer = preprocess.NewResizer(cfg.ResizeWidth)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// RunID returns the unique id of the run
func (r *Runner) RunID() string {
	return r.runID
}

// Run processes frames until the source ends, the context is cancelled or
// 'q' is pressed in the display window. Cancellation is checked between
// frames and is not an error.
func (r *Runner) Run(ctx context.Context) (Result, error) {

	res := Result{RunID: r.runID}
	start := time.Now()

	defer r.sched.Close()
	defer r.closeOutputs()

	frame := gocv.NewMat()
	defer frame.Close()

	resized := gocv.NewMat()
	defer resized.Close()

	monitoring.Logf("run %s started on %s", r.runID, r.name)

	var runErr error

	for frameIndex := 0; ; frameIndex++ {

		if ctx.Err() != nil {
			monitoring.Logf("run %s stopping: %v", r.runID, ctx.Err())
			break
		}

		if !r.source.Read(&frame) || frame.Empty() {
			break
		}

		img := frame

		if r.resizer != nil {
			if !r.resizer.Resize(frame, &resized) {
				continue
			}
			img = resized
		}

		if r.counter == nil {
			if err := r.start(ctx, img.Cols(), img.Rows(), start); err != nil {
				runErr = err
				break
			}
		}

		step, err := r.sched.Step(img, frameIndex)

		if err != nil {
			monitoring.Logf("run %s: %v", r.runID, err)
		}

		f := r.counter.Update(frameIndex, step.Rects)
		res.Frames++

		if err := r.recordEvents(ctx, f); err != nil {
			runErr = err
			break
		}

		if r.series != nil {
			r.series.Add(frameIndex, f.TotalIn, f.TotalOut)
		}

		quit, err := r.output(&img, f, step)

		if err != nil {
			runErr = err
			break
		}

		if quit {
			break
		}
	}

	res.Elapsed = time.Since(start)

	if r.counter != nil {
		res.In, res.Out = r.counter.Totals()
	}

	monitoring.Logf("run %s elapsed time: %.2fs", r.runID, res.Elapsed.Seconds())
	monitoring.Logf("run %s approx. FPS: %.2f", r.runID, res.FPS())

	if r.store != nil && r.counter != nil {
		// the run context may already be cancelled
		err := r.store.FinishRun(context.WithoutCancel(ctx), r.runID,
			res.Frames, time.Now())

		if err != nil && runErr == nil {
			runErr = err
		}
	}

	return res, runErr
}

// start creates the counter and opens outputs once the frame size is known
func (r *Runner) start(ctx context.Context, width, height int, started time.Time) error {

	c, err := counter.New(r.cfg.TrackerConfig(), width, height)

	if err != nil {
		return configErr("FrameSize", err)
	}

	r.counter = c

	if r.store != nil {
		err := r.store.CreateRun(ctx, store.Run{
			ID:         r.runID,
			Source:     r.name,
			SkipFrames: r.cfg.SkipFrames,
			Confidence: float64(r.cfg.Confidence),
			Width:      width,
			Height:     height,
			Started:    started,
		})

		if err != nil {
			return err
		}
	}

	for _, open := range r.sinkFns {
		sink, err := open(width, height)

		if err != nil {
			return err
		}

		r.sinks = append(r.sinks, sink)
	}

	if r.display {
		r.window = gocv.NewWindow(windowName)
	}

	return nil
}

// recordEvents persists and logs the crossing events of a frame
func (r *Runner) recordEvents(ctx context.Context, f counter.Frame) error {

	for _, evt := range f.Events {

		monitoring.Debugf("run %s frame %d: object %d counted %s at %v",
			r.runID, f.Index, evt.ID, evt.Direction, evt.Centroid)

		if r.store == nil {
			continue
		}

		err := r.store.RecordCrossing(ctx, store.Crossing{
			RunID:     r.runID,
			Frame:     f.Index,
			ObjectID:  evt.ID,
			Direction: evt.Direction,
			X:         evt.Centroid.X,
			Y:         evt.Centroid.Y,
			Recorded:  time.Now(),
		})

		if err != nil {
			return fmt.Errorf("run %s: %w", r.runID, err)
		}
	}

	return nil
}

// output renders the frame and passes it to the sinks and display window.
// It returns true when the user asked to quit.
func (r *Runner) output(img *gocv.Mat, f counter.Frame, step schedule.Step) (bool, error) {

	if len(r.sinks) == 0 && r.window == nil {
		return false, nil
	}

	if r.cfg.DrawBoxes {
		render.Boxes(img, step.Rects, 1)
	}

	render.Zone(img, r.counter.Zone(), 1)
	render.Trail(img, f.IDs(), r.counter, render.DefaultTrailStyle())
	render.Objects(img, f.Objects, render.DefaultObjectStyle())
	render.Info(img, render.InfoLines(f, step.Status), render.InfoFont())

	for _, sink := range r.sinks {
		if err := sink.Write(*img); err != nil {
			return false, fmt.Errorf("error writing frame %d: %w", f.Index, err)
		}
	}

	if r.window != nil {
		r.window.IMShow(*img)

		if r.window.WaitKey(1)&0xFF == 'q' {
			return true, nil
		}
	}

	return false, nil
}

// closeOutputs releases the sinks and display window
func (r *Runner) closeOutputs() {

	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil {
			monitoring.Logf("run %s: error closing output: %v", r.runID, err)
		}
	}

	r.sinks = nil

	if r.window != nil {
		r.window.Close()
		r.window = nil
	}
}
