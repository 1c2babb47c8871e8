// Package report renders the cumulative In and Out counts of a run as a
// line chart.
package report

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptySeries is returned when saving a series with no samples
var ErrEmptySeries = errors.New("series has no samples")

// Sample is the running totals at a frame
type Sample struct {
	Frame int
	In    int
	Out   int
}

// Series accumulates per frame totals of a run
type Series struct {
	// Title of the chart
	Title   string
	samples []Sample
}

// NewSeries returns an empty series with the given chart title
func NewSeries(title string) *Series {
	return &Series{Title: title}
}

// Add a sample. Consecutive samples with unchanged totals only extend the
// series to the latest frame.
func (s *Series) Add(frame, in, out int) {

	n := len(s.samples)

	if n >= 2 && s.samples[n-1].In == in && s.samples[n-1].Out == out &&
		s.samples[n-2].In == in && s.samples[n-2].Out == out {
		s.samples[n-1].Frame = frame
		return
	}

	s.samples = append(s.samples, Sample{Frame: frame, In: in, Out: out})
}

// Samples returns a copy of the recorded samples
func (s *Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Len returns the number of samples held
func (s *Series) Len() int {
	return len(s.samples)
}

// Plot builds the chart of cumulative In and Out counts against frame number
func (s *Series) Plot() (*plot.Plot, error) {

	if len(s.samples) == 0 {
		return nil, ErrEmptySeries
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Count"

	inPts := make(plotter.XYs, 0, len(s.samples))
	outPts := make(plotter.XYs, 0, len(s.samples))

	for _, smp := range s.samples {
		inPts = append(inPts, plotter.XY{X: float64(smp.Frame), Y: float64(smp.In)})
		outPts = append(outPts, plotter.XY{X: float64(smp.Frame), Y: float64(smp.Out)})
	}

	lines := []struct {
		label string
		pts   plotter.XYs
		clr   color.RGBA
	}{
		{"In", inPts, color.RGBA{R: 26, G: 147, B: 52, A: 255}},
		{"Out", outPts, color.RGBA{R: 255, G: 56, B: 56, A: 255}},
	}

	for _, l := range lines {
		line, err := plotter.NewLine(l.pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s line: %w", l.label, err)
		}
		line.Color = l.clr
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(l.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10

	return p, nil
}

// Save renders the chart to path, the image format is taken from the file
// extension
func (s *Series) Save(path string) error {

	p, err := s.Plot()
	if err != nil {
		return err
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}

	return nil
}
