package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSDDetectObjects(t *testing.T) {

	personIdx := LabelIndex(VOCLabels, "person")
	require.Equal(t, 15, personIdx)

	output := []float32{
		// image, class, conf, x1, y1, x2, y2
		0, float32(personIdx), 0.9, 0.1, 0.2, 0.3, 0.6,
		0, 0, 0.99, 0, 0, 1, 1, // background
		0, 7, 0.5, 0.5, 0.5, 0.75, 1.0, // car
		0, 42, 0.9, 0, 0, 1, 1, // unknown class
	}

	ssd := NewSSD(MobileNetSSDParams())
	dets := ssd.DetectObjects(output, 500, 300)

	require.Len(t, dets, 2)

	assert.Equal(t, personIdx, dets[0].Class)
	assert.InDelta(t, 50, dets[0].Box.Left, 1e-4)
	assert.InDelta(t, 60, dets[0].Box.Top, 1e-4)
	assert.InDelta(t, 150, dets[0].Box.Right, 1e-4)
	assert.InDelta(t, 180, dets[0].Box.Bottom, 1e-4)
	assert.Equal(t, int64(1), dets[0].ID)

	assert.Equal(t, 7, dets[1].Class)
	assert.Equal(t, int64(2), dets[1].ID)
}

func TestSSDTruncatedOutput(t *testing.T) {

	ssd := NewSSD(MobileNetSSDParams())

	// trailing partial row is ignored
	dets := ssd.DetectObjects([]float32{0, 15, 0.8, 0, 0, 0.5, 0.5, 0, 15}, 100, 100)
	assert.Len(t, dets, 1)

	assert.Empty(t, ssd.DetectObjects(nil, 100, 100))
}

func TestFilter(t *testing.T) {

	dets := []DetectResult{
		{Class: 15, Probability: 0.3},
		{Class: 15, Probability: 0.31},
		{Class: 7, Probability: 0.9},
		{Class: 15, Probability: 0.9},
	}

	got := Filter(dets, 0.3, 15)

	require.Len(t, got, 2)
	assert.Equal(t, float32(0.31), got[0].Probability)
	assert.Equal(t, float32(0.9), got[1].Probability)
}

func TestBoxRect(t *testing.T) {

	b := BoxRect{Left: 1, Top: 2, Right: 11, Bottom: 22}
	r := b.Rect()

	assert.Equal(t, 10.0, r.Width())
	assert.Equal(t, 20.0, r.Height())
	assert.NoError(t, r.Validate())
}

func TestLabelIndex(t *testing.T) {
	assert.Equal(t, 0, LabelIndex(VOCLabels, "background"))
	assert.Equal(t, -1, LabelIndex(VOCLabels, "unicorn"))
}
