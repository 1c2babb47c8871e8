package counter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swdee/go-peoplecount/tracker"
)

// person returns a 20x40 detection centered on x,y
func person(x, y int) tracker.Rect {
	return tracker.NewRect(float64(x-10), float64(y-20), float64(x+10), float64(y+20))
}

func TestNewCounterInvalidFrameSize(t *testing.T) {

	_, err := New(tracker.DefaultConfig(), 0, 200)
	assert.ErrorIs(t, err, ErrFrameSize)

	_, err = New(tracker.DefaultConfig(), 300, -1)
	assert.ErrorIs(t, err, ErrFrameSize)

	cfg := tracker.DefaultConfig()
	cfg.MaxDistance = -1
	_, err = New(cfg, 300, 200)
	assert.ErrorIs(t, err, tracker.ErrInvalidConfig)
}

func TestCounterScenario(t *testing.T) {

	c, err := New(tracker.DefaultConfig(), 300, 200)
	require.NoError(t, err)

	assert.Equal(t, Zone{XLow: 100, XHigh: 200, YLow: 50, YHigh: 150}, c.Zone())

	var events []CrossingEvent

	for i, x := range []int{50, 90, 130, 170, 210, 250, 250, 250} {
		f := c.Update(i, []tracker.Rect{person(x, 100)})

		require.Equal(t, []int{0}, f.IDs(), "frame %d", i)
		assert.Equal(t, i, f.Index)
		events = append(events, f.Events...)
	}

	require.Len(t, events, 1)
	assert.Equal(t, In, events[0].Direction)
	assert.Equal(t, 0, events[0].ID)

	in, out := c.Totals()
	assert.Equal(t, 1, in)
	assert.Equal(t, 0, out)

	assert.Len(t, c.History(0), 8)
}

func TestCounterTotalsWithMultipleIdentities(t *testing.T) {

	c, err := New(tracker.DefaultConfig(), 300, 200)
	require.NoError(t, err)

	// two people walking towards the center from either side and one
	// standing still outside the band
	frames := [][]tracker.Rect{
		{person(60, 80), person(240, 120), person(20, 190)},
		{person(80, 80), person(220, 120), person(20, 190)},
		{person(100, 80), person(200, 120), person(20, 190)},
		{person(120, 80), person(180, 120), person(20, 190)},
		{person(140, 80), person(160, 120), person(20, 190)},
		{person(160, 80), person(140, 120), person(20, 190)},
		{person(180, 80), person(120, 120), person(20, 190)},
	}

	var last Frame

	for i, rects := range frames {
		last = c.Update(i, rects)
	}

	assert.Equal(t, 2, last.TotalIn)
	assert.Equal(t, 0, last.TotalOut)

	want := map[int]tracker.Point{
		0: {X: 180, Y: 80},
		1: {X: 120, Y: 120},
		2: {X: 20, Y: 190},
	}

	if diff := cmp.Diff(want, last.Objects); diff != "" {
		t.Errorf("unexpected objects (-want +got):\n%s", diff)
	}
}

func TestCounterDeterministic(t *testing.T) {

	frames := [][]tracker.Rect{
		{person(60, 80), person(280, 120)},
		{person(75, 82), person(262, 118)},
		{},
		{person(105, 86), person(230, 115), person(20, 20)},
		{person(120, 90), person(212, 112), person(22, 22)},
		{person(135, 95)},
	}

	run := func() []Frame {
		c, err := New(tracker.DefaultConfig(), 300, 200)
		require.NoError(t, err)

		var out []Frame
		for i, rects := range frames {
			out = append(out, c.Update(i, rects))
		}
		return out
	}

	first := run()

	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, run()); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestTally(t *testing.T) {

	var tl Tally

	tl.Add(CrossingEvent{Direction: In})
	tl.Add(CrossingEvent{Direction: Out})
	tl.Add(CrossingEvent{Direction: In})
	tl.Add(CrossingEvent{})

	assert.Equal(t, 2, tl.In())
	assert.Equal(t, 1, tl.Out())
}
