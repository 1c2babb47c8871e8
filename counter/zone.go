package counter

import "fmt"

// Direction is the classification of a zone crossing
type Direction int

const (
	// In is an object entering the zone
	In Direction = 1
	// Out is an object leaving the zone
	Out Direction = 2
)

// String implements fmt.Stringer
func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Zone is the counting region of a frame, made of a horizontal band covering
// the middle third of the width and a vertical band covering the middle half
// of the height
type Zone struct {
	XLow, XHigh int
	YLow, YHigh int
}

// NewZone returns the counting zone for a frame of the given size
func NewZone(width, height int) Zone {
	return Zone{
		XLow:  width / 3,
		XHigh: 2 * width / 3,
		YLow:  height / 4,
		YHigh: 3 * height / 4,
	}
}

// Classify decides whether an object whose reference position is (cx, cy)
// and whose extrapolated position is (px, py) crossed the zone. The rules
// are evaluated in order and the first to match wins.
func (z Zone) Classify(cx, cy, px, py float64) (Direction, bool) {

	switch {
	case z.entering(cx, cy, px, py):
		return In, true

	case z.insideHorizontal(cx, cy):
		return In, true

	case z.leaving(cx, cy, px, py):
		return Out, true
	}

	return 0, false
}

// entering holds when the reference point lies outside the bands on both
// axes and the extrapolated point is at or past both edges on each axis
func (z Zone) entering(cx, cy, px, py float64) bool {

	xl, xh := float64(z.XLow), float64(z.XHigh)
	yl, yh := float64(z.YLow), float64(z.YHigh)

	return (cx < xl || cx > xh) && px >= xl && px >= xh &&
		(cy < yl || cy > yh) && py >= yl && py >= yh
}

// insideHorizontal holds when the reference point is within the horizontal
// band. The vertical test (cy >= YLow || cy <= YHigh) is always true so the
// vertical position never affects the outcome.
func (z Zone) insideHorizontal(cx, cy float64) bool {

	xl, xh := float64(z.XLow), float64(z.XHigh)
	yl, yh := float64(z.YLow), float64(z.YHigh)

	return cx >= xl && cx <= xh && (cy >= yl || cy <= yh)
}

// leaving holds when the reference point is inside both bands and the
// extrapolated point falls outside any of the four edges
func (z Zone) leaving(cx, cy, px, py float64) bool {

	xl, xh := float64(z.XLow), float64(z.XHigh)
	yl, yh := float64(z.YLow), float64(z.YHigh)

	return cx >= xl && cx <= xh && cy >= yl && cy <= yh &&
		(px < xl || px > xh || py < yl || py > yh)
}

// Contains reports whether the point lies within both bands
func (z Zone) Contains(x, y float64) bool {
	return x >= float64(z.XLow) && x <= float64(z.XHigh) &&
		y >= float64(z.YLow) && y <= float64(z.YHigh)
}
