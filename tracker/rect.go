package tracker

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidDetection is returned when a bounding box has non-finite or
// inverted coordinates
var ErrInvalidDetection = errors.New("invalid detection")

// Rect represents an axis aligned bounding box in (startX, startY, endX, endY)
// format for a single frame
type Rect struct {
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
}

// NewRect creates a new Rect with the given corner coordinates
func NewRect(startX, startY, endX, endY float64) Rect {
	return Rect{
		StartX: startX,
		StartY: startY,
		EndX:   endX,
		EndY:   endY,
	}
}

// RectFromImage converts an image.Rectangle into a Rect
func RectFromImage(r image.Rectangle) Rect {
	return NewRect(float64(r.Min.X), float64(r.Min.Y),
		float64(r.Max.X), float64(r.Max.Y))
}

// Width returns the width of the rectangle
func (r Rect) Width() float64 {
	return r.EndX - r.StartX
}

// Height returns the height of the rectangle
func (r Rect) Height() float64 {
	return r.EndY - r.StartY
}

// Validate checks the rectangle has finite coordinates and that the end
// corner is not before the start corner
func (r Rect) Validate() error {

	for _, v := range []float64{r.StartX, r.StartY, r.EndX, r.EndY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %v", ErrInvalidDetection, r)
		}
	}

	if r.EndX < r.StartX || r.EndY < r.StartY {
		return fmt.Errorf("%w: inverted coordinates in %v", ErrInvalidDetection, r)
	}

	return nil
}

// Centroid returns the center point of the rectangle truncated onto the
// pixel grid
func (r Rect) Centroid() Point {
	return Point{
		X: int((r.StartX + r.EndX) / 2.0),
		Y: int((r.StartY + r.EndY) / 2.0),
	}
}

// Image converts the rectangle into an image.Rectangle, as needed for
// seeding gocv trackers and drawing
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.StartX), int(r.StartY), int(r.EndX), int(r.EndY))
}

// String implements fmt.Stringer
func (r Rect) String() string {
	return fmt.Sprintf("(%.1f,%.1f)-(%.1f,%.1f)", r.StartX, r.StartY, r.EndX, r.EndY)
}
