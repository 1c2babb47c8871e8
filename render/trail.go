package render

import (
	"image/color"

	"github.com/swdee/go-peoplecount/tracker"
	"gocv.io/x/gocv"
)

// HistorySource provides the centroid history of a tracked identity
type HistorySource interface {
	History(id int) []tracker.Point
}

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// palette color of the identity.  If set to false then use the color
	// specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// MaxPoints limits the trail to the most recent points, zero draws the
	// full history
	MaxPoints int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      true,
		LineColor:     Yellow,
		LineThickness: 1,
		MaxPoints:     50,
	}
}

// Trail draws the centroid history of each identity as a line on the
// source image
func Trail(img *gocv.Mat, ids []int, src HistorySource, style TrailStyle) {

	for _, id := range ids {

		lineClr := style.LineColor

		if style.LineSame {
			lineClr = IDColor(id)
		}

		points := src.History(id)

		if style.MaxPoints > 0 && len(points) > style.MaxPoints {
			points = points[len(points)-style.MaxPoints:]
		}

		for i := 1; i < len(points); i++ {
			// draw line segment of trail
			gocv.Line(img, points[i-1].Image(), points[i].Image(),
				lineClr, style.LineThickness)
		}
	}
}
