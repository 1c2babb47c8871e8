package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/swdee/go-peoplecount/counter"
	"github.com/swdee/go-peoplecount/tracker"
	"gocv.io/x/gocv"
)

// ObjectStyle defines the parameters used for rendering tracked identities
type ObjectStyle struct {
	Font Font
	// LabelOffset is subtracted from the centroid to position the ID label
	LabelOffset int
	// DotRadius is the radius of the filled centroid circle
	DotRadius int
	// DotColor is the color of the centroid circle
	DotColor color.RGBA
}

// DefaultObjectStyle returns default identity style settings
func DefaultObjectStyle() ObjectStyle {
	return ObjectStyle{
		Font:        IDFont(),
		LabelOffset: 10,
		DotRadius:   4,
		DotColor:    Green,
	}
}

// LabelPosition returns the text origin of the ID label for a centroid
func (s ObjectStyle) LabelPosition(c tracker.Point) image.Point {
	return image.Pt(c.X-s.LabelOffset, c.Y-s.LabelOffset)
}

// Objects renders the ID label and centroid dot of every tracked identity
func Objects(img *gocv.Mat, objects map[int]tracker.Point, style ObjectStyle) {

	ids := make([]int, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		c := objects[id]
		pos := style.LabelPosition(c)

		style.Font.put(img, fmt.Sprintf("ID %d", id), pos)
		gocv.Circle(img, c.Image(), style.DotRadius, style.DotColor, -1)
	}
}

// Boxes renders the bounding boxes passed to the identity tracker
func Boxes(img *gocv.Mat, rects []tracker.Rect, lineThickness int) {
	for i, r := range rects {
		gocv.Rectangle(img, r.Image(), IDColor(i), lineThickness)
	}
}

// Zone renders the counting zone rectangle
func Zone(img *gocv.Mat, z counter.Zone, lineThickness int) {
	gocv.Rectangle(img, image.Rect(z.XLow, z.YLow, z.XHigh, z.YHigh),
		Yellow, lineThickness)
}

// InfoLine is a single key value pair of the information panel
type InfoLine struct {
	Key   string
	Value string
}

// String implements fmt.Stringer
func (l InfoLine) String() string {
	return fmt.Sprintf("%s: %s", l.Key, l.Value)
}

// InfoLines returns the information panel lines for a processed frame
func InfoLines(f counter.Frame, status fmt.Stringer) []InfoLine {
	return []InfoLine{
		{Key: "In", Value: fmt.Sprint(f.TotalIn)},
		{Key: "Out", Value: fmt.Sprint(f.TotalOut)},
		{Key: "Status", Value: status.String()},
	}
}

// InfoPosition returns the text origin of the i'th information line, lines
// stack upwards from the bottom left corner of the image
func InfoPosition(i, imgHeight int) image.Point {
	return image.Pt(10, imgHeight-((i*20)+20))
}

// Info renders the information panel in the bottom left corner
func Info(img *gocv.Mat, lines []InfoLine, font Font) {
	for i, l := range lines {
		pos := InfoPosition(i, img.Rows())
		font.put(img, l.String(), pos)
	}
}
