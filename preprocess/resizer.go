package preprocess

import (
	"image"

	"gocv.io/x/gocv"
)

// DefaultWidth is the frame width video is scaled to before detection and
// tracking
const DefaultWidth = 500

// Resizer scales frames to a fixed width whilst maintaining image aspect
type Resizer struct {
	// destWidth is the width to scale to
	destWidth int
	// srcWidth and srcHeight are the dimensions of the last source frame,
	// used to avoid recalculating scale for every frame
	srcWidth  int
	srcHeight int
	// resize dimensions
	resizeW int
	resizeH int
	// scale is the factor applied to source dimensions
	scale float64
}

// NewResizer returns a resizer that scales frames to the given width. A
// width of zero or less uses DefaultWidth.
func NewResizer(destWidth int) *Resizer {

	if destWidth <= 0 {
		destWidth = DefaultWidth
	}

	return &Resizer{
		destWidth: destWidth,
	}
}

// ScaledSize returns the dimensions of a srcWidth x srcHeight image scaled to
// destWidth with the height truncated to whole pixels
func ScaledSize(srcWidth, srcHeight, destWidth int) (int, int, float64) {

	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, 0
	}

	scale := float64(destWidth) / float64(srcWidth)

	return destWidth, int(float64(srcHeight) * scale), scale
}

// preCalc the scaling factors when the source dimensions change
func (r *Resizer) preCalc(srcWidth, srcHeight int) {

	if srcWidth == r.srcWidth && srcHeight == r.srcHeight {
		return
	}

	r.srcWidth = srcWidth
	r.srcHeight = srcHeight
	r.resizeW, r.resizeH, r.scale = ScaledSize(srcWidth, srcHeight, r.destWidth)
}

// Resize scales src into dest. An empty source leaves dest untouched and
// returns false.
func (r *Resizer) Resize(src gocv.Mat, dest *gocv.Mat) bool {

	if src.Empty() {
		return false
	}

	r.preCalc(src.Cols(), src.Rows())

	if r.resizeH <= 0 {
		return false
	}

	gocv.Resize(src, dest, image.Pt(r.resizeW, r.resizeH), 0, 0,
		gocv.InterpolationArea)

	return true
}

// Width returns the destination width
func (r *Resizer) Width() int {
	return r.destWidth
}

// Height returns the destination height of the last frame resized
func (r *Resizer) Height() int {
	return r.resizeH
}

// ScaleFactor returns the scale factor used in the last resize
func (r *Resizer) ScaleFactor() float64 {
	return r.scale
}
