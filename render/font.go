package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
	}
}

// IDFont returns the font used to label tracked identities
func IDFont() Font {
	f := DefaultFont()
	f.Color = Green
	f.Thickness = 2
	f.LineType = gocv.Line8
	return f
}

// InfoFont returns the font used for the counter information lines
func InfoFont() Font {
	f := DefaultFont()
	f.Scale = 0.6
	f.Color = Red
	f.Thickness = 2
	f.LineType = gocv.Line8
	return f
}

// put writes text on the image at pos using the font
func (f Font) put(img *gocv.Mat, text string, pos image.Point) {
	gocv.PutTextWithParams(img, text, pos, f.Face, f.Scale, f.Color,
		f.Thickness, f.LineType, false)
}
