package tracker

import (
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Point represents the x,y coordinates of the center of a bounding box
type Point struct {
	X, Y int
}

// Image converts the point into an image.Point
func (p Point) Image() image.Point {
	return image.Pt(p.X, p.Y)
}

// Distance returns the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return floats.Distance(
		[]float64{float64(a.X), float64(a.Y)},
		[]float64{float64(b.X), float64(b.Y)},
		2,
	)
}

// DistanceMatrix computes the pairwise Euclidean distances between rows and
// cols, where element (i, j) is the distance from rows[i] to cols[j]
func DistanceMatrix(rows, cols []Point) *mat.Dense {

	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}

	d := mat.NewDense(len(rows), len(cols), nil)

	for i, r := range rows {
		for j, c := range cols {
			d.Set(i, j, Distance(r, c))
		}
	}

	return d
}
