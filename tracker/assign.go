package tracker

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// match binds the identity at row index to the detection at col index of a
// distance matrix
type match struct {
	row, col int
}

// greedyAssign visits rows in ascending order of their smallest distance and
// binds each to its nearest unused column. A row whose nearest unused column
// is further than maxDist is left unmatched. Ties resolve to the earlier row
// and lowest column index.
func greedyAssign(d *mat.Dense, maxDist float64) []match {

	if d == nil {
		return nil
	}

	rows, cols := d.Dims()

	mins := make([]float64, rows)
	order := make([]int, rows)

	for i := 0; i < rows; i++ {
		order[i] = i
		mins[i] = floats.Min(d.RawRowView(i))
	}

	sort.SliceStable(order, func(a, b int) bool {
		return mins[order[a]] < mins[order[b]]
	})

	usedCols := make([]bool, cols)
	matches := make([]match, 0, rows)

	for _, row := range order {

		best := -1
		bestDist := math.Inf(1)

		for col := 0; col < cols; col++ {
			if usedCols[col] {
				continue
			}
			if v := d.At(row, col); v < bestDist {
				best = col
				bestDist = v
			}
		}

		// every column is already taken
		if best < 0 {
			continue
		}

		if bestDist > maxDist {
			continue
		}

		usedCols[best] = true
		matches = append(matches, match{row: row, col: best})
	}

	return matches
}

// optimalAssign finds the assignment with minimum total distance where no
// bound pair is further apart than maxDist. The rectangular matrix is
// extended to a square one so any row or column may stay unassigned at a
// cost just over half the gate each, which keeps a pair at exactly maxDist
// cheaper than leaving both sides unassigned.
func optimalAssign(d *mat.Dense, maxDist float64) ([]match, error) {

	if d == nil {
		return nil, nil
	}

	rows, cols := d.Dims()
	n := rows + cols

	gate := math.Min(maxDist, largeCost/4)

	cost := make([][]float64, n)

	for i := range cost {
		cost[i] = make([]float64, n)

		for j := range cost[i] {
			switch {
			case i < rows && j < cols:
				c := d.At(i, j)
				if c > gate {
					c = gate + 2
				}
				cost[i][j] = c
			case i >= rows && j >= cols:
				cost[i][j] = 0
			default:
				cost[i][j] = (gate + 1) / 2
			}
		}
	}

	rowsol, _, err := newLapSolver(cost).solve()

	if err != nil {
		return nil, fmt.Errorf("error solving assignment: %w", err)
	}

	matches := make([]match, 0, rows)

	for row := 0; row < rows; row++ {
		col := rowsol[row]

		if col < 0 || col >= cols {
			continue
		}

		if d.At(row, col) > maxDist {
			continue
		}

		matches = append(matches, match{row: row, col: col})
	}

	return matches, nil
}
