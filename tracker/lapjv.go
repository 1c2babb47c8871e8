package tracker

import (
	"errors"
)

// largeCost is used as infinity inside the solver, costs fed to it must be
// well below this value
const largeCost = 1000000.0

// lapSolver solves the dense square linear assignment problem with the
// Jonker-Volgenant algorithm
type lapSolver struct {
	n    int
	cost [][]float64
	// x maps row to assigned column, y maps column to assigned row
	x, y []int
	// v holds the column dual variables
	v        []float64
	freeRows []int
}

// newLapSolver returns a solver for the given n x n cost matrix
func newLapSolver(cost [][]float64) *lapSolver {
	n := len(cost)
	return &lapSolver{
		n:        n,
		cost:     cost,
		x:        make([]int, n),
		y:        make([]int, n),
		v:        make([]float64, n),
		freeRows: make([]int, n),
	}
}

// solve runs the solver and returns the row to column and column to row
// assignments
func (s *lapSolver) solve() (rowsol, colsol []int, err error) {

	if s.n == 0 {
		return nil, nil, nil
	}

	free := s.columnReduction()

	for i := 0; free > 0 && i < 2; i++ {
		free = s.augmentingRowReduction(free)
	}

	if free > 0 {
		if err := s.augment(free); err != nil {
			return nil, nil, err
		}
	}

	return s.x, s.y, nil
}

// columnReduction performs column reduction and reduction transfer, returning
// the number of rows left unassigned
func (s *lapSolver) columnReduction() int {

	n := s.n
	unique := make([]bool, n)

	for i := 0; i < n; i++ {
		s.x[i] = -1
		s.v[i] = largeCost
		s.y[i] = 0
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if c := s.cost[i][j]; c < s.v[j] {
				s.v[j] = c
				s.y[j] = i
			}
		}
	}

	for i := range unique {
		unique[i] = true
	}

	for j := n - 1; j >= 0; j-- {
		i := s.y[j]
		if s.x[i] < 0 {
			s.x[i] = j
		} else {
			unique[i] = false
			s.y[j] = -1
		}
	}

	free := 0

	for i := 0; i < n; i++ {
		if s.x[i] < 0 {
			s.freeRows[free] = i
			free++
			continue
		}

		if !unique[i] {
			continue
		}

		j := s.x[i]
		minVal := largeCost

		for j2 := 0; j2 < n; j2++ {
			if j2 == j {
				continue
			}
			if c := s.cost[i][j2] - s.v[j2]; c < minVal {
				minVal = c
			}
		}

		s.v[j] -= minVal
	}

	return free
}

// augmentingRowReduction attempts to assign the free rows by lowering the
// dual of their best column, returning the number of rows still free
func (s *lapSolver) augmentingRowReduction(free int) int {

	n := s.n
	current := 0
	newFree := 0
	rrCnt := 0

	for current < free {

		rrCnt++
		freeI := s.freeRows[current]
		current++

		// find the smallest and second smallest reduced cost in the row
		j1 := 0
		v1 := s.cost[freeI][0] - s.v[0]
		j2 := -1
		v2 := largeCost

		for j := 1; j < n; j++ {
			c := s.cost[freeI][j] - s.v[j]
			if c >= v2 {
				continue
			}
			if c >= v1 {
				v2 = c
				j2 = j
			} else {
				v2 = v1
				v1 = c
				j2 = j1
				j1 = j
			}
		}

		i0 := s.y[j1]
		v1New := s.v[j1] - (v2 - v1)
		v1Lowers := v1New < s.v[j1]

		if rrCnt < current*n {
			if v1Lowers {
				s.v[j1] = v1New
			} else if i0 >= 0 && j2 >= 0 {
				j1 = j2
				i0 = s.y[j2]
			}

			if i0 >= 0 {
				if v1Lowers {
					current--
					s.freeRows[current] = i0
				} else {
					s.freeRows[newFree] = i0
					newFree++
				}
			}
		} else if i0 >= 0 {
			s.freeRows[newFree] = i0
			newFree++
		}

		s.x[freeI] = j1
		s.y[j1] = freeI
	}

	return newFree
}

// augment assigns each remaining free row along a shortest augmenting path
func (s *lapSolver) augment(free int) error {

	pred := make([]int, s.n)

	for _, freeI := range s.freeRows[:free] {

		j := s.shortestPath(freeI, pred)

		if j < 0 || j >= s.n {
			return errors.New("augmenting path ended outside cost matrix")
		}

		i := -1
		steps := 0

		for i != freeI {
			i = pred[j]
			s.y[j] = i
			j, s.x[i] = s.x[i], j
			steps++

			if steps >= s.n {
				return errors.New("augmenting path did not terminate")
			}
		}
	}

	return nil
}

// shortestPath runs one modified Dijkstra search from startI and returns the
// free column the path ends on
func (s *lapSolver) shortestPath(startI int, pred []int) int {

	n := s.n
	lo, hi := 0, 0
	finalJ := -1
	nReady := 0
	cols := make([]int, n)
	d := make([]float64, n)

	for i := 0; i < n; i++ {
		cols[i] = i
		pred[i] = startI
		d[i] = s.cost[startI][i] - s.v[i]
	}

	for finalJ == -1 {
		// SCAN list exhausted, collect the next set of minimum columns
		if lo == hi {
			nReady = lo
			hi = s.findMinColumns(lo, d, cols)

			for k := lo; k < hi; k++ {
				if j := cols[k]; s.y[j] < 0 {
					finalJ = j
				}
			}
		}

		if finalJ == -1 {
			finalJ = s.scan(&lo, &hi, d, cols, pred)
		}
	}

	mind := d[cols[lo]]

	for k := 0; k < nReady; k++ {
		j := cols[k]
		s.v[j] += d[j] - mind
	}

	return finalJ
}

// findMinColumns moves the columns with minimum d[j] to the front of the
// TODO region starting at lo and returns the new end of the SCAN list
func (s *lapSolver) findMinColumns(lo int, d []float64, cols []int) int {

	hi := lo + 1
	mind := d[cols[lo]]

	for k := hi; k < s.n; k++ {
		j := cols[k]

		if d[j] > mind {
			continue
		}

		if d[j] < mind {
			hi = lo
			mind = d[j]
		}

		cols[k] = cols[hi]
		cols[hi] = j
		hi++
	}

	return hi
}

// scan relaxes the TODO columns through each column on the SCAN list and
// returns a free column reached at minimum distance, or -1
func (s *lapSolver) scan(lo, hi *int, d []float64, cols, pred []int) int {

	for *lo != *hi {

		j := cols[*lo]
		*lo++
		i := s.y[j]
		mind := d[j]
		h := s.cost[i][j] - s.v[j] - mind

		for k := *hi; k < s.n; k++ {
			j = cols[k]
			reduced := s.cost[i][j] - s.v[j] - h

			if reduced >= d[j] {
				continue
			}

			d[j] = reduced
			pred[j] = i

			if reduced == mind {
				if s.y[j] < 0 {
					return j
				}

				cols[k] = cols[*hi]
				cols[*hi] = j
				(*hi)++
			}
		}
	}

	return -1
}
