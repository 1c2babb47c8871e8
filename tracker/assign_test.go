package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGreedyAssign(t *testing.T) {

	tests := []struct {
		name    string
		rows    int
		cols    int
		data    []float64
		maxDist float64
		want    []match
	}{
		{
			name:    "nearest first",
			rows:    2,
			cols:    2,
			data:    []float64{1.4, 139, 139, 1.4},
			maxDist: 50,
			want:    []match{{0, 0}, {1, 1}},
		},
		{
			name:    "row with smaller minimum wins contested column",
			rows:    2,
			cols:    2,
			data:    []float64{9, 45, 1, 35},
			maxDist: 50,
			want:    []match{{1, 0}, {0, 1}},
		},
		{
			name:    "over max distance left unmatched",
			rows:    2,
			cols:    1,
			data:    []float64{3, 70},
			maxDist: 50,
			want:    []match{{0, 0}},
		},
		{
			name:    "tie broken by column index",
			rows:    1,
			cols:    3,
			data:    []float64{5, 5, 5},
			maxDist: 50,
			want:    []match{{0, 0}},
		},
		{
			name:    "zero max distance only exact",
			rows:    2,
			cols:    2,
			data:    []float64{0, 4, 4, 1},
			maxDist: 0,
			want:    []match{{0, 0}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := mat.NewDense(tc.rows, tc.cols, tc.data)
			assert.Equal(t, tc.want, greedyAssign(d, tc.maxDist))
		})
	}
}

func TestOptimalAssign(t *testing.T) {

	d := mat.NewDense(2, 2, []float64{9, 45, 1, 35})

	got, err := optimalAssign(d, 50)
	require.NoError(t, err)
	assert.Equal(t, []match{{0, 0}, {1, 1}}, got)

	// both pairs beyond the gate
	d = mat.NewDense(1, 2, []float64{60, 90})

	got, err = optimalAssign(d, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOptimalAssignAtLimit(t *testing.T) {

	tests := []struct {
		name    string
		rows    int
		cols    int
		data    []float64
		maxDist float64
		want    []match
	}{
		{
			name:    "pair at max distance binds",
			rows:    1,
			cols:    1,
			data:    []float64{50},
			maxDist: 50,
			want:    []match{{0, 0}},
		},
		{
			name:    "zero max distance binds stationary objects",
			rows:    2,
			cols:    2,
			data:    []float64{0, 127.3, 127.3, 0},
			maxDist: 0,
			want:    []match{{0, 0}, {1, 1}},
		},
		{
			name:    "zero max distance rejects any motion",
			rows:    1,
			cols:    1,
			data:    []float64{0.5},
			maxDist: 0,
			want:    []match{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := optimalAssign(mat.NewDense(tt.rows, tt.cols, tt.data), tt.maxDist)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignNilMatrix(t *testing.T) {

	assert.Nil(t, greedyAssign(nil, 50))

	got, err := optimalAssign(nil, 50)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
