package grid_test

import (
	"testing"

	"github.com/bodgit/csdat/grid"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	g := fromRows([][]float64{
		{2, 4},
		{6, 10},
	})

	n, min, max := grid.Normalize(g)

	assert.Equal(t, 2.0, min)
	assert.Equal(t, 10.0, max)
	assert.Equal(t, [][]float64{
		{0, 0.25},
		{0.5, 1},
	}, cells(n))
}

func TestNormalizeRoundTrip(t *testing.T) {
	g := fromRows([][]float64{
		{1.5, 128, 0.0078125},
		{511.9921875, 64.25, 3},
	})

	n, min, max := grid.Normalize(g)
	out := grid.Denormalize(n, min, max)

	if diff := cmp.Diff(cells(g), cells(out), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFlat(t *testing.T) {
	g := fromRows([][]float64{
		{5, 5},
		{5, 5},
	})

	n, min, max := grid.Normalize(g)

	assert.Equal(t, 5.0, min)
	assert.Equal(t, 5.0, max)
	assert.Equal(t, grid.New(2, 2), n)
}

func TestDenormalizeFlat(t *testing.T) {
	// A flat terrain reconstructs to max, not to pixel*max
	out := grid.Denormalize(grid.New(2, 2), 5, 5)

	assert.Equal(t, [][]float64{
		{5, 5},
		{5, 5},
	}, cells(out))
}
