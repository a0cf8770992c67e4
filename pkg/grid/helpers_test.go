package grid_test

import (
	"math/rand/v2"
	"testing"

	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, layout string, f grid.Factory) *grid.Grid {
	t.Helper()
	g, err := grid.ParseLayout(layout, f)
	require.NoError(t, err)
	return g
}

func square(t *testing.T, g *grid.Grid, x, y int) *grid.Square {
	t.Helper()
	sq, ok := g.Square(grid.Position{X: x, Y: y})
	require.True(t, ok, "no square at (%d, %d)", x, y)
	return sq
}

func ctfFactory(rng *rand.Rand) grid.Factory {
	return grid.NewCTFFactory(rng)
}

// countingEffect records how many times it ran.
type countingEffect struct {
	runs *int
}

func (c countingEffect) Execute(grid.Object) error {
	*c.runs++
	return nil
}

// failingEffect records its run and fails with err.
type failingEffect struct {
	runs *int
	err  error
}

func (f failingEffect) Execute(grid.Object) error {
	*f.runs++
	return f.err
}
