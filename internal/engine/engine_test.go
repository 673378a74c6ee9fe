package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/kronsolve/internal/grid"
	"github.com/itohio/kronsolve/internal/pde/catalog"
	"github.com/itohio/kronsolve/internal/tensor"
)

func TestEngineSizeMatchesTableAndDegree(t *testing.T) {
	desc, err := catalog.Build("continuity_1", 1, 2)
	require.NoError(t, err)
	table := grid.Build(1, desc.D(), grid.Sparse)

	e := New(desc, table, 2, 1<<20, 1<<20)
	assert.Equal(t, 2, e.ElemSize())
	assert.Equal(t, table.Size()*2, e.Size())
}

func TestEngineApplyZeroInputGivesZeroOutput(t *testing.T) {
	desc, err := catalog.Build("continuity_1", 1, 2)
	require.NoError(t, err)
	table := grid.Build(1, desc.D(), grid.Sparse)
	e := New(desc, table, 2, 1<<20, 1<<20)

	x := tensor.NewVector[float64](e.Size())
	y := tensor.NewVector[float64](e.Size())
	e.Apply(x.View(), y.View())
	for i := 0; i < y.Size(); i++ {
		assert.Equal(t, 0.0, y.At(i))
	}
}

func TestEngineApplyRunsOverMultiElementTable(t *testing.T) {
	desc, err := catalog.Build("continuity_3", 1, 2)
	require.NoError(t, err)
	table := grid.Build(1, desc.D(), grid.Sparse)
	require.Greater(t, table.Size(), 1)

	e := New(desc, table, 2, 1<<16, 1<<16)
	x0 := InitialCondition(desc, table, 2)
	y := tensor.NewVector[float64](e.Size())

	assert.NotPanics(t, func() {
		e.Apply(x0.View(), y.View())
	})
}

func TestEngineApplyMatchesAcrossWorkerCounts(t *testing.T) {
	desc, err := catalog.Build("continuity_3", 1, 2)
	require.NoError(t, err)
	table := grid.Build(1, desc.D(), grid.Sparse)
	require.Greater(t, table.Size(), 1)

	e := New(desc, table, 2, 1<<16, 1<<16)
	x0 := InitialCondition(desc, table, 2)

	e.SetWorkers(1)
	ySeq := tensor.NewVector[float64](e.Size())
	e.Apply(x0.View(), ySeq.View())

	e.SetWorkers(8)
	yPar := tensor.NewVector[float64](e.Size())
	e.Apply(x0.View(), yPar.View())

	for i := 0; i < ySeq.Size(); i++ {
		assert.InDelta(t, ySeq.At(i), yPar.At(i), 1e-12)
	}
}
