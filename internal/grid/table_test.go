package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardInverseRoundTrip(t *testing.T) {
	tbl := Build(3, 2, Sparse)
	for i := 0; i < tbl.Size(); i++ {
		level, cell := tbl.Inverse(i)
		got := tbl.Forward(level, cell)
		assert.Equal(t, i, got)
	}
}

func TestInverseForwardRoundTrip(t *testing.T) {
	tbl := Build(2, 1, Full)
	level := []int{1}
	cell := []int{0}
	linear := tbl.Forward(level, cell)
	gotLevel, gotCell := tbl.Inverse(linear)
	assert.Equal(t, level, gotLevel)
	assert.Equal(t, cell, gotCell)
}

func TestSparseGrid1DLevel3CountMatchesCellCounts(t *testing.T) {
	// 1D, so the sparse constraint sum(level) <= 3 is just level <= 3;
	// total points = sum of per-level cell counts: 1+1+2+4 = 8.
	tbl := Build(3, 1, Sparse)
	assert.Equal(t, 8, tbl.Size())
}

func TestLevelTupleCountLevel3Dim3(t *testing.T) {
	// Sum(level) <= 3 over 3 dimensions: C(3+3,3) = 20 admissible level
	// tuples, matching the continuity_3 scenario.
	assert.Equal(t, 20, LevelTupleCount(3, 3))
}

func TestSparseGridSmallerThanFull(t *testing.T) {
	sparse := Build(3, 3, Sparse)
	full := Build(3, 3, Full)
	assert.Less(t, sparse.Size(), full.Size())
}

func TestForwardPanicsOnUnknownIndex(t *testing.T) {
	tbl := Build(1, 1, Sparse)
	assert.Panics(t, func() {
		tbl.Forward([]int{5}, []int{0})
	})
}

func TestInversePanicsOutOfRange(t *testing.T) {
	tbl := Build(1, 1, Sparse)
	assert.Panics(t, func() {
		tbl.Inverse(tbl.Size())
	})
}

func TestIdx1D(t *testing.T) {
	assert.Equal(t, 0, Idx1D(0, 0))
	assert.Equal(t, 1, Idx1D(1, 0))
	assert.Equal(t, 2, Idx1D(2, 0))
	assert.Equal(t, 3, Idx1D(2, 1))
}

func TestEnumerationOrderDeterministic(t *testing.T) {
	a := Build(2, 2, Sparse)
	b := Build(2, 2, Sparse)
	require.Equal(t, a.Size(), b.Size())
	for i := 0; i < a.Size(); i++ {
		al, ac := a.Inverse(i)
		bl, bc := b.Inverse(i)
		assert.Equal(t, al, bl)
		assert.Equal(t, ac, bc)
	}
}
