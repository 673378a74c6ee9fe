// Package reduce contracts a chunk's reduction_space — the per-term,
// per-coupling partial outputs left behind by the kronmult batcher — into
// the per-row-element update vector, via one gemv per row against a
// sliced all-ones vector. Grounded on the teacher's Gemv dispatch
// (internal/tensor/level2.go, itself adapted from the teacher's
// fp32/level2.go).
package reduce

import (
	"fmt"

	"github.com/itohio/kronsolve/internal/tensor"
)

// Row reduces one row-element's slice of reduction_space into its update
// vector: update = reductionBlock * ones, where reductionBlock is viewed
// as an (elemSize x width) matrix (width = termCount * connectedCount for
// this row) and ones is a length-width all-ones vector.
func Row[T tensor.Scalar](update tensor.VectorView[T], reductionBlock tensor.MatrixView[T], ones tensor.VectorView[T]) {
	if reductionBlock.Cols() != ones.Size() {
		panic(fmt.Sprintf("reduce: reduction block has %d columns but ones vector has size %d", reductionBlock.Cols(), ones.Size()))
	}
	if update.Size() != reductionBlock.Rows() {
		panic(fmt.Sprintf("reduce: update size %d does not match reduction block row count %d", update.Size(), reductionBlock.Rows()))
	}
	tensor.Gemv[T](update, reductionBlock, ones, false, 1, 0)
}

// Ones returns a length-n vector of ones, for slicing into per-row
// reduction calls. Allocated at the workspace's maximum required length
// and sliced by the caller per row.
func Ones[T tensor.Scalar](n int) *tensor.Vector[T] {
	v := tensor.NewVector[T](n)
	for i := 0; i < n; i++ {
		v.Set(i, 1)
	}
	return v
}
