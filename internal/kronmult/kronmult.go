// Package kronmult realizes the action of a D-dimensional Kronecker-product
// operator on a flattened coefficient vector as a schedule of batched dense
// gemms: the hardest, most performance-critical subsystem of the engine.
// Grounded on the teacher's BLAS-dispatch style (internal/tensor, itself
// adapted from pkg/core/math/primitive's level2/level3 routines) for the
// per-gemm numerics, and on internal/batch (adapted from the teacher's
// fp32/batched.go strided-batch dispatch) for operand scheduling: every
// coupling's per-stage operands are assigned into a batch.Batch and issued
// with one batch.BatchedGemm call per stage, rather than one gemm call per
// coupling.
package kronmult

import (
	"fmt"
	"sync"

	"github.com/itohio/kronsolve/internal/batch"
	"github.com/itohio/kronsolve/internal/tensor"
)

// pow returns base^exp for non-negative exp.
func pow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// Operands is one coupling's kronmult application: ops[d] is the degree x
// degree operator window for dimension d, x is the length-degree^D input
// coefficient block, and y is the length-degree^D destination the result is
// written into. A batch of Operands shares degree and D but each entry's
// ops/x/y point at distinct storage (a distinct (row, column, term)
// triple's coefficient windows and block slots).
type Operands[T tensor.Scalar] struct {
	Ops []tensor.MatrixView[T]
	X   tensor.VectorView[T]
	Y   tensor.VectorView[T]
}

// BuildBatches runs every entry in entries through the D-stage kronmult
// schedule (dimension 0 as one large gemm, dimension D-1 as one large gemm,
// each intermediate dimension d as degree^(D-1-d) small gemms), but instead
// of issuing these as individual tensor.Gemm calls per entry, it groups the
// same-shape operands of every entry at a given stage into one batch.Batch
// and dispatches the whole stage with a single batch.BatchedGemm call —
// this is the operand-assignment surface the chunk/engine composition layer
// schedules work through. entries is sharded into up to maxWorkers
// contiguous groups, each processed by its own goroutine: entries are fully
// independent (distinct backing storage), so no synchronization is needed
// beyond the joining sync.WaitGroup. maxWorkers <= 0 is treated as 1.
func BuildBatches[T tensor.Scalar](entries []Operands[T], degree, D, maxWorkers int) {
	if len(entries) == 0 {
		return
	}
	for i := range entries {
		validateEntry(entries[i], degree, D)
	}

	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if maxWorkers > len(entries) {
		maxWorkers = len(entries)
	}
	if maxWorkers <= 1 {
		applyBatch(entries, degree, D)
		return
	}

	shardSize := (len(entries) + maxWorkers - 1) / maxWorkers
	var wg sync.WaitGroup
	for start := 0; start < len(entries); start += shardSize {
		stop := start + shardSize
		if stop > len(entries) {
			stop = len(entries)
		}
		wg.Add(1)
		go func(shard []Operands[T]) {
			defer wg.Done()
			applyBatch(shard, degree, D)
		}(entries[start:stop])
	}
	wg.Wait()
}

// Apply runs a single coupling through the kronmult schedule. A thin,
// single-entry convenience wrapper around BuildBatches, kept for callers
// (and tests) that only ever have one coupling in hand at a time.
func Apply[T tensor.Scalar](ops []tensor.MatrixView[T], x, y tensor.VectorView[T], degree, D int) {
	BuildBatches[T]([]Operands[T]{{Ops: ops, X: x, Y: y}}, degree, D, 1)
}

// applyBatch processes entries (all belonging to the same shard) stage by
// stage: stage 0, each intermediate dimension, and the final stage, each
// dispatched as exactly one batch.BatchedGemm call spanning every entry (and,
// for intermediate stages, every entry's degree^(D-1-d) sub-gemms).
func applyBatch[T tensor.Scalar](entries []Operands[T], degree, D int) {
	n := degree
	m := len(entries)

	if D == 1 {
		a := batch.New[T](m, n, n, entries[0].Ops[0].Stride(), false)
		x := batch.New[T](m, n, 1, n, false)
		y := batch.New[T](m, n, 1, n, false)
		for i, e := range entries {
			a.AssignEntry(i, e.Ops[0])
			x.AssignVectorEntry(i, e.X)
			y.AssignVectorEntry(i, e.Y)
		}
		batch.BatchedGemm[T](y, a, x, 1, 0)
		return
	}

	full := pow(n, D)
	work0 := make([]T, m*full)
	work1 := make([]T, m*full)
	bufs := func(which int, i int) tensor.VectorView[T] {
		store := work0
		if which == 1 {
			store = work1
		}
		return tensor.VectorFromData[T](store[i*full : (i+1)*full]).View()
	}

	// Stage 0 (base): one large non-transposed gemm per entry, batched.
	right0 := pow(n, D-1)
	aBatch := batch.New[T](m, n, n, entries[0].Ops[0].Stride(), false)
	xBatch := batch.New[T](m, n, right0, n, false)
	outBatch := batch.New[T](m, n, right0, n, false)
	for i, e := range entries {
		aBatch.AssignEntry(i, e.Ops[0])
		xBatch.AssignEntry(i, e.X.AsMatrix(n, right0, n))
		outBatch.AssignEntry(i, bufs(0, i).AsMatrix(n, right0, n))
	}
	batch.BatchedGemm[T](outBatch, aBatch, xBatch, 1, 0)

	cur := 0
	for d := 1; d < D-1; d++ {
		left := pow(n, d)
		right := pow(n, D-1-d)
		slots := m * right

		inB := batch.New[T](slots, left, n, left, false)
		opB := batch.New[T](slots, n, n, entries[0].Ops[d].Stride(), true)
		outB := batch.New[T](slots, left, n, left, false)

		slot := 0
		for i, e := range entries {
			for r := 0; r < right; r++ {
				off := r * left * n
				inView := bufs(cur%2, i).Sub(off, off+left*n).AsMatrix(left, n, left)
				outView := bufs((cur+1)%2, i).Sub(off, off+left*n).AsMatrix(left, n, left)
				inB.AssignEntry(slot, inView)
				opB.AssignEntry(slot, e.Ops[d])
				outB.AssignEntry(slot, outView)
				slot++
			}
		}
		batch.BatchedGemm[T](outB, inB, opB, 1, 0)
		cur++
	}

	// Final stage: one gemm exploiting the degenerate trailing axis,
	// writing directly into each entry's y.
	left := pow(n, D-1)
	inB := batch.New[T](m, left, n, left, false)
	opB := batch.New[T](m, n, n, entries[0].Ops[D-1].Stride(), true)
	yB := batch.New[T](m, left, n, left, false)
	for i, e := range entries {
		inB.AssignEntry(i, bufs(cur%2, i).AsMatrix(left, n, left))
		opB.AssignEntry(i, e.Ops[D-1])
		yB.AssignEntry(i, e.Y.AsMatrix(left, n, left))
	}
	batch.BatchedGemm[T](yB, inB, opB, 1, 0)
}

func validateEntry[T tensor.Scalar](e Operands[T], degree, D int) {
	full := pow(degree, D)
	if e.X.Size() != full || e.Y.Size() != full {
		panic(fmt.Sprintf("kronmult: x/y size must be degree^D (%d), got x=%d y=%d", full, e.X.Size(), e.Y.Size()))
	}
	if len(e.Ops) != D {
		panic(fmt.Sprintf("kronmult: need exactly D=%d operator views, got %d", D, len(e.Ops)))
	}
	for d, op := range e.Ops {
		if op.Rows() != degree || op.Cols() != degree {
			panic(fmt.Sprintf("kronmult: operator view %d must be %dx%d, got %dx%d", d, degree, degree, op.Rows(), op.Cols()))
		}
	}
}

// StageCounts returns, for a D-dimensional apply at the given degree, the
// number of gemms issued at each of the D stages: stage 0 and stage D-1
// are each a single gemm; intermediate stage d issues degree^(D-1-d)
// gemms.
func StageCounts(D, degree int) []int {
	if D <= 0 || degree <= 0 {
		panic("kronmult: D and degree must be positive")
	}
	counts := make([]int, D)
	counts[0] = 1
	for d := 1; d < D-1; d++ {
		counts[d] = pow(degree, D-1-d)
	}
	if D > 1 {
		counts[D-1] = 1
	}
	return counts
}

// TotalGemmCount returns the sum of StageCounts(D, degree): the number of
// gemms a single (row, column, term) triple contributes to its chunk's
// batches.
func TotalGemmCount(D, degree int) int {
	total := 0
	for _, c := range StageCounts(D, degree) {
		total += c
	}
	return total
}
