// Package batch implements the fixed-shape pointer-slot container that
// feeds the vendor-style batched gemm/gemv dispatch: a list of raw
// pointers into separately owned operand storage, mirroring the C ABI of
// a batched BLAS call (`T* const A[]`) rather than a single strided
// array. Adapted from the teacher's fp32/batched.go strided-batch
// dispatch, generalized to the raw-pointer-list ABI the kronmult batcher
// needs (operand views are scattered across the coefficient matrices and
// per-chunk workspaces, not laid out at a fixed stride).
package batch

import (
	"fmt"
	"unsafe"

	"github.com/itohio/kronsolve/internal/tensor"
)

// Batch is a fixed-shape list of num_entries pointer slots, each naming the
// first element of an (nrows x ncols) column-major operand with the given
// stride and transpose flag. All slots share shape; each slot may be
// assigned at most once between clears.
type Batch[T tensor.Scalar] struct {
	nrows, ncols, stride int
	doTrans               bool
	entries               []*T
	assigned              []bool
}

// New allocates a batch of numEntries null slots, all sharing the given
// operand shape.
func New[T tensor.Scalar](numEntries, nrows, ncols, stride int, doTrans bool) *Batch[T] {
	if numEntries < 0 || nrows < 0 || ncols < 0 {
		panic("batch: negative dimension")
	}
	return &Batch[T]{
		nrows:    nrows,
		ncols:    ncols,
		stride:   stride,
		doTrans:  doTrans,
		entries:  make([]*T, numEntries),
		assigned: make([]bool, numEntries),
	}
}

// NumEntries reports the number of slots.
func (b *Batch[T]) NumEntries() int { return len(b.entries) }

// Rows, Cols, Stride, DoTrans report the shared operand shape.
func (b *Batch[T]) Rows() int      { return b.nrows }
func (b *Batch[T]) Cols() int      { return b.ncols }
func (b *Batch[T]) Stride() int    { return b.stride }
func (b *Batch[T]) DoTrans() bool  { return b.doTrans }

// operandRows, operandCols report the logical (possibly transposed) shape
// a caller should see when matching this batch against a gemm operand.
func (b *Batch[T]) operandRows() int {
	if b.doTrans {
		return b.ncols
	}
	return b.nrows
}

func (b *Batch[T]) operandCols() int {
	if b.doTrans {
		return b.nrows
	}
	return b.ncols
}

// AssignEntry records a raw pointer to view's backing data at position.
// Precondition: the slot is unassigned and view's shape matches the
// batch's declared shape.
func (b *Batch[T]) AssignEntry(position int, view tensor.MatrixView[T]) {
	if position < 0 || position >= len(b.entries) {
		panic(fmt.Sprintf("batch: position %d out of range for %d entries", position, len(b.entries)))
	}
	if b.assigned[position] {
		panic(fmt.Sprintf("batch: slot %d already assigned", position))
	}
	if view.Rows() != b.nrows || view.Cols() != b.ncols {
		panic(fmt.Sprintf("batch: assign shape mismatch: slot is %dx%d, view is %dx%d", b.nrows, b.ncols, view.Rows(), view.Cols()))
	}
	b.entries[position] = view.Ptr()
	b.assigned[position] = true
}

// AssignVectorEntry records a raw pointer to a vector view, treated as an
// (size x 1) column operand. Used for the gemv B/C batches.
func (b *Batch[T]) AssignVectorEntry(position int, view tensor.VectorView[T]) {
	if position < 0 || position >= len(b.entries) {
		panic(fmt.Sprintf("batch: position %d out of range for %d entries", position, len(b.entries)))
	}
	if b.assigned[position] {
		panic(fmt.Sprintf("batch: slot %d already assigned", position))
	}
	if view.Size() != b.nrows || b.ncols != 1 {
		panic(fmt.Sprintf("batch: vector assign shape mismatch: slot is %dx%d, vector size %d", b.nrows, b.ncols, view.Size()))
	}
	b.entries[position] = view.Ptr()
	b.assigned[position] = true
}

// ClearEntry nulls position, returning whether it had been assigned.
func (b *Batch[T]) ClearEntry(position int) bool {
	if position < 0 || position >= len(b.entries) {
		panic(fmt.Sprintf("batch: position %d out of range for %d entries", position, len(b.entries)))
	}
	was := b.assigned[position]
	b.entries[position] = nil
	b.assigned[position] = false
	return was
}

// ClearAll nulls every slot.
func (b *Batch[T]) ClearAll() {
	for i := range b.entries {
		b.entries[i] = nil
		b.assigned[i] = false
	}
}

// IsFilled reports whether every slot is non-null.
func (b *Batch[T]) IsFilled() bool {
	for _, a := range b.assigned {
		if !a {
			return false
		}
	}
	return true
}

// slice reconstructs the backing slice for slot k, reversing the raw
// pointer stored by AssignEntry back into a bounds-checked []T the way the
// vendor batched-BLAS ABI's `T* const A[]` would be dereferenced on the C
// side. The length covers the full column-major footprint implied by
// stride and the declared column count.
func (b *Batch[T]) slice(k int) []T {
	p := b.entries[k]
	if p == nil {
		return nil
	}
	n := (b.ncols-1)*b.stride + b.nrows
	if n < 1 {
		n = 1
	}
	return unsafe.Slice(p, n)
}

// view reconstructs slot k as a MatrixView sharing the batch's declared
// shape and stride.
func (b *Batch[T]) view(k int) tensor.MatrixView[T] {
	return tensor.VectorFromData[T](b.slice(k)).View().AsMatrix(b.nrows, b.ncols, b.stride)
}

// BatchedGemm issues one gemm per slot k for which all three of A[k], B[k],
// C[k] are non-null: C[k] = alpha*op(A[k])*op(B[k]) + beta*C[k].
// Precondition: a.NumEntries() == b.NumEntries() == c.NumEntries(),
// !c.doTrans, and shape compatibility between the (possibly transposed)
// operand shapes.
func BatchedGemm[T tensor.Scalar](c, a, bOp *Batch[T], alpha, beta T) {
	n := c.NumEntries()
	if a.NumEntries() != n || bOp.NumEntries() != n {
		panic("batch: BatchedGemm entry-count mismatch")
	}
	if c.doTrans {
		panic("batch: BatchedGemm output batch must not be transposed")
	}
	if a.operandCols() != bOp.operandRows() {
		panic("batch: BatchedGemm inner dimension mismatch")
	}
	if c.nrows != a.operandRows() || c.ncols != bOp.operandCols() {
		panic("batch: BatchedGemm output shape mismatch")
	}
	for k := 0; k < n; k++ {
		if a.entries[k] == nil || bOp.entries[k] == nil || c.entries[k] == nil {
			continue
		}
		tensor.Gemm[T](c.view(k), a.view(k), bOp.view(k), a.doTrans, bOp.doTrans, alpha, beta)
	}
}

// BatchedGemv issues one gemv per slot k for which all three of A[k], x[k],
// y[k] are non-null: y[k] = alpha*op(A[k])*x[k] + beta*y[k].
// Precondition: a.NumEntries() == x.NumEntries() == y.NumEntries(),
// x.ncols == y.ncols == 1, !x.doTrans, !y.doTrans.
func BatchedGemv[T tensor.Scalar](y, a, x *Batch[T], alpha, beta T) {
	n := y.NumEntries()
	if a.NumEntries() != n || x.NumEntries() != n {
		panic("batch: BatchedGemv entry-count mismatch")
	}
	if x.ncols != 1 || y.ncols != 1 {
		panic("batch: BatchedGemv operands must be column vectors")
	}
	if x.doTrans || y.doTrans {
		panic("batch: BatchedGemv x and y batches must not be transposed")
	}
	for k := 0; k < n; k++ {
		if a.entries[k] == nil || x.entries[k] == nil || y.entries[k] == nil {
			continue
		}
		xv := tensor.VectorFromData[T](x.slice(k)[:x.nrows]).View()
		yv := tensor.VectorFromData[T](y.slice(k)[:y.nrows]).View()
		tensor.Gemv[T](yv, a.view(k), xv, a.doTrans, alpha, beta)
	}
}
