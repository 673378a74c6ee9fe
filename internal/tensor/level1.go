package tensor

// This file is the generic, precision-parametric counterpart of part of the
// teacher's fp32 BLAS level-1 routines: Axpy, VDot, Scal, VCopy and Iamax
// (there is no Nrm2, Asum or Swap here). One Go-generic definition instead
// of a monomorphized-per-type package, matching the "compile-time type
// parameter" design note.

// Axpy computes y = alpha*x + y.
func Axpy[T Scalar](y, x []T, strideY, strideX, n int, alpha T) {
	if n == 0 {
		return
	}
	py, px := 0, 0
	for i := 0; i < n; i++ {
		y[py] = alpha*x[px] + y[py]
		py += strideY
		px += strideX
	}
}

// VDot computes dot = x^T * y over raw strided slices.
func VDot[T Scalar](x, y []T, strideX, strideY, n int) T {
	var acc T
	if n == 0 {
		return acc
	}
	px, py := 0, 0
	for i := 0; i < n; i++ {
		acc += x[px] * y[py]
		px += strideX
		py += strideY
	}
	return acc
}

// Scal computes x = alpha*x.
func Scal[T Scalar](x []T, stride, n int, alpha T) {
	if n == 0 || alpha == 1 {
		return
	}
	px := 0
	for i := 0; i < n; i++ {
		x[px] *= alpha
		px += stride
	}
}

// VCopy computes y = x over raw strided slices.
func VCopy[T Scalar](y, x []T, strideY, strideX, n int) {
	if n == 0 {
		return
	}
	py, px := 0, 0
	for i := 0; i < n; i++ {
		y[py] = x[px]
		py += strideY
		px += strideX
	}
}

// Iamax returns the index of the element with maximum absolute value.
func Iamax[T Scalar](x []T, stride, n int) int {
	if n == 0 {
		return -1
	}
	var maxVal T
	maxIdx := 0
	px := 0
	for i := 0; i < n; i++ {
		val := absS(x[px])
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
		px += stride
	}
	return maxIdx
}
