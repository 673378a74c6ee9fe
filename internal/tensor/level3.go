package tensor

// Gemm computes C = alpha*op(A)*op(B) + beta*C, dispatching to the NN/NT/
// TN/TT variant named the way the teacher's BLAS level-3 routines are
// named. op(X) is X if the corresponding trans flag is false, X^T
// otherwise. Shapes: op(A) is M x K, op(B) is K x N, C is M x N.
func Gemm[T Scalar](c, a, b MatrixView[T], transA, transB bool, alpha, beta T) {
	switch {
	case !transA && !transB:
		gemmNN(c, a, b, alpha, beta)
	case !transA && transB:
		gemmNT(c, a, b, alpha, beta)
	case transA && !transB:
		gemmTN(c, a, b, alpha, beta)
	default:
		gemmTT(c, a, b, alpha, beta)
	}
}

func opShape(rows, cols int, trans bool) (opRows, opCols int) {
	if trans {
		return cols, rows
	}
	return rows, cols
}

func scaleMat[T Scalar](c MatrixView[T], beta T) {
	if beta == 1 {
		return
	}
	for j := 0; j < c.Cols(); j++ {
		col := c.col(j)
		if beta == 0 {
			for i := range col[:c.Rows()] {
				col[i] = 0
			}
		} else {
			for i := range col[:c.Rows()] {
				col[i] *= beta
			}
		}
	}
}

// gemmNN computes C = alpha*A*B + beta*C (neither transposed).
// A: M x K column-major, B: K x N column-major, C: M x N column-major.
func gemmNN[T Scalar](c, a, b MatrixView[T], alpha, beta T) {
	M, K := a.Rows(), a.Cols()
	K2, N := b.Rows(), b.Cols()
	requireGemmShape(c, M, N, K, K2)
	scaleMat(c, beta)
	if alpha == 0 || M == 0 || N == 0 || K == 0 {
		return
	}
	for j := 0; j < N; j++ {
		bcol := b.col(j)
		ccol := c.col(j)
		for k := 0; k < K; k++ {
			bkj := bcol[k]
			if bkj == 0 {
				continue
			}
			abkj := alpha * bkj
			acol := a.col(k)
			for i := 0; i < M; i++ {
				ccol[i] += abkj * acol[i]
			}
		}
	}
}

// gemmNT computes C = alpha*A*B^T + beta*C. A: M x K, B: N x K (so B^T is
// K x N), C: M x N, all column-major.
func gemmNT[T Scalar](c, a, b MatrixView[T], alpha, beta T) {
	M, K := a.Rows(), a.Cols()
	N, K2 := b.Rows(), b.Cols()
	requireGemmShape(c, M, N, K, K2)
	scaleMat(c, beta)
	if alpha == 0 || M == 0 || N == 0 || K == 0 {
		return
	}
	for j := 0; j < N; j++ {
		ccol := c.col(j)
		for k := 0; k < K; k++ {
			bjk := b.At(j, k)
			if bjk == 0 {
				continue
			}
			abjk := alpha * bjk
			acol := a.col(k)
			for i := 0; i < M; i++ {
				ccol[i] += abjk * acol[i]
			}
		}
	}
}

// gemmTN computes C = alpha*A^T*B + beta*C. A: K x M (so A^T is M x K),
// B: K x N, C: M x N, all column-major.
func gemmTN[T Scalar](c, a, b MatrixView[T], alpha, beta T) {
	K, M := a.Rows(), a.Cols()
	K2, N := b.Rows(), b.Cols()
	requireGemmShape(c, M, N, K, K2)
	scaleMat(c, beta)
	if alpha == 0 || M == 0 || N == 0 || K == 0 {
		return
	}
	for j := 0; j < N; j++ {
		bcol := b.col(j)
		for i := 0; i < M; i++ {
			acol := a.col(i)
			var acc T
			for k := 0; k < K; k++ {
				acc += acol[k] * bcol[k]
			}
			c.Set(i, j, c.At(i, j)+alpha*acc)
		}
	}
}

// gemmTT computes C = alpha*A^T*B^T + beta*C. A: K x M, B: N x K, C: M x N,
// all column-major.
func gemmTT[T Scalar](c, a, b MatrixView[T], alpha, beta T) {
	K, M := a.Rows(), a.Cols()
	N, K2 := b.Rows(), b.Cols()
	requireGemmShape(c, M, N, K, K2)
	scaleMat(c, beta)
	if alpha == 0 || M == 0 || N == 0 || K == 0 {
		return
	}
	for j := 0; j < N; j++ {
		for i := 0; i < M; i++ {
			acol := a.col(i)
			var acc T
			for k := 0; k < K; k++ {
				acc += acol[k] * b.At(j, k)
			}
			c.Set(i, j, c.At(i, j)+alpha*acc)
		}
	}
}

func requireGemmShape[T Scalar](c MatrixView[T], M, N, K, K2 int) {
	if K != K2 {
		panic("tensor: Gemm inner dimension mismatch")
	}
	if c.Rows() != M || c.Cols() != N {
		panic("tensor: Gemm output shape mismatch")
	}
}
