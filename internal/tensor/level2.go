package tensor

// Gemv computes y = alpha*op(A)*x + beta*y where op(A) = A if !trans, A^T
// otherwise. A is the (M x N) column-major operand (A.Rows()==M,
// A.Cols()==N) backing data[j*stride+i]; this mirrors the teacher's
// Gemv_N/Gemv_T pair but keyed off a single transpose flag, since the
// kronmult batcher selects transpose per-call rather than per-package.
func Gemv[T Scalar](y VectorView[T], a MatrixView[T], x VectorView[T], trans bool, alpha, beta T) {
	if trans {
		gemvT(y, a, x, alpha, beta)
		return
	}
	gemvN(y, a, x, alpha, beta)
}

// gemvN computes y = alpha*A*x + beta*y. A: M x N, x: N, y: M.
func gemvN[T Scalar](y VectorView[T], a MatrixView[T], x VectorView[T], alpha, beta T) {
	M, N := a.Rows(), a.Cols()
	if y.Size() != M || x.Size() != N {
		panic("tensor: Gemv (N) shape mismatch")
	}
	if M == 0 || N == 0 {
		return
	}
	scaleVec(y, beta)
	if alpha == 0 {
		return
	}
	for j := 0; j < N; j++ {
		xj := x.At(j)
		if xj == 0 {
			continue
		}
		axj := alpha * xj
		col := a.col(j)
		for i := 0; i < M; i++ {
			y.Set(i, y.At(i)+axj*col[i])
		}
	}
}

// gemvT computes y = alpha*A^T*x + beta*y. A: M x N, x: M, y: N.
func gemvT[T Scalar](y VectorView[T], a MatrixView[T], x VectorView[T], alpha, beta T) {
	M, N := a.Rows(), a.Cols()
	if y.Size() != N || x.Size() != M {
		panic("tensor: Gemv (T) shape mismatch")
	}
	if M == 0 || N == 0 {
		return
	}
	scaleVec(y, beta)
	if alpha == 0 {
		return
	}
	for j := 0; j < N; j++ {
		col := a.col(j)
		var acc T
		for i := 0; i < M; i++ {
			acc += col[i] * x.At(i)
		}
		y.Set(j, y.At(j)+alpha*acc)
	}
}

func scaleVec[T Scalar](y VectorView[T], beta T) {
	if beta == 1 {
		return
	}
	if beta == 0 {
		for i := 0; i < y.Size(); i++ {
			y.Set(i, 0)
		}
		return
	}
	for i := 0; i < y.Size(); i++ {
		y.Set(i, y.At(i)*beta)
	}
}
