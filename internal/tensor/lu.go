package tensor

import "errors"

// Sentinel errors for the LU-based linear-algebra routines, matching the
// teacher's la.go convention of package-level sentinel errors rather than
// ad hoc strings.
var (
	// ErrSingularMatrix is returned when a matrix cannot be inverted.
	ErrSingularMatrix = errors.New("tensor: matrix is singular")
	// ErrNotSquare is returned when a square matrix was required.
	ErrNotSquare = errors.New("tensor: matrix must be square")
)

const singularEps = 1e-10

func getElem[T Scalar](a []T, ldA, i, j int) T { return a[j*ldA+i] }

func setElem[T Scalar](a []T, ldA, i, j int, v T) { a[j*ldA+i] = v }

func swapRows[T Scalar](a []T, ldA, i, j, N int) {
	for k := 0; k < N; k++ {
		off := k * ldA
		a[off+i], a[off+j] = a[off+j], a[off+i]
	}
}

// getrfIP computes an in-place LU decomposition with partial pivoting of
// the M x N column-major matrix a (ldA == M), writing L (below diagonal,
// unit diagonal implied) and U (on/above diagonal) back into a, and pivot
// indices into ipiv (length min(M,N)). Column-major counterpart of the
// teacher's Getrf_IP.
func getrfIP[T Scalar](a []T, ipiv []int, ldA, M, N int) error {
	minMN := minInt(M, N)
	for k := 0; k < minMN; k++ {
		p := k
		maxVal := absS(getElem(a, ldA, k, k))
		for i := k + 1; i < M; i++ {
			v := absS(getElem(a, ldA, i, k))
			if v > maxVal {
				maxVal = v
				p = i
			}
		}
		ipiv[k] = p
		if p != k {
			swapRows(a, ldA, k, p, N)
		}
		akk := getElem(a, ldA, k, k)
		if absS(akk) < T(singularEps) {
			return ErrSingularMatrix
		}
		for i := k + 1; i < M; i++ {
			aik := getElem(a, ldA, i, k) / akk
			setElem(a, ldA, i, k, aik)
			for j := k + 1; j < N; j++ {
				setElem(a, ldA, i, j, getElem(a, ldA, i, j)-aik*getElem(a, ldA, k, j))
			}
		}
	}
	return nil
}

// getri computes the inverse of an N x N matrix given its in-place LU
// factorization (as produced by getrfIP) and pivot indices. aInv must be
// N*N pre-sized; column-major counterpart of the teacher's Getri.
func getri[T Scalar](aInv, lu []T, ldA, N int, ipiv []int) error {
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if i == j {
				setElem(aInv, ldA, i, j, 1)
			} else {
				setElem(aInv, ldA, i, j, 0)
			}
		}
	}
	// Apply P^T on the right-hand side (forward pivot application).
	for i := 0; i < N; i++ {
		if ipiv[i] != i {
			swapRows(aInv, ldA, i, ipiv[i], N)
		}
	}
	// Forward substitution: L*Y = I (L has unit diagonal).
	for j := 0; j < N; j++ {
		for i := 0; i < N; i++ {
			sum := getElem(aInv, ldA, i, j)
			for k := 0; k < i; k++ {
				sum -= getElem(lu, ldA, i, k) * getElem(aInv, ldA, k, j)
			}
			setElem(aInv, ldA, i, j, sum)
		}
	}
	// Back substitution: U*X = Y.
	for j := 0; j < N; j++ {
		for i := N - 1; i >= 0; i-- {
			sum := getElem(aInv, ldA, i, j)
			for k := i + 1; k < N; k++ {
				sum -= getElem(lu, ldA, i, k) * getElem(aInv, ldA, k, j)
			}
			uii := getElem(lu, ldA, i, i)
			if absS(uii) < T(singularEps) {
				return ErrSingularMatrix
			}
			setElem(aInv, ldA, i, j, sum/uii)
		}
	}
	return nil
}

// Invert returns the inverse of a, computed via LU decomposition with
// partial pivoting. Returns ErrNotSquare if a is not square, ErrSingularMatrix
// if a is numerically singular.
func Invert[T Scalar](a MatrixView[T]) (*Matrix[T], error) {
	N := a.Rows()
	if N != a.Cols() {
		return nil, ErrNotSquare
	}
	lu := a.Clone()
	ipiv := make([]int, N)
	if err := getrfIP(lu.data, ipiv, N, N, N); err != nil {
		return nil, err
	}
	out := NewMatrix[T](N, N)
	if err := getri(out.data, lu.data, N, N, ipiv); err != nil {
		return nil, err
	}
	return out, nil
}

// Determinant returns det(a), computed from the LU factorization's diagonal
// and the parity of the row-pivot permutation.
func Determinant[T Scalar](a MatrixView[T]) (T, error) {
	N := a.Rows()
	if N != a.Cols() {
		return 0, ErrNotSquare
	}
	lu := a.Clone()
	ipiv := make([]int, N)
	if err := getrfIP(lu.data, ipiv, N, N, N); err != nil {
		// A singular matrix has determinant zero, not an error condition
		// for this query (unlike Invert, which cannot proceed).
		if errors.Is(err, ErrSingularMatrix) {
			return 0, nil
		}
		return 0, err
	}
	det := T(1)
	swaps := 0
	for i := 0; i < N; i++ {
		det *= getElem(lu.data, N, i, i)
		if ipiv[i] != i {
			swaps++
		}
	}
	if swaps%2 != 0 {
		det = -det
	}
	return det, nil
}
