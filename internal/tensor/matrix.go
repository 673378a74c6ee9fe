package tensor

import "fmt"

// denseMat is the shared column-major storage descriptor for both owning
// matrices and non-owning matrix views: two-index access is
// data[j*stride+i]. Embedding this type in Matrix and MatrixView gives both
// the same read/write surface (design note: owning vs. view duality).
type denseMat[T Scalar] struct {
	rows, cols, stride int
	data                []T
}

// Rows reports the number of rows.
func (m denseMat[T]) Rows() int { return m.rows }

// Cols reports the number of columns.
func (m denseMat[T]) Cols() int { return m.cols }

// Stride reports the leading dimension (column-to-column element spacing).
func (m denseMat[T]) Stride() int { return m.stride }

// RawData exposes the backing storage. A view's RawData aliases its owner's.
func (m denseMat[T]) RawData() []T { return m.data }

// At returns element (i, j).
func (m denseMat[T]) At(i, j int) T {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("tensor: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
	return m.data[j*m.stride+i]
}

// Set assigns element (i, j).
func (m denseMat[T]) Set(i, j int, v T) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("tensor: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
	m.data[j*m.stride+i] = v
}

// col returns the backing slice for column j, length m.rows.
func (m denseMat[T]) col(j int) []T {
	off := j * m.stride
	return m.data[off : off+m.rows]
}

// Ptr returns a raw pointer to the first element of the backing storage,
// for handing off to the batch container's pointer-slot ABI. Panics on an
// empty view, since there is no element to point at.
func (m denseMat[T]) Ptr() *T {
	if len(m.data) == 0 {
		panic("tensor: Ptr on empty view")
	}
	return &m.data[0]
}

// Matrix is an owning, column-major, contiguous-stride dense matrix.
type Matrix[T Scalar] struct {
	denseMat[T]
}

// NewMatrix allocates a zero-filled rows x cols matrix with stride == rows
// (no padding), satisfying the BLAS leading-dimension ABI directly.
func NewMatrix[T Scalar](rows, cols int) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic("tensor: negative matrix dimension")
	}
	return &Matrix[T]{denseMat[T]{rows: rows, cols: cols, stride: rows, data: make([]T, rows*cols)}}
}

// MatrixFromData wraps an existing row*cols-length slice as an owning
// matrix with stride == rows. The slice is used directly, not copied.
func MatrixFromData[T Scalar](rows, cols int, data []T) *Matrix[T] {
	if len(data) < rows*cols {
		panic("tensor: backing slice too small for matrix shape")
	}
	return &Matrix[T]{denseMat[T]{rows: rows, cols: cols, stride: rows, data: data}}
}

// View returns a non-owning MatrixView over the entire matrix, sharing the
// backing storage (writes through either are observable through both).
func (m *Matrix[T]) View() MatrixView[T] {
	return MatrixView[T]{m.denseMat}
}

// Window returns a view into the sub-block [r0,r1) x [c0,c1), preserving
// the owner's stride so the result remains valid as a BLAS leading
// dimension.
func (m *Matrix[T]) Window(r0, r1, c0, c1 int) MatrixView[T] {
	return m.View().Window(r0, r1, c0, c1)
}

// MatrixView is a non-owning handle into a Matrix's (or a Vector's)
// backing storage. A view must not outlive its owner.
type MatrixView[T Scalar] struct {
	denseMat[T]
}

// Window returns a sub-view of this view, [r0,r1) x [c0,c1), preserving the
// parent stride.
func (v MatrixView[T]) Window(r0, r1, c0, c1 int) MatrixView[T] {
	if r0 < 0 || c0 < 0 || r1 > v.rows || c1 > v.cols || r0 > r1 || c0 > c1 {
		panic("tensor: window out of range")
	}
	off := c0*v.stride + r0
	return MatrixView[T]{denseMat[T]{
		rows:   r1 - r0,
		cols:   c1 - c0,
		stride: v.stride,
		data:   v.data[off:],
	}}
}

// Col returns column j as a unit-stride VectorView, sharing storage with
// the matrix. Used to address a single Kronecker-product slot within a
// larger reduction block without copying.
func (v MatrixView[T]) Col(j int) VectorView[T] {
	if j < 0 || j >= v.cols {
		panic(fmt.Sprintf("tensor: column index %d out of range for %d-column matrix", j, v.cols))
	}
	off := j * v.stride
	return VectorView[T]{denseVec[T]{size: v.rows, stride: 1, data: v.data[off : off+v.rows]}}
}

// Clone copies this view into a freshly owned, tightly strided Matrix.
func (v MatrixView[T]) Clone() *Matrix[T] {
	out := NewMatrix[T](v.rows, v.cols)
	for j := 0; j < v.cols; j++ {
		copy(out.col(j), v.col(j)[:v.rows])
	}
	return out
}

// Add returns a freshly allocated matrix a+b; panics on shape mismatch.
func Add[T Scalar](a, b MatrixView[T]) *Matrix[T] {
	requireSameShape(a, b, "Add")
	out := NewMatrix[T](a.rows, a.cols)
	for j := 0; j < a.cols; j++ {
		ac, bc, oc := a.col(j), b.col(j), out.col(j)
		for i := 0; i < a.rows; i++ {
			oc[i] = ac[i] + bc[i]
		}
	}
	return out
}

// Sub returns a freshly allocated matrix a-b; panics on shape mismatch.
func Sub[T Scalar](a, b MatrixView[T]) *Matrix[T] {
	requireSameShape(a, b, "Sub")
	out := NewMatrix[T](a.rows, a.cols)
	for j := 0; j < a.cols; j++ {
		ac, bc, oc := a.col(j), b.col(j), out.col(j)
		for i := 0; i < a.rows; i++ {
			oc[i] = ac[i] - bc[i]
		}
	}
	return out
}

// Scale returns a freshly allocated matrix alpha*a.
func Scale[T Scalar](a MatrixView[T], alpha T) *Matrix[T] {
	out := NewMatrix[T](a.rows, a.cols)
	for j := 0; j < a.cols; j++ {
		ac, oc := a.col(j), out.col(j)
		for i := 0; i < a.rows; i++ {
			oc[i] = alpha * ac[i]
		}
	}
	return out
}

// Transpose returns a freshly allocated, materialized transpose of a.
func Transpose[T Scalar](a MatrixView[T]) *Matrix[T] {
	out := NewMatrix[T](a.cols, a.rows)
	for j := 0; j < a.cols; j++ {
		for i := 0; i < a.rows; i++ {
			out.Set(j, i, a.At(i, j))
		}
	}
	return out
}

func requireSameShape[T Scalar](a, b MatrixView[T], op string) {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Sprintf("tensor: %s shape mismatch: %dx%d vs %dx%d", op, a.rows, a.cols, b.rows, b.cols))
	}
}
