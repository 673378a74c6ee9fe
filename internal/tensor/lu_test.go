package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertIdentity(t *testing.T) {
	m := matFromRows([][]float64{{1, 0}, {0, 1}})
	inv, err := Invert[float64](m.View())
	require.NoError(t, err)
	assert.Equal(t, float64(1), inv.At(0, 0))
	assert.Equal(t, float64(1), inv.At(1, 1))
	assert.Equal(t, float64(0), inv.At(0, 1))
}

func TestInvertTimesOriginalIsIdentity(t *testing.T) {
	m := matFromRows([][]float64{{4, 3}, {6, 3}})
	inv, err := Invert[float64](m.View())
	require.NoError(t, err)

	prod := NewMatrix[float64](2, 2)
	Gemm[float64](prod.View(), m.View(), inv.View(), false, false, 1, 0)

	const eps = 2.220446049250313e-16
	tol := 2 * eps * 10 // generous factor over machine epsilon for a 2x2 solve
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, prod.At(i, j), tol)
		}
	}
}

func TestInvertSingularReturnsError(t *testing.T) {
	m := matFromRows([][]float64{{1, 2}, {2, 4}})
	_, err := Invert[float64](m.View())
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestInvertNonSquareReturnsError(t *testing.T) {
	m := NewMatrix[float64](2, 3)
	_, err := Invert[float64](m.View())
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestDeterminant2x2(t *testing.T) {
	m := matFromRows([][]float64{{3, 8}, {4, 6}})
	det, err := Determinant[float64](m.View())
	require.NoError(t, err)
	assert.InDelta(t, -14.0, det, 1e-9)
}

func TestDeterminantSingularIsZero(t *testing.T) {
	m := matFromRows([][]float64{{1, 2}, {2, 4}})
	det, err := Determinant[float64](m.View())
	require.NoError(t, err)
	assert.Equal(t, float64(0), det)
}

func TestDeterminantIdentityIsOne(t *testing.T) {
	m := matFromRows([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	det, err := Determinant[float64](m.View())
	require.NoError(t, err)
	assert.Equal(t, float64(1), det)
}

func TestInvertRequiresPivoting(t *testing.T) {
	// Zero in the (0,0) pivot slot forces a row swap during getrfIP.
	m := matFromRows([][]float64{{0, 1}, {1, 0}})
	inv, err := Invert[float64](m.View())
	require.NoError(t, err)
	prod := NewMatrix[float64](2, 2)
	Gemm[float64](prod.View(), m.View(), inv.View(), false, false, 1, 0)
	assert.InDelta(t, 1.0, prod.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, prod.At(1, 1), 1e-9)
	assert.True(t, math.Abs(prod.At(0, 1)) < 1e-9)
}
