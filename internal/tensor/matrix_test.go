package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixColumnMajorLayout(t *testing.T) {
	m := NewMatrix[float64](2, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			m.Set(i, j, float64(j*2+i))
		}
	}
	// Column-major: data[j*stride+i].
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, m.RawData())
}

func TestMatrixWindowSharesStorage(t *testing.T) {
	m := NewMatrix[float64](4, 4)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			m.Set(i, j, float64(i*10+j))
		}
	}
	w := m.Window(1, 3, 1, 3)
	require.Equal(t, 2, w.Rows())
	require.Equal(t, 2, w.Cols())
	require.Equal(t, m.Stride(), w.Stride())

	// Writes through the view are visible through the owner.
	w.Set(0, 0, 999)
	assert.Equal(t, float64(999), m.At(1, 1))
}

func TestTransposeRoundTrip(t *testing.T) {
	m := NewMatrix[float64](2, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			m.Set(i, j, float64(j*2+i+1))
		}
	}
	tt := Transpose[float64](Transpose[float64](m.View()).View())
	require.Equal(t, m.Rows(), tt.Rows())
	require.Equal(t, m.Cols(), tt.Cols())
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			assert.Equal(t, m.At(i, j), tt.At(i, j))
		}
	}
}

func TestAddSubScale(t *testing.T) {
	a := NewMatrix[float32](2, 2)
	b := NewMatrix[float32](2, 2)
	a.Set(0, 0, 1)
	a.Set(1, 0, 2)
	a.Set(0, 1, 3)
	a.Set(1, 1, 4)
	b.Set(0, 0, 10)
	b.Set(1, 0, 20)
	b.Set(0, 1, 30)
	b.Set(1, 1, 40)

	sum := Add[float32](a.View(), b.View())
	assert.Equal(t, float32(11), sum.At(0, 0))
	assert.Equal(t, float32(44), sum.At(1, 1))

	diff := Sub[float32](b.View(), a.View())
	assert.Equal(t, float32(9), diff.At(0, 0))

	scaled := Scale[float32](a.View(), 2)
	assert.Equal(t, float32(2), scaled.At(0, 0))
	assert.Equal(t, float32(8), scaled.At(1, 1))
}

func TestAddShapeMismatchPanics(t *testing.T) {
	a := NewMatrix[float64](2, 2)
	b := NewMatrix[float64](3, 2)
	assert.Panics(t, func() {
		Add[float64](a.View(), b.View())
	})
}

func TestMatrixViewColSharesStorage(t *testing.T) {
	m := NewMatrix[float64](3, 2)
	m.Set(0, 1, 1)
	m.Set(1, 1, 2)
	m.Set(2, 1, 3)
	col := m.View().Col(1)
	require.Equal(t, 3, col.Size())
	assert.Equal(t, float64(2), col.At(1))
	col.Set(1, 99)
	assert.Equal(t, float64(99), m.At(1, 1))
}

func TestMatrixViewColOutOfRangePanics(t *testing.T) {
	m := NewMatrix[float64](2, 2)
	assert.Panics(t, func() {
		m.View().Col(5)
	})
}

func TestVectorAsMatrixOverlay(t *testing.T) {
	v := NewVector[float64](6)
	for i := range v.RawData() {
		v.RawData()[i] = float64(i)
	}
	m := v.AsMatrix(2, 3, 2)
	assert.Equal(t, float64(0), m.At(0, 0))
	assert.Equal(t, float64(3), m.At(1, 1))
	assert.Equal(t, float64(5), m.At(1, 2))
}
